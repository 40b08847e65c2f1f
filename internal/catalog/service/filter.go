package service

import (
	"sort"
	"strings"

	"github.com/ridloal/storefront/internal/catalog/domain"
)

// Filter mengembalikan subsequence katalog yang memenuhi semua kriteria, urutan asli dipertahankan
func Filter(products []domain.Product, c domain.Criteria) []domain.Product {
	search := strings.ToLower(c.Search)
	filtered := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if Matches(p, c, search) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// Matches: search (case-insensitive) di nama ATAU deskripsi, harga dalam [min, max], kategori cocok
func Matches(p domain.Product, c domain.Criteria, loweredSearch string) bool {
	matchesSearch := loweredSearch == "" ||
		strings.Contains(strings.ToLower(p.Name), loweredSearch) ||
		strings.Contains(strings.ToLower(p.Description), loweredSearch)
	matchesPrice := p.Price >= c.MinPrice && p.Price <= c.MaxPrice
	matchesCategory := IsAllCategory(c.Category) || p.Category == c.Category
	return matchesSearch && matchesPrice && matchesCategory
}

func IsAllCategory(category string) bool {
	return category == "" || strings.EqualFold(category, domain.CategoryAll)
}

// Sort mengurutkan salinan products secara stabil; key tidak dikenal jatuh ke featured
func Sort(products []domain.Product, key domain.SortKey) []domain.Product {
	sorted := make([]domain.Product, len(products))
	copy(sorted, products)

	var less func(i, j int) bool
	switch key {
	case domain.SortPriceLow:
		less = func(i, j int) bool { return sorted[i].Price < sorted[j].Price }
	case domain.SortPriceHigh:
		less = func(i, j int) bool { return sorted[i].Price > sorted[j].Price }
	case domain.SortRating:
		less = func(i, j int) bool { return sorted[i].Rating > sorted[j].Rating }
	default:
		less = func(i, j int) bool { return sorted[i].Featured && !sorted[j].Featured }
	}
	sort.SliceStable(sorted, less)
	return sorted
}

// NormalizeSortKey memetakan input kosong / tidak dikenal ke default featured
func NormalizeSortKey(key domain.SortKey) domain.SortKey {
	switch key {
	case domain.SortPriceLow, domain.SortPriceHigh, domain.SortRating:
		return key
	default:
		return domain.SortFeatured
	}
}
