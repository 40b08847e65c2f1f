package service

import (
	"context"

	"github.com/ridloal/storefront/internal/catalog/domain"
	"github.com/ridloal/storefront/internal/catalog/repository"
	"github.com/ridloal/storefront/internal/messaging"
	"github.com/ridloal/storefront/internal/platform/logger"
	"github.com/ridloal/storefront/internal/platform/money"
)

const maxRelatedProducts = 3

type ProductService interface {
	ListProducts(ctx context.Context, req domain.ListProductsRequest) ([]domain.ProductView, error)
	GetProductDetails(ctx context.Context, productID int64) (*domain.ProductDetailResponse, error)
	Categories(ctx context.Context) ([]string, error)
}

type productServiceImpl struct {
	repo   repository.ProductRepository
	linker *messaging.WhatsAppLinker
}

func NewProductService(repo repository.ProductRepository, linker *messaging.WhatsAppLinker) ProductService {
	return &productServiceImpl{
		repo:   repo,
		linker: linker,
	}
}

// CriteriaFromRequest mengisi default slider harga (0 - 5.000.000) dan kategori "all"
func CriteriaFromRequest(req domain.ListProductsRequest) domain.Criteria {
	c := domain.DefaultCriteria()
	c.Search = req.Search
	if req.MinPrice != nil {
		c.MinPrice = *req.MinPrice
	}
	if req.MaxPrice != nil && *req.MaxPrice > 0 {
		c.MaxPrice = *req.MaxPrice
	}
	if req.Category != "" {
		c.Category = req.Category
	}
	return c
}

func (s *productServiceImpl) ListProducts(ctx context.Context, req domain.ListProductsRequest) ([]domain.ProductView, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		logger.Error("ListProducts: repository error", err, nil)
		return nil, err
	}

	filtered := Filter(products, CriteriaFromRequest(req))
	sorted := Sort(filtered, NormalizeSortKey(req.Sort))
	return toViews(sorted), nil
}

func (s *productServiceImpl) GetProductDetails(ctx context.Context, productID int64) (*domain.ProductDetailResponse, error) {
	product, err := s.repo.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		logger.Error("GetProductDetails: failed to list related products", err, nil)
		return nil, err
	}

	// Produk terkait: kategori sama, bukan produk itu sendiri, maksimal 3
	related := make([]domain.Product, 0, maxRelatedProducts)
	for _, p := range products {
		if len(related) == maxRelatedProducts {
			break
		}
		if p.Category == product.Category && p.ID != product.ID {
			related = append(related, p)
		}
	}

	return &domain.ProductDetailResponse{
		Product:         toView(*product),
		RelatedProducts: toViews(related),
		InquiryURL:      s.linker.InquiryLink(product.Name, product.Price),
	}, nil
}

// Categories: sentinel "all" diikuti kategori unik sesuai urutan katalog
func (s *productServiceImpl) Categories(ctx context.Context) ([]string, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	categories := []string{domain.CategoryAll}
	for _, p := range products {
		if !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
	}
	return categories, nil
}

func toView(p domain.Product) domain.ProductView {
	return domain.ProductView{Product: p, FormattedPrice: money.FormatIDR(p.Price)}
}

func toViews(products []domain.Product) []domain.ProductView {
	views := make([]domain.ProductView, len(products))
	for i, p := range products {
		views[i] = toView(p)
	}
	return views
}
