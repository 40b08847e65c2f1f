package repository

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/ridloal/storefront/internal/catalog/domain"
	"github.com/ridloal/storefront/internal/platform/logger"
	"gopkg.in/yaml.v3"
)

var ErrProductNotFound = errors.New("product not found")

//go:embed catalog.yaml
var embeddedCatalog []byte

type ProductRepository interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProductByID(ctx context.Context, id int64) (*domain.Product, error)
}

// staticProductRepository menyimpan katalog immutable yang dimuat sekali saat start
type staticProductRepository struct {
	products []domain.Product
	byID     map[int64]int
}

type catalogFile struct {
	Products []domain.Product `yaml:"products"`
}

// NewStaticProductRepository memuat katalog dari path YAML, atau katalog bawaan jika path kosong
func NewStaticProductRepository(path string) (ProductRepository, error) {
	data := embeddedCatalog
	if path != "" {
		fileData, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog: %w", err)
		}
		data = fileData
		logger.Info("Loading catalog from " + path)
	}
	return ParseCatalog(data)
}

func ParseCatalog(data []byte) (ProductRepository, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return NewProductRepository(file.Products)
}

// NewProductRepository memvalidasi id unik & positif serta harga tidak negatif
func NewProductRepository(products []domain.Product) (ProductRepository, error) {
	repo := &staticProductRepository{
		products: make([]domain.Product, len(products)),
		byID:     make(map[int64]int, len(products)),
	}
	copy(repo.products, products)
	for i, p := range repo.products {
		if p.ID <= 0 {
			return nil, fmt.Errorf("invalid catalog: product %q has non-positive id %d", p.Name, p.ID)
		}
		if p.Price < 0 {
			return nil, fmt.Errorf("invalid catalog: product %d has negative price", p.ID)
		}
		if _, dup := repo.byID[p.ID]; dup {
			return nil, fmt.Errorf("invalid catalog: duplicate product id %d", p.ID)
		}
		repo.byID[p.ID] = i
	}
	return repo, nil
}

func (r *staticProductRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products := make([]domain.Product, len(r.products))
	copy(products, r.products)
	return products, nil
}

func (r *staticProductRepository) GetProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	idx, ok := r.byID[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	p := r.products[idx]
	return &p, nil
}
