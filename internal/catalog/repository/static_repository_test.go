package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ridloal/storefront/internal/catalog/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedCatalog(t *testing.T) {
	repo, err := NewStaticProductRepository("")
	require.NoError(t, err)

	products, err := repo.ListProducts(context.TODO())
	require.NoError(t, err)
	require.Len(t, products, 8)
	assert.Equal(t, int64(1), products[0].ID)
	assert.Equal(t, "SEO Optimization Basic", products[1].Name)
	assert.NotNil(t, products[0].Details)

	p, err := repo.GetProductByID(context.TODO(), 6)
	require.NoError(t, err)
	assert.Equal(t, int64(5000000), p.Price)
	assert.True(t, p.Featured)
}

func TestGetProductByID_NotFound(t *testing.T) {
	repo, err := NewStaticProductRepository("")
	require.NoError(t, err)

	_, err = repo.GetProductByID(context.TODO(), 99)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestListProducts_ReturnsCopy(t *testing.T) {
	repo, err := NewProductRepository([]domain.Product{{ID: 1, Name: "A", Price: 10}})
	require.NoError(t, err)

	first, _ := repo.ListProducts(context.TODO())
	first[0].Name = "mutated"

	second, _ := repo.ListProducts(context.TODO())
	assert.Equal(t, "A", second[0].Name)
}

func TestNewProductRepository_Validation(t *testing.T) {
	cases := map[string][]domain.Product{
		"duplicate id":   {{ID: 1, Name: "A"}, {ID: 1, Name: "B"}},
		"non-positive":   {{ID: 0, Name: "A"}},
		"negative price": {{ID: 1, Name: "A", Price: -1}},
	}
	for name, products := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewProductRepository(products)
			assert.Error(t, err)
		})
	}
}

func TestNewStaticProductRepository_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	content := []byte("products:\n  - id: 1\n    name: SEO Optimization\n    description: Improve your website ranking\n    price: 2500000\n    category: Website\n")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	repo, err := NewStaticProductRepository(path)
	require.NoError(t, err)
	products, err := repo.ListProducts(context.TODO())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Website", products[0].Category)

	_, err = NewStaticProductRepository(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = ParseCatalog([]byte("products: [::"))
	assert.Error(t, err)
}
