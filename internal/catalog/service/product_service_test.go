package service

import (
	"context"
	"errors"
	"testing"

	"github.com/ridloal/storefront/internal/catalog/domain"
	pRepo "github.com/ridloal/storefront/internal/catalog/repository"
	"github.com/ridloal/storefront/internal/catalog/repository/mocks"
	"github.com/ridloal/storefront/internal/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 { return &v }

func TestProductService_ListProducts(t *testing.T) {
	ctx := context.TODO()

	t.Run("Filters and sorts", func(t *testing.T) {
		mockRepo := new(mocks.MockProductRepository)
		svc := NewProductService(mockRepo, messaging.NewWhatsAppLinker(""))
		mockRepo.On("ListProducts", ctx).Return(testCatalog, nil).Once()

		views, err := svc.ListProducts(ctx, domain.ListProductsRequest{
			Category: "Social Media",
			Sort:     domain.SortPriceHigh,
		})

		require.NoError(t, err)
		require.Len(t, views, 2)
		assert.Equal(t, int64(6), views[0].ID)
		assert.Equal(t, "Rp\u00a02.000.000", views[0].FormattedPrice)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Zero max price means default upper bound", func(t *testing.T) {
		c := CriteriaFromRequest(domain.ListProductsRequest{MinPrice: int64Ptr(100), MaxPrice: int64Ptr(0)})
		assert.Equal(t, int64(100), c.MinPrice)
		assert.Equal(t, domain.DefaultMaxPrice, c.MaxPrice)
		assert.Equal(t, domain.CategoryAll, c.Category)
	})

	t.Run("Repository error", func(t *testing.T) {
		mockRepo := new(mocks.MockProductRepository)
		svc := NewProductService(mockRepo, messaging.NewWhatsAppLinker(""))
		mockRepo.On("ListProducts", ctx).Return(nil, errors.New("catalog unavailable")).Once()

		views, err := svc.ListProducts(ctx, domain.ListProductsRequest{})
		assert.Error(t, err)
		assert.Nil(t, views)
	})
}

func TestProductService_GetProductDetails(t *testing.T) {
	ctx := context.TODO()
	repo, err := pRepo.NewStaticProductRepository("")
	require.NoError(t, err)
	svc := NewProductService(repo, messaging.NewWhatsAppLinker("628111"))

	t.Run("Related products share category, exclude self, max 3", func(t *testing.T) {
		resp, err := svc.GetProductDetails(ctx, 1)
		require.NoError(t, err)

		assert.Equal(t, "Paket Social Media Management", resp.Product.Name)
		require.Len(t, resp.RelatedProducts, 2)
		assert.Equal(t, int64(7), resp.RelatedProducts[0].ID)
		assert.Equal(t, int64(8), resp.RelatedProducts[1].ID)
		assert.Contains(t, resp.InquiryURL, "https://wa.me/628111?text=")
	})

	t.Run("Product not found", func(t *testing.T) {
		resp, err := svc.GetProductDetails(ctx, 404)
		assert.ErrorIs(t, err, pRepo.ErrProductNotFound)
		assert.Nil(t, resp)
	})
}

func TestProductService_Categories(t *testing.T) {
	ctx := context.TODO()
	mockRepo := new(mocks.MockProductRepository)
	svc := NewProductService(mockRepo, messaging.NewWhatsAppLinker(""))
	mockRepo.On("ListProducts", ctx).Return(testCatalog, nil).Once()

	categories, err := svc.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"all", "Social Media", "Website", "Advertising", "Content", "Email"}, categories)
}
