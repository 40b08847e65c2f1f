package mocks

import (
	"context"

	pDomain "github.com/ridloal/storefront/internal/catalog/domain"
	"github.com/stretchr/testify/mock"
)

type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) ListProducts(ctx context.Context, req pDomain.ListProductsRequest) ([]pDomain.ProductView, error) {
	args := m.Called(ctx, req)
	if res := args.Get(0); res != nil {
		return res.([]pDomain.ProductView), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductService) GetProductDetails(ctx context.Context, productID int64) (*pDomain.ProductDetailResponse, error) {
	args := m.Called(ctx, productID)
	if res := args.Get(0); res != nil {
		return res.(*pDomain.ProductDetailResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductService) Categories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if res := args.Get(0); res != nil {
		return res.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}
