package mocks

import (
	"context"

	cDomain "github.com/ridloal/storefront/internal/cart/domain"
	"github.com/stretchr/testify/mock"
)

type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) GetCart(ctx context.Context, visitorID string) (*cDomain.CartSummary, error) {
	args := m.Called(ctx, visitorID)
	if res := args.Get(0); res != nil {
		return res.(*cDomain.CartSummary), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCartService) AddItem(ctx context.Context, visitorID string, productID int64) (*cDomain.CartSummary, error) {
	args := m.Called(ctx, visitorID, productID)
	if res := args.Get(0); res != nil {
		return res.(*cDomain.CartSummary), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCartService) RemoveItem(ctx context.Context, visitorID string, productID int64) (*cDomain.CartSummary, error) {
	args := m.Called(ctx, visitorID, productID)
	if res := args.Get(0); res != nil {
		return res.(*cDomain.CartSummary), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCartService) ClearCart(ctx context.Context, visitorID string) error {
	args := m.Called(ctx, visitorID)
	return args.Error(0)
}

func (m *MockCartService) Summarize(ctx context.Context, cart cDomain.Cart) (*cDomain.CartSummary, error) {
	args := m.Called(ctx, cart)
	if res := args.Get(0); res != nil {
		return res.(*cDomain.CartSummary), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCartService) LoadCart(ctx context.Context, visitorID string) cDomain.Cart {
	args := m.Called(ctx, visitorID)
	return args.Get(0).(cDomain.Cart)
}
