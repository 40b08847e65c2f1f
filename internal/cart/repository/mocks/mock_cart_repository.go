package mocks

import (
	"context"

	cDomain "github.com/ridloal/storefront/internal/cart/domain"
	"github.com/stretchr/testify/mock"
)

type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) Load(ctx context.Context, visitorID string) cDomain.Cart {
	args := m.Called(ctx, visitorID)
	return args.Get(0).(cDomain.Cart)
}

// Update menjalankan mutate terhadap cart yang dikembalikan mock (argumen ke-0)
func (m *MockCartRepository) Update(ctx context.Context, visitorID string, mutate func(*cDomain.Cart) bool) (cDomain.Cart, error) {
	args := m.Called(ctx, visitorID, mutate)
	cart := args.Get(0).(cDomain.Cart)
	cart.ProductIDs = append([]int64(nil), cart.ProductIDs...)
	mutate(&cart)
	return cart, args.Error(1)
}

func (m *MockCartRepository) Clear(ctx context.Context, visitorID string) error {
	args := m.Called(ctx, visitorID)
	return args.Error(0)
}
