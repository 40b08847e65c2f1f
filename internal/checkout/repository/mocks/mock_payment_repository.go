package mocks

import (
	"context"

	coDomain "github.com/ridloal/storefront/internal/checkout/domain"
	"github.com/stretchr/testify/mock"
)

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Load(ctx context.Context, visitorID string) (coDomain.PaymentMethod, bool) {
	args := m.Called(ctx, visitorID)
	return args.Get(0).(coDomain.PaymentMethod), args.Bool(1)
}

func (m *MockPaymentRepository) Save(ctx context.Context, visitorID string, id coDomain.PaymentMethodID) error {
	args := m.Called(ctx, visitorID, id)
	return args.Error(0)
}

func (m *MockPaymentRepository) Clear(ctx context.Context, visitorID string) error {
	args := m.Called(ctx, visitorID)
	return args.Error(0)
}
