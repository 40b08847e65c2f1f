package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ridloal/storefront/internal/checkout/domain"
	"github.com/ridloal/storefront/internal/platform/logger"
	sessionDomain "github.com/ridloal/storefront/internal/session/domain"
	"github.com/ridloal/storefront/internal/session/repository"
)

var ErrPaymentPersistFailed = errors.New("failed to persist selected payment")

// PaymentRepository menyimpan metode pembayaran terpilih di key selectedPayment
type PaymentRepository interface {
	// Load: nilai kosong, rusak, atau id tidak dikenal dianggap belum memilih
	Load(ctx context.Context, visitorID string) (domain.PaymentMethod, bool)
	Save(ctx context.Context, visitorID string, id domain.PaymentMethodID) error
	Clear(ctx context.Context, visitorID string) error
}

type statePaymentRepository struct {
	store repository.StateStore
}

func NewPaymentRepository(store repository.StateStore) PaymentRepository {
	return &statePaymentRepository{store: store}
}

func (r *statePaymentRepository) Load(ctx context.Context, visitorID string) (domain.PaymentMethod, bool) {
	raw, err := r.store.Load(ctx, visitorID, sessionDomain.KeySelectedPayment)
	if err != nil {
		if !errors.Is(err, repository.ErrKeyNotFound) {
			logger.Error("PaymentRepository.Load: state store error", err, map[string]interface{}{"visitor_id": visitorID})
		}
		return domain.PaymentMethod{}, false
	}

	var id domain.PaymentMethodID
	if err := json.Unmarshal([]byte(raw), &id); err != nil {
		// storefront lama menulis id mentah tanpa tanda kutip
		id = domain.PaymentMethodID(raw)
	}
	method, ok := domain.LookupPaymentMethod(id)
	if !ok {
		logger.Warn("PaymentRepository.Load: ignoring unknown payment method %q for visitor %s", raw, visitorID)
		return domain.PaymentMethod{}, false
	}
	return method, true
}

func (r *statePaymentRepository) Save(ctx context.Context, visitorID string, id domain.PaymentMethodID) error {
	b, err := json.Marshal(id)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPaymentPersistFailed, err)
	}
	if err := r.store.Save(ctx, visitorID, sessionDomain.KeySelectedPayment, string(b)); err != nil {
		logger.Error("PaymentRepository.Save: failed to save selected payment", err, map[string]interface{}{"visitor_id": visitorID})
		return fmt.Errorf("%w: %v", ErrPaymentPersistFailed, err)
	}
	return nil
}

func (r *statePaymentRepository) Clear(ctx context.Context, visitorID string) error {
	if err := r.store.Clear(ctx, visitorID, sessionDomain.KeySelectedPayment); err != nil {
		return fmt.Errorf("%w: %v", ErrPaymentPersistFailed, err)
	}
	return nil
}
