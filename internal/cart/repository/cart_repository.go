package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ridloal/storefront/internal/cart/domain"
	"github.com/ridloal/storefront/internal/platform/logger"
	sessionDomain "github.com/ridloal/storefront/internal/session/domain"
	"github.com/ridloal/storefront/internal/session/repository"
)

var ErrCartPersistFailed = errors.New("failed to persist cart")

type CartRepository interface {
	// Load tidak pernah gagal: key kosong, JSON rusak, atau error store -> cart kosong
	Load(ctx context.Context, visitorID string) domain.Cart
	// Update menjalankan read-modify-write yang diserialisasi per visitor.
	// mutate mengembalikan false jika tidak ada perubahan, dan tidak ada write ke store.
	Update(ctx context.Context, visitorID string, mutate func(*domain.Cart) bool) (domain.Cart, error)
	Clear(ctx context.Context, visitorID string) error
}

type stateCartRepository struct {
	store repository.StateStore
	locks *keyedMutex
}

func NewCartRepository(store repository.StateStore) CartRepository {
	return &stateCartRepository{
		store: store,
		locks: newKeyedMutex(),
	}
}

func (r *stateCartRepository) Load(ctx context.Context, visitorID string) domain.Cart {
	raw, err := r.store.Load(ctx, visitorID, sessionDomain.KeyCart)
	if err != nil {
		if !errors.Is(err, repository.ErrKeyNotFound) {
			logger.Error("CartRepository.Load: state store error, using empty cart", err, map[string]interface{}{"visitor_id": visitorID})
		}
		return domain.Cart{}
	}
	cart, err := domain.ParseCart(raw)
	if err != nil {
		logger.Warn("CartRepository.Load: malformed cart for visitor %s, using empty cart: %v", visitorID, err)
		return domain.Cart{}
	}
	return cart
}

func (r *stateCartRepository) Update(ctx context.Context, visitorID string, mutate func(*domain.Cart) bool) (domain.Cart, error) {
	unlock := r.locks.Lock(visitorID)
	defer unlock()

	cart := r.Load(ctx, visitorID)
	if !mutate(&cart) {
		return cart, nil
	}

	raw, err := cart.Marshal()
	if err != nil {
		return cart, fmt.Errorf("%w: %v", ErrCartPersistFailed, err)
	}
	if err := r.store.Save(ctx, visitorID, sessionDomain.KeyCart, raw); err != nil {
		logger.Error("CartRepository.Update: failed to save cart", err, map[string]interface{}{"visitor_id": visitorID})
		return cart, fmt.Errorf("%w: %v", ErrCartPersistFailed, err)
	}
	return cart, nil
}

func (r *stateCartRepository) Clear(ctx context.Context, visitorID string) error {
	unlock := r.locks.Lock(visitorID)
	defer unlock()

	if err := r.store.Clear(ctx, visitorID, sessionDomain.KeyCart); err != nil {
		logger.Error("CartRepository.Clear: failed to clear cart", err, map[string]interface{}{"visitor_id": visitorID})
		return fmt.Errorf("%w: %v", ErrCartPersistFailed, err)
	}
	return nil
}

// keyedMutex: satu mutex per visitor, dibuang lagi saat tidak ada yang memegang
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*refMutex
}

type refMutex struct {
	sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*refMutex)}
}

func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &refMutex{}
		k.locks[key] = m
	}
	m.refs++
	k.mu.Unlock()

	m.Lock()
	return func() {
		m.Unlock()
		k.mu.Lock()
		m.refs--
		if m.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
