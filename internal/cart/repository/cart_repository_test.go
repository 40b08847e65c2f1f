package repository

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/ridloal/storefront/internal/cart/domain"
	sessionDomain "github.com/ridloal/storefront/internal/session/domain"
	"github.com/ridloal/storefront/internal/session/repository"
	"github.com/ridloal/storefront/internal/session/repository/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const visitorID = "2b7c6a52-54a3-4e59-9b4e-0d6a8c1c9f11"

func addID(id int64) func(*domain.Cart) bool {
	return func(c *domain.Cart) bool { return c.Add(id) }
}

func TestCartRepository_LoadDefaults(t *testing.T) {
	ctx := context.TODO()

	t.Run("Missing key", func(t *testing.T) {
		repo := NewCartRepository(repository.NewMemoryStateStore())
		assert.True(t, repo.Load(ctx, visitorID).IsEmpty())
	})

	t.Run("Malformed value", func(t *testing.T) {
		store := repository.NewMemoryStateStore()
		require.NoError(t, store.Save(ctx, visitorID, sessionDomain.KeyCart, "{oops"))
		repo := NewCartRepository(store)
		assert.True(t, repo.Load(ctx, visitorID).IsEmpty())
	})

	t.Run("Store error", func(t *testing.T) {
		store := new(mocks.MockStateStore)
		store.On("Load", ctx, visitorID, sessionDomain.KeyCart).Return("", errors.New("connection refused")).Once()
		repo := NewCartRepository(store)
		assert.True(t, repo.Load(ctx, visitorID).IsEmpty())
		store.AssertExpectations(t)
	})
}

func TestCartRepository_Update(t *testing.T) {
	ctx := context.TODO()

	t.Run("Persists after mutation", func(t *testing.T) {
		store := repository.NewMemoryStateStore()
		repo := NewCartRepository(store)

		_, err := repo.Update(ctx, visitorID, addID(1))
		require.NoError(t, err)
		cart, err := repo.Update(ctx, visitorID, addID(3))
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 3}, cart.ProductIDs)

		raw, err := store.Load(ctx, visitorID, sessionDomain.KeyCart)
		require.NoError(t, err)
		assert.Equal(t, "[1,3]", raw)
		assert.Equal(t, []int64{1, 3}, repo.Load(ctx, visitorID).ProductIDs)
	})

	t.Run("No write when nothing changed", func(t *testing.T) {
		store := new(mocks.MockStateStore)
		store.On("Load", ctx, visitorID, sessionDomain.KeyCart).Return("[1]", nil).Twice()
		repo := NewCartRepository(store)

		cart, err := repo.Update(ctx, visitorID, addID(1))
		require.NoError(t, err)
		assert.Equal(t, []int64{1}, cart.ProductIDs)

		_, err = repo.Update(ctx, visitorID, func(c *domain.Cart) bool { return c.Remove(9) })
		require.NoError(t, err)
		store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Save failure", func(t *testing.T) {
		store := new(mocks.MockStateStore)
		store.On("Load", ctx, visitorID, sessionDomain.KeyCart).Return("", repository.ErrKeyNotFound).Once()
		store.On("Save", ctx, visitorID, sessionDomain.KeyCart, "[2]").Return(errors.New("disk full")).Once()
		repo := NewCartRepository(store)

		_, err := repo.Update(ctx, visitorID, addID(2))
		assert.ErrorIs(t, err, ErrCartPersistFailed)
		store.AssertExpectations(t)
	})

	t.Run("Concurrent adds are serialised per visitor", func(t *testing.T) {
		repo := NewCartRepository(repository.NewMemoryStateStore())

		var wg sync.WaitGroup
		for i := int64(1); i <= 50; i++ {
			wg.Add(1)
			go func(id int64) {
				defer wg.Done()
				_, err := repo.Update(ctx, visitorID, addID(id))
				assert.NoError(t, err)
			}(i)
		}
		wg.Wait()

		assert.Equal(t, 50, repo.Load(ctx, visitorID).Len())
	})
}

func TestCartRepository_Clear(t *testing.T) {
	ctx := context.TODO()
	store := repository.NewMemoryStateStore()
	repo := NewCartRepository(store)

	_, err := repo.Update(ctx, visitorID, addID(4))
	require.NoError(t, err)
	require.NoError(t, repo.Clear(ctx, visitorID))

	_, err = store.Load(ctx, visitorID, sessionDomain.KeyCart)
	assert.ErrorIs(t, err, repository.ErrKeyNotFound)
	assert.True(t, repo.Load(ctx, visitorID).IsEmpty())
}

func TestKeyedMutex_ReleasesEntries(t *testing.T) {
	k := newKeyedMutex()
	unlock := k.Lock("a")
	assert.Len(t, k.locks, 1)
	unlock()
	assert.Empty(t, k.locks)
}
