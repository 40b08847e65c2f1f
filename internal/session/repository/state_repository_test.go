package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStateStore(t *testing.T) {
	ctx := context.Background()

	t.Run("Load missing key", func(t *testing.T) {
		store := NewMemoryStateStore()
		_, err := store.Load(ctx, "v1", "cart")
		assert.ErrorIs(t, err, ErrKeyNotFound)
	})

	t.Run("Save then load, isolated per visitor", func(t *testing.T) {
		store := NewMemoryStateStore()
		require.NoError(t, store.Save(ctx, "v1", "cart", "[1,3]"))
		require.NoError(t, store.Save(ctx, "v2", "cart", "[2]"))

		v1, err := store.Load(ctx, "v1", "cart")
		require.NoError(t, err)
		assert.Equal(t, "[1,3]", v1)

		v2, err := store.Load(ctx, "v2", "cart")
		require.NoError(t, err)
		assert.Equal(t, "[2]", v2)
	})

	t.Run("Clear removes the key only", func(t *testing.T) {
		store := NewMemoryStateStore()
		require.NoError(t, store.Save(ctx, "v1", "cart", "[1]"))
		require.NoError(t, store.Save(ctx, "v1", "selectedPayment", `"qris"`))

		require.NoError(t, store.Clear(ctx, "v1", "cart"))
		_, err := store.Load(ctx, "v1", "cart")
		assert.ErrorIs(t, err, ErrKeyNotFound)

		payment, err := store.Load(ctx, "v1", "selectedPayment")
		require.NoError(t, err)
		assert.Equal(t, `"qris"`, payment)

		assert.NoError(t, store.Clear(ctx, "unknown", "cart"))
	})
}

func TestMemoryStateStore_PurgeIdle(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	store := newMemoryStateStore(func() time.Time { return now })

	require.NoError(t, store.Save(ctx, "old", "cart", "[1]"))
	require.NoError(t, store.Save(ctx, "old", "selectedPayment", `"ovo"`))

	now = now.Add(48 * time.Hour)
	require.NoError(t, store.Save(ctx, "fresh", "cart", "[2]"))

	purged, err := store.PurgeIdle(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(2), purged)

	_, err = store.Load(ctx, "old", "cart")
	assert.ErrorIs(t, err, ErrKeyNotFound)
	fresh, err := store.Load(ctx, "fresh", "cart")
	require.NoError(t, err)
	assert.Equal(t, "[2]", fresh)
}
