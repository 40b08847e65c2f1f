package service

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	catalogDomain "github.com/ridloal/storefront/internal/catalog/domain"
	catalogRepo "github.com/ridloal/storefront/internal/catalog/repository"
	"github.com/ridloal/storefront/internal/catalog/repository/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func fixedClock(hour int) func() time.Time {
	return func() time.Time {
		return time.Date(2024, 5, 1, hour, 30, 0, 0, time.Local)
	}
}

func TestBaseVisitorRange(t *testing.T) {
	cases := []struct {
		hour       int
		lowest, sp int
	}{
		{9, 2000, 1000}, {17, 2000, 1000},
		{18, 1500, 800}, {22, 1500, 800},
		{23, 800, 500}, {0, 800, 500}, {8, 800, 500},
	}
	for _, tc := range cases {
		lowest, span := BaseVisitorRange(tc.hour)
		assert.Equal(t, tc.lowest, lowest, "hour %d", tc.hour)
		assert.Equal(t, tc.sp, span, "hour %d", tc.hour)
	}
}

func TestCustomersFor(t *testing.T) {
	assert.Equal(t, 5432+300, CustomersFor(2000))
	assert.Equal(t, 5432+149, CustomersFor(999))
	assert.Equal(t, 5432, CustomersFor(0))
}

func TestSimulator_Detect(t *testing.T) {
	for _, hour := range []int{3, 12, 20} {
		sim := NewSimulator(WithRand(rand.New(rand.NewSource(int64(hour)))), WithClock(fixedClock(hour)))
		lowest, span := BaseVisitorRange(hour)
		for i := 0; i < 50; i++ {
			snap := sim.Detect()
			assert.GreaterOrEqual(t, snap.Visitors, lowest)
			assert.Less(t, snap.Visitors, lowest+span)
			assert.Equal(t, CustomersFor(snap.Visitors), snap.Customers)
			assert.True(t, snap.Simulated)
		}
	}
}

func TestSimulator_PageVisitors(t *testing.T) {
	sim := NewSimulator(WithRand(rand.New(rand.NewSource(7))))
	for i := 0; i < 100; i++ {
		pv := sim.PageVisitors()
		assert.GreaterOrEqual(t, pv.Visitors, 1000)
		assert.Less(t, pv.Visitors, 1500)
		assert.True(t, pv.Simulated)
	}
}

func TestSimulator_Fluctuate(t *testing.T) {
	sim := NewSimulator(WithRand(rand.New(rand.NewSource(42))), WithClock(fixedClock(12)))
	prev := sim.Snapshot().Visitors
	for i := 0; i < 200; i++ {
		snap := sim.Fluctuate()
		delta := snap.Visitors - prev
		assert.GreaterOrEqual(t, delta, -3)
		assert.LessOrEqual(t, delta, 6)
		assert.Equal(t, sim.Snapshot(), snap)
		prev = snap.Visitors
	}
}

func TestSimulator_FluctuateNeverNegative(t *testing.T) {
	s := NewSimulator(WithRand(rand.New(rand.NewSource(1)))).(*simulator)
	s.current.Visitors = 0
	for i := 0; i < 100; i++ {
		assert.GreaterOrEqual(t, s.Fluctuate().Visitors, 0)
		s.current.Visitors = 0
	}
}

func TestSimulator_Subscribe(t *testing.T) {
	sim := NewSimulator()
	updates, unsubscribe := sim.Subscribe()

	want := sim.Fluctuate()
	select {
	case got := <-updates:
		assert.Equal(t, want, got)
	case <-time.After(time.Second):
		t.Fatal("no snapshot received")
	}

	// Subscriber lambat: broadcast kedua dan ketiga tidak boleh blocking
	sim.Fluctuate()
	sim.Fluctuate()
	assert.Len(t, updates, 1)

	unsubscribe()
	unsubscribe()
	<-updates
	_, open := <-updates
	assert.False(t, open)

	assert.NotPanics(t, func() { sim.Detect() })
}

func TestSimulator_StartStop(t *testing.T) {
	sim := NewSimulator()
	require.NoError(t, sim.Start())

	ctx := sim.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
}

func TestRecommender(t *testing.T) {
	ctx := context.TODO()
	repo, err := catalogRepo.NewStaticProductRepository("")
	require.NoError(t, err)

	t.Run("Picks a catalog product", func(t *testing.T) {
		rec := NewRecommender(repo, time.Millisecond, rand.New(rand.NewSource(3)))
		got, err := rec.Recommend(ctx)
		require.NoError(t, err)
		assert.True(t, got.Simulated)

		_, err = repo.GetProductByID(ctx, got.Product.ID)
		assert.NoError(t, err)
		assert.NotEmpty(t, got.Product.FormattedPrice)
	})

	t.Run("Cancelled during delay", func(t *testing.T) {
		rec := NewRecommender(repo, time.Hour, nil)
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		got, err := rec.Recommend(cctx)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, got)
	})

	t.Run("Empty catalog", func(t *testing.T) {
		mockRepo := new(mocks.MockProductRepository)
		mockRepo.On("ListProducts", ctx).Return([]catalogDomain.Product{}, nil).Once()

		_, err := NewRecommender(mockRepo, 0, nil).Recommend(ctx)
		assert.ErrorIs(t, err, ErrNoProducts)
	})

	t.Run("Catalog error", func(t *testing.T) {
		mockRepo := new(mocks.MockProductRepository)
		mockRepo.On("ListProducts", ctx).Return(nil, errors.New("boom")).Once()

		_, err := NewRecommender(mockRepo, 0, nil).Recommend(ctx)
		assert.Error(t, err)
	})
}
