package service

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	catalogDomain "github.com/ridloal/storefront/internal/catalog/domain"
	catalogRepo "github.com/ridloal/storefront/internal/catalog/repository"
	"github.com/ridloal/storefront/internal/platform/money"
	"github.com/ridloal/storefront/internal/telemetry/domain"
)

var ErrNoProducts = errors.New("catalog is empty")

// Recommender memilih produk acak setelah jeda "berpikir" yang disimulasikan
type Recommender interface {
	Recommend(ctx context.Context) (*domain.Recommendation, error)
}

type randomRecommender struct {
	repo  catalogRepo.ProductRepository
	delay time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

func NewRecommender(repo catalogRepo.ProductRepository, delay time.Duration, rng *rand.Rand) Recommender {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &randomRecommender{repo: repo, delay: delay, rng: rng}
}

func (r *randomRecommender) Recommend(ctx context.Context) (*domain.Recommendation, error) {
	if r.delay > 0 {
		timer := time.NewTimer(r.delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	products, err := r.repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, ErrNoProducts
	}

	r.mu.Lock()
	picked := products[r.rng.Intn(len(products))]
	r.mu.Unlock()

	return &domain.Recommendation{
		Product:   catalogDomain.ProductView{Product: picked, FormattedPrice: money.FormatIDR(picked.Price)},
		Simulated: true,
	}, nil
}
