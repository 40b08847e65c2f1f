package service

import (
	"context"

	"github.com/ridloal/storefront/internal/cart/domain"
	"github.com/ridloal/storefront/internal/cart/repository"
	catalogDomain "github.com/ridloal/storefront/internal/catalog/domain"
	catalogRepo "github.com/ridloal/storefront/internal/catalog/repository"
	"github.com/ridloal/storefront/internal/platform/logger"
	"github.com/ridloal/storefront/internal/platform/money"
)

type CartService interface {
	GetCart(ctx context.Context, visitorID string) (*domain.CartSummary, error)
	AddItem(ctx context.Context, visitorID string, productID int64) (*domain.CartSummary, error)
	RemoveItem(ctx context.Context, visitorID string, productID int64) (*domain.CartSummary, error)
	ClearCart(ctx context.Context, visitorID string) error
	// Summarize me-resolve cart terhadap katalog, dipakai juga oleh checkout
	Summarize(ctx context.Context, cart domain.Cart) (*domain.CartSummary, error)
	LoadCart(ctx context.Context, visitorID string) domain.Cart
}

type cartServiceImpl struct {
	cartRepo    repository.CartRepository
	productRepo catalogRepo.ProductRepository
}

func NewCartService(cartRepo repository.CartRepository, productRepo catalogRepo.ProductRepository) CartService {
	return &cartServiceImpl{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

func (s *cartServiceImpl) LoadCart(ctx context.Context, visitorID string) domain.Cart {
	return s.cartRepo.Load(ctx, visitorID)
}

func (s *cartServiceImpl) GetCart(ctx context.Context, visitorID string) (*domain.CartSummary, error) {
	return s.Summarize(ctx, s.cartRepo.Load(ctx, visitorID))
}

func (s *cartServiceImpl) AddItem(ctx context.Context, visitorID string, productID int64) (*domain.CartSummary, error) {
	// Pastikan produk ada di katalog sebelum menyentuh state
	if _, err := s.productRepo.GetProductByID(ctx, productID); err != nil {
		return nil, err
	}

	cart, err := s.cartRepo.Update(ctx, visitorID, func(c *domain.Cart) bool {
		return c.Add(productID)
	})
	if err != nil {
		return nil, err
	}
	logger.Info("Cart: visitor %s now has %d item(s)", visitorID, cart.Len())
	return s.Summarize(ctx, cart)
}

func (s *cartServiceImpl) RemoveItem(ctx context.Context, visitorID string, productID int64) (*domain.CartSummary, error) {
	cart, err := s.cartRepo.Update(ctx, visitorID, func(c *domain.Cart) bool {
		return c.Remove(productID)
	})
	if err != nil {
		return nil, err
	}
	return s.Summarize(ctx, cart)
}

func (s *cartServiceImpl) ClearCart(ctx context.Context, visitorID string) error {
	return s.cartRepo.Clear(ctx, visitorID)
}

// Summarize: id yang tidak ada di katalog dibuang dulu, baru dijumlahkan
func (s *cartServiceImpl) Summarize(ctx context.Context, cart domain.Cart) (*domain.CartSummary, error) {
	products, err := s.productRepo.ListProducts(ctx)
	if err != nil {
		logger.Error("Summarize: failed to list catalog", err, nil)
		return nil, err
	}
	byID := make(map[int64]catalogDomain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	items := make([]catalogDomain.ProductView, 0, cart.Len())
	var subtotal int64
	for _, id := range cart.ProductIDs {
		p, ok := byID[id]
		if !ok {
			continue
		}
		items = append(items, catalogDomain.ProductView{Product: p, FormattedPrice: money.FormatIDR(p.Price)})
		subtotal += p.Price
	}

	totals := money.ComputeTotals(subtotal)
	return &domain.CartSummary{
		Items:     items,
		Count:     len(items),
		Totals:    totals,
		Formatted: totals.Formatted(),
	}, nil
}
