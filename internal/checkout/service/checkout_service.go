package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	cartDomain "github.com/ridloal/storefront/internal/cart/domain"
	cartService "github.com/ridloal/storefront/internal/cart/service"
	"github.com/ridloal/storefront/internal/checkout/domain"
	"github.com/ridloal/storefront/internal/checkout/repository"
	"github.com/ridloal/storefront/internal/messaging"
	"github.com/ridloal/storefront/internal/platform/logger"
)

var (
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrMissingField         = errors.New("missing required field")
)

// CheckoutService menjalankan alur Browsing -> PaymentSelection -> Confirmation -> Completed.
// Guard tidak pernah mengembalikan error, hanya Decision.
type CheckoutService interface {
	EnterPaymentSelection(ctx context.Context, visitorID string) (domain.Decision, *domain.PaymentView, error)
	SelectPayment(ctx context.Context, visitorID string, method domain.PaymentMethodID) (domain.Decision, error)
	EnterConfirmation(ctx context.Context, visitorID string) (domain.Decision, *domain.ConfirmationView, error)
	SubmitConfirmation(ctx context.Context, visitorID string, form domain.ConfirmationForm) (domain.Decision, *domain.Order, error)
	Finish(ctx context.Context, visitorID string) (domain.Decision, error)
}

type checkoutServiceImpl struct {
	carts       cartService.CartService
	payments    repository.PaymentRepository
	linker      *messaging.WhatsAppLinker
	submitDelay time.Duration
	now         func() time.Time
}

func NewCheckoutService(carts cartService.CartService, payments repository.PaymentRepository, linker *messaging.WhatsAppLinker, submitDelay time.Duration) CheckoutService {
	return &checkoutServiceImpl{
		carts:       carts,
		payments:    payments,
		linker:      linker,
		submitDelay: submitDelay,
		now:         time.Now,
	}
}

func (s *checkoutServiceImpl) EnterPaymentSelection(ctx context.Context, visitorID string) (domain.Decision, *domain.PaymentView, error) {
	cart := s.carts.LoadCart(ctx, visitorID)
	if cart.IsEmpty() {
		return domain.RedirectTo(domain.StateBrowsing), nil, nil
	}

	summary, err := s.carts.Summarize(ctx, cart)
	if err != nil {
		return domain.Decision{}, nil, err
	}
	view := &domain.PaymentView{
		Methods: domain.PaymentMethods(),
		Cart:    summary,
	}
	if selected, ok := s.payments.Load(ctx, visitorID); ok {
		view.Selected = &selected
		view.ShowQRCode = selected.ID == domain.PaymentQRIS
	}
	return domain.Allow(domain.StatePaymentSelection), view, nil
}

func (s *checkoutServiceImpl) SelectPayment(ctx context.Context, visitorID string, method domain.PaymentMethodID) (domain.Decision, error) {
	if s.carts.LoadCart(ctx, visitorID).IsEmpty() {
		return domain.RedirectTo(domain.StateBrowsing), nil
	}
	if _, ok := domain.LookupPaymentMethod(method); !ok {
		return domain.Decision{}, fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, method)
	}
	if err := s.payments.Save(ctx, visitorID, method); err != nil {
		return domain.Decision{}, err
	}
	return domain.RedirectTo(domain.StateConfirmation), nil
}

// confirmationGuard: cart kosong -> Browsing, belum pilih pembayaran -> PaymentSelection
func (s *checkoutServiceImpl) confirmationGuard(ctx context.Context, visitorID string) (domain.Decision, cartDomain.Cart, domain.PaymentMethod) {
	cart := s.carts.LoadCart(ctx, visitorID)
	if cart.IsEmpty() {
		return domain.RedirectTo(domain.StateBrowsing), cart, domain.PaymentMethod{}
	}
	method, ok := s.payments.Load(ctx, visitorID)
	if !ok {
		return domain.RedirectTo(domain.StatePaymentSelection), cart, domain.PaymentMethod{}
	}
	return domain.Allow(domain.StateConfirmation), cart, method
}

func (s *checkoutServiceImpl) EnterConfirmation(ctx context.Context, visitorID string) (domain.Decision, *domain.ConfirmationView, error) {
	decision, cart, method := s.confirmationGuard(ctx, visitorID)
	if decision.Redirect {
		return decision, nil, nil
	}
	summary, err := s.carts.Summarize(ctx, cart)
	if err != nil {
		return domain.Decision{}, nil, err
	}
	return decision, &domain.ConfirmationView{Payment: method, Cart: summary}, nil
}

func (s *checkoutServiceImpl) SubmitConfirmation(ctx context.Context, visitorID string, form domain.ConfirmationForm) (domain.Decision, *domain.Order, error) {
	decision, cart, method := s.confirmationGuard(ctx, visitorID)
	if decision.Redirect {
		return decision, nil, nil
	}

	form = normalizeForm(form)
	if err := validateForm(form); err != nil {
		return domain.Decision{}, nil, err
	}

	// Simulasi proses pembayaran
	if err := s.wait(ctx); err != nil {
		return domain.Decision{}, nil, err
	}

	summary, err := s.carts.Summarize(ctx, cart)
	if err != nil {
		return domain.Decision{}, nil, err
	}

	order := s.buildOrder(form, method, summary)
	logger.Info("Checkout: order %s confirmed for visitor %s via %s", order.Reference, visitorID, method.Name)
	return domain.Allow(domain.StateCompleted), order, nil
}

// Finish dipanggil setelah pesan WhatsApp dibuka: state dibersihkan, kembali ke katalog
func (s *checkoutServiceImpl) Finish(ctx context.Context, visitorID string) (domain.Decision, error) {
	if err := s.carts.ClearCart(ctx, visitorID); err != nil {
		return domain.Decision{}, err
	}
	if err := s.payments.Clear(ctx, visitorID); err != nil {
		logger.Error("Finish: failed to clear selected payment", err, map[string]interface{}{"visitor_id": visitorID})
		return domain.Decision{}, err
	}
	return domain.RedirectTo(domain.StateBrowsing), nil
}

func (s *checkoutServiceImpl) wait(ctx context.Context) error {
	if s.submitDelay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.submitDelay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *checkoutServiceImpl) buildOrder(form domain.ConfirmationForm, method domain.PaymentMethod, summary *cartDomain.CartSummary) *domain.Order {
	lines := make([]domain.OrderLine, len(summary.Items))
	msgLines := make([]messaging.OrderLine, len(summary.Items))
	for i, item := range summary.Items {
		lines[i] = domain.OrderLine{
			ProductID:      item.ID,
			Name:           item.Name,
			Price:          item.Price,
			FormattedPrice: item.FormattedPrice,
		}
		msgLines[i] = messaging.OrderLine{Name: item.Name, Price: item.Price}
	}

	msg := messaging.OrderMessage{
		CustomerName:  form.Name,
		Lines:         msgLines,
		Total:         summary.Totals.Total,
		PaymentMethod: method.Name,
		Email:         form.Email,
		Phone:         form.Phone,
		ProofFileName: form.ProofFileName,
	}

	return &domain.Order{
		Reference:     uuid.NewString(),
		Customer:      domain.Customer{Name: form.Name, Email: form.Email, Phone: form.Phone},
		ProofFileName: form.ProofFileName,
		PaymentMethod: method,
		Lines:         lines,
		Totals:        summary.Totals,
		Formatted:     summary.Formatted,
		MessageText:   msg.Text(),
		WhatsAppURL:   s.linker.OrderLink(msg),
		CompletedAt:   s.now(),
	}
}

func normalizeForm(f domain.ConfirmationForm) domain.ConfirmationForm {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Phone = strings.TrimSpace(f.Phone)
	f.ProofFileName = strings.TrimSpace(f.ProofFileName)
	return f
}

func validateForm(f domain.ConfirmationForm) error {
	switch {
	case f.Name == "":
		return fmt.Errorf("%w: name", ErrMissingField)
	case f.Email == "":
		return fmt.Errorf("%w: email", ErrMissingField)
	case f.Phone == "":
		return fmt.Errorf("%w: phone", ErrMissingField)
	case f.ProofFileName == "":
		return fmt.Errorf("%w: payment proof", ErrMissingField)
	}
	return nil
}
