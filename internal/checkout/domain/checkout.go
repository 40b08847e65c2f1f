package domain

import (
	"time"

	cartDomain "github.com/ridloal/storefront/internal/cart/domain"
	"github.com/ridloal/storefront/internal/platform/money"
)

// State langkah checkout, masing-masing punya path kanonik
type State string

const (
	StateBrowsing         State = "browsing"
	StatePaymentSelection State = "payment_selection"
	StateConfirmation     State = "confirmation"
	StateCompleted        State = "completed"
)

var statePaths = map[State]string{
	StateBrowsing:         "/",
	StatePaymentSelection: "/payment",
	StateConfirmation:     "/confirmation",
	StateCompleted:        "/complete",
}

func (s State) Path() string {
	return statePaths[s]
}

// Decision hasil guard. Redirect true berarti client harus pindah ke State.Path().
type Decision struct {
	State    State `json:"state"`
	Redirect bool  `json:"redirect"`
}

func Allow(s State) Decision {
	return Decision{State: s}
}

func RedirectTo(s State) Decision {
	return Decision{State: s, Redirect: true}
}

type PaymentMethodID string

const (
	PaymentQRIS  PaymentMethodID = "qris"
	PaymentDANA  PaymentMethodID = "dana"
	PaymentGoPay PaymentMethodID = "gopay"
	PaymentOVO   PaymentMethodID = "ovo"
)

type PaymentMethod struct {
	ID          PaymentMethodID `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	AccountInfo string          `json:"account_info"`
}

var paymentMethods = []PaymentMethod{
	{ID: PaymentQRIS, Name: "QRIS", Description: "Scan QRIS code with any e-wallet app", AccountInfo: "Scan the QR code to pay"},
	{ID: PaymentDANA, Name: "DANA", Description: "Pay with DANA e-wallet", AccountInfo: "DANA: 085624763201 (Vynnox Rzy)"},
	{ID: PaymentGoPay, Name: "GoPay", Description: "Pay with GoPay e-wallet", AccountInfo: "GoPay: 085624763201 (Vynnox Rzy)"},
	{ID: PaymentOVO, Name: "OVO", Description: "Pay with OVO e-wallet", AccountInfo: "OVO: 085624763201 (Vynnox Rzy)"},
}

// PaymentMethods mengembalikan salinan daftar metode yang diterima
func PaymentMethods() []PaymentMethod {
	out := make([]PaymentMethod, len(paymentMethods))
	copy(out, paymentMethods)
	return out
}

func LookupPaymentMethod(id PaymentMethodID) (PaymentMethod, bool) {
	for _, m := range paymentMethods {
		if m.ID == id {
			return m, true
		}
	}
	return PaymentMethod{}, false
}

type SelectPaymentRequest struct {
	Method PaymentMethodID `json:"method" form:"method" binding:"required"`
}

// ConfirmationForm data customer + nama file bukti bayar
type ConfirmationForm struct {
	Name          string `json:"name" form:"name"`
	Email         string `json:"email" form:"email"`
	Phone         string `json:"phone" form:"phone"`
	ProofFileName string `json:"proof_file_name" form:"proof_file_name"`
}

type PaymentView struct {
	Methods    []PaymentMethod         `json:"methods"`
	Selected   *PaymentMethod          `json:"selected,omitempty"`
	ShowQRCode bool                    `json:"show_qr_code"`
	Cart       *cartDomain.CartSummary `json:"cart"`
}

type ConfirmationView struct {
	Payment PaymentMethod           `json:"payment"`
	Cart    *cartDomain.CartSummary `json:"cart"`
}

type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type OrderLine struct {
	ProductID      int64  `json:"product_id"`
	Name           string `json:"name"`
	Price          int64  `json:"price"`
	FormattedPrice string `json:"formatted_price"`
}

// Order hasil konfirmasi; dikembalikan ke client, tidak disimpan
type Order struct {
	Reference     string                `json:"reference"` // UUID
	Customer      Customer              `json:"customer"`
	ProofFileName string                `json:"proof_file_name"`
	PaymentMethod PaymentMethod         `json:"payment_method"`
	Lines         []OrderLine           `json:"lines"`
	Totals        money.Totals          `json:"totals"`
	Formatted     money.FormattedTotals `json:"formatted"`
	MessageText   string                `json:"message_text"`
	WhatsAppURL   string                `json:"whatsapp_url"`
	CompletedAt   time.Time             `json:"completed_at"`
}

type CompletionResponse struct {
	State State  `json:"state"`
	Order *Order `json:"order"`
}
