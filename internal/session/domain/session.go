package domain

import "time"

// Key-key state visitor, sama dengan key localStorage di storefront lama
const (
	KeyCart            = "cart"
	KeySelectedPayment = "selectedPayment"
)

// Visitor adalah browser anonim, scope dari state store
type Visitor struct {
	ID        string    `json:"id"` // UUID
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
