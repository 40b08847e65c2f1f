// Package domain berisi tipe telemetry simulasi. Semua angka di sini acak,
// bukan hasil pengukuran, dan setiap payload ditandai Simulated.
package domain

import (
	"time"

	catalogDomain "github.com/ridloal/storefront/internal/catalog/domain"
)

const (
	// BaseCustomers ditambahkan ke hasil konversi visitor
	BaseCustomers = 5432
	// ConversionPercent: 15% visitor dianggap jadi customer
	ConversionPercent = 15

	PageVisitorsMin  = 1000
	PageVisitorsSpan = 500

	FluctuationMin  = -3
	FluctuationSpan = 10 // delta dalam [-3, +6]
)

type PageVisitors struct {
	Visitors  int  `json:"visitors"`
	Simulated bool `json:"simulated"`
}

// Snapshot angka live counter
type Snapshot struct {
	Visitors   int       `json:"visitors"`
	Customers  int       `json:"customers"`
	DetectedAt time.Time `json:"detected_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Simulated  bool      `json:"simulated"`
}

type Recommendation struct {
	Product   catalogDomain.ProductView `json:"product"`
	Simulated bool                      `json:"simulated"`
}
