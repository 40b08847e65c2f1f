package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// TaxRate PPN yang dikenakan pada subtotal pesanan
var TaxRate = decimal.NewFromFloat(0.1)

var idPrinter = message.NewPrinter(language.Indonesian)

// FormatIDR memformat rupiah penuh seperti Intl id-ID: "Rp\u00a01.500.000" (no-break space, tanpa desimal)
func FormatIDR(amount int64) string {
	if amount < 0 {
		return "-Rp\u00a0" + idPrinter.Sprintf("%d", -amount)
	}
	return "Rp\u00a0" + idPrinter.Sprintf("%d", amount)
}

type Totals struct {
	Subtotal int64 `json:"subtotal"`
	Tax      int64 `json:"tax"`
	Total    int64 `json:"total"`
}

// ComputeTotals: tax = subtotal x 0.1, total = subtotal x 1.1, dibulatkan ke rupiah terdekat
func ComputeTotals(subtotal int64) Totals {
	sub := decimal.NewFromInt(subtotal)
	tax := sub.Mul(TaxRate).Round(0)
	total := sub.Mul(decimal.NewFromInt(1).Add(TaxRate)).Round(0)
	return Totals{
		Subtotal: subtotal,
		Tax:      tax.IntPart(),
		Total:    total.IntPart(),
	}
}

type FormattedTotals struct {
	Subtotal string `json:"subtotal"`
	Tax      string `json:"tax"`
	Total    string `json:"total"`
}

func (t Totals) Formatted() FormattedTotals {
	return FormattedTotals{
		Subtotal: FormatIDR(t.Subtotal),
		Tax:      FormatIDR(t.Tax),
		Total:    FormatIDR(t.Total),
	}
}
