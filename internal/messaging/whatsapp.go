// Package messaging menyusun deep link wa.me untuk konfirmasi pesanan dan pertanyaan produk.
package messaging

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/ridloal/storefront/internal/platform/money"
)

const (
	baseURL           = "https://wa.me/"
	DefaultProofName  = "bukti_transfer.jpg"
	DefaultShopNumber = "6285624763201"
)

type OrderLine struct {
	Name  string
	Price int64
}

type OrderMessage struct {
	CustomerName  string
	Lines         []OrderLine
	Total         int64
	PaymentMethod string // nama tampilan, bukan id
	Email         string
	Phone         string
	ProofFileName string
}

type WhatsAppLinker struct {
	number string
}

func NewWhatsAppLinker(number string) *WhatsAppLinker {
	if number == "" {
		number = DefaultShopNumber
	}
	return &WhatsAppLinker{number: strings.TrimPrefix(number, "+")}
}

// Link membuat https://wa.me/<nomor>?text=<pesan>, spasi di-encode sebagai %20
func (l *WhatsAppLinker) Link(text string) string {
	encoded := strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
	return baseURL + l.number + "?text=" + encoded
}

func (m OrderMessage) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Halo, saya %s telah melakukan pembayaran untuk:\n\n", m.CustomerName)
	for i, line := range m.Lines {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "- %s (%s)", line.Name, money.FormatIDR(line.Price))
	}
	fmt.Fprintf(&b, "\n\nTotal: %s", money.FormatIDR(m.Total))
	fmt.Fprintf(&b, "\n\nMetode Pembayaran: %s", m.PaymentMethod)
	fmt.Fprintf(&b, "\n\nEmail: %s\nTelp: %s", m.Email, m.Phone)

	proof := m.ProofFileName
	if proof == "" {
		proof = DefaultProofName
	}
	fmt.Fprintf(&b, "\n\nBukti pembayaran telah saya upload di website dengan nama file: %s. Mohon konfirmasi pesanan saya. Terima kasih!", proof)
	return b.String()
}

func InquiryText(productName string, price int64) string {
	return fmt.Sprintf("Halo, saya tertarik dengan layanan *%s* dengan harga %s. Mohon informasi lebih lanjut.", productName, money.FormatIDR(price))
}

func (l *WhatsAppLinker) OrderLink(m OrderMessage) string {
	return l.Link(m.Text())
}

func (l *WhatsAppLinker) InquiryLink(productName string, price int64) string {
	return l.Link(InquiryText(productName, price))
}
