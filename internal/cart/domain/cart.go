package domain

import (
	"encoding/json"
	"fmt"

	catalogDomain "github.com/ridloal/storefront/internal/catalog/domain"
	"github.com/ridloal/storefront/internal/platform/money"
)

// Cart adalah daftar id produk unik, urutan sesuai waktu ditambahkan.
// Disimpan di state store sebagai JSON array of int, contoh: [1,3].
type Cart struct {
	ProductIDs []int64
}

func (c Cart) Contains(productID int64) bool {
	for _, id := range c.ProductIDs {
		if id == productID {
			return true
		}
	}
	return false
}

// Add mengembalikan false jika produk sudah ada (tidak ada perubahan)
func (c *Cart) Add(productID int64) bool {
	if c.Contains(productID) {
		return false
	}
	c.ProductIDs = append(c.ProductIDs, productID)
	return true
}

// Remove mengembalikan false jika produk memang tidak ada di cart
func (c *Cart) Remove(productID int64) bool {
	for i, id := range c.ProductIDs {
		if id == productID {
			c.ProductIDs = append(c.ProductIDs[:i:i], c.ProductIDs[i+1:]...)
			return true
		}
	}
	return false
}

func (c Cart) IsEmpty() bool {
	return len(c.ProductIDs) == 0
}

func (c Cart) Len() int {
	return len(c.ProductIDs)
}

func (c Cart) Marshal() (string, error) {
	ids := c.ProductIDs
	if ids == nil {
		ids = []int64{}
	}
	b, err := json.Marshal(ids)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ParseCart membaca nilai persisted. Duplikat dan id <= 0 dibuang.
func ParseCart(raw string) (Cart, error) {
	var ids []int64
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return Cart{}, fmt.Errorf("malformed cart value: %w", err)
	}
	var cart Cart
	for _, id := range ids {
		if id > 0 {
			cart.Add(id)
		}
	}
	return cart, nil
}

type AddItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required,gt=0"`
}

// CartSummary adalah cart yang sudah di-resolve terhadap katalog
type CartSummary struct {
	Items     []catalogDomain.ProductView `json:"items"`
	Count     int                         `json:"count"`
	Totals    money.Totals                `json:"totals"`
	Formatted money.FormattedTotals       `json:"formatted"`
}
