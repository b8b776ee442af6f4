package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry priced in its own currency.
type Product struct {
	ProductID    int64           `json:"productID"` // Primary Key
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	Currency     string          `json:"currency"` // 3-letter code, e.g. "USD"
	Featured     bool            `json:"featured"`
	CategoryID   int64           `json:"categoryID"`
	CategoryName string          `json:"categoryName"` // Read-only, joined from categories
	AuditFields
}

// ProductFilter narrows a product listing. Nil fields are ignored.
type ProductFilter struct {
	CategoryID *int64
	Featured   *bool
	Limit      int
	Offset     int
}

// NormalizeCurrencyCode trims and uppercases a currency code.
func NormalizeCurrencyCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsValidCurrencyCode reports whether code is exactly three ASCII letters.
func IsValidCurrencyCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for i := 0; i < len(code); i++ {
		c := code[i]
		if (c < 'A' || c > 'Z') && (c < 'a' || c > 'z') {
			return false
		}
	}
	return true
}

// ToPricedItem projects the product into the read-only view used for price conversion.
func (p Product) ToPricedItem() PricedItem {
	return PricedItem{
		ID:           p.ProductID,
		Name:         p.Name,
		Price:        p.Price.InexactFloat64(),
		Currency:     p.Currency,
		CategoryName: p.CategoryName,
	}
}
