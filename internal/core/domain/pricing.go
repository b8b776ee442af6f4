package domain

import (
	"fmt"
	"math"

	"github.com/SscSPs/product_catalog_app/internal/apperrors"
)

// PricedItem is a read-only view of a product used as input to price conversion.
type PricedItem struct {
	ID           int64
	Name         string
	Price        float64
	Currency     string
	CategoryName string
}

// ConvertedItem is the output of a price conversion. Currency keeps the item's
// original code even though Price may have been rescaled.
type ConvertedItem struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Currency     string  `json:"currency"`
	CategoryName string  `json:"category"`
}

// ExchangeRateTable maps currency codes to rates as returned by the rate provider.
type ExchangeRateTable map[string]float64

// Validate rejects items that cannot be converted.
func (i PricedItem) Validate() error {
	if math.IsNaN(i.Price) || math.IsInf(i.Price, 0) {
		return fmt.Errorf("%w: item %d has a non-finite price", apperrors.ErrInvalidInput, i.ID)
	}
	if i.Price < 0 {
		return fmt.Errorf("%w: item %d has a negative price", apperrors.ErrInvalidInput, i.ID)
	}
	if !IsValidCurrencyCode(i.Currency) {
		return fmt.Errorf("%w: item %d has invalid currency code %q", apperrors.ErrInvalidInput, i.ID, i.Currency)
	}
	return nil
}

// ValidatePricedItems returns the first validation error among items, if any.
func ValidatePricedItems(items []PricedItem) error {
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	return nil
}
