package services

import "github.com/SscSPs/product_catalog_app/internal/core/domain"

// ConvertList rescales every item with a single rate. Items already priced in
// targetCurrency keep their price; all others are multiplied by rate, whatever
// their source currency is. Each output item keeps its original currency code.
//
// The input slice is never modified and the result is never nil.
func ConvertList(rate float64, items []domain.PricedItem, targetCurrency string) []domain.ConvertedItem {
	converted := make([]domain.ConvertedItem, 0, len(items))
	for _, item := range items {
		multiplier := rate
		if item.Currency == targetCurrency {
			multiplier = 1
		}
		converted = append(converted, domain.ConvertedItem{
			ID:           item.ID,
			Name:         item.Name,
			Price:        item.Price * multiplier,
			Currency:     item.Currency,
			CategoryName: item.CategoryName,
		})
	}
	return converted
}
