package utils

import "github.com/shopspring/decimal"

// PricePrecision is the number of fractional digits stored for a product price.
const PricePrecision = 2

// maxPrice is the first value that no longer fits a NUMERIC(12,2) column.
var maxPrice = decimal.New(1, 10)

// RoundPrice rounds a price to the stored precision.
// Example: 12.345 returns 12.35, 12.3 returns 12.30 once formatted.
func RoundPrice(price decimal.Decimal) decimal.Decimal {
	return price.Round(PricePrecision)
}

// FormatPrice renders a price with exactly PricePrecision fractional digits.
func FormatPrice(price decimal.Decimal) string {
	return price.StringFixed(PricePrecision)
}

// PriceFitsStorage reports whether the rounded price can be stored.
func PriceFitsStorage(price decimal.Decimal) bool {
	return RoundPrice(price).Abs().LessThan(maxPrice)
}
