package services

import "context"

// ExchangeRateFetcher retrieves the current rate for a target currency from
// an external provider. Implementations fail with apperrors.ErrNetwork,
// apperrors.ErrParse or apperrors.ErrMissingRate.
type ExchangeRateFetcher interface {
	FetchRate(ctx context.Context, targetCurrency string) (float64, error)
}
