// Package ratesapi fetches exchange rates from an exchangeratesapi.io compatible provider.
package ratesapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/SscSPs/product_catalog_app/internal/apperrors"
	"github.com/SscSPs/product_catalog_app/internal/metrics"
	"github.com/SscSPs/product_catalog_app/internal/middleware"
)

// DefaultTimeout bounds a single provider call when no timeout option is given.
const DefaultTimeout = 5 * time.Second

// maxBodyBytes caps how much of a provider response is read.
const maxBodyBytes = 1 << 20

// MetricsCollector receives one observation per provider call.
type MetricsCollector interface {
	RecordRateRequest(base, target, outcome string, duration time.Duration)
}

type noopMetrics struct{}

func (noopMetrics) RecordRateRequest(string, string, string, time.Duration) {}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the per-call timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithMetrics sets the collector that records each call.
func WithMetrics(collector MetricsCollector) Option {
	return func(c *Client) {
		if collector != nil {
			c.metrics = collector
		}
	}
}

// Client implements the ExchangeRateFetcher port. It performs exactly one GET
// per FetchRate call and never retries.
type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
	accessKey  string
	metrics    MetricsCollector
}

// NewClient creates a Client for the provider endpoint at baseURL.
func NewClient(baseURL, accessKey string, opts ...Option) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid rates api url %q", baseURL)
	}

	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    parsed,
		accessKey:  accessKey,
		metrics:    noopMetrics{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// SelectBaseCurrency returns the base currency used to quote target: EUR when
// the target is USD, USD for everything else.
func SelectBaseCurrency(target string) string {
	if target == "USD" {
		return "EUR"
	}
	return "USD"
}

type latestResponse struct {
	Rates map[string]json.RawMessage `json:"rates"`
}

// FetchRate returns how many units of targetCurrency one unit of the selected
// base currency buys.
func (c *Client) FetchRate(ctx context.Context, targetCurrency string) (float64, error) {
	if targetCurrency == "" {
		return 0, fmt.Errorf("%w: target currency is empty", apperrors.ErrInvalidInput)
	}
	base := SelectBaseCurrency(targetCurrency)
	logger := middleware.GetLoggerFromCtx(ctx).With(
		slog.String("base", base),
		slog.String("target", targetCurrency),
	)

	start := time.Now()
	rate, err := c.fetch(ctx, base, targetCurrency)
	elapsed := time.Since(start)
	c.metrics.RecordRateRequest(base, targetCurrency, outcomeOf(err), elapsed)

	if err != nil {
		logger.Warn("Exchange rate request failed", slog.String("error", err.Error()), slog.Duration("latency", elapsed))
		return 0, err
	}
	logger.Debug("Exchange rate fetched", slog.Float64("rate", rate), slog.Duration("latency", elapsed))
	return rate, nil
}

func (c *Client) fetch(ctx context.Context, base, target string) (float64, error) {
	endpoint := *c.baseURL
	query := endpoint.Query()
	query.Set("access_key", c.accessKey)
	query.Set("base", base)
	query.Set("symbols", target)
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to create request: %v", apperrors.ErrNetwork, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// The error text embeds the URL, which carries the access key.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return 0, fmt.Errorf("%w: request failed: %v", apperrors.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, fmt.Errorf("%w: provider answered with status %d", apperrors.ErrNetwork, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return 0, fmt.Errorf("%w: failed to read response: %v", apperrors.ErrNetwork, err)
	}

	return parseRate(body, target)
}

func parseRate(body []byte, target string) (float64, error) {
	var payload latestResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return 0, fmt.Errorf("%w: %v", apperrors.ErrParse, err)
	}
	if payload.Rates == nil {
		return 0, fmt.Errorf("%w: response has no rates object", apperrors.ErrParse)
	}

	raw, ok := payload.Rates[target]
	if !ok {
		return 0, fmt.Errorf("%w: %s", apperrors.ErrMissingRate, target)
	}

	var rate float64
	if err := json.Unmarshal(raw, &rate); err != nil {
		return 0, fmt.Errorf("%w: rate for %s is not a number", apperrors.ErrParse, target)
	}
	if math.IsNaN(rate) || math.IsInf(rate, 0) || rate <= 0 {
		return 0, fmt.Errorf("%w: rate for %s must be positive, got %v", apperrors.ErrParse, target, rate)
	}
	return rate, nil
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, apperrors.ErrMissingRate):
		return metrics.OutcomeMissingRate
	case errors.Is(err, apperrors.ErrParse):
		return metrics.OutcomeParse
	default:
		return metrics.OutcomeNetwork
	}
}
