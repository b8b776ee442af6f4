package ratesapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/product_catalog_app/internal/adapters/ratesapi"
	"github.com/SscSPs/product_catalog_app/internal/apperrors"
	"github.com/SscSPs/product_catalog_app/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedCall struct {
	base, target, outcome string
}

type fakeMetrics struct {
	mu    sync.Mutex
	calls []recordedCall
}

func (f *fakeMetrics) RecordRateRequest(base, target, outcome string, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, recordedCall{base, target, outcome})
}

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...ratesapi.Option) *ratesapi.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := ratesapi.NewClient(server.URL+"/v1/latest", "secret", opts...)
	require.NoError(t, err)
	return client
}

func TestSelectBaseCurrency(t *testing.T) {
	assert.Equal(t, "EUR", ratesapi.SelectBaseCurrency("USD"))
	assert.Equal(t, "USD", ratesapi.SelectBaseCurrency("EUR"))
	assert.Equal(t, "USD", ratesapi.SelectBaseCurrency("GBP"))
}

func TestNewClient_InvalidURL(t *testing.T) {
	_, err := ratesapi.NewClient("not a url", "key")
	assert.Error(t, err)
}

func TestFetchRate_Success(t *testing.T) {
	var gotQuery map[string]string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/latest", r.URL.Path)
		gotQuery = map[string]string{
			"access_key": r.URL.Query().Get("access_key"),
			"base":       r.URL.Query().Get("base"),
			"symbols":    r.URL.Query().Get("symbols"),
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"base":"USD","rates":{"EUR":0.9}}`))
	})

	rate, err := client.FetchRate(context.Background(), "EUR")

	require.NoError(t, err)
	assert.Equal(t, 0.9, rate)
	assert.Equal(t, map[string]string{"access_key": "secret", "base": "USD", "symbols": "EUR"}, gotQuery)
}

func TestFetchRate_USDTargetUsesEURBase(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "EUR", r.URL.Query().Get("base"))
		assert.Equal(t, "USD", r.URL.Query().Get("symbols"))
		_, _ = w.Write([]byte(`{"rates":{"USD":1.2}}`))
	})

	rate, err := client.FetchRate(context.Background(), "USD")

	require.NoError(t, err)
	assert.Equal(t, 1.2, rate)
}

func TestFetchRate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		target  string
		wantErr error
		outcome string
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `{}`, target: "EUR", wantErr: apperrors.ErrNetwork, outcome: metrics.OutcomeNetwork},
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"error":"bad key"}`, target: "EUR", wantErr: apperrors.ErrNetwork, outcome: metrics.OutcomeNetwork},
		{name: "not json", status: http.StatusOK, body: `<html>`, target: "EUR", wantErr: apperrors.ErrParse, outcome: metrics.OutcomeParse},
		{name: "no rates key", status: http.StatusOK, body: `{"success":false}`, target: "EUR", wantErr: apperrors.ErrParse, outcome: metrics.OutcomeParse},
		{name: "rate not a number", status: http.StatusOK, body: `{"rates":{"EUR":"0.9"}}`, target: "EUR", wantErr: apperrors.ErrParse, outcome: metrics.OutcomeParse},
		{name: "zero rate", status: http.StatusOK, body: `{"rates":{"EUR":0}}`, target: "EUR", wantErr: apperrors.ErrParse, outcome: metrics.OutcomeParse},
		{name: "missing target", status: http.StatusOK, body: `{"rates":{}}`, target: "GBP", wantErr: apperrors.ErrMissingRate, outcome: metrics.OutcomeMissingRate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := &fakeMetrics{}
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}, ratesapi.WithMetrics(recorder))

			rate, err := client.FetchRate(context.Background(), tt.target)

			assert.Zero(t, rate)
			assert.ErrorIs(t, err, tt.wantErr)
			require.Len(t, recorder.calls, 1)
			assert.Equal(t, tt.outcome, recorder.calls[0].outcome)
		})
	}
}

func TestFetchRate_EmptyTarget(t *testing.T) {
	called := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) { called = true })

	_, err := client.FetchRate(context.Background(), "")

	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.False(t, called)
}

func TestFetchRate_Timeout(t *testing.T) {
	release := make(chan struct{})
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}, ratesapi.WithTimeout(50*time.Millisecond))
	defer close(release)

	_, err := client.FetchRate(context.Background(), "EUR")

	assert.ErrorIs(t, err, apperrors.ErrNetwork)
	assert.NotContains(t, err.Error(), "secret", "access key must not leak into errors")
}

func TestFetchRate_CancelledContext(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"rates":{"EUR":0.9}}`))
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.FetchRate(ctx, "EUR")

	assert.ErrorIs(t, err, apperrors.ErrNetwork)
}

func TestFetchRate_SingleRequestNoRetry(t *testing.T) {
	var mu sync.Mutex
	hits := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		hits++
		mu.Unlock()
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := client.FetchRate(context.Background(), "EUR")

	assert.ErrorIs(t, err, apperrors.ErrNetwork)
	assert.Equal(t, 1, hits)
}
