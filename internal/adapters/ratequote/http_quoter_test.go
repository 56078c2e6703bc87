package ratequote_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/multicurrency_ledger/internal/adapters/ratequote"
	"github.com/SscSPs/multicurrency_ledger/internal/apperrors"
	"github.com/SscSPs/multicurrency_ledger/internal/core/domain"
	"github.com/SscSPs/multicurrency_ledger/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPQuoter_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v6/key/pair/USD/EUR/100", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result":"success","conversion_rate":0.925,"conversion_result":92.5}`))
	}))
	defer srv.Close()

	q := ratequote.NewHTTPQuoter(srv.URL, "key", srv.Client())
	got, err := q.Quote(context.Background(), "USD", "EUR", decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.RequireFromString("92.5")))
}

func TestHTTPQuoter_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusBadGateway) }},
		{"api error", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"result":"error","error-type":"unsupported-code"}`))
		}},
		{"malformed", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte(`not json`)) }},
		{"zero result", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"result":"success","conversion_result":0}`))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			_, err := ratequote.NewHTTPQuoter(srv.URL, "key", srv.Client()).Quote(context.Background(), "USD", "EUR", decimal.NewFromInt(1))
			assert.ErrorIs(t, err, apperrors.ErrRateUnavailable)
		})
	}
}

func TestHTTPQuoter_RespectsDeadline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := ratequote.NewHTTPQuoter(srv.URL, "key", srv.Client()).Quote(ctx, "USD", "EUR", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, apperrors.ErrRateUnavailable)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestHTTPQuoter_ErrorsOmitAPIKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := ratequote.NewHTTPQuoter(srv.URL, "SECRET-API-KEY", srv.Client()).Quote(ctx, "USD", "EUR", decimal.NewFromInt(10))
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "SECRET-API-KEY")
	assert.NotContains(t, err.Error(), "/pair/")

	srv.Close()
	_, err = ratequote.NewHTTPQuoter(srv.URL, "SECRET-API-KEY", srv.Client()).Quote(context.Background(), "USD", "EUR", decimal.NewFromInt(10))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrRateUnavailable)
	assert.NotContains(t, err.Error(), "SECRET-API-KEY")
}

func TestStoredQuoter(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.SaveExchangeRate(ctx, domain.ExchangeRate{
		ExchangeRateID:   "r1",
		FromCurrencyCode: "EUR",
		ToCurrencyCode:   "USD",
		Rate:             decimal.RequireFromString("1.25"),
		DateEffective:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}))
	q := ratequote.NewStoredQuoter(store)

	got, err := q.Quote(ctx, "EUR", "USD", decimal.NewFromInt(10))
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.RequireFromString("12.5")))

	inverse, err := q.Quote(ctx, "USD", "EUR", decimal.NewFromInt(10))
	require.NoError(t, err)
	assert.True(t, inverse.Equal(decimal.NewFromInt(8)))

	_, err = q.Quote(ctx, "USD", "JPY", decimal.NewFromInt(10))
	assert.ErrorIs(t, err, apperrors.ErrRateUnavailable)

	require.NoError(t, store.SaveExchangeRate(ctx, domain.ExchangeRate{
		ExchangeRateID:   "r2",
		FromCurrencyCode: "EUR",
		ToCurrencyCode:   "USD",
		Rate:             decimal.NewFromInt(2),
		DateEffective:    time.Now().UTC().AddDate(0, 0, 7),
	}))
	notYet, err := q.Quote(ctx, "EUR", "USD", decimal.NewFromInt(10))
	require.NoError(t, err)
	assert.True(t, notYet.Equal(decimal.RequireFromString("12.5")), "future-dated rates are not applied")
}
