package domain_test

import (
	"testing"

	"github.com/SscSPs/multicurrency_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExchangeRateInverse(t *testing.T) {
	rate := domain.ExchangeRate{FromCurrencyCode: "USD", ToCurrencyCode: "INR", Rate: decimal.NewFromInt(80)}

	inv, ok := rate.Inverse()
	require.True(t, ok)
	assert.Equal(t, "INR", inv.FromCurrencyCode)
	assert.Equal(t, "USD", inv.ToCurrencyCode)
	assert.True(t, inv.Convert(decimal.NewFromInt(160)).Equal(decimal.NewFromInt(2)))

	_, ok = domain.ExchangeRate{Rate: decimal.Zero}.Inverse()
	assert.False(t, ok)
}

func TestIdentityRate(t *testing.T) {
	r := domain.IdentityRate("EUR")
	assert.True(t, r.Convert(decimal.RequireFromString("12.34")).Equal(decimal.RequireFromString("12.34")))
}
