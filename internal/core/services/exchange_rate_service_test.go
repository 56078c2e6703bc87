package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/multicurrency_ledger/internal/apperrors"
	"github.com/SscSPs/multicurrency_ledger/internal/core/services"
	"github.com/SscSPs/multicurrency_ledger/internal/dto"
	"github.com/SscSPs/multicurrency_ledger/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExchangeRateService_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	svc := services.NewExchangeRateService(memory.NewStore())

	rate, err := svc.CreateExchangeRate(ctx, dto.CreateExchangeRateRequest{
		FromCurrencyCode: "usd",
		ToCurrencyCode:   "EUR",
		Rate:             decimal.RequireFromString("0.9"),
		DateEffective:    time.Date(2024, time.March, 1, 15, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, "USD", rate.FromCurrencyCode)
	assert.True(t, rate.DateEffective.Equal(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)))

	got, err := svc.GetExchangeRate(ctx, "USD", "EUR")
	require.NoError(t, err)
	assert.True(t, got.Rate.Equal(decimal.RequireFromString("0.9")))

	list, err := svc.ListExchangeRates(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestExchangeRateService_Validation(t *testing.T) {
	ctx := context.Background()
	svc := services.NewExchangeRateService(memory.NewStore())

	_, err := svc.CreateExchangeRate(ctx, dto.CreateExchangeRateRequest{FromCurrencyCode: "USD", ToCurrencyCode: "EUR", Rate: decimal.Zero})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.CreateExchangeRate(ctx, dto.CreateExchangeRateRequest{FromCurrencyCode: "USD", ToCurrencyCode: "USD", Rate: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.CreateExchangeRate(ctx, dto.CreateExchangeRateRequest{FromCurrencyCode: "USD", ToCurrencyCode: "XXX", Rate: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCurrency)

	_, err = svc.GetExchangeRate(ctx, "USD", "GBP")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
