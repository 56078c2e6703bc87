package domain_test

import (
	"testing"

	"github.com/SscSPs/multicurrency_ledger/internal/apperrors"
	"github.com/SscSPs/multicurrency_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestValidateAmount(t *testing.T) {
	tests := []struct {
		name    string
		amount  decimal.Decimal
		wantErr bool
	}{
		{"positive", decimal.NewFromFloat(0.01), false},
		{"large", decimal.RequireFromString("1000000000.5"), false},
		{"eight decimals", decimal.RequireFromString("0.00000001"), false},
		{"trailing zeros beyond scale", decimal.RequireFromString("1.5000000000"), false},
		{"zero", decimal.Zero, true},
		{"negative", decimal.NewFromInt(-5), true},
		{"below stored precision", decimal.RequireFromString("0.000000001"), true},
		{"too large", decimal.New(1, 12), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := domain.ValidateAmount(tt.amount)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrInvalidAmount)
				assert.ErrorIs(t, err, apperrors.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateCurrency(t *testing.T) {
	for _, code := range domain.SupportedCurrencies {
		assert.NoError(t, domain.ValidateCurrency(code), code)
	}

	for _, code := range []string{"", "usd", "US", "USDT", "CHF", "12A"} {
		assert.ErrorIs(t, domain.ValidateCurrency(code), apperrors.ErrInvalidCurrency, code)
	}
}

func TestNormalizeCurrency(t *testing.T) {
	assert.Equal(t, "EUR", domain.NormalizeCurrency(" eur "))
}

func TestValidateHolderName(t *testing.T) {
	valid := []string{"Alice", "Mary Jane", "Jean-Luc Picard", "Ab"}
	invalid := []string{"", "A", "Bob1", " Alice", "Alice-", "O'Brien", "Zoë"}

	for _, name := range valid {
		assert.NoError(t, domain.ValidateHolderName(name), name)
	}
	for _, name := range invalid {
		assert.ErrorIs(t, domain.ValidateHolderName(name), apperrors.ErrInvalidHolderName, name)
	}
}

func TestSubAccount_CanDebit(t *testing.T) {
	sub := domain.SubAccount{Balance: decimal.NewFromInt(100)}

	assert.True(t, sub.CanDebit(decimal.NewFromInt(100)))
	assert.True(t, sub.CanDebit(decimal.NewFromFloat(99.99)))
	assert.False(t, sub.CanDebit(decimal.NewFromFloat(100.01)))
}
