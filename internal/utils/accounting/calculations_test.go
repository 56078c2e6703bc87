package accounting_test

import (
	"testing"

	"github.com/SscSPs/multicurrency_ledger/internal/apperrors"
	"github.com/SscSPs/multicurrency_ledger/internal/core/domain"
	"github.com/SscSPs/multicurrency_ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureSufficientFunds(t *testing.T) {
	sub := domain.SubAccount{SubAccountID: "s1", CurrencyCode: "USD", Balance: decimal.NewFromInt(50)}

	assert.NoError(t, accounting.EnsureSufficientFunds(sub, decimal.NewFromInt(50)))
	assert.ErrorIs(t, accounting.EnsureSufficientFunds(sub, decimal.NewFromInt(51)), apperrors.ErrInsufficientFunds)
}

func TestApplyDelta(t *testing.T) {
	next, err := accounting.ApplyDelta(decimal.NewFromInt(10), decimal.NewFromInt(-10))
	require.NoError(t, err)
	assert.True(t, next.IsZero())

	next, err = accounting.ApplyDelta(decimal.NewFromInt(10), decimal.NewFromFloat(-10.01))
	assert.ErrorIs(t, err, apperrors.ErrInsufficientFunds)
	assert.True(t, next.Equal(decimal.NewFromInt(10)), "balance is returned unchanged on refusal")
}

func TestNetMovement(t *testing.T) {
	txns := []domain.Transaction{
		{FromSubAccountID: "a", ToSubAccountID: "b", Amount: decimal.NewFromInt(100), CreditAmount: decimal.NewFromInt(100)},
		{FromSubAccountID: "b", ToSubAccountID: "c", Amount: decimal.NewFromInt(30), CreditAmount: decimal.NewFromInt(27)},
		{ToSubAccountID: "a", Amount: decimal.NewFromInt(5), CreditAmount: decimal.NewFromInt(5)},
	}

	assert.True(t, accounting.NetMovement("a", txns).Equal(decimal.NewFromInt(-95)))
	assert.True(t, accounting.NetMovement("b", txns).Equal(decimal.NewFromInt(70)))
	assert.True(t, accounting.NetMovement("c", txns).Equal(decimal.NewFromInt(27)))
	assert.True(t, accounting.NetMovement("z", txns).IsZero())
}
