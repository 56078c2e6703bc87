package mapping

import (
	"testing"
	"time"

	"github.com/SscSPs/multicurrency_ledger/internal/core/domain"
	"github.com/SscSPs/multicurrency_ledger/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionMapping_NullSource(t *testing.T) {
	funding := domain.Transaction{TransactionID: "t1", Kind: domain.KindFunding, ToSubAccountID: "s1", Amount: decimal.NewFromInt(5)}

	m := ToModelTransaction(funding)
	assert.Nil(t, m.FromSubAccountID)
	assert.Equal(t, "", ToDomainTransaction(m).FromSubAccountID)

	transfer := domain.Transaction{TransactionID: "t2", FromSubAccountID: "s0", ToSubAccountID: "s1"}
	m = ToModelTransaction(transfer)
	require.NotNil(t, m.FromSubAccountID)
	assert.Equal(t, "s0", *m.FromSubAccountID)
}

func TestScheduledTransferMapping_NormalizesDate(t *testing.T) {
	m := models.ScheduledTransfer{ScheduledDate: time.Date(2024, 2, 29, 0, 0, 0, 0, time.FixedZone("DB", 0))}
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), ToDomainScheduledTransfer(m).ScheduledDate)
}

func TestExchangeRateMapping_DateOnly(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	m := models.ExchangeRate{
		ExchangeRateID:   "r1",
		FromCurrencyCode: "USD",
		ToCurrencyCode:   "INR",
		Rate:             decimal.RequireFromString("83.2"),
		DateEffective:    time.Date(2024, 3, 15, 0, 0, 0, 0, ist),
	}

	d := ToDomainExchangeRate(m)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), d.DateEffective)

	d.DateEffective = time.Date(2024, 3, 16, 18, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC), ToModelExchangeRate(d).DateEffective)
}
