package ratequote

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/multicurrency_ledger/internal/apperrors"
	portsrepo "github.com/SscSPs/multicurrency_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/multicurrency_ledger/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// StoredQuoter converts with the rate in force today from the exchange rate table.
type StoredQuoter struct {
	rates portsrepo.ExchangeRateReader
	now   func() time.Time
}

// NewStoredQuoter creates a quoter over the rate table.
func NewStoredQuoter(rates portsrepo.ExchangeRateReader) *StoredQuoter {
	return &StoredQuoter{rates: rates, now: time.Now}
}

var _ portssvc.RateQuoter = (*StoredQuoter)(nil)

func (q *StoredQuoter) Quote(ctx context.Context, fromCurrency, toCurrency string, amount decimal.Decimal) (decimal.Decimal, error) {
	rate, err := q.rates.FindExchangeRate(ctx, fromCurrency, toCurrency, q.now().UTC())
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %w", apperrors.ErrRateUnavailable, err)
	}
	if !rate.Rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: stored rate %s to %s is not positive", apperrors.ErrRateUnavailable, fromCurrency, toCurrency)
	}
	return rate.Convert(amount), nil
}
