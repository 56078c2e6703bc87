package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/multicurrency_ledger/internal/core/domain"
)

// ExchangeRateReader looks up stored rates.
type ExchangeRateReader interface {
	// FindExchangeRate returns the rate in force on asOf: the pair's row with the latest
	// effective date not after asOf, else the inverse of the reverse pair chosen the same way.
	// A currency converts to itself at 1 without a lookup.
	FindExchangeRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string, asOf time.Time) (*domain.ExchangeRate, error)
	ListExchangeRates(ctx context.Context) ([]domain.ExchangeRate, error)
}

// ExchangeRateWriter stores rates.
type ExchangeRateWriter interface {
	// SaveExchangeRate upserts the rate for its currency pair and effective date.
	SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error
}

// ExchangeRateRepositoryFacade combines all exchange rate-related repository interfaces
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}
