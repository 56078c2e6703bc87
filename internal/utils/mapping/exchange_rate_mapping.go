package mapping

import (
	"github.com/SscSPs/multicurrency_ledger/internal/core/domain"
	"github.com/SscSPs/multicurrency_ledger/internal/models"
)

// ToModelExchangeRate converts a domain ExchangeRate to its table row.
// The effective date is stored as a calendar day.
func ToModelExchangeRate(d domain.ExchangeRate) models.ExchangeRate {
	return models.ExchangeRate{
		ExchangeRateID:   d.ExchangeRateID,
		FromCurrencyCode: d.FromCurrencyCode,
		ToCurrencyCode:   d.ToCurrencyCode,
		Rate:             d.Rate,
		DateEffective:    domain.TruncateToDate(d.DateEffective),
		CreatedAt:        d.CreatedAt,
		LastUpdatedAt:    d.LastUpdatedAt,
	}
}

// ToDomainExchangeRate converts a table row to a domain ExchangeRate.
// DATE columns scan in the session time zone, so the day is re-anchored at UTC midnight.
func ToDomainExchangeRate(m models.ExchangeRate) domain.ExchangeRate {
	return domain.ExchangeRate{
		ExchangeRateID:   m.ExchangeRateID,
		FromCurrencyCode: m.FromCurrencyCode,
		ToCurrencyCode:   m.ToCurrencyCode,
		Rate:             m.Rate,
		DateEffective:    domain.TruncateToDate(m.DateEffective),
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt.UTC(),
			LastUpdatedAt: m.LastUpdatedAt.UTC(),
		},
	}
}
