package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is an administrator-maintained conversion rate, effective from a given date.
type ExchangeRate struct {
	ExchangeRateID   string          `json:"exchangeRateID"`
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
	DateEffective    time.Time       `json:"dateEffective"`
	AuditFields
}

// IdentityRate is the implicit 1:1 rate of a currency to itself. It is never stored.
func IdentityRate(currencyCode string) ExchangeRate {
	return ExchangeRate{FromCurrencyCode: currencyCode, ToCurrencyCode: currencyCode, Rate: decimal.NewFromInt(1)}
}

// Inverse derives the reverse pair's rate. ok is false when the rate is not positive.
func (r ExchangeRate) Inverse() (inv ExchangeRate, ok bool) {
	if !r.Rate.IsPositive() {
		return ExchangeRate{}, false
	}
	inv = r
	inv.FromCurrencyCode, inv.ToCurrencyCode = r.ToCurrencyCode, r.FromCurrencyCode
	inv.Rate = decimal.NewFromInt(1).Div(r.Rate)
	return inv, true
}

// Convert applies the rate to an amount of the from currency.
func (r ExchangeRate) Convert(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(r.Rate)
}
