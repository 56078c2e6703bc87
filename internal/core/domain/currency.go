package domain

import (
	"regexp"
	"strings"
)

// SupportedCurrencies is the fixed allow-list accepted at every entry point.
var SupportedCurrencies = []string{"USD", "EUR", "GBP", "JPY", "INR", "SGD", "AUD"}

var currencyCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)

// IsSupportedCurrency reports whether code is a well-formed, allow-listed currency code.
// The check is case-sensitive.
func IsSupportedCurrency(code string) bool {
	if !currencyCodePattern.MatchString(code) {
		return false
	}
	for _, c := range SupportedCurrencies {
		if c == code {
			return true
		}
	}
	return false
}

// NormalizeCurrency trims and upper-cases user input before validation.
func NormalizeCurrency(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
