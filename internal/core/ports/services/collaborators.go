package services

import (
	"context"

	"github.com/shopspring/decimal"
)

// RateQuoter converts an amount between currencies.
// Any failure, including a timeout, must be reported as an error wrapping apperrors.ErrRateUnavailable.
type RateQuoter interface {
	Quote(ctx context.Context, fromCurrency, toCurrency string, amount decimal.Decimal) (decimal.Decimal, error)
}

// Notifier delivers a best-effort alert message.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

// Authenticator resolves a username and password to an account ID.
// ok is false for unknown users and wrong passwords; err is reserved for infrastructure failures.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (accountID string, ok bool, err error)
}

// OTPVerifier checks a one-time code for a user.
type OTPVerifier interface {
	Verify(ctx context.Context, username, code string) (bool, error)
}
