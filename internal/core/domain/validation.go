package domain

import (
	"fmt"
	"regexp"

	"github.com/SscSPs/multicurrency_ledger/internal/apperrors"
	"github.com/shopspring/decimal"
)

var holderNamePattern = regexp.MustCompile(`^[a-zA-Z]+[a-zA-Z\s\-]*[a-zA-Z]+$`)

// AmountScale is the number of decimal places stored for amounts and balances.
const AmountScale int32 = 8

// maxAmount is the first value that no longer fits NUMERIC(20, 8).
var maxAmount = decimal.New(1, 12)

// ValidateAmount rejects zero and negative amounts and amounts the ledger cannot store exactly.
// decimal.Decimal cannot hold NaN or infinities, so finiteness is enforced at parse time.
func ValidateAmount(amount decimal.Decimal) error {
	switch {
	case !amount.IsPositive():
		return fmt.Errorf("%w: got %s", apperrors.ErrInvalidAmount, amount.String())
	case !amount.Equal(amount.Truncate(AmountScale)):
		return fmt.Errorf("%w: %s has more than %d decimal places", apperrors.ErrInvalidAmount, amount.String(), AmountScale)
	case amount.GreaterThanOrEqual(maxAmount):
		return fmt.Errorf("%w: %s exceeds the maximum amount", apperrors.ErrInvalidAmount, amount.String())
	}
	return nil
}

// ValidateCurrency rejects codes outside the allow-list.
func ValidateCurrency(code string) error {
	if !IsSupportedCurrency(code) {
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidCurrency, code)
	}
	return nil
}

// ValidateHolderName requires at least two letters, with only letters, spaces and hyphens in between.
func ValidateHolderName(name string) error {
	if !holderNamePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidHolderName, name)
	}
	return nil
}

// ValidateMovement checks the amount and currency of any value movement.
func ValidateMovement(amount decimal.Decimal, currency string) error {
	if err := ValidateAmount(amount); err != nil {
		return err
	}
	return ValidateCurrency(currency)
}
