package accounting

import (
	"fmt"

	"github.com/SscSPs/multicurrency_ledger/internal/apperrors"
	"github.com/SscSPs/multicurrency_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EnsureSufficientFunds returns apperrors.ErrInsufficientFunds when amount exceeds the sub-account balance.
func EnsureSufficientFunds(sub domain.SubAccount, amount decimal.Decimal) error {
	if !sub.CanDebit(amount) {
		return fmt.Errorf("%w: sub-account %s holds %s %s, needs %s",
			apperrors.ErrInsufficientFunds, sub.SubAccountID, sub.Balance.String(), sub.CurrencyCode, amount.String())
	}
	return nil
}

// ApplyDelta returns balance + delta, refusing to produce a negative balance.
// Stores call this for every balance write so the non-negative invariant holds at rest.
func ApplyDelta(balance, delta decimal.Decimal) (decimal.Decimal, error) {
	next := balance.Add(delta)
	if next.IsNegative() {
		return balance, fmt.Errorf("%w: balance %s cannot absorb %s", apperrors.ErrInsufficientFunds, balance.String(), delta.String())
	}
	return next, nil
}

// NetMovement sums the signed effect of history records on one sub-account.
// Debits count against the source at Amount, credits count for the destination at CreditAmount.
func NetMovement(subAccountID string, txns []domain.Transaction) decimal.Decimal {
	net := decimal.Zero
	for _, t := range txns {
		if t.FromSubAccountID == subAccountID {
			net = net.Sub(t.Amount)
		}
		if t.ToSubAccountID == subAccountID {
			net = net.Add(t.CreditAmount)
		}
	}
	return net
}
