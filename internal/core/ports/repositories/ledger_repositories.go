package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/multicurrency_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerTx is the set of ledger operations available inside one unit of work.
// Every balance mutation in the system goes through AdjustBalance.
type LedgerTx interface {
	// FindSubAccountForUpdate reads and locks a sub-account until the unit of work ends.
	FindSubAccountForUpdate(ctx context.Context, accountID, currencyCode string) (*domain.SubAccount, error)

	// AdjustBalance applies balance += delta and returns the post-image.
	// A result below zero is rejected with apperrors.ErrInsufficientFunds.
	AdjustBalance(ctx context.Context, subAccountID string, delta decimal.Decimal, at time.Time) (*domain.SubAccount, error)

	// SaveTransaction appends a record to the transaction history.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// FindPendingTopUpForUpdate reads and locks a staged top-up.
	FindPendingTopUpForUpdate(ctx context.Context, pendingTopUpID string) (*domain.PendingTopUp, error)

	// DeletePendingTopUp consumes a staged top-up.
	DeletePendingTopUp(ctx context.Context, pendingTopUpID string) error
}

// TransactionManager runs fn as a single unit of work.
// All writes made through tx are committed together when fn returns nil and discarded otherwise.
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx LedgerTx) error) error
}
