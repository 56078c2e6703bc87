package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/multicurrency_ledger/internal/core/domain"
)

// TransactionPage selects a window of history, newest first.
// When AfterCreatedAt is set only records strictly older than (AfterCreatedAt, AfterID) are returned.
type TransactionPage struct {
	Limit          int
	AfterCreatedAt *time.Time
	AfterID        string
}

// TransactionReader defines read operations for the transaction history.
// The history is append-only; writes happen through LedgerTx.SaveTransaction.
type TransactionReader interface {
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)
	// ListTransactionsByAccount returns every transaction whose source or destination sub-account belongs to the account.
	ListTransactionsByAccount(ctx context.Context, accountID string, page TransactionPage) ([]domain.Transaction, error)
}
