package repositories

import (
	"context"

	"github.com/SscSPs/multicurrency_ledger/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID returns apperrors.ErrNotFound when no account has the given ID.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	// FindAccountByHolderName looks an account up by its unique holder name.
	FindAccountByHolderName(ctx context.Context, holderName string) (*domain.Account, error)
	ListAccounts(ctx context.Context, limit, offset int) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount inserts a new account. A taken holder name yields apperrors.ErrDuplicateAccount.
	SaveAccount(ctx context.Context, account domain.Account) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}

// SubAccountReader defines read operations for sub-account data
type SubAccountReader interface {
	// FindSubAccount returns apperrors.ErrNoMatchingSubAccount when the account holds no sub-account in currency.
	FindSubAccount(ctx context.Context, accountID, currencyCode string) (*domain.SubAccount, error)
	FindSubAccountByID(ctx context.Context, subAccountID string) (*domain.SubAccount, error)
	ListSubAccountsByAccount(ctx context.Context, accountID string) ([]domain.SubAccount, error)
}

// SubAccountWriter defines write operations for sub-account data.
// Balances are never written here after creation; see LedgerTx.AdjustBalance.
type SubAccountWriter interface {
	// SaveSubAccount inserts a new sub-account. An existing (account, currency) pair yields apperrors.ErrDuplicateSubAccount.
	SaveSubAccount(ctx context.Context, sub domain.SubAccount) error
}

// SubAccountRepositoryFacade combines all sub-account-related repository interfaces
type SubAccountRepositoryFacade interface {
	SubAccountReader
	SubAccountWriter
}
