package services

import (
	"context"

	"github.com/SscSPs/multicurrency_ledger/internal/core/domain"
	"github.com/SscSPs/multicurrency_ledger/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	ListAccounts(ctx context.Context, limit, offset int) ([]domain.Account, error)
	ListSubAccounts(ctx context.Context, accountID string) ([]domain.SubAccount, error)
	// GetBalance returns the sub-account of accountID in currency, or apperrors.ErrNoMatchingSubAccount.
	GetBalance(ctx context.Context, accountID, currencyCode string) (*domain.SubAccount, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount validates the holder name and rejects names already in use.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error)
	// CreateSubAccount opens a zero-balance sub-account; a second one for the same currency is rejected.
	CreateSubAccount(ctx context.Context, accountID string, req dto.CreateSubAccountRequest) (*domain.SubAccount, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
