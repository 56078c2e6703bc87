package services

import (
	"context"

	"github.com/SscSPs/multicurrency_ledger/internal/core/domain"
	"github.com/SscSPs/multicurrency_ledger/internal/dto"
	"github.com/shopspring/decimal"
)

// TransferSvc moves value between sub-accounts. It is the only writer of balances.
type TransferSvc interface {
	// Transfer debits fromAccountID and credits toAccountID in the same currency.
	Transfer(ctx context.Context, fromAccountID, toAccountID string, amount decimal.Decimal, currencyCode string) (*domain.Transaction, error)

	// Convert exchanges amount of one currency into another within the same account at a quoted rate.
	Convert(ctx context.Context, accountID string, req dto.ConversionRequest) (*domain.Transaction, error)

	// TopUp credits a sub-account with no source leg. Administrator tooling only.
	TopUp(ctx context.Context, accountID string, amount decimal.Decimal, currencyCode string) (*domain.Transaction, error)
}

// TransactionHistorySvc reads the append-only history.
type TransactionHistorySvc interface {
	GetTransaction(ctx context.Context, accountID, transactionID string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, accountID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

// TransferSvcFacade combines all transfer-related service interfaces
type TransferSvcFacade interface {
	TransferSvc
	TransactionHistorySvc
}
