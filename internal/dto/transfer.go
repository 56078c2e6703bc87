package dto

import (
	"time"

	"github.com/SscSPs/multicurrency_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransferRequest moves funds in one currency from the caller to another account.
type TransferRequest struct {
	ToAccountID  string          `json:"toAccountID" binding:"required,uuid"`
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode" binding:"required,currency"`
}

// ConversionRequest exchanges funds between two of the caller's own sub-accounts.
type ConversionRequest struct {
	FromCurrencyCode string          `json:"fromCurrencyCode" binding:"required,currency"`
	ToCurrencyCode   string          `json:"toCurrencyCode" binding:"required,currency,nefield=FromCurrencyCode"`
	Amount           decimal.Decimal `json:"amount"`
}

// FundRequest credits a sub-account without a source. Administrator only.
type FundRequest struct {
	AccountID    string          `json:"accountID" binding:"required,uuid"`
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode" binding:"required,currency"`
}

// TransactionResponse is the API representation of a history record.
type TransactionResponse struct {
	TransactionID    string                 `json:"transactionID"`
	Kind             domain.TransactionKind `json:"kind"`
	FromSubAccountID string                 `json:"fromSubAccountID,omitempty"`
	ToSubAccountID   string                 `json:"toSubAccountID"`
	Amount           decimal.Decimal        `json:"amount"`
	CurrencyCode     string                 `json:"currencyCode"`
	CreditAmount     decimal.Decimal        `json:"creditAmount"`
	CreatedAt        time.Time              `json:"createdAt"`
}

// ListTransactionsParams holds cursor pagination input for history listing.
type ListTransactionsParams struct {
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=200"`
	NextToken string `form:"nextToken"`
}

// ListTransactionsResponse is one page of history.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    string                `json:"nextToken,omitempty"`
}

// ToTransactionResponse converts a domain transaction.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:    t.TransactionID,
		Kind:             t.Kind,
		FromSubAccountID: t.FromSubAccountID,
		ToSubAccountID:   t.ToSubAccountID,
		Amount:           t.Amount,
		CurrencyCode:     t.CurrencyCode,
		CreditAmount:     t.CreditAmount,
		CreatedAt:        t.CreatedAt,
	}
}

// ToListTransactionResponse converts a slice of transactions.
func ToListTransactionResponse(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return res
}
