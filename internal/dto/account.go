package dto

import (
	"time"

	"github.com/SscSPs/multicurrency_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the structure for opening a new account.
type CreateAccountRequest struct {
	HolderName string `json:"holderName" binding:"required"`
}

// CreateSubAccountRequest opens a zero-balance sub-account in a currency.
type CreateSubAccountRequest struct {
	CurrencyCode string `json:"currencyCode" binding:"required,currency"`
}

// AccountResponse defines the structure for API responses containing account details.
type AccountResponse struct {
	AccountID  string               `json:"accountID"`
	HolderName string               `json:"holderName"`
	Status     domain.AccountStatus `json:"status"`
	CreatedAt  time.Time            `json:"createdAt"`
}

// SubAccountResponse describes one currency bucket.
type SubAccountResponse struct {
	SubAccountID string          `json:"subAccountID"`
	AccountID    string          `json:"accountID"`
	CurrencyCode string          `json:"currencyCode"`
	Balance      decimal.Decimal `json:"balance"`
	Display      string          `json:"display"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// BalanceResponse is returned by the per-currency balance query.
type BalanceResponse struct {
	AccountID    string          `json:"accountID"`
	CurrencyCode string          `json:"currencyCode"`
	Balance      decimal.Decimal `json:"balance"`
	Display      string          `json:"display"`
}

// ToAccountResponse converts a domain account to its API representation.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:  a.AccountID,
		HolderName: a.HolderName,
		Status:     a.Status,
		CreatedAt:  a.CreatedAt,
	}
}

// ToListAccountResponse converts a slice of accounts.
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// ToSubAccountResponse converts a domain sub-account, formatting the balance for display.
func ToSubAccountResponse(s *domain.SubAccount, display string) SubAccountResponse {
	return SubAccountResponse{
		SubAccountID: s.SubAccountID,
		AccountID:    s.AccountID,
		CurrencyCode: s.CurrencyCode,
		Balance:      s.Balance,
		Display:      display,
		CreatedAt:    s.CreatedAt,
	}
}

// ListAccountsParams holds offset pagination input for the administrator account listing.
type ListAccountsParams struct {
	Limit  int `form:"limit" binding:"omitempty,min=1,max=500"`
	Offset int `form:"offset" binding:"omitempty,min=0"`
}
