package domain

import (
	"github.com/shopspring/decimal"
)

// AccountStatus is the lifecycle flag of an account.
type AccountStatus string

const (
	AccountActive    AccountStatus = "ACTIVE"
	AccountSuspended AccountStatus = "SUSPENDED"
)

// ReserveAccountID is the well-known account that funds approved top-ups.
// It is seeded by the initial migration and is also the token subject of the administrator.
const ReserveAccountID = "00000000-0000-0000-0000-000000000000"

// Account is the top-level identity of a holder. Holder names are unique.
type Account struct {
	AccountID  string        `json:"accountID"`
	HolderName string        `json:"holderName"`
	Status     AccountStatus `json:"status"`
	AuditFields
}

// IsReserve reports whether the account is the system reserve.
func (a Account) IsReserve() bool {
	return a.AccountID == ReserveAccountID
}

// SubAccount is a currency-scoped balance owned by an Account.
// At most one exists per (AccountID, CurrencyCode) pair and Balance never goes below zero at rest.
type SubAccount struct {
	SubAccountID string          `json:"subAccountID"`
	AccountID    string          `json:"accountID"`
	CurrencyCode string          `json:"currencyCode"`
	Balance      decimal.Decimal `json:"balance"`
	AuditFields
}

// CanDebit reports whether amount can be taken from the sub-account without going negative.
func (s SubAccount) CanDebit(amount decimal.Decimal) bool {
	return s.Balance.GreaterThanOrEqual(amount)
}
