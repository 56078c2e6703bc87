package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind tells how a transaction was produced.
type TransactionKind string

const (
	KindTransfer   TransactionKind = "TRANSFER"
	KindConversion TransactionKind = "CONVERSION"
	// KindTopUp is an approved top-up, funded from the reserve account.
	KindTopUp TransactionKind = "TOP_UP"
	// KindFunding is a credit with no source leg.
	KindFunding TransactionKind = "FUNDING"
)

// Transaction is the immutable record of one executed value movement.
// Amount and CurrencyCode describe the debit leg. CreditAmount is what the destination received,
// which differs from Amount only for conversions. FromSubAccountID is empty for funding, which has no source leg.
type Transaction struct {
	TransactionID    string          `json:"transactionID"`
	Kind             TransactionKind `json:"kind"`
	FromSubAccountID string          `json:"fromSubAccountID,omitempty"`
	ToSubAccountID   string          `json:"toSubAccountID"`
	Amount           decimal.Decimal `json:"amount"`
	CurrencyCode     string          `json:"currencyCode"`
	CreditAmount     decimal.Decimal `json:"creditAmount"`
	CreatedAt        time.Time       `json:"createdAt"`
}

// HasSource reports whether the transaction debited a sub-account.
func (t Transaction) HasSource() bool {
	return t.FromSubAccountID != ""
}

// IsConversion reports whether the two legs were denominated in different currencies.
func (t Transaction) IsConversion() bool {
	return t.Kind == KindConversion
}
