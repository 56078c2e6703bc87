package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PendingTopUp is a staged credit request awaiting administrator approval.
// Approval deletes the row, so a request is either staged or gone.
type PendingTopUp struct {
	PendingTopUpID string          `json:"pendingTopUpID"`
	AccountID      string          `json:"accountID"`
	Amount         decimal.Decimal `json:"amount"`
	CurrencyCode   string          `json:"currencyCode"`
	CreatedAt      time.Time       `json:"createdAt"`
}
