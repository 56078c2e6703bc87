package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the transactions table row. FromSubAccountID is NULL for funding.
type Transaction struct {
	TransactionID    string          `db:"transaction_id"`
	Kind             string          `db:"kind"`
	FromSubAccountID *string         `db:"from_sub_account_id"`
	ToSubAccountID   string          `db:"to_sub_account_id"`
	Amount           decimal.Decimal `db:"amount"`
	CurrencyCode     string          `db:"currency_code"`
	CreditAmount     decimal.Decimal `db:"credit_amount"`
	CreatedAt        time.Time       `db:"created_at"`
}

// PendingTopUp is the pending_topups table row.
type PendingTopUp struct {
	PendingTopUpID string          `db:"pending_topup_id"`
	AccountID      string          `db:"account_id"`
	Amount         decimal.Decimal `db:"amount"`
	CurrencyCode   string          `db:"currency_code"`
	CreatedAt      time.Time       `db:"created_at"`
}

// ScheduledTransfer is the scheduled_transfers table row. ScheduledDate is a DATE column.
type ScheduledTransfer struct {
	ScheduledTransferID string          `db:"scheduled_transfer_id"`
	FromAccountID       string          `db:"from_account_id"`
	ToAccountID         string          `db:"to_account_id"`
	Amount              decimal.Decimal `db:"amount"`
	CurrencyCode        string          `db:"currency_code"`
	ScheduledDate       time.Time       `db:"scheduled_date"`
	Executed            bool            `db:"executed"`
	CreatedAt           time.Time       `db:"created_at"`
}
