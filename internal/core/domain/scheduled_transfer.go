package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ScheduledTransfer is one row representing an indefinitely recurring monthly transfer.
// ScheduledDate is date-only (UTC midnight) and is advanced by the scheduler after each successful run.
// Executed is carried for storage compatibility and is never consulted.
type ScheduledTransfer struct {
	ScheduledTransferID string          `json:"scheduledTransferID"`
	FromAccountID       string          `json:"fromAccountID"`
	ToAccountID         string          `json:"toAccountID"`
	Amount              decimal.Decimal `json:"amount"`
	CurrencyCode        string          `json:"currencyCode"`
	ScheduledDate       time.Time       `json:"scheduledDate"`
	Executed            bool            `json:"executed"`
	CreatedAt           time.Time       `json:"createdAt"`
}

// IsDue reports whether the transfer is scheduled exactly on the given day.
func (s ScheduledTransfer) IsDue(today time.Time) bool {
	return s.ScheduledDate.Equal(TruncateToDate(today))
}

// ScheduledRunOutcome is the result of executing one due scheduled transfer.
type ScheduledRunOutcome struct {
	ScheduledTransferID string       `json:"scheduledTransferID"`
	Transaction         *Transaction `json:"transaction,omitempty"`
	NextScheduledDate   *time.Time   `json:"nextScheduledDate,omitempty"`
	Err                 error        `json:"-"`
	Error               string       `json:"error,omitempty"`
}

// Succeeded reports whether the transfer ran and the date was advanced.
func (o ScheduledRunOutcome) Succeeded() bool {
	return o.Err == nil
}

// BatchReport summarizes one scheduler invocation.
type BatchReport struct {
	RunDate   time.Time             `json:"runDate"`
	Due       int                   `json:"due"`
	Succeeded int                   `json:"succeeded"`
	Failed    int                   `json:"failed"`
	Outcomes  []ScheduledRunOutcome `json:"outcomes"`
}
