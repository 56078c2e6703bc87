package dto

import (
	"time"

	"github.com/SscSPs/multicurrency_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateScheduledTransferRequest defines a monthly recurring transfer from the caller.
// ScheduledDate accepts YYYY-MM-DD; any time component is discarded.
type CreateScheduledTransferRequest struct {
	ToAccountID   string          `json:"toAccountID" binding:"required,uuid"`
	Amount        decimal.Decimal `json:"amount"`
	CurrencyCode  string          `json:"currencyCode" binding:"required,currency"`
	ScheduledDate string          `json:"scheduledDate" binding:"required,datetime=2006-01-02"`
}

// RunDueRequest triggers a scheduler batch for a date, today when empty.
type RunDueRequest struct {
	Date string `json:"date" binding:"omitempty,datetime=2006-01-02"`
}

// ScheduledTransferResponse describes a recurring transfer.
type ScheduledTransferResponse struct {
	ScheduledTransferID string          `json:"scheduledTransferID"`
	FromAccountID       string          `json:"fromAccountID"`
	ToAccountID         string          `json:"toAccountID"`
	Amount              decimal.Decimal `json:"amount"`
	CurrencyCode        string          `json:"currencyCode"`
	ScheduledDate       string          `json:"scheduledDate"`
	CreatedAt           time.Time       `json:"createdAt"`
}

// ToScheduledTransferResponse converts a domain scheduled transfer.
func ToScheduledTransferResponse(s *domain.ScheduledTransfer) ScheduledTransferResponse {
	return ScheduledTransferResponse{
		ScheduledTransferID: s.ScheduledTransferID,
		FromAccountID:       s.FromAccountID,
		ToAccountID:         s.ToAccountID,
		Amount:              s.Amount,
		CurrencyCode:        s.CurrencyCode,
		ScheduledDate:       s.ScheduledDate.Format(time.DateOnly),
		CreatedAt:           s.CreatedAt,
	}
}

// ToListScheduledTransferResponse converts a slice of scheduled transfers.
func ToListScheduledTransferResponse(items []domain.ScheduledTransfer) []ScheduledTransferResponse {
	res := make([]ScheduledTransferResponse, len(items))
	for i := range items {
		res[i] = ToScheduledTransferResponse(&items[i])
	}
	return res
}
