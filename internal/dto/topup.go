package dto

import (
	"time"

	"github.com/SscSPs/multicurrency_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// StageTopUpRequest asks for funds to be credited after administrator approval.
type StageTopUpRequest struct {
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode" binding:"required,currency"`
}

// PendingTopUpResponse describes a staged request.
type PendingTopUpResponse struct {
	PendingTopUpID string          `json:"pendingTopUpID"`
	AccountID      string          `json:"accountID"`
	Amount         decimal.Decimal `json:"amount"`
	CurrencyCode   string          `json:"currencyCode"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// ToPendingTopUpResponse converts a domain pending top-up.
func ToPendingTopUpResponse(p *domain.PendingTopUp) PendingTopUpResponse {
	return PendingTopUpResponse{
		PendingTopUpID: p.PendingTopUpID,
		AccountID:      p.AccountID,
		Amount:         p.Amount,
		CurrencyCode:   p.CurrencyCode,
		CreatedAt:      p.CreatedAt,
	}
}

// ToListPendingTopUpResponse converts a slice of pending top-ups.
func ToListPendingTopUpResponse(items []domain.PendingTopUp) []PendingTopUpResponse {
	res := make([]PendingTopUpResponse, len(items))
	for i := range items {
		res[i] = ToPendingTopUpResponse(&items[i])
	}
	return res
}
