package services

import (
	"context"

	"github.com/SscSPs/multicurrency_ledger/internal/core/domain"
	"github.com/SscSPs/multicurrency_ledger/internal/dto"
)

// TopUpSvcFacade is the two-phase, administrator-gated credit workflow.
type TopUpSvcFacade interface {
	Stage(ctx context.Context, accountID string, req dto.StageTopUpRequest) (*domain.PendingTopUp, error)
	ListPending(ctx context.Context) ([]domain.PendingTopUp, error)
	// Approve funds the request from the reserve account and consumes it.
	// A missing or already approved request yields apperrors.ErrNotFound; a failed transfer leaves it staged.
	Approve(ctx context.Context, pendingTopUpID string) (*domain.Transaction, error)
}
