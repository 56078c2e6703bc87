package repositories

import (
	"context"

	"github.com/SscSPs/multicurrency_ledger/internal/core/domain"
)

// PendingTopUpReader defines read operations for staged top-ups
type PendingTopUpReader interface {
	FindPendingTopUpByID(ctx context.Context, pendingTopUpID string) (*domain.PendingTopUp, error)
	// ListPendingTopUps returns every staged request, oldest first.
	ListPendingTopUps(ctx context.Context) ([]domain.PendingTopUp, error)
}

// PendingTopUpWriter defines write operations for staged top-ups.
// Consumption happens inside a unit of work, see LedgerTx.DeletePendingTopUp.
type PendingTopUpWriter interface {
	SavePendingTopUp(ctx context.Context, topUp domain.PendingTopUp) error
}

// PendingTopUpRepositoryFacade combines all pending top-up repository interfaces
type PendingTopUpRepositoryFacade interface {
	PendingTopUpReader
	PendingTopUpWriter
}
