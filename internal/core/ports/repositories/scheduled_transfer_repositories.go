package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/multicurrency_ledger/internal/core/domain"
)

// ScheduledTransferReader defines read operations for recurring transfers
type ScheduledTransferReader interface {
	FindScheduledTransferByID(ctx context.Context, scheduledTransferID string) (*domain.ScheduledTransfer, error)
	ListScheduledTransfers(ctx context.Context) ([]domain.ScheduledTransfer, error)
	ListScheduledTransfersByAccount(ctx context.Context, fromAccountID string) ([]domain.ScheduledTransfer, error)
	// ListDueScheduledTransfers returns transfers whose scheduled date equals the given date exactly.
	ListDueScheduledTransfers(ctx context.Context, on time.Time) ([]domain.ScheduledTransfer, error)
}

// ScheduledTransferWriter defines write operations for recurring transfers
type ScheduledTransferWriter interface {
	SaveScheduledTransfer(ctx context.Context, st domain.ScheduledTransfer) error
	// UpdateScheduledDate moves the series to its next occurrence.
	UpdateScheduledDate(ctx context.Context, scheduledTransferID string, next time.Time) error
	DeleteScheduledTransfer(ctx context.Context, scheduledTransferID string) error
}

// ScheduledTransferRepositoryFacade combines all scheduled transfer repository interfaces
type ScheduledTransferRepositoryFacade interface {
	ScheduledTransferReader
	ScheduledTransferWriter
}
