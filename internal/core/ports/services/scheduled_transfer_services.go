package services

import (
	"context"
	"time"

	"github.com/SscSPs/multicurrency_ledger/internal/core/domain"
	"github.com/SscSPs/multicurrency_ledger/internal/dto"
)

// ScheduledTransferSvcFacade manages recurring transfer definitions.
type ScheduledTransferSvcFacade interface {
	CreateScheduledTransfer(ctx context.Context, fromAccountID string, req dto.CreateScheduledTransferRequest) (*domain.ScheduledTransfer, error)
	ListScheduledTransfers(ctx context.Context, fromAccountID string) ([]domain.ScheduledTransfer, error)
	ListAllScheduledTransfers(ctx context.Context) ([]domain.ScheduledTransfer, error)
	// DeleteScheduledTransfer removes a series owned by fromAccountID; other owners see apperrors.ErrNotFound.
	DeleteScheduledTransfer(ctx context.Context, fromAccountID, scheduledTransferID string) error
}

// SchedulerSvc executes recurring transfers that fall due.
type SchedulerSvc interface {
	// RunDueTransfers runs every transfer scheduled exactly on today's date.
	// Per-transfer failures are reported in the batch report; only a failure to load the due list is returned.
	RunDueTransfers(ctx context.Context, today time.Time) (*domain.BatchReport, error)
}
