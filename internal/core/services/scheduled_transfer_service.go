package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/multicurrency_ledger/internal/apperrors"
	"github.com/SscSPs/multicurrency_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/multicurrency_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/multicurrency_ledger/internal/core/ports/services"
	"github.com/SscSPs/multicurrency_ledger/internal/dto"
	"github.com/google/uuid"
)

// scheduledTransferService implements portssvc.ScheduledTransferSvcFacade.
type scheduledTransferService struct {
	BaseService
	accountRepo   portsrepo.AccountReader
	scheduledRepo portsrepo.ScheduledTransferRepositoryFacade
}

// NewScheduledTransferService creates a new scheduled transfer service.
func NewScheduledTransferService(accountRepo portsrepo.AccountReader, scheduledRepo portsrepo.ScheduledTransferRepositoryFacade) portssvc.ScheduledTransferSvcFacade {
	return &scheduledTransferService{
		accountRepo:   accountRepo,
		scheduledRepo: scheduledRepo,
	}
}

var _ portssvc.ScheduledTransferSvcFacade = (*scheduledTransferService)(nil)

func (s *scheduledTransferService) CreateScheduledTransfer(ctx context.Context, fromAccountID string, req dto.CreateScheduledTransferRequest) (*domain.ScheduledTransfer, error) {
	currency := domain.NormalizeCurrency(req.CurrencyCode)
	if err := domain.ValidateMovement(req.Amount, currency); err != nil {
		return nil, err
	}
	if fromAccountID == req.ToAccountID {
		return nil, apperrors.ErrSameSubAccount
	}
	date, err := domain.ParseDate(req.ScheduledDate)
	if err != nil {
		return nil, fmt.Errorf("%w: scheduled date must be YYYY-MM-DD", apperrors.ErrValidation)
	}

	if _, err := s.accountRepo.FindAccountByID(ctx, fromAccountID); err != nil {
		return nil, err
	}
	if _, err := s.accountRepo.FindAccountByID(ctx, req.ToAccountID); err != nil {
		return nil, err
	}

	st := domain.ScheduledTransfer{
		ScheduledTransferID: uuid.NewString(),
		FromAccountID:       fromAccountID,
		ToAccountID:         req.ToAccountID,
		Amount:              req.Amount,
		CurrencyCode:        currency,
		ScheduledDate:       domain.TruncateToDate(date),
		CreatedAt:           time.Now().UTC(),
	}
	if err := s.scheduledRepo.SaveScheduledTransfer(ctx, st); err != nil {
		s.LogError(ctx, err, "Failed to save scheduled transfer", slog.String("from_account_id", fromAccountID))
		return nil, fmt.Errorf("failed to create scheduled transfer: %w", err)
	}

	s.LogInfo(ctx, "Scheduled transfer created",
		slog.String("scheduled_transfer_id", st.ScheduledTransferID),
		slog.String("first_run", st.ScheduledDate.Format(time.DateOnly)))
	return &st, nil
}

func (s *scheduledTransferService) ListScheduledTransfers(ctx context.Context, fromAccountID string) ([]domain.ScheduledTransfer, error) {
	return s.scheduledRepo.ListScheduledTransfersByAccount(ctx, fromAccountID)
}

func (s *scheduledTransferService) ListAllScheduledTransfers(ctx context.Context) ([]domain.ScheduledTransfer, error) {
	return s.scheduledRepo.ListScheduledTransfers(ctx)
}

func (s *scheduledTransferService) DeleteScheduledTransfer(ctx context.Context, fromAccountID, scheduledTransferID string) error {
	st, err := s.scheduledRepo.FindScheduledTransferByID(ctx, scheduledTransferID)
	if err != nil {
		return err
	}
	if st.FromAccountID != fromAccountID {
		return fmt.Errorf("%w: scheduled transfer %s", apperrors.ErrNotFound, scheduledTransferID)
	}
	if err := s.scheduledRepo.DeleteScheduledTransfer(ctx, scheduledTransferID); err != nil {
		return err
	}
	s.LogInfo(ctx, "Scheduled transfer deleted", slog.String("scheduled_transfer_id", scheduledTransferID))
	return nil
}
