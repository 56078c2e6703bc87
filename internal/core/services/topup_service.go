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
	"github.com/SscSPs/multicurrency_ledger/internal/observability"
	"github.com/google/uuid"
)

// topUpService implements portssvc.TopUpSvcFacade.
type topUpService struct {
	BaseService
	txManager   portsrepo.TransactionManager
	accountRepo portsrepo.AccountReader
	pendingRepo portsrepo.PendingTopUpRepositoryFacade
}

// NewTopUpService creates a new top-up service.
func NewTopUpService(txManager portsrepo.TransactionManager, accountRepo portsrepo.AccountReader, pendingRepo portsrepo.PendingTopUpRepositoryFacade) portssvc.TopUpSvcFacade {
	return &topUpService{
		txManager:   txManager,
		accountRepo: accountRepo,
		pendingRepo: pendingRepo,
	}
}

var _ portssvc.TopUpSvcFacade = (*topUpService)(nil)

// Stage records the request without touching any balance.
func (s *topUpService) Stage(ctx context.Context, accountID string, req dto.StageTopUpRequest) (*domain.PendingTopUp, error) {
	currency := domain.NormalizeCurrency(req.CurrencyCode)
	if err := domain.ValidateMovement(req.Amount, currency); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.IsReserve() {
		return nil, fmt.Errorf("%w: the reserve account cannot request top-ups", apperrors.ErrValidation)
	}

	pending := domain.PendingTopUp{
		PendingTopUpID: uuid.NewString(),
		AccountID:      accountID,
		Amount:         req.Amount,
		CurrencyCode:   currency,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.pendingRepo.SavePendingTopUp(ctx, pending); err != nil {
		s.LogError(ctx, err, "Failed to stage top-up", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to stage top-up: %w", err)
	}

	observability.PendingTopUpsStaged.Inc()
	s.LogInfo(ctx, "Top-up staged",
		slog.String("pending_topup_id", pending.PendingTopUpID),
		slog.String("amount", pending.Amount.String()),
		slog.String("currency", currency))
	return &pending, nil
}

func (s *topUpService) ListPending(ctx context.Context) ([]domain.PendingTopUp, error) {
	return s.pendingRepo.ListPendingTopUps(ctx)
}

// Approve moves the staged amount from the reserve to the requester and consumes the request
// in the same unit of work, so a request can be approved at most once.
func (s *topUpService) Approve(ctx context.Context, pendingTopUpID string) (txn *domain.Transaction, err error) {
	defer func() {
		observability.TransfersTotal.WithLabelValues(string(domain.KindTopUp), observability.Outcome(err)).Inc()
	}()

	err = s.txManager.WithinTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		pending, findErr := tx.FindPendingTopUpForUpdate(ctx, pendingTopUpID)
		if findErr != nil {
			return findErr
		}
		moved, moveErr := moveFunds(ctx, tx, domain.KindTopUp, domain.ReserveAccountID, pending.AccountID, pending.Amount, pending.CurrencyCode, time.Now().UTC())
		if moveErr != nil {
			return moveErr
		}
		if delErr := tx.DeletePendingTopUp(ctx, pendingTopUpID); delErr != nil {
			return delErr
		}
		txn = moved
		return nil
	})
	if err != nil {
		s.LogWarn(ctx, err, "Top-up approval failed", slog.String("pending_topup_id", pendingTopUpID))
		return nil, err
	}

	s.LogInfo(ctx, "Top-up approved", slog.String("pending_topup_id", pendingTopUpID), slog.String("transaction_id", txn.TransactionID))
	return txn, nil
}
