package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/multicurrency_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/multicurrency_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/multicurrency_ledger/internal/core/ports/services"
	"github.com/SscSPs/multicurrency_ledger/internal/observability"
	"github.com/SscSPs/multicurrency_ledger/internal/utils"
)

const defaultAlertTimeout = 5 * time.Second

// schedulerService implements portssvc.SchedulerSvc.
type schedulerService struct {
	BaseService
	scheduledRepo portsrepo.ScheduledTransferRepositoryFacade
	transfers     portssvc.TransferSvc
	notifier      portssvc.Notifier
	alertTimeout  time.Duration
}

// NewSchedulerService creates a new scheduler. A nil notifier disables alerts.
func NewSchedulerService(scheduledRepo portsrepo.ScheduledTransferRepositoryFacade, transfers portssvc.TransferSvc, notifier portssvc.Notifier, alertTimeout time.Duration) portssvc.SchedulerSvc {
	if alertTimeout <= 0 {
		alertTimeout = defaultAlertTimeout
	}
	return &schedulerService{
		scheduledRepo: scheduledRepo,
		transfers:     transfers,
		notifier:      notifier,
		alertTimeout:  alertTimeout,
	}
}

var _ portssvc.SchedulerSvc = (*schedulerService)(nil)

// RunDueTransfers executes each due transfer independently. The transfer and the date advance
// are separate writes, so a crash between them re-runs the transfer on the next invocation.
func (s *schedulerService) RunDueTransfers(ctx context.Context, today time.Time) (*domain.BatchReport, error) {
	runDate := domain.TruncateToDate(today)
	logger := s.GetLogger(ctx).With(slog.String("run_date", runDate.Format(time.DateOnly)))

	due, err := s.scheduledRepo.ListDueScheduledTransfers(ctx, runDate)
	if err != nil {
		logger.Error("Failed to load due scheduled transfers", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to load due scheduled transfers: %w", err)
	}

	report := &domain.BatchReport{
		RunDate:  runDate,
		Due:      len(due),
		Outcomes: make([]domain.ScheduledRunOutcome, 0, len(due)),
	}
	logger.Info("Running scheduled transfers", slog.Int("due", len(due)))

	for _, st := range due {
		if ctx.Err() != nil {
			outcome := domain.ScheduledRunOutcome{ScheduledTransferID: st.ScheduledTransferID, Err: ctx.Err(), Error: ctx.Err().Error()}
			report.Outcomes = append(report.Outcomes, outcome)
			report.Failed++
			continue
		}

		outcome := s.runOne(ctx, logger, st)
		report.Outcomes = append(report.Outcomes, outcome)
		if outcome.Succeeded() {
			report.Succeeded++
		} else {
			report.Failed++
		}
		observability.ScheduledRuns.WithLabelValues(observability.Outcome(outcome.Err)).Inc()
	}

	logger.Info("Scheduled transfer run finished", slog.Int("succeeded", report.Succeeded), slog.Int("failed", report.Failed))
	return report, nil
}

func (s *schedulerService) runOne(ctx context.Context, logger *slog.Logger, st domain.ScheduledTransfer) domain.ScheduledRunOutcome {
	outcome := domain.ScheduledRunOutcome{ScheduledTransferID: st.ScheduledTransferID}
	stLogger := logger.With(slog.String("scheduled_transfer_id", st.ScheduledTransferID))

	txn, err := s.transfers.Transfer(ctx, st.FromAccountID, st.ToAccountID, st.Amount, st.CurrencyCode)
	if err != nil {
		stLogger.Warn("Scheduled transfer failed", slog.String("error", err.Error()))
		outcome.Err = err
		outcome.Error = err.Error()
		s.alert(ctx, stLogger, fmt.Sprintf("Failed to execute scheduled transfer %s of %s from %s to %s: %v",
			st.ScheduledTransferID, utils.FormatMoney(st.Amount, st.CurrencyCode), st.FromAccountID, st.ToAccountID, err))
		return outcome
	}
	outcome.Transaction = txn

	next := domain.NextMonthlyOccurrence(st.ScheduledDate)
	if err := s.scheduledRepo.UpdateScheduledDate(ctx, st.ScheduledTransferID, next); err != nil {
		// The money has moved but the series still points at today; a second run today repeats it.
		stLogger.Error("Failed to advance scheduled date after successful transfer",
			slog.String("transaction_id", txn.TransactionID),
			slog.String("error", err.Error()))
		outcome.Err = fmt.Errorf("transfer %s executed but date not advanced: %w", txn.TransactionID, err)
		outcome.Error = outcome.Err.Error()
		s.alert(ctx, stLogger, fmt.Sprintf("Scheduled transfer %s executed as %s but its next date could not be saved: %v",
			st.ScheduledTransferID, txn.TransactionID, err))
		return outcome
	}
	outcome.NextScheduledDate = &next

	stLogger.Info("Scheduled transfer executed",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("next_date", next.Format(time.DateOnly)))
	s.alert(ctx, stLogger, fmt.Sprintf("Executed scheduled transfer %s: %s from %s to %s, next run %s",
		st.ScheduledTransferID, utils.FormatMoney(st.Amount, st.CurrencyCode), st.FromAccountID, st.ToAccountID, next.Format(time.DateOnly)))
	return outcome
}

// alert is best effort: failures are logged and counted, never returned.
func (s *schedulerService) alert(ctx context.Context, logger *slog.Logger, message string) {
	if s.notifier == nil {
		return
	}
	actx, cancel := context.WithTimeout(ctx, s.alertTimeout)
	defer cancel()

	if err := s.notifier.Notify(actx, message); err != nil {
		observability.AlertFailures.Inc()
		level := slog.LevelWarn
		if errors.Is(err, context.Canceled) {
			level = slog.LevelDebug
		}
		logger.Log(ctx, level, "Failed to send alert", slog.String("error", err.Error()))
	}
}
