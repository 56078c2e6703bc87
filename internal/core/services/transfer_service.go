package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/multicurrency_ledger/internal/apperrors"
	"github.com/SscSPs/multicurrency_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/multicurrency_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/multicurrency_ledger/internal/core/ports/services"
	"github.com/SscSPs/multicurrency_ledger/internal/dto"
	"github.com/SscSPs/multicurrency_ledger/internal/observability"
	"github.com/SscSPs/multicurrency_ledger/internal/utils/accounting"
	"github.com/SscSPs/multicurrency_ledger/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	defaultQuoteTimeout     = 5 * time.Second
	defaultTransactionLimit = 50
)

// transferService implements portssvc.TransferSvcFacade. It is the only component that mutates balances.
type transferService struct {
	BaseService
	txManager       portsrepo.TransactionManager
	subAccountRepo  portsrepo.SubAccountReader
	transactionRepo portsrepo.TransactionReader
	quoter          portssvc.RateQuoter
	quoteSource     string
	quoteTimeout    time.Duration
	now             func() time.Time
}

// TransferServiceOption configures optional collaborators of the transfer service.
type TransferServiceOption func(*transferService)

// WithRateQuoter sets the quoter used for conversions and the deadline applied to each quote.
func WithRateQuoter(q portssvc.RateQuoter, source string, timeout time.Duration) TransferServiceOption {
	return func(s *transferService) {
		s.quoter = q
		if source != "" {
			s.quoteSource = source
		}
		if timeout > 0 {
			s.quoteTimeout = timeout
		}
	}
}

// WithClock overrides the time source stamped on history records.
func WithClock(now func() time.Time) TransferServiceOption {
	return func(s *transferService) {
		s.now = now
	}
}

// NewTransferService creates a new transfer service.
func NewTransferService(
	txManager portsrepo.TransactionManager,
	subAccountRepo portsrepo.SubAccountReader,
	transactionRepo portsrepo.TransactionReader,
	opts ...TransferServiceOption,
) portssvc.TransferSvcFacade {
	s := &transferService{
		txManager:       txManager,
		subAccountRepo:  subAccountRepo,
		transactionRepo: transactionRepo,
		quoteSource:     "none",
		quoteTimeout:    defaultQuoteTimeout,
		now:             func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.TransferSvcFacade = (*transferService)(nil)

func (s *transferService) Transfer(ctx context.Context, fromAccountID, toAccountID string, amount decimal.Decimal, currencyCode string) (txn *domain.Transaction, err error) {
	defer func() {
		observability.TransfersTotal.WithLabelValues(string(domain.KindTransfer), observability.Outcome(err)).Inc()
	}()

	currency := domain.NormalizeCurrency(currencyCode)
	if err = domain.ValidateMovement(amount, currency); err != nil {
		return nil, err
	}

	err = s.txManager.WithinTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		var txErr error
		txn, txErr = moveFunds(ctx, tx, domain.KindTransfer, fromAccountID, toAccountID, amount, currency, s.now())
		return txErr
	})
	if err != nil {
		s.LogFailure(ctx, err, "Transfer failed", slog.String("from_account_id", fromAccountID), slog.String("to_account_id", toAccountID))
		return nil, err
	}

	s.LogInfo(ctx, "Transfer completed",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("amount", amount.String()),
		slog.String("currency", currency))
	return txn, nil
}

func (s *transferService) Convert(ctx context.Context, accountID string, req dto.ConversionRequest) (txn *domain.Transaction, err error) {
	defer func() {
		observability.TransfersTotal.WithLabelValues(string(domain.KindConversion), observability.Outcome(err)).Inc()
	}()

	fromCurrency := domain.NormalizeCurrency(req.FromCurrencyCode)
	toCurrency := domain.NormalizeCurrency(req.ToCurrencyCode)
	if err = domain.ValidateMovement(req.Amount, fromCurrency); err != nil {
		return nil, err
	}
	if err = domain.ValidateCurrency(toCurrency); err != nil {
		return nil, err
	}
	if fromCurrency == toCurrency {
		return nil, fmt.Errorf("%w: conversion needs two different currencies", apperrors.ErrValidation)
	}

	// Unlocked pre-check so obviously failing conversions never reach the quoter.
	source, err := s.subAccountRepo.FindSubAccount(ctx, accountID, fromCurrency)
	if err != nil {
		return nil, err
	}
	if _, err = s.subAccountRepo.FindSubAccount(ctx, accountID, toCurrency); err != nil {
		return nil, err
	}
	if err = accounting.EnsureSufficientFunds(*source, req.Amount); err != nil {
		return nil, err
	}

	converted, err := s.quote(ctx, fromCurrency, toCurrency, req.Amount)
	if err != nil {
		s.LogFailure(ctx, err, "Conversion quote failed", slog.String("from", fromCurrency), slog.String("to", toCurrency))
		return nil, err
	}

	err = s.txManager.WithinTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		from, to, lockErr := lockPair(ctx, tx, accountID, fromCurrency, accountID, toCurrency)
		if lockErr != nil {
			return lockErr
		}
		if fundsErr := accounting.EnsureSufficientFunds(*from, req.Amount); fundsErr != nil {
			return fundsErr
		}

		now := s.now()
		if _, adjErr := tx.AdjustBalance(ctx, from.SubAccountID, req.Amount.Neg(), now); adjErr != nil {
			return fmt.Errorf("debit %s: %w", from.SubAccountID, adjErr)
		}
		if _, adjErr := tx.AdjustBalance(ctx, to.SubAccountID, converted, now); adjErr != nil {
			return fmt.Errorf("credit %s: %w", to.SubAccountID, adjErr)
		}

		record := domain.Transaction{
			TransactionID:    uuid.NewString(),
			Kind:             domain.KindConversion,
			FromSubAccountID: from.SubAccountID,
			ToSubAccountID:   to.SubAccountID,
			Amount:           req.Amount,
			CurrencyCode:     fromCurrency,
			CreditAmount:     converted,
			CreatedAt:        now,
		}
		if saveErr := tx.SaveTransaction(ctx, record); saveErr != nil {
			return fmt.Errorf("record transaction: %w", saveErr)
		}
		txn = &record
		return nil
	})
	if err != nil {
		s.LogFailure(ctx, err, "Conversion failed", slog.String("account_id", accountID))
		return nil, err
	}

	s.LogInfo(ctx, "Conversion completed",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("debited", req.Amount.String()+" "+fromCurrency),
		slog.String("credited", converted.String()+" "+toCurrency))
	return txn, nil
}

// quote asks the configured quoter under a deadline. Every failure is reported as ErrRateUnavailable.
func (s *transferService) quote(ctx context.Context, from, to string, amount decimal.Decimal) (decimal.Decimal, error) {
	if s.quoter == nil {
		return decimal.Zero, fmt.Errorf("%w: no rate quoter configured", apperrors.ErrRateUnavailable)
	}

	qctx, cancel := context.WithTimeout(ctx, s.quoteTimeout)
	defer cancel()

	start := time.Now()
	converted, err := s.quoter.Quote(qctx, from, to, amount)
	if err == nil {
		converted = converted.Round(domain.AmountScale)
	}
	if err == nil && !converted.IsPositive() {
		err = fmt.Errorf("%w: quoter returned non-positive amount %s", apperrors.ErrRateUnavailable, converted.String())
	}
	if err != nil && !errors.Is(err, apperrors.ErrRateUnavailable) {
		err = fmt.Errorf("%w: %w", apperrors.ErrRateUnavailable, err)
	}
	observability.QuoteDuration.WithLabelValues(s.quoteSource, observability.Outcome(err)).Observe(time.Since(start).Seconds())
	if err != nil {
		return decimal.Zero, err
	}
	return converted, nil
}

func (s *transferService) TopUp(ctx context.Context, accountID string, amount decimal.Decimal, currencyCode string) (txn *domain.Transaction, err error) {
	defer func() {
		observability.TransfersTotal.WithLabelValues(string(domain.KindFunding), observability.Outcome(err)).Inc()
	}()

	currency := domain.NormalizeCurrency(currencyCode)
	if err = domain.ValidateMovement(amount, currency); err != nil {
		return nil, err
	}

	err = s.txManager.WithinTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		sub, findErr := tx.FindSubAccountForUpdate(ctx, accountID, currency)
		if findErr != nil {
			return findErr
		}
		now := s.now()
		if _, adjErr := tx.AdjustBalance(ctx, sub.SubAccountID, amount, now); adjErr != nil {
			return fmt.Errorf("credit %s: %w", sub.SubAccountID, adjErr)
		}
		record := domain.Transaction{
			TransactionID:  uuid.NewString(),
			Kind:           domain.KindFunding,
			ToSubAccountID: sub.SubAccountID,
			Amount:         amount,
			CurrencyCode:   currency,
			CreditAmount:   amount,
			CreatedAt:      now,
		}
		if saveErr := tx.SaveTransaction(ctx, record); saveErr != nil {
			return fmt.Errorf("record transaction: %w", saveErr)
		}
		txn = &record
		return nil
	})
	if err != nil {
		s.LogFailure(ctx, err, "Funding failed", slog.String("account_id", accountID))
		return nil, err
	}

	s.LogInfo(ctx, "Sub-account funded", slog.String("transaction_id", txn.TransactionID), slog.String("account_id", accountID))
	return txn, nil
}

func (s *transferService) GetTransaction(ctx context.Context, accountID, transactionID string) (*domain.Transaction, error) {
	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	for _, subID := range []string{txn.FromSubAccountID, txn.ToSubAccountID} {
		if subID == "" {
			continue
		}
		sub, err := s.subAccountRepo.FindSubAccountByID(ctx, subID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				continue
			}
			return nil, err
		}
		if sub.AccountID == accountID {
			return txn, nil
		}
	}
	return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
}

func (s *transferService) ListTransactions(ctx context.Context, accountID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultTransactionLimit
	}

	page := portsrepo.TransactionPage{Limit: limit + 1}
	if params.NextToken != "" {
		createdAt, id, err := pagination.DecodeToken(params.NextToken)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		page.AfterCreatedAt = &createdAt
		page.AfterID = id
	}

	txns, err := s.transactionRepo.ListTransactionsByAccount(ctx, accountID, page)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions", slog.String("account_id", accountID))
		return nil, err
	}

	resp := &dto.ListTransactionsResponse{}
	if len(txns) > limit {
		txns = txns[:limit]
		last := txns[len(txns)-1]
		resp.NextToken = pagination.EncodeToken(last.CreatedAt, last.TransactionID)
	}
	resp.Transactions = dto.ToListTransactionResponse(txns)
	return resp, nil
}
