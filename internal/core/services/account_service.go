package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/multicurrency_ledger/internal/apperrors"
	"github.com/SscSPs/multicurrency_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/multicurrency_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/multicurrency_ledger/internal/core/ports/services"
	"github.com/SscSPs/multicurrency_ledger/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// accountService implements portssvc.AccountSvcFacade
type accountService struct {
	BaseService
	accountRepo    portsrepo.AccountRepositoryFacade
	subAccountRepo portsrepo.SubAccountRepositoryFacade
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, subAccountRepo portsrepo.SubAccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo:    accountRepo,
		subAccountRepo: subAccountRepo,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	name := strings.TrimSpace(req.HolderName)
	if err := domain.ValidateHolderName(name); err != nil {
		return nil, err
	}

	_, err := s.accountRepo.FindAccountByHolderName(ctx, name)
	if err == nil {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrDuplicateAccount, name)
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check holder name", slog.String("holder_name", name))
		return nil, fmt.Errorf("failed to check holder name: %w", err)
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		HolderName:  name,
		Status:      domain.AccountActive,
		AuditFields: domain.NewAuditFields(now),
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogFailure(ctx, err, "Failed to save account", slog.String("holder_name", name))
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.LogInfo(ctx, "Account created", slog.String("account_id", account.AccountID))
	return &account, nil
}

func (s *accountService) CreateSubAccount(ctx context.Context, accountID string, req dto.CreateSubAccountRequest) (*domain.SubAccount, error) {
	currency := domain.NormalizeCurrency(req.CurrencyCode)
	if err := domain.ValidateCurrency(currency); err != nil {
		return nil, err
	}
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	now := time.Now().UTC()
	sub := domain.SubAccount{
		SubAccountID: uuid.NewString(),
		AccountID:    accountID,
		CurrencyCode: currency,
		Balance:      decimal.Zero,
		AuditFields:  domain.NewAuditFields(now),
	}

	if err := s.subAccountRepo.SaveSubAccount(ctx, sub); err != nil {
		s.LogFailure(ctx, err, "Failed to save sub-account", slog.String("account_id", accountID), slog.String("currency", currency))
		return nil, fmt.Errorf("failed to create sub-account: %w", err)
	}

	s.LogInfo(ctx, "Sub-account created", slog.String("account_id", accountID), slog.String("currency", currency))
	return &sub, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByID(ctx, accountID)
}

func (s *accountService) ListAccounts(ctx context.Context, limit, offset int) ([]domain.Account, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.accountRepo.ListAccounts(ctx, limit, offset)
}

func (s *accountService) ListSubAccounts(ctx context.Context, accountID string) ([]domain.SubAccount, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, err
	}
	return s.subAccountRepo.ListSubAccountsByAccount(ctx, accountID)
}

func (s *accountService) GetBalance(ctx context.Context, accountID, currencyCode string) (*domain.SubAccount, error) {
	currency := domain.NormalizeCurrency(currencyCode)
	if err := domain.ValidateCurrency(currency); err != nil {
		return nil, err
	}
	return s.subAccountRepo.FindSubAccount(ctx, accountID, currency)
}
