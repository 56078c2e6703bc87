package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/multicurrency_ledger/internal/apperrors"
	"github.com/SscSPs/multicurrency_ledger/internal/core/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func (s *Store) SaveAccount(_ context.Context, account domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.state.accounts[account.AccountID]; ok {
		return fmt.Errorf("%w: account with ID %s already exists", apperrors.ErrDuplicate, account.AccountID)
	}
	for _, a := range s.state.accounts {
		if a.HolderName == account.HolderName {
			return fmt.Errorf("%w: %q", apperrors.ErrDuplicateAccount, account.HolderName)
		}
	}
	s.state.accounts[account.AccountID] = account
	return nil
}

func (s *Store) FindAccountByID(_ context.Context, accountID string) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.state.accounts[accountID]
	if !ok {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	return &a, nil
}

func (s *Store) FindAccountByHolderName(_ context.Context, holderName string) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.state.accounts {
		if a.HolderName == holderName {
			found := a
			return &found, nil
		}
	}
	return nil, fmt.Errorf("%w: account holder %q", apperrors.ErrNotFound, holderName)
}

func (s *Store) ListAccounts(_ context.Context, limit, offset int) ([]domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := make([]domain.Account, 0, len(s.state.accounts))
	for _, a := range s.state.accounts {
		all = append(all, a)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].AccountID < all[j].AccountID
		}
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})
	return page(all, limit, offset), nil
}

func (s *Store) SaveSubAccount(_ context.Context, sub domain.SubAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.state.accounts[sub.AccountID]; !ok {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, sub.AccountID)
	}
	if _, ok := s.state.findSubAccount(sub.AccountID, sub.CurrencyCode); ok {
		return fmt.Errorf("%w: %s for account %s", apperrors.ErrDuplicateSubAccount, sub.CurrencyCode, sub.AccountID)
	}
	if sub.Balance.IsNegative() {
		return fmt.Errorf("%w: opening balance cannot be negative", apperrors.ErrValidation)
	}
	s.state.subAccounts[sub.SubAccountID] = sub
	return nil
}

func (s *Store) FindSubAccount(_ context.Context, accountID, currencyCode string) (*domain.SubAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.state.findSubAccount(accountID, currencyCode)
	if !ok {
		return nil, fmt.Errorf("%w: %s for account %s", apperrors.ErrNoMatchingSubAccount, currencyCode, accountID)
	}
	return &sub, nil
}

func (s *Store) FindSubAccountByID(_ context.Context, subAccountID string) (*domain.SubAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.state.subAccounts[subAccountID]
	if !ok {
		return nil, fmt.Errorf("%w: sub-account %s", apperrors.ErrNotFound, subAccountID)
	}
	return &sub, nil
}

func (s *Store) ListSubAccountsByAccount(_ context.Context, accountID string) ([]domain.SubAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	subs := make([]domain.SubAccount, 0)
	for _, sub := range s.state.subAccounts {
		if sub.AccountID == accountID {
			subs = append(subs, sub)
		}
	}
	sort.Slice(subs, func(i, j int) bool { return subs[i].CurrencyCode < subs[j].CurrencyCode })
	return subs, nil
}

func (st *state) findSubAccount(accountID, currencyCode string) (domain.SubAccount, bool) {
	for _, sub := range st.subAccounts {
		if sub.AccountID == accountID && sub.CurrencyCode == currencyCode {
			return sub, true
		}
	}
	return domain.SubAccount{}, false
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// SeedReserve creates the reserve account with an empty sub-account per supported currency.
// It matches the rows the database migrations insert and is a no-op once the reserve exists.
func (s *Store) SeedReserve(_ context.Context, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.state.accounts[domain.ReserveAccountID]; ok {
		return
	}
	audit := domain.NewAuditFields(at)
	s.state.accounts[domain.ReserveAccountID] = domain.Account{
		AccountID:   domain.ReserveAccountID,
		HolderName:  "Reserve",
		Status:      domain.AccountActive,
		AuditFields: audit,
	}
	for _, code := range domain.SupportedCurrencies {
		id := uuid.NewString()
		s.state.subAccounts[id] = domain.SubAccount{
			SubAccountID: id,
			AccountID:    domain.ReserveAccountID,
			CurrencyCode: code,
			Balance:      decimal.Zero,
			AuditFields:  audit,
		}
	}
}
