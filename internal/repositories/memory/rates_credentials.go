package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/multicurrency_ledger/internal/apperrors"
	"github.com/SscSPs/multicurrency_ledger/internal/core/domain"
)

func (s *Store) SaveExchangeRate(_ context.Context, rate domain.ExchangeRate) error {
	if rate.FromCurrencyCode == rate.ToCurrencyCode {
		return apperrors.NewValidationError("from and to currencies cannot be the same")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, r := range s.state.rates {
		if r.FromCurrencyCode == rate.FromCurrencyCode && r.ToCurrencyCode == rate.ToCurrencyCode && r.DateEffective.Equal(rate.DateEffective) {
			rate.ExchangeRateID = r.ExchangeRateID
			rate.CreatedAt = r.CreatedAt
			s.state.rates[i] = rate
			return nil
		}
	}
	s.state.rates = append(s.state.rates, rate)
	return nil
}

func (s *Store) FindExchangeRate(_ context.Context, fromCurrencyCode, toCurrencyCode string, asOf time.Time) (*domain.ExchangeRate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if fromCurrencyCode == toCurrencyCode {
		identity := domain.IdentityRate(fromCurrencyCode)
		return &identity, nil
	}
	if r, ok := s.state.rateInForce(fromCurrencyCode, toCurrencyCode, asOf); ok {
		return &r, nil
	}
	if r, ok := s.state.rateInForce(toCurrencyCode, fromCurrencyCode, asOf); ok {
		if inv, ok := r.Inverse(); ok {
			return &inv, nil
		}
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("no exchange rate found for currency pair %s to %s", fromCurrencyCode, toCurrencyCode))
}

func (s *Store) ListExchangeRates(_ context.Context) ([]domain.ExchangeRate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]domain.ExchangeRate{}, s.state.rates...), nil
}

func (st *state) rateInForce(from, to string, asOf time.Time) (domain.ExchangeRate, bool) {
	var best domain.ExchangeRate
	found := false
	for _, r := range st.rates {
		if r.FromCurrencyCode != from || r.ToCurrencyCode != to || r.DateEffective.After(asOf) {
			continue
		}
		if !found || r.DateEffective.After(best.DateEffective) {
			best, found = r, true
		}
	}
	return best, found
}

func (s *Store) FindCredentialByUsername(_ context.Context, username string) (*domain.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.state.credentials[username]
	if !ok {
		return nil, fmt.Errorf("%w: credential %q", apperrors.ErrNotFound, username)
	}
	return &c, nil
}

func (s *Store) SaveCredential(_ context.Context, cred domain.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.state.credentials[cred.Username]; ok {
		return fmt.Errorf("%w: username %q", apperrors.ErrDuplicate, cred.Username)
	}
	s.state.credentials[cred.Username] = cred
	return nil
}
