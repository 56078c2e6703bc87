package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/multicurrency_ledger/internal/apperrors"
	"github.com/SscSPs/multicurrency_ledger/internal/core/domain"
)

func (s *Store) SavePendingTopUp(_ context.Context, topUp domain.PendingTopUp) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.state.pending[topUp.PendingTopUpID]; ok {
		return fmt.Errorf("%w: pending top-up %s", apperrors.ErrDuplicate, topUp.PendingTopUpID)
	}
	s.state.pending[topUp.PendingTopUpID] = topUp
	return nil
}

func (s *Store) FindPendingTopUpByID(_ context.Context, pendingTopUpID string) (*domain.PendingTopUp, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.state.pending[pendingTopUpID]
	if !ok {
		return nil, fmt.Errorf("%w: pending top-up %s", apperrors.ErrNotFound, pendingTopUpID)
	}
	return &p, nil
}

func (s *Store) ListPendingTopUps(_ context.Context) ([]domain.PendingTopUp, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.PendingTopUp, 0, len(s.state.pending))
	for _, p := range s.state.pending {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].PendingTopUpID < out[j].PendingTopUpID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
