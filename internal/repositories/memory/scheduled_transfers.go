package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/multicurrency_ledger/internal/apperrors"
	"github.com/SscSPs/multicurrency_ledger/internal/core/domain"
)

func (s *Store) SaveScheduledTransfer(_ context.Context, st domain.ScheduledTransfer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.state.scheduled[st.ScheduledTransferID]; ok {
		return fmt.Errorf("%w: scheduled transfer %s", apperrors.ErrDuplicate, st.ScheduledTransferID)
	}
	st.ScheduledDate = domain.TruncateToDate(st.ScheduledDate)
	s.state.scheduled[st.ScheduledTransferID] = st
	return nil
}

func (s *Store) FindScheduledTransferByID(_ context.Context, id string) (*domain.ScheduledTransfer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.state.scheduled[id]
	if !ok {
		return nil, fmt.Errorf("%w: scheduled transfer %s", apperrors.ErrNotFound, id)
	}
	return &st, nil
}

func (s *Store) ListScheduledTransfers(_ context.Context) ([]domain.ScheduledTransfer, error) {
	return s.filterScheduled(func(domain.ScheduledTransfer) bool { return true }), nil
}

func (s *Store) ListScheduledTransfersByAccount(_ context.Context, fromAccountID string) ([]domain.ScheduledTransfer, error) {
	return s.filterScheduled(func(st domain.ScheduledTransfer) bool { return st.FromAccountID == fromAccountID }), nil
}

func (s *Store) ListDueScheduledTransfers(_ context.Context, on time.Time) ([]domain.ScheduledTransfer, error) {
	return s.filterScheduled(func(st domain.ScheduledTransfer) bool { return st.IsDue(on) }), nil
}

func (s *Store) UpdateScheduledDate(_ context.Context, id string, next time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.state.scheduled[id]
	if !ok {
		return fmt.Errorf("%w: scheduled transfer %s", apperrors.ErrNotFound, id)
	}
	st.ScheduledDate = domain.TruncateToDate(next)
	s.state.scheduled[id] = st
	return nil
}

func (s *Store) DeleteScheduledTransfer(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.state.scheduled[id]; !ok {
		return fmt.Errorf("%w: scheduled transfer %s", apperrors.ErrNotFound, id)
	}
	delete(s.state.scheduled, id)
	return nil
}

func (s *Store) filterScheduled(keep func(domain.ScheduledTransfer) bool) []domain.ScheduledTransfer {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.ScheduledTransfer, 0)
	for _, st := range s.state.scheduled {
		if keep(st) {
			out = append(out, st)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ScheduledDate.Equal(out[j].ScheduledDate) {
			return out[i].ScheduledTransferID < out[j].ScheduledTransferID
		}
		return out[i].ScheduledDate.Before(out[j].ScheduledDate)
	})
	return out
}
