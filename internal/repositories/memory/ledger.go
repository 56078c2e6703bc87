package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/multicurrency_ledger/internal/apperrors"
	"github.com/SscSPs/multicurrency_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/multicurrency_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/multicurrency_ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// ledgerTx stages the writes of one WithinTx call over the live state. The store mutex is already held.
type ledgerTx struct {
	st          *state
	subAccounts map[string]domain.SubAccount
	consumed    map[string]bool
	appended    []domain.Transaction
}

func newLedgerTx(st *state) *ledgerTx {
	return &ledgerTx{
		st:          st,
		subAccounts: make(map[string]domain.SubAccount),
		consumed:    make(map[string]bool),
	}
}

var _ portsrepo.LedgerTx = (*ledgerTx)(nil)

// commit applies the staged writes to the live state.
func (t *ledgerTx) commit() {
	for id, sub := range t.subAccounts {
		t.st.subAccounts[id] = sub
	}
	for id := range t.consumed {
		delete(t.st.pending, id)
	}
	for _, txn := range t.appended {
		t.st.appendTransaction(txn)
	}
}

func (t *ledgerTx) subAccount(subAccountID string) (domain.SubAccount, bool) {
	if sub, ok := t.subAccounts[subAccountID]; ok {
		return sub, true
	}
	sub, ok := t.st.subAccounts[subAccountID]
	return sub, ok
}

func (t *ledgerTx) FindSubAccountForUpdate(_ context.Context, accountID, currencyCode string) (*domain.SubAccount, error) {
	sub, ok := t.st.findSubAccount(accountID, currencyCode)
	if !ok {
		return nil, fmt.Errorf("%w: %s for account %s", apperrors.ErrNoMatchingSubAccount, currencyCode, accountID)
	}
	if staged, ok := t.subAccounts[sub.SubAccountID]; ok {
		sub = staged
	}
	return &sub, nil
}

func (t *ledgerTx) AdjustBalance(_ context.Context, subAccountID string, delta decimal.Decimal, at time.Time) (*domain.SubAccount, error) {
	sub, ok := t.subAccount(subAccountID)
	if !ok {
		return nil, fmt.Errorf("%w: sub-account %s", apperrors.ErrNotFound, subAccountID)
	}
	next, err := accounting.ApplyDelta(sub.Balance, delta)
	if err != nil {
		return nil, err
	}
	sub.Balance = next
	sub.Touch(at)
	t.subAccounts[subAccountID] = sub
	return &sub, nil
}

func (t *ledgerTx) SaveTransaction(_ context.Context, txn domain.Transaction) error {
	_, exists := t.st.txnIndex[txn.TransactionID]
	for _, staged := range t.appended {
		exists = exists || staged.TransactionID == txn.TransactionID
	}
	if exists {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrDuplicate, txn.TransactionID)
	}
	t.appended = append(t.appended, txn)
	return nil
}

func (t *ledgerTx) FindPendingTopUpForUpdate(_ context.Context, pendingTopUpID string) (*domain.PendingTopUp, error) {
	p, ok := t.st.pending[pendingTopUpID]
	if !ok || t.consumed[pendingTopUpID] {
		return nil, fmt.Errorf("%w: pending top-up %s", apperrors.ErrNotFound, pendingTopUpID)
	}
	return &p, nil
}

func (t *ledgerTx) DeletePendingTopUp(_ context.Context, pendingTopUpID string) error {
	if _, ok := t.st.pending[pendingTopUpID]; !ok || t.consumed[pendingTopUpID] {
		return fmt.Errorf("%w: pending top-up %s", apperrors.ErrNotFound, pendingTopUpID)
	}
	t.consumed[pendingTopUpID] = true
	return nil
}

func (s *Store) FindTransactionByID(_ context.Context, transactionID string) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.state.txnIndex[transactionID]
	if !ok {
		return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
	}
	found := s.state.transactions[i]
	return &found, nil
}

func (s *Store) ListTransactionsByAccount(_ context.Context, accountID string, pg portsrepo.TransactionPage) ([]domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	owned := make(map[string]bool)
	for id, sub := range s.state.subAccounts {
		if sub.AccountID == accountID {
			owned[id] = true
		}
	}

	var out []domain.Transaction
	for _, txn := range s.state.transactions {
		if owned[txn.FromSubAccountID] || owned[txn.ToSubAccountID] {
			out = append(out, txn)
		}
	}
	sort.Slice(out, func(i, j int) bool { return newerThan(out[i], out[j].CreatedAt, out[j].TransactionID) })

	if pg.AfterCreatedAt != nil {
		filtered := out[:0]
		for _, txn := range out {
			if !newerThan(txn, *pg.AfterCreatedAt, pg.AfterID) && !(txn.CreatedAt.Equal(*pg.AfterCreatedAt) && txn.TransactionID == pg.AfterID) {
				filtered = append(filtered, txn)
			}
		}
		out = filtered
	}
	if out == nil {
		out = []domain.Transaction{}
	}
	return page(out, pg.Limit, 0), nil
}

// newerThan orders history by creation time then ID, both descending.
func newerThan(txn domain.Transaction, createdAt time.Time, id string) bool {
	if txn.CreatedAt.Equal(createdAt) {
		return txn.TransactionID > id
	}
	return txn.CreatedAt.After(createdAt)
}
