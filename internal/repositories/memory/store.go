package memory

import (
	"context"
	"sync"

	"github.com/SscSPs/multicurrency_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/multicurrency_ledger/internal/core/ports/repositories"
)

// Store is an in-process implementation of every repository port.
// A single mutex serializes all access; WithinTx holds it for the whole unit of work
// and stages the rows it writes until fn succeeds.
type Store struct {
	mu    sync.Mutex
	state *state
}

type state struct {
	accounts     map[string]domain.Account
	subAccounts  map[string]domain.SubAccount
	transactions []domain.Transaction
	txnIndex     map[string]int
	pending      map[string]domain.PendingTopUp
	scheduled    map[string]domain.ScheduledTransfer
	rates        []domain.ExchangeRate
	credentials  map[string]domain.Credential
}

func newState() *state {
	return &state{
		accounts:    make(map[string]domain.Account),
		subAccounts: make(map[string]domain.SubAccount),
		txnIndex:    make(map[string]int),
		pending:     make(map[string]domain.PendingTopUp),
		scheduled:   make(map[string]domain.ScheduledTransfer),
		credentials: make(map[string]domain.Credential),
	}
}

func (s *state) appendTransaction(txn domain.Transaction) {
	s.txnIndex[txn.TransactionID] = len(s.transactions)
	s.transactions = append(s.transactions, txn)
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{state: newState()}
}

// NewRepositoryProvider exposes one store through every repository port.
func NewRepositoryProvider(s *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:           s,
		SubAccountRepo:        s,
		TransactionRepo:       s,
		PendingTopUpRepo:      s,
		ScheduledTransferRepo: s,
		ExchangeRateRepo:      s,
		CredentialRepo:        s,
		TxManager:             s,
	}
}

// WithinTx runs fn with a ledgerTx that stages its writes and applies them when fn succeeds.
// fn must only use tx; calling the Store's own methods from inside fn deadlocks.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.LedgerTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := newLedgerTx(s.state)
	if err := fn(ctx, tx); err != nil {
		return err
	}
	tx.commit()
	return nil
}

var (
	_ portsrepo.AccountRepositoryFacade           = (*Store)(nil)
	_ portsrepo.SubAccountRepositoryFacade        = (*Store)(nil)
	_ portsrepo.TransactionReader                 = (*Store)(nil)
	_ portsrepo.PendingTopUpRepositoryFacade      = (*Store)(nil)
	_ portsrepo.ScheduledTransferRepositoryFacade = (*Store)(nil)
	_ portsrepo.ExchangeRateRepositoryFacade      = (*Store)(nil)
	_ portsrepo.CredentialRepositoryFacade        = (*Store)(nil)
	_ portsrepo.TransactionManager                = (*Store)(nil)
)
