package services_test

import (
	"context"
	"errors"
	"time"

	"github.com/SscSPs/multicurrency_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/multicurrency_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/multicurrency_ledger/internal/repositories/memory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mock RateQuoter ---
type MockRateQuoter struct {
	mock.Mock
}

func (m *MockRateQuoter) Quote(ctx context.Context, from, to string, amount decimal.Decimal) (decimal.Decimal, error) {
	args := m.Called(ctx, from, to, amount)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Mock Notifier ---
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, message string) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

// --- Mock OTPVerifier ---
type MockOTPVerifier struct {
	mock.Mock
}

func (m *MockOTPVerifier) Verify(ctx context.Context, username, code string) (bool, error) {
	args := m.Called(ctx, username, code)
	return args.Bool(0), args.Error(1)
}

// --- Mock ScheduledTransferRepository ---
// Embeds the memory store and lets tests break UpdateScheduledDate or the due listing.
type MockScheduledTransferRepository struct {
	*memory.Store
	UpdateScheduledDateFn       func(ctx context.Context, id string, next time.Time) error
	ListDueScheduledTransfersFn func(ctx context.Context, on time.Time) ([]domain.ScheduledTransfer, error)
}

func (m *MockScheduledTransferRepository) UpdateScheduledDate(ctx context.Context, id string, next time.Time) error {
	if m.UpdateScheduledDateFn != nil {
		return m.UpdateScheduledDateFn(ctx, id, next)
	}
	return m.Store.UpdateScheduledDate(ctx, id, next)
}

func (m *MockScheduledTransferRepository) ListDueScheduledTransfers(ctx context.Context, on time.Time) ([]domain.ScheduledTransfer, error) {
	if m.ListDueScheduledTransfersFn != nil {
		return m.ListDueScheduledTransfersFn(ctx, on)
	}
	return m.Store.ListDueScheduledTransfers(ctx, on)
}

var errInjected = errors.New("injected failure")

// failingTxManager runs units of work on the store but fails SaveTransaction,
// after both balance adjustments have already been applied.
type failingTxManager struct {
	store *memory.Store
}

func (f *failingTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.LedgerTx) error) error {
	return f.store.WithinTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		return fn(ctx, &failingLedgerTx{LedgerTx: tx})
	})
}

type failingLedgerTx struct {
	portsrepo.LedgerTx
}

func (f *failingLedgerTx) SaveTransaction(context.Context, domain.Transaction) error {
	return errInjected
}

// seedAccount stores an account with sub-accounts holding the given balances.
func seedAccount(t require.TestingT, store *memory.Store, accountID, holder string, balances map[string]int64) domain.Account {
	ctx := context.Background()
	if accountID == "" {
		accountID = uuid.NewString()
	}
	now := time.Now().UTC()
	acc := domain.Account{
		AccountID:   accountID,
		HolderName:  holder,
		Status:      domain.AccountActive,
		AuditFields: domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
	require.NoError(t, store.SaveAccount(ctx, acc))
	for currency, balance := range balances {
		require.NoError(t, store.SaveSubAccount(ctx, domain.SubAccount{
			SubAccountID: uuid.NewString(),
			AccountID:    accountID,
			CurrencyCode: currency,
			Balance:      decimal.NewFromInt(balance),
			AuditFields:  domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
		}))
	}
	return acc
}

func balanceOf(t require.TestingT, store *memory.Store, accountID, currency string) decimal.Decimal {
	sub, err := store.FindSubAccount(context.Background(), accountID, currency)
	require.NoError(t, err)
	return sub.Balance
}
