package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/multicurrency_ledger/internal/apperrors"
	"github.com/SscSPs/multicurrency_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/multicurrency_ledger/internal/core/ports/services"
	"github.com/SscSPs/multicurrency_ledger/internal/core/services"
	"github.com/SscSPs/multicurrency_ledger/internal/repositories/memory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type SchedulerServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	store    *memory.Store
	repo     *MockScheduledTransferRepository
	notifier *MockNotifier
	alice    domain.Account
	bob      domain.Account
}

func (s *SchedulerServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memory.NewStore()
	s.repo = &MockScheduledTransferRepository{Store: s.store}
	s.notifier = new(MockNotifier)
	s.alice = seedAccount(s.T(), s.store, "", "Alice", map[string]int64{"USD": 100})
	s.bob = seedAccount(s.T(), s.store, "", "Bob", map[string]int64{"USD": 0})
}

func TestSchedulerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SchedulerServiceTestSuite))
}

func (s *SchedulerServiceTestSuite) scheduler() portssvc.SchedulerSvc {
	transfers := services.NewTransferService(s.store, s.store, s.store)
	return services.NewSchedulerService(s.repo, transfers, s.notifier, time.Second)
}

func (s *SchedulerServiceTestSuite) schedule(from, to string, amount int64, date time.Time) domain.ScheduledTransfer {
	st := domain.ScheduledTransfer{
		ScheduledTransferID: uuid.NewString(),
		FromAccountID:       from,
		ToAccountID:         to,
		Amount:              decimal.NewFromInt(amount),
		CurrencyCode:        "USD",
		ScheduledDate:       date,
		CreatedAt:           time.Now().UTC(),
	}
	s.Require().NoError(s.store.SaveScheduledTransfer(s.ctx, st))
	return st
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *SchedulerServiceTestSuite) TestRun_AdvancesWithMonthEndClamping() {
	s.notifier.On("Notify", mock.Anything, mock.Anything).Return(nil)
	st := s.schedule(s.alice.AccountID, s.bob.AccountID, 10, day(2024, time.January, 31))

	report, err := s.scheduler().RunDueTransfers(s.ctx, day(2024, time.January, 31).Add(9*time.Hour))
	s.Require().NoError(err)
	s.Equal(1, report.Succeeded)
	s.Require().NotNil(report.Outcomes[0].NextScheduledDate)
	s.True(report.Outcomes[0].NextScheduledDate.Equal(day(2024, time.February, 29)))

	report, err = s.scheduler().RunDueTransfers(s.ctx, day(2024, time.February, 29))
	s.Require().NoError(err)
	s.Equal(1, report.Succeeded)

	stored, err := s.store.FindScheduledTransferByID(s.ctx, st.ScheduledTransferID)
	s.Require().NoError(err)
	s.True(stored.ScheduledDate.Equal(day(2024, time.March, 29)))
	s.True(balanceOf(s.T(), s.store, s.bob.AccountID, "USD").Equal(decimal.NewFromInt(20)))
}

func (s *SchedulerServiceTestSuite) TestRun_NotDueIsIgnored() {
	s.schedule(s.alice.AccountID, s.bob.AccountID, 10, day(2024, time.March, 1))

	report, err := s.scheduler().RunDueTransfers(s.ctx, day(2024, time.March, 2))
	s.Require().NoError(err)
	s.Equal(0, report.Due)
	s.notifier.AssertNotCalled(s.T(), "Notify", mock.Anything, mock.Anything)
}

func (s *SchedulerServiceTestSuite) TestRun_ContinuesAfterFailure() {
	s.notifier.On("Notify", mock.Anything, mock.Anything).Return(nil)
	today := day(2024, time.May, 5)
	failing := s.schedule(s.alice.AccountID, s.bob.AccountID, 1000, today)
	ok := s.schedule(s.alice.AccountID, s.bob.AccountID, 40, today)

	report, err := s.scheduler().RunDueTransfers(s.ctx, today)
	s.Require().NoError(err)
	s.Equal(2, report.Due)
	s.Equal(1, report.Succeeded)
	s.Equal(1, report.Failed)

	for _, o := range report.Outcomes {
		switch o.ScheduledTransferID {
		case failing.ScheduledTransferID:
			s.ErrorIs(o.Err, apperrors.ErrInsufficientFunds)
		case ok.ScheduledTransferID:
			s.True(o.Succeeded())
		}
	}

	stored, err := s.store.FindScheduledTransferByID(s.ctx, failing.ScheduledTransferID)
	s.Require().NoError(err)
	s.True(stored.ScheduledDate.Equal(today))
	s.notifier.AssertNumberOfCalls(s.T(), "Notify", 2)
}

func (s *SchedulerServiceTestSuite) TestRun_DateAdvanceFailureRepeatsSameDay() {
	s.notifier.On("Notify", mock.Anything, mock.Anything).Return(nil)
	s.repo.UpdateScheduledDateFn = func(context.Context, string, time.Time) error { return errInjected }
	today := day(2024, time.June, 10)
	s.schedule(s.alice.AccountID, s.bob.AccountID, 10, today)

	for i := 0; i < 2; i++ {
		report, err := s.scheduler().RunDueTransfers(s.ctx, today)
		s.Require().NoError(err)
		s.Equal(1, report.Failed)
		s.NotNil(report.Outcomes[0].Transaction)
		s.ErrorIs(report.Outcomes[0].Err, errInjected)
	}

	s.True(balanceOf(s.T(), s.store, s.bob.AccountID, "USD").Equal(decimal.NewFromInt(20)))
}

func (s *SchedulerServiceTestSuite) TestRun_NotifierFailureIsNotFatal() {
	s.notifier.On("Notify", mock.Anything, mock.Anything).Return(errors.New("telegram down"))
	today := day(2024, time.July, 1)
	s.schedule(s.alice.AccountID, s.bob.AccountID, 10, today)

	report, err := s.scheduler().RunDueTransfers(s.ctx, today)
	s.Require().NoError(err)
	s.Equal(1, report.Succeeded)
}

func (s *SchedulerServiceTestSuite) TestRun_DueListFailureIsReturned() {
	s.repo.ListDueScheduledTransfersFn = func(context.Context, time.Time) ([]domain.ScheduledTransfer, error) {
		return nil, errInjected
	}

	_, err := s.scheduler().RunDueTransfers(s.ctx, day(2024, time.July, 1))
	s.ErrorIs(err, errInjected)
}

func (s *SchedulerServiceTestSuite) TestRun_WithoutNotifier() {
	today := day(2024, time.August, 3)
	s.schedule(s.alice.AccountID, s.bob.AccountID, 10, today)

	transfers := services.NewTransferService(s.store, s.store, s.store)
	report, err := services.NewSchedulerService(s.store, transfers, nil, 0).RunDueTransfers(s.ctx, today)
	s.Require().NoError(err)
	s.Equal(1, report.Succeeded)
}
