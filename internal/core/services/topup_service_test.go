package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/multicurrency_ledger/internal/apperrors"
	"github.com/SscSPs/multicurrency_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/multicurrency_ledger/internal/core/ports/services"
	"github.com/SscSPs/multicurrency_ledger/internal/core/services"
	"github.com/SscSPs/multicurrency_ledger/internal/dto"
	"github.com/SscSPs/multicurrency_ledger/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type TopUpServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	store   *memory.Store
	service portssvc.TopUpSvcFacade
	alice   domain.Account
}

func (s *TopUpServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memory.NewStore()
	s.service = services.NewTopUpService(s.store, s.store, s.store)
	seedAccount(s.T(), s.store, domain.ReserveAccountID, "Reserve", map[string]int64{"USD": 1000})
	s.alice = seedAccount(s.T(), s.store, "", "Alice", map[string]int64{"USD": 0})
}

func TestTopUpServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TopUpServiceTestSuite))
}

func (s *TopUpServiceTestSuite) TestStage_DoesNotTouchBalances() {
	pending, err := s.service.Stage(s.ctx, s.alice.AccountID, dto.StageTopUpRequest{Amount: decimal.NewFromInt(50), CurrencyCode: "USD"})
	s.Require().NoError(err)
	s.NotEmpty(pending.PendingTopUpID)

	s.True(balanceOf(s.T(), s.store, s.alice.AccountID, "USD").IsZero())
	list, err := s.service.ListPending(s.ctx)
	s.Require().NoError(err)
	s.Len(list, 1)
}

func (s *TopUpServiceTestSuite) TestStage_Validation() {
	_, err := s.service.Stage(s.ctx, s.alice.AccountID, dto.StageTopUpRequest{Amount: decimal.Zero, CurrencyCode: "USD"})
	s.ErrorIs(err, apperrors.ErrInvalidAmount)

	_, err = s.service.Stage(s.ctx, "missing", dto.StageTopUpRequest{Amount: decimal.NewFromInt(1), CurrencyCode: "USD"})
	s.ErrorIs(err, apperrors.ErrNotFound)

	_, err = s.service.Stage(s.ctx, domain.ReserveAccountID, dto.StageTopUpRequest{Amount: decimal.NewFromInt(1), CurrencyCode: "USD"})
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *TopUpServiceTestSuite) TestApprove_MovesFromReserveOnce() {
	pending, err := s.service.Stage(s.ctx, s.alice.AccountID, dto.StageTopUpRequest{Amount: decimal.NewFromInt(50), CurrencyCode: "USD"})
	s.Require().NoError(err)

	txn, err := s.service.Approve(s.ctx, pending.PendingTopUpID)
	s.Require().NoError(err)
	s.Equal(domain.KindTopUp, txn.Kind)
	s.True(balanceOf(s.T(), s.store, s.alice.AccountID, "USD").Equal(decimal.NewFromInt(50)))
	s.True(balanceOf(s.T(), s.store, domain.ReserveAccountID, "USD").Equal(decimal.NewFromInt(950)))

	_, err = s.service.Approve(s.ctx, pending.PendingTopUpID)
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.True(balanceOf(s.T(), s.store, s.alice.AccountID, "USD").Equal(decimal.NewFromInt(50)))
}

func (s *TopUpServiceTestSuite) TestApprove_UnderfundedReserveLeavesRequestStaged() {
	pending, err := s.service.Stage(s.ctx, s.alice.AccountID, dto.StageTopUpRequest{Amount: decimal.NewFromInt(5000), CurrencyCode: "USD"})
	s.Require().NoError(err)

	_, err = s.service.Approve(s.ctx, pending.PendingTopUpID)
	s.ErrorIs(err, apperrors.ErrInsufficientFunds)

	_, err = s.store.FindPendingTopUpByID(s.ctx, pending.PendingTopUpID)
	s.NoError(err)
	s.True(balanceOf(s.T(), s.store, s.alice.AccountID, "USD").IsZero())
}

func (s *TopUpServiceTestSuite) TestApprove_MissingTargetSubAccount() {
	pending, err := s.service.Stage(s.ctx, s.alice.AccountID, dto.StageTopUpRequest{Amount: decimal.NewFromInt(5), CurrencyCode: "EUR"})
	s.Require().NoError(err)

	_, err = s.service.Approve(s.ctx, pending.PendingTopUpID)
	s.ErrorIs(err, apperrors.ErrNoMatchingSubAccount)
}
