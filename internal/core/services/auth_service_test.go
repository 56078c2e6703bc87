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
	"github.com/SscSPs/multicurrency_ledger/internal/dto"
	"github.com/SscSPs/multicurrency_ledger/internal/repositories/memory"
	"github.com/SscSPs/multicurrency_ledger/internal/utils"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const testSecret = "test-secret"

type AuthServiceTestSuite struct {
	suite.Suite
	ctx   context.Context
	store *memory.Store
	cfg   services.AuthConfig
}

func (s *AuthServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memory.NewStore()
	hash, err := utils.HashPassword("admin-pass")
	s.Require().NoError(err)
	s.cfg = services.AuthConfig{
		JWTSecret:         testSecret,
		JWTExpiry:         time.Hour,
		JWTIssuer:         "ledger-test",
		AdminUsername:     "admin",
		AdminPasswordHash: hash,
	}
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

func (s *AuthServiceTestSuite) newService(otp portssvc.OTPVerifier) portssvc.AuthSvcFacade {
	accounts := services.NewAccountService(s.store, s.store)
	return services.NewAuthService(s.cfg, accounts, s.store, services.NewCredentialAuthenticator(s.store), otp)
}

func (s *AuthServiceTestSuite) register(svc portssvc.AuthSvcFacade) *domain.Account {
	acc, err := svc.Register(s.ctx, dto.RegisterRequest{HolderName: "Alice", Username: "alice", Password: "correct-horse"})
	s.Require().NoError(err)
	return acc
}

func (s *AuthServiceTestSuite) TestRegisterAndLogin() {
	svc := s.newService(nil)
	acc := s.register(svc)

	token, expiresAt, accountID, err := svc.Login(s.ctx, dto.LoginRequest{Username: "alice", Password: "correct-horse"})
	s.Require().NoError(err)
	s.Equal(acc.AccountID, accountID)
	s.True(expiresAt.After(time.Now()))

	claims, err := utils.ParseAndValidateJWT(token, testSecret, "ledger-test")
	s.Require().NoError(err)
	s.Equal(acc.AccountID, claims.Subject)
	s.Equal("ledger-test", claims.Issuer)
}

func (s *AuthServiceTestSuite) TestRegister_DuplicateUsername() {
	svc := s.newService(nil)
	s.register(svc)

	_, err := svc.Register(s.ctx, dto.RegisterRequest{HolderName: "Alicia", Username: "alice", Password: "another-pass"})
	s.ErrorIs(err, apperrors.ErrDuplicate)
}

func (s *AuthServiceTestSuite) TestLogin_WrongPassword() {
	svc := s.newService(nil)
	s.register(svc)

	_, _, _, err := svc.Login(s.ctx, dto.LoginRequest{Username: "alice", Password: "wrong"})
	s.ErrorIs(err, apperrors.ErrUnauthorized)

	_, _, _, err = svc.Login(s.ctx, dto.LoginRequest{Username: "nobody", Password: "wrong"})
	s.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (s *AuthServiceTestSuite) TestLogin_OTP() {
	otp := new(MockOTPVerifier)
	svc := s.newService(otp)
	s.register(svc)

	_, _, _, err := svc.Login(s.ctx, dto.LoginRequest{Username: "alice", Password: "correct-horse"})
	s.ErrorIs(err, apperrors.ErrUnauthorized)

	otp.On("Verify", mock.Anything, "alice", "000000").Return(false, nil).Once()
	_, _, _, err = svc.Login(s.ctx, dto.LoginRequest{Username: "alice", Password: "correct-horse", OTP: "000000"})
	s.ErrorIs(err, apperrors.ErrUnauthorized)

	otp.On("Verify", mock.Anything, "alice", "123456").Return(true, nil).Once()
	_, _, _, err = svc.Login(s.ctx, dto.LoginRequest{Username: "alice", Password: "correct-horse", OTP: "123456"})
	s.NoError(err)

	otp.On("Verify", mock.Anything, "alice", "111111").Return(false, errors.New("exit status 2")).Once()
	_, _, _, err = svc.Login(s.ctx, dto.LoginRequest{Username: "alice", Password: "correct-horse", OTP: "111111"})
	s.ErrorIs(err, apperrors.ErrExternal)

	otp.AssertExpectations(s.T())
}

func (s *AuthServiceTestSuite) TestAdminLogin() {
	svc := s.newService(nil)

	token, _, err := svc.AdminLogin(s.ctx, "admin", "admin-pass")
	s.Require().NoError(err)
	claims, err := utils.ParseAndValidateJWT(token, testSecret, "ledger-test")
	s.Require().NoError(err)
	s.Equal(domain.ReserveAccountID, claims.Subject)

	_, _, err = svc.AdminLogin(s.ctx, "admin", "nope")
	s.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (s *AuthServiceTestSuite) TestAdminLogin_DisabledWithoutHash() {
	s.cfg.AdminPasswordHash = ""
	_, _, err := s.newService(nil).AdminLogin(s.ctx, "admin", "")
	s.ErrorIs(err, apperrors.ErrUnauthorized)
}
