package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/multicurrency_ledger/internal/apperrors"
	"github.com/SscSPs/multicurrency_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/multicurrency_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/multicurrency_ledger/internal/core/ports/services"
	"github.com/SscSPs/multicurrency_ledger/internal/dto"
	"github.com/SscSPs/multicurrency_ledger/internal/utils"
)

// AuthConfig holds the token and administrator settings of the auth service.
type AuthConfig struct {
	JWTSecret         string
	JWTExpiry         time.Duration
	JWTIssuer         string
	AdminUsername     string
	AdminPasswordHash string
	OTPTimeout        time.Duration
}

// authService implements portssvc.AuthSvcFacade.
type authService struct {
	BaseService
	cfg            AuthConfig
	accounts       portssvc.AccountWriterSvc
	credentialRepo portsrepo.CredentialRepositoryFacade
	authenticator  portssvc.Authenticator
	otp            portssvc.OTPVerifier
}

// NewAuthService creates a new auth service. A nil otp verifier disables the second factor.
func NewAuthService(cfg AuthConfig, accounts portssvc.AccountWriterSvc, credentialRepo portsrepo.CredentialRepositoryFacade, authenticator portssvc.Authenticator, otp portssvc.OTPVerifier) portssvc.AuthSvcFacade {
	if cfg.OTPTimeout <= 0 {
		cfg.OTPTimeout = 10 * time.Second
	}
	return &authService{
		cfg:            cfg,
		accounts:       accounts,
		credentialRepo: credentialRepo,
		authenticator:  authenticator,
		otp:            otp,
	}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.Account, error) {
	_, err := s.credentialRepo.FindCredentialByUsername(ctx, req.Username)
	if err == nil {
		return nil, fmt.Errorf("%w: username %q is taken", apperrors.ErrDuplicate, req.Username)
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account, err := s.accounts.CreateAccount(ctx, dto.CreateAccountRequest{HolderName: req.HolderName})
	if err != nil {
		return nil, err
	}

	cred := domain.Credential{
		Username:     req.Username,
		AccountID:    account.AccountID,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.credentialRepo.SaveCredential(ctx, cred); err != nil {
		s.LogError(ctx, err, "Failed to save credential", slog.String("account_id", account.AccountID))
		return nil, fmt.Errorf("failed to save credential: %w", err)
	}

	s.LogInfo(ctx, "Holder registered", slog.String("account_id", account.AccountID), slog.String("username", req.Username))
	return account, nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (string, time.Time, string, error) {
	accountID, ok, err := s.authenticator.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		s.LogError(ctx, err, "Authentication backend failed", slog.String("username", req.Username))
		return "", time.Time{}, "", fmt.Errorf("authentication failed: %w", err)
	}
	if !ok {
		s.LogWarn(ctx, apperrors.ErrUnauthorized, "Login rejected", slog.String("username", req.Username))
		return "", time.Time{}, "", fmt.Errorf("%w: invalid username or password", apperrors.ErrUnauthorized)
	}

	if s.otp != nil {
		if req.OTP == "" {
			return "", time.Time{}, "", fmt.Errorf("%w: one-time code required", apperrors.ErrUnauthorized)
		}
		octx, cancel := context.WithTimeout(ctx, s.cfg.OTPTimeout)
		valid, err := s.otp.Verify(octx, req.Username, req.OTP)
		cancel()
		if err != nil {
			s.LogError(ctx, err, "One-time code verification failed", slog.String("username", req.Username))
			return "", time.Time{}, "", fmt.Errorf("%w: one-time code verification: %w", apperrors.ErrExternal, err)
		}
		if !valid {
			s.LogWarn(ctx, apperrors.ErrUnauthorized, "One-time code rejected", slog.String("username", req.Username))
			return "", time.Time{}, "", fmt.Errorf("%w: invalid one-time code", apperrors.ErrUnauthorized)
		}
	}

	token, expiresAt, err := utils.GenerateJWT(accountID, s.cfg.JWTSecret, s.cfg.JWTExpiry, s.cfg.JWTIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate token", slog.String("account_id", accountID))
		return "", time.Time{}, "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, expiresAt, accountID, nil
}

func (s *authService) AdminLogin(ctx context.Context, username, password string) (string, time.Time, error) {
	if s.cfg.AdminUsername == "" || s.cfg.AdminPasswordHash == "" {
		return "", time.Time{}, fmt.Errorf("%w: administrator login is disabled", apperrors.ErrUnauthorized)
	}
	if username != s.cfg.AdminUsername || !utils.CheckPasswordHash(password, s.cfg.AdminPasswordHash) {
		s.LogWarn(ctx, apperrors.ErrUnauthorized, "Administrator login rejected", slog.String("username", username))
		return "", time.Time{}, fmt.Errorf("%w: invalid administrator credentials", apperrors.ErrUnauthorized)
	}

	token, expiresAt, err := utils.GenerateJWT(domain.ReserveAccountID, s.cfg.JWTSecret, s.cfg.JWTExpiry, s.cfg.JWTIssuer)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate token: %w", err)
	}
	s.LogInfo(ctx, "Administrator logged in")
	return token, expiresAt, nil
}
