package services

import (
	"context"
	"time"

	"github.com/SscSPs/multicurrency_ledger/internal/core/domain"
	"github.com/SscSPs/multicurrency_ledger/internal/dto"
)

// AuthSvcFacade registers holders and issues session tokens.
type AuthSvcFacade interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.Account, error)
	// Login authenticates, verifies the one-time code when enabled, and returns a signed token.
	Login(ctx context.Context, req dto.LoginRequest) (token string, expiresAt time.Time, accountID string, err error)
	// AdminLogin returns a token whose subject is the reserve account.
	AdminLogin(ctx context.Context, username, password string) (token string, expiresAt time.Time, err error)
}
