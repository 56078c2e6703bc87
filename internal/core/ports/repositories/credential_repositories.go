package repositories

import (
	"context"

	"github.com/SscSPs/multicurrency_ledger/internal/core/domain"
)

// CredentialRepositoryFacade stores login credentials
type CredentialRepositoryFacade interface {
	FindCredentialByUsername(ctx context.Context, username string) (*domain.Credential, error)
	// SaveCredential yields apperrors.ErrDuplicate for a taken username.
	SaveCredential(ctx context.Context, cred domain.Credential) error
}
