package services

import (
	"context"
	"errors"

	"github.com/SscSPs/multicurrency_ledger/internal/apperrors"
	portsrepo "github.com/SscSPs/multicurrency_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/multicurrency_ledger/internal/core/ports/services"
	"github.com/SscSPs/multicurrency_ledger/internal/utils"
)

// credentialAuthenticator checks bcrypt hashes kept in the credential store.
type credentialAuthenticator struct {
	repo portsrepo.CredentialRepositoryFacade
}

// NewCredentialAuthenticator returns the default Authenticator.
func NewCredentialAuthenticator(repo portsrepo.CredentialRepositoryFacade) portssvc.Authenticator {
	return &credentialAuthenticator{repo: repo}
}

func (a *credentialAuthenticator) Authenticate(ctx context.Context, username, password string) (string, bool, error) {
	cred, err := a.repo.FindCredentialByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			utils.SpendPasswordCheck(password)
			return "", false, nil
		}
		return "", false, err
	}
	if !utils.CheckPasswordHash(password, cred.PasswordHash) {
		return "", false, nil
	}
	return cred.AccountID, true, nil
}
