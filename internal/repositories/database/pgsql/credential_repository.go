package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/multicurrency_ledger/internal/apperrors"
	"github.com/SscSPs/multicurrency_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/multicurrency_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/multicurrency_ledger/internal/models"
	"github.com/SscSPs/multicurrency_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCredentialRepository struct {
	BaseRepository
}

func newPgxCredentialRepository(pool *pgxpool.Pool) *PgxCredentialRepository {
	return &PgxCredentialRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CredentialRepositoryFacade = (*PgxCredentialRepository)(nil)

func (r *PgxCredentialRepository) FindCredentialByUsername(ctx context.Context, username string) (*domain.Credential, error) {
	query := `SELECT username, account_id, password_hash, created_at FROM credentials WHERE username = $1;`

	var m models.Credential
	err := r.Pool.QueryRow(ctx, query, username).Scan(&m.Username, &m.AccountID, &m.PasswordHash, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: credential for %q", apperrors.ErrNotFound, username)
		}
		return nil, fmt.Errorf("failed to find credential: %w", err)
	}
	cred := mapping.ToDomainCredential(m)
	return &cred, nil
}

func (r *PgxCredentialRepository) SaveCredential(ctx context.Context, cred domain.Credential) error {
	query := `INSERT INTO credentials (username, account_id, password_hash, created_at) VALUES ($1, $2, $3, $4);`
	_, err := r.Pool.Exec(ctx, query, cred.Username, cred.AccountID, cred.PasswordHash, cred.CreatedAt)
	if err != nil {
		switch pgErrorCode(err) {
		case pgUniqueViolation:
			return fmt.Errorf("%w: username %q", apperrors.ErrDuplicate, cred.Username)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, cred.AccountID)
		}
		return fmt.Errorf("failed to save credential: %w", err)
	}
	return nil
}
