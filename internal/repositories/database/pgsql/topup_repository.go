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

const pendingTopUpColumns = `pending_topup_id, account_id, amount, currency_code, created_at`

func scanPendingTopUp(row rowScanner) (domain.PendingTopUp, error) {
	var m models.PendingTopUp
	if err := row.Scan(&m.PendingTopUpID, &m.AccountID, &m.Amount, &m.CurrencyCode, &m.CreatedAt); err != nil {
		return domain.PendingTopUp{}, err
	}
	return mapping.ToDomainPendingTopUp(m), nil
}

type PgxPendingTopUpRepository struct {
	BaseRepository
}

func newPgxPendingTopUpRepository(pool *pgxpool.Pool) *PgxPendingTopUpRepository {
	return &PgxPendingTopUpRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PendingTopUpRepositoryFacade = (*PgxPendingTopUpRepository)(nil)

func (r *PgxPendingTopUpRepository) SavePendingTopUp(ctx context.Context, topUp domain.PendingTopUp) error {
	query := `INSERT INTO pending_topups (` + pendingTopUpColumns + `) VALUES ($1, $2, $3, $4, $5);`
	_, err := r.Pool.Exec(ctx, query, topUp.PendingTopUpID, topUp.AccountID, topUp.Amount, topUp.CurrencyCode, topUp.CreatedAt)
	if err != nil {
		switch pgErrorCode(err) {
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, topUp.AccountID)
		case pgCheckViolation, pgNumericOutOfRange:
			return fmt.Errorf("%w: pending top-up %s", apperrors.ErrInvalidAmount, topUp.PendingTopUpID)
		}
		return fmt.Errorf("failed to save pending top-up %s: %w", topUp.PendingTopUpID, err)
	}
	return nil
}

func (r *PgxPendingTopUpRepository) FindPendingTopUpByID(ctx context.Context, pendingTopUpID string) (*domain.PendingTopUp, error) {
	query := `SELECT ` + pendingTopUpColumns + ` FROM pending_topups WHERE pending_topup_id = $1;`
	p, err := scanPendingTopUp(r.Pool.QueryRow(ctx, query, pendingTopUpID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: pending top-up %s", apperrors.ErrNotFound, pendingTopUpID)
		}
		return nil, fmt.Errorf("failed to find pending top-up %s: %w", pendingTopUpID, err)
	}
	return &p, nil
}

func (r *PgxPendingTopUpRepository) ListPendingTopUps(ctx context.Context) ([]domain.PendingTopUp, error) {
	query := `SELECT ` + pendingTopUpColumns + ` FROM pending_topups ORDER BY created_at, pending_topup_id;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending top-ups: %w", err)
	}
	defer rows.Close()

	topUps := []domain.PendingTopUp{}
	for rows.Next() {
		p, err := scanPendingTopUp(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pending top-up row: %w", err)
		}
		topUps = append(topUps, p)
	}
	return topUps, rows.Err()
}
