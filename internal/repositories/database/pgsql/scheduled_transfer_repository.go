package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/multicurrency_ledger/internal/apperrors"
	"github.com/SscSPs/multicurrency_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/multicurrency_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/multicurrency_ledger/internal/models"
	"github.com/SscSPs/multicurrency_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const scheduledTransferColumns = `scheduled_transfer_id, from_account_id, to_account_id, amount, currency_code, scheduled_date, executed, created_at`

func scanScheduledTransfer(row rowScanner) (domain.ScheduledTransfer, error) {
	var m models.ScheduledTransfer
	err := row.Scan(&m.ScheduledTransferID, &m.FromAccountID, &m.ToAccountID, &m.Amount,
		&m.CurrencyCode, &m.ScheduledDate, &m.Executed, &m.CreatedAt)
	if err != nil {
		return domain.ScheduledTransfer{}, err
	}
	return mapping.ToDomainScheduledTransfer(m), nil
}

type PgxScheduledTransferRepository struct {
	BaseRepository
}

func newPgxScheduledTransferRepository(pool *pgxpool.Pool) *PgxScheduledTransferRepository {
	return &PgxScheduledTransferRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ScheduledTransferRepositoryFacade = (*PgxScheduledTransferRepository)(nil)

func (r *PgxScheduledTransferRepository) SaveScheduledTransfer(ctx context.Context, st domain.ScheduledTransfer) error {
	query := `INSERT INTO scheduled_transfers (` + scheduledTransferColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`
	_, err := r.Pool.Exec(ctx, query, st.ScheduledTransferID, st.FromAccountID, st.ToAccountID, st.Amount,
		st.CurrencyCode, domain.TruncateToDate(st.ScheduledDate), st.Executed, st.CreatedAt)
	if err != nil {
		switch pgErrorCode(err) {
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: scheduled transfer references an unknown account", apperrors.ErrNotFound)
		case pgCheckViolation, pgNumericOutOfRange:
			return fmt.Errorf("%w: scheduled transfer %s", apperrors.ErrInvalidAmount, st.ScheduledTransferID)
		}
		return fmt.Errorf("failed to save scheduled transfer %s: %w", st.ScheduledTransferID, err)
	}
	return nil
}

func (r *PgxScheduledTransferRepository) FindScheduledTransferByID(ctx context.Context, scheduledTransferID string) (*domain.ScheduledTransfer, error) {
	query := `SELECT ` + scheduledTransferColumns + ` FROM scheduled_transfers WHERE scheduled_transfer_id = $1;`
	st, err := scanScheduledTransfer(r.Pool.QueryRow(ctx, query, scheduledTransferID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: scheduled transfer %s", apperrors.ErrNotFound, scheduledTransferID)
		}
		return nil, fmt.Errorf("failed to find scheduled transfer %s: %w", scheduledTransferID, err)
	}
	return &st, nil
}

func (r *PgxScheduledTransferRepository) ListScheduledTransfers(ctx context.Context) ([]domain.ScheduledTransfer, error) {
	return r.list(ctx, `SELECT `+scheduledTransferColumns+` FROM scheduled_transfers ORDER BY scheduled_date, created_at;`)
}

func (r *PgxScheduledTransferRepository) ListScheduledTransfersByAccount(ctx context.Context, fromAccountID string) ([]domain.ScheduledTransfer, error) {
	return r.list(ctx, `SELECT `+scheduledTransferColumns+` FROM scheduled_transfers WHERE from_account_id = $1 ORDER BY scheduled_date, created_at;`, fromAccountID)
}

// ListDueScheduledTransfers matches the DATE column exactly, so a skipped day is not caught up.
func (r *PgxScheduledTransferRepository) ListDueScheduledTransfers(ctx context.Context, on time.Time) ([]domain.ScheduledTransfer, error) {
	return r.list(ctx, `SELECT `+scheduledTransferColumns+` FROM scheduled_transfers WHERE scheduled_date = $1 ORDER BY created_at, scheduled_transfer_id;`, domain.TruncateToDate(on))
}

func (r *PgxScheduledTransferRepository) UpdateScheduledDate(ctx context.Context, scheduledTransferID string, next time.Time) error {
	tag, err := r.Pool.Exec(ctx, `UPDATE scheduled_transfers SET scheduled_date = $1 WHERE scheduled_transfer_id = $2;`,
		domain.TruncateToDate(next), scheduledTransferID)
	if err != nil {
		return fmt.Errorf("failed to update scheduled date of %s: %w", scheduledTransferID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: scheduled transfer %s", apperrors.ErrNotFound, scheduledTransferID)
	}
	return nil
}

func (r *PgxScheduledTransferRepository) DeleteScheduledTransfer(ctx context.Context, scheduledTransferID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM scheduled_transfers WHERE scheduled_transfer_id = $1;`, scheduledTransferID)
	if err != nil {
		return fmt.Errorf("failed to delete scheduled transfer %s: %w", scheduledTransferID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: scheduled transfer %s", apperrors.ErrNotFound, scheduledTransferID)
	}
	return nil
}

func (r *PgxScheduledTransferRepository) list(ctx context.Context, query string, args ...any) ([]domain.ScheduledTransfer, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list scheduled transfers: %w", err)
	}
	defer rows.Close()

	transfers := []domain.ScheduledTransfer{}
	for rows.Next() {
		st, err := scanScheduledTransfer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan scheduled transfer row: %w", err)
		}
		transfers = append(transfers, st)
	}
	return transfers, rows.Err()
}
