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
	"github.com/SscSPs/multicurrency_ledger/internal/utils/accounting"
	"github.com/SscSPs/multicurrency_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PgxTransactionManager runs ledger units of work inside a single database transaction.
type PgxTransactionManager struct {
	BaseRepository
}

func newPgxTransactionManager(pool *pgxpool.Pool) *PgxTransactionManager {
	return &PgxTransactionManager{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionManager = (*PgxTransactionManager)(nil)

// WithinTx begins a transaction, hands it to fn and commits only when fn succeeds.
func (m *PgxTransactionManager) WithinTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.LedgerTx) error) error {
	tx, err := m.Begin(ctx)
	if err != nil {
		return err
	}
	defer m.Rollback(context.WithoutCancel(ctx), tx) //nolint:errcheck

	if err := fn(ctx, &pgxLedgerTx{tx: tx}); err != nil {
		return err
	}
	return m.Commit(ctx, tx)
}

type pgxLedgerTx struct {
	tx pgx.Tx
}

var _ portsrepo.LedgerTx = (*pgxLedgerTx)(nil)

// FindSubAccountForUpdate takes a row lock held until the surrounding transaction ends.
func (t *pgxLedgerTx) FindSubAccountForUpdate(ctx context.Context, accountID, currencyCode string) (*domain.SubAccount, error) {
	query := `SELECT ` + subAccountColumns + ` FROM sub_accounts WHERE account_id = $1 AND currency_code = $2 FOR UPDATE;`
	sub, err := scanSubAccount(t.tx.QueryRow(ctx, query, accountID, currencyCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s for account %s", apperrors.ErrNoMatchingSubAccount, currencyCode, accountID)
		}
		return nil, fmt.Errorf("failed to lock sub-account: %w", err)
	}
	return &sub, nil
}

func (t *pgxLedgerTx) AdjustBalance(ctx context.Context, subAccountID string, delta decimal.Decimal, at time.Time) (*domain.SubAccount, error) {
	query := `SELECT ` + subAccountColumns + ` FROM sub_accounts WHERE sub_account_id = $1 FOR UPDATE;`
	sub, err := scanSubAccount(t.tx.QueryRow(ctx, query, subAccountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: sub-account %s", apperrors.ErrNotFound, subAccountID)
		}
		return nil, fmt.Errorf("failed to lock sub-account %s: %w", subAccountID, err)
	}

	next, err := accounting.ApplyDelta(sub.Balance, delta)
	if err != nil {
		return nil, err
	}

	update := `UPDATE sub_accounts SET balance = $1, last_updated_at = $2 WHERE sub_account_id = $3;`
	if _, err := t.tx.Exec(ctx, update, next, at, subAccountID); err != nil {
		switch pgErrorCode(err) {
		case pgCheckViolation:
			return nil, fmt.Errorf("%w: sub-account %s", apperrors.ErrInsufficientFunds, subAccountID)
		case pgNumericOutOfRange:
			return nil, fmt.Errorf("%w: balance of sub-account %s would overflow", apperrors.ErrInvalidAmount, subAccountID)
		}
		return nil, fmt.Errorf("failed to update balance of sub-account %s: %w", subAccountID, err)
	}

	sub.Balance = next
	sub.Touch(at)
	return &sub, nil
}

func (t *pgxLedgerTx) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := t.tx.Exec(ctx, query,
		m.TransactionID, m.Kind, m.FromSubAccountID, m.ToSubAccountID,
		m.Amount, m.CurrencyCode, m.CreditAmount, m.CreatedAt,
	)
	if err != nil {
		switch pgErrorCode(err) {
		case pgUniqueViolation:
			return fmt.Errorf("%w: transaction %s", apperrors.ErrDuplicate, m.TransactionID)
		case pgCheckViolation, pgNumericOutOfRange:
			return fmt.Errorf("%w: transaction %s amount cannot be stored", apperrors.ErrInvalidAmount, m.TransactionID)
		}
		return fmt.Errorf("failed to save transaction %s: %w", m.TransactionID, err)
	}
	return nil
}

func (t *pgxLedgerTx) FindPendingTopUpForUpdate(ctx context.Context, pendingTopUpID string) (*domain.PendingTopUp, error) {
	query := `SELECT ` + pendingTopUpColumns + ` FROM pending_topups WHERE pending_topup_id = $1 FOR UPDATE;`
	p, err := scanPendingTopUp(t.tx.QueryRow(ctx, query, pendingTopUpID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: pending top-up %s", apperrors.ErrNotFound, pendingTopUpID)
		}
		return nil, fmt.Errorf("failed to lock pending top-up %s: %w", pendingTopUpID, err)
	}
	return &p, nil
}

func (t *pgxLedgerTx) DeletePendingTopUp(ctx context.Context, pendingTopUpID string) error {
	tag, err := t.tx.Exec(ctx, `DELETE FROM pending_topups WHERE pending_topup_id = $1;`, pendingTopUpID)
	if err != nil {
		return fmt.Errorf("failed to delete pending top-up %s: %w", pendingTopUpID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: pending top-up %s", apperrors.ErrNotFound, pendingTopUpID)
	}
	return nil
}

const transactionColumns = `transaction_id, kind, from_sub_account_id, to_sub_account_id, amount, currency_code, credit_amount, created_at`

func scanTransaction(row rowScanner) (domain.Transaction, error) {
	var m models.Transaction
	err := row.Scan(&m.TransactionID, &m.Kind, &m.FromSubAccountID, &m.ToSubAccountID,
		&m.Amount, &m.CurrencyCode, &m.CreditAmount, &m.CreatedAt)
	if err != nil {
		return domain.Transaction{}, err
	}
	return mapping.ToDomainTransaction(m), nil
}

// PgxTransactionRepository reads the append-only transaction history.
type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(pool *pgxpool.Pool) *PgxTransactionRepository {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionReader = (*PgxTransactionRepository)(nil)

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`
	txn, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	return &txn, nil
}

// ListTransactionsByAccount pages through history newest first using a (created_at, transaction_id) cursor.
func (r *PgxTransactionRepository) ListTransactionsByAccount(ctx context.Context, accountID string, page portsrepo.TransactionPage) ([]domain.Transaction, error) {
	args := []any{accountID}
	query := `
		SELECT t.transaction_id, t.kind, t.from_sub_account_id, t.to_sub_account_id,
		       t.amount, t.currency_code, t.credit_amount, t.created_at
		FROM transactions t
		WHERE (t.from_sub_account_id IN (SELECT sub_account_id FROM sub_accounts WHERE account_id = $1)
		    OR t.to_sub_account_id IN (SELECT sub_account_id FROM sub_accounts WHERE account_id = $1))`

	if page.AfterCreatedAt != nil {
		args = append(args, *page.AfterCreatedAt, page.AfterID)
		query += fmt.Sprintf(" AND (t.created_at, t.transaction_id) < ($%d, $%d)", len(args)-1, len(args))
	}
	query += " ORDER BY t.created_at DESC, t.transaction_id DESC"
	if page.Limit > 0 {
		args = append(args, page.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions for account %s: %w", accountID, err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return txns, nil
}
