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

const accountColumns = `account_id, holder_name, status, created_at, last_updated_at`

const subAccountColumns = `sub_account_id, account_id, currency_code, balance, created_at, last_updated_at`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func scanAccount(row rowScanner) (domain.Account, error) {
	var m models.Account
	if err := row.Scan(&m.AccountID, &m.HolderName, &m.Status, &m.CreatedAt, &m.LastUpdatedAt); err != nil {
		return domain.Account{}, err
	}
	return mapping.ToDomainAccount(m), nil
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `INSERT INTO accounts (` + accountColumns + `) VALUES ($1, $2, $3, $4, $5);`

	_, err := r.Pool.Exec(ctx, query, m.AccountID, m.HolderName, m.Status, m.CreatedAt, m.LastUpdatedAt)
	if err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return fmt.Errorf("%w: %q", apperrors.ErrDuplicateAccount, m.HolderName)
		}
		return fmt.Errorf("failed to save account %s: %w", m.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}
	return &acc, nil
}

func (r *PgxAccountRepository) FindAccountByHolderName(ctx context.Context, holderName string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE holder_name = $1;`
	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, holderName))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: account holder %q", apperrors.ErrNotFound, holderName)
		}
		return nil, fmt.Errorf("failed to find account by holder name: %w", err)
	}
	return &acc, nil
}

func (r *PgxAccountRepository) ListAccounts(ctx context.Context, limit, offset int) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY created_at, account_id LIMIT $1 OFFSET $2;`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

type PgxSubAccountRepository struct {
	BaseRepository
}

// newPgxSubAccountRepository creates a new repository for sub-account data.
func newPgxSubAccountRepository(pool *pgxpool.Pool) *PgxSubAccountRepository {
	return &PgxSubAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SubAccountRepositoryFacade = (*PgxSubAccountRepository)(nil)

func scanSubAccount(row rowScanner) (domain.SubAccount, error) {
	var m models.SubAccount
	if err := row.Scan(&m.SubAccountID, &m.AccountID, &m.CurrencyCode, &m.Balance, &m.CreatedAt, &m.LastUpdatedAt); err != nil {
		return domain.SubAccount{}, err
	}
	return mapping.ToDomainSubAccount(m), nil
}

// SaveSubAccount inserts a new sub-account. The unique (account_id, currency_code) index
// rejects a second sub-account in the same currency without touching the first.
func (r *PgxSubAccountRepository) SaveSubAccount(ctx context.Context, sub domain.SubAccount) error {
	m := mapping.ToModelSubAccount(sub)
	query := `INSERT INTO sub_accounts (` + subAccountColumns + `) VALUES ($1, $2, $3, $4, $5, $6);`

	_, err := r.Pool.Exec(ctx, query, m.SubAccountID, m.AccountID, m.CurrencyCode, m.Balance, m.CreatedAt, m.LastUpdatedAt)
	if err != nil {
		switch pgErrorCode(err) {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s for account %s", apperrors.ErrDuplicateSubAccount, m.CurrencyCode, m.AccountID)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, m.AccountID)
		case pgCheckViolation:
			return fmt.Errorf("%w: opening balance cannot be negative", apperrors.ErrValidation)
		}
		return fmt.Errorf("failed to save sub-account %s: %w", m.SubAccountID, err)
	}
	return nil
}

func (r *PgxSubAccountRepository) FindSubAccount(ctx context.Context, accountID, currencyCode string) (*domain.SubAccount, error) {
	query := `SELECT ` + subAccountColumns + ` FROM sub_accounts WHERE account_id = $1 AND currency_code = $2;`
	sub, err := scanSubAccount(r.Pool.QueryRow(ctx, query, accountID, currencyCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s for account %s", apperrors.ErrNoMatchingSubAccount, currencyCode, accountID)
		}
		return nil, fmt.Errorf("failed to find sub-account: %w", err)
	}
	return &sub, nil
}

func (r *PgxSubAccountRepository) FindSubAccountByID(ctx context.Context, subAccountID string) (*domain.SubAccount, error) {
	query := `SELECT ` + subAccountColumns + ` FROM sub_accounts WHERE sub_account_id = $1;`
	sub, err := scanSubAccount(r.Pool.QueryRow(ctx, query, subAccountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: sub-account %s", apperrors.ErrNotFound, subAccountID)
		}
		return nil, fmt.Errorf("failed to find sub-account %s: %w", subAccountID, err)
	}
	return &sub, nil
}

func (r *PgxSubAccountRepository) ListSubAccountsByAccount(ctx context.Context, accountID string) ([]domain.SubAccount, error) {
	query := `SELECT ` + subAccountColumns + ` FROM sub_accounts WHERE account_id = $1 ORDER BY currency_code;`
	rows, err := r.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sub-accounts: %w", err)
	}
	defer rows.Close()

	subs := []domain.SubAccount{}
	for rows.Next() {
		sub, err := scanSubAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sub-account row: %w", err)
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}
