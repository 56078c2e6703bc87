package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is the accounts table row.
type Account struct {
	AccountID     string    `db:"account_id"`
	HolderName    string    `db:"holder_name"`
	Status        string    `db:"status"`
	CreatedAt     time.Time `db:"created_at"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
}

// SubAccount is the sub_accounts table row.
type SubAccount struct {
	SubAccountID  string          `db:"sub_account_id"`
	AccountID     string          `db:"account_id"`
	CurrencyCode  string          `db:"currency_code"`
	Balance       decimal.Decimal `db:"balance"`
	CreatedAt     time.Time       `db:"created_at"`
	LastUpdatedAt time.Time       `db:"last_updated_at"`
}

// Credential is the credentials table row.
type Credential struct {
	Username     string    `db:"username"`
	AccountID    string    `db:"account_id"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}
