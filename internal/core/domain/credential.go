package domain

import "time"

// Credential binds a login name to an account. Only the bcrypt hash of the password is stored.
type Credential struct {
	Username     string    `json:"username"`
	AccountID    string    `json:"accountID"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
