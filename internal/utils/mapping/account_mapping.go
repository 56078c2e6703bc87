package mapping

import (
	"github.com/SscSPs/multicurrency_ledger/internal/core/domain"
	"github.com/SscSPs/multicurrency_ledger/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:     d.AccountID,
		HolderName:    d.HolderName,
		Status:        string(d.Status),
		CreatedAt:     d.CreatedAt,
		LastUpdatedAt: d.LastUpdatedAt,
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:  m.AccountID,
		HolderName: m.HolderName,
		Status:     domain.AccountStatus(m.Status),
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}

// ToModelSubAccount converts a domain SubAccount to a model SubAccount
func ToModelSubAccount(d domain.SubAccount) models.SubAccount {
	return models.SubAccount{
		SubAccountID:  d.SubAccountID,
		AccountID:     d.AccountID,
		CurrencyCode:  d.CurrencyCode,
		Balance:       d.Balance,
		CreatedAt:     d.CreatedAt,
		LastUpdatedAt: d.LastUpdatedAt,
	}
}

// ToDomainSubAccount converts a model SubAccount to a domain SubAccount
func ToDomainSubAccount(m models.SubAccount) domain.SubAccount {
	return domain.SubAccount{
		SubAccountID: m.SubAccountID,
		AccountID:    m.AccountID,
		CurrencyCode: m.CurrencyCode,
		Balance:      m.Balance,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}

// ToDomainCredential converts a model Credential to a domain Credential
func ToDomainCredential(m models.Credential) domain.Credential {
	return domain.Credential{
		Username:     m.Username,
		AccountID:    m.AccountID,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
	}
}
