package mapping

import (
	"github.com/SscSPs/multicurrency_ledger/internal/core/domain"
	"github.com/SscSPs/multicurrency_ledger/internal/models"
)

// ToModelTransaction converts a domain Transaction, mapping an empty source to NULL.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	var from *string
	if d.FromSubAccountID != "" {
		id := d.FromSubAccountID
		from = &id
	}
	return models.Transaction{
		TransactionID:    d.TransactionID,
		Kind:             string(d.Kind),
		FromSubAccountID: from,
		ToSubAccountID:   d.ToSubAccountID,
		Amount:           d.Amount,
		CurrencyCode:     d.CurrencyCode,
		CreditAmount:     d.CreditAmount,
		CreatedAt:        d.CreatedAt,
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	from := ""
	if m.FromSubAccountID != nil {
		from = *m.FromSubAccountID
	}
	return domain.Transaction{
		TransactionID:    m.TransactionID,
		Kind:             domain.TransactionKind(m.Kind),
		FromSubAccountID: from,
		ToSubAccountID:   m.ToSubAccountID,
		Amount:           m.Amount,
		CurrencyCode:     m.CurrencyCode,
		CreditAmount:     m.CreditAmount,
		CreatedAt:        m.CreatedAt,
	}
}

// ToDomainPendingTopUp converts a model PendingTopUp to a domain PendingTopUp
func ToDomainPendingTopUp(m models.PendingTopUp) domain.PendingTopUp {
	return domain.PendingTopUp{
		PendingTopUpID: m.PendingTopUpID,
		AccountID:      m.AccountID,
		Amount:         m.Amount,
		CurrencyCode:   m.CurrencyCode,
		CreatedAt:      m.CreatedAt,
	}
}

// ToDomainScheduledTransfer converts a model ScheduledTransfer, normalizing the date to UTC midnight.
func ToDomainScheduledTransfer(m models.ScheduledTransfer) domain.ScheduledTransfer {
	return domain.ScheduledTransfer{
		ScheduledTransferID: m.ScheduledTransferID,
		FromAccountID:       m.FromAccountID,
		ToAccountID:         m.ToAccountID,
		Amount:              m.Amount,
		CurrencyCode:        m.CurrencyCode,
		ScheduledDate:       domain.TruncateToDate(m.ScheduledDate),
		Executed:            m.Executed,
		CreatedAt:           m.CreatedAt,
	}
}
