package services

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/multicurrency_ledger/internal/apperrors"
	"github.com/SscSPs/multicurrency_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/multicurrency_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/multicurrency_ledger/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// lockPair locks the (account, currency) sub-accounts of both sides in a fixed order so that
// concurrent movements touching the same pair cannot deadlock. It returns them as (from, to).
func lockPair(ctx context.Context, tx portsrepo.LedgerTx, fromAccountID, fromCurrency, toAccountID, toCurrency string) (*domain.SubAccount, *domain.SubAccount, error) {
	firstAcc, firstCur, secondAcc, secondCur := fromAccountID, fromCurrency, toAccountID, toCurrency
	swapped := toAccountID < fromAccountID || (toAccountID == fromAccountID && toCurrency < fromCurrency)
	if swapped {
		firstAcc, firstCur, secondAcc, secondCur = secondAcc, secondCur, firstAcc, firstCur
	}

	first, err := tx.FindSubAccountForUpdate(ctx, firstAcc, firstCur)
	if err != nil {
		return nil, nil, err
	}
	second, err := tx.FindSubAccountForUpdate(ctx, secondAcc, secondCur)
	if err != nil {
		return nil, nil, err
	}
	if swapped {
		return second, first, nil
	}
	return first, second, nil
}

// moveFunds runs one same-currency movement inside tx: lock both sides, check funds,
// debit, credit and append the history record. Any error leaves the unit of work to roll back.
func moveFunds(ctx context.Context, tx portsrepo.LedgerTx, kind domain.TransactionKind, fromAccountID, toAccountID string, amount decimal.Decimal, currency string, now time.Time) (*domain.Transaction, error) {
	if fromAccountID == toAccountID {
		return nil, apperrors.ErrSameSubAccount
	}

	from, to, err := lockPair(ctx, tx, fromAccountID, currency, toAccountID, currency)
	if err != nil {
		return nil, err
	}
	if from.CurrencyCode != to.CurrencyCode {
		return nil, fmt.Errorf("%w: %s to %s", apperrors.ErrCurrencyMismatch, from.CurrencyCode, to.CurrencyCode)
	}
	if err := accounting.EnsureSufficientFunds(*from, amount); err != nil {
		return nil, err
	}

	if _, err := tx.AdjustBalance(ctx, from.SubAccountID, amount.Neg(), now); err != nil {
		return nil, fmt.Errorf("debit %s: %w", from.SubAccountID, err)
	}
	if _, err := tx.AdjustBalance(ctx, to.SubAccountID, amount, now); err != nil {
		return nil, fmt.Errorf("credit %s: %w", to.SubAccountID, err)
	}

	txn := domain.Transaction{
		TransactionID:    uuid.NewString(),
		Kind:             kind,
		FromSubAccountID: from.SubAccountID,
		ToSubAccountID:   to.SubAccountID,
		Amount:           amount,
		CurrencyCode:     currency,
		CreditAmount:     amount,
		CreatedAt:        now,
	}
	if err := tx.SaveTransaction(ctx, txn); err != nil {
		return nil, fmt.Errorf("record transaction: %w", err)
	}
	return &txn, nil
}
