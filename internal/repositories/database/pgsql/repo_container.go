package pgsql

import (
	portsrepo "github.com/SscSPs/multicurrency_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:           newPgxAccountRepository(dbPool),
		SubAccountRepo:        newPgxSubAccountRepository(dbPool),
		TransactionRepo:       newPgxTransactionRepository(dbPool),
		PendingTopUpRepo:      newPgxPendingTopUpRepository(dbPool),
		ScheduledTransferRepo: newPgxScheduledTransferRepository(dbPool),
		ExchangeRateRepo:      newPgxExchangeRateRepository(dbPool),
		CredentialRepo:        newPgxCredentialRepository(dbPool),
		TxManager:             newPgxTransactionManager(dbPool),
	}
}
