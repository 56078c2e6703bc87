package services

import (
	"time"

	portsrepo "github.com/SscSPs/multicurrency_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/multicurrency_ledger/internal/core/ports/services"
)

// Collaborators are the external systems the services talk to. Nil entries disable the feature:
// no quoter fails every conversion, no notifier drops alerts and no OTP verifier skips the second factor.
type Collaborators struct {
	Quoter        portssvc.RateQuoter
	QuoteSource   string
	Notifier      portssvc.Notifier
	Authenticator portssvc.Authenticator
	OTP           portssvc.OTPVerifier
}

// Settings are the tunables shared by the services.
type Settings struct {
	QuoteTimeout time.Duration
	AlertTimeout time.Duration
	Auth         AuthConfig
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos *portsrepo.RepositoryProvider, collab Collaborators, settings Settings) *portssvc.ServiceContainer {
	account := NewAccountService(repos.AccountRepo, repos.SubAccountRepo)

	transfer := NewTransferService(
		repos.TxManager,
		repos.SubAccountRepo,
		repos.TransactionRepo,
		WithRateQuoter(collab.Quoter, collab.QuoteSource, settings.QuoteTimeout),
	)

	authenticator := collab.Authenticator
	if authenticator == nil {
		authenticator = NewCredentialAuthenticator(repos.CredentialRepo)
	}

	return &portssvc.ServiceContainer{
		Account:           account,
		Transfer:          transfer,
		TopUp:             NewTopUpService(repos.TxManager, repos.AccountRepo, repos.PendingTopUpRepo),
		ScheduledTransfer: NewScheduledTransferService(repos.AccountRepo, repos.ScheduledTransferRepo),
		Scheduler:         NewSchedulerService(repos.ScheduledTransferRepo, transfer, collab.Notifier, settings.AlertTimeout),
		Auth:              NewAuthService(settings.Auth, account, repos.CredentialRepo, authenticator, collab.OTP),
		ExchangeRate:      NewExchangeRateService(repos.ExchangeRateRepo),
	}
}
