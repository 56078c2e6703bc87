// Package bootstrap turns configuration into the repositories and collaborators
// shared by the API server and the operator CLI.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/multicurrency_ledger/internal/adapters/alerting"
	"github.com/SscSPs/multicurrency_ledger/internal/adapters/otp"
	"github.com/SscSPs/multicurrency_ledger/internal/adapters/ratequote"
	portsrepo "github.com/SscSPs/multicurrency_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/multicurrency_ledger/internal/core/services"
	"github.com/SscSPs/multicurrency_ledger/internal/platform/config"
	"github.com/SscSPs/multicurrency_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/multicurrency_ledger/internal/repositories/memory"
	"github.com/SscSPs/multicurrency_ledger/internal/utils"
	"github.com/SscSPs/multicurrency_ledger/pkg/database"
)

// OpenRepositories connects the configured store. The returned func releases it.
func OpenRepositories(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	if cfg.UsesMemoryStore() {
		logger.Warn("Using in-memory store; all data is lost on exit")
		store := memory.NewStore()
		store.SeedReserve(ctx, time.Now().UTC())
		return memory.NewRepositoryProvider(store), func() {}, nil
	}

	if cfg.RunMigrations {
		logger.Info("Running database migrations...")
		if err := database.RunMigrations(logger, cfg.DatabaseURL); err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
	}

	pool, err := database.NewPgxPool(ctx, logger, cfg.DatabaseURL, cfg.EnableDBCheck,
		database.WithMaxConns(cfg.DBMaxConns),
		database.WithHealthCheckPeriod(time.Minute),
	)
	if err != nil {
		return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("failed to initialize database pool: %w", err)
	}
	logger.Info("Database connection pool established.")
	return pgsql.NewRepositoryProvider(pool), func() { database.ClosePgxPool(logger, pool) }, nil
}

// Collaborators builds the external adapters. Features without configuration are left nil
// so the services disable them, except alerts which fall back to the log.
func Collaborators(cfg *config.Config, repos portsrepo.RepositoryProvider, logger *slog.Logger) (services.Collaborators, error) {
	var collab services.Collaborators

	switch cfg.RateQuoteSource {
	case config.QuoteSourceDB:
		collab.Quoter = ratequote.NewStoredQuoter(repos.ExchangeRateRepo)
		collab.QuoteSource = config.QuoteSourceDB
	case config.QuoteSourceAPI:
		if cfg.RateAPIKey != "" {
			client := utils.NewHTTPClient(utils.WithTimeout(cfg.RateQuoteTimeout))
			collab.Quoter = ratequote.NewHTTPQuoter(cfg.RateAPIBaseURL, cfg.RateAPIKey, client)
			collab.QuoteSource = config.QuoteSourceAPI
		}
	}

	if cfg.TelegramBotToken != "" {
		client := utils.NewHTTPClient(utils.WithTimeout(cfg.AlertTimeout))
		collab.Notifier = alerting.NewTelegramNotifier(cfg.TelegramAPIBaseURL, cfg.TelegramBotToken, cfg.TelegramChatID, client)
	} else {
		collab.Notifier = alerting.NewLogNotifier(logger)
	}

	if cfg.OTPCommand != "" {
		verifier, err := otp.NewCommandVerifier(cfg.OTPCommand)
		if err != nil {
			return services.Collaborators{}, fmt.Errorf("invalid OTP_COMMAND: %w", err)
		}
		collab.OTP = verifier
	}

	return collab, nil
}

// Settings maps configuration onto the service tunables.
func Settings(cfg *config.Config) services.Settings {
	return services.Settings{
		QuoteTimeout: cfg.RateQuoteTimeout,
		AlertTimeout: cfg.AlertTimeout,
		Auth: services.AuthConfig{
			JWTSecret:         cfg.JWTSecret,
			JWTExpiry:         cfg.JWTExpiryDuration,
			JWTIssuer:         cfg.JWTIssuer,
			AdminUsername:     cfg.AdminUsername,
			AdminPasswordHash: cfg.AdminPasswordHash,
			OTPTimeout:        cfg.OTPTimeout,
		},
	}
}
