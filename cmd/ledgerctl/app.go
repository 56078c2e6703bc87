package main

import (
	"context"
	"log/slog"

	portssvc "github.com/SscSPs/multicurrency_ledger/internal/core/ports/services"
	"github.com/SscSPs/multicurrency_ledger/internal/core/services"
	"github.com/SscSPs/multicurrency_ledger/internal/platform/bootstrap"
	"github.com/SscSPs/multicurrency_ledger/internal/platform/config"
)

// opener builds the service container for one command run. The returned func releases it.
type opener func(ctx context.Context) (*portssvc.ServiceContainer, func(), error)

func openServices(logger *slog.Logger) opener {
	return func(ctx context.Context) (*portssvc.ServiceContainer, func(), error) {
		cfg, err := config.LoadConfig()
		if err != nil {
			return nil, nil, err
		}
		if cfg.UsesMemoryStore() {
			logger.Warn("DB_DRIVER=memory: changes made by this command are not persisted")
		}

		repos, closeRepos, err := bootstrap.OpenRepositories(ctx, cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		collab, err := bootstrap.Collaborators(cfg, repos, logger)
		if err != nil {
			closeRepos()
			return nil, nil, err
		}
		return services.NewServiceContainer(&repos, collab, bootstrap.Settings(cfg)), closeRepos, nil
	}
}
