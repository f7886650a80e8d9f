package api

import (
	"fmt"

	"github.com/megaphone-app/megaphone/internal/config"
	"github.com/megaphone-app/megaphone/internal/generation"
	"github.com/megaphone-app/megaphone/internal/infrastructure"
	"github.com/megaphone-app/megaphone/pkg/pagination"
	"github.com/megaphone-app/megaphone/pkg/secrets"
	"github.com/megaphone-app/megaphone/pkg/social"
)

// Runtime extends Infrastructure with the API module's pipeline systems:
// the AI generation mix, the credential vault, and the platform adapter
// registry.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination pagination.Config
	Generation generation.System
	Vault      secrets.System
	Adapters   *social.Registry
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) (*Runtime, error) {
	logger := infra.Logger.With("module", "api")

	generator, err := generation.NewSystem(cfg.Generation, nil, logger)
	if err != nil {
		return nil, fmt.Errorf("generation init failed: %w", err)
	}

	vault, err := secrets.New(&cfg.Secrets)
	if err != nil {
		return nil, fmt.Errorf("secrets init failed: %w", err)
	}

	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    logger,
			Database:  infra.Database,
			Storage:   infra.Storage,
		},
		Pagination: cfg.API.Pagination,
		Generation: generator,
		Vault:      vault,
		Adapters:   social.NewRegistry(cfg.Social),
	}, nil
}
