// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"net/http"

	"github.com/megaphone-app/megaphone/internal/config"
	"github.com/megaphone-app/megaphone/internal/infrastructure"
	"github.com/megaphone-app/megaphone/pkg/middleware"
	"github.com/megaphone-app/megaphone/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime, err := NewRuntime(cfg, infra)
	if err != nil {
		return nil, err
	}
	domain := NewDomain(runtime, cfg)

	mux := http.NewServeMux()
	registerRoutes(mux, domain, runtime)

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.User())
	m.Use(middleware.Logger(runtime.Logger))

	return m, nil
}
