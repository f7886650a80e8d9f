package api

import (
	"github.com/megaphone-app/megaphone/internal/accounts"
	"github.com/megaphone-app/megaphone/internal/config"
	"github.com/megaphone-app/megaphone/internal/content"
	"github.com/megaphone-app/megaphone/internal/sites"
	"github.com/megaphone-app/megaphone/internal/sources"
	"github.com/megaphone-app/megaphone/internal/users"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Users    users.System
	Sites    sites.System
	Sources  sources.System
	Accounts accounts.System
	Content  content.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime, cfg *config.Config) *Domain {
	db := runtime.Database.Connection()

	usersSystem := users.New(db, runtime.Logger, runtime.Pagination)

	sitesSystem := sites.New(db, runtime.Logger, runtime.Pagination)

	fetcher := sources.NewFetcher(cfg.Social.TimeoutDuration(), cfg.API.MaxFetchSizeBytes())
	sourcesSystem := sources.New(
		db,
		fetcher,
		runtime.Storage,
		sitesSystem,
		runtime.Logger,
		runtime.Pagination,
	)

	accountsSystem := accounts.New(
		db,
		runtime.Vault,
		runtime.Adapters,
		runtime.Logger,
		runtime.Pagination,
	)

	contentSystem := content.New(
		db,
		runtime.Generation,
		accountsSystem,
		sourcesSystem,
		runtime.Adapters,
		runtime.Logger,
		runtime.Pagination,
	)

	return &Domain{
		Users:    usersSystem,
		Sites:    sitesSystem,
		Sources:  sourcesSystem,
		Accounts: accountsSystem,
		Content:  contentSystem,
	}
}
