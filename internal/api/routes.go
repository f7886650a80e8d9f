package api

import (
	"net/http"

	"github.com/megaphone-app/megaphone/pkg/routes"
	"github.com/megaphone-app/megaphone/pkg/storage"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	runtime *Runtime,
) {
	routes.Register(
		mux,
		domain.Users.Handler().Routes(),
		domain.Sites.Handler().Routes(),
		domain.Sources.Handler().Routes(),
		domain.Accounts.Handler().Routes(),
		domain.Content.Handler().Routes(),
		newStorageHandler(runtime.Storage, runtime.Logger, storage.MaxListCap).routes(),
	)
}
