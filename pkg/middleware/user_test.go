package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/megaphone-app/megaphone/pkg/middleware"
)

func TestUser(t *testing.T) {
	t.Run("valid header resolves user", func(t *testing.T) {
		id := uuid.New()

		var got uuid.UUID
		var ok bool
		handler := middleware.User()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, ok = middleware.UserFrom(r.Context())
		}))

		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("X-User-ID", id.String())
		handler.ServeHTTP(httptest.NewRecorder(), req)

		if !ok {
			t.Fatal("UserFrom should resolve the user")
		}
		if got != id {
			t.Errorf("user = %s, want %s", got, id)
		}
	})

	t.Run("missing header passes through", func(t *testing.T) {
		var ok bool
		handler := middleware.User()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, ok = middleware.UserFrom(r.Context())
		}))

		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

		if ok {
			t.Error("UserFrom should not resolve a user without the header")
		}
	})

	t.Run("malformed header passes through", func(t *testing.T) {
		var ok bool
		handler := middleware.User()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, ok = middleware.UserFrom(r.Context())
		}))

		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("X-User-ID", "not-a-uuid")
		handler.ServeHTTP(httptest.NewRecorder(), req)

		if ok {
			t.Error("UserFrom should not resolve a user from a malformed header")
		}
	})
}
