package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type contextKey string

const userKey contextKey = "user"

// User returns middleware that resolves the requesting user from the
// X-User-ID header and stores it on the request context. Requests without
// a valid header pass through; handlers that require ownership reject them.
func User() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if raw := r.Header.Get("X-User-ID"); raw != "" {
				if id, err := uuid.Parse(raw); err == nil {
					r = r.WithContext(context.WithValue(r.Context(), userKey, id))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// UserFrom extracts the requesting user's id from the context.
func UserFrom(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userKey).(uuid.UUID)
	return id, ok
}
