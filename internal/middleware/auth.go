package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tanwl/storefront-be/internal/auth"
	"github.com/tanwl/storefront-be/internal/http/respond"
	"github.com/tanwl/storefront-be/internal/models"
	"github.com/tanwl/storefront-be/internal/storage"
)

type callerContextKey struct{}

// CallerFromContext returns the verified caller attached by RequireAuth.
func CallerFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(callerContextKey{}).(models.User)
	return user, ok
}

// RequireAuth verifies the bearer token and loads the caller's current
// record from the store, so a deleted account fails even with a valid
// token and role changes since issuance are honored. The normalized caller
// (flat id/username/email/role) is placed in the request context.
func RequireAuth(tokens *auth.TokenManager, users storage.UserStore, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				respond.Error(w, http.StatusUnauthorized, "authorization token required")
				return
			}

			userID, _, err := tokens.Verify(token)
			if err != nil {
				respond.Error(w, http.StatusUnauthorized, "invalid token")
				return
			}

			user, err := users.UserByID(r.Context(), userID)
			if err != nil {
				if errors.Is(err, storage.ErrNotFound) {
					respond.Error(w, http.StatusUnauthorized, "invalid token")
					return
				}
				logger.Error("load caller", "user_id", userID, "error", err)
				respond.Error(w, http.StatusInternalServerError, "internal server error")
				return
			}

			ctx := context.WithValue(r.Context(), callerContextKey{}, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin allows only callers with the admin role. Must run after
// RequireAuth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller, ok := CallerFromContext(r.Context())
		if !ok || !caller.IsAdmin() {
			respond.Error(w, http.StatusForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSelf allows only the caller whose ID matches the {id} URL
// parameter. Must run after RequireAuth.
func RequireSelf(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller, ok := CallerFromContext(r.Context())
		if !ok {
			respond.Error(w, http.StatusUnauthorized, "authorization token required")
			return
		}
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil || id != caller.ID {
			respond.Error(w, http.StatusForbidden, "not authorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. The bare-token form is deliberately not accepted.
func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := header[len(prefix):]
	return token, token != ""
}
