package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/tanwl/storefront-be/internal/auth"
	"github.com/tanwl/storefront-be/internal/middleware"
	"github.com/tanwl/storefront-be/internal/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testTokens() *auth.TokenManager {
	return auth.NewTokenManager("test-secret", "storefront-test", time.Hour)
}

// newTestRouter mounts the handlers the way the server does, backed by the
// fake store.
func newTestRouter(fs *fakeStore, tokens *auth.TokenManager) http.Handler {
	logger := testLogger()
	requireAuth := middleware.RequireAuth(tokens, fs, logger)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", NewAuthHandler(fs, tokens, logger).Register)

		r.Route("/products", func(r chi.Router) {
			productHandler := NewProductHandler(fs, logger)
			productHandler.RegisterPublic(r)
			r.Group(func(r chi.Router) {
				r.Use(requireAuth, middleware.RequireAdmin)
				productHandler.RegisterAdmin(r)
			})
		})

		r.Route("/categories", func(r chi.Router) {
			categoryHandler := NewCategoryHandler(fs, logger)
			categoryHandler.RegisterPublic(r)
			r.Group(func(r chi.Router) {
				r.Use(requireAuth, middleware.RequireAdmin)
				categoryHandler.RegisterAdmin(r)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(requireAuth)
			NewUserHandler(fs, fs, logger).Register(r)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(requireAuth)
			NewCartHandler(fs, logger).Register(r)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Use(requireAuth)
			NewOrderHandler(fs, logger).Register(r)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(requireAuth, middleware.RequireAdmin)
			NewAdminHandler(fs, fs, logger).Register(r)
		})
	})
	return r
}

// seedUser creates a user directly in the fake store with a real bcrypt hash.
func seedUser(t *testing.T, fs *fakeStore, username, password, role string) models.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	user, err := fs.CreateUser(context.Background(), models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		Role:         role,
	})
	require.NoError(t, err)
	return user
}

func seedProduct(t *testing.T, fs *fakeStore, name string, price float64) models.Product {
	t.Helper()
	product, err := fs.CreateProduct(context.Background(), models.Product{
		Name:        name,
		Description: name + " description",
		Price:       price,
	})
	require.NoError(t, err)
	return product
}

func tokenFor(t *testing.T, tokens *auth.TokenManager, user models.User) string {
	t.Helper()
	token, err := tokens.Generate(user)
	require.NoError(t, err)
	return token
}

// doJSON performs a request against the router. An empty token leaves the
// Authorization header off entirely.
func doJSON(t *testing.T, handler http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}
