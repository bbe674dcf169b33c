package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/tanwl/storefront-be/internal/auth"
	"github.com/tanwl/storefront-be/internal/config"
	"github.com/tanwl/storefront-be/internal/http/handlers"
	"github.com/tanwl/storefront-be/internal/middleware"
	"github.com/tanwl/storefront-be/internal/storage"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server. The store and
// token manager are injected; nothing here holds package-level state.
func New(cfg *config.Config, logger *slog.Logger, store storage.Store, tokens *auth.TokenManager) *Server {
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           Router(cfg, logger, store, tokens),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return &Server{inner: httpServer}
}

// Router builds the full route tree. Split out from New so tests can mount
// it on an httptest server.
func Router(cfg *config.Config, logger *slog.Logger, store storage.Store, tokens *auth.TokenManager) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(chimw.Timeout(cfg.RequestTimeout))

	requireAuth := middleware.RequireAuth(tokens, store, logger)

	authHandler := handlers.NewAuthHandler(store, tokens, logger)
	userHandler := handlers.NewUserHandler(store, store, logger)
	productHandler := handlers.NewProductHandler(store, logger)
	categoryHandler := handlers.NewCategoryHandler(store, logger)
	cartHandler := handlers.NewCartHandler(store, logger)
	orderHandler := handlers.NewOrderHandler(store, logger)
	adminHandler := handlers.NewAdminHandler(store, store, logger)

	handlers.NewHealthHandler(time.Now()).Register(r)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", authHandler.Register)

		r.Route("/products", func(r chi.Router) {
			productHandler.RegisterPublic(r)
			r.Group(func(r chi.Router) {
				r.Use(requireAuth, middleware.RequireAdmin)
				productHandler.RegisterAdmin(r)
			})
		})

		r.Route("/categories", func(r chi.Router) {
			categoryHandler.RegisterPublic(r)
			r.Group(func(r chi.Router) {
				r.Use(requireAuth, middleware.RequireAdmin)
				categoryHandler.RegisterAdmin(r)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(requireAuth)
			userHandler.Register(r)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(requireAuth)
			cartHandler.Register(r)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Use(requireAuth)
			orderHandler.Register(r)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(requireAuth, middleware.RequireAdmin)
			adminHandler.Register(r)
		})
	})

	return r
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
