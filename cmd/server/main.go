package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tanwl/storefront-be/internal/auth"
	"github.com/tanwl/storefront-be/internal/config"
	"github.com/tanwl/storefront-be/internal/logger"
	"github.com/tanwl/storefront-be/internal/server"
	"github.com/tanwl/storefront-be/internal/storage/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New("error").Error("load config", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)

	ctx := context.Background()
	store, err := postgres.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("init database", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL())
	srv := server.New(cfg, log, store, tokens)

	go func() {
		log.Info("storefront backend listening", "addr", cfg.HTTPAddress())
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", "error", err)
			os.Exit(1)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Error("graceful shutdown error", "error", err)
	}
	log.Info("server stopped")
}
