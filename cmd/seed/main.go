// Command seed rebuilds the storefront schema and loads a small sample
// dataset: one regular user, one admin, a category, a couple of products,
// and a checked-out order. Destructive; intended for development databases
// only.
package main

import (
	"context"
	"os"

	"github.com/tanwl/storefront-be/internal/auth"
	"github.com/tanwl/storefront-be/internal/config"
	"github.com/tanwl/storefront-be/internal/logger"
	"github.com/tanwl/storefront-be/internal/models"
	"github.com/tanwl/storefront-be/internal/storage/postgres"
)

func main() {
	log := logger.New("info")

	cfg, err := config.Load()
	if err != nil {
		log.Error("load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	store, err := postgres.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("init database", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := store.Reset(ctx); err != nil {
		log.Error("reset schema", "error", err)
		os.Exit(1)
	}
	log.Info("schema recreated")

	if err := seed(ctx, store); err != nil {
		log.Error("seed data", "error", err)
		os.Exit(1)
	}
	log.Info("seed data loaded")
}

func seed(ctx context.Context, store *postgres.Store) error {
	user, err := createUser(ctx, store, "user01", "pass1234!", "user01@example.com", models.RoleUser)
	if err != nil {
		return err
	}
	if _, err := createUser(ctx, store, "admin01", "admin1234!", "admin01@example.com", models.RoleAdmin); err != nil {
		return err
	}

	category, err := store.CreateCategory(ctx, "guitar")
	if err != nil {
		return err
	}

	acoustic, err := store.CreateProduct(ctx, models.Product{
		Name:        "acoustic guitar",
		Description: "One of a kind acoustic guitar.",
		Price:       149.99,
		CategoryID:  &category.ID,
	})
	if err != nil {
		return err
	}
	electric, err := store.CreateProduct(ctx, models.Product{
		Name:        "electric guitar",
		Description: "Solid-body electric guitar with a maple neck.",
		Price:       329.50,
		CategoryID:  &category.ID,
	})
	if err != nil {
		return err
	}

	// A shipped order for the sample user, produced through the normal
	// checkout path so totals come from cart contents.
	if _, err := store.AddCartItem(ctx, user.ID, acoustic.ID, 1); err != nil {
		return err
	}
	if _, err := store.Checkout(ctx, user.ID, nil, "shipped"); err != nil {
		return err
	}

	// Leave something in the cart too.
	if _, err := store.AddCartItem(ctx, user.ID, electric.ID, 2); err != nil {
		return err
	}
	return nil
}

func createUser(ctx context.Context, store *postgres.Store, username, password, email, role string) (models.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}
	return store.CreateUser(ctx, models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	})
}
