package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tanwl/storefront-be/internal/models"
	"github.com/tanwl/storefront-be/internal/storage"
)

// CreateCategory inserts a category; duplicate names map to
// storage.ErrDuplicateCategory.
func (s *Store) CreateCategory(ctx context.Context, name string) (models.Category, error) {
	const query = `
		INSERT INTO categories (name)
		VALUES ($1)
		RETURNING id, name, created_at, updated_at;`

	var category models.Category
	err := s.pool.QueryRow(ctx, query, name).
		Scan(&category.ID, &category.Name, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return models.Category{}, storage.ErrDuplicateCategory
		}
		return models.Category{}, err
	}
	return category, nil
}

// ListCategories returns every category.
func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	const query = `SELECT id, name, created_at, updated_at FROM categories ORDER BY name;`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var category models.Category
		if err := rows.Scan(&category.ID, &category.Name, &category.CreatedAt, &category.UpdatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}
