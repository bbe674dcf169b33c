package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tanwl/storefront-be/internal/models"
	"github.com/tanwl/storefront-be/internal/storage"
)

const productColumns = `id, name, description, price, category_id, image_url, created_at, updated_at`

// CreateProduct inserts a catalog entry.
func (s *Store) CreateProduct(ctx context.Context, product models.Product) (models.Product, error) {
	const query = `
		INSERT INTO products (name, description, price, category_id, image_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + productColumns + `;`

	row := s.pool.QueryRow(ctx, query, product.Name, product.Description,
		product.Price, product.CategoryID, product.ImageURL)
	return scanProduct(row)
}

// ProductByID fetches a single product.
func (s *Store) ProductByID(ctx context.Context, id int64) (models.Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products WHERE id = $1;`
	return scanProduct(s.pool.QueryRow(ctx, query, id))
}

// ListProducts returns the catalog, newest first.
func (s *Store) ListProducts(ctx context.Context) ([]models.Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC;`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

// UpdateProduct applies a partial edit, touching updated_at.
func (s *Store) UpdateProduct(ctx context.Context, id int64, patch storage.ProductPatch) (models.Product, error) {
	var b setBuilder
	if patch.Name != nil {
		b.set("name", *patch.Name)
	}
	if patch.Description != nil {
		b.set("description", *patch.Description)
	}
	if patch.Price != nil {
		b.set("price", *patch.Price)
	}
	if patch.CategoryID != nil {
		b.set("category_id", *patch.CategoryID)
	}
	if patch.ImageURL != nil {
		b.set("image_url", *patch.ImageURL)
	}
	if b.empty() {
		return models.Product{}, fmt.Errorf("update product %d: empty patch", id)
	}

	query := fmt.Sprintf(`
		UPDATE products SET %s, updated_at = NOW()
		WHERE id = $%d
		RETURNING `+productColumns+`;`, b.clause(), b.next(id))

	return scanProduct(s.pool.QueryRow(ctx, query, b.args...))
}

// DeleteProduct removes a product; cart lines referencing it cascade away.
func (s *Store) DeleteProduct(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM products WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func scanProduct(row pgx.Row) (models.Product, error) {
	var product models.Product
	err := row.Scan(&product.ID, &product.Name, &product.Description, &product.Price,
		&product.CategoryID, &product.ImageURL, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Product{}, storage.ErrNotFound
		}
		return models.Product{}, err
	}
	return product, nil
}
