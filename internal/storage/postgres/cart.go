package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tanwl/storefront-be/internal/models"
	"github.com/tanwl/storefront-be/internal/storage"
)

// AddCartItem upserts a cart line in a single statement: a fresh (user,
// product) pair is inserted, an existing one has the quantity added to it.
// The conflict clause keeps concurrent adds from losing updates.
func (s *Store) AddCartItem(ctx context.Context, userID, productID int64, quantity int32) (models.CartLine, error) {
	const query = `
		INSERT INTO cart (user_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = cart.quantity + EXCLUDED.quantity, updated_at = NOW()
		RETURNING user_id, product_id, quantity, created_at, updated_at;`

	line, err := scanCartLine(s.pool.QueryRow(ctx, query, userID, productID, quantity))
	if err != nil {
		var pgErr *pgconn.PgError
		// 23503: the referenced product (or user) does not exist.
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return models.CartLine{}, storage.ErrNotFound
		}
		return models.CartLine{}, err
	}
	return line, nil
}

// CartItems returns the user's cart joined with product display attributes.
func (s *Store) CartItems(ctx context.Context, userID int64) ([]models.CartItem, error) {
	const query = `
		SELECT c.user_id, c.product_id, c.quantity, c.created_at, c.updated_at,
		       p.name, p.description, p.price, p.image_url
		FROM cart c
		JOIN products p ON c.product_id = p.id
		WHERE c.user_id = $1;`

	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.CartItem{}
	for rows.Next() {
		var item models.CartItem
		err := rows.Scan(&item.UserID, &item.ProductID, &item.Quantity,
			&item.CreatedAt, &item.UpdatedAt,
			&item.ProductName, &item.ProductDescription, &item.ProductPrice, &item.ProductImageURL)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// SetCartQuantity replaces a line's quantity, touching updated_at. Returns
// storage.ErrNotFound when the user has no line for that product.
func (s *Store) SetCartQuantity(ctx context.Context, userID, productID int64, quantity int32) (models.CartLine, error) {
	const query = `
		UPDATE cart SET quantity = $1, updated_at = NOW()
		WHERE user_id = $2 AND product_id = $3
		RETURNING user_id, product_id, quantity, created_at, updated_at;`

	return scanCartLine(s.pool.QueryRow(ctx, query, quantity, userID, productID))
}

// RemoveCartItem deletes a line. Removing a line that is not there is not an
// error; the boolean reports whether anything was deleted.
func (s *Store) RemoveCartItem(ctx context.Context, userID, productID int64) (bool, error) {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM cart WHERE user_id = $1 AND product_id = $2;`, userID, productID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func scanCartLine(row pgx.Row) (models.CartLine, error) {
	var line models.CartLine
	err := row.Scan(&line.UserID, &line.ProductID, &line.Quantity, &line.CreatedAt, &line.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.CartLine{}, storage.ErrNotFound
		}
		return models.CartLine{}, err
	}
	return line, nil
}
