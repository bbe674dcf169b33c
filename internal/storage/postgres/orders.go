package postgres

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/jackc/pgx/v5"

	"github.com/tanwl/storefront-be/internal/models"
	"github.com/tanwl/storefront-be/internal/storage"
)

const orderColumns = `id, user_id, total_amount, status, order_date, created_at, updated_at`

// totalTolerance absorbs float rounding when comparing a client-supplied
// total against the recomputed one.
const totalTolerance = 0.005

// Checkout converts the user's cart into an order inside one transaction:
// the total is recomputed from persisted cart lines, the order row is
// written with that total, and the cart is cleared. An empty cart or a
// client total that disagrees with the recomputation aborts the checkout.
func (s *Store) Checkout(ctx context.Context, userID int64, clientTotal *float64, status string) (models.Order, error) {
	if status == "" {
		status = models.OrderStatusPending
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return models.Order{}, fmt.Errorf("begin checkout: %w", err)
	}
	defer tx.Rollback(ctx)

	var total float64
	var lines int64
	err = tx.QueryRow(ctx, `
		SELECT COALESCE(SUM(p.price * c.quantity), 0), COUNT(*)
		FROM cart c
		JOIN products p ON c.product_id = p.id
		WHERE c.user_id = $1;`, userID).Scan(&total, &lines)
	if err != nil {
		return models.Order{}, fmt.Errorf("sum cart: %w", err)
	}
	if lines == 0 {
		return models.Order{}, storage.ErrEmptyCart
	}
	if clientTotal != nil && math.Abs(*clientTotal-total) > totalTolerance {
		return models.Order{}, storage.ErrTotalMismatch
	}

	order, err := scanOrder(tx.QueryRow(ctx, `
		INSERT INTO orders (user_id, total_amount, status)
		VALUES ($1, $2, $3)
		RETURNING `+orderColumns+`;`, userID, total, status))
	if err != nil {
		return models.Order{}, fmt.Errorf("insert order: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM cart WHERE user_id = $1;`, userID); err != nil {
		return models.Order{}, fmt.Errorf("clear cart: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return models.Order{}, fmt.Errorf("commit checkout: %w", err)
	}
	return order, nil
}

// OrdersForUser returns the user's orders, newest first.
func (s *Store) OrdersForUser(ctx context.Context, userID int64) ([]models.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY order_date DESC;`
	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

// AllOrders returns every order across users, newest first.
func (s *Store) AllOrders(ctx context.Context) ([]models.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders ORDER BY order_date DESC;`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

func collectOrders(rows pgx.Rows) ([]models.Order, error) {
	orders := []models.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

func scanOrder(row pgx.Row) (models.Order, error) {
	var order models.Order
	err := row.Scan(&order.ID, &order.UserID, &order.TotalAmount, &order.Status,
		&order.OrderDate, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Order{}, storage.ErrNotFound
		}
		return models.Order{}, err
	}
	return order, nil
}
