package models

import "time"

// OrderStatusPending is the status assigned at checkout unless overridden.
const OrderStatusPending = "pending"

// Order is an immutable snapshot of a checked-out cart. TotalAmount is fixed
// at creation and never recomputed.
type Order struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	TotalAmount float64   `json:"total_amount"`
	Status      string    `json:"status"`
	OrderDate   time.Time `json:"order_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
