package models

import "time"

// CartLine is one row of a user's cart: exactly one line per (user, product)
// pair, quantity always positive.
type CartLine struct {
	UserID    int64     `json:"user_id"`
	ProductID int64     `json:"product_id"`
	Quantity  int32     `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CartItem is a cart line joined with the product's display attributes, the
// shape returned when reading the whole cart.
type CartItem struct {
	CartLine
	ProductName        string  `json:"product_name"`
	ProductDescription string  `json:"description"`
	ProductPrice       float64 `json:"price"`
	ProductImageURL    *string `json:"image_url"`
}
