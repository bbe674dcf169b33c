package dto

type AddCartItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int32 `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity int32 `json:"quantity"`
}

// CheckoutRequest creates an order from the caller's current cart. The total
// is recomputed server-side; when the client supplies one it is cross-checked
// against the recomputed value.
type CheckoutRequest struct {
	TotalAmount *float64 `json:"total_amount"`
	Status      string   `json:"status"`
}

type CheckoutResponse struct {
	Message string `json:"message"`
	OrderID int64  `json:"order_id"`
}
