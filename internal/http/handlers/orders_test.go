package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanwl/storefront-be/internal/models"
	"github.com/tanwl/storefront-be/internal/models/dto"
)

type ordersEnvelope struct {
	Orders []models.Order `json:"orders"`
}

// Checkout with (productA qty 2 @ 10.00) and (productB qty 1 @ 5.00): the
// order total is 25.00, the cart is cleared, and the new order lists first.
func TestCheckoutSnapshotsCartTotal(t *testing.T) {
	fs := newFakeStore()
	tokens := testTokens()
	router := newTestRouter(fs, tokens)
	user := seedUser(t, fs, "alice", "pass1234!", models.RoleUser)
	productA := seedProduct(t, fs, "product A", 10.00)
	productB := seedProduct(t, fs, "product B", 5.00)
	token := tokenFor(t, tokens, user)

	_, err := fs.AddCartItem(context.Background(), user.ID, productA.ID, 2)
	require.NoError(t, err)
	_, err = fs.AddCartItem(context.Background(), user.ID, productB.ID, 1)
	require.NoError(t, err)

	rec := doJSON(t, router, http.MethodPost, "/api/orders", token, map[string]any{
		"total_amount": 25.00,
		"status":       "pending",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeBody[dto.CheckoutResponse](t, rec)
	require.NotZero(t, resp.OrderID)

	rec = doJSON(t, router, http.MethodGet, "/api/orders", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	listed := decodeBody[ordersEnvelope](t, rec)
	require.NotEmpty(t, listed.Orders)
	assert.Equal(t, resp.OrderID, listed.Orders[0].ID)
	assert.Equal(t, 25.00, listed.Orders[0].TotalAmount)
	assert.Equal(t, "pending", listed.Orders[0].Status)

	items, err := fs.CartItems(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, items, "checkout must clear the cart")
}

func TestCheckoutEmptyCart(t *testing.T) {
	fs := newFakeStore()
	tokens := testTokens()
	router := newTestRouter(fs, tokens)
	user := seedUser(t, fs, "alice", "pass1234!", models.RoleUser)

	rec := doJSON(t, router, http.MethodPost, "/api/orders", tokenFor(t, tokens, user), map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "cart is empty")
}

func TestCheckoutRejectsMismatchedTotal(t *testing.T) {
	fs := newFakeStore()
	tokens := testTokens()
	router := newTestRouter(fs, tokens)
	user := seedUser(t, fs, "alice", "pass1234!", models.RoleUser)
	product := seedProduct(t, fs, "product A", 10.00)

	_, err := fs.AddCartItem(context.Background(), user.ID, product.ID, 2)
	require.NoError(t, err)

	rec := doJSON(t, router, http.MethodPost, "/api/orders", tokenFor(t, tokens, user), map[string]any{
		"total_amount": 3.50,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "does not match")
}

// Omitting the client total is allowed: the server total is authoritative.
func TestCheckoutWithoutClientTotal(t *testing.T) {
	fs := newFakeStore()
	tokens := testTokens()
	router := newTestRouter(fs, tokens)
	user := seedUser(t, fs, "alice", "pass1234!", models.RoleUser)
	product := seedProduct(t, fs, "product A", 12.50)
	token := tokenFor(t, tokens, user)

	_, err := fs.AddCartItem(context.Background(), user.ID, product.ID, 2)
	require.NoError(t, err)

	rec := doJSON(t, router, http.MethodPost, "/api/orders", token, map[string]any{})
	require.Equal(t, http.StatusCreated, rec.Code)

	orders, err := fs.OrdersForUser(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, 25.00, orders[0].TotalAmount)
	assert.Equal(t, models.OrderStatusPending, orders[0].Status)
}

func TestOrdersNewestFirst(t *testing.T) {
	fs := newFakeStore()
	tokens := testTokens()
	router := newTestRouter(fs, tokens)
	user := seedUser(t, fs, "alice", "pass1234!", models.RoleUser)
	product := seedProduct(t, fs, "product A", 10.00)
	token := tokenFor(t, tokens, user)

	var lastID int64
	for i := 0; i < 3; i++ {
		_, err := fs.AddCartItem(context.Background(), user.ID, product.ID, 1)
		require.NoError(t, err)
		order, err := fs.Checkout(context.Background(), user.ID, nil, "")
		require.NoError(t, err)
		lastID = order.ID
	}

	rec := doJSON(t, router, http.MethodGet, "/api/orders", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	listed := decodeBody[ordersEnvelope](t, rec)
	require.Len(t, listed.Orders, 3)
	assert.Equal(t, lastID, listed.Orders[0].ID, "most recent order must come first")
}

func TestListAllOrdersIsAdminOnly(t *testing.T) {
	fs := newFakeStore()
	tokens := testTokens()
	router := newTestRouter(fs, tokens)
	user := seedUser(t, fs, "alice", "pass1234!", models.RoleUser)
	admin := seedUser(t, fs, "root", "admin1234!", models.RoleAdmin)
	product := seedProduct(t, fs, "product A", 10.00)

	_, err := fs.AddCartItem(context.Background(), user.ID, product.ID, 1)
	require.NoError(t, err)
	_, err = fs.Checkout(context.Background(), user.ID, nil, "")
	require.NoError(t, err)

	rec := doJSON(t, router, http.MethodGet, "/api/orders/all", tokenFor(t, tokens, user), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/orders/all", tokenFor(t, tokens, admin), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	listed := decodeBody[ordersEnvelope](t, rec)
	assert.Len(t, listed.Orders, 1)
}
