package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tanwl/storefront-be/internal/http/respond"
	"github.com/tanwl/storefront-be/internal/middleware"
	"github.com/tanwl/storefront-be/internal/models/dto"
	"github.com/tanwl/storefront-be/internal/storage"
)

// OrderHandler owns checkout and order listing. Checkout recomputes the
// total from the persisted cart; a client-supplied total is only a
// cross-check.
type OrderHandler struct {
	orders storage.OrderStore
	logger *slog.Logger
}

func NewOrderHandler(orders storage.OrderStore, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, logger: logger}
}

// Register attaches order routes. Callers must already be authenticated;
// /all additionally requires the admin role.
func (h *OrderHandler) Register(r chi.Router) {
	r.Post("/", h.handleCheckout)
	r.Get("/", h.handleListMine)
	r.With(middleware.RequireAdmin).Get("/all", h.handleListAll)
}

func (h *OrderHandler) handleCheckout(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authorization token required")
		return
	}

	var req dto.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if req.TotalAmount != nil && *req.TotalAmount <= 0 {
		respond.Error(w, http.StatusBadRequest, "total_amount must be a positive number")
		return
	}

	order, err := h.orders.Checkout(r.Context(), caller.ID, req.TotalAmount, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrEmptyCart):
			respond.Error(w, http.StatusBadRequest, "cart is empty")
		case errors.Is(err, storage.ErrTotalMismatch):
			respond.Error(w, http.StatusBadRequest, "total amount does not match cart contents")
		default:
			h.logger.Error("checkout", "user_id", caller.ID, "error", err)
			respond.Error(w, http.StatusInternalServerError, "failed to create order")
		}
		return
	}

	respond.JSON(w, http.StatusCreated, dto.CheckoutResponse{
		Message: "Order created successfully.",
		OrderID: order.ID,
	})
}

func (h *OrderHandler) handleListMine(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authorization token required")
		return
	}

	orders, err := h.orders.OrdersForUser(r.Context(), caller.ID)
	if err != nil {
		h.logger.Error("list orders", "user_id", caller.ID, "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{"orders": orders})
}

func (h *OrderHandler) handleListAll(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.AllOrders(r.Context())
	if err != nil {
		h.logger.Error("list all orders", "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{"orders": orders})
}
