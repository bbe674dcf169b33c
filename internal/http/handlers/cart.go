package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tanwl/storefront-be/internal/http/respond"
	"github.com/tanwl/storefront-be/internal/middleware"
	"github.com/tanwl/storefront-be/internal/models/dto"
	"github.com/tanwl/storefront-be/internal/storage"
)

// CartHandler owns the caller's cart. Every route operates on the verified
// caller's own lines; the user id never comes from the URL.
type CartHandler struct {
	cart   storage.CartStore
	logger *slog.Logger
}

func NewCartHandler(cart storage.CartStore, logger *slog.Logger) *CartHandler {
	return &CartHandler{cart: cart, logger: logger}
}

// Register attaches cart routes. Callers must already be authenticated.
func (h *CartHandler) Register(r chi.Router) {
	r.Get("/", h.handleGet)
	r.Post("/", h.handleAdd)
	r.Put("/{productID}", h.handleUpdate)
	r.Delete("/{productID}", h.handleRemove)
}

func (h *CartHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authorization token required")
		return
	}

	items, err := h.cart.CartItems(r.Context(), caller.ID)
	if err != nil {
		h.logger.Error("get cart", "user_id", caller.ID, "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{"cart": items})
}

func (h *CartHandler) handleAdd(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authorization token required")
		return
	}

	var req dto.AddCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if req.ProductID <= 0 || req.Quantity < 1 {
		respond.Error(w, http.StatusBadRequest, "product_id and a positive quantity are required")
		return
	}

	line, err := h.cart.AddCartItem(r.Context(), caller.ID, req.ProductID, req.Quantity)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("add cart item", "user_id", caller.ID, "product_id", req.ProductID, "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respond.JSON(w, http.StatusCreated, line)
}

func (h *CartHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authorization token required")
		return
	}
	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		respond.Error(w, http.StatusNotFound, "cart item not found")
		return
	}

	var req dto.UpdateCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if req.Quantity < 1 {
		respond.Error(w, http.StatusBadRequest, "invalid quantity")
		return
	}

	line, err := h.cart.SetCartQuantity(r.Context(), caller.ID, productID, req.Quantity)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "cart item not found")
			return
		}
		h.logger.Error("update cart item", "user_id", caller.ID, "product_id", productID, "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respond.JSON(w, http.StatusOK, line)
}

func (h *CartHandler) handleRemove(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authorization token required")
		return
	}
	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		respond.Error(w, http.StatusNotFound, "cart item not found")
		return
	}

	// Idempotent: removing an absent line is still a 204.
	if _, err := h.cart.RemoveCartItem(r.Context(), caller.ID, productID); err != nil {
		h.logger.Error("remove cart item", "user_id", caller.ID, "product_id", productID, "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
