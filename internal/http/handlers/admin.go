package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tanwl/storefront-be/internal/http/respond"
	"github.com/tanwl/storefront-be/internal/storage"
)

// AdminHandler owns the admin dashboard reads: every user, every order.
type AdminHandler struct {
	users  storage.UserStore
	orders storage.OrderStore
	logger *slog.Logger
}

func NewAdminHandler(users storage.UserStore, orders storage.OrderStore, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{users: users, orders: orders, logger: logger}
}

// Register attaches admin routes; the caller wires auth and the role gate.
func (h *AdminHandler) Register(r chi.Router) {
	r.Get("/users", h.handleListUsers)
	r.Get("/orders", h.handleListOrders)
}

func (h *AdminHandler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers(r.Context())
	if err != nil {
		h.logger.Error("list users", "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{"users": users})
}

func (h *AdminHandler) handleListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.AllOrders(r.Context())
	if err != nil {
		h.logger.Error("list all orders", "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{"orders": orders})
}
