package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tanwl/storefront-be/internal/auth"
	"github.com/tanwl/storefront-be/internal/http/respond"
	"github.com/tanwl/storefront-be/internal/middleware"
	"github.com/tanwl/storefront-be/internal/models/dto"
	"github.com/tanwl/storefront-be/internal/storage"
)

// UserHandler owns profile reads and updates plus the per-user order list.
// All routes are self-gated: the {id} parameter must match the caller.
type UserHandler struct {
	users  storage.UserStore
	orders storage.OrderStore
	logger *slog.Logger
}

func NewUserHandler(users storage.UserStore, orders storage.OrderStore, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, orders: orders, logger: logger}
}

// Register attaches profile routes. Callers must already be authenticated;
// the self gate runs here.
func (h *UserHandler) Register(r chi.Router) {
	r.Route("/{id}", func(r chi.Router) {
		r.Use(middleware.RequireSelf)
		r.Get("/", h.handleGetProfile)
		r.Put("/", h.handleUpdateProfile)
		r.Get("/orders", h.handleListOrders)
	})
}

func (h *UserHandler) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Error(w, http.StatusNotFound, "user not found")
		return
	}

	user, err := h.users.UserByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "user not found")
			return
		}
		h.logger.Error("get profile", "user_id", id, "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respond.JSON(w, http.StatusOK, user)
}

func (h *UserHandler) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Error(w, http.StatusNotFound, "user not found")
		return
	}

	var req dto.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if req.IsEmpty() {
		respond.Error(w, http.StatusBadRequest, "no updates provided")
		return
	}

	patch := storage.UserPatch{}
	if req.Username != nil {
		username := strings.TrimSpace(*req.Username)
		if username == "" {
			respond.Error(w, http.StatusBadRequest, "username must not be empty")
			return
		}
		patch.Username = &username
	}
	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if email == "" {
			respond.Error(w, http.StatusBadRequest, "email must not be empty")
			return
		}
		patch.Email = &email
	}
	if req.Password != nil {
		if *req.Password == "" {
			respond.Error(w, http.StatusBadRequest, "password must not be empty")
			return
		}
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			h.logger.Error("hash password", "error", err)
			respond.Error(w, http.StatusInternalServerError, "internal server error")
			return
		}
		patch.PasswordHash = &hash
	}

	updated, err := h.users.UpdateUser(r.Context(), id, patch)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			respond.Error(w, http.StatusNotFound, "user not found")
		case errors.Is(err, storage.ErrDuplicateUsername):
			respond.Error(w, http.StatusBadRequest, "Username already exists. Please choose a different username.")
		case errors.Is(err, storage.ErrDuplicateEmail):
			respond.Error(w, http.StatusBadRequest, "Email is already in use. Please use a different email address.")
		default:
			h.logger.Error("update profile", "user_id", id, "error", err)
			respond.Error(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}
	respond.JSON(w, http.StatusOK, updated)
}

func (h *UserHandler) handleListOrders(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Error(w, http.StatusNotFound, "user not found")
		return
	}

	orders, err := h.orders.OrdersForUser(r.Context(), id)
	if err != nil {
		h.logger.Error("list user orders", "user_id", id, "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{"orders": orders})
}
