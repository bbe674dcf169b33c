package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tanwl/storefront-be/internal/auth"
	"github.com/tanwl/storefront-be/internal/http/respond"
	"github.com/tanwl/storefront-be/internal/middleware"
	"github.com/tanwl/storefront-be/internal/models"
	"github.com/tanwl/storefront-be/internal/models/dto"
	"github.com/tanwl/storefront-be/internal/storage"
)

// AuthHandler owns signup/login/me.
type AuthHandler struct {
	users  storage.UserStore
	tokens *auth.TokenManager
	logger *slog.Logger
}

func NewAuthHandler(users storage.UserStore, tokens *auth.TokenManager, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens, logger: logger}
}

// Register attaches auth routes. The /me route carries its own auth gate;
// signup and login are public.
func (h *AuthHandler) Register(r chi.Router) {
	r.Post("/signup", h.handleSignup)
	r.Post("/login", h.handleLogin)
	r.With(middleware.RequireAuth(h.tokens, h.users, h.logger)).Get("/me", h.handleMe)
}

func (h *AuthHandler) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req dto.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)
	if username == "" || email == "" || req.Password == "" {
		respond.Error(w, http.StatusBadRequest, "username, password, and email are required")
		return
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.logger.Error("hash password", "error", err)
		respond.Error(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	// Role is never taken from the request body.
	created, err := h.users.CreateUser(r.Context(), models.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         models.RoleUser,
	})
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrDuplicateUsername):
			respond.Error(w, http.StatusBadRequest, "Username already exists. Please choose a different username.")
		case errors.Is(err, storage.ErrDuplicateEmail):
			respond.Error(w, http.StatusBadRequest, "Email is already in use. Please use a different email address.")
		default:
			h.logger.Error("create user", "error", err)
			respond.Error(w, http.StatusInternalServerError, "failed to create user")
		}
		return
	}

	respond.JSON(w, http.StatusCreated, dto.SignupResponse{
		Message: "User created successfully!",
		User:    created,
	})
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if req.Username == "" || req.Password == "" {
		respond.Error(w, http.StatusBadRequest, "username and password are required")
		return
	}

	// An unknown username and a wrong password must be indistinguishable.
	user, err := h.users.UserByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		h.logger.Error("lookup user", "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		respond.Error(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := h.tokens.Generate(user)
	if err != nil {
		h.logger.Error("generate token", "user_id", user.ID, "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respond.JSON(w, http.StatusOK, dto.LoginResponse{Token: token, User: user})
}

func (h *AuthHandler) handleMe(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authorization token required")
		return
	}
	respond.JSON(w, http.StatusOK, caller)
}
