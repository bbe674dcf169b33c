package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tanwl/storefront-be/internal/http/respond"
	"github.com/tanwl/storefront-be/internal/models/dto"
	"github.com/tanwl/storefront-be/internal/storage"
)

// CategoryHandler owns category browsing (public) and creation (admin).
type CategoryHandler struct {
	categories storage.CategoryStore
	logger     *slog.Logger
}

func NewCategoryHandler(categories storage.CategoryStore, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{categories: categories, logger: logger}
}

func (h *CategoryHandler) RegisterPublic(r chi.Router) {
	r.Get("/", h.handleList)
}

func (h *CategoryHandler) RegisterAdmin(r chi.Router) {
	r.Post("/", h.handleCreate)
}

func (h *CategoryHandler) handleList(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.ListCategories(r.Context())
	if err != nil {
		h.logger.Error("list categories", "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{"categories": categories})
}

func (h *CategoryHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		respond.Error(w, http.StatusBadRequest, "name is required")
		return
	}

	created, err := h.categories.CreateCategory(r.Context(), name)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateCategory) {
			respond.Error(w, http.StatusBadRequest, "Category already exists.")
			return
		}
		h.logger.Error("create category", "error", err)
		respond.Error(w, http.StatusInternalServerError, "failed to create category")
		return
	}
	respond.JSON(w, http.StatusCreated, created)
}
