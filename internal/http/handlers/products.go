package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tanwl/storefront-be/internal/http/respond"
	"github.com/tanwl/storefront-be/internal/models"
	"github.com/tanwl/storefront-be/internal/models/dto"
	"github.com/tanwl/storefront-be/internal/storage"
)

// ProductHandler owns the catalog: public reads, admin-only writes.
type ProductHandler struct {
	products storage.ProductStore
	logger   *slog.Logger
}

func NewProductHandler(products storage.ProductStore, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{products: products, logger: logger}
}

// RegisterPublic attaches the unauthenticated read routes.
func (h *ProductHandler) RegisterPublic(r chi.Router) {
	r.Get("/", h.handleList)
	r.Get("/{id}", h.handleGet)
}

// RegisterAdmin attaches the write routes; the caller wires the admin gate.
func (h *ProductHandler) RegisterAdmin(r chi.Router) {
	r.Post("/", h.handleCreate)
	r.Put("/{id}", h.handleUpdate)
	r.Delete("/{id}", h.handleDelete)
}

func (h *ProductHandler) handleList(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.ListProducts(r.Context())
	if err != nil {
		h.logger.Error("list products", "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{"products": products})
}

func (h *ProductHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Error(w, http.StatusNotFound, "item not found")
		return
	}

	product, err := h.products.ProductByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "item not found")
			return
		}
		h.logger.Error("get product", "product_id", id, "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{"item": product})
}

func (h *ProductHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Description) == "" {
		respond.Error(w, http.StatusBadRequest, "name, description, and price are required")
		return
	}
	if req.Price <= 0 {
		respond.Error(w, http.StatusBadRequest, "price must be a positive number")
		return
	}

	created, err := h.products.CreateProduct(r.Context(), models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		h.logger.Error("create product", "error", err)
		respond.Error(w, http.StatusInternalServerError, "failed to create product")
		return
	}
	respond.JSON(w, http.StatusCreated, created)
}

func (h *ProductHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Error(w, http.StatusNotFound, "item not found")
		return
	}

	var req dto.UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if req.IsEmpty() {
		respond.Error(w, http.StatusBadRequest, "no fields to update")
		return
	}
	if req.Price != nil && *req.Price <= 0 {
		respond.Error(w, http.StatusBadRequest, "price must be a positive number")
		return
	}

	updated, err := h.products.UpdateProduct(r.Context(), id, storage.ProductPatch{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "item not found")
			return
		}
		h.logger.Error("update product", "product_id", id, "error", err)
		respond.Error(w, http.StatusInternalServerError, "failed to update product")
		return
	}
	respond.JSON(w, http.StatusOK, updated)
}

func (h *ProductHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Error(w, http.StatusNotFound, "item not found")
		return
	}

	if err := h.products.DeleteProduct(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "item not found")
			return
		}
		h.logger.Error("delete product", "product_id", id, "error", err)
		respond.Error(w, http.StatusInternalServerError, "failed to delete product")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
