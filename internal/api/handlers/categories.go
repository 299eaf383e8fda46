package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jmolenaar/Expense-Ledger-Backend/internal/api/request"
	"github.com/jmolenaar/Expense-Ledger-Backend/internal/api/response"
	"github.com/jmolenaar/Expense-Ledger-Backend/internal/apperrors"
	"github.com/jmolenaar/Expense-Ledger-Backend/internal/model"
	"github.com/jmolenaar/Expense-Ledger-Backend/internal/service"
	"github.com/jmolenaar/Expense-Ledger-Backend/internal/validation"
)

// CategoryHandler handles HTTP requests for category endpoints.
type CategoryHandler struct {
	categoryService *service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler with the provided service dependency.
func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
	}
}

// AllCategories handles GET requests to retrieve all categories.
//
// Endpoint: GET /api/category
// Response: 200 OK with array of Category
// Error: 500 Internal Server Error if retrieval fails
func (h *CategoryHandler) AllCategories(w http.ResponseWriter, _ *http.Request) {
	categories, err := h.categoryService.GetAllCategories()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve categories", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, categories)
}

// GetCategory handles GET requests to retrieve a single category by ID.
//
// Endpoint: GET /api/category/{uuid}
// Response: 200 OK with Category
// Error: 404 Not Found if category not found
func (h *CategoryHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "uuid")

	category, err := h.categoryService.GetCategory(categoryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrCategoryNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrCategoryNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve category", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, category)
}

// CreateCategory handles POST requests to create a new category.
//
// Endpoint: POST /api/category
// Request Body: CreateCategoryRequest (name, icon, colorHex)
// Response: 201 Created with Category
// Error: 400 Bad Request if validation fails
// Error: 500 Internal Server Error if creation fails
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateCategoryRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateCategory(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	category, err := h.categoryService.CreateCategory(r.Context(), model.Category{
		Name:     req.Name,
		Icon:     req.Icon,
		ColorHex: req.ColorHex,
	})
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create category", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, category)
}

// UpdateCategory handles PUT requests to update an existing category.
//
// Endpoint: PUT /api/category/{uuid}
// Request Body: UpdateCategoryRequest (all fields optional)
// Response: 200 OK with updated Category
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if category not found
func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateCategoryRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateCategory(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	existing, err := h.categoryService.GetCategory(categoryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrCategoryNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrCategoryNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve category", err.Error())
		return
	}

	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.Icon != nil {
		existing.Icon = *req.Icon
	}
	if req.ColorHex != nil {
		existing.ColorHex = *req.ColorHex
	}

	category, err := h.categoryService.UpdateCategory(r.Context(), existing)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to update category", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, category)
}

// DeleteCategory handles DELETE requests to remove a category. Transactions
// that referenced it become uncategorized.
//
// Endpoint: DELETE /api/category/{uuid}
// Response: 204 No Content on successful deletion
// Error: 404 Not Found if category not found
func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "uuid")

	if err := h.categoryService.DeleteCategory(r.Context(), categoryID); err != nil {
		if errors.Is(err, apperrors.ErrCategoryNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrCategoryNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete category", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
