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

// SplitHandler handles HTTP requests for the split lifecycle of a
// transaction: creating, updating, dissolving, and deleting splits.
type SplitHandler struct {
	splitService *service.SplitService
}

// NewSplitHandler creates a new SplitHandler with the provided service dependency.
func NewSplitHandler(splitService *service.SplitService) *SplitHandler {
	return &SplitHandler{
		splitService: splitService,
	}
}

// CreateSplit handles POST requests to divide a transaction into
// categorized splits. The split amounts must sum to the original amount
// within the balance tolerance.
//
// Endpoint: POST /api/transaction/{uuid}/split
// Request Body: CreateSplitRequest (splits, retainParent)
// Response: 201 Created with the resulting parent (or standalone splits)
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if the transaction does not exist
// Error: 422 Unprocessable Entity if the split amounts do not balance
// Error: 500 Internal Server Error if persisting fails (nothing is applied)
func (h *SplitHandler) CreateSplit(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.CreateSplitRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateSplit(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	result, err := h.splitService.CreateSplit(r.Context(), transactionID, toSplitItems(req.Splits), req.RetainParent)
	if err != nil {
		respondSplitError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusCreated, result)
}

// UpdateSplit handles PUT requests to replace the splits of a split parent.
//
// Endpoint: PUT /api/transaction/{uuid}/split
// Request Body: CreateSplitRequest (splits, retainParent)
// Response: 200 OK with the resulting parent (or standalone splits)
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if the transaction does not exist
// Error: 422 Unprocessable Entity if the split amounts do not balance or the
// transaction is not a split parent
func (h *SplitHandler) UpdateSplit(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.CreateSplitRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateSplit(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	result, err := h.splitService.UpdateSplit(r.Context(), transactionID, toSplitItems(req.Splits), req.RetainParent)
	if err != nil {
		respondSplitError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}

// ConvertToRegular handles POST requests to collapse a split parent back
// into a plain transaction carrying the sum of its children.
//
// Endpoint: POST /api/transaction/{uuid}/convert
// Request Body: ConvertToRegularRequest (categoryId, description)
// Response: 200 OK with the rewritten plain transaction
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if the transaction does not exist
// Error: 422 Unprocessable Entity if the transaction is not a split parent
func (h *SplitHandler) ConvertToRegular(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.ConvertToRegularRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateConvertToRegular(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	result, err := h.splitService.ConvertToRegular(r.Context(), transactionID, req.CategoryID, req.Description)
	if err != nil {
		respondSplitError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}

// DeleteSplit handles DELETE requests to remove a split parent. With
// ?cascade=true the children go with it; otherwise they are promoted to
// standalone transactions.
//
// Endpoint: DELETE /api/transaction/{uuid}/split?cascade=true|false
// Response: 204 No Content on success
// Error: 404 Not Found if the transaction does not exist
// Error: 422 Unprocessable Entity if the transaction is not a split parent
func (h *SplitHandler) DeleteSplit(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "uuid")
	cascade := r.URL.Query().Get("cascade") == "true"

	if err := h.splitService.DeleteSplit(r.Context(), transactionID, cascade); err != nil {
		respondSplitError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// respondSplitError maps split service errors to HTTP statuses. Validation
// failures never touched the store; store failures were rolled back.
func respondSplitError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperrors.ErrTransactionNotFound):
		response.RespondError(w, http.StatusNotFound, apperrors.ErrTransactionNotFound.Error(), err.Error())
	case errors.Is(err, apperrors.ErrUnbalancedSplit),
		errors.Is(err, apperrors.ErrNotSplitParent):
		response.RespondError(w, http.StatusUnprocessableEntity, "split rejected", err.Error())
	case errors.Is(err, apperrors.ErrEmptySplit),
		errors.Is(err, apperrors.ErrNonPositiveSplitAmount),
		errors.Is(err, apperrors.ErrSplitItemMissingCategory),
		errors.Is(err, apperrors.ErrCategoryNotFound):
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
	default:
		response.RespondError(w, http.StatusInternalServerError, "split operation failed", err.Error())
	}
}

func toSplitItems(items []request.SplitItemRequest) []model.SplitItem {
	splits := make([]model.SplitItem, 0, len(items))
	for _, item := range items {
		splits = append(splits, model.SplitItem{
			Amount:      item.Amount,
			CategoryID:  item.CategoryID,
			Description: item.Description,
			Merchant:    item.Merchant,
		})
	}
	return splits
}
