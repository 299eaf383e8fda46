package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jmolenaar/Expense-Ledger-Backend/internal/api/request"
	"github.com/jmolenaar/Expense-Ledger-Backend/internal/api/response"
	"github.com/jmolenaar/Expense-Ledger-Backend/internal/apperrors"
	"github.com/jmolenaar/Expense-Ledger-Backend/internal/model"
	"github.com/jmolenaar/Expense-Ledger-Backend/internal/service"
	"github.com/jmolenaar/Expense-Ledger-Backend/internal/validation"
)

// TransactionHandler handles HTTP requests for transaction endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the transactionService.
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler with the provided service dependency.
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

// AllTransactions handles GET requests to retrieve all transactions.
// Split children are attached to their parents.
//
// Endpoint: GET /api/transaction
// Response: 200 OK with array of Transaction
// Error: 500 Internal Server Error if retrieval fails
func (h *TransactionHandler) AllTransactions(w http.ResponseWriter, _ *http.Request) {
	transactions, err := h.transactionService.GetAllTransactions()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve transactions", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transactions)
}

// GetTransaction handles GET requests to retrieve a single transaction by ID.
//
// Endpoint: GET /api/transaction/{uuid}
// Response: 200 OK with Transaction
// Error: 400 Bad Request if transaction ID is invalid (validated by middleware)
// Error: 404 Not Found if transaction not found
// Error: 500 Internal Server Error if retrieval fails
func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "uuid")

	transaction, err := h.transactionService.GetTransaction(transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrTransactionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTransactionNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve transaction", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transaction)
}

// CreateTransaction handles POST requests to create a new transaction.
// Validates the request body and creates a transaction record in the database.
//
// Endpoint: POST /api/transaction
// Request Body: CreateTransactionRequest (date, type, amount, categoryId, description, merchant, accounts)
// Response: 201 Created with Transaction
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if creation fails
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateTransactionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateTransaction(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	transaction, err := h.transactionService.CreateTransaction(r.Context(), model.Transaction{
		Date:          date,
		Type:          req.Type,
		Amount:        req.Amount,
		CategoryID:    req.CategoryID,
		Description:   req.Description,
		Merchant:      req.Merchant,
		FromAccountID: req.FromAccountID,
		ToAccountID:   req.ToAccountID,
	})
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create transaction", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, transaction)
}

// UpdateTransaction handles PUT requests to update an existing transaction.
// Only fields present in the body are changed.
//
// Endpoint: PUT /api/transaction/{uuid}
// Request Body: UpdateTransactionRequest (all fields optional)
// Response: 200 OK with updated Transaction
// Error: 400 Bad Request if transaction ID is invalid (validated by middleware) or validation fails
// Error: 404 Not Found if transaction not found
// Error: 500 Internal Server Error if update fails
func (h *TransactionHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateTransactionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateTransaction(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	existing, err := h.transactionService.GetTransaction(transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrTransactionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTransactionNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve transaction", err.Error())
		return
	}

	applyTransactionUpdate(&existing, req)

	transaction, err := h.transactionService.UpdateTransaction(r.Context(), existing)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to update transaction", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transaction)
}

// DeleteTransaction handles DELETE requests to remove a transaction.
// Deleting a split parent removes its children with it.
//
// Endpoint: DELETE /api/transaction/{uuid}
// Response: 204 No Content on successful deletion
// Error: 400 Bad Request if transaction ID is invalid (validated by middleware)
// Error: 404 Not Found if transaction not found
// Error: 500 Internal Server Error if deletion fails
func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "uuid")

	err := h.transactionService.DeleteTransaction(r.Context(), transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrTransactionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTransactionNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete transaction", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// BulkResponse reports how much of a bulk operation was applied. Bulk
// operations are not transactional; a partial failure reports the completed
// count alongside the error.
type BulkResponse struct {
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
	Error     string `json:"error,omitempty"`
}

// BulkDelete handles POST requests to delete several transactions at once.
//
// Endpoint: POST /api/transaction/bulk-delete
// Request Body: BulkDeleteRequest (transactionIds)
// Response: 200 OK with BulkResponse on full success
// Response: 207 Multi-Status with BulkResponse when only part of the batch succeeded
// Error: 400 Bad Request if the body is invalid or IDs are malformed
func (h *TransactionHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.BulkDeleteRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUUIDs(req.TransactionIDs); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	completed, err := h.transactionService.BulkDelete(r.Context(), req.TransactionIDs)
	if err != nil {
		respondBulkFailure(w, completed, len(req.TransactionIDs), err)
		return
	}

	response.RespondJSON(w, http.StatusOK, BulkResponse{Completed: completed, Total: len(req.TransactionIDs)})
}

// BulkCategorize handles POST requests to set the category on several
// transactions at once.
//
// Endpoint: POST /api/transaction/bulk-categorize
// Request Body: BulkCategorizeRequest (transactionIds, categoryId)
// Response: 200 OK with BulkResponse on full success
// Response: 207 Multi-Status with BulkResponse when only part of the batch succeeded
// Error: 400 Bad Request if the body is invalid or IDs are malformed
func (h *TransactionHandler) BulkCategorize(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.BulkCategorizeRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUUIDs(req.TransactionIDs); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}
	if err := validation.ValidateUUID(req.CategoryID); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	completed, err := h.transactionService.BulkCategorize(r.Context(), req.TransactionIDs, req.CategoryID)
	if err != nil {
		respondBulkFailure(w, completed, len(req.TransactionIDs), err)
		return
	}

	response.RespondJSON(w, http.StatusOK, BulkResponse{Completed: completed, Total: len(req.TransactionIDs)})
}

func respondBulkFailure(w http.ResponseWriter, completed, total int, err error) {
	var partial *apperrors.PartialBatchError
	if errors.As(err, &partial) {
		response.RespondJSON(w, http.StatusMultiStatus, BulkResponse{
			Completed: partial.Completed,
			Total:     partial.Total,
			Error:     partial.Err.Error(),
		})
		return
	}

	response.RespondJSON(w, http.StatusInternalServerError, BulkResponse{
		Completed: completed,
		Total:     total,
		Error:     err.Error(),
	})
}

func applyTransactionUpdate(t *model.Transaction, req request.UpdateTransactionRequest) {
	if req.Date != nil {
		t.Date, _ = time.Parse("2006-01-02", *req.Date)
	}
	if req.Type != nil {
		t.Type = *req.Type
	}
	if req.Amount != nil {
		t.Amount = *req.Amount
	}
	if req.CategoryID != nil {
		t.CategoryID = *req.CategoryID
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.Merchant != nil {
		t.Merchant = *req.Merchant
	}
	if req.FromAccountID != nil {
		t.FromAccountID = *req.FromAccountID
	}
	if req.ToAccountID != nil {
		t.ToAccountID = *req.ToAccountID
	}
}
