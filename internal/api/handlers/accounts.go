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

// AccountHandler handles HTTP requests for account endpoints.
type AccountHandler struct {
	accountService *service.AccountService
}

// NewAccountHandler creates a new AccountHandler with the provided service dependency.
func NewAccountHandler(accountService *service.AccountService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
	}
}

// AllAccounts handles GET requests to retrieve all accounts with derived balances.
//
// Endpoint: GET /api/account
// Response: 200 OK with array of Account
// Error: 500 Internal Server Error if retrieval fails
func (h *AccountHandler) AllAccounts(w http.ResponseWriter, _ *http.Request) {
	accounts, err := h.accountService.GetAllAccounts()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve accounts", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, accounts)
}

// GetAccount handles GET requests to retrieve a single account by ID.
//
// Endpoint: GET /api/account/{uuid}
// Response: 200 OK with Account
// Error: 404 Not Found if account not found
// Error: 500 Internal Server Error if retrieval fails
func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "uuid")

	account, err := h.accountService.GetAccount(accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrAccountNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAccountNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve account", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, account)
}

// CreateAccount handles POST requests to create a new account.
//
// Endpoint: POST /api/account
// Request Body: CreateAccountRequest (name, tag, initialBalance, isDefault, accountType, currency)
// Response: 201 Created with Account
// Error: 400 Bad Request if validation fails
// Error: 409 Conflict if the tag is already in use
// Error: 500 Internal Server Error if creation fails
func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateAccountRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateAccount(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	account, err := h.accountService.CreateAccount(r.Context(), model.Account{
		Name:           req.Name,
		Tag:            req.Tag,
		InitialBalance: req.InitialBalance,
		IsDefault:      req.IsDefault,
		AccountType:    req.AccountType,
		Currency:       req.Currency,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicateTag) {
			response.RespondError(w, http.StatusConflict, apperrors.ErrDuplicateTag.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to create account", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, account)
}

// UpdateAccount handles PUT requests to update an existing account.
//
// Endpoint: PUT /api/account/{uuid}
// Request Body: UpdateAccountRequest (all fields optional)
// Response: 200 OK with updated Account
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if account not found
// Error: 409 Conflict if the tag is already in use
// Error: 500 Internal Server Error if update fails
func (h *AccountHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateAccountRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateAccount(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	existing, err := h.accountService.GetAccount(accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrAccountNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAccountNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve account", err.Error())
		return
	}

	applyAccountUpdate(&existing, req)

	account, err := h.accountService.UpdateAccount(r.Context(), existing)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicateTag) {
			response.RespondError(w, http.StatusConflict, apperrors.ErrDuplicateTag.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to update account", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, account)
}

// SetDefault handles POST requests to mark an account as the default.
// At most one account carries the default flag.
//
// Endpoint: POST /api/account/{uuid}/default
// Response: 200 OK with updated Account
// Error: 404 Not Found if account not found
// Error: 500 Internal Server Error if the update fails
func (h *AccountHandler) SetDefault(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "uuid")

	account, err := h.accountService.SetDefaultAccount(r.Context(), accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrAccountNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAccountNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to set default account", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, account)
}

// DeleteAccount handles DELETE requests to remove an account. Deletion is
// rejected when the account is the last one remaining or when any
// transaction (including split children) references it.
//
// Endpoint: DELETE /api/account/{uuid}
// Response: 204 No Content on successful deletion
// Error: 404 Not Found if account not found
// Error: 409 Conflict if the account is in use or the last one remaining
// Error: 500 Internal Server Error if deletion fails
func (h *AccountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "uuid")

	err := h.accountService.DeleteAccount(r.Context(), accountID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrAccountNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAccountNotFound.Error(), err.Error())
		case errors.Is(err, apperrors.ErrAccountInUse),
			errors.Is(err, apperrors.ErrCannotDeleteLastAccount):
			response.RespondError(w, http.StatusConflict, "account cannot be deleted", err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, "failed to delete account", err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

func applyAccountUpdate(a *model.Account, req request.UpdateAccountRequest) {
	if req.Name != nil {
		a.Name = *req.Name
	}
	if req.Tag != nil {
		a.Tag = *req.Tag
	}
	if req.InitialBalance != nil {
		a.InitialBalance = *req.InitialBalance
	}
	if req.IsDefault != nil {
		a.IsDefault = *req.IsDefault
	}
	if req.AccountType != nil {
		a.AccountType = *req.AccountType
	}
	if req.Currency != nil {
		a.Currency = *req.Currency
	}
}
