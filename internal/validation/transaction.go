package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/jmolenaar/Expense-Ledger-Backend/internal/api/request"
	"github.com/jmolenaar/Expense-Ledger-Backend/internal/model"
)

// ValidTransactionType contains the allowed transaction type values.
var ValidTransactionType = map[string]bool{
	model.TypeExpense: true, model.TypeIncome: true,
	model.TypeTransferOut: true, model.TypeTransferIn: true,
}

// ValidateCreateTransaction validates a transaction creation request.
//
// Required fields:
//   - date: Must be in YYYY-MM-DD format
//   - type: Must be one of: expense, income, transfer_out, transfer_in
//   - amount: Must be non-negative
//
// Account references are required on the side money flows through: expense
// and transfer_out need fromAccountId, income and transfer_in need
// toAccountId. Category and merchant are optional.
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateTransaction(req request.CreateTransactionRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Date) == "" {
		errors["date"] = "date is required"
	} else if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		errors["date"] = err.Error()
	}

	if strings.TrimSpace(req.Type) == "" {
		errors["type"] = "type is required"
	} else if !ValidTransactionType[req.Type] {
		errors["type"] = fmt.Sprintf("invalid type: %s", req.Type)
	}

	if req.Amount < 0 {
		errors["amount"] = "amount cannot be negative"
	}

	switch req.Type {
	case model.TypeExpense, model.TypeTransferOut:
		if req.FromAccountID == "" {
			errors["fromAccountId"] = "fromAccountId is required for this type"
		} else if err := ValidateUUID(req.FromAccountID); err != nil {
			errors["fromAccountId"] = err.Error()
		}
	case model.TypeIncome, model.TypeTransferIn:
		if req.ToAccountID == "" {
			errors["toAccountId"] = "toAccountId is required for this type"
		} else if err := ValidateUUID(req.ToAccountID); err != nil {
			errors["toAccountId"] = err.Error()
		}
	}

	if req.CategoryID != "" {
		if err := ValidateUUID(req.CategoryID); err != nil {
			errors["categoryId"] = err.Error()
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateTransaction validates a transaction update request.
// All fields are optional, but if provided, they must meet the same
// constraints as create.
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateUpdateTransaction(req request.UpdateTransactionRequest) error {
	errors := make(map[string]string)

	if req.Date != nil {
		if strings.TrimSpace(*req.Date) == "" {
			errors["date"] = "date is required"
		} else if _, err := time.Parse("2006-01-02", *req.Date); err != nil {
			errors["date"] = err.Error()
		}
	}
	if req.Type != nil {
		if strings.TrimSpace(*req.Type) == "" {
			errors["type"] = "type is required"
		} else if !ValidTransactionType[*req.Type] {
			errors["type"] = fmt.Sprintf("invalid type: %s", *req.Type)
		}
	}
	if req.Amount != nil && *req.Amount < 0 {
		errors["amount"] = "amount cannot be negative"
	}
	if req.CategoryID != nil && *req.CategoryID != "" {
		if err := ValidateUUID(*req.CategoryID); err != nil {
			errors["categoryId"] = err.Error()
		}
	}
	if req.FromAccountID != nil && *req.FromAccountID != "" {
		if err := ValidateUUID(*req.FromAccountID); err != nil {
			errors["fromAccountId"] = err.Error()
		}
	}
	if req.ToAccountID != nil && *req.ToAccountID != "" {
		if err := ValidateUUID(*req.ToAccountID); err != nil {
			errors["toAccountId"] = err.Error()
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
