package validation

import (
	"fmt"
	"strings"

	"github.com/jmolenaar/Expense-Ledger-Backend/internal/api/request"
	"github.com/jmolenaar/Expense-Ledger-Backend/internal/model"
)

// ValidAccountType contains the allowed account type values.
var ValidAccountType = map[string]bool{
	model.AccountTypeChecking: true, model.AccountTypeSavings: true,
	model.AccountTypeCredit: true, model.AccountTypeCash: true,
}

// ValidateCreateAccount validates an account creation request.
//
// Required fields:
//   - name: non-empty
//   - tag: non-empty, at most 30 characters
//   - accountType: one of checking, savings, credit, cash
//   - currency: 3-letter code
func ValidateCreateAccount(req request.CreateAccountRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	}

	tag := strings.TrimSpace(req.Tag)
	if tag == "" {
		errors["tag"] = "tag is required"
	} else if len(tag) > 30 {
		errors["tag"] = "tag must be at most 30 characters"
	}

	if strings.TrimSpace(req.AccountType) == "" {
		errors["accountType"] = "accountType is required"
	} else if !ValidAccountType[req.AccountType] {
		errors["accountType"] = fmt.Sprintf("invalid accountType: %s", req.AccountType)
	}

	if len(strings.TrimSpace(req.Currency)) != 3 {
		errors["currency"] = "currency must be a 3-letter code"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateAccount validates an account update request. All fields are
// optional, but if provided, they must meet the same constraints as create.
func ValidateUpdateAccount(req request.UpdateAccountRequest) error {
	errors := make(map[string]string)

	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		errors["name"] = "name is required"
	}
	if req.Tag != nil {
		tag := strings.TrimSpace(*req.Tag)
		if tag == "" {
			errors["tag"] = "tag is required"
		} else if len(tag) > 30 {
			errors["tag"] = "tag must be at most 30 characters"
		}
	}
	if req.AccountType != nil && !ValidAccountType[*req.AccountType] {
		errors["accountType"] = fmt.Sprintf("invalid accountType: %s", *req.AccountType)
	}
	if req.Currency != nil && len(strings.TrimSpace(*req.Currency)) != 3 {
		errors["currency"] = "currency must be a 3-letter code"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
