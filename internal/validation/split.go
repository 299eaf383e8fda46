package validation

import (
	"fmt"

	"github.com/jmolenaar/Expense-Ledger-Backend/internal/api/request"
)

// ValidateCreateSplit validates a split create/update request at the HTTP
// boundary. The sum-balance check against the original amount belongs to the
// split service, which knows the original transaction; this only rejects
// shapes that can never be valid.
//
// Checks per item: amount must be positive, categoryId must be a valid UUID.
// The splits list itself must be non-empty.
func ValidateCreateSplit(req request.CreateSplitRequest) error {
	errors := make(map[string]string)

	if len(req.Splits) == 0 {
		errors["splits"] = "at least one split item is required"
	}

	for i, item := range req.Splits {
		if item.Amount <= 0 {
			errors[fmt.Sprintf("splits[%d].amount", i)] = "amount must be positive"
		}
		if item.CategoryID == "" {
			errors[fmt.Sprintf("splits[%d].categoryId", i)] = "categoryId is required"
		} else if err := ValidateUUID(item.CategoryID); err != nil {
			errors[fmt.Sprintf("splits[%d].categoryId", i)] = err.Error()
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateConvertToRegular validates a split-to-regular conversion request.
func ValidateConvertToRegular(req request.ConvertToRegularRequest) error {
	errors := make(map[string]string)

	if req.CategoryID == "" {
		errors["categoryId"] = "categoryId is required"
	} else if err := ValidateUUID(req.CategoryID); err != nil {
		errors["categoryId"] = err.Error()
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
