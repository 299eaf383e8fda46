package validation

import (
	"fmt"
	"time"

	"github.com/jmolenaar/Expense-Ledger-Backend/internal/api/request"
)

// ValidateSetFilter validates a filter update request. Every dimension is
// optional; provided dates must parse and ranges must be ordered.
func ValidateSetFilter(req request.SetFilterRequest) error {
	errors := make(map[string]string)

	var start, end time.Time
	var err error

	if req.StartDate != "" {
		if start, err = time.Parse("2006-01-02", req.StartDate); err != nil {
			errors["startDate"] = err.Error()
		}
	}
	if req.EndDate != "" {
		if end, err = time.Parse("2006-01-02", req.EndDate); err != nil {
			errors["endDate"] = err.Error()
		}
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		errors["endDate"] = "endDate must not be before startDate"
	}

	for _, t := range req.Types {
		if !ValidTransactionType[t] {
			errors["types"] = fmt.Sprintf("invalid type: %s", t)
		}
	}

	for _, id := range req.CategoryIDs {
		if err := ValidateUUID(id); err != nil {
			errors["categoryIds"] = err.Error()
		}
	}
	for _, id := range req.AccountIDs {
		if err := ValidateUUID(id); err != nil {
			errors["accountIds"] = err.Error()
		}
	}

	if req.MinAmount != nil && *req.MinAmount < 0 {
		errors["minAmount"] = "minAmount cannot be negative"
	}
	if req.MaxAmount != nil && req.MinAmount != nil && *req.MaxAmount < *req.MinAmount {
		errors["maxAmount"] = "maxAmount must not be below minAmount"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
