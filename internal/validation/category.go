package validation

import (
	"regexp"
	"strings"

	"github.com/jmolenaar/Expense-Ledger-Backend/internal/api/request"
)

var colorHexPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// ValidateCreateCategory validates a category creation request.
// Name is required; colorHex, if provided, must be #RRGGBB or #RRGGBBAA.
func ValidateCreateCategory(req request.CreateCategoryRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	}
	if req.ColorHex != "" && !colorHexPattern.MatchString(req.ColorHex) {
		errors["colorHex"] = "colorHex must be #RRGGBB or #RRGGBBAA"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateCategory validates a category update request.
func ValidateUpdateCategory(req request.UpdateCategoryRequest) error {
	errors := make(map[string]string)

	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		errors["name"] = "name is required"
	}
	if req.ColorHex != nil && *req.ColorHex != "" && !colorHexPattern.MatchString(*req.ColorHex) {
		errors["colorHex"] = "colorHex must be #RRGGBB or #RRGGBBAA"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
