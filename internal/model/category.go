package model

// UncategorizedID is the sentinel category id used in aggregation output for
// transactions without a category. It is never persisted as a real category.
const UncategorizedID = "00000000-0000-0000-0000-000000000000"

// UncategorizedName is the display name for the uncategorized sentinel.
const UncategorizedName = "Uncategorized"

// Category labels transactions for filtering and breakdown reporting.
type Category struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Icon     string `json:"icon,omitempty"`
	ColorHex string `json:"colorHex,omitempty"`
}
