package model

// AdvisorKeyword is a learned mapping from a merchant/description keyword to
// a category, built up from user corrections.
type AdvisorKeyword struct {
	ID         string `json:"id"`
	Keyword    string `json:"keyword"`
	CategoryID string `json:"categoryId"`
	Hits       int    `json:"hits"`
}

// CategorySuggestion is the advisor's answer for a transaction description:
// a category id (empty when it has no idea) and a confidence in [0, 1].
type CategorySuggestion struct {
	CategoryID string  `json:"categoryId,omitempty"`
	Confidence float64 `json:"confidence"`
}
