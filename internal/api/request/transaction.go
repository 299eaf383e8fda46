package request

type CreateTransactionRequest struct {
	Date          string  `json:"date"`
	Type          string  `json:"type"`
	Amount        float64 `json:"amount"`
	CategoryID    string  `json:"categoryId,omitempty"`
	Description   string  `json:"description"`
	Merchant      string  `json:"merchant,omitempty"`
	FromAccountID string  `json:"fromAccountId,omitempty"`
	ToAccountID   string  `json:"toAccountId,omitempty"`
}

type UpdateTransactionRequest struct {
	Date          *string  `json:"date,omitempty"`
	Type          *string  `json:"type,omitempty"`
	Amount        *float64 `json:"amount,omitempty"`
	CategoryID    *string  `json:"categoryId,omitempty"`
	Description   *string  `json:"description,omitempty"`
	Merchant      *string  `json:"merchant,omitempty"`
	FromAccountID *string  `json:"fromAccountId,omitempty"`
	ToAccountID   *string  `json:"toAccountId,omitempty"`
}

type BulkDeleteRequest struct {
	TransactionIDs []string `json:"transactionIds"`
}

type BulkCategorizeRequest struct {
	TransactionIDs []string `json:"transactionIds"`
	CategoryID     string   `json:"categoryId"`
}
