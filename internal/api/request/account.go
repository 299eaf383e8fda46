package request

type CreateAccountRequest struct {
	Name           string  `json:"name"`
	Tag            string  `json:"tag"`
	InitialBalance float64 `json:"initialBalance"`
	IsDefault      bool    `json:"isDefault"`
	AccountType    string  `json:"accountType"`
	Currency       string  `json:"currency"`
}

type UpdateAccountRequest struct {
	Name           *string  `json:"name,omitempty"`
	Tag            *string  `json:"tag,omitempty"`
	InitialBalance *float64 `json:"initialBalance,omitempty"`
	IsDefault      *bool    `json:"isDefault,omitempty"`
	AccountType    *string  `json:"accountType,omitempty"`
	Currency       *string  `json:"currency,omitempty"`
}
