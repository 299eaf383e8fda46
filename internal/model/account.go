package model

import "time"

// Account types supported by the ledger.
const (
	AccountTypeChecking = "checking"
	AccountTypeSavings  = "savings"
	AccountTypeCredit   = "credit"
	AccountTypeCash     = "cash"
)

// Account represents a money account transactions flow in and out of.
// Balance is always derived from the transaction set (initial balance plus
// incoming minus outgoing effective amounts); it is never stored.
type Account struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Tag            string    `json:"tag"`
	InitialBalance float64   `json:"initialBalance"`
	Balance        float64   `json:"balance"`
	IsDefault      bool      `json:"isDefault"`
	AccountType    string    `json:"accountType"`
	Currency       string    `json:"currency"`
	CreatedAt      time.Time `json:"createdAt,omitempty"`
}
