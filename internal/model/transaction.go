package model

import "time"

// Transaction types supported by the ledger.
const (
	TypeExpense     = "expense"
	TypeIncome      = "income"
	TypeTransferOut = "transfer_out"
	TypeTransferIn  = "transfer_in"
)

// Transaction represents a single ledger entry: an expense, income, or one
// leg of a transfer between accounts.
//
// A transaction acting as a split parent carries no category and a zero
// placeholder amount; its Children hold the categorized parts. Children
// reference the parent through ParentTransactionID.
type Transaction struct {
	ID                  string        `json:"id"`
	Date                time.Time     `json:"date"`
	Type                string        `json:"type"`
	Amount              float64       `json:"amount"`
	CategoryID          string        `json:"categoryId,omitempty"`
	Description         string        `json:"description"`
	Merchant            string        `json:"merchant,omitempty"`
	FromAccountID       string        `json:"fromAccountId,omitempty"`
	ToAccountID         string        `json:"toAccountId,omitempty"`
	ParentTransactionID string        `json:"parentTransactionId,omitempty"`
	Children            []Transaction `json:"children,omitempty"`
	CreatedAt           time.Time     `json:"createdAt,omitempty"`
}

// IsSplitParent reports whether this transaction is a split parent,
// i.e. whether child transactions are attached to it.
func (t *Transaction) IsSplitParent() bool {
	return len(t.Children) > 0
}

// EffectiveAmount returns the amount this transaction contributes to
// balances and aggregates: the sum of its children when it is a split
// parent, otherwise its own amount.
func (t *Transaction) EffectiveAmount() float64 {
	if !t.IsSplitParent() {
		return t.Amount
	}
	var total float64
	for i := range t.Children {
		total += t.Children[i].EffectiveAmount()
	}
	return total
}

// Flatten returns the transactions that participate in amount-based
// computations: the children of a split parent, or the transaction itself.
// This is what prevents a split from being counted twice.
func (t *Transaction) Flatten() []Transaction {
	if t.IsSplitParent() {
		return t.Children
	}
	return []Transaction{*t}
}

// SplitItem is the transient input to a split operation. It never persists
// as-is; each item materializes into a child (or standalone) transaction.
type SplitItem struct {
	Amount      float64 `json:"amount"`
	CategoryID  string  `json:"categoryId"`
	Description string  `json:"description"`
	Merchant    string  `json:"merchant,omitempty"`
}
