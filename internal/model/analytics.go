package model

import "time"

// CategoryBreakdownEntry is one row of the per-category expense breakdown.
// Transactions without a category fold into the uncategorized sentinel.
type CategoryBreakdownEntry struct {
	CategoryID   string  `json:"categoryId"`
	CategoryName string  `json:"categoryName"`
	Amount       float64 `json:"amount"`
	Count        int     `json:"count"`
	Percentage   float64 `json:"percentage"`
}

// MerchantSummary is one row of the per-merchant expense breakdown, grouped
// by trimmed merchant name (description when no merchant is recorded).
type MerchantSummary struct {
	Merchant string  `json:"merchant"`
	Amount   float64 `json:"amount"`
	Count    int     `json:"count"`
}

// DailySpendingEntry is one calendar day of the gap-filled spending series.
type DailySpendingEntry struct {
	Date   time.Time `json:"date"`
	Amount float64   `json:"amount"`
}

// MonthComparison compares the current calendar month to date against the
// previous full calendar month, per transaction type. Percentage changes are
// 0 when the previous month's total is 0.
type MonthComparison struct {
	CurrentExpenses  float64 `json:"currentExpenses"`
	PreviousExpenses float64 `json:"previousExpenses"`
	ExpenseChange    float64 `json:"expenseChange"`
	CurrentIncome    float64 `json:"currentIncome"`
	PreviousIncome   float64 `json:"previousIncome"`
	IncomeChange     float64 `json:"incomeChange"`
}

// Snapshot is the full set of derived views the analytics engine produces.
// Every recompute replaces the snapshot as a whole; consumers never see a
// partially updated mix of views.
type Snapshot struct {
	Revision             int64                    `json:"revision"`
	ComputedAt           time.Time                `json:"computedAt"`
	Filter               TransactionFilter        `json:"filter"`
	FilteredTransactions []Transaction            `json:"filteredTransactions"`
	CategoryBreakdown    []CategoryBreakdownEntry `json:"categoryBreakdown"`
	TopMerchants         []MerchantSummary        `json:"topMerchants"`
	DailySpending        []DailySpendingEntry     `json:"dailySpending"`
	AverageDailySpending float64                  `json:"averageDailySpending"`
	MonthComparison      MonthComparison          `json:"monthComparison"`
}
