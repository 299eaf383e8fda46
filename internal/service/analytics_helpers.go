package service

import (
	"sort"
	"strings"
	"time"

	"github.com/jmolenaar/Expense-Ledger-Backend/internal/model"
)

// maxDailySeriesDays bounds the gap-filled daily series against pathological
// date ranges.
const maxDailySeriesDays = 366

// flattenByType substitutes split parents with their children, then keeps
// only transactions of the given type. This is the amount-safe view every
// aggregate is computed over: a split parent contributes its children, never
// itself.
func flattenByType(transactions []model.Transaction, txType string) []model.Transaction {
	flat := make([]model.Transaction, 0, len(transactions))
	for i := range transactions {
		for _, t := range transactions[i].Flatten() {
			if t.Type == txType {
				flat = append(flat, t)
			}
		}
	}
	return flat
}

// categoryBreakdown groups flattened expenses by category, folding
// uncategorized transactions into the sentinel entry. Groups are sorted
// descending by amount; ties keep their first-encounter order. A zero total
// produces an empty breakdown rather than NaN percentages.
func categoryBreakdown(expenses []model.Transaction, categoryNames map[string]string) []model.CategoryBreakdownEntry {
	groups := make(map[string]*model.CategoryBreakdownEntry)
	order := []string{}
	var total float64

	for i := range expenses {
		t := &expenses[i]

		categoryID := t.CategoryID
		if categoryID == "" {
			categoryID = model.UncategorizedID
		}

		entry, ok := groups[categoryID]
		if !ok {
			name := model.UncategorizedName
			if categoryID != model.UncategorizedID {
				name = categoryNames[categoryID]
			}
			entry = &model.CategoryBreakdownEntry{CategoryID: categoryID, CategoryName: name}
			groups[categoryID] = entry
			order = append(order, categoryID)
		}

		entry.Amount += t.EffectiveAmount()
		entry.Count++
		total += t.EffectiveAmount()
	}

	if total == 0 {
		return []model.CategoryBreakdownEntry{}
	}

	breakdown := make([]model.CategoryBreakdownEntry, 0, len(order))
	for _, id := range order {
		entry := *groups[id]
		entry.Percentage = entry.Amount / total * 100
		breakdown = append(breakdown, entry)
	}

	sort.SliceStable(breakdown, func(i, j int) bool {
		return breakdown[i].Amount > breakdown[j].Amount
	})

	return breakdown
}

// merchantBreakdown groups flattened expenses by trimmed merchant name,
// falling back to the description when no merchant is recorded. Entries
// whose trimmed name is empty are excluded. Sorted descending by amount.
func merchantBreakdown(expenses []model.Transaction) []model.MerchantSummary {
	groups := make(map[string]*model.MerchantSummary)
	order := []string{}

	for i := range expenses {
		t := &expenses[i]

		name := strings.TrimSpace(t.Merchant)
		if name == "" {
			name = strings.TrimSpace(t.Description)
		}
		if name == "" {
			continue
		}

		entry, ok := groups[name]
		if !ok {
			entry = &model.MerchantSummary{Merchant: name}
			groups[name] = entry
			order = append(order, name)
		}

		entry.Amount += t.EffectiveAmount()
		entry.Count++
	}

	merchants := make([]model.MerchantSummary, 0, len(order))
	for _, name := range order {
		merchants = append(merchants, *groups[name])
	}

	sort.SliceStable(merchants, func(i, j int) bool {
		return merchants[i].Amount > merchants[j].Amount
	})

	return merchants
}

// dailyRange resolves the [start, end] window for the daily spending series:
// the filter's date range when set, otherwise the span of the expense data
// itself. Returns zero times when neither yields a range.
func dailyRange(filter model.TransactionFilter, expenses []model.Transaction) (time.Time, time.Time) {
	start, end := filter.StartDate, filter.EndDate

	if start.IsZero() || end.IsZero() {
		for i := range expenses {
			d := expenses[i].Date
			if start.IsZero() || d.Before(start) {
				start = d
			}
			if end.IsZero() || d.After(end) {
				end = d
			}
		}
	}

	return start, end
}

// dailySpending buckets flattened expenses by calendar day and gap-fills:
// the result holds exactly one entry per day in [rangeStart, rangeEnd],
// zero-amount for days without spending, sorted ascending. Iteration is
// bounded to maxDailySeriesDays.
func dailySpending(expenses []model.Transaction, rangeStart, rangeEnd time.Time) []model.DailySpendingEntry {
	if rangeStart.IsZero() || rangeEnd.IsZero() || rangeEnd.Before(rangeStart) {
		return []model.DailySpendingEntry{}
	}

	byDay := make(map[string]float64)
	for i := range expenses {
		t := &expenses[i]
		byDay[t.Date.Format("2006-01-02")] += t.EffectiveAmount()
	}

	start := startOfDay(rangeStart)
	end := startOfDay(rangeEnd)

	series := []model.DailySpendingEntry{}
	for day, n := start, 0; !day.After(end) && n < maxDailySeriesDays; day, n = day.AddDate(0, 0, 1), n+1 {
		series = append(series, model.DailySpendingEntry{
			Date:   day,
			Amount: byDay[day.Format("2006-01-02")],
		})
	}

	return series
}

// averageDailySpending is total over day count, 0 for an empty series.
func averageDailySpending(series []model.DailySpendingEntry) float64 {
	if len(series) == 0 {
		return 0
	}
	var total float64
	for _, entry := range series {
		total += entry.Amount
	}
	return total / float64(len(series))
}

// monthComparison totals expenses and income for the current calendar month
// to date against the previous full calendar month, over the full
// unfiltered, flattened transaction set. Percentage change is 0 when the
// previous month's total is 0, never NaN or Inf.
func monthComparison(transactions []model.Transaction, now time.Time) model.MonthComparison {
	currentStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	previousStart := currentStart.AddDate(0, -1, 0)

	var result model.MonthComparison

	for i := range transactions {
		for _, t := range transactions[i].Flatten() {
			amount := t.EffectiveAmount()
			switch {
			case !t.Date.Before(currentStart) && !t.Date.After(now):
				switch t.Type {
				case model.TypeExpense:
					result.CurrentExpenses += amount
				case model.TypeIncome:
					result.CurrentIncome += amount
				}
			case !t.Date.Before(previousStart) && t.Date.Before(currentStart):
				switch t.Type {
				case model.TypeExpense:
					result.PreviousExpenses += amount
				case model.TypeIncome:
					result.PreviousIncome += amount
				}
			}
		}
	}

	result.ExpenseChange = percentageChange(result.CurrentExpenses, result.PreviousExpenses)
	result.IncomeChange = percentageChange(result.CurrentIncome, result.PreviousIncome)

	return result
}

// percentageChange is (current - previous) / previous * 100, defined as 0
// when previous is 0.
func percentageChange(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
