package model

import (
	"strings"
	"time"
)

// TransactionFilter is the predicate driving the filtered transaction view.
// Dimensions combine with logical AND; values within one dimension combine
// with logical OR. Zero values mean "dimension inactive".
type TransactionFilter struct {
	StartDate   time.Time `json:"startDate,omitempty"`
	EndDate     time.Time `json:"endDate,omitempty"`
	CategoryIDs []string  `json:"categoryIds,omitempty"`
	Types       []string  `json:"types,omitempty"`
	AccountIDs  []string  `json:"accountIds,omitempty"`
	MinAmount   *float64  `json:"minAmount,omitempty"`
	MaxAmount   *float64  `json:"maxAmount,omitempty"`
	SearchText  string    `json:"searchText,omitempty"`
}

// IsZero reports whether no dimension of the filter is active.
func (f *TransactionFilter) IsZero() bool {
	return f.StartDate.IsZero() && f.EndDate.IsZero() &&
		len(f.CategoryIDs) == 0 && len(f.Types) == 0 && len(f.AccountIDs) == 0 &&
		f.MinAmount == nil && f.MaxAmount == nil &&
		strings.TrimSpace(f.SearchText) == ""
}

// Matches reports whether the transaction passes every active dimension.
// A split parent passes a dimension when itself or any of its children
// matches; amount bounds compare against the effective amount.
// categoryNames maps category id to display name for search matching.
func (f *TransactionFilter) Matches(t *Transaction, categoryNames map[string]string) bool {
	if !f.StartDate.IsZero() && t.Date.Before(f.StartDate) {
		return false
	}
	if !f.EndDate.IsZero() && t.Date.After(f.EndDate) {
		return false
	}

	flat := t.Flatten()

	if len(f.CategoryIDs) > 0 && !anyMatches(t, flat, func(x *Transaction) bool {
		return containsString(f.CategoryIDs, x.CategoryID)
	}) {
		return false
	}

	if len(f.Types) > 0 && !anyMatches(t, flat, func(x *Transaction) bool {
		return containsString(f.Types, x.Type)
	}) {
		return false
	}

	if len(f.AccountIDs) > 0 && !anyMatches(t, flat, func(x *Transaction) bool {
		return containsString(f.AccountIDs, x.FromAccountID) ||
			containsString(f.AccountIDs, x.ToAccountID)
	}) {
		return false
	}

	effective := t.EffectiveAmount()
	if f.MinAmount != nil && effective < *f.MinAmount {
		return false
	}
	if f.MaxAmount != nil && effective > *f.MaxAmount {
		return false
	}

	search := strings.ToLower(strings.TrimSpace(f.SearchText))
	if search != "" && !anyMatches(t, flat, func(x *Transaction) bool {
		return matchesSearch(x, search, categoryNames)
	}) {
		return false
	}

	return true
}

// anyMatches applies pred to the transaction itself and each flattened
// child. The parent is checked too so a retained split parent's own
// description and accounts still count.
func anyMatches(t *Transaction, flat []Transaction, pred func(*Transaction) bool) bool {
	if pred(t) {
		return true
	}
	for i := range flat {
		if pred(&flat[i]) {
			return true
		}
	}
	return false
}

func matchesSearch(t *Transaction, search string, categoryNames map[string]string) bool {
	if strings.Contains(strings.ToLower(t.Description), search) {
		return true
	}
	if strings.Contains(strings.ToLower(t.Merchant), search) {
		return true
	}
	if t.CategoryID != "" {
		if name, ok := categoryNames[t.CategoryID]; ok {
			return strings.Contains(strings.ToLower(name), search)
		}
	}
	return false
}

func containsString(values []string, value string) bool {
	if value == "" {
		return false
	}
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
