package apperrors

import (
	"errors"
	"fmt"
)

// Domain entity errors represent missing entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrTransactionNotFound indicates that a transaction with the given ID does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrAccountNotFound indicates that an account with the given ID does not exist.
	ErrAccountNotFound = errors.New("account not found")

	// ErrCategoryNotFound indicates that a category with the given ID does not exist.
	ErrCategoryNotFound = errors.New("category not found")
)

// Validation errors represent split and input constraint violations.
// All of them are checked before any store call is issued (fail fast,
// zero partial state).
var (
	// ErrUnbalancedSplit indicates that the split amounts do not sum to the
	// original transaction amount within the 0.01 tolerance.
	ErrUnbalancedSplit = errors.New("split amounts do not sum to the original amount")

	// ErrEmptySplit indicates that a split operation received no split items.
	ErrEmptySplit = errors.New("split requires at least one item")

	// ErrNonPositiveSplitAmount indicates that a split item has a zero or negative amount.
	ErrNonPositiveSplitAmount = errors.New("split amounts must be positive")

	// ErrSplitItemMissingCategory indicates that a split item has no category.
	ErrSplitItemMissingCategory = errors.New("every split item requires a category")

	// ErrNotSplitParent indicates an operation that requires a split parent
	// was invoked on a plain transaction.
	ErrNotSplitParent = errors.New("transaction is not a split parent")
)

// Referential errors represent deletions that would break references.
var (
	// ErrAccountInUse indicates an account cannot be deleted because at least
	// one transaction (including split children) references it.
	ErrAccountInUse = errors.New("account is referenced by transactions")

	// ErrCannotDeleteLastAccount indicates the sole remaining account cannot
	// be deleted, regardless of its balance.
	ErrCannotDeleteLastAccount = errors.New("cannot delete the last remaining account")

	// ErrDuplicateTag indicates an account tag collides case-insensitively
	// with an existing one.
	ErrDuplicateTag = errors.New("account tag already in use")
)

// Store errors classify failures propagated from the ledger store.
var (
	// ErrStoreConflict indicates a write conflicted with concurrent state.
	ErrStoreConflict = errors.New("store conflict detected")

	// ErrStoreIO indicates a low-level store read or write failure.
	ErrStoreIO = errors.New("store i/o failure")
)

// PartialBatchError reports a bulk operation that stopped partway: Completed
// of Total steps were applied before Err occurred. Bulk operations are not
// transactional; whatever succeeded stays applied.
type PartialBatchError struct {
	Completed int
	Total     int
	Err       error
}

func (e *PartialBatchError) Error() string {
	return fmt.Sprintf("%d of %d operations completed: %v", e.Completed, e.Total, e.Err)
}

func (e *PartialBatchError) Unwrap() error {
	return e.Err
}
