package service_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/jmolenaar/Expense-Ledger-Backend/internal/apperrors"
	"github.com/jmolenaar/Expense-Ledger-Backend/internal/model"
	"github.com/jmolenaar/Expense-Ledger-Backend/internal/testutil"
)

// TestSplitService_CreateSplit tests splitting a transaction into
// categorized parts.
//
// WHY: Splitting is the core mutation of the ledger. It must preserve the
// amount invariant (children sum to the original), the referential invariant
// (children point at their parent), and the parent placeholder convention
// (no category, zero amount).
func TestSplitService_CreateSplit(t *testing.T) {
	t.Run("splits a transaction into children under a retained parent", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSplitService(t, db)

		groceries := testutil.CreateCategory(t, db, "Groceries")
		household := testutil.CreateCategory(t, db, "Household")
		original := testutil.NewTransaction().
			WithAmount(500).
			WithDescription("Supermarket run").
			Build(t, db)

		splits := []model.SplitItem{
			{Amount: 300, CategoryID: groceries.ID, Description: "Food"},
			{Amount: 200, CategoryID: household.ID, Description: "Cleaning supplies"},
		}

		// Execute
		result, err := svc.CreateSplit(context.Background(), original.ID, splits, true)

		// Assert
		if err != nil {
			t.Fatalf("CreateSplit() returned unexpected error: %v", err)
		}

		if result.ID != original.ID {
			t.Errorf("Expected parent to keep ID %s, got %s", original.ID, result.ID)
		}
		if result.Amount != 0 {
			t.Errorf("Expected parent placeholder amount 0, got %v", result.Amount)
		}
		if result.CategoryID != "" {
			t.Errorf("Expected parent to carry no category, got %s", result.CategoryID)
		}
		if len(result.Children) != 2 {
			t.Fatalf("Expected 2 children, got %d", len(result.Children))
		}

		// Children keep input order and reference the parent
		if result.Children[0].Amount != 300 || result.Children[1].Amount != 200 {
			t.Errorf("Children out of order: got amounts %v, %v",
				result.Children[0].Amount, result.Children[1].Amount)
		}
		for i, child := range result.Children {
			if child.ParentTransactionID != original.ID {
				t.Errorf("Child %d does not reference parent: %s", i, child.ParentTransactionID)
			}
		}

		if math.Abs(result.EffectiveAmount()-500) > 0.001 {
			t.Errorf("Expected effective amount 500, got %v", result.EffectiveAmount())
		}

		// 1 parent + 2 children in the store
		testutil.AssertRowCount(t, db, `"transaction"`, 3)
	})

	t.Run("splits into standalone transactions without a parent", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSplitService(t, db)

		groceries := testutil.CreateCategory(t, db, "Groceries")
		household := testutil.CreateCategory(t, db, "Household")
		original := testutil.NewTransaction().WithAmount(100).Build(t, db)

		splits := []model.SplitItem{
			{Amount: 60, CategoryID: groceries.ID},
			{Amount: 40, CategoryID: household.ID},
		}

		// Execute
		result, err := svc.CreateSplit(context.Background(), original.ID, splits, false)

		// Assert
		if err != nil {
			t.Fatalf("CreateSplit() returned unexpected error: %v", err)
		}

		if len(result.Children) != 2 {
			t.Fatalf("Expected 2 standalone splits, got %d", len(result.Children))
		}
		for i, split := range result.Children {
			if split.ParentTransactionID != "" {
				t.Errorf("Split %d should be standalone, references %s", i, split.ParentTransactionID)
			}
		}

		// Original gone, only the 2 standalone rows remain
		testutil.AssertRowCount(t, db, `"transaction"`, 2)

		txService := testutil.NewTestTransactionService(t, db)
		if _, err := txService.GetTransaction(original.ID); !errors.Is(err, apperrors.ErrTransactionNotFound) {
			t.Errorf("Expected original to be deleted, got error %v", err)
		}
	})

	t.Run("rejects an unbalanced split and leaves no partial state", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSplitService(t, db)

		groceries := testutil.CreateCategory(t, db, "Groceries")
		original := testutil.NewTransaction().WithAmount(500).Build(t, db)

		splits := []model.SplitItem{
			{Amount: 300, CategoryID: groceries.ID},
			{Amount: 150, CategoryID: groceries.ID}, // sums to 450, not 500
		}

		// Execute
		_, err := svc.CreateSplit(context.Background(), original.ID, splits, true)

		// Assert
		if !errors.Is(err, apperrors.ErrUnbalancedSplit) {
			t.Fatalf("Expected ErrUnbalancedSplit, got %v", err)
		}

		// Original untouched
		testutil.AssertRowCount(t, db, `"transaction"`, 1)

		txService := testutil.NewTestTransactionService(t, db)
		kept, err := txService.GetTransaction(original.ID)
		if err != nil {
			t.Fatalf("Original should survive a rejected split: %v", err)
		}
		if kept.Amount != 500 {
			t.Errorf("Original amount changed: got %v", kept.Amount)
		}
	})

	t.Run("accepts a split within the rounding tolerance", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSplitService(t, db)

		groceries := testutil.CreateCategory(t, db, "Groceries")
		original := testutil.NewTransaction().WithAmount(100).Build(t, db)

		// 33.33 * 3 = 99.99, off by 0.01
		splits := []model.SplitItem{
			{Amount: 33.33, CategoryID: groceries.ID},
			{Amount: 33.33, CategoryID: groceries.ID},
			{Amount: 33.33, CategoryID: groceries.ID},
		}

		// Execute
		result, err := svc.CreateSplit(context.Background(), original.ID, splits, true)

		// Assert
		if err != nil {
			t.Fatalf("Split within tolerance was rejected: %v", err)
		}
		if len(result.Children) != 3 {
			t.Errorf("Expected 3 children, got %d", len(result.Children))
		}
	})

	t.Run("rejects an empty split list", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSplitService(t, db)
		original := testutil.NewTransaction().WithAmount(50).Build(t, db)

		// Execute
		_, err := svc.CreateSplit(context.Background(), original.ID, nil, true)

		// Assert
		if !errors.Is(err, apperrors.ErrEmptySplit) {
			t.Errorf("Expected ErrEmptySplit, got %v", err)
		}
	})

	t.Run("rejects split items without a category", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSplitService(t, db)
		original := testutil.NewTransaction().WithAmount(50).Build(t, db)

		splits := []model.SplitItem{{Amount: 50, CategoryID: ""}}

		// Execute
		_, err := svc.CreateSplit(context.Background(), original.ID, splits, true)

		// Assert
		if !errors.Is(err, apperrors.ErrSplitItemMissingCategory) {
			t.Errorf("Expected ErrSplitItemMissingCategory, got %v", err)
		}
	})

	t.Run("rejects non-positive split amounts", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSplitService(t, db)

		groceries := testutil.CreateCategory(t, db, "Groceries")
		original := testutil.NewTransaction().WithAmount(50).Build(t, db)

		splits := []model.SplitItem{
			{Amount: 60, CategoryID: groceries.ID},
			{Amount: -10, CategoryID: groceries.ID},
		}

		// Execute
		_, err := svc.CreateSplit(context.Background(), original.ID, splits, true)

		// Assert
		if !errors.Is(err, apperrors.ErrNonPositiveSplitAmount) {
			t.Errorf("Expected ErrNonPositiveSplitAmount, got %v", err)
		}
	})

	t.Run("returns not found for a missing transaction", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSplitService(t, db)
		groceries := testutil.CreateCategory(t, db, "Groceries")

		splits := []model.SplitItem{{Amount: 10, CategoryID: groceries.ID}}

		// Execute
		_, err := svc.CreateSplit(context.Background(), testutil.MakeID(), splits, true)

		// Assert
		if !errors.Is(err, apperrors.ErrTransactionNotFound) {
			t.Errorf("Expected ErrTransactionNotFound, got %v", err)
		}
	})
}

// TestSplitService_UpdateSplit tests replacing the children of an existing
// split parent.
//
// WHY: Editing a split replaces the full child set in one atomic operation.
// The new set re-validates against the parent's current effective amount, and
// a plain transaction must be rejected.
func TestSplitService_UpdateSplit(t *testing.T) {
	t.Run("replaces children with a new validated set", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSplitService(t, db)

		groceries := testutil.CreateCategory(t, db, "Groceries")
		household := testutil.CreateCategory(t, db, "Household")
		fun := testutil.CreateCategory(t, db, "Entertainment")
		parent := testutil.CreateSplitParent(t, db, groceries.ID, 300, 200)

		newSplits := []model.SplitItem{
			{Amount: 250, CategoryID: household.ID},
			{Amount: 150, CategoryID: fun.ID},
			{Amount: 100, CategoryID: groceries.ID},
		}

		// Execute
		result, err := svc.UpdateSplit(context.Background(), parent.ID, newSplits, true)

		// Assert
		if err != nil {
			t.Fatalf("UpdateSplit() returned unexpected error: %v", err)
		}

		if result.ID != parent.ID {
			t.Errorf("Expected parent ID %s preserved, got %s", parent.ID, result.ID)
		}
		if len(result.Children) != 3 {
			t.Fatalf("Expected 3 children after update, got %d", len(result.Children))
		}
		if math.Abs(result.EffectiveAmount()-500) > 0.001 {
			t.Errorf("Expected effective amount 500, got %v", result.EffectiveAmount())
		}

		// 1 parent + 3 new children, old children gone
		testutil.AssertRowCount(t, db, `"transaction"`, 4)
	})

	t.Run("rejects update on a plain transaction", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSplitService(t, db)

		groceries := testutil.CreateCategory(t, db, "Groceries")
		plain := testutil.NewTransaction().WithAmount(100).Build(t, db)

		splits := []model.SplitItem{{Amount: 100, CategoryID: groceries.ID}}

		// Execute
		_, err := svc.UpdateSplit(context.Background(), plain.ID, splits, true)

		// Assert
		if !errors.Is(err, apperrors.ErrNotSplitParent) {
			t.Errorf("Expected ErrNotSplitParent, got %v", err)
		}
	})

	t.Run("rejects an unbalanced replacement and keeps existing children", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSplitService(t, db)

		groceries := testutil.CreateCategory(t, db, "Groceries")
		parent := testutil.CreateSplitParent(t, db, groceries.ID, 300, 200)

		badSplits := []model.SplitItem{{Amount: 100, CategoryID: groceries.ID}}

		// Execute
		_, err := svc.UpdateSplit(context.Background(), parent.ID, badSplits, true)

		// Assert
		if !errors.Is(err, apperrors.ErrUnbalancedSplit) {
			t.Fatalf("Expected ErrUnbalancedSplit, got %v", err)
		}

		// Old children survive the rejected update
		txService := testutil.NewTestTransactionService(t, db)
		kept, err := txService.GetTransaction(parent.ID)
		if err != nil {
			t.Fatalf("Parent should survive a rejected update: %v", err)
		}
		if len(kept.Children) != 2 {
			t.Errorf("Expected original 2 children intact, got %d", len(kept.Children))
		}
	})
}

// TestSplitService_ConvertToRegular tests collapsing a split back into a
// plain transaction.
//
// WHY: Conversion is the inverse of splitting. The collapsed transaction must
// recover the full amount from its children and take a real category, so a
// split/convert round trip preserves the ledger total.
func TestSplitService_ConvertToRegular(t *testing.T) {
	t.Run("collapses a split parent into a plain categorized transaction", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSplitService(t, db)

		groceries := testutil.CreateCategory(t, db, "Groceries")
		household := testutil.CreateCategory(t, db, "Household")
		parent := testutil.CreateSplitParent(t, db, groceries.ID, 300, 200)

		// Execute
		result, err := svc.ConvertToRegular(context.Background(), parent.ID, household.ID, "One purchase after all")

		// Assert
		if err != nil {
			t.Fatalf("ConvertToRegular() returned unexpected error: %v", err)
		}

		if result.Amount != 500 {
			t.Errorf("Expected recovered amount 500, got %v", result.Amount)
		}
		if result.CategoryID != household.ID {
			t.Errorf("Expected category %s, got %s", household.ID, result.CategoryID)
		}
		if result.Description != "One purchase after all" {
			t.Errorf("Description not applied: %s", result.Description)
		}
		if len(result.Children) != 0 {
			t.Errorf("Expected no children after conversion, got %d", len(result.Children))
		}

		// Only the collapsed parent remains
		testutil.AssertRowCount(t, db, `"transaction"`, 1)
	})

	t.Run("split then convert round trip preserves the amount", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSplitService(t, db)

		groceries := testutil.CreateCategory(t, db, "Groceries")
		household := testutil.CreateCategory(t, db, "Household")
		original := testutil.NewTransaction().
			WithAmount(123.45).
			WithCategory(groceries.ID).
			Build(t, db)

		splits := []model.SplitItem{
			{Amount: 100, CategoryID: groceries.ID},
			{Amount: 23.45, CategoryID: household.ID},
		}

		// Execute
		if _, err := svc.CreateSplit(context.Background(), original.ID, splits, true); err != nil {
			t.Fatalf("CreateSplit() failed: %v", err)
		}
		result, err := svc.ConvertToRegular(context.Background(), original.ID, groceries.ID, "")

		// Assert
		if err != nil {
			t.Fatalf("ConvertToRegular() returned unexpected error: %v", err)
		}
		if math.Abs(result.Amount-123.45) > 0.001 {
			t.Errorf("Round trip changed the amount: got %v, want 123.45", result.Amount)
		}
	})

	t.Run("requires a category", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSplitService(t, db)

		groceries := testutil.CreateCategory(t, db, "Groceries")
		parent := testutil.CreateSplitParent(t, db, groceries.ID, 50, 50)

		// Execute
		_, err := svc.ConvertToRegular(context.Background(), parent.ID, "", "")

		// Assert
		if !errors.Is(err, apperrors.ErrSplitItemMissingCategory) {
			t.Errorf("Expected ErrSplitItemMissingCategory, got %v", err)
		}
	})

	t.Run("rejects conversion of a plain transaction", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSplitService(t, db)

		groceries := testutil.CreateCategory(t, db, "Groceries")
		plain := testutil.NewTransaction().WithAmount(100).Build(t, db)

		// Execute
		_, err := svc.ConvertToRegular(context.Background(), plain.ID, groceries.ID, "")

		// Assert
		if !errors.Is(err, apperrors.ErrNotSplitParent) {
			t.Errorf("Expected ErrNotSplitParent, got %v", err)
		}
	})

	t.Run("rejects an unknown category", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSplitService(t, db)

		groceries := testutil.CreateCategory(t, db, "Groceries")
		parent := testutil.CreateSplitParent(t, db, groceries.ID, 50, 50)

		// Execute
		_, err := svc.ConvertToRegular(context.Background(), parent.ID, testutil.MakeID(), "")

		// Assert
		if !errors.Is(err, apperrors.ErrCategoryNotFound) {
			t.Errorf("Expected ErrCategoryNotFound, got %v", err)
		}
	})
}

// TestSplitService_DeleteSplit tests removing a split parent with and
// without its children.
//
// WHY: Deleting a split has two distinct semantics: cascade removes the whole
// group, promote keeps the children as standalone transactions. Getting the
// wrong one silently loses or duplicates money.
func TestSplitService_DeleteSplit(t *testing.T) {
	t.Run("cascade removes parent and children", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSplitService(t, db)

		groceries := testutil.CreateCategory(t, db, "Groceries")
		parent := testutil.CreateSplitParent(t, db, groceries.ID, 30, 20)

		// Execute
		err := svc.DeleteSplit(context.Background(), parent.ID, true)

		// Assert
		if err != nil {
			t.Fatalf("DeleteSplit() returned unexpected error: %v", err)
		}
		testutil.AssertRowCount(t, db, `"transaction"`, 0)
	})

	t.Run("promote keeps children as standalone transactions", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSplitService(t, db)

		groceries := testutil.CreateCategory(t, db, "Groceries")
		parent := testutil.CreateSplitParent(t, db, groceries.ID, 30, 20)

		// Execute
		err := svc.DeleteSplit(context.Background(), parent.ID, false)

		// Assert
		if err != nil {
			t.Fatalf("DeleteSplit() returned unexpected error: %v", err)
		}

		// Parent gone, 2 promoted children remain
		testutil.AssertRowCount(t, db, `"transaction"`, 2)

		txService := testutil.NewTestTransactionService(t, db)
		all, err := txService.GetAllTransactions()
		if err != nil {
			t.Fatalf("GetAllTransactions() failed: %v", err)
		}
		for _, tx := range all {
			if tx.ParentTransactionID != "" {
				t.Errorf("Promoted child still references parent: %s", tx.ParentTransactionID)
			}
		}
	})

	t.Run("rejects deletion of a plain transaction", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSplitService(t, db)

		plain := testutil.NewTransaction().WithAmount(10).Build(t, db)

		// Execute
		err := svc.DeleteSplit(context.Background(), plain.ID, true)

		// Assert
		if !errors.Is(err, apperrors.ErrNotSplitParent) {
			t.Errorf("Expected ErrNotSplitParent, got %v", err)
		}
	})
}
