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

// TestAccountService_CreateAccount tests account creation invariants.
//
// WHY: Tags identify accounts in imports and must stay unique
// case-insensitively, and flagging a new account default must demote the
// previous default in the same operation.
func TestAccountService_CreateAccount(t *testing.T) {
	t.Run("creates an account with a derived starting balance", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAccountService(t, db)

		// Execute
		created, err := svc.CreateAccount(context.Background(), model.Account{
			Name:           "Daily Checking",
			Tag:            "daily",
			InitialBalance: 250,
			AccountType:    model.AccountTypeChecking,
			Currency:       "EUR",
		})

		// Assert
		if err != nil {
			t.Fatalf("CreateAccount() returned unexpected error: %v", err)
		}
		if created.ID == "" {
			t.Fatal("Expected a generated ID")
		}
		if created.Balance != 250 {
			t.Errorf("Expected starting balance 250, got %v", created.Balance)
		}
	})

	t.Run("rejects a duplicate tag regardless of case", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAccountService(t, db)

		testutil.NewAccount().WithTag("savings").Build(t, db)

		// Execute
		_, err := svc.CreateAccount(context.Background(), model.Account{
			Name:        "Second Savings",
			Tag:         "SAVINGS",
			AccountType: model.AccountTypeSavings,
			Currency:    "EUR",
		})

		// Assert
		if !errors.Is(err, apperrors.ErrDuplicateTag) {
			t.Errorf("Expected ErrDuplicateTag, got %v", err)
		}
	})

	t.Run("creating a default account demotes the previous default", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAccountService(t, db)

		old := testutil.NewAccount().Default().Build(t, db)

		// Execute
		created, err := svc.CreateAccount(context.Background(), model.Account{
			Name:        "New Main",
			Tag:         "main",
			IsDefault:   true,
			AccountType: model.AccountTypeChecking,
			Currency:    "EUR",
		})

		// Assert
		if err != nil {
			t.Fatalf("CreateAccount() returned unexpected error: %v", err)
		}
		if !created.IsDefault {
			t.Error("New account should be default")
		}

		demoted, err := svc.GetAccount(old.ID)
		if err != nil {
			t.Fatalf("GetAccount() failed: %v", err)
		}
		if demoted.IsDefault {
			t.Error("Previous default should have been demoted")
		}
	})
}

// TestAccountService_DerivedBalance tests that balances are computed from
// the transaction set.
//
// WHY: Balances are never stored. Incoming and outgoing flows must be summed
// over the flattened transaction set, so a split parent's placeholder zero
// never distorts the figure.
func TestAccountService_DerivedBalance(t *testing.T) {
	t.Run("derives balance from initial balance and flows", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAccountService(t, db)

		account := testutil.NewAccount().WithInitialBalance(1000).Build(t, db)
		testutil.CreateIncome(t, db, 500, account.ID)
		testutil.NewTransaction().
			WithAmount(200).
			WithFromAccount(account.ID).
			Build(t, db)

		// Execute
		got, err := svc.GetAccount(account.ID)

		// Assert: 1000 + 500 - 200
		if err != nil {
			t.Fatalf("GetAccount() returned unexpected error: %v", err)
		}
		if math.Abs(got.Balance-1300) > 0.001 {
			t.Errorf("Expected derived balance 1300, got %v", got.Balance)
		}
	})

	t.Run("counts a split through its children exactly once", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAccountService(t, db)

		account := testutil.NewAccount().WithInitialBalance(1000).Build(t, db)
		groceries := testutil.CreateCategory(t, db, "Groceries")

		// Split parent with placeholder 0, children 300 + 200 drawing from the account
		parent := testutil.NewTransaction().
			WithAmount(0).
			WithFromAccount(account.ID).
			Build(t, db)
		for _, amount := range []float64{300, 200} {
			testutil.NewTransaction().
				WithAmount(amount).
				WithCategory(groceries.ID).
				WithFromAccount(account.ID).
				WithParent(parent.ID).
				Build(t, db)
		}

		// Execute
		got, err := svc.GetAccount(account.ID)

		// Assert: 1000 - 500, parent row excluded from the sum
		if err != nil {
			t.Fatalf("GetAccount() returned unexpected error: %v", err)
		}
		if math.Abs(got.Balance-500) > 0.001 {
			t.Errorf("Expected derived balance 500, got %v", got.Balance)
		}
	})

	t.Run("transfer legs move money between accounts", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAccountService(t, db)

		source := testutil.NewAccount().WithInitialBalance(500).Build(t, db)
		target := testutil.NewAccount().WithInitialBalance(0).Build(t, db)

		testutil.NewTransaction().
			WithType(model.TypeTransferOut).
			WithAmount(150).
			WithFromAccount(source.ID).
			WithToAccount(target.ID).
			Build(t, db)
		testutil.NewTransaction().
			WithType(model.TypeTransferIn).
			WithAmount(150).
			WithFromAccount(source.ID).
			WithToAccount(target.ID).
			Build(t, db)

		// Execute
		gotSource, err := svc.GetAccount(source.ID)
		if err != nil {
			t.Fatalf("GetAccount(source) failed: %v", err)
		}
		gotTarget, err := svc.GetAccount(target.ID)
		if err != nil {
			t.Fatalf("GetAccount(target) failed: %v", err)
		}

		// Assert
		if math.Abs(gotSource.Balance-350) > 0.001 {
			t.Errorf("Expected source balance 350, got %v", gotSource.Balance)
		}
		if math.Abs(gotTarget.Balance-150) > 0.001 {
			t.Errorf("Expected target balance 150, got %v", gotTarget.Balance)
		}
	})
}

// TestAccountService_DeleteAccount tests the referential deletion guards.
//
// WHY: Deleting the last account would strand the ledger, and deleting an
// account still referenced by transactions would break referential
// integrity. Both must be refused, not cascaded.
func TestAccountService_DeleteAccount(t *testing.T) {
	t.Run("refuses to delete the last account", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAccountService(t, db)

		only := testutil.CreateAccount(t, db, "Only Account")

		// Execute
		err := svc.DeleteAccount(context.Background(), only.ID)

		// Assert
		if !errors.Is(err, apperrors.ErrCannotDeleteLastAccount) {
			t.Errorf("Expected ErrCannotDeleteLastAccount, got %v", err)
		}
		testutil.AssertRowCount(t, db, "account", 1)
	})

	t.Run("refuses to delete an account referenced by transactions", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAccountService(t, db)

		used := testutil.CreateAccount(t, db, "Used Account")
		testutil.CreateAccount(t, db, "Spare Account")
		testutil.NewTransaction().WithAmount(10).WithFromAccount(used.ID).Build(t, db)

		// Execute
		err := svc.DeleteAccount(context.Background(), used.ID)

		// Assert
		if !errors.Is(err, apperrors.ErrAccountInUse) {
			t.Errorf("Expected ErrAccountInUse, got %v", err)
		}
		testutil.AssertRowCount(t, db, "account", 2)
	})

	t.Run("deletes an unreferenced account when others remain", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAccountService(t, db)

		spare := testutil.CreateAccount(t, db, "Spare Account")
		testutil.CreateAccount(t, db, "Main Account")

		// Execute
		err := svc.DeleteAccount(context.Background(), spare.ID)

		// Assert
		if err != nil {
			t.Fatalf("DeleteAccount() returned unexpected error: %v", err)
		}
		testutil.AssertRowCount(t, db, "account", 1)
	})

	t.Run("returns not found for a missing account", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAccountService(t, db)

		// Execute
		err := svc.DeleteAccount(context.Background(), testutil.MakeID())

		// Assert
		if !errors.Is(err, apperrors.ErrAccountNotFound) {
			t.Errorf("Expected ErrAccountNotFound, got %v", err)
		}
	})
}

// TestAccountService_SetDefaultAccount tests the single-default invariant.
//
// WHY: At most one account can be the default target for new transactions;
// promoting one must demote all others atomically.
func TestAccountService_SetDefaultAccount(t *testing.T) {
	t.Run("moves the default flag between accounts", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAccountService(t, db)

		first := testutil.NewAccount().Default().Build(t, db)
		second := testutil.NewAccount().Build(t, db)

		// Execute
		promoted, err := svc.SetDefaultAccount(context.Background(), second.ID)

		// Assert
		if err != nil {
			t.Fatalf("SetDefaultAccount() returned unexpected error: %v", err)
		}
		if !promoted.IsDefault {
			t.Error("Promoted account should be default")
		}

		demoted, err := svc.GetAccount(first.ID)
		if err != nil {
			t.Fatalf("GetAccount() failed: %v", err)
		}
		if demoted.IsDefault {
			t.Error("Previous default should have been demoted")
		}

		// Exactly one default in the store
		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM account WHERE is_default").Scan(&count); err != nil {
			t.Fatalf("Count query failed: %v", err)
		}
		if count != 1 {
			t.Errorf("Expected exactly 1 default account, got %d", count)
		}
	})
}
