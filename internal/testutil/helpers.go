package testutil

import (
	"database/sql"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmolenaar/Expense-Ledger-Backend/internal/repository"
	"github.com/jmolenaar/Expense-Ledger-Backend/internal/service"
)

func NewTestAnalyticsService(t *testing.T, db *sql.DB) *service.AnalyticsService {
	t.Helper()

	transactionRepo := repository.NewTransactionRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)

	// Short debounce keeps coalescing tests fast.
	return service.NewAnalyticsService(transactionRepo, categoryRepo, 10*time.Millisecond)
}

func NewTestTransactionService(t *testing.T, db *sql.DB) *service.TransactionService {
	t.Helper()

	transactionRepo := repository.NewTransactionRepository(db)

	return service.NewTransactionService(
		transactionRepo,
		NewTestAnalyticsService(t, db),
	)
}

func NewTestSplitService(t *testing.T, db *sql.DB) *service.SplitService {
	t.Helper()

	uow := repository.NewUnitOfWork(db)

	return service.NewSplitService(
		uow,
		NewTestAnalyticsService(t, db),
	)
}

func NewTestAccountService(t *testing.T, db *sql.DB) *service.AccountService {
	t.Helper()

	accountRepo := repository.NewAccountRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	uow := repository.NewUnitOfWork(db)

	return service.NewAccountService(
		accountRepo,
		transactionRepo,
		uow,
		NewTestAnalyticsService(t, db),
	)
}

func NewTestCategoryService(t *testing.T, db *sql.DB) *service.CategoryService {
	t.Helper()

	categoryRepo := repository.NewCategoryRepository(db)

	return service.NewCategoryService(
		categoryRepo,
		NewTestAnalyticsService(t, db),
	)
}

func NewTestAdvisorService(t *testing.T, db *sql.DB) *service.AdvisorService {
	t.Helper()

	advisorRepo := repository.NewAdvisorRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)

	return service.NewAdvisorService(advisorRepo, categoryRepo)
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// MakeTag generates a unique account tag for testing. Tags are unique
// case-insensitively, so every generated tag gets a random suffix.
//
// Example usage:
//
//	tag := testutil.MakeTag("checking")
//	// Returns: "checking-A1B2C3"
func MakeTag(base string) string {
	if base == "" {
		base = "acct"
	}
	return base + "-" + randomAlphanumeric(6)
}

// MakeAccountName generates a unique account name for testing.
//
// Example usage:
//
//	name := testutil.MakeAccountName("Checking")
//	// Returns: "Checking ABC123"
func MakeAccountName(base string) string {
	if base == "" {
		base = "Account"
	}
	return base + " " + randomAlphanumeric(6)
}

// MakeCategoryName generates a unique category name for testing.
//
// Example usage:
//
//	name := testutil.MakeCategoryName("Groceries")
//	// Returns: "Groceries XYZ789"
func MakeCategoryName(base string) string {
	if base == "" {
		base = "Category"
	}
	return base + " " + randomAlphanumeric(6)
}

// Date returns a time.Time at midnight UTC for the given day, matching how
// transaction dates round-trip through the store.
//
// Example usage:
//
//	date := testutil.Date(2026, 3, 15)
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		//nolint:gosec // G404: Using math/rand for test data generation is acceptable
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}

// Common test constants

var (
	// CommonCurrencies contains frequently used currency codes
	CommonCurrencies = []string{"USD", "EUR", "GBP", "JPY", "CAD", "CHF", "AUD"}
)

// RandomCurrency returns a random currency from CommonCurrencies.
func RandomCurrency() string {
	//nolint:gosec // G404: Using math/rand for test data generation is acceptable
	return CommonCurrencies[rand.Intn(len(CommonCurrencies))]
}
