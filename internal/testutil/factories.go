package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/jmolenaar/Expense-Ledger-Backend/internal/model"
)

// AccountBuilder provides a fluent interface for creating test accounts.
//
// Example usage:
//
//	// Simple creation with defaults
//	account := testutil.NewAccount().Build(t, db)
//
//	// Customized account
//	account := testutil.NewAccount().
//	    WithName("Joint Checking").
//	    WithInitialBalance(1500).
//	    Default().
//	    Build(t, db)
type AccountBuilder struct {
	ID             string
	Name           string
	Tag            string
	InitialBalance float64
	IsDefault      bool
	AccountType    string
	Currency       string
}

// NewAccount creates an AccountBuilder with sensible defaults.
func NewAccount() *AccountBuilder {
	return &AccountBuilder{
		ID:             MakeID(),
		Name:           MakeAccountName("Test Account"),
		Tag:            MakeTag("acct"),
		InitialBalance: 0,
		IsDefault:      false,
		AccountType:    model.AccountTypeChecking,
		Currency:       "EUR",
	}
}

// WithID sets a custom ID.
func (b *AccountBuilder) WithID(id string) *AccountBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *AccountBuilder) WithName(name string) *AccountBuilder {
	b.Name = name
	return b
}

// WithTag sets a custom tag.
func (b *AccountBuilder) WithTag(tag string) *AccountBuilder {
	b.Tag = tag
	return b
}

// WithInitialBalance sets the initial balance.
func (b *AccountBuilder) WithInitialBalance(balance float64) *AccountBuilder {
	b.InitialBalance = balance
	return b
}

// WithAccountType sets the account type.
func (b *AccountBuilder) WithAccountType(accountType string) *AccountBuilder {
	b.AccountType = accountType
	return b
}

// WithCurrency sets the currency.
func (b *AccountBuilder) WithCurrency(currency string) *AccountBuilder {
	b.Currency = currency
	return b
}

// Default marks the account as the default account.
func (b *AccountBuilder) Default() *AccountBuilder {
	b.IsDefault = true
	return b
}

// Build creates the account in the database and returns it.
func (b *AccountBuilder) Build(t *testing.T, db *sql.DB) model.Account {
	t.Helper()

	query := `
		INSERT INTO account (id, name, tag, initial_balance, is_default, account_type, currency)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.Name, b.Tag, b.InitialBalance, b.IsDefault, b.AccountType, b.Currency)
	if err != nil {
		t.Fatalf("Failed to create test account: %v", err)
	}

	return model.Account{
		ID:             b.ID,
		Name:           b.Name,
		Tag:            b.Tag,
		InitialBalance: b.InitialBalance,
		Balance:        b.InitialBalance,
		IsDefault:      b.IsDefault,
		AccountType:    b.AccountType,
		Currency:       b.Currency,
	}
}

// Convenience functions

// CreateAccount creates an account with the given name and default values.
//
// Example usage:
//
//	account := testutil.CreateAccount(t, db, "Checking")
func CreateAccount(t *testing.T, db *sql.DB, name string) model.Account {
	t.Helper()
	return NewAccount().WithName(name).Build(t, db)
}

// CreateAccounts creates multiple accounts with unique names and tags.
//
// Example usage:
//
//	accounts := testutil.CreateAccounts(t, db, 3)
func CreateAccounts(t *testing.T, db *sql.DB, count int) []model.Account {
	t.Helper()

	accounts := make([]model.Account, count)
	for i := 0; i < count; i++ {
		accounts[i] = NewAccount().Build(t, db)
	}
	return accounts
}

// CreateDefaultAccount creates an account marked as the default.
func CreateDefaultAccount(t *testing.T, db *sql.DB, name string) model.Account {
	t.Helper()
	return NewAccount().WithName(name).Default().Build(t, db)
}

// CategoryBuilder provides a fluent interface for creating test categories.
//
// Example usage:
//
//	category := testutil.NewCategory().
//	    WithName("Groceries").
//	    WithColorHex("#33AA55").
//	    Build(t, db)
type CategoryBuilder struct {
	ID       string
	Name     string
	Icon     string
	ColorHex string
}

// NewCategory creates a CategoryBuilder with sensible defaults.
func NewCategory() *CategoryBuilder {
	return &CategoryBuilder{
		ID:       MakeID(),
		Name:     MakeCategoryName("Test Category"),
		Icon:     "tag",
		ColorHex: "#4A90D9",
	}
}

// WithID sets a custom ID.
func (b *CategoryBuilder) WithID(id string) *CategoryBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *CategoryBuilder) WithName(name string) *CategoryBuilder {
	b.Name = name
	return b
}

// WithIcon sets the icon.
func (b *CategoryBuilder) WithIcon(icon string) *CategoryBuilder {
	b.Icon = icon
	return b
}

// WithColorHex sets the display color.
func (b *CategoryBuilder) WithColorHex(colorHex string) *CategoryBuilder {
	b.ColorHex = colorHex
	return b
}

// Build creates the category in the database and returns it.
func (b *CategoryBuilder) Build(t *testing.T, db *sql.DB) model.Category {
	t.Helper()

	query := `
		INSERT INTO category (id, name, icon, color_hex)
		VALUES (?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.Name, b.Icon, b.ColorHex)
	if err != nil {
		t.Fatalf("Failed to create test category: %v", err)
	}

	return model.Category{
		ID:       b.ID,
		Name:     b.Name,
		Icon:     b.Icon,
		ColorHex: b.ColorHex,
	}
}

// CreateCategory creates a category with the given name and default values.
func CreateCategory(t *testing.T, db *sql.DB, name string) model.Category {
	t.Helper()
	return NewCategory().WithName(name).Build(t, db)
}

// CreateCategories creates multiple categories with unique names.
func CreateCategories(t *testing.T, db *sql.DB, count int) []model.Category {
	t.Helper()

	categories := make([]model.Category, count)
	for i := 0; i < count; i++ {
		categories[i] = NewCategory().Build(t, db)
	}
	return categories
}

// TransactionBuilder provides a fluent interface for creating transactions.
//
// Example usage:
//
//	tx := testutil.NewTransaction().
//	    WithAmount(42.50).
//	    WithCategory(category.ID).
//	    WithMerchant("Corner Store").
//	    Build(t, db)
type TransactionBuilder struct {
	ID                  string
	Date                time.Time
	Type                string
	Amount              float64
	CategoryID          string
	Description         string
	Merchant            string
	FromAccountID       string
	ToAccountID         string
	ParentTransactionID string
	CreatedAt           time.Time
}

// NewTransaction creates a TransactionBuilder with defaults: an expense of
// 10.00 dated today, no category and no accounts.
func NewTransaction() *TransactionBuilder {
	return &TransactionBuilder{
		ID:          MakeID(),
		Date:        time.Now(),
		Type:        model.TypeExpense,
		Amount:      10.0,
		Description: "Test transaction",
		CreatedAt:   time.Now(),
	}
}

// WithID sets a custom ID.
func (b *TransactionBuilder) WithID(id string) *TransactionBuilder {
	b.ID = id
	return b
}

// WithDate sets the transaction date.
func (b *TransactionBuilder) WithDate(date time.Time) *TransactionBuilder {
	b.Date = date
	return b
}

// WithType sets the transaction type.
func (b *TransactionBuilder) WithType(txType string) *TransactionBuilder {
	b.Type = txType
	return b
}

// WithAmount sets the amount.
func (b *TransactionBuilder) WithAmount(amount float64) *TransactionBuilder {
	b.Amount = amount
	return b
}

// WithCategory sets the category ID.
func (b *TransactionBuilder) WithCategory(categoryID string) *TransactionBuilder {
	b.CategoryID = categoryID
	return b
}

// WithDescription sets the description.
func (b *TransactionBuilder) WithDescription(description string) *TransactionBuilder {
	b.Description = description
	return b
}

// WithMerchant sets the merchant.
func (b *TransactionBuilder) WithMerchant(merchant string) *TransactionBuilder {
	b.Merchant = merchant
	return b
}

// WithFromAccount sets the source account.
func (b *TransactionBuilder) WithFromAccount(accountID string) *TransactionBuilder {
	b.FromAccountID = accountID
	return b
}

// WithToAccount sets the destination account.
func (b *TransactionBuilder) WithToAccount(accountID string) *TransactionBuilder {
	b.ToAccountID = accountID
	return b
}

// WithParent marks the transaction as a child of a split parent.
func (b *TransactionBuilder) WithParent(parentID string) *TransactionBuilder {
	b.ParentTransactionID = parentID
	return b
}

// WithCreatedAt sets the creation timestamp. Child ordering within a split
// follows created_at, so tests that care about order set this explicitly.
func (b *TransactionBuilder) WithCreatedAt(createdAt time.Time) *TransactionBuilder {
	b.CreatedAt = createdAt
	return b
}

// Build creates the transaction in the database and returns it.
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) model.Transaction {
	t.Helper()

	query := `
		INSERT INTO "transaction" (id, date, type, amount, category_id, description,
		                           merchant, from_account_id, to_account_id,
		                           parent_transaction_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		b.ID,
		b.Date.Format("2006-01-02"),
		b.Type,
		b.Amount,
		nullableString(b.CategoryID),
		b.Description,
		nullableString(b.Merchant),
		nullableString(b.FromAccountID),
		nullableString(b.ToAccountID),
		nullableString(b.ParentTransactionID),
		b.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		t.Fatalf("Failed to create transaction: %v", err)
	}

	return model.Transaction{
		ID:                  b.ID,
		Date:                b.Date,
		Type:                b.Type,
		Amount:              b.Amount,
		CategoryID:          b.CategoryID,
		Description:         b.Description,
		Merchant:            b.Merchant,
		FromAccountID:       b.FromAccountID,
		ToAccountID:         b.ToAccountID,
		ParentTransactionID: b.ParentTransactionID,
		CreatedAt:           b.CreatedAt,
	}
}

// CreateExpense creates an expense transaction with the given amount and category.
//
// Example usage:
//
//	tx := testutil.CreateExpense(t, db, 25.00, category.ID)
func CreateExpense(t *testing.T, db *sql.DB, amount float64, categoryID string) model.Transaction {
	t.Helper()
	return NewTransaction().WithAmount(amount).WithCategory(categoryID).Build(t, db)
}

// CreateIncome creates an income transaction with the given amount.
func CreateIncome(t *testing.T, db *sql.DB, amount float64, toAccountID string) model.Transaction {
	t.Helper()
	return NewTransaction().
		WithType(model.TypeIncome).
		WithAmount(amount).
		WithToAccount(toAccountID).
		Build(t, db)
}

// CreateSplitParent creates a split parent with children carrying the given
// amounts, all in the given category. The parent follows the placeholder
// convention: no category and a zero amount.
//
// Example usage:
//
//	parent := testutil.CreateSplitParent(t, db, categoryID, 30.00, 20.00)
func CreateSplitParent(t *testing.T, db *sql.DB, categoryID string, amounts ...float64) model.Transaction {
	t.Helper()

	parent := NewTransaction().
		WithAmount(0).
		WithDescription("Split parent").
		Build(t, db)

	base := time.Now()
	for i, amount := range amounts {
		child := NewTransaction().
			WithAmount(amount).
			WithCategory(categoryID).
			WithParent(parent.ID).
			WithDate(parent.Date).
			WithCreatedAt(base.Add(time.Duration(i) * time.Millisecond)).
			Build(t, db)
		parent.Children = append(parent.Children, child)
	}

	return parent
}

// AdvisorKeywordBuilder provides a fluent interface for creating learned
// advisor keywords.
type AdvisorKeywordBuilder struct {
	ID         string
	Keyword    string
	CategoryID string
	Hits       int
}

// NewAdvisorKeyword creates an AdvisorKeywordBuilder.
func NewAdvisorKeyword(keyword, categoryID string) *AdvisorKeywordBuilder {
	return &AdvisorKeywordBuilder{
		ID:         MakeID(),
		Keyword:    keyword,
		CategoryID: categoryID,
		Hits:       1,
	}
}

// WithHits sets the hit counter.
func (b *AdvisorKeywordBuilder) WithHits(hits int) *AdvisorKeywordBuilder {
	b.Hits = hits
	return b
}

// Build creates the advisor keyword in the database and returns it.
func (b *AdvisorKeywordBuilder) Build(t *testing.T, db *sql.DB) model.AdvisorKeyword {
	t.Helper()

	query := `
		INSERT INTO advisor_keyword (id, keyword, category_id, hits)
		VALUES (?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.Keyword, b.CategoryID, b.Hits)
	if err != nil {
		t.Fatalf("Failed to create advisor keyword: %v", err)
	}

	return model.AdvisorKeyword{
		ID:         b.ID,
		Keyword:    b.Keyword,
		CategoryID: b.CategoryID,
		Hits:       b.Hits,
	}
}

// nullableString maps the empty string to SQL NULL.
func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
