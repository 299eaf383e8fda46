package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Each SQLite connection gets its own in-memory database; keep the pool
	// at a single connection so concurrent test goroutines share one schema.
	db.SetMaxOpenConns(1)

	// Test connection
	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	// Configure SQLite for testing
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	// Create schema
	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	// Cleanup when test ends
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the goose migrations.
func createTestSchema(db *sql.DB) error {
	schema := `
		-- Account table
		CREATE TABLE account (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			tag VARCHAR(30) NOT NULL COLLATE NOCASE UNIQUE,
			initial_balance FLOAT NOT NULL DEFAULT 0,
			is_default BOOLEAN NOT NULL DEFAULT FALSE,
			account_type VARCHAR(10) NOT NULL,
			currency VARCHAR(3) NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		-- Category table
		CREATE TABLE category (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			icon VARCHAR(50),
			color_hex VARCHAR(9)
		);

		-- Transaction table (quoted because transaction is a reserved keyword)
		CREATE TABLE "transaction" (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			date DATE NOT NULL,
			type VARCHAR(12) NOT NULL,
			amount FLOAT NOT NULL,
			category_id VARCHAR(36),
			description TEXT NOT NULL DEFAULT '',
			merchant VARCHAR(100),
			from_account_id VARCHAR(36),
			to_account_id VARCHAR(36),
			parent_transaction_id VARCHAR(36),
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(category_id) REFERENCES category(id) ON DELETE SET NULL,
			FOREIGN KEY(from_account_id) REFERENCES account(id),
			FOREIGN KEY(to_account_id) REFERENCES account(id),
			FOREIGN KEY(parent_transaction_id) REFERENCES "transaction"(id) ON DELETE CASCADE
		);

		-- Advisor learned keyword table
		CREATE TABLE advisor_keyword (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			keyword VARCHAR(100) NOT NULL COLLATE NOCASE UNIQUE,
			category_id VARCHAR(36) NOT NULL,
			hits INTEGER NOT NULL DEFAULT 1,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(category_id) REFERENCES category(id) ON DELETE CASCADE
		);

		-- Indexes for performance
		CREATE INDEX ix_transaction_date ON "transaction"(date);
		CREATE INDEX ix_transaction_type ON "transaction"(type);
		CREATE INDEX ix_transaction_category_id ON "transaction"(category_id);
		CREATE INDEX ix_transaction_from_account_id ON "transaction"(from_account_id);
		CREATE INDEX ix_transaction_to_account_id ON "transaction"(to_account_id);
		CREATE INDEX ix_transaction_parent_id ON "transaction"(parent_transaction_id);
	`

	_, err := db.Exec(schema)
	return err
}

// CleanDatabase truncates all tables in dependency order.
// Useful for reusing the same database across multiple tests.
func CleanDatabase(t *testing.T, db *sql.DB) {
	t.Helper()

	// Order matters: delete children before parents due to foreign keys
	tables := []string{
		"advisor_keyword",
		"transaction",
		"category",
		"account",
	}

	for _, table := range tables {
		query := "DELETE FROM " + table
		if _, err := db.Exec(query); err != nil {
			t.Fatalf("Failed to clean table %s: %v", table, err)
		}
	}
}

// CountRows returns the number of rows in a table.
// Useful for assertions in tests.
//
// Example usage:
//
//	count := testutil.CountRows(t, db, "account")
func CountRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()

	var count int
	query := "SELECT COUNT(*) FROM " + table
	err := db.QueryRow(query).Scan(&count)
	if err != nil {
		t.Fatalf("Failed to count rows in %s: %v", table, err)
	}

	return count
}

// AssertRowCount asserts that a table has the expected number of rows.
//
// Example usage:
//
//	testutil.AssertRowCount(t, db, "transaction", 3)
func AssertRowCount(t *testing.T, db *sql.DB, table string, expected int) {
	t.Helper()

	actual := CountRows(t, db, table)
	if actual != expected {
		t.Errorf("Expected %d rows in %s, got %d", expected, table, actual)
	}
}
