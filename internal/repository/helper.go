package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/jmolenaar/Expense-Ledger-Backend/internal/apperrors"
)

// DBTX is the subset of database/sql shared by *sql.DB and *sql.Tx.
// Repositories run against either, which is what lets a UnitOfWork bind the
// same repository code to an open transaction.
type DBTX interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// ParseTime parses a date string in "2006-01-02", RFC3339, or SQLite
// CURRENT_TIMESTAMP ("2006-01-02 15:04:05") format.
func ParseTime(str string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02 15:04:05"} {
		if returnTime, err := time.Parse(layout, str); err == nil {
			return returnTime.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("failed to parse date: %q", str)
}

// storeError classifies a low-level database failure so callers can match
// on the store sentinels without depending on driver error types. Busy and
// locked conditions surface as apperrors.ErrStoreConflict; anything else is
// apperrors.ErrStoreIO.
func storeError(op string, err error) error {
	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
			return fmt.Errorf("%w: failed to %s: %v", apperrors.ErrStoreConflict, op, err)
		}
	}
	return fmt.Errorf("%w: failed to %s: %v", apperrors.ErrStoreIO, op, err)
}
