package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// Tx bundles repositories bound to one open database transaction. Everything
// done through these repositories commits or rolls back together.
type Tx struct {
	Transactions *TransactionRepository
	Accounts     *AccountRepository
	Categories   *CategoryRepository
}

// UnitOfWork runs multi-step store mutations atomically. Split operations
// issue several sequential writes; wrapping them here means a failure on any
// step rolls back the steps already applied instead of leaving orphaned
// parents or missing children behind.
type UnitOfWork struct {
	db *sql.DB
}

// NewUnitOfWork creates a UnitOfWork over the given database connection.
func NewUnitOfWork(db *sql.DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

// Execute begins a transaction, hands fn repositories bound to it, and
// commits when fn returns nil. Any error from fn (or from commit) rolls the
// whole unit back and is returned to the caller.
func (u *UnitOfWork) Execute(ctx context.Context, fn func(tx *Tx) error) error {
	sqlTx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return storeError("begin transaction", err)
	}

	tx := &Tx{
		Transactions: NewTransactionRepository(sqlTx),
		Accounts:     NewAccountRepository(sqlTx),
		Categories:   NewCategoryRepository(sqlTx),
	}

	if err := fn(tx); err != nil {
		if rbErr := sqlTx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback also failed: %v)", err, rbErr)
		}
		return err
	}

	if err := sqlTx.Commit(); err != nil {
		return storeError("commit transaction", err)
	}

	return nil
}
