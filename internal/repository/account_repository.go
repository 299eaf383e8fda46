package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmolenaar/Expense-Ledger-Backend/internal/apperrors"
	"github.com/jmolenaar/Expense-Ledger-Backend/internal/model"
)

// AccountRepository provides data access methods for the account table.
//
// Balances are derived at read time: initial_balance plus incoming minus
// outgoing effective amounts over all transaction rows that reference the
// account. Split parents are excluded from the sums so their children are
// not double counted.
type AccountRepository struct {
	db DBTX
}

// NewAccountRepository creates a new AccountRepository with the provided database handle.
func NewAccountRepository(db DBTX) *AccountRepository {
	return &AccountRepository{db: db}
}

// balanceExpr computes the derived balance of account alias "a".
// Rows with split children contribute nothing; their children carry the
// amounts and the same account references.
const balanceExpr = `
	a.initial_balance
	+ COALESCE((
		SELECT SUM(t.amount) FROM "transaction" t
		WHERE t.to_account_id = a.id
		AND t.type IN ('income', 'transfer_in')
		AND NOT EXISTS (SELECT 1 FROM "transaction" c WHERE c.parent_transaction_id = t.id)
	), 0)
	- COALESCE((
		SELECT SUM(t.amount) FROM "transaction" t
		WHERE t.from_account_id = a.id
		AND t.type IN ('expense', 'transfer_out')
		AND NOT EXISTS (SELECT 1 FROM "transaction" c WHERE c.parent_transaction_id = t.id)
	), 0)
`

// GetAll retrieves every account with its derived balance, ordered by
// creation time.
func (s *AccountRepository) GetAll() ([]model.Account, error) {
	query := `
		SELECT a.id, a.name, a.tag, a.initial_balance, a.is_default,
			a.account_type, a.currency, a.created_at, ` + balanceExpr + ` AS balance
		FROM account a
		ORDER BY a.created_at ASC, a.id ASC
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, storeError("query account table", err)
	}
	defer rows.Close()

	accounts := []model.Account{}
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}

	if err := rows.Err(); err != nil {
		return nil, storeError("iterate account table", err)
	}

	return accounts, nil
}

// GetByID retrieves a single account with its derived balance.
// Returns apperrors.ErrAccountNotFound when no row exists.
func (s *AccountRepository) GetByID(id string) (model.Account, error) {
	query := `
		SELECT a.id, a.name, a.tag, a.initial_balance, a.is_default,
			a.account_type, a.currency, a.created_at, ` + balanceExpr + ` AS balance
		FROM account a
		WHERE a.id = ?
	`

	a, err := scanAccount(s.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Account{}, apperrors.ErrAccountNotFound
	}
	if err != nil {
		return model.Account{}, err
	}

	return a, nil
}

// Insert persists a new account row.
func (s *AccountRepository) Insert(ctx context.Context, a *model.Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	query := `
		INSERT INTO account (id, name, tag, initial_balance, is_default, account_type, currency)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.Exec(query, a.ID, a.Name, a.Tag, a.InitialBalance, a.IsDefault, a.AccountType, a.Currency)
	if err != nil {
		return storeError("insert account", err)
	}

	return nil
}

// Update rewrites the mutable columns of an existing account row.
// Returns apperrors.ErrAccountNotFound when the row does not exist.
func (s *AccountRepository) Update(ctx context.Context, a *model.Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	query := `
		UPDATE account
		SET name = ?, tag = ?, initial_balance = ?, is_default = ?, account_type = ?, currency = ?
		WHERE id = ?
	`

	result, err := s.db.Exec(query, a.Name, a.Tag, a.InitialBalance, a.IsDefault, a.AccountType, a.Currency, a.ID)
	if err != nil {
		return storeError("update account", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return storeError("read update result", err)
	}
	if affected == 0 {
		return apperrors.ErrAccountNotFound
	}

	return nil
}

// Delete removes an account row. Referential guards (last account, account
// in use) are enforced by the service layer before this is called.
func (s *AccountRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	result, err := s.db.Exec(`DELETE FROM account WHERE id = ?`, id)
	if err != nil {
		return storeError("delete account", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return storeError("read delete result", err)
	}
	if affected == 0 {
		return apperrors.ErrAccountNotFound
	}

	return nil
}

// Count returns the total number of accounts.
func (s *AccountRepository) Count() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM account`).Scan(&count); err != nil {
		return 0, storeError("count accounts", err)
	}
	return count, nil
}

// ClearDefault unsets the default flag on every account. Used before
// marking a new default so at most one account carries the flag.
func (s *AccountRepository) ClearDefault(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := s.db.Exec(`UPDATE account SET is_default = FALSE WHERE is_default = TRUE`); err != nil {
		return storeError("clear default account", err)
	}

	return nil
}

// TagExists reports whether another account already uses the given tag.
// The tag column is COLLATE NOCASE, so the match is case-insensitive.
func (s *AccountRepository) TagExists(tag, excludeID string) (bool, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM account WHERE tag = ? AND id != ?`, tag, excludeID).Scan(&count)
	if err != nil {
		return false, storeError("check account tag", err)
	}
	return count > 0, nil
}

func scanAccount(row rowScanner) (model.Account, error) {
	var a model.Account
	var createdAtStr string

	err := row.Scan(
		&a.ID,
		&a.Name,
		&a.Tag,
		&a.InitialBalance,
		&a.IsDefault,
		&a.AccountType,
		&a.Currency,
		&createdAtStr,
		&a.Balance,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Account{}, err
	}
	if err != nil {
		return model.Account{}, storeError("scan account row", err)
	}

	a.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Account{}, storeError("parse account created_at", err)
	}

	return a, nil
}
