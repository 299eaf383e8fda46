package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmolenaar/Expense-Ledger-Backend/internal/apperrors"
	"github.com/jmolenaar/Expense-Ledger-Backend/internal/model"
)

// TransactionRepository provides data access methods for the transaction table.
// Split children are stored as ordinary rows referencing their parent through
// parent_transaction_id; read methods reattach them to the parent so callers
// always see a fully assembled Transaction.
type TransactionRepository struct {
	db DBTX
}

// NewTransactionRepository creates a new TransactionRepository with the provided database handle.
func NewTransactionRepository(db DBTX) *TransactionRepository {
	return &TransactionRepository{db: db}
}

const transactionColumns = `
	id, date, type, amount, category_id, description, merchant,
	from_account_id, to_account_id, parent_transaction_id, created_at
`

// GetAll retrieves every transaction, with split children attached to their
// parents. Only top-level transactions (plain, split parents, standalone
// splits) appear in the returned slice; children are reachable through their
// parent's Children field.
//
// Rows are ordered by date then created_at ascending, so children keep the
// order they were created in.
func (s *TransactionRepository) GetAll() ([]model.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM "transaction"
		ORDER BY date ASC, created_at ASC
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, storeError("query transaction table", err)
	}
	defer rows.Close()

	all, err := scanTransactions(rows)
	if err != nil {
		return nil, err
	}

	return assembleTree(all), nil
}

// GetByID retrieves a single transaction by its ID, with children attached
// when it is a split parent. Returns apperrors.ErrTransactionNotFound when
// no row exists.
func (s *TransactionRepository) GetByID(id string) (model.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM "transaction"
		WHERE id = ?
	`

	row := s.db.QueryRow(query, id)
	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Transaction{}, apperrors.ErrTransactionNotFound
	}
	if err != nil {
		return model.Transaction{}, err
	}

	children, err := s.GetChildren(id)
	if err != nil {
		return model.Transaction{}, err
	}
	t.Children = children

	return t, nil
}

// GetChildren retrieves the split children of the given parent transaction,
// ordered by creation time. Returns an empty slice for a plain transaction.
func (s *TransactionRepository) GetChildren(parentID string) ([]model.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM "transaction"
		WHERE parent_transaction_id = ?
		ORDER BY created_at ASC, id ASC
	`

	rows, err := s.db.Query(query, parentID)
	if err != nil {
		return nil, storeError("query split children", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// Insert persists a new transaction row.
func (s *TransactionRepository) Insert(ctx context.Context, t *model.Transaction) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	query := `
		INSERT INTO "transaction"
			(id, date, type, amount, category_id, description, merchant,
			 from_account_id, to_account_id, parent_transaction_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.Exec(query,
		t.ID,
		t.Date.Format("2006-01-02"),
		t.Type,
		t.Amount,
		nullable(t.CategoryID),
		t.Description,
		nullable(t.Merchant),
		nullable(t.FromAccountID),
		nullable(t.ToAccountID),
		nullable(t.ParentTransactionID),
		t.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return storeError("insert transaction", err)
	}

	return nil
}

// Update rewrites all mutable columns of an existing transaction row.
// Returns apperrors.ErrTransactionNotFound when the row does not exist.
func (s *TransactionRepository) Update(ctx context.Context, t *model.Transaction) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	query := `
		UPDATE "transaction"
		SET date = ?, type = ?, amount = ?, category_id = ?, description = ?,
			merchant = ?, from_account_id = ?, to_account_id = ?,
			parent_transaction_id = ?
		WHERE id = ?
	`

	result, err := s.db.Exec(query,
		t.Date.Format("2006-01-02"),
		t.Type,
		t.Amount,
		nullable(t.CategoryID),
		t.Description,
		nullable(t.Merchant),
		nullable(t.FromAccountID),
		nullable(t.ToAccountID),
		nullable(t.ParentTransactionID),
		t.ID,
	)
	if err != nil {
		return storeError("update transaction", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return storeError("read update result", err)
	}
	if affected == 0 {
		return apperrors.ErrTransactionNotFound
	}

	return nil
}

// Delete removes a transaction row. Split children cascade at the schema
// level, so deleting a parent removes its children too.
// Returns apperrors.ErrTransactionNotFound when the row does not exist.
func (s *TransactionRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	result, err := s.db.Exec(`DELETE FROM "transaction" WHERE id = ?`, id)
	if err != nil {
		return storeError("delete transaction", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return storeError("read delete result", err)
	}
	if affected == 0 {
		return apperrors.ErrTransactionNotFound
	}

	return nil
}

// DeleteChildren removes all split children of the given parent.
func (s *TransactionRepository) DeleteChildren(ctx context.Context, parentID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := s.db.Exec(`DELETE FROM "transaction" WHERE parent_transaction_id = ?`, parentID)
	if err != nil {
		return storeError("delete split children", err)
	}

	return nil
}

// ClearParent detaches all children of the given parent, promoting them to
// standalone transactions.
func (s *TransactionRepository) ClearParent(ctx context.Context, parentID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	query := `UPDATE "transaction" SET parent_transaction_id = NULL WHERE parent_transaction_id = ?`
	if _, err := s.db.Exec(query, parentID); err != nil {
		return storeError("clear parent reference", err)
	}

	return nil
}

// CountByAccount returns how many transaction rows (including split
// children) reference the given account as source or destination.
func (s *TransactionRepository) CountByAccount(accountID string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM "transaction"
		WHERE from_account_id = ? OR to_account_id = ?
	`

	var count int
	if err := s.db.QueryRow(query, accountID, accountID).Scan(&count); err != nil {
		return 0, storeError("count transactions by account", err)
	}

	return count, nil
}

// SetCategory updates only the category of a transaction row.
// Returns apperrors.ErrTransactionNotFound when the row does not exist.
func (s *TransactionRepository) SetCategory(ctx context.Context, id, categoryID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	result, err := s.db.Exec(`UPDATE "transaction" SET category_id = ? WHERE id = ?`, nullable(categoryID), id)
	if err != nil {
		return storeError("set transaction category", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return storeError("read update result", err)
	}
	if affected == 0 {
		return apperrors.ErrTransactionNotFound
	}

	return nil
}

// rowScanner covers *sql.Row and *sql.Rows for the shared scan helper.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (model.Transaction, error) {
	var t model.Transaction
	var dateStr, createdAtStr string
	var categoryID, merchant, fromAccount, toAccount, parentID sql.NullString

	err := row.Scan(
		&t.ID,
		&dateStr,
		&t.Type,
		&t.Amount,
		&categoryID,
		&t.Description,
		&merchant,
		&fromAccount,
		&toAccount,
		&parentID,
		&createdAtStr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Transaction{}, err
	}
	if err != nil {
		return model.Transaction{}, storeError("scan transaction row", err)
	}

	t.Date, err = ParseTime(dateStr)
	if err != nil || t.Date.IsZero() {
		return model.Transaction{}, storeError("parse transaction date", err)
	}

	t.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Transaction{}, storeError("parse transaction created_at", err)
	}

	t.CategoryID = categoryID.String
	t.Merchant = merchant.String
	t.FromAccountID = fromAccount.String
	t.ToAccountID = toAccount.String
	t.ParentTransactionID = parentID.String

	return t, nil
}

func scanTransactions(rows *sql.Rows) ([]model.Transaction, error) {
	transactions := []model.Transaction{}

	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}

	if err := rows.Err(); err != nil {
		return nil, storeError("iterate transaction table", err)
	}

	return transactions, nil
}

// assembleTree attaches child rows to their parents and returns only
// top-level transactions. A child whose parent row is missing (should not
// happen with foreign keys enforced) is kept as top-level rather than lost.
func assembleTree(all []model.Transaction) []model.Transaction {
	byID := make(map[string]*model.Transaction, len(all))
	topLevel := make([]*model.Transaction, 0, len(all))

	for i := range all {
		t := &all[i]
		byID[t.ID] = t
		if t.ParentTransactionID == "" {
			topLevel = append(topLevel, t)
		}
	}

	for i := range all {
		t := &all[i]
		if t.ParentTransactionID == "" {
			continue
		}
		parent, ok := byID[t.ParentTransactionID]
		if !ok {
			topLevel = append(topLevel, t)
			continue
		}
		parent.Children = append(parent.Children, *t)
	}

	result := make([]model.Transaction, 0, len(topLevel))
	for _, t := range topLevel {
		result = append(result, *t)
	}

	return result
}

// nullable maps an empty string to NULL for optional columns.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
