package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmolenaar/Expense-Ledger-Backend/internal/apperrors"
	"github.com/jmolenaar/Expense-Ledger-Backend/internal/model"
)

// CategoryRepository provides data access methods for the category table.
type CategoryRepository struct {
	db DBTX
}

// NewCategoryRepository creates a new CategoryRepository with the provided database handle.
func NewCategoryRepository(db DBTX) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// GetAll retrieves every category ordered by name.
func (s *CategoryRepository) GetAll() ([]model.Category, error) {
	rows, err := s.db.Query(`SELECT id, name, icon, color_hex FROM category ORDER BY name ASC`)
	if err != nil {
		return nil, storeError("query category table", err)
	}
	defer rows.Close()

	categories := []model.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, storeError("iterate category table", err)
	}

	return categories, nil
}

// GetByID retrieves a single category. Returns apperrors.ErrCategoryNotFound
// when no row exists.
func (s *CategoryRepository) GetByID(id string) (model.Category, error) {
	row := s.db.QueryRow(`SELECT id, name, icon, color_hex FROM category WHERE id = ?`, id)

	c, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Category{}, apperrors.ErrCategoryNotFound
	}
	if err != nil {
		return model.Category{}, err
	}

	return c, nil
}

// Insert persists a new category row.
func (s *CategoryRepository) Insert(ctx context.Context, c *model.Category) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	query := `INSERT INTO category (id, name, icon, color_hex) VALUES (?, ?, ?, ?)`
	if _, err := s.db.Exec(query, c.ID, c.Name, nullable(c.Icon), nullable(c.ColorHex)); err != nil {
		return storeError("insert category", err)
	}

	return nil
}

// Update rewrites an existing category row.
// Returns apperrors.ErrCategoryNotFound when the row does not exist.
func (s *CategoryRepository) Update(ctx context.Context, c *model.Category) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	query := `UPDATE category SET name = ?, icon = ?, color_hex = ? WHERE id = ?`
	result, err := s.db.Exec(query, c.Name, nullable(c.Icon), nullable(c.ColorHex), c.ID)
	if err != nil {
		return storeError("update category", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return storeError("read update result", err)
	}
	if affected == 0 {
		return apperrors.ErrCategoryNotFound
	}

	return nil
}

// Delete removes a category row. Transactions referencing it fall back to
// NULL (uncategorized) through the schema's ON DELETE SET NULL.
func (s *CategoryRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	result, err := s.db.Exec(`DELETE FROM category WHERE id = ?`, id)
	if err != nil {
		return storeError("delete category", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return storeError("read delete result", err)
	}
	if affected == 0 {
		return apperrors.ErrCategoryNotFound
	}

	return nil
}

func scanCategory(row rowScanner) (model.Category, error) {
	var c model.Category
	var icon, colorHex sql.NullString

	err := row.Scan(&c.ID, &c.Name, &icon, &colorHex)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Category{}, err
	}
	if err != nil {
		return model.Category{}, storeError("scan category row", err)
	}

	c.Icon = icon.String
	c.ColorHex = colorHex.String

	return c, nil
}
