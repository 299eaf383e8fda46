package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmolenaar/Expense-Ledger-Backend/internal/model"
)

// AdvisorRepository stores keyword-to-category mappings learned from user
// corrections. Lookups are case-insensitive (COLLATE NOCASE on the keyword
// column).
type AdvisorRepository struct {
	db DBTX
}

// NewAdvisorRepository creates a new AdvisorRepository with the provided database handle.
func NewAdvisorRepository(db DBTX) *AdvisorRepository {
	return &AdvisorRepository{db: db}
}

// GetAll retrieves every learned keyword mapping, most-corrected first.
func (s *AdvisorRepository) GetAll() ([]model.AdvisorKeyword, error) {
	query := `SELECT id, keyword, category_id, hits FROM advisor_keyword ORDER BY hits DESC, keyword ASC`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, storeError("query advisor keyword table", err)
	}
	defer rows.Close()

	keywords := []model.AdvisorKeyword{}
	for rows.Next() {
		var k model.AdvisorKeyword
		if err := rows.Scan(&k.ID, &k.Keyword, &k.CategoryID, &k.Hits); err != nil {
			return nil, storeError("scan advisor keyword row", err)
		}
		keywords = append(keywords, k)
	}

	if err := rows.Err(); err != nil {
		return nil, storeError("iterate advisor keyword table", err)
	}

	return keywords, nil
}

// Upsert records a correction: a new keyword maps to the category, an
// existing keyword is repointed and its hit count bumped.
func (s *AdvisorRepository) Upsert(ctx context.Context, keyword, categoryID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	query := `
		INSERT INTO advisor_keyword (id, keyword, category_id, hits, updated_at)
		VALUES (?, ?, ?, 1, CURRENT_TIMESTAMP)
		ON CONFLICT(keyword) DO UPDATE SET
			category_id = excluded.category_id,
			hits = hits + 1,
			updated_at = CURRENT_TIMESTAMP
	`

	if _, err := s.db.Exec(query, uuid.New().String(), keyword, categoryID); err != nil {
		return storeError("upsert advisor keyword", err)
	}

	return nil
}
