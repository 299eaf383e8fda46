package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmolenaar/Expense-Ledger-Backend/internal/model"
	"github.com/jmolenaar/Expense-Ledger-Backend/internal/repository"
)

// CategoryService handles category business logic. Deleting a category
// leaves its transactions uncategorized (the store clears the reference);
// the uncategorized sentinel exists only in aggregation output and is never
// persisted here.
type CategoryService struct {
	categoryRepo *repository.CategoryRepository
	analytics    *AnalyticsService
}

// NewCategoryService creates a new CategoryService with the provided dependencies.
func NewCategoryService(categoryRepo *repository.CategoryRepository, analytics *AnalyticsService) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		analytics:    analytics,
	}
}

// GetAllCategories retrieves every category.
func (s *CategoryService) GetAllCategories() ([]model.Category, error) {
	return s.categoryRepo.GetAll()
}

// GetCategory retrieves a single category by its ID.
func (s *CategoryService) GetCategory(categoryID string) (model.Category, error) {
	return s.categoryRepo.GetByID(categoryID)
}

// CreateCategory persists a new category.
func (s *CategoryService) CreateCategory(ctx context.Context, c model.Category) (model.Category, error) {
	c.ID = uuid.New().String()

	if err := s.categoryRepo.Insert(ctx, &c); err != nil {
		return model.Category{}, err
	}

	s.analytics.Invalidate()
	return c, nil
}

// UpdateCategory rewrites an existing category.
func (s *CategoryService) UpdateCategory(ctx context.Context, c model.Category) (model.Category, error) {
	if err := s.categoryRepo.Update(ctx, &c); err != nil {
		return model.Category{}, err
	}

	s.analytics.Invalidate()
	return c, nil
}

// DeleteCategory removes a category. Transactions that referenced it fall
// back to uncategorized.
func (s *CategoryService) DeleteCategory(ctx context.Context, categoryID string) error {
	if err := s.categoryRepo.Delete(ctx, categoryID); err != nil {
		return err
	}

	s.analytics.Invalidate()
	return nil
}
