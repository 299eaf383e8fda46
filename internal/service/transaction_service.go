package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmolenaar/Expense-Ledger-Backend/internal/apperrors"
	"github.com/jmolenaar/Expense-Ledger-Backend/internal/model"
	"github.com/jmolenaar/Expense-Ledger-Backend/internal/repository"
)

// TransactionService handles transaction CRUD and bulk operations. Every
// mutation invalidates the analytics engine so derived views catch up on the
// next debounce cycle.
type TransactionService struct {
	transactionRepo *repository.TransactionRepository
	analytics       *AnalyticsService
}

// NewTransactionService creates a new TransactionService with the provided dependencies.
func NewTransactionService(
	transactionRepo *repository.TransactionRepository,
	analytics *AnalyticsService,
) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		analytics:       analytics,
	}
}

// GetAllTransactions retrieves every transaction with split children
// attached to their parents.
func (s *TransactionService) GetAllTransactions() ([]model.Transaction, error) {
	return s.transactionRepo.GetAll()
}

// GetTransaction retrieves a single transaction by its ID.
func (s *TransactionService) GetTransaction(transactionID string) (model.Transaction, error) {
	return s.transactionRepo.GetByID(transactionID)
}

// CreateTransaction persists a new plain transaction.
func (s *TransactionService) CreateTransaction(ctx context.Context, t model.Transaction) (model.Transaction, error) {
	t.ID = uuid.New().String()
	t.CreatedAt = time.Now().UTC()

	if err := s.transactionRepo.Insert(ctx, &t); err != nil {
		return model.Transaction{}, err
	}

	s.analytics.Invalidate()
	return t, nil
}

// UpdateTransaction rewrites an existing transaction's mutable fields.
func (s *TransactionService) UpdateTransaction(ctx context.Context, t model.Transaction) (model.Transaction, error) {
	existing, err := s.transactionRepo.GetByID(t.ID)
	if err != nil {
		return model.Transaction{}, err
	}

	t.ParentTransactionID = existing.ParentTransactionID
	t.CreatedAt = existing.CreatedAt

	if err := s.transactionRepo.Update(ctx, &t); err != nil {
		return model.Transaction{}, err
	}

	s.analytics.Invalidate()
	return t, nil
}

// DeleteTransaction removes a transaction. Split children cascade with
// their parent at the store level.
func (s *TransactionService) DeleteTransaction(ctx context.Context, transactionID string) error {
	if err := s.transactionRepo.Delete(ctx, transactionID); err != nil {
		return err
	}

	s.analytics.Invalidate()
	return nil
}

// BulkDelete removes the given transactions one by one. Bulk operations are
// not transactional: on failure or cancellation, whatever succeeded stays
// applied and the returned PartialBatchError carries the completed count.
func (s *TransactionService) BulkDelete(ctx context.Context, ids []string) (int, error) {
	completed := 0
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return completed, &apperrors.PartialBatchError{Completed: completed, Total: len(ids), Err: err}
		}
		if err := s.transactionRepo.Delete(ctx, id); err != nil {
			s.analytics.Invalidate()
			return completed, &apperrors.PartialBatchError{Completed: completed, Total: len(ids), Err: err}
		}
		completed++
	}

	s.analytics.Invalidate()
	return completed, nil
}

// BulkCategorize assigns the given category to each transaction in turn,
// with the same partial-failure semantics as BulkDelete.
func (s *TransactionService) BulkCategorize(ctx context.Context, ids []string, categoryID string) (int, error) {
	completed := 0
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return completed, &apperrors.PartialBatchError{Completed: completed, Total: len(ids), Err: err}
		}
		if err := s.transactionRepo.SetCategory(ctx, id, categoryID); err != nil {
			s.analytics.Invalidate()
			return completed, &apperrors.PartialBatchError{Completed: completed, Total: len(ids), Err: err}
		}
		completed++
	}

	s.analytics.Invalidate()
	return completed, nil
}
