package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jmolenaar/Expense-Ledger-Backend/internal/apperrors"
	"github.com/jmolenaar/Expense-Ledger-Backend/internal/model"
	"github.com/jmolenaar/Expense-Ledger-Backend/internal/repository"
)

// SplitTolerance is the absolute tolerance when checking that split amounts
// sum to the original transaction amount. Currency-agnostic.
const SplitTolerance = 0.01

// SplitService divides transactions into categorized child transactions and
// converts them back, while preserving the amount and referential
// invariants:
//
//   - a split parent carries no category and a zero placeholder amount
//   - children sum to the original amount within SplitTolerance
//   - every child references its parent through ParentTransactionID
//
// Each operation runs inside a single unit of work, so a store failure
// partway through rolls back every step already applied.
type SplitService struct {
	uow       *repository.UnitOfWork
	analytics *AnalyticsService
}

// NewSplitService creates a new SplitService with the provided dependencies.
func NewSplitService(uow *repository.UnitOfWork, analytics *AnalyticsService) *SplitService {
	return &SplitService{
		uow:       uow,
		analytics: analytics,
	}
}

// CreateSplit replaces a transaction with categorized splits.
//
// When retainParent is true the original becomes a placeholder parent
// (amount 0, no category, same description/date/accounts) with one child per
// split item; otherwise each split item becomes a standalone transaction and
// the original is simply gone.
//
// Validation runs before any store call: the splits must be non-empty, each
// must have a positive amount and a category, and their sum must equal the
// original's effective amount within SplitTolerance.
func (s *SplitService) CreateSplit(ctx context.Context, transactionID string, splits []model.SplitItem, retainParent bool) (model.Transaction, error) {
	var result model.Transaction

	err := s.uow.Execute(ctx, func(tx *repository.Tx) error {
		original, err := tx.Transactions.GetByID(transactionID)
		if err != nil {
			return err
		}

		if err := validateSplits(splits, original.EffectiveAmount()); err != nil {
			return err
		}

		if err := tx.Transactions.Delete(ctx, original.ID); err != nil {
			return err
		}

		result, err = s.materializeSplits(ctx, tx, &original, splits, retainParent)
		return err
	})
	if err != nil {
		return model.Transaction{}, err
	}

	s.analytics.Invalidate()
	return result, nil
}

// UpdateSplit replaces the children of an existing split parent with a new
// set of split items, re-validated against the parent's current effective
// amount. The parent's identity is preserved when retainParent is true;
// otherwise the parent is dissolved into standalone transactions.
func (s *SplitService) UpdateSplit(ctx context.Context, transactionID string, splits []model.SplitItem, retainParent bool) (model.Transaction, error) {
	var result model.Transaction

	err := s.uow.Execute(ctx, func(tx *repository.Tx) error {
		parent, err := tx.Transactions.GetByID(transactionID)
		if err != nil {
			return err
		}
		if !parent.IsSplitParent() {
			return apperrors.ErrNotSplitParent
		}

		if err := validateSplits(splits, parent.EffectiveAmount()); err != nil {
			return err
		}

		if err := tx.Transactions.DeleteChildren(ctx, parent.ID); err != nil {
			return err
		}
		if err := tx.Transactions.Delete(ctx, parent.ID); err != nil {
			return err
		}

		parent.Children = nil
		result, err = s.materializeSplits(ctx, tx, &parent, splits, retainParent)
		return err
	})
	if err != nil {
		return model.Transaction{}, err
	}

	s.analytics.Invalidate()
	return result, nil
}

// ConvertToRegular collapses a split parent back into a plain transaction:
// the children are deleted and the parent is rewritten with the given
// category and the sum of the deleted children's effective amounts.
func (s *SplitService) ConvertToRegular(ctx context.Context, transactionID, categoryID, description string) (model.Transaction, error) {
	if categoryID == "" {
		return model.Transaction{}, apperrors.ErrSplitItemMissingCategory
	}

	var result model.Transaction

	err := s.uow.Execute(ctx, func(tx *repository.Tx) error {
		parent, err := tx.Transactions.GetByID(transactionID)
		if err != nil {
			return err
		}
		if !parent.IsSplitParent() {
			return apperrors.ErrNotSplitParent
		}

		if _, err := tx.Categories.GetByID(categoryID); err != nil {
			return err
		}

		total := parent.EffectiveAmount()

		if err := tx.Transactions.DeleteChildren(ctx, parent.ID); err != nil {
			return err
		}

		parent.Children = nil
		parent.Amount = total
		parent.CategoryID = categoryID
		if description != "" {
			parent.Description = description
		}

		if err := tx.Transactions.Update(ctx, &parent); err != nil {
			return err
		}

		result = parent
		return nil
	})
	if err != nil {
		return model.Transaction{}, err
	}

	s.analytics.Invalidate()
	return result, nil
}

// DeleteSplit removes a split parent. With cascade the children go with it;
// without, the children are promoted to standalone transactions first and
// only the parent is deleted.
func (s *SplitService) DeleteSplit(ctx context.Context, transactionID string, cascade bool) error {
	err := s.uow.Execute(ctx, func(tx *repository.Tx) error {
		parent, err := tx.Transactions.GetByID(transactionID)
		if err != nil {
			return err
		}
		if !parent.IsSplitParent() {
			return apperrors.ErrNotSplitParent
		}

		if cascade {
			if err := tx.Transactions.DeleteChildren(ctx, parent.ID); err != nil {
				return err
			}
		} else {
			if err := tx.Transactions.ClearParent(ctx, parent.ID); err != nil {
				return err
			}
		}

		return tx.Transactions.Delete(ctx, parent.ID)
	})
	if err != nil {
		return err
	}

	s.analytics.Invalidate()
	return nil
}

// materializeSplits creates the new rows for a split: a placeholder parent
// plus children when retainParent is set, standalone transactions otherwise.
// Runs inside the caller's unit of work. The returned transaction is the
// parent (with children attached) or, without a parent, a synthetic view
// holding the standalone splits as Children for the caller's convenience.
func (s *SplitService) materializeSplits(ctx context.Context, tx *repository.Tx, original *model.Transaction, splits []model.SplitItem, retainParent bool) (model.Transaction, error) {
	now := time.Now().UTC()

	var parentID string
	var parent model.Transaction

	if retainParent {
		parent = model.Transaction{
			ID:            original.ID,
			Date:          original.Date,
			Type:          original.Type,
			Amount:        0,
			Description:   original.Description,
			Merchant:      original.Merchant,
			FromAccountID: original.FromAccountID,
			ToAccountID:   original.ToAccountID,
			CreatedAt:     now,
		}
		if err := tx.Transactions.Insert(ctx, &parent); err != nil {
			return model.Transaction{}, err
		}
		parentID = parent.ID
	}

	children := make([]model.Transaction, 0, len(splits))
	for i, item := range splits {
		child := model.Transaction{
			ID:                  uuid.New().String(),
			Date:                original.Date,
			Type:                original.Type,
			Amount:              item.Amount,
			CategoryID:          item.CategoryID,
			Description:         item.Description,
			Merchant:            item.Merchant,
			FromAccountID:       original.FromAccountID,
			ToAccountID:         original.ToAccountID,
			ParentTransactionID: parentID,
			// Stagger created_at so children keep their input order on read.
			CreatedAt: now.Add(time.Duration(i+1) * time.Millisecond),
		}
		if child.Description == "" {
			child.Description = original.Description
		}
		if err := tx.Transactions.Insert(ctx, &child); err != nil {
			return model.Transaction{}, err
		}
		children = append(children, child)
	}

	if retainParent {
		parent.Children = children
		return parent, nil
	}

	return model.Transaction{Children: children}, nil
}

// validateSplits checks every split precondition before any store mutation.
func validateSplits(splits []model.SplitItem, baseAmount float64) error {
	if len(splits) == 0 {
		return apperrors.ErrEmptySplit
	}

	var sum float64
	for _, item := range splits {
		if item.Amount <= 0 {
			return apperrors.ErrNonPositiveSplitAmount
		}
		if item.CategoryID == "" {
			return apperrors.ErrSplitItemMissingCategory
		}
		sum += item.Amount
	}

	if math.Abs(sum-baseAmount) > SplitTolerance {
		return fmt.Errorf("%w: items sum to %.2f, original is %.2f",
			apperrors.ErrUnbalancedSplit, sum, baseAmount)
	}

	return nil
}
