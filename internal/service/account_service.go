package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jmolenaar/Expense-Ledger-Backend/internal/apperrors"
	"github.com/jmolenaar/Expense-Ledger-Backend/internal/model"
	"github.com/jmolenaar/Expense-Ledger-Backend/internal/repository"
)

// AccountService handles account business logic. It owns the referential
// guards around deletion: the last remaining account can never be deleted,
// nor can an account still referenced by any transaction (split children
// included). Balances are always derived by the store, never written.
type AccountService struct {
	accountRepo     *repository.AccountRepository
	transactionRepo *repository.TransactionRepository
	uow             *repository.UnitOfWork
	analytics       *AnalyticsService
}

// NewAccountService creates a new AccountService with the provided dependencies.
func NewAccountService(
	accountRepo *repository.AccountRepository,
	transactionRepo *repository.TransactionRepository,
	uow *repository.UnitOfWork,
	analytics *AnalyticsService,
) *AccountService {
	return &AccountService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		uow:             uow,
		analytics:       analytics,
	}
}

// GetAllAccounts retrieves every account with its derived balance.
func (s *AccountService) GetAllAccounts() ([]model.Account, error) {
	return s.accountRepo.GetAll()
}

// GetAccount retrieves a single account with its derived balance.
func (s *AccountService) GetAccount(accountID string) (model.Account, error) {
	return s.accountRepo.GetByID(accountID)
}

// CreateAccount persists a new account. The tag must be unique
// case-insensitively; when the account is flagged default, any previous
// default is cleared in the same unit of work.
func (s *AccountService) CreateAccount(ctx context.Context, a model.Account) (model.Account, error) {
	a.ID = uuid.New().String()
	a.Tag = strings.TrimSpace(a.Tag)

	taken, err := s.accountRepo.TagExists(a.Tag, a.ID)
	if err != nil {
		return model.Account{}, err
	}
	if taken {
		return model.Account{}, apperrors.ErrDuplicateTag
	}

	err = s.uow.Execute(ctx, func(tx *repository.Tx) error {
		if a.IsDefault {
			if err := tx.Accounts.ClearDefault(ctx); err != nil {
				return err
			}
		}
		return tx.Accounts.Insert(ctx, &a)
	})
	if err != nil {
		return model.Account{}, err
	}

	a.Balance = a.InitialBalance
	return a, nil
}

// UpdateAccount rewrites an existing account's mutable fields, keeping the
// single-default and unique-tag invariants.
func (s *AccountService) UpdateAccount(ctx context.Context, a model.Account) (model.Account, error) {
	if _, err := s.accountRepo.GetByID(a.ID); err != nil {
		return model.Account{}, err
	}

	a.Tag = strings.TrimSpace(a.Tag)

	taken, err := s.accountRepo.TagExists(a.Tag, a.ID)
	if err != nil {
		return model.Account{}, err
	}
	if taken {
		return model.Account{}, apperrors.ErrDuplicateTag
	}

	err = s.uow.Execute(ctx, func(tx *repository.Tx) error {
		if a.IsDefault {
			if err := tx.Accounts.ClearDefault(ctx); err != nil {
				return err
			}
		}
		return tx.Accounts.Update(ctx, &a)
	})
	if err != nil {
		return model.Account{}, err
	}

	return s.accountRepo.GetByID(a.ID)
}

// SetDefaultAccount marks the given account as the default, clearing the
// flag everywhere else in the same unit of work.
func (s *AccountService) SetDefaultAccount(ctx context.Context, accountID string) (model.Account, error) {
	account, err := s.accountRepo.GetByID(accountID)
	if err != nil {
		return model.Account{}, err
	}

	err = s.uow.Execute(ctx, func(tx *repository.Tx) error {
		if err := tx.Accounts.ClearDefault(ctx); err != nil {
			return err
		}
		account.IsDefault = true
		return tx.Accounts.Update(ctx, &account)
	})
	if err != nil {
		return model.Account{}, err
	}

	return account, nil
}

// DeleteAccount removes an account after checking the referential guards:
// it must not be the last account, and no transaction (including split
// children) may reference it.
func (s *AccountService) DeleteAccount(ctx context.Context, accountID string) error {
	if _, err := s.accountRepo.GetByID(accountID); err != nil {
		return err
	}

	count, err := s.accountRepo.Count()
	if err != nil {
		return err
	}
	if count <= 1 {
		return apperrors.ErrCannotDeleteLastAccount
	}

	references, err := s.transactionRepo.CountByAccount(accountID)
	if err != nil {
		return err
	}
	if references > 0 {
		return apperrors.ErrAccountInUse
	}

	if err := s.accountRepo.Delete(ctx, accountID); err != nil {
		return err
	}

	s.analytics.Invalidate()
	return nil
}
