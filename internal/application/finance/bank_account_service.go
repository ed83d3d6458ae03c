// Package finance implements the bank account, transaction, loan and check
// use cases.
package finance

import (
	"context"

	"github.com/google/uuid"

	"github.com/isletme/backend/internal/domain/finance"
)

// BankAccountService handles bank account operations
type BankAccountService struct {
	accountRepo finance.BankAccountRepository
}

// NewBankAccountService creates a new BankAccountService
func NewBankAccountService(accountRepo finance.BankAccountRepository) *BankAccountService {
	return &BankAccountService{accountRepo: accountRepo}
}

// Create opens a bank account with its starting balance
func (s *BankAccountService) Create(ctx context.Context, tenantID uuid.UUID, req BankAccountRequest) (*BankAccountResponse, error) {
	account, err := finance.NewBankAccount(tenantID, req.input())
	if err != nil {
		return nil, err
	}
	if req.CreatedBy != nil {
		account.SetCreatedBy(*req.CreatedBy)
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}
	response := ToBankAccountResponse(account)
	return &response, nil
}

// GetByID retrieves a bank account by ID
func (s *BankAccountService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*BankAccountResponse, error) {
	account, err := s.accountRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	response := ToBankAccountResponse(account)
	return &response, nil
}

// List lists bank accounts
func (s *BankAccountService) List(ctx context.Context, tenantID uuid.UUID, filter BankAccountListFilter) ([]BankAccountResponse, int64, error) {
	domainFilter := filter.Filter(map[string]string{"currency": filter.Currency})
	if filter.IsActive != "" {
		domainFilter.Filters["is_active"] = filter.IsActive == "true"
	}
	if filter.OrderBy == "" {
		domainFilter.OrderBy = "bank_name"
		domainFilter.OrderDir = "asc"
	}

	accounts, err := s.accountRepo.FindAll(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.accountRepo.Count(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToBankAccountResponses(accounts), total, nil
}

// Update replaces a bank account's fields, including a manual balance correction
func (s *BankAccountService) Update(ctx context.Context, tenantID, id uuid.UUID, req BankAccountRequest) (*BankAccountResponse, error) {
	account, err := s.accountRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := account.Update(req.input()); err != nil {
		return nil, err
	}
	if err := s.accountRepo.Update(ctx, account); err != nil {
		return nil, err
	}
	response := ToBankAccountResponse(account)
	return &response, nil
}

// Delete deletes a bank account
func (s *BankAccountService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.accountRepo.Delete(ctx, tenantID, id)
}
