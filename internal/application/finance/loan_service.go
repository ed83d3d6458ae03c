package finance

import (
	"context"

	"github.com/google/uuid"

	"github.com/isletme/backend/internal/domain/finance"
)

// LoanService handles bank loan operations
type LoanService struct {
	loanRepo finance.LoanRepository
}

// NewLoanService creates a new LoanService
func NewLoanService(loanRepo finance.LoanRepository) *LoanService {
	return &LoanService{loanRepo: loanRepo}
}

// Create records a loan. Monthly payment, remaining balance and end date
// are derived when left empty.
func (s *LoanService) Create(ctx context.Context, tenantID uuid.UUID, req LoanRequest) (*LoanResponse, error) {
	loan, err := finance.NewLoan(tenantID, req.input())
	if err != nil {
		return nil, err
	}
	if req.CreatedBy != nil {
		loan.SetCreatedBy(*req.CreatedBy)
	}
	if err := s.loanRepo.Create(ctx, loan); err != nil {
		return nil, err
	}
	response := ToLoanResponse(loan)
	return &response, nil
}

// GetByID retrieves a loan by ID
func (s *LoanService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*LoanResponse, error) {
	loan, err := s.loanRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	response := ToLoanResponse(loan)
	return &response, nil
}

// List lists loans, newest first by default
func (s *LoanService) List(ctx context.Context, tenantID uuid.UUID, filter LoanListFilter) ([]LoanResponse, int64, error) {
	domainFilter := filter.Filter(map[string]string{
		"status":    filter.Status,
		"bank_name": filter.BankName,
	})

	loans, err := s.loanRepo.FindAll(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.loanRepo.Count(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToLoanResponses(loans), total, nil
}

// Summary totals principal, remaining balance and installments of open loans
func (s *LoanService) Summary(ctx context.Context, tenantID uuid.UUID) (finance.LoanSummary, error) {
	loans, err := s.loanRepo.FindAllOrdered(ctx, tenantID)
	if err != nil {
		return finance.LoanSummary{}, err
	}
	return finance.SummarizeLoans(loans), nil
}

// Update replaces a loan's fields
func (s *LoanService) Update(ctx context.Context, tenantID, id uuid.UUID, req LoanRequest) (*LoanResponse, error) {
	loan, err := s.loanRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := loan.Update(req.input()); err != nil {
		return nil, err
	}
	if err := s.loanRepo.Update(ctx, loan); err != nil {
		return nil, err
	}
	response := ToLoanResponse(loan)
	return &response, nil
}

// Delete deletes a loan
func (s *LoanService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.loanRepo.Delete(ctx, tenantID, id)
}
