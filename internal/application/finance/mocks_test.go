package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/isletme/backend/internal/domain/finance"
	"github.com/isletme/backend/internal/domain/shared"
)

// =============================================================================
// Mock Repositories
// =============================================================================

type MockBankAccountRepository struct {
	mock.Mock
}

func (m *MockBankAccountRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*finance.BankAccount, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.BankAccount), args.Error(1)
}

func (m *MockBankAccountRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]finance.BankAccount, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]finance.BankAccount), args.Error(1)
}

func (m *MockBankAccountRepository) Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBankAccountRepository) Create(ctx context.Context, a *finance.BankAccount) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockBankAccountRepository) Update(ctx context.Context, a *finance.BankAccount) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockBankAccountRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return m.Called(ctx, tenantID, id).Error(0)
}

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*finance.Transaction, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]finance.Transaction, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]finance.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTransactionRepository) Create(ctx context.Context, t *finance.Transaction) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTransactionRepository) Update(ctx context.Context, t *finance.Transaction) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTransactionRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return m.Called(ctx, tenantID, id).Error(0)
}

func (m *MockTransactionRepository) FindByBankAccount(ctx context.Context, tenantID, accountID uuid.UUID) ([]finance.Transaction, error) {
	args := m.Called(ctx, tenantID, accountID)
	return args.Get(0).([]finance.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) CreateWithAccounts(ctx context.Context, t *finance.Transaction, changes ...finance.BalanceChange) error {
	return m.Called(ctx, t, changes).Error(0)
}

func (m *MockTransactionRepository) UpdateWithAccounts(ctx context.Context, t *finance.Transaction, changes ...finance.BalanceChange) error {
	return m.Called(ctx, t, changes).Error(0)
}

func (m *MockTransactionRepository) DeleteWithAccounts(ctx context.Context, t *finance.Transaction, changes ...finance.BalanceChange) error {
	return m.Called(ctx, t, changes).Error(0)
}

type MockLoanRepository struct {
	mock.Mock
}

func (m *MockLoanRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*finance.Loan, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Loan), args.Error(1)
}

func (m *MockLoanRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]finance.Loan, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]finance.Loan), args.Error(1)
}

func (m *MockLoanRepository) Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLoanRepository) Create(ctx context.Context, l *finance.Loan) error {
	return m.Called(ctx, l).Error(0)
}

func (m *MockLoanRepository) Update(ctx context.Context, l *finance.Loan) error {
	return m.Called(ctx, l).Error(0)
}

func (m *MockLoanRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return m.Called(ctx, tenantID, id).Error(0)
}

func (m *MockLoanRepository) FindAllOrdered(ctx context.Context, tenantID uuid.UUID) ([]finance.Loan, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]finance.Loan), args.Error(1)
}

type MockCheckRepository struct {
	mock.Mock
}

func (m *MockCheckRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*finance.Check, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Check), args.Error(1)
}

func (m *MockCheckRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]finance.Check, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]finance.Check), args.Error(1)
}

func (m *MockCheckRepository) Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCheckRepository) Create(ctx context.Context, c *finance.Check) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCheckRepository) Update(ctx context.Context, c *finance.Check) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCheckRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return m.Called(ctx, tenantID, id).Error(0)
}

func (m *MockCheckRepository) FindDueBetween(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]finance.Check, error) {
	args := m.Called(ctx, tenantID, from, to)
	return args.Get(0).([]finance.Check), args.Error(1)
}

var (
	_ finance.BankAccountRepository = (*MockBankAccountRepository)(nil)
	_ finance.TransactionRepository = (*MockTransactionRepository)(nil)
	_ finance.LoanRepository        = (*MockLoanRepository)(nil)
	_ finance.CheckRepository       = (*MockCheckRepository)(nil)
)
