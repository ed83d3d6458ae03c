package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/isletme/backend/internal/domain/finance"
	"github.com/isletme/backend/internal/domain/shared"
	"github.com/isletme/backend/internal/infrastructure/persistence/models"
)

// GormBankAccountRepository implements finance.BankAccountRepository
type GormBankAccountRepository struct {
	*GormRepository[finance.BankAccount, models.BankAccountModel, *models.BankAccountModel]
}

// NewGormBankAccountRepository creates a new GormBankAccountRepository
func NewGormBankAccountRepository(db *gorm.DB) *GormBankAccountRepository {
	return &GormBankAccountRepository{
		GormRepository: NewGormRepository[finance.BankAccount, models.BankAccountModel](db, RepositoryOptions{
			SortFields:   BankAccountSortFields,
			DefaultSort:  "bank_name",
			FilterFields: map[string]bool{"currency": true, "is_active": true},
			SearchFields: []string{"bank_name", "account_name", "iban"},
		}),
	}
}

// GormTransactionRepository implements finance.TransactionRepository
type GormTransactionRepository struct {
	*GormRepository[finance.Transaction, models.TransactionModel, *models.TransactionModel]
}

// NewGormTransactionRepository creates a new GormTransactionRepository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{
		GormRepository: NewGormRepository[finance.Transaction, models.TransactionModel](db, RepositoryOptions{
			SortFields:   TransactionSortFields,
			DefaultSort:  "transaction_date",
			FilterFields: map[string]bool{"type": true, "category": true, "bank_account_id": true, "currency": true},
			SearchFields: []string{"description", "category", "reference"},
		}),
	}
}

// FindByBankAccount lists an account's movements, newest first
func (r *GormTransactionRepository) FindByBankAccount(ctx context.Context, tenantID, accountID uuid.UUID) ([]finance.Transaction, error) {
	return r.find(ctx, tenantID, func(q *gorm.DB) *gorm.DB {
		return q.Where("bank_account_id = ?", accountID).Order("transaction_date DESC, created_at DESC")
	})
}

// CreateWithAccounts inserts t and applies changes in one transaction
func (r *GormTransactionRepository) CreateWithAccounts(ctx context.Context, t *finance.Transaction, changes ...finance.BalanceChange) error {
	return r.DB(ctx).Transaction(func(tx *gorm.DB) error {
		var m models.TransactionModel
		m.FromDomain(t)
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		return applyBalanceChanges(tx, t.TenantID, changes)
	})
}

// UpdateWithAccounts updates t and applies changes in one transaction
func (r *GormTransactionRepository) UpdateWithAccounts(ctx context.Context, t *finance.Transaction, changes ...finance.BalanceChange) error {
	return r.DB(ctx).Transaction(func(tx *gorm.DB) error {
		var m models.TransactionModel
		m.FromDomain(t)
		if err := updateRow(tx.Scopes(TenantScope(t.TenantID)), &m); err != nil {
			return err
		}
		return applyBalanceChanges(tx, t.TenantID, changes)
	})
}

// DeleteWithAccounts removes t and applies changes in one transaction
func (r *GormTransactionRepository) DeleteWithAccounts(ctx context.Context, t *finance.Transaction, changes ...finance.BalanceChange) error {
	return r.DB(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Scopes(TenantScope(t.TenantID)).Where("id = ?", t.ID).Delete(&models.TransactionModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return applyBalanceChanges(tx, t.TenantID, changes)
	})
}

// applyBalanceChanges adds each change to the stored balance in SQL, so
// concurrent bookings on one account do not overwrite each other.
func applyBalanceChanges(tx *gorm.DB, tenantID uuid.UUID, changes []finance.BalanceChange) error {
	now := time.Now()
	for _, c := range changes {
		res := tx.Model(&models.BankAccountModel{}).
			Scopes(TenantScope(tenantID)).
			Where("id = ?", c.AccountID).
			Updates(map[string]any{
				"balance":    gorm.Expr("balance + ?", c.Amount),
				"updated_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return shared.ErrNotFound
		}
	}
	return nil
}

// GormLoanRepository implements finance.LoanRepository
type GormLoanRepository struct {
	*GormRepository[finance.Loan, models.LoanModel, *models.LoanModel]
}

// NewGormLoanRepository creates a new GormLoanRepository
func NewGormLoanRepository(db *gorm.DB) *GormLoanRepository {
	return &GormLoanRepository{
		GormRepository: NewGormRepository[finance.Loan, models.LoanModel](db, RepositoryOptions{
			SortFields:   LoanSortFields,
			FilterFields: map[string]bool{"status": true, "bank_name": true},
			SearchFields: []string{"bank_name", "loan_type"},
		}),
	}
}

// FindAllOrdered lists every loan, newest first
func (r *GormLoanRepository) FindAllOrdered(ctx context.Context, tenantID uuid.UUID) ([]finance.Loan, error) {
	return r.find(ctx, tenantID, func(q *gorm.DB) *gorm.DB {
		return q.Order("created_at DESC")
	})
}

// GormCheckRepository implements finance.CheckRepository
type GormCheckRepository struct {
	*GormRepository[finance.Check, models.CheckModel, *models.CheckModel]
}

// NewGormCheckRepository creates a new GormCheckRepository
func NewGormCheckRepository(db *gorm.DB) *GormCheckRepository {
	return &GormCheckRepository{
		GormRepository: NewGormRepository[finance.Check, models.CheckModel](db, RepositoryOptions{
			SortFields:   CheckSortFields,
			DefaultSort:  "due_date",
			FilterFields: map[string]bool{"status": true, "type": true, "customer_id": true},
			SearchFields: []string{"check_number", "drawer", "payee", "bank_name"},
		}),
	}
}

// FindDueBetween lists pending checks due in [from, to), earliest first
func (r *GormCheckRepository) FindDueBetween(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]finance.Check, error) {
	return r.find(ctx, tenantID, func(q *gorm.DB) *gorm.DB {
		return q.Where("status = ? AND due_date >= ? AND due_date < ?", finance.CheckStatusPending, from, to).
			Order("due_date ASC")
	})
}

var (
	_ finance.BankAccountRepository = (*GormBankAccountRepository)(nil)
	_ finance.TransactionRepository = (*GormTransactionRepository)(nil)
	_ finance.LoanRepository        = (*GormLoanRepository)(nil)
	_ finance.CheckRepository       = (*GormCheckRepository)(nil)
)
