package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/isletme/backend/internal/domain/shared"
)

// BankAccountRepository persists bank accounts
type BankAccountRepository interface {
	shared.Repository[BankAccount]
}

// TransactionRepository persists transactions
type TransactionRepository interface {
	shared.Repository[Transaction]
	// FindByBankAccount lists an account's movements, newest transaction date first.
	FindByBankAccount(ctx context.Context, tenantID, accountID uuid.UUID) ([]Transaction, error)
	// CreateWithAccounts inserts t and adds changes to the account balances atomically.
	CreateWithAccounts(ctx context.Context, t *Transaction, changes ...BalanceChange) error
	// UpdateWithAccounts updates t and adds changes to the account balances atomically.
	UpdateWithAccounts(ctx context.Context, t *Transaction, changes ...BalanceChange) error
	// DeleteWithAccounts deletes t and adds changes to the account balances atomically.
	DeleteWithAccounts(ctx context.Context, t *Transaction, changes ...BalanceChange) error
}

// LoanRepository persists loans
type LoanRepository interface {
	shared.Repository[Loan]
	// FindAllOrdered lists every loan ordered by creation date, newest first.
	FindAllOrdered(ctx context.Context, tenantID uuid.UUID) ([]Loan, error)
}

// CheckRepository persists checks
type CheckRepository interface {
	shared.Repository[Check]
	// FindDueBetween lists pending checks whose due date falls in [from, to).
	FindDueBetween(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]Check, error)
}
