package finance

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/isletme/backend/internal/domain/shared"
	"github.com/isletme/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// TransactionType distinguishes money in from money out
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// IsValid checks if the type is a valid TransactionType
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// DisplayName returns the Turkish label
func (t TransactionType) DisplayName() string {
	switch t {
	case TransactionTypeIncome:
		return "Gelir"
	case TransactionTypeExpense:
		return "Gider"
	}
	return string(t)
}

// Transaction is a single income or expense movement (işlem).
type Transaction struct {
	shared.TenantEntity
	BankAccountID   *uuid.UUID
	Type            TransactionType
	Category        string
	Amount          decimal.Decimal
	Currency        valueobject.Currency
	Description     string
	TransactionDate time.Time
	Reference       string
}

// TransactionInput holds the editable fields of a transaction form.
type TransactionInput struct {
	BankAccountID   *uuid.UUID
	Type            string
	Category        string
	Amount          decimal.Decimal
	Currency        string
	Description     string
	TransactionDate time.Time
	Reference       string
}

// NewTransaction creates a new transaction
func NewTransaction(tenantID uuid.UUID, in TransactionInput) (*Transaction, error) {
	t := &Transaction{TenantEntity: shared.NewTenantEntity(tenantID)}
	if err := t.apply(in); err != nil {
		return nil, err
	}
	return t, nil
}

// Update replaces the editable fields.
func (t *Transaction) Update(in TransactionInput) error {
	if err := t.apply(in); err != nil {
		return err
	}
	t.Touch()
	return nil
}

func (t *Transaction) apply(in TransactionInput) error {
	typ := TransactionType(strings.ToLower(in.Type))
	if !typ.IsValid() {
		return shared.NewFieldError("type", "İşlem tipi gelir veya gider olmalıdır")
	}
	if !in.Amount.IsPositive() {
		return shared.NewFieldError("amount", "Tutar sıfırdan büyük olmalıdır")
	}
	currency, ok := valueobject.ParseCurrency(in.Currency)
	if !ok {
		return shared.NewFieldError("currency", "Geçersiz para birimi")
	}
	if in.TransactionDate.IsZero() {
		return shared.RequiredField("transaction_date")
	}

	t.BankAccountID = in.BankAccountID
	t.Type = typ
	t.Category = strings.TrimSpace(in.Category)
	t.Amount = in.Amount
	t.Currency = currency
	t.Description = strings.TrimSpace(in.Description)
	t.TransactionDate = in.TransactionDate
	t.Reference = strings.TrimSpace(in.Reference)
	return nil
}

// SignedAmount is positive for income and negative for expense.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TransactionTypeExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}
