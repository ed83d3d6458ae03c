package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/isletme/backend/internal/domain/finance"
	"github.com/isletme/backend/internal/domain/shared/valueobject"
)

// BankAccountModel maps the bank_accounts table
type BankAccountModel struct {
	TenantModel
	BankName      string               `gorm:"type:varchar(100);not null"`
	Branch        string               `gorm:"type:varchar(100)"`
	AccountName   string               `gorm:"type:varchar(200)"`
	AccountNumber string               `gorm:"type:varchar(50)"`
	IBAN          string               `gorm:"column:iban;type:varchar(34)"`
	Currency      valueobject.Currency `gorm:"type:varchar(3);not null;default:'TRY'"`
	Balance       decimal.Decimal      `gorm:"type:decimal(18,2);not null;default:0"`
	IsActive      bool                 `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (BankAccountModel) TableName() string {
	return "bank_accounts"
}

// ToDomain converts the model to a domain bank account
func (m *BankAccountModel) ToDomain() *finance.BankAccount {
	return &finance.BankAccount{
		TenantEntity:  m.Entity(),
		BankName:      m.BankName,
		Branch:        m.Branch,
		AccountName:   m.AccountName,
		AccountNumber: m.AccountNumber,
		IBAN:          m.IBAN,
		Currency:      m.Currency,
		Balance:       m.Balance,
		IsActive:      m.IsActive,
	}
}

// FromDomain populates the model from a domain bank account
func (m *BankAccountModel) FromDomain(a *finance.BankAccount) {
	m.FromEntity(a.TenantEntity)
	m.BankName = a.BankName
	m.Branch = a.Branch
	m.AccountName = a.AccountName
	m.AccountNumber = a.AccountNumber
	m.IBAN = a.IBAN
	m.Currency = a.Currency
	m.Balance = a.Balance
	m.IsActive = a.IsActive
}

// TransactionModel maps the transactions table
type TransactionModel struct {
	TenantModel
	BankAccountID   *uuid.UUID              `gorm:"type:uuid;index"`
	Type            finance.TransactionType `gorm:"type:varchar(20);not null"`
	Category        string                  `gorm:"type:varchar(100)"`
	Amount          decimal.Decimal         `gorm:"type:decimal(18,2);not null"`
	Currency        valueobject.Currency    `gorm:"type:varchar(3);not null;default:'TRY'"`
	Description     string                  `gorm:"type:text"`
	TransactionDate time.Time               `gorm:"type:date;not null;index"`
	Reference       string                  `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToDomain converts the model to a domain transaction
func (m *TransactionModel) ToDomain() *finance.Transaction {
	return &finance.Transaction{
		TenantEntity:    m.Entity(),
		BankAccountID:   m.BankAccountID,
		Type:            m.Type,
		Category:        m.Category,
		Amount:          m.Amount,
		Currency:        m.Currency,
		Description:     m.Description,
		TransactionDate: m.TransactionDate,
		Reference:       m.Reference,
	}
}

// FromDomain populates the model from a domain transaction
func (m *TransactionModel) FromDomain(t *finance.Transaction) {
	m.FromEntity(t.TenantEntity)
	m.BankAccountID = t.BankAccountID
	m.Type = t.Type
	m.Category = t.Category
	m.Amount = t.Amount
	m.Currency = t.Currency
	m.Description = t.Description
	m.TransactionDate = t.TransactionDate
	m.Reference = t.Reference
}

// LoanModel maps the loans table
type LoanModel struct {
	TenantModel
	BankName         string             `gorm:"type:varchar(100);not null"`
	LoanType         string             `gorm:"type:varchar(100)"`
	Principal        decimal.Decimal    `gorm:"type:decimal(18,2);not null"`
	InterestRate     decimal.Decimal    `gorm:"type:decimal(7,4);not null;default:0"`
	TermMonths       int                `gorm:"not null"`
	MonthlyPayment   decimal.Decimal    `gorm:"type:decimal(18,2);not null;default:0"`
	RemainingBalance decimal.Decimal    `gorm:"type:decimal(18,2);not null;default:0"`
	StartDate        time.Time          `gorm:"type:date;not null"`
	EndDate          *time.Time         `gorm:"type:date"`
	Status           finance.LoanStatus `gorm:"type:varchar(20);not null;default:'active'"`
	Notes            string             `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (LoanModel) TableName() string {
	return "loans"
}

// ToDomain converts the model to a domain loan
func (m *LoanModel) ToDomain() *finance.Loan {
	return &finance.Loan{
		TenantEntity:     m.Entity(),
		BankName:         m.BankName,
		LoanType:         m.LoanType,
		Principal:        m.Principal,
		InterestRate:     m.InterestRate,
		TermMonths:       m.TermMonths,
		MonthlyPayment:   m.MonthlyPayment,
		RemainingBalance: m.RemainingBalance,
		StartDate:        m.StartDate,
		EndDate:          m.EndDate,
		Status:           m.Status,
		Notes:            m.Notes,
	}
}

// FromDomain populates the model from a domain loan
func (m *LoanModel) FromDomain(l *finance.Loan) {
	m.FromEntity(l.TenantEntity)
	m.BankName = l.BankName
	m.LoanType = l.LoanType
	m.Principal = l.Principal
	m.InterestRate = l.InterestRate
	m.TermMonths = l.TermMonths
	m.MonthlyPayment = l.MonthlyPayment
	m.RemainingBalance = l.RemainingBalance
	m.StartDate = l.StartDate
	m.EndDate = l.EndDate
	m.Status = l.Status
	m.Notes = l.Notes
}

// CheckModel maps the checks table
type CheckModel struct {
	TenantModel
	CheckNumber string               `gorm:"type:varchar(50);not null"`
	BankName    string               `gorm:"type:varchar(100)"`
	Drawer      string               `gorm:"type:varchar(200)"`
	Payee       string               `gorm:"type:varchar(200)"`
	Amount      decimal.Decimal      `gorm:"type:decimal(18,2);not null"`
	Currency    valueobject.Currency `gorm:"type:varchar(3);not null;default:'TRY'"`
	IssueDate   time.Time            `gorm:"type:date;not null"`
	DueDate     time.Time            `gorm:"type:date;not null;index"`
	Type        finance.CheckType    `gorm:"type:varchar(20);not null"`
	Status      finance.CheckStatus  `gorm:"type:varchar(20);not null;default:'pending'"`
	CustomerID  *uuid.UUID           `gorm:"type:uuid;index"`
	Notes       string               `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (CheckModel) TableName() string {
	return "checks"
}

// ToDomain converts the model to a domain check
func (m *CheckModel) ToDomain() *finance.Check {
	return &finance.Check{
		TenantEntity: m.Entity(),
		CheckNumber:  m.CheckNumber,
		BankName:     m.BankName,
		Drawer:       m.Drawer,
		Payee:        m.Payee,
		Amount:       m.Amount,
		Currency:     m.Currency,
		IssueDate:    m.IssueDate,
		DueDate:      m.DueDate,
		Type:         m.Type,
		Status:       m.Status,
		CustomerID:   m.CustomerID,
		Notes:        m.Notes,
	}
}

// FromDomain populates the model from a domain check
func (m *CheckModel) FromDomain(c *finance.Check) {
	m.FromEntity(c.TenantEntity)
	m.CheckNumber = c.CheckNumber
	m.BankName = c.BankName
	m.Drawer = c.Drawer
	m.Payee = c.Payee
	m.Amount = c.Amount
	m.Currency = c.Currency
	m.IssueDate = c.IssueDate
	m.DueDate = c.DueDate
	m.Type = c.Type
	m.Status = c.Status
	m.CustomerID = c.CustomerID
	m.Notes = c.Notes
}
