package finance

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/isletme/backend/internal/application/common"
	"github.com/isletme/backend/internal/domain/finance"
)

// =============================================================================
// Bank account DTOs
// =============================================================================

// BankAccountRequest is the body of bank account create and update requests
type BankAccountRequest struct {
	BankName      string          `json:"bank_name" binding:"required,max=100"`
	Branch        string          `json:"branch" binding:"max=100"`
	AccountName   string          `json:"account_name" binding:"required,max=200"`
	AccountNumber string          `json:"account_number" binding:"max=50"`
	IBAN          string          `json:"iban" binding:"omitempty,iban"`
	Currency      string          `json:"currency" binding:"omitempty,oneof=TRY USD EUR GBP"`
	Balance       decimal.Decimal `json:"balance"`
	IsActive      *bool           `json:"is_active"`
	CreatedBy     *uuid.UUID      `json:"-"`
}

func (r BankAccountRequest) input() finance.BankAccountInput {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return finance.BankAccountInput{
		BankName:      r.BankName,
		Branch:        r.Branch,
		AccountName:   r.AccountName,
		AccountNumber: r.AccountNumber,
		IBAN:          r.IBAN,
		Currency:      r.Currency,
		Balance:       r.Balance,
		IsActive:      active,
	}
}

// BankAccountListFilter represents filter options for the bank account list
type BankAccountListFilter struct {
	common.ListQuery
	Currency string `form:"currency" binding:"omitempty,oneof=TRY USD EUR GBP"`
	IsActive string `form:"is_active" binding:"omitempty,oneof=true false"`
}

// BankAccountResponse represents a bank account in API responses
type BankAccountResponse struct {
	ID            uuid.UUID       `json:"id"`
	BankName      string          `json:"bank_name"`
	Branch        string          `json:"branch"`
	AccountName   string          `json:"account_name"`
	AccountNumber string          `json:"account_number"`
	IBAN          string          `json:"iban"`
	Currency      string          `json:"currency"`
	Balance       decimal.Decimal `json:"balance"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ToBankAccountResponse converts a domain BankAccount to BankAccountResponse
func ToBankAccountResponse(a *finance.BankAccount) BankAccountResponse {
	return BankAccountResponse{
		ID:            a.ID,
		BankName:      a.BankName,
		Branch:        a.Branch,
		AccountName:   a.AccountName,
		AccountNumber: a.AccountNumber,
		IBAN:          a.IBAN,
		Currency:      string(a.Currency),
		Balance:       a.Balance,
		IsActive:      a.IsActive,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

// ToBankAccountResponses converts a slice of bank accounts
func ToBankAccountResponses(accounts []finance.BankAccount) []BankAccountResponse {
	out := make([]BankAccountResponse, len(accounts))
	for i := range accounts {
		out[i] = ToBankAccountResponse(&accounts[i])
	}
	return out
}

// =============================================================================
// Transaction DTOs
// =============================================================================

// TransactionRequest is the body of transaction create and update requests
type TransactionRequest struct {
	BankAccountID   *uuid.UUID      `json:"bank_account_id"`
	Type            string          `json:"type" binding:"required,oneof=income expense"`
	Category        string          `json:"category" binding:"max=100"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency" binding:"omitempty,oneof=TRY USD EUR GBP"`
	Description     string          `json:"description" binding:"max=500"`
	TransactionDate time.Time       `json:"transaction_date" binding:"required"`
	Reference       string          `json:"reference" binding:"max=100"`
	CreatedBy       *uuid.UUID      `json:"-"`
}

// input builds the domain input; an empty currency falls back to the
// currency of account when one is given.
func (r TransactionRequest) input(account *finance.BankAccount) finance.TransactionInput {
	currency := r.Currency
	if strings.TrimSpace(currency) == "" && account != nil {
		currency = string(account.Currency)
	}
	return finance.TransactionInput{
		BankAccountID:   r.BankAccountID,
		Type:            r.Type,
		Category:        r.Category,
		Amount:          r.Amount,
		Currency:        currency,
		Description:     r.Description,
		TransactionDate: r.TransactionDate,
		Reference:       r.Reference,
	}
}

// TransactionListFilter represents filter options for the transaction list
type TransactionListFilter struct {
	common.ListQuery
	Type          string `form:"type" binding:"omitempty,oneof=income expense"`
	Category      string `form:"category"`
	BankAccountID string `form:"bank_account_id" binding:"omitempty,uuid"`
}

// TransactionResponse represents a transaction in API responses
type TransactionResponse struct {
	ID              uuid.UUID       `json:"id"`
	BankAccountID   *uuid.UUID      `json:"bank_account_id,omitempty"`
	Type            string          `json:"type"`
	TypeDisplay     string          `json:"type_display"`
	Category        string          `json:"category"`
	Amount          decimal.Decimal `json:"amount"`
	SignedAmount    decimal.Decimal `json:"signed_amount"`
	Currency        string          `json:"currency"`
	Description     string          `json:"description"`
	TransactionDate time.Time       `json:"transaction_date"`
	Reference       string          `json:"reference"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ToTransactionResponse converts a domain Transaction to TransactionResponse
func ToTransactionResponse(t *finance.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:              t.ID,
		BankAccountID:   t.BankAccountID,
		Type:            string(t.Type),
		TypeDisplay:     t.Type.DisplayName(),
		Category:        t.Category,
		Amount:          t.Amount,
		SignedAmount:    t.SignedAmount(),
		Currency:        string(t.Currency),
		Description:     t.Description,
		TransactionDate: t.TransactionDate,
		Reference:       t.Reference,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

// ToTransactionResponses converts a slice of transactions
func ToTransactionResponses(txs []finance.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(txs))
	for i := range txs {
		out[i] = ToTransactionResponse(&txs[i])
	}
	return out
}

// =============================================================================
// Loan DTOs
// =============================================================================

// LoanRequest is the body of loan create and update requests. A zero
// monthly payment is computed from principal, rate and term.
type LoanRequest struct {
	BankName         string           `json:"bank_name" binding:"required,max=100"`
	LoanType         string           `json:"loan_type" binding:"max=100"`
	Principal        decimal.Decimal  `json:"principal"`
	InterestRate     decimal.Decimal  `json:"interest_rate"`
	TermMonths       int              `json:"term_months" binding:"required,min=1,max=600"`
	MonthlyPayment   decimal.Decimal  `json:"monthly_payment"`
	RemainingBalance *decimal.Decimal `json:"remaining_balance"`
	StartDate        time.Time        `json:"start_date" binding:"required"`
	EndDate          *time.Time       `json:"end_date"`
	Status           string           `json:"status" binding:"omitempty,oneof=active closed overdue"`
	Notes            string           `json:"notes"`
	CreatedBy        *uuid.UUID       `json:"-"`
}

func (r LoanRequest) input() finance.LoanInput {
	return finance.LoanInput{
		BankName:         r.BankName,
		LoanType:         r.LoanType,
		Principal:        r.Principal,
		InterestRate:     r.InterestRate,
		TermMonths:       r.TermMonths,
		MonthlyPayment:   r.MonthlyPayment,
		RemainingBalance: r.RemainingBalance,
		StartDate:        r.StartDate,
		EndDate:          r.EndDate,
		Status:           r.Status,
		Notes:            r.Notes,
	}
}

// LoanListFilter represents filter options for the loan list
type LoanListFilter struct {
	common.ListQuery
	Status   string `form:"status" binding:"omitempty,oneof=active closed overdue"`
	BankName string `form:"bank_name"`
}

// LoanResponse represents a loan in API responses
type LoanResponse struct {
	ID               uuid.UUID       `json:"id"`
	BankName         string          `json:"bank_name"`
	LoanType         string          `json:"loan_type"`
	Principal        decimal.Decimal  `json:"principal"`
	InterestRate     decimal.Decimal `json:"interest_rate"`
	TermMonths       int             `json:"term_months"`
	MonthlyPayment   decimal.Decimal `json:"monthly_payment"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	StartDate        time.Time       `json:"start_date"`
	EndDate          *time.Time      `json:"end_date,omitempty"`
	Status           string          `json:"status"`
	StatusDisplay    string          `json:"status_display"`
	Notes            string          `json:"notes"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// ToLoanResponse converts a domain Loan to LoanResponse
func ToLoanResponse(l *finance.Loan) LoanResponse {
	return LoanResponse{
		ID:               l.ID,
		BankName:         l.BankName,
		LoanType:         l.LoanType,
		Principal:        l.Principal,
		InterestRate:     l.InterestRate,
		TermMonths:       l.TermMonths,
		MonthlyPayment:   l.MonthlyPayment,
		RemainingBalance: l.RemainingBalance,
		StartDate:        l.StartDate,
		EndDate:          l.EndDate,
		Status:           string(l.Status),
		StatusDisplay:    l.Status.DisplayName(),
		Notes:            l.Notes,
		CreatedAt:        l.CreatedAt,
		UpdatedAt:        l.UpdatedAt,
	}
}

// ToLoanResponses converts a slice of loans
func ToLoanResponses(loans []finance.Loan) []LoanResponse {
	out := make([]LoanResponse, len(loans))
	for i := range loans {
		out[i] = ToLoanResponse(&loans[i])
	}
	return out
}

// =============================================================================
// Check DTOs
// =============================================================================

// CheckRequest is the body of check create and update requests
type CheckRequest struct {
	CheckNumber string          `json:"check_number" binding:"required,max=50"`
	BankName    string          `json:"bank_name" binding:"required,max=100"`
	Drawer      string          `json:"drawer" binding:"max=200"`
	Payee       string          `json:"payee" binding:"max=200"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency" binding:"omitempty,oneof=TRY USD EUR GBP"`
	IssueDate   time.Time       `json:"issue_date"`
	DueDate     time.Time       `json:"due_date" binding:"required"`
	Type        string          `json:"type" binding:"required,oneof=received issued"`
	Status      string          `json:"status" binding:"omitempty,oneof=pending cashed bounced cancelled"`
	CustomerID  *uuid.UUID      `json:"customer_id"`
	Notes       string          `json:"notes"`
	CreatedBy   *uuid.UUID      `json:"-"`
}

func (r CheckRequest) input() finance.CheckInput {
	return finance.CheckInput{
		CheckNumber: r.CheckNumber,
		BankName:    r.BankName,
		Drawer:      r.Drawer,
		Payee:       r.Payee,
		Amount:      r.Amount,
		Currency:    r.Currency,
		IssueDate:   r.IssueDate,
		DueDate:     r.DueDate,
		Type:        r.Type,
		Status:      r.Status,
		CustomerID:  r.CustomerID,
		Notes:       r.Notes,
	}
}

// CheckListFilter represents filter options for the check list
type CheckListFilter struct {
	common.ListQuery
	Status     string `form:"status" binding:"omitempty,oneof=pending cashed bounced cancelled"`
	Type       string `form:"type" binding:"omitempty,oneof=received issued"`
	CustomerID string `form:"customer_id" binding:"omitempty,uuid"`
}

// CheckResponse represents a check in API responses
type CheckResponse struct {
	ID            uuid.UUID       `json:"id"`
	CheckNumber   string          `json:"check_number"`
	BankName      string          `json:"bank_name"`
	Drawer        string          `json:"drawer"`
	Payee         string          `json:"payee"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	IssueDate     time.Time       `json:"issue_date"`
	DueDate       time.Time       `json:"due_date"`
	Type          string          `json:"type"`
	Status        string          `json:"status"`
	StatusDisplay string          `json:"status_display"`
	CustomerID    *uuid.UUID      `json:"customer_id,omitempty"`
	Notes         string          `json:"notes"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ToCheckResponse converts a domain Check to CheckResponse
func ToCheckResponse(c *finance.Check) CheckResponse {
	return CheckResponse{
		ID:            c.ID,
		CheckNumber:   c.CheckNumber,
		BankName:      c.BankName,
		Drawer:        c.Drawer,
		Payee:         c.Payee,
		Amount:        c.Amount,
		Currency:      string(c.Currency),
		IssueDate:     c.IssueDate,
		DueDate:       c.DueDate,
		Type:          string(c.Type),
		Status:        string(c.Status),
		StatusDisplay: c.Status.DisplayName(),
		CustomerID:    c.CustomerID,
		Notes:         c.Notes,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

// ToCheckResponses converts a slice of checks
func ToCheckResponses(checks []finance.Check) []CheckResponse {
	out := make([]CheckResponse, len(checks))
	for i := range checks {
		out[i] = ToCheckResponse(&checks[i])
	}
	return out
}
