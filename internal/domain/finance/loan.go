package finance

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/isletme/backend/internal/domain/shared"
	"github.com/isletme/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// LoanStatus represents the repayment state of a loan
type LoanStatus string

const (
	LoanStatusActive  LoanStatus = "active"
	LoanStatusClosed  LoanStatus = "closed"
	LoanStatusOverdue LoanStatus = "overdue"
)

// IsValid checks if the status is a valid LoanStatus
func (s LoanStatus) IsValid() bool {
	switch s {
	case LoanStatusActive, LoanStatusClosed, LoanStatusOverdue:
		return true
	}
	return false
}

// DisplayName returns the Turkish label
func (s LoanStatus) DisplayName() string {
	switch s {
	case LoanStatusActive:
		return "Aktif"
	case LoanStatusClosed:
		return "Kapandı"
	case LoanStatusOverdue:
		return "Gecikmede"
	}
	return string(s)
}

// Loan is a bank credit line (kredi).
type Loan struct {
	shared.TenantEntity
	BankName         string
	LoanType         string
	Principal        decimal.Decimal
	InterestRate     decimal.Decimal
	TermMonths       int
	MonthlyPayment   decimal.Decimal
	RemainingBalance decimal.Decimal
	StartDate        time.Time
	EndDate          *time.Time
	Status           LoanStatus
	Notes            string
}

// LoanInput holds the editable fields of a loan form.
type LoanInput struct {
	BankName         string
	LoanType         string
	Principal        decimal.Decimal
	InterestRate     decimal.Decimal
	TermMonths       int
	MonthlyPayment   decimal.Decimal
	RemainingBalance *decimal.Decimal
	StartDate        time.Time
	EndDate          *time.Time
	Status           string
	Notes            string
}

// NewLoan creates a new loan. When no monthly payment is given it is
// computed with the annuity formula; the remaining balance defaults to the
// principal.
func NewLoan(tenantID uuid.UUID, in LoanInput) (*Loan, error) {
	l := &Loan{TenantEntity: shared.NewTenantEntity(tenantID)}
	if err := l.apply(in); err != nil {
		return nil, err
	}
	return l, nil
}

// Update replaces the editable fields.
func (l *Loan) Update(in LoanInput) error {
	if err := l.apply(in); err != nil {
		return err
	}
	l.Touch()
	return nil
}

func (l *Loan) apply(in LoanInput) error {
	if strings.TrimSpace(in.BankName) == "" {
		return shared.RequiredField("bank_name")
	}
	if !in.Principal.IsPositive() {
		return shared.NewFieldError("principal", "Anapara sıfırdan büyük olmalıdır")
	}
	if in.InterestRate.IsNegative() {
		return shared.NewFieldError("interest_rate", "Faiz oranı negatif olamaz")
	}
	if in.TermMonths <= 0 {
		return shared.NewFieldError("term_months", "Vade en az 1 ay olmalıdır")
	}
	if in.StartDate.IsZero() {
		return shared.RequiredField("start_date")
	}
	status := LoanStatusActive
	if in.Status != "" {
		status = LoanStatus(strings.ToLower(in.Status))
		if !status.IsValid() {
			return shared.NewFieldError("status", "Geçersiz kredi durumu")
		}
	}

	l.BankName = strings.TrimSpace(in.BankName)
	l.LoanType = strings.TrimSpace(in.LoanType)
	l.Principal = in.Principal
	l.InterestRate = in.InterestRate
	l.TermMonths = in.TermMonths
	l.MonthlyPayment = in.MonthlyPayment
	if l.MonthlyPayment.IsZero() {
		l.MonthlyPayment = MonthlyInstallment(in.Principal, in.InterestRate, in.TermMonths)
	}
	if in.RemainingBalance != nil {
		l.RemainingBalance = *in.RemainingBalance
	} else if l.RemainingBalance.IsZero() {
		l.RemainingBalance = in.Principal
	}
	l.StartDate = in.StartDate
	l.EndDate = in.EndDate
	if l.EndDate == nil {
		end := in.StartDate.AddDate(0, in.TermMonths, 0)
		l.EndDate = &end
	}
	l.Status = status
	l.Notes = strings.TrimSpace(in.Notes)
	return nil
}

// MonthlyInstallment computes an equal-payment installment for an annual
// interest rate given in percent. A zero rate splits the principal evenly.
func MonthlyInstallment(principal, annualRate decimal.Decimal, months int) decimal.Decimal {
	if months <= 0 {
		return decimal.Zero
	}
	n := decimal.NewFromInt(int64(months))
	if annualRate.IsZero() {
		return valueobject.RoundMoney(principal.Div(n))
	}
	r := annualRate.Div(decimal.NewFromInt(1200))
	growth := decimal.NewFromInt(1).Add(r).Pow(n)
	payment := principal.Mul(r).Mul(growth).Div(growth.Sub(decimal.NewFromInt(1)))
	return valueobject.RoundMoney(payment)
}

// LoanSummary aggregates the open exposure of all non-closed loans.
type LoanSummary struct {
	ActiveCount      int             `json:"active_count"`
	TotalPrincipal   decimal.Decimal `json:"total_principal"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	MonthlyPayments  decimal.Decimal `json:"monthly_payments"`
}

// SummarizeLoans folds loans into a LoanSummary, skipping closed ones.
func SummarizeLoans(loans []Loan) LoanSummary {
	s := LoanSummary{
		TotalPrincipal:   decimal.Zero,
		RemainingBalance: decimal.Zero,
		MonthlyPayments:  decimal.Zero,
	}
	for i := range loans {
		if loans[i].Status == LoanStatusClosed {
			continue
		}
		s.ActiveCount++
		s.TotalPrincipal = s.TotalPrincipal.Add(loans[i].Principal)
		s.RemainingBalance = s.RemainingBalance.Add(loans[i].RemainingBalance)
		s.MonthlyPayments = s.MonthlyPayments.Add(loans[i].MonthlyPayment)
	}
	return s
}
