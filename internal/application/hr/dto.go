package hr

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/isletme/backend/internal/application/common"
	"github.com/isletme/backend/internal/domain/hr"
)

// PayrollDTO carries the monthly salary figures of an employee
type PayrollDTO struct {
	GrossSalary               decimal.Decimal `json:"gross_salary"`
	NetSalary                 decimal.Decimal `json:"net_salary"`
	SGKEmployerShare          decimal.Decimal `json:"sgk_employer_share"`
	UnemploymentEmployerShare decimal.Decimal `json:"unemployment_employer_share"`
	MealAllowance             decimal.Decimal `json:"meal_allowance"`
	TransportAllowance        decimal.Decimal `json:"transport_allowance"`
}

func (p PayrollDTO) payroll() hr.Payroll {
	return hr.Payroll{
		GrossSalary:               p.GrossSalary,
		NetSalary:                 p.NetSalary,
		SGKEmployerShare:          p.SGKEmployerShare,
		UnemploymentEmployerShare: p.UnemploymentEmployerShare,
		MealAllowance:             p.MealAllowance,
		TransportAllowance:        p.TransportAllowance,
	}
}

func toPayrollDTO(p hr.Payroll) PayrollDTO {
	return PayrollDTO{
		GrossSalary:               p.GrossSalary,
		NetSalary:                 p.NetSalary,
		SGKEmployerShare:          p.SGKEmployerShare,
		UnemploymentEmployerShare: p.UnemploymentEmployerShare,
		MealAllowance:             p.MealAllowance,
		TransportAllowance:        p.TransportAllowance,
	}
}

// EmployeeRequest is the body of employee create and update requests.
// IsActive defaults to true when omitted.
type EmployeeRequest struct {
	FirstName  string     `json:"first_name" binding:"required,max=100"`
	LastName   string     `json:"last_name" binding:"required,max=100"`
	NationalID string     `json:"national_id" binding:"omitempty,tckn"`
	Department string     `json:"department" binding:"max=100"`
	Position   string     `json:"position" binding:"max=100"`
	Email      string     `json:"email" binding:"omitempty,email"`
	Phone      string     `json:"phone" binding:"max=30"`
	HireDate   *time.Time `json:"hire_date"`
	IsActive   *bool      `json:"is_active"`
	PayrollDTO
	CreatedBy *uuid.UUID `json:"-"`
}

func (r EmployeeRequest) input() hr.EmployeeInput {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return hr.EmployeeInput{
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		NationalID: r.NationalID,
		Department: r.Department,
		Position:   r.Position,
		Email:      r.Email,
		Phone:      r.Phone,
		HireDate:   r.HireDate,
		IsActive:   active,
		Payroll:    r.payroll(),
	}
}

// EmployeeListFilter represents filter options for the employee list
type EmployeeListFilter struct {
	common.ListQuery
	Department string `form:"department"`
	IsActive   string `form:"is_active" binding:"omitempty,oneof=true false"`
}

// EmployeeResponse represents an employee in API responses
type EmployeeResponse struct {
	ID         uuid.UUID  `json:"id"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	FullName   string     `json:"full_name"`
	NationalID string     `json:"national_id"`
	Department string     `json:"department"`
	Position   string     `json:"position"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone"`
	HireDate   *time.Time `json:"hire_date,omitempty"`
	IsActive   bool       `json:"is_active"`
	PayrollDTO
	EmployerCost decimal.Decimal `json:"employer_cost"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ToEmployeeResponse converts a domain Employee to EmployeeResponse
func ToEmployeeResponse(e *hr.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:           e.ID,
		FirstName:    e.FirstName,
		LastName:     e.LastName,
		FullName:     e.FullName(),
		NationalID:   e.NationalID,
		Department:   e.Department,
		Position:     e.Position,
		Email:        e.Email,
		Phone:        e.Phone,
		HireDate:     e.HireDate,
		IsActive:     e.IsActive,
		PayrollDTO:   toPayrollDTO(e.Payroll),
		EmployerCost: e.Payroll.EmployerCost(),
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

// ToEmployeeResponses converts a slice of employees
func ToEmployeeResponses(employees []hr.Employee) []EmployeeResponse {
	out := make([]EmployeeResponse, len(employees))
	for i := range employees {
		out[i] = ToEmployeeResponse(&employees[i])
	}
	return out
}

// DepartmentSalaryResponse is the payroll roll-up of one department
type DepartmentSalaryResponse struct {
	Department string `json:"department"`
	Headcount  int    `json:"headcount"`
	PayrollDTO
	EmployerCost decimal.Decimal `json:"employer_cost"`
}

// SalaryReport lists department roll-ups with a grand total
type SalaryReport struct {
	Departments []DepartmentSalaryResponse `json:"departments"`
	Headcount   int                        `json:"headcount"`
	Totals      PayrollDTO                 `json:"totals"`
}
