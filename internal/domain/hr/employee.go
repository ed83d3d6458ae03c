package hr

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/isletme/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PayrollField names one monetary column of an employee's monthly payroll.
type PayrollField string

const (
	PayrollGrossSalary               PayrollField = "gross_salary"
	PayrollNetSalary                 PayrollField = "net_salary"
	PayrollSGKEmployerShare          PayrollField = "sgk_employer_share"
	PayrollUnemploymentEmployerShare PayrollField = "unemployment_employer_share"
	PayrollMealAllowance             PayrollField = "meal_allowance"
	PayrollTransportAllowance        PayrollField = "transport_allowance"
)

// PayrollFields lists every payroll column in display order
var PayrollFields = []PayrollField{
	PayrollGrossSalary,
	PayrollNetSalary,
	PayrollSGKEmployerShare,
	PayrollUnemploymentEmployerShare,
	PayrollMealAllowance,
	PayrollTransportAllowance,
}

// Payroll holds the monthly salary figures of one employee
type Payroll struct {
	GrossSalary               decimal.Decimal
	NetSalary                 decimal.Decimal
	SGKEmployerShare          decimal.Decimal
	UnemploymentEmployerShare decimal.Decimal
	MealAllowance             decimal.Decimal
	TransportAllowance        decimal.Decimal
}

// Field returns the amount stored under f, zero for an unknown field.
func (p Payroll) Field(f PayrollField) decimal.Decimal {
	switch f {
	case PayrollGrossSalary:
		return p.GrossSalary
	case PayrollNetSalary:
		return p.NetSalary
	case PayrollSGKEmployerShare:
		return p.SGKEmployerShare
	case PayrollUnemploymentEmployerShare:
		return p.UnemploymentEmployerShare
	case PayrollMealAllowance:
		return p.MealAllowance
	case PayrollTransportAllowance:
		return p.TransportAllowance
	}
	return decimal.Zero
}

// EmployerCost is gross salary plus employer contributions and allowances.
func (p Payroll) EmployerCost() decimal.Decimal {
	return p.GrossSalary.
		Add(p.SGKEmployerShare).
		Add(p.UnemploymentEmployerShare).
		Add(p.MealAllowance).
		Add(p.TransportAllowance)
}

// Add sums two payrolls field by field.
func (p Payroll) Add(o Payroll) Payroll {
	return Payroll{
		GrossSalary:               p.GrossSalary.Add(o.GrossSalary),
		NetSalary:                 p.NetSalary.Add(o.NetSalary),
		SGKEmployerShare:          p.SGKEmployerShare.Add(o.SGKEmployerShare),
		UnemploymentEmployerShare: p.UnemploymentEmployerShare.Add(o.UnemploymentEmployerShare),
		MealAllowance:             p.MealAllowance.Add(o.MealAllowance),
		TransportAllowance:        p.TransportAllowance.Add(o.TransportAllowance),
	}
}

func (p Payroll) validate() error {
	fields := map[string]decimal.Decimal{
		"gross_salary":                p.GrossSalary,
		"net_salary":                  p.NetSalary,
		"sgk_employer_share":          p.SGKEmployerShare,
		"unemployment_employer_share": p.UnemploymentEmployerShare,
		"meal_allowance":              p.MealAllowance,
		"transport_allowance":         p.TransportAllowance,
	}
	for name, v := range fields {
		if v.IsNegative() {
			return shared.NewFieldError(name, "Tutar negatif olamaz")
		}
	}
	if p.NetSalary.GreaterThan(p.GrossSalary) {
		return shared.NewFieldError("net_salary", "Net maaş brüt maaştan büyük olamaz")
	}
	return nil
}

// Employee is a staff member together with their monthly payroll
type Employee struct {
	shared.TenantEntity
	FirstName  string
	LastName   string
	NationalID string
	Department string
	Position   string
	Email      string
	Phone      string
	HireDate   *time.Time
	IsActive   bool
	Payroll
}

// EmployeeInput holds the editable fields of an employee form
type EmployeeInput struct {
	FirstName  string
	LastName   string
	NationalID string
	Department string
	Position   string
	Email      string
	Phone      string
	HireDate   *time.Time
	IsActive   bool
	Payroll    Payroll
}

// NewEmployee creates an employee
func NewEmployee(tenantID uuid.UUID, in EmployeeInput) (*Employee, error) {
	e := &Employee{TenantEntity: shared.NewTenantEntity(tenantID)}
	if err := e.apply(in); err != nil {
		return nil, err
	}
	return e, nil
}

// Update replaces the editable fields
func (e *Employee) Update(in EmployeeInput) error {
	if err := e.apply(in); err != nil {
		return err
	}
	e.Touch()
	return nil
}

func (e *Employee) apply(in EmployeeInput) error {
	first, err := shared.Required("first_name", in.FirstName)
	if err != nil {
		return err
	}
	last, err := shared.Required("last_name", in.LastName)
	if err != nil {
		return err
	}
	nationalID := strings.TrimSpace(in.NationalID)
	if nationalID != "" && len(nationalID) != 11 {
		return shared.NewFieldError("national_id", "TC kimlik numarası 11 haneli olmalıdır")
	}
	if err := shared.ValidateEmail("email", in.Email); err != nil {
		return err
	}
	if err := shared.ValidatePhone("phone", in.Phone); err != nil {
		return err
	}
	if err := in.Payroll.validate(); err != nil {
		return err
	}

	e.FirstName = first
	e.LastName = last
	e.NationalID = nationalID
	e.Department = strings.TrimSpace(in.Department)
	e.Position = strings.TrimSpace(in.Position)
	e.Email = strings.ToLower(strings.TrimSpace(in.Email))
	e.Phone = strings.TrimSpace(in.Phone)
	e.HireDate = in.HireDate
	e.IsActive = in.IsActive
	e.Payroll = in.Payroll
	return nil
}

// FullName joins first and last name
func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// UnassignedDepartment groups employees without a department
const UnassignedDepartment = "Atanmamış"

// DepartmentSalary is the payroll roll-up of one department
type DepartmentSalary struct {
	Department string
	Headcount  int
	Totals     Payroll
}

// GroupSalariesByDepartment sums the payroll of active employees per
// department, sorted by department name.
func GroupSalariesByDepartment(employees []Employee) []DepartmentSalary {
	index := make(map[string]*DepartmentSalary)
	for i := range employees {
		e := &employees[i]
		if !e.IsActive {
			continue
		}
		dept := e.Department
		if dept == "" {
			dept = UnassignedDepartment
		}
		ds, ok := index[dept]
		if !ok {
			ds = &DepartmentSalary{Department: dept, Totals: zeroPayroll()}
			index[dept] = ds
		}
		ds.Headcount++
		ds.Totals = ds.Totals.Add(e.Payroll)
	}

	out := make([]DepartmentSalary, 0, len(index))
	for _, ds := range index {
		out = append(out, *ds)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Department < out[j].Department })
	return out
}

// SumPayrollField totals one payroll column over active employees.
func SumPayrollField(employees []Employee, f PayrollField) decimal.Decimal {
	sum := decimal.Zero
	for i := range employees {
		if employees[i].IsActive {
			sum = sum.Add(employees[i].Payroll.Field(f))
		}
	}
	return sum
}

func zeroPayroll() Payroll {
	return Payroll{
		GrossSalary:               decimal.Zero,
		NetSalary:                 decimal.Zero,
		SGKEmployerShare:          decimal.Zero,
		UnemploymentEmployerShare: decimal.Zero,
		MealAllowance:             decimal.Zero,
		TransportAllowance:        decimal.Zero,
	}
}

// EmployeeRepository persists employees
type EmployeeRepository interface {
	shared.Repository[Employee]
	FindActive(ctx context.Context, tenantID uuid.UUID) ([]Employee, error)
}
