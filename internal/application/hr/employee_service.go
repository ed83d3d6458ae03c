// Package hr implements employee and payroll use cases.
package hr

import (
	"context"

	"github.com/google/uuid"

	"github.com/isletme/backend/internal/domain/hr"
)

// EmployeeService handles employees and salary reporting
type EmployeeService struct {
	employeeRepo hr.EmployeeRepository
}

// NewEmployeeService creates a new EmployeeService
func NewEmployeeService(employeeRepo hr.EmployeeRepository) *EmployeeService {
	return &EmployeeService{employeeRepo: employeeRepo}
}

// Create creates an employee
func (s *EmployeeService) Create(ctx context.Context, tenantID uuid.UUID, req EmployeeRequest) (*EmployeeResponse, error) {
	employee, err := hr.NewEmployee(tenantID, req.input())
	if err != nil {
		return nil, err
	}
	if req.CreatedBy != nil {
		employee.SetCreatedBy(*req.CreatedBy)
	}
	if err := s.employeeRepo.Create(ctx, employee); err != nil {
		return nil, err
	}
	response := ToEmployeeResponse(employee)
	return &response, nil
}

// GetByID retrieves an employee by ID
func (s *EmployeeService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*EmployeeResponse, error) {
	employee, err := s.employeeRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	response := ToEmployeeResponse(employee)
	return &response, nil
}

// List lists employees ordered by last name by default
func (s *EmployeeService) List(ctx context.Context, tenantID uuid.UUID, filter EmployeeListFilter) ([]EmployeeResponse, int64, error) {
	domainFilter := filter.Filter(map[string]string{"department": filter.Department})
	if filter.IsActive != "" {
		domainFilter.Filters["is_active"] = filter.IsActive == "true"
	}
	if filter.OrderBy == "" {
		domainFilter.OrderBy = "last_name"
		domainFilter.OrderDir = "asc"
	}

	employees, err := s.employeeRepo.FindAll(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.employeeRepo.Count(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToEmployeeResponses(employees), total, nil
}

// Update replaces an employee's fields
func (s *EmployeeService) Update(ctx context.Context, tenantID, id uuid.UUID, req EmployeeRequest) (*EmployeeResponse, error) {
	employee, err := s.employeeRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := employee.Update(req.input()); err != nil {
		return nil, err
	}
	if err := s.employeeRepo.Update(ctx, employee); err != nil {
		return nil, err
	}
	response := ToEmployeeResponse(employee)
	return &response, nil
}

// Delete deletes an employee
func (s *EmployeeService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.employeeRepo.Delete(ctx, tenantID, id)
}

// SalariesByDepartment rolls up the payroll of active employees
func (s *EmployeeService) SalariesByDepartment(ctx context.Context, tenantID uuid.UUID) (*SalaryReport, error) {
	employees, err := s.employeeRepo.FindActive(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	groups := hr.GroupSalariesByDepartment(employees)
	report := &SalaryReport{Departments: make([]DepartmentSalaryResponse, len(groups))}
	var totals hr.Payroll
	for i, g := range groups {
		report.Departments[i] = DepartmentSalaryResponse{
			Department:   g.Department,
			Headcount:    g.Headcount,
			PayrollDTO:   toPayrollDTO(g.Totals),
			EmployerCost: g.Totals.EmployerCost(),
		}
		report.Headcount += g.Headcount
		totals = totals.Add(g.Totals)
	}
	report.Totals = toPayrollDTO(totals)
	return report, nil
}
