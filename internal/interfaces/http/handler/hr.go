package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	hrapp "github.com/isletme/backend/internal/application/hr"
)

// EmployeeService is the employee use case surface
type EmployeeService interface {
	crudService[hrapp.EmployeeRequest, hrapp.EmployeeResponse, hrapp.EmployeeListFilter]
	SalariesByDepartment(ctx context.Context, tenantID uuid.UUID) (*hrapp.SalaryReport, error)
}

// EmployeeHandler serves /hr/employees
type EmployeeHandler struct {
	*crudHandler[hrapp.EmployeeRequest, hrapp.EmployeeResponse, hrapp.EmployeeListFilter]
	employeeService EmployeeService
}

// NewEmployeeHandler creates a new EmployeeHandler
func NewEmployeeHandler(employeeService EmployeeService) *EmployeeHandler {
	crud := newCRUDHandler[hrapp.EmployeeRequest, hrapp.EmployeeResponse, hrapp.EmployeeListFilter](employeeService)
	crud.prepare = func(c *gin.Context, req *hrapp.EmployeeRequest) {
		req.CreatedBy = createdBy(c)
	}
	return &EmployeeHandler{crudHandler: crud, employeeService: employeeService}
}

// SalariesByDepartment returns payroll totals grouped by department
func (h *EmployeeHandler) SalariesByDepartment(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}

	report, err := h.employeeService.SalariesByDepartment(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}
