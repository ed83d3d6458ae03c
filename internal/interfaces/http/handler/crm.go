package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	crmapp "github.com/isletme/backend/internal/application/crm"
)

const defaultSearchLimit = 10

// CustomerService is the customer use case surface used by CustomerHandler
type CustomerService interface {
	crudService[crmapp.CustomerRequest, crmapp.CustomerResponse, crmapp.CustomerListFilter]
	Search(ctx context.Context, tenantID uuid.UUID, query string, limit int) ([]crmapp.CustomerResponse, error)
}

// CustomerHandler serves /crm/customers
type CustomerHandler struct {
	*crudHandler[crmapp.CustomerRequest, crmapp.CustomerResponse, crmapp.CustomerListFilter]
	customerService CustomerService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerService CustomerService) *CustomerHandler {
	crud := newCRUDHandler[crmapp.CustomerRequest, crmapp.CustomerResponse, crmapp.CustomerListFilter](customerService)
	crud.prepare = func(c *gin.Context, req *crmapp.CustomerRequest) {
		req.CreatedBy = createdBy(c)
	}
	return &CustomerHandler{crudHandler: crud, customerService: customerService}
}

// Search returns customers matching q for pickers
func (h *CustomerHandler) Search(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	limit, ok := h.intQuery(c, "limit", defaultSearchLimit)
	if !ok {
		return
	}

	customers, err := h.customerService.Search(c.Request.Context(), tenantID, c.Query("q"), limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customers)
}
