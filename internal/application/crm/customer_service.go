// Package crm implements the customer use cases.
package crm

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/isletme/backend/internal/domain/crm"
)

const (
	defaultSearchLimit = 10
	maxSearchLimit     = 50
)

// CustomerService handles customer-related business operations
type CustomerService struct {
	customerRepo crm.CustomerRepository
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo crm.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// Create creates a new customer
func (s *CustomerService) Create(ctx context.Context, tenantID uuid.UUID, req CustomerRequest) (*CustomerResponse, error) {
	customer, err := crm.NewCustomer(tenantID, req.input())
	if err != nil {
		return nil, err
	}
	if req.CreatedBy != nil {
		customer.SetCreatedBy(*req.CreatedBy)
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	response := ToCustomerResponse(customer)
	return &response, nil
}

// GetByID retrieves a customer by ID
func (s *CustomerService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	response := ToCustomerResponse(customer)
	return &response, nil
}

// List lists customers with filtering and pagination
func (s *CustomerService) List(ctx context.Context, tenantID uuid.UUID, filter CustomerListFilter) ([]CustomerResponse, int64, error) {
	domainFilter := filter.Filter(map[string]string{
		"status": filter.Status,
		"city":   filter.City,
	})
	if filter.OrderBy == "" {
		domainFilter.OrderBy = "name"
		domainFilter.OrderDir = "asc"
	}

	customers, err := s.customerRepo.FindAll(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.customerRepo.Count(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToCustomerResponses(customers), total, nil
}

// Search matches customers by name, company, tax number or email
func (s *CustomerService) Search(ctx context.Context, tenantID uuid.UUID, query string, limit int) ([]CustomerResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []CustomerResponse{}, nil
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	limit = min(limit, maxSearchLimit)

	customers, err := s.customerRepo.Search(ctx, tenantID, query, limit)
	if err != nil {
		return nil, err
	}
	return ToCustomerResponses(customers), nil
}

// Update replaces a customer's fields
func (s *CustomerService) Update(ctx context.Context, tenantID, id uuid.UUID, req CustomerRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := customer.Update(req.input()); err != nil {
		return nil, err
	}
	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	response := ToCustomerResponse(customer)
	return &response, nil
}

// Delete deletes a customer
func (s *CustomerService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.customerRepo.Delete(ctx, tenantID, id)
}
