// Package servicedesk implements service tickets and internal tasks.
package servicedesk

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/isletme/backend/internal/domain/crm"
	"github.com/isletme/backend/internal/domain/servicedesk"
	"github.com/isletme/backend/internal/domain/shared"
)

// ServiceRequestService handles service tickets
type ServiceRequestService struct {
	requestRepo  servicedesk.ServiceRequestRepository
	customerRepo crm.CustomerRepository
	loc          *time.Location
	now          func() time.Time
}

// NewServiceRequestService creates a new ServiceRequestService. Ticket
// numbers use the calendar month in loc.
func NewServiceRequestService(requestRepo servicedesk.ServiceRequestRepository, customerRepo crm.CustomerRepository, loc *time.Location) *ServiceRequestService {
	if loc == nil {
		loc = time.UTC
	}
	return &ServiceRequestService{
		requestRepo:  requestRepo,
		customerRepo: customerRepo,
		loc:          loc,
		now:          time.Now,
	}
}

// Create numbers and opens a ticket
func (s *ServiceRequestService) Create(ctx context.Context, tenantID uuid.UUID, req ServiceRequestRequest) (*ServiceRequestResponse, error) {
	if err := s.ensureCustomer(ctx, tenantID, req.CustomerID); err != nil {
		return nil, err
	}
	now := s.now().In(s.loc)
	seq, err := s.requestRepo.CountInMonth(ctx, tenantID, now)
	if err != nil {
		return nil, err
	}

	request, err := servicedesk.NewServiceRequest(tenantID, servicedesk.FormatTicketNumber(now, seq+1), req.input())
	if err != nil {
		return nil, err
	}
	if req.CreatedBy != nil {
		request.SetCreatedBy(*req.CreatedBy)
	}
	if err := s.requestRepo.Create(ctx, request); err != nil {
		return nil, err
	}
	response := ToServiceRequestResponse(request)
	return &response, nil
}

// GetByID retrieves a ticket by ID
func (s *ServiceRequestService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*ServiceRequestResponse, error) {
	request, err := s.requestRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	response := ToServiceRequestResponse(request)
	return &response, nil
}

// List lists tickets, newest first by default
func (s *ServiceRequestService) List(ctx context.Context, tenantID uuid.UUID, filter ServiceRequestListFilter) ([]ServiceRequestResponse, int64, error) {
	domainFilter := filter.Filter(map[string]string{
		"status":      filter.Status,
		"priority":    filter.Priority,
		"customer_id": filter.CustomerID,
		"assigned_to": filter.AssignedTo,
	})

	requests, err := s.requestRepo.FindAll(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.requestRepo.Count(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToServiceRequestResponses(requests), total, nil
}

// Update replaces the editable fields of a ticket
func (s *ServiceRequestService) Update(ctx context.Context, tenantID, id uuid.UUID, req ServiceRequestRequest) (*ServiceRequestResponse, error) {
	request, err := s.requestRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if !sameCustomer(request.CustomerID, req.CustomerID) {
		if err := s.ensureCustomer(ctx, tenantID, req.CustomerID); err != nil {
			return nil, err
		}
	}
	if err := request.Update(req.input()); err != nil {
		return nil, err
	}
	if err := s.requestRepo.Update(ctx, request); err != nil {
		return nil, err
	}
	response := ToServiceRequestResponse(request)
	return &response, nil
}

// Delete deletes a ticket
func (s *ServiceRequestService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.requestRepo.Delete(ctx, tenantID, id)
}

// Start moves an open ticket into work
func (s *ServiceRequestService) Start(ctx context.Context, tenantID, id uuid.UUID) (*ServiceRequestResponse, error) {
	return s.transition(ctx, tenantID, id, (*servicedesk.ServiceRequest).Start)
}

// Resolve records the resolution of a ticket
func (s *ServiceRequestService) Resolve(ctx context.Context, tenantID, id uuid.UUID, resolution string) (*ServiceRequestResponse, error) {
	return s.transition(ctx, tenantID, id, func(r *servicedesk.ServiceRequest) error {
		return r.Resolve(resolution)
	})
}

// Close archives a resolved ticket
func (s *ServiceRequestService) Close(ctx context.Context, tenantID, id uuid.UUID) (*ServiceRequestResponse, error) {
	return s.transition(ctx, tenantID, id, (*servicedesk.ServiceRequest).Close)
}

// Cancel abandons a ticket
func (s *ServiceRequestService) Cancel(ctx context.Context, tenantID, id uuid.UUID) (*ServiceRequestResponse, error) {
	return s.transition(ctx, tenantID, id, (*servicedesk.ServiceRequest).Cancel)
}

func (s *ServiceRequestService) transition(ctx context.Context, tenantID, id uuid.UUID, apply func(*servicedesk.ServiceRequest) error) (*ServiceRequestResponse, error) {
	request, err := s.requestRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := apply(request); err != nil {
		return nil, err
	}
	if err := s.requestRepo.Update(ctx, request); err != nil {
		return nil, err
	}
	response := ToServiceRequestResponse(request)
	return &response, nil
}

func (s *ServiceRequestService) ensureCustomer(ctx context.Context, tenantID uuid.UUID, customerID *uuid.UUID) error {
	if customerID == nil {
		return nil
	}
	_, err := s.customerRepo.FindByID(ctx, tenantID, *customerID)
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NewFieldError("customer_id", "Müşteri bulunamadı")
	}
	return err
}

func sameCustomer(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
