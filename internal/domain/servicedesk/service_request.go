package servicedesk

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/isletme/backend/internal/domain/shared"
)

// Priority is shared by service requests and tasks
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// IsValid checks if the priority is known
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// DisplayName returns the Turkish label
func (p Priority) DisplayName() string {
	switch p {
	case PriorityLow:
		return "Düşük"
	case PriorityMedium:
		return "Orta"
	case PriorityHigh:
		return "Yüksek"
	case PriorityUrgent:
		return "Acil"
	}
	return string(p)
}

func parsePriority(s string) (Priority, error) {
	if s == "" {
		return PriorityMedium, nil
	}
	p := Priority(strings.ToLower(s))
	if !p.IsValid() {
		return "", shared.NewFieldError("priority", "Geçersiz öncelik")
	}
	return p, nil
}

// RequestStatus is the lifecycle of a service ticket
type RequestStatus string

const (
	RequestStatusOpen       RequestStatus = "open"
	RequestStatusInProgress RequestStatus = "in_progress"
	RequestStatusResolved   RequestStatus = "resolved"
	RequestStatusClosed     RequestStatus = "closed"
	RequestStatusCancelled  RequestStatus = "cancelled"
)

// IsValid checks if the status is known
func (s RequestStatus) IsValid() bool {
	switch s {
	case RequestStatusOpen, RequestStatusInProgress, RequestStatusResolved,
		RequestStatusClosed, RequestStatusCancelled:
		return true
	}
	return false
}

// IsOpen is true while the ticket still needs work
func (s RequestStatus) IsOpen() bool {
	return s == RequestStatusOpen || s == RequestStatusInProgress
}

// DisplayName returns the Turkish label
func (s RequestStatus) DisplayName() string {
	switch s {
	case RequestStatusOpen:
		return "Açık"
	case RequestStatusInProgress:
		return "İşlemde"
	case RequestStatusResolved:
		return "Çözüldü"
	case RequestStatusClosed:
		return "Kapatıldı"
	case RequestStatusCancelled:
		return "İptal Edildi"
	}
	return string(s)
}

// ServiceRequest is a customer service ticket (servis talebi)
type ServiceRequest struct {
	shared.TenantEntity
	TicketNumber string
	CustomerID   *uuid.UUID
	Title        string
	Description  string
	Priority     Priority
	Status       RequestStatus
	AssignedTo   string
	ScheduledAt  *time.Time
	CompletedAt  *time.Time
	Resolution   string
}

// ServiceRequestInput holds the editable fields of a ticket form
type ServiceRequestInput struct {
	CustomerID  *uuid.UUID
	Title       string
	Description string
	Priority    string
	AssignedTo  string
	ScheduledAt *time.Time
}

// NewServiceRequest opens a ticket
func NewServiceRequest(tenantID uuid.UUID, ticketNumber string, in ServiceRequestInput) (*ServiceRequest, error) {
	if strings.TrimSpace(ticketNumber) == "" {
		return nil, shared.RequiredField("ticket_number")
	}
	r := &ServiceRequest{
		TenantEntity: shared.NewTenantEntity(tenantID),
		TicketNumber: ticketNumber,
		Status:       RequestStatusOpen,
	}
	if err := r.apply(in); err != nil {
		return nil, err
	}
	return r, nil
}

// Update replaces the editable fields of a ticket that is not closed.
func (r *ServiceRequest) Update(in ServiceRequestInput) error {
	if r.Status == RequestStatusClosed || r.Status == RequestStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Kapatılmış talepler düzenlenemez")
	}
	if err := r.apply(in); err != nil {
		return err
	}
	r.Touch()
	return nil
}

func (r *ServiceRequest) apply(in ServiceRequestInput) error {
	title, err := shared.Required("title", in.Title)
	if err != nil {
		return err
	}
	priority, err := parsePriority(in.Priority)
	if err != nil {
		return err
	}
	r.CustomerID = in.CustomerID
	r.Title = title
	r.Description = strings.TrimSpace(in.Description)
	r.Priority = priority
	r.AssignedTo = strings.TrimSpace(in.AssignedTo)
	r.ScheduledAt = in.ScheduledAt
	return nil
}

// Start moves an open ticket into work
func (r *ServiceRequest) Start() error {
	if r.Status != RequestStatusOpen {
		return shared.NewDomainError("INVALID_STATE", "Sadece açık talepler başlatılabilir")
	}
	r.Status = RequestStatusInProgress
	r.Touch()
	return nil
}

// Resolve records the resolution and completion time
func (r *ServiceRequest) Resolve(resolution string) error {
	if !r.Status.IsOpen() {
		return shared.NewDomainError("INVALID_STATE", "Talep çözülebilir durumda değil")
	}
	now := time.Now()
	r.Status = RequestStatusResolved
	r.Resolution = strings.TrimSpace(resolution)
	r.CompletedAt = &now
	r.Touch()
	return nil
}

// Close archives a resolved ticket
func (r *ServiceRequest) Close() error {
	if r.Status != RequestStatusResolved {
		return shared.NewDomainError("INVALID_STATE", "Sadece çözülmüş talepler kapatılabilir")
	}
	r.Status = RequestStatusClosed
	r.Touch()
	return nil
}

// Cancel abandons any ticket that is not closed yet
func (r *ServiceRequest) Cancel() error {
	if r.Status == RequestStatusClosed || r.Status == RequestStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Talep iptal edilemez")
	}
	r.Status = RequestStatusCancelled
	r.Touch()
	return nil
}

// FormatTicketNumber builds SRV-YYYYMM-NNNNN
func FormatTicketNumber(at time.Time, seq int64) string {
	return fmt.Sprintf("SRV-%s-%05d", at.Format("200601"), seq)
}

// ServiceRequestRepository persists tickets
type ServiceRequestRepository interface {
	shared.Repository[ServiceRequest]
	CountInMonth(ctx context.Context, tenantID uuid.UUID, at time.Time) (int64, error)
	CountOpen(ctx context.Context, tenantID uuid.UUID) (int64, error)
}
