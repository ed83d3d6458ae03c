package servicedesk

import (
	"time"

	"github.com/google/uuid"

	"github.com/isletme/backend/internal/application/common"
	"github.com/isletme/backend/internal/domain/servicedesk"
)

// =============================================================================
// Service Request DTOs
// =============================================================================

// ServiceRequestRequest is the body of ticket create and update requests
type ServiceRequestRequest struct {
	CustomerID  *uuid.UUID `json:"customer_id"`
	Title       string     `json:"title" binding:"required,max=200"`
	Description string     `json:"description" binding:"max=5000"`
	Priority    string     `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	AssignedTo  string     `json:"assigned_to" binding:"max=100"`
	ScheduledAt *time.Time `json:"scheduled_at"`
	CreatedBy   *uuid.UUID `json:"-"`
}

func (r ServiceRequestRequest) input() servicedesk.ServiceRequestInput {
	return servicedesk.ServiceRequestInput{
		CustomerID:  r.CustomerID,
		Title:       r.Title,
		Description: r.Description,
		Priority:    r.Priority,
		AssignedTo:  r.AssignedTo,
		ScheduledAt: r.ScheduledAt,
	}
}

// ResolveRequest carries the resolution note of a ticket
type ResolveRequest struct {
	Resolution string `json:"resolution" binding:"max=5000"`
}

// ServiceRequestListFilter represents filter options for the ticket list
type ServiceRequestListFilter struct {
	common.ListQuery
	Status     string `form:"status" binding:"omitempty,oneof=open in_progress resolved closed cancelled"`
	Priority   string `form:"priority" binding:"omitempty,oneof=low medium high urgent"`
	CustomerID string `form:"customer_id" binding:"omitempty,uuid"`
	AssignedTo string `form:"assigned_to"`
}

// ServiceRequestResponse represents a ticket in API responses
type ServiceRequestResponse struct {
	ID              uuid.UUID  `json:"id"`
	TicketNumber    string     `json:"ticket_number"`
	CustomerID      *uuid.UUID `json:"customer_id,omitempty"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Priority        string     `json:"priority"`
	PriorityDisplay string     `json:"priority_display"`
	Status          string     `json:"status"`
	StatusDisplay   string     `json:"status_display"`
	AssignedTo      string     `json:"assigned_to"`
	ScheduledAt     *time.Time `json:"scheduled_at,omitempty"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	Resolution      string     `json:"resolution"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// ToServiceRequestResponse converts a domain ServiceRequest to its response
func ToServiceRequestResponse(r *servicedesk.ServiceRequest) ServiceRequestResponse {
	return ServiceRequestResponse{
		ID:              r.ID,
		TicketNumber:    r.TicketNumber,
		CustomerID:      r.CustomerID,
		Title:           r.Title,
		Description:     r.Description,
		Priority:        string(r.Priority),
		PriorityDisplay: r.Priority.DisplayName(),
		Status:          string(r.Status),
		StatusDisplay:   r.Status.DisplayName(),
		AssignedTo:      r.AssignedTo,
		ScheduledAt:     r.ScheduledAt,
		CompletedAt:     r.CompletedAt,
		Resolution:      r.Resolution,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// ToServiceRequestResponses converts a slice of tickets
func ToServiceRequestResponses(requests []servicedesk.ServiceRequest) []ServiceRequestResponse {
	out := make([]ServiceRequestResponse, len(requests))
	for i := range requests {
		out[i] = ToServiceRequestResponse(&requests[i])
	}
	return out
}

// =============================================================================
// Task DTOs
// =============================================================================

// TaskRequest is the body of task create and update requests
type TaskRequest struct {
	Title       string     `json:"title" binding:"required,max=200"`
	Description string     `json:"description" binding:"max=5000"`
	AssignedTo  string     `json:"assigned_to" binding:"max=100"`
	Priority    string     `json:"priority" binding:"omitempty,oneof=low medium high"`
	Status      string     `json:"status" binding:"omitempty,oneof=todo in_progress done cancelled"`
	DueDate     *time.Time `json:"due_date"`
	RelatedType string     `json:"related_type" binding:"max=50"`
	RelatedID   *uuid.UUID `json:"related_id"`
	CreatedBy   *uuid.UUID `json:"-"`
}

func (r TaskRequest) input() servicedesk.TaskInput {
	return servicedesk.TaskInput{
		Title:       r.Title,
		Description: r.Description,
		AssignedTo:  r.AssignedTo,
		Priority:    r.Priority,
		Status:      r.Status,
		DueDate:     r.DueDate,
		RelatedType: r.RelatedType,
		RelatedID:   r.RelatedID,
	}
}

// TaskListFilter represents filter options for the task list
type TaskListFilter struct {
	common.ListQuery
	Status      string `form:"status" binding:"omitempty,oneof=todo in_progress done cancelled"`
	Priority    string `form:"priority" binding:"omitempty,oneof=low medium high"`
	AssignedTo  string `form:"assigned_to"`
	RelatedType string `form:"related_type"`
	DueDate     string `form:"due_date" binding:"omitempty,datetime=2006-01-02"`
}

// TaskResponse represents a task in API responses
type TaskResponse struct {
	ID              uuid.UUID  `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	AssignedTo      string     `json:"assigned_to"`
	Priority        string     `json:"priority"`
	PriorityDisplay string     `json:"priority_display"`
	Status          string     `json:"status"`
	DueDate         *time.Time `json:"due_date,omitempty"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	Overdue         bool       `json:"overdue"`
	RelatedType     string     `json:"related_type,omitempty"`
	RelatedID       *uuid.UUID `json:"related_id,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// ToTaskResponse converts a domain Task to TaskResponse; now decides overdue
func ToTaskResponse(t *servicedesk.Task, now time.Time) TaskResponse {
	return TaskResponse{
		ID:              t.ID,
		Title:           t.Title,
		Description:     t.Description,
		AssignedTo:      t.AssignedTo,
		Priority:        string(t.Priority),
		PriorityDisplay: t.Priority.DisplayName(),
		Status:          string(t.Status),
		DueDate:         t.DueDate,
		CompletedAt:     t.CompletedAt,
		Overdue:         t.IsOverdue(now),
		RelatedType:     t.RelatedType,
		RelatedID:       t.RelatedID,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

// ToTaskResponses converts a slice of tasks
func ToTaskResponses(tasks []servicedesk.Task, now time.Time) []TaskResponse {
	out := make([]TaskResponse, len(tasks))
	for i := range tasks {
		out[i] = ToTaskResponse(&tasks[i], now)
	}
	return out
}
