package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/isletme/backend/internal/domain/servicedesk"
)

// ServiceRequestModel maps the service_requests table
type ServiceRequestModel struct {
	TenantModel
	TicketNumber string                    `gorm:"type:varchar(30);not null;index"`
	CustomerID   *uuid.UUID                `gorm:"type:uuid;index"`
	Title        string                    `gorm:"type:varchar(200);not null"`
	Description  string                    `gorm:"type:text"`
	Priority     servicedesk.Priority      `gorm:"type:varchar(20);not null;default:'medium'"`
	Status       servicedesk.RequestStatus `gorm:"type:varchar(20);not null;default:'open';index"`
	AssignedTo   string                    `gorm:"type:varchar(200)"`
	ScheduledAt  *time.Time
	CompletedAt  *time.Time
	Resolution   string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ServiceRequestModel) TableName() string {
	return "service_requests"
}

// ToDomain converts the model to a domain service request
func (m *ServiceRequestModel) ToDomain() *servicedesk.ServiceRequest {
	return &servicedesk.ServiceRequest{
		TenantEntity: m.Entity(),
		TicketNumber: m.TicketNumber,
		CustomerID:   m.CustomerID,
		Title:        m.Title,
		Description:  m.Description,
		Priority:     m.Priority,
		Status:       m.Status,
		AssignedTo:   m.AssignedTo,
		ScheduledAt:  m.ScheduledAt,
		CompletedAt:  m.CompletedAt,
		Resolution:   m.Resolution,
	}
}

// FromDomain populates the model from a domain service request
func (m *ServiceRequestModel) FromDomain(r *servicedesk.ServiceRequest) {
	m.FromEntity(r.TenantEntity)
	m.TicketNumber = r.TicketNumber
	m.CustomerID = r.CustomerID
	m.Title = r.Title
	m.Description = r.Description
	m.Priority = r.Priority
	m.Status = r.Status
	m.AssignedTo = r.AssignedTo
	m.ScheduledAt = r.ScheduledAt
	m.CompletedAt = r.CompletedAt
	m.Resolution = r.Resolution
}

// TaskModel maps the tasks table
type TaskModel struct {
	TenantModel
	Title       string                 `gorm:"type:varchar(200);not null"`
	Description string                 `gorm:"type:text"`
	AssignedTo  string                 `gorm:"type:varchar(200);index"`
	Priority    servicedesk.Priority   `gorm:"type:varchar(20);not null;default:'medium'"`
	Status      servicedesk.TaskStatus `gorm:"type:varchar(20);not null;default:'todo';index"`
	DueDate     *time.Time             `gorm:"type:date;index"`
	CompletedAt *time.Time
	RelatedType string     `gorm:"type:varchar(50)"`
	RelatedID   *uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (TaskModel) TableName() string {
	return "tasks"
}

// ToDomain converts the model to a domain task
func (m *TaskModel) ToDomain() *servicedesk.Task {
	return &servicedesk.Task{
		TenantEntity: m.Entity(),
		Title:        m.Title,
		Description:  m.Description,
		AssignedTo:   m.AssignedTo,
		Priority:     m.Priority,
		Status:       m.Status,
		DueDate:      m.DueDate,
		CompletedAt:  m.CompletedAt,
		RelatedType:  m.RelatedType,
		RelatedID:    m.RelatedID,
	}
}

// FromDomain populates the model from a domain task
func (m *TaskModel) FromDomain(t *servicedesk.Task) {
	m.FromEntity(t.TenantEntity)
	m.Title = t.Title
	m.Description = t.Description
	m.AssignedTo = t.AssignedTo
	m.Priority = t.Priority
	m.Status = t.Status
	m.DueDate = t.DueDate
	m.CompletedAt = t.CompletedAt
	m.RelatedType = t.RelatedType
	m.RelatedID = t.RelatedID
}
