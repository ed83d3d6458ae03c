package servicedesk

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/isletme/backend/internal/domain/shared"
)

// TaskStatus is the progress of a to-do item
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

// IsValid checks if the status is known
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone, TaskStatusCancelled:
		return true
	}
	return false
}

// Task is an internal to-do item (görev), optionally linked to another record
type Task struct {
	shared.TenantEntity
	Title       string
	Description string
	AssignedTo  string
	Priority    Priority
	Status      TaskStatus
	DueDate     *time.Time
	CompletedAt *time.Time
	RelatedType string
	RelatedID   *uuid.UUID
}

// TaskInput holds the editable fields of a task form
type TaskInput struct {
	Title       string
	Description string
	AssignedTo  string
	Priority    string
	Status      string
	DueDate     *time.Time
	RelatedType string
	RelatedID   *uuid.UUID
}

// NewTask creates a task
func NewTask(tenantID uuid.UUID, in TaskInput) (*Task, error) {
	t := &Task{TenantEntity: shared.NewTenantEntity(tenantID), Status: TaskStatusTodo}
	if err := t.apply(in); err != nil {
		return nil, err
	}
	return t, nil
}

// Update replaces the editable fields
func (t *Task) Update(in TaskInput) error {
	if err := t.apply(in); err != nil {
		return err
	}
	t.Touch()
	return nil
}

func (t *Task) apply(in TaskInput) error {
	title, err := shared.Required("title", in.Title)
	if err != nil {
		return err
	}
	priority, err := parsePriority(in.Priority)
	if err != nil {
		return err
	}
	if priority == PriorityUrgent {
		priority = PriorityHigh
	}
	status := t.Status
	if in.Status != "" {
		status = TaskStatus(strings.ToLower(in.Status))
		if !status.IsValid() {
			return shared.NewFieldError("status", "Geçersiz görev durumu")
		}
	}
	if in.RelatedID != nil && strings.TrimSpace(in.RelatedType) == "" {
		return shared.RequiredField("related_type")
	}

	t.Title = title
	t.Description = strings.TrimSpace(in.Description)
	t.AssignedTo = strings.TrimSpace(in.AssignedTo)
	t.Priority = priority
	t.DueDate = in.DueDate
	t.RelatedType = strings.TrimSpace(in.RelatedType)
	t.RelatedID = in.RelatedID
	t.setStatus(status)
	return nil
}

// Complete marks the task done
func (t *Task) Complete() error {
	if t.Status == TaskStatusDone || t.Status == TaskStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Görev zaten kapanmış")
	}
	t.setStatus(TaskStatusDone)
	t.Touch()
	return nil
}

func (t *Task) setStatus(s TaskStatus) {
	if s == TaskStatusDone && t.Status != TaskStatusDone {
		now := time.Now()
		t.CompletedAt = &now
	}
	if s != TaskStatusDone {
		t.CompletedAt = nil
	}
	t.Status = s
}

// IsOverdue reports whether an unfinished task is past its due date
func (t *Task) IsOverdue(now time.Time) bool {
	if t.DueDate == nil || t.Status == TaskStatusDone || t.Status == TaskStatusCancelled {
		return false
	}
	return now.After(*t.DueDate)
}

// TaskRepository persists tasks
type TaskRepository interface {
	shared.Repository[Task]
	// FindDueBetween lists unfinished tasks due in [from, to).
	FindDueBetween(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]Task, error)
}
