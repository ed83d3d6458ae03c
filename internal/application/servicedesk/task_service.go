package servicedesk

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/isletme/backend/internal/domain/servicedesk"
)

// TaskService handles internal tasks
type TaskService struct {
	taskRepo servicedesk.TaskRepository
	now      func() time.Time
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo servicedesk.TaskRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo, now: time.Now}
}

// Create creates a task
func (s *TaskService) Create(ctx context.Context, tenantID uuid.UUID, req TaskRequest) (*TaskResponse, error) {
	task, err := servicedesk.NewTask(tenantID, req.input())
	if err != nil {
		return nil, err
	}
	if req.CreatedBy != nil {
		task.SetCreatedBy(*req.CreatedBy)
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}
	response := ToTaskResponse(task, s.now())
	return &response, nil
}

// GetByID retrieves a task by ID
func (s *TaskService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*TaskResponse, error) {
	task, err := s.taskRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	response := ToTaskResponse(task, s.now())
	return &response, nil
}

// List lists tasks, earliest due date first by default
func (s *TaskService) List(ctx context.Context, tenantID uuid.UUID, filter TaskListFilter) ([]TaskResponse, int64, error) {
	domainFilter := filter.Filter(map[string]string{
		"status":       filter.Status,
		"priority":     filter.Priority,
		"assigned_to":  filter.AssignedTo,
		"related_type": filter.RelatedType,
		"due_date":     filter.DueDate,
	})
	if filter.OrderBy == "" {
		domainFilter.OrderBy = "due_date"
		domainFilter.OrderDir = "asc"
	}

	tasks, err := s.taskRepo.FindAll(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.taskRepo.Count(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToTaskResponses(tasks, s.now()), total, nil
}

// Update replaces a task's fields
func (s *TaskService) Update(ctx context.Context, tenantID, id uuid.UUID, req TaskRequest) (*TaskResponse, error) {
	task, err := s.taskRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := task.Update(req.input()); err != nil {
		return nil, err
	}
	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}
	response := ToTaskResponse(task, s.now())
	return &response, nil
}

// Complete marks a task done
func (s *TaskService) Complete(ctx context.Context, tenantID, id uuid.UUID) (*TaskResponse, error) {
	task, err := s.taskRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := task.Complete(); err != nil {
		return nil, err
	}
	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}
	response := ToTaskResponse(task, s.now())
	return &response, nil
}

// Delete deletes a task
func (s *TaskService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.taskRepo.Delete(ctx, tenantID, id)
}
