package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/isletme/backend/internal/domain/servicedesk"
	"github.com/isletme/backend/internal/infrastructure/persistence/models"
)

// GormServiceRequestRepository implements servicedesk.ServiceRequestRepository
type GormServiceRequestRepository struct {
	*GormRepository[servicedesk.ServiceRequest, models.ServiceRequestModel, *models.ServiceRequestModel]
}

// NewGormServiceRequestRepository creates a new GormServiceRequestRepository
func NewGormServiceRequestRepository(db *gorm.DB) *GormServiceRequestRepository {
	return &GormServiceRequestRepository{
		GormRepository: NewGormRepository[servicedesk.ServiceRequest, models.ServiceRequestModel](db, RepositoryOptions{
			SortFields:   ServiceRequestSortFields,
			FilterFields: map[string]bool{"status": true, "priority": true, "customer_id": true, "assigned_to": true},
			SearchFields: []string{"ticket_number", "title", "description"},
		}),
	}
}

// CountInMonth counts requests created in the calendar month of at
func (r *GormServiceRequestRepository) CountInMonth(ctx context.Context, tenantID uuid.UUID, at time.Time) (int64, error) {
	return countInMonth(r.DB(ctx), &models.ServiceRequestModel{}, tenantID, at)
}

// CountOpen counts requests that are open or in progress
func (r *GormServiceRequestRepository) CountOpen(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var n int64
	err := r.DB(ctx).Model(&models.ServiceRequestModel{}).
		Scopes(TenantScope(tenantID)).
		Where("status IN ?", []servicedesk.RequestStatus{servicedesk.RequestStatusOpen, servicedesk.RequestStatusInProgress}).
		Count(&n).Error
	return n, err
}

// GormTaskRepository implements servicedesk.TaskRepository
type GormTaskRepository struct {
	*GormRepository[servicedesk.Task, models.TaskModel, *models.TaskModel]
}

// NewGormTaskRepository creates a new GormTaskRepository
func NewGormTaskRepository(db *gorm.DB) *GormTaskRepository {
	return &GormTaskRepository{
		GormRepository: NewGormRepository[servicedesk.Task, models.TaskModel](db, RepositoryOptions{
			SortFields:   TaskSortFields,
			FilterFields: map[string]bool{"status": true, "priority": true, "assigned_to": true, "related_type": true, "due_date": true},
			SearchFields: []string{"title", "description"},
		}),
	}
}

// FindDueBetween lists unfinished tasks due in [from, to), earliest first
func (r *GormTaskRepository) FindDueBetween(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]servicedesk.Task, error) {
	return r.find(ctx, tenantID, func(q *gorm.DB) *gorm.DB {
		return q.Where("status IN ? AND due_date >= ? AND due_date < ?",
			[]servicedesk.TaskStatus{servicedesk.TaskStatusTodo, servicedesk.TaskStatusInProgress}, from, to).
			Order("due_date ASC")
	})
}

var (
	_ servicedesk.ServiceRequestRepository = (*GormServiceRequestRepository)(nil)
	_ servicedesk.TaskRepository           = (*GormTaskRepository)(nil)
)
