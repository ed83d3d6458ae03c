package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/isletme/backend/internal/domain/hr"
	"github.com/isletme/backend/internal/infrastructure/persistence/models"
)

// GormEmployeeRepository implements hr.EmployeeRepository
type GormEmployeeRepository struct {
	*GormRepository[hr.Employee, models.EmployeeModel, *models.EmployeeModel]
}

// NewGormEmployeeRepository creates a new GormEmployeeRepository
func NewGormEmployeeRepository(db *gorm.DB) *GormEmployeeRepository {
	return &GormEmployeeRepository{
		GormRepository: NewGormRepository[hr.Employee, models.EmployeeModel](db, RepositoryOptions{
			SortFields:   EmployeeSortFields,
			DefaultSort:  "last_name",
			FilterFields: map[string]bool{"department": true, "is_active": true},
			SearchFields: []string{"first_name", "last_name", "department", "position"},
		}),
	}
}

// FindActive lists active employees ordered by department and name
func (r *GormEmployeeRepository) FindActive(ctx context.Context, tenantID uuid.UUID) ([]hr.Employee, error) {
	return r.find(ctx, tenantID, func(q *gorm.DB) *gorm.DB {
		return q.Where("is_active = ?", true).Order("department ASC, last_name ASC, first_name ASC")
	})
}

var _ hr.EmployeeRepository = (*GormEmployeeRepository)(nil)
