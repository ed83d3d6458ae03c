package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/isletme/backend/internal/domain/crm"
	"github.com/isletme/backend/internal/infrastructure/persistence/models"
)

var customerSearchFields = []string{"name", "company", "tax_number", "email"}

// GormCustomerRepository implements crm.CustomerRepository
type GormCustomerRepository struct {
	*GormRepository[crm.Customer, models.CustomerModel, *models.CustomerModel]
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{
		GormRepository: NewGormRepository[crm.Customer, models.CustomerModel](db, RepositoryOptions{
			SortFields:   CustomerSortFields,
			DefaultSort:  "name",
			FilterFields: map[string]bool{"status": true, "city": true},
			SearchFields: customerSearchFields,
		}),
	}
}

// Search matches name, company, tax number or email, ordered by name
func (r *GormCustomerRepository) Search(ctx context.Context, tenantID uuid.UUID, query string, limit int) ([]crm.Customer, error) {
	query = strings.TrimSpace(query)
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return r.find(ctx, tenantID, func(q *gorm.DB) *gorm.DB {
		if query != "" {
			q = q.Where(searchClause(customerSearchFields), searchArgs(query, len(customerSearchFields))...)
		}
		return q.Order("name ASC").Limit(limit)
	})
}

var _ crm.CustomerRepository = (*GormCustomerRepository)(nil)
