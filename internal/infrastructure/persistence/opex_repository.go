package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/isletme/backend/internal/domain/opex"
	"github.com/isletme/backend/internal/infrastructure/persistence/models"
)

// GormOpexEntryRepository implements opex.EntryRepository
type GormOpexEntryRepository struct {
	db *gorm.DB
}

// NewGormOpexEntryRepository creates a new GormOpexEntryRepository
func NewGormOpexEntryRepository(db *gorm.DB) *GormOpexEntryRepository {
	return &GormOpexEntryRepository{db: db}
}

// FindByYear loads every stored cell of a year
func (r *GormOpexEntryRepository) FindByYear(ctx context.Context, tenantID uuid.UUID, year int) ([]opex.Entry, error) {
	var rows []models.OpexEntryModel
	err := r.db.WithContext(ctx).
		Scopes(TenantScope(tenantID)).
		Where("year = ?", year).
		Order("month ASC, category ASC, subcategory ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]opex.Entry, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// Upsert inserts the cell or overwrites the amount of the existing one
func (r *GormOpexEntryRepository) Upsert(ctx context.Context, e *opex.Entry) error {
	var m models.OpexEntryModel
	m.FromDomain(e)
	if m.UpdatedAt.IsZero() {
		m.UpdatedAt = time.Now()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = m.UpdatedAt
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "tenant_id"}, {Name: "year"}, {Name: "month"}, {Name: "category"}, {Name: "subcategory"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"amount", "updated_at"}),
	}).Create(&m).Error
}

var _ opex.EntryRepository = (*GormOpexEntryRepository)(nil)
