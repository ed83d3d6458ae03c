package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/isletme/backend/internal/domain/printing"
	"github.com/isletme/backend/internal/domain/shared"
	"github.com/isletme/backend/internal/infrastructure/persistence/models"
)

// GormPDFSchemaRepository implements printing.SchemaRepository
type GormPDFSchemaRepository struct {
	db *gorm.DB
}

// NewGormPDFSchemaRepository creates a new GormPDFSchemaRepository
func NewGormPDFSchemaRepository(db *gorm.DB) *GormPDFSchemaRepository {
	return &GormPDFSchemaRepository{db: db}
}

// FindByDocumentType returns the tenant's schema for a document type
func (r *GormPDFSchemaRepository) FindByDocumentType(ctx context.Context, tenantID uuid.UUID, documentType string) (*printing.SchemaRecord, error) {
	var m models.PDFSchemaModel
	err := r.db.WithContext(ctx).
		Scopes(TenantScope(tenantID)).
		Where("document_type = ?", documentType).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return m.ToDomain()
}

// Save stores the schema, replacing the tenant's previous one for the same document type
func (r *GormPDFSchemaRepository) Save(ctx context.Context, rec *printing.SchemaRecord) error {
	var m models.PDFSchemaModel
	if err := m.FromDomain(rec); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tenant_id"}, {Name: "document_type"}},
		DoUpdates: clause.AssignmentColumns([]string{"layout", "updated_at"}),
	}).Create(&m).Error
}

var _ printing.SchemaRepository = (*GormPDFSchemaRepository)(nil)
