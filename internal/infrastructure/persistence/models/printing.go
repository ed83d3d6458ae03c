package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/isletme/backend/internal/domain/printing"
	"github.com/isletme/backend/internal/domain/shared"
)

// PDFSchemaModel maps the pdf_schemas table; the layout lives in a JSON column.
type PDFSchemaModel struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TenantID     uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_pdf_schema,priority:1"`
	DocumentType string     `gorm:"type:varchar(50);not null;uniqueIndex:uq_pdf_schema,priority:2"`
	Schema       []byte     `gorm:"column:layout;type:jsonb;not null"`
	CreatedBy    *uuid.UUID `gorm:"type:uuid"`
	CreatedAt    time.Time  `gorm:"not null"`
	UpdatedAt    time.Time  `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PDFSchemaModel) TableName() string {
	return "pdf_schemas"
}

// ToDomain decodes the stored schema
func (m *PDFSchemaModel) ToDomain() (*printing.SchemaRecord, error) {
	var schema printing.PageSchema
	if err := json.Unmarshal(m.Schema, &schema); err != nil {
		return nil, fmt.Errorf("decode pdf schema %s: %w", m.ID, err)
	}
	return &printing.SchemaRecord{
		TenantEntity: shared.TenantEntity{
			BaseEntity: shared.BaseEntity{ID: m.ID, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
			TenantID:   m.TenantID,
			CreatedBy:  m.CreatedBy,
		},
		DocumentType: m.DocumentType,
		Schema:       schema,
	}, nil
}

// FromDomain encodes the schema of r
func (m *PDFSchemaModel) FromDomain(r *printing.SchemaRecord) error {
	data, err := json.Marshal(r.Schema)
	if err != nil {
		return fmt.Errorf("encode pdf schema: %w", err)
	}
	m.ID = r.ID
	m.TenantID = r.TenantID
	m.CreatedBy = r.CreatedBy
	m.CreatedAt = r.CreatedAt
	m.UpdatedAt = r.UpdatedAt
	m.DocumentType = r.DocumentType
	m.Schema = data
	return nil
}
