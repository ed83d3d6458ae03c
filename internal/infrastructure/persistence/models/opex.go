package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/isletme/backend/internal/domain/opex"
	"github.com/isletme/backend/internal/domain/shared"
)

// OpexEntryModel maps the opex_matrix_entries table. A cell is unique per
// (tenant, year, month, category, subcategory).
type OpexEntryModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TenantID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_opex_cell,priority:1"`
	Year        int             `gorm:"not null;uniqueIndex:uq_opex_cell,priority:2"`
	Month       int             `gorm:"not null;uniqueIndex:uq_opex_cell,priority:3"`
	Category    string          `gorm:"type:varchar(100);not null;uniqueIndex:uq_opex_cell,priority:4"`
	Subcategory string          `gorm:"type:varchar(100);not null;uniqueIndex:uq_opex_cell,priority:5"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	CreatedBy   *uuid.UUID      `gorm:"type:uuid"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OpexEntryModel) TableName() string {
	return "opex_matrix_entries"
}

// ToDomain converts the model to a domain entry
func (m *OpexEntryModel) ToDomain() *opex.Entry {
	return &opex.Entry{
		TenantEntity: shared.TenantEntity{
			BaseEntity: shared.BaseEntity{ID: m.ID, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
			TenantID:   m.TenantID,
			CreatedBy:  m.CreatedBy,
		},
		Key: opex.Key{
			Year:        m.Year,
			Month:       m.Month,
			Category:    m.Category,
			Subcategory: m.Subcategory,
		},
		Amount: m.Amount,
	}
}

// FromDomain populates the model from a domain entry
func (m *OpexEntryModel) FromDomain(e *opex.Entry) {
	m.ID = e.ID
	m.TenantID = e.TenantID
	m.CreatedBy = e.CreatedBy
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
	m.Year = e.Year
	m.Month = e.Month
	m.Category = e.Category
	m.Subcategory = e.Subcategory
	m.Amount = e.Amount
}
