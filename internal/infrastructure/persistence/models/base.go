package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/isletme/backend/internal/domain/shared"
)

// TenantModel holds the columns shared by every tenant-owned table.
type TenantModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TenantID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	CreatedBy *uuid.UUID `gorm:"type:uuid"`
	CreatedAt time.Time  `gorm:"not null"`
	UpdatedAt time.Time  `gorm:"not null"`
}

// FromEntity copies the shared entity columns
func (m *TenantModel) FromEntity(e shared.TenantEntity) {
	m.ID = e.ID
	m.TenantID = e.TenantID
	m.CreatedBy = e.CreatedBy
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}

// Entity rebuilds the shared entity part
func (m *TenantModel) Entity() shared.TenantEntity {
	return shared.TenantEntity{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		TenantID:  m.TenantID,
		CreatedBy: m.CreatedBy,
	}
}

// Tenant returns the owning tenant
func (m *TenantModel) Tenant() uuid.UUID {
	return m.TenantID
}
