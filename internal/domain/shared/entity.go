package shared

import (
	"time"

	"github.com/google/uuid"
)

// Entity is implemented by every record the store persists.
type Entity interface {
	GetID() uuid.UUID
	GetTenantID() uuid.UUID
	GetCreatedAt() time.Time
	GetUpdatedAt() time.Time
}

// BaseEntity carries the identity and timestamps shared by all records.
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (e *BaseEntity) GetID() uuid.UUID        { return e.ID }
func (e *BaseEntity) GetCreatedAt() time.Time { return e.CreatedAt }
func (e *BaseEntity) GetUpdatedAt() time.Time { return e.UpdatedAt }

// Touch bumps the update timestamp.
func (e *BaseEntity) Touch() {
	e.UpdatedAt = time.Now()
}

// NewBaseEntity creates a new base entity with a generated ID
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// TenantEntity scopes a record to the tenant (company) that owns it.
type TenantEntity struct {
	BaseEntity
	TenantID  uuid.UUID
	CreatedBy *uuid.UUID
}

func (t *TenantEntity) GetTenantID() uuid.UUID { return t.TenantID }

// SetCreatedBy records the user that created the record
func (t *TenantEntity) SetCreatedBy(userID uuid.UUID) {
	t.CreatedBy = &userID
}

// NewTenantEntity creates a tenant-scoped base entity
func NewTenantEntity(tenantID uuid.UUID) TenantEntity {
	return TenantEntity{
		BaseEntity: NewBaseEntity(),
		TenantID:   tenantID,
	}
}
