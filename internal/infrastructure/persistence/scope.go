package persistence

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TenantScope restricts a query to rows of one tenant. A nil tenant matches
// nothing instead of every row.
func TenantScope(tenantID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if tenantID == uuid.Nil {
			_ = db.AddError(ErrTenantRequired)
			return db
		}
		return db.Where("tenant_id = ?", tenantID)
	}
}
