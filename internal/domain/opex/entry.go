package opex

import (
	"context"

	"github.com/google/uuid"
	"github.com/isletme/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Months in a matrix year
const Months = 12

// Key identifies one persisted cell within a tenant
type Key struct {
	Year        int    `json:"year"`
	Month       int    `json:"month"`
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
}

// Validate checks ranges only; taxonomy membership is checked by Taxonomy.
func (k Key) Validate() error {
	if k.Year < 2000 || k.Year > 2100 {
		return ErrInvalidYear
	}
	if k.Month < 1 || k.Month > Months {
		return ErrInvalidMonth
	}
	return nil
}

// Entry is a manually entered matrix cell (OpexMatrixEntry)
type Entry struct {
	shared.TenantEntity
	Key
	Amount decimal.Decimal
}

// NewEntry builds an entry for k
func NewEntry(tenantID uuid.UUID, k Key, amount decimal.Decimal) (*Entry, error) {
	if err := k.Validate(); err != nil {
		return nil, err
	}
	if amount.IsNegative() {
		return nil, ErrNegativeAmount
	}
	return &Entry{
		TenantEntity: shared.NewTenantEntity(tenantID),
		Key:          k,
		Amount:       amount,
	}, nil
}

// EntryRepository persists matrix cells. Upsert is keyed on
// (tenant, year, month, category, subcategory).
type EntryRepository interface {
	FindByYear(ctx context.Context, tenantID uuid.UUID, year int) ([]Entry, error)
	Upsert(ctx context.Context, entry *Entry) error
}
