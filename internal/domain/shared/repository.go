package shared

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the generic record store capability: select, insert,
// update and delete scoped to a tenant.
type Repository[T any] interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*T, error)
	FindAll(ctx context.Context, tenantID uuid.UUID, filter Filter) ([]T, error)
	Count(ctx context.Context, tenantID uuid.UUID, filter Filter) (int64, error)
	Create(ctx context.Context, entity *T) error
	Update(ctx context.Context, entity *T) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// Filter represents query filter options
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
	// Filters holds column equality conditions.
	Filters map[string]any
}

// DefaultFilter returns a filter with default values
func DefaultFilter() Filter {
	return Filter{
		Page:     1,
		PageSize: 20,
		OrderBy:  "created_at",
		OrderDir: "desc",
		Filters:  make(map[string]any),
	}
}

// With returns a copy of f carrying one more equality condition.
func (f Filter) With(column string, value any) Filter {
	filters := make(map[string]any, len(f.Filters)+1)
	for k, v := range f.Filters {
		filters[k] = v
	}
	filters[column] = value
	f.Filters = filters
	return f
}

// Offset is the row offset of the requested page.
func (f Filter) Offset() int {
	if f.Page < 1 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

// Paginated represents a paginated result
type Paginated[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// NewPaginated creates a new paginated result
func NewPaginated[T any](items []T, total int64, page, pageSize int) Paginated[T] {
	totalPages := 0
	if pageSize > 0 {
		totalPages = int(total) / pageSize
		if int(total)%pageSize > 0 {
			totalPages++
		}
	}
	return Paginated[T]{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
