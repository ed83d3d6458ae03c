// Package common holds helpers shared by the application services.
package common

import (
	"strings"

	"github.com/isletme/backend/internal/domain/shared"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ListQuery holds the paging, sorting and search parameters of list endpoints
type ListQuery struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// Filter converts the query into a domain filter. Non-empty values of eq
// become equality filters.
func (q ListQuery) Filter(eq map[string]string) shared.Filter {
	f := shared.DefaultFilter()
	if q.Page > 0 {
		f.Page = q.Page
	}
	if q.PageSize > 0 {
		f.PageSize = min(q.PageSize, MaxPageSize)
	}
	if q.OrderBy != "" {
		f.OrderBy = q.OrderBy
	}
	if q.OrderDir != "" {
		f.OrderDir = strings.ToLower(q.OrderDir)
	}
	f.Search = strings.TrimSpace(q.Search)
	for k, v := range eq {
		if v = strings.TrimSpace(v); v != "" {
			f.Filters[k] = v
		}
	}
	return f
}

// Paging returns the effective page and page size
func (q ListQuery) Paging() (page, pageSize int) {
	f := q.Filter(nil)
	return f.Page, f.PageSize
}
