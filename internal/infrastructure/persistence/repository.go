package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/isletme/backend/internal/domain/shared"
)

// model is the constraint for persistence models handled by GormRepository:
// a pointer to M that converts to and from the domain type D.
type model[D, M any] interface {
	*M
	ToDomain() *D
	FromDomain(*D)
	Tenant() uuid.UUID
}

// RepositoryOptions configures list queries of a GormRepository
type RepositoryOptions struct {
	// SortFields whitelists ORDER BY columns.
	SortFields map[string]bool
	// DefaultSort is used when the requested column is not whitelisted.
	DefaultSort string
	// FilterFields whitelists equality filter columns.
	FilterFields map[string]bool
	// SearchFields are matched case-insensitively with LIKE.
	SearchFields []string
	// ReadScope is applied to every read, typically to preload associations.
	ReadScope func(*gorm.DB) *gorm.DB
}

// GormRepository implements shared.Repository for a domain type D stored
// through the model M. Every query is scoped to the caller's tenant.
type GormRepository[D any, M any, PM model[D, M]] struct {
	db   *gorm.DB
	opts RepositoryOptions
}

// NewGormRepository creates a tenant-scoped repository
func NewGormRepository[D any, M any, PM model[D, M]](db *gorm.DB, opts RepositoryOptions) *GormRepository[D, M, PM] {
	if opts.DefaultSort == "" {
		opts.DefaultSort = "created_at"
	}
	return &GormRepository[D, M, PM]{db: db, opts: opts}
}

// DB returns a session bound to ctx
func (r *GormRepository[D, M, PM]) DB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

// scoped returns a tenant-scoped query with the configured read scope
func (r *GormRepository[D, M, PM]) scoped(ctx context.Context, tenantID uuid.UUID) *gorm.DB {
	q := r.DB(ctx).Scopes(TenantScope(tenantID))
	if r.opts.ReadScope != nil {
		q = q.Scopes(r.opts.ReadScope)
	}
	return q
}

// FindByID returns shared.ErrNotFound when the row does not exist in the tenant
func (r *GormRepository[D, M, PM]) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*D, error) {
	var m M
	if err := r.scoped(ctx, tenantID).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return PM(&m).ToDomain(), nil
}

// FindAll lists rows matching filter, paged and ordered
func (r *GormRepository[D, M, PM]) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]D, error) {
	q, err := r.applyFilter(r.scoped(ctx, tenantID), filter)
	if err != nil {
		return nil, err
	}

	orderBy := ValidateSortField(filter.OrderBy, r.opts.SortFields, r.opts.DefaultSort)
	q = q.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
	if filter.PageSize > 0 {
		q = q.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	var rows []M
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainSlice[D, M, PM](rows), nil
}

// Count counts rows matching filter, ignoring paging
func (r *GormRepository[D, M, PM]) Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	q, err := r.applyFilter(r.DB(ctx).Model(new(M)).Scopes(TenantScope(tenantID)), filter)
	if err != nil {
		return 0, err
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// Create inserts entity, associations included
func (r *GormRepository[D, M, PM]) Create(ctx context.Context, entity *D) error {
	var m M
	PM(&m).FromDomain(entity)
	return r.DB(ctx).Create(&m).Error
}

// Update writes every column of entity. Associations are left untouched.
func (r *GormRepository[D, M, PM]) Update(ctx context.Context, entity *D) error {
	var m M
	PM(&m).FromDomain(entity)
	return updateRow(r.DB(ctx).Scopes(TenantScope(PM(&m).Tenant())), &m)
}

// Delete removes the row, returning shared.ErrNotFound when nothing matched
func (r *GormRepository[D, M, PM]) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	res := r.DB(ctx).Scopes(TenantScope(tenantID)).Where("id = ?", id).Delete(new(M))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// find runs a tenant-scoped query built by build and converts the rows
func (r *GormRepository[D, M, PM]) find(ctx context.Context, tenantID uuid.UUID, build func(*gorm.DB) *gorm.DB) ([]D, error) {
	var rows []M
	if err := build(r.scoped(ctx, tenantID)).Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainSlice[D, M, PM](rows), nil
}

func (r *GormRepository[D, M, PM]) applyFilter(q *gorm.DB, filter shared.Filter) (*gorm.DB, error) {
	for col, val := range filter.Filters {
		if !r.opts.FilterFields[col] {
			return nil, shared.NewFieldError(col, fmt.Sprintf("%s alanına göre filtrelenemez", col))
		}
		q = q.Where(col+" = ?", val)
	}
	if s := strings.TrimSpace(filter.Search); s != "" && len(r.opts.SearchFields) > 0 {
		q = q.Where(searchClause(r.opts.SearchFields), searchArgs(s, len(r.opts.SearchFields))...)
	}
	return q, nil
}

// updateRow updates all columns of m except its identity, tenant and
// creation metadata. db must already be tenant-scoped.
func updateRow(db *gorm.DB, m any) error {
	res := db.Model(m).
		Select("*").
		Omit("id", "tenant_id", "created_at", "created_by", clause.Associations).
		Updates(m)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func toDomainSlice[D any, M any, PM model[D, M]](rows []M) []D {
	out := make([]D, len(rows))
	for i := range rows {
		out[i] = *PM(&rows[i]).ToDomain()
	}
	return out
}

func searchClause(columns []string) string {
	parts := make([]string, len(columns))
	for i, c := range columns {
		parts[i] = "LOWER(" + c + `) LIKE ? ESCAPE '\'`
	}
	return "(" + strings.Join(parts, " OR ") + ")"
}

func searchArgs(term string, n int) []any {
	pattern := "%" + escapeLike(strings.ToLower(term)) + "%"
	args := make([]any, n)
	for i := range args {
		args[i] = pattern
	}
	return args
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(s)
}
