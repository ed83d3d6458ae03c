package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/isletme/backend/internal/domain/sales"
	"github.com/isletme/backend/internal/domain/shared"
	"github.com/isletme/backend/internal/infrastructure/persistence/models"
)

// GormProposalRepository implements sales.ProposalRepository. Line items
// are loaded with every read and replaced wholesale on update.
type GormProposalRepository struct {
	*GormRepository[sales.Proposal, models.ProposalModel, *models.ProposalModel]
}

// NewGormProposalRepository creates a new GormProposalRepository
func NewGormProposalRepository(db *gorm.DB) *GormProposalRepository {
	return &GormProposalRepository{
		GormRepository: NewGormRepository[sales.Proposal, models.ProposalModel](db, RepositoryOptions{
			SortFields:   ProposalSortFields,
			DefaultSort:  "issue_date",
			FilterFields: map[string]bool{"status": true, "customer_id": true, "currency": true},
			SearchFields: []string{"proposal_number", "title"},
			ReadScope:    preloadItems,
		}),
	}
}

func preloadItems(db *gorm.DB) *gorm.DB {
	return db.Preload("Items", func(q *gorm.DB) *gorm.DB {
		return q.Order("position ASC")
	})
}

// FindByCustomer lists a customer's proposals, newest first
func (r *GormProposalRepository) FindByCustomer(ctx context.Context, tenantID, customerID uuid.UUID) ([]sales.Proposal, error) {
	return r.find(ctx, tenantID, func(q *gorm.DB) *gorm.DB {
		return q.Where("customer_id = ?", customerID).Order("issue_date DESC, created_at DESC")
	})
}

// CountInMonth counts proposals created in the calendar month of at
func (r *GormProposalRepository) CountInMonth(ctx context.Context, tenantID uuid.UUID, at time.Time) (int64, error) {
	return countInMonth(r.DB(ctx), &models.ProposalModel{}, tenantID, at)
}

// Update rewrites the proposal row and replaces its items
func (r *GormProposalRepository) Update(ctx context.Context, p *sales.Proposal) error {
	var m models.ProposalModel
	m.FromDomain(p)
	return r.DB(ctx).Transaction(func(tx *gorm.DB) error {
		if err := updateRow(tx.Scopes(TenantScope(p.TenantID)), &m); err != nil {
			return err
		}
		if err := tx.Where("tenant_id = ? AND proposal_id = ?", p.TenantID, p.ID).
			Delete(&models.ProposalItemModel{}).Error; err != nil {
			return err
		}
		if len(m.Items) == 0 {
			return nil
		}
		return tx.Create(&m.Items).Error
	})
}

// Delete removes the proposal and its items
func (r *GormProposalRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.DB(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tenant_id = ? AND proposal_id = ?", tenantID, id).
			Delete(&models.ProposalItemModel{}).Error; err != nil {
			return err
		}
		res := tx.Scopes(TenantScope(tenantID)).Where("id = ?", id).Delete(&models.ProposalModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// countInMonth counts rows of model created in the calendar month of at
func countInMonth(db *gorm.DB, model any, tenantID uuid.UUID, at time.Time) (int64, error) {
	start := time.Date(at.Year(), at.Month(), 1, 0, 0, 0, 0, at.Location())
	var n int64
	err := db.Model(model).
		Scopes(TenantScope(tenantID)).
		Where("created_at >= ? AND created_at < ?", start, start.AddDate(0, 1, 0)).
		Count(&n).Error
	return n, err
}

var _ sales.ProposalRepository = (*GormProposalRepository)(nil)
