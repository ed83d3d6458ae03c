package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/isletme/backend/internal/domain/sales"
	"github.com/isletme/backend/internal/domain/shared/valueobject"
)

// ProposalModel maps the proposals table
type ProposalModel struct {
	TenantModel
	ProposalNumber string               `gorm:"type:varchar(30);not null;index"`
	CustomerID     uuid.UUID            `gorm:"type:uuid;not null;index"`
	Title          string               `gorm:"type:varchar(200);not null"`
	IssueDate      time.Time            `gorm:"type:date;not null"`
	ValidUntil     *time.Time           `gorm:"type:date"`
	Currency       valueobject.Currency `gorm:"type:varchar(3);not null;default:'TRY'"`
	Status         sales.ProposalStatus `gorm:"type:varchar(20);not null;default:'draft'"`
	Subtotal       decimal.Decimal      `gorm:"type:decimal(18,2);not null;default:0"`
	DiscountRate   decimal.Decimal      `gorm:"type:decimal(5,2);not null;default:0"`
	DiscountAmount decimal.Decimal      `gorm:"type:decimal(18,2);not null;default:0"`
	TaxRate        decimal.Decimal      `gorm:"type:decimal(5,2);not null;default:0"`
	TaxAmount      decimal.Decimal      `gorm:"type:decimal(18,2);not null;default:0"`
	Total          decimal.Decimal      `gorm:"type:decimal(18,2);not null;default:0"`
	Notes          string               `gorm:"type:text"`
	Terms          string               `gorm:"type:text"`
	SentAt         *time.Time
	RespondedAt    *time.Time
	Items          []ProposalItemModel `gorm:"foreignKey:ProposalID"`
}

// TableName returns the table name for GORM
func (ProposalModel) TableName() string {
	return "proposals"
}

// ToDomain converts the model and its loaded items to a domain proposal
func (m *ProposalModel) ToDomain() *sales.Proposal {
	p := &sales.Proposal{
		TenantEntity:   m.Entity(),
		ProposalNumber: m.ProposalNumber,
		CustomerID:     m.CustomerID,
		Title:          m.Title,
		IssueDate:      m.IssueDate,
		ValidUntil:     m.ValidUntil,
		Currency:       m.Currency,
		Status:         m.Status,
		Subtotal:       m.Subtotal,
		DiscountRate:   m.DiscountRate,
		DiscountAmount: m.DiscountAmount,
		TaxRate:        m.TaxRate,
		TaxAmount:      m.TaxAmount,
		Total:          m.Total,
		Notes:          m.Notes,
		Terms:          m.Terms,
		SentAt:         m.SentAt,
		RespondedAt:    m.RespondedAt,
		Items:          make([]sales.ProposalItem, len(m.Items)),
	}
	for i := range m.Items {
		p.Items[i] = m.Items[i].ToDomain()
	}
	return p
}

// FromDomain populates the model, items included, from a domain proposal
func (m *ProposalModel) FromDomain(p *sales.Proposal) {
	m.FromEntity(p.TenantEntity)
	m.ProposalNumber = p.ProposalNumber
	m.CustomerID = p.CustomerID
	m.Title = p.Title
	m.IssueDate = p.IssueDate
	m.ValidUntil = p.ValidUntil
	m.Currency = p.Currency
	m.Status = p.Status
	m.Subtotal = p.Subtotal
	m.DiscountRate = p.DiscountRate
	m.DiscountAmount = p.DiscountAmount
	m.TaxRate = p.TaxRate
	m.TaxAmount = p.TaxAmount
	m.Total = p.Total
	m.Notes = p.Notes
	m.Terms = p.Terms
	m.SentAt = p.SentAt
	m.RespondedAt = p.RespondedAt
	m.Items = make([]ProposalItemModel, len(p.Items))
	for i, it := range p.Items {
		m.Items[i] = ProposalItemModel{
			ID:          it.ID,
			TenantID:    p.TenantID,
			ProposalID:  p.ID,
			Position:    it.Position,
			Description: it.Description,
			Quantity:    it.Quantity,
			Unit:        it.Unit,
			UnitPrice:   it.UnitPrice,
			TaxRate:     it.TaxRate,
			LineTotal:   it.LineTotal,
		}
	}
}

// ProposalItemModel maps the proposal_items table
type ProposalItemModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TenantID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProposalID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position    int             `gorm:"not null"`
	Description string          `gorm:"type:text;not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,3);not null"`
	Unit        string          `gorm:"type:varchar(20)"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	TaxRate     decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (ProposalItemModel) TableName() string {
	return "proposal_items"
}

// ToDomain converts the model to a domain proposal item
func (m *ProposalItemModel) ToDomain() sales.ProposalItem {
	return sales.ProposalItem{
		ID:          m.ID,
		ProposalID:  m.ProposalID,
		Position:    m.Position,
		Description: m.Description,
		Quantity:    m.Quantity,
		Unit:        m.Unit,
		UnitPrice:   m.UnitPrice,
		TaxRate:     m.TaxRate,
		LineTotal:   m.LineTotal,
	}
}
