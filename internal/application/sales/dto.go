package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/isletme/backend/internal/application/common"
	"github.com/isletme/backend/internal/domain/sales"
)

// ProposalItemRequest is one line of a proposal
type ProposalItemRequest struct {
	Description string          `json:"description" binding:"required,max=500"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit" binding:"max=20"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
}

// ProposalRequest is the body of proposal create and update requests. A nil
// tax rate means the standard VAT rate.
type ProposalRequest struct {
	CustomerID   uuid.UUID             `json:"customer_id" binding:"required"`
	Title        string                `json:"title" binding:"required,max=200"`
	IssueDate    time.Time             `json:"issue_date"`
	ValidUntil   *time.Time            `json:"valid_until"`
	Currency     string                `json:"currency" binding:"omitempty,oneof=TRY USD EUR GBP"`
	DiscountRate decimal.Decimal       `json:"discount_rate"`
	TaxRate      *decimal.Decimal      `json:"tax_rate"`
	Notes        string                `json:"notes"`
	Terms        string                `json:"terms"`
	Items        []ProposalItemRequest `json:"items" binding:"required,min=1,dive"`
	CreatedBy    *uuid.UUID            `json:"-"`
}

func (r ProposalRequest) input(now time.Time) sales.ProposalInput {
	issue := r.IssueDate
	if issue.IsZero() {
		issue = now
	}
	tax := sales.DefaultTaxRate
	if r.TaxRate != nil {
		tax = *r.TaxRate
	}
	items := make([]sales.ProposalItemInput, len(r.Items))
	for i, it := range r.Items {
		items[i] = sales.ProposalItemInput{
			Description: it.Description,
			Quantity:    it.Quantity,
			Unit:        it.Unit,
			UnitPrice:   it.UnitPrice,
			TaxRate:     it.TaxRate,
		}
	}
	return sales.ProposalInput{
		CustomerID:   r.CustomerID,
		Title:        r.Title,
		IssueDate:    issue,
		ValidUntil:   r.ValidUntil,
		Currency:     r.Currency,
		DiscountRate: r.DiscountRate,
		TaxRate:      tax,
		Notes:        r.Notes,
		Terms:        r.Terms,
		Items:        items,
	}
}

// ProposalListFilter represents filter options for the proposal list
type ProposalListFilter struct {
	common.ListQuery
	Status     string `form:"status" binding:"omitempty,oneof=draft sent accepted rejected expired"`
	CustomerID string `form:"customer_id" binding:"omitempty,uuid"`
	Currency   string `form:"currency" binding:"omitempty,oneof=TRY USD EUR GBP"`
}

// ProposalItemResponse represents a proposal line in API responses
type ProposalItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	Position    int             `json:"position"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// ProposalResponse represents a proposal in API responses
type ProposalResponse struct {
	ID             uuid.UUID              `json:"id"`
	ProposalNumber string                 `json:"proposal_number"`
	CustomerID     uuid.UUID              `json:"customer_id"`
	Title          string                 `json:"title"`
	IssueDate      time.Time              `json:"issue_date"`
	ValidUntil     *time.Time             `json:"valid_until,omitempty"`
	Currency       string                 `json:"currency"`
	Status         string                 `json:"status"`
	StatusDisplay  string                 `json:"status_display"`
	Items          []ProposalItemResponse `json:"items"`
	Subtotal       decimal.Decimal        `json:"subtotal"`
	DiscountRate   decimal.Decimal        `json:"discount_rate"`
	DiscountAmount decimal.Decimal        `json:"discount_amount"`
	TaxRate        decimal.Decimal        `json:"tax_rate"`
	TaxAmount      decimal.Decimal        `json:"tax_amount"`
	Total          decimal.Decimal        `json:"total"`
	Notes          string                 `json:"notes"`
	Terms          string                 `json:"terms"`
	SentAt         *time.Time             `json:"sent_at,omitempty"`
	RespondedAt    *time.Time             `json:"responded_at,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

// ToProposalResponse converts a domain Proposal to ProposalResponse
func ToProposalResponse(p *sales.Proposal) ProposalResponse {
	items := make([]ProposalItemResponse, len(p.Items))
	for i, it := range p.Items {
		items[i] = ProposalItemResponse{
			ID:          it.ID,
			Position:    it.Position,
			Description: it.Description,
			Quantity:    it.Quantity,
			Unit:        it.Unit,
			UnitPrice:   it.UnitPrice,
			TaxRate:     it.TaxRate,
			LineTotal:   it.LineTotal,
		}
	}
	return ProposalResponse{
		ID:             p.ID,
		ProposalNumber: p.ProposalNumber,
		CustomerID:     p.CustomerID,
		Title:          p.Title,
		IssueDate:      p.IssueDate,
		ValidUntil:     p.ValidUntil,
		Currency:       string(p.Currency),
		Status:         string(p.Status),
		StatusDisplay:  p.Status.DisplayName(),
		Items:          items,
		Subtotal:       p.Subtotal,
		DiscountRate:   p.DiscountRate,
		DiscountAmount: p.DiscountAmount,
		TaxRate:        p.TaxRate,
		TaxAmount:      p.TaxAmount,
		Total:          p.Total,
		Notes:          p.Notes,
		Terms:          p.Terms,
		SentAt:         p.SentAt,
		RespondedAt:    p.RespondedAt,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// ToProposalResponses converts a slice of proposals
func ToProposalResponses(proposals []sales.Proposal) []ProposalResponse {
	out := make([]ProposalResponse, len(proposals))
	for i := range proposals {
		out[i] = ToProposalResponse(&proposals[i])
	}
	return out
}
