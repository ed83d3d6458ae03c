package sales

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/isletme/backend/internal/domain/shared"
	"github.com/isletme/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ProposalStatus represents the lifecycle of a quote (teklif)
type ProposalStatus string

const (
	ProposalStatusDraft    ProposalStatus = "draft"
	ProposalStatusSent     ProposalStatus = "sent"
	ProposalStatusAccepted ProposalStatus = "accepted"
	ProposalStatusRejected ProposalStatus = "rejected"
	ProposalStatusExpired  ProposalStatus = "expired"
)

// IsValid checks if the status is a valid ProposalStatus
func (s ProposalStatus) IsValid() bool {
	switch s {
	case ProposalStatusDraft, ProposalStatusSent, ProposalStatusAccepted,
		ProposalStatusRejected, ProposalStatusExpired:
		return true
	}
	return false
}

// IsTerminal returns true once the customer has answered or the quote lapsed
func (s ProposalStatus) IsTerminal() bool {
	return s == ProposalStatusAccepted || s == ProposalStatusRejected || s == ProposalStatusExpired
}

// DisplayName returns the Turkish label
func (s ProposalStatus) DisplayName() string {
	switch s {
	case ProposalStatusDraft:
		return "Taslak"
	case ProposalStatusSent:
		return "Gönderildi"
	case ProposalStatusAccepted:
		return "Kabul Edildi"
	case ProposalStatusRejected:
		return "Reddedildi"
	case ProposalStatusExpired:
		return "Süresi Doldu"
	}
	return string(s)
}

// ProposalItem is one priced line of a proposal
type ProposalItem struct {
	ID          uuid.UUID
	ProposalID  uuid.UUID
	Position    int
	Description string
	Quantity    decimal.Decimal
	Unit        string
	UnitPrice   decimal.Decimal
	TaxRate     decimal.Decimal
	LineTotal   decimal.Decimal
}

// ProposalItemInput holds the editable fields of a line item
type ProposalItemInput struct {
	Description string
	Quantity    decimal.Decimal
	Unit        string
	UnitPrice   decimal.Decimal
	TaxRate     decimal.Decimal
}

// Proposal is a priced quote sent to a customer
type Proposal struct {
	shared.TenantEntity
	ProposalNumber string
	CustomerID     uuid.UUID
	Title          string
	IssueDate      time.Time
	ValidUntil     *time.Time
	Currency       valueobject.Currency
	Status         ProposalStatus
	Items          []ProposalItem
	Subtotal       decimal.Decimal
	DiscountRate   decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxRate        decimal.Decimal
	TaxAmount      decimal.Decimal
	Total          decimal.Decimal
	Notes          string
	Terms          string
	SentAt         *time.Time
	RespondedAt    *time.Time
}

// ProposalInput holds the editable fields of a proposal form
type ProposalInput struct {
	CustomerID   uuid.UUID
	Title        string
	IssueDate    time.Time
	ValidUntil   *time.Time
	Currency     string
	DiscountRate decimal.Decimal
	TaxRate      decimal.Decimal
	Notes        string
	Terms        string
	Items        []ProposalItemInput
}

// DefaultTaxRate is the standard Turkish VAT (KDV) rate in percent.
var DefaultTaxRate = decimal.NewFromInt(20)

// NewProposal creates a draft proposal with a pre-generated number
func NewProposal(tenantID uuid.UUID, number string, in ProposalInput) (*Proposal, error) {
	if strings.TrimSpace(number) == "" {
		return nil, shared.RequiredField("proposal_number")
	}
	p := &Proposal{
		TenantEntity:   shared.NewTenantEntity(tenantID),
		ProposalNumber: number,
		Status:         ProposalStatusDraft,
	}
	if err := p.apply(in); err != nil {
		return nil, err
	}
	return p, nil
}

// Update replaces the editable fields. Only drafts can be edited.
func (p *Proposal) Update(in ProposalInput) error {
	if p.Status != ProposalStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Sadece taslak teklifler düzenlenebilir")
	}
	if err := p.apply(in); err != nil {
		return err
	}
	p.Touch()
	return nil
}

func (p *Proposal) apply(in ProposalInput) error {
	if in.CustomerID == uuid.Nil {
		return shared.RequiredField("customer_id")
	}
	title, err := shared.Required("title", in.Title)
	if err != nil {
		return err
	}
	if in.IssueDate.IsZero() {
		return shared.RequiredField("issue_date")
	}
	if in.ValidUntil != nil && in.ValidUntil.Before(in.IssueDate) {
		return shared.NewFieldError("valid_until", "Geçerlilik tarihi teklif tarihinden önce olamaz")
	}
	currency, ok := valueobject.ParseCurrency(in.Currency)
	if !ok {
		return shared.NewFieldError("currency", "Geçersiz para birimi")
	}
	if in.DiscountRate.IsNegative() || in.DiscountRate.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewFieldError("discount_rate", "İndirim oranı 0 ile 100 arasında olmalıdır")
	}
	if in.TaxRate.IsNegative() {
		return shared.NewFieldError("tax_rate", "KDV oranı negatif olamaz")
	}
	if len(in.Items) == 0 {
		return shared.NewFieldError("items", "En az bir kalem girilmelidir")
	}

	items := make([]ProposalItem, 0, len(in.Items))
	for i, it := range in.Items {
		field := fmt.Sprintf("items[%d]", i)
		desc := strings.TrimSpace(it.Description)
		if desc == "" {
			return shared.RequiredField(field + ".description")
		}
		if !it.Quantity.IsPositive() {
			return shared.NewFieldError(field+".quantity", "Miktar sıfırdan büyük olmalıdır")
		}
		if it.UnitPrice.IsNegative() {
			return shared.NewFieldError(field+".unit_price", "Birim fiyat negatif olamaz")
		}
		items = append(items, ProposalItem{
			ID:          uuid.New(),
			ProposalID:  p.ID,
			Position:    i + 1,
			Description: desc,
			Quantity:    it.Quantity,
			Unit:        strings.TrimSpace(it.Unit),
			UnitPrice:   it.UnitPrice,
			TaxRate:     it.TaxRate,
			LineTotal:   valueobject.RoundMoney(it.Quantity.Mul(it.UnitPrice)),
		})
	}

	p.CustomerID = in.CustomerID
	p.Title = title
	p.IssueDate = in.IssueDate
	p.ValidUntil = in.ValidUntil
	p.Currency = currency
	p.DiscountRate = in.DiscountRate
	p.TaxRate = in.TaxRate
	p.Notes = strings.TrimSpace(in.Notes)
	p.Terms = strings.TrimSpace(in.Terms)
	p.Items = items
	p.Recalculate()
	return nil
}

// Recalculate derives subtotal, discount, tax and total from the items.
func (p *Proposal) Recalculate() {
	subtotal := decimal.Zero
	for _, it := range p.Items {
		subtotal = subtotal.Add(it.LineTotal)
	}
	discount := valueobject.RoundMoney(valueobject.Percent(subtotal, p.DiscountRate))
	taxable := subtotal.Sub(discount)
	tax := valueobject.RoundMoney(valueobject.Percent(taxable, p.TaxRate))

	p.Subtotal = subtotal
	p.DiscountAmount = discount
	p.TaxAmount = tax
	p.Total = taxable.Add(tax)
}

// Send marks a draft as sent to the customer
func (p *Proposal) Send() error {
	if p.Status != ProposalStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Sadece taslak teklifler gönderilebilir")
	}
	now := time.Now()
	p.Status = ProposalStatusSent
	p.SentAt = &now
	p.Touch()
	return nil
}

// Accept records the customer's acceptance
func (p *Proposal) Accept() error {
	return p.respond(ProposalStatusAccepted)
}

// Reject records the customer's rejection
func (p *Proposal) Reject() error {
	return p.respond(ProposalStatusRejected)
}

// Expire closes a sent proposal whose validity has lapsed
func (p *Proposal) Expire() error {
	return p.respond(ProposalStatusExpired)
}

func (p *Proposal) respond(to ProposalStatus) error {
	if p.Status != ProposalStatusSent {
		return shared.NewDomainError("INVALID_STATE", "Teklif gönderilmiş durumda değil")
	}
	now := time.Now()
	p.Status = to
	p.RespondedAt = &now
	p.Touch()
	return nil
}

// IsExpiredAt reports whether a sent proposal is past its validity date.
func (p *Proposal) IsExpiredAt(now time.Time) bool {
	return p.Status == ProposalStatusSent && p.ValidUntil != nil && now.After(*p.ValidUntil)
}

// FormatProposalNumber builds TKF-YYYYMM-NNNNN
func FormatProposalNumber(at time.Time, seq int64) string {
	return fmt.Sprintf("TKF-%s-%05d", at.Format("200601"), seq)
}

// ProposalRepository persists proposals together with their items
type ProposalRepository interface {
	shared.Repository[Proposal]
	FindByCustomer(ctx context.Context, tenantID, customerID uuid.UUID) ([]Proposal, error)
	// CountInMonth counts proposals created in the month of at; used for numbering.
	CountInMonth(ctx context.Context, tenantID uuid.UUID, at time.Time) (int64, error)
}
