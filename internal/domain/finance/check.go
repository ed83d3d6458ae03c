package finance

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/isletme/backend/internal/domain/shared"
	"github.com/isletme/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// CheckType tells whether the company received or issued the check
type CheckType string

const (
	CheckTypeReceived CheckType = "received"
	CheckTypeIssued   CheckType = "issued"
)

// IsValid checks if the type is a valid CheckType
func (t CheckType) IsValid() bool {
	return t == CheckTypeReceived || t == CheckTypeIssued
}

// CheckStatus represents the clearing state of a check
type CheckStatus string

const (
	CheckStatusPending   CheckStatus = "pending"
	CheckStatusCashed    CheckStatus = "cashed"
	CheckStatusBounced   CheckStatus = "bounced"
	CheckStatusCancelled CheckStatus = "cancelled"
)

// IsValid checks if the status is a valid CheckStatus
func (s CheckStatus) IsValid() bool {
	switch s {
	case CheckStatusPending, CheckStatusCashed, CheckStatusBounced, CheckStatusCancelled:
		return true
	}
	return false
}

// DisplayName returns the Turkish label
func (s CheckStatus) DisplayName() string {
	switch s {
	case CheckStatusPending:
		return "Bekliyor"
	case CheckStatusCashed:
		return "Tahsil Edildi"
	case CheckStatusBounced:
		return "Karşılıksız"
	case CheckStatusCancelled:
		return "İptal"
	}
	return string(s)
}

// Check is a received or issued check (çek).
type Check struct {
	shared.TenantEntity
	CheckNumber string
	BankName    string
	Drawer      string
	Payee       string
	Amount      decimal.Decimal
	Currency    valueobject.Currency
	IssueDate   time.Time
	DueDate     time.Time
	Type        CheckType
	Status      CheckStatus
	CustomerID  *uuid.UUID
	Notes       string
}

// CheckInput holds the editable fields of a check form.
type CheckInput struct {
	CheckNumber string
	BankName    string
	Drawer      string
	Payee       string
	Amount      decimal.Decimal
	Currency    string
	IssueDate   time.Time
	DueDate     time.Time
	Type        string
	Status      string
	CustomerID  *uuid.UUID
	Notes       string
}

// NewCheck creates a new check
func NewCheck(tenantID uuid.UUID, in CheckInput) (*Check, error) {
	c := &Check{TenantEntity: shared.NewTenantEntity(tenantID)}
	if err := c.apply(in); err != nil {
		return nil, err
	}
	return c, nil
}

// Update replaces the editable fields.
func (c *Check) Update(in CheckInput) error {
	if err := c.apply(in); err != nil {
		return err
	}
	c.Touch()
	return nil
}

func (c *Check) apply(in CheckInput) error {
	if strings.TrimSpace(in.CheckNumber) == "" {
		return shared.RequiredField("check_number")
	}
	if strings.TrimSpace(in.BankName) == "" {
		return shared.RequiredField("bank_name")
	}
	if !in.Amount.IsPositive() {
		return shared.NewFieldError("amount", "Tutar sıfırdan büyük olmalıdır")
	}
	currency, ok := valueobject.ParseCurrency(in.Currency)
	if !ok {
		return shared.NewFieldError("currency", "Geçersiz para birimi")
	}
	if in.DueDate.IsZero() {
		return shared.RequiredField("due_date")
	}
	if !in.IssueDate.IsZero() && in.DueDate.Before(in.IssueDate) {
		return shared.NewFieldError("due_date", "Vade tarihi keşide tarihinden önce olamaz")
	}
	typ := CheckType(strings.ToLower(in.Type))
	if !typ.IsValid() {
		return shared.NewFieldError("type", "Çek tipi alınan veya verilen olmalıdır")
	}
	status := CheckStatusPending
	if in.Status != "" {
		status = CheckStatus(strings.ToLower(in.Status))
		if !status.IsValid() {
			return shared.NewFieldError("status", "Geçersiz çek durumu")
		}
	}

	c.CheckNumber = strings.TrimSpace(in.CheckNumber)
	c.BankName = strings.TrimSpace(in.BankName)
	c.Drawer = strings.TrimSpace(in.Drawer)
	c.Payee = strings.TrimSpace(in.Payee)
	c.Amount = in.Amount
	c.Currency = currency
	c.IssueDate = in.IssueDate
	c.DueDate = in.DueDate
	c.Type = typ
	c.Status = status
	c.CustomerID = in.CustomerID
	c.Notes = strings.TrimSpace(in.Notes)
	return nil
}

// IsDueWithin reports whether a pending check falls due in [now, now+days].
func (c *Check) IsDueWithin(now time.Time, days int) bool {
	if c.Status != CheckStatusPending {
		return false
	}
	start := truncateDay(now)
	end := start.AddDate(0, 0, days+1)
	return !c.DueDate.Before(start) && c.DueDate.Before(end)
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
