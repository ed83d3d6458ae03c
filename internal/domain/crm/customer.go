package crm

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/isletme/backend/internal/domain/shared"
)

// CustomerStatus represents where a customer sits in the sales funnel
type CustomerStatus string

const (
	CustomerStatusActive    CustomerStatus = "active"
	CustomerStatusInactive  CustomerStatus = "inactive"
	CustomerStatusPotential CustomerStatus = "potential"
)

// IsValid checks if the status is a valid CustomerStatus
func (s CustomerStatus) IsValid() bool {
	switch s {
	case CustomerStatusActive, CustomerStatusInactive, CustomerStatusPotential:
		return true
	}
	return false
}

// DisplayName returns the Turkish label
func (s CustomerStatus) DisplayName() string {
	switch s {
	case CustomerStatusActive:
		return "Aktif"
	case CustomerStatusInactive:
		return "Pasif"
	case CustomerStatusPotential:
		return "Potansiyel"
	}
	return string(s)
}

// Customer is a CRM customer record (müşteri).
type Customer struct {
	shared.TenantEntity
	Name      string
	Company   string
	TaxNumber string
	TaxOffice string
	Email     string
	Phone     string
	Address   string
	City      string
	Notes     string
	Status    CustomerStatus
}

// CustomerInput holds the editable fields of a customer form.
type CustomerInput struct {
	Name      string
	Company   string
	TaxNumber string
	TaxOffice string
	Email     string
	Phone     string
	Address   string
	City      string
	Notes     string
	Status    string
}

// NewCustomer creates a new customer
func NewCustomer(tenantID uuid.UUID, in CustomerInput) (*Customer, error) {
	c := &Customer{TenantEntity: shared.NewTenantEntity(tenantID)}
	if err := c.apply(in); err != nil {
		return nil, err
	}
	return c, nil
}

// Update replaces the editable fields.
func (c *Customer) Update(in CustomerInput) error {
	if err := c.apply(in); err != nil {
		return err
	}
	c.Touch()
	return nil
}

func (c *Customer) apply(in CustomerInput) error {
	name, err := shared.Required("name", in.Name)
	if err != nil {
		return err
	}
	if err := shared.ValidateMaxLen("name", name, 200); err != nil {
		return err
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if err := shared.ValidateEmail("email", email); err != nil {
		return err
	}
	phone := strings.TrimSpace(in.Phone)
	if err := shared.ValidatePhone("phone", phone); err != nil {
		return err
	}
	taxNumber := strings.TrimSpace(in.TaxNumber)
	if taxNumber != "" && !ValidTaxNumber(taxNumber) {
		return shared.NewFieldError("tax_number", "Vergi numarası 10 haneli (VKN) veya 11 haneli (TCKN) olmalıdır")
	}
	status := CustomerStatusActive
	if in.Status != "" {
		status = CustomerStatus(strings.ToLower(in.Status))
		if !status.IsValid() {
			return shared.NewFieldError("status", "Geçersiz müşteri durumu")
		}
	}

	c.Name = name
	c.Company = strings.TrimSpace(in.Company)
	c.TaxNumber = taxNumber
	c.TaxOffice = strings.TrimSpace(in.TaxOffice)
	c.Email = email
	c.Phone = phone
	c.Address = strings.TrimSpace(in.Address)
	c.City = strings.TrimSpace(in.City)
	c.Notes = strings.TrimSpace(in.Notes)
	c.Status = status
	return nil
}

// DisplayName prefers the company title for corporate customers.
func (c *Customer) DisplayName() string {
	if c.Company != "" {
		return c.Company
	}
	return c.Name
}

// ValidTaxNumber accepts a 10 digit VKN or an 11 digit TCKN.
func ValidTaxNumber(s string) bool {
	if len(s) != 10 && len(s) != 11 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	if len(s) == 11 {
		return ValidTCKN(s)
	}
	return true
}

// ValidTCKN checks the two check digits of a Turkish national ID number.
func ValidTCKN(s string) bool {
	if len(s) != 11 || s[0] == '0' {
		return false
	}
	d := make([]int, 11)
	for i, r := range s {
		if r < '0' || r > '9' {
			return false
		}
		d[i] = int(r - '0')
	}
	odd := d[0] + d[2] + d[4] + d[6] + d[8]
	even := d[1] + d[3] + d[5] + d[7]
	d10 := ((odd*7-even)%10 + 10) % 10
	if d10 != d[9] {
		return false
	}
	sum := 0
	for i := 0; i < 10; i++ {
		sum += d[i]
	}
	return sum%10 == d[10]
}

// CustomerRepository persists customers
type CustomerRepository interface {
	shared.Repository[Customer]
	// Search matches name, company, tax number or email.
	Search(ctx context.Context, tenantID uuid.UUID, query string, limit int) ([]Customer, error)
}
