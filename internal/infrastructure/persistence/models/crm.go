package models

import (
	"github.com/isletme/backend/internal/domain/crm"
)

// CustomerModel maps the customers table
type CustomerModel struct {
	TenantModel
	Name      string             `gorm:"type:varchar(200);not null"`
	Company   string             `gorm:"type:varchar(200)"`
	TaxNumber string             `gorm:"type:varchar(11);index"`
	TaxOffice string             `gorm:"type:varchar(100)"`
	Email     string             `gorm:"type:varchar(200)"`
	Phone     string             `gorm:"type:varchar(30)"`
	Address   string             `gorm:"type:text"`
	City      string             `gorm:"type:varchar(100)"`
	Notes     string             `gorm:"type:text"`
	Status    crm.CustomerStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the model to a domain customer
func (m *CustomerModel) ToDomain() *crm.Customer {
	return &crm.Customer{
		TenantEntity: m.Entity(),
		Name:         m.Name,
		Company:      m.Company,
		TaxNumber:    m.TaxNumber,
		TaxOffice:    m.TaxOffice,
		Email:        m.Email,
		Phone:        m.Phone,
		Address:      m.Address,
		City:         m.City,
		Notes:        m.Notes,
		Status:       m.Status,
	}
}

// FromDomain populates the model from a domain customer
func (m *CustomerModel) FromDomain(c *crm.Customer) {
	m.FromEntity(c.TenantEntity)
	m.Name = c.Name
	m.Company = c.Company
	m.TaxNumber = c.TaxNumber
	m.TaxOffice = c.TaxOffice
	m.Email = c.Email
	m.Phone = c.Phone
	m.Address = c.Address
	m.City = c.City
	m.Notes = c.Notes
	m.Status = c.Status
}
