package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/isletme/backend/internal/domain/hr"
)

// EmployeeModel maps the employees table
type EmployeeModel struct {
	TenantModel
	FirstName                 string          `gorm:"type:varchar(100);not null"`
	LastName                  string          `gorm:"type:varchar(100);not null"`
	NationalID                string          `gorm:"type:varchar(11)"`
	Department                string          `gorm:"type:varchar(100);index"`
	Position                  string          `gorm:"type:varchar(100)"`
	Email                     string          `gorm:"type:varchar(200)"`
	Phone                     string          `gorm:"type:varchar(30)"`
	HireDate                  *time.Time      `gorm:"type:date"`
	IsActive                  bool            `gorm:"not null;default:true;index"`
	GrossSalary               decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	NetSalary                 decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	SGKEmployerShare          decimal.Decimal `gorm:"column:sgk_employer_share;type:decimal(18,2);not null;default:0"`
	UnemploymentEmployerShare decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	MealAllowance             decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	TransportAllowance        decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (EmployeeModel) TableName() string {
	return "employees"
}

// ToDomain converts the model to a domain employee
func (m *EmployeeModel) ToDomain() *hr.Employee {
	return &hr.Employee{
		TenantEntity: m.Entity(),
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		NationalID:   m.NationalID,
		Department:   m.Department,
		Position:     m.Position,
		Email:        m.Email,
		Phone:        m.Phone,
		HireDate:     m.HireDate,
		IsActive:     m.IsActive,
		Payroll: hr.Payroll{
			GrossSalary:               m.GrossSalary,
			NetSalary:                 m.NetSalary,
			SGKEmployerShare:          m.SGKEmployerShare,
			UnemploymentEmployerShare: m.UnemploymentEmployerShare,
			MealAllowance:             m.MealAllowance,
			TransportAllowance:        m.TransportAllowance,
		},
	}
}

// FromDomain populates the model from a domain employee
func (m *EmployeeModel) FromDomain(e *hr.Employee) {
	m.FromEntity(e.TenantEntity)
	m.FirstName = e.FirstName
	m.LastName = e.LastName
	m.NationalID = e.NationalID
	m.Department = e.Department
	m.Position = e.Position
	m.Email = e.Email
	m.Phone = e.Phone
	m.HireDate = e.HireDate
	m.IsActive = e.IsActive
	m.GrossSalary = e.GrossSalary
	m.NetSalary = e.NetSalary
	m.SGKEmployerShare = e.SGKEmployerShare
	m.UnemploymentEmployerShare = e.UnemploymentEmployerShare
	m.MealAllowance = e.MealAllowance
	m.TransportAllowance = e.TransportAllowance
}
