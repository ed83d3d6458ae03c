package crm

import (
	"time"

	"github.com/google/uuid"

	"github.com/isletme/backend/internal/application/common"
	"github.com/isletme/backend/internal/domain/crm"
)

// CustomerRequest is the body of customer create and update requests
type CustomerRequest struct {
	Name      string     `json:"name" binding:"required,min=1,max=200"`
	Company   string     `json:"company" binding:"max=200"`
	TaxNumber string     `json:"tax_number" binding:"omitempty,numeric,min=10,max=11"`
	TaxOffice string     `json:"tax_office" binding:"max=100"`
	Email     string     `json:"email" binding:"omitempty,email,max=200"`
	Phone     string     `json:"phone" binding:"max=50"`
	Address   string     `json:"address" binding:"max=500"`
	City      string     `json:"city" binding:"max=100"`
	Notes     string     `json:"notes"`
	Status    string     `json:"status" binding:"omitempty,oneof=active inactive potential"`
	CreatedBy *uuid.UUID `json:"-"` // Set from JWT context, not from request body
}

func (r CustomerRequest) input() crm.CustomerInput {
	return crm.CustomerInput{
		Name:      r.Name,
		Company:   r.Company,
		TaxNumber: r.TaxNumber,
		TaxOffice: r.TaxOffice,
		Email:     r.Email,
		Phone:     r.Phone,
		Address:   r.Address,
		City:      r.City,
		Notes:     r.Notes,
		Status:    r.Status,
	}
}

// CustomerListFilter represents filter options for the customer list
type CustomerListFilter struct {
	common.ListQuery
	Status string `form:"status" binding:"omitempty,oneof=active inactive potential"`
	City   string `form:"city"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Company       string    `json:"company"`
	DisplayName   string    `json:"display_name"`
	TaxNumber     string    `json:"tax_number"`
	TaxOffice     string    `json:"tax_office"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Address       string    `json:"address"`
	City          string    `json:"city"`
	Notes         string    `json:"notes"`
	Status        string    `json:"status"`
	StatusDisplay string    `json:"status_display"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ToCustomerResponse converts a domain Customer to CustomerResponse
func ToCustomerResponse(c *crm.Customer) CustomerResponse {
	return CustomerResponse{
		ID:            c.ID,
		Name:          c.Name,
		Company:       c.Company,
		DisplayName:   c.DisplayName(),
		TaxNumber:     c.TaxNumber,
		TaxOffice:     c.TaxOffice,
		Email:         c.Email,
		Phone:         c.Phone,
		Address:       c.Address,
		City:          c.City,
		Notes:         c.Notes,
		Status:        string(c.Status),
		StatusDisplay: c.Status.DisplayName(),
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

// ToCustomerResponses converts a slice of customers
func ToCustomerResponses(customers []crm.Customer) []CustomerResponse {
	out := make([]CustomerResponse, len(customers))
	for i := range customers {
		out[i] = ToCustomerResponse(&customers[i])
	}
	return out
}
