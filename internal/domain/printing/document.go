package printing

import (
	"time"

	"github.com/shopspring/decimal"
)

// Party is the company or customer block of a document
type Party struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	City      string `json:"city"`
	TaxOffice string `json:"tax_office"`
	TaxNumber string `json:"tax_number"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	LogoURL   string `json:"logo_url,omitempty"`
}

// LineItem is one row of the items table
type LineItem struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// Totals are the summary amounts printed under the items
type Totals struct {
	Subtotal     decimal.Decimal `json:"subtotal"`
	DiscountRate decimal.Decimal `json:"discount_rate"`
	Discount     decimal.Decimal `json:"discount"`
	TaxRate      decimal.Decimal `json:"tax_rate"`
	Tax          decimal.Decimal `json:"tax"`
	Total        decimal.Decimal `json:"total"`
}

// DocumentData is the content a schema lays out
type DocumentData struct {
	Title          string     `json:"title"`
	DocumentNumber string     `json:"document_number"`
	Subject        string     `json:"subject"`
	IssueDate      time.Time  `json:"issue_date"`
	ValidUntil     *time.Time `json:"valid_until,omitempty"`
	CurrencySymbol string     `json:"currency_symbol"`
	Company        Party      `json:"company"`
	Customer       Party      `json:"customer"`
	Items          []LineItem `json:"items"`
	Totals         Totals     `json:"totals"`
	Notes          string     `json:"notes"`
	Terms          string     `json:"terms"`
}
