package valueobject

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Currency represents a currency code (ISO 4217)
type Currency string

const (
	TRY Currency = "TRY" // Turkish Lira (default)
	USD Currency = "USD"
	EUR Currency = "EUR"
	GBP Currency = "GBP"
)

// DefaultCurrency is the default currency for the system
const DefaultCurrency = TRY

// IsValid reports whether c is a supported currency
func (c Currency) IsValid() bool {
	switch c {
	case TRY, USD, EUR, GBP:
		return true
	}
	return false
}

func (c Currency) String() string {
	return string(c)
}

// Symbol returns the display symbol used on printed documents.
func (c Currency) Symbol() string {
	switch c {
	case TRY:
		return "₺"
	case USD:
		return "$"
	case EUR:
		return "€"
	case GBP:
		return "£"
	}
	return string(c)
}

// ParseCurrency normalizes user input, defaulting blank input to TRY.
func ParseCurrency(s string) (Currency, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return DefaultCurrency, true
	}
	c := Currency(s)
	return c, c.IsValid()
}

var hundred = decimal.NewFromInt(100)

// Percent returns rate percent of amount.
func Percent(amount, rate decimal.Decimal) decimal.Decimal {
	return amount.Mul(rate).Div(hundred)
}

// RoundMoney rounds an amount to kuruş precision.
func RoundMoney(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}
