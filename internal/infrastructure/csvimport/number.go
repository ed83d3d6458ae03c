package csvimport

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var thousandsOnly = regexp.MustCompile(`^-?\d{1,3}(\.\d{3})+$`)

// ParseDecimal reads an amount written either with Turkish separators
// (1.234,56) or with a plain decimal point (1234.56). A value such as
// 1.234 with only dot groups of three is read as thousands.
func ParseDecimal(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "₺")
	s = strings.TrimSpace(strings.TrimPrefix(s, "₺"))
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "\u00a0", "")

	switch {
	case strings.Contains(s, ","):
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case thousandsOnly.MatchString(s):
		s = strings.ReplaceAll(s, ".", "")
	}
	return decimal.NewFromString(s)
}

// FormatDecimal writes d with two decimals and a decimal comma, without
// grouping: 1234,50
func FormatDecimal(d decimal.Decimal) string {
	return strings.Replace(d.StringFixed(2), ".", ",", 1)
}
