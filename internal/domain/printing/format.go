package printing

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the Turkish day.month.year format
const DateLayout = "02.01.2006"

// FormatNumber renders d with Turkish separators: 1.234.567,89
func FormatNumber(d decimal.Decimal, places int32) string {
	s := d.StringFixed(places)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	out := b.String()
	if frac != "" {
		out += "," + frac
	}
	if neg {
		out = "-" + out
	}
	return out
}

// FormatMoney renders an amount with two decimals followed by the symbol
func FormatMoney(d decimal.Decimal, symbol string) string {
	s := FormatNumber(d, 2)
	if symbol == "" {
		return s
	}
	return s + " " + symbol
}

// FormatQuantity drops trailing zero decimals: 2, 2,5, 0,125
func FormatQuantity(d decimal.Decimal) string {
	places := -d.Exponent()
	if places < 0 {
		places = 0
	}
	s := FormatNumber(d, places)
	if strings.Contains(s, ",") {
		s = strings.TrimRight(strings.TrimRight(s, "0"), ",")
	}
	return s
}

// FormatPercent renders a rate as %20
func FormatPercent(d decimal.Decimal) string {
	return "%" + FormatQuantity(d)
}

// FormatDate renders t as 02.01.2006, blank for the zero time
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}
