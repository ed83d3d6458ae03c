package valueobject

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseCurrency(t *testing.T) {
	tests := []struct {
		in    string
		want  Currency
		valid bool
	}{
		{"", TRY, true},
		{"try", TRY, true},
		{" usd ", USD, true},
		{"EUR", EUR, true},
		{"JPY", Currency("JPY"), false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseCurrency(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.valid, ok)
		})
	}
}

func TestCurrency_Symbol(t *testing.T) {
	assert.Equal(t, "₺", TRY.Symbol())
	assert.Equal(t, "€", EUR.Symbol())
	assert.Equal(t, "XYZ", Currency("XYZ").Symbol())
}

func TestPercent(t *testing.T) {
	got := Percent(decimal.NewFromInt(1500), decimal.NewFromInt(20))
	assert.True(t, got.Equal(decimal.NewFromInt(300)))

	assert.True(t, RoundMoney(decimal.RequireFromString("10.005")).Equal(decimal.RequireFromString("10.01")))
}
