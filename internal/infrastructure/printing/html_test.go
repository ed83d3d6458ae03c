package printing

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isletme/backend/internal/domain/printing"
)

func sampleLayout(schema printing.PageSchema) printing.Layout {
	return printing.BuildLayout(schema, printing.DocumentData{
		Title:          "Fiyat teklifi",
		DocumentNumber: "TKF-202501-00001",
		IssueDate:      time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		CurrencySymbol: "₺",
		Company:        printing.Party{Name: "Deniz Yazılım", City: "İzmir", LogoURL: "https://cdn.example.com/logo.png"},
		Customer:       printing.Party{Name: "Çınar <Ltd>", City: "istanbul"},
		Items: []printing.LineItem{{
			Description: "Bakım",
			Quantity:    decimal.NewFromInt(2),
			UnitPrice:   decimal.NewFromInt(1250),
			LineTotal:   decimal.NewFromInt(2500),
		}},
		Totals: printing.Totals{
			Subtotal: decimal.NewFromInt(2500),
			TaxRate:  decimal.NewFromInt(20),
			Tax:      decimal.NewFromInt(500),
			Total:    decimal.NewFromInt(3000),
		},
	})
}

func TestHTMLEmitter_Render(t *testing.T) {
	out, err := NewHTMLEmitter().Render(sampleLayout(printing.DefaultSchema()), "TKF-202501-00001")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "size: 210mm 297mm")
	assert.Contains(t, out, "padding: 15mm 15mm 15mm 15mm")
	assert.Contains(t, out, "FİYAT TEKLİFİ", "title is upper-cased with Turkish rules")
	assert.Contains(t, out, "2.500,00 ₺")
	assert.Contains(t, out, "3.000,00 ₺")
	assert.Contains(t, out, "Çınar &lt;Ltd&gt;", "text content is escaped")
	assert.Contains(t, out, `src="https://cdn.example.com/logo.png"`)
	assert.Contains(t, out, `class="zone zone-items"`)
	assert.Contains(t, out, `class="row"`, "logo and company block share the header row")
}

func TestHTMLEmitter_Landscape(t *testing.T) {
	schema := printing.DefaultSchema()
	schema.PaperSize = printing.PaperSizeA5
	schema.Orientation = printing.OrientationLandscape

	out, err := NewHTMLEmitter().Render(sampleLayout(schema), "x")
	require.NoError(t, err)
	assert.Contains(t, out, "size: 210mm 148mm")
}

func TestHTMLEmitter_HidesColumns(t *testing.T) {
	schema := printing.DefaultSchema()
	schema.Columns = printing.ColumnVisibility{Description: true}

	out, err := NewHTMLEmitter().Render(sampleLayout(schema), "x")
	require.NoError(t, err)
	assert.Contains(t, out, "Açıklama")
	assert.NotContains(t, out, "Birim Fiyat")
	assert.NotContains(t, out, "Miktar")
}

func TestUpperTR(t *testing.T) {
	assert.Equal(t, "İSTANBUL ÇIĞ", upperTR("istanbul çığ"))
}

func TestSafeColor(t *testing.T) {
	assert.Equal(t, "#1f4e79", safeColor("#1f4e79"))
	assert.Equal(t, "#fff", safeColor("#fff"))
	assert.Equal(t, "#000000", safeColor("red;background:url(x)"))
	assert.Equal(t, "#000000", safeColor("#12345g"))
}

func TestImageURL(t *testing.T) {
	assert.Equal(t, "https://x/logo.png", string(imageURL(" https://x/logo.png ")))
	assert.Equal(t, "data:image/png;base64,AAA", string(imageURL("data:image/png;base64,AAA")))
	assert.Empty(t, string(imageURL("javascript:alert(1)")))
}
