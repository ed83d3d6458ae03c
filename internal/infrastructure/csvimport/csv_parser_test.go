package csvimport

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCSVParser(t *testing.T) {
	t.Run("UTF-8 BOM is stripped", func(t *testing.T) {
		parser, err := NewCSVParser(strings.NewReader("\xEF\xBB\xBFKategori;Ocak\nGenel;1"))
		require.NoError(t, err)
		require.NoError(t, parser.ParseHeader())
		assert.Equal(t, []string{"Kategori", "Ocak"}, parser.Headers())
	})

	t.Run("empty file returns error", func(t *testing.T) {
		_, err := NewCSVParser(strings.NewReader(""))
		assert.ErrorIs(t, err, ErrEmptyFile)

		_, err = NewCSVParser(bytes.NewReader(bom))
		assert.ErrorIs(t, err, ErrEmptyFile)
	})

	t.Run("invalid UTF-8 returns error", func(t *testing.T) {
		_, err := NewCSVParser(strings.NewReader("Kategori;Ocak\n\xff\xfe;1"))
		assert.ErrorIs(t, err, ErrInvalidEncoding)
	})

	t.Run("rune split at the check boundary is accepted", func(t *testing.T) {
		content := strings.Repeat("a", 4095) + "ş\n"
		_, err := NewCSVParser(strings.NewReader(content))
		assert.NoError(t, err)
	})

	t.Run("comma delimiter", func(t *testing.T) {
		parser, err := NewCSVParser(strings.NewReader("a,b\n1,2"), WithDelimiter(','))
		require.NoError(t, err)
		require.NoError(t, parser.ParseHeader())
		assert.Equal(t, []string{"a", "b"}, parser.Headers())
	})
}

func TestParseHeader(t *testing.T) {
	parser, err := NewCSVParser(strings.NewReader("  Kategori ; Alt Kategori \n"))
	require.NoError(t, err)
	require.NoError(t, parser.ParseHeader())

	assert.True(t, parser.HasHeader("Alt Kategori"))
	assert.Equal(t, []string{"Ocak"}, parser.ValidateHeaders([]string{"Kategori", "Ocak"}))
}

func TestReadRow(t *testing.T) {
	parser, err := NewCSVParser(strings.NewReader("Kategori;Alt Kategori;Ocak\nGenel; Kira ;1.000,00\nGenel\n"))
	require.NoError(t, err)
	require.NoError(t, parser.ParseHeader())

	row, err := parser.ReadRow()
	require.NoError(t, err)
	assert.Equal(t, 2, row.LineNumber)
	assert.Equal(t, "Kira", row.Get("Alt Kategori"))
	assert.Equal(t, "1.000,00", row.Get("Ocak"))

	row, err = parser.ReadRow()
	require.NoError(t, err)
	assert.Equal(t, "", row.Get("Ocak"), "short rows are padded")

	_, err = parser.ReadRow()
	assert.ErrorIs(t, err, io.EOF)
}

func TestReadAllRows_SkipsBlankRows(t *testing.T) {
	parser, err := ParseFromBytes([]byte("a;b\n1;2\n;\n3;4\n"))
	require.NoError(t, err)
	require.NoError(t, parser.ParseHeader())

	rows, err := parser.ReadAllRows()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 4, rows[1].LineNumber)
}

func TestQuotedFields(t *testing.T) {
	parser, err := ParseFromBytes([]byte("ad;not\n\"Yılmaz; Ltd\";\"satır 1\nsatır 2\"\n"))
	require.NoError(t, err)
	require.NoError(t, parser.ParseHeader())

	rows, err := parser.ReadAllRows()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Yılmaz; Ltd", rows[0].Get("ad"))
	assert.Equal(t, "satır 1\nsatır 2", rows[0].Get("not"))
}

func TestWriter_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.Write([]string{"Kategori", "Ocak"}))
	require.NoError(t, w.Write([]string{"Personel; Giderleri", FormatDecimal(decimal.RequireFromString("1234.5"))}))
	require.NoError(t, w.Flush())

	assert.True(t, bytes.HasPrefix(buf.Bytes(), bom))
	assert.Contains(t, buf.String(), "Kategori;Ocak\r\n")

	parser, err := NewCSVParser(&buf)
	require.NoError(t, err)
	require.NoError(t, parser.ParseHeader())
	rows, err := parser.ReadAllRows()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Personel; Giderleri", rows[0].Get("Kategori"))
	assert.Equal(t, "1234,50", rows[0].Get("Ocak"))
}

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1.234,56", "1234.56"},
		{"1234,5", "1234.5"},
		{"1234.56", "1234.56"},
		{"1.234", "1234"},
		{"12.345.678", "12345678"},
		{"0,125", "0.125"},
		{"-1.000,00", "-1000"},
		{" 2.500,00 ₺", "2500"},
		{"1 250,00", "1250"},
		{"1\u00a0250,00", "1250"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDecimal(tt.in)
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), got.String())
		})
	}

	_, err := ParseDecimal("on bin")
	assert.Error(t, err)
}

func TestFormatDecimal(t *testing.T) {
	assert.Equal(t, "0,00", FormatDecimal(decimal.Zero))
	assert.Equal(t, "15000,00", FormatDecimal(decimal.NewFromInt(15000)))
	assert.Equal(t, "-3,14", FormatDecimal(decimal.RequireFromString("-3.14159")))
}

func TestErrorCollection(t *testing.T) {
	ec := NewErrorCollection(2)
	assert.False(t, ec.HasErrors())

	ec.AddFormatError(2, "Ocak", "amount", "abc")
	ec.Add(RowError{Row: 3, Code: ErrCodeImportMalformedRow, Message: "bad"})
	ec.Add(RowError{Row: 4, Code: ErrCodeImportMalformedRow, Message: "bad"})

	assert.True(t, ec.HasErrors())
	assert.True(t, ec.IsTruncated())
	assert.Equal(t, 3, ec.TotalCount())
	require.Len(t, ec.Errors(), 2)
	assert.Equal(t, "row 2, column 'Ocak': invalid format, expected amount", ec.Errors()[0].Error())
	assert.Equal(t, "row 3: bad", ec.Errors()[1].Error())
}
