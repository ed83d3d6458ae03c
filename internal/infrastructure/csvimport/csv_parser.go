// Package csvimport reads and writes the semicolon separated, BOM prefixed
// CSV files that Turkish locale spreadsheet programs produce.
package csvimport

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// DefaultDelimiter is the list separator of the Turkish Excel locale
const DefaultDelimiter = ';'

// CSVParser handles parsing of CSV files with BOM and encoding checks
type CSVParser struct {
	delimiter  rune
	trimSpace  bool
	headerMap  map[string]int
	headers    []string
	currentRow int
	reader     *csv.Reader
}

// ParserOption is a functional option for CSVParser configuration
type ParserOption func(*CSVParser)

// WithDelimiter sets the field delimiter (default is semicolon)
func WithDelimiter(d rune) ParserOption {
	return func(p *CSVParser) {
		p.delimiter = d
	}
}

// WithTrimSpace enables trimming of leading/trailing spaces from fields
func WithTrimSpace(trim bool) ParserOption {
	return func(p *CSVParser) {
		p.trimSpace = trim
	}
}

// NewCSVParser creates a new CSV parser from a reader
func NewCSVParser(r io.Reader, opts ...ParserOption) (*CSVParser, error) {
	parser := &CSVParser{
		delimiter: DefaultDelimiter,
		trimSpace: true,
		headerMap: make(map[string]int),
	}
	for _, opt := range opts {
		opt(parser)
	}

	br := bufio.NewReader(r)

	// UTF-8 BOM: 0xEF, 0xBB, 0xBF
	if head, err := br.Peek(3); err == nil && bytes.Equal(head, bom) {
		_, _ = br.Discard(3)
	} else if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	if err := validateUTF8(br); err != nil {
		return nil, err
	}

	parser.reader = csv.NewReader(br)
	parser.reader.Comma = parser.delimiter
	parser.reader.LazyQuotes = true
	parser.reader.TrimLeadingSpace = parser.trimSpace
	parser.reader.FieldsPerRecord = -1

	return parser, nil
}

// ParseFromBytes creates a parser from a byte slice
func ParseFromBytes(data []byte, opts ...ParserOption) (*CSVParser, error) {
	return NewCSVParser(bytes.NewReader(data), opts...)
}

// validateUTF8 checks the first block of content. A multi-byte rune cut
// at the block boundary is not an error.
func validateUTF8(r *bufio.Reader) error {
	const checkSize = 4096
	content, err := r.Peek(checkSize)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return fmt.Errorf("read csv: %w", err)
	}
	if len(content) == 0 {
		return ErrEmptyFile
	}
	if len(content) == checkSize {
		for i := 1; i < utf8.UTFMax && i <= len(content); i++ {
			if utf8.RuneStart(content[len(content)-i]) {
				if !utf8.FullRune(content[len(content)-i:]) {
					content = content[:len(content)-i]
				}
				break
			}
		}
	}
	if !utf8.Valid(content) {
		return ErrInvalidEncoding
	}
	return nil
}

// ParseHeader reads and parses the header row
func (p *CSVParser) ParseHeader() error {
	record, err := p.reader.Read()
	if errors.Is(err, io.EOF) {
		return ErrMissingHeader
	}
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}

	p.headers = make([]string, len(record))
	for i, h := range record {
		if p.trimSpace {
			h = strings.TrimSpace(h)
		}
		p.headers[i] = h
		p.headerMap[h] = i
	}
	p.currentRow = 1
	return nil
}

// Headers returns the parsed header names
func (p *CSVParser) Headers() []string {
	return p.headers
}

// HasHeader checks if a header exists
func (p *CSVParser) HasHeader(name string) bool {
	_, ok := p.headerMap[name]
	return ok
}

// ValidateHeaders returns the required headers that are missing
func (p *CSVParser) ValidateHeaders(required []string) []string {
	var missing []string
	for _, h := range required {
		if !p.HasHeader(h) {
			missing = append(missing, h)
		}
	}
	return missing
}

// Row is a parsed CSV row with its 1-based line number
type Row struct {
	LineNumber int
	Data       map[string]string
	RawFields  []string
}

// Get returns the value for a column by header name
func (r *Row) Get(header string) string {
	return r.Data[header]
}

// IsEmpty returns true if the row has no non-empty values
func (r *Row) IsEmpty() bool {
	for _, v := range r.Data {
		if v != "" {
			return false
		}
	}
	return true
}

// ReadRow reads the next row; it returns io.EOF at the end of input
func (p *CSVParser) ReadRow() (*Row, error) {
	record, err := p.reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, io.EOF
	}
	p.currentRow++
	if err != nil {
		return nil, fmt.Errorf("read row %d: %w", p.currentRow, err)
	}

	row := &Row{
		LineNumber: p.currentRow,
		Data:       make(map[string]string, len(p.headers)),
		RawFields:  record,
	}
	for i, header := range p.headers {
		value := ""
		if i < len(record) {
			value = record[i]
			if p.trimSpace {
				value = strings.TrimSpace(value)
			}
		}
		row.Data[header] = value
	}
	return row, nil
}

// ReadAllRows reads all remaining rows, skipping blank ones
func (p *CSVParser) ReadAllRows() ([]*Row, error) {
	var rows []*Row
	for {
		row, err := p.ReadRow()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return rows, err
		}
		if row.IsEmpty() {
			continue
		}
		rows = append(rows, row)
	}
}
