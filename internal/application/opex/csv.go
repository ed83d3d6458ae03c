package opex

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/isletme/backend/internal/domain/opex"
	"github.com/isletme/backend/internal/domain/shared"
	"github.com/isletme/backend/internal/infrastructure/csvimport"
)

// CSV column headers and marker rows
const (
	ColumnCategory    = "Kategori"
	ColumnSubcategory = "Alt Kategori"
	ColumnTotal       = "Toplam"
	CategoryTotalRow  = "TOPLAM"
	GrandTotalRow     = "GENEL TOPLAM"

	maxImportErrors = 100
)

// CSVHeader is the header row of exported and imported matrices
func CSVHeader() []string {
	header := make([]string, 0, opex.Months+3)
	header = append(header, ColumnCategory, ColumnSubcategory)
	header = append(header, opex.MonthNames[:]...)
	return append(header, ColumnTotal)
}

// ExportFilename is the attachment name of an exported year
func ExportFilename(year int) string {
	return fmt.Sprintf("opex-%d.csv", year)
}

// ExportCSV writes the working grid of year: one row per subcategory, a
// total row after each category and a grand total row at the end.
func (s *MatrixService) ExportCSV(ctx context.Context, tenantID uuid.UUID, year int, w io.Writer) error {
	m, err := s.Matrix(ctx, tenantID, year)
	if err != nil {
		return err
	}
	v := m.View()

	cw := csvimport.NewWriter(w)
	if err := cw.Write(CSVHeader()); err != nil {
		return err
	}
	for _, c := range v.Categories {
		for _, r := range c.Rows {
			if err := cw.Write(amountRecord(c.Category, r.Subcategory, r.Months, r.Total)); err != nil {
				return err
			}
		}
		if err := cw.Write(amountRecord(c.Category, CategoryTotalRow, c.MonthTotals, c.YearTotal)); err != nil {
			return err
		}
	}
	if err := cw.Write(amountRecord(GrandTotalRow, "", v.ColumnTotals, v.GrandTotal)); err != nil {
		return err
	}
	return cw.Flush()
}

// Import reads a matrix in the export format and upserts one entry per
// non-empty month cell. Total rows and auto categories are skipped; bad
// rows are reported and do not stop the import.
func (s *MatrixService) Import(ctx context.Context, tenantID uuid.UUID, year int, r io.Reader) (*ImportResult, error) {
	if err := (opex.Key{Year: year, Month: 1}).Validate(); err != nil {
		return nil, err
	}
	parser, err := csvimport.NewCSVParser(r)
	if err != nil {
		return nil, importFileError(err)
	}
	if err := parser.ParseHeader(); err != nil {
		return nil, importFileError(err)
	}
	required := append([]string{ColumnCategory, ColumnSubcategory}, opex.MonthNames[:]...)
	if missing := parser.ValidateHeaders(required); len(missing) > 0 {
		return nil, shared.NewDomainError(csvimport.ErrCodeImportMissingHeader,
			fmt.Sprintf("Eksik sütunlar: %v", missing))
	}

	result := &ImportResult{Year: year}
	errs := csvimport.NewErrorCollection(maxImportErrors)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := parser.ReadRow()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, importFileError(err)
		}
		if row.IsEmpty() {
			continue
		}
		result.TotalRows++
		if s.importRow(ctx, tenantID, year, row, result, errs) {
			result.ErrorRows++
		}
	}

	result.Errors = errs.Errors()
	result.IsTruncated = errs.IsTruncated()
	result.TotalErrors = errs.TotalCount()
	return result, nil
}

// importRow reports whether the row produced any error
func (s *MatrixService) importRow(ctx context.Context, tenantID uuid.UUID, year int, row *csvimport.Row, result *ImportResult, errs *csvimport.ErrorCollection) bool {
	category := row.Get(ColumnCategory)
	subcategory := row.Get(ColumnSubcategory)
	if category == GrandTotalRow || subcategory == CategoryTotalRow {
		result.SkippedRows++
		return false
	}

	c, ok := s.taxonomy.Category(category)
	switch {
	case !ok:
		errs.Add(csvimport.RowError{Row: row.LineNumber, Column: ColumnCategory,
			Code: csvimport.ErrCodeImportInvalidValue, Message: opex.ErrUnknownCategory.Message, Value: category})
		return true
	case c.Auto:
		result.SkippedRows++
		return false
	case !c.HasSubcategory(subcategory):
		errs.Add(csvimport.RowError{Row: row.LineNumber, Column: ColumnSubcategory,
			Code: csvimport.ErrCodeImportInvalidValue, Message: opex.ErrUnknownSubcategory.Message, Value: subcategory})
		return true
	}

	failed := false
	for i, column := range opex.MonthNames {
		raw := row.Get(column)
		if raw == "" {
			continue
		}
		amount, err := csvimport.ParseDecimal(raw)
		if err != nil {
			errs.AddFormatError(row.LineNumber, column, "amount", raw)
			failed = true
			continue
		}
		if amount.IsNegative() {
			errs.Add(csvimport.RowError{Row: row.LineNumber, Column: column,
				Code: csvimport.ErrCodeImportInvalidValue, Message: opex.ErrNegativeAmount.Message, Value: raw})
			failed = true
			continue
		}

		key := opex.Key{Year: year, Month: i + 1, Category: category, Subcategory: subcategory}
		// the imported value supersedes an edit still waiting for its save
		s.saver.Cancel(cellRef{TenantID: tenantID, Key: key})
		if err := s.upsert(ctx, tenantID, key, amount); err != nil {
			errs.Add(csvimport.RowError{Row: row.LineNumber, Column: column,
				Code: csvimport.ErrCodeImportSaveFailed, Message: err.Error(), Value: raw})
			failed = true
			continue
		}
		result.ImportedCells++
	}
	return failed
}

func amountRecord(first, second string, amounts []decimal.Decimal, total decimal.Decimal) []string {
	record := make([]string, 0, len(amounts)+3)
	record = append(record, first, second)
	for _, a := range amounts {
		record = append(record, csvimport.FormatDecimal(a))
	}
	return append(record, csvimport.FormatDecimal(total))
}

func importFileError(err error) error {
	return shared.NewDomainError(csvimport.ErrCodeImportInvalidFile, err.Error())
}
