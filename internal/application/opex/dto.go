package opex

import (
	"github.com/shopspring/decimal"

	"github.com/isletme/backend/internal/domain/opex"
	"github.com/isletme/backend/internal/infrastructure/csvimport"
)

// YearQuery selects the matrix year
type YearQuery struct {
	Year int `form:"year" binding:"omitempty,min=2000,max=2100"`
}

// CellEditRequest is the body of a single cell edit
type CellEditRequest struct {
	Year        int             `json:"year" binding:"required,min=2000,max=2100"`
	Month       int             `json:"month" binding:"required,opex_month"`
	Category    string          `json:"category" binding:"required"`
	Subcategory string          `json:"subcategory" binding:"required"`
	Amount      decimal.Decimal `json:"amount"`
}

func (r CellEditRequest) key() opex.Key {
	return opex.Key{Year: r.Year, Month: r.Month, Category: r.Category, Subcategory: r.Subcategory}
}

// CellEditResponse acknowledges an edit that is waiting for its save
type CellEditResponse struct {
	opex.Key
	Amount    decimal.Decimal `json:"amount"`
	SavesInMs int64           `json:"saves_in_ms"`
}

// SaveResult is the aggregate outcome of a bulk save
type SaveResult struct {
	Year      int  `json:"year"`
	Succeeded int  `json:"succeeded"`
	Failed    int  `json:"failed"`
	Success   bool `json:"success"`
}

// ImportResult summarizes a matrix CSV import
type ImportResult struct {
	Year          int                  `json:"year"`
	TotalRows     int                  `json:"total_rows"`
	ImportedCells int                  `json:"imported_cells"`
	SkippedRows   int                  `json:"skipped_rows"`
	ErrorRows     int                  `json:"error_rows"`
	Errors        []csvimport.RowError `json:"errors,omitempty"`
	IsTruncated   bool                 `json:"is_truncated,omitempty"`
	TotalErrors   int                  `json:"total_errors,omitempty"`
}
