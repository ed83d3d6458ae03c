package csvimport

import (
	"encoding/csv"
	"fmt"
	"io"
)

var bom = []byte{0xEF, 0xBB, 0xBF}

// Writer writes BOM-prefixed, semicolon separated CSV so spreadsheet
// programs open Turkish text and decimal commas correctly.
type Writer struct {
	w       io.Writer
	csv     *csv.Writer
	started bool
}

// NewWriter creates a writer on w
func NewWriter(w io.Writer) *Writer {
	cw := csv.NewWriter(w)
	cw.Comma = DefaultDelimiter
	cw.UseCRLF = true
	return &Writer{w: w, csv: cw}
}

// Write writes one record, emitting the BOM before the first
func (w *Writer) Write(record []string) error {
	if !w.started {
		if _, err := w.w.Write(bom); err != nil {
			return fmt.Errorf("write bom: %w", err)
		}
		w.started = true
	}
	return w.csv.Write(record)
}

// Flush writes buffered records and reports any write error
func (w *Writer) Flush() error {
	w.csv.Flush()
	return w.csv.Error()
}
