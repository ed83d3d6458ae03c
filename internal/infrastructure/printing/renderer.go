package printing

import (
	"context"
	"time"

	"github.com/isletme/backend/internal/domain/printing"
)

// RenderRequest contains the parameters for rendering HTML to PDF
type RenderRequest struct {
	HTML        string
	PaperSize   printing.PaperSize
	Orientation printing.Orientation
	// Margins in millimeters. Layout HTML carries its own padding and
	// leaves these at zero.
	Margins printing.Margins
	Title   string
	// Timeout overrides the default rendering timeout
	Timeout time.Duration
}

// RenderResult contains the output from PDF rendering
type RenderResult struct {
	PDFData        []byte
	PageCount      int
	RenderDuration time.Duration
}

// PDFRenderer converts HTML to PDF
type PDFRenderer interface {
	Render(ctx context.Context, req *RenderRequest) (*RenderResult, error)
	Close() error
}

// RenderError represents an error during PDF rendering
type RenderError struct {
	Code    string
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// Error codes for rendering failures
const (
	ErrCodeRenderTimeout    = "RENDER_TIMEOUT"
	ErrCodeRenderFailed     = "RENDER_FAILED"
	ErrCodeInvalidHTML      = "INVALID_HTML"
	ErrCodeInvalidPaperSize = "INVALID_PAPER_SIZE"
	ErrCodeRendererDisabled = "RENDERER_DISABLED"
)

// NewRenderError creates a new RenderError
func NewRenderError(code, message string, cause error) *RenderError {
	return &RenderError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// DisabledRenderer is used when headless Chrome is not configured; every
// render fails with ErrCodeRendererDisabled.
type DisabledRenderer struct{}

// Render always fails
func (DisabledRenderer) Render(context.Context, *RenderRequest) (*RenderResult, error) {
	return nil, NewRenderError(ErrCodeRendererDisabled, "PDF rendering is disabled", nil)
}

// Close does nothing
func (DisabledRenderer) Close() error { return nil }

var _ PDFRenderer = DisabledRenderer{}
