package documents

import (
	"time"

	"github.com/isletme/backend/internal/domain/printing"
)

// SchemaResponse is a tenant's page schema. IsDefault is set when the
// tenant has not saved one yet.
type SchemaResponse struct {
	DocumentType string              `json:"document_type"`
	Schema       printing.PageSchema `json:"schema"`
	IsDefault    bool                `json:"is_default"`
	UpdatedAt    *time.Time          `json:"updated_at,omitempty"`
}

// RenderedDocument is a generated PDF
type RenderedDocument struct {
	Filename  string
	Data      []byte
	PageCount int
}

// ArchiveResponse points to an uploaded PDF
type ArchiveResponse struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
	Size      int       `json:"size"`
}
