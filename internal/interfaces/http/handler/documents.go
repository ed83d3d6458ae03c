package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	documentsapp "github.com/isletme/backend/internal/application/documents"
	"github.com/isletme/backend/internal/domain/printing"
)

// SchemaService stores the per-tenant PDF page schemas
type SchemaService interface {
	GetSchema(ctx context.Context, tenantID uuid.UUID, documentType string) (*documentsapp.SchemaResponse, error)
	SaveSchema(ctx context.Context, tenantID uuid.UUID, documentType string, schema printing.PageSchema) (*documentsapp.SchemaResponse, error)
}

// DocumentHandler serves /documents/schemas
type DocumentHandler struct {
	BaseHandler
	schemaService SchemaService
}

// NewDocumentHandler creates a new DocumentHandler
func NewDocumentHandler(schemaService SchemaService) *DocumentHandler {
	return &DocumentHandler{schemaService: schemaService}
}

// GetSchema returns the schema of :type, or the default one
func (h *DocumentHandler) GetSchema(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}

	schema, err := h.schemaService.GetSchema(c.Request.Context(), tenantID, c.Param("type"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, schema)
}

// SaveSchema replaces the schema of :type
func (h *DocumentHandler) SaveSchema(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var schema printing.PageSchema
	if !h.bindJSON(c, &schema) {
		return
	}

	saved, err := h.schemaService.SaveSchema(c.Request.Context(), tenantID, c.Param("type"), schema)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, saved)
}
