package handler

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	opexapp "github.com/isletme/backend/internal/application/opex"
	"github.com/isletme/backend/internal/domain/opex"
	"github.com/isletme/backend/internal/interfaces/http/dto"
)

// MatrixService is the OPEX matrix use case surface
type MatrixService interface {
	View(ctx context.Context, tenantID uuid.UUID, year int) (*opex.View, error)
	EditCell(ctx context.Context, tenantID uuid.UUID, req opexapp.CellEditRequest) (*opexapp.CellEditResponse, error)
	SaveAll(ctx context.Context, tenantID uuid.UUID, year int) (*opexapp.SaveResult, error)
	ExportCSV(ctx context.Context, tenantID uuid.UUID, year int, w io.Writer) error
	Import(ctx context.Context, tenantID uuid.UUID, year int, r io.Reader) (*opexapp.ImportResult, error)
}

// OpexHandler serves /opex/matrix
type OpexHandler struct {
	BaseHandler
	matrixService MatrixService
	now           func() time.Time
}

// NewOpexHandler creates a new OpexHandler. Requests without ?year= use
// the current year in loc.
func NewOpexHandler(matrixService MatrixService, loc *time.Location) *OpexHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &OpexHandler{
		matrixService: matrixService,
		now:           func() time.Time { return time.Now().In(loc) },
	}
}

func (h *OpexHandler) year(c *gin.Context) (int, bool) {
	var q opexapp.YearQuery
	if !h.bindQuery(c, &q) {
		return 0, false
	}
	if q.Year == 0 {
		return h.now().Year(), true
	}
	return q.Year, true
}

// Matrix returns the grid of a year with row, column and category totals
func (h *OpexHandler) Matrix(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	year, ok := h.year(c)
	if !ok {
		return
	}

	view, err := h.matrixService.View(c.Request.Context(), tenantID, year)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// EditCell schedules the save of one manual cell
func (h *OpexHandler) EditCell(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var req opexapp.CellEditRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.matrixService.EditCell(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, dto.NewSuccessResponse(resp))
}

// SaveAll writes every manual cell of the year
func (h *OpexHandler) SaveAll(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	year, ok := h.year(c)
	if !ok {
		return
	}

	result, err := h.matrixService.SaveAll(c.Request.Context(), tenantID, year)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Export downloads the year as CSV
func (h *OpexHandler) Export(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	year, ok := h.year(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.matrixService.ExportCSV(c.Request.Context(), tenantID, year, &buf); err != nil {
		h.HandleError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"opex-%d.csv\"", year))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// Import loads a CSV into the year. The file is taken from the "file"
// form field of a multipart upload or from the raw request body.
func (h *OpexHandler) Import(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	year, ok := h.year(c)
	if !ok {
		return
	}

	body, cleanup, ok := h.importBody(c)
	if !ok {
		return
	}
	defer cleanup()

	result, err := h.matrixService.Import(c.Request.Context(), tenantID, year, body)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

func (h *OpexHandler) importBody(c *gin.Context) (io.Reader, func(), bool) {
	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		return c.Request.Body, func() {}, true
	}
	header, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "CSV dosyası bulunamadı")
		return nil, nil, false
	}
	f, err := header.Open()
	if err != nil {
		h.BadRequest(c, "CSV dosyası okunamadı")
		return nil, nil, false
	}
	return f, func() { _ = f.Close() }, true
}
