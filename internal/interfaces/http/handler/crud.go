package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// crudService is the shape shared by the record services
type crudService[Req, Resp, F any] interface {
	Create(ctx context.Context, tenantID uuid.UUID, req Req) (*Resp, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*Resp, error)
	List(ctx context.Context, tenantID uuid.UUID, filter F) ([]Resp, int64, error)
	Update(ctx context.Context, tenantID, id uuid.UUID, req Req) (*Resp, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// pager is implemented by every list filter through common.ListQuery
type pager interface {
	Paging() (page, pageSize int)
}

// crudHandler serves the five record endpoints of one entity. prepare,
// when set, fills server-side fields such as CreatedBy before Create.
type crudHandler[Req, Resp any, F pager] struct {
	BaseHandler
	svc     crudService[Req, Resp, F]
	prepare func(c *gin.Context, req *Req)
}

func newCRUDHandler[Req, Resp any, F pager](svc crudService[Req, Resp, F]) *crudHandler[Req, Resp, F] {
	return &crudHandler[Req, Resp, F]{svc: svc}
}

// Create stores a new record
func (h *crudHandler[Req, Resp, F]) Create(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var req Req
	if !h.bindJSON(c, &req) {
		return
	}
	if h.prepare != nil {
		h.prepare(c, &req)
	}

	resp, err := h.svc.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// GetByID returns one record
func (h *crudHandler[Req, Resp, F]) GetByID(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	resp, err := h.svc.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List returns a page of records with pagination meta
func (h *crudHandler[Req, Resp, F]) List(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	var filter F
	if !h.bindQuery(c, &filter) {
		return
	}

	items, total, err := h.svc.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	page, pageSize := filter.Paging()
	h.SuccessWithMeta(c, items, total, page, pageSize)
}

// Update replaces a record
func (h *crudHandler[Req, Resp, F]) Update(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req Req
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.svc.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete removes a record
func (h *crudHandler[Req, Resp, F]) Delete(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// transition runs a status change of the :id record
func (h *BaseHandler) transition(c *gin.Context, apply func(ctx context.Context, tenantID, id uuid.UUID) (any, error)) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	resp, err := apply(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// createdBy sets the authenticated user as creator when known
func createdBy(c *gin.Context) *uuid.UUID {
	id, err := getUserID(c)
	if err != nil {
		return nil
	}
	return &id
}
