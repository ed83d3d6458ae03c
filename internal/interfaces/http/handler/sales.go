package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	documentsapp "github.com/isletme/backend/internal/application/documents"
	salesapp "github.com/isletme/backend/internal/application/sales"
)

// ProposalService is the proposal use case surface
type ProposalService interface {
	crudService[salesapp.ProposalRequest, salesapp.ProposalResponse, salesapp.ProposalListFilter]
	ListByCustomer(ctx context.Context, tenantID, customerID uuid.UUID) ([]salesapp.ProposalResponse, error)
	Send(ctx context.Context, tenantID, id uuid.UUID) (*salesapp.ProposalResponse, error)
	Accept(ctx context.Context, tenantID, id uuid.UUID) (*salesapp.ProposalResponse, error)
	Reject(ctx context.Context, tenantID, id uuid.UUID) (*salesapp.ProposalResponse, error)
	Expire(ctx context.Context, tenantID, id uuid.UUID) (*salesapp.ProposalResponse, error)
}

// ProposalDocuments renders proposals for printing and archiving
type ProposalDocuments interface {
	ProposalHTML(ctx context.Context, tenantID, proposalID uuid.UUID) (string, error)
	ProposalPDF(ctx context.Context, tenantID, proposalID uuid.UUID) (*documentsapp.RenderedDocument, error)
	ArchiveProposalPDF(ctx context.Context, tenantID, proposalID uuid.UUID) (*documentsapp.ArchiveResponse, error)
}

// ProposalHandler serves /sales/proposals
type ProposalHandler struct {
	*crudHandler[salesapp.ProposalRequest, salesapp.ProposalResponse, salesapp.ProposalListFilter]
	proposalService ProposalService
	documents       ProposalDocuments
}

// NewProposalHandler creates a new ProposalHandler
func NewProposalHandler(proposalService ProposalService, documents ProposalDocuments) *ProposalHandler {
	crud := newCRUDHandler[salesapp.ProposalRequest, salesapp.ProposalResponse, salesapp.ProposalListFilter](proposalService)
	crud.prepare = func(c *gin.Context, req *salesapp.ProposalRequest) {
		req.CreatedBy = createdBy(c)
	}
	return &ProposalHandler{crudHandler: crud, proposalService: proposalService, documents: documents}
}

// ListByCustomer returns the proposals of the :id customer
func (h *ProposalHandler) ListByCustomer(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	customerID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	proposals, err := h.proposalService.ListByCustomer(c.Request.Context(), tenantID, customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, proposals)
}

// Send moves a draft proposal to sent
func (h *ProposalHandler) Send(c *gin.Context) {
	h.transition(c, func(ctx context.Context, tenantID, id uuid.UUID) (any, error) {
		return h.proposalService.Send(ctx, tenantID, id)
	})
}

// Accept marks a sent proposal as accepted
func (h *ProposalHandler) Accept(c *gin.Context) {
	h.transition(c, func(ctx context.Context, tenantID, id uuid.UUID) (any, error) {
		return h.proposalService.Accept(ctx, tenantID, id)
	})
}

// Reject marks a sent proposal as rejected
func (h *ProposalHandler) Reject(c *gin.Context) {
	h.transition(c, func(ctx context.Context, tenantID, id uuid.UUID) (any, error) {
		return h.proposalService.Reject(ctx, tenantID, id)
	})
}

// Expire marks a sent proposal as expired
func (h *ProposalHandler) Expire(c *gin.Context) {
	h.transition(c, func(ctx context.Context, tenantID, id uuid.UUID) (any, error) {
		return h.proposalService.Expire(ctx, tenantID, id)
	})
}

// Preview returns the proposal rendered as an HTML page
func (h *ProposalHandler) Preview(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	html, err := h.documents.ProposalHTML(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// PDF streams the rendered proposal as a download
func (h *ProposalHandler) PDF(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	doc, err := h.documents.ProposalPDF(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	c.Header("X-Page-Count", fmt.Sprint(doc.PageCount))
	c.Data(http.StatusOK, "application/pdf", doc.Data)
}

// Archive uploads the rendered PDF to object storage and returns its link
func (h *ProposalHandler) Archive(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	archived, err := h.documents.ArchiveProposalPDF(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, archived)
}
