// Package documents renders printable documents and manages their page
// schemas.
package documents

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/isletme/backend/internal/domain/crm"
	"github.com/isletme/backend/internal/domain/printing"
	"github.com/isletme/backend/internal/domain/sales"
	"github.com/isletme/backend/internal/domain/shared"
	"github.com/isletme/backend/internal/infrastructure/logger"
	infra "github.com/isletme/backend/internal/infrastructure/printing"
	"github.com/isletme/backend/internal/infrastructure/telemetry"
)

const pdfContentType = "application/pdf"

// ErrStorageDisabled is returned when archiving without object storage
var ErrStorageDisabled = shared.NewDomainError("STORAGE_DISABLED", "Belge arşivi yapılandırılmamış")

// ErrUnknownDocumentType is returned for schema requests of unsupported types
var ErrUnknownDocumentType = shared.NewDomainError("NOT_FOUND", "Bilinmeyen belge türü")

// ObjectStorage stores generated files and hands out download links
type ObjectStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	DownloadURL(ctx context.Context, key string) (string, time.Time, error)
}

// DocumentService builds proposal documents from the tenant's page schema
type DocumentService struct {
	schemaRepo   printing.SchemaRepository
	proposalRepo sales.ProposalRepository
	customerRepo crm.CustomerRepository
	emitter      *infra.HTMLEmitter
	renderer     infra.PDFRenderer
	storage      ObjectStorage
	metrics      *telemetry.Metrics
}

// NewDocumentService creates a new DocumentService. storage may be nil, in
// which case archiving fails with ErrStorageDisabled.
func NewDocumentService(
	schemaRepo printing.SchemaRepository,
	proposalRepo sales.ProposalRepository,
	customerRepo crm.CustomerRepository,
	renderer infra.PDFRenderer,
	storage ObjectStorage,
	metrics *telemetry.Metrics,
) *DocumentService {
	if metrics == nil {
		metrics = telemetry.NopMetrics()
	}
	return &DocumentService{
		schemaRepo:   schemaRepo,
		proposalRepo: proposalRepo,
		customerRepo: customerRepo,
		emitter:      infra.NewHTMLEmitter(),
		renderer:     renderer,
		storage:      storage,
		metrics:      metrics,
	}
}

// GetSchema returns the saved schema of documentType or the default one
func (s *DocumentService) GetSchema(ctx context.Context, tenantID uuid.UUID, documentType string) (*SchemaResponse, error) {
	if documentType != printing.DocumentTypeProposal {
		return nil, ErrUnknownDocumentType
	}
	record, err := s.schemaRepo.FindByDocumentType(ctx, tenantID, documentType)
	if errors.Is(err, shared.ErrNotFound) {
		return &SchemaResponse{DocumentType: documentType, Schema: printing.DefaultSchema(), IsDefault: true}, nil
	}
	if err != nil {
		return nil, err
	}
	updated := record.UpdatedAt
	return &SchemaResponse{DocumentType: documentType, Schema: record.Schema, UpdatedAt: &updated}, nil
}

// SaveSchema validates schema and stores it as the tenant's layout
func (s *DocumentService) SaveSchema(ctx context.Context, tenantID uuid.UUID, documentType string, schema printing.PageSchema) (*SchemaResponse, error) {
	if documentType != printing.DocumentTypeProposal {
		return nil, ErrUnknownDocumentType
	}
	if err := schema.Validate(); err != nil {
		return nil, err
	}

	record, err := s.schemaRepo.FindByDocumentType(ctx, tenantID, documentType)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		record = &printing.SchemaRecord{
			TenantEntity: shared.NewTenantEntity(tenantID),
			DocumentType: documentType,
		}
	case err != nil:
		return nil, err
	default:
		record.Touch()
	}
	record.Schema = schema

	if err := s.schemaRepo.Save(ctx, record); err != nil {
		return nil, err
	}
	updated := record.UpdatedAt
	return &SchemaResponse{DocumentType: documentType, Schema: record.Schema, UpdatedAt: &updated}, nil
}

// ProposalHTML renders the proposal layout as standalone HTML
func (s *DocumentService) ProposalHTML(ctx context.Context, tenantID, proposalID uuid.UUID) (string, error) {
	page, err := s.proposalPage(ctx, tenantID, proposalID)
	if err != nil {
		return "", err
	}
	return page.html, nil
}

// ProposalPDF renders the proposal to PDF
func (s *DocumentService) ProposalPDF(ctx context.Context, tenantID, proposalID uuid.UUID) (*RenderedDocument, error) {
	page, err := s.proposalPage(ctx, tenantID, proposalID)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	result, err := s.renderer.Render(ctx, &infra.RenderRequest{
		HTML:        page.html,
		PaperSize:   page.schema.PaperSize,
		Orientation: page.schema.Orientation,
		Title:       page.title,
	})
	s.metrics.RecordPDFRender(ctx, printing.DocumentTypeProposal, time.Since(start), err)
	if err != nil {
		logger.L(ctx).Error("Proposal PDF render failed",
			zap.String("proposal_id", proposalID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	return &RenderedDocument{
		Filename:  page.number + ".pdf",
		Data:      result.PDFData,
		PageCount: result.PageCount,
	}, nil
}

// ArchiveProposalPDF renders the proposal, uploads it and returns a
// time-limited download link
func (s *DocumentService) ArchiveProposalPDF(ctx context.Context, tenantID, proposalID uuid.UUID) (*ArchiveResponse, error) {
	if s.storage == nil {
		return nil, ErrStorageDisabled
	}
	doc, err := s.ProposalPDF(ctx, tenantID, proposalID)
	if err != nil {
		return nil, err
	}

	key := ArchiveKey(tenantID, printing.DocumentTypeProposal, doc.Filename)
	if err := s.storage.Upload(ctx, key, doc.Data, pdfContentType); err != nil {
		return nil, fmt.Errorf("upload %s: %w", key, err)
	}
	url, expires, err := s.storage.DownloadURL(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("presign %s: %w", key, err)
	}
	logger.L(ctx).Info("Proposal PDF archived", zap.String("key", key), zap.Int("size", len(doc.Data)))
	return &ArchiveResponse{Key: key, URL: url, ExpiresAt: expires, Size: len(doc.Data)}, nil
}

// ArchiveKey is the object key of an archived document
func ArchiveKey(tenantID uuid.UUID, documentType, filename string) string {
	return fmt.Sprintf("%s/%ss/%s", tenantID, documentType, filename)
}

type renderedPage struct {
	schema printing.PageSchema
	title  string
	number string
	html   string
}

func (s *DocumentService) proposalPage(ctx context.Context, tenantID, proposalID uuid.UUID) (*renderedPage, error) {
	proposal, err := s.proposalRepo.FindByID(ctx, tenantID, proposalID)
	if err != nil {
		return nil, err
	}
	customer, err := s.customerRepo.FindByID(ctx, tenantID, proposal.CustomerID)
	if err != nil {
		return nil, err
	}
	schema, err := s.GetSchema(ctx, tenantID, printing.DocumentTypeProposal)
	if err != nil {
		return nil, err
	}

	doc := ProposalDocument(proposal, customer, schema.Schema.Company)
	layout := printing.BuildLayout(schema.Schema, doc)
	title := doc.DocumentNumber + " " + doc.Subject
	html, err := s.emitter.Render(layout, title)
	if err != nil {
		return nil, infra.NewRenderError(infra.ErrCodeInvalidHTML, "emit proposal html", err)
	}
	return &renderedPage{schema: schema.Schema, title: title, number: proposal.ProposalNumber, html: html}, nil
}

// ProposalDocument maps a proposal and its customer onto printable content
func ProposalDocument(p *sales.Proposal, c *crm.Customer, company printing.Party) printing.DocumentData {
	items := make([]printing.LineItem, len(p.Items))
	for i, it := range p.Items {
		items[i] = printing.LineItem{
			Description: it.Description,
			Quantity:    it.Quantity,
			Unit:        it.Unit,
			UnitPrice:   it.UnitPrice,
			TaxRate:     it.TaxRate,
			LineTotal:   it.LineTotal,
		}
	}
	return printing.DocumentData{
		Title:          "Fiyat Teklifi",
		DocumentNumber: p.ProposalNumber,
		Subject:        p.Title,
		IssueDate:      p.IssueDate,
		ValidUntil:     p.ValidUntil,
		CurrencySymbol: p.Currency.Symbol(),
		Company:        company,
		Customer: printing.Party{
			Name:      c.DisplayName(),
			Address:   c.Address,
			City:      c.City,
			TaxOffice: c.TaxOffice,
			TaxNumber: c.TaxNumber,
			Phone:     c.Phone,
			Email:     c.Email,
		},
		Items: items,
		Totals: printing.Totals{
			Subtotal:     p.Subtotal,
			DiscountRate: p.DiscountRate,
			Discount:     p.DiscountAmount,
			TaxRate:      p.TaxRate,
			Tax:          p.TaxAmount,
			Total:        p.Total,
		},
		Notes: p.Notes,
		Terms: p.Terms,
	}
}
