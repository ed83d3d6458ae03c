package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	documentsapp "github.com/isletme/backend/internal/application/documents"
	salesapp "github.com/isletme/backend/internal/application/sales"
	"github.com/isletme/backend/internal/domain/shared"
	"github.com/isletme/backend/internal/infrastructure/printing"
	"github.com/isletme/backend/internal/interfaces/http/dto"
)

type mockProposalService struct {
	mock.Mock
}

func (m *mockProposalService) proposal(args mock.Arguments) (*salesapp.ProposalResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*salesapp.ProposalResponse), args.Error(1)
}

func (m *mockProposalService) Create(ctx context.Context, tenantID uuid.UUID, req salesapp.ProposalRequest) (*salesapp.ProposalResponse, error) {
	return m.proposal(m.Called(ctx, tenantID, req))
}

func (m *mockProposalService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*salesapp.ProposalResponse, error) {
	return m.proposal(m.Called(ctx, tenantID, id))
}

func (m *mockProposalService) List(ctx context.Context, tenantID uuid.UUID, filter salesapp.ProposalListFilter) ([]salesapp.ProposalResponse, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]salesapp.ProposalResponse), args.Get(1).(int64), args.Error(2)
}

func (m *mockProposalService) Update(ctx context.Context, tenantID, id uuid.UUID, req salesapp.ProposalRequest) (*salesapp.ProposalResponse, error) {
	return m.proposal(m.Called(ctx, tenantID, id, req))
}

func (m *mockProposalService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return m.Called(ctx, tenantID, id).Error(0)
}

func (m *mockProposalService) ListByCustomer(ctx context.Context, tenantID, customerID uuid.UUID) ([]salesapp.ProposalResponse, error) {
	args := m.Called(ctx, tenantID, customerID)
	return args.Get(0).([]salesapp.ProposalResponse), args.Error(1)
}

func (m *mockProposalService) Send(ctx context.Context, tenantID, id uuid.UUID) (*salesapp.ProposalResponse, error) {
	return m.proposal(m.Called(ctx, tenantID, id))
}

func (m *mockProposalService) Accept(ctx context.Context, tenantID, id uuid.UUID) (*salesapp.ProposalResponse, error) {
	return m.proposal(m.Called(ctx, tenantID, id))
}

func (m *mockProposalService) Reject(ctx context.Context, tenantID, id uuid.UUID) (*salesapp.ProposalResponse, error) {
	return m.proposal(m.Called(ctx, tenantID, id))
}

func (m *mockProposalService) Expire(ctx context.Context, tenantID, id uuid.UUID) (*salesapp.ProposalResponse, error) {
	return m.proposal(m.Called(ctx, tenantID, id))
}

type mockProposalDocuments struct {
	mock.Mock
}

func (m *mockProposalDocuments) ProposalHTML(ctx context.Context, tenantID, proposalID uuid.UUID) (string, error) {
	args := m.Called(ctx, tenantID, proposalID)
	return args.String(0), args.Error(1)
}

func (m *mockProposalDocuments) ProposalPDF(ctx context.Context, tenantID, proposalID uuid.UUID) (*documentsapp.RenderedDocument, error) {
	args := m.Called(ctx, tenantID, proposalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*documentsapp.RenderedDocument), args.Error(1)
}

func (m *mockProposalDocuments) ArchiveProposalPDF(ctx context.Context, tenantID, proposalID uuid.UUID) (*documentsapp.ArchiveResponse, error) {
	args := m.Called(ctx, tenantID, proposalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*documentsapp.ArchiveResponse), args.Error(1)
}

var (
	_ ProposalService   = (*mockProposalService)(nil)
	_ ProposalDocuments = (*mockProposalDocuments)(nil)
)

func newProposalTestEngine(svc ProposalService, docs ProposalDocuments, tenantID uuid.UUID) http.Handler {
	h := NewProposalHandler(svc, docs)
	r := newTestEngine(tenantID, uuid.New())
	r.POST("/proposals/:id/send", h.Send)
	r.POST("/proposals/:id/accept", h.Accept)
	r.GET("/proposals/:id/pdf", h.PDF)
	r.GET("/proposals/:id/preview", h.Preview)
	r.POST("/proposals/:id/pdf/archive", h.Archive)
	return r
}

func TestProposalHandler_Transitions(t *testing.T) {
	tenantID := uuid.New()
	id := uuid.New()

	t.Run("send", func(t *testing.T) {
		svc := new(mockProposalService)
		svc.On("Send", mock.Anything, tenantID, id).Return(&salesapp.ProposalResponse{ID: id, Status: "sent"}, nil)

		w := httptest.NewRecorder()
		newProposalTestEngine(svc, nil, tenantID).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/proposals/"+id.String()+"/send", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("invalid state maps to its status", func(t *testing.T) {
		svc := new(mockProposalService)
		svc.On("Accept", mock.Anything, tenantID, id).Return(nil, shared.NewDomainError("INVALID_STATE", "Sadece gönderilmiş teklifler kabul edilebilir"))

		w := httptest.NewRecorder()
		newProposalTestEngine(svc, nil, tenantID).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/proposals/"+id.String()+"/accept", nil))

		assert.Equal(t, dto.GetHTTPStatus(dto.ErrCodeInvalidState), w.Code)
		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeInvalidState, resp.Error.Code)
	})
}

func TestProposalHandler_PDF(t *testing.T) {
	tenantID := uuid.New()
	id := uuid.New()

	t.Run("streams the document", func(t *testing.T) {
		docs := new(mockProposalDocuments)
		docs.On("ProposalPDF", mock.Anything, tenantID, id).Return(&documentsapp.RenderedDocument{
			Filename:  "TKF-202403-00001.pdf",
			Data:      []byte("%PDF-1.4"),
			PageCount: 2,
		}, nil)

		w := httptest.NewRecorder()
		newProposalTestEngine(nil, docs, tenantID).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/proposals/"+id.String()+"/pdf", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename="TKF-202403-00001.pdf"`, w.Header().Get("Content-Disposition"))
		assert.Equal(t, "2", w.Header().Get("X-Page-Count"))
		assert.Equal(t, "%PDF-1.4", w.Body.String())
	})

	t.Run("renderer unavailable", func(t *testing.T) {
		docs := new(mockProposalDocuments)
		docs.On("ProposalPDF", mock.Anything, tenantID, id).Return(nil, &printing.RenderError{
			Code:    printing.ErrCodeRendererDisabled,
			Message: "PDF oluşturma kapalı",
		})

		w := httptest.NewRecorder()
		newProposalTestEngine(nil, docs, tenantID).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/proposals/"+id.String()+"/pdf", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestProposalHandler_Preview(t *testing.T) {
	tenantID := uuid.New()
	id := uuid.New()
	docs := new(mockProposalDocuments)
	docs.On("ProposalHTML", mock.Anything, tenantID, id).Return("<html><body>Teklif</body></html>", nil)

	w := httptest.NewRecorder()
	newProposalTestEngine(nil, docs, tenantID).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/proposals/"+id.String()+"/preview", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "Teklif")
}

func TestProposalHandler_Archive(t *testing.T) {
	tenantID := uuid.New()
	id := uuid.New()

	t.Run("returns the link", func(t *testing.T) {
		docs := new(mockProposalDocuments)
		docs.On("ArchiveProposalPDF", mock.Anything, tenantID, id).Return(&documentsapp.ArchiveResponse{
			Key:  "proposals/x.pdf",
			URL:  "https://s3.local/proposals/x.pdf",
			Size: 1024,
		}, nil)

		w := httptest.NewRecorder()
		newProposalTestEngine(nil, docs, tenantID).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/proposals/"+id.String()+"/pdf/archive", nil))

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("storage disabled", func(t *testing.T) {
		docs := new(mockProposalDocuments)
		docs.On("ArchiveProposalPDF", mock.Anything, tenantID, id).Return(nil, documentsapp.ErrStorageDisabled)

		w := httptest.NewRecorder()
		newProposalTestEngine(nil, docs, tenantID).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/proposals/"+id.String()+"/pdf/archive", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, dto.ErrCodeStorageDisabled, decodeResponse(t, w).Error.Code)
	})
}
