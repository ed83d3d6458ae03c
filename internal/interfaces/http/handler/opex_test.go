package handler

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	opexapp "github.com/isletme/backend/internal/application/opex"
	"github.com/isletme/backend/internal/domain/opex"
	"github.com/isletme/backend/internal/interfaces/http/dto"
)

type mockMatrixService struct {
	mock.Mock
}

func (m *mockMatrixService) View(ctx context.Context, tenantID uuid.UUID, year int) (*opex.View, error) {
	args := m.Called(ctx, tenantID, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*opex.View), args.Error(1)
}

func (m *mockMatrixService) EditCell(ctx context.Context, tenantID uuid.UUID, req opexapp.CellEditRequest) (*opexapp.CellEditResponse, error) {
	args := m.Called(ctx, tenantID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*opexapp.CellEditResponse), args.Error(1)
}

func (m *mockMatrixService) SaveAll(ctx context.Context, tenantID uuid.UUID, year int) (*opexapp.SaveResult, error) {
	args := m.Called(ctx, tenantID, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*opexapp.SaveResult), args.Error(1)
}

func (m *mockMatrixService) ExportCSV(ctx context.Context, tenantID uuid.UUID, year int, w io.Writer) error {
	args := m.Called(ctx, tenantID, year, w)
	if args.Error(0) == nil {
		_, _ = io.WriteString(w, args.String(1))
	}
	return args.Error(0)
}

func (m *mockMatrixService) Import(ctx context.Context, tenantID uuid.UUID, year int, r io.Reader) (*opexapp.ImportResult, error) {
	body, _ := io.ReadAll(r)
	args := m.Called(ctx, tenantID, year, string(body))
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*opexapp.ImportResult), args.Error(1)
}

var _ MatrixService = (*mockMatrixService)(nil)

func newOpexTestEngine(svc MatrixService, tenantID uuid.UUID) http.Handler {
	h := NewOpexHandler(svc, time.UTC)
	h.now = func() time.Time { return time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC) }
	r := newTestEngine(tenantID, uuid.New())
	r.GET("/opex/matrix", h.Matrix)
	r.PUT("/opex/matrix/cells", h.EditCell)
	r.POST("/opex/matrix/save", h.SaveAll)
	r.GET("/opex/matrix/export", h.Export)
	r.POST("/opex/matrix/import", h.Import)
	return r
}

func TestOpexHandler_Matrix(t *testing.T) {
	tenantID := uuid.New()

	t.Run("defaults to the current year", func(t *testing.T) {
		svc := new(mockMatrixService)
		svc.On("View", mock.Anything, tenantID, 2025).Return(&opex.View{Year: 2025}, nil)

		w := httptest.NewRecorder()
		newOpexTestEngine(svc, tenantID).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/opex/matrix", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("rejects a year out of range", func(t *testing.T) {
		svc := new(mockMatrixService)

		w := httptest.NewRecorder()
		newOpexTestEngine(svc, tenantID).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/opex/matrix?year=1899", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "View", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestOpexHandler_EditCell(t *testing.T) {
	tenantID := uuid.New()

	t.Run("accepted", func(t *testing.T) {
		svc := new(mockMatrixService)
		svc.On("EditCell", mock.Anything, tenantID, mock.MatchedBy(func(req opexapp.CellEditRequest) bool {
			return req.Month == 3 && req.Category == "Kira" && req.Amount.Equal(decimal.NewFromInt(15000))
		})).Return(&opexapp.CellEditResponse{Amount: decimal.NewFromInt(15000), SavesInMs: 800}, nil)

		body := `{"year":2025,"month":3,"category":"Kira","subcategory":"Ofis","amount":"15000"}`
		req := httptest.NewRequest(http.MethodPut, "/opex/matrix/cells", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		newOpexTestEngine(svc, tenantID).ServeHTTP(w, req)

		assert.Equal(t, http.StatusAccepted, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("month 13 is rejected by binding", func(t *testing.T) {
		svc := new(mockMatrixService)

		body := `{"year":2025,"month":13,"category":"Kira","subcategory":"Ofis","amount":"1"}`
		req := httptest.NewRequest(http.MethodPut, "/opex/matrix/cells", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		newOpexTestEngine(svc, tenantID).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Error)
		require.NotEmpty(t, resp.Error.Details)
		assert.Equal(t, "month", resp.Error.Details[0].Field)
	})

	t.Run("auto category", func(t *testing.T) {
		svc := new(mockMatrixService)
		svc.On("EditCell", mock.Anything, tenantID, mock.Anything).
			Return(nil, opex.ErrAutoCategory)

		body := `{"year":2025,"month":1,"category":"Personel","subcategory":"Maaş","amount":"1"}`
		req := httptest.NewRequest(http.MethodPut, "/opex/matrix/cells", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		newOpexTestEngine(svc, tenantID).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, dto.ErrCodeOpexAutoCategory, decodeResponse(t, w).Error.Code)
	})
}

func TestOpexHandler_Export(t *testing.T) {
	tenantID := uuid.New()
	svc := new(mockMatrixService)
	svc.On("ExportCSV", mock.Anything, tenantID, 2024, mock.Anything).Return(nil, "Kategori;Alt Kategori\n")

	w := httptest.NewRecorder()
	newOpexTestEngine(svc, tenantID).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/opex/matrix/export?year=2024", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "opex-2024.csv")
	assert.Equal(t, "Kategori;Alt Kategori\n", w.Body.String())
}

func TestOpexHandler_Import(t *testing.T) {
	tenantID := uuid.New()
	const csvBody = "Kategori;Alt Kategori;Ocak\nKira;Ofis;100\n"

	t.Run("raw body", func(t *testing.T) {
		svc := new(mockMatrixService)
		svc.On("Import", mock.Anything, tenantID, 2025, csvBody).Return(&opexapp.ImportResult{Year: 2025, TotalRows: 1, ImportedCells: 1}, nil)

		req := httptest.NewRequest(http.MethodPost, "/opex/matrix/import?year=2025", strings.NewReader(csvBody))
		req.Header.Set("Content-Type", "text/csv")
		w := httptest.NewRecorder()
		newOpexTestEngine(svc, tenantID).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("multipart upload", func(t *testing.T) {
		svc := new(mockMatrixService)
		svc.On("Import", mock.Anything, tenantID, 2025, csvBody).Return(&opexapp.ImportResult{Year: 2025}, nil)

		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		part, err := mw.CreateFormFile("file", "opex.csv")
		require.NoError(t, err)
		_, err = part.Write([]byte(csvBody))
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/opex/matrix/import?year=2025", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		w := httptest.NewRecorder()
		newOpexTestEngine(svc, tenantID).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("multipart without file", func(t *testing.T) {
		svc := new(mockMatrixService)

		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		require.NoError(t, mw.WriteField("note", "x"))
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/opex/matrix/import?year=2025", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		w := httptest.NewRecorder()
		newOpexTestEngine(svc, tenantID).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
