package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	servicedeskapp "github.com/isletme/backend/internal/application/servicedesk"
)

type mockServiceRequestService struct {
	mock.Mock
}

func (m *mockServiceRequestService) ticket(args mock.Arguments) (*servicedeskapp.ServiceRequestResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*servicedeskapp.ServiceRequestResponse), args.Error(1)
}

func (m *mockServiceRequestService) Create(ctx context.Context, tenantID uuid.UUID, req servicedeskapp.ServiceRequestRequest) (*servicedeskapp.ServiceRequestResponse, error) {
	return m.ticket(m.Called(ctx, tenantID, req))
}

func (m *mockServiceRequestService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*servicedeskapp.ServiceRequestResponse, error) {
	return m.ticket(m.Called(ctx, tenantID, id))
}

func (m *mockServiceRequestService) List(ctx context.Context, tenantID uuid.UUID, filter servicedeskapp.ServiceRequestListFilter) ([]servicedeskapp.ServiceRequestResponse, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]servicedeskapp.ServiceRequestResponse), args.Get(1).(int64), args.Error(2)
}

func (m *mockServiceRequestService) Update(ctx context.Context, tenantID, id uuid.UUID, req servicedeskapp.ServiceRequestRequest) (*servicedeskapp.ServiceRequestResponse, error) {
	return m.ticket(m.Called(ctx, tenantID, id, req))
}

func (m *mockServiceRequestService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return m.Called(ctx, tenantID, id).Error(0)
}

func (m *mockServiceRequestService) Start(ctx context.Context, tenantID, id uuid.UUID) (*servicedeskapp.ServiceRequestResponse, error) {
	return m.ticket(m.Called(ctx, tenantID, id))
}

func (m *mockServiceRequestService) Resolve(ctx context.Context, tenantID, id uuid.UUID, resolution string) (*servicedeskapp.ServiceRequestResponse, error) {
	return m.ticket(m.Called(ctx, tenantID, id, resolution))
}

func (m *mockServiceRequestService) Close(ctx context.Context, tenantID, id uuid.UUID) (*servicedeskapp.ServiceRequestResponse, error) {
	return m.ticket(m.Called(ctx, tenantID, id))
}

func (m *mockServiceRequestService) Cancel(ctx context.Context, tenantID, id uuid.UUID) (*servicedeskapp.ServiceRequestResponse, error) {
	return m.ticket(m.Called(ctx, tenantID, id))
}

var _ ServiceRequestService = (*mockServiceRequestService)(nil)

func TestServiceRequestHandler_Resolve(t *testing.T) {
	tenantID := uuid.New()
	id := uuid.New()

	newEngine := func(svc ServiceRequestService) http.Handler {
		h := NewServiceRequestHandler(svc)
		r := newTestEngine(tenantID, uuid.New())
		r.POST("/requests/:id/resolve", h.Resolve)
		return r
	}

	t.Run("with resolution", func(t *testing.T) {
		svc := new(mockServiceRequestService)
		svc.On("Resolve", mock.Anything, tenantID, id, "Kompresör değiştirildi").
			Return(&servicedeskapp.ServiceRequestResponse{ID: id, Status: "resolved"}, nil)

		req := httptest.NewRequest(http.MethodPost, "/requests/"+id.String()+"/resolve", strings.NewReader(`{"resolution":"Kompresör değiştirildi"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		newEngine(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("empty body", func(t *testing.T) {
		svc := new(mockServiceRequestService)
		svc.On("Resolve", mock.Anything, tenantID, id, "").
			Return(&servicedeskapp.ServiceRequestResponse{ID: id, Status: "resolved"}, nil)

		w := httptest.NewRecorder()
		newEngine(svc).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/requests/"+id.String()+"/resolve", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})
}
