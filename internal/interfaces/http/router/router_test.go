package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func ok(c *gin.Context) { c.String(http.StatusOK, c.FullPath()) }

func serve(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestRouter_Setup(t *testing.T) {
	engine := gin.New()
	var apiHits int
	r := NewRouter(engine, WithMiddleware(func(c *gin.Context) {
		apiHits++
		c.Next()
	}))

	finance := NewDomainGroup("/finance")
	finance.GET("/bank-accounts", ok).
		POST("/bank-accounts", ok).
		PUT("/bank-accounts/:id", ok).
		DELETE("/bank-accounts/:id", ok)
	loans := finance.Group("/loans")
	loans.GET("/summary", ok)

	r.Register(finance).Setup()
	engine.GET("/health", ok)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/v1/finance/bank-accounts"},
		{http.MethodPost, "/api/v1/finance/bank-accounts"},
		{http.MethodPut, "/api/v1/finance/bank-accounts/1"},
		{http.MethodDelete, "/api/v1/finance/bank-accounts/1"},
		{http.MethodGet, "/api/v1/finance/loans/summary"},
	} {
		assert.Equal(t, http.StatusOK, serve(engine, tc.method, tc.path).Code, tc.path)
	}
	assert.Equal(t, 5, apiHits)

	assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/health").Code)
	assert.Equal(t, 5, apiHits, "api middleware must not wrap /health")
	assert.Equal(t, http.StatusNotFound, serve(engine, http.MethodGet, "/api/v2/finance/bank-accounts").Code)
}

func TestRouter_APIVersion(t *testing.T) {
	engine := gin.New()
	NewRouter(engine, WithAPIVersion("v2")).
		Register(NewDomainGroup("/system").GET("/ping", ok)).
		Setup()

	w := serve(engine, http.MethodGet, "/api/v2/system/ping")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/api/v2/system/ping", w.Body.String())
}

func TestDomainGroup_Middleware(t *testing.T) {
	engine := gin.New()
	opex := NewDomainGroup("/opex").Use(func(c *gin.Context) {
		c.Header("X-Group", "opex")
		c.Next()
	})
	opex.GET("/matrix", ok)
	other := NewDomainGroup("/hr").GET("/employees", ok)
	NewRouter(engine).Register(opex, other).Setup()

	assert.Equal(t, "opex", serve(engine, http.MethodGet, "/api/v1/opex/matrix").Header().Get("X-Group"))
	assert.Empty(t, serve(engine, http.MethodGet, "/api/v1/hr/employees").Header().Get("X-Group"))
}

type stubResource struct{ calls []string }

func (s *stubResource) record(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		s.calls = append(s.calls, name)
		c.Status(http.StatusOK)
	}
}

func (s *stubResource) List(c *gin.Context)    { s.record("list")(c) }
func (s *stubResource) GetByID(c *gin.Context) { s.record("get")(c) }
func (s *stubResource) Create(c *gin.Context)  { s.record("create")(c) }
func (s *stubResource) Update(c *gin.Context)  { s.record("update")(c) }
func (s *stubResource) Delete(c *gin.Context)  { s.record("delete")(c) }

func TestDomainGroup_Resource(t *testing.T) {
	engine := gin.New()
	h := &stubResource{}
	loans := NewDomainGroup("/finance").Resource("/loans", h)
	loans.GET("/loans/summary", ok)
	NewRouter(engine).Register(loans).Setup()

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/v1/finance/loans"},
		{http.MethodPost, "/api/v1/finance/loans"},
		{http.MethodGet, "/api/v1/finance/loans/42"},
		{http.MethodPut, "/api/v1/finance/loans/42"},
		{http.MethodDelete, "/api/v1/finance/loans/42"},
	} {
		assert.Equal(t, http.StatusOK, serve(engine, tc.method, tc.path).Code, tc.path)
	}
	assert.Equal(t, []string{"list", "create", "get", "update", "delete"}, h.calls)

	w := serve(engine, http.MethodGet, "/api/v1/finance/loans/summary")
	assert.Equal(t, "/api/v1/finance/loans/summary", w.Body.String())
}
