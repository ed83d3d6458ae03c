package middleware

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

func corsRouter(cfg CORSConfig) *gin.Engine {
	r := gin.New()
	r.Use(CORSWithConfig(cfg))
	r.GET("/api/v1/crm/customers", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	return r
}

func TestCORSWithConfig(t *testing.T) {
	cfg := DefaultCORSConfig()
	cfg.AllowOrigins = []string{"https://panel.isletme.local"}

	t.Run("allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/crm/customers", nil)
		req.Header.Set("Origin", "https://panel.isletme.local")
		w := httptest.NewRecorder()
		corsRouter(cfg).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "https://panel.isletme.local", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
		assert.Equal(t, "43200", w.Header().Get("Access-Control-Max-Age"))
	})

	t.Run("foreign origin gets no headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/crm/customers", nil)
		req.Header.Set("Origin", "https://evil.example")
		w := httptest.NewRecorder()
		corsRouter(cfg).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight is answered with 204", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/crm/customers", nil)
		req.Header.Set("Origin", "https://panel.isletme.local")
		w := httptest.NewRecorder()
		corsRouter(cfg).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PUT")
		assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "X-Page-Count")
	})

	t.Run("preflight from foreign origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/crm/customers", nil)
		req.Header.Set("Origin", "https://evil.example")
		w := httptest.NewRecorder()
		corsRouter(cfg).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("wildcard never sends credentials", func(t *testing.T) {
		wild := DefaultCORSConfig()
		wild.AllowOrigins = []string{"*"}
		req := httptest.NewRequest(http.MethodGet, "/api/v1/crm/customers", nil)
		req.Header.Set("Origin", "https://any.example")
		w := httptest.NewRecorder()
		corsRouter(wild).ServeHTTP(w, req)

		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("empty whitelist rejects cross origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/crm/customers", nil)
		req.Header.Set("Origin", "https://panel.isletme.local")
		w := httptest.NewRecorder()
		corsRouter(DefaultCORSConfig()).ServeHTTP(w, req)

		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	var seen string
	r.GET("/x", func(c *gin.Context) {
		seen = c.GetString(RequestIDKey)
		c.Status(http.StatusOK)
	})

	t.Run("keeps the caller's id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("X-Request-ID", "abc-123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "abc-123", seen)
		assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
	})

	t.Run("generates one", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

		assert.Len(t, seen, 32)
		assert.Equal(t, seen, w.Header().Get("X-Request-ID"))
	})
}

func TestSecureWithConfig(t *testing.T) {
	cfg := DefaultSecurityConfig()
	cfg.HSTSEnabled = true
	cfg.HSTSPreload = true

	r := gin.New()
	r.Use(SecureWithConfig(cfg))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "max-age=31536000; includeSubDomains; preload", w.Header().Get("Strict-Transport-Security"))
	assert.Contains(t, w.Header().Get("Content-Security-Policy"), "default-src 'self'")
	assert.Contains(t, w.Header().Get("Permissions-Policy"), "camera=()")
}

func TestSecureWithConfig_NoHSTSByDefault(t *testing.T) {
	r := gin.New()
	r.Use(SecureWithConfig(DefaultSecurityConfig()))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Empty(t, w.Header().Get("Strict-Transport-Security"))
}
