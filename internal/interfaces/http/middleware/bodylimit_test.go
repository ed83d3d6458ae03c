package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/isletme/backend/internal/interfaces/http/dto"
)

func bodyLimitRouter(limit int64) *gin.Engine {
	r := gin.New()
	r.Use(BodyLimit(limit))
	r.POST("/api/v1/opex/matrix/import", func(c *gin.Context) {
		if _, err := io.ReadAll(c.Request.Body); err != nil {
			c.String(http.StatusBadRequest, "body too large")
			return
		}
		c.String(http.StatusOK, "ok")
	})
	return r
}

func TestBodyLimit(t *testing.T) {
	t.Run("allows request within limit", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/opex/matrix/import", strings.NewReader("Kategori;Alt Kategori"))
		w := httptest.NewRecorder()
		bodyLimitRouter(1024).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rejects declared oversized body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/opex/matrix/import", strings.NewReader(strings.Repeat("x", 200)))
		w := httptest.NewRecorder()
		bodyLimitRouter(100).ServeHTTP(w, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Equal(t, dto.ErrCodeRequestTooLarge, decodeError(t, w).Code)
	})

	t.Run("caps streaming body while reading", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/opex/matrix/import", strings.NewReader(strings.Repeat("x", 100)))
		req.ContentLength = -1
		w := httptest.NewRecorder()
		bodyLimitRouter(50).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
