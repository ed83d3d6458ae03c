package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/isletme/backend/internal/infrastructure/logger"
	"github.com/isletme/backend/internal/interfaces/http/dto"
)

// Tenant context keys
const (
	TenantIDKey     = "tenant_id"
	TenantHeaderKey = "X-Tenant-ID"
)

// TenantMiddlewareConfig holds configuration for tenant middleware
type TenantMiddlewareConfig struct {
	// HeaderEnabled allows X-Tenant-ID when no JWT tenant is present
	HeaderEnabled bool
	// DefaultTenantID is used when neither JWT nor header names a tenant
	DefaultTenantID string
	// SkipPaths are paths that don't require tenant context
	SkipPaths []string
	Logger    *zap.Logger
}

// DefaultTenantConfig returns default tenant middleware configuration
func DefaultTenantConfig() TenantMiddlewareConfig {
	return TenantMiddlewareConfig{
		SkipPaths: []string{"/health", "/api/v1/system/ping"},
	}
}

// TenantMiddleware resolves the tenant of the request.
// Order: JWT claims > X-Tenant-ID header > configured default.
func TenantMiddleware() gin.HandlerFunc {
	return TenantMiddlewareWithConfig(DefaultTenantConfig())
}

// TenantMiddlewareWithConfig returns tenant middleware with custom configuration
func TenantMiddlewareWithConfig(cfg TenantMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skipPath := range cfg.SkipPaths {
			if path == skipPath || strings.HasPrefix(path, skipPath+"/") {
				c.Next()
				return
			}
		}

		tenantID, method := GetJWTTenantID(c), "jwt"
		if tenantID == "" && cfg.HeaderEnabled {
			tenantID, method = c.GetHeader(TenantHeaderKey), "header"
		}
		if tenantID == "" {
			tenantID, method = cfg.DefaultTenantID, "default"
		}

		if tenantID == "" {
			respondUnauthorized(c, "Firma bilgisi bulunamadı")
			return
		}
		if _, err := uuid.Parse(tenantID); err != nil {
			respondUnauthorized(c, "Geçersiz firma kimliği")
			return
		}

		c.Set(TenantIDKey, tenantID)
		c.Request = c.Request.WithContext(logger.WithTenantID(c.Request.Context(), tenantID))

		if cfg.Logger != nil {
			cfg.Logger.Debug("tenant identified",
				zap.String("tenant_id", tenantID),
				zap.String("method", method),
			)
		}
		c.Next()
	}
}

func respondUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponseWithRequestID(dto.ErrCodeUnauthorized, message, c.GetString(RequestIDKey)))
}

// GetTenantID retrieves the tenant ID from gin.Context
func GetTenantID(c *gin.Context) string {
	return c.GetString(TenantIDKey)
}

// GetTenantUUID retrieves the tenant ID as UUID from gin.Context
func GetTenantUUID(c *gin.Context) (uuid.UUID, error) {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return uuid.Nil, nil
	}
	return uuid.Parse(tenantID)
}
