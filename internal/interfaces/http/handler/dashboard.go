package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/isletme/backend/internal/application/dashboard"
	"github.com/isletme/backend/internal/infrastructure/logger"
)

// DashboardService builds the home page figures
type DashboardService interface {
	Summary(ctx context.Context, tenantID uuid.UUID) (*dashboard.Summary, error)
	Invalidate(ctx context.Context, tenantID uuid.UUID) error
}

// DashboardHandler serves /dashboard
type DashboardHandler struct {
	BaseHandler
	dashboardService DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Summary returns the cached dashboard figures of the tenant
func (h *DashboardHandler) Summary(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}

	summary, err := h.dashboardService.Summary(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// InvalidateOnWrite drops the cached summary after a successful write so
// the next dashboard load sees it
func (h *DashboardHandler) InvalidateOnWrite() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Request.Method == http.MethodGet || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		tenantID, err := getTenantID(c)
		if err != nil {
			return
		}
		if err := h.dashboardService.Invalidate(c.Request.Context(), tenantID); err != nil {
			logger.L(c.Request.Context()).Warn("dashboard cache invalidation failed", zap.Error(err))
		}
	}
}
