// Package handler implements the HTTP endpoints of the API. Handlers bind
// and validate requests, call one application service and write the
// response envelope.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/isletme/backend/internal/domain/shared"
	"github.com/isletme/backend/internal/infrastructure/logger"
	"github.com/isletme/backend/internal/infrastructure/printing"
	"github.com/isletme/backend/internal/interfaces/http/dto"
	"github.com/isletme/backend/internal/interfaces/http/middleware"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

func getRequestID(c *gin.Context) string {
	return c.GetString(middleware.RequestIDKey)
}

// getTenantID returns the tenant resolved by the tenant middleware
func getTenantID(c *gin.Context) (uuid.UUID, error) {
	id, err := middleware.GetTenantUUID(c)
	if err != nil {
		return uuid.Nil, err
	}
	if id == uuid.Nil {
		return uuid.Nil, shared.ErrUnauthorized
	}
	return id, nil
}

// getUserID returns the authenticated user
func getUserID(c *gin.Context) (uuid.UUID, error) {
	return middleware.GetUserUUID(c)
}

// tenant writes a 401 and returns false when the request has no tenant
func (h *BaseHandler) tenant(c *gin.Context) (uuid.UUID, bool) {
	id, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Firma bilgisi bulunamadı")
		return uuid.Nil, false
	}
	return id, true
}

// pathID parses the :id path parameter, writing a 400 on failure
func (h *BaseHandler) pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		h.BadRequest(c, "Geçersiz kimlik: "+name)
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON binds and validates the body, writing a 400 on failure
func (h *BaseHandler) bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		middleware.HandleValidationError(c, err)
		return false
	}
	return true
}

// bindQuery binds and validates the query string, writing a 400 on failure
func (h *BaseHandler) bindQuery(c *gin.Context, req any) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		middleware.HandleValidationError(c, err)
		return false
	}
	return true
}

// intQuery reads an optional integer query parameter
func (h *BaseHandler) intQuery(c *gin.Context, name string, def int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		h.BadRequest(c, "Geçersiz sayı: "+name)
		return 0, false
	}
	return v, true
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a success response with pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// Unauthorized sends a 401 unauthorized response
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	h.Error(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, message)
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// HandleError maps domain and render errors to the envelope. Anything else
// is logged and reported as a 500 without leaking details.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	requestID := getRequestID(c)

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		if domainErr.Field != "" && code == dto.ErrCodeValidation {
			c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(domainErr.Message, requestID,
				[]dto.ValidationDetail{{Field: domainErr.Field, Message: domainErr.Message}}))
			return
		}
		c.JSON(dto.GetHTTPStatus(code), dto.NewErrorResponseWithRequestID(code, domainErr.Message, requestID))
		return
	}

	var renderErr *printing.RenderError
	if errors.As(err, &renderErr) {
		code := dto.NormalizeErrorCode(renderErr.Code)
		logger.L(c.Request.Context()).Warn("render failed", zap.Error(err))
		c.JSON(dto.GetHTTPStatus(code), dto.NewErrorResponseWithRequestID(code, renderErr.Message, requestID))
		return
	}

	logger.L(c.Request.Context()).Error("request failed", zap.Error(err))
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponseWithRequestID(
		dto.ErrCodeInternal,
		"Beklenmeyen bir hata oluştu",
		requestID,
	))
}
