package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	identityapp "github.com/isletme/backend/internal/application/identity"
	"github.com/isletme/backend/internal/interfaces/http/middleware"
)

// AuthHandler serves sign-in, token refresh, logout and the current user
type AuthHandler struct {
	BaseHandler
	authService *identityapp.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *identityapp.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login exchanges credentials for a token pair
func (h *AuthHandler) Login(c *gin.Context) {
	var req identityapp.LoginInput
	if !h.bindJSON(c, &req) {
		return
	}
	req.IP = c.ClientIP()

	result, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// RefreshToken rotates a refresh token
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req identityapp.RefreshTokenInput
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.authService.RefreshToken(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Logout revokes the access token of the request
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Oturum açmanız gerekiyor")
		return
	}

	userID, err := claims.UserUUID()
	if err != nil {
		h.Unauthorized(c, "Oturum açmanız gerekiyor")
		return
	}
	tenantID, err := claims.TenantUUID()
	if err != nil {
		h.Unauthorized(c, "Oturum açmanız gerekiyor")
		return
	}

	err = h.authService.Logout(c.Request.Context(), identityapp.LogoutInput{
		UserID:   userID,
		TenantID: tenantID,
		TokenJTI: claims.ID,
		TokenTTL: claims.RemainingTTL(time.Now()),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"message": "Çıkış yapıldı"})
}

// GetCurrentUser returns the authenticated user
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Oturum açmanız gerekiyor")
		return
	}

	user, err := h.authService.GetCurrentUser(c.Request.Context(), tenantID, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}
