package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/isletme/backend/internal/domain/identity"
)

// LoginInput contains the input for user login
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	IP       string `json:"-"`
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
	User                  UserInfo  `json:"user"`
}

// UserInfo contains basic user information returned after login
type UserInfo struct {
	ID          uuid.UUID  `json:"id"`
	TenantID    uuid.UUID  `json:"tenant_id"`
	Email       string     `json:"email"`
	FullName    string     `json:"full_name"`
	Role        string     `json:"role"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// RefreshTokenInput contains the input for token refresh
type RefreshTokenInput struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// RefreshTokenResult contains the result of a token refresh
type RefreshTokenResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// LogoutInput identifies the access token being revoked
type LogoutInput struct {
	UserID   uuid.UUID
	TenantID uuid.UUID
	TokenJTI string
	// TokenTTL is the remaining lifetime of the access token
	TokenTTL time.Duration
}

func toUserInfo(u *identity.User) UserInfo {
	return UserInfo{
		ID:          u.ID,
		TenantID:    u.TenantID,
		Email:       u.Email,
		FullName:    u.FullName,
		Role:        string(u.Role),
		LastLoginAt: u.LastLoginAt,
	}
}
