// Package identity implements sign-in, token refresh and logout.
package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/isletme/backend/internal/domain/identity"
	"github.com/isletme/backend/internal/domain/shared"
	"github.com/isletme/backend/internal/infrastructure/auth"
	"github.com/isletme/backend/internal/infrastructure/config"
	"github.com/isletme/backend/internal/infrastructure/telemetry"
)

// AuthService handles authentication operations
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	metrics    *telemetry.Metrics
	logger     *zap.Logger
	now        func() time.Time
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	metrics *telemetry.Metrics,
	logger *zap.Logger,
) *AuthService {
	if metrics == nil {
		metrics = telemetry.NopMetrics()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		metrics:    metrics,
		logger:     logger,
		now:        time.Now,
	}
}

// Login authenticates a user and returns tokens
func (s *AuthService) Login(ctx context.Context, input LoginInput) (result *LoginResult, err error) {
	defer func() { s.metrics.RecordLogin(ctx, err) }()

	user, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Login for unknown email", zap.String("email", input.Email), zap.String("ip", input.IP))
			return nil, identity.ErrInvalidCredentials
		}
		return nil, err
	}

	if authErr := user.Authenticate(input.Password, s.now()); authErr != nil {
		if errors.Is(authErr, identity.ErrInvalidCredentials) {
			// failed attempts and lockouts are persisted
			if err := s.userRepo.Update(ctx, user); err != nil {
				s.logger.Error("Failed to update user after login failure", zap.Error(err))
			}
		}
		s.logger.Warn("Login rejected",
			zap.String("user_id", user.ID.String()),
			zap.String("ip", input.IP),
			zap.Error(authErr))
		return nil, authErr
	}

	pair, err := s.jwtService.GenerateTokenPair(subject(user))
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Oturum anahtarı üretilemedi")
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to update user after successful login", zap.Error(err))
	}

	s.logger.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("tenant_id", user.TenantID.String()))

	return &LoginResult{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
		User:                  toUserInfo(user),
	}, nil
}

// RefreshToken issues a new token pair and revokes the refresh token used
func (s *AuthService) RefreshToken(ctx context.Context, input RefreshTokenInput) (*RefreshTokenResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		s.logger.Warn("Refresh token validation failed", zap.Error(err))
		return nil, tokenError(err)
	}

	revoked, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, tokenError(auth.ErrTokenBlacklisted)
	}

	tenantID, err := claims.TenantUUID()
	if err != nil {
		return nil, tokenError(auth.ErrInvalidClaims)
	}
	userID, err := claims.UserUUID()
	if err != nil {
		return nil, tokenError(auth.ErrInvalidClaims)
	}

	user, err := s.userRepo.FindByID(ctx, tenantID, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("USER_NOT_FOUND", "Kullanıcı bulunamadı")
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, identity.ErrUserInactive
	}

	pair, err := s.jwtService.GenerateTokenPair(subject(user))
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Oturum anahtarı üretilemedi")
	}
	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, claims.RemainingTTL(s.now())); err != nil {
		s.logger.Error("Failed to revoke rotated refresh token", zap.Error(err))
	}

	return &RefreshTokenResult{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
	}, nil
}

// Logout revokes the caller's access token for the rest of its lifetime
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	if input.TokenJTI != "" && input.TokenTTL > 0 {
		if err := s.blacklist.AddToBlacklist(ctx, input.TokenJTI, input.TokenTTL); err != nil {
			s.logger.Error("Failed to blacklist token", zap.Error(err))
			return err
		}
	}
	s.logger.Info("User logout",
		zap.String("user_id", input.UserID.String()),
		zap.String("tenant_id", input.TenantID.String()))
	return nil
}

// GetCurrentUser retrieves the signed-in user's information
func (s *AuthService) GetCurrentUser(ctx context.Context, tenantID, userID uuid.UUID) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, tenantID, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("USER_NOT_FOUND", "Kullanıcı bulunamadı")
		}
		return nil, err
	}
	info := toUserInfo(user)
	return &info, nil
}

// BootstrapAdmin creates the configured admin user when it does not exist
// yet. It is a no-op without an admin email.
func (s *AuthService) BootstrapAdmin(ctx context.Context, cfg config.BootstrapConfig) error {
	if cfg.AdminEmail == "" {
		return nil
	}
	tenantID, err := uuid.Parse(cfg.TenantID)
	if err != nil {
		return shared.NewFieldError("bootstrap.tenant_id", "Geçersiz kiracı kimliği")
	}

	_, err = s.userRepo.FindByEmail(ctx, cfg.AdminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return err
	}

	admin, err := identity.NewUser(tenantID, cfg.AdminEmail, cfg.AdminName, cfg.AdminPassword, identity.RoleAdmin)
	if err != nil {
		return err
	}
	if err := s.userRepo.Create(ctx, admin); err != nil {
		return err
	}
	s.logger.Info("Admin user created",
		zap.String("email", admin.Email),
		zap.String("tenant_id", tenantID.String()))
	return nil
}

func subject(u *identity.User) auth.Subject {
	return auth.Subject{
		TenantID: u.TenantID,
		UserID:   u.ID,
		Email:    u.Email,
		Role:     string(u.Role),
	}
}

func tokenError(err error) error {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return shared.NewDomainError("TOKEN_EXPIRED", "Oturum süresi doldu")
	case errors.Is(err, auth.ErrTokenBlacklisted):
		return shared.NewDomainError("TOKEN_REVOKED", "Oturum sonlandırılmış")
	default:
		return shared.NewDomainError("TOKEN_INVALID", "Geçersiz oturum anahtarı")
	}
}
