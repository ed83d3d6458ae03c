package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/isletme/backend/internal/domain/identity"
	"github.com/isletme/backend/internal/domain/shared"
	"github.com/isletme/backend/internal/infrastructure/auth"
	"github.com/isletme/backend/internal/infrastructure/config"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *identity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *identity.User) error {
	return m.Called(ctx, user).Error(0)
}

var _ identity.UserRepository = (*MockUserRepository)(nil)

const testPassword = "gizli1234"

func init() {
	identity.BcryptCost = bcrypt.MinCost
}

func newTestAuthService() (*AuthService, *MockUserRepository, *auth.InMemoryTokenBlacklist, *auth.JWTService) {
	repo := new(MockUserRepository)
	blacklist := auth.NewInMemoryTokenBlacklist()
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-that-is-at-least-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "isletme-test",
	})
	return NewAuthService(repo, jwtService, blacklist, nil, nil), repo, blacklist, jwtService
}

func newTestUser(t *testing.T) *identity.User {
	t.Helper()
	u, err := identity.NewUser(uuid.New(), "ayse@example.com", "Ayşe Demir", testPassword, identity.RoleUser)
	require.NoError(t, err)
	return u
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("successful login", func(t *testing.T) {
		svc, repo, _, jwtService := newTestAuthService()
		user := newTestUser(t)
		repo.On("FindByEmail", ctx, "ayse@example.com").Return(user, nil)
		repo.On("Update", ctx, user).Return(nil)

		result, err := svc.Login(ctx, LoginInput{Email: "ayse@example.com", Password: testPassword})
		require.NoError(t, err)
		assert.Equal(t, "Bearer", result.TokenType)
		assert.Equal(t, user.ID, result.User.ID)
		assert.NotNil(t, result.User.LastLoginAt)

		claims, err := jwtService.ValidateAccessToken(result.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, user.TenantID.String(), claims.TenantID)
		assert.Equal(t, "user", claims.Role)
		repo.AssertExpectations(t)
	})

	t.Run("unknown email", func(t *testing.T) {
		svc, repo, _, _ := newTestAuthService()
		repo.On("FindByEmail", ctx, "nobody@example.com").Return(nil, shared.ErrNotFound)

		_, err := svc.Login(ctx, LoginInput{Email: "nobody@example.com", Password: testPassword})
		assert.ErrorIs(t, err, identity.ErrInvalidCredentials)
	})

	t.Run("wrong password persists the failed attempt", func(t *testing.T) {
		svc, repo, _, _ := newTestAuthService()
		user := newTestUser(t)
		repo.On("FindByEmail", ctx, "ayse@example.com").Return(user, nil)
		repo.On("Update", ctx, user).Return(nil)

		_, err := svc.Login(ctx, LoginInput{Email: "ayse@example.com", Password: "yanlis123"})
		assert.ErrorIs(t, err, identity.ErrInvalidCredentials)
		assert.Equal(t, 1, user.FailedAttempts)
		repo.AssertCalled(t, "Update", ctx, user)
	})

	t.Run("locked account", func(t *testing.T) {
		svc, repo, _, _ := newTestAuthService()
		user := newTestUser(t)
		until := time.Now().Add(time.Hour)
		user.LockedUntil = &until
		repo.On("FindByEmail", ctx, "ayse@example.com").Return(user, nil)

		_, err := svc.Login(ctx, LoginInput{Email: "ayse@example.com", Password: testPassword})
		assert.ErrorIs(t, err, identity.ErrUserLocked)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctx := context.Background()

	t.Run("rotates the refresh token", func(t *testing.T) {
		svc, repo, blacklist, jwtService := newTestAuthService()
		user := newTestUser(t)
		pair, err := jwtService.GenerateTokenPair(subject(user))
		require.NoError(t, err)
		repo.On("FindByID", ctx, user.TenantID, user.ID).Return(user, nil)

		result, err := svc.RefreshToken(ctx, RefreshTokenInput{RefreshToken: pair.RefreshToken})
		require.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)

		old, err := jwtService.ValidateRefreshToken(pair.RefreshToken)
		require.NoError(t, err)
		revoked, err := blacklist.IsBlacklisted(ctx, old.ID)
		require.NoError(t, err)
		assert.True(t, revoked)

		_, err = svc.RefreshToken(ctx, RefreshTokenInput{RefreshToken: pair.RefreshToken})
		de, ok := shared.AsDomainError(err)
		require.True(t, ok)
		assert.Equal(t, "TOKEN_REVOKED", de.Code)
	})

	t.Run("access token is rejected", func(t *testing.T) {
		svc, _, _, jwtService := newTestAuthService()
		pair, err := jwtService.GenerateTokenPair(subject(newTestUser(t)))
		require.NoError(t, err)

		_, err = svc.RefreshToken(ctx, RefreshTokenInput{RefreshToken: pair.AccessToken})
		de, ok := shared.AsDomainError(err)
		require.True(t, ok)
		assert.Equal(t, "TOKEN_INVALID", de.Code)
	})

	t.Run("inactive user", func(t *testing.T) {
		svc, repo, _, jwtService := newTestAuthService()
		user := newTestUser(t)
		user.IsActive = false
		pair, err := jwtService.GenerateTokenPair(subject(user))
		require.NoError(t, err)
		repo.On("FindByID", ctx, user.TenantID, user.ID).Return(user, nil)

		_, err = svc.RefreshToken(ctx, RefreshTokenInput{RefreshToken: pair.RefreshToken})
		assert.ErrorIs(t, err, identity.ErrUserInactive)
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	svc, _, blacklist, _ := newTestAuthService()

	err := svc.Logout(ctx, LogoutInput{UserID: uuid.New(), TenantID: uuid.New(), TokenJTI: "jti-1", TokenTTL: time.Minute})
	require.NoError(t, err)

	revoked, err := blacklist.IsBlacklisted(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestAuthService_GetCurrentUser(t *testing.T) {
	ctx := context.Background()
	svc, repo, _, _ := newTestAuthService()
	user := newTestUser(t)
	repo.On("FindByID", ctx, user.TenantID, user.ID).Return(user, nil)
	missing := uuid.New()
	repo.On("FindByID", ctx, user.TenantID, missing).Return(nil, shared.ErrNotFound)

	info, err := svc.GetCurrentUser(ctx, user.TenantID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ayşe Demir", info.FullName)

	_, err = svc.GetCurrentUser(ctx, user.TenantID, missing)
	de, ok := shared.AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, "USER_NOT_FOUND", de.Code)
}

func TestAuthService_BootstrapAdmin(t *testing.T) {
	ctx := context.Background()
	cfg := config.BootstrapConfig{
		TenantID:      config.DefaultTenantID,
		AdminEmail:    "admin@example.com",
		AdminPassword: "yonetici123",
		AdminName:     "Yönetici",
	}

	t.Run("creates the admin once", func(t *testing.T) {
		svc, repo, _, _ := newTestAuthService()
		repo.On("FindByEmail", ctx, "admin@example.com").Return(nil, shared.ErrNotFound)
		repo.On("Create", ctx, mock.MatchedBy(func(u *identity.User) bool {
			return u.Role == identity.RoleAdmin && u.TenantID.String() == config.DefaultTenantID && u.VerifyPassword("yonetici123")
		})).Return(nil)

		require.NoError(t, svc.BootstrapAdmin(ctx, cfg))
		repo.AssertExpectations(t)
	})

	t.Run("existing admin is left alone", func(t *testing.T) {
		svc, repo, _, _ := newTestAuthService()
		repo.On("FindByEmail", ctx, "admin@example.com").Return(newTestUser(t), nil)

		require.NoError(t, svc.BootstrapAdmin(ctx, cfg))
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("disabled without email", func(t *testing.T) {
		svc, repo, _, _ := newTestAuthService()
		require.NoError(t, svc.BootstrapAdmin(ctx, config.BootstrapConfig{}))
		repo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
	})
}
