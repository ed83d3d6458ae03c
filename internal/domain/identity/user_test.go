package identity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	BcryptCost = bcrypt.MinCost
}

func TestNewUser(t *testing.T) {
	u, err := NewUser(uuid.New(), " Admin@Firma.com ", "Yönetici", "gizli1234", RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, "admin@firma.com", u.Email)
	assert.True(t, u.IsActive)
	assert.NotEqual(t, "gizli1234", u.PasswordHash)
	assert.True(t, u.VerifyPassword("gizli1234"))
	assert.False(t, u.VerifyPassword("yanlis1234"))
}

func TestNewUser_PasswordRules(t *testing.T) {
	for _, pw := range []string{"kisa1", "sadeceharf", "12345678901"} {
		_, err := NewUser(uuid.New(), "a@b.co", "", pw, RoleUser)
		assert.Error(t, err, pw)
	}
}

func TestUser_AuthenticateLocksAfterFailures(t *testing.T) {
	u, err := NewUser(uuid.New(), "a@b.co", "", "gizli1234", RoleUser)
	require.NoError(t, err)
	now := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

	for i := 0; i < MaxFailedAttempts; i++ {
		assert.ErrorIs(t, u.Authenticate("yanlis", now), ErrInvalidCredentials)
	}
	assert.True(t, u.IsLocked(now))
	assert.ErrorIs(t, u.Authenticate("gizli1234", now), ErrUserLocked)

	later := now.Add(LockDuration + time.Second)
	require.NoError(t, u.Authenticate("gizli1234", later))
	assert.Equal(t, later, *u.LastLoginAt)
	assert.Nil(t, u.LockedUntil)
}

func TestUser_AuthenticateInactive(t *testing.T) {
	u, err := NewUser(uuid.New(), "a@b.co", "", "gizli1234", RoleUser)
	require.NoError(t, err)
	u.IsActive = false
	assert.ErrorIs(t, u.Authenticate("gizli1234", time.Now()), ErrUserInactive)
}
