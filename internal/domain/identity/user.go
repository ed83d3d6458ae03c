package identity

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/isletme/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Role is a coarse permission level
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// IsValid checks if the role is known
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleUser
}

// BcryptCost is the password hashing cost
var BcryptCost = 12

// Login lockout policy
const (
	MaxFailedAttempts = 5
	LockDuration      = 15 * time.Minute
)

var (
	ErrInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "E-posta veya şifre hatalı")
	ErrUserLocked         = shared.NewDomainError("USER_LOCKED", "Çok fazla hatalı giriş. Lütfen daha sonra tekrar deneyin")
	ErrUserInactive       = shared.NewDomainError("USER_INACTIVE", "Kullanıcı hesabı pasif")
)

var (
	hasLetter = regexp.MustCompile(`[\p{L}]`)
	hasDigit  = regexp.MustCompile(`[0-9]`)
)

// User is an application user able to sign in
type User struct {
	shared.TenantEntity
	Email          string
	FullName       string
	PasswordHash   string
	Role           Role
	IsActive       bool
	LastLoginAt    *time.Time
	FailedAttempts int
	LockedUntil    *time.Time
}

// NewUser creates an active user with a hashed password
func NewUser(tenantID uuid.UUID, email, fullName, password string, role Role) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, shared.RequiredField("email")
	}
	if err := shared.ValidateEmail("email", email); err != nil {
		return nil, err
	}
	if !role.IsValid() {
		return nil, shared.NewFieldError("role", "Geçersiz rol")
	}
	u := &User{
		TenantEntity: shared.NewTenantEntity(tenantID),
		Email:        email,
		FullName:     strings.TrimSpace(fullName),
		Role:         role,
		IsActive:     true,
	}
	if err := u.SetPassword(password); err != nil {
		return nil, err
	}
	return u, nil
}

// SetPassword validates and hashes a new password
func (u *User) SetPassword(password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Şifre işlenemedi")
	}
	u.PasswordHash = string(hash)
	u.Touch()
	return nil
}

// VerifyPassword verifies if the provided password matches
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// IsLocked returns true while a lockout is in effect
func (u *User) IsLocked(now time.Time) bool {
	return u.LockedUntil != nil && now.Before(*u.LockedUntil)
}

// Authenticate checks the password and records the attempt.
func (u *User) Authenticate(password string, now time.Time) error {
	if !u.IsActive {
		return ErrUserInactive
	}
	if u.IsLocked(now) {
		return ErrUserLocked
	}
	if !u.VerifyPassword(password) {
		u.FailedAttempts++
		if u.FailedAttempts >= MaxFailedAttempts {
			until := now.Add(LockDuration)
			u.LockedUntil = &until
			u.FailedAttempts = 0
		}
		u.Touch()
		return ErrInvalidCredentials
	}
	u.FailedAttempts = 0
	u.LockedUntil = nil
	u.LastLoginAt = &now
	u.Touch()
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return shared.NewFieldError("password", "Şifre en az 8 karakter olmalıdır")
	}
	if len(password) > 72 {
		return shared.NewFieldError("password", "Şifre en fazla 72 karakter olabilir")
	}
	if !hasLetter.MatchString(password) || !hasDigit.MatchString(password) {
		return shared.NewFieldError("password", "Şifre en az bir harf ve bir rakam içermelidir")
	}
	return nil
}

// UserRepository persists users
type UserRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*User, error)
	// FindByEmail looks a user up across tenants; emails are globally unique.
	FindByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
}
