package models

import (
	"time"

	"github.com/isletme/backend/internal/domain/identity"
)

// UserModel maps the users table. Email is unique across tenants.
type UserModel struct {
	TenantModel
	Email          string        `gorm:"type:varchar(200);not null;uniqueIndex"`
	FullName       string        `gorm:"type:varchar(200)"`
	PasswordHash   string        `gorm:"type:varchar(255);not null"`
	Role           identity.Role `gorm:"type:varchar(20);not null;default:'user'"`
	IsActive       bool          `gorm:"not null;default:true"`
	LastLoginAt    *time.Time
	FailedAttempts int `gorm:"not null;default:0"`
	LockedUntil    *time.Time
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the model to a domain user
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		TenantEntity:   m.Entity(),
		Email:          m.Email,
		FullName:       m.FullName,
		PasswordHash:   m.PasswordHash,
		Role:           m.Role,
		IsActive:       m.IsActive,
		LastLoginAt:    m.LastLoginAt,
		FailedAttempts: m.FailedAttempts,
		LockedUntil:    m.LockedUntil,
	}
}

// FromDomain populates the model from a domain user
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromEntity(u.TenantEntity)
	m.Email = u.Email
	m.FullName = u.FullName
	m.PasswordHash = u.PasswordHash
	m.Role = u.Role
	m.IsActive = u.IsActive
	m.LastLoginAt = u.LastLoginAt
	m.FailedAttempts = u.FailedAttempts
	m.LockedUntil = u.LockedUntil
}
