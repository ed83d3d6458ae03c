package shared

import (
	"errors"
	"fmt"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is matches on code so wrapped copies of a sentinel still compare equal.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewFieldError creates a validation error bound to a single input field.
func NewFieldError(field, message string) *DomainError {
	return &DomainError{
		Code:    "VALIDATION_ERROR",
		Message: message,
		Field:   field,
	}
}

// RequiredField is the error returned when a mandatory field is blank.
func RequiredField(field string) *DomainError {
	return NewFieldError(field, fmt.Sprintf("%s alanı zorunludur", field))
}

// Common domain errors
var (
	ErrNotFound      = NewDomainError("NOT_FOUND", "Kayıt bulunamadı")
	ErrAlreadyExists = NewDomainError("ALREADY_EXISTS", "Kayıt zaten mevcut")
	ErrInvalidInput  = NewDomainError("INVALID_INPUT", "Geçersiz giriş")
	ErrUnauthorized  = NewDomainError("UNAUTHORIZED", "Bu işlem için yetkiniz yok")
	ErrForbidden     = NewDomainError("FORBIDDEN", "Erişim engellendi")
	ErrInvalidState  = NewDomainError("INVALID_STATE", "Bu işlem mevcut durumda yapılamaz")
)

// AsDomainError unwraps err into a DomainError when possible.
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
