package dto

import "net/http"

// Error codes returned in the envelope. Format: ERR_<CATEGORY>_<DESCRIPTION>.

// General error codes
const (
	ErrCodeUnknown            = "ERR_UNKNOWN"
	ErrCodeInternal           = "ERR_INTERNAL"
	ErrCodeServiceUnavailable = "ERR_SERVICE_UNAVAILABLE"
)

// Validation error codes
const (
	ErrCodeValidation         = "ERR_VALIDATION"
	ErrCodeValidationRequired = "ERR_VALIDATION_REQUIRED"
	ErrCodeValidationFormat   = "ERR_VALIDATION_FORMAT"
)

// Authentication error codes
const (
	ErrCodeUnauthorized       = "ERR_UNAUTHORIZED"
	ErrCodeForbidden          = "ERR_FORBIDDEN"
	ErrCodeInvalidCredentials = "ERR_INVALID_CREDENTIALS"
	ErrCodeUserLocked         = "ERR_USER_LOCKED"
	ErrCodeUserInactive       = "ERR_USER_INACTIVE"
	ErrCodeTokenExpired       = "ERR_TOKEN_EXPIRED"
	ErrCodeTokenInvalid       = "ERR_TOKEN_INVALID"
	ErrCodeTokenRevoked       = "ERR_TOKEN_REVOKED"
)

// Resource error codes
const (
	ErrCodeNotFound      = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	ErrCodeConflict      = "ERR_CONFLICT"
)

// Business rule error codes
const (
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	ErrCodeBusinessRule = "ERR_BUSINESS_RULE"
	// ErrCodeOpexAutoCategory is returned when editing a payroll-derived cell
	ErrCodeOpexAutoCategory = "ERR_OPEX_AUTO_CATEGORY"
	ErrCodeOpexInvalidCell  = "ERR_OPEX_INVALID_CELL"
)

// Input error codes
const (
	ErrCodeBadRequest      = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput    = "ERR_INVALID_INPUT"
	ErrCodeInvalidJSON     = "ERR_INVALID_JSON"
	ErrCodeRequestTooLarge = "ERR_REQUEST_TOO_LARGE"
)

// Document error codes
const (
	ErrCodeStorageDisabled  = "ERR_STORAGE_DISABLED"
	ErrCodeRendererDisabled = "ERR_RENDERER_DISABLED"
	ErrCodeRenderFailed     = "ERR_RENDER_FAILED"
	ErrCodeRenderTimeout    = "ERR_RENDER_TIMEOUT"
)

// CSV import error codes, shared with the csvimport package
const (
	ErrCodeImportInvalidFile   = "ERR_IMPORT_INVALID_FILE"
	ErrCodeImportMissingHeader = "ERR_IMPORT_MISSING_HEADER"
	ErrCodeImportSaveFailed    = "ERR_IMPORT_SAVE_FAILED"
)

// Rate limiting error codes
const (
	ErrCodeRateLimited = "ERR_RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:            http.StatusInternalServerError,
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,

	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeValidationRequired: http.StatusBadRequest,
	ErrCodeValidationFormat:   http.StatusBadRequest,

	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeForbidden:          http.StatusForbidden,
	ErrCodeInvalidCredentials: http.StatusUnauthorized,
	ErrCodeUserLocked:         http.StatusLocked,
	ErrCodeUserInactive:       http.StatusForbidden,
	ErrCodeTokenExpired:       http.StatusUnauthorized,
	ErrCodeTokenInvalid:       http.StatusUnauthorized,
	ErrCodeTokenRevoked:       http.StatusUnauthorized,

	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,
	ErrCodeConflict:      http.StatusConflict,

	ErrCodeInvalidState:     http.StatusUnprocessableEntity,
	ErrCodeBusinessRule:     http.StatusUnprocessableEntity,
	ErrCodeOpexAutoCategory: http.StatusUnprocessableEntity,
	ErrCodeOpexInvalidCell:  http.StatusBadRequest,

	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeInvalidInput:    http.StatusBadRequest,
	ErrCodeInvalidJSON:     http.StatusBadRequest,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,

	ErrCodeStorageDisabled:  http.StatusServiceUnavailable,
	ErrCodeRendererDisabled: http.StatusServiceUnavailable,
	ErrCodeRenderFailed:     http.StatusBadGateway,
	ErrCodeRenderTimeout:    http.StatusGatewayTimeout,

	ErrCodeImportInvalidFile:   http.StatusBadRequest,
	ErrCodeImportMissingHeader: http.StatusBadRequest,
	ErrCodeImportSaveFailed:    http.StatusInternalServerError,

	ErrCodeRateLimited: http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for an error code, 500 when unknown
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain and infrastructure error codes to API codes
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":                ErrCodeNotFound,
	"USER_NOT_FOUND":           ErrCodeNotFound,
	"ALREADY_EXISTS":           ErrCodeAlreadyExists,
	"INVALID_INPUT":            ErrCodeInvalidInput,
	"INVALID_STATE":            ErrCodeInvalidState,
	"UNAUTHORIZED":             ErrCodeUnauthorized,
	"FORBIDDEN":                ErrCodeForbidden,
	"VALIDATION_ERROR":         ErrCodeValidation,
	"BAD_REQUEST":              ErrCodeBadRequest,
	"INTERNAL_ERROR":           ErrCodeInternal,
	"PASSWORD_HASH_ERROR":      ErrCodeInternal,
	"SERVICE_UNAVAILABLE":      ErrCodeServiceUnavailable,
	"INVALID_CREDENTIALS":      ErrCodeInvalidCredentials,
	"USER_LOCKED":              ErrCodeUserLocked,
	"USER_INACTIVE":            ErrCodeUserInactive,
	"TOKEN_EXPIRED":            ErrCodeTokenExpired,
	"TOKEN_INVALID":            ErrCodeTokenInvalid,
	"TOKEN_REVOKED":            ErrCodeTokenRevoked,
	"OPEX_AUTO_CATEGORY":       ErrCodeOpexAutoCategory,
	"OPEX_INVALID_MONTH":       ErrCodeOpexInvalidCell,
	"OPEX_INVALID_YEAR":        ErrCodeOpexInvalidCell,
	"OPEX_NEGATIVE_AMOUNT":     ErrCodeOpexInvalidCell,
	"OPEX_UNKNOWN_CATEGORY":    ErrCodeOpexInvalidCell,
	"OPEX_UNKNOWN_SUBCATEGORY": ErrCodeOpexInvalidCell,
	"STORAGE_DISABLED":         ErrCodeStorageDisabled,
	"RENDERER_DISABLED":        ErrCodeRendererDisabled,
	"RENDER_FAILED":            ErrCodeRenderFailed,
	"RENDER_TIMEOUT":           ErrCodeRenderTimeout,
	"INVALID_HTML":             ErrCodeRenderFailed,
	"INVALID_PAPER_SIZE":       ErrCodeValidation,
}

// NormalizeErrorCode converts a domain error code to the API format.
// Codes already in the API format are returned as-is.
func NormalizeErrorCode(code string) string {
	if apiCode, ok := DomainErrorCodeMapping[code]; ok {
		return apiCode
	}
	return code
}
