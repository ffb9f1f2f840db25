package dto

import "net/http"

// Error code constants organized by category

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "INTERNAL"
)

// Validation error codes
const (
	// ErrCodeValidation is used when input fails validation
	ErrCodeValidation = "VALIDATION_FAILED"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "INVALID_JSON"
)

// Authentication error codes
const (
	// ErrCodeUnauthorized is used when authentication is required but missing/invalid
	ErrCodeUnauthorized = "UNAUTHORIZED"
	// ErrCodeTokenExpired is used when the auth token has expired
	ErrCodeTokenExpired = "TOKEN_EXPIRED"
	// ErrCodeForbidden is used when the caller is authenticated but not
	// allowed to reach the resource
	ErrCodeForbidden = "FORBIDDEN"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when the request target is not found
	ErrCodeNotFound = "NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ALREADY_EXISTS"
	// ErrCodeConflict is used when a delete is blocked by dependent resources
	ErrCodeConflict = "CONFLICT"
)

// Catalog error codes
const (
	// ErrCodeHierarchy is used for category tree violations
	ErrCodeHierarchy = "HIERARCHY_VIOLATION"
	// ErrCodeInvalidParent is used when a referenced parent category does not exist
	ErrCodeInvalidParent = "INVALID_PARENT"
	// ErrCodeInvalidCategory is used when a referenced category does not exist
	ErrCodeInvalidCategory = "INVALID_CATEGORY"
)

// Rate limiting error codes
const (
	// ErrCodeRateLimited is used when rate limit is exceeded
	ErrCodeRateLimited = "RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes.
// Dependent-resource conflicts deliberately map to 400, not 409: the
// admin frontend treats every rejected mutation as a bad request and
// renders the details payload.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation:  http.StatusBadRequest,
	ErrCodeInvalidJSON: http.StatusBadRequest,

	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,

	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusBadRequest,
	ErrCodeConflict:      http.StatusBadRequest,

	ErrCodeHierarchy:       http.StatusBadRequest,
	ErrCodeInvalidParent:   http.StatusBadRequest,
	ErrCodeInvalidCategory: http.StatusBadRequest,

	ErrCodeRateLimited: http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// legacyErrorCodeMapping maps older domain error codes to the codes the
// API exposes
var legacyErrorCodeMapping = map[string]string{
	"INVALID_INPUT":    ErrCodeValidation,
	"VALIDATION_ERROR": ErrCodeValidation,
	"BAD_REQUEST":      ErrCodeValidation,
	"INTERNAL_ERROR":   ErrCodeInternal,
}

// NormalizeErrorCode converts a legacy error code to the exposed format.
// If the code is already in the exposed format or unknown, returns it as-is.
func NormalizeErrorCode(code string) string {
	if newCode, ok := legacyErrorCodeMapping[code]; ok {
		return newCode
	}
	return code
}
