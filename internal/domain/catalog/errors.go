package catalog

import "github.com/stylehub/backend/internal/domain/shared"

// Error codes raised by the catalog domain. The HTTP layer maps them to
// status codes; the domain only classifies.
const (
	ErrCodeHierarchy       = "HIERARCHY_VIOLATION"
	ErrCodeConflict        = "CONFLICT"
	ErrCodeValidation      = "VALIDATION_FAILED"
	ErrCodeInvalidParent   = "INVALID_PARENT"
	ErrCodeInvalidCategory = "INVALID_CATEGORY"
)

// NewHierarchyError reports a violation of the category level arithmetic.
func NewHierarchyError(message string) *shared.DomainError {
	return shared.NewDomainError(ErrCodeHierarchy, message)
}

// NewConflictError reports a delete blocked by dependent entities.
// Details carries the blocker counts and names for the caller.
func NewConflictError(message string, details map[string]interface{}) *shared.DomainError {
	return shared.NewDomainError(ErrCodeConflict, message).WithDetails(details)
}

// NewValidationError reports malformed input that survived schema
// validation, such as a bad id format.
func NewValidationError(message string) *shared.DomainError {
	return shared.NewDomainError(ErrCodeValidation, message)
}
