package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind groups domain error codes into the classes callers branch on
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindDuplicate
	KindNotFound
)

// DomainError represents a domain-specific error with a code and message
type DomainError struct {
	Code    string
	Message string
	Kind    Kind
	Details []string
	Err     error // underlying error for wrapping
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is and errors.As
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches domain errors by code so wrapped copies compare equal to the sentinels
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string, kind Kind) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Kind:    kind,
	}
}

// WrapError wraps an existing error with domain error context
func WrapError(domainErr *DomainError, err error) *DomainError {
	return &DomainError{
		Code:    domainErr.Code,
		Message: domainErr.Message,
		Kind:    domainErr.Kind,
		Details: domainErr.Details,
		Err:     err,
	}
}

// WithDetails returns a copy of the error carrying field-level messages
func WithDetails(domainErr *DomainError, details ...string) *DomainError {
	return &DomainError{
		Code:    domainErr.Code,
		Message: domainErr.Message,
		Kind:    domainErr.Kind,
		Details: details,
		Err:     domainErr.Err,
	}
}

// Predefined domain errors
var (
	// Category errors
	ErrCategoryNotFound   = NewDomainError("CATEGORY_NOT_FOUND", "Category not found", KindNotFound)
	ErrCategoryExists     = NewDomainError("DUPLICATE_ENTITY", "This category already exists", KindDuplicate)
	ErrReferencedCategory = NewDomainError("REFERENCED_CATEGORY_NOT_FOUND", "The specified category was not found", KindNotFound)

	// Parameter errors
	ErrParameterNotFound  = NewDomainError("PARAMETER_NOT_FOUND", "The specified parameter was not found", KindNotFound)
	ErrParameterSlugTaken = NewDomainError("DUPLICATE_ENTITY", "A parameter with this slug already exists", KindDuplicate)

	// Validation errors
	ErrValidation = NewDomainError("VALIDATION_ERROR", "Validation failed", KindValidation)
	ErrInvalidID  = NewDomainError("INVALID_ID", "Invalid identifier format", KindValidation)

	// System errors
	ErrInternal           = NewDomainError("INTERNAL_ERROR", "internal server error", KindInternal)
	ErrServiceUnavailable = NewDomainError("SERVICE_UNAVAILABLE", "service unavailable", KindInternal)
)

// IsDomainError checks if an error is a domain error
func IsDomainError(err error) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr)
}

// GetDomainError extracts the domain error from an error
func GetDomainError(err error) *DomainError {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return nil
}

func kindOf(err error) (Kind, bool) {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Kind, true
	}
	return KindInternal, false
}

// IsNotFound reports whether err is any of the not-found errors
func IsNotFound(err error) bool {
	kind, ok := kindOf(err)
	return ok && kind == KindNotFound
}

// IsDuplicate reports whether err is a uniqueness violation
func IsDuplicate(err error) bool {
	kind, ok := kindOf(err)
	return ok && kind == KindDuplicate
}

// IsValidation reports whether err is a field-level validation failure
func IsValidation(err error) bool {
	kind, ok := kindOf(err)
	return ok && kind == KindValidation
}

// ToHTTPStatus maps domain errors to HTTP status codes
// This should only be used in the handler/presentation layer
func ToHTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErrorToHTTPStatus(domainErr)
	}

	return http.StatusInternalServerError
}

func domainErrorToHTTPStatus(err *DomainError) int {
	switch err.Kind {
	case KindValidation, KindDuplicate:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	}

	if err.Code == ErrServiceUnavailable.Code {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// GetErrorMessage safely extracts error message
func GetErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}

	return err.Error()
}

// GetErrorDetails returns the field messages of a domain error, or the
// error message itself when there are none
func GetErrorDetails(err error) []string {
	if err == nil {
		return []string{}
	}
	if domainErr := GetDomainError(err); domainErr != nil && len(domainErr.Details) > 0 {
		return domainErr.Details
	}
	return []string{GetErrorMessage(err)}
}
