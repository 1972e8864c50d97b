// Package errors provides a lightweight structured error type (PortalError)
// for category-based classification in HTTP adapters and CLI output.
package errors

import (
	"fmt"
)

// ErrorCategory represents the category of a portal error for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"

	// Content serving errors
	CategoryContent  ErrorCategory = "content"
	CategoryRender   ErrorCategory = "render"
	CategoryNotFound ErrorCategory = "not_found"

	// Infrastructure errors
	CategoryStore    ErrorCategory = "store"
	CategoryEvents   ErrorCategory = "events"
	CategoryRuntime  ErrorCategory = "runtime"
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
	SeverityInfo    ErrorSeverity = "info"    // Informational, no impact
)

// PortalError is a structured error with category, severity, and context
type PortalError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for PortalError
type ContextFields map[string]any

// Error implements the error interface
func (e *PortalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *PortalError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *PortalError) WithContext(key string, value any) *PortalError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new PortalError
func New(category ErrorCategory, severity ErrorSeverity, message string) *PortalError {
	return &PortalError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new PortalError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *PortalError {
	return &PortalError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// IsCategory checks if an error belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if pe, ok := err.(*PortalError); ok {
		return pe.Category == category
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal
// if not a PortalError
func GetCategory(err error) ErrorCategory {
	if pe, ok := err.(*PortalError); ok {
		return pe.Category
	}
	return CategoryInternal
}
