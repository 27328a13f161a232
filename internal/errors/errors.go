// Package errors provides the API error types and the central RFC 7807
// handler used by the HTTP transport.
package errors

import (
	"net/http"

	"github.com/go-chi/render"
)

// APIError represents a structured API error response.
type APIError struct {
	StatusCode int         `json:"status_code"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// Render implements the render.Renderer interface for chi/render.
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// ValidationError represents a single invalid field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// NewWithDetails creates a new APIError with additional details.
func NewWithDetails(statusCode int, errorCode, message string, details interface{}) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
		Details:    details,
	}
}

// ErrValidation creates a validation error with field details.
func ErrValidation(field, message string) *APIError {
	return NewWithDetails(http.StatusBadRequest, "VALIDATION_FAILED", "Request validation failed", ValidationError{
		Field:   field,
		Message: message,
	})
}

// ErrWorkbookNotFound signals that the source workbook is missing.
func ErrWorkbookNotFound(err error) *APIError {
	return NewWithDetails(http.StatusNotFound, "WORKBOOK_NOT_FOUND", "Monitoring workbook not found", err.Error())
}

// ErrWorkbookParse signals a structural failure reading the workbook.
func ErrWorkbookParse(err error) *APIError {
	return NewWithDetails(http.StatusUnprocessableEntity, "WORKBOOK_PARSE_FAILED", "Failed to parse monitoring workbook", err.Error())
}

// ErrNoValidData signals that every sheet in the workbook was rejected.
func ErrNoValidData(err error) *APIError {
	return NewWithDetails(http.StatusNotFound, "NO_VALID_DATA", "No valid data in monitoring workbook", err.Error())
}
