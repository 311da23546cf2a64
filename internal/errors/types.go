// Package errors defines the error taxonomy shared by the brand engine and
// its host surfaces: field-scoped validation diagnostics (FieldError) and
// structured operational errors (BrandError).
package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents different categories of errors.
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeSecurity   ErrorType = "security"
	ErrorTypeIO         ErrorType = "io"
	ErrorTypeNetwork    ErrorType = "network"
	ErrorTypeImport     ErrorType = "import"
	ErrorTypeConfig     ErrorType = "config"
	ErrorTypeInternal   ErrorType = "internal"
)

// BrandError is a structured error type with context.
type BrandError struct {
	Type        ErrorType
	Code        string
	Message     string
	Cause       error
	Context     map[string]interface{}
	FilePath    string
	Recoverable bool
}

// Error implements the error interface.
func (e *BrandError) Error() string {
	var parts []string

	if e.Code != "" {
		parts = append(parts, fmt.Sprintf("[%s]", e.Code))
	}
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}

	parts = append(parts, e.Message)
	result := strings.Join(parts, " ")

	if e.Cause != nil {
		result += fmt.Sprintf(": %v", e.Cause)
	}

	return result
}

// Unwrap returns the underlying cause error.
func (e *BrandError) Unwrap() error {
	return e.Cause
}

// Is matches another BrandError with the same type and code.
func (e *BrandError) Is(target error) bool {
	var t *BrandError
	if errors.As(target, &t) {
		return e.Type == t.Type && e.Code == t.Code
	}

	return false
}

// WithContext adds context information to the error.
func (e *BrandError) WithContext(key string, value interface{}) *BrandError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value

	return e
}

// WithFile records the file the error relates to.
func (e *BrandError) WithFile(path string) *BrandError {
	e.FilePath = path

	return e
}

// NewValidationError creates a validation error.
func NewValidationError(code, message string) *BrandError {
	return &BrandError{
		Type:        ErrorTypeValidation,
		Code:        code,
		Message:     message,
		Recoverable: true,
	}
}

// NewSecurityError creates a security error.
func NewSecurityError(code, message string) *BrandError {
	return &BrandError{
		Type:    ErrorTypeSecurity,
		Code:    code,
		Message: message,
	}
}

// NewNetworkError creates a network error. Network failures are usually
// worth retrying.
func NewNetworkError(code, message string, cause error) *BrandError {
	return &BrandError{
		Type:        ErrorTypeNetwork,
		Code:        code,
		Message:     message,
		Cause:       cause,
		Recoverable: true,
	}
}

// NewImportError creates an import error carrying the field diagnostics
// that caused the import to be rejected.
func NewImportError(code, message string, fields FieldErrors) *BrandError {
	e := &BrandError{
		Type:        ErrorTypeImport,
		Code:        code,
		Message:     message,
		Recoverable: true,
	}
	if len(fields) > 0 {
		e.Cause = fields
	}

	return e
}

// NewConfigError creates a configuration error.
func NewConfigError(code, message string) *BrandError {
	return &BrandError{
		Type:    ErrorTypeConfig,
		Code:    code,
		Message: message,
	}
}

// NewInternalError creates an internal error.
func NewInternalError(code, message string, cause error) *BrandError {
	return &BrandError{
		Type:    ErrorTypeInternal,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// IsSecurityError checks if an error is security-related.
func IsSecurityError(err error) bool {
	return hasType(err, ErrorTypeSecurity)
}

// IsImportError checks if an error came out of the import pipeline.
func IsImportError(err error) bool {
	return hasType(err, ErrorTypeImport)
}

func hasType(err error, t ErrorType) bool {
	var be *BrandError
	if errors.As(err, &be) {
		return be.Type == t
	}

	return false
}

// ErrorHandler provides centralized error handling.
type ErrorHandler struct {
	logger   Logger
	notifier Notifier
}

// Logger interface for error logging.
type Logger interface {
	Error(ctx context.Context, err error, msg string, fields ...interface{})
	Warn(ctx context.Context, err error, msg string, fields ...interface{})
}

// Notifier interface for error notifications.
type Notifier interface {
	NotifyError(ctx context.Context, err *BrandError) error
}

// NewErrorHandler creates a new error handler.
func NewErrorHandler(logger Logger, notifier Notifier) *ErrorHandler {
	return &ErrorHandler{
		logger:   logger,
		notifier: notifier,
	}
}

// Handle processes an error with appropriate logging and notifications.
func (h *ErrorHandler) Handle(ctx context.Context, err error) {
	if err == nil {
		return
	}

	var be *BrandError
	if errors.As(err, &be) {
		h.handleBrandError(ctx, be)

		return
	}

	var fe FieldErrors
	if errors.As(err, &fe) {
		if h.logger != nil {
			h.logger.Warn(ctx, err, "Brand validation failed",
				"errors", len(fe),
				"codes", fe.Codes())
		}

		return
	}

	if h.logger != nil {
		h.logger.Error(ctx, err, "Unhandled error occurred")
	}
}

func (h *ErrorHandler) handleBrandError(ctx context.Context, err *BrandError) {
	if h.logger == nil {
		if err.Type == ErrorTypeSecurity && h.notifier != nil {
			_ = h.notifier.NotifyError(ctx, err)
		}

		return
	}

	fields := contextFields(err)
	switch err.Type {
	case ErrorTypeSecurity:
		h.logger.Error(ctx, err, "Security error occurred", fields...)
		if h.notifier != nil {
			_ = h.notifier.NotifyError(ctx, err)
		}
	case ErrorTypeValidation, ErrorTypeImport:
		h.logger.Warn(ctx, err, "Brand rejected", fields...)
	case ErrorTypeNetwork:
		h.logger.Warn(ctx, err, "Network error occurred", fields...)
	default:
		h.logger.Error(ctx, err, "Error occurred", fields...)
	}
}

// Operational error codes used by BrandError.
const (
	ErrCodeInvalidPath      = "ERR_INVALID_PATH"
	ErrCodePathTraversal    = "ERR_PATH_TRAVERSAL"
	ErrCodeFetchFailed      = "ERR_FETCH_FAILED"
	ErrCodeInvalidOrigin    = "ERR_INVALID_ORIGIN"
	ErrCodeTemplateNotFound = "ERR_TEMPLATE_NOT_FOUND"
	ErrCodeFormatNotFound   = "ERR_FORMAT_NOT_FOUND"
	ErrCodeImportRejected   = "ERR_IMPORT_REJECTED"
	ErrCodeExportFailed     = "ERR_EXPORT_FAILED"
	ErrCodeConfigInvalid    = "ERR_CONFIG_INVALID"
	ErrCodeInternalError    = "ERR_INTERNAL"
	ErrCodeValidationFailed = "ERR_VALIDATION_FAILED"
	ErrCodeListenFailed     = "ERR_LISTEN_FAILED"
)

// ErrInvalidPath creates a path validation error.
func ErrInvalidPath(path string) *BrandError {
	return NewValidationError(ErrCodeInvalidPath, "invalid path: "+path)
}

// ErrPathTraversal creates a path traversal security error.
func ErrPathTraversal(path string) *BrandError {
	return NewSecurityError(ErrCodePathTraversal, "path traversal attempt: "+path)
}

// ErrInvalidOrigin creates an invalid origin security error.
func ErrInvalidOrigin(origin string) *BrandError {
	return NewSecurityError(ErrCodeInvalidOrigin, "invalid origin: "+origin)
}

// ErrTemplateNotFound creates a template lookup error.
func ErrTemplateNotFound(id string) *BrandError {
	return NewValidationError(ErrCodeTemplateNotFound, "template not found: "+id).
		WithContext("template", id)
}

// ErrFormatNotFound creates an export format lookup error.
func ErrFormatNotFound(name string) *BrandError {
	return NewValidationError(ErrCodeFormatNotFound, "unknown export format: "+name).
		WithContext("format", name)
}
