package errors

import (
	"errors"
	"fmt"
	"sort"
)

// Wrap wraps an error with additional context, creating a BrandError if the
// input is not already one.
func Wrap(err error, errType ErrorType, code, message string) *BrandError {
	if err == nil {
		return nil
	}

	var be *BrandError
	if errors.As(err, &be) {
		return &BrandError{
			Type:        errType,
			Code:        code,
			Message:     message,
			Cause:       be,
			Context:     be.Context,
			FilePath:    be.FilePath,
			Recoverable: be.Recoverable,
		}
	}

	return &BrandError{
		Type:        errType,
		Code:        code,
		Message:     message,
		Cause:       err,
		Recoverable: errType == ErrorTypeValidation || errType == ErrorTypeNetwork,
	}
}

// WrapIO wraps an error as an I/O error.
func WrapIO(err error, code, message string) *BrandError {
	be := Wrap(err, ErrorTypeIO, code, message)
	if be != nil {
		be.Recoverable = false
	}

	return be
}

// WrapNetwork wraps an error as a network error.
func WrapNetwork(err error, code, message string) *BrandError {
	be := Wrap(err, ErrorTypeNetwork, code, message)
	if be != nil {
		be.Recoverable = true
	}

	return be
}

// WrapConfig wraps an error as a configuration error.
func WrapConfig(err error, code, message string) *BrandError {
	be := Wrap(err, ErrorTypeConfig, code, message)
	if be != nil {
		be.Recoverable = false
	}

	return be
}

// WrapInternal wraps an error as an internal error.
func WrapInternal(err error, code, message string) *BrandError {
	be := Wrap(err, ErrorTypeInternal, code, message)
	if be != nil {
		be.Recoverable = false
	}

	return be
}

// FormatError formats an error for user display.
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	return err.Error()
}

// FormatErrorWithSuggestions formats an error followed by the suggestions
// for any field diagnostics it carries.
func FormatErrorWithSuggestions(err error) string {
	if err == nil {
		return ""
	}

	var fe FieldErrors
	if !errors.As(err, &fe) {
		var single FieldError
		if errors.As(err, &single) {
			fe = FieldErrors{single}
		}
	}

	result := FormatError(err)
	if s := FormatSuggestions(SuggestionsForErrors(fe)); s != "" {
		result += "\n\n" + s
	}

	return result
}

// GetErrorContext extracts context information from a BrandError.
func GetErrorContext(err error) map[string]interface{} {
	var be *BrandError
	if errors.As(err, &be) {
		ctx := make(map[string]interface{}, len(be.Context)+4)
		for k, v := range be.Context {
			ctx[k] = v
		}
		if be.FilePath != "" {
			ctx["file"] = be.FilePath
		}
		ctx["type"] = string(be.Type)
		ctx["code"] = be.Code
		ctx["recoverable"] = be.Recoverable

		return ctx
	}

	return map[string]interface{}{
		"message": err.Error(),
		"type":    "unknown",
	}
}

// contextFields flattens GetErrorContext into key/value pairs sorted by
// key, ready for a structured logger.
func contextFields(err error) []interface{} {
	ctx := GetErrorContext(err)
	keys := make([]string, 0, len(ctx))
	for k := range ctx {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fields := make([]interface{}, 0, 2*len(keys))
	for _, k := range keys {
		fields = append(fields, k, ctx[k])
	}

	return fields
}

// CombineErrors combines multiple errors into a single error with context.
func CombineErrors(errs ...error) error {
	var nonNil []error
	for _, err := range errs {
		if err != nil {
			nonNil = append(nonNil, err)
		}
	}

	switch len(nonNil) {
	case 0:
		return nil
	case 1:
		return nonNil[0]
	}

	messages := make([]string, len(nonNil))
	for i, err := range nonNil {
		messages[i] = err.Error()
	}

	return &BrandError{
		Type:    ErrorTypeInternal,
		Code:    "ERR_MULTIPLE_ERRORS",
		Message: fmt.Sprintf("multiple errors occurred: %d errors", len(nonNil)),
		Cause:   errors.Join(nonNil...),
		Context: map[string]interface{}{
			"error_count": len(nonNil),
			"errors":      messages,
		},
	}
}
