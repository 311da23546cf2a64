package errors

import (
	"fmt"
	"sort"
	"strings"
)

// Code classifies a field-scoped diagnostic.
type Code string

// Diagnostic codes reported by validation and import.
const (
	CodeInvalidJSON          Code = "INVALID_JSON"
	CodeInvalidStructure     Code = "INVALID_STRUCTURE"
	CodeRequiredField        Code = "REQUIRED_FIELD"
	CodeInvalidColor         Code = "INVALID_COLOR"
	CodeInvalidArrayLength   Code = "INVALID_ARRAY_LENGTH"
	CodeMaxArrayLength       Code = "MAX_ARRAY_LENGTH"
	CodeMaxLength            Code = "MAX_LENGTH"
	CodeInvalidValue         Code = "INVALID_VALUE"
	CodeInsufficientContrast Code = "INSUFFICIENT_CONTRAST"
	CodeInvalidFile          Code = "INVALID_FILE"
	CodeFetchFailed          Code = "FETCH_FAILED"
	CodeInvalidLink          Code = "INVALID_LINK"
	CodeImportFailed         Code = "IMPORT_FAILED"
)

// FieldError is a diagnostic scoped to a dotted field path such as
// "colors.light.primary". Advisory errors are reported to the user but do
// not block a commit unless the caller runs in strict mode.
type FieldError struct {
	Field    string `json:"field" yaml:"field"`
	Message  string `json:"message" yaml:"message"`
	Code     Code   `json:"code" yaml:"code"`
	Advisory bool   `json:"advisory,omitempty" yaml:"advisory,omitempty"`
}

// Error implements the error interface.
func (e FieldError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}

	return fmt.Sprintf("%s: %s: %s", e.Field, e.Code, e.Message)
}

// NewFieldError creates a blocking field error.
func NewFieldError(field string, code Code, message string) FieldError {
	return FieldError{Field: field, Code: code, Message: message}
}

// NewAdvisory creates an advisory field error.
func NewAdvisory(field string, code Code, message string) FieldError {
	return FieldError{Field: field, Code: code, Message: message, Advisory: true}
}

// FieldErrors aggregates field diagnostics. A nil or empty FieldErrors is a
// clean result.
type FieldErrors []FieldError

// Error implements the error interface.
func (fe FieldErrors) Error() string {
	switch len(fe) {
	case 0:
		return "no validation errors"
	case 1:
		return fe[0].Error()
	}

	msgs := make([]string, len(fe))
	for i, e := range fe {
		msgs[i] = e.Error()
	}

	return fmt.Sprintf("%d validation errors: %s", len(fe), strings.Join(msgs, "; "))
}

// Add appends a blocking error.
func (fe *FieldErrors) Add(field string, code Code, message string) {
	*fe = append(*fe, NewFieldError(field, code, message))
}

// Addf appends a blocking error with a formatted message.
func (fe *FieldErrors) Addf(field string, code Code, format string, args ...interface{}) {
	fe.Add(field, code, fmt.Sprintf(format, args...))
}

// AddAdvisory appends an advisory error with a formatted message.
func (fe *FieldErrors) AddAdvisory(field string, code Code, format string, args ...interface{}) {
	*fe = append(*fe, NewAdvisory(field, code, fmt.Sprintf(format, args...)))
}

// HasErrors reports whether any diagnostic was collected.
func (fe FieldErrors) HasErrors() bool {
	return len(fe) > 0
}

// Blocking returns the non-advisory errors.
func (fe FieldErrors) Blocking() FieldErrors {
	return fe.filter(func(e FieldError) bool { return !e.Advisory })
}

// Advisories returns the advisory errors.
func (fe FieldErrors) Advisories() FieldErrors {
	return fe.filter(func(e FieldError) bool { return e.Advisory })
}

// ByField returns the errors reported for one field path.
func (fe FieldErrors) ByField(field string) FieldErrors {
	return fe.filter(func(e FieldError) bool { return e.Field == field })
}

// ByCode returns the errors carrying code.
func (fe FieldErrors) ByCode(code Code) FieldErrors {
	return fe.filter(func(e FieldError) bool { return e.Code == code })
}

// Has reports whether an error with code was reported for field.
func (fe FieldErrors) Has(field string, code Code) bool {
	for _, e := range fe {
		if e.Field == field && e.Code == code {
			return true
		}
	}

	return false
}

// Codes returns the distinct codes present, sorted.
func (fe FieldErrors) Codes() []Code {
	seen := make(map[Code]struct{}, len(fe))
	codes := make([]Code, 0, len(fe))
	for _, e := range fe {
		if _, ok := seen[e.Code]; ok {
			continue
		}
		seen[e.Code] = struct{}{}
		codes = append(codes, e.Code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })

	return codes
}

// Messages returns each error rendered as a single line.
func (fe FieldErrors) Messages() []string {
	out := make([]string, len(fe))
	for i, e := range fe {
		out[i] = e.Error()
	}

	return out
}

// ToBrandError converts the collection to a validation BrandError, or nil
// when empty.
func (fe FieldErrors) ToBrandError() *BrandError {
	if !fe.HasErrors() {
		return nil
	}

	ctx := make(map[string]interface{}, len(fe))
	for _, e := range fe {
		ctx[e.Field] = string(e.Code)
	}

	return &BrandError{
		Type:        ErrorTypeValidation,
		Code:        ErrCodeValidationFailed,
		Message:     fe.Error(),
		Context:     ctx,
		Recoverable: true,
	}
}

func (fe FieldErrors) filter(keep func(FieldError) bool) FieldErrors {
	var out FieldErrors
	for _, e := range fe {
		if keep(e) {
			out = append(out, e)
		}
	}

	return out
}
