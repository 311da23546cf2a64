// Package validation checks and scrubs brand data: the Validator produces
// field-scoped diagnostics for a brand, the Sanitizer strips unsafe content
// from untrusted input, and the guards in this file vet paths, origins and
// file names handed to the host surfaces.
package validation

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/conneroisu/branddna/internal/errors"
)

// ValidatePath validates a file path to prevent path traversal attacks.
// Escapes and restricted system paths are security errors; anything else
// it rejects is an ERR_INVALID_PATH validation error.
func ValidatePath(path string) error {
	if path == "" {
		return errors.ErrInvalidPath(path).WithContext("reason", "empty")
	}

	cleanPath := filepath.Clean(path)

	if cleanPath == ".." || strings.HasPrefix(cleanPath, "../") || strings.Contains(cleanPath, "/../") {
		return errors.ErrPathTraversal(path)
	}

	restrictedPaths := []string{
		"/etc/",
		"/proc/",
		"/sys/",
		"/dev/",
		"/boot/",
	}

	cleanPathLower := strings.ToLower(cleanPath) + "/"
	for _, restricted := range restrictedPaths {
		if strings.HasPrefix(cleanPathLower, restricted) {
			return errors.NewSecurityError(errors.ErrCodePathTraversal, "access to restricted path denied: "+path).
				WithContext("restricted", restricted)
		}
	}

	dangerousChars := []string{";", "&", "|", "$", "`", "<", ">", "\x00"}
	for _, char := range dangerousChars {
		if strings.Contains(path, char) {
			return errors.ErrInvalidPath(path).WithContext("character", char)
		}
	}

	return nil
}

// ValidateRelativePath accepts only paths that stay inside the working
// directory.
func ValidateRelativePath(path string) error {
	if err := ValidatePath(path); err != nil {
		return err
	}
	if filepath.IsAbs(path) {
		return fmt.Errorf("absolute path not allowed: %s", path)
	}

	return nil
}

// ValidateOrigin validates WebSocket origin for CSRF protection
func ValidateOrigin(origin string, allowedOrigins []string) error {
	if origin == "" {
		return errors.ErrInvalidOrigin(origin).WithContext("reason", "missing")
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeSecurity, errors.ErrCodeInvalidOrigin, "invalid origin format")
	}

	if originURL.Scheme != "http" && originURL.Scheme != "https" {
		return errors.ErrInvalidOrigin(origin).WithContext("scheme", originURL.Scheme)
	}

	for _, allowed := range allowedOrigins {
		if origin == allowed || originURL.Host == allowed {
			return nil
		}
	}

	return errors.ErrInvalidOrigin(origin)
}

// ValidateFileExtension validates file extensions against an allowlist
func ValidateFileExtension(filename string, allowedExtensions []string) error {
	if filename == "" {
		return fmt.Errorf("filename cannot be empty")
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return fmt.Errorf("file must have an extension")
	}

	for _, allowed := range allowedExtensions {
		if ext == strings.ToLower(allowed) {
			return nil
		}
	}

	return fmt.Errorf("file extension '%s' is not allowed", ext)
}

// SanitizeInput removes NUL bytes and control characters other than tab,
// newline and carriage return.
func SanitizeInput(input string) string {
	var sanitized strings.Builder
	sanitized.Grow(len(input))
	for _, r := range input {
		if r >= 32 && r != 0x7f || r == '\t' || r == '\n' || r == '\r' {
			sanitized.WriteRune(r)
		}
	}

	return sanitized.String()
}
