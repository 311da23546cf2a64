package config

import (
	"fmt"
	"net"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/conneroisu/branddna/internal/logging"
	"github.com/conneroisu/branddna/internal/serializer"
	"github.com/conneroisu/branddna/internal/templates"
	"github.com/conneroisu/branddna/internal/validation"
)

// ValidationError represents a configuration validation error with suggestions
type ValidationError struct {
	Field       string      `json:"field" yaml:"field"`
	Value       interface{} `json:"value" yaml:"value"`
	Message     string      `json:"message" yaml:"message"`
	Suggestions []string    `json:"suggestions,omitempty" yaml:"suggestions,omitempty"`
}

func (ve *ValidationError) Error() string {
	return fmt.Sprintf("validation error in %s: %s", ve.Field, ve.Message)
}

// ValidationResult holds the result of configuration validation
type ValidationResult struct {
	Valid    bool              `json:"valid" yaml:"valid"`
	Errors   []ValidationError `json:"errors" yaml:"errors"`
	Warnings []ValidationError `json:"warnings" yaml:"warnings"`
}

// HasErrors returns true if there are any validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// HasWarnings returns true if there are any validation warnings
func (vr *ValidationResult) HasWarnings() bool {
	return len(vr.Warnings) > 0
}

// String returns a formatted string of all validation issues
func (vr *ValidationResult) String() string {
	var builder strings.Builder

	if len(vr.Errors) > 0 {
		builder.WriteString("❌ Validation Errors:\n")
		for _, err := range vr.Errors {
			builder.WriteString(fmt.Sprintf("  • %s: %s\n", err.Field, err.Message))
			for _, suggestion := range err.Suggestions {
				builder.WriteString(fmt.Sprintf("    💡 %s\n", suggestion))
			}
		}
		builder.WriteString("\n")
	}

	if len(vr.Warnings) > 0 {
		builder.WriteString("⚠️  Validation Warnings:\n")
		for _, warning := range vr.Warnings {
			builder.WriteString(fmt.Sprintf("  • %s: %s\n", warning.Field, warning.Message))
			for _, suggestion := range warning.Suggestions {
				builder.WriteString(fmt.Sprintf("    💡 %s\n", suggestion))
			}
		}
	}

	return builder.String()
}

func (vr *ValidationResult) addError(field string, value interface{}, message string, suggestions ...string) {
	vr.Errors = append(vr.Errors, ValidationError{Field: field, Value: value, Message: message, Suggestions: suggestions})
}

func (vr *ValidationResult) addWarning(field string, value interface{}, message string, suggestions ...string) {
	vr.Warnings = append(vr.Warnings, ValidationError{Field: field, Value: value, Message: message, Suggestions: suggestions})
}

// validateConfig returns the first blocking problem in config.
func validateConfig(config *Config) error {
	result := ValidateConfigWithDetails(config)
	if result.HasErrors() {
		first := result.Errors[0]

		return &first
	}

	return nil
}

// ValidateConfigWithDetails performs comprehensive validation with detailed feedback
func ValidateConfigWithDetails(config *Config) *ValidationResult {
	result := &ValidationResult{
		Valid:    true,
		Errors:   []ValidationError{},
		Warnings: []ValidationError{},
	}

	validateBrandConfigDetails(&config.Brand, result)
	validateOutputConfigDetails(&config.Output, result)
	validateCSSConfigDetails(&config.CSS, result)
	validateImportConfigDetails(&config.Import, result)
	validateServerConfigDetails(&config.Server, result)
	validateWatchConfigDetails(&config.Watch, result)
	validateLogConfigDetails(&config.Log, result)

	result.Valid = !result.HasErrors()

	return result
}

func validateBrandConfigDetails(config *BrandConfig, result *ValidationResult) {
	if config.File == "" {
		result.addError("brand.file", config.File, "brand file cannot be empty",
			"Use 'brand.json' for the default location")
	} else if err := validation.ValidatePath(config.File); err != nil {
		result.addError("brand.file", config.File, err.Error(),
			"Use a path relative to the project root",
			"Avoid parent directory references (..)")
	} else if !strings.EqualFold(filepath.Ext(config.File), ".json") {
		result.addError("brand.file", config.File, "brand file must be a .json file",
			"Rename the file to end in .json")
	}

	if config.Template != "" {
		if _, err := templates.Builtin().GetByID(config.Template); err != nil {
			result.addError("brand.template", config.Template, fmt.Sprintf("unknown template '%s'", config.Template),
				"Available templates: "+strings.Join(templateIDs(), ", "))
		}
	}
}

func validateOutputConfigDetails(config *OutputConfig, result *ValidationResult) {
	if config.Dir == "" {
		result.addError("output.dir", config.Dir, "output directory cannot be empty",
			"Use 'dist/brand' for the default location")
	} else {
		clean := filepath.Clean(config.Dir)
		switch {
		case filepath.IsAbs(clean):
			result.addError("output.dir", config.Dir, "output directory should be a relative path",
				"Use a path relative to the project root")
		case strings.Contains(clean, ".."):
			result.addError("output.dir", config.Dir, "output directory contains path traversal",
				"Avoid parent directory references (..)")
		default:
			if err := validation.ValidatePath(config.Dir); err != nil {
				result.addError("output.dir", config.Dir, err.Error())
			}
		}
	}

	known := formatNames()
	if len(config.Formats) == 0 {
		result.addWarning("output.formats", config.Formats, "no formats specified - export writes every format",
			"Available formats: "+strings.Join(known, ", "))
	}
	seen := make(map[string]bool, len(config.Formats))
	for i, f := range config.Formats {
		field := fmt.Sprintf("output.formats[%d]", i)
		if !contains(known, f) {
			result.addError(field, f, fmt.Sprintf("unknown format '%s'", f),
				"Available formats: "+strings.Join(known, ", "))
		}
		if seen[f] {
			result.addWarning(field, f, fmt.Sprintf("format '%s' is listed more than once", f))
		}
		seen[f] = true
	}
}

var (
	cssSelector = regexp.MustCompile(`^[A-Za-z0-9_.#:\-\[\]="' >+~*()]+$`)
	cssIdent    = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)
)

func validateCSSConfigDetails(config *CSSConfig, result *ValidationResult) {
	if config.Selector != "" && (!cssSelector.MatchString(config.Selector) || strings.ContainsAny(config.Selector, "{};")) {
		result.addError("css.selector", config.Selector, "selector contains characters that cannot appear in a CSS selector",
			"Use a class selector like '"+serializer.DefaultSelector+"'",
			"Use ':root' to scope variables to the whole document")
	}
	if config.Prefix != "" && !cssIdent.MatchString(config.Prefix) {
		result.addError("css.prefix", config.Prefix, "prefix must be a CSS identifier",
			"Use letters, digits, '-' and '_' only")
	}
	if config.DarkClass != "" && !cssIdent.MatchString(config.DarkClass) {
		result.addError("css.dark_class", config.DarkClass, "dark class must be a CSS identifier",
			"Use 'dark' to match Tailwind's class strategy")
	}
}

func validateImportConfigDetails(config *ImportConfig, result *ValidationResult) {
	if config.Timeout <= 0 {
		result.addError("import.timeout", config.Timeout.String(), "timeout must be positive",
			"Use a value like '15s'")
	}
	if config.MaxBytes <= 0 {
		result.addError("import.max_bytes", config.MaxBytes, "max_bytes must be positive",
			"Use 1048576 for a 1 MiB limit")
	} else if config.MaxBytes > 64<<20 {
		result.addWarning("import.max_bytes", config.MaxBytes, "limits above 64 MiB allow very large documents",
			"Brand documents are rarely larger than a few hundred kilobytes")
	}
}

func validateServerConfigDetails(config *ServerConfig, result *ValidationResult) {
	if config.Port < 0 || config.Port > 65535 {
		result.addError("server.port", config.Port, fmt.Sprintf("port %d is not in valid range 0-65535", config.Port),
			"Use a port between 1024-65535 for non-privileged access",
			"Common development ports: 3000, 8080, 8000, 3001",
			"Port 0 allows system to assign an available port")
	} else if config.Port > 0 && config.Port < 1024 {
		result.addWarning("server.port", config.Port, "port below 1024 requires elevated privileges",
			"Consider using a port above 1024 for development")
	}

	if config.Host != "" {
		if err := validateHostname(config.Host); err != nil {
			result.addError("server.host", config.Host, err.Error(),
				"Use 'localhost' for local development",
				"Use '0.0.0.0' to bind to all interfaces")
		}
	}

	for i, origin := range config.AllowedOrigins {
		if origin == "*" {
			result.addWarning(fmt.Sprintf("server.allowed_origins[%d]", i), origin,
				"wildcard origin accepts websocket connections from any site",
				"List the exact origins that may connect")

			continue
		}
		if err := validation.ValidateURL(origin); err != nil {
			result.addError(fmt.Sprintf("server.allowed_origins[%d]", i), origin, err.Error(),
				"Origins look like 'http://localhost:8080'")
		}
	}
}

func validateWatchConfigDetails(config *WatchConfig, result *ValidationResult) {
	if config.Debounce < 0 {
		result.addError("watch.debounce", config.Debounce.String(), "debounce cannot be negative")
	}
}

func validateLogConfigDetails(config *LogConfig, result *ValidationResult) {
	if _, err := logging.ParseLevel(config.Level); err != nil {
		result.addError("log.level", config.Level, err.Error(),
			"Use one of: debug, info, warn, error")
	}
	if config.Format != "" && config.Format != "text" && config.Format != "json" {
		result.addError("log.format", config.Format, fmt.Sprintf("unknown log format '%s'", config.Format),
			"Use 'text' or 'json'")
	}
	if config.File != "" {
		if err := validation.ValidatePath(config.File); err != nil {
			result.addError("log.file", config.File, err.Error(),
				"Use a path relative to the project root")
		}
	}
}

// Helper validation functions

func validateHostname(host string) error {
	dangerousChars := []string{";", "&", "|", "$", "`", "(", ")", "<", ">", "\"", "'", "\\"}
	for _, char := range dangerousChars {
		if strings.Contains(host, char) {
			return fmt.Errorf("contains dangerous character: %s", char)
		}
	}

	if net.ParseIP(host) != nil {
		return nil
	}
	if host == "localhost" {
		return nil
	}

	hostnameRegex := regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(\.[a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`)
	if !hostnameRegex.MatchString(host) {
		return fmt.Errorf("invalid hostname format")
	}

	return nil
}

func formatNames() []string {
	return serializer.DefaultRegistry(serializer.DefaultCSSOptions()).Names()
}

func templateIDs() []string {
	list := templates.Builtin().List()
	ids := make([]string, len(list))
	for i, t := range list {
		ids[i] = t.ID
	}

	return ids
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}

	return false
}
