// Package importer turns untrusted Brand DNA documents into validated,
// fully populated brands.
//
// Every import runs the same pipeline: parse, shape check, migrate,
// decode, sanitize, merge with defaults and validate. Parsing and shape
// failures stop the pipeline with a single error; validation failures are
// collected. Public entry points never panic and never return a Go error:
// the outcome is always a Result.
package importer

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/conneroisu/branddna/internal/brand"
	"github.com/conneroisu/branddna/internal/errors"
	"github.com/conneroisu/branddna/internal/logging"
	"github.com/conneroisu/branddna/internal/validation"
)

// DefaultMaxBytes caps file and URL payloads.
const DefaultMaxBytes int64 = 1 << 20

// Result is the outcome of one import.
type Result struct {
	Success  bool               `json:"success" yaml:"success"`
	Source   string             `json:"source,omitempty" yaml:"source,omitempty"`
	Brand    *brand.BrandDNA    `json:"brand,omitempty" yaml:"brand,omitempty"`
	Errors   errors.FieldErrors `json:"errors" yaml:"errors"`
	Warnings errors.FieldErrors `json:"warnings" yaml:"warnings"`
}

// Err converts a failed result into a BrandError carrying the field
// errors. It returns nil on success.
func (r Result) Err() error {
	if r.Success {
		return nil
	}
	msg := "import rejected"
	if r.Source != "" {
		msg = "import rejected: " + r.Source
	}

	return errors.NewImportError(errors.ErrCodeImportRejected, msg, r.Errors)
}

// Importer runs the import pipeline. The zero value is not usable; call
// New.
type Importer struct {
	client     *http.Client
	logger     logging.Logger
	strict     bool
	now        func() time.Time
	defaults   brand.BrandDNA
	migrations []Migration
	maxBytes   int64
}

// Option configures an Importer.
type Option func(*Importer)

// WithHTTPClient sets the client used by ImportURL.
func WithHTTPClient(c *http.Client) Option {
	return func(i *Importer) {
		if c != nil {
			i.client = c
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(i *Importer) {
		if l != nil {
			i.logger = l.WithComponent("importer")
		}
	}
}

// WithStrict makes advisory validation errors block the import.
func WithStrict(strict bool) Option {
	return func(i *Importer) {
		i.strict = strict
	}
}

// WithClock sets the time source used to stamp imported brands.
func WithClock(now func() time.Time) Option {
	return func(i *Importer) {
		if now != nil {
			i.now = now
		}
	}
}

// WithDefaults sets the brand that fills fields missing from the input.
func WithDefaults(b brand.BrandDNA) Option {
	return func(i *Importer) {
		i.defaults = b.Clone()
	}
}

// WithMigrations sets the migration chain.
func WithMigrations(m ...Migration) Option {
	return func(i *Importer) {
		i.migrations = append([]Migration(nil), m...)
	}
}

// WithMaxBytes caps the size of file and URL payloads.
func WithMaxBytes(n int64) Option {
	return func(i *Importer) {
		if n > 0 {
			i.maxBytes = n
		}
	}
}

// New creates an importer.
func New(opts ...Option) *Importer {
	i := &Importer{
		client:   &http.Client{Timeout: 30 * time.Second},
		logger:   logging.NewNop(),
		now:      time.Now,
		defaults: brand.Default(),
		maxBytes: DefaultMaxBytes,
	}
	for _, opt := range opts {
		opt(i)
	}

	return i
}

// ImportJSON imports a JSON document.
func (i *Importer) ImportJSON(text string) (result Result) {
	defer i.recoverInto(&result, "json")

	return i.importBytes(context.Background(), "json", []byte(text))
}

func failure(source string, field string, code errors.Code, format string, args ...interface{}) Result {
	var fe errors.FieldErrors
	fe.Addf(field, code, format, args...)

	return Result{Source: source, Errors: fe, Warnings: errors.FieldErrors{}}
}

// recoverInto converts a panic anywhere in the pipeline into an
// IMPORT_FAILED result.
func (i *Importer) recoverInto(result *Result, source string) {
	if r := recover(); r != nil {
		err := errors.NewInternalError(errors.ErrCodeInternalError, "import panicked", fmt.Errorf("%v", r)).
			WithContext("source", source)
		i.logger.Error(context.Background(), err, "Import failed unexpectedly", "source", source)
		*result = failure(source, "", errors.CodeImportFailed, "import failed unexpectedly")
	}
}

// importBytes is the pipeline shared by every source.
func (i *Importer) importBytes(ctx context.Context, source string, data []byte) Result {
	op := logging.StartOperation(i.logger, "import")
	defer op.End(ctx)

	partial, res, ok := i.decode(source, data)
	if !ok {
		i.logger.Warn(ctx, res.Errors, "Import rejected", "source", source, "stage", "decode")

		return res
	}

	partial = validation.SanitizePartial(partial)

	now := brand.Timestamp(i.now())
	base := i.defaults.Clone()
	base.Metadata.CreatedAt = now
	base.Metadata.UpdatedAt = now
	merged := brand.Merge(base, partial)
	merged.Metadata.Version = brand.CurrentVersion

	vr := validation.Validate(&merged)
	blocking := vr.Blocking(i.strict)
	if len(blocking) > 0 {
		i.logger.Warn(ctx, blocking, "Import rejected", "source", source, "stage", "validate",
			"errors", len(blocking))

		return Result{Source: source, Errors: blocking, Warnings: nonBlocking(vr.Errors, i.strict)}
	}

	warnings := vr.Warnings()
	if warnings == nil {
		warnings = errors.FieldErrors{}
	}
	i.logger.Info(ctx, "Brand imported", "source", source, "name", logging.SanitizeForLog(merged.Metadata.Name),
		"warnings", len(warnings))

	return Result{
		Success:  true,
		Source:   source,
		Brand:    &merged,
		Errors:   errors.FieldErrors{},
		Warnings: warnings,
	}
}

func nonBlocking(all errors.FieldErrors, strict bool) errors.FieldErrors {
	if strict {
		return errors.FieldErrors{}
	}
	w := all.Advisories()
	if w == nil {
		w = errors.FieldErrors{}
	}

	return w
}

// decode runs parse, shape check, migration and typed decoding. On
// failure the returned Result holds the single terminal error.
func (i *Importer) decode(source string, data []byte) (brand.Partial, Result, bool) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	doc, err := parseDocument(data)
	if err != nil {
		return brand.Partial{}, failure(source, "", errors.CodeInvalidJSON, "%s", err.Error()), false
	}

	obj, ok := doc.(map[string]interface{})
	if !ok {
		return brand.Partial{}, failure(source, "", errors.CodeInvalidStructure,
			"document must be a JSON object"), false
	}
	if !hasBrandSection(obj) {
		return brand.Partial{}, failure(source, "", errors.CodeInvalidStructure,
			"document must contain at least one of metadata, colors or typography"), false
	}

	if err := migrate(obj, i.migrations); err != nil {
		return brand.Partial{}, failure(source, "metadata.version", errors.CodeInvalidStructure,
			"%s", err.Error()), false
	}

	partial, err := decodePartial(obj)
	if err != nil {
		field := ""
		var typeErr *json.UnmarshalTypeError
		if stderrors.As(err, &typeErr) {
			field = typeErr.Field
		}

		return brand.Partial{}, failure(source, field, errors.CodeInvalidStructure,
			"unexpected value: %s", err.Error()), false
	}

	return partial, Result{}, true
}

var brandSections = []string{"metadata", "colors", "typography"}

// hasBrandSection reports whether obj carries at least one known section
// as a JSON object. A null section does not count.
func hasBrandSection(obj map[string]interface{}) bool {
	for _, key := range brandSections {
		if _, ok := obj[key].(map[string]interface{}); ok {
			return true
		}
	}

	return false
}

// parseDocument decodes exactly one JSON value. Numbers are kept as
// json.Number so that integers survive re-encoding.
func parseDocument(data []byte) (interface{}, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("document is empty")
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("invalid JSON: unexpected data after the document")
	}

	return doc, nil
}

func decodePartial(obj map[string]interface{}) (brand.Partial, error) {
	data, err := json.Marshal(obj)
	if err != nil {
		return brand.Partial{}, err
	}

	var p brand.Partial
	if err := json.Unmarshal(data, &p); err != nil {
		return brand.Partial{}, err
	}

	return p, nil
}
