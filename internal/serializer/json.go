// Package serializer renders a BrandDNA into its derived artifacts: the
// canonical JSON document, CSS custom properties, a Tailwind theme, a
// TypeScript module, SCSS variables and a shareable link token.
//
// Every renderer is a pure function of its input. Renderers never validate;
// callers that need guarantees run the validator first.
package serializer

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/conneroisu/branddna/internal/brand"
)

// ExportVersion is the document version stamped into exported files.
const ExportVersion = brand.CurrentVersion

// Export stamp keys. They appear only in exported files and are stripped
// on import.
const (
	KeyExportedAt    = "exportedAt"
	KeyExportVersion = "exportVersion"
)

// StampKeys lists the keys added by ToJSON.
var StampKeys = []string{KeyExportedAt, KeyExportVersion}

type exportDocument struct {
	brand.BrandDNA
	ExportedAt    string `json:"exportedAt"`
	ExportVersion string `json:"exportVersion"`
}

// ToJSON renders the canonical JSON document stamped with the current time.
func ToJSON(b brand.BrandDNA, pretty bool) ([]byte, error) {
	return ToJSONAt(b, pretty, time.Now())
}

// ToJSONAt renders the canonical JSON document stamped with at.
func ToJSONAt(b brand.BrandDNA, pretty bool, at time.Time) ([]byte, error) {
	doc := exportDocument{
		BrandDNA:      b,
		ExportedAt:    at.UTC().Format(time.RFC3339),
		ExportVersion: ExportVersion,
	}

	var (
		data []byte
		err  error
	)
	if pretty {
		data, err = json.MarshalIndent(doc, "", "  ")
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		return nil, fmt.Errorf("encode brand: %w", err)
	}

	return data, nil
}

// ToCompactJSON renders b without export stamps or indentation.
func ToCompactJSON(b brand.BrandDNA) ([]byte, error) {
	data, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("encode brand: %w", err)
	}

	return data, nil
}

// FromJSON decodes a document produced by ToJSON. Export stamps are
// ignored. FromJSON performs no validation, sanitizing or default filling;
// untrusted input goes through the importer instead.
func FromJSON(data []byte) (brand.BrandDNA, error) {
	var b brand.BrandDNA
	if err := json.Unmarshal(data, &b); err != nil {
		return brand.BrandDNA{}, fmt.Errorf("decode brand: %w", err)
	}

	return b, nil
}
