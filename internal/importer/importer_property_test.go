//go:build property
// +build property

package importer

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/conneroisu/branddna/internal/brand"
	"github.com/conneroisu/branddna/internal/errors"
	"github.com/conneroisu/branddna/internal/serializer"
)

// TestImporterProperties checks that imports are total and that exported
// brands come back unchanged.
func TestImporterProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)
	imp := newImporter()

	// Property: any input yields a result, and failures carry errors
	properties.Property("import is total", prop.ForAll(
		func(text string) bool {
			res := imp.ImportJSON(text)
			if res.Success {
				return res.Brand != nil && len(res.Errors) == 0
			}

			return res.Brand == nil && len(res.Errors) > 0
		},
		gen.AnyString(),
	))

	// Property: a named brand survives export and import
	properties.Property("export then import keeps the brand", prop.ForAll(
		func(name string) bool {
			b := brand.New(name, now)
			data, err := serializer.ToJSON(b, false)
			if err != nil {
				return false
			}
			res := imp.ImportJSON(string(data))

			return res.Success && res.Brand.Metadata.Name == name &&
				res.Brand.Colors.Light == b.Colors.Light
		},
		gen.Identifier(),
	))

	// Property: any corrupted link is rejected with exactly one error
	properties.Property("garbage links are rejected", prop.ForAll(
		func(token string) bool {
			res := imp.ImportShareableLink("!" + token)

			return !res.Success && len(res.Errors) == 1 && res.Errors[0].Code == errors.CodeInvalidLink
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
