//go:build property
// +build property

package serializer

import (
	"reflect"
	"testing"
	"unicode"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/conneroisu/branddna/internal/brand"
	"github.com/conneroisu/branddna/internal/color"
)

func genBrand() gopter.Gen {
	return gopter.CombineGens(
		gen.UnicodeString(unicode.Latin),
		gen.AlphaString(),
		gen.Float64Range(0, 360),
		gen.Float64Range(0, 100),
		gen.Float64Range(0, 100),
		gen.SliceOfN(3, gen.AlphaString()),
	).Map(func(values []interface{}) brand.BrandDNA {
		b := brand.New(values[0].(string), now)
		b.Metadata.Tagline = values[1].(string)
		b.Colors.Light.Primary = color.FormatHSL(values[2].(float64), values[3].(float64), values[4].(float64))
		b.Strategy = &brand.Strategy{
			Mission:     values[1].(string),
			ToneOfVoice: brand.ToneOfVoice{Traits: values[5].([]string)},
		}

		return b
	})
}

// TestSerializerProperties checks that the reversible encodings round-trip.
func TestSerializerProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	// Property: FromJSON(ToJSON(b)) deep-equals b
	properties.Property("json round trip", prop.ForAll(
		func(b brand.BrandDNA) bool {
			data, err := ToJSON(b, false)
			if err != nil {
				return false
			}
			got, err := FromJSON(data)

			return err == nil && reflect.DeepEqual(b, got)
		},
		genBrand(),
	))

	// Property: a shareable link decodes to the same brand
	properties.Property("link round trip", prop.ForAll(
		func(b brand.BrandDNA) bool {
			token, err := ToShareableLink(b)
			if err != nil {
				return false
			}
			got, err := FromShareableLink(token)

			return err == nil && reflect.DeepEqual(b, got)
		},
		genBrand(),
	))

	// Property: a truncated token fails to decode
	properties.Property("truncated link", prop.ForAll(
		func(b brand.BrandDNA, cut int) bool {
			token, err := ToShareableLink(b)
			if err != nil {
				return false
			}
			if cut >= len(token) {
				cut = len(token) - 1
			}
			_, err = DecodeShareableLink(token[:cut])

			return err != nil
		},
		genBrand(),
		gen.IntRange(1, 64),
	))

	// Property: CSS rendering is deterministic
	properties.Property("css deterministic", prop.ForAll(
		func(b brand.BrandDNA) bool {
			return ToCSS(b, CSSOptions{}) == ToCSS(b, CSSOptions{})
		},
		genBrand(),
	))

	properties.TestingRun(t)
}
