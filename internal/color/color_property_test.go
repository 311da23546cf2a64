//go:build property
// +build property

package color

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestColorProperties checks the algebraic properties of the color math.
func TestColorProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	// Property: formatting then parsing is stable to one decimal place
	properties.Property("format/parse round trip", prop.ForAll(
		func(h, s, l float64) bool {
			parsed, ok := ParseHSL(FormatHSL(h, s, l))
			if !ok {
				return false
			}

			return math.Abs(parsed.H-h) <= 0.051 &&
				math.Abs(parsed.S-s) <= 0.051 &&
				math.Abs(parsed.L-l) <= 0.051
		},
		gen.Float64Range(0, 360),
		gen.Float64Range(0, 100),
		gen.Float64Range(0, 100),
	))

	// Property: contrast ratio lies within [1, 21] and is symmetric
	properties.Property("contrast ratio bounds", prop.ForAll(
		func(r1, g1, b1, r2, g2, b2 int) bool {
			a := RGB{r1, g1, b1}
			b := RGB{r2, g2, b2}
			ab := ContrastRatioRGB(a, b)
			ba := ContrastRatioRGB(b, a)

			return ab >= 1 && ab <= 21+1e-9 && math.Abs(ab-ba) < 1e-12
		},
		gen.IntRange(0, 255), gen.IntRange(0, 255), gen.IntRange(0, 255),
		gen.IntRange(0, 255), gen.IntRange(0, 255), gen.IntRange(0, 255),
	))

	// Property: every color has contrast 1 with itself
	properties.Property("self contrast", prop.ForAll(
		func(r, g, b int) bool {
			c := RGB{r, g, b}

			return math.Abs(ContrastRatioRGB(c, c)-1) < 1e-12
		},
		gen.IntRange(0, 255), gen.IntRange(0, 255), gen.IntRange(0, 255),
	))

	// Property: RGB survives a trip through HSL
	properties.Property("rgb/hsl round trip", prop.ForAll(
		func(r, g, b int) bool {
			c := RGB{r, g, b}

			return HSLToRGB(RGBToHSL(c)) == c
		},
		gen.IntRange(0, 255), gen.IntRange(0, 255), gen.IntRange(0, 255),
	))

	properties.TestingRun(t)
}
