package serializer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/conneroisu/branddna/internal/brand"
)

// buildConfigSlots are exposed under colors.brand.
var buildConfigSlots = []brand.Slot{
	brand.SlotPrimary,
	brand.SlotSecondary,
	brand.SlotAccent,
	brand.SlotDestructive,
	brand.SlotMuted,
}

// hslValue wraps a color triple for use outside a custom property.
func hslValue(v string) string {
	if v == "" {
		return ""
	}

	return "hsl(" + v + ")"
}

// ToBuildConfig renders a Tailwind theme extension as a CommonJS module.
func ToBuildConfig(b brand.BrandDNA) string {
	brandColors := make(jsObject, 0, len(buildConfigSlots))
	for _, s := range buildConfigSlots {
		v, _ := b.Colors.Light.Get(s)
		brandColors = append(brandColors, jsField{string(s), jsString(hslValue(v))})
	}

	chart := make(jsObject, 0, len(b.Colors.Chart))
	for i, c := range b.Colors.Chart {
		chart = append(chart, jsField{strconv.Itoa(i + 1), jsString(hslValue(c))})
	}

	fonts := make(jsObject, 0, len(brand.FontRoles))
	for _, role := range brand.FontRoles {
		font, _ := b.Typography.Font(role)
		fonts = append(fonts, jsField{string(role), stringArray(font.Stack())})
	}

	config := jsObject{
		{"colors", jsObject{
			{"brand", brandColors},
			{"chart", chart},
		}},
		{"fontFamily", fonts},
		{"fontSize", tokenObject(b.Typography.Scale, brand.OrderedKeys(b.Typography.Scale, brand.ScaleTokens))},
		{"borderRadius", tokenObject(b.Spacing.Radius, brand.OrderedKeys(b.Spacing.Radius, brand.RadiusTokens))},
		{"spacing", tokenObject(b.Spacing.Spacing, brand.OrderedKeys(b.Spacing.Spacing, brand.SpacingTokens))},
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "// Tailwind theme for %s. Generated by branddna; do not edit.\n", commentSafe(b.Metadata.Name))
	sb.WriteString("/** @type {import('tailwindcss').Config['theme']} */\n")
	sb.WriteString("module.exports = ")
	sb.WriteString(renderLiteral(config))
	sb.WriteString(";\n")

	return sb.String()
}

// commentSafe flattens s for use inside a line comment.
func commentSafe(s string) string {
	s = strings.NewReplacer("\n", " ", "\r", " ", "*/", "* /").Replace(s)

	return strings.TrimSpace(s)
}
