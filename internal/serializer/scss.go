package serializer

import (
	"fmt"
	"strings"

	"github.com/conneroisu/branddna/internal/brand"
)

// ToSCSS renders SCSS variables for the light palette, the dark palette,
// the chart, fonts, the type scale, radius and spacing, followed by a
// theme-colors map for the brand slots.
func ToSCSS(b brand.BrandDNA) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "// Brand variables for %s. Generated by branddna; do not edit.\n\n", commentSafe(b.Metadata.Name))

	for _, s := range brand.Slots {
		v, _ := b.Colors.Light.Get(s)
		scssVar(&sb, string(s), hslValue(v))
	}
	sb.WriteString("\n")
	for _, s := range brand.Slots {
		v, _ := b.Colors.Dark.Get(s)
		scssVar(&sb, "dark-"+string(s), hslValue(v))
	}
	sb.WriteString("\n")
	for i, c := range b.Colors.Chart {
		scssVar(&sb, fmt.Sprintf("chart-%d", i+1), hslValue(c))
	}
	sb.WriteString("\n")
	for _, role := range brand.FontRoles {
		f, _ := b.Typography.Font(role)
		scssVar(&sb, "font-"+string(role), FontStack(f))
	}
	for _, k := range brand.OrderedKeys(b.Typography.Scale, brand.ScaleTokens) {
		scssVar(&sb, "font-size-"+k, b.Typography.Scale[k])
	}
	sb.WriteString("\n")
	for _, k := range brand.OrderedKeys(b.Spacing.Radius, brand.RadiusTokens) {
		scssVar(&sb, "radius-"+k, b.Spacing.Radius[k])
	}
	for _, k := range brand.OrderedKeys(b.Spacing.Spacing, brand.SpacingTokens) {
		scssVar(&sb, "spacing-"+k, b.Spacing.Spacing[k])
	}

	sb.WriteString("\n$brand-theme-colors: (\n")
	for _, s := range buildConfigSlots {
		fmt.Fprintf(&sb, "  \"%s\": $brand-%s,\n", s, s)
	}
	sb.WriteString(");\n")

	return sb.String()
}

func scssVar(sb *strings.Builder, name, value string) {
	if value == "" {
		value = "null"
	}
	fmt.Fprintf(sb, "$brand-%s: %s !default;\n", name, value)
}
