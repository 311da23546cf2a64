package serializer

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/conneroisu/branddna/internal/brand"
)

// Constant names emitted by ToTypedModule.
const (
	ConstColors     = "brandColors"
	ConstTypography = "brandTypography"
	ConstSpacing    = "brandSpacing"
	ConstMetadata   = "brandMetadata"
)

// ToTypedModule renders the brand as a TypeScript module with four
// readonly constants and type aliases derived from them.
func ToTypedModule(b brand.BrandDNA) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "// Brand tokens for %s. Generated by branddna; do not edit.\n\n", commentSafe(b.Metadata.Name))

	writeConst(&sb, ConstColors, jsObject{
		{"light", paletteObject(b.Colors.Light)},
		{"dark", paletteObject(b.Colors.Dark)},
		{"chart", stringArray(b.Colors.Chart)},
	})
	writeConst(&sb, ConstTypography, typographyObject(b.Typography))
	writeConst(&sb, ConstSpacing, jsObject{
		{"radius", tokenObject(b.Spacing.Radius, brand.OrderedKeys(b.Spacing.Radius, brand.RadiusTokens))},
		{"spacing", tokenObject(b.Spacing.Spacing, brand.OrderedKeys(b.Spacing.Spacing, brand.SpacingTokens))},
	})
	writeConst(&sb, ConstMetadata, metadataObject(b.Metadata))

	for _, name := range []string{ConstColors, ConstTypography, ConstSpacing, ConstMetadata} {
		fmt.Fprintf(&sb, "export type %s = typeof %s;\n", TypeName(name), name)
	}
	fmt.Fprintf(&sb, "export type %s = keyof typeof %s.light;\n", TypeName("color slot"), ConstColors)
	fmt.Fprintf(&sb, "export type %s = keyof typeof %s.fonts;\n", TypeName("font role"), ConstTypography)
	fmt.Fprintf(&sb, "export type %s = keyof typeof %s.scale;\n", TypeName("scale token"), ConstTypography)
	fmt.Fprintf(&sb, "export type %s = keyof typeof %s.radius;\n", TypeName("radius token"), ConstSpacing)
	fmt.Fprintf(&sb, "export type %s = keyof typeof %s.spacing;\n", TypeName("spacing token"), ConstSpacing)

	return sb.String()
}

func writeConst(sb *strings.Builder, name string, value jsObject) {
	fmt.Fprintf(sb, "export const %s = %s as const;\n\n", name, renderLiteral(value))
}

// TypeName converts a camelCase or space separated identifier into a
// PascalCase type name.
func TypeName(name string) string {
	title := cases.Title(language.English)
	var sb strings.Builder
	for _, word := range splitWords(name) {
		sb.WriteString(title.String(word))
	}

	return sb.String()
}

func splitWords(s string) []string {
	var words []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}
	for _, r := range s {
		switch {
		case r == ' ' || r == '_' || r == '-':
			flush()
		case unicode.IsUpper(r):
			flush()
			cur = append(cur, r)
		default:
			cur = append(cur, r)
		}
	}
	flush()

	return words
}

func paletteObject(p brand.ColorPalette) jsObject {
	obj := make(jsObject, 0, len(brand.Slots))
	for _, s := range brand.Slots {
		v, _ := p.Get(s)
		obj = append(obj, jsField{string(s), jsString(v)})
	}

	return obj
}

func typographyObject(t brand.Typography) jsObject {
	fonts := make(jsObject, 0, len(brand.FontRoles))
	for _, role := range brand.FontRoles {
		f, _ := t.Font(role)
		weights := make(jsArray, 0, len(f.Weights))
		for _, w := range f.Weights {
			weights = append(weights, jsNumber(w))
		}
		fonts = append(fonts, jsField{string(role), jsObject{
			{"name", jsString(f.Name)},
			{"stack", jsString(FontStack(f))},
			{"weights", weights},
		}})
	}

	return jsObject{
		{"fonts", fonts},
		{"scale", tokenObject(t.Scale, brand.OrderedKeys(t.Scale, brand.ScaleTokens))},
		{"lineHeight", jsObject{
			{"tight", jsString(t.LineHeight.Tight)},
			{"normal", jsString(t.LineHeight.Normal)},
			{"relaxed", jsString(t.LineHeight.Relaxed)},
		}},
		{"letterSpacing", jsObject{
			{"tight", jsString(t.LetterSpacing.Tight)},
			{"normal", jsString(t.LetterSpacing.Normal)},
			{"wide", jsString(t.LetterSpacing.Wide)},
		}},
	}
}

func metadataObject(m brand.Metadata) jsObject {
	obj := jsObject{{"name", jsString(m.Name)}}
	for _, f := range []jsField{
		{"tagline", jsString(m.Tagline)},
		{"description", jsString(m.Description)},
		{"industry", jsString(m.Industry)},
	} {
		if f.value.(jsString) != "" {
			obj = append(obj, f)
		}
	}

	return append(obj, jsField{"version", jsString(m.Version)})
}
