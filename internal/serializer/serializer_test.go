package serializer

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/branddna/internal/brand"
	"github.com/conneroisu/branddna/internal/errors"
)

var now = time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)

func richBrand() brand.BrandDNA {
	b := brand.New("Acme", now)
	b.Metadata.Tagline = "Build 'fast'"
	b.Strategy = &brand.Strategy{
		Purpose: "Help teams ship",
		Vision:  "Every product on brand",
		Mission: "Make brand systems portable",
		Values: []brand.BrandValue{
			{ID: "v1", Name: "Trust", Description: "We keep promises", Icon: "🤝"},
		},
		ToneOfVoice: brand.ToneOfVoice{Traits: []string{"warm", "direct"}},
	}
	b.Assets.PrimaryLogo = &brand.Logo{
		ID:         "logo-1",
		Name:       "Wordmark",
		LightURL:   "https://cdn.example.com/light.svg",
		UploadedAt: now,
	}

	return b
}

func TestToJSONStampsExport(t *testing.T) {
	data, err := ToJSONAt(richBrand(), true, now)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "2025-04-01T12:00:00Z", doc[KeyExportedAt])
	assert.Equal(t, ExportVersion, doc[KeyExportVersion])
	assert.Contains(t, doc, "metadata")
	assert.Contains(t, string(data), "\n  \"metadata\"")

	compact, err := ToJSONAt(richBrand(), false, now)
	require.NoError(t, err)
	assert.NotContains(t, string(compact), "\n")
}

func TestJSONRoundTrip(t *testing.T) {
	for name, b := range map[string]brand.BrandDNA{
		"default": brand.Default(),
		"new":     brand.New("Globex", now),
		"rich":    richBrand(),
	} {
		t.Run(name, func(t *testing.T) {
			data, err := ToJSON(b, true)
			require.NoError(t, err)

			got, err := FromJSON(data)
			require.NoError(t, err)
			assert.Equal(t, b, got)
		})
	}
}

func TestJSONRoundTripWallClock(t *testing.T) {
	b := brand.New("Now", time.Now())

	data, err := ToJSON(b, false)
	require.NoError(t, err)
	got, err := FromJSON(data)
	require.NoError(t, err)
	assert.Equal(t, b, got)
}

func TestFromJSONRejectsMalformed(t *testing.T) {
	_, err := FromJSON([]byte(`{"metadata":`))
	assert.Error(t, err)

	_, err = FromJSON([]byte(`{"colors":{"chart":"nope"}}`))
	assert.Error(t, err)
}

func TestShareableLinkRoundTrip(t *testing.T) {
	b := richBrand()

	token, err := ToShareableLink(b)
	require.NoError(t, err)
	assert.NotContains(t, token, "{")

	got, err := FromShareableLink(token)
	require.NoError(t, err)
	assert.Equal(t, b, got)

	data, err := DecodeShareableLink(token)
	require.NoError(t, err)
	assert.NotContains(t, string(data), KeyExportedAt)
}

func TestDecodeShareableLinkAcceptsUnpaddedTokens(t *testing.T) {
	token, err := ToShareableLink(brand.New("Initech", now))
	require.NoError(t, err)

	_, err = DecodeShareableLink(strings.TrimRight(token, "="))
	assert.NoError(t, err)
}

func TestDecodeShareableLinkFailures(t *testing.T) {
	tests := map[string]string{
		"empty":          "",
		"not base64":     "%%%not-base64%%%",
		"not json":       base64.StdEncoding.EncodeToString([]byte("hello")),
		"json array":     base64.StdEncoding.EncodeToString([]byte("%5B1%2C2%5D")),
		"json null":      base64.StdEncoding.EncodeToString([]byte("null")),
		"bad escape":     base64.StdEncoding.EncodeToString([]byte("%zz")),
		"truncated json": base64.StdEncoding.EncodeToString([]byte("%7B%22metadata%22")),
	}

	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeShareableLink(token)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidLink)

			_, err = FromShareableLink(token)
			assert.ErrorIs(t, err, ErrInvalidLink)
		})
	}
}

func TestToCSSBlocks(t *testing.T) {
	b := brand.New("Acme", now)
	css := ToCSS(b, CSSOptions{})

	blocks := strings.Split(strings.TrimSpace(css), "\n\n")
	require.Len(t, blocks, 2)

	light, dark := blocks[0], blocks[1]
	assert.True(t, strings.HasPrefix(light, ".brand-preview-scope {\n"))
	assert.True(t, strings.HasPrefix(dark, ".brand-preview-scope.dark {\n"))
	assert.True(t, strings.HasSuffix(light, "}"))
	assert.True(t, strings.HasSuffix(dark, "}"))

	assert.Contains(t, light, "  --brand-primary: "+b.Colors.Light.Primary+";\n")
	assert.Contains(t, light, "  --primary: "+b.Colors.Light.Primary+";\n")
	assert.Contains(t, light, "  --brand-chart-5: "+b.Colors.Chart[4]+";\n")
	assert.Contains(t, light, `  --brand-font-heading: "Inter", system-ui, sans-serif;`)
	assert.Contains(t, light, `  --brand-font-mono: "JetBrains Mono", ui-monospace, monospace;`)
	assert.Contains(t, light, "  --brand-font-size-2xl: 1.5rem;\n")
	assert.Contains(t, light, "  --brand-line-height-relaxed: 1.75;\n")
	assert.Contains(t, light, "  --brand-letter-spacing-wide: 0.025em;\n")
	assert.Contains(t, light, "  --brand-radius-full: 9999px;\n")
	assert.Contains(t, light, "  --brand-spacing-md: 1rem;\n")
	assert.Contains(t, light, "  --radius: 0.5rem;\n")

	assert.Contains(t, dark, "  --brand-background: "+b.Colors.Dark.Background+";\n")
	assert.Contains(t, dark, "  --background: "+b.Colors.Dark.Background+";\n")
	assert.NotContains(t, dark, "font")
	assert.NotContains(t, dark, "radius")
	assert.NotContains(t, dark, "spacing")
	assert.NotContains(t, dark, "chart")
}

func TestToCSSOneDeclarationPerLine(t *testing.T) {
	for _, line := range strings.Split(ToCSS(richBrand(), CSSOptions{}), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasSuffix(line, "{") || line == "}" {
			continue
		}
		assert.Regexp(t, `^--[a-z0-9-]+: [^;]+;$`, line)
	}
}

func TestToCSSTokenOrder(t *testing.T) {
	css := ToCSS(brand.New("Acme", now), CSSOptions{})
	xs := strings.Index(css, "--brand-font-size-xs")
	base := strings.Index(css, "--brand-font-size-base")
	nine := strings.Index(css, "--brand-font-size-9xl")
	assert.True(t, xs < base && base < nine)

	none := strings.Index(css, "--brand-radius-none")
	full := strings.Index(css, "--brand-radius-full")
	assert.True(t, none < full)
}

func TestToCSSIsDeterministic(t *testing.T) {
	b := richBrand()
	b.Spacing.Spacing["gutter"] = "1.25rem"
	b.Spacing.Spacing["aside"] = "18rem"

	first := ToCSS(b, CSSOptions{})
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ToCSS(b, CSSOptions{}))
	}
	assert.Less(t, strings.Index(first, "--brand-spacing-aside"), strings.Index(first, "--brand-spacing-gutter"))
}

func TestToCSSOptions(t *testing.T) {
	css := ToCSS(brand.New("Acme", now), CSSOptions{
		Selector:    ":root",
		Prefix:      "acme",
		DarkClass:   "theme-dark",
		ImportFonts: true,
	})

	assert.True(t, strings.HasPrefix(css, `@import url("https://fonts.googleapis.com/css2?family=Inter`))
	assert.Contains(t, css, ":root {\n")
	assert.Contains(t, css, ":root.theme-dark {\n")
	assert.Contains(t, css, "--acme-primary:")
	assert.NotContains(t, css, "--brand-")
	assert.Equal(t, 3, strings.Count(css, "@import"), "one import per distinct font url")
}

func TestFontStack(t *testing.T) {
	tests := []struct {
		name string
		font brand.FontFamily
		want string
	}{
		{name: "generic fallbacks unquoted", font: brand.FontFamily{Name: "Inter", Fallback: []string{"system-ui", "sans-serif"}}, want: `"Inter", system-ui, sans-serif`},
		{name: "quoted fallback", font: brand.FontFamily{Name: "Lora", Fallback: []string{"Georgia", "serif"}}, want: `"Lora", "Georgia", serif`},
		{name: "escapes quotes", font: brand.FontFamily{Name: `My "Font"`}, want: `"My \"Font\""`},
		{name: "skips blanks", font: brand.FontFamily{Name: "Inter", Fallback: []string{" ", "monospace"}}, want: `"Inter", monospace`},
		{name: "empty", font: brand.FontFamily{}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FontStack(tt.font))
		})
	}
}

func TestRadiusAlias(t *testing.T) {
	assert.Equal(t, "0.5rem", RadiusAlias(brand.DefaultSpacing()))
	assert.Equal(t, "4px", RadiusAlias(brand.Spacing{Radius: map[string]string{"md": "4px"}}))
	assert.Empty(t, RadiusAlias(brand.Spacing{}))
}

func TestToBuildConfig(t *testing.T) {
	b := brand.New("Acme", now)
	out := ToBuildConfig(b)

	assert.True(t, strings.HasSuffix(out, "};\n"))
	assert.Equal(t, 1, strings.Count(out, "module.exports = {"))
	assert.Contains(t, out, "  colors: {\n    brand: {\n      primary: 'hsl("+b.Colors.Light.Primary+")',")
	assert.Contains(t, out, "      muted: 'hsl("+b.Colors.Light.Muted+")',")
	assert.Contains(t, out, "    chart: {\n      '1': 'hsl("+b.Colors.Chart[0]+")',")
	assert.Contains(t, out, "      '5': 'hsl("+b.Colors.Chart[4]+")',")
	assert.Contains(t, out, "    heading: ['Inter', 'system-ui', 'sans-serif'],")
	assert.Contains(t, out, "    mono: ['JetBrains Mono', 'ui-monospace', 'monospace'],")
	assert.Contains(t, out, "  fontSize: {\n    xs: '0.75rem',")
	assert.Contains(t, out, "    '2xl': '1.5rem',")
	assert.Contains(t, out, "  borderRadius: {\n    none: '0',")
	assert.Contains(t, out, "  spacing: {\n    xs: '0.25rem',")
	assert.NotContains(t, out, "background", "only brand slots are exposed")
}

func TestToBuildConfigEscapesStrings(t *testing.T) {
	b := brand.New("Acme */ evil", now)
	b.Typography.Heading.Name = `O'Neil </script>`

	out := ToBuildConfig(b)
	assert.Contains(t, out, `'O\'Neil <\/script>'`)
	assert.NotContains(t, out, "*/ evil")
}

func TestToTypedModule(t *testing.T) {
	b := richBrand()
	out := ToTypedModule(b)

	for _, name := range []string{ConstColors, ConstTypography, ConstSpacing, ConstMetadata} {
		assert.Contains(t, out, "export const "+name+" = {")
	}
	assert.Equal(t, 4, strings.Count(out, "} as const;"))
	assert.Contains(t, out, "export type BrandColors = typeof brandColors;")
	assert.Contains(t, out, "export type BrandTypography = typeof brandTypography;")
	assert.Contains(t, out, "export type ColorSlot = keyof typeof brandColors.light;")
	assert.Contains(t, out, "export type RadiusToken = keyof typeof brandSpacing.radius;")
	assert.Contains(t, out, "    primary: '"+b.Colors.Light.Primary+"',")
	assert.Contains(t, out, "      weights: [600, 700, 800],")
	assert.Contains(t, out, `      stack: '"Inter", system-ui, sans-serif',`)
	assert.Contains(t, out, "  tagline: 'Build \\'fast\\'',")
	assert.NotContains(t, out, "industry:")
	assert.Contains(t, out, "  version: '1.0.0',")
}

func TestTypeName(t *testing.T) {
	tests := map[string]string{
		"brandColors":   "BrandColors",
		"color slot":    "ColorSlot",
		"spacing_token": "SpacingToken",
		"font-role":     "FontRole",
		"x":             "X",
		"":              "",
	}
	for in, want := range tests {
		assert.Equal(t, want, TypeName(in), "input %q", in)
	}
}

func TestToSCSS(t *testing.T) {
	b := brand.New("Acme", now)
	out := ToSCSS(b)

	assert.Contains(t, out, "$brand-primary: hsl("+b.Colors.Light.Primary+") !default;\n")
	assert.Contains(t, out, "$brand-dark-background: hsl("+b.Colors.Dark.Background+") !default;\n")
	assert.Contains(t, out, "$brand-chart-1: hsl("+b.Colors.Chart[0]+") !default;\n")
	assert.Contains(t, out, `$brand-font-body: "Inter", system-ui, sans-serif !default;`)
	assert.Contains(t, out, "$brand-radius-md: 0.375rem !default;\n")
	assert.Contains(t, out, "$brand-spacing-2xl: 3rem !default;\n")
	assert.Contains(t, out, "  \"primary\": $brand-primary,\n")
	assert.True(t, strings.HasSuffix(out, ");\n"))

	b.Colors.Light.Ring = ""
	assert.Contains(t, ToSCSS(b), "$brand-ring: null !default;")
}

func TestRegistryBuiltins(t *testing.T) {
	r := DefaultRegistry(DefaultCSSOptions())

	assert.Equal(t, []string{"css", "json", "link", "scss", "tailwind", "ts"}, r.Names())

	b := richBrand()
	for _, f := range r.List() {
		t.Run(f.Name, func(t *testing.T) {
			assert.NotEmpty(t, f.FileName)
			assert.True(t, strings.HasSuffix(f.FileName, f.Extension))
			assert.NotEmpty(t, f.MediaType)

			data, err := r.Render(f.Name, b)
			require.NoError(t, err)
			assert.NotEmpty(t, data)
		})
	}

	css, err := r.Render(FormatCSS, b)
	require.NoError(t, err)
	assert.Equal(t, ToCSS(b, DefaultCSSOptions()), string(css))
}

func TestRegistryRegister(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)

	render := func(brand.BrandDNA) ([]byte, error) { return []byte("x"), nil }

	require.NoError(t, r.Register(Format{Name: "txt", Extension: ".txt", Render: render}))
	f, err := r.Get("txt")
	require.NoError(t, err)
	assert.Equal(t, "brand.txt", f.FileName)

	assert.Error(t, r.Register(Format{Name: "txt", Render: render}), "duplicate")
	assert.Error(t, r.Register(Format{Name: "", Render: render}), "empty name")
	assert.Error(t, r.Register(Format{Name: "nil"}), "no renderer")

	_, err = r.Get("pdf")
	require.Error(t, err)
	var be *errors.BrandError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, errors.ErrCodeFormatNotFound, be.Code)

	_, err = r.Render("pdf", brand.Default())
	assert.Error(t, err)
}

func TestNewRegistryRejectsDuplicates(t *testing.T) {
	formats := BuiltinFormats(DefaultCSSOptions())
	_, err := NewRegistry(append(formats, formats[0])...)
	assert.Error(t, err)
}
