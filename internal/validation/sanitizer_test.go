package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/branddna/internal/brand"
)

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain text", input: "Acme Corp", want: "Acme Corp"},
		{name: "trims whitespace", input: "  Acme  ", want: "Acme"},
		{name: "script block", input: "<script>alert(1)</script>Acme", want: "Acme"},
		{name: "script block uppercase", input: "<SCRIPT type='x'>alert(1)</SCRIPT>Acme", want: "Acme"},
		{name: "multi-line script", input: "a<script>\nalert(1)\n</script>b", want: "ab"},
		{name: "non-greedy", input: "<script>x</script>keep<script>y</script>", want: "keep"},
		{name: "iframe block", input: "Hi<iframe src='https://evil'></iframe>!", want: "Hi!"},
		{name: "stray opening tag", input: "<script src=x>Acme", want: "Acme"},
		{name: "nested reassembly", input: "<scr<script>x</script>ipt>alert(1)</script>Acme", want: "alert(1)Acme"},
		{name: "javascript scheme", input: "javascript:alert(1)", want: "alert(1)"},
		{name: "javascript scheme spaced", input: "JavaScript :alert(1)", want: "alert(1)"},
		{name: "event handler", input: `<img src=x onerror="alert(1)">`, want: `<img src=x "alert(1)">`},
		{name: "event handler spacing", input: "x ONLOAD = y", want: "x  y"},
		{name: "control characters", input: "Ac\x00m\x07e\ttab", want: "Acme\ttab"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeText(tt.input))
		})
	}
}

func TestSanitizeTextIsIdempotent(t *testing.T) {
	for _, s := range []string{
		"<script>alert(1)</script>Acme",
		"javajavascript:script:alert(1)",
		"<scr<script></script>ipt>",
		"plain",
	} {
		once := SanitizeText(s)
		assert.Equal(t, once, SanitizeText(once), "input %q", s)
		assert.NotContains(t, once, "<script")
		assert.NotContains(t, once, "javascript:")
	}
}

func TestSanitizeAssetURL(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"https://cdn.example.com/logo.svg", "https://cdn.example.com/logo.svg", true},
		{"  https://cdn.example.com/logo.svg  ", "https://cdn.example.com/logo.svg", true},
		{"HTTPS://cdn.example.com/a.png", "HTTPS://cdn.example.com/a.png", true},
		{"data:image/png;base64,iVBORw0KGgo=", "data:image/png;base64,iVBORw0KGgo=", true},
		{"DATA:IMAGE/svg+xml;base64,PHN2Zz4=", "DATA:IMAGE/svg+xml;base64,PHN2Zz4=", true},
		{"http://cdn.example.com/logo.svg", "", false},
		{"javascript:alert(1)", "", false},
		{"data:text/html,<script>alert(1)</script>", "", false},
		{"ftp://example.com/logo.png", "", false},
		{"//cdn.example.com/logo.png", "", false},
		{"https://", "", false},
		{"https://cdn.example.com/a b.png", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := SanitizeAssetURL(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSanitizeStylesheetURL(t *testing.T) {
	u, ok := SanitizeStylesheetURL("https://fonts.googleapis.com/css2?family=Inter:wght@400;700&display=swap")
	assert.True(t, ok)
	assert.Contains(t, u, "family=Inter")

	_, ok = SanitizeStylesheetURL("data:image/png;base64,AAAA")
	assert.False(t, ok)
	_, ok = SanitizeStylesheetURL(`https://fonts.example.com/a.css");}body{x:url("`)
	assert.False(t, ok)
}

func TestSanitizeBrandKeepsCleanBrand(t *testing.T) {
	b := brand.New("Acme", now).AddValue(brand.BrandValue{ID: "v1", Name: "Trust", Icon: "🤝"}, now)
	assert.Equal(t, b, SanitizeBrand(b))
}

func TestSanitizeBrandScrubsEverything(t *testing.T) {
	b := brand.New("<script>alert(1)</script>Acme", now)
	b.Metadata.Tagline = `Fast <iframe src="x"></iframe>and safe`
	b.Typography.Heading.Name = "Inter; } body { display:none"
	b.Typography.Heading.URL = "http://fonts.example.com/inter.css"
	b.Typography.Scale["evil} body{"] = "1rem"
	b.Typography.Scale["base"] = "1rem; color: red"
	b.Spacing.Radius["lg"] = "0.5rem}</style><script>"
	b.Strategy = &brand.Strategy{
		Mission:     "javascript:alert(1)",
		Values:      []brand.BrandValue{{ID: "1", Name: `<b onclick="x">Bold</b>`}},
		ToneOfVoice: brand.ToneOfVoice{Traits: []string{"<script>x</script>warm"}},
	}
	b.Assets.PrimaryLogo = &brand.Logo{ID: "l", Name: "Mark", LightURL: "javascript:alert(1)", DarkURL: "https://cdn.example.com/d.svg"}
	b.Assets.Additional = []brand.Asset{
		{ID: "a", Name: "ok", URL: "https://cdn.example.com/a.png"},
		{ID: "b", Name: "bad", URL: "http://cdn.example.com/b.png"},
		{ID: "c", Name: "inline", URL: "data:image/png;base64,AAAA"},
	}
	orig := b.Clone()

	out := SanitizeBrand(b)

	assert.Equal(t, "Acme", out.Metadata.Name)
	assert.Equal(t, "Fast and safe", out.Metadata.Tagline)
	assert.Equal(t, "Inter  body  display:none", out.Typography.Heading.Name)
	assert.Empty(t, out.Typography.Heading.URL)
	assert.NotContains(t, out.Typography.Scale, "evil} body{")
	assert.Equal(t, "1rem color: red", out.Typography.Scale["base"])
	assert.Equal(t, "0.5rem/stylescript", out.Spacing.Radius["lg"])
	assert.Equal(t, "alert(1)", out.Strategy.Mission)
	assert.Equal(t, `<b "x">Bold</b>`, out.Strategy.Values[0].Name)
	assert.Equal(t, []string{"warm"}, out.Strategy.ToneOfVoice.Traits)

	require.NotNil(t, out.Assets.PrimaryLogo)
	assert.Empty(t, out.Assets.PrimaryLogo.LightURL)
	assert.Equal(t, "https://cdn.example.com/d.svg", out.Assets.PrimaryLogo.DarkURL)

	require.Len(t, out.Assets.Additional, 2)
	assert.Equal(t, "a", out.Assets.Additional[0].ID)
	assert.Equal(t, "c", out.Assets.Additional[1].ID)

	assert.Equal(t, orig, b, "input must not be modified")
}

func TestSanitizePartial(t *testing.T) {
	name := "<script>x</script>Globex"
	primary := "10 50% 50%;}"
	url := "javascript:alert(1)"
	font := "Lora"

	p := brand.Partial{
		Metadata: &brand.MetadataPatch{Name: &name},
		Colors:   &brand.ColorsPatch{Light: &brand.PalettePatch{Primary: &primary}},
		Typography: &brand.TypographyPatch{
			Body:  &brand.FontPatch{Name: &font, URL: &url},
			Scale: map[string]string{"xs": "0.7rem"},
		},
		Assets: &brand.AssetsPatch{
			Favicon:    &brand.Logo{ID: "f", LightURL: "file:///etc/passwd"},
			Additional: []brand.Asset{{ID: "x", URL: "ftp://x"}},
		},
	}

	out := SanitizePartial(p)

	require.NotNil(t, out.Metadata)
	assert.Equal(t, "Globex", *out.Metadata.Name)
	assert.Nil(t, out.Metadata.Tagline)
	assert.Equal(t, "10 50% 50%", *out.Colors.Light.Primary)
	assert.Nil(t, out.Colors.Dark)
	assert.Nil(t, out.Colors.Chart)
	assert.Equal(t, "Lora", *out.Typography.Body.Name)
	require.NotNil(t, out.Typography.Body.URL)
	assert.Empty(t, *out.Typography.Body.URL)
	assert.Nil(t, out.Typography.Heading)
	assert.Equal(t, "0.7rem", out.Typography.Scale["xs"])
	assert.Nil(t, out.Spacing)
	assert.Nil(t, out.Strategy)
	assert.Empty(t, out.Assets.Favicon.LightURL)
	assert.NotNil(t, out.Assets.Additional)
	assert.Empty(t, out.Assets.Additional)

	assert.Equal(t, "<script>x</script>Globex", *p.Metadata.Name)
}
