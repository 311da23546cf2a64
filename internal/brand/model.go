// Package brand defines the Brand DNA data model: the canonical description
// of a product's visual and strategic identity.
//
// A BrandDNA is a value. Every mutation helper returns a new value and
// re-stamps Metadata.UpdatedAt; the receiver is never modified. Partial
// values decoded from untrusted input are combined with a base through
// Merge, whose per-field rules are documented there.
package brand

import "time"

// CurrentVersion is the schema version written by this package.
const CurrentVersion = "1.0.0"

// ChartSize is the exact number of chart colors a brand carries.
const ChartSize = 5

// BrandDNA is the root aggregate.
type BrandDNA struct {
	Metadata   Metadata   `json:"metadata" yaml:"metadata"`
	Colors     Colors     `json:"colors" yaml:"colors"`
	Typography Typography `json:"typography" yaml:"typography"`
	Spacing    Spacing    `json:"spacing" yaml:"spacing"`
	Strategy   *Strategy  `json:"strategy,omitempty" yaml:"strategy,omitempty"`
	Assets     Assets     `json:"assets" yaml:"assets"`
}

// Metadata identifies a brand.
type Metadata struct {
	Name        string    `json:"name" yaml:"name"`
	Tagline     string    `json:"tagline,omitempty" yaml:"tagline,omitempty"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Industry    string    `json:"industry,omitempty" yaml:"industry,omitempty"`
	CreatedAt   time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" yaml:"updatedAt"`
	Version     string    `json:"version" yaml:"version"`
}

// ColorPalette holds one color value per semantic slot. Values use the
// "<h> <s>% <l>%" grammar.
type ColorPalette struct {
	Primary     string `json:"primary" yaml:"primary"`
	Secondary   string `json:"secondary" yaml:"secondary"`
	Accent      string `json:"accent" yaml:"accent"`
	Destructive string `json:"destructive" yaml:"destructive"`
	Muted       string `json:"muted" yaml:"muted"`
	Background  string `json:"background" yaml:"background"`
	Foreground  string `json:"foreground" yaml:"foreground"`
	Card        string `json:"card" yaml:"card"`
	Border      string `json:"border" yaml:"border"`
	Input       string `json:"input" yaml:"input"`
	Ring        string `json:"ring" yaml:"ring"`
}

// Colors groups the light and dark palettes with the chart sequence.
type Colors struct {
	Light ColorPalette `json:"light" yaml:"light"`
	Dark  ColorPalette `json:"dark" yaml:"dark"`
	Chart []string     `json:"chart" yaml:"chart"`
}

// FontFamily describes one typeface role.
type FontFamily struct {
	Name     string   `json:"name" yaml:"name"`
	Weights  []int    `json:"weights" yaml:"weights"`
	Styles   []string `json:"styles" yaml:"styles"`
	URL      string   `json:"url,omitempty" yaml:"url,omitempty"`
	Fallback []string `json:"fallback" yaml:"fallback"`
}

// LineHeight holds the three line height tokens.
type LineHeight struct {
	Tight   string `json:"tight" yaml:"tight"`
	Normal  string `json:"normal" yaml:"normal"`
	Relaxed string `json:"relaxed" yaml:"relaxed"`
}

// LetterSpacing holds the three tracking tokens.
type LetterSpacing struct {
	Tight  string `json:"tight" yaml:"tight"`
	Normal string `json:"normal" yaml:"normal"`
	Wide   string `json:"wide" yaml:"wide"`
}

// Typography groups the font roles and the type scale.
type Typography struct {
	Heading       FontFamily        `json:"heading" yaml:"heading"`
	Body          FontFamily        `json:"body" yaml:"body"`
	Mono          FontFamily        `json:"mono" yaml:"mono"`
	Scale         map[string]string `json:"scale" yaml:"scale"`
	LineHeight    LineHeight        `json:"lineHeight" yaml:"lineHeight"`
	LetterSpacing LetterSpacing     `json:"letterSpacing" yaml:"letterSpacing"`
}

// Spacing holds the corner radius and gap scales.
type Spacing struct {
	Radius  map[string]string `json:"radius" yaml:"radius"`
	Spacing map[string]string `json:"spacing" yaml:"spacing"`
}

// Strategy is the optional positioning section of a brand.
type Strategy struct {
	Purpose         string       `json:"purpose" yaml:"purpose"`
	Vision          string       `json:"vision" yaml:"vision"`
	Mission         string       `json:"mission" yaml:"mission"`
	Values          []BrandValue `json:"values" yaml:"values"`
	ToneOfVoice     ToneOfVoice  `json:"toneOfVoice" yaml:"toneOfVoice"`
	Positioning     string       `json:"positioning,omitempty" yaml:"positioning,omitempty"`
	TargetAudience  string       `json:"targetAudience,omitempty" yaml:"targetAudience,omitempty"`
	Differentiators []string     `json:"differentiators,omitempty" yaml:"differentiators,omitempty"`
}

// BrandValue is one named brand value.
type BrandValue struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Icon        string `json:"icon,omitempty" yaml:"icon,omitempty"`
}

// ToneOfVoice describes how the brand speaks.
type ToneOfVoice struct {
	Traits      []string `json:"traits" yaml:"traits"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Dos         []string `json:"dos,omitempty" yaml:"dos,omitempty"`
	Donts       []string `json:"donts,omitempty" yaml:"donts,omitempty"`
}

// Assets holds the logo slots and any additional files.
type Assets struct {
	PrimaryLogo   *Logo   `json:"primaryLogo,omitempty" yaml:"primaryLogo,omitempty"`
	SecondaryLogo *Logo   `json:"secondaryLogo,omitempty" yaml:"secondaryLogo,omitempty"`
	Favicon       *Logo   `json:"favicon,omitempty" yaml:"favicon,omitempty"`
	Additional    []Asset `json:"additional" yaml:"additional"`
}

// Logo references light and dark renditions of a logo image. Image
// references are https URLs or data:image URIs.
type Logo struct {
	ID         string    `json:"id" yaml:"id"`
	Name       string    `json:"name" yaml:"name"`
	LightURL   string    `json:"lightUrl,omitempty" yaml:"lightUrl,omitempty"`
	DarkURL    string    `json:"darkUrl,omitempty" yaml:"darkUrl,omitempty"`
	Width      int       `json:"width,omitempty" yaml:"width,omitempty"`
	Height     int       `json:"height,omitempty" yaml:"height,omitempty"`
	FileSize   int64     `json:"fileSize,omitempty" yaml:"fileSize,omitempty"`
	UploadedAt time.Time `json:"uploadedAt" yaml:"uploadedAt"`
}

// Asset is an additional brand file such as an icon set or a pattern.
type Asset struct {
	ID         string    `json:"id" yaml:"id"`
	Name       string    `json:"name" yaml:"name"`
	Type       string    `json:"type" yaml:"type"`
	URL        string    `json:"url" yaml:"url"`
	UploadedAt time.Time `json:"uploadedAt" yaml:"uploadedAt"`
}

// Mode selects a palette.
type Mode string

const (
	ModeLight Mode = "light"
	ModeDark  Mode = "dark"
)

// Palette returns the palette for mode.
func (c Colors) Palette(mode Mode) (ColorPalette, bool) {
	switch mode {
	case ModeLight:
		return c.Light, true
	case ModeDark:
		return c.Dark, true
	}

	return ColorPalette{}, false
}

// FontRole selects a font family.
type FontRole string

const (
	FontHeading FontRole = "heading"
	FontBody    FontRole = "body"
	FontMono    FontRole = "mono"
)

// FontRoles lists the font roles in canonical order.
var FontRoles = []FontRole{FontHeading, FontBody, FontMono}

// Font returns the family for role.
func (t Typography) Font(role FontRole) (FontFamily, bool) {
	switch role {
	case FontHeading:
		return t.Heading, true
	case FontBody:
		return t.Body, true
	case FontMono:
		return t.Mono, true
	}

	return FontFamily{}, false
}

func (t *Typography) fontRef(role FontRole) *FontFamily {
	switch role {
	case FontHeading:
		return &t.Heading
	case FontBody:
		return &t.Body
	case FontMono:
		return &t.Mono
	}

	return nil
}

// Stack returns the family name followed by its fallbacks.
func (f FontFamily) Stack() []string {
	out := make([]string, 0, len(f.Fallback)+1)
	if f.Name != "" {
		out = append(out, f.Name)
	}

	return append(out, f.Fallback...)
}

// LogoKind selects a logo slot.
type LogoKind string

const (
	LogoPrimary   LogoKind = "primaryLogo"
	LogoSecondary LogoKind = "secondaryLogo"
	LogoFavicon   LogoKind = "favicon"
)

// LogoKinds lists the logo slots in canonical order.
var LogoKinds = []LogoKind{LogoPrimary, LogoSecondary, LogoFavicon}

func (a *Assets) logoRef(kind LogoKind) **Logo {
	switch kind {
	case LogoPrimary:
		return &a.PrimaryLogo
	case LogoSecondary:
		return &a.SecondaryLogo
	case LogoFavicon:
		return &a.Favicon
	}

	return nil
}

// Logo returns the logo in slot kind, or nil.
func (a Assets) Logo(kind LogoKind) *Logo {
	ref := a.logoRef(kind)
	if ref == nil {
		return nil
	}

	return *ref
}

// Count returns the number of populated logo slots plus additional assets.
func (a Assets) Count() int {
	n := len(a.Additional)
	for _, kind := range LogoKinds {
		if a.Logo(kind) != nil {
			n++
		}
	}

	return n
}
