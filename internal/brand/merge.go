package brand

import "time"

// Partial is a brand decoded from untrusted input. Pointer fields and nil
// collections mark absent sections so that Merge only overrides what the
// input actually carried.
type Partial struct {
	Metadata   *MetadataPatch   `json:"metadata,omitempty"`
	Colors     *ColorsPatch     `json:"colors,omitempty"`
	Typography *TypographyPatch `json:"typography,omitempty"`
	Spacing    *SpacingPatch    `json:"spacing,omitempty"`
	Strategy   *Strategy        `json:"strategy,omitempty"`
	Assets     *AssetsPatch     `json:"assets,omitempty"`
}

// MetadataPatch carries the metadata keys present in the input.
type MetadataPatch struct {
	Name        *string    `json:"name,omitempty"`
	Tagline     *string    `json:"tagline,omitempty"`
	Description *string    `json:"description,omitempty"`
	Industry    *string    `json:"industry,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
	Version     *string    `json:"version,omitempty"`
}

// PalettePatch carries the palette slots present in the input.
type PalettePatch struct {
	Primary     *string `json:"primary,omitempty"`
	Secondary   *string `json:"secondary,omitempty"`
	Accent      *string `json:"accent,omitempty"`
	Destructive *string `json:"destructive,omitempty"`
	Muted       *string `json:"muted,omitempty"`
	Background  *string `json:"background,omitempty"`
	Foreground  *string `json:"foreground,omitempty"`
	Card        *string `json:"card,omitempty"`
	Border      *string `json:"border,omitempty"`
	Input       *string `json:"input,omitempty"`
	Ring        *string `json:"ring,omitempty"`
}

// ColorsPatch carries the color sections present in the input.
type ColorsPatch struct {
	Light *PalettePatch `json:"light,omitempty"`
	Dark  *PalettePatch `json:"dark,omitempty"`
	Chart []string      `json:"chart,omitempty"`
}

// FontPatch carries the font keys present in the input. Lists replace
// wholesale.
type FontPatch struct {
	Name     *string  `json:"name,omitempty"`
	Weights  []int    `json:"weights,omitempty"`
	Styles   []string `json:"styles,omitempty"`
	URL      *string  `json:"url,omitempty"`
	Fallback []string `json:"fallback,omitempty"`
}

// LineHeightPatch carries the line height keys present in the input.
type LineHeightPatch struct {
	Tight   *string `json:"tight,omitempty"`
	Normal  *string `json:"normal,omitempty"`
	Relaxed *string `json:"relaxed,omitempty"`
}

// LetterSpacingPatch carries the letter spacing keys present in the input.
type LetterSpacingPatch struct {
	Tight  *string `json:"tight,omitempty"`
	Normal *string `json:"normal,omitempty"`
	Wide   *string `json:"wide,omitempty"`
}

// TypographyPatch carries the typography sections present in the input.
type TypographyPatch struct {
	Heading       *FontPatch          `json:"heading,omitempty"`
	Body          *FontPatch          `json:"body,omitempty"`
	Mono          *FontPatch          `json:"mono,omitempty"`
	Scale         map[string]string   `json:"scale,omitempty"`
	LineHeight    *LineHeightPatch    `json:"lineHeight,omitempty"`
	LetterSpacing *LetterSpacingPatch `json:"letterSpacing,omitempty"`
}

// SpacingPatch carries the spacing tokens present in the input.
type SpacingPatch struct {
	Radius  map[string]string `json:"radius,omitempty"`
	Spacing map[string]string `json:"spacing,omitempty"`
}

// AssetsPatch carries the asset sections present in the input.
type AssetsPatch struct {
	PrimaryLogo   *Logo   `json:"primaryLogo,omitempty"`
	SecondaryLogo *Logo   `json:"secondaryLogo,omitempty"`
	Favicon       *Logo   `json:"favicon,omitempty"`
	Additional    []Asset `json:"additional,omitempty"`
}

// ref returns the patch field for slot s.
func (p *PalettePatch) ref(s Slot) **string {
	switch s {
	case SlotPrimary:
		return &p.Primary
	case SlotSecondary:
		return &p.Secondary
	case SlotAccent:
		return &p.Accent
	case SlotDestructive:
		return &p.Destructive
	case SlotMuted:
		return &p.Muted
	case SlotBackground:
		return &p.Background
	case SlotForeground:
		return &p.Foreground
	case SlotCard:
		return &p.Card
	case SlotBorder:
		return &p.Border
	case SlotInput:
		return &p.Input
	case SlotRing:
		return &p.Ring
	}

	return nil
}

// Get returns the patched value for slot s, or nil when absent.
func (p *PalettePatch) Get(s Slot) *string {
	if p == nil {
		return nil
	}
	if ref := p.ref(s); ref != nil {
		return *ref
	}

	return nil
}

// Set records a value for slot s.
func (p *PalettePatch) Set(s Slot, v string) {
	if ref := p.ref(s); ref != nil {
		*ref = &v
	}
}

// IsEmpty reports whether p carries none of the sections a brand is
// recognized by.
func (p Partial) IsEmpty() bool {
	return p.Metadata == nil && p.Colors == nil && p.Typography == nil
}

// PartialOf returns a Partial carrying every field of b, so that
// Merge(x, PartialOf(b)) reproduces b wherever b is populated.
func PartialOf(b BrandDNA) Partial {
	b = b.Clone()

	meta := b.Metadata
	light := paletteToPatch(b.Colors.Light)
	dark := paletteToPatch(b.Colors.Dark)

	return Partial{
		Metadata: &MetadataPatch{
			Name:        &meta.Name,
			Tagline:     &meta.Tagline,
			Description: &meta.Description,
			Industry:    &meta.Industry,
			CreatedAt:   &meta.CreatedAt,
			UpdatedAt:   &meta.UpdatedAt,
			Version:     &meta.Version,
		},
		Colors: &ColorsPatch{Light: &light, Dark: &dark, Chart: b.Colors.Chart},
		Typography: &TypographyPatch{
			Heading: fontToPatch(b.Typography.Heading),
			Body:    fontToPatch(b.Typography.Body),
			Mono:    fontToPatch(b.Typography.Mono),
			Scale:   b.Typography.Scale,
			LineHeight: &LineHeightPatch{
				Tight:   &b.Typography.LineHeight.Tight,
				Normal:  &b.Typography.LineHeight.Normal,
				Relaxed: &b.Typography.LineHeight.Relaxed,
			},
			LetterSpacing: &LetterSpacingPatch{
				Tight:  &b.Typography.LetterSpacing.Tight,
				Normal: &b.Typography.LetterSpacing.Normal,
				Wide:   &b.Typography.LetterSpacing.Wide,
			},
		},
		Spacing:  &SpacingPatch{Radius: b.Spacing.Radius, Spacing: b.Spacing.Spacing},
		Strategy: b.Strategy,
		Assets: &AssetsPatch{
			PrimaryLogo:   b.Assets.PrimaryLogo,
			SecondaryLogo: b.Assets.SecondaryLogo,
			Favicon:       b.Assets.Favicon,
			Additional:    b.Assets.Additional,
		},
	}
}

func paletteToPatch(p ColorPalette) PalettePatch {
	var out PalettePatch
	for _, s := range Slots {
		v, _ := p.Get(s)
		out.Set(s, v)
	}

	return out
}

func fontToPatch(f FontFamily) *FontPatch {
	return &FontPatch{
		Name:     &f.Name,
		Weights:  f.Weights,
		Styles:   f.Styles,
		URL:      &f.URL,
		Fallback: f.Fallback,
	}
}

// Merge overlays p onto a copy of base. The strategy is explicit per field:
//
//   - metadata: key by key
//   - colors.light and colors.dark: slot by slot
//   - colors.chart: replaced wholesale when present
//   - typography.heading, body and mono: key by key inside each font, with
//     the weight, style and fallback lists replaced wholesale
//   - typography.scale, lineHeight and letterSpacing: key by key
//   - spacing.radius and spacing.spacing: key by key
//   - strategy: replaced wholesale when present, values included
//   - assets: each logo slot replaced when present, additional replaced
//     wholesale when present
//
// base is never modified.
func Merge(base BrandDNA, p Partial) BrandDNA {
	out := base.Clone()

	if p.Metadata != nil {
		out.Metadata = mergeMetadata(out.Metadata, p.Metadata)
	}

	if c := p.Colors; c != nil {
		out.Colors.Light = mergePalette(out.Colors.Light, c.Light)
		out.Colors.Dark = mergePalette(out.Colors.Dark, c.Dark)
		if c.Chart != nil {
			out.Colors.Chart = cloneStrings(c.Chart)
		}
	}

	if t := p.Typography; t != nil {
		out.Typography.Heading = mergeFont(out.Typography.Heading, t.Heading)
		out.Typography.Body = mergeFont(out.Typography.Body, t.Body)
		out.Typography.Mono = mergeFont(out.Typography.Mono, t.Mono)
		out.Typography.Scale = mergeTokens(out.Typography.Scale, t.Scale)
		if lh := t.LineHeight; lh != nil {
			setIf(&out.Typography.LineHeight.Tight, lh.Tight)
			setIf(&out.Typography.LineHeight.Normal, lh.Normal)
			setIf(&out.Typography.LineHeight.Relaxed, lh.Relaxed)
		}
		if ls := t.LetterSpacing; ls != nil {
			setIf(&out.Typography.LetterSpacing.Tight, ls.Tight)
			setIf(&out.Typography.LetterSpacing.Normal, ls.Normal)
			setIf(&out.Typography.LetterSpacing.Wide, ls.Wide)
		}
	}

	if s := p.Spacing; s != nil {
		out.Spacing.Radius = mergeTokens(out.Spacing.Radius, s.Radius)
		out.Spacing.Spacing = mergeTokens(out.Spacing.Spacing, s.Spacing)
	}

	if p.Strategy != nil {
		out.Strategy = p.Strategy.Clone()
	}

	if a := p.Assets; a != nil {
		if a.PrimaryLogo != nil {
			out.Assets.PrimaryLogo = a.PrimaryLogo.clone()
		}
		if a.SecondaryLogo != nil {
			out.Assets.SecondaryLogo = a.SecondaryLogo.clone()
		}
		if a.Favicon != nil {
			out.Assets.Favicon = a.Favicon.clone()
		}
		if a.Additional != nil {
			out.Assets.Additional = make([]Asset, len(a.Additional))
			copy(out.Assets.Additional, a.Additional)
		}
	}

	return out
}

func mergeMetadata(m Metadata, p *MetadataPatch) Metadata {
	if p == nil {
		return m
	}

	setIf(&m.Name, p.Name)
	setIf(&m.Tagline, p.Tagline)
	setIf(&m.Description, p.Description)
	setIf(&m.Industry, p.Industry)
	setIf(&m.Version, p.Version)
	if p.CreatedAt != nil {
		m.CreatedAt = Timestamp(*p.CreatedAt)
	}
	if p.UpdatedAt != nil {
		m.UpdatedAt = Timestamp(*p.UpdatedAt)
	}

	return m
}

func mergePalette(base ColorPalette, p *PalettePatch) ColorPalette {
	if p == nil {
		return base
	}
	for _, s := range Slots {
		if v := p.Get(s); v != nil {
			base.Set(s, *v)
		}
	}

	return base
}

func mergeFont(base FontFamily, p *FontPatch) FontFamily {
	if p == nil {
		return base
	}

	setIf(&base.Name, p.Name)
	setIf(&base.URL, p.URL)
	if p.Weights != nil {
		base.Weights = make([]int, len(p.Weights))
		copy(base.Weights, p.Weights)
	}
	if p.Styles != nil {
		base.Styles = cloneStrings(p.Styles)
	}
	if p.Fallback != nil {
		base.Fallback = cloneStrings(p.Fallback)
	}

	return base
}

func mergeTokens(base, patch map[string]string) map[string]string {
	if patch == nil {
		return base
	}
	if base == nil {
		base = make(map[string]string, len(patch))
	}
	for k, v := range patch {
		base[k] = v
	}

	return base
}

func setIf(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
