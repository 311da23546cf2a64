package validation

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/conneroisu/branddna/internal/brand"
)

// The sanitizer is a denylist for plain-text fields. It is not an HTML
// sanitizer and its output must still be escaped when rendered.
var (
	scriptBlock  = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script\s*>`)
	iframeBlock  = regexp.MustCompile(`(?is)<iframe\b[^>]*>.*?</iframe\s*>`)
	strayTag     = regexp.MustCompile(`(?i)<\s*/?\s*(?:script|iframe)[^>]*>?`)
	jsScheme     = regexp.MustCompile(`(?i)javascript\s*:`)
	eventHandler = regexp.MustCompile(`(?i)\bon[a-z]+\s*=`)
	tokenName    = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

// SanitizeText strips script and iframe blocks, javascript: schemes, inline
// event handler attributes and control characters, then trims surrounding
// whitespace. Removal repeats until the text is stable so that nested
// payloads cannot reassemble; every pass that changes s shortens it.
func SanitizeText(s string) string {
	s = SanitizeInput(s)
	for {
		before := s
		s = scriptBlock.ReplaceAllString(s, "")
		s = iframeBlock.ReplaceAllString(s, "")
		s = strayTag.ReplaceAllString(s, "")
		s = jsScheme.ReplaceAllString(s, "")
		s = eventHandler.ReplaceAllString(s, "")
		if s == before {
			break
		}
	}

	return strings.TrimSpace(s)
}

// SanitizeAssetURL accepts data:image URIs and https URLs. Anything else
// is dropped: the result is "" and false.
func SanitizeAssetURL(raw string) (string, bool) {
	u := strings.TrimSpace(SanitizeInput(raw))
	if u == "" {
		return "", false
	}
	if strings.HasPrefix(strings.ToLower(u), "data:image/") {
		return u, true
	}

	return SanitizeStylesheetURL(u)
}

// SanitizeStylesheetURL accepts only https URLs with a host.
func SanitizeStylesheetURL(raw string) (string, bool) {
	u := strings.TrimSpace(SanitizeInput(raw))
	parsed, err := url.Parse(u)
	if err != nil || !strings.EqualFold(parsed.Scheme, "https") || parsed.Host == "" {
		return "", false
	}
	if strings.ContainsAny(u, "\"'<>\\ \n\r\t`") {
		return "", false
	}

	return u, true
}

// sanitizeCSSValue removes characters that could terminate a declaration
// or a rule when the value is written into a stylesheet.
func sanitizeCSSValue(s string) string {
	s = SanitizeInput(s)
	s = strings.Map(func(r rune) rune {
		switch r {
		case ';', '{', '}', '<', '>', '\\', '\n', '\r':
			return -1
		}

		return r
	}, s)

	return strings.TrimSpace(s)
}

func sanitizeStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = SanitizeText(s)
	}

	return out
}

// sanitizeOptional is sanitizeStrings for fields that are omitted when
// empty; an empty list becomes nil.
func sanitizeOptional(in []string) []string {
	if len(in) == 0 {
		return nil
	}

	return sanitizeStrings(in)
}

func sanitizeTokens(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		if !tokenName.MatchString(k) {
			continue
		}
		out[k] = sanitizeCSSValue(v)
	}

	return out
}

func sanitizeTextPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := SanitizeText(*s)

	return &v
}

func sanitizeCSSPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := sanitizeCSSValue(*s)

	return &v
}

func sanitizeStylesheetPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v, _ := SanitizeStylesheetURL(*s)

	return &v
}

func sanitizeFont(f brand.FontFamily) brand.FontFamily {
	f.Name = sanitizeCSSValue(SanitizeText(f.Name))
	f.Styles = sanitizeStrings(f.Styles)
	f.URL, _ = SanitizeStylesheetURL(f.URL)
	f.Fallback = sanitizeFallback(f.Fallback)

	return f
}

func sanitizeFallback(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = sanitizeCSSValue(SanitizeText(s))
	}

	return out
}

func sanitizePalette(p brand.ColorPalette) brand.ColorPalette {
	for _, s := range brand.Slots {
		v, _ := p.Get(s)
		p.Set(s, sanitizeCSSValue(v))
	}

	return p
}

func sanitizeStrategy(s *brand.Strategy) *brand.Strategy {
	if s == nil {
		return nil
	}

	out := s.Clone()
	out.Purpose = SanitizeText(out.Purpose)
	out.Vision = SanitizeText(out.Vision)
	out.Mission = SanitizeText(out.Mission)
	out.Positioning = SanitizeText(out.Positioning)
	out.TargetAudience = SanitizeText(out.TargetAudience)
	out.Differentiators = sanitizeOptional(out.Differentiators)
	for i := range out.Values {
		v := &out.Values[i]
		v.ID = SanitizeText(v.ID)
		v.Name = SanitizeText(v.Name)
		v.Description = SanitizeText(v.Description)
		v.Icon = SanitizeText(v.Icon)
	}
	out.ToneOfVoice.Traits = sanitizeStrings(out.ToneOfVoice.Traits)
	out.ToneOfVoice.Description = SanitizeText(out.ToneOfVoice.Description)
	out.ToneOfVoice.Dos = sanitizeOptional(out.ToneOfVoice.Dos)
	out.ToneOfVoice.Donts = sanitizeOptional(out.ToneOfVoice.Donts)

	return out
}

// sanitizeLogo scrubs the text fields and clears image references that are
// not safe to load.
func sanitizeLogo(l *brand.Logo) *brand.Logo {
	if l == nil {
		return nil
	}

	out := *l
	out.ID = SanitizeText(out.ID)
	out.Name = SanitizeText(out.Name)
	out.LightURL, _ = SanitizeAssetURL(out.LightURL)
	out.DarkURL, _ = SanitizeAssetURL(out.DarkURL)

	return &out
}

// sanitizeAssets drops additional assets whose URL is not safe.
func sanitizeAssets(in []brand.Asset) []brand.Asset {
	if in == nil {
		return nil
	}

	out := make([]brand.Asset, 0, len(in))
	for _, a := range in {
		u, ok := SanitizeAssetURL(a.URL)
		if !ok {
			continue
		}
		a.URL = u
		a.ID = SanitizeText(a.ID)
		a.Name = SanitizeText(a.Name)
		a.Type = SanitizeText(a.Type)
		out = append(out, a)
	}

	return out
}

// SanitizeBrand returns a scrubbed copy of b. Free text loses unsafe
// markup, font stylesheets must be https, logo images must be https or
// data:image, additional assets with unsafe URLs are removed and token
// values cannot break out of a CSS declaration. It never fails.
func SanitizeBrand(b brand.BrandDNA) brand.BrandDNA {
	out := b.Clone()

	m := &out.Metadata
	m.Name = SanitizeText(m.Name)
	m.Tagline = SanitizeText(m.Tagline)
	m.Description = SanitizeText(m.Description)
	m.Industry = SanitizeText(m.Industry)
	m.Version = SanitizeText(m.Version)

	out.Colors.Light = sanitizePalette(out.Colors.Light)
	out.Colors.Dark = sanitizePalette(out.Colors.Dark)
	for i, c := range out.Colors.Chart {
		out.Colors.Chart[i] = sanitizeCSSValue(c)
	}

	t := &out.Typography
	t.Heading = sanitizeFont(t.Heading)
	t.Body = sanitizeFont(t.Body)
	t.Mono = sanitizeFont(t.Mono)
	t.Scale = sanitizeTokens(t.Scale)
	t.LineHeight.Tight = sanitizeCSSValue(t.LineHeight.Tight)
	t.LineHeight.Normal = sanitizeCSSValue(t.LineHeight.Normal)
	t.LineHeight.Relaxed = sanitizeCSSValue(t.LineHeight.Relaxed)
	t.LetterSpacing.Tight = sanitizeCSSValue(t.LetterSpacing.Tight)
	t.LetterSpacing.Normal = sanitizeCSSValue(t.LetterSpacing.Normal)
	t.LetterSpacing.Wide = sanitizeCSSValue(t.LetterSpacing.Wide)

	out.Spacing.Radius = sanitizeTokens(out.Spacing.Radius)
	out.Spacing.Spacing = sanitizeTokens(out.Spacing.Spacing)

	out.Strategy = sanitizeStrategy(out.Strategy)

	out.Assets.PrimaryLogo = sanitizeLogo(out.Assets.PrimaryLogo)
	out.Assets.SecondaryLogo = sanitizeLogo(out.Assets.SecondaryLogo)
	out.Assets.Favicon = sanitizeLogo(out.Assets.Favicon)
	out.Assets.Additional = sanitizeAssets(out.Assets.Additional)

	return out
}

// SanitizePartial applies the same scrubbing as SanitizeBrand to the
// sections present in p. Absent sections stay absent.
func SanitizePartial(p brand.Partial) brand.Partial {
	out := brand.Partial{}

	if m := p.Metadata; m != nil {
		out.Metadata = &brand.MetadataPatch{
			Name:        sanitizeTextPtr(m.Name),
			Tagline:     sanitizeTextPtr(m.Tagline),
			Description: sanitizeTextPtr(m.Description),
			Industry:    sanitizeTextPtr(m.Industry),
			CreatedAt:   m.CreatedAt,
			UpdatedAt:   m.UpdatedAt,
			Version:     sanitizeTextPtr(m.Version),
		}
	}

	if c := p.Colors; c != nil {
		out.Colors = &brand.ColorsPatch{
			Light: sanitizePalettePatch(c.Light),
			Dark:  sanitizePalettePatch(c.Dark),
		}
		if c.Chart != nil {
			out.Colors.Chart = make([]string, len(c.Chart))
			for i, v := range c.Chart {
				out.Colors.Chart[i] = sanitizeCSSValue(v)
			}
		}
	}

	if t := p.Typography; t != nil {
		out.Typography = &brand.TypographyPatch{
			Heading: sanitizeFontPatch(t.Heading),
			Body:    sanitizeFontPatch(t.Body),
			Mono:    sanitizeFontPatch(t.Mono),
			Scale:   sanitizeTokens(t.Scale),
		}
		if lh := t.LineHeight; lh != nil {
			out.Typography.LineHeight = &brand.LineHeightPatch{
				Tight:   sanitizeCSSPtr(lh.Tight),
				Normal:  sanitizeCSSPtr(lh.Normal),
				Relaxed: sanitizeCSSPtr(lh.Relaxed),
			}
		}
		if ls := t.LetterSpacing; ls != nil {
			out.Typography.LetterSpacing = &brand.LetterSpacingPatch{
				Tight:  sanitizeCSSPtr(ls.Tight),
				Normal: sanitizeCSSPtr(ls.Normal),
				Wide:   sanitizeCSSPtr(ls.Wide),
			}
		}
	}

	if s := p.Spacing; s != nil {
		out.Spacing = &brand.SpacingPatch{
			Radius:  sanitizeTokens(s.Radius),
			Spacing: sanitizeTokens(s.Spacing),
		}
	}

	out.Strategy = sanitizeStrategy(p.Strategy)

	if a := p.Assets; a != nil {
		out.Assets = &brand.AssetsPatch{
			PrimaryLogo:   sanitizeLogo(a.PrimaryLogo),
			SecondaryLogo: sanitizeLogo(a.SecondaryLogo),
			Favicon:       sanitizeLogo(a.Favicon),
			Additional:    sanitizeAssets(a.Additional),
		}
	}

	return out
}

func sanitizePalettePatch(p *brand.PalettePatch) *brand.PalettePatch {
	if p == nil {
		return nil
	}

	out := &brand.PalettePatch{}
	for _, s := range brand.Slots {
		if v := p.Get(s); v != nil {
			out.Set(s, sanitizeCSSValue(*v))
		}
	}

	return out
}

func sanitizeFontPatch(f *brand.FontPatch) *brand.FontPatch {
	if f == nil {
		return nil
	}

	out := &brand.FontPatch{
		Styles:   sanitizeStrings(f.Styles),
		URL:      sanitizeStylesheetPtr(f.URL),
		Fallback: sanitizeFallback(f.Fallback),
	}
	if f.Name != nil {
		name := sanitizeCSSValue(SanitizeText(*f.Name))
		out.Name = &name
	}
	if f.Weights != nil {
		out.Weights = make([]int, len(f.Weights))
		copy(out.Weights, f.Weights)
	}

	return out
}
