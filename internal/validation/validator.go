package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/conneroisu/branddna/internal/brand"
	"github.com/conneroisu/branddna/internal/color"
	"github.com/conneroisu/branddna/internal/errors"
)

// Length and cardinality limits. Lengths count runes.
const (
	MaxPurposeLength          = 200
	MaxVisionLength           = 200
	MaxMissionLength          = 300
	MaxValueNameLength        = 50
	MaxValueDescriptionLength = 200
	MaxTraitLength            = 30
	MaxValues                 = 5
	MaxTraits                 = 7
)

// Result is the outcome of validating a brand. Valid is true only when no
// diagnostic at all was produced, advisory ones included.
type Result struct {
	Valid  bool               `json:"valid" yaml:"valid"`
	Errors errors.FieldErrors `json:"errors" yaml:"errors"`
}

// Blocking returns the errors that prevent a commit. In strict mode every
// error blocks; otherwise advisory errors are only reported.
func (r Result) Blocking(strict bool) errors.FieldErrors {
	if strict {
		return r.Errors
	}

	return r.Errors.Blocking()
}

// Warnings returns the advisory errors.
func (r Result) Warnings() errors.FieldErrors {
	return r.Errors.Advisories()
}

// Passes reports whether nothing blocks a commit.
func (r Result) Passes(strict bool) bool {
	return len(r.Blocking(strict)) == 0
}

func newResult(fe errors.FieldErrors) Result {
	if fe == nil {
		fe = errors.FieldErrors{}
	}

	return Result{Valid: len(fe) == 0, Errors: fe}
}

// contrastPair is a foreground/background pair that must meet AA.
type contrastPair struct {
	mode       brand.Mode
	foreground brand.Slot
	background brand.Slot
}

var contrastPairs = []contrastPair{
	{brand.ModeLight, brand.SlotPrimary, brand.SlotBackground},
	{brand.ModeLight, brand.SlotForeground, brand.SlotBackground},
	{brand.ModeDark, brand.SlotForeground, brand.SlotBackground},
}

// Validate checks b against every rule and collects all diagnostics. It has
// no side effects.
func Validate(b *brand.BrandDNA) Result {
	var fe errors.FieldErrors
	if b == nil {
		fe.Add("", errors.CodeInvalidStructure, "brand is missing")

		return newResult(fe)
	}

	if strings.TrimSpace(b.Metadata.Name) == "" {
		fe.Add("metadata.name", errors.CodeRequiredField, "brand name is required")
	}

	for _, mode := range []brand.Mode{brand.ModeLight, brand.ModeDark} {
		palette, _ := b.Colors.Palette(mode)
		checkPalette(&fe, mode, palette)
	}
	for _, p := range contrastPairs {
		palette, _ := b.Colors.Palette(p.mode)
		fg, _ := palette.Get(p.foreground)
		bg, _ := palette.Get(p.background)
		checkContrast(&fe, p, fg, bg)
	}
	checkChart(&fe, b.Colors.Chart)

	for _, role := range brand.FontRoles {
		font, _ := b.Typography.Font(role)
		checkFontName(&fe, role, font.Name)
		checkFallback(&fe, role, font.Fallback)
	}

	if b.Strategy != nil {
		checkStrategy(&fe, b.Strategy)
	}

	return newResult(fe)
}

// ValidatePartial checks only the sections present in p. It is meant for
// edits in progress: absent fields are never reported, and a contrast pair
// is checked only when both of its colors are present.
func ValidatePartial(p brand.Partial) Result {
	var fe errors.FieldErrors

	if m := p.Metadata; m != nil && m.Name != nil && strings.TrimSpace(*m.Name) == "" {
		fe.Add("metadata.name", errors.CodeRequiredField, "brand name is required")
	}

	if c := p.Colors; c != nil {
		patches := map[brand.Mode]*brand.PalettePatch{brand.ModeLight: c.Light, brand.ModeDark: c.Dark}
		for _, mode := range []brand.Mode{brand.ModeLight, brand.ModeDark} {
			patch := patches[mode]
			for _, s := range brand.Slots {
				if v := patch.Get(s); v != nil {
					checkColor(&fe, slotField(mode, s), *v)
				}
			}
		}
		for _, pair := range contrastPairs {
			patch := patches[pair.mode]
			fg, bg := patch.Get(pair.foreground), patch.Get(pair.background)
			if fg != nil && bg != nil {
				checkContrast(&fe, pair, *fg, *bg)
			}
		}
		if c.Chart != nil {
			checkChart(&fe, c.Chart)
		}
	}

	if t := p.Typography; t != nil {
		fonts := map[brand.FontRole]*brand.FontPatch{
			brand.FontHeading: t.Heading,
			brand.FontBody:    t.Body,
			brand.FontMono:    t.Mono,
		}
		for _, role := range brand.FontRoles {
			f := fonts[role]
			if f == nil {
				continue
			}
			if f.Name != nil {
				checkFontName(&fe, role, *f.Name)
			}
			checkFallback(&fe, role, f.Fallback)
		}
	}

	if p.Strategy != nil {
		checkStrategy(&fe, p.Strategy)
	}

	return newResult(fe)
}

func slotField(mode brand.Mode, s brand.Slot) string {
	return fmt.Sprintf("colors.%s.%s", mode, s)
}

func checkPalette(fe *errors.FieldErrors, mode brand.Mode, p brand.ColorPalette) {
	for _, s := range brand.Slots {
		v, _ := p.Get(s)
		if v != "" {
			checkColor(fe, slotField(mode, s), v)
		}
	}
}

func checkColor(fe *errors.FieldErrors, field, value string) {
	if _, err := color.Parse(value); err != nil {
		fe.Add(field, errors.CodeInvalidColor, err.Error())
	}
}

func checkContrast(fe *errors.FieldErrors, p contrastPair, fg, bg string) {
	result, err := color.CheckContrast(fg, bg)
	if err != nil {
		// Unparseable colors are already reported by the format check.
		return
	}
	if !result.AA {
		fe.AddAdvisory(slotField(p.mode, p.foreground), errors.CodeInsufficientContrast,
			"%s %s on %s has contrast ratio %.2f:1, below the %.1f:1 AA minimum",
			p.mode, p.foreground, p.background, result.Ratio, color.ThresholdAA)
	}
}

func checkChart(fe *errors.FieldErrors, chart []string) {
	if len(chart) != brand.ChartSize {
		fe.Addf("colors.chart", errors.CodeInvalidArrayLength,
			"chart must contain exactly %d colors, got %d", brand.ChartSize, len(chart))
	}
	for i, v := range chart {
		if v != "" {
			checkColor(fe, fmt.Sprintf("colors.chart[%d]", i), v)
		}
	}
}

func checkFontName(fe *errors.FieldErrors, role brand.FontRole, name string) {
	if strings.TrimSpace(name) == "" {
		fe.Addf("typography."+string(role)+".name", errors.CodeRequiredField, "%s font name is required", role)
	}
}

func checkFallback(fe *errors.FieldErrors, role brand.FontRole, fallback []string) {
	for i, f := range fallback {
		if strings.TrimSpace(f) == "" {
			fe.Add(fmt.Sprintf("typography.%s.fallback[%d]", role, i), errors.CodeInvalidValue,
				"fallback font names cannot be empty")
		}
	}
}

func checkLength(fe *errors.FieldErrors, field, value string, limit int) {
	if n := utf8.RuneCountInString(value); n > limit {
		fe.Addf(field, errors.CodeMaxLength, "must be at most %d characters, got %d", limit, n)
	}
}

func checkStrategy(fe *errors.FieldErrors, s *brand.Strategy) {
	checkLength(fe, "strategy.purpose", s.Purpose, MaxPurposeLength)
	checkLength(fe, "strategy.vision", s.Vision, MaxVisionLength)
	checkLength(fe, "strategy.mission", s.Mission, MaxMissionLength)

	if len(s.Values) > MaxValues {
		fe.AddAdvisory("strategy.values", errors.CodeMaxArrayLength,
			"at most %d brand values are recommended, got %d", MaxValues, len(s.Values))
	}
	for i, v := range s.Values {
		field := fmt.Sprintf("strategy.values[%d]", i)
		if strings.TrimSpace(v.Name) == "" {
			fe.Add(field+".name", errors.CodeInvalidValue, "value name cannot be empty")
		}
		checkLength(fe, field+".name", v.Name, MaxValueNameLength)
		checkLength(fe, field+".description", v.Description, MaxValueDescriptionLength)
		if n := uniseg.GraphemeClusterCount(v.Icon); n > 1 {
			fe.AddAdvisory(field+".icon", errors.CodeInvalidValue,
				"icon should be a single emoji or symbol, got %d characters", n)
		}
	}

	traits := s.ToneOfVoice.Traits
	if len(traits) > MaxTraits {
		fe.Addf("strategy.toneOfVoice.traits", errors.CodeMaxArrayLength,
			"at most %d traits are allowed, got %d", MaxTraits, len(traits))
	}
	for i, t := range traits {
		field := fmt.Sprintf("strategy.toneOfVoice.traits[%d]", i)
		if strings.TrimSpace(t) == "" {
			fe.Add(field, errors.CodeInvalidValue, "traits cannot be empty")
		}
		checkLength(fe, field, t, MaxTraitLength)
	}
}
