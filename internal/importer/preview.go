package importer

import (
	"context"
	"fmt"
	"strings"

	"github.com/conneroisu/branddna/internal/brand"
	"github.com/conneroisu/branddna/internal/errors"
)

// Preview warnings.
const (
	WarnNoPrimaryLogo   = "no primary logo"
	WarnSameHeadingBody = "heading and body fonts are identical"
)

// Summary counts what an import would bring in.
type Summary struct {
	Name   string `json:"name" yaml:"name"`
	Colors int    `json:"colors" yaml:"colors"`
	Fonts  int    `json:"fonts" yaml:"fonts"`
	Assets int    `json:"assets" yaml:"assets"`
	Values int    `json:"values" yaml:"values"`
}

// PreviewResult describes an import without committing it.
type PreviewResult struct {
	Valid    bool               `json:"valid" yaml:"valid"`
	Summary  Summary            `json:"summary" yaml:"summary"`
	Warnings []string           `json:"warnings" yaml:"warnings"`
	Errors   errors.FieldErrors `json:"errors" yaml:"errors"`
}

// Preview runs the import pipeline on text and summarizes the outcome.
func (i *Importer) Preview(text string) (preview PreviewResult) {
	defer func() {
		if r := recover(); r != nil {
			res := failure("preview", "", errors.CodeImportFailed, "import failed unexpectedly")
			preview = PreviewResult{Warnings: []string{}, Errors: res.Errors}
		}
	}()

	return PreviewOf(i.importBytes(context.Background(), "preview", []byte(text)))
}

// PreviewOf summarizes an import result.
func PreviewOf(res Result) PreviewResult {
	out := PreviewResult{
		Valid:    res.Success,
		Warnings: []string{},
		Errors:   res.Errors,
	}
	if out.Errors == nil {
		out.Errors = errors.FieldErrors{}
	}
	if !res.Success || res.Brand == nil {
		return out
	}

	b := *res.Brand
	out.Summary = Summarize(b)

	if b.Assets.PrimaryLogo == nil {
		out.Warnings = append(out.Warnings, WarnNoPrimaryLogo)
	}
	if strings.EqualFold(strings.TrimSpace(b.Typography.Heading.Name), strings.TrimSpace(b.Typography.Body.Name)) {
		out.Warnings = append(out.Warnings, WarnSameHeadingBody)
	}
	for _, w := range res.Warnings {
		out.Warnings = append(out.Warnings, fmt.Sprintf("%s: %s", w.Field, w.Message))
	}

	return out
}

// Summarize counts the populated colors, distinct fonts, assets and
// values of b.
func Summarize(b brand.BrandDNA) Summary {
	s := Summary{
		Name:   b.Metadata.Name,
		Assets: b.Assets.Count(),
	}

	for _, p := range []brand.ColorPalette{b.Colors.Light, b.Colors.Dark} {
		for _, slot := range brand.Slots {
			if v, _ := p.Get(slot); v != "" {
				s.Colors++
			}
		}
	}
	for _, c := range b.Colors.Chart {
		if c != "" {
			s.Colors++
		}
	}

	fonts := make(map[string]bool)
	for _, role := range brand.FontRoles {
		f, _ := b.Typography.Font(role)
		if name := strings.ToLower(strings.TrimSpace(f.Name)); name != "" {
			fonts[name] = true
		}
	}
	s.Fonts = len(fonts)

	if b.Strategy != nil {
		s.Values = len(b.Strategy.Values)
	}

	return s
}
