package brand

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a value, trait, logo or asset to update or
	// remove does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnknownField is returned for an unknown mode, slot, font role or
	// logo kind.
	ErrUnknownField = errors.New("unknown field")
)

// NewID returns a fresh identifier for values, logos and assets.
func NewID() string {
	return uuid.NewString()
}

// Timestamp normalizes t to UTC without a monotonic reading so that a
// stamped brand survives a JSON round trip unchanged.
func Timestamp(t time.Time) time.Time {
	return t.UTC().Round(0)
}

// Touch returns a copy of b with UpdatedAt set to now.
func (b BrandDNA) Touch(now time.Time) BrandDNA {
	out := b.Clone()
	out.Metadata.UpdatedAt = Timestamp(now)

	return out
}

// WithName returns a copy of b renamed to name.
func (b BrandDNA) WithName(name string, now time.Time) BrandDNA {
	out := b.Touch(now)
	out.Metadata.Name = name

	return out
}

// WithMetadata applies p to the metadata key by key.
func (b BrandDNA) WithMetadata(p MetadataPatch, now time.Time) BrandDNA {
	out := b.Touch(now)
	out.Metadata = mergeMetadata(out.Metadata, &p)
	out.Metadata.UpdatedAt = Timestamp(now)

	return out
}

// WithColor returns a copy of b with one palette slot replaced. The value is
// not checked here; run the validator before committing.
func (b BrandDNA) WithColor(mode Mode, slot Slot, value string, now time.Time) (BrandDNA, error) {
	out := b.Touch(now)

	var palette *ColorPalette
	switch mode {
	case ModeLight:
		palette = &out.Colors.Light
	case ModeDark:
		palette = &out.Colors.Dark
	default:
		return b, fmt.Errorf("palette %q: %w", mode, ErrUnknownField)
	}

	if !palette.Set(slot, value) {
		return b, fmt.Errorf("color slot %q: %w", slot, ErrUnknownField)
	}

	return out, nil
}

// WithChart returns a copy of b with the chart sequence replaced.
func (b BrandDNA) WithChart(chart []string, now time.Time) BrandDNA {
	out := b.Touch(now)
	out.Colors.Chart = cloneStrings(chart)

	return out
}

// WithFont returns a copy of b with the family for role replaced.
func (b BrandDNA) WithFont(role FontRole, font FontFamily, now time.Time) (BrandDNA, error) {
	out := b.Touch(now)

	ref := out.Typography.fontRef(role)
	if ref == nil {
		return b, fmt.Errorf("font role %q: %w", role, ErrUnknownField)
	}
	*ref = font.clone()

	return out, nil
}

// WithRadius returns a copy of b with one radius token set.
func (b BrandDNA) WithRadius(token, value string, now time.Time) BrandDNA {
	out := b.Touch(now)
	if out.Spacing.Radius == nil {
		out.Spacing.Radius = make(map[string]string)
	}
	out.Spacing.Radius[token] = value

	return out
}

// WithSpacing returns a copy of b with one spacing token set.
func (b BrandDNA) WithSpacing(token, value string, now time.Time) BrandDNA {
	out := b.Touch(now)
	if out.Spacing.Spacing == nil {
		out.Spacing.Spacing = make(map[string]string)
	}
	out.Spacing.Spacing[token] = value

	return out
}

// WithStrategy returns a copy of b with the strategy replaced. A nil
// strategy clears the section.
func (b BrandDNA) WithStrategy(s *Strategy, now time.Time) BrandDNA {
	out := b.Touch(now)
	out.Strategy = s.Clone()

	return out
}

func (b BrandDNA) ensureStrategy(now time.Time) BrandDNA {
	out := b.Touch(now)
	if out.Strategy == nil {
		out.Strategy = &Strategy{Values: []BrandValue{}, ToneOfVoice: ToneOfVoice{Traits: []string{}}}
	}

	return out
}

// AddValue appends v to the strategy values, creating the strategy when
// absent. An empty ID is replaced with a fresh one.
func (b BrandDNA) AddValue(v BrandValue, now time.Time) BrandDNA {
	out := b.ensureStrategy(now)
	if v.ID == "" {
		v.ID = NewID()
	}
	out.Strategy.Values = append(out.Strategy.Values, v)

	return out
}

// UpdateValue replaces the value with the same ID.
func (b BrandDNA) UpdateValue(v BrandValue, now time.Time) (BrandDNA, error) {
	if b.Strategy == nil {
		return b, fmt.Errorf("value %q: %w", v.ID, ErrNotFound)
	}

	for i, existing := range b.Strategy.Values {
		if existing.ID == v.ID {
			out := b.Touch(now)
			out.Strategy.Values[i] = v

			return out, nil
		}
	}

	return b, fmt.Errorf("value %q: %w", v.ID, ErrNotFound)
}

// RemoveValue removes the value with the given ID.
func (b BrandDNA) RemoveValue(id string, now time.Time) (BrandDNA, error) {
	if b.Strategy == nil {
		return b, fmt.Errorf("value %q: %w", id, ErrNotFound)
	}

	for i, existing := range b.Strategy.Values {
		if existing.ID == id {
			out := b.Touch(now)
			out.Strategy.Values = append(out.Strategy.Values[:i], out.Strategy.Values[i+1:]...)

			return out, nil
		}
	}

	return b, fmt.Errorf("value %q: %w", id, ErrNotFound)
}

// AddTrait adds a tone of voice trait. Traits form a set: adding a trait
// already present (ignoring case) returns an unchanged copy.
func (b BrandDNA) AddTrait(trait string, now time.Time) BrandDNA {
	out := b.ensureStrategy(now)
	for _, t := range out.Strategy.ToneOfVoice.Traits {
		if strings.EqualFold(t, trait) {
			return out
		}
	}
	out.Strategy.ToneOfVoice.Traits = append(out.Strategy.ToneOfVoice.Traits, trait)

	return out
}

// RemoveTrait removes a trait, matching case-insensitively.
func (b BrandDNA) RemoveTrait(trait string, now time.Time) (BrandDNA, error) {
	if b.Strategy == nil {
		return b, fmt.Errorf("trait %q: %w", trait, ErrNotFound)
	}

	for i, t := range b.Strategy.ToneOfVoice.Traits {
		if strings.EqualFold(t, trait) {
			out := b.Touch(now)
			traits := out.Strategy.ToneOfVoice.Traits
			out.Strategy.ToneOfVoice.Traits = append(traits[:i], traits[i+1:]...)

			return out, nil
		}
	}

	return b, fmt.Errorf("trait %q: %w", trait, ErrNotFound)
}

// WithLogo stores logo in slot kind. An empty ID is replaced with a fresh
// one and a zero UploadedAt is set to now.
func (b BrandDNA) WithLogo(kind LogoKind, logo Logo, now time.Time) (BrandDNA, error) {
	out := b.Touch(now)

	ref := out.Assets.logoRef(kind)
	if ref == nil {
		return b, fmt.Errorf("logo %q: %w", kind, ErrUnknownField)
	}
	if logo.ID == "" {
		logo.ID = NewID()
	}
	if logo.UploadedAt.IsZero() {
		logo.UploadedAt = now
	}
	*ref = &logo

	return out, nil
}

// RemoveLogo clears slot kind.
func (b BrandDNA) RemoveLogo(kind LogoKind, now time.Time) (BrandDNA, error) {
	ref := b.Assets.logoRef(kind)
	if ref == nil {
		return b, fmt.Errorf("logo %q: %w", kind, ErrUnknownField)
	}
	if *ref == nil {
		return b, fmt.Errorf("logo %q: %w", kind, ErrNotFound)
	}

	out := b.Touch(now)
	*out.Assets.logoRef(kind) = nil

	return out, nil
}

// AddAsset appends an additional asset, assigning an ID and upload time
// when missing.
func (b BrandDNA) AddAsset(a Asset, now time.Time) BrandDNA {
	out := b.Touch(now)
	if a.ID == "" {
		a.ID = NewID()
	}
	if a.UploadedAt.IsZero() {
		a.UploadedAt = now
	}
	out.Assets.Additional = append(out.Assets.Additional, a)

	return out
}

// RemoveAsset removes the additional asset with the given ID.
func (b BrandDNA) RemoveAsset(id string, now time.Time) (BrandDNA, error) {
	for i, a := range b.Assets.Additional {
		if a.ID == id {
			out := b.Touch(now)
			out.Assets.Additional = append(out.Assets.Additional[:i], out.Assets.Additional[i+1:]...)

			return out, nil
		}
	}

	return b, fmt.Errorf("asset %q: %w", id, ErrNotFound)
}
