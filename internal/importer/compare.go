package importer

import (
	"github.com/conneroisu/branddna/internal/brand"
)

// Diff is one field that differs between two brands.
type Diff struct {
	Field    string `json:"field" yaml:"field"`
	Current  string `json:"current" yaml:"current"`
	Imported string `json:"imported" yaml:"imported"`
}

// DiffField extracts a comparable value from a brand.
type DiffField struct {
	Path  string
	Value func(b brand.BrandDNA) string
}

// ColorField compares one palette slot.
func ColorField(mode brand.Mode, slot brand.Slot) DiffField {
	return DiffField{
		Path: "colors." + string(mode) + "." + string(slot),
		Value: func(b brand.BrandDNA) string {
			p, _ := b.Colors.Palette(mode)
			v, _ := p.Get(slot)

			return v
		},
	}
}

// FontField compares the family name of one font role.
func FontField(role brand.FontRole) DiffField {
	return DiffField{
		Path: "typography." + string(role) + ".name",
		Value: func(b brand.BrandDNA) string {
			f, _ := b.Typography.Font(role)

			return f.Name
		},
	}
}

// DefaultDiffFields are compared when Compare is given no fields.
func DefaultDiffFields() []DiffField {
	return []DiffField{
		{Path: "metadata.name", Value: func(b brand.BrandDNA) string { return b.Metadata.Name }},
		ColorField(brand.ModeLight, brand.SlotPrimary),
		ColorField(brand.ModeLight, brand.SlotBackground),
		FontField(brand.FontHeading),
		FontField(brand.FontBody),
		FontField(brand.FontMono),
		{Path: "strategy.mission", Value: func(b brand.BrandDNA) string {
			if b.Strategy == nil {
				return ""
			}

			return b.Strategy.Mission
		}},
	}
}

// Compare lists the fields whose values differ between current and
// imported, in field order.
func Compare(current, imported brand.BrandDNA, fields ...DiffField) []Diff {
	if len(fields) == 0 {
		fields = DefaultDiffFields()
	}

	diffs := make([]Diff, 0)
	for _, f := range fields {
		if f.Value == nil {
			continue
		}
		a, b := f.Value(current), f.Value(imported)
		if a != b {
			diffs = append(diffs, Diff{Field: f.Path, Current: a, Imported: b})
		}
	}

	return diffs
}
