package brand

import "sort"

// Slot names a semantic palette color.
type Slot string

const (
	SlotPrimary     Slot = "primary"
	SlotSecondary   Slot = "secondary"
	SlotAccent      Slot = "accent"
	SlotDestructive Slot = "destructive"
	SlotMuted       Slot = "muted"
	SlotBackground  Slot = "background"
	SlotForeground  Slot = "foreground"
	SlotCard        Slot = "card"
	SlotBorder      Slot = "border"
	SlotInput       Slot = "input"
	SlotRing        Slot = "ring"
)

// Slots lists every palette slot in canonical order.
var Slots = []Slot{
	SlotPrimary,
	SlotSecondary,
	SlotAccent,
	SlotDestructive,
	SlotMuted,
	SlotBackground,
	SlotForeground,
	SlotCard,
	SlotBorder,
	SlotInput,
	SlotRing,
}

// ParseSlot converts a slot name to a Slot.
func ParseSlot(name string) (Slot, bool) {
	for _, s := range Slots {
		if string(s) == name {
			return s, true
		}
	}

	return "", false
}

func (p *ColorPalette) ref(s Slot) *string {
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

// Get returns the value stored in slot s.
func (p ColorPalette) Get(s Slot) (string, bool) {
	ref := p.ref(s)
	if ref == nil {
		return "", false
	}

	return *ref, true
}

// Set stores v in slot s. It reports false for an unknown slot.
func (p *ColorPalette) Set(s Slot, v string) bool {
	ref := p.ref(s)
	if ref == nil {
		return false
	}
	*ref = v

	return true
}

// Token orders used when rendering scales. Tokens outside these lists are
// rendered after the known ones, alphabetically.
var (
	ScaleTokens   = []string{"xs", "sm", "base", "lg", "xl", "2xl", "3xl", "4xl", "5xl", "6xl", "7xl", "8xl", "9xl"}
	RadiusTokens  = []string{"none", "sm", "md", "lg", "xl", "2xl", "full"}
	SpacingTokens = []string{"xs", "sm", "md", "lg", "xl", "2xl", "3xl"}
)

// OrderedKeys returns the keys of m with the canonical tokens first, in
// canonical order, followed by the remaining keys sorted.
func OrderedKeys(m map[string]string, canonical []string) []string {
	keys := make([]string, 0, len(m))
	known := make(map[string]struct{}, len(canonical))
	for _, k := range canonical {
		known[k] = struct{}{}
		if _, ok := m[k]; ok {
			keys = append(keys, k)
		}
	}

	var extra []string
	for k := range m {
		if _, ok := known[k]; !ok {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)

	return append(keys, extra...)
}
