package brand

// Clone returns a deep copy of b. Slices, maps and pointed-to sections of
// the copy share no memory with b. Nil collections stay nil.
func (b BrandDNA) Clone() BrandDNA {
	out := b
	out.Colors.Chart = cloneStrings(b.Colors.Chart)
	out.Typography = b.Typography.clone()
	out.Spacing = Spacing{
		Radius:  cloneMap(b.Spacing.Radius),
		Spacing: cloneMap(b.Spacing.Spacing),
	}
	out.Strategy = b.Strategy.Clone()
	out.Assets = b.Assets.clone()

	return out
}

// Clone returns a deep copy of s, or nil.
func (s *Strategy) Clone() *Strategy {
	if s == nil {
		return nil
	}

	out := *s
	if s.Values != nil {
		out.Values = make([]BrandValue, len(s.Values))
		copy(out.Values, s.Values)
	}
	out.ToneOfVoice.Traits = cloneStrings(s.ToneOfVoice.Traits)
	out.ToneOfVoice.Dos = cloneStrings(s.ToneOfVoice.Dos)
	out.ToneOfVoice.Donts = cloneStrings(s.ToneOfVoice.Donts)
	out.Differentiators = cloneStrings(s.Differentiators)

	return &out
}

func (t Typography) clone() Typography {
	out := t
	out.Heading = t.Heading.clone()
	out.Body = t.Body.clone()
	out.Mono = t.Mono.clone()
	out.Scale = cloneMap(t.Scale)

	return out
}

func (f FontFamily) clone() FontFamily {
	out := f
	if f.Weights != nil {
		out.Weights = make([]int, len(f.Weights))
		copy(out.Weights, f.Weights)
	}
	out.Styles = cloneStrings(f.Styles)
	out.Fallback = cloneStrings(f.Fallback)

	return out
}

func (a Assets) clone() Assets {
	out := Assets{
		PrimaryLogo:   a.PrimaryLogo.clone(),
		SecondaryLogo: a.SecondaryLogo.clone(),
		Favicon:       a.Favicon.clone(),
	}
	if a.Additional != nil {
		out.Additional = make([]Asset, len(a.Additional))
		copy(out.Additional, a.Additional)
	}

	return out
}

func (l *Logo) clone() *Logo {
	if l == nil {
		return nil
	}
	out := *l

	return &out
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)

	return out
}

func cloneMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}

	return out
}
