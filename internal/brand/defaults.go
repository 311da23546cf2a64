package brand

import "time"

// DefaultName is the brand name used by Default.
const DefaultName = "My Brand"

// DefaultLight is the built-in light palette.
func DefaultLight() ColorPalette {
	return ColorPalette{
		Primary:     "222.2 47.4% 11.2%",
		Secondary:   "210 40% 96.1%",
		Accent:      "210 40% 96.1%",
		Destructive: "0 84.2% 60.2%",
		Muted:       "210 40% 96.1%",
		Background:  "0 0% 100%",
		Foreground:  "222.2 84% 4.9%",
		Card:        "0 0% 100%",
		Border:      "214.3 31.8% 91.4%",
		Input:       "214.3 31.8% 91.4%",
		Ring:        "222.2 84% 4.9%",
	}
}

// DefaultDark is the built-in dark palette.
func DefaultDark() ColorPalette {
	return ColorPalette{
		Primary:     "210 40% 98%",
		Secondary:   "217.2 32.6% 17.5%",
		Accent:      "217.2 32.6% 17.5%",
		Destructive: "0 62.8% 30.6%",
		Muted:       "217.2 32.6% 17.5%",
		Background:  "222.2 84% 4.9%",
		Foreground:  "210 40% 98%",
		Card:        "222.2 84% 4.9%",
		Border:      "217.2 32.6% 17.5%",
		Input:       "217.2 32.6% 17.5%",
		Ring:        "212.7 26.8% 83.9%",
	}
}

// DefaultChart is the built-in chart sequence.
func DefaultChart() []string {
	return []string{
		"12 76% 61%",
		"173 58% 39%",
		"197 37% 24%",
		"43 74% 66%",
		"27 87% 67%",
	}
}

// DefaultTypography is the built-in type system.
func DefaultTypography() Typography {
	return Typography{
		Heading: FontFamily{
			Name:     "Inter",
			Weights:  []int{600, 700, 800},
			Styles:   []string{"normal"},
			URL:      "https://fonts.googleapis.com/css2?family=Inter:wght@600;700;800&display=swap",
			Fallback: []string{"system-ui", "sans-serif"},
		},
		Body: FontFamily{
			Name:     "Inter",
			Weights:  []int{400, 500, 600},
			Styles:   []string{"normal", "italic"},
			URL:      "https://fonts.googleapis.com/css2?family=Inter:ital,wght@0,400;0,500;0,600;1,400&display=swap",
			Fallback: []string{"system-ui", "sans-serif"},
		},
		Mono: FontFamily{
			Name:     "JetBrains Mono",
			Weights:  []int{400, 500},
			Styles:   []string{"normal"},
			URL:      "https://fonts.googleapis.com/css2?family=JetBrains+Mono:wght@400;500&display=swap",
			Fallback: []string{"ui-monospace", "monospace"},
		},
		Scale: map[string]string{
			"xs":   "0.75rem",
			"sm":   "0.875rem",
			"base": "1rem",
			"lg":   "1.125rem",
			"xl":   "1.25rem",
			"2xl":  "1.5rem",
			"3xl":  "1.875rem",
			"4xl":  "2.25rem",
			"5xl":  "3rem",
			"6xl":  "3.75rem",
			"7xl":  "4.5rem",
			"8xl":  "6rem",
			"9xl":  "8rem",
		},
		LineHeight:    LineHeight{Tight: "1.25", Normal: "1.5", Relaxed: "1.75"},
		LetterSpacing: LetterSpacing{Tight: "-0.025em", Normal: "0em", Wide: "0.025em"},
	}
}

// DefaultSpacing is the built-in radius and spacing scale.
func DefaultSpacing() Spacing {
	return Spacing{
		Radius: map[string]string{
			"none": "0",
			"sm":   "0.125rem",
			"md":   "0.375rem",
			"lg":   "0.5rem",
			"xl":   "0.75rem",
			"full": "9999px",
		},
		Spacing: map[string]string{
			"xs":  "0.25rem",
			"sm":  "0.5rem",
			"md":  "1rem",
			"lg":  "1.5rem",
			"xl":  "2rem",
			"2xl": "3rem",
		},
	}
}

// Default returns the built-in brand. Timestamps are zero; use New for a
// brand stamped with a creation time.
func Default() BrandDNA {
	return BrandDNA{
		Metadata: Metadata{
			Name:    DefaultName,
			Version: CurrentVersion,
		},
		Colors: Colors{
			Light: DefaultLight(),
			Dark:  DefaultDark(),
			Chart: DefaultChart(),
		},
		Typography: DefaultTypography(),
		Spacing:    DefaultSpacing(),
		Assets:     Assets{Additional: []Asset{}},
	}
}

// New returns the default brand renamed to name and stamped with now.
func New(name string, now time.Time) BrandDNA {
	b := Default()
	b.Metadata.Name = name
	b.Metadata.CreatedAt = Timestamp(now)
	b.Metadata.UpdatedAt = Timestamp(now)

	return b
}
