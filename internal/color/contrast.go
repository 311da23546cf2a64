package color

import "math"

// WCAG 2.x contrast thresholds.
const (
	ThresholdAA       = 4.5
	ThresholdAAA      = 7.0
	ThresholdAALarge  = 3.0
	ThresholdAAALarge = 4.5
)

// ContrastResult describes how a foreground/background pair performs
// against the WCAG thresholds. Ratio is rounded to two decimals for display;
// the boolean flags are computed from the unrounded ratio.
type ContrastResult struct {
	Ratio    float64 `json:"ratio"`
	AA       bool    `json:"aa"`
	AAA      bool    `json:"aaa"`
	AALarge  bool    `json:"aaLarge"`
	AAALarge bool    `json:"aaaLarge"`
}

// RelativeLuminance returns the WCAG relative luminance of c in [0, 1].
func RelativeLuminance(c RGB) float64 {
	r := linearize(float64(c.R) / 255)
	g := linearize(float64(c.G) / 255)
	b := linearize(float64(c.B) / 255)

	return 0.2126*r + 0.7152*g + 0.0722*b
}

// linearize expands an sRGB channel to linear light.
func linearize(c float64) float64 {
	if c <= 0.03928 {
		return c / 12.92
	}

	return math.Pow((c+0.055)/1.055, 2.4)
}

// ContrastRatioRGB returns the contrast ratio between two colors, in [1, 21].
// The order of the arguments does not matter.
func ContrastRatioRGB(a, b RGB) float64 {
	la := RelativeLuminance(a)
	lb := RelativeLuminance(b)
	if la < lb {
		la, lb = lb, la
	}

	return (la + 0.05) / (lb + 0.05)
}

// ContrastRatio parses two color values and returns their contrast ratio.
func ContrastRatio(a, b string) (float64, error) {
	ha, err := Parse(a)
	if err != nil {
		return 0, err
	}
	hb, err := Parse(b)
	if err != nil {
		return 0, err
	}

	return ContrastRatioRGB(HSLToRGB(ha), HSLToRGB(hb)), nil
}

// CheckContrast evaluates a foreground/background pair against the WCAG
// AA and AAA thresholds for normal and large text.
func CheckContrast(fg, bg string) (ContrastResult, error) {
	ratio, err := ContrastRatio(fg, bg)
	if err != nil {
		return ContrastResult{}, err
	}

	return evaluate(ratio), nil
}

func evaluate(ratio float64) ContrastResult {
	return ContrastResult{
		Ratio:    math.Round(ratio*100) / 100,
		AA:       ratio >= ThresholdAA,
		AAA:      ratio >= ThresholdAAA,
		AALarge:  ratio >= ThresholdAALarge,
		AAALarge: ratio >= ThresholdAAALarge,
	}
}

// Level returns the best WCAG level the result achieves for normal text:
// "AAA", "AA" or "fail".
func (r ContrastResult) Level() string {
	switch {
	case r.AAA:
		return "AAA"
	case r.AA:
		return "AA"
	default:
		return "fail"
	}
}
