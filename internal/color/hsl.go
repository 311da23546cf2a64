// Package color implements the color math behind brand palettes: parsing and
// formatting of the textual HSL triple used by CSS custom properties,
// conversion between HSL, RGB and hex, and WCAG relative luminance and
// contrast ratio.
//
// Color values are strings of the form "<hue> <saturation>% <lightness>%",
// for example "222.2 47.4% 11.2%". Hue lies in [0, 360], saturation and
// lightness in [0, 100].
package color

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidColor is matched by every *InvalidColorError via errors.Is.
var ErrInvalidColor = errors.New("invalid color")

var hslPattern = regexp.MustCompile(`^\s*(-?\d+(?:\.\d+)?)\s+(-?\d+(?:\.\d+)?)%\s+(-?\d+(?:\.\d+)?)%\s*$`)

// HSL is a color in the hue/saturation/lightness space. H is in degrees,
// S and L are percentages.
type HSL struct {
	H float64
	S float64
	L float64
}

// RGB is a color with 8-bit channels.
type RGB struct {
	R int
	G int
	B int
}

// InvalidColorError reports a color string that could not be used.
type InvalidColorError struct {
	Value  string
	Reason string
}

// Error implements the error interface.
func (e *InvalidColorError) Error() string {
	return fmt.Sprintf("invalid color %q: %s", e.Value, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidColor) succeed.
func (e *InvalidColorError) Is(target error) bool {
	return target == ErrInvalidColor
}

// ParseHSL parses the textual HSL grammar. It only checks the grammar;
// use Parse or HSL.InRange for range checks. ok is false when the input is
// malformed.
func ParseHSL(text string) (HSL, bool) {
	m := hslPattern.FindStringSubmatch(text)
	if m == nil {
		return HSL{}, false
	}

	h, errH := strconv.ParseFloat(m[1], 64)
	s, errS := strconv.ParseFloat(m[2], 64)
	l, errL := strconv.ParseFloat(m[3], 64)
	if errH != nil || errS != nil || errL != nil {
		return HSL{}, false
	}

	return HSL{H: h, S: s, L: l}, true
}

// Parse parses a color value and checks that every component lies within
// its range. Failures are reported as *InvalidColorError.
func Parse(text string) (HSL, error) {
	hsl, ok := ParseHSL(text)
	if !ok {
		return HSL{}, &InvalidColorError{Value: text, Reason: `expected "<h> <s>% <l>%"`}
	}
	if err := hsl.checkRange(); err != nil {
		return HSL{}, &InvalidColorError{Value: text, Reason: err.Error()}
	}

	return hsl, nil
}

// IsValid reports whether text is a well-formed, in-range color value.
func IsValid(text string) bool {
	_, err := Parse(text)

	return err == nil
}

// InRange reports whether every component lies within its range.
func (c HSL) InRange() bool {
	return c.checkRange() == nil
}

func (c HSL) checkRange() error {
	switch {
	case c.H < 0 || c.H > 360:
		return fmt.Errorf("hue %g out of range 0-360", c.H)
	case c.S < 0 || c.S > 100:
		return fmt.Errorf("saturation %g%% out of range 0-100", c.S)
	case c.L < 0 || c.L > 100:
		return fmt.Errorf("lightness %g%% out of range 0-100", c.L)
	}

	return nil
}

// String formats the color in the canonical grammar.
func (c HSL) String() string {
	return FormatHSL(c.H, c.S, c.L)
}

// FormatHSL renders a color value with one decimal place per component so
// that parse/format round-trips are stable.
func FormatHSL(h, s, l float64) string {
	return fmt.Sprintf("%.1f %.1f%% %.1f%%", h, s, l)
}

// HSLToRGB converts to 8-bit RGB using the standard hue-to-RGB helper.
func HSLToRGB(c HSL) RGB {
	h := c.H / 360
	s := c.S / 100
	l := c.L / 100

	if s == 0 {
		v := channel(l)

		return RGB{R: v, G: v, B: v}
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	return RGB{
		R: channel(hueToRGB(p, q, h+1.0/3)),
		G: channel(hueToRGB(p, q, h)),
		B: channel(hueToRGB(p, q, h-1.0/3)),
	}
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}

	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	default:
		return p
	}
}

func channel(v float64) int {
	n := int(math.Round(v * 255))
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}

	return n
}

// RGBToHSL converts 8-bit RGB to HSL without rounding.
func RGBToHSL(c RGB) HSL {
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255

	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	l := (maxC + minC) / 2

	if maxC == minC {
		return HSL{H: 0, S: 0, L: l * 100}
	}

	d := maxC - minC
	var s float64
	if l > 0.5 {
		s = d / (2 - maxC - minC)
	} else {
		s = d / (maxC + minC)
	}

	var h float64
	switch maxC {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	h /= 6

	return HSL{H: h * 360, S: s * 100, L: l * 100}
}

// Hex returns the color as "#rrggbb".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseHex parses "#rgb" or "#rrggbb" (the leading # is optional).
func ParseHex(hex string) (RGB, error) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return RGB{}, &InvalidColorError{Value: hex, Reason: "hex colors must have 3 or 6 digits"}
	}

	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return RGB{}, &InvalidColorError{Value: hex, Reason: "not a hexadecimal number"}
	}

	return RGB{R: int(v >> 16 & 0xff), G: int(v >> 8 & 0xff), B: int(v & 0xff)}, nil
}

// HSLToHex converts a color to "#rrggbb".
func HSLToHex(c HSL) string {
	return HSLToRGB(c).Hex()
}

// HexToHSL converts "#rrggbb" to HSL.
func HexToHSL(hex string) (HSL, error) {
	rgb, err := ParseHex(hex)
	if err != nil {
		return HSL{}, err
	}

	return RGBToHSL(rgb), nil
}

// ToHex parses a color value and returns its hex form.
func ToHex(text string) (string, error) {
	hsl, err := Parse(text)
	if err != nil {
		return "", err
	}

	return HSLToHex(hsl), nil
}

// FromHex converts a hex color to a canonical color value.
func FromHex(hex string) (string, error) {
	hsl, err := HexToHSL(hex)
	if err != nil {
		return "", err
	}

	return hsl.String(), nil
}
