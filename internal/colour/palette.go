// Package colour maps words to display colours.
//
// The mapping is a pure pipeline: a word is hashed to a 32-bit value, the low
// 24 bits are split into red, green and blue channels, an enhancement policy
// pulls the channels away from degenerate (too dark, too light or muddy)
// values, and the result is reported as hex, RGB and HSL.
package colour

import (
	"fmt"
	"math"
)

// RGB represents a colour as three 8-bit channels.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB colour as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB colour as a lowercase hex string (e.g., "#1a2b3c").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// HSL is a colour in hue/saturation/lightness form with each component
// rounded to the nearest integer. H is in degrees [0,360), S and L are
// percentages [0,100].
type HSL struct {
	H int `json:"h"`
	S int `json:"s"`
	L int `json:"l"`
}

// String returns the HSL colour in the format "hsl(h, s%, l%)".
func (hsl HSL) String() string {
	return fmt.Sprintf("hsl(%d, %d%%, %d%%)", hsl.H, hsl.S, hsl.L)
}

// HSL converts the colour to rounded HSL.
func (rgb RGB) HSL() HSL {
	h, s, l := rgbToHSL(rgb)

	hue := int(math.Round(h))
	if hue >= 360 {
		hue -= 360
	}

	return HSL{
		H: hue,
		S: int(math.Round(s * 100)),
		L: int(math.Round(l * 100)),
	}
}

// ParseHex parses a "#rrggbb" or "rrggbb" string (either case).
func ParseHex(s string) (RGB, error) {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	if len(s) != 6 {
		return RGB{}, fmt.Errorf("invalid hex colour %q: want 6 digits", s)
	}

	var out [3]uint8
	for i := range out {
		hi, ok1 := hexNibble(s[i*2])
		lo, ok2 := hexNibble(s[i*2+1])
		if !ok1 || !ok2 {
			return RGB{}, fmt.Errorf("invalid hex colour %q", s)
		}
		out[i] = hi<<4 | lo
	}

	return RGB{R: out[0], G: out[1], B: out[2]}, nil
}

func hexNibble(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
