package colour

import (
	"image/color"
	"math"
)

// Luminance calculates the relative luminance of a colour according to WCAG 2.0.
// Returns a value between 0 (darkest) and 1 (lightest).
// https://www.w3.org/TR/WCAG20/#relativeluminancedef.
func Luminance(rgb RGB) float64 {
	r := gammaCorrect(float64(rgb.R) / 255.0)
	g := gammaCorrect(float64(rgb.G) / 255.0)
	b := gammaCorrect(float64(rgb.B) / 255.0)

	return 0.2126*r + 0.7152*g + 0.0722*b
}

// gammaCorrect applies gamma correction to a colour component.
func gammaCorrect(v float64) float64 {
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// ContrastRatio calculates the contrast ratio between two colours according to WCAG 2.0.
// Returns a value between 1 and 21, where 21 is maximum contrast (black vs white).
func ContrastRatio(c1, c2 RGB) float64 {
	l1 := Luminance(c1)
	l2 := Luminance(c2)

	// Ensure l1 is the lighter colour.
	if l1 < l2 {
		l1, l2 = l2, l1
	}

	return (l1 + 0.05) / (l2 + 0.05)
}

var (
	black = RGB{R: 0, G: 0, B: 0}
	white = RGB{R: 255, G: 255, B: 255}
)

// ReadableText returns black or white, whichever contrasts more with bg.
func ReadableText(bg RGB) RGB {
	if ContrastRatio(bg, black) >= ContrastRatio(bg, white) {
		return black
	}
	return white
}

// rgbToHSL converts RGB to HSL colour space.
// Returns hue (0-360), saturation (0-1), lightness (0-1).
func rgbToHSL(rgb RGB) (h, s, l float64) {
	r := float64(rgb.R) / 255.0
	g := float64(rgb.G) / 255.0
	b := float64(rgb.B) / 255.0

	maxVal := math.Max(r, math.Max(g, b))
	minVal := math.Min(r, math.Min(g, b))
	delta := maxVal - minVal

	// Lightness.
	l = (maxVal + minVal) / 2.0

	// Achromatic, no hue or saturation.
	if delta == 0 {
		return 0, 0, l
	}

	if l > 0.5 {
		s = delta / (2.0 - maxVal - minVal)
	} else {
		s = delta / (maxVal + minVal)
	}

	switch maxVal {
	case r:
		h = (g - b) / delta
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/delta + 2
	case b:
		h = (r-g)/delta + 4
	}

	h *= 60
	return h, s, l
}

// Color returns the colour as an opaque color.RGBA for use with image/draw.
func (rgb RGB) Color() color.RGBA {
	return color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}
}

// ToRGB converts a color.Color to RGB, dropping alpha.
func ToRGB(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	// RGBA returns values in the range [0, 65535], convert to [0, 255]
	return RGB{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
	}
}
