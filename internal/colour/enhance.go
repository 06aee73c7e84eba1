package colour

import (
	"errors"
	"fmt"
	"strings"
)

// Channel bounds applied by every enhancer. Channels below MinChannel read as
// near-black, channels above MaxChannel as near-white.
const (
	MinChannel = 30
	MaxChannel = 225
)

// Thresholds for the vibrant enhancer.
const (
	vibrancyFloor = 120
	vibrancyBoost = 80
)

// ErrUnknownMode is returned by ParseMode for an unrecognised mode name.
var ErrUnknownMode = errors.New("unknown colour mode")

// Mode names an enhancement policy.
type Mode string

const (
	// ModeBasic clamps raw channels into [MinChannel, MaxChannel].
	ModeBasic Mode = "basic"
	// ModeEnhanced remaps brownish colours, lifts dull ones and then clamps.
	ModeEnhanced Mode = "enhanced"
)

// Modes lists the supported modes in display order.
func Modes() []Mode {
	return []Mode{ModeBasic, ModeEnhanced}
}

// String returns the mode name.
func (m Mode) String() string {
	return string(m)
}

// ParseMode parses a mode name, case-insensitively. An empty name selects
// ModeBasic.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeBasic:
		return ModeBasic, nil
	case ModeEnhanced:
		return ModeEnhanced, nil
	default:
		return "", fmt.Errorf("%w: %q (valid: basic, enhanced)", ErrUnknownMode, s)
	}
}

// Enhancer returns the enhancement policy for the mode. Unknown modes fall
// back to the basic policy; use ParseMode to reject them up front.
func (m Mode) Enhancer() Enhancer {
	if m == ModeEnhanced {
		return VibrantEnhancer{}
	}
	return BasicEnhancer{}
}

// Enhancer turns raw hash channels into a display colour.
type Enhancer interface {
	// Name returns the mode name of the policy.
	Name() string
	// Enhance maps raw channels to a colour whose channels all lie in
	// [MinChannel, MaxChannel].
	Enhance(raw RGB) RGB
}

// BasicEnhancer clamps each channel independently.
type BasicEnhancer struct{}

// Name returns "basic".
func (BasicEnhancer) Name() string { return string(ModeBasic) }

// Enhance clamps each channel into [MinChannel, MaxChannel].
func (BasicEnhancer) Enhance(raw RGB) RGB {
	return RGB{R: clampChannel(int(raw.R)), G: clampChannel(int(raw.G)), B: clampChannel(int(raw.B))}
}

// VibrantEnhancer remaps brownish colours into a blue-purple family, boosts
// dull colours and then clamps like BasicEnhancer.
type VibrantEnhancer struct{}

// Name returns "enhanced".
func (VibrantEnhancer) Name() string { return string(ModeEnhanced) }

// Enhance applies the brownish remap, the vibrancy floor and the clamp.
func (VibrantEnhancer) Enhance(raw RGB) RGB {
	r, g, b := int(raw.R), int(raw.G), int(raw.B)

	if IsBrownish(raw) && r >= g && g >= b {
		r, g, b = (b+100)%256, (r+80)%256, (g+180)%256
	}

	// Only the first channel holding the max is lifted.
	if m := max(r, g, b); m < vibrancyFloor {
		switch m {
		case r:
			r = min(255, r+vibrancyBoost)
		case g:
			g = min(255, g+vibrancyBoost)
		default:
			b = min(255, b+vibrancyBoost)
		}
	}

	return RGB{R: clampChannel(r), G: clampChannel(g), B: clampChannel(b)}
}

// IsBrownish reports whether a colour falls in the muddy brown/olive cluster
// that raw hash channels land in disproportionately often.
func IsBrownish(c RGB) bool {
	r, g, b := int(c.R), int(c.G), int(c.B)
	avg := float64(r+g+b) / 3

	dark := abs(r-g) < 50 && abs(g-b) < 50 && r >= g && g >= b && avg < 100
	muddy := r > g && g > b && abs(r-g) < 40 && abs(g-b) < 30 && avg < 120

	return dark || muddy
}

// HashToColor derives a display colour from a hash using the given policy.
func HashToColor(hash uint32, e Enhancer) RGB {
	return e.Enhance(RawChannels(hash))
}

func clampChannel(v int) uint8 {
	return uint8(max(MinChannel, min(MaxChannel, v)))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
