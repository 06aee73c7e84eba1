package colour

import "testing"

func TestBasicEnhancer(t *testing.T) {
	tests := []struct {
		name string
		raw  RGB
		want RGB
	}{
		{name: "all zero raised to floor", raw: RGB{}, want: RGB{R: 30, G: 30, B: 30}},
		{name: "all max lowered to ceiling", raw: RGB{R: 255, G: 255, B: 255}, want: RGB{R: 225, G: 225, B: 225}},
		{name: "in range untouched", raw: RGB{R: 52, G: 205, B: 46}, want: RGB{R: 52, G: 205, B: 46}},
		{name: "bounds inclusive", raw: RGB{R: 30, G: 225, B: 29}, want: RGB{R: 30, G: 225, B: 30}},
		{name: "brownish not remapped", raw: RGB{R: 90, G: 70, B: 50}, want: RGB{R: 90, G: 70, B: 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := (BasicEnhancer{}).Enhance(tt.raw); got != tt.want {
				t.Errorf("Enhance(%+v) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestVibrantEnhancer(t *testing.T) {
	tests := []struct {
		name string
		raw  RGB
		want RGB
	}{
		{
			// remap to (150, 170, 250), then clamp blue.
			name: "dark brown remapped",
			raw:  RGB{R: 90, G: 70, B: 50},
			want: RGB{R: 150, G: 170, B: 225},
		},
		{
			// green+180 wraps to 24 before clamping.
			name: "remap wraps modulo 256",
			raw:  RGB{R: 120, G: 100, B: 60},
			want: RGB{R: 160, G: 200, B: 30},
		},
		{
			// greys satisfy r>=g>=b; remap to (100, 80, 180).
			name: "black remapped",
			raw:  RGB{},
			want: RGB{R: 100, G: 80, B: 180},
		},
		{
			name: "dull blue boosted",
			raw:  RGB{R: 0, G: 0, B: 97},
			want: RGB{R: 30, G: 30, B: 177},
		},
		{
			name: "first max channel boosted on tie",
			raw:  RGB{R: 100, G: 100, B: 110},
			want: RGB{R: 100, G: 100, B: 190},
		},
		{
			name: "tie between green and blue boosts green",
			raw:  RGB{R: 40, G: 110, B: 110},
			want: RGB{R: 40, G: 190, B: 110},
		},
		{
			name: "tie between red and green boosts red",
			raw:  RGB{R: 110, G: 110, B: 40},
			want: RGB{R: 190, G: 110, B: 40},
		},
		{
			name: "vivid colour only clamped",
			raw:  RGB{R: 233, G: 24, B: 210},
			want: RGB{R: 225, G: 30, B: 210},
		},
		{
			name: "bright non brown untouched",
			raw:  RGB{R: 52, G: 205, B: 46},
			want: RGB{R: 52, G: 205, B: 46},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := (VibrantEnhancer{}).Enhance(tt.raw); got != tt.want {
				t.Errorf("Enhance(%+v) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestIsBrownish(t *testing.T) {
	tests := []struct {
		name string
		c    RGB
		want bool
	}{
		{name: "dark brown", c: RGB{R: 90, G: 70, B: 50}, want: true},
		{name: "grey", c: RGB{R: 60, G: 60, B: 60}, want: true},
		{name: "muddy olive", c: RGB{R: 140, G: 110, B: 90}, want: true},
		{name: "ascending channels", c: RGB{R: 50, G: 70, B: 90}, want: false},
		{name: "too bright", c: RGB{R: 200, G: 180, B: 170}, want: false},
		{name: "spread too wide", c: RGB{R: 150, G: 90, B: 20}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsBrownish(tt.c); got != tt.want {
				t.Errorf("IsBrownish(%+v) = %v, want %v", tt.c, got, tt.want)
			}
		})
	}
}

// Every brownish triple must leave the enhancer outside the brownish cluster.
func TestVibrantEnhancerLeavesBrownCluster(t *testing.T) {
	checked := 0
	for r := 0; r < 256; r++ {
		for g := 0; g <= r; g++ {
			for b := 0; b <= g; b++ {
				raw := RGB{R: uint8(r), G: uint8(g), B: uint8(b)}
				if !IsBrownish(raw) {
					continue
				}
				checked++
				if out := (VibrantEnhancer{}).Enhance(raw); IsBrownish(out) {
					t.Fatalf("Enhance(%+v) = %+v is still brownish", raw, out)
				}
			}
		}
	}
	if checked == 0 {
		t.Fatal("no brownish triples were generated")
	}
}

func TestEnhancersStayInBounds(t *testing.T) {
	enhancers := []Enhancer{BasicEnhancer{}, VibrantEnhancer{}}
	for _, e := range enhancers {
		for r := 0; r < 256; r += 5 {
			for g := 0; g < 256; g += 5 {
				for b := 0; b < 256; b += 5 {
					out := e.Enhance(RGB{R: uint8(r), G: uint8(g), B: uint8(b)})
					for _, ch := range []uint8{out.R, out.G, out.B} {
						if ch < MinChannel || ch > MaxChannel {
							t.Fatalf("%s: Enhance(%d,%d,%d) = %+v out of bounds", e.Name(), r, g, b, out)
						}
					}
				}
			}
		}
	}
}

func TestModeEnhancer(t *testing.T) {
	if got := ModeBasic.Enhancer().Name(); got != "basic" {
		t.Errorf("ModeBasic.Enhancer().Name() = %q", got)
	}
	if got := ModeEnhanced.Enhancer().Name(); got != "enhanced" {
		t.Errorf("ModeEnhanced.Enhancer().Name() = %q", got)
	}
	if got := Mode("bogus").Enhancer().Name(); got != "basic" {
		t.Errorf("unknown mode enhancer = %q, want basic", got)
	}
}
