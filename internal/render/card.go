// Package render draws the shareable image card for a word colour.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/jmylchreest/hexword/internal/colour"
)

// Card geometry. The card is sized for Open Graph and Farcaster frame images.
const (
	Width  = 1200
	Height = 630

	overlayX, overlayY = 60, 60
	overlayW, overlayH = 1080, 510

	discX, discY, discRadius = 350, 350, 60

	infoX          = 480
	titleY, wordY  = 100, 160
	hexY, nameY    = 300, 340
	rgbY, footerY  = 370, 480
	titleText      = "Word to Hex Generator"
	instructionMsg = `Enter a word below and click "Generate Color"`
)

var (
	gradientTop    = colour.RGB{R: 0x66, G: 0x7e, B: 0xea}
	gradientBottom = colour.RGB{R: 0x76, G: 0x4b, B: 0xa2}
	overlayColour  = color.NRGBA{R: 255, G: 255, B: 255, A: 0xE6}
)

// Card is the content drawn on a share image.
type Card struct {
	Word string
	Hex  string
	RGB  colour.RGB
	// Name is an optional display name for the colour.
	Name string
}

// CardFor builds a Card from a colour result and an optional name.
func CardFor(res colour.Result, name string) Card {
	return Card{Word: res.Word, Hex: res.Hex, RGB: res.RGB, Name: name}
}

// Renderer draws cards. Faces are parsed once and shared, so Render calls
// are serialised.
type Renderer struct {
	mu     sync.Mutex
	large  font.Face
	medium font.Face
	small  font.Face
}

// NewRenderer parses the bundled Go fonts.
func NewRenderer() (*Renderer, error) {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse regular font: %w", err)
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse bold font: %w", err)
	}

	large, err := newFace(bold, 40)
	if err != nil {
		return nil, err
	}
	medium, err := newFace(bold, 32)
	if err != nil {
		return nil, err
	}
	small, err := newFace(regular, 18)
	if err != nil {
		return nil, err
	}

	return &Renderer{large: large, medium: medium, small: small}, nil
}

func newFace(f *opentype.Font, size float64) (font.Face, error) {
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %.0fpt face: %w", size, err)
	}
	return face, nil
}

// Render draws the card.
func (r *Renderer) Render(card Card) *image.RGBA {
	r.mu.Lock()
	defer r.mu.Unlock()

	img := image.NewRGBA(image.Rect(0, 0, Width, Height))

	drawGradient(img, gradientTop, gradientBottom)

	overlay := image.Rect(overlayX, overlayY, overlayX+overlayW, overlayY+overlayH)
	draw.Draw(img, overlay, image.NewUniform(overlayColour), image.Point{}, draw.Over)

	// Text sits on the overlay, so pick its colour against the overlay.
	under := colour.ToRGB(img.At(overlayX, overlayY))
	ink := image.NewUniform(colour.ReadableText(under).Color())

	r.drawCentred(img, r.medium, ink, titleY, titleText)
	r.drawCentred(img, r.large, ink, wordY, `"`+card.Word+`"`)

	drawDisc(img, discX, discY, discRadius, card.RGB.Color())

	r.drawAt(img, r.medium, image.NewUniform(card.RGB.Color()), infoX, hexY, strings.ToUpper(card.Hex))
	if card.Name != "" {
		r.drawAt(img, r.small, ink, infoX, nameY, `"`+card.Name+`"`)
	}
	r.drawAt(img, r.small, ink, infoX, rgbY, fmt.Sprintf("RGB: %d, %d, %d", card.RGB.R, card.RGB.G, card.RGB.B))

	r.drawCentred(img, r.small, ink, footerY, instructionMsg)

	return img
}

// EncodePNG renders the card and writes it as PNG.
func (r *Renderer) EncodePNG(w io.Writer, card Card) error {
	if err := png.Encode(w, r.Render(card)); err != nil {
		return fmt.Errorf("failed to encode card: %w", err)
	}
	return nil
}

// PNG renders the card to PNG bytes.
func (r *Renderer) PNG(card Card) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.EncodePNG(&buf, card); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// drawAt draws text with its top edge at y.
func (r *Renderer) drawAt(dst draw.Image, face font.Face, src image.Image, x, y int, text string) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  src,
		Face: face,
		Dot:  fixed.P(x, y+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(text)
}

// drawCentred draws text horizontally centred on the card with its top edge at y.
func (r *Renderer) drawCentred(dst draw.Image, face font.Face, src image.Image, y int, text string) {
	width := font.MeasureString(face, text).Ceil()
	r.drawAt(dst, face, src, (Width-width)/2, y, text)
}

// drawGradient fills img with a vertical linear gradient.
func drawGradient(img *image.RGBA, top, bottom colour.RGB) {
	b := img.Bounds()
	h := float64(b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		ratio := float64(y-b.Min.Y) / h
		c := color.RGBA{
			R: lerp(top.R, bottom.R, ratio),
			G: lerp(top.G, bottom.G, ratio),
			B: lerp(top.B, bottom.B, ratio),
			A: 255,
		}
		draw.Draw(img, image.Rect(b.Min.X, y, b.Max.X, y+1), image.NewUniform(c), image.Point{}, draw.Src)
	}
}

func lerp(a, b uint8, t float64) uint8 {
	v := float64(a) + (float64(b)-float64(a))*t
	return uint8(v + 0.5)
}

// drawDisc fills a solid circle centred at (cx, cy).
func drawDisc(img *image.RGBA, cx, cy, radius int, c color.RGBA) {
	r2 := radius * radius
	for y := cy - radius; y <= cy+radius; y++ {
		for x := cx - radius; x <= cx+radius; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= r2 {
				img.SetRGBA(x, y, c)
			}
		}
	}
}
