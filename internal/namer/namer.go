// Package namer gives generated colours a short poetic display name.
//
// The primary source is a generative model; when it is unavailable, slow or
// returns nothing usable, a deterministic name is taken from a fixed table so
// callers always get something to display.
package namer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jmylchreest/hexword/internal/colour"
)

var (
	// ErrEmptyName is returned when a model produces no usable name.
	ErrEmptyName = errors.New("empty colour name")

	// ErrNoAPIKey is returned when the Gemini API backend has no key configured.
	ErrNoAPIKey = errors.New("no API key configured")
)

// Request describes the colour to name.
type Request struct {
	Word string
	Hex  string
	RGB  colour.RGB
}

// RequestFor builds a Request from a colour result.
func RequestFor(res colour.Result) Request {
	return Request{Word: res.Word, Hex: res.Hex, RGB: res.RGB}
}

// Namer produces a display name for a colour.
type Namer interface {
	Name(ctx context.Context, req Request) (string, error)
}

// Func adapts a function to the Namer interface.
type Func func(ctx context.Context, req Request) (string, error)

// Name calls f.
func (f Func) Name(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}

// Prompt returns the model prompt for a colour.
func Prompt(req Request) string {
	return fmt.Sprintf(`Given this hex color %s (RGB: %d, %d, %d) that was generated from the word "%s", `+
		`create a single creative and poetic color name (1-2 words max). `+
		`The name should capture the essence of both the color and the original word. `+
		`Examples: "Midnight Ocean", "Coral Whisper", "Forest Echo". Only return the color name, nothing else.`,
		req.Hex, req.RGB.R, req.RGB.G, req.RGB.B, req.Word)
}

// Clean strips quotes and surrounding whitespace from a model response.
func Clean(s string) string {
	s = strings.NewReplacer(`"`, "", `'`, "").Replace(s)
	return strings.TrimSpace(s)
}
