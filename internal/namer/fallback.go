package namer

import (
	"context"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/hexword/internal/colour"
)

// DefaultTimeout bounds a single naming call made through WithFallback.
const DefaultTimeout = 5 * time.Second

// FallbackNames is the table used when no model name is available.
var FallbackNames = []string{
	"Mystic Shade", "Cosmic Hue", "Dream Tint", "Stellar Glow",
	"Nebula Touch", "Prism Echo", "Velvet Tone", "Aurora Whisper",
	"Crystal Gleam", "Twilight Mist", "Ocean Deep", "Forest Dawn",
}

// FallbackName picks a table name from the numeric value of the hex colour
// modulo the table size. Unparseable input maps to the first entry.
//
// The index is the 24-bit colour value, not a string hash of the hex text,
// so a colour keeps the fallback name earlier frame server releases gave it.
func FallbackName(hex string) string {
	rgb, err := colour.ParseHex(hex)
	if err != nil {
		return FallbackNames[0]
	}
	value := uint32(rgb.R)<<16 | uint32(rgb.G)<<8 | uint32(rgb.B)
	return FallbackNames[value%uint32(len(FallbackNames))]
}

// Fallback is a Namer that always answers from the fallback table.
type Fallback struct{}

// Name returns FallbackName(req.Hex).
func (Fallback) Name(_ context.Context, req Request) (string, error) {
	return FallbackName(req.Hex), nil
}

// resilient wraps a Namer with a timeout and the fallback table.
type resilient struct {
	inner   Namer
	timeout time.Duration
	logger  hclog.Logger
}

// WithFallback returns a Namer that never fails: inner is called under
// timeout, and any error (including a timeout or a nil inner) yields the
// fallback name. A timeout <= 0 selects DefaultTimeout.
func WithFallback(inner Namer, timeout time.Duration, logger hclog.Logger) Namer {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &resilient{inner: inner, timeout: timeout, logger: logger.Named("namer")}
}

func (r *resilient) Name(ctx context.Context, req Request) (string, error) {
	if r.inner == nil {
		return FallbackName(req.Hex), nil
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	type result struct {
		name string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		name, err := r.inner.Name(ctx, req)
		done <- result{name: Clean(name), err: err}
	}()

	select {
	case res := <-done:
		if res.err == nil && res.name != "" {
			return res.name, nil
		}
		err := res.err
		if err == nil {
			err = ErrEmptyName
		}
		r.logger.Warn("using fallback colour name", "word", req.Word, "hex", req.Hex, "error", err)
	case <-ctx.Done():
		r.logger.Warn("using fallback colour name", "word", req.Word, "hex", req.Hex, "error", ctx.Err())
	}

	return FallbackName(req.Hex), nil
}
