package server

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/hexword/internal/cardcache"
	"github.com/jmylchreest/hexword/internal/colour"
	"github.com/jmylchreest/hexword/internal/namer"
	"github.com/jmylchreest/hexword/internal/render"
)

type recordingNamer struct {
	mu    sync.Mutex
	words []string
	name  string
}

func (n *recordingNamer) Name(_ context.Context, req namer.Request) (string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.words = append(n.words, req.Word)
	return n.name, nil
}

func (n *recordingNamer) seen() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.words...)
}

var (
	sharedRenderer     *render.Renderer
	sharedRendererOnce sync.Once
)

func newTestServer(t *testing.T, opts Options) *Server {
	t.Helper()

	sharedRendererOnce.Do(func() {
		r, err := render.NewRenderer()
		require.NoError(t, err)
		sharedRenderer = r
	})
	if opts.Renderer == nil {
		opts.Renderer = sharedRenderer
	}
	if opts.Pick == nil {
		opts.Pick = func() string { return "Jade" }
	}

	s, err := New(opts)
	require.NoError(t, err)
	return s
}

func do(t *testing.T, h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestLanding(t *testing.T) {
	t.Parallel()

	h := newTestServer(t, Options{}).Handler()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Host = "hex.example.com"
	req.Header.Set("X-Forwarded-Proto", "https")

	rec := do(t, h, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), `content="https://hex.example.com/api/frame-image/Farcaster"`)
	assert.Contains(t, rec.Body.String(), `content="https://hex.example.com/api/frame"`)
}

func TestUnknownRoute(t *testing.T) {
	t.Parallel()

	h := newTestServer(t, Options{}).Handler()
	rec := do(t, h, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFrameImage(t *testing.T) {
	t.Parallel()

	n := &recordingNamer{name: "Jade Echo"}
	h := newTestServer(t, Options{Namer: n}).Handler()

	tests := []struct {
		path string
		word string
	}{
		{path: "/api/frame-image/Aurora", word: "Aurora"},
		{path: "/api/frame-image/hello%20world", word: "hello world"},
		{path: "/api/frame-image/", word: "Farcaster"},
	}

	for _, tt := range tests {
		rec := do(t, h, httptest.NewRequest(http.MethodGet, tt.path, nil))
		require.Equal(t, http.StatusOK, rec.Code, tt.path)
		assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
		assert.Equal(t, "public, max-age=3600", rec.Header().Get("Cache-Control"))

		img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
		require.NoError(t, err)
		assert.Equal(t, render.Width, img.Bounds().Dx())
		assert.Equal(t, render.Height, img.Bounds().Dy())
	}

	assert.Equal(t, []string{"Aurora", "hello world", "Farcaster"}, n.seen())
}

func TestFrameImage_Cache(t *testing.T) {
	t.Parallel()

	cache, err := cardcache.New(t.TempDir())
	require.NoError(t, err)

	n := &recordingNamer{name: "Jade Echo"}
	h := newTestServer(t, Options{Namer: n, Cache: cache}).Handler()

	first := do(t, h, httptest.NewRequest(http.MethodGet, "/api/frame-image/Aurora", nil))
	require.Equal(t, http.StatusOK, first.Code)
	second := do(t, h, httptest.NewRequest(http.MethodGet, "/api/frame-image/Aurora", nil))
	require.Equal(t, http.StatusOK, second.Code)

	assert.Equal(t, first.Body.Bytes(), second.Body.Bytes())
	assert.Equal(t, []string{"Aurora"}, n.seen(), "cached card must not be named again")

	cached, ok, err := cache.Get(cardcache.Key("Aurora", colour.ModeBasic))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, first.Body.Bytes(), cached)
}

func TestColorName(t *testing.T) {
	t.Parallel()

	h := newTestServer(t, Options{Namer: &recordingNamer{name: "\"Lime Spark\""}}).Handler()
	want := colour.ColorFor("test", colour.ModeBasic)

	tests := []struct {
		name        string
		contentType string
		body        string
	}{
		{name: "json", contentType: "application/json", body: `{"word":"test"}`},
		{name: "json with charset", contentType: "application/json; charset=utf-8", body: `{"word":" test "}`},
		{name: "form", contentType: "application/x-www-form-urlencoded", body: url.Values{"word": {"test"}}.Encode()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/color-name", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", tt.contentType)

			rec := do(t, h, req)
			require.Equal(t, http.StatusOK, rec.Code)

			var got ColorNameResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.True(t, got.Success)
			assert.Equal(t, "Lime Spark", got.ColorName)
			assert.Equal(t, "test", got.Word)
			assert.Equal(t, want.Hex, got.HexColor)
			assert.Equal(t, want.RGB, got.RGB)
		})
	}
}

func TestColorName_Errors(t *testing.T) {
	t.Parallel()

	h := newTestServer(t, Options{}).Handler()

	tests := []struct {
		name        string
		contentType string
		body        string
		wantError   string
	}{
		{name: "missing word", contentType: "application/json", body: `{}`, wantError: "Word is required"},
		{name: "blank word", contentType: "application/json", body: `{"word":"   "}`, wantError: "Word is required"},
		{name: "empty body", contentType: "application/json", body: ``, wantError: "Word is required"},
		{name: "empty form", contentType: "application/x-www-form-urlencoded", body: ``, wantError: "Word is required"},
		{name: "malformed json", contentType: "application/json", body: `{"word":`, wantError: "Invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/color-name", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", tt.contentType)

			rec := do(t, h, req)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			var got map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, tt.wantError, got["error"])
		})
	}
}

func TestColorName_FallbackOnNamerError(t *testing.T) {
	t.Parallel()

	failing := namer.Func(func(context.Context, namer.Request) (string, error) {
		return "", assert.AnError
	})
	h := newTestServer(t, Options{Namer: failing, NameTimeout: time.Second}).Handler()

	req := httptest.NewRequest(http.MethodPost, "/api/color-name", strings.NewReader(`{"word":"test"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := do(t, h, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var got ColorNameResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, namer.FallbackName("#364492"), got.ColorName)
}

func TestFrameAction(t *testing.T) {
	t.Parallel()

	h := newTestServer(t, Options{}).Handler()

	tests := []struct {
		name     string
		body     string
		wantWord string
	}{
		{name: "generate", body: `{"untrustedData":{"buttonIndex":1,"inputText":" Aurora "}}`, wantWord: "Aurora"},
		{name: "random", body: `{"untrustedData":{"buttonIndex":2,"inputText":"Aurora"}}`, wantWord: "Jade"},
		{name: "no input", body: `{"untrustedData":{"buttonIndex":1}}`, wantWord: "Farcaster"},
		{name: "empty body", body: ``, wantWord: "Farcaster"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/frame", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")

			rec := do(t, h, req)
			require.Equal(t, http.StatusOK, rec.Code)

			res := colour.ColorFor(tt.wantWord, colour.ModeBasic)
			body := rec.Body.String()
			assert.Contains(t, body, "Word to Hex: "+tt.wantWord+" = "+res.Hex)
			assert.Contains(t, body, "/api/frame-image/"+tt.wantWord)
		})
	}
}

func TestFrameAction_Malformed(t *testing.T) {
	t.Parallel()

	h := newTestServer(t, Options{}).Handler()
	rec := do(t, h, httptest.NewRequest(http.MethodPost, "/api/frame", strings.NewReader(`{"untrustedData":`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestColor(t *testing.T) {
	t.Parallel()

	h := newTestServer(t, Options{Mode: colour.ModeBasic}).Handler()

	tests := []struct {
		path    string
		wantHex string
	}{
		{path: "/api/color/a", wantHex: "#1e1e61"},
		{path: "/api/color/a?mode=enhanced", wantHex: "#1e1eb1"},
		{path: "/api/color/test?mode=BASIC", wantHex: "#364492"},
	}

	for _, tt := range tests {
		rec := do(t, h, httptest.NewRequest(http.MethodGet, tt.path, nil))
		require.Equal(t, http.StatusOK, rec.Code, tt.path)

		var got colour.Result
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, tt.wantHex, got.Hex, tt.path)
	}

	rec := do(t, h, httptest.NewRequest(http.MethodGet, "/api/color/a?mode=neon", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	h := newTestServer(t, Options{}).Handler()
	rec := do(t, h, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	h := newTestServer(t, Options{}).Handler()

	rec := do(t, h, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	_, err := uuid.Parse(rec.Header().Get(RequestIDHeader))
	assert.NoError(t, err)

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, id)
	rec = do(t, h, req)
	assert.Equal(t, id, rec.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "not-a-uuid")
	rec = do(t, h, req)
	assert.NotEqual(t, "not-a-uuid", rec.Header().Get(RequestIDHeader))
}

func TestServe_Shutdown(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, Options{ShutdownTimeout: time.Second})

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, listener) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
