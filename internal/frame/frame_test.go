package frame

import (
	"crypto/tls"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/hexword/internal/colour"
)

func TestResolve(t *testing.T) {
	t.Parallel()

	pick := func() string { return "Jade" }

	tests := []struct {
		name       string
		action     Action
		wantWord   string
		wantAction string
	}{
		{name: "empty uses default", action: Action{}, wantWord: DefaultWord, wantAction: "generate"},
		{name: "input trimmed", action: Action{UntrustedData: UntrustedData{ButtonIndex: 1, InputText: "  Aurora "}}, wantWord: "Aurora", wantAction: "generate"},
		{name: "random ignores input", action: Action{UntrustedData: UntrustedData{ButtonIndex: 2, InputText: "Aurora"}}, wantWord: "Jade", wantAction: "random"},
		{name: "copy keeps word", action: Action{UntrustedData: UntrustedData{ButtonIndex: 3, InputText: "Onyx"}}, wantWord: "Onyx", wantAction: "copy"},
		{name: "new keeps word", action: Action{UntrustedData: UntrustedData{ButtonIndex: 4}}, wantWord: DefaultWord, wantAction: "new"},
		{name: "unknown button generates", action: Action{UntrustedData: UntrustedData{ButtonIndex: 9, InputText: "x"}}, wantWord: "x", wantAction: "generate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, action := Resolve(tt.action, DefaultWord, pick)
			assert.Equal(t, tt.wantWord, word)
			assert.Equal(t, tt.wantAction, action)
		})
	}
}

func TestRandomWord(t *testing.T) {
	t.Parallel()

	for i := 0; i < 50; i++ {
		assert.Contains(t, RandomWords, RandomWord())
	}
}

func TestBaseURL(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest("GET", "http://localhost:3003/", nil)
	assert.Equal(t, "http://localhost:3003", BaseURL(r))

	r.Header.Set("X-Forwarded-Proto", "https")
	r.Header.Set("X-Forwarded-Host", "hex.example.com")
	assert.Equal(t, "https://hex.example.com", BaseURL(r))

	tlsReq := httptest.NewRequest("GET", "https://secure.example.com/", nil)
	tlsReq.TLS = &tls.ConnectionState{}
	assert.Equal(t, "https://secure.example.com", BaseURL(tlsReq))
}

func TestImageURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://x.io/api/frame-image/hello%20world", ImageURL("https://x.io", "hello world"))
	assert.Equal(t, "https://x.io/api/frame-image/a%2Fb", ImageURL("https://x.io", "a/b"))
}

func TestLandingPage(t *testing.T) {
	t.Parallel()

	page, err := LandingPage("https://x.io", DefaultWord)
	require.NoError(t, err)

	html := string(page)
	assert.Contains(t, html, `<meta property="fc:frame" content="vNext" />`)
	assert.Contains(t, html, `content="https://x.io/api/frame-image/Farcaster"`)
	assert.Contains(t, html, `<meta property="fc:frame:post_url" content="https://x.io/api/frame" />`)
	assert.Contains(t, html, `twitter:card`)
}

func TestResultPage(t *testing.T) {
	t.Parallel()

	res := colour.ColorFor("test", colour.ModeBasic)
	page, err := ResultPage("https://x.io", res)
	require.NoError(t, err)

	html := string(page)
	assert.Contains(t, html, "📋 #364492")
	assert.Contains(t, html, "Word to Hex: test = #364492")
	assert.Contains(t, html, "RGB: 54, 68, 146")
	assert.Contains(t, html, `content="https://x.io/api/frame-image/test"`)
}

func TestResultPage_EscapesWord(t *testing.T) {
	t.Parallel()

	res := colour.ColorFor(`<script>alert("x")</script>`, colour.ModeBasic)
	page, err := ResultPage("https://x.io", res)
	require.NoError(t, err)

	assert.False(t, strings.Contains(string(page), "<script>"), "word must be escaped")
}
