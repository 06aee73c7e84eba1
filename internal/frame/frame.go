// Package frame builds Farcaster frame and Open Graph pages for word colours.
package frame

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strings"

	"github.com/jmylchreest/hexword/internal/colour"
)

//go:embed templates/*.html.tmpl
var templatesFS embed.FS

var templates = template.Must(template.ParseFS(templatesFS, "templates/*.html.tmpl"))

// DefaultWord is shown when no word has been entered.
const DefaultWord = "Farcaster"

// Frame buttons, numbered as the client reports them.
const (
	ButtonGenerate = 1
	ButtonRandom   = 2
	ButtonCopy     = 3
	ButtonNew      = 4
)

// RandomWords is the pool the Random button picks from.
var RandomWords = []string{
	"Cosmic", "Nebula", "Aurora", "Phoenix", "Mystic", "Prism", "Eclipse", "Stellar",
	"Velvet", "Crystal", "Thunder", "Whisper", "Ember", "Frost", "Sapphire", "Crimson",
	"Lavender", "Midnight", "Golden", "Silver", "Copper", "Jade", "Ivory", "Onyx",
	"Turquoise", "Coral", "Magenta", "Indigo", "Chartreuse", "Vermillion",
}

// RandomWord picks a word from RandomWords.
func RandomWord() string {
	return RandomWords[rand.IntN(len(RandomWords))]
}

// CastID identifies the cast a frame action came from.
type CastID struct {
	FID  int    `json:"fid"`
	Hash string `json:"hash"`
}

// UntrustedData is the client-reported part of a frame action.
type UntrustedData struct {
	FID         int    `json:"fid"`
	ButtonIndex int    `json:"buttonIndex"`
	InputText   string `json:"inputText"`
	CastID      CastID `json:"castId"`
}

// Action is the body of a frame POST.
type Action struct {
	UntrustedData UntrustedData `json:"untrustedData"`
}

// Resolve returns the word an action asks for and a short action label.
// Typed input (trimmed) wins over defaultWord; the Random button replaces
// the word with pick().
func Resolve(a Action, defaultWord string, pick func() string) (word, action string) {
	word = strings.TrimSpace(a.UntrustedData.InputText)
	if word == "" {
		word = defaultWord
	}

	switch a.UntrustedData.ButtonIndex {
	case ButtonRandom:
		return pick(), "random"
	case ButtonCopy:
		return word, "copy"
	case ButtonNew:
		return word, "new"
	default:
		return word, "generate"
	}
}

// BaseURL reconstructs the public base URL of a request, honouring
// X-Forwarded-Proto and X-Forwarded-Host from a proxy.
func BaseURL(r *http.Request) string {
	scheme := r.Header.Get("X-Forwarded-Proto")
	if scheme == "" {
		if r.TLS != nil {
			scheme = "https"
		} else {
			scheme = "http"
		}
	}

	host := r.Header.Get("X-Forwarded-Host")
	if host == "" {
		host = r.Host
	}

	return fmt.Sprintf("%s://%s", scheme, host)
}

// ImageURL returns the share image URL for a word.
func ImageURL(baseURL, word string) string {
	return baseURL + "/api/frame-image/" + url.PathEscape(word)
}

// PostURL returns the frame action endpoint.
func PostURL(baseURL string) string {
	return baseURL + "/api/frame"
}

type landingData struct {
	ImageURL    string
	PostURL     string
	ColorURL    string
	DefaultWord string
}

// LandingPage renders the initial frame page for defaultWord.
func LandingPage(baseURL, defaultWord string) ([]byte, error) {
	return execute("landing.html.tmpl", landingData{
		ImageURL:    ImageURL(baseURL, defaultWord),
		PostURL:     PostURL(baseURL),
		ColorURL:    baseURL + "/api/color/" + url.PathEscape(defaultWord),
		DefaultWord: defaultWord,
	})
}

type resultData struct {
	ImageURL string
	PostURL  string
	Result   colour.Result
}

// ResultPage renders the frame page shown after an action.
func ResultPage(baseURL string, res colour.Result) ([]byte, error) {
	return execute("result.html.tmpl", resultData{
		ImageURL: ImageURL(baseURL, res.Word),
		PostURL:  PostURL(baseURL),
		Result:   res,
	})
}

func execute(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
