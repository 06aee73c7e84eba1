package namer

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
	"google.golang.org/genai"
)

const (
	// DefaultModel is the Gemini model used when none is configured.
	DefaultModel = "gemini-2.0-flash"

	// BackendGeminiAPI selects the Gemini API (requires an API key).
	BackendGeminiAPI = "gemini-api"
	// BackendVertexAI selects Vertex AI (uses application default credentials).
	BackendVertexAI = "vertex-ai"

	temperature     = 0.9
	maxOutputTokens = 50
)

// generator is the subset of *genai.Models used by GeminiNamer.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiOptions configures a GeminiNamer.
type GeminiOptions struct {
	Model   string
	Backend string
	APIKey  string
	Logger  hclog.Logger
}

// GeminiNamer names colours with a Gemini model.
type GeminiNamer struct {
	models generator
	model  string
	logger hclog.Logger
}

// NewGemini creates a Gemini-backed namer. The Gemini API backend requires
// opts.APIKey; ErrNoAPIKey is returned without it.
func NewGemini(ctx context.Context, opts GeminiOptions) (*GeminiNamer, error) {
	clientConfig := &genai.ClientConfig{}

	if opts.Backend == BackendVertexAI {
		clientConfig.Backend = genai.BackendVertexAI
	} else {
		clientConfig.Backend = genai.BackendGeminiAPI
	}

	if clientConfig.Backend == genai.BackendGeminiAPI {
		if opts.APIKey == "" {
			return nil, fmt.Errorf("gemini namer: %w (set GEMINI_API_KEY or GOOGLE_API_KEY)", ErrNoAPIKey)
		}
		clientConfig.APIKey = opts.APIKey
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gen AI client: %w", err)
	}

	return newGemini(client.Models, opts), nil
}

func newGemini(models generator, opts GeminiOptions) *GeminiNamer {
	model := opts.Model
	if model == "" {
		model = DefaultModel
	}
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &GeminiNamer{models: models, model: model, logger: logger.Named("gemini")}
}

// Model returns the configured model name.
func (g *GeminiNamer) Model() string {
	return g.model
}

// Name asks the model for a one or two word name for the colour.
func (g *GeminiNamer) Name(ctx context.Context, req Request) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](temperature),
		MaxOutputTokens:  maxOutputTokens,
		ResponseMIMEType: "text/plain",
	}

	g.logger.Debug("requesting colour name", "model", g.model, "word", req.Word, "hex", req.Hex)

	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(Prompt(req)), config)
	if err != nil {
		return "", fmt.Errorf("colour name generation failed: %w", err)
	}

	name := Clean(firstText(resp))
	if name == "" {
		return "", ErrEmptyName
	}

	return name, nil
}

// firstText returns the first text part of the first candidate.
func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	content := resp.Candidates[0].Content
	if content == nil {
		return ""
	}
	for _, part := range content.Parts {
		if part != nil && strings.TrimSpace(part.Text) != "" {
			return part.Text
		}
	}
	return ""
}
