package source

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

const (
	defaultRegion      = "europe-west1"
	defaultModel       = "gemini-2.5-flash"
	defaultLanguage    = "Arabic"
	defaultTemperature = 0.7
)

// GeminiConfig selects the backend and model used for generation.
// With an APIKey the Gemini API is used; otherwise Vertex AI with
// Application Default Credentials for Project.
type GeminiConfig struct {
	Project     string  `toml:"project"`
	Region      string  `toml:"region"`
	APIKey      string  `toml:"api_key"`
	Model       string  `toml:"model"`
	Language    string  `toml:"language"`
	Temperature float32 `toml:"temperature"`
}

// Enabled reports whether enough is configured to reach a backend.
func (c GeminiConfig) Enabled() bool {
	return c.APIKey != "" || c.Project != ""
}

// Gemini generates puzzles with a Gemini model.
type Gemini struct {
	client      *genai.Client
	modelName   string
	language    string
	temperature float32
}

// NewGemini creates a generator. Set GOOGLE_APPLICATION_CREDENTIALS to the
// service account key file path when using Vertex AI.
func NewGemini(ctx context.Context, cfg GeminiConfig) (*Gemini, error) {
	cc := &genai.ClientConfig{}
	switch {
	case cfg.APIKey != "":
		cc.APIKey = cfg.APIKey
		cc.Backend = genai.BackendGeminiAPI
	case cfg.Project != "":
		cc.Project = cfg.Project
		cc.Location = cfg.Region
		if cc.Location == "" {
			cc.Location = defaultRegion
		}
		cc.Backend = genai.BackendVertexAI
	default:
		return nil, fmt.Errorf("gemini: neither API key nor project configured")
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	g := &Gemini{
		client:      client,
		modelName:   cfg.Model,
		language:    cfg.Language,
		temperature: cfg.Temperature,
	}
	if g.modelName == "" {
		g.modelName = defaultModel
	}
	if g.language == "" {
		g.language = defaultLanguage
	}
	if g.temperature == 0 {
		g.temperature = defaultTemperature
	}
	return g, nil
}
