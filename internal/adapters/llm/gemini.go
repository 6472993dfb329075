package llm

import (
	"context"
	"fmt"

	"github.com/PabloGalante/omni-agent/internal/domain"
	"google.golang.org/genai"
)

type GeminiClient struct {
	client       *genai.Client
	defaultModel string
}

// GeminiOptions selects the backend: an API key targets the Gemini API,
// a project + location targets Vertex AI.
type GeminiOptions struct {
	APIKey    string
	Project   string
	Location  string
	ModelName string
}

// NewGeminiClient creates an LLMClient backed by Gemini.
func NewGeminiClient(ctx context.Context, opts GeminiOptions) (*GeminiClient, error) {
	cc := &genai.ClientConfig{}
	switch {
	case opts.Project != "":
		if opts.Location == "" {
			return nil, fmt.Errorf("gemini: location is required with a project")
		}
		cc.Project = opts.Project
		cc.Location = opts.Location
		cc.Backend = genai.BackendVertexAI
	case opts.APIKey != "":
		cc.APIKey = opts.APIKey
		cc.Backend = genai.BackendGeminiAPI
	default:
		return nil, fmt.Errorf("gemini: either an API key or a project is required")
	}

	modelName := opts.ModelName
	if modelName == "" {
		modelName = DefaultModel
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}

	return &GeminiClient{
		client:       client,
		defaultModel: modelName,
	}, nil
}

// Generate implements domain.LLMClient. An empty completion is returned as
// "" without error; callers fall back on their own defaults.
func (g *GeminiClient) Generate(ctx context.Context, prompt string, opts domain.GenerateOptions) (string, error) {
	model := opts.Model
	if model == "" {
		model = g.defaultModel
	}

	res, err := g.client.Models.GenerateContent(ctx, model, genai.Text(prompt), generateConfig(opts))
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	return res.Text(), nil
}

func generateConfig(opts domain.GenerateOptions) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		Temperature: opts.Temperature,
	}
	if opts.ThinkingBudget > 0 {
		budget := opts.ThinkingBudget
		cfg.ThinkingConfig = &genai.ThinkingConfig{ThinkingBudget: &budget}
	}
	if opts.ResponseSchema != nil {
		cfg.ResponseMIMEType = "application/json"
		cfg.ResponseSchema = toGenaiSchema(opts.ResponseSchema)
	}
	return cfg
}

func toGenaiSchema(s *domain.Schema) *genai.Schema {
	if s == nil {
		return nil
	}

	out := &genai.Schema{Required: s.Required}
	switch s.Type {
	case domain.SchemaObject:
		out.Type = genai.TypeObject
	case domain.SchemaArray:
		out.Type = genai.TypeArray
	default:
		out.Type = genai.TypeString
	}

	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = toGenaiSchema(prop)
		}
	}
	out.Items = toGenaiSchema(s.Items)
	return out
}
