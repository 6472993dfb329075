package llm

import (
	"context"

	"github.com/PabloGalante/omni-agent/internal/config"
	"github.com/PabloGalante/omni-agent/internal/domain"
	"github.com/PabloGalante/omni-agent/internal/observability"
)

const DefaultModel = "gemini-3-flash-preview"

// New picks the client for the configured provider. A gemini provider
// without an API key yields an Unavailable client instead of an error so
// the service still starts.
func New(ctx context.Context, cfg config.LLMConfig) (domain.LLMClient, error) {
	log := observability.LoggerFromContext(ctx).With("provider", cfg.Provider, "model", cfg.ModelName)

	switch cfg.Provider {
	case config.ProviderMock:
		log.Info("using mock LLM client")
		return NewMockLLM(), nil
	case config.ProviderVertex:
		log.Info("using Vertex AI client", "project", cfg.GCPProjectID, "location", cfg.GCPLocation)
		return NewGeminiClient(ctx, GeminiOptions{
			Project:   cfg.GCPProjectID,
			Location:  cfg.GCPLocation,
			ModelName: cfg.ModelName,
		})
	default:
		if cfg.APIKey == "" {
			log.Warn("no API key configured, LLM calls will fail")
			return NewUnavailable("no API key configured"), nil
		}
		log.Info("using Gemini API client")
		return NewGeminiClient(ctx, GeminiOptions{
			APIKey:    cfg.APIKey,
			ModelName: cfg.ModelName,
		})
	}
}
