package llm

import (
	"context"
	"fmt"

	"github.com/leakscanner/backend/internal/config"
)

// ProviderType - тип провайдера
type ProviderType string

const (
	ProviderTypeGemini ProviderType = "gemini"
	ProviderTypeOpenAI ProviderType = "openai"
)

// NewProvider создаёт провайдер на основе конфигурации.
// "gemini" идёт через Genkit (с Google Search grounding),
// всё OpenAI-совместимое - через openai-go.
func NewProvider(ctx context.Context, cfg config.LLMConfig) (Provider, error) {
	switch ProviderType(cfg.Provider) {
	case ProviderTypeGemini:
		genkitApp, err := InitGenkitApp(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to init genkit: %w", err)
		}
		return NewGeminiProvider(genkitApp, cfg)

	case ProviderTypeOpenAI:
		return NewOpenAIProvider(cfg)

	default:
		return nil, fmt.Errorf("unknown provider type: %s", cfg.Provider)
	}
}
