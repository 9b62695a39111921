package llm

import (
	"context"
	"fmt"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/googlegenai"
	"google.golang.org/genai"

	"github.com/leakscanner/backend/internal/config"
	"github.com/leakscanner/backend/internal/models"
)

// GeminiProvider - провайдер для Google Gemini через Genkit
type GeminiProvider struct {
	genkitApp *genkit.Genkit
	modelName string
}

// NewGeminiProvider создаёт Gemini провайдер с уже инициализированным GenkitApp
func NewGeminiProvider(genkitApp *genkit.Genkit, cfg config.LLMConfig) (*GeminiProvider, error) {
	if genkitApp == nil {
		return nil, fmt.Errorf("genkitApp cannot be nil")
	}

	return &GeminiProvider{
		genkitApp: genkitApp,
		modelName: "googleai/" + cfg.Model,
	}, nil
}

// InitGenkitApp создаёт и инициализирует Genkit с Google AI плагином
func InitGenkitApp(ctx context.Context, cfg config.LLMConfig) (*genkit.Genkit, error) {
	if cfg.ApiKey == "" {
		return nil, models.ErrNoAPIKey
	}

	return genkit.Init(
		ctx, genkit.WithPlugins(
			&googlegenai.GoogleAI{
				APIKey: cfg.ApiKey,
			},
		),
	)
}

// GenerateStoreAudit выполняет аудит магазина.
// Включает Google Search grounding, чтобы находки ссылались на реальный
// сайт, и просит JSON как MIME-тип ответа. Ровно одна попытка на вызов.
func (p *GeminiProvider) GenerateStoreAudit(
	ctx context.Context,
	req *models.AuditRequest,
) (string, error) {
	prompt := BuildStoreAuditPrompt(req)

	resp, err := genkit.Generate(
		ctx,
		p.genkitApp,
		ai.WithModelName(p.modelName),
		ai.WithPrompt(prompt),
		ai.WithConfig(&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
		}),
		ai.WithMiddleware(getMiddlewares()...),
	)
	if err != nil {
		return "", fmt.Errorf("store audit failed: %w", err)
	}

	return resp.Text(), nil
}

// GenerateChatReply возвращает свободный текст ответа ассистента
func (p *GeminiProvider) GenerateChatReply(
	ctx context.Context,
	req *models.ChatPrompt,
) (string, error) {
	resp, err := genkit.Generate(
		ctx,
		p.genkitApp,
		ai.WithModelName(p.modelName),
		ai.WithSystem(BuildChatSystemInstruction(req.Report)),
		ai.WithPrompt(req.Message),
		ai.WithConfig(&genai.GenerateContentConfig{
			Temperature: genai.Ptr[float32](0.7),
		}),
		ai.WithMiddleware(getMiddlewares()...),
	)
	if err != nil {
		return "", fmt.Errorf("chat reply failed: %w", err)
	}

	return resp.Text(), nil
}

func (p *GeminiProvider) GetName() string {
	return "gemini"
}

func (p *GeminiProvider) GetModel() string {
	return p.modelName
}
