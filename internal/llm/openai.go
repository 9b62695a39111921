package llm

import (
	"context"
	"fmt"

	openai "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/openai/openai-go/v2/shared"

	"github.com/leakscanner/backend/internal/config"
	"github.com/leakscanner/backend/internal/models"
)

// OpenAIProvider - провайдер для OpenAI-совместимых API (OpenAI, LocalAI,
// LM Studio, vLLM с OpenAI endpoint и т.д.)
type OpenAIProvider struct {
	client openai.Client
	name   string
	model  string
}

// NewOpenAIProvider создаёт OpenAI-совместимый провайдер.
// BaseURL опционален: пустое значение означает api.openai.com.
func NewOpenAIProvider(cfg config.LLMConfig) (*OpenAIProvider, error) {
	if cfg.ApiKey == "" {
		return nil, models.ErrNoAPIKey
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.ApiKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	return &OpenAIProvider{
		client: openai.NewClient(opts...),
		name:   "openai",
		model:  model,
	}, nil
}

// auditResponseFormat строит строгую JSON-схему ответа для scan.
// Для chat схема не ставится: ответ - свободный текст.
func auditResponseFormat() openai.ChatCompletionNewParamsResponseFormatUnion {
	schema := GenerateSchema[models.ScanReport]()
	schemaParam := openai.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:        "scan_report",
		Description: openai.String("revenue leak audit report"),
		Schema:      schema,
		Strict:      openai.Bool(true),
	}
	return openai.ChatCompletionNewParamsResponseFormatUnion{
		OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
			JSONSchema: schemaParam,
		},
	}
}

// GenerateStoreAudit выполняет аудит магазина через chat completions.
// OpenAI-совместимые endpoints не дают live-search grounding, поэтому
// промпт тот же, но находки опираются на знания модели.
func (p *OpenAIProvider) GenerateStoreAudit(
	ctx context.Context,
	req *models.AuditRequest,
) (string, error) {
	prompt := BuildStoreAuditPrompt(req)

	chatCompletion, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Model:          shared.ChatModel(p.model),
		ResponseFormat: auditResponseFormat(),
		Temperature:    openai.Float(0.2),
	})
	if err != nil {
		return "", fmt.Errorf("store audit failed: %w", err)
	}

	if len(chatCompletion.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	return chatCompletion.Choices[0].Message.Content, nil
}

// GenerateChatReply возвращает свободный текст ответа ассистента
func (p *OpenAIProvider) GenerateChatReply(
	ctx context.Context,
	req *models.ChatPrompt,
) (string, error) {
	chatCompletion, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(BuildChatSystemInstruction(req.Report)),
			openai.UserMessage(req.Message),
		},
		Model:       shared.ChatModel(p.model),
		Temperature: openai.Float(0.7),
	})
	if err != nil {
		return "", fmt.Errorf("chat reply failed: %w", err)
	}

	if len(chatCompletion.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	return chatCompletion.Choices[0].Message.Content, nil
}

func (p *OpenAIProvider) GetName() string {
	return p.name
}

func (p *OpenAIProvider) GetModel() string {
	return p.model
}
