package llm

import (
	"context"

	"github.com/leakscanner/backend/internal/models"
)

// Provider - интерфейс для любого LLM провайдера.
// Оба метода возвращают сырой текст ответа модели: валидация и парсинг
// отчёта выполняются выше, в scanner, единообразно для всех провайдеров.
type Provider interface {
	// GenerateStoreAudit выполняет аудит магазина и возвращает сырой JSON-текст
	GenerateStoreAudit(ctx context.Context, req *models.AuditRequest) (string, error)

	// GenerateChatReply возвращает свободный текст ответа ассистента
	GenerateChatReply(ctx context.Context, req *models.ChatPrompt) (string, error)

	// GetName возвращает название провайдера (для логирования)
	GetName() string

	// GetModel возвращает используемую модель
	GetModel() string
}
