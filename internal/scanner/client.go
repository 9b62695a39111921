package scanner

import (
	"context"
	"log"
	"strings"

	"github.com/leakscanner/backend/internal/llm"
	"github.com/leakscanner/backend/internal/models"
)

// ChatFallbackMessage - фиксированный ответ бота на любую ошибку чата.
// Сломанный чат не должен ронять или блокировать UI, поэтому ошибки
// чата никогда не поднимаются выше клиента.
const ChatFallbackMessage = "I'm having trouble connecting to my AI brain. Please ensure your API Key is valid and try again!"

// Client - единственный компонент, который разговаривает с LLM сервисом.
// Обе операции - чистые remote вызовы без локального состояния,
// результат сохраняет вызывающая сторона.
type Client struct {
	provider      llm.Provider
	keyConfigured bool
}

// NewClient создаёт клиент сканера.
// provider может быть nil, если ключ не сконфигурирован: Scan тогда
// падает с ErrNoAPIKey ещё до попытки remote вызова.
func NewClient(provider llm.Provider, keyConfigured bool) *Client {
	return &Client{
		provider:      provider,
		keyConfigured: keyConfigured,
	}
}

// Scan выполняет аудит магазина: один remote вызов, без retry.
// url обязан быть уже нормализован (см. utils.NormalizeStoreURL).
// Ошибки типизированы: ErrNoAPIKey, *TransportError,
// ErrEmptyResponse/ErrMalformedResponse из парсера.
func (c *Client) Scan(ctx context.Context, url string) (*models.ScanReport, error) {
	if !c.keyConfigured || c.provider == nil {
		return nil, models.ErrNoAPIKey
	}

	raw, err := c.provider.GenerateStoreAudit(ctx, &models.AuditRequest{StoreURL: url})
	if err != nil {
		return nil, &models.TransportError{
			Provider: c.provider.GetName(),
			Err:      err,
		}
	}

	report, err := ParseScanReport(raw)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Аудит %s завершён: score=%d, issues=%d", url, report.Score, len(report.Issues))
	return report, nil
}

// Chat возвращает ответ ассистента на сообщение пользователя.
// Любая ошибка (включая пустой ответ) проглатывается и подменяется
// fallback-текстом - наружу ошибка не выходит никогда.
func (c *Client) Chat(ctx context.Context, message string, report *models.ScanReport) string {
	if !c.keyConfigured || c.provider == nil {
		return ChatFallbackMessage
	}

	reply, err := c.provider.GenerateChatReply(ctx, &models.ChatPrompt{
		Message: message,
		Report:  report,
	})
	if err != nil {
		log.Printf("⚠️ Ошибка чата (подменяем fallback-ответом): %v", err)
		return ChatFallbackMessage
	}

	if strings.TrimSpace(reply) == "" {
		return ChatFallbackMessage
	}

	return reply
}
