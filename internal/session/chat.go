package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/leakscanner/backend/internal/models"
)

// chatClient - то, что ChatSession требует от ScannerClient.
// Chat никогда не возвращает ошибку: любая проблема уже подменена
// fallback-текстом уровнем ниже.
type chatClient interface {
	Chat(ctx context.Context, message string, report *models.ScanReport) string
}

const chatGreeting = "Hello! I'm your LeakScanner AI. Have questions about your store scan?"

// ChatSession - append-only транскрипт чата с ботом.
// Сообщения не переупорядочиваются и не удаляются; ответ бота появляется
// только после сообщения пользователя. Не больше одного in-flight
// вызова чата на сессию.
type ChatSession struct {
	mu       sync.Mutex
	client   chatClient
	messages []models.ChatMessage
	typing   bool
}

// NewChatSession создаёт сессию чата с приветственным сообщением бота
func NewChatSession(client chatClient) *ChatSession {
	return &ChatSession{
		client: client,
		messages: []models.ChatMessage{
			{
				ID:        uuid.NewString(),
				Text:      chatGreeting,
				Sender:    models.SenderBot,
				Timestamp: time.Now(),
			},
		},
	}
}

// Send добавляет сообщение пользователя, получает ответ бота и добавляет
// его в транскрипт. Пустой текст - ErrEmptyMessage, параллельный send -
// ErrChatBusy; в обоих случаях транскрипт не меняется. Флаг typing
// снимается на любом исходе.
func (cs *ChatSession) Send(ctx context.Context, text string, report *models.ScanReport) (*models.ChatMessage, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, models.ErrEmptyMessage
	}

	cs.mu.Lock()
	if cs.typing {
		cs.mu.Unlock()
		return nil, models.ErrChatBusy
	}
	cs.typing = true
	cs.messages = append(cs.messages, models.ChatMessage{
		ID:        uuid.NewString(),
		Text:      trimmed,
		Sender:    models.SenderUser,
		Timestamp: time.Now(),
	})
	cs.mu.Unlock()

	// Remote вызов вне мьютекса: он может длиться секундами
	reply := cs.client.Chat(ctx, trimmed, report)

	botMsg := models.ChatMessage{
		ID:        uuid.NewString(),
		Text:      reply,
		Sender:    models.SenderBot,
		Timestamp: time.Now(),
	}

	cs.mu.Lock()
	cs.messages = append(cs.messages, botMsg)
	cs.typing = false
	cs.mu.Unlock()

	return &botMsg, nil
}

// History возвращает копию транскрипта
func (cs *ChatSession) History() []models.ChatMessage {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	history := make([]models.ChatMessage, len(cs.messages))
	copy(history, cs.messages)
	return history
}

// IsTyping сообщает, обрабатывается ли сейчас сообщение
func (cs *ChatSession) IsTyping() bool {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.typing
}
