package models

import "time"

// Sender - кто написал сообщение в чате
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// ChatMessage - одно сообщение в транскрипте чата.
// Транскрипт append-only: сообщения не переупорядочиваются и не удаляются.
type ChatMessage struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}
