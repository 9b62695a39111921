package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/leakscanner/backend/internal/models"
)

// fakeChatClient - контролируемый чат-клиент
type fakeChatClient struct {
	mu    sync.Mutex
	reply string
	delay time.Duration
	calls int
}

func (f *fakeChatClient) Chat(ctx context.Context, message string, report *models.ScanReport) string {
	f.mu.Lock()
	f.calls++
	reply, delay := f.reply, f.delay
	f.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	return reply
}

func TestChatSessionStartsWithGreeting(t *testing.T) {
	cs := NewChatSession(&fakeChatClient{})

	history := cs.History()
	if len(history) != 1 {
		t.Fatalf("Expected greeting only, got %d messages", len(history))
	}
	if history[0].Sender != models.SenderBot {
		t.Errorf("Greeting must come from the bot, got %s", history[0].Sender)
	}
	if history[0].Text != chatGreeting {
		t.Errorf("Unexpected greeting: %q", history[0].Text)
	}
}

func TestChatSessionSend(t *testing.T) {
	client := &fakeChatClient{reply: "Start with the hero image."}
	cs := NewChatSession(client)

	botMsg, err := cs.Send(context.Background(), "  where do I start?  ", nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if botMsg.Text != "Start with the hero image." {
		t.Errorf("Unexpected bot reply: %q", botMsg.Text)
	}

	// Транскрипт: приветствие, пользователь (trimmed), бот
	history := cs.History()
	if len(history) != 3 {
		t.Fatalf("Expected 3 messages, got %d", len(history))
	}
	if history[1].Sender != models.SenderUser || history[1].Text != "where do I start?" {
		t.Errorf("Unexpected user message: %+v", history[1])
	}
	if history[2].Sender != models.SenderBot {
		t.Errorf("Expected bot reply last, got %+v", history[2])
	}
	if cs.IsTyping() {
		t.Error("Typing flag must be cleared after send")
	}
}

func TestChatSessionRejectsEmptyMessage(t *testing.T) {
	cs := NewChatSession(&fakeChatClient{})

	for _, text := range []string{"", "   ", "\n"} {
		if _, err := cs.Send(context.Background(), text, nil); !errors.Is(err, models.ErrEmptyMessage) {
			t.Errorf("Input %q: expected ErrEmptyMessage, got %v", text, err)
		}
	}

	if len(cs.History()) != 1 {
		t.Error("Rejected messages must not change the transcript")
	}
}

func TestChatSessionRejectsConcurrentSend(t *testing.T) {
	client := &fakeChatClient{reply: "ok", delay: 100 * time.Millisecond}
	cs := NewChatSession(client)

	done := make(chan struct{})
	go func() {
		cs.Send(context.Background(), "first", nil)
		close(done)
	}()

	// Ждём, пока первый send займёт чат
	deadline := time.Now().Add(2 * time.Second)
	for !cs.IsTyping() && time.Now().Before(deadline) {
		time.Sleep(2 * time.Millisecond)
	}
	if !cs.IsTyping() {
		t.Fatal("First send never marked the chat as typing")
	}

	if _, err := cs.Send(context.Background(), "second", nil); !errors.Is(err, models.ErrChatBusy) {
		t.Errorf("Expected ErrChatBusy, got %v", err)
	}

	<-done
	if cs.IsTyping() {
		t.Error("Typing flag must be cleared after first send completes")
	}

	// Отклонённый second не должен оставить след в транскрипте
	for _, msg := range cs.History() {
		if msg.Text == "second" {
			t.Error("Rejected message leaked into the transcript")
		}
	}
}

func TestChatSessionHistoryIsACopy(t *testing.T) {
	cs := NewChatSession(&fakeChatClient{reply: "ok"})

	history := cs.History()
	history[0].Text = "mutated"

	if cs.History()[0].Text != chatGreeting {
		t.Error("History must return a copy, not the underlying slice")
	}
}
