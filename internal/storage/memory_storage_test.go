package storage

import (
	"context"
	"testing"

	"github.com/leakscanner/backend/internal/models"
	"github.com/leakscanner/backend/internal/session"
)

type noopScanner struct{}

func (noopScanner) Scan(ctx context.Context, url string) (*models.ScanReport, error) {
	return nil, models.ErrNoAPIKey
}

func (noopScanner) Chat(ctx context.Context, message string, report *models.ScanReport) string {
	return "ok"
}

func TestSessionStore(t *testing.T) {
	store := NewSessionStore()

	if store.Count() != 0 {
		t.Errorf("New store must be empty, got %d", store.Count())
	}

	first := session.New(noopScanner{}, nil, session.Config{})
	second := session.New(noopScanner{}, nil, session.Config{})
	store.Store(first)
	store.Store(second)

	// Count отдаётся наружу (health endpoint)
	if store.Count() != 2 {
		t.Errorf("Expected 2 sessions, got %d", store.Count())
	}

	got, ok := store.Get(first.ID)
	if !ok || got != first {
		t.Errorf("Expected stored session back, got %v (ok=%v)", got, ok)
	}

	if _, ok := store.Get("missing"); ok {
		t.Error("Unknown id must not resolve")
	}

	store.Delete(first.ID)
	if store.Count() != 1 {
		t.Errorf("Expected 1 session after delete, got %d", store.Count())
	}
	if _, ok := store.Get(first.ID); ok {
		t.Error("Deleted session must not resolve")
	}

	// Delete незнакомого id - no-op
	store.Delete("missing")
	if store.Count() != 1 {
		t.Errorf("Deleting unknown id must not change the store, got %d", store.Count())
	}
}
