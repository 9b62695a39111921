package session

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/leakscanner/backend/internal/models"
	"github.com/leakscanner/backend/internal/utils"
)

// Scanner - то, что сессии нужно от ScannerClient
type Scanner interface {
	Scan(ctx context.Context, url string) (*models.ScanReport, error)
	Chat(ctx context.Context, message string, report *models.ScanReport) string
}

// Broadcaster получает события сессии для доставки в UI (websocket hub).
// Может быть nil - тогда события просто не рассылаются.
type Broadcaster interface {
	Broadcast(msgType, sessionID string, data interface{})
}

// Config - тайминги сессии
type Config struct {
	// ScanTimeout - потолок на один remote вызов scan
	ScanTimeout time.Duration
	// ProgressPeriod - период косметического таймера
	ProgressPeriod time.Duration
	// SettleDelay - пауза после успешного scan, чтобы последний шаг
	// прогресса был виден до переключения view
	SettleDelay time.Duration
}

func (c Config) withDefaults() Config {
	if c.ScanTimeout <= 0 {
		c.ScanTimeout = 2 * time.Minute
	}
	if c.ProgressPeriod <= 0 {
		c.ProgressPeriod = 2500 * time.Millisecond
	}
	if c.SettleDelay <= 0 {
		c.SettleDelay = 500 * time.Millisecond
	}
	return c
}

// Сообщения об ошибках сканирования для пользователя
const (
	errMsgNoAPIKey = "Analysis failed. This usually means the API key is not configured correctly in the environment."
	errMsgBadData  = "Analysis failed. The audit service returned an unusable report. Please try again."
	errMsgGeneric  = "Analysis failed. Please check the URL and your API Key configuration."
)

// Session - состояние одной пользовательской сессии: активный view,
// текущий отчёт, транскрипт чата. Каждое поле пишется только под mu;
// отчёт заменяется целиком следующим успешным scan.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu        sync.Mutex
	view      ViewState
	storeURL  string
	lastError string
	scanning  bool
	report    *models.ScanReport
	progress  *ProgressAnimator

	chat        *ChatSession
	scanner     Scanner
	broadcaster Broadcaster
	cfg         Config
}

// New создаёт сессию в состоянии Landing
func New(scanner Scanner, broadcaster Broadcaster, cfg Config) *Session {
	return &Session{
		ID:          uuid.NewString(),
		CreatedAt:   time.Now(),
		view:        ViewLanding,
		chat:        NewChatSession(scanner),
		scanner:     scanner,
		broadcaster: broadcaster,
		cfg:         cfg.withDefaults(),
	}
}

// SubmitURL - переход Landing→Scanning: нормализует URL, сбрасывает
// ошибку, запускает аниматор прогресса и асинхронный scan.
// Пустой URL - no-op (ErrEmptyURL), повторный submit во время
// сканирования отклоняется (ErrScanInFlight).
func (s *Session) SubmitURL(raw string) error {
	normalized, err := utils.NormalizeStoreURL(raw)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.scanning {
		s.mu.Unlock()
		return models.ErrScanInFlight
	}
	s.scanning = true
	s.lastError = ""
	s.storeURL = normalized
	s.view = ViewScanning

	progress := NewProgressAnimator(
		ScanProgressMessages(normalized),
		s.cfg.ProgressPeriod,
		func(step int, message string) {
			s.broadcast("progress", map[string]interface{}{
				"step":    step,
				"message": message,
			})
		},
	)
	s.progress = progress
	s.mu.Unlock()

	s.broadcast("view", string(ViewScanning))

	progress.Start()
	go s.runScan(normalized, progress)

	return nil
}

// runScan выполняет remote вызов и завершает переход Scanning→Dashboard
// или Scanning→Landing. Аниматор останавливается на обоих путях.
func (s *Session) runScan(url string, progress *ProgressAnimator) {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ScanTimeout)
	defer cancel()

	report, err := s.scanner.Scan(ctx, url)
	if err != nil {
		progress.Stop()
		log.Printf("❌ Сканирование %s провалилось: %v", url, err)

		s.mu.Lock()
		s.scanning = false
		s.view = ViewLanding
		s.lastError = scanErrorMessage(err)
		s.mu.Unlock()

		s.broadcast("view", string(ViewLanding))
		return
	}

	// Settling delay: финальный шаг прогресса должен быть виден
	time.Sleep(s.cfg.SettleDelay)
	progress.Stop()

	s.mu.Lock()
	s.scanning = false
	s.report = report
	s.view = ViewDashboard
	s.mu.Unlock()

	s.broadcast("view", string(ViewDashboard))
	s.broadcast("report", map[string]interface{}{
		"store_name": report.StoreName,
		"score":      report.Score,
	})
}

// scanErrorMessage переводит типизированную ошибку в текст баннера
func scanErrorMessage(err error) string {
	switch {
	case errors.Is(err, models.ErrNoAPIKey):
		return errMsgNoAPIKey
	case errors.Is(err, models.ErrEmptyResponse), errors.Is(err, models.ErrMalformedResponse):
		return errMsgBadData
	default:
		return errMsgGeneric
	}
}

// NavigateTo - прямой переход по навигации без асинхронной работы.
// Dashboard доступен только при наличии отчёта, Scanning - никогда.
func (s *Session) NavigateTo(v ViewState) error {
	if !navigable(v) {
		return errors.New("view is not a navigation target")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if v == ViewDashboard && s.report == nil {
		return models.ErrNoReport
	}

	s.view = v
	return nil
}

// Chat отправляет сообщение в чат сессии. Scan и chat независимы:
// чат разрешён и во время сканирования.
func (s *Session) Chat(ctx context.Context, text string) (*models.ChatMessage, error) {
	return s.chat.Send(ctx, text, s.Report())
}

// ChatHistory возвращает копию транскрипта
func (s *Session) ChatHistory() []models.ChatMessage {
	return s.chat.History()
}

// Report возвращает текущий отчёт (nil до первого успешного scan)
func (s *Session) Report() *models.ScanReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.report
}

// View возвращает активный view
func (s *Session) View() ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// StoreURL возвращает последний отсканированный (нормализованный) URL
func (s *Session) StoreURL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.storeURL
}

// LastError возвращает текст баннера ошибки ("" если ошибки нет)
func (s *Session) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

// Snapshot собирает DTO состояния сессии для API
func (s *Session) Snapshot() models.SessionDTO {
	s.mu.Lock()
	step := 0
	if s.progress != nil {
		step = s.progress.Step()
	}
	dto := models.SessionDTO{
		SessionID:    s.ID,
		View:         string(s.view),
		StoreURL:     s.storeURL,
		Error:        s.lastError,
		HasReport:    s.report != nil,
		ProgressStep: step,
	}
	s.mu.Unlock()

	dto.IsTyping = s.chat.IsTyping()
	return dto
}

// Close останавливает аниматор при teardown сессии.
// Сам in-flight scan не отменяется (ограничение принято продуктом),
// но его результат упадёт в уже закрытую сессию без побочных эффектов.
func (s *Session) Close() {
	s.mu.Lock()
	progress := s.progress
	s.mu.Unlock()

	if progress != nil {
		progress.Stop()
	}
}

func (s *Session) broadcast(msgType string, data interface{}) {
	if s.broadcaster != nil {
		s.broadcaster.Broadcast(msgType, s.ID, data)
	}
}
