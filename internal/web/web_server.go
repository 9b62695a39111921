package web

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/leakscanner/backend/internal/config"
	"github.com/leakscanner/backend/internal/middlewares"
	"github.com/leakscanner/backend/internal/session"
	"github.com/leakscanner/backend/internal/storage"
	"github.com/leakscanner/backend/internal/websocket"
)

type Server struct {
	config  *config.Config
	store   *storage.SessionStore
	scanner session.Scanner
	hub     *websocket.Hub
	server  *http.Server
	sessCfg session.Config
}

func NewServer(cfg *config.Config, store *storage.SessionStore, scanner session.Scanner) *Server {
	hub := websocket.NewHub()
	go hub.Run()

	return &Server{
		config:  cfg,
		store:   store,
		scanner: scanner,
		hub:     hub,
		sessCfg: session.Config{
			ScanTimeout:    cfg.Scan.Timeout,
			ProgressPeriod: cfg.Scan.ProgressPeriod,
			SettleDelay:    cfg.Scan.SettleDelay,
		},
	}
}

func (s *Server) Start() error {
	mux := http.NewServeMux()

	// API endpoints
	mux.HandleFunc("/api/session", s.handleSession)
	mux.HandleFunc("/api/scan", s.handleScan)
	mux.HandleFunc("/api/navigate", s.handleNavigate)
	mux.HandleFunc("/api/auth", s.handleAuthForm)
	mux.HandleFunc("/api/signup", s.handleAuthForm)
	mux.HandleFunc("/api/report", s.handleReport)
	mux.HandleFunc("/api/report/pdf", s.handleReportPDF)
	mux.HandleFunc("/api/chat", s.handleChat)
	mux.HandleFunc("/api/chat/history", s.handleChatHistory)

	// WebSocket endpoint
	mux.HandleFunc("/ws", s.hub.ServeWS)

	// Health check
	mux.HandleFunc(
		"/health", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"status":   "ok",
				"service":  "leakscanner-api",
				"sessions": s.store.Count(),
			})
		},
	)

	s.server = &http.Server{
		Addr:         s.config.Web.ListenAddr,
		Handler:      middlewares.CORS(mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 3 * time.Minute, // chat ждёт remote вызов в хендлере
	}

	log.Printf("📊 API Server запущен на %s", s.config.Web.ListenAddr)
	log.Println("📡 Доступные endpoints:")
	log.Println("   POST /api/session            - Создать сессию")
	log.Println("   GET  /api/session?session=ID - Состояние сессии")
	log.Println("   POST /api/scan               - Запустить аудит магазина")
	log.Println("   POST /api/navigate           - Переключить view")
	log.Println("   POST /api/auth, /api/signup  - Косметические формы")
	log.Println("   GET  /api/report             - Текущий отчёт")
	log.Println("   GET  /api/report/pdf         - Отчёт как PDF")
	log.Println("   POST /api/chat               - Сообщение ассистенту")
	log.Println("   GET  /api/chat/history       - Транскрипт чата")
	log.Println("   WS   /ws?session=ID          - Live события сессии")
	log.Println("   GET  /health                 - Health check")

	return s.server.ListenAndServe()
}

func (s *Server) Stop() error {
	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.server.Shutdown(ctx)
	}
	return nil
}

// Broadcast пробрасывает события сессий в websocket hub
func (s *Server) Broadcast(msgType, sessionID string, data interface{}) {
	s.hub.Broadcast(msgType, sessionID, data)
}
