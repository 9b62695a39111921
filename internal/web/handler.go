package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/leakscanner/backend/internal/models"
	"github.com/leakscanner/backend/internal/pdf"
	"github.com/leakscanner/backend/internal/session"
	"github.com/leakscanner/backend/internal/utils"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, models.ErrorDTO{Error: msg})
}

// sessionFromRequest достаёт сессию по query-параметру "session"
func (s *Server) sessionFromRequest(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id := r.URL.Query().Get("session")
	if id == "" {
		writeError(w, http.StatusBadRequest, "session parameter is required")
		return nil, false
	}

	sess, ok := s.store.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return nil, false
	}
	return sess, true
}

// handleSession: POST создаёт сессию, GET возвращает её снимок
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		sess := session.New(s.scanner, s, s.sessCfg)
		s.store.Store(sess)
		writeJSON(w, http.StatusCreated, map[string]string{"session_id": sess.ID})

	case http.MethodGet:
		sess, ok := s.sessionFromRequest(w, r)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, sess.Snapshot())

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleScan запускает аудит. Ответ 202: результат приходит через
// websocket и GET /api/session
func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	sess, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}

	var req models.ScanRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := sess.SubmitURL(req.URL); err != nil {
		switch {
		case errors.Is(err, models.ErrEmptyURL):
			writeError(w, http.StatusBadRequest, "url is required")
		case errors.Is(err, models.ErrScanInFlight):
			writeError(w, http.StatusConflict, "scan is already in flight")
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "scanning"})
}

func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	sess, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}

	var req models.NavigateRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	view, ok := session.ParseViewState(req.View)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown view")
		return
	}

	if err := sess.NavigateTo(view); err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, sess.Snapshot())
}

// handleAuthForm: формы Sign In / Sign Up косметические, никакой
// аутентификации нет - submit просто возвращает на Landing
func (s *Server) handleAuthForm(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	sess, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}

	if err := sess.NavigateTo(session.ViewLanding); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	sess, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}

	report := sess.Report()
	if report == nil {
		writeError(w, http.StatusNotFound, "no scan report available")
		return
	}

	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleReportPDF(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	sess, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}

	report := sess.Report()
	if report == nil {
		writeError(w, http.StatusNotFound, "no scan report available")
		return
	}

	buf, err := pdf.RenderReport(report, sess.StoreURL())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate pdf")
		return
	}

	domain := utils.RegistrableDomain(sess.StoreURL())
	filename := fmt.Sprintf("leakscanner-%s.pdf", strings.ReplaceAll(domain, ".", "-"))

	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Length", fmt.Sprintf("%d", buf.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// handleChat: синхронный remote вызов - хендлер ждёт ответ бота.
// Ошибки чата сюда не доходят: fallback-текст приходит как обычный
// ответ бота.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	sess, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}

	var req models.ChatRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	reply, err := sess.Chat(r.Context(), req.Text)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrEmptyMessage):
			writeError(w, http.StatusBadRequest, "message text is required")
		case errors.Is(err, models.ErrChatBusy):
			writeError(w, http.StatusTooManyRequests, "previous message is still processing")
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, models.ChatResponseDTO{Reply: *reply})
}

func (s *Server) handleChatHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	sess, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, sess.ChatHistory())
}
