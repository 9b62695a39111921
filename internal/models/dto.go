package models

// SessionDTO - снимок состояния сессии для фронтенда
type SessionDTO struct {
	SessionID    string `json:"session_id"`
	View         string `json:"view"`
	StoreURL     string `json:"store_url,omitempty"`
	Error        string `json:"error,omitempty"`
	HasReport    bool   `json:"has_report"`
	ProgressStep int    `json:"progress_step"`
	IsTyping     bool   `json:"is_typing"`
}

// ScanRequestDTO - тело POST /api/scan
type ScanRequestDTO struct {
	URL string `json:"url"`
}

// NavigateRequestDTO - тело POST /api/navigate
type NavigateRequestDTO struct {
	View string `json:"view"`
}

// ChatRequestDTO - тело POST /api/chat
type ChatRequestDTO struct {
	Text string `json:"text"`
}

// ChatResponseDTO - ответ POST /api/chat
type ChatResponseDTO struct {
	Reply ChatMessage `json:"reply"`
}

// ErrorDTO - единый формат ошибок API
type ErrorDTO struct {
	Error string `json:"error"`
}
