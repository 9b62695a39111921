package models

// AuditRequest - запрос на аудит магазина для LLM провайдера
type AuditRequest struct {
	// StoreURL - уже нормализованный абсолютный URL магазина
	StoreURL string
}

// ChatPrompt - запрос на ответ ассистента.
// Report опционален: до первого успешного scan контекста нет.
type ChatPrompt struct {
	Message string
	Report  *ScanReport
}
