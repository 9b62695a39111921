package models

import (
	"errors"
	"fmt"
)

// Ошибки сканирования. Каждая из них прерывает Scanning и возвращает
// пользователя на Landing с сообщением; автоматических retry нет.
var (
	// ErrNoAPIKey - в конфигурации нет API ключа, сканирование невозможно
	ErrNoAPIKey = errors.New("api key is not configured")

	// ErrEmptyResponse - сервис вернул пустое тело ответа
	ErrEmptyResponse = errors.New("empty response from audit service")

	// ErrMalformedResponse - ответ не распарсился или не содержит обязательных полей
	ErrMalformedResponse = errors.New("malformed audit response")
)

// Ошибки пользовательского ввода и дисциплины сессии
var (
	// ErrEmptyURL - пустой URL не запускает сканирование (no-op)
	ErrEmptyURL = errors.New("store url is empty")

	// ErrScanInFlight - на сессию одновременно допускается один scan
	ErrScanInFlight = errors.New("scan is already in flight")

	// ErrEmptyMessage - пустое сообщение в чат отбрасывается
	ErrEmptyMessage = errors.New("chat message is empty")

	// ErrChatBusy - предыдущее сообщение ещё обрабатывается
	ErrChatBusy = errors.New("chat reply is already in flight")

	// ErrNoReport - операция требует готового отчёта
	ErrNoReport = errors.New("no scan report available")
)

// TransportError - сетевая/сервисная ошибка удалённого вызова
type TransportError struct {
	Provider string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s request failed: %v", e.Provider, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
