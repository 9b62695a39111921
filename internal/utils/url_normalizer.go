package utils

import (
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"

	"github.com/leakscanner/backend/internal/models"
)

// NormalizeStoreURL приводит пользовательский ввод к абсолютному URL.
// Схема без протокола дополняется https://, явные http:// и https://
// сохраняются как есть. Пустой ввод - ErrEmptyURL, он не запускает
// сканирование.
func NormalizeStoreURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", models.ErrEmptyURL
	}

	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		trimmed = "https://" + trimmed
	}

	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Host == "" {
		return "", models.ErrEmptyURL
	}

	return trimmed, nil
}

// RegistrableDomain извлекает регистрируемый домен (eTLD+1) из URL
// для заголовков и имён файлов. myshopify.com находится в приватной
// секции public suffix list, так что mystore.myshopify.com остаётся
// mystore.myshopify.com - это и есть магазин.
func RegistrableDomain(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	host := parsed.Hostname()
	if host == "" {
		return rawURL
	}

	registrable, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}

	return registrable
}
