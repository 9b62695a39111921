package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Web  WebConfig  `yaml:"web"`
	LLM  LLMConfig  `yaml:"llm"`
	Scan ScanConfig `yaml:"scan"`
}

type LLMConfig struct {
	// Provider: "gemini" или "openai" (любой OpenAI-совместимый endpoint)
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
	ApiKey   string `yaml:"apiKey"`
	BaseURL  string `yaml:"baseUrl"`
}

type WebConfig struct {
	ListenAddr string `yaml:"listen_addr"`
}

type ScanConfig struct {
	// Timeout - потолок на один remote вызов scan
	Timeout time.Duration `yaml:"timeout"`
	// ProgressPeriod - период косметического таймера прогресса
	ProgressPeriod time.Duration `yaml:"progress_period"`
	// SettleDelay - пауза после успешного scan перед переключением на Dashboard
	SettleDelay time.Duration `yaml:"settle_delay"`
}

// Load читает конфигурацию из окружения (.env) с опциональным
// YAML-файлом поверх (CONFIG_FILE)
func Load() (*Config, error) {
	// .env опционален: в контейнере переменные приходят из окружения
	_ = godotenv.Load()

	cfg := &Config{
		Web: WebConfig{
			ListenAddr: getEnv("WEB_LISTEN_ADDR", ":8081"),
		},
		LLM: LLMConfig{
			Provider: getEnv("LLM_PROVIDER", "gemini"),
			Model:    getEnv("LLM_MODEL", "gemini-2.5-flash"),
			ApiKey:   os.Getenv("API_KEY"),
			BaseURL:  os.Getenv("LLM_BASE_URL"),
		},
		Scan: ScanConfig{
			Timeout:        getDurationEnv("SCAN_TIMEOUT", 2*time.Minute),
			ProgressPeriod: getDurationEnv("SCAN_PROGRESS_PERIOD", 2500*time.Millisecond),
			SettleDelay:    getDurationEnv("SCAN_SETTLE_DELAY", 500*time.Millisecond),
		},
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
