package main

import (
	"context"
	"log"

	"github.com/leakscanner/backend/internal/config"
	"github.com/leakscanner/backend/internal/llm"
	"github.com/leakscanner/backend/internal/scanner"
	"github.com/leakscanner/backend/internal/storage"
	"github.com/leakscanner/backend/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Без ключа сервер всё равно поднимается: scan вернёт понятную
	// ошибку конфигурации вместо падения процесса
	var provider llm.Provider
	if cfg.LLM.ApiKey == "" {
		log.Println("⚠️ API_KEY не задан: сканирование будет возвращать ошибку конфигурации")
	} else {
		provider, err = llm.NewProvider(context.Background(), cfg.LLM)
		if err != nil {
			log.Fatalf("Failed to initialize LLM provider: %v", err)
		}
		log.Printf("🤖 LLM провайдер: %s (%s)", provider.GetName(), provider.GetModel())
	}

	scannerClient := scanner.NewClient(provider, cfg.LLM.ApiKey != "")
	store := storage.NewSessionStore()
	server := web.NewServer(cfg, store, scannerClient)

	log.Fatal(server.Start())
}
