package llm

import (
	"context"
	"log"
	"time"

	"github.com/firebase/genkit/go/ai"
)

// NOTE: Для просмотра LLM запросов/ответов используй GenKit DevUI!
// Запусти: genkit start -- go run cmd/main.go
// Затем открой: http://localhost:4000

// getMiddlewares возвращает стандартный middleware stack для всех LLM запросов.
// Retry здесь нет: каждый remote вызов выполняется ровно один раз
// за действие пользователя, повтор - это повторное действие пользователя.
func getMiddlewares() []ai.ModelMiddleware {
	return []ai.ModelMiddleware{
		LoggingMiddleware(),
	}
}

// LoggingMiddleware логирует каждый вызов модели и его длительность
func LoggingMiddleware() ai.ModelMiddleware {
	return func(next ai.ModelFunc) ai.ModelFunc {
		return func(ctx context.Context, req *ai.ModelRequest, cb ai.ModelStreamCallback) (*ai.ModelResponse, error) {
			start := time.Now()

			resp, err := next(ctx, req, cb)
			if err != nil {
				log.Printf("❌ LLM вызов завершился ошибкой за %v: %v", time.Since(start), err)
				return nil, err
			}

			log.Printf("✅ LLM вызов выполнен за %v", time.Since(start))
			return resp, nil
		}
	}
}
