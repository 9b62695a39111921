package llm

import (
	"strings"
	"testing"

	"github.com/leakscanner/backend/internal/models"
)

func TestBuildStoreAuditPrompt(t *testing.T) {
	prompt := BuildStoreAuditPrompt(&models.AuditRequest{StoreURL: "https://mystore.myshopify.com"})

	// Промпт обязан требовать живой поиск и жёсткую форму ответа
	required := []string{
		"https://mystore.myshopify.com",
		"live web search",
		"exactly 5",
		"Product|Checkout|UX|Trust|Tracking|SEO|Performance",
		"High|Medium|Low",
		"ONLY a JSON object",
	}

	for _, substr := range required {
		if !strings.Contains(prompt, substr) {
			t.Errorf("Prompt is missing %q", substr)
		}
	}

	if strings.Count(prompt, "https://mystore.myshopify.com") < 2 {
		t.Error("Store URL should be repeated in the prompt body")
	}
}

func TestBuildChatSystemInstructionWithoutReport(t *testing.T) {
	instruction := BuildChatSystemInstruction(nil)

	// До первого сканирования в контекст подставляются заглушки
	required := []string{
		"LeakScanner Assistant",
		"User's Store: Unknown",
		"Profit Score: N/A/100",
		"Monthly Loss: $0",
		"SEO Audit: Pending",
		"your store",
	}

	for _, substr := range required {
		if !strings.Contains(instruction, substr) {
			t.Errorf("Instruction is missing %q:\n%s", substr, instruction)
		}
	}
}

func TestBuildChatSystemInstructionWithReport(t *testing.T) {
	report := &models.ScanReport{
		Score:     68,
		TotalLoss: 4200,
		StoreName: "Aurora Candle Co",
		Summary:   "Summary.",
		TechnicalAudit: &models.TechnicalAudit{
			MetaTitle: "Aurora Candle Co - Home",
		},
	}

	instruction := BuildChatSystemInstruction(report)

	required := []string{
		"User's Store: Aurora Candle Co",
		"Profit Score: 68/100",
		"Monthly Loss: $4200",
		"SEO Audit: Aurora Candle Co - Home",
		"optimize Aurora Candle Co today?",
	}

	for _, substr := range required {
		if !strings.Contains(instruction, substr) {
			t.Errorf("Instruction is missing %q:\n%s", substr, instruction)
		}
	}
}

func TestTruncateString(t *testing.T) {
	if got := TruncateString("hello", 10); got != "hello" {
		t.Errorf("Short string should pass through, got %q", got)
	}
	if got := TruncateString("hello world", 5); got != "hello..." {
		t.Errorf("Expected truncation with ellipsis, got %q", got)
	}
}
