package llm

import (
	"fmt"

	"github.com/leakscanner/backend/internal/models"
)

// TruncateString обрезает строку до указанной длины
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// BuildStoreAuditPrompt создаёт промпт для аудита утечек выручки.
// Модель обязана заземлить выводы живым поиском по реальному сайту и
// вернуть строго форму ScanReport: ровно 5 issues, category и impact
// только из перечисленных наборов.
func BuildStoreAuditPrompt(req *models.AuditRequest) string {
	return fmt.Sprintf(
		`Perform a live technical revenue leak audit for the website: %s

CRITICAL: You MUST use live web search to find real details about %s.
Analyze and report specifically on:
1. Meta Title: Is it optimized for CTR?
2. Meta Description: Does it include a strong value prop?
3. Mobile Optimization: Check for viewport issues or small touch targets.
4. Performance: Estimate LCP (Largest Contentful Paint) and FCP (First Contentful Paint).
5. Revenue Leaks: Identify exactly 5 specific high-impact leaks.

Return ONLY a JSON object in this exact shape, no markdown, no commentary:
{
  "score": number (0-100),
  "totalLoss": number (estimated monthly USD, non-negative),
  "storeName": "Actual Brand Name",
  "summary": "2-3 sentence executive summary",
  "technicalAudit": {
    "metaTitle": "Current Title",
    "metaDescription": "Current Description",
    "mobileOptimization": "Optimization status",
    "lcpScore": "e.g. 2.4s",
    "fcpScore": "e.g. 1.1s"
  },
  "issues": [
    {
      "id": "unique_id",
      "category": "Product|Checkout|UX|Trust|Tracking|SEO|Performance",
      "title": "Clear issue title",
      "description": "Specific finding from %s",
      "impact": "High|Medium|Low",
      "estimatedLoss": number (non-negative USD),
      "recommendation": "Exact fix"
    }
  ]
}

The "issues" array must contain exactly 5 entries. "category" and "impact"
must be taken verbatim from the enumerated sets above.`,
		req.StoreURL,
		req.StoreURL,
		req.StoreURL,
	)
}

// BuildChatSystemInstruction создаёт системную инструкцию ассистента.
// Отчёт опционален: до первого сканирования подставляются заглушки.
func BuildChatSystemInstruction(report *models.ScanReport) string {
	storeName := "Unknown"
	score := "N/A"
	loss := "0"
	metaTitle := "Pending"

	if report != nil {
		storeName = report.StoreName
		score = fmt.Sprintf("%d", report.Score)
		loss = fmt.Sprintf("%.0f", report.TotalLoss)
		if report.TechnicalAudit != nil && report.TechnicalAudit.MetaTitle != "" {
			metaTitle = report.TechnicalAudit.MetaTitle
		}
	}

	return fmt.Sprintf(
		`You are the LeakScanner Assistant. You are a world-class Shopify optimization expert.
Context:
- User's Store: %s
- Profit Score: %s/100
- Monthly Loss: $%s
- SEO Audit: %s

Instructions:
- Be professional and helpful.
- If asked "Hi", say "Hello! I'm your LeakScanner assistant. How can I help you optimize %s today?"
- Provide specific advice based on the scan results (Performance, SEO, Mobile).
- If the user asks about an issue like "how do I fix meta titles", explain the process specifically for their store.`,
		storeName,
		score,
		loss,
		metaTitle,
		storeNameOrFallback(storeName),
	)
}

func storeNameOrFallback(storeName string) string {
	if storeName == "" || storeName == "Unknown" {
		return "your store"
	}
	return storeName
}
