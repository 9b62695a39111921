package scanner

import (
	"encoding/json"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/leakscanner/backend/internal/models"
)

// rawScanReport - промежуточная форма для детекции отсутствующих полей:
// указатели отличают "поле не пришло" от нулевого значения
type rawScanReport struct {
	Score          *int                   `json:"score"`
	TotalLoss      *float64               `json:"totalLoss"`
	StoreName      *string                `json:"storeName"`
	Summary        *string                `json:"summary"`
	TechnicalAudit *models.TechnicalAudit `json:"technicalAudit"`
	Issues         []models.Issue         `json:"issues"`
}

// ParseScanReport валидирует и декодирует сырой ответ сервиса в ScanReport.
// Пустое тело - ErrEmptyResponse; невалидный JSON или отсутствие
// обязательных полей (score, totalLoss, storeName, summary, issues) -
// ErrMalformedResponse. Числовые границы зажимаются здесь же: score в
// [0,100], денежные поля неотрицательные - дальше этой точки отчёт
// считается доверенным.
func ParseScanReport(raw string) (*models.ScanReport, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, models.ErrEmptyResponse
	}

	content := cleanJSONResponse(raw)
	content = normalizeJSONString(content)

	var parsed rawScanReport
	decoder := json.NewDecoder(strings.NewReader(content))
	if err := decoder.Decode(&parsed); err != nil {
		log.Printf("❌ JSON Parse Error: %v", err)
		log.Printf("📄 Content (first 500 chars): %s", truncate(content, 500))
		return nil, models.ErrMalformedResponse
	}

	if parsed.Score == nil || parsed.TotalLoss == nil || parsed.StoreName == nil ||
		parsed.Summary == nil || parsed.Issues == nil {
		log.Printf("⚠️ В ответе аудита не хватает обязательных полей")
		return nil, models.ErrMalformedResponse
	}

	report := &models.ScanReport{
		Score:          clampScore(*parsed.Score),
		TotalLoss:      clampMoney(*parsed.TotalLoss),
		StoreName:      strings.TrimSpace(*parsed.StoreName),
		Summary:        strings.TrimSpace(*parsed.Summary),
		TechnicalAudit: parsed.TechnicalAudit,
		Issues:         make([]models.Issue, 0, len(parsed.Issues)),
	}

	if report.StoreName == "" || report.Summary == "" {
		return nil, models.ErrMalformedResponse
	}

	for _, issue := range parsed.Issues {
		issue.Category = normalizeCategory(issue.Category)
		issue.Impact = normalizeImpact(issue.Impact)
		issue.EstimatedLoss = clampMoney(issue.EstimatedLoss)
		if issue.ID == "" {
			issue.ID = uuid.NewString()
		}
		report.Issues = append(report.Issues, issue)
	}

	return report, nil
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func clampMoney(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

// normalizeCategory приводит category к каноническому регистру.
// Неизвестные значения остаются как есть: это свободный текст от модели,
// а не повод забраковать весь отчёт.
func normalizeCategory(category string) string {
	trimmed := strings.TrimSpace(category)
	for _, known := range models.KnownCategories {
		if strings.EqualFold(trimmed, known) {
			return known
		}
	}
	return trimmed
}

// normalizeImpact приводит impact к каноническому регистру,
// невалидные значения понижаются до Medium
func normalizeImpact(impact string) string {
	trimmed := strings.TrimSpace(impact)
	for _, known := range models.KnownImpacts {
		if strings.EqualFold(trimmed, known) {
			return known
		}
	}
	log.Printf("⚠️ Невалидный impact '%s', устанавливаем '%s'", impact, models.ImpactMedium)
	return models.ImpactMedium
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
