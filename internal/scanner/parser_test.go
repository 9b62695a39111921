package scanner

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/leakscanner/backend/internal/models"
)

const validReportJSON = `{
	"score": 68,
	"totalLoss": 4200,
	"storeName": "Aurora Candle Co",
	"summary": "The store leaks revenue through slow LCP and weak meta tags.",
	"technicalAudit": {
		"metaTitle": "Aurora Candle Co - Home",
		"metaDescription": "Candles.",
		"mobileOptimization": "Touch targets below 40px in the nav",
		"lcpScore": "3.1s",
		"fcpScore": "1.4s"
	},
	"issues": [
		{
			"id": "issue_1",
			"category": "SEO",
			"title": "Weak meta description",
			"description": "The homepage meta description has no value proposition.",
			"impact": "High",
			"estimatedLoss": 1200,
			"recommendation": "Rewrite with the shipping offer in the first 120 chars."
		},
		{
			"id": "issue_2",
			"category": "Performance",
			"title": "Slow LCP",
			"description": "Hero image is 2.4MB unoptimized PNG.",
			"impact": "Medium",
			"estimatedLoss": 900,
			"recommendation": "Serve WebP with explicit dimensions."
		}
	]
}`

func TestParseScanReportValid(t *testing.T) {
	report, err := ParseScanReport(validReportJSON)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if report.Score != 68 {
		t.Errorf("Expected score 68, got %d", report.Score)
	}
	if report.TotalLoss != 4200 {
		t.Errorf("Expected totalLoss 4200, got %f", report.TotalLoss)
	}
	if report.StoreName != "Aurora Candle Co" {
		t.Errorf("Expected store name, got %q", report.StoreName)
	}
	if len(report.Issues) != 2 {
		t.Fatalf("Expected 2 issues, got %d", len(report.Issues))
	}
	if report.TechnicalAudit == nil || report.TechnicalAudit.LcpScore != "3.1s" {
		t.Errorf("Technical audit was not decoded")
	}
}

func TestParseScanReportMarkdownFence(t *testing.T) {
	fenced := "```json\n" + validReportJSON + "\n```"

	report, err := ParseScanReport(fenced)
	if err != nil {
		t.Fatalf("Fenced JSON should parse, got: %v", err)
	}
	if report.StoreName != "Aurora Candle Co" {
		t.Errorf("Expected store name, got %q", report.StoreName)
	}
}

func TestParseScanReportEmpty(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t"} {
		if _, err := ParseScanReport(input); !errors.Is(err, models.ErrEmptyResponse) {
			t.Errorf("Input %q: expected ErrEmptyResponse, got %v", input, err)
		}
	}
}

func TestParseScanReportMalformed(t *testing.T) {
	testCases := []struct {
		input string
		desc  string
	}{
		{"not json at all", "Plain text"},
		{`{"score": 50`, "Truncated JSON"},
		{`{"totalLoss": 100, "storeName": "X", "summary": "s", "issues": []}`, "Missing score"},
		{`{"score": 50, "storeName": "X", "summary": "s", "issues": []}`, "Missing totalLoss"},
		{`{"score": 50, "totalLoss": 100, "summary": "s", "issues": []}`, "Missing storeName"},
		{`{"score": 50, "totalLoss": 100, "storeName": "X", "issues": []}`, "Missing summary"},
		{`{"score": 50, "totalLoss": 100, "storeName": "X", "summary": "s"}`, "Missing issues"},
		{`{"score": 50, "totalLoss": 100, "storeName": "  ", "summary": "s", "issues": []}`, "Blank storeName"},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			if _, err := ParseScanReport(tc.input); !errors.Is(err, models.ErrMalformedResponse) {
				t.Errorf("Expected ErrMalformedResponse, got %v", err)
			}
		})
	}
}

func TestParseScanReportClampsBounds(t *testing.T) {
	input := `{
		"score": 150,
		"totalLoss": -500,
		"storeName": "X",
		"summary": "s",
		"issues": [
			{"id": "a", "category": "UX", "title": "t", "description": "d",
			 "impact": "High", "estimatedLoss": -10, "recommendation": "r"}
		]
	}`

	report, err := ParseScanReport(input)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if report.Score != 100 {
		t.Errorf("Expected score clamped to 100, got %d", report.Score)
	}
	if report.TotalLoss != 0 {
		t.Errorf("Expected totalLoss clamped to 0, got %f", report.TotalLoss)
	}
	if report.Issues[0].EstimatedLoss != 0 {
		t.Errorf("Expected estimatedLoss clamped to 0, got %f", report.Issues[0].EstimatedLoss)
	}

	low := `{"score": -5, "totalLoss": 0, "storeName": "X", "summary": "s", "issues": []}`
	report, err = ParseScanReport(low)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if report.Score != 0 {
		t.Errorf("Expected score clamped to 0, got %d", report.Score)
	}
}

func TestParseScanReportNormalizesEnums(t *testing.T) {
	input := `{
		"score": 50, "totalLoss": 100, "storeName": "X", "summary": "s",
		"issues": [
			{"id": "a", "category": "seo", "title": "t", "description": "d",
			 "impact": "HIGH", "estimatedLoss": 10, "recommendation": "r"},
			{"id": "b", "category": "Checkout", "title": "t", "description": "d",
			 "impact": "whatever", "estimatedLoss": 10, "recommendation": "r"}
		]
	}`

	report, err := ParseScanReport(input)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if report.Issues[0].Category != models.CategorySEO {
		t.Errorf("Expected category normalized to SEO, got %q", report.Issues[0].Category)
	}
	if report.Issues[0].Impact != models.ImpactHigh {
		t.Errorf("Expected impact normalized to High, got %q", report.Issues[0].Impact)
	}
	if report.Issues[1].Impact != models.ImpactMedium {
		t.Errorf("Expected invalid impact downgraded to Medium, got %q", report.Issues[1].Impact)
	}
}

func TestParseScanReportFillsMissingIssueIDs(t *testing.T) {
	input := `{
		"score": 50, "totalLoss": 100, "storeName": "X", "summary": "s",
		"issues": [
			{"category": "UX", "title": "t", "description": "d",
			 "impact": "Low", "estimatedLoss": 10, "recommendation": "r"}
		]
	}`

	report, err := ParseScanReport(input)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if report.Issues[0].ID == "" {
		t.Error("Expected missing issue id to be backfilled")
	}
}

func TestParseScanReportRawNewlinesInStrings(t *testing.T) {
	input := "{\"score\": 50, \"totalLoss\": 100, \"storeName\": \"X\", " +
		"\"summary\": \"line one\nline two\", \"issues\": []}"

	report, err := ParseScanReport(input)
	if err != nil {
		t.Fatalf("Raw newline inside string should be normalized, got: %v", err)
	}
	if report.Summary != "line one\nline two" {
		t.Errorf("Unexpected summary: %q", report.Summary)
	}
}

// TestScanReportRoundTrip: отчёт, сериализованный в схему сервиса и
// распарсенный обратно, совпадает по ключевым полям
func TestScanReportRoundTrip(t *testing.T) {
	original := &models.ScanReport{
		Score:     42,
		TotalLoss: 1337,
		StoreName: "Roundtrip Store",
		Summary:   "Summary text.",
		Issues: []models.Issue{
			{ID: "i1", Category: models.CategoryTrust, Title: "t", Description: "d",
				Impact: models.ImpactLow, EstimatedLoss: 5, Recommendation: "r"},
		},
	}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	parsed, err := ParseScanReport(string(data))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if parsed.Score != original.Score ||
		parsed.TotalLoss != original.TotalLoss ||
		parsed.StoreName != original.StoreName ||
		parsed.Summary != original.Summary ||
		len(parsed.Issues) != len(original.Issues) {
		t.Errorf("Round trip mismatch:\noriginal: %+v\nparsed:   %+v", original, parsed)
	}
}
