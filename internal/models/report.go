package models

// IssueCategory - категория утечки выручки
type IssueCategory = string

const (
	CategoryProduct     IssueCategory = "Product"
	CategoryCheckout    IssueCategory = "Checkout"
	CategoryUX          IssueCategory = "UX"
	CategoryTrust       IssueCategory = "Trust"
	CategoryTracking    IssueCategory = "Tracking"
	CategorySEO         IssueCategory = "SEO"
	CategoryPerformance IssueCategory = "Performance"
)

// IssueImpact - ordinal-оценка влияния находки
type IssueImpact = string

const (
	ImpactHigh   IssueImpact = "High"
	ImpactMedium IssueImpact = "Medium"
	ImpactLow    IssueImpact = "Low"
)

// Issue - одна находка аудита, живёт только внутри родительского отчёта
type Issue struct {
	ID             string  `json:"id"`
	Category       string  `json:"category"`
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	Impact         string  `json:"impact"`
	EstimatedLoss  float64 `json:"estimatedLoss"`
	Recommendation string  `json:"recommendation"`
}

// TechnicalAudit - технический срез аудита (свободный текст от модели)
type TechnicalAudit struct {
	MetaTitle          string `json:"metaTitle"`
	MetaDescription    string `json:"metaDescription"`
	MobileOptimization string `json:"mobileOptimization"`
	LcpScore           string `json:"lcpScore"`
	FcpScore           string `json:"fcpScore"`
}

// ScanReport - результат одного сканирования магазина.
// Создаётся атомарно одним успешным вызовом scan и дальше не мутируется,
// следующий успешный scan заменяет отчёт целиком.
// JSON-теги повторяют контракт удалённого сервиса (camelCase).
type ScanReport struct {
	Score          int             `json:"score"`
	TotalLoss      float64         `json:"totalLoss"`
	StoreName      string          `json:"storeName"`
	Summary        string          `json:"summary"`
	TechnicalAudit *TechnicalAudit `json:"technicalAudit,omitempty"`
	Issues         []Issue         `json:"issues"`
}

// KnownCategories - допустимые значения category в каноническом регистре
var KnownCategories = []IssueCategory{
	CategoryProduct,
	CategoryCheckout,
	CategoryUX,
	CategoryTrust,
	CategoryTracking,
	CategorySEO,
	CategoryPerformance,
}

// KnownImpacts - допустимые значения impact
var KnownImpacts = []IssueImpact{ImpactHigh, ImpactMedium, ImpactLow}
