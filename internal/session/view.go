package session

import "strings"

// ViewState - активный экран сессии. Ровно один активен в любой момент.
type ViewState string

const (
	ViewLanding    ViewState = "LANDING"
	ViewScanning   ViewState = "SCANNING"
	ViewDashboard  ViewState = "DASHBOARD"
	ViewPricing    ViewState = "PRICING"
	ViewHowItWorks ViewState = "HOW_IT_WORKS"
	ViewAuth       ViewState = "AUTH"
	ViewSignup     ViewState = "SIGNUP"
)

// ParseViewState разбирает значение из API (без учёта регистра)
func ParseViewState(s string) (ViewState, bool) {
	switch ViewState(strings.ToUpper(strings.TrimSpace(s))) {
	case ViewLanding:
		return ViewLanding, true
	case ViewScanning:
		return ViewScanning, true
	case ViewDashboard:
		return ViewDashboard, true
	case ViewPricing:
		return ViewPricing, true
	case ViewHowItWorks:
		return ViewHowItWorks, true
	case ViewAuth:
		return ViewAuth, true
	case ViewSignup:
		return ViewSignup, true
	default:
		return "", false
	}
}

// navigable сообщает, доступен ли view как прямая цель навигации.
// Scanning достижим только через scan, Dashboard - только при наличии
// отчёта (проверяется в Session.NavigateTo).
func navigable(v ViewState) bool {
	switch v {
	case ViewLanding, ViewPricing, ViewHowItWorks, ViewAuth, ViewSignup, ViewDashboard:
		return true
	default:
		return false
	}
}
