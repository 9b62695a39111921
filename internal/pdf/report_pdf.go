package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/johnfercher/maroto/pkg/color"
	"github.com/johnfercher/maroto/pkg/consts"
	"github.com/johnfercher/maroto/pkg/pdf"
	"github.com/johnfercher/maroto/pkg/props"

	"github.com/leakscanner/backend/internal/models"
)

// RenderReport рендерит отчёт в PDF - серверный аналог кнопки
// "Download PDF" на дашборде
func RenderReport(report *models.ScanReport, storeURL string) (*bytes.Buffer, error) {
	m := pdf.NewMaroto(consts.Portrait, consts.A4)
	m.SetPageMargins(20, 20, 20)

	darkGray := color.Color{Red: 38, Green: 38, Blue: 34}
	mediumGray := color.Color{Red: 121, Green: 119, Blue: 109}
	green := color.Color{Red: 0, Green: 128, Blue: 96}

	m.Row(15, func() {
		m.Col(12, func() {
			m.Text("REVENUE LEAK AUDIT", props.Text{
				Size:  24,
				Style: consts.Bold,
				Color: darkGray,
			})
		})
	})

	m.Row(10, func() {
		m.Col(12, func() {
			m.Text(report.StoreName, props.Text{
				Size:  16,
				Style: consts.Bold,
				Color: green,
			})
		})
	})

	m.Row(5, func() {
		m.Col(6, func() {
			m.Text(storeURL, props.Text{
				Size:  9,
				Color: mediumGray,
			})
		})
		m.Col(6, func() {
			m.Text(fmt.Sprintf("Date: %s", time.Now().Format("Jan 02, 2006")), props.Text{
				Size:  9,
				Color: mediumGray,
				Align: consts.Right,
			})
		})
	})

	m.Row(8, func() {})

	m.Row(6, func() {
		m.Col(6, func() {
			m.Text(fmt.Sprintf("Profit Score: %d/100", report.Score), props.Text{
				Size:  12,
				Style: consts.Bold,
				Color: darkGray,
			})
		})
		m.Col(6, func() {
			m.Text(fmt.Sprintf("Est. Monthly Loss: $%.0f", report.TotalLoss), props.Text{
				Size:  12,
				Style: consts.Bold,
				Color: darkGray,
				Align: consts.Right,
			})
		})
	})

	m.Row(10, func() {
		m.Col(12, func() {
			m.Text(report.Summary, props.Text{
				Size:  9,
				Color: mediumGray,
			})
		})
	})

	if report.TechnicalAudit != nil {
		m.Row(8, func() {})
		m.Row(6, func() {
			m.Col(12, func() {
				m.Text("TECHNICAL AUDIT", props.Text{
					Size:  8,
					Style: consts.Bold,
					Color: darkGray,
				})
			})
		})

		audit := report.TechnicalAudit
		technicalRows := [][2]string{
			{"Meta Title", audit.MetaTitle},
			{"Meta Description", audit.MetaDescription},
			{"Mobile Optimization", audit.MobileOptimization},
			{"LCP", audit.LcpScore},
			{"FCP", audit.FcpScore},
		}

		for _, row := range technicalRows {
			if row[1] == "" {
				continue
			}
			label, value := row[0], row[1]
			m.Row(5, func() {
				m.Col(3, func() {
					m.Text(label, props.Text{
						Size:  8,
						Style: consts.Bold,
						Color: darkGray,
					})
				})
				m.Col(9, func() {
					m.Text(value, props.Text{
						Size:  8,
						Color: mediumGray,
					})
				})
			})
		}
	}

	m.Row(8, func() {})

	m.Row(6, func() {
		m.Col(5, func() {
			m.Text("Issue", props.Text{
				Size:  8,
				Style: consts.Bold,
				Color: darkGray,
			})
		})
		m.Col(2, func() {
			m.Text("Category", props.Text{
				Size:  8,
				Style: consts.Bold,
				Color: darkGray,
			})
		})
		m.Col(2, func() {
			m.Text("Impact", props.Text{
				Size:  8,
				Style: consts.Bold,
				Color: darkGray,
				Align: consts.Right,
			})
		})
		m.Col(3, func() {
			m.Text("Est. Loss", props.Text{
				Size:  8,
				Style: consts.Bold,
				Color: darkGray,
				Align: consts.Right,
			})
		})
	})

	for _, issue := range report.Issues {
		issue := issue
		m.Row(6, func() {
			m.Col(5, func() {
				m.Text(issue.Title, props.Text{
					Size:  8,
					Color: darkGray,
				})
			})
			m.Col(2, func() {
				m.Text(issue.Category, props.Text{
					Size:  8,
					Color: mediumGray,
				})
			})
			m.Col(2, func() {
				m.Text(issue.Impact, props.Text{
					Size:  8,
					Color: mediumGray,
					Align: consts.Right,
				})
			})
			m.Col(3, func() {
				m.Text(fmt.Sprintf("$%.0f", issue.EstimatedLoss), props.Text{
					Size:  8,
					Color: mediumGray,
					Align: consts.Right,
				})
			})
		})
		m.Row(5, func() {
			m.Col(12, func() {
				m.Text("Fix: "+issue.Recommendation, props.Text{
					Size:  7,
					Color: mediumGray,
				})
			})
		})
	}

	m.Row(10, func() {})
	m.Row(5, func() {
		m.Col(12, func() {
			m.Text("Generated by LeakScanner", props.Text{
				Size:  7,
				Color: mediumGray,
				Align: consts.Center,
			})
		})
	})

	buf, err := m.Output()
	if err != nil {
		return nil, fmt.Errorf("failed to render report pdf: %w", err)
	}
	return &buf, nil
}
