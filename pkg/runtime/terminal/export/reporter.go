package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/fin-tools/credit-atlas/pkg/models/domain"
)

type TableConfig struct {
	SeverityWidth  int
	TitleWidth     int
	CategoryWidth  int
	RecommendWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		SeverityWidth:  8,
		TitleWidth:     38,
		CategoryWidth:  16,
		RecommendWidth: 58,
	}
}

type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

func (c *Reporter) Handle(report *domain.FullAnalysisReport) error {
	funcMap := template.FuncMap{
		"formatRow": func(severity, title, category, recommendation string) string {
			return fmt.Sprintf("| %-*s | %-*s | %-*s | %-*s |",
				c.config.SeverityWidth, severity,
				c.config.TitleWidth, title,
				c.config.CategoryWidth, category,
				c.config.RecommendWidth, recommendation)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+%s+",
				strings.Repeat("-", c.config.SeverityWidth+2),
				strings.Repeat("-", c.config.TitleWidth+2),
				strings.Repeat("-", c.config.CategoryWidth+2),
				strings.Repeat("-", c.config.RecommendWidth+2))
		},
		"reserves": func(r domain.Reserves) string {
			if r.Unbounded {
				return "unlimited"
			}
			return fmt.Sprintf("%.1f months", r.Months)
		},
	}

	tmpl := `
Underwriting Analysis {{.ID}}
Generated: {{.GeneratedAt.Format "2006-01-02 15:04"}}

Qualifying Income: {{printf "%.2f" .Summary.QualifyingIncome}}
Global DSCR:       {{printf "%.4f" .Summary.GlobalDSCR}}
Back-End DTI:      {{printf "%.1f" (mulPct .Summary.BackEndDTI)}}%
Reserves:          {{reserves .Summary.Reserves}}
Risk Score:        {{.RiskScore}} ({{.RiskRating}})
{{if .Flags}}
{{separator}}
{{formatRow "Severity" "Flag" "Category" "Recommendation"}}
{{separator}}
{{range .Flags}}{{formatRow (printf "%s" .Severity) .Title .Category .Recommendation}}
{{end}}{{separator}}
{{else}}
No risk flags raised.
{{end}}`

	funcMap["mulPct"] = func(v float64) float64 { return v * 100 }

	t, err := template.New("report").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, report)
}
