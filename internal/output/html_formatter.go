package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/rgehrsitz/wealthpath/internal/domain"
)

// HTMLFormatter produces a standalone HTML report.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":    FormatCurrency,
	"dollars": FormatDollars,
	"pct":     FormatPercentage,
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(plan *domain.RetirementPlan) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		Plan        *domain.RetirementPlan
		Mode        string
		Assumptions []string
	}{plan, runMode(plan.Deterministic), Assumptions(plan)}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
