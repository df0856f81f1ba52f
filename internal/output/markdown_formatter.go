package output

import (
	"bytes"
	"fmt"

	"github.com/charmbracelet/glamour"
	md "github.com/nao1215/markdown"
	"github.com/rgehrsitz/wealthpath/internal/domain"
)

// MarkdownFormatter renders the plan as a Markdown document.
type MarkdownFormatter struct{}

func (m MarkdownFormatter) Name() string { return "markdown" }

func (m MarkdownFormatter) Format(plan *domain.RetirementPlan) ([]byte, error) {
	return []byte(PlanMarkdown(plan)), nil
}

// PlanMarkdown builds the Markdown report shared by the markdown and pretty
// formatters.
func PlanMarkdown(plan *domain.RetirementPlan) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Retirement Plan")
	doc.PlainText(fmt.Sprintf("Seed %d (%s). Retiring at %d, projected to age %d.",
		plan.Seed, runMode(plan.Deterministic), plan.Inputs.RetirementAge, plan.Inputs.LifeExpectancy))

	doc.H2("Summary")
	doc.Table(md.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Savings at Retirement", FormatDollars(plan.TotalRetirementSavings)},
			{"Annual Retirement Income", FormatDollars(plan.EstimatedAnnualRetirementIncome)},
			{"Income Replacement", FormatPercentage(plan.IncomeReplacementRatio)},
			{"Monthly Social Security", FormatCurrency(plan.MonthlySocialSecurity)},
			{"Spouse Monthly Social Security", FormatCurrency(plan.SpouseMonthlySocialSecurity)},
			{"Sustainability Score", fmt.Sprintf("%d/100", plan.SustainabilityScore)},
			{"Success Probability", fmt.Sprintf("%d%%", plan.SuccessProbability)},
			{"Portfolio Lasts To", fmt.Sprintf("age %d", plan.PortfolioLongevity)},
		},
	})

	doc.H2("Assumptions")
	doc.BulletList(Assumptions(plan)...)

	if len(plan.SocialSecurity) > 0 {
		doc.H2("Social Security Options")
		rows := make([][]string, 0, len(plan.SocialSecurity))
		for _, ss := range plan.SocialSecurity {
			rows = append(rows, []string{
				intToString(ss.ClaimingAge),
				FormatCurrency(ss.MonthlyBenefit),
				FormatDollars(ss.LifetimeTotal),
			})
		}
		doc.Table(md.TableSet{Header: []string{"Claim Age", "Monthly", "Lifetime"}, Rows: rows})
	}

	if len(plan.NetWorthProjection) > 0 {
		doc.H2("Net Worth Milestones")
		var rows [][]string
		for _, p := range milestones(plan.NetWorthProjection) {
			label := intToString(p.Age)
			if p.IsRetirementAge {
				label = md.Bold(label)
			}
			rows = append(rows, []string{
				label,
				intToString(p.Year),
				FormatDollars(p.Investments()),
				FormatDollars(p.RealEstateEquity),
				FormatDollars(p.TotalNetWorth),
			})
		}
		doc.Table(md.TableSet{Header: []string{"Age", "Year", "Investments", "Home Equity", "Net Worth"}, Rows: rows})
	}

	if len(plan.Recommendations) > 0 {
		doc.H2("Recommendations")
		doc.BulletList(plan.Recommendations...)
	}

	return doc.String()
}

// PrettyFormatter renders the Markdown report for the terminal.
type PrettyFormatter struct {
	Style    string // glamour standard style: dark, light, notty, ascii
	WordWrap int
}

func (p PrettyFormatter) Name() string { return "pretty" }

func (p PrettyFormatter) Format(plan *domain.RetirementPlan) ([]byte, error) {
	style := p.Style
	if style == "" {
		style = "dark"
	}
	opts := []glamour.TermRendererOption{glamour.WithStandardStyle(style)}
	if p.WordWrap > 0 {
		opts = append(opts, glamour.WithWordWrap(p.WordWrap))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	out, err := r.Render(PlanMarkdown(plan))
	if err != nil {
		return nil, fmt.Errorf("failed to render markdown: %w", err)
	}
	return []byte(out), nil
}
