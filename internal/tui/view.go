package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/wealthpath/internal/output"
	"github.com/rgehrsitz/wealthpath/internal/tui/components"
	"github.com/rgehrsitz/wealthpath/internal/tui/tuistyles"
)

// View renders the current state of the application
func (m Model) View() string {
	sections := []string{m.renderTitleBar()}

	switch {
	case m.err != nil:
		sections = append(sections, tuistyles.ErrorStyle.Render("Error: "+m.err.Error()))
	case m.plan == nil:
		sections = append(sections, tuistyles.InfoStyle.Render("Calculating plan..."))
	default:
		sections = append(sections, m.renderCards(), m.renderTabs())
		if m.tab == TabNetWorth && m.height >= 48 {
			sections = append(sections, m.NetWorthChart(m.width-30))
		}
		sections = append(sections, m.table.View())
	}

	sections = append(sections, m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderTitleBar renders the application title and run settings
func (m Model) renderTitleBar() string {
	title := tuistyles.TitleStyle.Render("WEALTHPATH - Retirement Plan")

	mode := "stochastic"
	if m.deterministic {
		mode = "deterministic"
	}
	status := fmt.Sprintf("seed %d | %s", m.seed, mode)
	if m.loading {
		status += " | calculating..."
	}
	if m.source != "" {
		status = m.source + " | " + status
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, tuistyles.SubtitleStyle.Render(status))
}

func (m Model) renderCards() string {
	p := m.plan
	savings := components.NewMetricCard("Savings at Retirement", output.FormatDollars(p.TotalRetirementSavings))
	income := components.NewMetricCard("Annual Income", output.FormatDollars(p.EstimatedAnnualRetirementIncome)).
		WithDescription(output.FormatPercentage(p.IncomeReplacementRatio) + " of desired")
	score := components.NewMetricCard("Sustainability", fmt.Sprintf("%d/100", p.SustainabilityScore)).
		WithTone(scoreTone(p.SustainabilityScore)).
		WithDescription(fmt.Sprintf("success %d%%", p.SuccessProbability))
	longevity := components.NewMetricCard("Portfolio Lasts To", fmt.Sprintf("age %d", p.PortfolioLongevity))
	if p.PortfolioLongevity < p.Inputs.LifeExpectancy {
		longevity.WithTone(tuistyles.ToneBad)
	}

	if prev := m.previous; prev != nil {
		if delta := p.TotalRetirementSavings.Sub(prev.TotalRetirementSavings); !delta.IsZero() {
			savings.WithChange(signedDollars(delta), delta.IsPositive())
		}
		if delta := p.SustainabilityScore - prev.SustainabilityScore; delta != 0 {
			score.WithChange(fmt.Sprintf("%+d points", delta), delta > 0)
		}
	}

	cards := []*components.MetricCard{savings, income, score, longevity}
	columns := 4
	if m.width < 100 {
		columns = 2
	}
	return components.MetricGrid(cards, columns)
}

func (m Model) renderTabs() string {
	tabs := make([]string, 0, tabCount)
	for t := Tab(0); t < tabCount; t++ {
		if t == m.tab {
			tabs = append(tabs, tuistyles.ActiveTabStyle.Render(t.String()))
		} else {
			tabs = append(tabs, tuistyles.InactiveTabStyle.Render(t.String()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)
}

// refreshTable loads the selected series into the table.
func (m *Model) refreshTable() {
	if m.plan == nil {
		return
	}
	columns, rows := m.tableData()
	m.table.SetRows(nil)
	m.table.SetColumns(columns)
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m Model) tableData() ([]table.Column, []table.Row) {
	p := m.plan
	money := func(d decimal.Decimal) string { return output.FormatDollars(d) }
	ageCol := func(age int, retire bool) string {
		if retire {
			return fmt.Sprintf("%d*", age)
		}
		return fmt.Sprint(age)
	}

	switch m.tab {
	case TabIncome:
		cols := columns("Age", 5, "Salary", 12, "Spouse", 12, "Soc. Sec.", 12, "Pension", 10, "RMD", 10, "Withdrawals", 12, "Total", 12)
		rows := make([]table.Row, 0, len(p.IncomeSources))
		for _, pt := range p.IncomeSources {
			rows = append(rows, table.Row{
				ageCol(pt.Age, pt.IsRetirementAge), money(pt.PrimaryIncome), money(pt.SpouseIncome),
				money(pt.SocialSecurity.Add(pt.SpouseSocialSecurity)), money(pt.Pension), money(pt.RMD),
				money(pt.RetirementWithdrawals.Add(pt.TaxableWithdrawals)), money(pt.TotalIncome),
			})
		}
		return cols, rows

	case TabDebt:
		cols := columns("Age", 5, "Year", 6, "Mortgage", 12, "Student", 10, "Auto", 10, "Card", 10, "Total", 12)
		rows := make([]table.Row, 0, len(p.DebtPayoff))
		for _, pt := range p.DebtPayoff {
			rows = append(rows, table.Row{
				ageCol(pt.Age, pt.IsRetirementAge), fmt.Sprint(pt.Year), money(pt.Mortgage), money(pt.StudentLoan),
				money(pt.AutoLoan), money(pt.CreditCard), money(pt.TotalDebt),
			})
		}
		return cols, rows

	case TabSocialSecurity:
		cols := columns("Claim Age", 10, "Primary", 12, "Spouse", 12, "Monthly", 12, "Lifetime", 14)
		rows := make([]table.Row, 0, len(p.SocialSecurity))
		for _, ss := range p.SocialSecurity {
			rows = append(rows, table.Row{
				fmt.Sprint(ss.ClaimingAge), output.FormatCurrency(ss.PrimaryMonthly), output.FormatCurrency(ss.SpouseMonthly),
				output.FormatCurrency(ss.MonthlyBenefit), money(ss.LifetimeTotal),
			})
		}
		return cols, rows

	default:
		cols := columns("Age", 5, "Year", 6, "Cash", 11, "Investments", 13, "Home Equity", 12, "Debt", 11, "Net Worth", 13)
		rows := make([]table.Row, 0, len(p.NetWorthProjection))
		for _, pt := range p.NetWorthProjection {
			rows = append(rows, table.Row{
				ageCol(pt.Age, pt.IsRetirementAge), fmt.Sprint(pt.Year), money(pt.Cash), money(pt.Investments()),
				money(pt.RealEstateEquity), money(pt.MortgageBalance.Add(pt.OtherDebt)), money(pt.TotalNetWorth),
			})
		}
		return cols, rows
	}
}

// columns builds table columns from alternating title, width pairs.
func columns(spec ...any) []table.Column {
	cols := make([]table.Column, 0, len(spec)/2)
	for i := 0; i+1 < len(spec); i += 2 {
		cols = append(cols, table.Column{Title: spec[i].(string), Width: spec[i+1].(int)})
	}
	return cols
}

func scoreTone(score int) tuistyles.Tone {
	switch {
	case score >= 75:
		return tuistyles.ToneGood
	case score >= 50:
		return tuistyles.ToneWarn
	default:
		return tuistyles.ToneBad
	}
}

func signedDollars(d decimal.Decimal) string {
	s := output.FormatDollars(d.Abs())
	if d.IsNegative() {
		return "-" + s
	}
	return "+" + s
}

// NetWorthChart renders net worth at each fifth year as a bar chart.
func (m Model) NetWorthChart(width int) string {
	if m.plan == nil {
		return ""
	}
	var bars []components.Bar
	for i, p := range m.plan.NetWorthProjection {
		if i%5 != 0 && !p.IsRetirementAge {
			continue
		}
		bars = append(bars, components.Bar{
			Label:   fmt.Sprint(p.Age),
			Value:   p.TotalNetWorth.InexactFloat64(),
			Display: output.FormatDollars(p.TotalNetWorth),
		})
	}
	return strings.TrimRight(components.BarChart(bars, width), "\n")
}
