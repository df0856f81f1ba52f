package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rgehrsitz/wealthpath/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#04B575"))
	labelStyle   = lipgloss.NewStyle().Width(26)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87"))
	borderColor  = lipgloss.Color("#626262")
)

// ConsoleVerboseFormatter renders the detailed console report: assumptions,
// summary, Social Security options, milestones and recommendations.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(plan *domain.RetirementPlan) ([]byte, error) {
	var buf bytes.Buffer
	in := plan.Inputs

	rule := strings.Repeat("=", 81)
	fmt.Fprintln(&buf, rule)
	fmt.Fprintln(&buf, headingStyle.Render("DETAILED RETIREMENT PLAN ANALYSIS"))
	fmt.Fprintln(&buf, rule)
	fmt.Fprintf(&buf, "Seed: %d (%s)\n", plan.Seed, runMode(plan.Deterministic))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, sectionStyle.Render("KEY ASSUMPTIONS:"))
	for _, a := range Assumptions(plan) {
		fmt.Fprintf(&buf, "- %s\n", a)
	}
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, sectionStyle.Render("HOUSEHOLD"))
	line := func(label, value string) {
		fmt.Fprintf(&buf, "%s%s\n", labelStyle.Render(label), value)
	}
	line("Current Age:", intToString(in.CurrentAge))
	line("Retirement Age:", intToString(in.RetirementAge))
	if in.HasSpouse() {
		line("Spouse Age:", ageLabel(in.SpouseAge))
		line("Spouse Retirement Age:", ageLabel(in.SpouseRetirementAge))
	}
	line("Household Income:", FormatDollars(in.HouseholdIncome()))
	line("Annual Expenses:", FormatDollars(in.AnnualExpenses))
	line("Annual Contributions:", FormatDollars(in.TotalContributions()))
	line("Current Investments:", FormatDollars(in.TotalInvestments()))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, sectionStyle.Render("RETIREMENT SUMMARY"))
	line("Savings at Retirement:", FormatDollars(plan.TotalRetirementSavings))
	line("Annual Income:", FormatDollars(plan.EstimatedAnnualRetirementIncome))
	line("Desired Spending:", FormatDollars(in.DesiredRetirementSpending))
	line("Income Replacement:", FormatPercentage(plan.IncomeReplacementRatio))
	line("Sustainability Score:", fmt.Sprintf("%d/100", plan.SustainabilityScore))
	line("Success Probability:", fmt.Sprintf("%d%%", plan.SuccessProbability))
	longevity := fmt.Sprintf("age %d", plan.PortfolioLongevity)
	if plan.PortfolioLongevity < in.LifeExpectancy {
		longevity = warnStyle.Render(longevity + " (before life expectancy)")
	}
	line("Portfolio Lasts To:", longevity)
	fmt.Fprintln(&buf)

	if len(plan.SocialSecurity) > 0 {
		fmt.Fprintln(&buf, sectionStyle.Render("SOCIAL SECURITY OPTIONS"))
		rows := make([][]string, 0, len(plan.SocialSecurity))
		for _, ss := range plan.SocialSecurity {
			rows = append(rows, []string{
				intToString(ss.ClaimingAge),
				FormatCurrency(ss.PrimaryMonthly),
				FormatCurrency(ss.SpouseMonthly),
				FormatCurrency(ss.MonthlyBenefit),
				FormatDollars(ss.LifetimeTotal),
			})
		}
		fmt.Fprintln(&buf, renderTable([]string{"Claim Age", "Primary", "Spouse", "Monthly", "Lifetime"}, rows))
		fmt.Fprintln(&buf)
	}

	if p, ok := firstRetirementIncome(plan); ok {
		fmt.Fprintf(&buf, "%s\n", sectionStyle.Render(fmt.Sprintf("FIRST RETIREMENT YEAR (%d) INCOME SOURCES:", p.Year)))
		income := func(label string, v decimal.Decimal) {
			if !v.IsZero() {
				line("  "+label, FormatDollars(v))
			}
		}
		income("Salary:", p.PrimaryIncome)
		income("Spouse Salary:", p.SpouseIncome)
		income("Social Security:", p.SocialSecurity)
		income("Spouse Social Security:", p.SpouseSocialSecurity)
		income("Pension:", p.Pension)
		income("Required Distributions:", p.RMD)
		income("Retirement Withdrawals:", p.RetirementWithdrawals)
		income("Taxable Withdrawals:", p.TaxableWithdrawals)
		line("  TOTAL:", FormatDollars(p.TotalIncome))
		fmt.Fprintln(&buf)
	}

	if len(plan.NetWorthProjection) > 0 {
		fmt.Fprintln(&buf, sectionStyle.Render("NET WORTH MILESTONES"))
		var rows [][]string
		for _, p := range milestones(plan.NetWorthProjection) {
			marker := ""
			if p.IsRetirementAge {
				marker = "*"
			}
			rows = append(rows, []string{
				intToString(p.Age) + marker,
				intToString(p.Year),
				FormatDollars(p.Investments()),
				FormatDollars(p.RealEstateEquity),
				FormatDollars(p.MortgageBalance.Add(p.OtherDebt)),
				FormatDollars(p.TotalNetWorth),
			})
		}
		fmt.Fprintln(&buf, renderTable([]string{"Age", "Year", "Investments", "Home Equity", "Debt", "Net Worth"}, rows))
		peak, peakAge := plan.PeakNetWorth()
		line("Peak Net Worth:", fmt.Sprintf("%s at age %d", FormatDollars(peak), peakAge))
		line("Debt Free At:", ageLabel(plan.DebtFreeAge()))
		fmt.Fprintln(&buf)
	}

	if len(plan.Recommendations) > 0 {
		fmt.Fprintln(&buf, sectionStyle.Render("RECOMMENDATIONS"))
		for _, r := range plan.Recommendations {
			fmt.Fprintf(&buf, "- %s\n", r)
		}
	}
	return buf.Bytes(), nil
}

func renderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(borderColor)).
		Headers(headers...).
		Rows(rows...).
		String()
}
