package breakeven

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rgehrsitz/wealthpath/internal/output"
	"github.com/shopspring/decimal"
)

// TableFormatter formats optimization results as a console table
type TableFormatter struct{}

// Format generates a formatted table for optimization result
func (tf *TableFormatter) Format(result *OptimizationResult) string {
	var sb strings.Builder

	sb.WriteString("RETIREMENT OPTIMIZATION RESULTS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	fmt.Fprintf(&sb, "Optimization Target: %s\n", result.Target)
	fmt.Fprintf(&sb, "Optimization Goal:   %s\n", result.Goal)
	fmt.Fprintf(&sb, "Status:              %s\n", tf.formatStatus(result.Success))
	fmt.Fprintf(&sb, "Iterations:          %d\n", result.Iterations)
	if result.Plan != nil {
		mode := "stochastic"
		if result.Plan.Deterministic {
			mode = "deterministic"
		}
		fmt.Fprintf(&sb, "Seed:                %d (%s)\n", result.Plan.Seed, mode)
	}
	if result.ConvergenceInfo != "" {
		fmt.Fprintf(&sb, "Convergence:         %s\n", result.ConvergenceInfo)
	}
	sb.WriteString("\n")

	sb.WriteString("OPTIMAL PARAMETERS\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	if result.OptimalWithdrawalRate != nil {
		fmt.Fprintf(&sb, "Withdrawal Rate:     %s%%\n", result.OptimalWithdrawalRate.StringFixed(2))
	}
	if result.OptimalRetirementAge != nil {
		fmt.Fprintf(&sb, "Retirement Age:      %d\n", *result.OptimalRetirementAge)
	}
	if result.OptimalSSAge != nil {
		fmt.Fprintf(&sb, "SS Claiming Age:     %d\n", *result.OptimalSSAge)
	}
	sb.WriteString("\n")

	sb.WriteString("PROJECTED RESULTS\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	fmt.Fprintf(&sb, "Annual Income:        %s\n", output.FormatDollars(result.AnnualIncome))
	fmt.Fprintf(&sb, "Lifetime Income:      %s\n", output.FormatDollars(result.LifetimeIncome))
	fmt.Fprintf(&sb, "Portfolio Lasts To:   age %d\n", result.PortfolioLongevity)
	fmt.Fprintf(&sb, "Sustainability Score: %d/100\n", result.SustainabilityScore)
	sb.WriteString("\n")

	sb.WriteString("COMPARISON TO BASE PLAN\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	fmt.Fprintf(&sb, "Lifetime Income Change: %s\n", tf.signedDollars(result.IncomeDiffFromBase))
	fmt.Fprintf(&sb, "Longevity Change:       %+d years\n", result.LongevityDiffFromBase)
	fmt.Fprintf(&sb, "Score Change:           %+d points\n", result.ScoreDiffFromBase)
	sb.WriteString("\n")

	if result.Goal == GoalMatchIncome {
		sb.WriteString("TARGET INCOME MATCH\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		fmt.Fprintf(&sb, "Target Income:    %s\n", output.FormatDollars(result.TargetIncome))
		fmt.Fprintf(&sb, "Achieved Income:  %s\n", output.FormatDollars(result.AnnualIncome))
		fmt.Fprintf(&sb, "Difference:       %s\n", tf.signedDollars(result.AnnualIncome.Sub(result.TargetIncome)))
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatMultiDimensional formats results from multiple optimizations
func (tf *TableFormatter) FormatMultiDimensional(result *MultiDimensionalResult) string {
	var sb strings.Builder

	sb.WriteString("MULTI-DIMENSIONAL OPTIMIZATION RESULTS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n\n")

	sb.WriteString("SUMMARY OF ALL OPTIMIZATIONS\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	fmt.Fprintf(&sb, "%-16s %-18s %-12s %12s %12s %6s\n",
		"Target", "Goal", "Value", "Annual", "Lifetime", "Score")
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	for i := range result.Results {
		res := &result.Results[i]
		fmt.Fprintf(&sb, "%-16s %-18s %-12s %12s %12s %6d\n",
			tf.truncate(string(res.Target), 16),
			tf.truncate(string(res.Goal), 18),
			optimalValue(res),
			"$"+tf.formatShort(res.AnnualIncome),
			"$"+tf.formatShort(res.LifetimeIncome),
			res.SustainabilityScore)
	}
	sb.WriteString("\n")

	sb.WriteString("BEST SCENARIOS\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	if b := result.BestByIncome; b != nil {
		fmt.Fprintf(&sb, "Best Income:     %s %s (%s lifetime)\n", b.Target, optimalValue(b), output.FormatDollars(b.LifetimeIncome))
	}
	if b := result.BestByLongevity; b != nil {
		fmt.Fprintf(&sb, "Best Longevity:  %s %s (to age %d)\n", b.Target, optimalValue(b), b.PortfolioLongevity)
	}
	if b := result.BestByScore; b != nil {
		fmt.Fprintf(&sb, "Best Score:      %s %s (%d/100)\n", b.Target, optimalValue(b), b.SustainabilityScore)
	}
	sb.WriteString("\n")

	if len(result.Recommendations) > 0 {
		sb.WriteString("RECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range result.Recommendations {
			fmt.Fprintf(&sb, "• %s\n", rec)
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output
func (jf *JSONFormatter) Format(result *OptimizationResult) (string, error) {
	return jf.marshal(result)
}

// FormatMultiDimensional formats multi-dimensional results as JSON
func (jf *JSONFormatter) FormatMultiDimensional(result *MultiDimensionalResult) (string, error) {
	return jf.marshal(result)
}

func (jf *JSONFormatter) marshal(v any) (string, error) {
	var (
		data []byte
		err  error
	)
	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func optimalValue(r *OptimizationResult) string {
	switch {
	case r.OptimalWithdrawalRate != nil:
		return r.OptimalWithdrawalRate.StringFixed(2) + "%"
	case r.OptimalRetirementAge != nil:
		return fmt.Sprintf("age %d", *r.OptimalRetirementAge)
	case r.OptimalSSAge != nil:
		return fmt.Sprintf("claim %d", *r.OptimalSSAge)
	}
	return "-"
}

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "✓ Converged"
	}
	return "⚠ Did not converge"
}

func (tf *TableFormatter) signedDollars(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-" + output.FormatDollars(d.Abs())
	}
	return "+" + output.FormatDollars(d)
}

func (tf *TableFormatter) formatShort(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		millions := d.Div(decimal.NewFromInt(1000000))
		return millions.StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		thousands := d.Div(decimal.NewFromInt(1000))
		return thousands.StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
