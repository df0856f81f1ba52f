package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/wealthpath/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in what-if templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []InputTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names, sorted
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates creates a template registry with common retirement what-ifs
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	for _, years := range []int{1, 2, 3} {
		registry.Register(Template{
			Name:        fmt.Sprintf("postpone_%dyr", years),
			Description: fmt.Sprintf("Work %d more year(s) before retiring", years),
			Transforms: []InputTransform{
				&PostponeRetirement{Participant: Primary, Years: years},
			},
		})
	}

	registry.Register(Template{
		Name:        "retire_early_2yr",
		Description: "Retire 2 years earlier",
		Transforms: []InputTransform{
			&shiftRetirement{Years: -2},
		},
	})

	registry.Register(Template{
		Name:        "delay_ss_67",
		Description: "Claim Social Security at 67 (full retirement age)",
		Transforms: []InputTransform{
			&DelaySSClaim{Participant: Primary, NewAge: 67},
		},
	})

	registry.Register(Template{
		Name:        "delay_ss_70",
		Description: "Delay Social Security to 70 (maximum benefit)",
		Transforms: []InputTransform{
			&DelaySSClaim{Participant: Primary, NewAge: 70},
		},
	})

	registry.Register(Template{
		Name:        "claim_ss_62",
		Description: "Claim Social Security early at 62",
		Transforms: []InputTransform{
			&DelaySSClaim{Participant: Primary, NewAge: 62},
		},
	})

	registry.Register(Template{
		Name:        "save_more",
		Description: "Save 25% more into every account",
		Transforms: []InputTransform{
			&ScaleContributions{Factor: decimal.NewFromFloat(1.25)},
		},
	})

	registry.Register(Template{
		Name:        "max_401k",
		Description: "Contribute an extra $5,000 per year to the 401(k)",
		Transforms: []InputTransform{
			&AdjustContribution{Account: Account401k, Delta: decimal.NewFromInt(5000)},
		},
	})

	registry.Register(Template{
		Name:        "lower_withdrawal",
		Description: "Withdraw 3.5% per year in retirement",
		Transforms: []InputTransform{
			&SetWithdrawalRate{Rate: decimal.NewFromFloat(3.5)},
		},
	})

	registry.Register(Template{
		Name:        "spend_less",
		Description: "Cut planned retirement spending by 10%",
		Transforms: []InputTransform{
			&scaleSpending{Factor: decimal.NewFromFloat(0.9)},
		},
	})

	registry.Register(Template{
		Name:        "conservative",
		Description: "Conservative portfolio: conservative risk profile, 3% withdrawals",
		Transforms: []InputTransform{
			&SetRiskProfile{Profile: domain.RiskConservative},
			&SetWithdrawalRate{Rate: decimal.NewFromInt(3)},
		},
	})

	registry.Register(Template{
		Name:        "aggressive",
		Description: "Aggressive portfolio: aggressive risk profile, 5% withdrawals",
		Transforms: []InputTransform{
			&SetRiskProfile{Profile: domain.RiskAggressive},
			&SetWithdrawalRate{Rate: decimal.NewFromInt(5)},
		},
	})

	registry.Register(Template{
		Name:        "postpone_1yr_delay_ss_70",
		Description: "Work 1 more year and delay Social Security to 70",
		Transforms: []InputTransform{
			&PostponeRetirement{Participant: Primary, Years: 1},
			&DelaySSClaim{Participant: Primary, NewAge: 70},
		},
	})

	return registry
}

// shiftRetirement moves the primary retirement age by a signed number of years.
type shiftRetirement struct {
	Years int
}

func (s *shiftRetirement) Name() string { return "shift_retirement" }

func (s *shiftRetirement) Description() string {
	return fmt.Sprintf("Retire %d year(s) earlier", -s.Years)
}

func (s *shiftRetirement) Validate(base *domain.CalculatorInputs) error {
	if err := requireBase(s.Name(), base); err != nil {
		return err
	}
	return checkRetirementAge(s.Name(), base, Primary, base.RetirementAge+s.Years)
}

func (s *shiftRetirement) Apply(base *domain.CalculatorInputs) (*domain.CalculatorInputs, error) {
	modified := clone(base)
	modified.RetirementAge += s.Years
	return modified, nil
}

// scaleSpending multiplies the current desired retirement spending.
type scaleSpending struct {
	Factor decimal.Decimal
}

func (s *scaleSpending) Name() string { return "scale_spending" }

func (s *scaleSpending) Description() string {
	return fmt.Sprintf("Scale retirement spending by %s", s.Factor.String())
}

func (s *scaleSpending) Validate(base *domain.CalculatorInputs) error {
	return requireBase(s.Name(), base)
}

func (s *scaleSpending) Apply(base *domain.CalculatorInputs) (*domain.CalculatorInputs, error) {
	modified := clone(base)
	modified.DesiredRetirementSpending = modified.DesiredRetirementSpending.Mul(s.Factor).Round(2)
	return modified, nil
}

// ApplyTemplate applies a template to base inputs
func ApplyTemplate(base *domain.CalculatorInputs, template Template) (*domain.CalculatorInputs, error) {
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")

	categories := map[string][]Template{}
	order := []string{"Retirement Timing", "Social Security", "Savings & Spending", "Portfolio Strategies"}

	for _, name := range registry.List() {
		template := registry.templates[name]
		switch {
		case strings.HasPrefix(name, "postpone_") && !strings.Contains(name, "_ss_"), strings.HasPrefix(name, "retire_"):
			categories["Retirement Timing"] = append(categories["Retirement Timing"], template)
		case strings.Contains(name, "_ss_"):
			categories["Social Security"] = append(categories["Social Security"], template)
		case strings.HasPrefix(name, "save_"), strings.HasPrefix(name, "max_"), strings.HasPrefix(name, "spend_"):
			categories["Savings & Spending"] = append(categories["Savings & Spending"], template)
		default:
			categories["Portfolio Strategies"] = append(categories["Portfolio Strategies"], template)
		}
	}

	for _, category := range order {
		templates := categories[category]
		if len(templates) == 0 {
			continue
		}

		sb.WriteString(fmt.Sprintf("%s:\n", category))
		for _, t := range templates {
			sb.WriteString(fmt.Sprintf("  %-28s %s\n", t.Name, t.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Usage:\n")
	sb.WriteString("  wealthpath compare household.yaml --with postpone_1yr,delay_ss_70\n")
	sb.WriteString("  wealthpath compare household.yaml --transform set_withdrawal_rate:rate=3.5\n")

	return sb.String()
}
