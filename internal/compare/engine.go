package compare

import (
	"context"
	"fmt"
	"sync"

	"github.com/rgehrsitz/wealthpath/internal/calculation"
	"github.com/rgehrsitz/wealthpath/internal/domain"
	"github.com/rgehrsitz/wealthpath/internal/transform"
)

// maxParallelVariants bounds concurrent what-if calculations.
const maxParallelVariants = 4

// CompareEngine orchestrates what-if comparison
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
	TransformRegistry *transform.TransformRegistry
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
		TransformRegistry: transform.NewTransformRegistry(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseScenarioName string   // label for the unmodified inputs
	Templates        []string // built-in template names, one alternative each
	Transforms       []string // transform specs, one alternative each
	Seed             int64    // zero picks a seed from the base run
	Deterministic    bool
}

type variant struct {
	name        string
	description string
	transforms  []transform.InputTransform
}

// Compare runs the base inputs and every requested alternative with the same
// seed, so differences come from the changed inputs and not the market path.
func (ce *CompareEngine) Compare(ctx context.Context, base *domain.CalculatorInputs, options CompareOptions) (*ComparisonSet, error) {
	if base == nil {
		return nil, fmt.Errorf("base inputs cannot be nil")
	}
	baseName := options.BaseScenarioName
	if baseName == "" {
		baseName = "base"
	}

	variants, err := ce.variants(options)
	if err != nil {
		return nil, err
	}

	basePlan, err := ce.CalcEngine.CalculateRetirementPlan(*base, calculation.Options{
		Seed:          options.Seed,
		Deterministic: options.Deterministic,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base plan: %w", err)
	}
	baseResult := ce.MetricsCalculator.CalculateMetrics(baseName, &basePlan)
	baseResult.Description = "Current plan"

	runOpts := calculation.Options{Seed: basePlan.Seed, Deterministic: options.Deterministic}
	alternatives := make([]ComparisonResult, len(variants))
	errs := make([]error, len(variants))

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, maxParallelVariants)
	for i, v := range variants {
		wg.Add(1)
		go func(idx int, v variant) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			if err := ctx.Err(); err != nil {
				errs[idx] = err
				return
			}

			modified, err := transform.ApplyTransforms(base, v.transforms)
			if err != nil {
				errs[idx] = fmt.Errorf("failed to apply %s: %w", v.name, err)
				return
			}
			plan, err := ce.CalcEngine.CalculateRetirementPlan(*modified, runOpts)
			if err != nil {
				errs[idx] = fmt.Errorf("failed to calculate %s: %w", v.name, err)
				return
			}

			result := ce.MetricsCalculator.CalculateMetrics(v.name, &plan)
			result.Description = v.description
			result.Changes = transform.Describe(v.transforms)
			alternatives[idx] = ce.MetricsCalculator.CalculateComparison(result, baseResult)
		}(i, v)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   baseName,
		Seed:               basePlan.Seed,
		Deterministic:      options.Deterministic,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

// variants resolves template names and transform specs before any
// calculation runs, so a typo fails fast.
func (ce *CompareEngine) variants(options CompareOptions) ([]variant, error) {
	out := make([]variant, 0, len(options.Templates)+len(options.Transforms))

	for _, name := range options.Templates {
		template, ok := ce.TemplateRegistry.Get(name)
		if !ok {
			return nil, fmt.Errorf("template %s not found", name)
		}
		out = append(out, variant{name: template.Name, description: template.Description, transforms: template.Transforms})
	}

	for _, spec := range options.Transforms {
		t, err := ce.TransformRegistry.ParseTransformSpec(spec)
		if err != nil {
			return nil, fmt.Errorf("failed to parse transform %q: %w", spec, err)
		}
		out = append(out, variant{name: t.Name(), description: t.Description(), transforms: []transform.InputTransform{t}})
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("no alternatives requested")
	}
	return out, nil
}
