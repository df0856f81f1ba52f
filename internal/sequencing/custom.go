package sequencing

// CustomStrategy drains sources in a caller-supplied order. An empty or
// invalid sequence falls back to the standard order.
type CustomStrategy struct {
	Sequence []string
}

func NewCustomStrategy(sequence []string) *CustomStrategy { return &CustomStrategy{Sequence: sequence} }

func (s *CustomStrategy) Name() string { return "custom" }

func (s *CustomStrategy) Plan(sources []WithdrawalSource, ctx StrategyContext) WithdrawalPlan {
	if !validSequence(s.Sequence) {
		plan := NewStandardStrategy().Plan(sources, ctx)
		plan.StrategyUsed = "custom->standard_fallback"
		plan.Notes = append(plan.Notes, "invalid or empty custom sequence - falling back to standard")
		return plan
	}
	return drainInOrder(s.Name(), s.Sequence, sources, ctx)
}

func validSequence(seq []string) bool {
	if len(seq) == 0 {
		return false
	}
	allowed := map[string]bool{SourceTaxable: true, SourceTraditional: true, SourceRoth: true}
	seen := map[string]bool{}
	for _, name := range seq {
		if !allowed[name] || seen[name] {
			return false
		}
		seen[name] = true
	}
	return true
}
