package output

import (
	"github.com/goccy/go-json"
	"github.com/rgehrsitz/wealthpath/internal/domain"
)

// JSONFormatter serializes the plan as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(plan *domain.RetirementPlan) ([]byte, error) {
	return json.MarshalIndent(plan, "", "  ")
}
