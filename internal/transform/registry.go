package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rgehrsitz/wealthpath/internal/domain"
	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (InputTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("postpone_retirement", createPostponeRetirement)
	registry.Register("set_retirement_age", createSetRetirementAge)
	registry.Register("delay_ss", createDelaySSClaim)
	registry.Register("adjust_contribution", createAdjustContribution)
	registry.Register("scale_contributions", createScaleContributions)
	registry.Register("set_withdrawal_rate", createSetWithdrawalRate)
	registry.Register("set_return_rate", createSetReturnRate)
	registry.Register("set_inflation", createSetInflationRate)
	registry.Register("set_risk_profile", createSetRiskProfile)
	registry.Register("set_spending", createSetRetirementSpending)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (InputTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the sorted names of all registered transforms.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "postpone_retirement:years=2,participant=spouse"
// Transforms without parameters may omit the colon.
func (r *TransformRegistry) ParseTransformSpec(spec string) (InputTransform, error) {
	name, paramsStr, _ := strings.Cut(spec, ":")
	name = strings.TrimSpace(name)
	paramsStr = strings.TrimSpace(paramsStr)
	if name == "" {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			key, value, ok := strings.Cut(paramPair, "=")
			if !ok {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(key)] = strings.TrimSpace(value)
		}
	}

	return r.Create(name, params)
}

// Factory functions for each transform

func participantParam(params map[string]string) Participant {
	if p, ok := params["participant"]; ok && p != "" {
		return Participant(strings.ToLower(p))
	}
	return Primary
}

func intParam(transform, key string, params map[string]string) (int, error) {
	s, ok := params[key]
	if !ok {
		return 0, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func decimalParam(transform, key string, params map[string]string) (decimal.Decimal, error) {
	s, ok := params[key]
	if !ok {
		return decimal.Zero, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func createPostponeRetirement(params map[string]string) (InputTransform, error) {
	years, err := intParam("postpone_retirement", "years", params)
	if err != nil {
		return nil, err
	}
	return &PostponeRetirement{Participant: participantParam(params), Years: years}, nil
}

func createSetRetirementAge(params map[string]string) (InputTransform, error) {
	age, err := intParam("set_retirement_age", "age", params)
	if err != nil {
		return nil, err
	}
	return &SetRetirementAge{Participant: participantParam(params), Age: age}, nil
}

func createDelaySSClaim(params map[string]string) (InputTransform, error) {
	age, err := intParam("delay_ss", "age", params)
	if err != nil {
		return nil, err
	}
	return &DelaySSClaim{Participant: participantParam(params), NewAge: age}, nil
}

func createAdjustContribution(params map[string]string) (InputTransform, error) {
	account, ok := params["account"]
	if !ok {
		return nil, fmt.Errorf("adjust_contribution requires 'account' parameter")
	}
	amount, err := decimalParam("adjust_contribution", "amount", params)
	if err != nil {
		return nil, err
	}
	return &AdjustContribution{Account: strings.ToLower(account), Delta: amount}, nil
}

func createScaleContributions(params map[string]string) (InputTransform, error) {
	factor, err := decimalParam("scale_contributions", "factor", params)
	if err != nil {
		return nil, err
	}
	return &ScaleContributions{Factor: factor}, nil
}

func createSetWithdrawalRate(params map[string]string) (InputTransform, error) {
	rate, err := decimalParam("set_withdrawal_rate", "rate", params)
	if err != nil {
		return nil, err
	}
	return &SetWithdrawalRate{Rate: rate}, nil
}

func createSetReturnRate(params map[string]string) (InputTransform, error) {
	rate, err := decimalParam("set_return_rate", "rate", params)
	if err != nil {
		return nil, err
	}
	return &SetReturnRate{Rate: rate}, nil
}

func createSetInflationRate(params map[string]string) (InputTransform, error) {
	rate, err := decimalParam("set_inflation", "rate", params)
	if err != nil {
		return nil, err
	}
	return &SetInflationRate{Rate: rate}, nil
}

func createSetRiskProfile(params map[string]string) (InputTransform, error) {
	profile, ok := params["profile"]
	if !ok {
		return nil, fmt.Errorf("set_risk_profile requires 'profile' parameter")
	}
	return &SetRiskProfile{Profile: domain.RiskProfile(strings.ToLower(profile))}, nil
}

func createSetRetirementSpending(params map[string]string) (InputTransform, error) {
	amount, err := decimalParam("set_spending", "amount", params)
	if err != nil {
		return nil, err
	}
	return &SetRetirementSpending{Amount: amount}, nil
}
