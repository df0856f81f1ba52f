package transform

import (
	"fmt"

	"github.com/rgehrsitz/wealthpath/internal/domain"
)

// InputTransform defines the interface for all what-if transformations.
// Transforms are composable operations that modify a household's inputs in
// predictable ways, enabling scenario comparison and interactive exploration.
type InputTransform interface {
	// Apply returns a modified copy of base. base itself is never changed.
	Apply(base *domain.CalculatorInputs) (*domain.CalculatorInputs, error)

	// Name returns a short identifier for this transform (e.g., "postpone_retirement").
	Name() string

	// Description returns a human-readable description of what this transform does.
	Description() string

	// Validate checks the transform parameters against base without applying it.
	Validate(base *domain.CalculatorInputs) error
}

// Participant selects which earner a transform targets.
type Participant string

const (
	Primary Participant = "primary"
	Spouse  Participant = "spouse"
)

func (p Participant) valid() bool {
	return p == Primary || p == Spouse
}

func (p Participant) label() string {
	if p == Spouse {
		return "spouse"
	}
	return "primary earner"
}

// ApplyTransforms applies a sequence of transforms to base. Each transform
// receives the output of the previous one.
func ApplyTransforms(base *domain.CalculatorInputs, transforms []InputTransform) (*domain.CalculatorInputs, error) {
	if base == nil {
		return nil, fmt.Errorf("base inputs cannot be nil")
	}

	current := clone(base)
	for i, transform := range transforms {
		if transform == nil {
			return nil, fmt.Errorf("transform at index %d is nil", i)
		}

		if err := transform.Validate(current); err != nil {
			return nil, fmt.Errorf("transform %s validation failed: %w", transform.Name(), err)
		}

		next, err := transform.Apply(current)
		if err != nil {
			return nil, fmt.Errorf("transform %s failed: %w", transform.Name(), err)
		}
		current = next
	}

	return current, nil
}

// Describe joins the descriptions of transforms for display.
func Describe(transforms []InputTransform) []string {
	out := make([]string, 0, len(transforms))
	for _, t := range transforms {
		if t != nil {
			out = append(out, t.Description())
		}
	}
	return out
}

// CalculatorInputs holds only values, so a struct copy is a deep copy.
func clone(in *domain.CalculatorInputs) *domain.CalculatorInputs {
	c := *in
	return &c
}

// TransformError represents an error that occurred during transformation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError.
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}

func validationFailed(name, reason string) error {
	return NewTransformError(name, "validate", reason, domain.ErrInvalidInput)
}

func requireBase(name string, base *domain.CalculatorInputs) error {
	if base == nil {
		return NewTransformError(name, "validate", "base inputs cannot be nil", nil)
	}
	return nil
}
