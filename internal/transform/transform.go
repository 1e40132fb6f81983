// Package transform applies what-if modifications to refund cases, such as
// surrendering a pass a week later or under the section change rule.
package transform

import (
	"fmt"

	"github.com/rgehrsitz/passrefund/internal/domain"
)

// CaseTransform defines the interface for all case transformations.
// Transforms are composable: each receives the output of the previous one.
type CaseTransform interface {
	// Apply returns a modified copy of base. base itself is never changed.
	Apply(base *domain.RefundCase) (*domain.RefundCase, error)

	// Name returns a short identifier for this transform (e.g., "shift_refund_date").
	Name() string

	// Description returns a human-readable description of what this transform does.
	Description() string

	// Validate checks the transform parameters against base without applying it.
	Validate(base *domain.RefundCase) error
}

// ApplyTransforms applies a sequence of transforms to a base case.
// Returns an error if any transform fails to validate or apply.
func ApplyTransforms(base *domain.RefundCase, transforms []CaseTransform) (*domain.RefundCase, error) {
	if base == nil {
		return nil, fmt.Errorf("base case cannot be nil")
	}

	if len(transforms) == 0 {
		return base.DeepCopy(), nil
	}

	current := base
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

// ApplyToCaseFile transforms every case of file. Expected outcomes are
// dropped from transformed cases since they describe the original request.
func ApplyToCaseFile(file *domain.CaseFile, transforms []CaseTransform) (*domain.CaseFile, error) {
	if file == nil {
		return nil, fmt.Errorf("case file cannot be nil")
	}

	out := &domain.CaseFile{Cases: make([]domain.RefundCase, 0, len(file.Cases))}
	for i := range file.Cases {
		c, err := ApplyTransforms(&file.Cases[i], transforms)
		if err != nil {
			return nil, fmt.Errorf("case %q: %w", file.Cases[i].Name, err)
		}
		if len(transforms) > 0 {
			c.Expected = nil
		}
		out.Cases = append(out.Cases, *c)
	}
	return out, nil
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
