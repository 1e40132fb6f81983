package validation

import (
	"fmt"
	"strings"
)

// Kind classifies a validation failure
type Kind string

const (
	InvalidDate          Kind = "invalid_date"
	InvalidAmount        Kind = "invalid_amount"
	MissingRequiredField Kind = "missing_required_field"
	DateRangeViolation   Kind = "date_range_violation"
	CalculationFailure   Kind = "calculation_failure"
)

// Code returns the stable error code used in logs and reports.
func (k Kind) Code() string {
	switch k {
	case InvalidDate:
		return "E001"
	case InvalidAmount:
		return "E002"
	case MissingRequiredField:
		return "E003"
	case DateRangeViolation:
		return "E004"
	case CalculationFailure:
		return "E101"
	}
	return "E999"
}

// Label is the short human-readable category name.
func (k Kind) Label() string {
	switch k {
	case InvalidDate:
		return "date error"
	case InvalidAmount:
		return "amount error"
	case MissingRequiredField:
		return "input error"
	case DateRangeViolation:
		return "period error"
	case CalculationFailure:
		return "calculation error"
	}
	return "error"
}

// ValidationError is a single rule violation on one input field.
type ValidationError struct {
	Kind    Kind   `json:"kind"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Kind.Code(), e.Kind.Label(), e.Message)
}

// Code is the error code of the violation's kind
func (e *ValidationError) Code() string {
	return e.Kind.Code()
}

// Errors collects every violation found on one input. A nil or empty
// Errors means the input is valid.
type Errors []*ValidationError

func (errs Errors) Error() string {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}
	return fmt.Sprintf("%d validation error(s): %s", len(errs), strings.Join(msgs, "; "))
}

// Err returns errs as an error, or nil when there are no violations.
func (errs Errors) Err() error {
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Has reports whether any violation of the given kind was recorded.
func (errs Errors) Has(kind Kind) bool {
	for _, e := range errs {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

// Fields lists the offending fields in the order they were found
func (errs Errors) Fields() []string {
	fields := make([]string, 0, len(errs))
	for _, e := range errs {
		fields = append(fields, e.Field)
	}
	return fields
}

func (errs *Errors) add(kind Kind, field, format string, args ...any) {
	*errs = append(*errs, &ValidationError{Kind: kind, Field: field, Message: fmt.Sprintf(format, args...)})
}
