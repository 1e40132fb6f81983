// Package breakeven finds the refund dates that matter: the last day a pass
// still returns a given amount, and the days on which the better of the two
// refund rules changes.
package breakeven

import (
	"time"

	"github.com/rgehrsitz/passrefund/internal/domain"
	"github.com/shopspring/decimal"
)

// SolveTarget defines what the solver looks for
type SolveTarget string

const (
	// TargetLastDate finds the last refund date returning at least the
	// minimum refund under one rule
	TargetLastDate SolveTarget = "last_date"
	// TargetRuleLead finds which rule returns more on every date
	TargetRuleLead SolveTarget = "rule_lead"
)

// Constraints bound the search
type Constraints struct {
	// Kind is the rule searched by TargetLastDate
	Kind domain.RefundKind `json:"kind,omitempty"`

	// MinimumRefund is the amount TargetLastDate must still return
	MinimumRefund *decimal.Decimal `json:"minimum_refund,omitempty"`

	// Search window, defaulting to the whole period the rules accept
	EarliestDate *time.Time `json:"earliest_date,omitempty"`
	LatestDate   *time.Time `json:"latest_date,omitempty"`
}

// Request defines the parameters for a solver run
type Request struct {
	Base          domain.RegularRefundInput `json:"base"`
	Target        SolveTarget               `json:"target"`
	Constraints   Constraints               `json:"constraints"`
	MaxIterations int                       `json:"max_iterations,omitempty"`
}

// Lead is a run of consecutive dates on which the same rule returns more.
// Leader is empty while both rules return the same amount.
type Lead struct {
	From   time.Time         `json:"from"`
	To     time.Time         `json:"to"`
	Leader domain.RefundKind `json:"leader,omitempty"`

	// MaxDifference is the largest gap between the rules within the run
	MaxDifference decimal.Decimal `json:"max_difference"`
}

// Days is the number of calendar days the lead covers
func (l Lead) Days() int {
	return int(l.To.Sub(l.From).Hours()/24) + 1
}

// Result contains the outcome of a solver run
type Result struct {
	Request         Request `json:"request"`
	Success         bool    `json:"success"`
	Iterations      int     `json:"iterations"`
	ConvergenceInfo string  `json:"convergence_info,omitempty"`

	// TargetLastDate
	Date   *time.Time           `json:"date,omitempty"`
	Refund *domain.RefundResult `json:"refund,omitempty"`

	// TargetRuleLead
	Leads []Lead `json:"leads,omitempty"`
}

// SolverOptions configures the solver algorithm
type SolverOptions struct {
	MaxIterations int // Maximum refund evaluations per run
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		// a six-month pass has at most 185 candidate dates
		MaxIterations: 400,
	}
}

// Validate checks if constraints are internally consistent
func (c *Constraints) Validate(target SolveTarget) error {
	if c.EarliestDate != nil && c.LatestDate != nil && c.EarliestDate.After(*c.LatestDate) {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "earliest_date cannot be after latest_date",
		}
	}

	if target != TargetLastDate {
		return nil
	}

	switch c.Kind {
	case "", domain.KindRegular, domain.KindSectionChange:
	default:
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "unknown refund kind " + string(c.Kind),
		}
	}

	if c.MinimumRefund == nil || !c.MinimumRefund.IsPositive() {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "minimum_refund must be positive",
		}
	}
	return nil
}

// BreakEvenError represents errors from break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
