package breakeven

import (
	"context"
	"fmt"
	"time"

	"github.com/rgehrsitz/passrefund/internal/calculation"
	"github.com/rgehrsitz/passrefund/internal/compare"
	"github.com/rgehrsitz/passrefund/internal/dateutil"
	"github.com/rgehrsitz/passrefund/internal/domain"
	"github.com/shopspring/decimal"
)

// Solver searches refund dates
type Solver struct {
	Options SolverOptions
	Logger  calculation.Logger
}

// NewSolver creates a new break-even solver
func NewSolver(options SolverOptions) *Solver {
	return &Solver{
		Options: options,
		Logger:  calculation.NopLogger{},
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver() *Solver {
	return NewSolver(DefaultSolverOptions())
}

// Solve runs the search named by req.Target. The refund date of req.Base
// is ignored.
func (s *Solver) Solve(ctx context.Context, req Request) (*Result, error) {
	if err := req.Constraints.Validate(req.Target); err != nil {
		return nil, err
	}

	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.Constraints.Kind == "" {
		req.Constraints.Kind = domain.KindRegular
	}

	switch req.Target {
	case TargetLastDate:
		return s.solveLastDate(ctx, req)
	case TargetRuleLead:
		return s.solveRuleLead(ctx, req)
	default:
		return nil, &BreakEvenError{
			Operation: "solve",
			Message:   fmt.Sprintf("unsupported solve target: %s", req.Target),
		}
	}
}

// solveLastDate walks the refund period backwards from its last date and
// stops at the first date returning at least the minimum. Refunds can rise
// as the date moves later (the first monthly day can bill less than the
// grace period days before it), so the period is scanned rather than
// bisected.
func (s *Solver) solveLastDate(ctx context.Context, req Request) (*Result, error) {
	compute := s.ruleFor(req.Constraints.Kind)
	start := dateutil.Normalize(req.Base.StartDate)

	// reject bad input with the rule's own errors
	if _, err := compute(req.Base.WithRefundDate(start)); err != nil {
		return nil, &BreakEvenError{Operation: "solve_last_date", Message: "base input rejected", Cause: err}
	}

	var last time.Time
	if req.Constraints.Kind == domain.KindSectionChange {
		last = dateutil.AddMonths(start, domain.SectionChangeCeilingMonths)
	} else {
		last = dateutil.EndDate(start, req.Base.Tier.Months())
	}
	first, last := s.window(req.Constraints, start, last)

	result := &Result{Request: req}
	minimum := *req.Constraints.MinimumRefund

	if last.Before(first) {
		result.ConvergenceInfo = "search window is empty"
		return result, nil
	}

	for d := last; !d.Before(first); d = d.AddDate(0, 0, -1) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		if result.Iterations >= req.MaxIterations {
			return nil, &BreakEvenError{
				Operation: "solve_last_date",
				Message:   fmt.Sprintf("did not converge within %d iterations", req.MaxIterations),
			}
		}
		result.Iterations++

		r, err := compute(req.Base.WithRefundDate(d))
		if err != nil {
			return nil, err
		}
		if r.RefundAmount.LessThan(minimum) {
			continue
		}

		date := d
		result.Success = true
		result.Date = &date
		result.Refund = r
		result.ConvergenceInfo = fmt.Sprintf("Converged after %d evaluations", result.Iterations)
		s.logger().Debugf("last %s refund of at least %s: %s (%s)",
			req.Constraints.Kind, minimum, dateutil.Format(date), r.RefundAmount)
		return result, nil
	}

	result.ConvergenceInfo = fmt.Sprintf("no date returns at least %s", domain.FormatYen(minimum))
	return result, nil
}

// solveRuleLead compares both rules on every date up to the section change
// ceiling, past the end of the regular refund period.
func (s *Solver) solveRuleLead(ctx context.Context, req Request) (*Result, error) {
	start := dateutil.Normalize(req.Base.StartDate)
	first, last := s.window(req.Constraints, start, dateutil.AddMonths(start, domain.SectionChangeCeilingMonths))

	engine := compare.NewCompareEngine()
	engine.Logger = s.logger()

	result := &Result{Request: req}
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		if result.Iterations >= req.MaxIterations {
			return nil, &BreakEvenError{
				Operation: "solve_rule_lead",
				Message:   fmt.Sprintf("did not converge within %d iterations", req.MaxIterations),
			}
		}
		result.Iterations++

		rc, err := engine.Compare(ctx, req.Base.WithRefundDate(d))
		if err != nil {
			return nil, &BreakEvenError{
				Operation: "solve_rule_lead",
				Message:   fmt.Sprintf("comparison failed on %s", dateutil.Format(d)),
				Cause:     err,
			}
		}
		result.addLead(d, rc)
	}

	result.Success = len(result.Leads) > 0
	result.ConvergenceInfo = fmt.Sprintf("Compared %d refund dates", result.Iterations)
	return result, nil
}

// addLead extends the last lead or starts a new one when the leader changes.
func (r *Result) addLead(d time.Time, rc *compare.RuleComparison) {
	diff := rc.Difference.Abs()
	if n := len(r.Leads); n > 0 {
		last := &r.Leads[n-1]
		if last.Leader == rc.Higher {
			last.To = d
			if diff.GreaterThan(last.MaxDifference) {
				last.MaxDifference = diff
			}
			return
		}
	}
	r.Leads = append(r.Leads, Lead{From: d, To: d, Leader: rc.Higher, MaxDifference: diff})
}

// window narrows [start, last] to the constraint dates
func (s *Solver) window(c Constraints, start, last time.Time) (time.Time, time.Time) {
	if c.EarliestDate != nil {
		if d := dateutil.Normalize(*c.EarliestDate); d.After(start) {
			start = d
		}
	}
	if c.LatestDate != nil {
		if d := dateutil.Normalize(*c.LatestDate); d.Before(last) {
			last = d
		}
	}
	return start, last
}

func (s *Solver) ruleFor(kind domain.RefundKind) func(domain.RegularRefundInput) (*domain.RefundResult, error) {
	opt := calculation.WithLogger(s.logger())
	if kind == domain.KindSectionChange {
		return func(in domain.RegularRefundInput) (*domain.RefundResult, error) {
			return calculation.ComputeSectionChangeRefund(in.SectionChange(), opt)
		}
	}
	return func(in domain.RegularRefundInput) (*domain.RefundResult, error) {
		return calculation.ComputeRegularRefund(in, opt)
	}
}

func (s *Solver) logger() calculation.Logger {
	if s.Logger == nil {
		return calculation.NopLogger{}
	}
	return s.Logger
}

// MinimumRefund is a convenience for building constraints
func MinimumRefund(yen int64) *decimal.Decimal {
	d := decimal.NewFromInt(yen)
	return &d
}
