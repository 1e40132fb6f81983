package compare

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rgehrsitz/passrefund/internal/calculation"
	"github.com/rgehrsitz/passrefund/internal/dateutil"
	"github.com/rgehrsitz/passrefund/internal/domain"
	"github.com/rgehrsitz/passrefund/internal/validation"
)

// CompareEngine evaluates both refund rules side by side
type CompareEngine struct {
	Logger calculation.Logger
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine() *CompareEngine {
	return &CompareEngine{Logger: calculation.NopLogger{}}
}

// Compare applies the regular and section change rules to the same pass.
// A rule that rejects the input is reported in its outcome; an error is
// returned only when neither rule accepts it.
func (ce *CompareEngine) Compare(ctx context.Context, in domain.RegularRefundInput) (*RuleComparison, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	regular, err := ce.outcome(domain.KindRegular, func(opts ...calculation.Option) (*domain.RefundResult, error) {
		return calculation.ComputeRegularRefund(in, opts...)
	})
	if err != nil {
		return nil, err
	}
	section, err := ce.outcome(domain.KindSectionChange, func(opts ...calculation.Option) (*domain.RefundResult, error) {
		return calculation.ComputeSectionChangeRefund(in.SectionChange(), opts...)
	})
	if err != nil {
		return nil, err
	}

	if !regular.Applicable() && !section.Applicable() {
		return nil, fmt.Errorf("neither refund rule accepts the input: %w", regular.Errors)
	}

	rc := &RuleComparison{
		StartDate:     dateutil.Normalize(in.StartDate),
		RefundDate:    dateutil.Normalize(in.RefundDate),
		Tier:          in.Tier,
		PurchasePrice: in.PurchasePrice,
		Regular:       regular,
		SectionChange: section,
	}
	rc.calculateDifference()
	rc.Recommendations = GenerateRecommendations(rc)
	return rc, nil
}

// CompareDates runs Compare for each refund date in order
func (ce *CompareEngine) CompareDates(ctx context.Context, in domain.RegularRefundInput, dates []time.Time) ([]RuleComparison, error) {
	comparisons := make([]RuleComparison, 0, len(dates))
	for _, d := range dates {
		rc, err := ce.Compare(ctx, in.WithRefundDate(d))
		if err != nil {
			return nil, fmt.Errorf("failed to compare refunds on %s: %w", dateutil.Format(d), err)
		}
		comparisons = append(comparisons, *rc)
	}
	return comparisons, nil
}

func (ce *CompareEngine) outcome(kind domain.RefundKind, compute func(...calculation.Option) (*domain.RefundResult, error)) (RuleOutcome, error) {
	logger := ce.Logger
	if logger == nil {
		logger = calculation.NopLogger{}
	}

	out := RuleOutcome{Kind: kind}
	result, err := compute(calculation.WithLogger(logger))
	if err != nil {
		var errs validation.Errors
		if !errors.As(err, &errs) {
			return out, fmt.Errorf("failed to calculate %s refund: %w", kind, err)
		}
		logger.Debugf("compare: %s rule rejected input: %v", kind, errs)
		out.Errors = errs
		return out, nil
	}
	out.Result = result
	return out, nil
}
