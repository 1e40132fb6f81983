package calculation

import (
	"fmt"

	"github.com/rgehrsitz/passrefund/internal/domain"
	"github.com/rgehrsitz/passrefund/internal/validation"
)

// ComputeRegularRefund calculates the refund for a standard mid-period
// cancellation. Invalid input is reported as validation.Errors; the
// calculation itself never fails once the input has been accepted.
func ComputeRegularRefund(in domain.RegularRefundInput, opts ...Option) (*domain.RefundResult, error) {
	o := applyOptions(opts)

	terms, err := NewRegularTerms(in)
	if err != nil {
		o.logger.Debugf("regular refund rejected: %v", err)
		return nil, err
	}

	result := regularRefund(terms, o.logger)
	if err := checkResult(result, o.logger); err != nil {
		return nil, err
	}
	o.logger.Infof("regular refund: %s (%s)", domain.FormatYen(result.RefundAmount), result.Breakdown.Method)
	return result, nil
}

// ComputeSectionChangeRefund calculates the refund issued when a pass is
// surrendered because its route changed.
func ComputeSectionChangeRefund(in domain.SectionChangeRefundInput, opts ...Option) (*domain.RefundResult, error) {
	o := applyOptions(opts)

	terms, err := NewSectionTerms(in)
	if err != nil {
		o.logger.Debugf("section change refund rejected: %v", err)
		return nil, err
	}

	result := sectionChangeRefund(terms, o.logger)
	if err := checkResult(result, o.logger); err != nil {
		return nil, err
	}
	o.logger.Infof("section change refund: %s (%d decade(s))", domain.FormatYen(result.RefundAmount), result.Breakdown.UsedDecades)
	return result, nil
}

// ComputeCase dispatches a case file entry to the rule set named by its kind.
func ComputeCase(c domain.RefundCase, opts ...Option) (*domain.RefundResult, error) {
	switch c.Kind {
	case domain.KindRegular, "":
		return ComputeRegularRefund(c.RegularInput(), opts...)
	case domain.KindSectionChange:
		return ComputeSectionChangeRefund(c.SectionChangeInput(), opts...)
	default:
		return nil, fmt.Errorf("unknown refund kind %q", c.Kind)
	}
}

// checkResult guards the result invariants before it leaves the package.
func checkResult(r *domain.RefundResult, log Logger) error {
	errs := validation.CheckResult(r)
	if len(errs) == 0 {
		return nil
	}
	log.Errorf("%s refund produced an invalid result: %v", r.Kind, errs)
	return errs
}
