// Package schedule scans every possible refund date of a pass and reports
// how the refund falls over time.
package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/rgehrsitz/passrefund/internal/calculation"
	"github.com/rgehrsitz/passrefund/internal/dateutil"
	"github.com/rgehrsitz/passrefund/internal/domain"
)

// Builder computes refund timelines
type Builder struct {
	Logger calculation.Logger
}

// NewBuilder creates a builder with no logging
func NewBuilder() *Builder {
	return &Builder{Logger: calculation.NopLogger{}}
}

// Build evaluates the refund rule named by kind on every date from the
// pass start through the last date the rule accepts: the pass end date
// for regular refunds, six months after the start for
// section changes. The refund date of in is ignored.
func (b *Builder) Build(ctx context.Context, in domain.RegularRefundInput, kind domain.RefundKind) (*Timeline, error) {
	if kind == "" {
		kind = domain.KindRegular
	}
	compute, err := b.ruleFor(kind)
	if err != nil {
		return nil, err
	}

	start := dateutil.Normalize(in.StartDate)
	if start.IsZero() || !in.Tier.IsValid() {
		// Let the rule itself report the missing fields.
		if _, err := compute(in.WithRefundDate(start)); err != nil {
			return nil, err
		}
	}
	last := lastDate(start, in.Tier, kind)

	tl := &Timeline{
		Kind:      kind,
		Tier:      in.Tier,
		StartDate: start,
		LastDate:  last,
		Points:    make([]Point, 0, dateutil.DaysBetween(start, last)+1),
	}

	for d := start; !d.After(last); d = d.AddDate(0, 0, 1) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		result, err := compute(in.WithRefundDate(d))
		if err != nil {
			return nil, fmt.Errorf("failed to calculate %s refund on %s: %w", kind, dateutil.Format(d), err)
		}
		tl.add(Point{
			Date:         d,
			RefundAmount: result.RefundAmount,
			UsedAmount:   result.UsedAmount,
			Method:       result.Breakdown.Method,
		})
	}

	b.logger().Debugf("schedule: %s %s pass from %s, %d date(s), %d segment(s)",
		kind, in.Tier, dateutil.Format(start), len(tl.Points), len(tl.Segments))
	return tl, nil
}

// LastRefundableDate is a convenience wrapper around Build
func (b *Builder) LastRefundableDate(ctx context.Context, in domain.RegularRefundInput, kind domain.RefundKind) (*time.Time, error) {
	tl, err := b.Build(ctx, in, kind)
	if err != nil {
		return nil, err
	}
	return tl.LastRefundableDate, nil
}

func (b *Builder) ruleFor(kind domain.RefundKind) (func(domain.RegularRefundInput) (*domain.RefundResult, error), error) {
	opt := calculation.WithLogger(calculation.NopLogger{})
	switch kind {
	case domain.KindRegular:
		return func(in domain.RegularRefundInput) (*domain.RefundResult, error) {
			return calculation.ComputeRegularRefund(in, opt)
		}, nil
	case domain.KindSectionChange:
		return func(in domain.RegularRefundInput) (*domain.RefundResult, error) {
			return calculation.ComputeSectionChangeRefund(in.SectionChange(), opt)
		}, nil
	}
	return nil, fmt.Errorf("unknown refund kind %q", kind)
}

func (b *Builder) logger() calculation.Logger {
	if b.Logger == nil {
		return calculation.NopLogger{}
	}
	return b.Logger
}

func lastDate(start time.Time, tier domain.PassTier, kind domain.RefundKind) time.Time {
	if kind == domain.KindSectionChange {
		return dateutil.AddMonths(start, domain.SectionChangeCeilingMonths)
	}
	return dateutil.EndDate(start, tier.Months())
}

func (tl *Timeline) add(p Point) {
	tl.Points = append(tl.Points, p)
	if p.RefundAmount.IsPositive() {
		d := p.Date
		tl.LastRefundableDate = &d
	}

	if n := len(tl.Segments); n > 0 {
		seg := &tl.Segments[n-1]
		if seg.RefundAmount.Equal(p.RefundAmount) && seg.Method == p.Method {
			seg.To = p.Date
			return
		}
	}
	tl.Segments = append(tl.Segments, Segment{
		From:         p.Date,
		To:           p.Date,
		RefundAmount: p.RefundAmount,
		Method:       p.Method,
	})
}
