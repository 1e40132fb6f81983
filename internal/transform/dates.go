package transform

import (
	"fmt"
	"time"

	"github.com/rgehrsitz/passrefund/internal/dateutil"
	"github.com/rgehrsitz/passrefund/internal/domain"
)

// ShiftRefundDate moves the refund date by a number of months and days.
// Months are added first, clamped to the end of the target month.
type ShiftRefundDate struct {
	Months int
	Days   int
}

func (s *ShiftRefundDate) Name() string {
	return "shift_refund_date"
}

func (s *ShiftRefundDate) Description() string {
	switch {
	case s.Months != 0 && s.Days != 0:
		return fmt.Sprintf("Move the refund date by %d month(s) and %d day(s)", s.Months, s.Days)
	case s.Months != 0:
		return fmt.Sprintf("Move the refund date by %d month(s)", s.Months)
	default:
		return fmt.Sprintf("Move the refund date by %d day(s)", s.Days)
	}
}

func (s *ShiftRefundDate) Validate(base *domain.RefundCase) error {
	if base == nil {
		return NewTransformError(s.Name(), "validate", "base case cannot be nil", nil)
	}
	if s.Months == 0 && s.Days == 0 {
		return NewTransformError(s.Name(), "validate", "months or days must be non-zero", nil)
	}
	if base.RefundDate.IsZero() {
		return NewTransformError(s.Name(), "validate", fmt.Sprintf("case %s has no refund date", base.Name), nil)
	}
	return nil
}

func (s *ShiftRefundDate) Apply(base *domain.RefundCase) (*domain.RefundCase, error) {
	modified := base.DeepCopy()
	d := dateutil.AddMonths(base.RefundDate, s.Months)
	modified.RefundDate = d.AddDate(0, 0, s.Days)
	return modified, nil
}

// SetRefundDate sets the refund date to an absolute date.
type SetRefundDate struct {
	Date time.Time
}

func (s *SetRefundDate) Name() string {
	return "set_refund_date"
}

func (s *SetRefundDate) Description() string {
	return fmt.Sprintf("Set the refund date to %s", dateutil.Format(s.Date))
}

func (s *SetRefundDate) Validate(base *domain.RefundCase) error {
	if base == nil {
		return NewTransformError(s.Name(), "validate", "base case cannot be nil", nil)
	}
	if s.Date.IsZero() {
		return NewTransformError(s.Name(), "validate", "date cannot be zero", nil)
	}
	return nil
}

func (s *SetRefundDate) Apply(base *domain.RefundCase) (*domain.RefundCase, error) {
	modified := base.DeepCopy()
	modified.RefundDate = dateutil.Normalize(s.Date)
	return modified, nil
}

// RefundOnDay sets the refund date to the given day of the pass, counting
// the start date as day 1.
type RefundOnDay struct {
	Day int
}

func (r *RefundOnDay) Name() string {
	return "refund_on_day"
}

func (r *RefundOnDay) Description() string {
	return fmt.Sprintf("Refund on day %d of the pass", r.Day)
}

func (r *RefundOnDay) Validate(base *domain.RefundCase) error {
	if base == nil {
		return NewTransformError(r.Name(), "validate", "base case cannot be nil", nil)
	}
	if r.Day < 1 {
		return NewTransformError(r.Name(), "validate", fmt.Sprintf("day must be at least 1, got %d", r.Day), nil)
	}
	if base.StartDate.IsZero() {
		return NewTransformError(r.Name(), "validate", fmt.Sprintf("case %s has no start date", base.Name), nil)
	}
	return nil
}

func (r *RefundOnDay) Apply(base *domain.RefundCase) (*domain.RefundCase, error) {
	modified := base.DeepCopy()
	modified.RefundDate = dateutil.Normalize(base.StartDate).AddDate(0, 0, r.Day-1)
	return modified, nil
}

// SetStartDate moves the start of the pass, keeping the refund date.
type SetStartDate struct {
	Date time.Time
}

func (s *SetStartDate) Name() string {
	return "set_start_date"
}

func (s *SetStartDate) Description() string {
	return fmt.Sprintf("Set the pass start date to %s", dateutil.Format(s.Date))
}

func (s *SetStartDate) Validate(base *domain.RefundCase) error {
	if base == nil {
		return NewTransformError(s.Name(), "validate", "base case cannot be nil", nil)
	}
	if s.Date.IsZero() {
		return NewTransformError(s.Name(), "validate", "date cannot be zero", nil)
	}
	return nil
}

func (s *SetStartDate) Apply(base *domain.RefundCase) (*domain.RefundCase, error) {
	modified := base.DeepCopy()
	modified.StartDate = dateutil.Normalize(s.Date)
	return modified, nil
}
