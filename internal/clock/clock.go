// Package clock supplies the current date to the parts of the tool that
// default a missing refund date to today or stamp reports.
package clock

import (
	"time"

	"github.com/rgehrsitz/passrefund/internal/dateutil"
)

// Clock reports the current time.
//
//go:generate mockgen -destination=mocks/mock_clock.go -package=mock_clock -source=clock.go Clock
type Clock interface {
	Now() time.Time
}

// System is the wall clock.
type System struct{}

// Now returns the local wall-clock time.
func (System) Now() time.Time {
	return time.Now()
}

// Today returns the calendar date of c.Now() as a normalized date.
func Today(c Clock) time.Time {
	return dateutil.Normalize(c.Now())
}
