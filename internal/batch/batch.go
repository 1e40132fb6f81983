// Package batch evaluates every case of a case file and collects the
// outcomes into a single report.
package batch

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rgehrsitz/passrefund/internal/calculation"
	"github.com/rgehrsitz/passrefund/internal/clock"
	"github.com/rgehrsitz/passrefund/internal/domain"
	"github.com/rgehrsitz/passrefund/internal/validation"
)

// Status of a single case in a report
type Status string

const (
	StatusOK       Status = "ok"
	StatusMismatch Status = "mismatch"
	StatusInvalid  Status = "invalid"
)

// Entry is the outcome of one case.
type Entry struct {
	Name   string               `json:"name"`
	Kind   domain.RefundKind    `json:"kind"`
	Status Status               `json:"status"`
	Result *domain.RefundResult `json:"result,omitempty"`

	// Errors holds the validation failures of an invalid case
	Errors validation.Errors `json:"errors,omitempty"`
	// Error is set when the case failed for a reason other than validation
	Error string `json:"error,omitempty"`

	Expected *domain.ExpectedOutcome `json:"expected,omitempty"`
}

// Summary counts entries by status
type Summary struct {
	Total      int `json:"total"`
	OK         int `json:"ok"`
	Mismatched int `json:"mismatched"`
	Invalid    int `json:"invalid"`
}

// Report is the result of running a case file.
type Report struct {
	ID          uuid.UUID `json:"id"`
	GeneratedAt time.Time `json:"generated_at"`
	Entries     []Entry   `json:"entries"`
	Summary     Summary   `json:"summary"`
}

// Passed reports whether every case computed and met its expectation.
func (r *Report) Passed() bool {
	return r.Summary.Mismatched == 0 && r.Summary.Invalid == 0
}

// Runner computes case files
type Runner struct {
	Logger calculation.Logger
	Clock  clock.Clock
}

// NewRunner creates a runner on the system clock with no logging
func NewRunner() *Runner {
	return &Runner{
		Logger: calculation.NopLogger{},
		Clock:  clock.System{},
	}
}

// Run computes every case in order. A case that fails validation is
// recorded in the report rather than aborting the run; only cancellation
// of ctx stops it early.
func (r *Runner) Run(ctx context.Context, file *domain.CaseFile) (*Report, error) {
	logger := r.Logger
	if logger == nil {
		logger = calculation.NopLogger{}
	}
	clk := r.Clock
	if clk == nil {
		clk = clock.System{}
	}

	report := &Report{
		ID:          uuid.New(),
		GeneratedAt: clk.Now(),
		Entries:     make([]Entry, 0, len(file.Cases)),
	}
	logger.Infof("batch %s: running %d case(s)", report.ID, len(file.Cases))

	for _, c := range file.Cases {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		entry := r.runCase(c, logger)
		report.Entries = append(report.Entries, entry)
		report.Summary.add(entry.Status)
	}

	logger.Infof("batch %s: %d ok, %d mismatched, %d invalid",
		report.ID, report.Summary.OK, report.Summary.Mismatched, report.Summary.Invalid)
	return report, nil
}

func (r *Runner) runCase(c domain.RefundCase, logger calculation.Logger) Entry {
	entry := Entry{Name: c.Name, Kind: c.Kind, Expected: c.Expected}

	result, err := calculation.ComputeCase(c, calculation.WithLogger(logger))
	if err != nil {
		entry.Status = StatusInvalid
		var errs validation.Errors
		if errors.As(err, &errs) {
			entry.Errors = errs
		} else {
			entry.Error = err.Error()
		}
		logger.Warnf("case %q: %v", c.Name, err)
		return entry
	}

	entry.Result = result
	entry.Status = StatusOK
	if !c.Expected.Matches(result) {
		entry.Status = StatusMismatch
		logger.Warnf("case %q: expected %s, got %s",
			c.Name, domain.FormatYen(c.Expected.RefundAmount), domain.FormatYen(result.RefundAmount))
	}
	return entry
}

func (s *Summary) add(status Status) {
	s.Total++
	switch status {
	case StatusOK:
		s.OK++
	case StatusMismatch:
		s.Mismatched++
	case StatusInvalid:
		s.Invalid++
	}
}
