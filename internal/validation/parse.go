package validation

import (
	"strings"
	"time"

	"github.com/rgehrsitz/passrefund/internal/dateutil"
	"github.com/rgehrsitz/passrefund/internal/domain"
	"github.com/shopspring/decimal"
)

// FormParser converts raw text fields into typed input values, collecting
// a violation for every field that cannot be read. It is used by the CLI
// and the terminal form; the engines never see raw text.
type FormParser struct {
	Errs Errors
}

// Date parses a YYYY-MM-DD field.
func (p *FormParser) Date(field, label, raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		p.Errs.add(MissingRequiredField, field, "%s is required", label)
		return time.Time{}
	}
	d, err := dateutil.Parse(raw)
	if err != nil {
		p.Errs.add(InvalidDate, field, "%s must be a date in YYYY-MM-DD form, got %q", label, raw)
		return time.Time{}
	}
	return d
}

// Amount parses a required whole-yen amount. Commas are ignored.
func (p *FormParser) Amount(field, label, raw string) decimal.Decimal {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if raw == "" {
		p.Errs.add(MissingRequiredField, field, "%s is required", label)
		return decimal.Zero
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		p.Errs.add(InvalidAmount, field, "%s must be a number, got %q", label, raw)
		return decimal.Zero
	}
	if !d.IsPositive() {
		p.Errs.add(InvalidAmount, field, "%s must be positive, got %s", label, d)
	}
	return d
}

// OptionalAmount parses an amount that may be left blank.
func (p *FormParser) OptionalAmount(field, label, raw string) *decimal.Decimal {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	d := p.Amount(field, label, raw)
	return &d
}

// Tier parses a pass tier field.
func (p *FormParser) Tier(raw string) domain.PassTier {
	if strings.TrimSpace(raw) == "" {
		p.Errs.add(MissingRequiredField, FieldTier, "pass tier is required")
		return 0
	}
	tier, err := domain.ParsePassTier(raw)
	if err != nil {
		p.Errs.add(MissingRequiredField, FieldTier, "%v", err)
		return 0
	}
	return tier
}

// Err returns the collected violations, or nil.
func (p *FormParser) Err() error {
	return p.Errs.Err()
}
