package compare

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/rgehrsitz/passrefund/internal/dateutil"
	"github.com/rgehrsitz/passrefund/internal/domain"
	"github.com/rgehrsitz/passrefund/internal/validation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pass(tier domain.PassTier, price int64, refund time.Time) domain.RegularRefundInput {
	in := domain.RegularRefundInput{
		StartDate:     dateutil.Date(2025, time.June, 5),
		Tier:          tier,
		PurchasePrice: decimal.NewFromInt(price),
		RefundDate:    refund,
		OneWayFare:    decimal.NewFromInt(500),
		OneMonthFare:  decimal.NewFromInt(16000),
	}
	if tier == domain.TierSixMonth {
		three := decimal.NewFromInt(45000)
		in.ThreeMonthFare = &three
	}
	return in
}

func TestCompareEngine_Compare(t *testing.T) {
	tests := []struct {
		name        string
		input       domain.RegularRefundInput
		wantRegular int64
		wantSection int64
		wantDiff    int64
		wantHigher  domain.RefundKind
		wantNote    string
	}{
		{
			name:        "one-month pass after the grace period",
			input:       pass(domain.TierOneMonth, 16000, dateutil.Date(2025, time.June, 14)),
			wantRegular: 0,
			wantSection: 10440,
			wantDiff:    10440,
			wantHigher:  domain.KindSectionChange,
			wantNote:    "route change refund returns ¥10,440 more",
		},
		{
			name:        "three-month pass after one month",
			input:       pass(domain.TierThreeMonth, 45000, dateutil.Date(2025, time.July, 4)),
			wantRegular: 28780,
			wantSection: 29780,
			wantDiff:    1000,
			wantHigher:  domain.KindSectionChange,
		},
		{
			name:        "three-month pass after two months",
			input:       pass(domain.TierThreeMonth, 45000, dateutil.Date(2025, time.August, 4)),
			wantRegular: 12780,
			wantSection: 9780,
			wantDiff:    -3000,
			wantHigher:  domain.KindRegular,
			wantNote:    "regular cancellation returns ¥3,000 more",
		},
		{
			name:        "six-month pass after four months",
			input:       pass(domain.TierSixMonth, 80000, dateutil.Date(2025, time.October, 4)),
			wantRegular: 18780,
			wantSection: 21930,
			wantDiff:    3150,
			wantHigher:  domain.KindSectionChange,
		},
		{
			name:        "both rules agree inside the grace period",
			input:       pass(domain.TierThreeMonth, 45000, dateutil.Date(2025, time.June, 9)),
			wantRegular: 39780,
			wantSection: 39780,
			wantDiff:    0,
			wantHigher:  "",
			wantNote:    "Both rules return the same amount",
		},
	}

	engine := NewCompareEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc, err := engine.Compare(context.Background(), tt.input)
			require.NoError(t, err)

			require.True(t, rc.Regular.Applicable())
			require.True(t, rc.SectionChange.Applicable())
			assert.True(t, decimal.NewFromInt(tt.wantRegular).Equal(rc.Regular.Refund()), "regular %s", rc.Regular.Refund())
			assert.True(t, decimal.NewFromInt(tt.wantSection).Equal(rc.SectionChange.Refund()), "section %s", rc.SectionChange.Refund())
			assert.True(t, decimal.NewFromInt(tt.wantDiff).Equal(rc.Difference), "difference %s", rc.Difference)
			assert.Equal(t, tt.wantHigher, rc.Higher)
			if tt.wantNote != "" {
				assert.Contains(t, strings.Join(rc.Recommendations, "\n"), tt.wantNote)
			}
		})
	}
}

func TestCompareEngine_Compare_OneRuleRejects(t *testing.T) {
	// The regular rule stops at the end of the pass, the section change
	// rule accepts dates up to six months after the start.
	in := pass(domain.TierOneMonth, 16000, dateutil.Date(2025, time.August, 1))

	rc, err := NewCompareEngine().Compare(context.Background(), in)
	require.NoError(t, err)

	assert.False(t, rc.Regular.Applicable())
	assert.True(t, rc.Regular.Errors.Has(validation.DateRangeViolation))
	assert.True(t, rc.SectionChange.Applicable())
	assert.True(t, rc.Regular.Refund().IsZero())
	assert.Contains(t, rc.Recommendations[0], "Regular refund is not available")
}

func TestCompareEngine_Compare_NeitherApplies(t *testing.T) {
	in := pass(domain.TierOneMonth, 16000, dateutil.Date(2025, time.June, 1))

	rc, err := NewCompareEngine().Compare(context.Background(), in)

	require.Error(t, err)
	assert.Nil(t, rc)
	assert.Contains(t, err.Error(), "neither refund rule accepts the input")

	var errs validation.Errors
	assert.ErrorAs(t, err, &errs)
}

func TestCompareEngine_Compare_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewCompareEngine().Compare(ctx, pass(domain.TierOneMonth, 16000, dateutil.Date(2025, time.June, 9)))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCompareEngine_CompareDates(t *testing.T) {
	in := pass(domain.TierThreeMonth, 45000, time.Time{})
	dates := []time.Time{
		dateutil.Date(2025, time.June, 9),
		dateutil.Date(2025, time.July, 4),
	}

	comparisons, err := NewCompareEngine().CompareDates(context.Background(), in, dates)
	require.NoError(t, err)
	require.Len(t, comparisons, 2)
	assert.Equal(t, dates[1], comparisons[1].RefundDate)

	_, err = NewCompareEngine().CompareDates(context.Background(), in, []time.Time{dateutil.Date(2025, time.May, 1)})
	assert.ErrorContains(t, err, "failed to compare refunds on 2025-05-01")
}

func sampleComparison(t *testing.T) *RuleComparison {
	t.Helper()
	rc, err := NewCompareEngine().Compare(context.Background(),
		pass(domain.TierThreeMonth, 45000, dateutil.Date(2025, time.July, 4)))
	require.NoError(t, err)
	return rc
}

func TestTableFormatter_Format(t *testing.T) {
	out := (&TableFormatter{}).Format(sampleComparison(t))

	assert.Contains(t, out, "REFUND RULE COMPARISON")
	assert.Contains(t, out, "3-month, purchased for ¥45,000")
	assert.Contains(t, out, "2025-06-05 to refund on 2025-07-04")
	assert.Contains(t, out, "¥28,780")
	assert.Contains(t, out, "¥29,780")
	assert.Contains(t, out, "Difference (section change - regular): +¥1,000")
}

func TestTableFormatter_Format_NotApplicable(t *testing.T) {
	rc, err := NewCompareEngine().Compare(context.Background(),
		pass(domain.TierOneMonth, 16000, dateutil.Date(2025, time.August, 1)))
	require.NoError(t, err)

	out := (&TableFormatter{}).Format(rc)
	assert.Contains(t, out, "not applicable (E004)")
}

func TestJSONFormatter_Format(t *testing.T) {
	for _, pretty := range []bool{true, false} {
		out, err := (&JSONFormatter{Pretty: pretty}).Format(sampleComparison(t))
		require.NoError(t, err)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &decoded))
		assert.Equal(t, "section_change", decoded["higher"])
		assert.Equal(t, "3-month", decoded["tier"])
		assert.Equal(t, pretty, strings.Contains(out, "\n"))
	}
}

func TestCSVFormatter_Format(t *testing.T) {
	out, err := (&CSVFormatter{}).Format(sampleComparison(t))
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "Refund Date", records[0][0])
	assert.Equal(t, []string{"2025-07-04", "regular", "true", "28780", "16000", "220", "monthly", "1000"}, records[1])
	assert.Equal(t, []string{"2025-07-04", "section_change", "true", "29780", "15000", "220", "decade", "1000"}, records[2])
}
