package calculation

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rgehrsitz/passrefund/internal/dateutil"
	"github.com/rgehrsitz/passrefund/internal/domain"
	"github.com/rgehrsitz/passrefund/internal/validation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLogger records every message it receives
type TestLogger struct {
	mu       sync.Mutex
	Messages []string
}

func (l *TestLogger) record(level, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Messages = append(l.Messages, level+": "+fmt.Sprintf(format, args...))
}

func (l *TestLogger) Debugf(format string, args ...any) { l.record("DEBUG", format, args...) }
func (l *TestLogger) Infof(format string, args ...any)  { l.record("INFO", format, args...) }
func (l *TestLogger) Warnf(format string, args ...any)  { l.record("WARN", format, args...) }
func (l *TestLogger) Errorf(format string, args ...any) { l.record("ERROR", format, args...) }

func yenAmount(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func yenPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func june(day int) time.Time {
	return dateutil.Date(2025, time.June, day)
}

func oneMonthPass(refund time.Time) domain.RegularRefundInput {
	return domain.RegularRefundInput{
		StartDate:     june(5),
		Tier:          domain.TierOneMonth,
		PurchasePrice: yenAmount(16000),
		RefundDate:    refund,
		OneWayFare:    yenAmount(320),
		OneMonthFare:  yenAmount(16000),
	}
}

func threeMonthPass(refund time.Time) domain.RegularRefundInput {
	return domain.RegularRefundInput{
		StartDate:     june(5),
		Tier:          domain.TierThreeMonth,
		PurchasePrice: yenAmount(45000),
		RefundDate:    refund,
		OneWayFare:    yenAmount(500),
		OneMonthFare:  yenAmount(16000),
	}
}

func sixMonthPass(refund time.Time) domain.RegularRefundInput {
	return domain.RegularRefundInput{
		StartDate:      june(5),
		Tier:           domain.TierSixMonth,
		PurchasePrice:  yenAmount(80000),
		RefundDate:     refund,
		OneWayFare:     yenAmount(500),
		OneMonthFare:   yenAmount(16000),
		ThreeMonthFare: yenPtr(45000),
	}
}

func TestComputeRegularRefund(t *testing.T) {
	tests := []struct {
		name       string
		input      domain.RegularRefundInput
		wantRefund int64
		wantUsed   int64
		wantMethod domain.CalculationMethod
	}{
		{
			name:       "one-month pass within seven days",
			input:      oneMonthPass(june(9)),
			wantRefund: 12580,
			wantUsed:   3200,
			wantMethod: domain.MethodWithinSevenDays,
		},
		{
			name:       "one-month pass on the seventh day",
			input:      oneMonthPass(june(11)),
			wantRefund: 11300,
			wantUsed:   4480,
			wantMethod: domain.MethodWithinSevenDays,
		},
		{
			name:       "one-month pass on the eighth day",
			input:      oneMonthPass(june(12)),
			wantRefund: 0,
			wantUsed:   0,
			wantMethod: domain.MethodNoRefund,
		},
		{
			name:       "one-month pass after fifteen days",
			input:      oneMonthPass(june(19)),
			wantRefund: 0,
			wantUsed:   0,
			wantMethod: domain.MethodNoRefund,
		},
		{
			name:       "three-month pass on the seventh day",
			input:      threeMonthPass(june(11)),
			wantRefund: 37780,
			wantUsed:   7000,
			wantMethod: domain.MethodWithinSevenDays,
		},
		{
			name:       "three-month pass on the eighth day bills one month",
			input:      threeMonthPass(june(12)),
			wantRefund: 28780,
			wantUsed:   16000,
			wantMethod: domain.MethodMonthly,
		},
		{
			name:       "three-month pass one month used",
			input:      threeMonthPass(dateutil.Date(2025, time.July, 4)),
			wantRefund: 28780,
			wantUsed:   16000,
			wantMethod: domain.MethodMonthly,
		},
		{
			name:       "three-month pass two months used",
			input:      threeMonthPass(dateutil.Date(2025, time.August, 4)),
			wantRefund: 12780,
			wantUsed:   32000,
			wantMethod: domain.MethodMonthly,
		},
		{
			name:       "three-month pass with less than a month left",
			input:      threeMonthPass(dateutil.Date(2025, time.August, 5)),
			wantRefund: 0,
			wantUsed:   0,
			wantMethod: domain.MethodNoRefund,
		},
		{
			name:       "three-month pass on its last day",
			input:      threeMonthPass(dateutil.Date(2025, time.September, 4)),
			wantRefund: 0,
			wantUsed:   0,
			wantMethod: domain.MethodNoRefund,
		},
		{
			name:       "six-month pass two months used",
			input:      sixMonthPass(dateutil.Date(2025, time.August, 4)),
			wantRefund: 47780,
			wantUsed:   32000,
			wantMethod: domain.MethodMonthly,
		},
		{
			name:       "six-month pass three months used bills the three-month fare",
			input:      sixMonthPass(dateutil.Date(2025, time.September, 4)),
			wantRefund: 34780,
			wantUsed:   45000,
			wantMethod: domain.MethodMonthly,
		},
		{
			name:       "six-month pass four months used",
			input:      sixMonthPass(dateutil.Date(2025, time.October, 4)),
			wantRefund: 18780,
			wantUsed:   61000,
			wantMethod: domain.MethodMonthly,
		},
		{
			name:       "six-month pass five months used",
			input:      sixMonthPass(dateutil.Date(2025, time.November, 4)),
			wantRefund: 2780,
			wantUsed:   77000,
			wantMethod: domain.MethodMonthly,
		},
		{
			name:       "six-month pass with less than a month left",
			input:      sixMonthPass(dateutil.Date(2025, time.November, 5)),
			wantRefund: 0,
			wantUsed:   0,
			wantMethod: domain.MethodNoRefund,
		},
		{
			name:       "refund on the start date counts one day",
			input:      threeMonthPass(june(5)),
			wantRefund: 43780,
			wantUsed:   1000,
			wantMethod: domain.MethodWithinSevenDays,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ComputeRegularRefund(tt.input)
			require.NoError(t, err)
			require.NotNil(t, result)

			assert.Equal(t, domain.KindRegular, result.Kind)
			assert.True(t, yenAmount(tt.wantRefund).Equal(result.RefundAmount),
				"refund: expected %d, got %s", tt.wantRefund, result.RefundAmount)
			assert.True(t, yenAmount(tt.wantUsed).Equal(result.UsedAmount),
				"used: expected %d, got %s", tt.wantUsed, result.UsedAmount)
			assert.True(t, domain.ProcessingFee().Equal(result.ProcessingFee))
			assert.Equal(t, tt.wantMethod, result.Breakdown.Method)
			assert.NotEmpty(t, result.Details)
		})
	}
}

func TestComputeRegularRefund_GracePeriodClampsToZero(t *testing.T) {
	in := oneMonthPass(june(11))
	in.PurchasePrice = yenAmount(4000)

	result, err := ComputeRegularRefund(in)
	require.NoError(t, err)

	assert.True(t, result.RefundAmount.IsZero())
	assert.True(t, yenAmount(4480).Equal(result.UsedAmount), "used amount is kept when clamped")
	assert.False(t, result.IsRefundable())
	assert.Contains(t, result.Details, "clamped")
}

func TestComputeRegularRefund_MonthlyNonPositiveIsNoRefund(t *testing.T) {
	in := threeMonthPass(dateutil.Date(2025, time.August, 4))
	in.PurchasePrice = yenAmount(30000)

	result, err := ComputeRegularRefund(in)
	require.NoError(t, err)

	assert.Equal(t, domain.MethodNoRefund, result.Breakdown.Method)
	assert.True(t, result.RefundAmount.IsZero())
	assert.True(t, result.UsedAmount.IsZero())
}

func TestComputeRegularRefund_AmountsReconcile(t *testing.T) {
	for day := 5; day <= 30; day++ {
		for _, in := range []domain.RegularRefundInput{
			threeMonthPass(june(day)),
			sixMonthPass(june(day)),
			sixMonthPass(dateutil.Date(2025, time.September, day)),
		} {
			result, err := ComputeRegularRefund(in)
			require.NoError(t, err)

			assert.False(t, result.RefundAmount.IsNegative())
			assert.False(t, result.UsedAmount.IsNegative())
			assert.True(t, result.RefundAmount.IsInteger())
			if result.IsRefundable() {
				total := result.RefundAmount.Add(result.UsedAmount).Add(result.ProcessingFee)
				assert.True(t, in.PurchasePrice.Equal(total),
					"%s on %s: refund + used + fee = %s", in.Tier, dateutil.Format(in.RefundDate), total)
			}
		}
	}
}

// A low one-way fare and a three-month fare above two monthly fares keep this
// pass's refund from rising at the grace period end or the third month.
func TestComputeRegularRefund_SixMonthPassRefundDeclinesOverTime(t *testing.T) {
	in := sixMonthPass(june(5))
	end := dateutil.EndDate(in.StartDate, in.Tier.Months())

	previous := in.PurchasePrice
	for d := in.StartDate; !d.After(end); d = d.AddDate(0, 0, 1) {
		result, err := ComputeRegularRefund(in.WithRefundDate(d))
		require.NoError(t, err)
		assert.True(t, result.RefundAmount.LessThanOrEqual(previous),
			"refund on %s rose to %s", dateutil.Format(d), result.RefundAmount)
		previous = result.RefundAmount
	}
}

func TestComputeRegularRefund_RefundRisesAfterGracePeriod(t *testing.T) {
	in := threeMonthPass(june(11))
	in.OneWayFare = yenAmount(3000)

	day7, err := ComputeRegularRefund(in)
	require.NoError(t, err)
	day8, err := ComputeRegularRefund(in.WithRefundDate(june(12)))
	require.NoError(t, err)

	assert.True(t, yenAmount(2780).Equal(day7.RefundAmount), "day 7: %s", day7.RefundAmount)
	assert.True(t, yenAmount(28780).Equal(day8.RefundAmount), "day 8: %s", day8.RefundAmount)
}

func TestComputeRegularRefund_IgnoresTimeOfDay(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	in := threeMonthPass(time.Date(2025, time.July, 4, 23, 59, 0, 0, tokyo))
	in.StartDate = time.Date(2025, time.June, 5, 0, 30, 0, 0, tokyo)

	result, err := ComputeRegularRefund(in)
	require.NoError(t, err)

	assert.True(t, yenAmount(28780).Equal(result.RefundAmount))
}

func TestComputeRegularRefund_InvalidInput(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*domain.RegularRefundInput)
		wantKind validation.Kind
	}{
		{
			name:     "refund before start",
			mutate:   func(in *domain.RegularRefundInput) { in.RefundDate = june(4) },
			wantKind: validation.DateRangeViolation,
		},
		{
			name:     "refund after the pass expires",
			mutate:   func(in *domain.RegularRefundInput) { in.RefundDate = dateutil.Date(2025, time.September, 5) },
			wantKind: validation.DateRangeViolation,
		},
		{
			name:     "missing start date",
			mutate:   func(in *domain.RegularRefundInput) { in.StartDate = time.Time{} },
			wantKind: validation.MissingRequiredField,
		},
		{
			name:     "zero purchase price",
			mutate:   func(in *domain.RegularRefundInput) { in.PurchasePrice = decimal.Zero },
			wantKind: validation.InvalidAmount,
		},
		{
			name:     "negative one-way fare",
			mutate:   func(in *domain.RegularRefundInput) { in.OneWayFare = yenAmount(-500) },
			wantKind: validation.InvalidAmount,
		},
		{
			name:     "fractional one-month fare",
			mutate:   func(in *domain.RegularRefundInput) { in.OneMonthFare = decimal.RequireFromString("16000.5") },
			wantKind: validation.InvalidAmount,
		},
		{
			name:     "unsupported tier",
			mutate:   func(in *domain.RegularRefundInput) { in.Tier = domain.PassTier(12) },
			wantKind: validation.MissingRequiredField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := threeMonthPass(dateutil.Date(2025, time.July, 4))
			tt.mutate(&in)

			result, err := ComputeRegularRefund(in)
			require.Error(t, err)
			assert.Nil(t, result)

			var errs validation.Errors
			require.True(t, errors.As(err, &errs))
			assert.True(t, errs.Has(tt.wantKind), "expected %s in %v", tt.wantKind, errs)
		})
	}
}

func TestComputeRegularRefund_SixMonthRequiresThreeMonthFare(t *testing.T) {
	in := sixMonthPass(dateutil.Date(2025, time.October, 4))
	in.ThreeMonthFare = nil

	_, err := ComputeRegularRefund(in)
	require.Error(t, err)

	var errs validation.Errors
	require.True(t, errors.As(err, &errs))
	assert.True(t, errs.Has(validation.MissingRequiredField))
	assert.Contains(t, errs.Fields(), validation.FieldThreeMonthFare)
}

func TestComputeRegularRefund_ThreeMonthFareIgnoredForShorterTiers(t *testing.T) {
	with := threeMonthPass(dateutil.Date(2025, time.July, 4))
	with.ThreeMonthFare = yenPtr(1)

	a, err := ComputeRegularRefund(with)
	require.NoError(t, err)
	b, err := ComputeRegularRefund(threeMonthPass(dateutil.Date(2025, time.July, 4)))
	require.NoError(t, err)

	assert.True(t, a.RefundAmount.Equal(b.RefundAmount))
}

func TestUsedFare_ThreeMonthPassBillsPurchasePrice(t *testing.T) {
	// Three or more used months on a three-month pass bill the purchase
	// price as the base fare. The remaining-month gate rejects these dates
	// first, so this path is only reachable directly.
	terms := RegularTerms{
		Tier:          domain.TierThreeMonth,
		PurchasePrice: yenAmount(45000),
		OneMonthFare:  yenAmount(16000),
		BaseTierFare:  yenAmount(45000),
		UsedMonths:    3,
	}
	assert.True(t, yenAmount(45000).Equal(usedFare(terms)))

	terms.UsedMonths = 4
	assert.True(t, yenAmount(61000).Equal(usedFare(terms)))
}

func TestUsedFare_SixMonthPass(t *testing.T) {
	terms := RegularTerms{
		Tier:         domain.TierSixMonth,
		OneMonthFare: yenAmount(16000),
		BaseTierFare: yenAmount(45000),
	}

	expected := map[int]int64{0: 0, 1: 16000, 2: 32000, 3: 45000, 4: 61000, 5: 77000}
	for months, want := range expected {
		terms.UsedMonths = months
		assert.True(t, yenAmount(want).Equal(usedFare(terms)), "%d month(s)", months)
	}
}

func TestComputeSectionChangeRefund(t *testing.T) {
	tests := []struct {
		name        string
		tier        domain.PassTier
		price       int64
		refund      time.Time
		wantRefund  int64
		wantUsed    int64
		wantDecades int
		wantDaily   int64
	}{
		{
			name:        "one-month pass exactly one decade",
			tier:        domain.TierOneMonth,
			price:       16000,
			refund:      june(14),
			wantRefund:  10440,
			wantUsed:    5340,
			wantDecades: 1,
			wantDaily:   534,
		},
		{
			name:        "one-month pass eleven days bills two decades",
			tier:        domain.TierOneMonth,
			price:       16000,
			refund:      june(15),
			wantRefund:  5100,
			wantUsed:    10680,
			wantDecades: 2,
			wantDaily:   534,
		},
		{
			name:        "one-month pass fifteen days",
			tier:        domain.TierOneMonth,
			price:       16000,
			refund:      june(19),
			wantRefund:  5100,
			wantUsed:    10680,
			wantDecades: 2,
			wantDaily:   534,
		},
		{
			name:        "three-month pass thirty-seven days",
			tier:        domain.TierThreeMonth,
			price:       45000,
			refund:      dateutil.Date(2025, time.July, 11),
			wantRefund:  24780,
			wantUsed:    20000,
			wantDecades: 4,
			wantDaily:   500,
		},
		{
			name:        "six-month pass fifty-five days",
			tier:        domain.TierSixMonth,
			price:       80000,
			refund:      dateutil.Date(2025, time.July, 29),
			wantRefund:  53080,
			wantUsed:    26700,
			wantDecades: 6,
			wantDaily:   445,
		},
		{
			name:        "refund on the start date bills one decade",
			tier:        domain.TierThreeMonth,
			price:       45000,
			refund:      june(5),
			wantRefund:  39780,
			wantUsed:    5000,
			wantDecades: 1,
			wantDaily:   500,
		},
		{
			name:        "used fare beyond the price clamps to zero",
			tier:        domain.TierOneMonth,
			price:       16000,
			refund:      dateutil.Date(2025, time.July, 14),
			wantRefund:  0,
			wantUsed:    21360,
			wantDecades: 4,
			wantDaily:   534,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ComputeSectionChangeRefund(domain.SectionChangeRefundInput{
				StartDate:     june(5),
				Tier:          tt.tier,
				PurchasePrice: yenAmount(tt.price),
				RefundDate:    tt.refund,
			})
			require.NoError(t, err)

			assert.Equal(t, domain.KindSectionChange, result.Kind)
			assert.Equal(t, domain.MethodDecade, result.Breakdown.Method)
			assert.True(t, yenAmount(tt.wantRefund).Equal(result.RefundAmount),
				"refund: expected %d, got %s", tt.wantRefund, result.RefundAmount)
			assert.True(t, yenAmount(tt.wantUsed).Equal(result.UsedAmount),
				"used: expected %d, got %s", tt.wantUsed, result.UsedAmount)
			assert.Equal(t, tt.wantDecades, result.Breakdown.UsedDecades)
			assert.True(t, yenAmount(tt.wantDaily).Equal(result.Breakdown.DailyFare))
		})
	}
}

func TestComputeSectionChangeRefund_WholeDecadesOnly(t *testing.T) {
	in := domain.SectionChangeRefundInput{
		StartDate:     june(5),
		Tier:          domain.TierSixMonth,
		PurchasePrice: yenAmount(80000),
	}

	for day := 0; day < 90; day++ {
		in.RefundDate = june(5).AddDate(0, 0, day)
		result, err := ComputeSectionChangeRefund(in)
		require.NoError(t, err)

		decades := result.Breakdown.UsedDecades
		assert.GreaterOrEqual(t, decades*domain.DecadeDays, day+1)
		assert.Less(t, (decades-1)*domain.DecadeDays, day+1)
		assert.True(t, result.UsedAmount.Equal(yenAmount(445*int64(decades*domain.DecadeDays))))
	}
}

func TestComputeSectionChangeRefund_SixMonthCeiling(t *testing.T) {
	in := domain.SectionChangeRefundInput{
		StartDate:     june(5),
		Tier:          domain.TierOneMonth,
		PurchasePrice: yenAmount(16000),
		RefundDate:    dateutil.Date(2025, time.December, 5),
	}

	_, err := ComputeSectionChangeRefund(in)
	require.NoError(t, err, "the ceiling day itself is accepted")

	in.RefundDate = dateutil.Date(2025, time.December, 6)
	_, err = ComputeSectionChangeRefund(in)
	require.Error(t, err)

	var errs validation.Errors
	require.True(t, errors.As(err, &errs))
	assert.True(t, errs.Has(validation.DateRangeViolation))
}

func TestComputeCase(t *testing.T) {
	c := domain.RefundCase{
		Name:          "section change",
		Kind:          domain.KindSectionChange,
		StartDate:     june(5),
		RefundDate:    june(14),
		Tier:          domain.TierOneMonth,
		PurchasePrice: yenAmount(16000),
	}

	result, err := ComputeCase(c)
	require.NoError(t, err)
	assert.True(t, yenAmount(10440).Equal(result.RefundAmount))

	c.Kind = domain.KindRegular
	c.OneWayFare = yenAmount(320)
	c.OneMonthFare = yenAmount(16000)
	result, err = ComputeCase(c)
	require.NoError(t, err)
	assert.Equal(t, domain.MethodNoRefund, result.Breakdown.Method)

	c.Kind = "transfer"
	_, err = ComputeCase(c)
	assert.ErrorContains(t, err, "unknown refund kind")
}

func TestCompute_Logging(t *testing.T) {
	logger := &TestLogger{}

	_, err := ComputeRegularRefund(threeMonthPass(dateutil.Date(2025, time.July, 4)), WithLogger(logger))
	require.NoError(t, err)
	_, err = ComputeSectionChangeRefund(threeMonthPass(june(14)).SectionChange(), WithLogger(logger))
	require.NoError(t, err)

	require.NotEmpty(t, logger.Messages)
	assert.Contains(t, logger.Messages[0], "DEBUG: regular refund")
	assert.Contains(t, logger.Messages, "INFO: regular refund: ¥28,780 (monthly)")

	_, err = ComputeRegularRefund(oneMonthPass(june(9)), WithLogger(nil))
	assert.NoError(t, err, "a nil logger falls back to the no-op logger")
}

func TestCompute_ConcurrentCallsAgree(t *testing.T) {
	in := sixMonthPass(dateutil.Date(2025, time.October, 4))
	want, err := ComputeRegularRefund(in)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]*domain.RefundResult, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = ComputeRegularRefund(in)
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		require.NotNil(t, r)
		assert.Equal(t, want, r)
	}
}

func TestUsedDecades(t *testing.T) {
	tests := []struct {
		days int
		want int
	}{
		{0, 0}, {1, 1}, {9, 1}, {10, 1}, {11, 2}, {20, 2}, {21, 3}, {180, 18},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, UsedDecades(tt.days), "%d days", tt.days)
	}
}

func TestDailyFare(t *testing.T) {
	assert.True(t, yenAmount(534).Equal(DailyFare(yenAmount(16000), 30)))
	assert.True(t, yenAmount(500).Equal(DailyFare(yenAmount(45000), 90)))
	assert.True(t, yenAmount(445).Equal(DailyFare(yenAmount(80000), 180)))
	assert.True(t, DailyFare(yenAmount(100), 0).IsZero())
}
