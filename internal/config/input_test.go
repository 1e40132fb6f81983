package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rgehrsitz/passrefund/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCases = `
cases:
  - name: three-month pass, one month used
    start_date: 2025-06-05
    refund_date: 2025-07-04
    tier: 3
    purchase_price: 45000
    one_way_fare: 500
    one_month_fare: 16000
    expected:
      refund_amount: 28780
  - name: six-month pass
    kind: regular
    start_date: 2025-06-05
    refund_date: 2025-10-04
    tier: 6-month
    purchase_price: 80000
    one_way_fare: 500
    one_month_fare: 16000
    three_month_fare: 45000
    expected:
      refund_amount: 18780
      used_amount: 61000
  - name: route changed
    kind: section_change
    start_date: 2025-06-05
    refund_date: 2025-06-14
    tier: 1m
    purchase_price: 16000
`

func writeCaseFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cases.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFromFile(t *testing.T) {
	parser := NewInputParser()

	file, err := parser.LoadFromFile(writeCaseFile(t, sampleCases))
	require.NoError(t, err)
	require.Len(t, file.Cases, 3)

	first := file.Cases[0]
	assert.Equal(t, "three-month pass, one month used", first.Name)
	assert.Equal(t, domain.KindRegular, first.Kind, "kind defaults to regular")
	assert.Equal(t, time.Date(2025, time.June, 5, 0, 0, 0, 0, time.UTC), first.StartDate)
	assert.Equal(t, domain.TierThreeMonth, first.Tier)
	assert.True(t, decimal.NewFromInt(45000).Equal(first.PurchasePrice))
	assert.Nil(t, first.ThreeMonthFare)
	require.NotNil(t, first.Expected)
	assert.True(t, decimal.NewFromInt(28780).Equal(first.Expected.RefundAmount))
	assert.Nil(t, first.Expected.UsedAmount)

	second := file.Cases[1]
	assert.Equal(t, domain.TierSixMonth, second.Tier)
	require.NotNil(t, second.ThreeMonthFare)
	assert.True(t, decimal.NewFromInt(45000).Equal(*second.ThreeMonthFare))
	require.NotNil(t, second.Expected.UsedAmount)

	third := file.Cases[2]
	assert.Equal(t, domain.KindSectionChange, third.Kind)
	assert.Equal(t, domain.TierOneMonth, third.Tier)
	assert.Nil(t, third.Expected)
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	_, err := NewInputParser().LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "malformed yaml",
			content: "cases: [",
			wantErr: "failed to parse YAML",
		},
		{
			name:    "no cases",
			content: "cases: []",
			wantErr: "no cases provided",
		},
		{
			name:    "unknown tier",
			content: "cases:\n  - name: a\n    tier: 12\n",
			wantErr: "failed to parse YAML",
		},
		{
			name:    "missing name",
			content: "cases:\n  - tier: 1\n",
			wantErr: "name is required",
		},
		{
			name:    "unknown kind",
			content: "cases:\n  - name: a\n    kind: transfer\n",
			wantErr: "kind must be",
		},
		{
			name:    "duplicate names",
			content: "cases:\n  - name: a\n  - name: a\n",
			wantErr: "duplicates the name",
		},
		{
			name:    "negative expectation",
			content: "cases:\n  - name: a\n    expected:\n      refund_amount: -1\n",
			wantErr: "cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewInputParser().Parse([]byte(tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
