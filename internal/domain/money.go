package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatYen renders a whole-yen amount with thousands separators, e.g. ¥12,580.
func FormatYen(d decimal.Decimal) string {
	s := d.Round(0).Abs().StringFixed(0)

	var b strings.Builder
	if d.Round(0).IsNegative() {
		b.WriteByte('-')
	}
	b.WriteString("¥")
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}
