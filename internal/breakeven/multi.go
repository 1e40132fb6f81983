package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/passrefund/internal/domain"
	"github.com/shopspring/decimal"
)

// Threshold is the last date a rule still returns an amount
type Threshold struct {
	Kind          domain.RefundKind `json:"kind"`
	MinimumRefund decimal.Decimal   `json:"minimum_refund"`
	Result        *Result           `json:"result"`
}

// SolveThresholds finds the last date for each amount under both rules.
func (s *Solver) SolveThresholds(ctx context.Context, base domain.RegularRefundInput, amounts []decimal.Decimal) ([]Threshold, error) {
	thresholds := make([]Threshold, 0, 2*len(amounts))
	for _, kind := range []domain.RefundKind{domain.KindRegular, domain.KindSectionChange} {
		for _, amount := range amounts {
			minimum := amount
			res, err := s.Solve(ctx, Request{
				Base:        base,
				Target:      TargetLastDate,
				Constraints: Constraints{Kind: kind, MinimumRefund: &minimum},
			})
			if err != nil {
				return nil, fmt.Errorf("failed to solve %s threshold %s: %w", kind, domain.FormatYen(amount), err)
			}
			thresholds = append(thresholds, Threshold{Kind: kind, MinimumRefund: amount, Result: res})
		}
	}
	return thresholds, nil
}
