package main

import (
	"strings"

	"github.com/rgehrsitz/passrefund/internal/clock"
	"github.com/rgehrsitz/passrefund/internal/dateutil"
	"github.com/rgehrsitz/passrefund/internal/domain"
	"github.com/rgehrsitz/passrefund/internal/validation"
	"github.com/spf13/cobra"
)

// passFlags holds the raw pass description given on the command line
type passFlags struct {
	start      string
	refund     string
	tier       string
	price      string
	oneWay     string
	oneMonth   string
	threeMonth string
	fares      bool
}

func (pf *passFlags) register(cmd *cobra.Command, fares bool) {
	pf.fares = fares
	cmd.Flags().StringVar(&pf.start, "start", "", "Pass start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&pf.refund, "refund", "", "Refund request date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&pf.tier, "tier", "", "Pass tier: 1, 3 or 6 months")
	cmd.Flags().StringVar(&pf.price, "price", "", "Purchase price in yen")
	if fares {
		cmd.Flags().StringVar(&pf.oneWay, "one-way", "", "One-way base fare in yen")
		cmd.Flags().StringVar(&pf.oneMonth, "one-month", "", "One-month pass fare in yen")
		cmd.Flags().StringVar(&pf.threeMonth, "three-month", "", "Three-month pass fare in yen (required for 6-month passes)")
	}
}

// parse converts the flags into a refund input. All unreadable flags are
// reported together as validation.Errors.
func (pf *passFlags) parse() (domain.RegularRefundInput, error) {
	var p validation.FormParser

	refund := pf.refund
	if strings.TrimSpace(refund) == "" {
		refund = dateutil.Format(clock.Today(cliClock))
	}

	in := domain.RegularRefundInput{
		StartDate:     p.Date(validation.FieldStartDate, "start date", pf.start),
		RefundDate:    p.Date(validation.FieldRefundDate, "refund date", refund),
		Tier:          p.Tier(pf.tier),
		PurchasePrice: p.Amount(validation.FieldPurchasePrice, "purchase price", pf.price),
	}
	if pf.fares {
		in.OneWayFare = p.Amount(validation.FieldOneWayFare, "one-way fare", pf.oneWay)
		in.OneMonthFare = p.Amount(validation.FieldOneMonthFare, "one-month fare", pf.oneMonth)
		in.ThreeMonthFare = p.OptionalAmount(validation.FieldThreeMonthFare, "three-month fare", pf.threeMonth)
	}
	return in, p.Err()
}
