package pnl

import (
	"github.com/shopspring/decimal"

	"marketpnl/internal/models"
)

// IsFullLoss reports whether an account's resolved position in a finalized
// market is worth exactly zero: sum of outcome balance times winning payout
// numerator over all outcomes. Full-loss markets are excluded from
// funds-at-risk totals since a worthless position ties up no capital.
func IsFullLoss(market models.Market, balances map[int]decimal.Decimal) bool {
	if !market.Finalized || len(market.WinningPayoutNumerators) == 0 {
		return false
	}
	sum := decimal.Zero
	for outcome, balance := range balances {
		n, ok := market.WinningNumerator(outcome)
		if !ok {
			continue
		}
		sum = sum.Add(balance.Mul(n))
	}
	return sum.IsZero()
}
