package pnl

import (
	"github.com/shopspring/decimal"

	"marketpnl/internal/models"
)

// Valuation is the resolved price used to value a position at one instant.
// Finalized marks the step-function case: the market settled at or before the
// instant, so the price is frozen at the resolution payout.
type Valuation struct {
	Price     decimal.Decimal
	Finalized bool
}

// ResolvePrice determines the current price for a (market, outcome) at
// instant, in display scale. Resolution order:
//
//  1. finalized at/before instant: the winning payout numerator;
//  2. a tentative winning vector while awaiting finalization;
//  3. the latest fill at/before instant;
//  4. the position record's own average price (opened, never traded since).
//
// A pair with none of these cannot be valued yet and is reported absent
// (ok=false), not as a zero-priced position.
func ResolvePrice(market models.Market, sc ScaleContext, outcome int, instant int64, fills []models.Fill, position *models.PositionChange) (Valuation, bool) {
	if market.FinalizedAt(instant) {
		if n, ok := market.WinningNumerator(outcome); ok {
			return Valuation{Price: sc.DisplayPrice(n), Finalized: true}, true
		}
	}
	if market.ReportingState == models.ReportingStateAwaitingFinalization {
		if n, ok := market.TentativeNumerator(outcome); ok {
			return Valuation{Price: sc.DisplayPrice(n)}, true
		}
	}
	if fill, ok := LatestBefore(fills, instant); ok {
		return Valuation{Price: sc.DisplayPrice(fill.Price)}, true
	}
	if position != nil {
		return Valuation{Price: sc.DisplayPrice(position.AvgPrice)}, true
	}
	return Valuation{}, false
}
