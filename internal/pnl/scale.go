package pnl

import (
	"github.com/shopspring/decimal"
)

// attoScale is the fixed on-chain unit: amounts and cash values arrive as
// integers scaled by 10^18.
var attoScale = decimal.New(1, 18)

// ScaleContext carries the per-market numeric scale derived once from the
// market descriptor and threaded into every conversion. On-chain prices are
// tick counts in [0, numTicks]; on-chain amounts and cash are atto-scaled.
type ScaleContext struct {
	MinPrice decimal.Decimal
	MaxPrice decimal.Decimal
	NumTicks decimal.Decimal
	TickSize decimal.Decimal
}

// NewScaleContext derives the tick size (maxPrice-minPrice)/numTicks.
func NewScaleContext(minPrice, maxPrice, numTicks decimal.Decimal) ScaleContext {
	tick := decimal.Zero
	if !numTicks.IsZero() {
		tick = maxPrice.Sub(minPrice).Div(numTicks)
	}
	return ScaleContext{
		MinPrice: minPrice,
		MaxPrice: maxPrice,
		NumTicks: numTicks,
		TickSize: tick,
	}
}

// DisplayAmount converts an on-chain share amount to display shares.
func (s ScaleContext) DisplayAmount(onChain decimal.Decimal) decimal.Decimal {
	return onChain.Mul(s.TickSize).Div(attoScale)
}

// DisplayPrice converts an on-chain tick price to an absolute display price.
func (s ScaleContext) DisplayPrice(onChain decimal.Decimal) decimal.Decimal {
	return onChain.Mul(s.TickSize).Add(s.MinPrice)
}

// DisplayPriceDelta converts an on-chain tick distance to a display price
// distance. Unlike DisplayPrice it carries no minPrice offset.
func (s ScaleContext) DisplayPriceDelta(onChain decimal.Decimal) decimal.Decimal {
	return onChain.Mul(s.TickSize)
}

// DisplayCash converts an atto-scaled cash value (realized profit, cost,
// frozen funds) to display currency. Tick size does not apply to cash.
func (s ScaleContext) DisplayCash(onChain decimal.Decimal) decimal.Decimal {
	return onChain.Div(attoScale)
}
