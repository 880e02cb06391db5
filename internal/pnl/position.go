package pnl

import (
	"github.com/shopspring/decimal"

	"marketpnl/internal/models"
)

// percentPlaces is the fixed display precision for percentage fields.
// Monetary fields keep full precision.
const percentPlaces = 4

// Position is a fully derived trading position for one (market, outcome,
// instant), display scale throughout. shopspring/decimal serializes each
// field as an exact decimal string.
type Position struct {
	MarketID  string `json:"marketId,omitempty"`
	Outcome   int    `json:"outcome"`
	Account   string `json:"account,omitempty"`
	Timestamp int64  `json:"timestamp"`

	NetPosition  decimal.Decimal `json:"netPosition"`
	RawPosition  decimal.Decimal `json:"rawPosition"`
	AveragePrice decimal.Decimal `json:"averagePrice"`

	Realized       decimal.Decimal `json:"realized"`
	Unrealized     decimal.Decimal `json:"unrealized"`
	Unrealized24Hr decimal.Decimal `json:"unrealized24Hr"`
	Total          decimal.Decimal `json:"total"`

	RealizedCost   decimal.Decimal `json:"realizedCost"`
	UnrealizedCost decimal.Decimal `json:"unrealizedCost"`
	TotalCost      decimal.Decimal `json:"totalCost"`

	RealizedPercent       decimal.Decimal `json:"realizedPercent"`
	UnrealizedPercent     decimal.Decimal `json:"unrealizedPercent"`
	Unrealized24HrPercent decimal.Decimal `json:"unrealized24HrPercent"`
	TotalPercent          decimal.Decimal `json:"totalPercent"`

	CurrentValue decimal.Decimal `json:"currentValue"`
	FrozenFunds  decimal.Decimal `json:"frozenFunds"`
}

// CalculatePosition derives a trading position from a raw position-change
// record and a resolved valuation. price24 values the position as of 24 hours
// prior; pass nil to reuse the current valuation.
//
// A short's cost is mirrored around the tick range: its maximum gain is
// bounded by the distance to zero, not to numTicks. Longs profit as price
// rises, shorts as it falls.
func CalculatePosition(record models.PositionChange, sc ScaleContext, val Valuation, price24 *decimal.Decimal, instant int64, rawBalance decimal.Decimal) Position {
	short := record.NetPosition.IsNegative()

	avgCost := record.AvgPrice
	if short {
		avgCost = sc.NumTicks.Sub(record.AvgPrice)
	}

	absNet := sc.DisplayAmount(record.NetPosition.Abs())
	avgPrice := sc.DisplayPrice(record.AvgPrice)
	last := val.Price
	last24 := last
	if price24 != nil {
		last24 = *price24
	}

	unrealizedCost := absNet.Mul(sc.DisplayPriceDelta(avgCost))
	unrealized := absNet.Mul(profitPerShare(short, avgPrice, last))
	unrealized24 := absNet.Mul(profitPerShare(short, avgPrice, last24))

	currentValue := absNet.Mul(last)
	if short {
		currentValue = absNet.Mul(sc.MaxPrice.Sub(last))
	}

	realized := sc.DisplayCash(record.RealizedProfit)
	realizedCost := sc.DisplayCash(record.RealizedCost)

	if val.Finalized {
		// Resolution collapse: nothing is at risk once the market settles.
		realized = realized.Add(unrealized)
		realizedCost = realizedCost.Add(unrealizedCost)
		unrealized = decimal.Zero
		unrealized24 = decimal.Zero
		unrealizedCost = decimal.Zero
		if record.NetPosition.IsZero() {
			avgPrice = decimal.Zero
		}
	}

	total := realized.Add(unrealized)
	totalCost := realizedCost.Add(unrealizedCost).Abs()

	return Position{
		MarketID:  record.MarketID,
		Outcome:   record.Outcome,
		Account:   record.Account,
		Timestamp: instant,

		NetPosition:  sc.DisplayAmount(record.NetPosition),
		RawPosition:  sc.DisplayAmount(rawBalance),
		AveragePrice: avgPrice,

		Realized:       realized,
		Unrealized:     unrealized,
		Unrealized24Hr: unrealized24,
		Total:          total,

		RealizedCost:   realizedCost,
		UnrealizedCost: unrealizedCost,
		TotalCost:      totalCost,

		RealizedPercent:       percent(realized, realizedCost),
		UnrealizedPercent:     percent(unrealized, unrealizedCost),
		Unrealized24HrPercent: percent(unrealized24, unrealizedCost),
		TotalPercent:          percent(total, totalCost),

		CurrentValue: currentValue,
		FrozenFunds:  sc.DisplayCash(record.FrozenFunds),
	}
}

func profitPerShare(short bool, avgPrice, lastPrice decimal.Decimal) decimal.Decimal {
	if short {
		return avgPrice.Sub(lastPrice)
	}
	return lastPrice.Sub(avgPrice)
}

// percent is x/cost, defined as 0 for a zero cost. A zero-cost position is a
// valid state, not an error.
func percent(x, cost decimal.Decimal) decimal.Decimal {
	if cost.IsZero() {
		return decimal.Zero
	}
	return x.Div(cost).Round(percentPlaces)
}
