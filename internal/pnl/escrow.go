package pnl

import (
	"github.com/shopspring/decimal"

	"marketpnl/internal/models"
)

// EstimateEscrow computes the tokens and shares escrowed by each resting
// order against the account's current display-scale share balances, writing
// the results onto the orders in place.
//
// A bid can be synthetically covered by shares held in every *other* outcome
// of the market (a basket merge), so its collateral only covers the
// uncovered remainder at (price - minPrice). An ask is covered by shares in
// its own outcome; the remainder escrows at (maxPrice - price).
//
// balances is shared, mutated state: each consumed offset decrements the
// tracked balances so collateral is never double-counted across orders.
// Orders are consumed in the given order; an earlier order takes the offset.
// It must not be shared across concurrent estimations for other accounts.
func EstimateEscrow(orders []*models.OpenOrder, market models.Market, sc ScaleContext, balances map[int]decimal.Decimal) {
	for _, order := range orders {
		switch order.OrderType {
		case models.OrderTypeBid:
			estimateBid(order, market, sc, balances)
		default:
			estimateAsk(order, sc, balances)
		}
	}
}

func estimateBid(order *models.OpenOrder, market models.Market, sc ScaleContext, balances map[int]decimal.Decimal) {
	offset := order.Amount
	for o := 0; o < market.NumOutcomes; o++ {
		if o == order.Outcome {
			continue
		}
		if b := balances[o]; b.LessThan(offset) {
			offset = b
		}
	}
	if offset.IsNegative() {
		offset = decimal.Zero
	}
	// One unit of merge offset consumes one unit from every other outcome.
	if offset.IsPositive() {
		for o := 0; o < market.NumOutcomes; o++ {
			if o == order.Outcome {
				continue
			}
			balances[o] = balances[o].Sub(offset)
		}
	}
	order.SharesEscrowed = offset
	order.TokensEscrowed = order.Amount.Sub(offset).Mul(order.Price.Sub(sc.MinPrice))
}

func estimateAsk(order *models.OpenOrder, sc ScaleContext, balances map[int]decimal.Decimal) {
	held := balances[order.Outcome]
	offset := order.Amount
	if held.LessThan(offset) {
		offset = held
	}
	if offset.IsNegative() {
		offset = decimal.Zero
	}
	remaining := held.Sub(offset)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	balances[order.Outcome] = remaining

	order.SharesEscrowed = offset
	order.TokensEscrowed = order.Amount.Sub(offset).Mul(sc.MaxPrice.Sub(order.Price))
}
