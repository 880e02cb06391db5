package pnl

import (
	"testing"

	"github.com/shopspring/decimal"

	"marketpnl/internal/models"
)

func escrowMarket(numOutcomes int) (models.Market, ScaleContext) {
	m := models.Market{
		ID:          "m1",
		NumOutcomes: numOutcomes,
		MinPrice:    decimal.Zero,
		MaxPrice:    decimal.NewFromInt(1),
		NumTicks:    decimal.NewFromInt(100),
	}
	return m, NewScaleContext(m.MinPrice, m.MaxPrice, m.NumTicks)
}

func TestEstimateEscrow_BidWithMergeOffset(t *testing.T) {
	market, sc := escrowMarket(3)
	order := &models.OpenOrder{
		MarketID:  "m1",
		Outcome:   1,
		OrderType: models.OrderTypeBid,
		Amount:    d("10"),
		Price:     d("0.6"),
	}
	balances := map[int]decimal.Decimal{0: d("4"), 2: d("7")}

	EstimateEscrow([]*models.OpenOrder{order}, market, sc, balances)

	// 4 units covered by the merge offset; tokens escrow the remaining 6 at
	// (0.6 - 0).
	if !order.SharesEscrowed.Equal(d("4")) {
		t.Fatalf("sharesEscrowed=%s want=4", order.SharesEscrowed)
	}
	if !order.TokensEscrowed.Equal(d("3.6")) {
		t.Fatalf("tokensEscrowed=%s want=3.6", order.TokensEscrowed)
	}
	// Every other outcome is decremented by the consumed offset.
	if !balances[0].Equal(d("0")) || !balances[2].Equal(d("3")) {
		t.Fatalf("balances=%v want 0 and 3", balances)
	}
}

func TestEstimateEscrow_BidNoComplementaryShares(t *testing.T) {
	market, sc := escrowMarket(2)
	order := &models.OpenOrder{
		Outcome:   1,
		OrderType: models.OrderTypeBid,
		Amount:    d("10"),
		Price:     d("0.25"),
	}
	balances := map[int]decimal.Decimal{}

	EstimateEscrow([]*models.OpenOrder{order}, market, sc, balances)

	if !order.SharesEscrowed.IsZero() {
		t.Fatalf("sharesEscrowed=%s want=0", order.SharesEscrowed)
	}
	if !order.TokensEscrowed.Equal(d("2.5")) {
		t.Fatalf("tokensEscrowed=%s want=2.5", order.TokensEscrowed)
	}
}

func TestEstimateEscrow_AskCoveredByHeldShares(t *testing.T) {
	market, sc := escrowMarket(2)
	order := &models.OpenOrder{
		Outcome:   0,
		OrderType: models.OrderTypeAsk,
		Amount:    d("5"),
		Price:     d("0.6"),
	}
	balances := map[int]decimal.Decimal{0: d("3")}

	EstimateEscrow([]*models.OpenOrder{order}, market, sc, balances)

	if !order.SharesEscrowed.Equal(d("3")) {
		t.Fatalf("sharesEscrowed=%s want=3", order.SharesEscrowed)
	}
	// Uncovered 2 units at (1 - 0.6).
	if !order.TokensEscrowed.Equal(d("0.8")) {
		t.Fatalf("tokensEscrowed=%s want=0.8", order.TokensEscrowed)
	}
	if !balances[0].IsZero() {
		t.Fatalf("balance=%s want=0 (floored)", balances[0])
	}
}

func TestEstimateEscrow_SharedBalancesAcrossOrders(t *testing.T) {
	market, sc := escrowMarket(2)
	first := &models.OpenOrder{
		Outcome:   1,
		OrderType: models.OrderTypeBid,
		Amount:    d("4"),
		Price:     d("0.5"),
	}
	second := &models.OpenOrder{
		Outcome:   1,
		OrderType: models.OrderTypeBid,
		Amount:    d("4"),
		Price:     d("0.5"),
	}
	balances := map[int]decimal.Decimal{0: d("4")}

	EstimateEscrow([]*models.OpenOrder{first, second}, market, sc, balances)

	// The first-seen order consumes the whole offset; the second escrows in
	// full. Order dependence is intentional.
	if !first.TokensEscrowed.IsZero() || !first.SharesEscrowed.Equal(d("4")) {
		t.Fatalf("first: tokens=%s shares=%s", first.TokensEscrowed, first.SharesEscrowed)
	}
	if !second.TokensEscrowed.Equal(d("2")) || !second.SharesEscrowed.IsZero() {
		t.Fatalf("second: tokens=%s shares=%s", second.TokensEscrowed, second.SharesEscrowed)
	}
}
