package pnl

import (
	"testing"

	"github.com/shopspring/decimal"

	"marketpnl/internal/models"
)

func longRecord(sc ScaleContext) models.PositionChange {
	return models.PositionChange{
		MarketID:        "m1",
		Outcome:         1,
		Account:         "0xabc",
		Timestamp:       1000,
		BlockNumber:     10,
		LogIndex:        0,
		TransactionHash: "0xtx1",
		NetPosition:     onChainShares(sc, 10),
		AvgPrice:        decimal.NewFromInt(40), // display 0.40
		RealizedProfit:  onChainCash("1.5"),
		RealizedCost:    onChainCash("3"),
		FrozenFunds:     onChainCash("4"),
	}
}

func TestCalculatePosition_Long(t *testing.T) {
	sc := binaryScale()
	rec := longRecord(sc)
	val := Valuation{Price: decimal.RequireFromString("0.6")}

	pos := CalculatePosition(rec, sc, val, nil, 2000, rec.NetPosition)

	if !pos.NetPosition.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("netPosition=%s want=10", pos.NetPosition)
	}
	if !pos.AveragePrice.Equal(decimal.RequireFromString("0.4")) {
		t.Fatalf("averagePrice=%s want=0.4", pos.AveragePrice)
	}
	// Long: 10 * (0.6 - 0.4) = 2.
	if !pos.Unrealized.Equal(decimal.NewFromInt(2)) {
		t.Fatalf("unrealized=%s want=2", pos.Unrealized)
	}
	// Long cost: 10 * 0.4 = 4.
	if !pos.UnrealizedCost.Equal(decimal.NewFromInt(4)) {
		t.Fatalf("unrealizedCost=%s want=4", pos.UnrealizedCost)
	}
	// Long value: 10 * 0.6 = 6.
	if !pos.CurrentValue.Equal(decimal.NewFromInt(6)) {
		t.Fatalf("currentValue=%s want=6", pos.CurrentValue)
	}
	if !pos.Total.Equal(pos.Realized.Add(pos.Unrealized)) {
		t.Fatalf("total=%s != realized+unrealized", pos.Total)
	}
	if !pos.TotalCost.Equal(pos.RealizedCost.Add(pos.UnrealizedCost).Abs()) {
		t.Fatalf("totalCost=%s != |realizedCost+unrealizedCost|", pos.TotalCost)
	}
	// 2 / 4 = 0.5.
	if !pos.UnrealizedPercent.Equal(decimal.RequireFromString("0.5")) {
		t.Fatalf("unrealizedPercent=%s want=0.5", pos.UnrealizedPercent)
	}
	if !pos.FrozenFunds.Equal(decimal.NewFromInt(4)) {
		t.Fatalf("frozenFunds=%s want=4", pos.FrozenFunds)
	}
}

func TestCalculatePosition_ShortMirrorsLong(t *testing.T) {
	sc := binaryScale()
	long := longRecord(sc)
	short := longRecord(sc)
	short.NetPosition = long.NetPosition.Neg()
	val := Valuation{Price: decimal.RequireFromString("0.6")}

	lp := CalculatePosition(long, sc, val, nil, 2000, long.NetPosition)
	sp := CalculatePosition(short, sc, val, nil, 2000, short.NetPosition)

	// Same avgPrice and lastPrice: short unrealized is the long's negated.
	if !sp.Unrealized.Equal(lp.Unrealized.Neg()) {
		t.Fatalf("short unrealized=%s want=%s", sp.Unrealized, lp.Unrealized.Neg())
	}
	// Short cost mirrors around the tick range: 10 * (1 - 0.4) = 6.
	if !sp.UnrealizedCost.Equal(decimal.NewFromInt(6)) {
		t.Fatalf("short unrealizedCost=%s want=6", sp.UnrealizedCost)
	}
	// Short value: 10 * (1 - 0.6) = 4.
	if !sp.CurrentValue.Equal(decimal.NewFromInt(4)) {
		t.Fatalf("short currentValue=%s want=4", sp.CurrentValue)
	}
}

func TestCalculatePosition_FinalizationCollapse(t *testing.T) {
	sc := binaryScale()
	rec := longRecord(sc)
	val := Valuation{Price: decimal.NewFromInt(1), Finalized: true}

	pos := CalculatePosition(rec, sc, val, nil, 3000, rec.NetPosition)

	if !pos.Unrealized.IsZero() || !pos.Unrealized24Hr.IsZero() || !pos.UnrealizedCost.IsZero() {
		t.Fatalf("finalized position kept unrealized state: %s %s %s",
			pos.Unrealized, pos.Unrealized24Hr, pos.UnrealizedCost)
	}
	// Unrealized 10*(1-0.4)=6 folds into realized 1.5.
	if !pos.Realized.Equal(decimal.RequireFromString("7.5")) {
		t.Fatalf("realized=%s want=7.5", pos.Realized)
	}
	// Cost 4 folds into realizedCost 3.
	if !pos.RealizedCost.Equal(decimal.NewFromInt(7)) {
		t.Fatalf("realizedCost=%s want=7", pos.RealizedCost)
	}
	// Net position nonzero: average price survives.
	if !pos.AveragePrice.Equal(decimal.RequireFromString("0.4")) {
		t.Fatalf("averagePrice=%s want=0.4", pos.AveragePrice)
	}
}

func TestCalculatePosition_FinalizedZeroNetClearsAvgPrice(t *testing.T) {
	sc := binaryScale()
	rec := longRecord(sc)
	rec.NetPosition = decimal.Zero
	val := Valuation{Price: decimal.NewFromInt(1), Finalized: true}

	pos := CalculatePosition(rec, sc, val, nil, 3000, decimal.Zero)
	if !pos.AveragePrice.IsZero() {
		t.Fatalf("averagePrice=%s want=0", pos.AveragePrice)
	}
}

func TestCalculatePosition_ZeroCostPercentIsZero(t *testing.T) {
	sc := binaryScale()
	rec := longRecord(sc)
	rec.NetPosition = decimal.Zero
	rec.RealizedCost = decimal.Zero
	val := Valuation{Price: decimal.RequireFromString("0.6")}

	pos := CalculatePosition(rec, sc, val, nil, 2000, decimal.Zero)
	if !pos.RealizedPercent.IsZero() || !pos.UnrealizedPercent.IsZero() || !pos.TotalPercent.IsZero() {
		t.Fatalf("zero-cost percentages must be 0, got %s %s %s",
			pos.RealizedPercent, pos.UnrealizedPercent, pos.TotalPercent)
	}
}

func TestCalculatePosition_SeparatePrice24(t *testing.T) {
	sc := binaryScale()
	rec := longRecord(sc)
	val := Valuation{Price: decimal.RequireFromString("0.6")}
	price24 := decimal.RequireFromString("0.5")

	pos := CalculatePosition(rec, sc, val, &price24, 2000, rec.NetPosition)
	// 10 * (0.5 - 0.4) = 1.
	if !pos.Unrealized24Hr.Equal(decimal.NewFromInt(1)) {
		t.Fatalf("unrealized24Hr=%s want=1", pos.Unrealized24Hr)
	}

	pos = CalculatePosition(rec, sc, val, nil, 2000, rec.NetPosition)
	if !pos.Unrealized24Hr.Equal(pos.Unrealized) {
		t.Fatalf("nil price24 must reuse the current valuation")
	}
}
