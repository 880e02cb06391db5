package pnl

import (
	"testing"

	"github.com/shopspring/decimal"
)

// binaryScale is a 0..1 market with 100 ticks: tick size 0.01.
func binaryScale() ScaleContext {
	return NewScaleContext(decimal.Zero, decimal.NewFromInt(1), decimal.NewFromInt(100))
}

// onChainShares converts display shares to on-chain atto-tick units for the
// given scale.
func onChainShares(sc ScaleContext, display int64) decimal.Decimal {
	return decimal.NewFromInt(display).Div(sc.TickSize).Mul(attoScale)
}

// onChainCash converts display currency to atto units.
func onChainCash(display string) decimal.Decimal {
	return decimal.RequireFromString(display).Mul(attoScale)
}

func TestScaleContext_TickSize(t *testing.T) {
	sc := binaryScale()
	if !sc.TickSize.Equal(decimal.RequireFromString("0.01")) {
		t.Fatalf("tick=%s want=0.01", sc.TickSize)
	}
}

func TestDisplayAmount(t *testing.T) {
	sc := binaryScale()
	got := sc.DisplayAmount(onChainShares(sc, 10))
	if !got.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("got=%s want=10", got)
	}
}

func TestDisplayPrice(t *testing.T) {
	sc := NewScaleContext(decimal.NewFromInt(-10), decimal.NewFromInt(10), decimal.NewFromInt(200))
	// Tick size 0.1; on-chain price 50 ticks above minPrice -10 is -5.
	got := sc.DisplayPrice(decimal.NewFromInt(50))
	if !got.Equal(decimal.NewFromInt(-5)) {
		t.Fatalf("got=%s want=-5", got)
	}
	if d := sc.DisplayPriceDelta(decimal.NewFromInt(50)); !d.Equal(decimal.NewFromInt(5)) {
		t.Fatalf("delta=%s want=5", d)
	}
}

func TestDisplayCash(t *testing.T) {
	sc := binaryScale()
	got := sc.DisplayCash(onChainCash("12.5"))
	if !got.Equal(decimal.RequireFromString("12.5")) {
		t.Fatalf("got=%s want=12.5", got)
	}
}

func TestDisplayAmount_ExactUnderRepeatedAddition(t *testing.T) {
	sc := binaryScale()
	unit := onChainShares(sc, 1)
	sum := decimal.Zero
	for i := 0; i < 1000; i++ {
		sum = sum.Add(sc.DisplayAmount(unit))
	}
	if !sum.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("sum=%s want=1000 exactly", sum)
	}
}
