package pnl

import (
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestRollup_SumsComponentsAndRederivesRatios(t *testing.T) {
	positions := []Position{
		{
			Realized: d("2"), Unrealized: d("1"), Unrealized24Hr: d("0.5"),
			RealizedCost: d("4"), UnrealizedCost: d("2"),
			FrozenFunds: d("3"), CurrentValue: d("5"),
			// Deliberately inconsistent percents; the fold must ignore them.
			RealizedPercent: d("99"), TotalPercent: d("99"),
		},
		{
			Realized: d("-1"), Unrealized: d("2"), Unrealized24Hr: d("1.5"),
			RealizedCost: d("6"), UnrealizedCost: d("3"),
			FrozenFunds: d("1"), CurrentValue: d("4"),
			RealizedPercent: d("99"), TotalPercent: d("99"),
		},
	}

	sum := Rollup(positions)

	if !sum.Realized.Equal(d("1")) || !sum.Unrealized.Equal(d("3")) {
		t.Fatalf("realized=%s unrealized=%s", sum.Realized, sum.Unrealized)
	}
	if !sum.Total.Equal(sum.Realized.Add(sum.Unrealized)) {
		t.Fatalf("total=%s != realized+unrealized", sum.Total)
	}
	if !sum.TotalCost.Equal(sum.RealizedCost.Add(sum.UnrealizedCost).Abs()) {
		t.Fatalf("totalCost=%s != |realizedCost+unrealizedCost|", sum.TotalCost)
	}
	if !sum.FrozenFunds.Equal(d("4")) || !sum.CurrentValue.Equal(d("9")) {
		t.Fatalf("frozen=%s value=%s", sum.FrozenFunds, sum.CurrentValue)
	}
	// Percentages recomputed from summed costs, not summed: 1/10 and 3/5.
	if !sum.RealizedPercent.Equal(d("0.1")) {
		t.Fatalf("realizedPercent=%s want=0.1", sum.RealizedPercent)
	}
	if !sum.UnrealizedPercent.Equal(d("0.6")) {
		t.Fatalf("unrealizedPercent=%s want=0.6", sum.UnrealizedPercent)
	}
	if !sum.TotalPercent.Equal(d("0.2667")) {
		t.Fatalf("totalPercent=%s want=0.2667", sum.TotalPercent)
	}
}

func TestRollup_EmptyYieldsCanonicalZero(t *testing.T) {
	sum := Rollup(nil)
	zeros := []decimal.Decimal{
		sum.Realized, sum.Unrealized, sum.Unrealized24Hr, sum.Total,
		sum.RealizedCost, sum.UnrealizedCost, sum.TotalCost,
		sum.RealizedPercent, sum.UnrealizedPercent, sum.TotalPercent,
		sum.FrozenFunds, sum.CurrentValue,
	}
	for i, v := range zeros {
		if v.String() != "0" {
			t.Fatalf("field %d = %q want \"0\"", i, v.String())
		}
	}
}
