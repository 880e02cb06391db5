package pnl

// Rollup sums per-outcome positions into a market- or portfolio-level
// summary. Only raw monetary components are folded; total, totalCost and
// every percentage are recomputed from the summed costs afterwards, never
// summed directly. An empty input yields the canonical zero record.
func Rollup(positions []Position) Position {
	var out Position
	for _, p := range positions {
		out.FrozenFunds = out.FrozenFunds.Add(p.FrozenFunds)
		out.Realized = out.Realized.Add(p.Realized)
		out.Unrealized = out.Unrealized.Add(p.Unrealized)
		out.Unrealized24Hr = out.Unrealized24Hr.Add(p.Unrealized24Hr)
		out.RealizedCost = out.RealizedCost.Add(p.RealizedCost)
		out.UnrealizedCost = out.UnrealizedCost.Add(p.UnrealizedCost)
		out.CurrentValue = out.CurrentValue.Add(p.CurrentValue)
	}

	out.Total = out.Realized.Add(out.Unrealized)
	out.TotalCost = out.RealizedCost.Add(out.UnrealizedCost).Abs()
	out.RealizedPercent = percent(out.Realized, out.RealizedCost)
	out.UnrealizedPercent = percent(out.Unrealized, out.UnrealizedCost)
	out.Unrealized24HrPercent = percent(out.Unrealized24Hr, out.UnrealizedCost)
	out.TotalPercent = percent(out.Total, out.TotalCost)

	// Decimal zero values print as "0" already; nothing else to normalize.
	return out
}
