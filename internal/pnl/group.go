package pnl

import (
	"sort"
)

// Record is the minimal view of an on-chain log this package needs: a
// partition key, an ordering key, a timestamp and a stable identity.
type Record interface {
	// Ordering returns the (blockNumber, logIndex) sort key.
	Ordering() (uint64, uint64)
	// At returns the unix timestamp of the record. Timestamps are monotonic
	// non-decreasing with block number within a partition.
	At() int64
	// Identity returns a stable unique identity (transaction hash + log index).
	Identity() string
	// Partition returns the (market, outcome) grouping key.
	Partition() (string, int)
}

// Grouped is a two-level market -> outcome -> sorted records mapping with
// deterministic iteration order.
type Grouped[T Record] struct {
	byMarket map[string]map[int][]T
}

// GroupByMarketOutcome partitions records by market then outcome, each group
// sorted ascending by (blockNumber, logIndex). The sort is stable so equal
// keys keep input order.
func GroupByMarketOutcome[T Record](records []T) *Grouped[T] {
	g := &Grouped[T]{byMarket: make(map[string]map[int][]T)}
	for _, r := range records {
		market, outcome := r.Partition()
		byOutcome, ok := g.byMarket[market]
		if !ok {
			byOutcome = make(map[int][]T)
			g.byMarket[market] = byOutcome
		}
		byOutcome[outcome] = append(byOutcome[outcome], r)
	}
	for _, byOutcome := range g.byMarket {
		for _, seq := range byOutcome {
			sort.SliceStable(seq, func(i, j int) bool {
				bi, li := seq[i].Ordering()
				bj, lj := seq[j].Ordering()
				if bi != bj {
					return bi < bj
				}
				return li < lj
			})
		}
	}
	return g
}

// Markets returns the market keys in ascending order.
func (g *Grouped[T]) Markets() []string {
	keys := make([]string, 0, len(g.byMarket))
	for k := range g.byMarket {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Outcomes returns the outcome keys for a market in ascending order.
func (g *Grouped[T]) Outcomes(market string) []int {
	byOutcome := g.byMarket[market]
	keys := make([]int, 0, len(byOutcome))
	for k := range byOutcome {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// Get returns the sorted record group for (market, outcome), nil if absent.
func (g *Grouped[T]) Get(market string, outcome int) []T {
	byOutcome, ok := g.byMarket[market]
	if !ok {
		return nil
	}
	return byOutcome[outcome]
}

// Len returns the number of markets.
func (g *Grouped[T]) Len() int {
	return len(g.byMarket)
}
