package pnl

// LatestOverall returns the record with the greatest (blockNumber, logIndex)
// key, false if the sequence is empty.
func LatestOverall[T Record](seq []T) (T, bool) {
	var latest T
	if len(seq) == 0 {
		return latest, false
	}
	latest = seq[0]
	lb, ll := latest.Ordering()
	for _, r := range seq[1:] {
		b, l := r.Ordering()
		if b > lb || (b == lb && l > ll) {
			latest, lb, ll = r, b, l
		}
	}
	return latest, true
}

// LatestBefore returns the last record of the longest prefix whose timestamps
// are at or before ts. The sequence must be sorted by (blockNumber, logIndex)
// with monotonic non-decreasing timestamps.
func LatestBefore[T Record](seq []T, ts int64) (T, bool) {
	var latest T
	found := false
	for _, r := range seq {
		if r.At() > ts {
			break
		}
		latest = r
		found = true
	}
	return latest, found
}

// PriorToLatest returns the record immediately prior to latest: the greatest
// (blockNumber, logIndex) strictly ordered before latest's own key, skipping
// the latest record itself by identity. Returns false when the position was
// opened for the first time by latest. Used for closed-position display.
func PriorToLatest[T Record](seq []T, latest T) (T, bool) {
	var prior T
	found := false
	lb, ll := latest.Ordering()
	var pb, pl uint64
	for _, r := range seq {
		if r.Identity() == latest.Identity() {
			continue
		}
		b, l := r.Ordering()
		if b > lb || (b == lb && l >= ll) {
			continue
		}
		if !found || b > pb || (b == pb && l > pl) {
			prior, pb, pl = r, b, l
			found = true
		}
	}
	return prior, found
}
