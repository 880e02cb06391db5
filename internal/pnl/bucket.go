package pnl

import "fmt"

// defaultBucketCount is the number of sample instants derived when no
// explicit interval is supplied.
const defaultBucketCount = 30

// Bucketize partitions [start, end] into evenly spaced sample instants.
// A nil interval derives one as ceil((end-start)/defaultBucketCount).
// Instants run start, start+interval, ... strictly below end, and end itself
// is always appended, so the result has at least one element and ends at end.
func Bucketize(start, end int64, interval *int64) ([]int64, error) {
	if start < 0 || end < 0 {
		return nil, fmt.Errorf("%w: negative bounds [%d, %d]", ErrInvalidTimeRange, start, end)
	}
	if end < start {
		return nil, fmt.Errorf("%w: end %d before start %d", ErrInvalidTimeRange, end, start)
	}
	var step int64
	if interval != nil {
		if *interval <= 0 {
			return nil, fmt.Errorf("%w: non-positive interval %d", ErrInvalidTimeRange, *interval)
		}
		step = *interval
	} else {
		span := end - start
		step = span / defaultBucketCount
		if span%defaultBucketCount != 0 {
			step++
		}
	}

	var instants []int64
	if step > 0 {
		for t := start; t < end; t += step {
			instants = append(instants, t)
		}
	}
	return append(instants, end), nil
}
