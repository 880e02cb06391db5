package pnl

import "errors"

// Query errors. All are fail-fast and non-retriable; callers surface them
// immediately with no partial result.
var (
	ErrMissingRequiredParameter = errors.New("missing required parameter")
	ErrInvalidTimeRange         = errors.New("invalid time range")
	ErrUnknownUniverse          = errors.New("unknown universe")
	ErrInconsistentBucketResult = errors.New("inconsistent bucket result")
)
