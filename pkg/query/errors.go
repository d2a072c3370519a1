package query

import "errors"

var (
	// ErrEmptyCollection is returned by aggregates that have no element to report.
	ErrEmptyCollection = errors.New("query: empty collection")
	// ErrNoOddOccurrence is returned by OddOccurrence when no value occurs an odd number of times.
	ErrNoOddOccurrence = errors.New("query: no value occurs an odd number of times")
)
