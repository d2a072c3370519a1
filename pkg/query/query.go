// Package query implements in-memory query operators over materialized
// collections: filtering, projection, ordering, aggregation, joins and set
// union. Operators never mutate their input.
package query

import (
	"iter"
	"slices"
)

// From lifts a slice into a sequence.
func From[T any](items []T) iter.Seq[T] {
	return slices.Values(items)
}

// ToSlice materializes a sequence. It never returns nil.
func ToSlice[T any](seq iter.Seq[T]) []T {
	out := make([]T, 0)
	for item := range seq {
		out = append(out, item)
	}
	return out
}

// Filter keeps items where pred returns true, in source order.
func Filter[T any](seq iter.Seq[T], pred func(T) bool) iter.Seq[T] {
	return func(yield func(T) bool) {
		for item := range seq {
			if pred(item) && !yield(item) {
				return
			}
		}
	}
}

// Map projects every item through fn.
func Map[T, R any](seq iter.Seq[T], fn func(T) R) iter.Seq[R] {
	return func(yield func(R) bool) {
		for item := range seq {
			if !yield(fn(item)) {
				return
			}
		}
	}
}

// Any reports whether at least one item satisfies pred.
func Any[T any](seq iter.Seq[T], pred func(T) bool) bool {
	for item := range seq {
		if pred(item) {
			return true
		}
	}
	return false
}

// Count returns the number of items satisfying pred. A nil pred counts everything.
func Count[T any](seq iter.Seq[T], pred func(T) bool) int {
	n := 0
	for item := range seq {
		if pred == nil || pred(item) {
			n++
		}
	}
	return n
}

// First returns the first item of the sequence.
func First[T any](seq iter.Seq[T]) (T, error) {
	for item := range seq {
		return item, nil
	}
	var zero T
	return zero, ErrEmptyCollection
}
