package query

import (
	"cmp"
	"iter"
	"slices"
)

// Comparer orders two items; negative when a sorts before b.
type Comparer[T any] func(a, b T) int

// Asc orders by key ascending.
func Asc[T any, K cmp.Ordered](key func(T) K) Comparer[T] {
	return func(a, b T) int {
		return cmp.Compare(key(a), key(b))
	}
}

// Desc orders by key descending.
func Desc[T any, K cmp.Ordered](key func(T) K) Comparer[T] {
	return func(a, b T) int {
		return cmp.Compare(key(b), key(a))
	}
}

// AscFunc orders by key ascending using compare, e.g. time.Time.Compare.
func AscFunc[T, K any](key func(T) K, compare func(K, K) int) Comparer[T] {
	return func(a, b T) int {
		return compare(key(a), key(b))
	}
}

// DescFunc orders by key descending using compare.
func DescFunc[T, K any](key func(T) K, compare func(K, K) int) Comparer[T] {
	return func(a, b T) int {
		return compare(key(b), key(a))
	}
}

// Sort returns a new slice ordered by keys, the first key being the primary one
// and each following key breaking ties of the previous ones. Items that compare
// equal on every key keep their source order.
func Sort[T any](seq iter.Seq[T], keys ...Comparer[T]) []T {
	out := ToSlice(seq)
	slices.SortStableFunc(out, func(a, b T) int {
		for _, key := range keys {
			if c := key(a, b); c != 0 {
				return c
			}
		}
		return 0
	})
	return out
}
