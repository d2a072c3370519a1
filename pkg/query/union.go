package query

import "iter"

// Union concatenates a and b, dropping items equal to one already yielded.
// Equality is == over every field, so both sides must share one record type.
func Union[T comparable](a, b iter.Seq[T]) iter.Seq[T] {
	return UnionBy(a, b, func(item T) T { return item })
}

// UnionBy is Union with an explicit identity key.
func UnionBy[T any, K comparable](a, b iter.Seq[T], key func(T) K) iter.Seq[T] {
	return func(yield func(T) bool) {
		seen := make(map[K]struct{})
		for _, seq := range []iter.Seq[T]{a, b} {
			for item := range seq {
				k := key(item)
				if _, dup := seen[k]; dup {
					continue
				}
				seen[k] = struct{}{}
				if !yield(item) {
					return
				}
			}
		}
	}
}
