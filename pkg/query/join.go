package query

import "iter"

// lookup indexes the right side of a join by key, keeping source order per key.
func lookup[R any, K comparable](right iter.Seq[R], key func(R) K) map[K][]R {
	index := make(map[K][]R)
	for item := range right {
		k := key(item)
		index[k] = append(index[k], item)
	}
	return index
}

// Join is an inner equi-join. For every left item it yields one row per right
// item with an equal key; left items without a match yield nothing. Rows come
// in left order, then right order.
func Join[L, R any, K comparable, O any](
	left iter.Seq[L],
	right iter.Seq[R],
	leftKey func(L) K,
	rightKey func(R) K,
	combine func(L, R) O,
) iter.Seq[O] {
	return func(yield func(O) bool) {
		index := lookup(right, rightKey)
		for l := range left {
			for _, r := range index[leftKey(l)] {
				if !yield(combine(l, r)) {
					return
				}
			}
		}
	}
}

// GroupJoin yields exactly one row per left item, combining it with every
// right item of equal key. The matches slice is empty, never nil, when
// nothing matches.
func GroupJoin[L, R any, K comparable, O any](
	left iter.Seq[L],
	right iter.Seq[R],
	leftKey func(L) K,
	rightKey func(R) K,
	combine func(L, []R) O,
) iter.Seq[O] {
	return func(yield func(O) bool) {
		index := lookup(right, rightKey)
		for l := range left {
			matches := index[leftKey(l)]
			if matches == nil {
				matches = []R{}
			}
			if !yield(combine(l, matches)) {
				return
			}
		}
	}
}
