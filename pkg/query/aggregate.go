package query

import (
	"iter"

	"golang.org/x/exp/constraints"
)

// Group is a set of items sharing the same key.
type Group[K comparable, T any] struct {
	Key   K
	Items []T
}

// Count returns the number of items in the group.
func (g Group[K, T]) Count() int {
	return len(g.Items)
}

// MaxBy returns the largest key value in the sequence.
func MaxBy[T any, K constraints.Integer](seq iter.Seq[T], key func(T) K) (K, error) {
	var (
		best  K
		found bool
	)
	for item := range seq {
		v := key(item)
		if !found || v > best {
			best = v
			found = true
		}
	}
	if !found {
		return best, ErrEmptyCollection
	}
	return best, nil
}

// GroupBy partitions the sequence by key. Groups are returned in the order
// their key was first seen and items keep their source order within a group.
func GroupBy[T any, K comparable](seq iter.Seq[T], key func(T) K) []Group[K, T] {
	groups := make([]Group[K, T], 0)
	index := make(map[K]int)
	for item := range seq {
		k := key(item)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group[K, T]{Key: k})
		}
		groups[i].Items = append(groups[i].Items, item)
	}
	return groups
}
