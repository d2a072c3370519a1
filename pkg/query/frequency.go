package query

// OddOccurrence returns the value that occurs an odd number of times.
//
// Values are grouped in first-seen order. If several values qualify the first
// of them is returned; if none does, ErrNoOddOccurrence.
func OddOccurrence(values []int) (int, error) {
	for _, g := range GroupBy(From(values), func(v int) int { return v }) {
		if g.Count()%2 != 0 {
			return g.Key, nil
		}
	}
	return 0, ErrNoOddOccurrence
}
