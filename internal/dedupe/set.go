// Package dedupe provides the in-memory set idiom the driver uses to apply
// the determinism contract: the produced pattern depends on the input set,
// not on duplicate entries or presentation order.
package dedupe

import "sort"

// StringSet deduplicates a stream of strings and replays them length-then-lex
// ordered.
type StringSet struct {
	storage map[string]struct{}
}

// NewStringSet creates an empty set.
func NewStringSet() *StringSet {
	return &StringSet{storage: map[string]struct{}{}}
}

// Upsert adds elem to the set; duplicates are no-ops.
func (s *StringSet) Upsert(elem string) {
	s.storage[elem] = struct{}{}
}

// Len returns the number of distinct elements seen so far.
func (s *StringSet) Len() int {
	return len(s.storage)
}

// Sorted returns the deduplicated elements ordered by length ascending,
// then lexicographically within equal length.
func (s *StringSet) Sorted() []string {
	out := make([]string, 0, len(s.storage))
	for k := range s.storage {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) < len(out[j])
		}
		return out[i] < out[j]
	})
	return out
}
