package automaton

import (
	"sort"
	"strconv"
	"strings"

	"github.com/rexgen/rexgen/internal/grapheme"
)

// Minimize collapses language-equivalent states by Moore-style iterative
// partition refinement: start from {F, Q\F}, repeatedly split any block
// whose members disagree, for some symbol, on which block their successor
// falls in, and stop at the fixed point (spec §4.3).
//
// State ids in the result are assigned in order of first appearance while
// scanning original states 0..n-1, so the output is deterministic for a
// given input DFA regardless of map iteration order.
func Minimize(d *DFA) *DFA {
	n := d.numStates
	block := make([]int, n)
	for s := 0; s < n; s++ {
		if d.final[s] {
			block[s] = 1
		}
	}

	for {
		next, _ := refine(d, block)
		if samePartition(block, next) {
			block = next
			break
		}
		block = next
	}

	return quotient(d, block)
}

func countDistinct(block []int) int {
	seen := map[int]bool{}
	for _, b := range block {
		seen[b] = true
	}
	return len(seen)
}

// samePartition reports whether a and b induce the same equivalence
// classes over their shared index set, independent of how each labels its
// blocks — the correct fixed-point test for partition refinement, since
// refine renumbers blocks by first appearance each pass.
func samePartition(a, b []int) bool {
	aToB := map[int]int{}
	bToA := map[int]int{}
	for i := range a {
		ai, bi := a[i], b[i]
		if v, ok := aToB[ai]; ok {
			if v != bi {
				return false
			}
		} else {
			aToB[ai] = bi
		}
		if v, ok := bToA[bi]; ok {
			if v != ai {
				return false
			}
		} else {
			bToA[bi] = ai
		}
	}
	return true
}

// refine computes one partition-refinement pass: every state's signature is
// its current block plus, for each outgoing symbol sorted for determinism,
// the current block of its successor. States with identical signatures
// land in the same new block, numbered by first appearance.
func refine(d *DFA, block []int) ([]int, int) {
	n := len(block)
	next := make([]int, n)
	sigToBlock := map[string]int{}
	nextID := 0

	for s := 0; s < n; s++ {
		sig := signature(d, block, s)
		id, ok := sigToBlock[sig]
		if !ok {
			id = nextID
			nextID++
			sigToBlock[sig] = id
		}
		next[s] = id
	}
	return next, nextID
}

func signature(d *DFA, block []int, state int) string {
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(block[state]))

	keys := make([]grapheme.Key, 0, len(d.trans[state]))
	for k := range d.trans[state] {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Text != keys[j].Text {
			return keys[i].Text < keys[j].Text
		}
		return keys[i].Count < keys[j].Count
	})

	for _, k := range keys {
		target := d.trans[state][k]
		sb.WriteByte('\x00')
		sb.WriteString(k.Text)
		sb.WriteByte('\x01')
		sb.WriteString(strconv.Itoa(k.Count))
		sb.WriteByte('\x01')
		sb.WriteString(strconv.Itoa(block[target]))
	}
	return sb.String()
}

// quotient builds the minimized DFA: one state per block.
func quotient(d *DFA, block []int) *DFA {
	numBlocks := countDistinct(block)
	md := &DFA{
		numStates: numBlocks,
		start:     block[d.start],
		final:     map[int]bool{},
		trans:     make([]map[grapheme.Key]int, numBlocks),
		labels:    d.labels,
	}
	for b := 0; b < numBlocks; b++ {
		md.trans[b] = map[grapheme.Key]int{}
	}
	for s := 0; s < d.numStates; s++ {
		b := block[s]
		if d.final[s] {
			md.final[b] = true
		}
		for k, target := range d.trans[s] {
			md.trans[b][k] = block[target]
		}
	}
	return md
}
