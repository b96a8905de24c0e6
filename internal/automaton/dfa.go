package automaton

import "github.com/rexgen/rexgen/internal/grapheme"

// DFA is the 5-tuple (Q, Σ, δ, q0, F) from the data model: states are dense
// integer ids [0, numStates), labels is the representative Cluster for every
// distinct alphabet symbol seen, trans[state] is the partial transition
// function out of state, and final holds the accepting states.
type DFA struct {
	numStates int
	start     int
	final     map[int]bool
	trans     []map[grapheme.Key]int
	labels    map[grapheme.Key]grapheme.Cluster
}

// NumStates returns |Q|.
func (d *DFA) NumStates() int { return d.numStates }

// Start returns q0.
func (d *DFA) Start() int { return d.start }

// IsFinal reports whether state is in F.
func (d *DFA) IsFinal(state int) bool { return d.final[state] }

// Transitions returns the outgoing edges of state as cluster key -> target
// state. The returned map must not be mutated.
func (d *DFA) Transitions(state int) map[grapheme.Key]int { return d.trans[state] }

// Label returns the representative Cluster for a transition key.
func (d *DFA) Label(k grapheme.Key) grapheme.Cluster { return d.labels[k] }

// NewDFA assembles a DFA from its raw components. Exported for tests in
// other packages that need to exercise automaton shapes (self-loops,
// unreachable states) a finite cluster-sequence set can never itself
// produce.
func NewDFA(numStates, start int, final map[int]bool, trans []map[grapheme.Key]int, labels map[grapheme.Key]grapheme.Cluster) *DFA {
	return &DFA{numStates: numStates, start: start, final: final, trans: trans, labels: labels}
}

// BuildFromSequences constructs the DFA that accepts exactly the given set
// of cluster sequences, per spec: trie construction followed by
// minimization. An empty set of sequences is treated as the single empty
// sequence, so that the empty test-case set and {""} both produce the DFA
// accepting only the empty string (single final state, no transitions).
func BuildFromSequences(sequences [][]grapheme.Cluster) *DFA {
	trie := NewTrie()
	if len(sequences) == 0 {
		trie.Insert(nil)
	}
	for _, seq := range sequences {
		trie.Insert(seq)
	}
	return Minimize(trie.ToDFA())
}
