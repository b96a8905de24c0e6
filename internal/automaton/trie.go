// Package automaton builds and minimizes the DFA that accepts exactly a
// finite set of grapheme-cluster sequences. Trie and DFA states are held in
// an arena of stable integer ids and transitions are plain maps, the shape
// the teacher uses in inducer/trie.go (domain prefix trie) and
// internal/dank/dank.go (NFAState/DFAState arenas with sorted, deterministic
// transition iteration) — generalized here from a byte/rune alphabet to a
// grapheme-cluster alphabet and from subset construction to direct trie
// acceptance, per the DFA construction spec.
package automaton

import "github.com/rexgen/rexgen/internal/grapheme"

// trieNode is one node of the prefix tree built over cluster sequences.
type trieNode struct {
	id       int
	children map[grapheme.Key]int // cluster key -> child node id
	final    bool
}

// Trie is an arena of trieNodes rooted at id 0. Inserting the input
// sequences into it already yields a deterministic finite automaton
// (spec: "This trie is already a deterministic automaton").
type Trie struct {
	nodes  []*trieNode
	labels map[grapheme.Key]grapheme.Cluster // representative cluster per key, for AST literal rendering
}

// NewTrie creates an empty trie with just the root node.
func NewTrie() *Trie {
	return &Trie{
		nodes:  []*trieNode{{id: 0, children: map[grapheme.Key]int{}}},
		labels: map[grapheme.Key]grapheme.Cluster{},
	}
}

// Insert adds one cluster sequence to the trie, creating nodes as needed
// along the path spelled by seq and marking the final node accepting.
func (t *Trie) Insert(seq []grapheme.Cluster) {
	node := 0
	for _, c := range seq {
		k := grapheme.KeyOf(c)
		t.labels[k] = c
		child, ok := t.nodes[node].children[k]
		if !ok {
			child = len(t.nodes)
			t.nodes = append(t.nodes, &trieNode{id: child, children: map[grapheme.Key]int{}})
			t.nodes[node].children[k] = child
		}
		node = child
	}
	t.nodes[node].final = true
}

// ToDFA materializes the trie as a DFA: states are trie node ids, q0 is the
// root, and F is the set of final trie nodes.
func (t *Trie) ToDFA() *DFA {
	d := &DFA{
		numStates: len(t.nodes),
		start:     0,
		final:     map[int]bool{},
		trans:     make([]map[grapheme.Key]int, len(t.nodes)),
		labels:    t.labels,
	}
	for _, node := range t.nodes {
		d.trans[node.id] = node.children
		if node.final {
			d.final[node.id] = true
		}
	}
	return d
}
