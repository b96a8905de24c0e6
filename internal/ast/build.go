package ast

import (
	"sort"

	"github.com/rexgen/rexgen/internal/automaton"
	"github.com/rexgen/rexgen/internal/grapheme"
)

// edgeKey names a directed edge between two graph states in the
// generalized automaton used for state elimination. loop entries (from ==
// to) are tracked separately in edges too; the elimination step reads them
// off by looking up edgeKey{r, r}.
type edgeKey struct {
	from, to int
}

// graph is the generalized nondeterministic automaton state elimination
// operates over: two fresh states (start, accept) bracketing the DFA's own
// states, with every edge labeled by an Expr instead of a single symbol.
type graph struct {
	edges map[edgeKey]Expr
}

func newGraph() *graph {
	return &graph{edges: map[edgeKey]Expr{}}
}

// addEdge ORs expr into whatever already labels from->to.
func (g *graph) addEdge(from, to int, expr Expr) {
	k := edgeKey{from, to}
	if existing, ok := g.edges[k]; ok {
		g.edges[k] = altOf(existing, expr)
	} else {
		g.edges[k] = expr
	}
}

// FromDFA synthesizes a regular-expression tree whose language is exactly
// the DFA's, by Brzozowski-style state elimination: states are removed one
// at a time, folding each into the edges between its neighbors, until only
// a fresh start and accept state remain (spec §4.4).
func FromDFA(d *automaton.DFA) Expr {
	n := d.NumStates()
	start := n
	accept := n + 1

	g := newGraph()
	g.addEdge(start, d.Start(), Empty{})
	for s := 0; s < n; s++ {
		if d.IsFinal(s) {
			g.addEdge(s, accept, Empty{})
		}
		keys := sortedKeys(d.Transitions(s))
		for _, k := range keys {
			target := d.Transitions(s)[k]
			cluster := d.Label(k)
			g.addEdge(s, target, literalFromCluster(cluster))
		}
	}

	order := eliminationOrder(d)
	for _, r := range order {
		eliminate(g, r)
	}

	if expr, ok := g.edges[edgeKey{start, accept}]; ok {
		return expr
	}
	return Empty{}
}

func literalFromCluster(c grapheme.Cluster) Expr {
	return Literal{
		Text:           c.Text,
		Points:         c.Points,
		Escaped:        c.Escaped,
		SurrogateSplit: c.SurrogateSplit,
		N:              c.Count,
	}
}

func sortedKeys(m map[grapheme.Key]int) []grapheme.Key {
	keys := make([]grapheme.Key, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Text != keys[j].Text {
			return keys[i].Text < keys[j].Text
		}
		return keys[i].Count < keys[j].Count
	})
	return keys
}

// eliminationOrder picks the order internal DFA states are folded away in:
// ascending fan-in times fan-out, so that cheap states (few neighbors) go
// first and the intermediate expressions stay small, tie-broken by state
// id for determinism.
func eliminationOrder(d *automaton.DFA) []int {
	n := d.NumStates()
	fanOut := make([]int, n)
	fanIn := make([]int, n)
	for s := 0; s < n; s++ {
		seen := map[int]bool{}
		for _, target := range d.Transitions(s) {
			if !seen[target] {
				seen[target] = true
				fanOut[s]++
				fanIn[target]++
			}
		}
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		wi := fanIn[order[i]] * fanOut[order[i]]
		wj := fanIn[order[j]] * fanOut[order[j]]
		if wi != wj {
			return wi < wj
		}
		return order[i] < order[j]
	})
	return order
}

// eliminate folds state r out of g: for every predecessor p and successor
// q of r (p, q != r), it rewrites the direct p->q edge to also cover
// paths that detour through r, then deletes every edge touching r.
func eliminate(g *graph, r int) {
	var loop Expr
	if l, ok := g.edges[edgeKey{r, r}]; ok {
		loop = l
	}

	var preds, succs []int
	for k := range g.edges {
		if k.to == r && k.from != r {
			preds = append(preds, k.from)
		}
		if k.from == r && k.to != r {
			succs = append(succs, k.to)
		}
	}
	sort.Ints(preds)
	sort.Ints(succs)

	for _, p := range preds {
		in := g.edges[edgeKey{p, r}]
		for _, q := range succs {
			out := g.edges[edgeKey{r, q}]
			g.addEdge(p, q, concatOf(in, starOf(loop), out))
		}
	}

	for k := range g.edges {
		if k.from == r || k.to == r {
			delete(g.edges, k)
		}
	}
}

// starOf wraps loop in an unbounded Repeat, or returns nil (the concat
// identity, meaning "omit this factor") if there was no self-loop.
func starOf(loop Expr) Expr {
	if loop == nil {
		return nil
	}
	return Repeat{Child: loop, Lower: 0, Upper: Unbounded}
}

// concatOf builds a flattened Concat of its non-nil, non-Empty arguments,
// collapsing to the identity or single child where possible. nil arguments
// are the concat identity (used by starOf for "no loop").
func concatOf(parts ...Expr) Expr {
	var children []Expr
	for _, p := range parts {
		if p == nil {
			continue
		}
		if _, ok := p.(Empty); ok {
			continue
		}
		if c, ok := p.(Concat); ok {
			children = append(children, c.Children...)
		} else {
			children = append(children, p)
		}
	}
	switch len(children) {
	case 0:
		return Empty{}
	case 1:
		return children[0]
	default:
		return Concat{Children: children}
	}
}

// altOf builds a flattened, deduplicated Alt of its non-nil arguments.
func altOf(parts ...Expr) Expr {
	var children []Expr
	for _, p := range parts {
		if p == nil {
			continue
		}
		if a, ok := p.(Alt); ok {
			children = append(children, a.Children...)
		} else {
			children = append(children, p)
		}
	}

	deduped := children[:0:0]
	for _, c := range children {
		dup := false
		for _, d := range deduped {
			if Equal(c, d) {
				dup = true
				break
			}
		}
		if !dup {
			deduped = append(deduped, c)
		}
	}

	switch len(deduped) {
	case 0:
		return Empty{}
	case 1:
		return deduped[0]
	default:
		return Alt{Children: deduped}
	}
}
