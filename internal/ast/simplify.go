package ast

import "sort"

// Simplify rewrites e to a fixed point using the algebraic identities of
// spec §4.4: concat/alt flattening, common prefix/suffix factoring,
// optional folding, character-class coalescing, and (when
// convertRepetitions is set) detection of repeated runs as bounded
// Repeat nodes. Each pass can expose further opportunities for the next
// (factoring a common suffix can, for instance, leave a new optional
// branch), so passes repeat until nothing changes.
func Simplify(e Expr, convertRepetitions bool) Expr {
	current := e
	for {
		next := simplifyOnce(current, convertRepetitions)
		if Equal(current, next) {
			return next
		}
		current = next
	}
}

func simplifyOnce(e Expr, convert bool) Expr {
	switch v := e.(type) {
	case Empty:
		return e
	case Literal:
		return e
	case CharClass:
		return e
	case Repeat:
		child := simplifyOnce(v.Child, convert)
		if v.Lower == 1 && v.Upper == 1 {
			return child
		}
		return Repeat{Child: child, Lower: v.Lower, Upper: v.Upper}
	case Concat:
		children := make([]Expr, len(v.Children))
		for i, c := range v.Children {
			children[i] = simplifyOnce(c, convert)
		}
		return simplifyConcat(children, convert)
	case Alt:
		children := make([]Expr, len(v.Children))
		for i, c := range v.Children {
			children[i] = simplifyOnce(c, convert)
		}
		return simplifyAlt(children, convert)
	default:
		return e
	}
}

// --- concat ---

func simplifyConcat(children []Expr, convert bool) Expr {
	flat := flattenConcatList(children)
	if convert {
		flat = mergeRepeatedRuns(flat)
	}
	switch len(flat) {
	case 0:
		return Empty{}
	case 1:
		return flat[0]
	default:
		return Concat{Children: flat}
	}
}

func flattenConcatList(children []Expr) []Expr {
	var out []Expr
	for _, c := range children {
		if _, ok := c.(Empty); ok {
			continue
		}
		if inner, ok := c.(Concat); ok {
			out = append(out, inner.Children...)
		} else {
			out = append(out, c)
		}
	}
	return out
}

// mergeRepeatedRuns replaces any maximal run of two or more structurally
// identical consecutive children with a single bounded Repeat.
func mergeRepeatedRuns(seq []Expr) []Expr {
	var out []Expr
	i := 0
	for i < len(seq) {
		j := i
		for j+1 < len(seq) && Equal(seq[j+1], seq[i]) {
			j++
		}
		runLen := j - i + 1
		if runLen >= 2 {
			out = append(out, Repeat{Child: seq[i], Lower: runLen, Upper: runLen})
		} else {
			out = append(out, seq[i])
		}
		i = j + 1
	}
	return out
}

// --- alt ---

func simplifyAlt(children []Expr, convert bool) Expr {
	flat := flattenAltList(children)

	hasEmpty := false
	var nonEmpty []Expr
	for _, c := range flat {
		if _, ok := c.(Empty); ok {
			hasEmpty = true
			continue
		}
		nonEmpty = append(nonEmpty, c)
	}

	nonEmpty = dedupeExprs(nonEmpty)
	if convert {
		nonEmpty = mergeLiteralRanges(nonEmpty)
	}
	nonEmpty = coalesceClasses(nonEmpty)
	nonEmpty = dedupeExprs(nonEmpty)

	var base Expr
	switch len(nonEmpty) {
	case 0:
		base = Empty{}
	case 1:
		base = nonEmpty[0]
	default:
		base = factor(nonEmpty)
	}

	if !hasEmpty {
		return base
	}
	if _, ok := base.(Empty); ok {
		return Empty{}
	}
	return Repeat{Child: base, Lower: 0, Upper: 1}
}

// mergeLiteralRanges detects an alternation between the same literal
// repeated a contiguous span of counts — alt(a{1}, a{2}, a{3}) — and folds
// it into a single bounded Repeat, the alternation-side counterpart to
// mergeRepeatedRuns' concatenation-side detection of runs.
func mergeLiteralRanges(branches []Expr) []Expr {
	type groupKey struct {
		text    string
		escaped bool
	}
	var order []groupKey
	groups := map[groupKey][]Literal{}
	var rest []Expr

	for _, b := range branches {
		lit, ok := b.(Literal)
		if !ok {
			rest = append(rest, b)
			continue
		}
		k := groupKey{lit.Text, lit.Escaped}
		if _, seen := groups[k]; !seen {
			order = append(order, k)
		}
		groups[k] = append(groups[k], lit)
	}

	for _, k := range order {
		lits := groups[k]
		if len(lits) < 2 {
			rest = append(rest, lits[0])
			continue
		}
		ns := make([]int, len(lits))
		for i, l := range lits {
			ns[i] = l.N
		}
		sort.Ints(ns)
		contiguous := ns[0] != ns[len(ns)-1]
		for i := 1; i < len(ns) && contiguous; i++ {
			if ns[i] != ns[i-1]+1 {
				contiguous = false
			}
		}
		if !contiguous {
			for _, l := range lits {
				rest = append(rest, l)
			}
			continue
		}
		base := lits[0]
		rest = append(rest, Repeat{
			Child: Literal{
				Text:           base.Text,
				Points:         base.Points,
				Escaped:        base.Escaped,
				SurrogateSplit: base.SurrogateSplit,
				N:              1,
			},
			Lower: ns[0],
			Upper: ns[len(ns)-1],
		})
	}
	return rest
}

func flattenAltList(children []Expr) []Expr {
	var out []Expr
	for _, c := range children {
		if inner, ok := c.(Alt); ok {
			out = append(out, inner.Children...)
		} else {
			out = append(out, c)
		}
	}
	return out
}

func dedupeExprs(list []Expr) []Expr {
	var out []Expr
	for _, c := range list {
		dup := false
		for _, seen := range out {
			if Equal(c, seen) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, c)
		}
	}
	return out
}

// coalesceClasses merges every single-codepoint, unescaped Literal branch
// (and the members of any existing CharClass branch) into one CharClass.
// A lone eligible literal is left alone: a one-member class buys nothing
// over the literal itself.
func coalesceClasses(branches []Expr) []Expr {
	var eligible []Literal
	var rest []Expr
	for _, b := range branches {
		switch v := b.(type) {
		case Literal:
			if !v.Escaped && v.N == 1 && len(v.Points) == 1 {
				eligible = append(eligible, v)
				continue
			}
		case CharClass:
			eligible = append(eligible, v.Members...)
			continue
		}
		rest = append(rest, b)
	}

	if len(eligible) == 0 {
		return rest
	}
	if len(eligible) == 1 {
		return append(rest, eligible[0])
	}

	seen := map[string]bool{}
	var members []Literal
	for _, lit := range eligible {
		if !seen[lit.Text] {
			seen[lit.Text] = true
			members = append(members, lit)
		}
	}
	if len(members) == 1 {
		return append(rest, members[0])
	}
	sort.Slice(members, func(i, j int) bool { return members[i].Text < members[j].Text })
	return append(rest, CharClass{Members: members})
}

// factor pulls the longest common leading and trailing sub-sequence out of
// a set of alternation branches, e.g. alt(axy, adexy) -> concat(a,
// alt(empty, de), x, y), whose empty branch the next Simplify pass folds
// into an optional. A single branch is returned as is; with no overlap at
// all, it falls back to a plain alternation.
func factor(branches []Expr) Expr {
	if len(branches) < 2 {
		if len(branches) == 1 {
			return branches[0]
		}
		return Empty{}
	}

	seqs := make([][]Expr, len(branches))
	for i, b := range branches {
		seqs[i] = toSeq(b)
	}

	minLen := len(seqs[0])
	for _, s := range seqs[1:] {
		if len(s) < minLen {
			minLen = len(s)
		}
	}

	prefixLen := commonRunLen(seqs, minLen, false)
	suffixLen := commonRunLen(seqs, minLen, true)
	if prefixLen+suffixLen > minLen {
		suffixLen = minLen - prefixLen
	}

	if prefixLen == 0 && suffixLen == 0 {
		return Alt{Children: branches}
	}

	prefix := seqs[0][:prefixLen]
	suffix := seqs[0][len(seqs[0])-suffixLen:]

	mids := make([]Expr, len(seqs))
	for i, s := range seqs {
		mids[i] = fromSeq(s[prefixLen : len(s)-suffixLen])
	}
	mids = dedupeExprs(mids)

	var inner Expr
	switch len(mids) {
	case 0:
		inner = Empty{}
	case 1:
		inner = mids[0]
	default:
		inner = Alt{Children: mids}
	}

	return concatOf(fromSeq(prefix), inner, fromSeq(suffix))
}

func commonRunLen(seqs [][]Expr, limit int, fromEnd bool) int {
	for n := 0; n < limit; n++ {
		ref := elemAt(seqs[0], n, fromEnd)
		for _, s := range seqs[1:] {
			if !Equal(elemAt(s, n, fromEnd), ref) {
				return n
			}
		}
	}
	return limit
}

func elemAt(seq []Expr, n int, fromEnd bool) Expr {
	if fromEnd {
		return seq[len(seq)-1-n]
	}
	return seq[n]
}

func toSeq(e Expr) []Expr {
	if c, ok := e.(Concat); ok {
		return c.Children
	}
	return []Expr{e}
}

func fromSeq(seq []Expr) Expr {
	return concatOf(seq...)
}
