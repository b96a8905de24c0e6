// Package render turns a simplified expression tree into the final
// anchored pattern string: a post-order traversal emitting literals,
// character classes, and precedence-aware grouping around concatenation,
// alternation, and repetition (spec §4.5). Escaping and repetition
// folding are already baked into the tree by the time it reaches here —
// by the grapheme preprocessor (Literal.Escaped and Literal.SurrogateSplit)
// and by Simplify's repetition merging — so rendering itself takes no
// options.
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rexgen/rexgen/internal/ast"
)

var metachars = map[rune]bool{
	'\\': true, '.': true, '(': true, ')': true, '[': true, ']': true,
	'{': true, '}': true, '?': true, '*': true, '+': true, '|': true,
	'^': true, '$': true, '-': true,
}

// Render produces the final `^...$` pattern for expr.
func Render(expr ast.Expr) string {
	var sb strings.Builder
	sb.WriteByte('^')
	sb.WriteString(renderExpr(expr))
	sb.WriteByte('$')
	return sb.String()
}

func renderExpr(e ast.Expr) string {
	switch v := e.(type) {
	case ast.Empty:
		return ""
	case ast.Literal:
		return renderLiteral(v)
	case ast.CharClass:
		return renderCharClass(v)
	case ast.Concat:
		var sb strings.Builder
		for _, c := range v.Children {
			sb.WriteString(renderConcatChild(c))
		}
		return sb.String()
	case ast.Alt:
		return renderAltBody(v)
	case ast.Repeat:
		return renderRepeat(v)
	default:
		return ""
	}
}

// renderConcatChild renders one child of a Concat. Only an Alt child needs
// its own parens here: Repeat, Literal, and CharClass are already single
// atoms that concatenate without ambiguity.
func renderConcatChild(e ast.Expr) string {
	if a, ok := e.(ast.Alt); ok {
		return "(" + renderAltBody(a) + ")"
	}
	return renderExpr(e)
}

// renderAltBody renders an Alternation's branches, joined by `|` and
// ordered by the longest original input each branch covers, descending,
// tie-broken ascending-lexicographically on the branch's own original
// (pre-escape) text (spec §4.5, matching the driver's determinism
// contract). Wrapping the result in parens, when nested inside a Concat
// or Repeat, is the caller's responsibility.
func renderAltBody(v ast.Alt) string {
	type branch struct {
		rendered string
		maxLen   int
		minText  string
	}
	branches := make([]branch, len(v.Children))
	for i, c := range v.Children {
		branches[i] = branch{
			rendered: renderExpr(c),
			maxLen:   maxOriginalLen(c),
			minText:  minOriginalText(c),
		}
	}
	sort.Slice(branches, func(i, j int) bool {
		if branches[i].maxLen != branches[j].maxLen {
			return branches[i].maxLen > branches[j].maxLen
		}
		return branches[i].minText < branches[j].minText
	})
	rendered := make([]string, len(branches))
	for i, b := range branches {
		rendered[i] = b.rendered
	}
	return strings.Join(rendered, "|")
}

// unboundedLen stands in for an unbounded Repeat's contribution to
// maxOriginalLen; only reachable from a hand-built DFA with a genuine
// cycle, since a minimized DFA over a finite cluster-sequence set is
// always acyclic.
const unboundedLen = 1 << 30

// maxOriginalLen returns the greatest number of original grapheme
// clusters any string matched by e can contain, used as the primary
// alternation-branch sort key.
func maxOriginalLen(e ast.Expr) int {
	switch v := e.(type) {
	case ast.Empty:
		return 0
	case ast.Literal:
		return v.N
	case ast.CharClass:
		return 1
	case ast.Concat:
		total := 0
		for _, c := range v.Children {
			l := maxOriginalLen(c)
			if l >= unboundedLen {
				return unboundedLen
			}
			total += l
		}
		return total
	case ast.Alt:
		max := 0
		for _, c := range v.Children {
			if l := maxOriginalLen(c); l > max {
				max = l
			}
		}
		return max
	case ast.Repeat:
		if v.Upper == ast.Unbounded {
			return unboundedLen
		}
		return maxOriginalLen(v.Child) * v.Upper
	default:
		return 0
	}
}

// minOriginalText returns the lexicographically smallest original
// (pre-escape) string e can match, reconstructed from each Literal's
// original code points rather than its rendered text, used as the
// alternation-branch tie-break.
func minOriginalText(e ast.Expr) string {
	switch v := e.(type) {
	case ast.Empty:
		return ""
	case ast.Literal:
		return strings.Repeat(originalText(v), v.N)
	case ast.CharClass:
		min := ""
		for i, m := range v.Members {
			t := originalText(m)
			if i == 0 || t < min {
				min = t
			}
		}
		return min
	case ast.Concat:
		var sb strings.Builder
		for _, c := range v.Children {
			sb.WriteString(minOriginalText(c))
		}
		return sb.String()
	case ast.Alt:
		min := ""
		for i, c := range v.Children {
			t := minOriginalText(c)
			if i == 0 || t < min {
				min = t
			}
		}
		return min
	case ast.Repeat:
		lower := v.Lower
		return strings.Repeat(minOriginalText(v.Child), lower)
	default:
		return ""
	}
}

// originalText returns one occurrence of v's underlying cluster text as it
// appeared in the input, before any escaping.
func originalText(v ast.Literal) string {
	if len(v.Points) == 0 {
		return v.Text
	}
	return string(v.Points)
}

func renderRepeat(v ast.Repeat) string {
	child := renderExpr(v.Child)
	if needsGroupAsQuantifierTarget(v.Child) {
		child = "(" + child + ")"
	}
	return child + quantifierSuffix(v.Lower, v.Upper)
}

func quantifierSuffix(lower, upper int) string {
	switch {
	case lower == 0 && upper == 1:
		return "?"
	case lower == 0 && upper == ast.Unbounded:
		return "*"
	case lower == 1 && upper == ast.Unbounded:
		return "+"
	case lower == upper:
		return fmt.Sprintf("{%d}", lower)
	case upper == ast.Unbounded:
		return fmt.Sprintf("{%d,}", lower)
	default:
		return fmt.Sprintf("{%d,%d}", lower, upper)
	}
}

// needsGroupAsQuantifierTarget reports whether e's rendering is not
// already a single bindable atom, and so needs parens before a trailing
// quantifier or `{n}` can be attached unambiguously.
func needsGroupAsQuantifierTarget(e ast.Expr) bool {
	switch v := e.(type) {
	case ast.CharClass:
		return false
	case ast.Literal:
		return v.N > 1 || v.SurrogateSplit || len(v.Points) > 1
	default:
		return true
	}
}

func renderLiteral(v ast.Literal) string {
	text := literalText(v)
	if v.N <= 1 {
		return text
	}
	if v.SurrogateSplit || len(v.Points) > 1 {
		text = "(" + text + ")"
	}
	return text + fmt.Sprintf("{%d}", v.N)
}

func literalText(v ast.Literal) string {
	if v.Escaped {
		return v.Text
	}
	return escapeLiteralText(v.Text)
}

func escapeLiteralText(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		default:
			if metachars[r] {
				sb.WriteByte('\\')
			}
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func renderCharClass(v ast.CharClass) string {
	points := make([]rune, len(v.Members))
	for i, m := range v.Members {
		points[i] = m.Points[0]
	}
	ranges := ast.CompactRanges(points)

	var sb strings.Builder
	sb.WriteByte('[')
	for i, r := range ranges {
		if r.Lo == r.Hi {
			sb.WriteString(escapeClassChar(r.Lo, i == 0))
			continue
		}
		sb.WriteString(escapeClassChar(r.Lo, i == 0))
		sb.WriteByte('-')
		sb.WriteString(escapeClassChar(r.Hi, false))
	}
	sb.WriteByte(']')
	return sb.String()
}

func escapeClassChar(r rune, atStart bool) string {
	switch r {
	case ']', '\\', '-':
		return "\\" + string(r)
	case '^':
		if atStart {
			return "\\^"
		}
		return "^"
	case '\n':
		return `\n`
	case '\t':
		return `\t`
	case '\r':
		return `\r`
	default:
		return string(r)
	}
}
