package grapheme

import (
	"fmt"
	"strings"
	"unicode/utf16"
)

// FoldRepetitions collapses maximal runs of adjacent identical clusters
// into a single cluster with an updated Count. It is local to one input
// and must run before EscapeNonASCII so that repetition counts survive
// escaping (the reference behaviour folds runs of an escaped cluster too,
// e.g. "\u{2665}{3}").
func FoldRepetitions(clusters []Cluster) []Cluster {
	if len(clusters) == 0 {
		return clusters
	}
	out := make([]Cluster, 0, len(clusters))
	for _, c := range clusters {
		if n := len(out); n > 0 && out[n-1].Text == c.Text {
			out[n-1].Count += c.Count
		} else {
			out = append(out, c)
		}
	}
	return out
}

// EscapeNonASCII rewrites every cluster whose code points are all non-ASCII
// into a synthetic cluster whose Text holds the final `\u{...}` escape
// sequence, splitting astral code points into UTF-16 surrogate halves when
// useSurrogatePairs is set. ASCII clusters pass through unchanged.
func EscapeNonASCII(clusters []Cluster, useSurrogatePairs bool) []Cluster {
	out := make([]Cluster, len(clusters))
	for i, c := range clusters {
		if !isAllNonASCII(c.Points) {
			out[i] = c
			continue
		}
		out[i] = Cluster{
			Text:           escapeSequence(c.Points, useSurrogatePairs),
			Points:         c.Points,
			Count:          c.Count,
			Escaped:        true,
			SurrogateSplit: tokenCount(c.Points, useSurrogatePairs) > 1,
		}
	}
	return out
}

// tokenCount returns the number of `\u{...}` tokens escapeSequence would
// emit for points: two per astral code point when useSurrogatePairs splits
// it into a UTF-16 surrogate pair, one otherwise.
func tokenCount(points []rune, useSurrogatePairs bool) int {
	n := 0
	for _, r := range points {
		if useSurrogatePairs && r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}

func isAllNonASCII(points []rune) bool {
	if len(points) == 0 {
		return false
	}
	for _, r := range points {
		if r <= 0x7F {
			return false
		}
	}
	return true
}

func escapeSequence(points []rune, useSurrogatePairs bool) string {
	var sb strings.Builder
	for _, r := range points {
		if useSurrogatePairs && r >= 0x10000 {
			hi, lo := utf16.EncodeRune(r)
			fmt.Fprintf(&sb, `\u{%x}\u{%x}`, hi, lo)
			continue
		}
		fmt.Fprintf(&sb, `\u{%x}`, r)
	}
	return sb.String()
}
