package grapheme

import (
	"unicode/utf8"

	errorutil "github.com/projectdiscovery/utils/errors"
	"github.com/rivo/uniseg"
)

// Segment parses s into extended grapheme clusters per UAX #29, using
// github.com/rivo/uniseg the way the teacher's indirect dependency graph
// already pulls it in and the way other_examples/c9bbc235 (charlievieth's
// hand-rolled port of the same tables) and other_examples/384beee3
// (clipperhouse/uax29) implement the same algorithm from scratch.
//
// An empty string segments to an empty, non-nil slice: the empty input is a
// valid (zero-length) cluster sequence, not an error.
func Segment(s string) ([]Cluster, error) {
	if !utf8.ValidString(s) {
		return nil, errorutil.NewWithTag("grapheme", "invalid UTF-8 input")
	}

	clusters := make([]Cluster, 0, len(s))
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		clusters = append(clusters, Cluster{
			Text:   g.Str(),
			Points: g.Runes(),
			Count:  1,
		})
	}
	return clusters, nil
}
