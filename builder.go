// Package rexgen generates a concise, anchored regular expression that
// matches exactly a finite set of test-case strings (spec §1). A Builder
// normalizes the input set, segments it into Unicode grapheme clusters,
// builds and minimizes a DFA over those clusters, synthesizes an
// expression tree by state elimination, simplifies it, and renders the
// final pattern.
package rexgen

import (
	"github.com/projectdiscovery/gologger"
	errorutil "github.com/projectdiscovery/utils/errors"

	"github.com/rexgen/rexgen/internal/ast"
	"github.com/rexgen/rexgen/internal/automaton"
	"github.com/rexgen/rexgen/internal/dedupe"
	"github.com/rexgen/rexgen/internal/grapheme"
	"github.com/rexgen/rexgen/internal/render"
)

// Builder accumulates a test-case set and configuration, then produces the
// matching pattern on Build. The zero value is not usable; construct with
// NewBuilder.
type Builder struct {
	testCases []string
	opts      Options
}

// NewBuilder creates a Builder over testCases with default options (no
// escaping, no repetition folding). testCases is not copied: it is read at
// Build time, so changes the caller makes to the slice before Build are
// seen by Build.
func NewBuilder(testCases []string) *Builder {
	return &Builder{testCases: testCases}
}

// WithEscapedNonASCIIChars turns on EscapeNonASCII, optionally splitting
// astral code points into surrogate-pair escapes.
func (b *Builder) WithEscapedNonASCIIChars(useSurrogatePairs bool) *Builder {
	b.opts.EscapeNonASCII = true
	b.opts.UseSurrogatePairs = useSurrogatePairs
	return b
}

// WithConvertedRepetitions turns on ConvertRepetitions.
func (b *Builder) WithConvertedRepetitions() *Builder {
	b.opts.ConvertRepetitions = true
	return b
}

// Build runs the pipeline and returns the anchored pattern. The only
// failure this can report is malformed UTF-8 in one of the test cases;
// every other stage succeeds by construction (spec §7).
func (b *Builder) Build() (string, error) {
	set := dedupe.NewStringSet()
	for _, tc := range b.testCases {
		set.Upsert(tc)
	}
	normalized := set.Sorted()
	gologger.Verbose().Msgf("normalized %d test case(s) into %d distinct input(s)", len(b.testCases), len(normalized))

	sequences := make([][]grapheme.Cluster, 0, len(normalized))
	for _, tc := range normalized {
		clusters, err := grapheme.Segment(tc)
		if err != nil {
			return "", errorutil.NewWithTag("rexgen", "segmenting input %q: %v", tc, err)
		}
		if b.opts.ConvertRepetitions {
			clusters = grapheme.FoldRepetitions(clusters)
		}
		if b.opts.EscapeNonASCII {
			clusters = grapheme.EscapeNonASCII(clusters, b.opts.UseSurrogatePairs)
		}
		sequences = append(sequences, clusters)
	}

	dfa := automaton.BuildFromSequences(sequences)
	gologger.Debug().Msgf("built minimized DFA with %d state(s)", dfa.NumStates())

	expr := ast.FromDFA(dfa)
	expr = ast.Simplify(expr, b.opts.ConvertRepetitions)

	pattern := render.Render(expr)
	gologger.Verbose().Msgf("rendered pattern: %s", pattern)
	return pattern, nil
}

// BuildString is a one-shot convenience entry point: NewBuilder(testCases)
// with opts applied, then Build.
func BuildString(testCases []string, opts ...Option) (string, error) {
	b := NewBuilder(testCases)
	for _, opt := range opts {
		opt(b)
	}
	return b.Build()
}
