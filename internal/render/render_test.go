package render

import (
	"regexp"
	"testing"

	"github.com/rexgen/rexgen/internal/ast"
	"github.com/rexgen/rexgen/internal/automaton"
	"github.com/rexgen/rexgen/internal/grapheme"
)

// build runs the full segment -> DFA -> synthesize -> simplify -> render
// pipeline directly against internal packages, independent of the root
// driver, so render can be tested in isolation.
func build(t *testing.T, convertRepetitions bool, inputs ...string) string {
	t.Helper()
	var seqs [][]grapheme.Cluster
	for _, in := range inputs {
		clusters, err := grapheme.Segment(in)
		if err != nil {
			t.Fatalf("Segment(%q): %v", in, err)
		}
		if convertRepetitions {
			clusters = grapheme.FoldRepetitions(clusters)
		}
		seqs = append(seqs, clusters)
	}
	d := automaton.BuildFromSequences(seqs)
	expr := ast.Simplify(ast.FromDFA(d), convertRepetitions)
	return Render(expr)
}

func TestRender_CharClass(t *testing.T) {
	got := build(t, false, "a", "b", "c")
	want := "^[a-c]$"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRender_OptionalSuffix(t *testing.T) {
	got := build(t, false, "a", "ab")
	want := "^ab?$"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRender_RepetitionSuffix(t *testing.T) {
	got := build(t, true, "aaa")
	want := "^a{3}$"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRender_EmptyOnly(t *testing.T) {
	got := build(t, false, "")
	want := "^$"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRender_MetacharEscaping(t *testing.T) {
	got := build(t, false, "3.5", "4.5")
	re := mustCompile(t, got)
	for _, s := range []string{"3.5", "4.5"} {
		if !re.MatchString(s) {
			t.Errorf("pattern %q should match %q", got, s)
		}
	}
	if re.MatchString("3x5") {
		t.Errorf("pattern %q should not treat '.' as wildcard", got)
	}
}

// TestRender_AltBranchOrder pins down the alternation branch ordering
// rule against every multi-branch row of spec.md §8's scenario table:
// sort by the longest original input each branch covers, descending,
// tied branches broken ascending-lexicographically on original text.
func TestRender_AltBranchOrder(t *testing.T) {
	tests := []struct {
		name   string
		inputs []string
		want   string
	}{
		{"shorter-branch-inside-optional-loses-to-longer", []string{"a", "b", "bc"}, "^bc?|a$"},
		{"longer-covered-max-wins", []string{"abcxy", "abcw", "efgh"}, "^abc(xy|w)|efgh$"},
		{"tie-broken-on-original-text-not-rendered-syntax", []string{"3.5", "4.5", "4,5"}, `^3\.5|4[,.]5$`},
		{"combining-sequence-ties-charclass-loses-tiebreak", []string{"y̆", "a", "z"}, "^[az]|y̆$"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := build(t, false, tt.inputs...)
			if got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFromDFA_SelfLoopRender(t *testing.T) {
	seg, err := grapheme.Segment("a")
	if err != nil {
		t.Fatal(err)
	}
	aKey := grapheme.KeyOf(seg[0])
	segB, err := grapheme.Segment("b")
	if err != nil {
		t.Fatal(err)
	}
	bKey := grapheme.KeyOf(segB[0])

	d := automaton.NewDFA(
		2, 0, map[int]bool{1: true},
		[]map[grapheme.Key]int{
			{aKey: 0, bKey: 1},
			{},
		},
		map[grapheme.Key]grapheme.Cluster{aKey: seg[0], bKey: segB[0]},
	)
	expr := ast.Simplify(ast.FromDFA(d), false)
	got := Render(expr)
	want := "^a*b$"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func mustCompile(t *testing.T, pattern string) *regexp.Regexp {
	t.Helper()
	re, err := regexp.Compile(pattern)
	if err != nil {
		t.Fatalf("regexp.Compile(%q): %v", pattern, err)
	}
	return re
}

// roundTrip asserts soundness (every input matches) and anchoring (the
// pattern rejects any input with extra trailing/leading content) for an
// arbitrary finite set, without pinning down the exact alternation
// ordering the renderer produces for ambiguous multi-branch cases.
func roundTrip(t *testing.T, inputs []string) {
	t.Helper()
	got := build(t, false, inputs...)
	if len(got) < 2 || got[0] != '^' || got[len(got)-1] != '$' {
		t.Fatalf("pattern %q is not anchored", got)
	}
	re := mustCompile(t, got)
	for _, s := range inputs {
		if !re.MatchString(s) {
			t.Errorf("pattern %q should match input %q", got, s)
		}
		if re.MatchString(s + "_extra") {
			t.Errorf("pattern %q should not match %q (anchored at end)", got, s+"_extra")
		}
	}
}

func TestRender_RoundTrip_Soundness(t *testing.T) {
	cases := [][]string{
		{"a", "b", "bc"},
		{"axy", "adexy"},
		{"axy", "abcxy", "adexy"},
		{"3.5", "4.5", "4,5"},
		{"y̆", "a", "z"},
		{"foo", "bar", "baz", "qux"},
	}
	for _, inputs := range cases {
		roundTrip(t, inputs)
	}
}

func TestRender_Determinism(t *testing.T) {
	inputs := []string{"zzz", "a", "aa", "bb"}
	reversed := []string{"bb", "aa", "a", "zzz"}
	got1 := build(t, false, inputs...)
	got2 := build(t, false, reversed...)
	if got1 != got2 {
		t.Fatalf("rendering depends on input order: %q vs %q", got1, got2)
	}
}
