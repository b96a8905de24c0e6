package rexgen

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildString_EmptySet(t *testing.T) {
	got, err := BuildString(nil)
	require.Nil(t, err)
	require.Equal(t, "^$", got)
}

func TestBuildString_EmptyStringOnly(t *testing.T) {
	got, err := BuildString([]string{""})
	require.Nil(t, err)
	require.Equal(t, "^$", got)
}

func TestBuildString_CharClass(t *testing.T) {
	got, err := BuildString([]string{"a", "b", "c"})
	require.Nil(t, err)
	require.Equal(t, "^[a-c]$", got)
}

func TestBuildString_ConvertRepetitions(t *testing.T) {
	got, err := BuildString([]string{"aaa"}, ConvertRepetitions())
	require.Nil(t, err)
	require.Equal(t, "^a{3}$", got)
}

func TestBuildString_EscapeNonASCII(t *testing.T) {
	got, err := BuildString(
		[]string{"My ♥ is yours.", "My \U0001F4A9 is yours."},
		EscapeNonASCII(false),
	)
	require.Nil(t, err)
	re, err := regexp.Compile(got)
	require.Nilf(t, err, "regexp.Compile(%q)", got)
	require.True(t, re.MatchString("My ♥ is yours."))
	require.True(t, re.MatchString("My \U0001F4A9 is yours."))
}

func TestBuildString_EscapeNonASCII_SurrogatePairs(t *testing.T) {
	got, err := BuildString(
		[]string{"My \U0001F4A9 is yours."},
		EscapeNonASCII(true),
	)
	require.Nil(t, err)
	require.Equal(t, `^My \u{d83d}\u{dca9} is yours\.$`, got)
}

func TestBuildString_ConvertRepetitions_EscapeNonASCII_NoSurrogates(t *testing.T) {
	got, err := BuildString(
		[]string{"My ♥♥♥ and 💩💩 is yours."},
		ConvertRepetitions(),
		EscapeNonASCII(false),
	)
	require.Nil(t, err)
	require.Equal(t, `^My \u{2665}{3} and \u{1f4a9}{2} is yours\.$`, got)
}

func TestBuildString_ConvertRepetitions_EscapeNonASCII_Surrogates(t *testing.T) {
	got, err := BuildString(
		[]string{"My ♥♥♥ and 💩💩 is yours."},
		ConvertRepetitions(),
		EscapeNonASCII(true),
	)
	require.Nil(t, err)
	require.Equal(t, `^My \u{2665}{3} and (\u{d83d}\u{dca9}){2} is yours\.$`, got)
}

func TestBuilder_Chaining(t *testing.T) {
	got, err := NewBuilder([]string{"aaa"}).WithConvertedRepetitions().Build()
	require.Nil(t, err)
	require.Equal(t, "^a{3}$", got)
}

func TestBuildString_DeterminismUnderDuplicatesAndOrder(t *testing.T) {
	a, err := BuildString([]string{"zzz", "a", "aa", "bb"})
	require.Nil(t, err)
	b, err := BuildString([]string{"bb", "a", "bb", "aa", "zzz", "a"})
	require.Nil(t, err)
	require.Equal(t, a, b, "expected determinism regardless of order/duplicates")
}

func TestBuildString_InvalidUTF8(t *testing.T) {
	_, err := BuildString([]string{"valid", "\xff\xfe"})
	require.NotNil(t, err, "expected an error for malformed UTF-8 input")
}

func TestBuildString_Soundness(t *testing.T) {
	inputs := []string{"api.example.com", "dev.example.com", "www.example.com"}
	got, err := BuildString(inputs)
	require.Nil(t, err)
	re, err := regexp.Compile(got)
	require.Nilf(t, err, "regexp.Compile(%q)", got)
	for _, in := range inputs {
		require.Truef(t, re.MatchString(in), "pattern %q should match %q", got, in)
	}
	require.Falsef(t, re.MatchString("staging.example.com"), "pattern %q should not match an input outside the set", got)
}
