package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompileGroupCount(t *testing.T) {
	cases := []struct {
		pattern string
		count   int
	}{
		{"abc", 0},
		{"(a)", 1},
		{"(a)(b)", 2},
		{"((a)(b))", 3},
		{"(cat|dog)s", 1},
		{"(\\w+) and \\1", 1},
	}
	for _, tc := range cases {
		_, count, err := Compile(tc.pattern)
		require.NoError(t, err, tc.pattern)
		require.Equal(t, tc.count, count, tc.pattern)
	}
}

func TestCompileQuantifiers(t *testing.T) {
	portions, _, err := Compile("a+b?c")
	require.NoError(t, err)
	require.Len(t, portions, 3)
	require.Equal(t, OneOrMore, portions[0].Kind)
	require.Equal(t, byte('a'), portions[0].Literal)
	require.Equal(t, ZeroOrOne, portions[1].Kind)
	require.Equal(t, byte('b'), portions[1].Literal)
	require.Equal(t, Literal, portions[2].Kind)
}

func TestCompileAnchors(t *testing.T) {
	portions, _, err := Compile("^log$")
	require.NoError(t, err)
	require.Equal(t, StartAnchor, portions[0].Kind)
	require.Equal(t, EndAnchor, portions[len(portions)-1].Kind)
}

func TestCompileCharGroup(t *testing.T) {
	portions, _, err := Compile("[^xyz]+")
	require.NoError(t, err)
	require.Len(t, portions, 1)
	require.Equal(t, CharGroupLeastOne, portions[0].Kind)
	require.False(t, portions[0].Positive)
	require.True(t, portions[0].Set.Contains('x'))
	require.False(t, portions[0].Set.Contains('a'))
}

func TestCompileBackreference(t *testing.T) {
	portions, count, err := Compile("([abc]+)-\\1")
	require.NoError(t, err)
	require.Equal(t, 1, count)
	require.Equal(t, Pattern, portions[0].Kind)
	require.Equal(t, Literal, portions[1].Kind)
	require.Equal(t, Backreference, portions[2].Kind)
	require.Equal(t, 1, portions[2].BackrefNo)
}

func TestCompileErrors(t *testing.T) {
	cases := []struct {
		pattern string
		kind    ErrorKind
	}{
		{"(abc", ErrUnclosedGroup},
		{"[abc", ErrUnclosedClass},
		{"()", ErrEmptySubpattern},
		{"[]", ErrEmptyCharGroup},
		{"\\1", ErrBadBackreference},
		{"a\\", ErrDanglingEscape},
		{"", ErrEmptySubpattern},
	}
	for _, tc := range cases {
		_, _, err := Compile(tc.pattern)
		require.Error(t, err, tc.pattern)
		var ce *CompileError
		require.ErrorAs(t, err, &ce, tc.pattern)
		require.Equal(t, tc.kind, ce.Kind, tc.pattern)
	}
}

func TestCompileAlternationNested(t *testing.T) {
	portions, _, err := Compile("a|b|c")
	require.NoError(t, err)
	require.Len(t, portions, 1)
	require.Equal(t, Or, portions[0].Kind)
	require.Len(t, portions[0].Alt1, 1)
	require.Equal(t, Literal, portions[0].Alt1[0].Kind)
	// Right side re-nests as another OR over the remaining alternatives.
	require.Len(t, portions[0].Alt2, 1)
	require.Equal(t, Or, portions[0].Alt2[0].Kind)
}
