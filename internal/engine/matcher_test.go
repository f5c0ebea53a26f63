package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func runMatch(t *testing.T, pattern, line string) bool {
	t.Helper()
	portions, groupCount, err := Compile(pattern)
	require.NoError(t, err)
	store := NewStore(groupCount)
	return Matches([]byte(line), portions, store)
}

// TestSpecScenarios exercises every concrete pattern/line pair listed
// in the spec's testable-properties section.
func TestSpecScenarios(t *testing.T) {
	cases := []struct {
		name    string
		pattern string
		line    string
		want    bool
	}{
		{"digits", `\d\d\d`, "abc123def", true},
		{"start anchor match", "^log", "log-42", true},
		{"start anchor no match", "^log", "my log", false},
		{"end anchor match", "cat$", "wildcat", true},
		{"end anchor no match", "cat$", "catalog", false},
		{"one or more match", "a+b", "aaab", true},
		{"one or more no match", "a+b", "b", false},
		{"one or more minimal", "a+b", "ab", true},
		{"zero or one color", "colou?r", "color", true},
		{"zero or one colour", "colou?r", "colour", true},
		{"zero or one rejects double", "colou?r", "colouur", false},
		{"alternation cats", "(cat|dog)s", "cats", true},
		{"alternation dogs", "(cat|dog)s", "dogs", true},
		{"alternation no match", "(cat|dog)s", "fish", false},
		{"backref match", `(\w+) and \1`, "red and red", true},
		{"backref no match", `(\w+) and \1`, "red and blue", false},
		{"group backref match", `([abc]+)-\1`, "abc-abc", true},
		{"group backref no match", `([abc]+)-\1`, "abc-abd", false},
		{"any least one match", ".+x", "aaax", true},
		{"any least one no match", ".+x", "aaa", false},
		{"negative group match", "[^xyz]+", "abc", true},
		{"negative group no match", "[^xyz]+", "xxx", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, runMatch(t, tc.pattern, tc.line))
		})
	}
}

func TestClassEquivalence(t *testing.T) {
	for b := byte('0'); b <= '9'; b++ {
		require.True(t, runMatch(t, `\d`, string([]byte{b})), string(b))
	}
	require.False(t, runMatch(t, `\d`, "a"))

	for _, b := range []byte("aA0_zZ9") {
		require.True(t, runMatch(t, `\w`, string([]byte{b})), string(b))
	}
	require.False(t, runMatch(t, `\w`, "!"))
}

func TestDeterminism(t *testing.T) {
	portions, groupCount, err := Compile(`(\w+)-\1`)
	require.NoError(t, err)
	line := []byte("ab-ab and more ab-ab")
	first := Matches(line, portions, NewStore(groupCount))
	second := Matches(line, portions, NewStore(groupCount))
	require.Equal(t, first, second)
}

func TestBackrefRoundTrip(t *testing.T) {
	portions, groupCount, err := Compile(`(\w+)\1`)
	require.NoError(t, err)

	// \w+ takes the whole word run with no give-back, so the group
	// captures "hihi" at offset 0 (and the rest of the word at later
	// offsets); no capture is ever followed by a copy of itself.
	store := NewStore(groupCount)
	require.False(t, Matches([]byte("hihi"), portions, store))

	store2 := NewStore(groupCount)
	require.False(t, Matches([]byte("hibye"), portions, store2))
}

func TestQuantifiedGroup(t *testing.T) {
	require.True(t, runMatch(t, "(ab)+c", "ababc"))
	require.True(t, runMatch(t, "(ab)+c", "abc"))
	require.False(t, runMatch(t, "(ab)+c", "c"))
	require.True(t, runMatch(t, "(ab)?c", "c"))
	require.True(t, runMatch(t, "(ab)?c", "abc"))
	require.True(t, runMatch(t, "(ab)?c", "ababc"))
}

func TestNestedGroups(t *testing.T) {
	require.True(t, runMatch(t, "((a)(b))c", "abc"))
}

func TestCharGroupQuantified(t *testing.T) {
	require.True(t, runMatch(t, "[abc]+d", "aabcd"))
	require.False(t, runMatch(t, "[abc]+d", "d"))
	require.True(t, runMatch(t, "[abc]?d", "d"))
	require.True(t, runMatch(t, "[abc]?d", "ad"))
	// Two group bytes fail at offset 0, but the attempt from offset 1
	// sees "ad" and succeeds.
	require.True(t, runMatch(t, "[abc]?d", "aad"))
}

func TestMatchesReturnsFalseForEmptyLineStartAnchorEnd(t *testing.T) {
	// A known, deliberately preserved asymmetry: START_ANCHOR reached
	// with exhausted input fails, because it is not in the small set
	// of kinds permitted to match an empty tail (see permittedOnEmptyTail).
	require.False(t, runMatch(t, "^$", ""))
}
