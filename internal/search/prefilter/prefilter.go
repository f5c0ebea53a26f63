// Package prefilter extracts the mandatory literal substrings out of a
// compiled pattern and uses them to reject lines that cannot possibly
// match before the backtracking matcher is invoked at all.
//
// The idea is grounded in coregx-coregex's own literal-alternation
// bypass (meta/find.go's findAhoCorasick): building a multi-pattern
// automaton once per compiled regex and reusing it across every line
// of input is far cheaper than re-running the backtracker on lines
// that are guaranteed to fail.
package prefilter

import (
	"github.com/coregx/ahocorasick"

	"github.com/grepx/grepx/internal/engine"
)

// Filter rejects lines that cannot contain a match. A positive answer
// from MayMatch is not a guarantee; the caller must still run the real
// matcher. A negative answer is always safe to trust.
type Filter struct {
	automaton *ahocorasick.Automaton
	literals  [][]byte
}

// Build compiles a Filter out of the mandatory literal runs found at
// the top level of portions. If no literal can be extracted - for
// example a pattern that is a bare character class or starts with
// alternation - Build returns a Filter that never rejects anything.
func Build(portions []engine.Portion) *Filter {
	literals := extractLiteralRuns(portions)
	if len(literals) == 0 {
		return &Filter{}
	}

	builder := ahocorasick.NewBuilder()
	for _, lit := range literals {
		builder.AddPattern(lit)
	}
	automaton, err := builder.Build()
	if err != nil {
		// Fail open: a broken automaton must never cause a real match
		// to be skipped, only remove the fast-reject optimization.
		return &Filter{}
	}
	return &Filter{automaton: automaton, literals: literals}
}

// MayMatch reports whether line could possibly satisfy the pattern
// this Filter was built from. Every mandatory literal run must be
// present somewhere in line, in any order, since the slower matcher
// is the one responsible for verifying position and sequence.
func (f *Filter) MayMatch(line []byte) bool {
	if f.automaton == nil {
		return true
	}

	seen := make(map[int]bool, len(f.literals))
	at := 0
	for {
		m := f.automaton.Find(line, at)
		if m == nil {
			break
		}
		seen[matchedLiteralIndex(f.literals, line[m.Start:m.End])] = true
		if len(seen) == len(f.literals) {
			return true
		}
		at = m.Start + 1
		if at > len(line) {
			break
		}
	}
	return len(seen) == len(f.literals)
}

// matchedLiteralIndex identifies which configured literal a matched
// span corresponds to, so MayMatch can count distinct required
// literals rather than repeat occurrences of the same one.
func matchedLiteralIndex(literals [][]byte, span []byte) int {
	for i, lit := range literals {
		if len(lit) == len(span) && string(lit) == string(span) {
			return i
		}
	}
	return -1
}

// extractLiteralRuns walks a top-level portion sequence and collects
// maximal runs of consecutive Literal portions. It deliberately does
// not recurse into Pattern or Or subtrees: a literal nested inside an
// alternation or an optional group is not mandatory for the overall
// pattern to match, so including it would make the filter unsafe.
func extractLiteralRuns(portions []engine.Portion) [][]byte {
	var runs [][]byte
	var current []byte

	flush := func() {
		if len(current) > 0 {
			runs = append(runs, current)
		}
		current = nil
	}

	for _, p := range portions {
		if p.Kind == engine.Literal {
			current = append(current, p.Literal)
			continue
		}
		flush()
	}
	flush()

	return runs
}
