// Package engine implements the extended-regex compiler and backtracking
// matcher at the heart of grepx.
package engine

// Kind discriminates the variant held by a Portion. It mirrors the
// ECharClass tags of the original implementation, extended with the
// capturing-group and backreference variants the distilled pattern
// language adds.
type Kind uint8

const (
	Any Kind = iota
	Literal
	Digit
	Word
	CharGroup
	CharGroupLeastOne
	CharGroupMostOne
	StartAnchor
	EndAnchor
	OneOrMore
	ZeroOrOne
	AnyLeastOne
	AnyMostOne
	DigitLeastOne
	DigitMostOne
	WordLeastOne
	WordMostOne
	Or
	Pattern
	PatternLeastOne
	PatternMostOne
	Backreference
	BackrefLeastOne
	BackrefMostOne
)

// CharSet is the literal byte set carried by CHAR_GROUP* portions.
// It is a small fixed-size bitmap over the byte alphabet rather than a
// map, since group contents are short and tested on every input byte.
type CharSet struct {
	bits [4]uint64
}

// NewCharSet builds a CharSet containing exactly the bytes in s.
func NewCharSet(s []byte) CharSet {
	var cs CharSet
	for _, b := range s {
		cs.Add(b)
	}
	return cs
}

func (cs *CharSet) Add(b byte) {
	cs.bits[b/64] |= 1 << (b % 64)
}

// Contains reports whether b is a member of the set.
func (cs CharSet) Contains(b byte) bool {
	return cs.bits[b/64]&(1<<(b%64)) != 0
}

// Portion is one tagged element of a compiled pattern. Only the fields
// relevant to Kind are meaningful; the rest are zero. Nested sequences
// for OR and PATTERN* variants are held as owned slices directly on the
// struct, which is acceptable given the modest nesting depths real
// patterns exhibit (see spec §9).
type Portion struct {
	Kind Kind

	// LITERAL, ONE_OR_MORE, ZERO_OR_ONE payload.
	Literal byte

	// CHAR_GROUP* payload.
	Set      CharSet
	Positive bool

	// OR payload: two alternative sequences.
	Alt1 []Portion
	Alt2 []Portion

	// PATTERN* payload: the subpattern sequence and its assigned
	// capturing-group ordinal (1-based, in declaration order).
	Sub     []Portion
	GroupNo int

	// BACKREFERENCE* payload: the ordinal of the group being referenced.
	BackrefNo int
}
