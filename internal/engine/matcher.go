package engine

import "bytes"

// permittedOnEmptyTail holds the portion kinds that may still succeed
// once the input is exhausted, because they permit an empty match:
// ZERO_OR_ONE, PATTERN_MOST_ONE, ANY_MOST_ONE and END_ANCHOR. Every
// other kind (including the *_MOST_ONE digit/word/group variants) must
// fail on exhausted input; this asymmetry comes straight from the
// source this engine is ported from and is kept deliberately.
func permittedOnEmptyTail(k Kind) bool {
	switch k {
	case ZeroOrOne, PatternMostOne, AnyMostOne, EndAnchor:
		return true
	default:
		return false
	}
}

// Matches reports whether the compiled pattern matches anywhere in
// line, trying every starting offset in ascending order and resetting
// the store between attempts.
func Matches(line []byte, portions []Portion, store *Store) bool {
	for start := 0; start <= len(line); start++ {
		store.Reset()
		if matchHere(line, portions, start, 0, store, nil, nil) {
			return true
		}
	}
	return false
}

// siblingOrInherited computes the lookahead portion passed to a
// capturing group's subpattern: the next portion at the same level if
// one exists, otherwise the lookahead this call itself received from
// its own enclosing level.
func siblingOrInherited(portions []Portion, portionIndex int, lookahead *Portion) *Portion {
	if portionIndex+1 < len(portions) {
		return &portions[portionIndex+1]
	}
	return lookahead
}

// matchHere is the recursive backtracking interpreter at the heart of
// the matcher. It reports whether the portions starting at
// portionIndex match the line starting at inputIndex, and if so writes
// the number of input bytes consumed by that match into *consumed
// (when non-nil). lookahead is the next-level sibling portion made
// visible to a child subpattern, used only by the quantifier edge
// cases documented per-portion below.
func matchHere(
	line []byte,
	portions []Portion,
	inputIndex, portionIndex int,
	store *Store,
	lookahead *Portion,
	consumed *int,
) bool {
	if portionIndex >= len(portions) {
		return true
	}
	portion := &portions[portionIndex]

	if inputIndex >= len(line) {
		return permittedOnEmptyTail(portion.Kind)
	}

	if portion.Kind == StartAnchor {
		if inputIndex > 0 {
			return false
		}
		return matchHere(line, portions, inputIndex, portionIndex+1, store, lookahead, consumed)
	}

	switch portion.Kind {
	case EndAnchor:
		// Reaching here means inputIndex < len(line); END_ANCHOR only
		// succeeds at end-of-line, already handled above.
		return false

	case OneOrMore:
		count := 0
		for inputIndex+count < len(line) && line[inputIndex+count] == portion.Literal {
			count++
		}
		if count == 0 {
			return false
		}
		nextIdx := portionIndex + 1
		giveBack := false
		if nextIdx < len(portions) && portions[nextIdx].Kind == Literal && portions[nextIdx].Literal == portion.Literal {
			giveBack = true
		} else if nextIdx >= len(portions) && lookahead != nil && lookahead.Kind == Literal && lookahead.Literal == portion.Literal {
			giveBack = true
		}
		if giveBack {
			count--
		}
		if consumed != nil {
			*consumed += count
		}
		return matchHere(line, portions, inputIndex+count, nextIdx, store, lookahead, consumed)

	case ZeroOrOne:
		count := 0
		for inputIndex+count < len(line) && line[inputIndex+count] == portion.Literal {
			count++
			if count > 1 {
				return false
			}
		}
		if consumed != nil {
			*consumed += count
		}
		return matchHere(line, portions, inputIndex+count, portionIndex+1, store, lookahead, consumed)

	case DigitLeastOne:
		count := 0
		for inputIndex+count < len(line) && isDigit(line[inputIndex+count]) {
			count++
		}
		if count == 0 {
			return false
		}
		if consumed != nil {
			*consumed += count
		}
		return matchHere(line, portions, inputIndex+count, portionIndex+1, store, lookahead, consumed)

	case DigitMostOne:
		count := 0
		for inputIndex+count < len(line) && isDigit(line[inputIndex+count]) {
			count++
			if count > 1 {
				return false
			}
		}
		if consumed != nil {
			*consumed += count
		}
		return matchHere(line, portions, inputIndex+count, portionIndex+1, store, lookahead, consumed)

	case WordLeastOne:
		count := 0
		for inputIndex+count < len(line) && isWord(line[inputIndex+count]) {
			count++
		}
		if count == 0 {
			return false
		}
		if consumed != nil {
			*consumed += count
		}
		return matchHere(line, portions, inputIndex+count, portionIndex+1, store, lookahead, consumed)

	case WordMostOne:
		count := 0
		for inputIndex+count < len(line) && isWord(line[inputIndex+count]) {
			count++
			if count > 1 {
				return false
			}
		}
		if consumed != nil {
			*consumed += count
		}
		return matchHere(line, portions, inputIndex+count, portionIndex+1, store, lookahead, consumed)

	case CharGroupMostOne:
		count := 0
		for inputIndex+count < len(line) && groupMatches(*portion, line[inputIndex+count]) {
			count++
			if count > 1 {
				return false
			}
		}
		if consumed != nil {
			*consumed += count
		}
		return matchHere(line, portions, inputIndex+count, portionIndex+1, store, lookahead, consumed)

	case CharGroupLeastOne:
		count := 0
		if portion.Positive {
			for inputIndex+count < len(line) && groupMatches(*portion, line[inputIndex+count]) {
				count++
			}
		} else {
			stopByte, hasStop := byte(0), false
			if portionIndex == len(portions)-1 && lookahead != nil && lookahead.Kind == Literal {
				stopByte, hasStop = lookahead.Literal, true
			}
			for inputIndex+count < len(line) && groupMatches(*portion, line[inputIndex+count]) {
				if hasStop && line[inputIndex+count] == stopByte {
					break
				}
				count++
			}
		}
		if count < 1 {
			return false
		}
		if consumed != nil {
			*consumed += count
		}
		return matchHere(line, portions, inputIndex+count, portionIndex+1, store, lookahead, consumed)

	case AnyLeastOne:
		return matchAnyLeastOne(line, portions, inputIndex, portionIndex, store, lookahead, consumed)

	case Or:
		var countA int
		if matchHere(line, portion.Alt1, inputIndex, 0, store, nil, &countA) {
			if consumed != nil {
				*consumed += countA
			}
			return true
		}
		var countB int
		if matchHere(line, portion.Alt2, inputIndex, 0, store, nil, &countB) {
			if consumed != nil {
				*consumed += countB
			}
			return true
		}
		return false

	case Pattern:
		store.Reserve(portion.GroupNo)
		childLookahead := siblingOrInherited(portions, portionIndex, lookahead)
		var count int
		if !matchHere(line, portion.Sub, inputIndex, 0, store, childLookahead, &count) {
			return false
		}
		store.Set(portion.GroupNo, line[inputIndex:inputIndex+count])
		if consumed != nil {
			*consumed += count
		}
		return matchHere(line, portions, inputIndex+count, portionIndex+1, store, lookahead, consumed)

	case PatternMostOne:
		store.Reserve(portion.GroupNo)
		childLookahead := siblingOrInherited(portions, portionIndex, lookahead)
		matchCount, processedTot := 0, 0
		for {
			var processedChrs int
			if !matchHere(line, portion.Sub, inputIndex+processedTot, 0, store, childLookahead, &processedChrs) {
				break
			}
			matchCount++
			processedTot += processedChrs
			if matchCount > 1 {
				return false
			}
		}
		store.Set(portion.GroupNo, line[inputIndex:inputIndex+processedTot])
		if consumed != nil {
			*consumed += processedTot
		}
		return matchHere(line, portions, inputIndex+processedTot, portionIndex+1, store, lookahead, consumed)

	case PatternLeastOne:
		store.Reserve(portion.GroupNo)
		childLookahead := siblingOrInherited(portions, portionIndex, lookahead)
		matchCount, processedTot := 0, 0
		for {
			var processedChrs int
			if !matchHere(line, portion.Sub, inputIndex+processedTot, 0, store, childLookahead, &processedChrs) {
				break
			}
			matchCount++
			processedTot += processedChrs
			if processedChrs == 0 {
				// Zero-width iteration: stop immediately rather than
				// looping forever on a subpattern that can match empty.
				break
			}
		}
		if matchCount < 1 {
			return false
		}
		if processedTot > 0 {
			store.Set(portion.GroupNo, line[inputIndex:inputIndex+processedTot])
		} else {
			store.Free(portion.GroupNo)
		}
		if consumed != nil {
			*consumed += processedTot
		}
		// Advance by processedTot alone (see spec §9: the original's
		// "1 + processed_tot" step is the flagged ambiguous case).
		return matchHere(line, portions, inputIndex+processedTot, portionIndex+1, store, lookahead, consumed)

	case Backreference:
		txt := store.Text(portion.BackrefNo)
		if inputIndex+len(txt) > len(line) || !bytes.Equal(line[inputIndex:inputIndex+len(txt)], txt) {
			return false
		}
		if consumed != nil {
			*consumed += len(txt)
		}
		return matchHere(line, portions, inputIndex+len(txt), portionIndex+1, store, lookahead, consumed)

	case BackrefLeastOne:
		txt := store.Text(portion.BackrefNo)
		tlen := len(txt)
		if tlen == 0 {
			return false
		}
		count := 0
		for inputIndex+count*tlen+tlen <= len(line) && bytes.Equal(line[inputIndex+count*tlen:inputIndex+count*tlen+tlen], txt) {
			count++
		}
		if count == 0 {
			return false
		}
		if consumed != nil {
			*consumed += count * tlen
		}
		return matchHere(line, portions, inputIndex+count*tlen, portionIndex+1, store, lookahead, consumed)

	case BackrefMostOne:
		txt := store.Text(portion.BackrefNo)
		tlen := len(txt)
		count := 0
		if tlen > 0 {
			for count < 2 && inputIndex+count*tlen+tlen <= len(line) && bytes.Equal(line[inputIndex+count*tlen:inputIndex+count*tlen+tlen], txt) {
				count++
			}
			if count > 1 {
				return false
			}
		}
		if consumed != nil {
			*consumed += count * tlen
		}
		return matchHere(line, portions, inputIndex+count*tlen, portionIndex+1, store, lookahead, consumed)
	}

	// Simple single-byte atoms: ANY, LITERAL, DIGIT, WORD, CHAR_GROUP.
	if !matchByte(line[inputIndex], *portion) {
		return false
	}
	if consumed != nil {
		*consumed++
	}
	return matchHere(line, portions, inputIndex+1, portionIndex+1, store, lookahead, consumed)
}

// matchAnyLeastOne implements ANY_LEAST_ONE (.+). When the immediate
// next portion is a literal, it consumes bytes up to that literal in
// one step. Otherwise it falls back to greedy-then-shrink backtracking:
// consume as much as possible, then shrink until the remainder matches.
// This departs from the original's minimal-step backtracking loop (see
// spec §9), which is allowed to be replaced as long as verdicts agree
// on well-formed input.
func matchAnyLeastOne(
	line []byte,
	portions []Portion,
	inputIndex, portionIndex int,
	store *Store,
	lookahead *Portion,
	consumed *int,
) bool {
	nextIdx := portionIndex + 1
	if nextIdx >= len(portions) {
		if consumed != nil {
			*consumed++
		}
		return true
	}
	if portions[nextIdx].Kind == Literal {
		lit := portions[nextIdx].Literal
		count := 0
		for inputIndex+count < len(line) && line[inputIndex+count] != lit {
			count++
		}
		if count == 0 {
			return false
		}
		if consumed != nil {
			*consumed += count
		}
		return matchHere(line, portions, inputIndex+count, nextIdx, store, lookahead, consumed)
	}

	maxCount := len(line) - inputIndex
	for k := maxCount; k >= 1; k-- {
		var sub int
		if matchHere(line, portions, inputIndex+k, nextIdx, store, lookahead, &sub) {
			if consumed != nil {
				*consumed += k + sub
			}
			return true
		}
	}
	return false
}

func matchByte(b byte, portion Portion) bool {
	switch portion.Kind {
	case Any:
		return true
	case Literal:
		return b == portion.Literal
	case Digit:
		return isDigit(b)
	case Word:
		return isWord(b)
	case CharGroup:
		return groupMatches(portion, b)
	default:
		return false
	}
}

func groupMatches(portion Portion, b byte) bool {
	in := portion.Set.Contains(b)
	if portion.Positive {
		return in
	}
	return !in
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isWord(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9') || b == '_'
}
