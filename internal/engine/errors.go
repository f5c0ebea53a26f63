package engine

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind enumerates the ways a pattern can be malformed.
type ErrorKind uint8

const (
	ErrUnclosedGroup ErrorKind = iota
	ErrUnclosedClass
	ErrEmptySubpattern
	ErrEmptyCharGroup
	ErrBadBackreference
	ErrDanglingEscape
	ErrInvalidEscape
)

var errorKindText = map[ErrorKind]string{
	ErrUnclosedGroup:    "unclosed group",
	ErrUnclosedClass:    "unclosed character class",
	ErrEmptySubpattern:  "empty subpattern",
	ErrEmptyCharGroup:   "empty character group",
	ErrBadBackreference: "backreference to undeclared group",
	ErrDanglingEscape:   "dangling escape at end of pattern",
	ErrInvalidEscape:    "invalid escape sequence",
}

// CompileError reports a malformed pattern together with the byte
// offset at which the compiler detected the problem.
type CompileError struct {
	Kind     ErrorKind
	Position int
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s at position %d", errorKindText[e.Kind], e.Position)
}

// newCompileError wraps a CompileError with a stack trace at the call
// site, so the CLI layer can optionally print it without the compiler
// depending on any logging package.
func newCompileError(kind ErrorKind, pos int) error {
	return errors.WithStack(&CompileError{Kind: kind, Position: pos})
}
