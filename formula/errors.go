package formula

import (
	"errors"
	"fmt"
)

var (
	ErrSyntax = errors.New("syntax error")
	ErrEval   = errors.New("evaluation error")
)

var (
	ErrLiteral    = fmt.Errorf("%w: invalid numeric literal", ErrEval)
	ErrMissing    = fmt.Errorf("%w: missing operands", ErrEval)
	ErrOperand    = fmt.Errorf("%w: operators require scalar values", ErrEval)
	ErrOperator   = fmt.Errorf("%w: unknown operator", ErrEval)
	ErrDivZero    = fmt.Errorf("%w: division by zero", ErrEval)
	ErrFunction   = fmt.Errorf("%w: unknown function", ErrEval)
	ErrNoArgs     = fmt.Errorf("%w: function has no arguments", ErrEval)
	ErrMarker     = fmt.Errorf("%w: argument marker not found", ErrEval)
	ErrLeftover   = fmt.Errorf("%w: invalid formula: leftover values", ErrEval)
	ErrReduce     = fmt.Errorf("%w: formula did not reduce to a single value", ErrEval)
	ErrNotNumeric = fmt.Errorf("%w: text is not numeric", ErrEval)
)

// SyntaxError reports a malformed formula. Position is the byte offset in
// the formula body (the text after the leading '=') or -1 when the error is
// not tied to a single character.
type SyntaxError struct {
	Position int
	Message  string
}

func syntaxError(pos int, msg string, args ...any) error {
	return &SyntaxError{
		Position: pos,
		Message:  fmt.Sprintf(msg, args...),
	}
}

func (e *SyntaxError) Error() string {
	if e.Position < 0 {
		return fmt.Sprintf("%s: %s", ErrSyntax, e.Message)
	}
	return fmt.Sprintf("%s: %s at position %d", ErrSyntax, e.Message, e.Position)
}

func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}
