package arith

import (
	"errors"
	"strconv"
)

// ErrInvalidExpression is the kind of every error returned by Eval. Use
// errors.Is to test for it; the concrete error carries the details.
var ErrInvalidExpression = errors.New("invalid expression")

// SyntaxError is an error indicating text that is not a well-formed
// expression. It implements InputError.
type SyntaxError struct {
	// Col is the position of the offending text.
	Col int
	// Text is the offending text, if any.
	Text string
	// Reason describes what was wrong.
	Reason string
}

func (err *SyntaxError) Error() string {
	msg := err.Reason
	if err.Text != "" {
		msg += " " + strconv.Quote(err.Text)
	}
	return errpos(err.Col, "invalid expression: "+msg)
}

func (err *SyntaxError) Pos() int {
	return err.Col
}

func (err *SyntaxError) Unwrap() error {
	return ErrInvalidExpression
}

// DomainError is an error returned when a function or division is applied to
// an argument outside its domain. It implements InputError.
type DomainError struct {
	// Col is the position of the function name or operator.
	Col int
	// Func is "log", "sqrt", or "/".
	Func string
	// X is the out-of-domain argument.
	X float64
}

func (err *DomainError) Error() string {
	x := strconv.FormatFloat(err.X, 'g', -1, 64)
	return errpos(err.Col, "invalid expression: "+x+" outside domain of "+err.Func)
}

func (err *DomainError) Pos() int {
	return err.Col
}

func (err *DomainError) Unwrap() error {
	return ErrInvalidExpression
}

// RangeError is an error indicating a literal or intermediate result that is
// not a finite float64. It implements InputError.
type RangeError struct {
	// Col is the position of the literal or operator that overflowed.
	Col int
	// Op is the operator or function that produced the value, or the empty
	// string for a literal.
	Op string
}

func (err *RangeError) Error() string {
	if err.Op == "" {
		return errpos(err.Col, "invalid expression: number out of range")
	}
	return errpos(err.Col, "invalid expression: result of "+err.Op+" out of range")
}

func (err *RangeError) Pos() int {
	return err.Col
}

func (err *RangeError) Unwrap() error {
	return ErrInvalidExpression
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error returned by
// Eval implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the 1-based rune column of the
	// text that caused it.
	Pos() int
}

var (
	_ InputError = (*SyntaxError)(nil)
	_ InputError = (*DomainError)(nil)
	_ InputError = (*RangeError)(nil)
)
