package arith

import (
	"errors"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// Operators contains the bytes which are considered to be binary operators.
const Operators = "+-*/"

// span is a view of the input between byte offsets lo and hi.
type span struct {
	lo, hi int
}

func (s span) empty() bool {
	return s.lo >= s.hi
}

// evaluator holds the immutable input for a single evaluation. Every
// subexpression is a span into src, so errors can report their columns.
type evaluator struct {
	src string
}

// text returns the input viewed by s.
func (e *evaluator) text(s span) string {
	return e.src[s.lo:s.hi]
}

// col converts a byte offset into a 1-based rune column.
func (e *evaluator) col(off int) int {
	return utf8.RuneCountInString(e.src[:off]) + 1
}

// trim removes leading and trailing whitespace from s.
func (e *evaluator) trim(s span) span {
	for s.lo < s.hi {
		r, sz := utf8.DecodeRuneInString(e.src[s.lo:s.hi])
		if !unicode.IsSpace(r) {
			break
		}
		s.lo += sz
	}
	for s.lo < s.hi {
		r, sz := utf8.DecodeLastRuneInString(e.src[s.lo:s.hi])
		if !unicode.IsSpace(r) {
			break
		}
		s.hi -= sz
	}
	return s
}

// skipSpace returns the offset of the first non-space rune at or after i,
// or hi.
func (e *evaluator) skipSpace(i, hi int) int {
	for i < hi {
		r, sz := utf8.DecodeRuneInString(e.src[i:hi])
		if !unicode.IsSpace(r) {
			return i
		}
		i += sz
	}
	return hi
}

// closing returns the offset of the bracket that closes the open bracket at
// open, or -1 if it is not closed before hi.
func (e *evaluator) closing(open, hi int) int {
	depth := 0
	for i := open; i < hi; i++ {
		switch e.src[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// wrapped reports whether s is entirely enclosed by one bracket pair, i.e.
// the bracket depth returns to zero only at the last byte.
func (e *evaluator) wrapped(s span) bool {
	if s.hi-s.lo < 2 || e.src[s.lo] != '(' || e.src[s.hi-1] != ')' {
		return false
	}
	return e.closing(s.lo, s.hi) == s.hi-1
}

// balance checks that s is non-empty and that its brackets are balanced.
func (e *evaluator) balance(s span) error {
	if s.empty() {
		return &SyntaxError{Col: e.col(s.lo), Reason: "no expression"}
	}
	var opens []int
	for i := s.lo; i < s.hi; i++ {
		switch e.src[i] {
		case '(':
			opens = append(opens, i)
		case ')':
			if len(opens) == 0 {
				return &SyntaxError{Col: e.col(i), Text: ")", Reason: "close bracket with no open bracket"}
			}
			opens = opens[:len(opens)-1]
		}
	}
	if len(opens) != 0 {
		return &SyntaxError{Col: e.col(opens[len(opens)-1]), Text: "(", Reason: "open bracket with no close bracket"}
	}
	return nil
}

// scanNum scans a numeral starting at i and returns the offset just past it.
// A numeral is decimal digits with at most one point, followed by an optional
// exponent. Scanning stops at whitespace, an operator, or a bracket; any other
// rune inside the numeral is an error.
func (e *evaluator) scanNum(i, hi int) (int, error) {
	start := i
	var dig, dot, exp, lastexp, expdig bool
	for ; i < hi; i++ {
		c := e.src[i]
		if c == '+' || c == '-' {
			// + or - anywhere other than immediately following an exponent
			// marker means a new token, as it is an operator.
			if !lastexp {
				break
			}
			lastexp = false
			continue
		}
		if c == '*' || c == '/' || c == '(' || c == ')' || c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			break
		}
		if c >= utf8.RuneSelf {
			if r, _ := utf8.DecodeRuneInString(e.src[i:hi]); unicode.IsSpace(r) {
				break
			}
			return i, e.numError(start, i, hi)
		}
		switch c {
		case '.':
			if dot || exp {
				return i, e.numError(start, i, hi)
			}
			dot = true
			lastexp = false
		case 'e', 'E':
			if !dig || exp {
				return i, e.numError(start, i, hi)
			}
			exp = true
			lastexp = true
		case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
			if exp {
				expdig = true
			} else {
				dig = true
			}
			lastexp = false
		default:
			return i, e.numError(start, i, hi)
		}
	}
	if !dig || exp && !expdig {
		return i, e.numError(start, i, hi)
	}
	return i, nil
}

func (e *evaluator) numError(start, i, hi int) error {
	end := i
	if end < hi {
		_, sz := utf8.DecodeRuneInString(e.src[end:hi])
		end += sz
	}
	return &SyntaxError{Col: e.col(start), Text: e.src[start:end], Reason: "invalid number"}
}

// parseNum converts the numeral in s to a float64. The numeral must already
// have been scanned.
func (e *evaluator) parseNum(s span) (float64, error) {
	v, err := strconv.ParseFloat(e.text(s), 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, &RangeError{Col: e.col(s.lo)}
		}
		return 0, &SyntaxError{Col: e.col(s.lo), Text: e.text(s), Reason: "invalid number"}
	}
	return v, nil
}

// literal tries to read all of s as an optionally signed numeral. The second
// result is false if s is not shaped like a numeral at all.
func (e *evaluator) literal(s span) (float64, bool, error) {
	i := s.lo
	if c := e.src[i]; c == '+' || c == '-' {
		i++
	}
	if i >= s.hi || !isNumStart(e.src[i]) {
		return 0, false, nil
	}
	end, err := e.scanNum(i, s.hi)
	if err != nil {
		// The same numeral would start any compound expression.
		return 0, true, err
	}
	if end != s.hi {
		return 0, false, nil
	}
	v, err := e.parseNum(s)
	return v, true, err
}

// scanIdent scans a function name starting at i and returns the offset just
// past it.
func (e *evaluator) scanIdent(i, hi int) int {
	for i < hi {
		r, sz := utf8.DecodeRuneInString(e.src[i:hi])
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		i += sz
	}
	return i
}

func isNumStart(c byte) bool {
	return '0' <= c && c <= '9' || c == '.'
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}
