package arith

import (
	"strings"
	"unicode/utf8"
)

// Expr = '(' Expr ')' | num | funcname '(' Expr ')' | Compound
// Compound = Operand { op Operand }
// Operand = [ '-' ] ( num | '(' Expr ')' | funcname '(' Expr ')' )
// op = '+' | '-' | '*' | '/'
//
// The alternatives of Expr are tried in that order. A whole-expression num
// may carry a sign of either kind; inside a Compound, only '-' may prefix an
// operand.

// expr evaluates the subexpression viewed by s.
func (e *evaluator) expr(s span) (*Result, error) {
	s = e.trim(s)
	// Strip redundant brackets, but not those of e.g. (1+2)*(3+4).
	for e.wrapped(s) {
		s = e.trim(span{s.lo + 1, s.hi - 1})
	}
	if err := e.balance(s); err != nil {
		return nil, err
	}
	if v, ok, err := e.literal(s); ok {
		if err != nil {
			return nil, err
		}
		return &Result{Value: v, Operands: []float64{v}}, nil
	}
	if r, ok, err := e.call(s); ok {
		return r, err
	}
	if !strings.ContainsAny(e.text(s), Operators) {
		return nil, &SyntaxError{Col: e.col(s.lo), Text: e.text(s), Reason: "unrecognized expression"}
	}
	return e.compound(s)
}

// call evaluates s if it has the shape funcname '(' Expr ')' spanning all of
// s. The second result is false if s has some other shape.
func (e *evaluator) call(s span) (*Result, bool, error) {
	r, sz := utf8.DecodeRuneInString(e.text(s))
	if !isIdentStart(r) {
		return nil, false, nil
	}
	open := e.scanIdent(s.lo+sz, s.hi)
	if open >= s.hi || e.src[open] != '(' || e.closing(open, s.hi) != s.hi-1 {
		return nil, false, nil
	}
	res, err := e.apply(s.lo, open, s.hi)
	return res, true, err
}

// apply evaluates the function named by src[name:open] on the bracketed
// argument src[open:end]. The result carries the argument's trace.
func (e *evaluator) apply(name, open, end int) (*Result, error) {
	fname := e.src[name:open]
	fn, ok := globalfuncs[fname]
	if !ok {
		return nil, &SyntaxError{Col: e.col(name), Text: fname, Reason: "unknown function"}
	}
	arg, err := e.expr(span{open, end})
	if err != nil {
		return nil, err
	}
	v, ok := fn.Call(arg.Value)
	if !ok {
		return nil, &DomainError{Col: e.col(name), Func: fname, X: arg.Value}
	}
	arg.Value = v
	return arg, nil
}

// compound tokenizes s into operands and binary operators, then folds them.
// Bracketed groups and function calls are evaluated as they are scanned and
// become single operands.
func (e *evaluator) compound(s span) (*Result, error) {
	var (
		operands  []float64
		operators []Op
		// offs holds the byte offset of each operator.
		offs []int
		// signed is set once a '-' prefixes the operand being scanned.
		signed bool
		// want is whether the next token must be an operand.
		want = true
	)
	i := s.lo
	for {
		i = e.skipSpace(i, s.hi)
		if i >= s.hi {
			break
		}
		c := e.src[i]
		if !want {
			if strings.IndexByte(Operators, c) < 0 {
				return nil, e.unexpected(i, s.hi, "expected operator before")
			}
			operators = append(operators, Op(c))
			offs = append(offs, i)
			want = true
			i++
			continue
		}
		switch c {
		case '-':
			if !signed {
				signed = true
				i++
				continue
			}
			fallthrough
		case '+', '*', '/', ')':
			return nil, e.unexpected(i, s.hi, "expected operand before")
		}
		v, end, err := e.operand(i, s.hi)
		if err != nil {
			return nil, err
		}
		if signed {
			v = -v
			signed = false
		}
		operands = append(operands, v)
		want = false
		i = end
	}
	if want {
		return nil, &SyntaxError{Col: e.col(s.hi), Reason: "missing operand at end"}
	}
	return e.fold(operands, operators, offs)
}

// operand evaluates the operand starting at i and returns its value and the
// offset just past it.
func (e *evaluator) operand(i, hi int) (float64, int, error) {
	c := e.src[i]
	switch {
	case isNumStart(c):
		end, err := e.scanNum(i, hi)
		if err != nil {
			return 0, end, err
		}
		v, err := e.parseNum(span{i, end})
		return v, end, err
	case c == '(':
		end := e.closing(i, hi)
		if end < 0 {
			return 0, hi, &SyntaxError{Col: e.col(i), Text: "(", Reason: "open bracket with no close bracket"}
		}
		r, err := e.expr(span{i, end + 1})
		if err != nil {
			return 0, end + 1, err
		}
		return r.Value, end + 1, nil
	}
	r, sz := utf8.DecodeRuneInString(e.src[i:hi])
	if !isIdentStart(r) {
		return 0, i + sz, &SyntaxError{Col: e.col(i), Text: string(r), Reason: "invalid character"}
	}
	open := e.scanIdent(i+sz, hi)
	if open >= hi || e.src[open] != '(' {
		if _, ok := globalfuncs[e.src[i:open]]; ok {
			return 0, open, &SyntaxError{Col: e.col(i), Text: e.src[i:open], Reason: "missing bracketed argument to function"}
		}
		return 0, open, &SyntaxError{Col: e.col(i), Text: e.src[i:open], Reason: "unknown name"}
	}
	end := e.closing(open, hi)
	if end < 0 {
		return 0, hi, &SyntaxError{Col: e.col(open), Text: "(", Reason: "open bracket with no close bracket"}
	}
	res, err := e.apply(i, open, end+1)
	if err != nil {
		return 0, end + 1, err
	}
	return res.Value, end + 1, nil
}

// unexpected creates an error for the token at i.
func (e *evaluator) unexpected(i, hi int, reason string) error {
	_, sz := utf8.DecodeRuneInString(e.src[i:hi])
	return &SyntaxError{Col: e.col(i), Text: e.src[i : i+sz], Reason: reason}
}
