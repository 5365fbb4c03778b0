package arith

import (
	"math"
	"strconv"
	"strings"
)

// Op is a binary operator.
type Op byte

const (
	OpAdd Op = '+'
	OpSub Op = '-'
	OpMul Op = '*'
	OpDiv Op = '/'
)

func (op Op) String() string {
	return string(rune(op))
}

// Result is the outcome of evaluating an expression.
type Result struct {
	// Value is the value of the expression.
	Value float64
	// Operands is the list of operands summed to produce Value, after folding
	// signs, multiplications, and divisions, in left-to-right order. For a
	// lone number, it is that number. For a function call or a bracketed
	// expression, it is the trace of the argument.
	Operands []float64
	// Operators is the list of + and - operators applied between Operands,
	// in order.
	Operators []Op
}

// String formats the result as its value followed by its trace, e.g.
// "6.2 [1 6 0.8] [+ -]".
func (r *Result) String() string {
	var b strings.Builder
	b.WriteString(formatFloat(r.Value))
	b.WriteString(" [")
	for i, v := range r.Operands {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(formatFloat(v))
	}
	b.WriteString("] [")
	for i, op := range r.Operators {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteByte(byte(op))
	}
	b.WriteByte(']')
	return b.String()
}

// formatFloat formats v so that evaluating the result gives v again.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Eval evaluates an arithmetic expression. If the expression is malformed,
// divides by zero, applies a function outside its domain, or overflows, the
// result is nil and the error satisfies errors.Is(err, ErrInvalidExpression).
//
// Eval is safe to call concurrently.
func Eval(src string) (*Result, error) {
	e := evaluator{src: src}
	return e.expr(span{0, len(src)})
}

// EvalFloat is a shortcut to evaluate an expression and return only its
// value.
func EvalFloat(src string) (float64, error) {
	r, err := Eval(src)
	if err != nil {
		return 0, err
	}
	return r.Value, nil
}

// fold evaluates a flat list of operands and the binary operators between
// them. offs holds the byte offset of each operator. The lists are collapsed
// in place: first each * and / is folded into its left operand, then the
// remaining + and - are applied left to right.
func (e *evaluator) fold(operands []float64, operators []Op, offs []int) (*Result, error) {
	// Writes through ops and opoffs never pass the index being read.
	w := 0
	ops := operators[:0]
	opoffs := offs[:0]
	for k, op := range operators {
		r := operands[k+1]
		switch op {
		case OpMul:
			operands[w] *= r
		case OpDiv:
			if r == 0 {
				return nil, &DomainError{Col: e.col(offs[k]), Func: "/", X: r}
			}
			operands[w] /= r
		default:
			ops = append(ops, op)
			opoffs = append(opoffs, offs[k])
			w++
			operands[w] = r
			continue
		}
		if !finite(operands[w]) {
			return nil, &RangeError{Col: e.col(offs[k]), Op: op.String()}
		}
	}
	operands = operands[:w+1]

	total := operands[0]
	for k, op := range ops {
		switch op {
		case OpAdd:
			total += operands[k+1]
		case OpSub:
			total -= operands[k+1]
		default:
			panic("arith: unfolded operator " + op.String())
		}
		if !finite(total) {
			return nil, &RangeError{Col: e.col(opoffs[k]), Op: op.String()}
		}
	}
	if len(ops) == 0 {
		ops = nil
	}
	return &Result{Value: total, Operands: operands, Operators: ops}, nil
}

func finite(x float64) bool {
	return !math.IsInf(x, 0) && !math.IsNaN(x)
}
