package arith_test

import (
	"errors"
	"strconv"
	"testing"

	"github.com/zephyrtronium/arith"
)

func FuzzEval(f *testing.F) {
	f.Add("1+2*3-4/5")
	f.Add("-(1+2)")
	f.Add("((1))")
	f.Add("sqrt(log(2)+1)")
	f.Add("1*/2")
	f.Add("(1+2")
	f.Fuzz(func(t *testing.T, s string) {
		r, err := arith.Eval(s)
		if err != nil {
			if !errors.Is(err, arith.ErrInvalidExpression) {
				t.Fatalf("%q: error %#v is not ErrInvalidExpression", s, err)
			}
			return
		}
		// Printed results evaluate to themselves.
		p := strconv.FormatFloat(r.Value, 'g', -1, 64)
		v, err := arith.EvalFloat(p)
		if err != nil {
			t.Fatalf("%q gave %v, which fails to evaluate: %v", s, r.Value, err)
		}
		if v != r.Value {
			t.Fatalf("%q gave %v, which evaluates to %v", s, r.Value, v)
		}
	})
}
