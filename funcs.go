package arith

import "math"

// Func is a function from reals to reals that may be applied by name to a
// bracketed argument, e.g. "sqrt(2)".
type Func struct {
	// f computes the function.
	f func(float64) float64
	// ok reports whether x is in the function's domain.
	ok func(float64) bool
}

// Call applies the function to x. The second result is false if x is outside
// the function's domain.
func (fn Func) Call(x float64) (float64, bool) {
	if !fn.ok(x) {
		return 0, false
	}
	return fn.f(x), true
}

var globalfuncs = map[string]Func{
	// log is the natural logarithm.
	"log": {
		f:  math.Log,
		ok: func(x float64) bool { return x > 0 },
	},
	"sqrt": {
		f:  math.Sqrt,
		ok: func(x float64) bool { return x >= 0 },
	},
}

// Funcs returns the names of the functions the evaluator recognizes.
func Funcs() []string {
	names := make([]string, 0, len(globalfuncs))
	for k := range globalfuncs {
		names = append(names, k)
	}
	sortstrs(names)
	return names
}

// sortstrs sorts a string slice without using package sort because that has
// reflection and allocation problems.
func sortstrs(names []string) {
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
}
