package arith

import (
	"testing"
)

func TestScanNum(t *testing.T) {
	cases := []struct {
		src string
		end int
		err bool
	}{
		{"0", 1, false},
		{"9876543210", 10, false},
		{"1 0", 1, false},
		{"1.0", 3, false},
		{"1.", 2, false},
		{".1", 2, false},
		{".", 1, true},
		{"1e1", 3, false},
		{"1e", 2, true},
		{"1e+1", 4, false},
		{"1e-1", 4, false},
		{"1e+", 3, true},
		{"1ee", 2, true},
		{"1.1.1", 3, true},
		{"1.0e1", 5, false},
		{"1e1.0", 3, true},
		{".1e1", 4, false},
		{"1+0", 1, false},
		{"1-0", 1, false},
		{"1e2-0", 3, false},
		{"1*0", 1, false},
		{"1/0", 1, false},
		{"1)", 1, false},
		{"1(", 1, false},
		{"1\t", 1, false},
		{"1 ", 1, false},
		{"1a", 1, true},
		{"1$", 1, true},
		{"1π", 1, true},
	}
	for _, c := range cases {
		e := evaluator{src: c.src}
		end, err := e.scanNum(0, len(c.src))
		if (err != nil) != c.err {
			t.Errorf("scanning %q: wrong error: %v", c.src, err)
			continue
		}
		if err != nil {
			if _, ok := err.(*SyntaxError); !ok {
				t.Errorf("scanning %q: %#v is not *SyntaxError", c.src, err)
			}
			continue
		}
		if end != c.end {
			t.Errorf("scanning %q: want end %d, got %d", c.src, c.end, end)
		}
	}
}

func TestWrapped(t *testing.T) {
	cases := []struct {
		src  string
		want bool
	}{
		{"(1)", true},
		{"((1))", true},
		{"()", true},
		{"(1+2)*(3+4)", false},
		{"(1)+(2)", false},
		{"(()", false},
		{"(", false},
		{")", false},
		{"1", false},
		{"-(1)", false},
		{"sqrt(1)", false},
	}
	for _, c := range cases {
		e := evaluator{src: c.src}
		if got := e.wrapped(span{0, len(c.src)}); got != c.want {
			t.Errorf("%q: want %t, got %t", c.src, c.want, got)
		}
	}
}

func TestBalance(t *testing.T) {
	cases := []struct {
		src string
		col int
	}{
		{"1", 0},
		{"(1)", 0},
		{"(1)(2)", 0},
		{"((1)+(2))", 0},
		{"", 1},
		{"(", 1},
		{")", 1},
		{"(1))", 4},
		{"((1)", 1},
		{"(1)((2)", 4},
		{")(", 1},
	}
	for _, c := range cases {
		e := evaluator{src: c.src}
		err := e.balance(span{0, len(c.src)})
		if c.col == 0 {
			if err != nil {
				t.Errorf("%q: unexpected error %v", c.src, err)
			}
			continue
		}
		if err == nil {
			t.Errorf("%q: no error", c.src)
			continue
		}
		if p := err.(InputError).Pos(); p != c.col {
			t.Errorf("%q: want error at %d, got %d", c.src, c.col, p)
		}
	}
}

func TestTrim(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"1", "1"},
		{" 1 ", "1"},
		{"\t\n1 + 2\r\n", "1 + 2"},
		{"  1　", "1"},
	}
	for _, c := range cases {
		e := evaluator{src: c.src}
		if got := e.text(e.trim(span{0, len(c.src)})); got != c.want {
			t.Errorf("%q: want %q, got %q", c.src, c.want, got)
		}
	}
}

func TestCol(t *testing.T) {
	e := evaluator{src: "αβ+γ"}
	cases := []struct {
		off, col int
	}{
		{0, 1},
		{2, 2},
		{4, 3},
		{5, 4},
	}
	for _, c := range cases {
		if got := e.col(c.off); got != c.col {
			t.Errorf("offset %d: want column %d, got %d", c.off, c.col, got)
		}
	}
}

func TestFuncDomains(t *testing.T) {
	cases := []struct {
		name string
		x    float64
		ok   bool
	}{
		{"log", 1, true},
		{"log", 1e-300, true},
		{"log", 0, false},
		{"log", -1, false},
		{"sqrt", 0, true},
		{"sqrt", 4, true},
		{"sqrt", -1e-300, false},
	}
	for _, c := range cases {
		fn, ok := globalfuncs[c.name]
		if !ok {
			t.Fatalf("no function %s", c.name)
		}
		if _, ok := fn.Call(c.x); ok != c.ok {
			t.Errorf("%s(%g): want ok=%t, got %t", c.name, c.x, c.ok, ok)
		}
	}
}
