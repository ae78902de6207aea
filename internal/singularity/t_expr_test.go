package singularity

import (
	"errors"
	"math/big"
	"testing"

	"github.com/alexiusacademia/gobeam/internal/symbolic"
	"github.com/cpmech/gosl/chk"
)

func rat(p, q int64) *big.Rat { return big.NewRat(p, q) }

func bracket(tst *testing.T, coef string, start *big.Rat, order int) Expr {
	e, err := Bracket("x", symbolic.MustParse(coef), start, order)
	if err != nil {
		tst.Fatalf("bracket: %v", err)
	}
	return e
}

func Test_expr01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("expr01. canonical form and text")

	e := bracket(tst, "-P", rat(0, 1), -1).
		Add(bracket(tst, "w", rat(2, 1), 0)).
		Add(bracket(tst, "P", rat(0, 1), -1)).
		Add(bracket(tst, "3", rat(-1, 2), 1))
	chk.String(tst, e.String(), "3*<x + 1/2>^1 + w*<x - 2>^0")
	chk.Int(tst, "terms", len(e.Terms), 2)

	_, err := Bracket("x", symbolic.Int(1), rat(0, 1), -3)
	if !errors.Is(err, ErrOrder) {
		tst.Errorf("expected ErrOrder, got %v", err)
	}
	chk.String(tst, New("x").String(), "0")
}

func Test_expr02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("expr02. integration ladder")

	m := bracket(tst, "M", rat(1, 1), -2)
	chk.String(tst, m.Integrate().String(), "M*<x - 1>^-1")
	chk.String(tst, m.Integrate().Integrate().String(), "M*<x - 1>^0")
	chk.String(tst, m.Integrate().Integrate().Integrate().String(), "M*<x - 1>^1")

	w := bracket(tst, "6", rat(0, 1), 1)
	chk.String(tst, w.Integrate().String(), "3*<x>^2")

	d, err := w.Integrate().Diff()
	if err != nil {
		tst.Errorf("diff failed: %v", err)
		return
	}
	if !d.Equal(w) {
		tst.Errorf("diff of integral: got %s, want %s", d, w)
	}
	if _, err = m.Diff(); !errors.Is(err, ErrOrder) {
		tst.Errorf("expected ErrOrder, got %v", err)
	}
}

func Test_expr03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("expr03. one-sided limits")

	// step of height 5 at x = 2 plus a ramp from 0
	e := bracket(tst, "5", rat(2, 1), 0).Add(bracket(tst, "1", rat(0, 1), 1)).Add(bracket(tst, "9", rat(2, 1), -1))
	chk.String(tst, e.Limit(rat(2, 1), Left).String(), "2")
	chk.String(tst, e.Limit(rat(2, 1), Right).String(), "7")
	chk.String(tst, e.Eval(rat(3, 1)).String(), "8")

	v, err := e.Float(2, nil)
	if err != nil {
		tst.Errorf("float failed: %v", err)
		return
	}
	chk.Float64(tst, "right continuous", 1e-15, v, 7)
}

func Test_expr04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("expr04. restrict, window and shift")

	// x^2 + <x - 1>^2 switched on at 3
	e := Polynomial("x", symbolic.MustParse("x^2")).Add(bracket(tst, "1", rat(1, 1), 2))
	r := e.Restrict(rat(3, 1))
	for _, x := range []float64{0, 2.9, 3, 4.5, 10} {
		want := 0.0
		if x >= 3 {
			want = x*x + (x-1)*(x-1)
		}
		got, err := r.Float(x, nil)
		if err != nil {
			tst.Errorf("float failed: %v", err)
			return
		}
		chk.Float64(tst, "restricted", 1e-12, got, want)
	}

	w := e.Window(rat(1, 1), rat(2, 1))
	got, _ := w.Float(1.5, nil)
	chk.Float64(tst, "inside window", 1e-12, got, 2.25+0.25)
	got, _ = w.Float(2.5, nil)
	chk.Float64(tst, "past window", 1e-12, got, 0)

	s := bracket(tst, "1", rat(0, 1), 1).Add(Polynomial("x", symbolic.MustParse("x"))).Shift(rat(2, 1))
	chk.String(tst, s.String(), "x - 2 + <x - 2>^1")
}

func Test_expr05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("expr05. pieces, substitution and breakpoints")

	e := bracket(tst, "w", rat(0, 1), 0).Sub(bracket(tst, "w", rat(4, 1), 0)).Add(bracket(tst, "-P", rat(2, 1), -1))
	chk.String(tst, e.Piece(rat(1, 1)).String(), "w")
	chk.String(tst, e.Piece(rat(5, 1)).String(), "0")

	bps := e.Breakpoints()
	chk.Int(tst, "breakpoints", len(bps), 3)
	chk.String(tst, bps[1].RatString(), "2")

	s, err := e.Subs(map[string]symbolic.Poly{"w": symbolic.Int(3)})
	if err != nil {
		tst.Errorf("subs failed: %v", err)
		return
	}
	chk.Strings(tst, "symbols", s.Symbols(), []string{"P"})
	if _, err = e.Subs(map[string]symbolic.Poly{"w": symbolic.Sym("x")}); err == nil {
		tst.Errorf("substituting the variable into a coefficient should fail")
	}

	xs, ys, err := s.Sample(0, 4, 5, map[string]float64{"P": 1})
	if err != nil {
		tst.Errorf("sample failed: %v", err)
		return
	}
	chk.Array(tst, "xs", 1e-15, xs, []float64{0, 1, 2, 3, 4})
	chk.Array(tst, "ys", 1e-15, ys, []float64{3, 3, 3, 3, 0})
}
