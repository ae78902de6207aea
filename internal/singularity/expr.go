// Package singularity provides Macaulay bracket expressions <x - a>^n with
// exact coefficients and the calculus rules beam analysis needs.
package singularity

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"sort"
	"strings"

	"github.com/alexiusacademia/gobeam/internal/symbolic"
)

// ErrOrder is returned for bracket orders below -2 and for derivatives that
// would produce one.
var ErrOrder = errors.New("singularity: order must be at least -2")

// Term is Coef·<x - Start>^Order. Order -1 is a point (Dirac) function and
// order -2 a doublet.
type Term struct {
	Coef  symbolic.Poly
	Start *big.Rat
	Order int
}

// Expr is a smooth polynomial in Var plus a sum of bracket terms. The smooth
// part never holds negative powers of Var and term coefficients never hold
// Var at all.
type Expr struct {
	Var    string
	Smooth symbolic.Poly
	Terms  []Term
}

// New returns the zero expression in variable v.
func New(v string) Expr { return Expr{Var: v} }

// Bracket returns coef·<v - start>^order.
func Bracket(v string, coef symbolic.Poly, start *big.Rat, order int) (Expr, error) {
	if order < -2 {
		return Expr{}, fmt.Errorf("%w: got %d", ErrOrder, order)
	}
	if coef.Has(v) {
		return Expr{}, fmt.Errorf("singularity: coefficient %s depends on %s", coef, v)
	}
	e := Expr{Var: v, Terms: []Term{{Coef: coef, Start: new(big.Rat).Set(start), Order: order}}}
	return e.canonical(), nil
}

// Polynomial wraps a smooth polynomial as an expression.
func Polynomial(v string, p symbolic.Poly) Expr { return Expr{Var: v, Smooth: p} }

func (e Expr) canonical() Expr {
	type key struct {
		start string
		order int
	}
	acc := map[key]*Term{}
	var keys []key
	for _, t := range e.Terms {
		k := key{start: t.Start.RatString(), order: t.Order}
		if prev, ok := acc[k]; ok {
			prev.Coef = prev.Coef.Add(t.Coef)
			continue
		}
		c := t
		acc[k] = &c
		keys = append(keys, k)
	}
	out := Expr{Var: e.Var, Smooth: e.Smooth}
	for _, k := range keys {
		if t := acc[k]; !t.Coef.IsZero() {
			out.Terms = append(out.Terms, *t)
		}
	}
	sort.SliceStable(out.Terms, func(i, j int) bool {
		if c := out.Terms[i].Start.Cmp(out.Terms[j].Start); c != 0 {
			return c < 0
		}
		return out.Terms[i].Order > out.Terms[j].Order
	})
	return out
}

func (e Expr) with(o Expr) string {
	if e.Var == "" {
		return o.Var
	}
	return e.Var
}

// Add returns e + o. Both must use the same variable.
func (e Expr) Add(o Expr) Expr {
	out := Expr{Var: e.with(o), Smooth: e.Smooth.Add(o.Smooth)}
	out.Terms = append(append(out.Terms, e.Terms...), o.Terms...)
	return out.canonical()
}

// Sub returns e - o.
func (e Expr) Sub(o Expr) Expr { return e.Add(o.Neg()) }

// Neg returns -e.
func (e Expr) Neg() Expr { return e.mapCoef(func(p symbolic.Poly) symbolic.Poly { return p.Neg() }) }

// Scale multiplies e by c, which must not contain Var.
func (e Expr) Scale(c symbolic.Poly) Expr {
	return e.mapCoef(func(p symbolic.Poly) symbolic.Poly { return p.Mul(c) })
}

// ScaleRat multiplies e by the rational r.
func (e Expr) ScaleRat(r *big.Rat) Expr {
	return e.mapCoef(func(p symbolic.Poly) symbolic.Poly { return p.Scale(r) })
}

func (e Expr) mapCoef(f func(symbolic.Poly) symbolic.Poly) Expr {
	out := Expr{Var: e.Var, Smooth: f(e.Smooth), Terms: make([]Term, 0, len(e.Terms))}
	for _, t := range e.Terms {
		out.Terms = append(out.Terms, Term{Coef: f(t.Coef), Start: t.Start, Order: t.Order})
	}
	return out.canonical()
}

// Integrate returns the antiderivative of e from -infinity, without a
// constant: <x-a>^n becomes <x-a>^(n+1)/(n+1) for n >= 0 and
// <x-a>^(n+1) for n < 0.
func (e Expr) Integrate() Expr {
	out := Expr{Var: e.Var, Smooth: e.Smooth.Integrate(e.Var), Terms: make([]Term, 0, len(e.Terms))}
	for _, t := range e.Terms {
		c := t.Coef
		if t.Order >= 0 {
			c = c.Scale(big.NewRat(1, int64(t.Order+1)))
		}
		out.Terms = append(out.Terms, Term{Coef: c, Start: t.Start, Order: t.Order + 1})
	}
	return out.canonical()
}

// Diff returns de/dx. Differentiating a doublet fails with ErrOrder.
func (e Expr) Diff() (Expr, error) {
	out := Expr{Var: e.Var, Smooth: e.Smooth.Diff(e.Var), Terms: make([]Term, 0, len(e.Terms))}
	for _, t := range e.Terms {
		switch {
		case t.Order == -2:
			return Expr{}, fmt.Errorf("%w: derivative of a doublet", ErrOrder)
		case t.Order > 0:
			out.Terms = append(out.Terms, Term{Coef: t.Coef.Scale(new(big.Rat).SetInt64(int64(t.Order))), Start: t.Start, Order: t.Order - 1})
		default:
			out.Terms = append(out.Terms, Term{Coef: t.Coef, Start: t.Start, Order: t.Order - 1})
		}
	}
	return out.canonical(), nil
}

// Side selects a one-sided limit.
type Side int

const (
	// Right takes the limit from above, so terms starting at the point
	// are included.
	Right Side = iota
	// Left takes the limit from below.
	Left
)

// Limit evaluates the one-sided limit of e at p. Point and doublet terms
// contribute nothing.
func (e Expr) Limit(p *big.Rat, side Side) symbolic.Poly {
	out := e.Smooth.Eval(e.Var, p)
	for _, t := range e.Terms {
		if t.Order < 0 {
			continue
		}
		c := t.Start.Cmp(p)
		if c > 0 || (c == 0 && side == Left) {
			continue
		}
		d := new(big.Rat).Sub(p, t.Start)
		out = out.Add(t.Coef.Scale(ratPow(d, t.Order)))
	}
	return out
}

// Eval returns the right-hand value of e at p.
func (e Expr) Eval(p *big.Rat) symbolic.Poly { return e.Limit(p, Right) }

func ratPow(r *big.Rat, n int) *big.Rat {
	out := big.NewRat(1, 1)
	for i := 0; i < n; i++ {
		out.Mul(out, r)
	}
	return out
}

// Subs substitutes values for symbols in all coefficients. Values must not
// depend on Var.
func (e Expr) Subs(vals map[string]symbolic.Poly) (Expr, error) {
	for n, v := range vals {
		if v.Has(e.Var) {
			return Expr{}, fmt.Errorf("singularity: value of %s depends on %s", n, e.Var)
		}
	}
	smooth, err := e.Smooth.Subs(vals)
	if err != nil {
		return Expr{}, err
	}
	out := Expr{Var: e.Var, Smooth: smooth, Terms: make([]Term, 0, len(e.Terms))}
	for _, t := range e.Terms {
		c, err := t.Coef.Subs(vals)
		if err != nil {
			return Expr{}, err
		}
		out.Terms = append(out.Terms, Term{Coef: c, Start: t.Start, Order: t.Order})
	}
	return out.canonical(), nil
}

// Restrict returns e·<x - from>^0: e switched on at from. Terms that start
// before from are re-expanded about from, so the result stays exact.
func (e Expr) Restrict(from *big.Rat) Expr {
	out := Expr{Var: e.Var}
	x := symbolic.Sym(e.Var)
	shifted, err := e.Smooth.Subs(map[string]symbolic.Poly{e.Var: x.Add(symbolic.Const(from))})
	if err != nil {
		panic("singularity: " + err.Error())
	}
	for k := 0; k <= shifted.Degree(e.Var); k++ {
		if c := shifted.Coeff(e.Var, k); !c.IsZero() {
			out.Terms = append(out.Terms, Term{Coef: c, Start: from, Order: k})
		}
	}
	for _, t := range e.Terms {
		if t.Start.Cmp(from) >= 0 {
			out.Terms = append(out.Terms, t)
			continue
		}
		if t.Order < 0 {
			continue
		}
		d := new(big.Rat).Sub(from, t.Start)
		for k := 0; k <= t.Order; k++ {
			f := new(big.Rat).Mul(binomial(t.Order, k), ratPow(d, t.Order-k))
			out.Terms = append(out.Terms, Term{Coef: t.Coef.Scale(f), Start: from, Order: k})
		}
	}
	return out.canonical()
}

// Window returns e restricted to [from, to).
func (e Expr) Window(from, to *big.Rat) Expr {
	return e.Restrict(from).Sub(e.Restrict(to))
}

func binomial(n, k int) *big.Rat {
	return new(big.Rat).SetInt(new(big.Int).Binomial(int64(n), int64(k)))
}

// Shift returns e(x - by), moving every feature right by by.
func (e Expr) Shift(by *big.Rat) Expr {
	x := symbolic.Sym(e.Var)
	smooth, err := e.Smooth.Subs(map[string]symbolic.Poly{e.Var: x.Sub(symbolic.Const(by))})
	if err != nil {
		panic("singularity: " + err.Error())
	}
	out := Expr{Var: e.Var, Smooth: smooth, Terms: make([]Term, 0, len(e.Terms))}
	for _, t := range e.Terms {
		out.Terms = append(out.Terms, Term{Coef: t.Coef, Start: new(big.Rat).Add(t.Start, by), Order: t.Order})
	}
	return out.canonical()
}

// Breakpoints returns the distinct bracket starts in increasing order.
func (e Expr) Breakpoints() []*big.Rat {
	var out []*big.Rat
	for _, t := range e.Terms {
		if len(out) == 0 || out[len(out)-1].Cmp(t.Start) != 0 {
			out = append(out, t.Start)
		}
	}
	return out
}

// Piece returns the ordinary polynomial in Var that e equals just to the
// right of p, up to the next breakpoint.
func (e Expr) Piece(p *big.Rat) symbolic.Poly {
	out := e.Smooth
	x := symbolic.Sym(e.Var)
	for _, t := range e.Terms {
		if t.Order < 0 || t.Start.Cmp(p) > 0 {
			continue
		}
		b, _ := x.Sub(symbolic.Const(t.Start)).Pow(t.Order)
		out = out.Add(b.Mul(t.Coef))
	}
	return out
}

// IsZero reports whether e is identically zero.
func (e Expr) IsZero() bool { return e.Smooth.IsZero() && len(e.Terms) == 0 }

// Equal reports whether e and o have the same canonical form.
func (e Expr) Equal(o Expr) bool {
	if !e.Smooth.Equal(o.Smooth) || len(e.Terms) != len(o.Terms) {
		return false
	}
	for i, t := range e.Terms {
		u := o.Terms[i]
		if t.Order != u.Order || t.Start.Cmp(u.Start) != 0 || !t.Coef.Equal(u.Coef) {
			return false
		}
	}
	return true
}

// Symbols returns the symbols of e other than Var.
func (e Expr) Symbols() []string {
	seen := map[string]bool{}
	for _, s := range e.Smooth.Symbols() {
		seen[s] = true
	}
	for _, t := range e.Terms {
		for _, s := range t.Coef.Symbols() {
			seen[s] = true
		}
	}
	delete(seen, e.Var)
	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Float evaluates e at x with the given symbol values, using the
// right-continuous convention of Eval.
func (e Expr) Float(x float64, vals map[string]float64) (float64, error) {
	env := make(map[string]float64, len(vals)+1)
	for k, v := range vals {
		env[k] = v
	}
	env[e.Var] = x
	sum, err := e.Smooth.Float(env)
	if err != nil {
		return math.NaN(), err
	}
	for _, t := range e.Terms {
		a, _ := t.Start.Float64()
		if t.Order < 0 || x < a {
			continue
		}
		c, err := t.Coef.Float(env)
		if err != nil {
			return math.NaN(), err
		}
		sum += c * math.Pow(x-a, float64(t.Order))
	}
	return sum, nil
}

// Sample evaluates e at n evenly spaced points on [from, to].
func (e Expr) Sample(from, to float64, n int, vals map[string]float64) ([]float64, []float64, error) {
	if n < 2 {
		n = 2
	}
	xs := make([]float64, n)
	ys := make([]float64, n)
	step := (to - from) / float64(n-1)
	for i := range xs {
		xs[i] = from + float64(i)*step
		if i == n-1 {
			xs[i] = to
		}
		y, err := e.Float(xs[i], vals)
		if err != nil {
			return nil, nil, err
		}
		ys[i] = y
	}
	return xs, ys, nil
}

// String prints e as a sum such as "-P*<x>^-1 + w*<x - 2>^0".
func (e Expr) String() string {
	var parts []string
	if !e.Smooth.IsZero() {
		parts = append(parts, e.Smooth.String())
	}
	for _, t := range e.Terms {
		parts = append(parts, e.formatTerm(t))
	}
	if len(parts) == 0 {
		return "0"
	}
	var sb strings.Builder
	for i, s := range parts {
		switch {
		case i == 0:
			sb.WriteString(s)
		case strings.HasPrefix(s, "-"):
			sb.WriteString(" - ")
			sb.WriteString(s[1:])
		default:
			sb.WriteString(" + ")
			sb.WriteString(s)
		}
	}
	return sb.String()
}

func (e Expr) formatTerm(t Term) string {
	var br string
	switch t.Start.Sign() {
	case 0:
		br = fmt.Sprintf("<%s>^%d", e.Var, t.Order)
	case 1:
		br = fmt.Sprintf("<%s - %s>^%d", e.Var, symbolic.FormatRat(t.Start), t.Order)
	default:
		br = fmt.Sprintf("<%s + %s>^%d", e.Var, symbolic.FormatRat(new(big.Rat).Neg(t.Start)), t.Order)
	}
	switch c := t.Coef.String(); {
	case c == "1":
		return br
	case c == "-1":
		return "-" + br
	case strings.Contains(c, " "):
		return "(" + c + ")*" + br
	default:
		return c + "*" + br
	}
}
