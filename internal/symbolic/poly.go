// Package symbolic implements the exact arithmetic used by the beam solver:
// multivariate Laurent polynomials with rational coefficients and a
// Gauss-Jordan solver for linear systems over them.
//
// Values are immutable. Every operation returns a new Poly and never
// modifies its operands, so a Poly can be shared freely between beams.
package symbolic

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"sort"
	"strconv"
	"strings"
)

// ErrNotInvertible is returned when dividing by a polynomial that has more
// than one term (or is zero); only monomials have inverses in this ring.
var ErrNotInvertible = errors.New("symbolic: polynomial is not invertible")

// UnboundError reports a symbol that has no numeric value during evaluation.
type UnboundError struct {
	Symbol string
}

func (e *UnboundError) Error() string {
	return fmt.Sprintf("value of %s was not passed", e.Symbol)
}

// Factor is a symbol raised to a non-zero integer power.
type Factor struct {
	Name string
	Exp  int
}

// monomial is a product of factors sorted by name.
type monomial []Factor

func (m monomial) key() string {
	var sb strings.Builder
	for i, f := range m {
		if i > 0 {
			sb.WriteByte('*')
		}
		sb.WriteString(f.Name)
		if f.Exp != 1 {
			sb.WriteByte('^')
			sb.WriteString(strconv.Itoa(f.Exp))
		}
	}
	return sb.String()
}

func (m monomial) degree() int {
	d := 0
	for _, f := range m {
		d += f.Exp
	}
	return d
}

func (m monomial) exp(name string) int {
	for _, f := range m {
		if f.Name == name {
			return f.Exp
		}
	}
	return 0
}

func (m monomial) without(name string) monomial {
	out := make(monomial, 0, len(m))
	for _, f := range m {
		if f.Name != name {
			out = append(out, f)
		}
	}
	return out
}

func (m monomial) mul(o monomial) monomial {
	out := make(monomial, 0, len(m)+len(o))
	i, j := 0, 0
	for i < len(m) || j < len(o) {
		switch {
		case j == len(o) || (i < len(m) && m[i].Name < o[j].Name):
			out = append(out, m[i])
			i++
		case i == len(m) || o[j].Name < m[i].Name:
			out = append(out, o[j])
			j++
		default:
			if e := m[i].Exp + o[j].Exp; e != 0 {
				out = append(out, Factor{Name: m[i].Name, Exp: e})
			}
			i++
			j++
		}
	}
	return out
}

func (m monomial) pow(n int) monomial {
	if n == 0 {
		return nil
	}
	out := make(monomial, len(m))
	for i, f := range m {
		out[i] = Factor{Name: f.Name, Exp: f.Exp * n}
	}
	return out
}

type term struct {
	mono monomial
	coef *big.Rat
}

// Poly is a finite sum of rational multiples of monomials. The zero value is
// the zero polynomial.
type Poly struct {
	terms map[string]term
}

// Zero returns the zero polynomial.
func Zero() Poly { return Poly{} }

// Const returns the constant polynomial r.
func Const(r *big.Rat) Poly {
	if r.Sign() == 0 {
		return Poly{}
	}
	return Poly{terms: map[string]term{"": {coef: new(big.Rat).Set(r)}}}
}

// Int returns the constant polynomial n.
func Int(n int64) Poly { return Const(new(big.Rat).SetInt64(n)) }

// Frac returns the constant polynomial p/q.
func Frac(p, q int64) Poly {
	if q == 0 {
		panic("symbolic: denominator is zero")
	}
	return Const(big.NewRat(p, q))
}

// Sym returns the polynomial consisting of the single symbol name.
func Sym(name string) Poly {
	m := monomial{{Name: name, Exp: 1}}
	return Poly{terms: map[string]term{m.key(): {mono: m, coef: big.NewRat(1, 1)}}}
}

// Monomial returns coef times the product of the given factors.
func Monomial(coef *big.Rat, factors ...Factor) Poly {
	p := Const(coef)
	for _, f := range factors {
		if f.Exp == 0 {
			continue
		}
		m := monomial{f}
		p = p.Mul(Poly{terms: map[string]term{m.key(): {mono: m, coef: big.NewRat(1, 1)}}})
	}
	return p
}

func (p Poly) sorted() []term {
	out := make([]term, 0, len(p.terms))
	for _, t := range p.terms {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		di, dj := out[i].mono.degree(), out[j].mono.degree()
		if di != dj {
			return di > dj
		}
		return out[i].mono.key() < out[j].mono.key()
	})
	return out
}

func (p Poly) combine(o Poly, sign int) Poly {
	out := make(map[string]term, len(p.terms)+len(o.terms))
	for k, t := range p.terms {
		out[k] = t
	}
	for k, t := range o.terms {
		c := new(big.Rat).Set(t.coef)
		if sign < 0 {
			c.Neg(c)
		}
		if prev, ok := out[k]; ok {
			c.Add(c, prev.coef)
		}
		if c.Sign() == 0 {
			delete(out, k)
			continue
		}
		out[k] = term{mono: t.mono, coef: c}
	}
	return Poly{terms: out}
}

// Add returns p + o.
func (p Poly) Add(o Poly) Poly { return p.combine(o, 1) }

// Sub returns p - o.
func (p Poly) Sub(o Poly) Poly { return p.combine(o, -1) }

// Neg returns -p.
func (p Poly) Neg() Poly { return Poly{}.combine(p, -1) }

// Scale returns r·p.
func (p Poly) Scale(r *big.Rat) Poly {
	if r.Sign() == 0 {
		return Poly{}
	}
	out := make(map[string]term, len(p.terms))
	for k, t := range p.terms {
		out[k] = term{mono: t.mono, coef: new(big.Rat).Mul(t.coef, r)}
	}
	return Poly{terms: out}
}

// Mul returns p·o.
func (p Poly) Mul(o Poly) Poly {
	out := Poly{}
	for _, a := range p.sorted() {
		for _, b := range o.sorted() {
			m := a.mono.mul(b.mono)
			out = out.Add(Poly{terms: map[string]term{m.key(): {mono: m, coef: new(big.Rat).Mul(a.coef, b.coef)}}})
		}
	}
	return out
}

// Inverse returns 1/p. Only non-zero monomials are invertible.
func (p Poly) Inverse() (Poly, error) {
	if len(p.terms) != 1 {
		return Poly{}, fmt.Errorf("%w: %s", ErrNotInvertible, p)
	}
	var t term
	for _, v := range p.terms {
		t = v
	}
	m := t.mono.pow(-1)
	return Poly{terms: map[string]term{m.key(): {mono: m, coef: new(big.Rat).Inv(t.coef)}}}, nil
}

// Div returns p/o when o is invertible.
func (p Poly) Div(o Poly) (Poly, error) {
	inv, err := o.Inverse()
	if err != nil {
		return Poly{}, err
	}
	return p.Mul(inv), nil
}

// Pow returns p^n. Negative powers require p to be invertible.
func (p Poly) Pow(n int) (Poly, error) {
	base := p
	if n < 0 {
		inv, err := p.Inverse()
		if err != nil {
			return Poly{}, err
		}
		base, n = inv, -n
	}
	out := Int(1)
	for ; n > 0; n-- {
		out = out.Mul(base)
	}
	return out, nil
}

// IsZero reports whether p is identically zero.
func (p Poly) IsZero() bool { return len(p.terms) == 0 }

// IsConst reports whether p contains no symbols.
func (p Poly) IsConst() bool {
	for k := range p.terms {
		if k != "" {
			return false
		}
	}
	return true
}

// Rat returns the value of a constant polynomial.
func (p Poly) Rat() (*big.Rat, bool) {
	if !p.IsConst() {
		return nil, false
	}
	if t, ok := p.terms[""]; ok {
		return new(big.Rat).Set(t.coef), true
	}
	return new(big.Rat), true
}

// Equal reports whether p and o are the same polynomial.
func (p Poly) Equal(o Poly) bool {
	if len(p.terms) != len(o.terms) {
		return false
	}
	for k, t := range p.terms {
		u, ok := o.terms[k]
		if !ok || t.coef.Cmp(u.coef) != 0 {
			return false
		}
	}
	return true
}

// Has reports whether name occurs in p.
func (p Poly) Has(name string) bool {
	for _, t := range p.terms {
		if t.mono.exp(name) != 0 {
			return true
		}
	}
	return false
}

// Symbols returns the sorted names of all symbols in p.
func (p Poly) Symbols() []string {
	seen := map[string]bool{}
	for _, t := range p.terms {
		for _, f := range t.mono {
			seen[f.Name] = true
		}
	}
	out := make([]string, 0, len(seen))
	for n := range seen {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Degree returns the largest power of name in p (0 when absent).
func (p Poly) Degree(name string) int {
	d := 0
	for _, t := range p.terms {
		if e := t.mono.exp(name); e > d {
			d = e
		}
	}
	return d
}

// Coeff returns the coefficient of name^k, i.e. the sum of the terms of p
// containing exactly name^k, with that factor removed.
func (p Poly) Coeff(name string, k int) Poly {
	out := map[string]term{}
	for _, t := range p.terms {
		if t.mono.exp(name) != k {
			continue
		}
		m := t.mono.without(name)
		out[m.key()] = term{mono: m, coef: t.coef}
	}
	return Poly{terms: out}
}

// Subs replaces every symbol in vals by its value simultaneously. A symbol
// raised to a negative power can only be replaced by an invertible value.
func (p Poly) Subs(vals map[string]Poly) (Poly, error) {
	out := Poly{}
	for _, t := range p.sorted() {
		rest := monomial{}
		acc := Const(t.coef)
		for _, f := range t.mono {
			v, ok := vals[f.Name]
			if !ok {
				rest = append(rest, f)
				continue
			}
			pw, err := v.Pow(f.Exp)
			if err != nil {
				return Poly{}, fmt.Errorf("substituting %s: %w", f.Name, err)
			}
			acc = acc.Mul(pw)
		}
		if len(rest) > 0 {
			acc = acc.Mul(Poly{terms: map[string]term{rest.key(): {mono: rest, coef: big.NewRat(1, 1)}}})
		}
		out = out.Add(acc)
	}
	return out, nil
}

// Eval substitutes the rational r for name. It panics if name occurs with a
// negative power and r is zero.
func (p Poly) Eval(name string, r *big.Rat) Poly {
	out, err := p.Subs(map[string]Poly{name: Const(r)})
	if err != nil {
		panic("symbolic: " + err.Error())
	}
	return out
}

// Diff returns the partial derivative of p with respect to name.
func (p Poly) Diff(name string) Poly {
	out := Poly{}
	for _, t := range p.terms {
		e := t.mono.exp(name)
		if e == 0 {
			continue
		}
		m := t.mono.without(name).mul(monomial{{Name: name, Exp: e - 1}}.trim())
		c := new(big.Rat).Mul(t.coef, new(big.Rat).SetInt64(int64(e)))
		out = out.Add(Poly{terms: map[string]term{m.key(): {mono: m, coef: c}}})
	}
	return out
}

// Integrate returns the antiderivative of p with respect to name, without a
// constant. It panics if p contains name^-1, whose antiderivative is not a
// polynomial.
func (p Poly) Integrate(name string) Poly {
	out := Poly{}
	for _, t := range p.terms {
		e := t.mono.exp(name)
		if e == -1 {
			panic("symbolic: cannot integrate " + name + "^-1")
		}
		m := t.mono.without(name).mul(monomial{{Name: name, Exp: e + 1}}.trim())
		c := new(big.Rat).Quo(t.coef, new(big.Rat).SetInt64(int64(e+1)))
		out = out.Add(Poly{terms: map[string]term{m.key(): {mono: m, coef: c}}})
	}
	return out
}

func (m monomial) trim() monomial {
	out := m[:0:0]
	for _, f := range m {
		if f.Exp != 0 {
			out = append(out, f)
		}
	}
	return out
}

// Float evaluates p numerically. Every symbol must have a value in vals.
func (p Poly) Float(vals map[string]float64) (float64, error) {
	sum := 0.0
	for _, t := range p.sorted() {
		v, _ := t.coef.Float64()
		for _, f := range t.mono {
			x, ok := vals[f.Name]
			if !ok {
				return math.NaN(), &UnboundError{Symbol: f.Name}
			}
			v *= math.Pow(x, float64(f.Exp))
		}
		sum += v
	}
	return sum, nil
}

// String returns the canonical text form, e.g. "-3/2*P*x^2 + R_0".
func (p Poly) String() string {
	if p.IsZero() {
		return "0"
	}
	var sb strings.Builder
	for i, t := range p.sorted() {
		s := formatTerm(t)
		if i == 0 {
			sb.WriteString(s)
			continue
		}
		if strings.HasPrefix(s, "-") {
			sb.WriteString(" - ")
			sb.WriteString(s[1:])
		} else {
			sb.WriteString(" + ")
			sb.WriteString(s)
		}
	}
	return sb.String()
}

func formatTerm(t term) string {
	key := t.mono.key()
	c := t.coef
	switch {
	case key == "":
		return FormatRat(c)
	case c.Cmp(big.NewRat(1, 1)) == 0:
		return key
	case c.Cmp(big.NewRat(-1, 1)) == 0:
		return "-" + key
	}
	return FormatRat(c) + "*" + key
}

// FormatRat prints r as an integer when possible and as p/q otherwise.
func FormatRat(r *big.Rat) string {
	if r.IsInt() {
		return r.Num().String()
	}
	return r.RatString()
}
