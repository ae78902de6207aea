package symbolic

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNonLinear is returned when an equation is not linear in the unknowns.
var ErrNonLinear = errors.New("symbolic: equation is not linear in the unknowns")

// SolveError describes a linear system without a unique solution.
type SolveError struct {
	// Unresolved lists unknowns left free by the equations.
	Unresolved []string
	// Inconsistent lists the indices of equations that reduce to a
	// non-zero constant.
	Inconsistent []int
}

func (e *SolveError) Error() string {
	var parts []string
	if len(e.Unresolved) > 0 {
		parts = append(parts, "cannot determine "+strings.Join(e.Unresolved, ", "))
	}
	if len(e.Inconsistent) > 0 {
		parts = append(parts, fmt.Sprintf("%d inconsistent equation(s)", len(e.Inconsistent)))
	}
	return "symbolic: " + strings.Join(parts, "; ")
}

type row struct {
	coef []Poly
	rhs  Poly
}

// SolveLinear solves eqs, each read as eq = 0, for the unknowns by
// Gauss-Jordan elimination over exact polynomials. Pivots must be
// invertible; numeric pivots are preferred.
//
// When some unknowns stay free the returned error is a *SolveError and the
// map still holds every determined unknown, expressed in terms of the free
// ones. Inconsistent systems return a *SolveError and a nil map.
func SolveLinear(eqs []Poly, unknowns []string) (map[string]Poly, error) {
	col := make(map[string]int, len(unknowns))
	for i, u := range unknowns {
		col[u] = i
	}

	rows := make([]row, 0, len(eqs))
	for _, eq := range eqs {
		r := row{coef: make([]Poly, len(unknowns))}
		for _, t := range eq.sorted() {
			hit, at := 0, -1
			for _, f := range t.mono {
				if c, ok := col[f.Name]; ok {
					hit++
					if f.Exp == 1 {
						at = c
					}
				}
			}
			single := Poly{terms: map[string]term{t.mono.key(): t}}
			switch {
			case hit == 0:
				r.rhs = r.rhs.Sub(single)
			case hit == 1 && at >= 0:
				m := t.mono.without(unknowns[at])
				r.coef[at] = r.coef[at].Add(Poly{terms: map[string]term{m.key(): {mono: m, coef: t.coef}}})
			default:
				return nil, fmt.Errorf("%w: %s", ErrNonLinear, eq)
			}
		}
		rows = append(rows, r)
	}

	pivots := make([]int, 0, len(unknowns))
	next := 0
	for c := range unknowns {
		p := -1
		nonZero := false
		for i := next; i < len(rows); i++ {
			a := rows[i].coef[c]
			if a.IsZero() {
				continue
			}
			nonZero = true
			if len(a.terms) != 1 {
				continue
			}
			if a.IsConst() {
				p = i
				break
			}
			if p < 0 {
				p = i
			}
		}
		if p < 0 {
			if nonZero {
				return nil, fmt.Errorf("%w: no usable pivot for %s", ErrNotInvertible, unknowns[c])
			}
			continue
		}
		rows[next], rows[p] = rows[p], rows[next]
		pr := &rows[next]
		inv, _ := pr.coef[c].Inverse()
		for j := range pr.coef {
			pr.coef[j] = pr.coef[j].Mul(inv)
		}
		pr.rhs = pr.rhs.Mul(inv)
		for i := range rows {
			if i == next || rows[i].coef[c].IsZero() {
				continue
			}
			f := rows[i].coef[c]
			for j := range rows[i].coef {
				rows[i].coef[j] = rows[i].coef[j].Sub(f.Mul(pr.coef[j]))
			}
			rows[i].rhs = rows[i].rhs.Sub(f.Mul(pr.rhs))
		}
		pivots = append(pivots, c)
		next++
	}

	serr := &SolveError{}
	for i := next; i < len(rows); i++ {
		if !rows[i].rhs.IsZero() {
			serr.Inconsistent = append(serr.Inconsistent, i)
		}
	}
	if len(serr.Inconsistent) > 0 {
		return nil, serr
	}

	pivoted := make(map[int]bool, len(pivots))
	for _, c := range pivots {
		pivoted[c] = true
	}
	for c, u := range unknowns {
		if !pivoted[c] {
			serr.Unresolved = append(serr.Unresolved, u)
		}
	}

	out := make(map[string]Poly, len(pivots))
	for i, c := range pivots {
		v := rows[i].rhs
		for j, a := range rows[i].coef {
			if j != c && !a.IsZero() {
				v = v.Sub(a.Mul(Sym(unknowns[j])))
			}
		}
		out[unknowns[c]] = v
	}
	if len(serr.Unresolved) > 0 {
		return out, serr
	}
	return out, nil
}
