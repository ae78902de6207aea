package beam

import (
	"math"
	"math/big"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/alexiusacademia/gobeam/internal/singularity"
	"github.com/alexiusacademia/gobeam/internal/symbolic"
)

// Extremum is the largest absolute value of a curve and where it occurs
type Extremum struct {
	Location float64
	Value    float64 // absolute value
	// Span is set when the curve holds Value over a whole interval
	Span []float64
}

// MaxShearForce returns the maximum absolute shear force
func (b *Beam) MaxShearForce(vals Values) (Extremum, error) {
	return b.maxAbs(b.ShearForce(), vals)
}

// MaxBendingMoment returns the maximum absolute bending moment
func (b *Beam) MaxBendingMoment(vals Values) (Extremum, error) {
	return b.maxAbs(b.BendingMoment(), vals)
}

// MaxDeflection returns the maximum absolute deflection, checking points of
// zero slope as well as both ends and every kink.
func (b *Beam) MaxDeflection(vals Values) (Extremum, error) {
	d, err := b.Deflection()
	if err != nil {
		return Extremum{}, err
	}
	return b.maxAbs(d, vals)
}

// ContraflexurePoints returns the positions in (0, L) where the bending
// moment is zero, in increasing order.
func (b *Beam) ContraflexurePoints(vals Values) ([]float64, error) {
	m, err := numeric(b.BendingMoment(), vals)
	if err != nil {
		return nil, err
	}
	length, _ := b.length.Float64()
	eps := 1e-9 * math.Max(1, length)
	var out []float64
	points := intervals(m, b.length)
	for i := 0; i+1 < len(points); i++ {
		piece := m.Piece(points[i])
		if piece.IsZero() {
			continue
		}
		lo, _ := points[i].Float64()
		hi, _ := points[i+1].Float64()
		for _, r := range realRoots(coefficients(piece, m.Var)) {
			if r < lo-eps || r > hi+eps || r <= eps || r >= length-eps {
				continue
			}
			out = append(out, r)
		}
	}
	sort.Float64s(out)
	dedup := out[:0]
	for _, r := range out {
		if len(dedup) == 0 || r-dedup[len(dedup)-1] > eps {
			dedup = append(dedup, r)
		}
	}
	return dedup, nil
}

// maxAbs scans every interval between breakpoints. Candidates are both
// one-sided endpoint values and the stationary points inside the interval.
// A constant interval is reported as a span.
func (b *Beam) maxAbs(curve singularity.Expr, vals Values) (Extremum, error) {
	c, err := numeric(curve, vals)
	if err != nil {
		return Extremum{}, err
	}
	best := Extremum{Value: -1}
	consider := func(x, y float64, span []float64) {
		if math.IsNaN(y) || math.IsInf(y, 0) {
			return
		}
		if a := math.Abs(y); a > best.Value {
			best = Extremum{Location: x, Value: a, Span: span}
		}
	}
	points := intervals(c, b.length)
	for i := 0; i+1 < len(points); i++ {
		a, z := points[i], points[i+1]
		lo, _ := a.Float64()
		hi, _ := z.Float64()
		piece := c.Piece(a)
		coef := coefficients(piece, c.Var)
		ya := ratFloat(c.Limit(a, singularity.Right))
		yz := ratFloat(c.Limit(z, singularity.Left))
		if piece.Degree(c.Var) == 0 {
			consider(lo, ya, []float64{lo, hi})
			continue
		}
		consider(lo, ya, nil)
		consider(hi, yz, nil)
		for _, r := range realRoots(derivative(coef)) {
			if r > lo && r < hi {
				consider(r, horner(coef, r), nil)
			}
		}
	}
	if best.Value < 0 {
		return Extremum{}, ErrNoExtremum
	}
	b.log.Debug("extremum", "location", best.Location, "value", best.Value)
	return best, nil
}

// numeric substitutes vals into every coefficient and fails with
// MissingValueError when a symbol other than the variable remains.
func numeric(e singularity.Expr, vals Values) (singularity.Expr, error) {
	subs := make(map[string]symbolic.Poly, len(vals))
	for k, v := range vals {
		if k == e.Var {
			continue
		}
		r := new(big.Rat)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return e, configErrorf("value of %s is not finite", k)
		}
		r.SetFloat64(v)
		subs[k] = symbolic.Const(r)
	}
	out, err := e.Subs(subs)
	if err != nil {
		return e, err
	}
	if syms := out.Symbols(); len(syms) > 0 {
		return e, &MissingValueError{Symbol: syms[0]}
	}
	return out, nil
}

// intervals returns 0, L and every breakpoint strictly between them
func intervals(e singularity.Expr, length *big.Rat) []*big.Rat {
	out := []*big.Rat{new(big.Rat)}
	for _, p := range e.Breakpoints() {
		if p.Sign() > 0 && p.Cmp(length) < 0 {
			out = append(out, p)
		}
	}
	return append(out, length)
}

// coefficients lists the coefficients of a numeric polynomial by ascending power
func coefficients(p symbolic.Poly, v string) []float64 {
	n := p.Degree(v)
	out := make([]float64, n+1)
	for k := 0; k <= n; k++ {
		out[k] = ratFloat(p.Coeff(v, k))
	}
	return out
}

func ratFloat(p symbolic.Poly) float64 {
	r, ok := p.Rat()
	if !ok {
		return math.NaN()
	}
	f, _ := r.Float64()
	return f
}

func derivative(c []float64) []float64 {
	if len(c) <= 1 {
		return nil
	}
	out := make([]float64, len(c)-1)
	for k := 1; k < len(c); k++ {
		out[k-1] = float64(k) * c[k]
	}
	return out
}

func horner(c []float64, x float64) float64 {
	y := 0.0
	for k := len(c) - 1; k >= 0; k-- {
		y = y*x + c[k]
	}
	return y
}

// realRoots returns the real roots of the polynomial with ascending
// coefficients c. Degrees above one use the eigenvalues of the companion
// matrix, refined by Newton steps.
func realRoots(c []float64) []float64 {
	n := len(c) - 1
	for n > 0 && c[n] == 0 {
		n--
	}
	switch n {
	case -1, 0:
		return nil
	case 1:
		return []float64{-c[0] / c[1]}
	}

	a := mat.NewDense(n, n, nil)
	for j := 0; j < n; j++ {
		a.Set(0, j, -c[n-1-j]/c[n])
	}
	for i := 1; i < n; i++ {
		a.Set(i, i-1, 1)
	}
	var eig mat.Eigen
	if ok := eig.Factorize(a, mat.EigenNone); !ok {
		return nil
	}
	d := derivative(c[:n+1])
	var out []float64
	for _, z := range eig.Values(nil) {
		if math.Abs(imag(z)) > 1e-7*(1+math.Abs(real(z))) {
			continue
		}
		r := real(z)
		for k := 0; k < 3; k++ {
			f, s := horner(c[:n+1], r), horner(d, r)
			if s == 0 {
				break
			}
			next := r - f/s
			if math.Abs(horner(c[:n+1], next)) >= math.Abs(f) {
				break
			}
			r = next
		}
		out = append(out, r)
	}
	sort.Float64s(out)
	return out
}
