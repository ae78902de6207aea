package beam

import (
	"errors"
	"math/big"

	"github.com/alexiusacademia/gobeam/internal/singularity"
	"github.com/alexiusacademia/gobeam/internal/symbolic"
)

// ShearForce returns -∫load dx
func (b *Beam) ShearForce() singularity.Expr {
	return b.Load().Integrate().Neg()
}

// BendingMoment returns ∫shear dx
func (b *Beam) BendingMoment() singularity.Expr {
	return b.ShearForce().Integrate()
}

// Slope returns the slope curve. Constants that the boundary conditions do
// not pin remain as symbols.
func (b *Beam) Slope() (singularity.Expr, error) {
	s, _, err := b.elastic()
	return s, err
}

// Deflection returns the deflection curve. Constants that the boundary
// conditions do not pin remain as symbols.
func (b *Beam) Deflection() (singularity.Expr, error) {
	_, d, err := b.elastic()
	return d, err
}

// ShearStress returns shear force divided by the cross-sectional area
func (b *Beam) ShearStress() (singularity.Expr, error) {
	inv, err := b.area.Inverse()
	if err != nil {
		return singularity.Expr{}, configErrorf("cross-sectional area %s must be a single non-zero term", b.area)
	}
	return b.ShearForce().Scale(inv), nil
}

// SlopeAt evaluates the slope at x
func (b *Beam) SlopeAt(x float64, vals Values) (float64, error) {
	s, err := b.Slope()
	if err != nil {
		return 0, err
	}
	return s.Float(x, vals)
}

// DeflectionAt evaluates the deflection at x
func (b *Beam) DeflectionAt(x float64, vals Values) (float64, error) {
	d, err := b.Deflection()
	if err != nil {
		return 0, err
	}
	return d.Float(x, vals)
}

func (b *Beam) elastic() (slope, defl singularity.Expr, err error) {
	if b.joint == HingeJoin {
		if b.hinge == nil {
			return slope, defl, &StateError{Op: "slope and deflection of a hinged beam", Need: "SolveForReactions"}
		}
		return b.hinge.slope, b.hinge.deflection, nil
	}
	c1, c2 := b.constant(1), b.constant(2)
	slope, defl, err = integrateElastic(b.BendingMoment(), symbolic.Sym(c1), symbolic.Sym(c2), b.segments)
	if err != nil {
		return slope, defl, err
	}
	eqs := b.conditionEquations(curvesAt(slope, defl))
	if len(eqs) == 0 {
		return slope, defl, nil
	}
	sol, err := symbolic.SolveLinear(eqs, []string{c1, c2})
	var se *symbolic.SolveError
	if err != nil && !(errors.As(err, &se) && len(se.Inconsistent) == 0) {
		return slope, defl, determinacy(err)
	}
	if slope, err = slope.Subs(sol); err != nil {
		return slope, defl, err
	}
	defl, err = defl.Subs(sol)
	return slope, defl, err
}

// conditionEquations builds "curve(at) - value" for every boundary
// condition, reading curves through valueAt.
func (b *Beam) conditionEquations(valueAt func(slope bool, at *big.Rat) symbolic.Poly) []symbolic.Poly {
	eqs := make([]symbolic.Poly, 0, len(b.slopeBCs)+len(b.deflBCs))
	for _, c := range b.slopeBCs {
		eqs = append(eqs, valueAt(true, c.At).Sub(c.Value))
	}
	for _, c := range b.deflBCs {
		eqs = append(eqs, valueAt(false, c.At).Sub(c.Value))
	}
	return eqs
}

// curvesAt reads a single slope/deflection pair at a global position
func curvesAt(slope, defl singularity.Expr) func(bool, *big.Rat) symbolic.Poly {
	return func(isSlope bool, at *big.Rat) symbolic.Poly {
		if isSlope {
			return slope.Eval(at)
		}
		return defl.Eval(at)
	}
}

// integrateElastic integrates a moment curve into slope and deflection over
// the stiffness segments. c1 and c2 are the slope and deflection at the start
// of the first segment. Slope and deflection are carried across segment
// boundaries so both stay continuous.
func integrateElastic(moment singularity.Expr, c1, c2 symbolic.Poly, segs []Segment) (slope, defl singularity.Expr, err error) {
	v := moment.Var
	f := moment.Integrate()
	g := f.Integrate()
	x := symbolic.Sym(v)

	if len(segs) == 1 {
		inv, err := segs[0].flexibility()
		if err != nil {
			return slope, defl, err
		}
		a := segs[0].Start
		fa, ga := f.Eval(a), g.Eval(a)
		xa := x.Sub(symbolic.Const(a))
		slope = f.Scale(inv).Add(singularity.Polynomial(v, c1.Sub(fa.Mul(inv))))
		defl = g.Scale(inv).Add(singularity.Polynomial(v, c2.Add(c1.Mul(xa)).Sub(ga.Add(fa.Mul(xa)).Mul(inv))))
		return slope, defl, nil
	}

	slope, defl = singularity.New(v), singularity.New(v)
	theta, y := c1, c2
	for k, s := range segs {
		inv, err := s.flexibility()
		if err != nil {
			return slope, defl, err
		}
		a := s.Start
		fa, ga := f.Eval(a), g.Eval(a)
		xa := x.Sub(symbolic.Const(a))
		sk := f.Scale(inv).Add(singularity.Polynomial(v, theta.Sub(fa.Mul(inv))))
		dk := g.Scale(inv).Add(singularity.Polynomial(v, y.Add(theta.Mul(xa)).Sub(ga.Add(fa.Mul(xa)).Mul(inv))))
		if k == len(segs)-1 {
			slope = slope.Add(sk.Restrict(a))
			defl = defl.Add(dk.Restrict(a))
			break
		}
		slope = slope.Add(sk.Window(a, s.End))
		defl = defl.Add(dk.Window(a, s.End))
		theta = sk.Limit(s.End, singularity.Left)
		y = dk.Limit(s.End, singularity.Left)
	}
	return slope, defl, nil
}
