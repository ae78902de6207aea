package beam

import (
	"math/big"

	"github.com/alexiusacademia/gobeam/internal/singularity"
	"github.com/alexiusacademia/gobeam/internal/symbolic"
)

// hingeCurves holds the stitched slope and deflection of a solved hinged beam
type hingeCurves struct {
	slope      singularity.Expr
	deflection singularity.Expr
	force      symbolic.Poly
}

// hingeSymbol names the internal force transmitted through the hinge
const hingeSymbol = "h"

// HingeForce returns the solved force carried through the hinge
func (b *Beam) HingeForce() (symbolic.Poly, error) {
	if b.joint != HingeJoin {
		return symbolic.Poly{}, configErrorf("beam has no hinge")
	}
	if b.hinge == nil {
		return symbolic.Poly{}, &StateError{Op: "HingeForce", Need: "SolveForReactions"}
	}
	return b.hinge.force, nil
}

// solveHinge treats the two sides of the hinge as separate beams coupled by
// an internal force h and equal deflection at the hinge. Loads at or beyond
// the hinge belong to the right-hand part, expressed in its local
// coordinate.
func (b *Beam) solveHinge(unknowns []string) (map[string]symbolic.Poly, error) {
	l := b.jointAt
	v := b.variable
	if len(b.segments) != 2 {
		return nil, configErrorf("each side of a hinge must have uniform stiffness")
	}
	left, right := b.segments[0], b.segments[1]
	localRight := Segment{Start: new(big.Rat), End: new(big.Rat).Sub(right.End, l), E: right.E, I: right.I}
	length2 := localRight.End
	negL := new(big.Rat).Neg(l)

	load := b.OriginalLoad()
	beyond := load.Restrict(l)
	h := symbolic.Sym(hingeSymbol)
	at1, _ := singularity.Bracket(v, h, l, -1)
	at2, _ := singularity.Bracket(v, h, new(big.Rat), -1)
	load1 := load.Sub(beyond).Add(at1)
	load2 := beyond.Shift(negL).Sub(at2)

	shear1 := load1.Integrate().Neg()
	moment1 := shear1.Integrate()
	shear2 := load2.Integrate().Neg()
	moment2 := shear2.Integrate()
	eqs := []symbolic.Poly{
		shear1.Limit(l, singularity.Right),
		moment1.Limit(l, singularity.Right),
		shear2.Limit(length2, singularity.Right),
		moment2.Limit(length2, singularity.Right),
	}

	c := []string{b.constant(1), b.constant(2), b.constant(3), b.constant(4)}
	slope1, defl1, err := integrateElastic(moment1, symbolic.Sym(c[0]), symbolic.Sym(c[1]), []Segment{left})
	if err != nil {
		return nil, err
	}
	slope2, defl2, err := integrateElastic(moment2, symbolic.Sym(c[2]), symbolic.Sym(c[3]), []Segment{localRight})
	if err != nil {
		return nil, err
	}

	eqs = append(eqs, b.conditionEquations(func(isSlope bool, at *big.Rat) symbolic.Poly {
		s, d := slope1, defl1
		p, side := at, singularity.Right
		switch at.Cmp(l) {
		case 0:
			side = singularity.Left
		case 1:
			s, d = slope2, defl2
			p = new(big.Rat).Sub(at, l)
		}
		if isSlope {
			return s.Limit(p, side)
		}
		return d.Limit(p, side)
	})...)
	eqs = append(eqs, defl1.Limit(l, singularity.Left).Sub(defl2.Eval(new(big.Rat))))

	b.log.Debug("solving hinged reactions", "equations", len(eqs), "unknowns", len(unknowns)+5)
	sol, err := solveFor(eqs, append(c, hingeSymbol), unknowns)
	if err != nil {
		return nil, err
	}

	stitch := func(e1, e2 singularity.Expr) (singularity.Expr, error) {
		e1, err := e1.Subs(sol)
		if err != nil {
			return e1, err
		}
		if e2, err = e2.Subs(sol); err != nil {
			return e2, err
		}
		return e1.Sub(e1.Restrict(l)).Add(e2.Shift(l).Restrict(l)), nil
	}
	hc := &hingeCurves{force: sol[hingeSymbol]}
	if hc.slope, err = stitch(slope1, slope2); err != nil {
		return nil, err
	}
	if hc.deflection, err = stitch(defl1, defl2); err != nil {
		return nil, err
	}
	b.hinge = hc
	return sol, nil
}
