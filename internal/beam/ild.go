package beam

import (
	"fmt"
	"math/big"

	"github.com/alexiusacademia/gobeam/internal/singularity"
	"github.com/alexiusacademia/gobeam/internal/symbolic"
)

// InfluenceLine gives a response at a fixed point At as a function of the
// position of a moving load: Before applies while the load is left of At,
// After once it has passed.
type InfluenceLine struct {
	Var    string
	At     *big.Rat
	Before symbolic.Poly
	After  symbolic.Poly
}

// Float evaluates the line with the moving load at pos. At pos == At the
// After branch is used.
func (l InfluenceLine) Float(pos float64, vals Values) (float64, error) {
	env := make(Values, len(vals)+1)
	for k, v := range vals {
		env[k] = v
	}
	env[l.Var] = pos
	at, _ := l.At.Float64()
	if pos < at {
		return l.Before.Float(env)
	}
	return l.After.Float(env)
}

// Sample evaluates the line at n evenly spaced load positions on [0, length]
func (l InfluenceLine) Sample(length float64, n int, vals Values) ([]float64, []float64, error) {
	if n < 2 {
		n = 2
	}
	xs, ys := make([]float64, n), make([]float64, n)
	for i := range xs {
		xs[i] = length * float64(i) / float64(n-1)
		y, err := l.Float(xs[i], vals)
		if err != nil {
			return nil, nil, err
		}
		ys[i] = y
	}
	return xs, ys, nil
}

func (l InfluenceLine) String() string {
	d := symbolic.FormatRat(l.At)
	return fmt.Sprintf("%s if %s < %s; %s if %s > %s", l.Before, l.Var, d, l.After, l.Var, d)
}

type ildState struct {
	reactions map[string]symbolic.Poly
	shear     *InfluenceLine
	moment    *InfluenceLine
}

// ildCurves derives shear and moment from the unsubstituted load
func (b *Beam) ildCurves() (shear, moment singularity.Expr) {
	shear = b.OriginalLoad().Integrate().Neg()
	return shear, shear.Integrate()
}

// SolveForILDReactions solves the reactions as functions of the position x
// of a moving load of the given magnitude.
func (b *Beam) SolveForILDReactions(value symbolic.Poly, unknowns ...string) error {
	if b.joint == HingeJoin {
		return configErrorf("influence lines of hinged beams are not supported")
	}
	if len(unknowns) == 0 {
		unknowns = b.unknowns
	}
	if len(unknowns) == 0 {
		return configErrorf("no reaction unknowns to solve for")
	}
	if value.Has(b.variable) {
		return configErrorf("moving load %s depends on %s", value, b.variable)
	}
	x := symbolic.Sym(b.variable)
	shear, moment := b.ildCurves()
	arm := symbolic.Const(b.length).Sub(x)
	eqs := []symbolic.Poly{
		shear.Limit(b.length, singularity.Right).Sub(value),
		moment.Limit(b.length, singularity.Right).Sub(value.Mul(arm)),
	}
	c1, c2 := b.constant(1), b.constant(2)
	slope, defl, err := integrateElastic(moment, symbolic.Sym(c1), symbolic.Sym(c2), b.segments)
	if err != nil {
		return err
	}
	eqs = append(eqs, b.conditionEquations(curvesAt(slope, defl))...)
	sol, err := solveFor(eqs, []string{c1, c2}, unknowns)
	if err != nil {
		return err
	}
	b.ild = ildState{reactions: make(map[string]symbolic.Poly, len(unknowns))}
	for _, u := range unknowns {
		b.ild.reactions[u] = sol[u]
	}
	b.log.Debug("influence reactions solved", "unknowns", len(unknowns))
	return nil
}

// ILDReactions returns the reaction influence equations
func (b *Beam) ILDReactions() (map[string]symbolic.Poly, error) {
	if b.ild.reactions == nil {
		return nil, &StateError{Op: "ILDReactions", Need: "SolveForILDReactions"}
	}
	out := make(map[string]symbolic.Poly, len(b.ild.reactions))
	for k, v := range b.ild.reactions {
		out[k] = v
	}
	return out, nil
}

func (b *Beam) ildSubs(op string, p symbolic.Poly, reactions []string) (symbolic.Poly, error) {
	if b.ild.reactions == nil {
		return p, &StateError{Op: op, Need: "SolveForILDReactions"}
	}
	subs := b.ild.reactions
	if len(reactions) > 0 {
		subs = make(map[string]symbolic.Poly, len(reactions))
		for _, r := range reactions {
			v, ok := b.ild.reactions[r]
			if !ok {
				return p, &StateError{Op: op, Need: "an influence solution for " + r}
			}
			subs[r] = v
		}
	}
	return p.Subs(subs)
}

func (b *Beam) checkDistance(d *big.Rat) error {
	if d == nil || d.Sign() < 0 || d.Cmp(b.length) > 0 {
		return configErrorf("influence point lies outside the beam [0, %s]", b.length.RatString())
	}
	return nil
}

// SolveForILDShear derives the shear at distance as the moving load crosses
// the beam.
func (b *Beam) SolveForILDShear(distance *big.Rat, value symbolic.Poly, reactions ...string) error {
	if err := b.checkDistance(distance); err != nil {
		return err
	}
	shear, _ := b.ildCurves()
	vd := shear.Limit(distance, singularity.Right)
	vl := shear.Limit(b.length, singularity.Right)
	before, err := b.ildSubs("SolveForILDShear", value.Sub(vd), reactions)
	if err != nil {
		return err
	}
	after, err := b.ildSubs("SolveForILDShear", vl.Sub(vd).Sub(value), reactions)
	if err != nil {
		return err
	}
	b.ild.shear = &InfluenceLine{Var: b.variable, At: new(big.Rat).Set(distance), Before: before, After: after}
	return nil
}

// SolveForILDMoment derives the bending moment at distance as the moving
// load crosses the beam.
func (b *Beam) SolveForILDMoment(distance *big.Rat, value symbolic.Poly, reactions ...string) error {
	if err := b.checkDistance(distance); err != nil {
		return err
	}
	_, moment := b.ildCurves()
	x := symbolic.Sym(b.variable)
	md := moment.Limit(distance, singularity.Right)
	ml := moment.Limit(b.length, singularity.Right)
	before, err := b.ildSubs("SolveForILDMoment", value.Mul(symbolic.Const(distance).Sub(x)).Sub(md), reactions)
	if err != nil {
		return err
	}
	after, err := b.ildSubs("SolveForILDMoment", ml.Sub(md).Sub(value.Mul(symbolic.Const(b.length).Sub(x))), reactions)
	if err != nil {
		return err
	}
	b.ild.moment = &InfluenceLine{Var: b.variable, At: new(big.Rat).Set(distance), Before: before, After: after}
	return nil
}

// ILDShear returns the shear influence line
func (b *Beam) ILDShear() (InfluenceLine, error) {
	if b.ild.shear == nil {
		return InfluenceLine{}, &StateError{Op: "ILDShear", Need: "SolveForILDShear"}
	}
	return *b.ild.shear, nil
}

// ILDMoment returns the moment influence line
func (b *Beam) ILDMoment() (InfluenceLine, error) {
	if b.ild.moment == nil {
		return InfluenceLine{}, &StateError{Op: "ILDMoment", Need: "SolveForILDMoment"}
	}
	return *b.ild.moment, nil
}
