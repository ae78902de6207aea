package beam

import (
	"errors"
	"math"
	"testing"

	"github.com/alexiusacademia/gobeam/internal/singularity"
	"github.com/cpmech/gosl/chk"
)

func simplySupported(tst *testing.T) *Beam {
	b := newBeam(tst, 4, "E", "I")
	mustSupport(tst, b, 0, Pin)
	mustSupport(tst, b, 4, Roller)
	mustApply(tst, b, PointLoad(poly("-P"), rat(2)))
	if err := b.SolveForReactions(); err != nil {
		tst.Fatalf("solve: %v", err)
	}
	return b
}

func Test_extrema01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("extrema01. simply supported maxima")

	b := simplySupported(tst)
	vals := Values{"P": 10}

	m, err := b.MaxBendingMoment(vals)
	if err != nil {
		tst.Errorf("max moment: %v", err)
		return
	}
	chk.Float64(tst, "PL/4", 1e-12, m.Value, 10)
	chk.Float64(tst, "at midspan", 1e-12, m.Location, 2)

	v, err := b.MaxShearForce(vals)
	if err != nil {
		tst.Errorf("max shear: %v", err)
		return
	}
	chk.Float64(tst, "P/2", 1e-12, v.Value, 5)
	chk.Array(tst, "constant span", 1e-12, v.Span, []float64{0, 2})

	pts, err := b.ContraflexurePoints(vals)
	if err != nil {
		tst.Errorf("contraflexure: %v", err)
		return
	}
	chk.Int(tst, "no contraflexure", len(pts), 0)

	var mv *MissingValueError
	if _, err = b.MaxBendingMoment(nil); !errors.As(err, &mv) {
		tst.Errorf("expected MissingValueError, got %v", err)
	} else {
		chk.String(tst, mv.Symbol, "P")
	}
}

// dense grid check on an overhanging beam with mixed loads
func Test_extrema02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("extrema02. no missed extremum")

	b := newBeam(tst, 10, "E", "I")
	mustSupport(tst, b, 0, Pin)
	mustSupport(tst, b, 8, Roller)
	mustApply(tst, b,
		DistributedLoad(poly("-2"), rat(0), 0, rat(8)),
		DistributedLoad(poly("-1/2"), rat(2), 1, rat(6)),
		PointLoad(poly("-5"), rat(10)),
		MomentLoad(poly("3"), rat(4)),
	)
	if err := b.SolveForReactions(); err != nil {
		tst.Errorf("solve: %v", err)
		return
	}

	check := func(name string, curve singularity.Expr, ext Extremum) {
		if ext.Location < 0 || ext.Location > 10 {
			tst.Errorf("%s location %g outside the beam", name, ext.Location)
		}
		for i := 0; i <= 10000; i++ {
			x := float64(i) / 1000
			y, err := curve.Float(x, nil)
			if err != nil {
				tst.Errorf("%s: %v", name, err)
				return
			}
			if math.Abs(y) > ext.Value+1e-9 {
				tst.Errorf("%s: |%g| at %g exceeds maximum %g", name, y, x, ext.Value)
				return
			}
		}
	}

	m, err := b.MaxBendingMoment(nil)
	if err != nil {
		tst.Errorf("max moment: %v", err)
		return
	}
	check("moment", b.BendingMoment(), m)

	v, err := b.MaxShearForce(nil)
	if err != nil {
		tst.Errorf("max shear: %v", err)
		return
	}
	check("shear", b.ShearForce(), v)

	d, err := b.Deflection()
	if err != nil {
		tst.Errorf("deflection: %v", err)
		return
	}
	e := Values{"E": 200, "I": 3}
	y, err := b.MaxDeflection(e)
	if err != nil {
		tst.Errorf("max deflection: %v", err)
		return
	}
	numericDefl, err := numeric(d, e)
	if err != nil {
		tst.Errorf("numeric: %v", err)
		return
	}
	check("deflection", numericDefl, y)

	pts, err := b.ContraflexurePoints(nil)
	if err != nil {
		tst.Errorf("contraflexure: %v", err)
		return
	}
	if len(pts) == 0 {
		tst.Errorf("overhang must have a contraflexure point")
	}
	for _, p := range pts {
		if p <= 0 || p >= 10 {
			tst.Errorf("contraflexure point %g outside (0, 10)", p)
		}
		mv, _ := b.BendingMoment().Float(p, nil)
		chk.Float64(tst, "moment at contraflexure", 1e-6, mv, 0)
	}
}

func Test_extrema03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("extrema03. cantilever deflection and real roots")

	b := newBeam(tst, 3, "E", "I")
	mustSupport(tst, b, 0, Fixed)
	mustApply(tst, b, PointLoad(poly("-P"), rat(3)))
	if err := b.SolveForReactions(); err != nil {
		tst.Errorf("solve: %v", err)
		return
	}
	y, err := b.MaxDeflection(Values{"P": 2, "E": 1, "I": 1})
	if err != nil {
		tst.Errorf("max deflection: %v", err)
		return
	}
	chk.Float64(tst, "tip", 1e-12, y.Location, 3)
	chk.Float64(tst, "PL^3/3EI", 1e-12, y.Value, 18)

	// (x - 1)(x - 2)(x - 3)
	roots := realRoots([]float64{-6, 11, -6, 1})
	chk.Array(tst, "cubic roots", 1e-9, roots, []float64{1, 2, 3})
	chk.Int(tst, "no real roots", len(realRoots([]float64{1, 0, 1})), 0)
	chk.Array(tst, "linear", 1e-15, realRoots([]float64{-3, 2}), []float64{1.5})
}
