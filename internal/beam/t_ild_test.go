package beam

import (
	"errors"
	"testing"

	"github.com/alexiusacademia/gobeam/internal/symbolic"
	"github.com/cpmech/gosl/chk"
)

func Test_ild01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ild01. simple span reactions, shear and moment")

	b := newBeam(tst, 10, "E", "I")
	mustSupport(tst, b, 0, Roller)
	mustSupport(tst, b, 10, Pin)

	var se *StateError
	if err := b.SolveForILDShear(rat(4), symbolic.Int(1)); !errors.As(err, &se) {
		tst.Errorf("expected StateError before reactions, got %v", err)
	}
	if _, err := b.ILDMoment(); !errors.As(err, &se) {
		tst.Errorf("expected StateError before moment, got %v", err)
	}

	if err := b.SolveForILDReactions(symbolic.Int(1), "R_0", "R_10"); err != nil {
		tst.Errorf("ild reactions: %v", err)
		return
	}
	r, err := b.ILDReactions()
	if err != nil {
		tst.Errorf("ild reactions: %v", err)
		return
	}
	chk.String(tst, r["R_0"].String(), "1/10*x - 1")
	chk.String(tst, r["R_10"].String(), "-1/10*x")

	if err = b.SolveForILDShear(rat(4), symbolic.Int(1), "R_0", "R_10"); err != nil {
		tst.Errorf("ild shear: %v", err)
		return
	}
	v, err := b.ILDShear()
	if err != nil {
		tst.Errorf("ild shear: %v", err)
		return
	}
	chk.String(tst, v.Before.String(), "1/10*x")
	chk.String(tst, v.After.String(), "1/10*x - 1")
	chk.String(tst, v.String(), "1/10*x if x < 4; 1/10*x - 1 if x > 4")

	if err = b.SolveForILDMoment(rat(4), symbolic.Int(1)); err != nil {
		tst.Errorf("ild moment: %v", err)
		return
	}
	m, err := b.ILDMoment()
	if err != nil {
		tst.Errorf("ild moment: %v", err)
		return
	}
	chk.String(tst, m.Before.String(), "-3/5*x")
	chk.String(tst, m.After.String(), "2/5*x - 4")

	y, err := m.Float(4, nil)
	if err != nil {
		tst.Errorf("float: %v", err)
		return
	}
	chk.Float64(tst, "peak", 1e-12, y, -2.4)

	xs, ys, err := v.Sample(10, 11, nil)
	if err != nil {
		tst.Errorf("sample: %v", err)
		return
	}
	chk.Int(tst, "samples", len(xs), 11)
	chk.Float64(tst, "left end", 1e-12, ys[0], 0)
	chk.Float64(tst, "right end", 1e-12, ys[10], 0)
}

func Test_ild02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ild02. cantilever influence and bad requests")

	b := newBeam(tst, 6, "E", "I")
	mustSupport(tst, b, 0, Fixed)
	if err := b.SolveForILDReactions(symbolic.Int(1)); err != nil {
		tst.Errorf("ild reactions: %v", err)
		return
	}
	r, _ := b.ILDReactions()
	chk.String(tst, r["R_0"].String(), "-1")
	chk.String(tst, r["M_0"].String(), "x")

	var ce *ConfigError
	if err := b.SolveForILDShear(rat(7), symbolic.Int(1)); !errors.As(err, &ce) {
		tst.Errorf("expected ConfigError for a point off the beam, got %v", err)
	}
	var se *StateError
	if err := b.SolveForILDMoment(rat(3), symbolic.Int(1), "R_9"); !errors.As(err, &se) {
		tst.Errorf("expected StateError for an unknown reaction, got %v", err)
	}

	mustApply(tst, b, PointLoad(poly("-1"), rat(2)))
	if _, err := b.ILDReactions(); !errors.As(err, &se) {
		tst.Errorf("changing the loads must discard influence results, got %v", err)
	}
}
