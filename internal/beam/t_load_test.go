package beam

import (
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/alexiusacademia/gobeam/internal/symbolic"
	"github.com/cpmech/gosl/chk"
)

func rat(p int64) *big.Rat { return big.NewRat(p, 1) }

func poly(s string) symbolic.Poly { return symbolic.MustParse(s) }

func newBeam(tst *testing.T, length int64, e, i string) *Beam {
	b, err := New(rat(length), poly(e), poly(i))
	if err != nil {
		tst.Fatalf("new beam: %v", err)
	}
	return b
}

func mustApply(tst *testing.T, b *Beam, loads ...Load) {
	for _, l := range loads {
		if err := b.ApplyLoad(l); err != nil {
			tst.Fatalf("apply %s: %v", l, err)
		}
	}
}

func mustSupport(tst *testing.T, b *Beam, at int64, kind SupportKind) {
	if _, err := b.ApplySupport(rat(at), kind); err != nil {
		tst.Fatalf("support at %d: %v", at, err)
	}
}

func Test_load01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("load01. end truncation")

	b := newBeam(tst, 6, "E", "I")
	mustApply(tst, b, DistributedLoad(poly("2"), rat(1), 1, rat(3)))
	chk.String(tst, b.Load().String(), "2*<x - 1>^1 - 2*<x - 3>^1 - 4*<x - 3>^0")

	for _, x := range []float64{0.5, 2, 3, 4.5} {
		want := 0.0
		if x >= 1 && x < 3 {
			want = 2 * (x - 1)
		}
		got, err := b.Load().Float(x, nil)
		if err != nil {
			tst.Errorf("float: %v", err)
			return
		}
		chk.Float64(tst, "truncated ramp", 1e-12, got, want)
	}
}

func Test_load02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("load02. apply then remove restores the load")

	b := newBeam(tst, 10, "E", "I")
	mustApply(tst, b, PointLoad(poly("-P"), rat(2)), MomentLoad(poly("M"), rat(5)))
	before := b.Load()

	for _, l := range []Load{
		PointLoad(poly("-3"), rat(7)),
		MomentLoad(poly("w/2"), rat(0)),
		DistributedLoad(poly("-w"), rat(1), 0, nil),
		DistributedLoad(poly("q"), rat(2), 2, rat(9)),
	} {
		mustApply(tst, b, l)
		if err := b.RemoveLoad(l); err != nil {
			tst.Errorf("remove %s: %v", l, err)
			continue
		}
		if !b.Load().Equal(before) {
			tst.Errorf("after removing %s got %s, want %s", l, b.Load(), before)
		}
	}
	chk.Int(tst, "records", len(b.AppliedLoads()), 2)
}

func Test_load03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("load03. configuration errors")

	b := newBeam(tst, 4, "E", "I")
	var ce *ConfigError

	err := b.ApplyLoad(Load{Value: poly("P"), Start: rat(1), Order: -1, End: rat(2)})
	if !errors.As(err, &ce) || !strings.Contains(err.Error(), "end only valid for distributed loads") {
		tst.Errorf("expected end-with-point error, got %v", err)
	}
	err = b.RemoveLoad(PointLoad(poly("P"), rat(1)))
	if !errors.As(err, &ce) || !strings.Contains(err.Error(), "no such load distribution exists") {
		tst.Errorf("expected missing-record error, got %v", err)
	}
	if err = b.ApplyLoad(Load{Value: poly("1"), Start: rat(1), Order: -3}); !errors.As(err, &ce) {
		tst.Errorf("expected order error, got %v", err)
	}
	if err = b.ApplyLoad(PointLoad(poly("x"), rat(1))); !errors.As(err, &ce) {
		tst.Errorf("expected variable-in-magnitude error, got %v", err)
	}
	if err = b.ApplyLoad(PointLoad(poly("1"), rat(5))); !errors.As(err, &ce) {
		tst.Errorf("expected position error, got %v", err)
	}
	if _, err = New(rat(4), poly("E"), poly("I"), WithVariable("2x")); !errors.As(err, &ce) {
		tst.Errorf("expected variable name error, got %v", err)
	}
	if _, err = New(rat(0), poly("E"), poly("I")); !errors.As(err, &ce) {
		tst.Errorf("expected length error, got %v", err)
	}
	if _, err = b.ApplySupport(rat(2), Pin); err != nil {
		tst.Errorf("support: %v", err)
	}
	if _, err = b.ApplySupport(rat(2), Roller); !errors.As(err, &ce) {
		tst.Errorf("expected duplicate support error, got %v", err)
	}
	if err = b.RemoveLoad(PointLoad(poly("R_2"), rat(2))); !errors.As(err, &ce) {
		tst.Errorf("expected support reaction error, got %v", err)
	}
	if _, err = b.ApplySupport(rat(0), Fixed); err != nil {
		tst.Errorf("support: %v", err)
	}
	if err = b.RemoveLoad(MomentLoad(poly("M_0"), rat(0))); !errors.As(err, &ce) {
		tst.Errorf("expected support moment error, got %v", err)
	}
	chk.Int(tst, "support loads kept", len(b.AppliedLoads()), 3)
	chk.Strings(tst, "unknowns kept", b.ReactionSymbols(), []string{"R_2", "R_0", "M_0"})
	if _, err = ParseSupportKind("spring"); !errors.As(err, &ce) {
		tst.Errorf("expected support kind error, got %v", err)
	}
}

// trapezoid loads on a simply supported span of 4, all magnitude and sign
// combinations
func Test_load04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("load04. trapezoid sign combinations")

	cases := []struct {
		w1, w2  string
		r0, r4  string
		records int
	}{
		{"-2", "-6", "20/3", "28/3", 2},
		{"-6", "-2", "28/3", "20/3", 2},
		{"-4", "-4", "8", "8", 1},
		{"0", "-6", "4", "8", 1},
		{"3", "-3", "-2", "2", 2},
		{"2", "6", "-20/3", "-28/3", 2},
	}
	for _, c := range cases {
		b := newBeam(tst, 4, "E", "I")
		mustSupport(tst, b, 0, Pin)
		mustSupport(tst, b, 4, Roller)
		loads, err := TrapezoidLoad(poly(c.w1), poly(c.w2), rat(0), rat(4))
		if err != nil {
			tst.Errorf("trapezoid: %v", err)
			continue
		}
		chk.Int(tst, "records "+c.w1+" "+c.w2, len(loads), c.records)
		mustApply(tst, b, loads...)
		if err = b.SolveForReactions(); err != nil {
			tst.Errorf("solve %s..%s: %v", c.w1, c.w2, err)
			continue
		}
		r := b.Reactions()
		chk.String(tst, r["R_0"].String(), c.r0)
		chk.String(tst, r["R_4"].String(), c.r4)
	}

	if _, err := TrapezoidLoad(poly("1"), poly("2"), rat(3), rat(3)); err == nil {
		tst.Errorf("empty trapezoid should fail")
	}
}
