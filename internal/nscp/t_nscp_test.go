package nscp

import (
	"errors"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_nscp01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("nscp01. factors and lookup")

	c, err := Lookup("2")
	if err != nil {
		tst.Errorf("lookup: %v", err)
		return
	}
	for _, tc := range []struct {
		tag  string
		want float64
	}{
		{Dead, 1.2}, {"", 1.2}, {Live, 1.6}, {Roof, 0.5}, {Rain, 0.5}, {Wind, 0}, {Earthquake, 0},
	} {
		f, err := c.Factor(tc.tag)
		if err != nil {
			tst.Errorf("factor %q: %v", tc.tag, err)
			continue
		}
		chk.Float64(tst, "factor "+tc.tag, 1e-15, f, tc.want)
	}
	if _, err = c.Factor("S"); err == nil {
		tst.Errorf("unknown case should fail")
	}

	s, _ := Lookup("")
	chk.String(tst, s.ID, "S")
	if _, err = Lookup("9"); err == nil {
		tst.Errorf("unknown combination should fail")
	}
}

func Test_nscp02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("nscp02. governing combination and moduli")

	// D = 50, L = 30
	eval := func(c LoadCombination) (float64, error) { return c.Dead*50 + c.Live*30, nil }
	v, g, err := Governing(LoadCombinations, eval)
	if err != nil {
		tst.Errorf("governing: %v", err)
		return
	}
	chk.Float64(tst, "1.2D + 1.6L", 1e-12, v, 108)
	chk.String(tst, g.ID, "2")

	boom := errors.New("boom")
	if _, _, err = Governing(SimplifiedCombinations, func(LoadCombination) (float64, error) { return 0, boom }); !errors.Is(err, boom) {
		tst.Errorf("expected wrapped error, got %v", err)
	}
	if _, _, err = Governing(nil, eval); err == nil {
		tst.Errorf("empty list should fail")
	}

	e, _ := Modulus("concrete", 25)
	chk.Float64(tst, "Ec", 1e-9, e, 23500)
	e, _ = Modulus("Steel", 0)
	chk.Float64(tst, "Es", 0, e, 200000)
	if _, err = Modulus("concrete", 0); err == nil {
		tst.Errorf("concrete without f'c should fail")
	}
}
