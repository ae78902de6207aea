package cmd

import (
	"errors"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alexiusacademia/gobeam/internal/beam"
	"github.com/alexiusacademia/gobeam/internal/model"
	"github.com/alexiusacademia/gobeam/internal/nscp"
	"github.com/cpmech/gosl/chk"
	"github.com/spf13/viper"
)

const simpleSpan = `
name: demo
units: {length: m, force: kN}
spans:
  - length: 4
    e: E
    i: I
supports:
  - {at: 0, type: pin}
  - {at: 4, type: roller}
loads:
  - {type: point, at: 2, value: 10, case: D}
values:
  - {symbol: E, value: 200}
`

func solved(tst *testing.T, set map[string]string) *analysis {
	p, err := model.Parse(strings.NewReader(simpleSpan), "yaml")
	if err != nil {
		tst.Fatalf("parse: %v", err)
	}
	a, err := solveProblem(p, nscp.Service, set)
	if err != nil {
		tst.Fatalf("solve: %v", err)
	}
	return a
}

func Test_cmd01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("cmd01. summary of a simple span")

	a := solved(tst, map[string]string{"I": "3"})
	chk.Strings(tst, "reactions", reactionNames(a), []string{"R_0", "R_4"})

	s := summary(a)
	chk.Int(tst, "reactions", len(s.Reactions), 2)
	for _, e := range s.Reactions {
		chk.String(tst, e.Symbolic, "5")
		chk.Float64(tst, e.Label, 1e-12, e.Value, 5)
		chk.String(tst, e.Unit, "kN")
	}
	chk.Int(tst, "results", len(s.Results), 3)
	chk.String(tst, s.Results[0].Symbolic, "over 0 ≤ x ≤ 2")
	chk.Float64(tst, "max |M|", 1e-12, s.Results[1].Value, 10)
	chk.String(tst, s.Results[1].Unit, "kN-m")
	chk.Float64(tst, "max |y|", 1e-12, s.Results[2].Value, 10.0*64/(48*200*3))
	chk.String(tst, s.Notes[len(s.Notes)-1], "point 10 down at x = 2 [D]")

	if _, err := mergeValues(nil, map[string]string{"w": "abc"}); err == nil {
		tst.Errorf("non-numeric value should fail")
	}

	// without I the deflection has no number
	s = summary(solved(tst, nil))
	chk.Int(tst, "results without I", len(s.Results), 2)
}

func Test_cmd02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("cmd02. sampled curves and sketch")

	a := solved(tst, map[string]string{"I": "3"})
	curves, err := responseCurves(a)
	if err != nil {
		tst.Errorf("curves: %v", err)
		return
	}
	chk.Int(tst, "curves", len(curves), 4)
	n := len(curves[0].X)
	chk.Int(tst, "samples", n, samples())

	v, m := curves[0], curves[1]
	chk.Float64(tst, "V(0)", 1e-12, math.Abs(v.Y[0]), 5)
	chk.Float64(tst, "V(L-)", 1e-12, math.Abs(v.Y[n-1]), 5)
	chk.Float64(tst, "M(2)", 1e-9, math.Abs(m.Y[(n-1)/2]), 10)
	chk.Float64(tst, "M(L-)", 1e-9, m.Y[n-1], 0)
	chk.Int(tst, "moment mark", len(m.Marks), 1)
	chk.Float64(tst, "mark at", 1e-12, m.Marks[0].X, 2)

	// symbolic stiffness leaves out slope and deflection
	curves, err = responseCurves(solved(tst, nil))
	if err != nil {
		tst.Errorf("curves: %v", err)
		return
	}
	chk.Int(tst, "curves without I", len(curves), 2)

	skip, err := optional(&beam.MissingValueError{Symbol: "I"})
	if !skip || err != nil {
		tst.Errorf("a missing value should only drop the curve, got %v %v", skip, err)
	}
	failure := errors.New("singular stiffness")
	if skip, err = optional(failure); skip || err != failure {
		tst.Errorf("other errors should be returned, got %v %v", skip, err)
	}
	if skip, err = optional(nil); skip || err != nil {
		tst.Errorf("no error should keep the curve, got %v %v", skip, err)
	}

	d := sketch(a)
	chk.Float64(tst, "length", 1e-15, d.Length, 4)
	chk.Int(tst, "supports", len(d.Supports), 2)
	chk.String(tst, d.Supports[1].Kind, "roller")
	chk.Int(tst, "loads", len(d.Loads), 1)
	chk.Float64(tst, "load at", 1e-15, d.Loads[0].At, 2)
	if d.Loads[0].Up {
		tst.Errorf("load should point down")
	}
}

func Test_cmd03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("cmd03. output paths")

	old := viper.GetString("output.dir")
	defer viper.Set("output.dir", old)

	viper.Set("output.dir", "out")
	chk.String(tst, outputPath("m.png"), filepath.Join("out", "m.png"))
	abs := filepath.Join(tst.TempDir(), "m.png")
	chk.String(tst, outputPath(abs), abs)
	chk.String(tst, outputPath(""), "")

	r, err := parseRat(" 5/2 ")
	if err != nil {
		tst.Errorf("parse: %v", err)
		return
	}
	chk.Float64(tst, "5/2", 1e-15, ratFloat(r), 2.5)
	if _, err = parseRat("two"); err == nil {
		tst.Errorf("invalid position should fail")
	}
}
