package model

import (
	"strings"
	"testing"

	"github.com/alexiusacademia/gobeam/internal/nscp"
	"github.com/alexiusacademia/gobeam/internal/symbolic"
	"github.com/cpmech/gosl/chk"
)

const simpleSpan = `
name: demo
spans:
  - length: 4
    e: E
    i: I
supports:
  - {at: 0, type: pin}
  - {at: 4, type: roller}
loads:
  - {type: point, at: 2, value: 10, case: D}
  - {type: point, at: 2, value: 5, case: L}
values:
  - {symbol: E, value: 200}
  - {symbol: I, value: 3}
`

func parse(tst *testing.T, doc, format string) *Problem {
	p, err := Parse(strings.NewReader(doc), format)
	if err != nil {
		tst.Fatalf("parse: %v", err)
	}
	return p
}

func Test_model01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("model01. load combinations scale tagged loads")

	p := parse(tst, simpleSpan, "yaml")
	chk.Int(tst, "loads", len(p.Loads), 2)
	chk.Float64(tst, "E", 0, p.Numbers()["E"], 200)

	for _, tc := range []struct {
		combo string
		r     string
	}{
		{"S", "15/2"},
		{"1", "7"},
		{"2", "10"},
	} {
		combo, err := nscp.Lookup(tc.combo)
		if err != nil {
			tst.Errorf("lookup: %v", err)
			continue
		}
		b, err := p.Build(combo, nil)
		if err != nil {
			tst.Errorf("build %s: %v", tc.combo, err)
			continue
		}
		if err = b.SolveForReactions(p.SolveUnknowns(b)...); err != nil {
			tst.Errorf("solve %s: %v", tc.combo, err)
			continue
		}
		chk.String(tst, b.Reactions()["R_0"].String(), tc.r)
		chk.String(tst, b.Reactions()["R_4"].String(), tc.r)
	}
}

func Test_model02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("model02. trapezoid, moments and materials")

	p := parse(tst, `{
		"name": "trap",
		"spans": [{"length": "4", "material": "steel", "section": {"kind": "rectangle", "width": 100, "height": 200}}],
		"supports": [{"at": 0, "type": "pinned"}, {"at": "4", "type": "roller"}],
		"loads": [{"type": "distributed", "start": 0, "end": 4, "value": 2, "end_value": 6}]
	}`, "json")
	b, err := p.Build(nscp.Service, nil)
	if err != nil {
		tst.Errorf("build: %v", err)
		return
	}
	chk.Int(tst, "records and support loads", len(b.AppliedLoads()), 4)
	e, _ := b.ElasticModulus()
	chk.String(tst, e.String(), "200000")
	if b.CrossSection() == nil {
		tst.Errorf("cross-section should be kept")
	}
	if err = b.SolveForReactions(p.SolveUnknowns(b)...); err != nil {
		tst.Errorf("solve: %v", err)
		return
	}
	chk.String(tst, b.Reactions()["R_0"].String(), "20/3")
	chk.String(tst, b.Reactions()["R_4"].String(), "28/3")

	// counter-clockwise couple at the end of a cantilever
	c := parse(tst, `
spans: [{length: 3, e: "1", i: "1"}]
supports: [{at: 0, type: fixed}]
loads:
  - {type: moment, at: 3, value: M, direction: ccw}
`, "yaml")
	cb, err := c.Build(nscp.Service, nil)
	if err != nil {
		tst.Errorf("build: %v", err)
		return
	}
	if err = cb.SolveForReactions(c.SolveUnknowns(cb)...); err != nil {
		tst.Errorf("solve: %v", err)
		return
	}
	chk.String(tst, cb.Reactions()["R_0"].String(), "0")
	chk.String(tst, cb.Reactions()["M_0"].String(), "M")
}

func Test_model03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("model03. hinged document")

	p := parse(tst, `
name: gerber
spans:
  - {length: 2, e: E, i: I}
  - {length: 2, e: E, i: I}
join: hinge
supports:
  - {at: 0, type: fixed}
  - {at: 4, type: fixed}
loads:
  - {type: point, at: 2, value: P, direction: up}
`, "yaml")
	b, err := p.Build(nscp.Service, nil)
	if err != nil {
		tst.Errorf("build: %v", err)
		return
	}
	chk.Strings(tst, "unknowns", p.SolveUnknowns(b), []string{"R_0", "M_0", "R_4", "M_4"})
	if err = b.SolveForReactions(p.SolveUnknowns(b)...); err != nil {
		tst.Errorf("solve: %v", err)
		return
	}
	r := b.Reactions()
	chk.String(tst, r["R_0"].String(), "-1/2*P")
	chk.String(tst, r["M_0"].String(), "P")
	chk.String(tst, r["R_4"].String(), "-1/2*P")
	chk.String(tst, r["M_4"].String(), "-P")
}

func Test_model04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("model04. validation collects every problem")

	_, err := Parse(strings.NewReader(`
name: broken
spans:
  - {length: -1, e: E}
supports:
  - {at: 0, type: spring}
loads:
  - {type: wave, at: 1, value: 2}
  - {type: point, at: 1, value: 2, end: 3, case: X}
`), "yaml")
	if err == nil {
		tst.Errorf("broken document should fail")
		return
	}
	msg := err.Error()
	for _, want := range []string{
		"length must be positive",
		"second moment i or a section is required",
		"spring",
		"unknown load type",
		"end only valid for distributed loads",
		"unknown load case",
	} {
		if !strings.Contains(msg, want) {
			tst.Errorf("error %q does not mention %q", msg, want)
		}
	}

	if _, err = Parse(strings.NewReader(`{"spans": [{"length": 1, "e": "E", "i": "I"}, {"length": 1, "e": "E", "i": "I"}]}`), "json"); err == nil {
		tst.Errorf("two spans without a join should fail")
	}
}

func Test_model05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("model05. bare structure for influence lines")

	p := parse(tst, simpleSpan, "yaml")
	b, err := p.Structure(nil)
	if err != nil {
		tst.Errorf("structure: %v", err)
		return
	}
	chk.Int(tst, "support loads only", len(b.AppliedLoads()), 2)
	chk.Int(tst, "document untouched", len(p.Loads), 2)

	if err = b.SolveForILDReactions(symbolic.Int(1), p.SolveUnknowns(b)...); err != nil {
		tst.Errorf("ild: %v", err)
		return
	}
	r, err := b.ILDReactions()
	if err != nil {
		tst.Errorf("ild: %v", err)
		return
	}
	chk.String(tst, r["R_0"].String(), "1/4*x - 1")
	chk.String(tst, r["R_4"].String(), "-1/4*x")
}
