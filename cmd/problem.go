package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/big"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/alexiusacademia/gobeam/internal/beam"
	"github.com/alexiusacademia/gobeam/internal/diagram"
	"github.com/alexiusacademia/gobeam/internal/model"
	"github.com/alexiusacademia/gobeam/internal/nscp"
	"github.com/alexiusacademia/gobeam/internal/report"
	"github.com/alexiusacademia/gobeam/internal/singularity"
	"github.com/alexiusacademia/gobeam/internal/symbolic"
	"github.com/spf13/viper"
)

const rule = "───────────────────────────────────────────────────────────────"

// analysis is a problem built under one combination and solved
type analysis struct {
	problem *model.Problem
	combo   nscp.LoadCombination
	beam    *beam.Beam
	values  beam.Values
}

func beamLogger() *slog.Logger {
	return slog.Default().With(slog.String("component", "beam"))
}

// loadAnalysis reads the problem file, factors its loads by the combination
// and solves the reactions
func loadAnalysis(file, comboID string, set map[string]string) (*analysis, error) {
	p, err := model.LoadFromFile(file)
	if err != nil {
		return nil, err
	}
	combo, err := nscp.Lookup(comboID)
	if err != nil {
		return nil, err
	}
	return solveProblem(p, combo, set)
}

func solveProblem(p *model.Problem, combo nscp.LoadCombination, set map[string]string) (*analysis, error) {
	vals, err := mergeValues(p.Numbers(), set)
	if err != nil {
		return nil, err
	}
	b, err := p.Build(combo, beamLogger())
	if err != nil {
		return nil, err
	}
	if err := b.SolveForReactions(p.SolveUnknowns(b)...); err != nil {
		return nil, err
	}
	return &analysis{problem: p, combo: combo, beam: b, values: vals}, nil
}

// mergeValues overrides document values with --set pairs
func mergeValues(doc beam.Values, set map[string]string) (beam.Values, error) {
	vals := make(beam.Values, len(doc)+len(set))
	for k, v := range doc {
		vals[k] = v
	}
	for k, s := range set {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: %q", k, s)
		}
		vals[k] = v
	}
	return vals, nil
}

// missing reports whether err only says that a numeric value was not given
func missing(err error) (string, bool) {
	var mv *beam.MissingValueError
	if errors.As(err, &mv) {
		return mv.Symbol, true
	}
	return "", false
}

// optional tells a curve that lacks a numeric value, which is left out,
// from a real failure
func optional(err error) (skip bool, _ error) {
	if _, ok := missing(err); ok {
		return true, nil
	}
	return false, err
}

func samples() int {
	n := viper.GetInt("plot.samples")
	if n < 2 {
		n = 201
	}
	return n
}

func parseRat(s string) (*big.Rat, error) {
	r, ok := new(big.Rat).SetString(strings.TrimSpace(s))
	if !ok {
		return nil, fmt.Errorf("invalid position %q", s)
	}
	return r, nil
}

func ratFloat(r *big.Rat) float64 {
	f, _ := r.Float64()
	return f
}

func title(a *analysis) string {
	if a.problem.Name != "" {
		return a.problem.Name
	}
	return "Beam"
}

// sampleCurve samples e over the beam; the last point is the left limit at
// the far end so that end reactions do not pull the curve back to zero
func sampleCurve(name, unit string, e singularity.Expr, length *big.Rat, vals beam.Values) (diagram.Curve, error) {
	xs, ys, err := e.Sample(0, ratFloat(length), samples(), vals)
	if err != nil {
		return diagram.Curve{}, err
	}
	end, err := e.Limit(length, singularity.Left).Float(vals)
	if err != nil {
		return diagram.Curve{}, err
	}
	ys[len(ys)-1] = end
	return diagram.Curve{Name: name, Unit: unit, X: xs, Y: ys}, nil
}

// responseCurves samples shear, moment, slope and deflection and marks their
// extremes. Slope and deflection are left out when the stiffness is symbolic
// and no value was given for it.
func responseCurves(a *analysis) ([]diagram.Curve, error) {
	b := a.beam
	force, length := a.problem.Units.Force, a.problem.Units.Length

	v, err := sampleCurve("Shear force", force, b.ShearForce(), b.Length(), a.values)
	if err != nil {
		return nil, err
	}
	if ext, err := b.MaxShearForce(a.values); err == nil {
		v.Marks = append(v.Marks, extremeMark(b.ShearForce(), ext, a.values))
	}
	m, err := sampleCurve("Bending moment", a.momentUnit(), b.BendingMoment(), b.Length(), a.values)
	if err != nil {
		return nil, err
	}
	if ext, err := b.MaxBendingMoment(a.values); err == nil {
		m.Marks = append(m.Marks, extremeMark(b.BendingMoment(), ext, a.values))
	}
	curves := []diagram.Curve{v, m}

	slope, err := b.Slope()
	if err != nil {
		return nil, err
	}
	defl, err := b.Deflection()
	if err != nil {
		return nil, err
	}
	s, err := sampleCurve("Slope", "rad", slope, b.Length(), a.values)
	if skip, err := optional(err); skip || err != nil {
		return curves, err
	}
	y, err := sampleCurve("Deflection", length, defl, b.Length(), a.values)
	if skip, err := optional(err); skip || err != nil {
		return curves, err
	}
	if ext, err := b.MaxDeflection(a.values); err == nil {
		y.Marks = append(y.Marks, extremeMark(defl, ext, a.values))
	}
	return append(curves, s, y), nil
}

// extremeMark labels an extremum with its signed value
func extremeMark(e singularity.Expr, ext beam.Extremum, vals beam.Values) diagram.Mark {
	tol := 1e-9 * math.Max(1, ext.Value)
	y, err := e.Float(ext.Location, vals)
	if err != nil || math.Abs(math.Abs(y)-ext.Value) > tol {
		// the extremum is the left limit of a jump
		y = ext.Value
		if l, err := e.Float(ext.Location-1e-9*math.Max(1, ext.Location), vals); err == nil {
			y = l
		}
	}
	return diagram.Mark{X: ext.Location, Y: y, Label: fmt.Sprintf("%.4g", y)}
}

// sketch describes the problem's beam for the ASCII drawing
func sketch(a *analysis) diagram.BeamDiagramData {
	b := a.beam
	data := diagram.BeamDiagramData{Length: ratFloat(b.Length())}
	if kind, at := b.Joint(); kind == beam.HingeJoin {
		data.Hinge = ratFloat(at)
	}
	for _, s := range b.Supports() {
		data.Supports = append(data.Supports, diagram.SupportMark{At: ratFloat(s.At), Kind: s.Kind.String()})
	}
	for _, l := range a.problem.Loads {
		mark := diagram.LoadMark{Kind: l.Type}
		dir := strings.ToLower(l.Direction)
		mark.Up = dir == "up" || dir == "+"
		mark.CW = dir != "ccw" && dir != "counterclockwise" && dir != "counter-clockwise"
		pos := l.At
		if l.Type == "distributed" {
			pos = l.Start
			if l.End != "" {
				if e, err := parseRat(l.End); err == nil {
					mark.End = ratFloat(e)
				}
			}
		}
		if r, err := parseRat(pos); err == nil {
			mark.At = ratFloat(r)
		}
		data.Loads = append(data.Loads, mark)
	}
	return data
}

// reactionNames lists the solved unknowns, supports first
func reactionNames(a *analysis) []string {
	names := a.problem.SolveUnknowns(a.beam)
	r := a.beam.Reactions()
	var extra []string
	for k := range r {
		found := false
		for _, n := range names {
			if n == k {
				found = true
				break
			}
		}
		if !found {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	return append(names, extra...)
}

func (a *analysis) momentUnit() string {
	u := a.problem.Units
	if u.Force != "" && u.Length != "" {
		return u.Force + "-" + u.Length
	}
	return u.Force
}

// entry evaluates p when every symbol in it has a value
func entry(label string, p symbolic.Poly, vals beam.Values, unit string) report.Entry {
	e := report.Entry{Label: label, Symbolic: p.String(), Unit: unit}
	if v, err := p.Float(vals); err == nil {
		e.Value, e.Numeric = v, true
	}
	return e
}

func extremumEntry(label string, ext beam.Extremum, unit string) report.Entry {
	where := fmt.Sprintf("at x = %.4g", ext.Location)
	if len(ext.Span) == 2 {
		where = fmt.Sprintf("over %.4g ≤ x ≤ %.4g", ext.Span[0], ext.Span[1])
	}
	return report.Entry{Label: label, Symbolic: where, Value: ext.Value, Numeric: true, Unit: unit}
}

func describeLoad(l model.Load) string {
	dir := l.Direction
	if dir == "" {
		dir = "down"
		if l.Type == "moment" {
			dir = "cw"
		}
	}
	tag := ""
	if l.Case != "" {
		tag = " [" + l.Case + "]"
	}
	switch l.Type {
	case "distributed":
		end := l.End
		if end == "" {
			end = "end"
		}
		if l.EndValue != "" {
			return fmt.Sprintf("distributed %s to %s %s from x = %s to %s%s", l.Value, l.EndValue, dir, l.Start, end, tag)
		}
		return fmt.Sprintf("distributed %s (order %d) %s from x = %s to %s%s", l.Value, l.Order, dir, l.Start, end, tag)
	}
	return fmt.Sprintf("%s %s %s at x = %s%s", l.Type, l.Value, dir, l.At, tag)
}

// summary collects the reactions and extreme values of a solved analysis
func summary(a *analysis) report.Summary {
	b, u := a.beam, a.problem.Units
	s := report.Summary{
		Title:       title(a),
		Combination: a.combo.ID + " (" + a.combo.Description + ")",
		Created:     time.Now(),
	}
	if a.problem.Description != "" {
		s.Notes = append(s.Notes, a.problem.Description)
	}
	for _, sp := range b.Supports() {
		s.Notes = append(s.Notes, fmt.Sprintf("%s support at x = %s", sp.Kind, sp.At.RatString()))
	}
	for _, l := range a.problem.Loads {
		s.Notes = append(s.Notes, describeLoad(l))
	}

	reactions := b.Reactions()
	for _, name := range reactionNames(a) {
		unit := u.Force
		if strings.HasPrefix(name, "M_") {
			unit = a.momentUnit()
		}
		s.Reactions = append(s.Reactions, entry(name, reactions[name], a.values, unit))
	}
	if kind, _ := b.Joint(); kind == beam.HingeJoin {
		if h, err := b.HingeForce(); err == nil {
			s.Reactions = append(s.Reactions, entry("hinge force", h, a.values, u.Force))
		}
	}

	if ext, err := b.MaxShearForce(a.values); err == nil {
		s.Results = append(s.Results, extremumEntry("max |V|", ext, u.Force))
	}
	if ext, err := b.MaxBendingMoment(a.values); err == nil {
		s.Results = append(s.Results, extremumEntry("max |M|", ext, a.momentUnit()))
	}
	if ext, err := b.MaxDeflection(a.values); err == nil {
		s.Results = append(s.Results, extremumEntry("max |y|", ext, u.Length))
	}
	if pts, err := b.ContraflexurePoints(a.values); err == nil {
		for _, x := range pts {
			s.Results = append(s.Results, report.Entry{Label: "contraflexure", Symbolic: "M = 0", Value: x, Numeric: true, Unit: u.Length})
		}
	}
	return s
}

func printBanner(title string) {
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Printf("     %s\n", title)
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()
}

func printHeading(title string) {
	fmt.Println(title + ":")
	fmt.Println(rule)
}

// printEntries writes one tabwriter row per entry
func printEntries(w io.Writer, entries []report.Entry) {
	for _, e := range entries {
		numeric := ""
		if e.Numeric {
			numeric = fmt.Sprintf("%.6g %s", e.Value, e.Unit)
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\n", e.Label, e.Symbolic, strings.TrimSpace(numeric))
	}
}

// outputPath places relative file names under output.dir
func outputPath(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(viper.GetString("output.dir"), name)
}
