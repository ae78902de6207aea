// Package beam analyses Euler-Bernoulli beams with singularity functions.
//
// A Beam accumulates loads and supports, solves the reactions exactly and
// derives the shear, moment, slope and deflection curves from them. Extrema,
// contraflexure points and influence lines are computed on demand.
package beam

import (
	"log/slog"
	"math/big"
	"regexp"
	"strconv"
	"strings"

	"github.com/alexiusacademia/gobeam/internal/section"
	"github.com/alexiusacademia/gobeam/internal/singularity"
	"github.com/alexiusacademia/gobeam/internal/symbolic"
)

// Values maps symbols to the numbers used for numeric evaluation
type Values = map[string]float64

// Segment is a stretch of the beam with uniform stiffness, covering [Start, End)
type Segment struct {
	Start *big.Rat
	End   *big.Rat
	E     symbolic.Poly // elastic modulus
	I     symbolic.Poly // second moment of area
}

// flexibility returns 1/(E·I)
func (s Segment) flexibility() (symbolic.Poly, error) {
	inv, err := s.E.Mul(s.I).Inverse()
	if err != nil {
		return symbolic.Poly{}, configErrorf("flexural rigidity %s*%s on [%s, %s) must be a single non-zero term",
			s.E, s.I, s.Start.RatString(), s.End.RatString())
	}
	return inv, nil
}

// Condition is a prescribed slope or deflection at a position
type Condition struct {
	At    *big.Rat
	Value symbolic.Poly
}

// JoinKind is the connection between the two parts of a composite beam
type JoinKind int

const (
	// NoJoin marks a beam that was not produced by Join
	NoJoin JoinKind = iota
	// FixedJoin keeps slope and deflection continuous
	FixedJoin
	// HingeJoin transmits shear but no moment
	HingeJoin
)

func (k JoinKind) String() string {
	switch k {
	case FixedJoin:
		return "fixed"
	case HingeJoin:
		return "hinge"
	default:
		return "none"
	}
}

// Beam is a straight beam of exact rational length. Positions are exact
// rationals; magnitudes, modulus, inertia and area may be symbolic.
type Beam struct {
	length   *big.Rat
	variable string
	baseChar string
	area     symbolic.Poly
	shape    *section.Section
	segments []Segment

	loads     []Load
	supports  []Support
	slopeBCs  []Condition
	deflBCs   []Condition
	unknowns  []string
	reactions map[string]symbolic.Poly
	solved    bool
	cache     *singularity.Expr

	joint   JoinKind
	jointAt *big.Rat
	hinge   *hingeCurves

	ild ildState
	log *slog.Logger
}

// Option configures a Beam at construction
type Option func(*Beam) error

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// WithVariable names the position variable (default "x")
func WithVariable(name string) Option {
	return func(b *Beam) error {
		if !identRe.MatchString(name) {
			return configErrorf("variable %q is not a symbol name", name)
		}
		b.variable = name
		return nil
	}
}

// WithBaseChar sets the prefix of integration constants (default "C")
func WithBaseChar(c string) Option {
	return func(b *Beam) error {
		if !identRe.MatchString(c) {
			return configErrorf("base character %q is not a symbol name", c)
		}
		b.baseChar = c
		return nil
	}
}

// WithArea sets the cross-sectional area used for shear stress
func WithArea(a symbolic.Poly) Option {
	return func(b *Beam) error {
		b.area = a
		return nil
	}
}

// WithLogger sets the logger for debug output
func WithLogger(l *slog.Logger) Option {
	return func(b *Beam) error {
		if l != nil {
			b.log = l
		}
		return nil
	}
}

// New creates a beam of the given length with uniform modulus e and second
// moment of area i.
func New(length *big.Rat, e, i symbolic.Poly, opts ...Option) (*Beam, error) {
	if length == nil || length.Sign() <= 0 {
		return nil, configErrorf("length must be positive")
	}
	b := &Beam{
		length:   new(big.Rat).Set(length),
		variable: "x",
		baseChar: "C",
		log:      slog.Default().With(slog.String("component", "beam")),
	}
	b.segments = []Segment{{Start: new(big.Rat), End: b.length, E: e, I: i}}
	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, err
		}
	}
	if e.Has(b.variable) || i.Has(b.variable) {
		return nil, configErrorf("stiffness must not depend on %s", b.variable)
	}
	return b, nil
}

// Length returns the beam length
func (b *Beam) Length() *big.Rat { return new(big.Rat).Set(b.length) }

// Variable returns the position variable name
func (b *Beam) Variable() string { return b.variable }

// Area returns the cross-sectional area (zero when unset)
func (b *Beam) Area() symbolic.Poly { return b.area }

// Segments returns the stiffness segments in order along the beam
func (b *Beam) Segments() []Segment { return append([]Segment(nil), b.segments...) }

// Joint returns the join kind and position for composite beams
func (b *Beam) Joint() (JoinKind, *big.Rat) { return b.joint, b.jointAt }

// ElasticModulus returns the modulus of a uniform beam
func (b *Beam) ElasticModulus() (symbolic.Poly, bool) {
	if len(b.segments) != 1 {
		return symbolic.Poly{}, false
	}
	return b.segments[0].E, true
}

// SecondMoment returns the second moment of area of a uniform beam
func (b *Beam) SecondMoment() (symbolic.Poly, bool) {
	if len(b.segments) != 1 {
		return symbolic.Poly{}, false
	}
	return b.segments[0].I, true
}

// CrossSection returns the shape the second moment was derived from, if any
func (b *Beam) CrossSection() *section.Section { return b.shape }

// SetSecondMoment replaces the second moment of area along the whole beam
// and forgets any cross-section shape.
func (b *Beam) SetSecondMoment(i symbolic.Poly) error {
	if i.Has(b.variable) {
		return configErrorf("second moment must not depend on %s", b.variable)
	}
	for k := range b.segments {
		b.segments[k].I = i
	}
	b.shape = nil
	b.invalidate()
	return nil
}

// SetCrossSection derives the second moment of area and the area from a
// polygonal shape.
func (b *Beam) SetCrossSection(s *section.Section) error {
	if s == nil {
		return configErrorf("cross-section is nil")
	}
	p, err := s.Properties()
	if err != nil {
		return &ConfigError{Msg: err.Error()}
	}
	if err := b.SetSecondMoment(symbolic.Const(decimal(p.Ix))); err != nil {
		return err
	}
	b.area = symbolic.Const(decimal(p.Area))
	b.shape = s
	return nil
}

// SetStiffness replaces the stiffness with segments that must tile [0, L)
// in order.
func (b *Beam) SetStiffness(segs []Segment) error {
	if len(segs) == 0 {
		return configErrorf("at least one stiffness segment is required")
	}
	at := new(big.Rat)
	for _, s := range segs {
		if s.Start == nil || s.End == nil || s.Start.Cmp(at) != 0 || s.End.Cmp(s.Start) <= 0 {
			return configErrorf("stiffness segments must tile the beam from 0 without gaps")
		}
		if s.E.Has(b.variable) || s.I.Has(b.variable) {
			return configErrorf("stiffness must not depend on %s", b.variable)
		}
		if _, err := s.flexibility(); err != nil {
			return err
		}
		at = s.End
	}
	if at.Cmp(b.length) != 0 {
		return configErrorf("stiffness segments end at %s, beam length is %s", at.RatString(), b.length.RatString())
	}
	b.segments = mergeSegments(segs)
	b.shape = nil
	b.invalidate()
	return nil
}

func mergeSegments(segs []Segment) []Segment {
	out := []Segment{segs[0]}
	for _, s := range segs[1:] {
		last := &out[len(out)-1]
		if last.E.Equal(s.E) && last.I.Equal(s.I) {
			last.End = s.End
			continue
		}
		out = append(out, s)
	}
	return out
}

// constant names the k-th integration constant
func (b *Beam) constant(k int) string {
	return b.baseChar + strconv.Itoa(k)
}

// decimal converts a measured value to a rational via its shortest decimal form
func decimal(v float64) *big.Rat {
	r, _ := new(big.Rat).SetString(strconv.FormatFloat(v, 'g', 12, 64))
	if r == nil {
		return new(big.Rat)
	}
	return r
}

// positionName formats a position for use in a symbol name: 4 -> "4", 2.5 -> "2p5"
func positionName(r *big.Rat) string {
	if r.IsInt() {
		return r.Num().String()
	}
	s := strings.TrimRight(r.FloatString(6), "0")
	return strings.ReplaceAll(s, ".", "p")
}
