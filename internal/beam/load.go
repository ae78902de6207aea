package beam

import (
	"fmt"
	"math/big"

	"github.com/alexiusacademia/gobeam/internal/singularity"
	"github.com/alexiusacademia/gobeam/internal/symbolic"
)

// LoadKind tags a load by the order of its singularity function
type LoadKind int

const (
	// Point is a concentrated force, order -1
	Point LoadKind = iota
	// Moment is a concentrated couple, order -2
	Moment
	// Distributed is a load of order 0 or higher, optionally ending at End
	Distributed
)

func (k LoadKind) String() string {
	switch k {
	case Point:
		return "point"
	case Moment:
		return "moment"
	default:
		return "distributed"
	}
}

// Load is an applied load record: Value·<x - Start>^Order, truncated at End
// when End is set. Upward forces and clockwise moments are positive.
type Load struct {
	Value symbolic.Poly
	Start *big.Rat
	Order int
	End   *big.Rat
}

// PointLoad returns a concentrated force at the given position
func PointLoad(value symbolic.Poly, at *big.Rat) Load {
	return Load{Value: value, Start: at, Order: -1}
}

// MomentLoad returns a concentrated couple at the given position
func MomentLoad(value symbolic.Poly, at *big.Rat) Load {
	return Load{Value: value, Start: at, Order: -2}
}

// DistributedLoad returns value·<x - start>^order; a nil end leaves the load
// running to the far end of the beam.
func DistributedLoad(value symbolic.Poly, start *big.Rat, order int, end *big.Rat) Load {
	return Load{Value: value, Start: start, Order: order, End: end}
}

// TrapezoidLoad splits a linearly varying load from w1 at start to w2 at end
// into a uniform part and a ramp part.
func TrapezoidLoad(w1, w2 symbolic.Poly, start, end *big.Rat) ([]Load, error) {
	span := new(big.Rat).Sub(end, start)
	if span.Sign() <= 0 {
		return nil, configErrorf("trapezoid load must end after it starts (%s, %s)", start.RatString(), end.RatString())
	}
	var loads []Load
	if !w1.IsZero() {
		loads = append(loads, DistributedLoad(w1, start, 0, end))
	}
	if slope := w2.Sub(w1).Scale(new(big.Rat).Inv(span)); !slope.IsZero() {
		loads = append(loads, DistributedLoad(slope, start, 1, end))
	}
	return loads, nil
}

// Kind classifies the load by its order
func (l Load) Kind() LoadKind {
	switch l.Order {
	case -1:
		return Point
	case -2:
		return Moment
	default:
		return Distributed
	}
}

// Equal reports whether two records describe the same load
func (l Load) Equal(o Load) bool {
	if l.Order != o.Order || l.Start.Cmp(o.Start) != 0 || !l.Value.Equal(o.Value) {
		return false
	}
	if l.End == nil || o.End == nil {
		return l.End == nil && o.End == nil
	}
	return l.End.Cmp(o.End) == 0
}

func (l Load) String() string {
	s := fmt.Sprintf("%s %s at %s", l.Kind(), l.Value, l.Start.RatString())
	if l.Kind() == Distributed {
		s += fmt.Sprintf(" order %d", l.Order)
	}
	if l.End != nil {
		s += " to " + l.End.RatString()
	}
	return s
}

// expr expands the record into singularity terms, subtracting the Taylor
// terms of value·x^order about end when the load is truncated.
func (l Load) expr(v string) (singularity.Expr, error) {
	e, err := singularity.Bracket(v, l.Value, l.Start, l.Order)
	if err != nil {
		return singularity.Expr{}, err
	}
	if l.End == nil {
		return e, nil
	}
	d := new(big.Rat).Sub(l.End, l.Start)
	for i := 0; i <= l.Order; i++ {
		f := new(big.Rat).SetInt(new(big.Int).Binomial(int64(l.Order), int64(i)))
		for k := 0; k < l.Order-i; k++ {
			f.Mul(f, d)
		}
		c, err := singularity.Bracket(v, l.Value.Scale(f), l.End, i)
		if err != nil {
			return singularity.Expr{}, err
		}
		e = e.Sub(c)
	}
	return e, nil
}

func (b *Beam) checkLoad(l Load) error {
	if l.Start == nil {
		return configErrorf("load has no start position")
	}
	if l.Order < -2 {
		return configErrorf("load order %d is below -2", l.Order)
	}
	if l.End != nil && l.Order < 0 {
		return configErrorf("end only valid for distributed loads")
	}
	if l.End != nil && l.End.Cmp(l.Start) <= 0 {
		return configErrorf("load ends at %s before it starts at %s", l.End.RatString(), l.Start.RatString())
	}
	if l.Start.Sign() < 0 || l.Start.Cmp(b.length) > 0 {
		return configErrorf("load position %s lies outside the beam [0, %s]", l.Start.RatString(), b.length.RatString())
	}
	if l.Value.Has(b.variable) {
		return configErrorf("load magnitude %s depends on the position variable %s", l.Value, b.variable)
	}
	return nil
}

// ApplyLoad adds a load record. Any solved state is discarded.
func (b *Beam) ApplyLoad(l Load) error {
	if err := b.checkLoad(l); err != nil {
		return err
	}
	if _, err := l.expr(b.variable); err != nil {
		return &ConfigError{Msg: err.Error()}
	}
	b.loads = append(b.loads, l)
	b.invalidate()
	b.log.Debug("load applied", "load", l.String())
	return nil
}

// RemoveLoad removes a previously applied record; the record must match
// exactly. Reaction loads of supports cannot be removed.
func (b *Beam) RemoveLoad(l Load) error {
	for _, s := range b.supports {
		for _, r := range s.loads() {
			if r.Equal(l) {
				return configErrorf("%s is the reaction of the %s support at %s", l, s.Kind, s.At.RatString())
			}
		}
	}
	for i, have := range b.loads {
		if have.Equal(l) {
			b.loads = append(b.loads[:i:i], b.loads[i+1:]...)
			b.invalidate()
			b.log.Debug("load removed", "load", l.String())
			return nil
		}
	}
	return configErrorf("no such load distribution exists: %s", l)
}

// AppliedLoads returns the load records in application order, including the
// reaction loads introduced by supports.
func (b *Beam) AppliedLoads() []Load {
	return append([]Load(nil), b.loads...)
}

// OriginalLoad returns the load expression with reactions left as symbols
func (b *Beam) OriginalLoad() singularity.Expr {
	if b.cache == nil {
		e := singularity.New(b.variable)
		for _, l := range b.loads {
			le, _ := l.expr(b.variable)
			e = e.Add(le)
		}
		b.cache = &e
	}
	return *b.cache
}

// Load returns the load expression with solved reactions substituted
func (b *Beam) Load() singularity.Expr {
	e := b.OriginalLoad()
	if len(b.reactions) == 0 {
		return e
	}
	out, err := e.Subs(b.reactions)
	if err != nil {
		return e
	}
	return out
}

func (b *Beam) invalidate() {
	b.cache = nil
	b.solved = false
	b.reactions = nil
	b.hinge = nil
	b.ild = ildState{}
}
