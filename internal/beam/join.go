package beam

import (
	"math/big"

	"github.com/alexiusacademia/gobeam/internal/symbolic"
)

// Join returns a new beam made of a followed by c, connected by a fixed
// joint or a hinge. Only geometry and stiffness are carried over; the new
// beam starts without loads or supports and neither source is modified.
func Join(a, c *Beam, via JoinKind) (*Beam, error) {
	if a == nil || c == nil {
		return nil, configErrorf("cannot join a nil beam")
	}
	if a.variable != c.variable {
		return nil, configErrorf("beams use different variables %s and %s", a.variable, c.variable)
	}
	if via != FixedJoin && via != HingeJoin {
		return nil, configErrorf("beams can only be joined by a fixed joint or a hinge")
	}
	if via == HingeJoin && (len(a.segments) != 1 || len(c.segments) != 1) {
		return nil, configErrorf("each side of a hinge must have uniform stiffness")
	}

	at := new(big.Rat).Set(a.length)
	length := new(big.Rat).Add(a.length, c.length)
	segs := make([]Segment, 0, len(a.segments)+len(c.segments))
	for _, s := range a.segments {
		segs = append(segs, Segment{Start: s.Start, End: s.End, E: s.E, I: s.I})
	}
	for _, s := range c.segments {
		segs = append(segs, Segment{
			Start: new(big.Rat).Add(s.Start, at),
			End:   new(big.Rat).Add(s.End, at),
			E:     s.E,
			I:     s.I,
		})
	}
	if via == FixedJoin {
		segs = mergeSegments(segs)
	}

	var area symbolic.Poly
	if a.area.Equal(c.area) {
		area = a.area
	}
	j := &Beam{
		length:   length,
		variable: a.variable,
		baseChar: a.baseChar,
		area:     area,
		segments: segs,
		joint:    via,
		jointAt:  at,
		log:      a.log,
	}
	j.log.Debug("beams joined", "kind", via.String(), "at", at.RatString())
	return j, nil
}
