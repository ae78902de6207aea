package beam

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/alexiusacademia/gobeam/internal/symbolic"
)

// SupportKind is the restraint a support provides
type SupportKind int

const (
	Pin SupportKind = iota
	Roller
	Fixed
)

func (k SupportKind) String() string {
	switch k {
	case Pin:
		return "pin"
	case Roller:
		return "roller"
	case Fixed:
		return "fixed"
	}
	return fmt.Sprintf("SupportKind(%d)", int(k))
}

// ParseSupportKind reads "pin", "roller" or "fixed"
func ParseSupportKind(s string) (SupportKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pin", "pinned":
		return Pin, nil
	case "roller":
		return Roller, nil
	case "fixed", "fixed-end", "clamped":
		return Fixed, nil
	}
	return 0, configErrorf("unknown support kind %q", s)
}

// Support is an applied support and the reaction symbols it introduced
type Support struct {
	At        *big.Rat
	Kind      SupportKind
	Reactions []string
}

// loads returns the reaction loads the support applies: a point load R_<at>
// and, for a fixed support, a moment M_<at>
func (s Support) loads() []Load {
	out := []Load{PointLoad(symbolic.Sym(s.Reactions[0]), s.At)}
	if len(s.Reactions) > 1 {
		out = append(out, MomentLoad(symbolic.Sym(s.Reactions[1]), s.At))
	}
	return out
}

// ApplySupport registers a support, applies its reactions as unknown loads
// and records the matching zero boundary conditions. It returns the reaction
// symbols: R_<at> and, for fixed supports, M_<at>.
func (b *Beam) ApplySupport(at *big.Rat, kind SupportKind) ([]string, error) {
	if at == nil || at.Sign() < 0 || at.Cmp(b.length) > 0 {
		return nil, configErrorf("support position lies outside the beam [0, %s]", b.length.RatString())
	}
	if kind < Pin || kind > Fixed {
		return nil, configErrorf("unknown support kind %d", int(kind))
	}
	for _, s := range b.supports {
		if s.At.Cmp(at) == 0 {
			return nil, configErrorf("a %s support already exists at %s", s.Kind, at.RatString())
		}
	}

	pos := new(big.Rat).Set(at)
	zero := symbolic.Zero()
	s := Support{At: pos, Kind: kind, Reactions: []string{"R_" + positionName(pos)}}
	b.deflBCs = append(b.deflBCs, Condition{At: pos, Value: zero})
	if kind == Fixed {
		s.Reactions = append(s.Reactions, "M_"+positionName(pos))
		b.slopeBCs = append(b.slopeBCs, Condition{At: pos, Value: zero})
	}
	for _, l := range s.loads() {
		if err := b.ApplyLoad(l); err != nil {
			return nil, err
		}
	}
	syms := append([]string(nil), s.Reactions...)
	b.supports = append(b.supports, s)
	b.unknowns = append(b.unknowns, syms...)
	return syms, nil
}

// Supports returns the applied supports in order
func (b *Beam) Supports() []Support { return append([]Support(nil), b.supports...) }

// ReactionSymbols returns the unknowns introduced by supports
func (b *Beam) ReactionSymbols() []string { return append([]string(nil), b.unknowns...) }

// SetSlopeBCs replaces the slope boundary conditions
func (b *Beam) SetSlopeBCs(cs ...Condition) error {
	if err := b.checkConditions(cs); err != nil {
		return err
	}
	b.slopeBCs = append([]Condition(nil), cs...)
	b.invalidate()
	return nil
}

// SetDeflectionBCs replaces the deflection boundary conditions
func (b *Beam) SetDeflectionBCs(cs ...Condition) error {
	if err := b.checkConditions(cs); err != nil {
		return err
	}
	b.deflBCs = append([]Condition(nil), cs...)
	b.invalidate()
	return nil
}

// BoundaryConditions returns the slope and deflection conditions
func (b *Beam) BoundaryConditions() (slope, deflection []Condition) {
	return append([]Condition(nil), b.slopeBCs...), append([]Condition(nil), b.deflBCs...)
}

func (b *Beam) checkConditions(cs []Condition) error {
	for _, c := range cs {
		if c.At == nil || c.At.Sign() < 0 || c.At.Cmp(b.length) > 0 {
			return configErrorf("boundary condition position lies outside the beam [0, %s]", b.length.RatString())
		}
		if c.Value.Has(b.variable) {
			return configErrorf("boundary value %s depends on %s", c.Value, b.variable)
		}
	}
	return nil
}
