package model

import (
	"fmt"
	"log/slog"
	"math/big"
	"strconv"

	"github.com/alexiusacademia/gobeam/internal/beam"
	"github.com/alexiusacademia/gobeam/internal/nscp"
	"github.com/alexiusacademia/gobeam/internal/section"
	"github.com/alexiusacademia/gobeam/internal/symbolic"
)

// Build assembles the beam with every load scaled by its factor in combo.
// Loads whose factor is zero are left out.
func (p *Problem) Build(combo nscp.LoadCombination, log *slog.Logger) (*beam.Beam, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	var opts []beam.Option
	if p.Variable != "" {
		opts = append(opts, beam.WithVariable(p.Variable))
	}
	if p.Area != "" {
		opts = append(opts, beam.WithArea(symbolic.MustParse(p.Area)))
	}
	if log != nil {
		opts = append(opts, beam.WithLogger(log))
	}

	parts := make([]*beam.Beam, len(p.Spans))
	for k, s := range p.Spans {
		b, err := s.build(fmt.Sprintf("%s span %d", p.Name, k+1), opts)
		if err != nil {
			return nil, fmt.Errorf("span %d: %w", k+1, err)
		}
		parts[k] = b
	}
	b := parts[0]
	if len(parts) == 2 {
		via := beam.FixedJoin
		if p.Join == "hinge" {
			via = beam.HingeJoin
		}
		joined, err := beam.Join(parts[0], parts[1], via)
		if err != nil {
			return nil, err
		}
		b = joined
	}

	for i, s := range p.Supports {
		at, _ := parsePosition(s.At)
		kind, _ := beam.ParseSupportKind(s.Type)
		if _, err := b.ApplySupport(at, kind); err != nil {
			return nil, fmt.Errorf("support %d: %w", i+1, err)
		}
	}
	for i, l := range p.Loads {
		loads, err := l.records(combo)
		if err != nil {
			return nil, fmt.Errorf("load %d: %w", i+1, err)
		}
		for _, r := range loads {
			if err := b.ApplyLoad(r); err != nil {
				return nil, fmt.Errorf("load %d: %w", i+1, err)
			}
		}
	}

	slopes, err := conditions(p.Boundary.Slope)
	if err != nil {
		return nil, err
	}
	defls, err := conditions(p.Boundary.Deflection)
	if err != nil {
		return nil, err
	}
	// supports already contribute their own conditions
	if len(slopes) > 0 {
		s, _ := b.BoundaryConditions()
		if err := b.SetSlopeBCs(append(s, slopes...)...); err != nil {
			return nil, err
		}
	}
	if len(defls) > 0 {
		_, d := b.BoundaryConditions()
		if err := b.SetDeflectionBCs(append(d, defls...)...); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Structure builds the beam with its supports and boundary conditions but
// without any applied loads, as used for influence lines
func (p *Problem) Structure(log *slog.Logger) (*beam.Beam, error) {
	bare := *p
	bare.Loads = nil
	return bare.Build(nscp.Service, log)
}

// SolveUnknowns returns the symbols to solve for: every support reaction plus
// any extra unknowns named in the document
func (p *Problem) SolveUnknowns(b *beam.Beam) []string {
	out := b.ReactionSymbols()
	seen := make(map[string]bool, len(out))
	for _, u := range out {
		seen[u] = true
	}
	for _, u := range p.Unknowns {
		if !seen[u] {
			out = append(out, u)
			seen[u] = true
		}
	}
	return out
}

// Numbers returns the symbol values listed in the document
func (p *Problem) Numbers() beam.Values {
	vals := make(beam.Values, len(p.Values))
	for _, v := range p.Values {
		vals[v.Symbol] = v.Value
	}
	return vals
}

func (s Span) build(name string, opts []beam.Option) (*beam.Beam, error) {
	length, _ := parsePosition(s.Length)
	var e symbolic.Poly
	if s.Material != "" {
		m, err := nscp.Modulus(s.Material, s.Fc)
		if err != nil {
			return nil, err
		}
		e = symbolic.Const(decimal(m))
	} else {
		e = symbolic.MustParse(s.E)
	}

	var shape *section.Section
	i := symbolic.Int(1)
	if s.Section != nil {
		sec, err := s.Section.Build(name)
		if err != nil {
			return nil, err
		}
		shape = sec
	} else {
		i = symbolic.MustParse(s.I)
	}

	b, err := beam.New(length, e, i, opts...)
	if err != nil {
		return nil, err
	}
	if shape != nil {
		if err := b.SetCrossSection(shape); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// records turns a document load into beam load records under combo
func (l Load) records(combo nscp.LoadCombination) ([]beam.Load, error) {
	f, err := combo.Factor(l.Case)
	if err != nil {
		return nil, err
	}
	if f == 0 {
		return nil, nil
	}
	sign, err := l.sign()
	if err != nil {
		return nil, err
	}
	scale := new(big.Rat).Mul(decimal(f), big.NewRat(sign, 1))
	value, err := symbolic.Parse(l.Value)
	if err != nil {
		return nil, err
	}
	value = value.Scale(scale)

	switch l.Type {
	case "point":
		at, _ := parsePosition(l.At)
		return []beam.Load{beam.PointLoad(value, at)}, nil
	case "moment":
		at, _ := parsePosition(l.At)
		return []beam.Load{beam.MomentLoad(value, at)}, nil
	}

	start, _ := parsePosition(l.Start)
	var end *big.Rat
	if l.End != "" {
		end, _ = parsePosition(l.End)
	}
	if l.EndValue != "" {
		w2, err := symbolic.Parse(l.EndValue)
		if err != nil {
			return nil, err
		}
		return beam.TrapezoidLoad(value, w2.Scale(scale), start, end)
	}
	return []beam.Load{beam.DistributedLoad(value, start, l.Order, end)}, nil
}

func conditions(cs []Condition) ([]beam.Condition, error) {
	out := make([]beam.Condition, 0, len(cs))
	for _, c := range cs {
		bc, err := c.condition()
		if err != nil {
			return nil, err
		}
		out = append(out, bc)
	}
	return out, nil
}

// decimal converts a factor or modulus to a rational via its shortest decimal form
func decimal(v float64) *big.Rat {
	r, ok := new(big.Rat).SetString(strconv.FormatFloat(v, 'g', -1, 64))
	if !ok {
		return new(big.Rat)
	}
	return r
}
