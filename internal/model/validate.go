package model

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/Konstantin8105/errors"
	"github.com/alexiusacademia/gobeam/internal/beam"
	"github.com/alexiusacademia/gobeam/internal/nscp"
	"github.com/alexiusacademia/gobeam/internal/symbolic"
)

// Validate checks the whole document and reports every problem it finds
func (p *Problem) Validate() error {
	et := errors.New("problem " + p.Name)

	switch len(p.Spans) {
	case 0:
		et.Add(fmt.Errorf("at least one span is required"))
	case 1:
		if p.Join != "" {
			et.Add(fmt.Errorf("join %q needs two spans", p.Join))
		}
	case 2:
		if p.Join != "fixed" && p.Join != "hinge" {
			et.Add(fmt.Errorf("two spans must be joined by fixed or hinge, got %q", p.Join))
		}
	default:
		et.Add(fmt.Errorf("at most two spans can be joined, got %d", len(p.Spans)))
	}

	for i, s := range p.Spans {
		if err := s.validate(); err != nil {
			et.Add(fmt.Errorf("span %d: %w", i+1, err))
		}
	}
	if p.Area != "" {
		if _, err := symbolic.Parse(p.Area); err != nil {
			et.Add(fmt.Errorf("area: %w", err))
		}
	}
	for i, s := range p.Supports {
		if _, err := parsePosition(s.At); err != nil {
			et.Add(fmt.Errorf("support %d: %w", i+1, err))
		}
		if _, err := beam.ParseSupportKind(s.Type); err != nil {
			et.Add(fmt.Errorf("support %d: %w", i+1, err))
		}
	}
	for i, l := range p.Loads {
		if err := l.validate(); err != nil {
			et.Add(fmt.Errorf("load %d: %w", i+1, err))
		}
	}
	for i, c := range p.Boundary.Slope {
		if _, err := c.condition(); err != nil {
			et.Add(fmt.Errorf("slope condition %d: %w", i+1, err))
		}
	}
	for i, c := range p.Boundary.Deflection {
		if _, err := c.condition(); err != nil {
			et.Add(fmt.Errorf("deflection condition %d: %w", i+1, err))
		}
	}
	for _, v := range p.Values {
		if v.Symbol == "" {
			et.Add(fmt.Errorf("value %g has no symbol", v.Value))
		}
	}

	if et.IsError() {
		return et
	}
	return nil
}

func (s Span) validate() error {
	et := errors.New("span")
	if l, err := parsePosition(s.Length); err != nil {
		et.Add(fmt.Errorf("length: %w", err))
	} else if l.Sign() <= 0 {
		et.Add(fmt.Errorf("length must be positive, got %s", s.Length))
	}
	switch {
	case s.Material != "":
		if _, err := nscp.Modulus(s.Material, s.Fc); err != nil {
			et.Add(err)
		}
	case s.E == "":
		et.Add(fmt.Errorf("elastic modulus e or a material is required"))
	default:
		if _, err := symbolic.Parse(s.E); err != nil {
			et.Add(fmt.Errorf("e: %w", err))
		}
	}
	switch {
	case s.Section != nil:
		if _, err := s.Section.Build("span"); err != nil {
			et.Add(fmt.Errorf("section: %w", err))
		}
	case s.I == "":
		et.Add(fmt.Errorf("second moment i or a section is required"))
	default:
		if _, err := symbolic.Parse(s.I); err != nil {
			et.Add(fmt.Errorf("i: %w", err))
		}
	}
	if et.IsError() {
		return et
	}
	return nil
}

func (l Load) validate() error {
	et := errors.New(l.Type + " load")
	if _, err := symbolic.Parse(l.Value); err != nil {
		et.Add(fmt.Errorf("value: %w", err))
	}
	if _, err := nscp.Service.Factor(l.Case); err != nil {
		et.Add(err)
	}
	if _, err := l.sign(); err != nil {
		et.Add(err)
	}
	switch l.Type {
	case "point", "moment":
		if _, err := parsePosition(l.At); err != nil {
			et.Add(fmt.Errorf("at: %w", err))
		}
		if l.End != "" || l.EndValue != "" {
			et.Add(fmt.Errorf("end only valid for distributed loads"))
		}
	case "distributed":
		if _, err := parsePosition(l.Start); err != nil {
			et.Add(fmt.Errorf("start: %w", err))
		}
		if l.End != "" {
			if _, err := parsePosition(l.End); err != nil {
				et.Add(fmt.Errorf("end: %w", err))
			}
		}
		if l.EndValue != "" {
			if l.End == "" {
				et.Add(fmt.Errorf("end_value needs an end position"))
			}
			if l.Order != 0 {
				et.Add(fmt.Errorf("end_value describes a linear load, order must be 0"))
			}
			if _, err := symbolic.Parse(l.EndValue); err != nil {
				et.Add(fmt.Errorf("end_value: %w", err))
			}
		}
		if l.Order < 0 {
			et.Add(fmt.Errorf("distributed order must be 0 or more, got %d", l.Order))
		}
	default:
		et.Add(fmt.Errorf("unknown load type %q", l.Type))
	}
	if et.IsError() {
		return et
	}
	return nil
}

// sign maps the direction of a load to +1 or -1
func (l Load) sign() (int64, error) {
	d := strings.ToLower(l.Direction)
	if l.Type == "moment" {
		switch d {
		case "", "cw", "clockwise":
			return 1, nil
		case "ccw", "counterclockwise", "counter-clockwise":
			return -1, nil
		}
		return 0, fmt.Errorf("moment direction must be cw or ccw, got %q", l.Direction)
	}
	switch d {
	case "", "down", "-":
		return -1, nil
	case "up", "+":
		return 1, nil
	}
	return 0, fmt.Errorf("direction must be down or up, got %q", l.Direction)
}

func (c Condition) condition() (beam.Condition, error) {
	at, err := parsePosition(c.At)
	if err != nil {
		return beam.Condition{}, err
	}
	v := c.Value
	if v == "" {
		v = "0"
	}
	val, err := symbolic.Parse(v)
	if err != nil {
		return beam.Condition{}, err
	}
	return beam.Condition{At: at, Value: val}, nil
}

// parsePosition accepts integers, decimals and fractions
func parsePosition(s string) (*big.Rat, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("position is missing")
	}
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, fmt.Errorf("invalid position %q", s)
	}
	return r, nil
}
