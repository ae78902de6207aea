// Package model reads beam problem documents and turns them into beams.
//
// A document lists one or two spans, their supports, the applied loads and
// any extra boundary conditions. Positions and magnitudes are strings so
// that exact fractions ("5/2") and symbols ("w") survive the round trip;
// plain numbers are accepted as well.
package model

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/alexiusacademia/gobeam/internal/section"
	"github.com/spf13/viper"
)

// Problem is a complete beam problem as written by the user
type Problem struct {
	Name        string `mapstructure:"name"`
	Description string `mapstructure:"description"`
	Variable    string `mapstructure:"variable"`
	Units       Units  `mapstructure:"units"`

	Spans    []Span    `mapstructure:"spans"`
	Join     string    `mapstructure:"join"` // fixed or hinge, for two spans
	Area     string    `mapstructure:"area"`
	Supports []Support `mapstructure:"supports"`
	Loads    []Load    `mapstructure:"loads"`
	Boundary Boundary  `mapstructure:"boundary"`
	Unknowns []string  `mapstructure:"unknowns"`

	// Values are numbers for the symbols left in the results. They are a
	// list because document keys are case-insensitive.
	Values []Value `mapstructure:"values"`
}

// Value binds a number to a symbol
type Value struct {
	Symbol string  `mapstructure:"symbol"`
	Value  float64 `mapstructure:"value"`
}

// Units are labels for reports only; no conversion takes place
type Units struct {
	Length string `mapstructure:"length"`
	Force  string `mapstructure:"force"`
}

// Span is one straight part of the beam with its stiffness
type Span struct {
	Length   string         `mapstructure:"length"`
	E        string         `mapstructure:"e"`
	I        string         `mapstructure:"i"`
	Material string         `mapstructure:"material"` // steel or concrete, replaces e
	Fc       float64        `mapstructure:"fc"`
	Section  *section.Shape `mapstructure:"section"` // replaces i
}

// Support is a support at a position along the assembled beam
type Support struct {
	At   string `mapstructure:"at"`
	Type string `mapstructure:"type"`
}

// Load is a tagged load. Point and distributed loads point down unless
// Direction says up; moments are clockwise unless Direction says ccw.
type Load struct {
	Type      string `mapstructure:"type"` // point, moment or distributed
	At        string `mapstructure:"at"`
	Start     string `mapstructure:"start"`
	End       string `mapstructure:"end"`
	Value     string `mapstructure:"value"`
	EndValue  string `mapstructure:"end_value"` // linear variation to End
	Order     int    `mapstructure:"order"`
	Direction string `mapstructure:"direction"`
	Case      string `mapstructure:"case"`
}

// Boundary lists prescribed slopes and deflections beyond those implied by supports
type Boundary struct {
	Slope      []Condition `mapstructure:"slope"`
	Deflection []Condition `mapstructure:"deflection"`
}

// Condition is a prescribed value at a position
type Condition struct {
	At    string `mapstructure:"at"`
	Value string `mapstructure:"value"`
}

// LoadFromFile reads a problem from a JSON, YAML or TOML file and validates it
func LoadFromFile(path string) (*Problem, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	return decode(v)
}

// Parse reads a problem in the given format and validates it
func Parse(r io.Reader, format string) (*Problem, error) {
	v := viper.New()
	v.SetConfigType(strings.TrimPrefix(format, "."))
	if err := v.ReadConfig(r); err != nil {
		return nil, err
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Problem, error) {
	var p Problem
	if err := v.Unmarshal(&p); err != nil {
		return nil, fmt.Errorf("invalid problem document: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}
