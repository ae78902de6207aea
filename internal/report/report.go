// Package report writes analysis results to spreadsheets and PDF summaries.
package report

import (
	"fmt"
	"time"

	"github.com/alexiusacademia/gobeam/internal/diagram"
)

// Entry is one reported quantity, exact and optionally numeric
type Entry struct {
	Label    string
	Symbolic string
	Value    float64
	Numeric  bool
	Unit     string
}

// Summary collects everything printed at the top of a report
type Summary struct {
	Title       string
	Combination string
	Created     time.Time
	Notes       []string // loads, supports and other inputs, one per line
	Reactions   []Entry
	Results     []Entry
}

// value formats the numeric part of an entry
func (e Entry) value() string {
	if !e.Numeric {
		return ""
	}
	if e.Unit == "" {
		return fmt.Sprintf("%.6g", e.Value)
	}
	return fmt.Sprintf("%.6g %s", e.Value, e.Unit)
}

// columns checks that the curves share one set of x samples
func columns(curves []diagram.Curve) ([]float64, error) {
	if len(curves) == 0 {
		return nil, nil
	}
	xs := curves[0].X
	for _, c := range curves {
		if len(c.X) != len(xs) || len(c.Y) != len(xs) {
			return nil, fmt.Errorf("curve %s has %d samples, expected %d", c.Name, len(c.Y), len(xs))
		}
	}
	return xs, nil
}
