package diagram

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
)

// Curve is a sampled response curve
type Curve struct {
	Name  string
	Unit  string
	X     []float64
	Y     []float64
	Marks []Mark
}

// Mark highlights a point of interest on a curve
type Mark struct {
	X, Y  float64
	Label string
}

// PlotCurve renders a curve in the terminal
func PlotCurve(c Curve, width, height int) string {
	if len(c.Y) == 0 {
		return ""
	}
	caption := c.Name
	if c.Unit != "" {
		caption = fmt.Sprintf("%s (%s)", c.Name, c.Unit)
	}
	if len(c.X) > 1 {
		caption = fmt.Sprintf("%s, x from %g to %g", caption, c.X[0], c.X[len(c.X)-1])
	}
	return asciigraph.Plot(c.Y,
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.Precision(3),
		asciigraph.Caption(caption),
	)
}
