package diagram

import (
	"fmt"
	"math"
	"strings"
)

// Point represents a 2D coordinate for section vertices
type Point struct {
	X float64
	Y float64
}

// BeamDiagramData holds what is needed to sketch a beam
type BeamDiagramData struct {
	Length float64
	Hinge  float64 // position of the hinge, 0 if there is none

	Supports []SupportMark
	Loads    []LoadMark
}

// SupportMark places a support symbol
type SupportMark struct {
	At   float64
	Kind string // pin, roller or fixed
}

// LoadMark places a load symbol
type LoadMark struct {
	Kind string // point, moment or distributed
	At   float64
	End  float64 // distributed only; 0 runs to the end of the beam
	Up   bool    // forces
	CW   bool    // moments
}

// sketchWidth is the number of columns used for the beam line
const sketchWidth = 61

// DrawASCIIBeam creates an ASCII sketch of the beam with its supports and loads
func DrawASCIIBeam(data BeamDiagramData) string {
	if data.Length <= 0 {
		return ""
	}
	col := func(x float64) int {
		c := int(math.Round(x / data.Length * float64(sketchWidth-1)))
		return min(max(c, 0), sketchWidth-1)
	}
	row := func() []rune { return []rune(strings.Repeat(" ", sketchWidth)) }

	distributed, point, line, supports := row(), row(), []rune(strings.Repeat("═", sketchWidth)), row()
	for _, l := range data.Loads {
		switch l.Kind {
		case "distributed":
			end := l.End
			if end <= l.At {
				end = data.Length
			}
			mark := '▼'
			if l.Up {
				mark = '▲'
			}
			for c := col(l.At); c <= col(end); c++ {
				distributed[c] = mark
			}
		case "moment":
			mark := '↺'
			if l.CW {
				mark = '↻'
			}
			point[col(l.At)] = mark
		default:
			mark := '↓'
			if l.Up {
				mark = '↑'
			}
			point[col(l.At)] = mark
		}
	}
	if data.Hinge > 0 {
		line[col(data.Hinge)] = 'o'
	}
	for _, s := range data.Supports {
		c := col(s.At)
		switch s.Kind {
		case "fixed":
			supports[c] = '▓'
			line[c] = '█'
		case "roller":
			supports[c] = '●'
		default:
			supports[c] = '▲'
		}
	}

	var sb strings.Builder
	if strings.TrimSpace(string(distributed)) != "" {
		sb.WriteString("  " + string(distributed) + "\n")
	}
	sb.WriteString("  " + string(point) + "\n")
	sb.WriteString("  " + string(line) + "\n")
	sb.WriteString("  " + string(supports) + "\n")

	end := fmt.Sprintf("%g", data.Length)
	gap := max(sketchWidth-1-len(end), 1)
	sb.WriteString("  0" + strings.Repeat(" ", gap) + end + "\n")
	return sb.String()
}

// DrawASCIISection rasterises a section outline into a block of characters
func DrawASCIISection(vertices []Point, cols, rows int) string {
	if len(vertices) < 3 || cols < 2 || rows < 2 {
		return ""
	}
	minX, maxX := vertices[0].X, vertices[0].X
	minY, maxY := vertices[0].Y, vertices[0].Y
	for _, v := range vertices {
		minX, maxX = math.Min(minX, v.X), math.Max(maxX, v.X)
		minY, maxY = math.Min(minY, v.Y), math.Max(maxY, v.Y)
	}

	var sb strings.Builder
	for r := 0; r < rows; r++ {
		y := maxY - (float64(r)+0.5)/float64(rows)*(maxY-minY)
		sb.WriteString("       ")
		for c := 0; c < cols; c++ {
			x := minX + (float64(c)+0.5)/float64(cols)*(maxX-minX)
			if inside(vertices, x, y) {
				sb.WriteRune('█')
			} else {
				sb.WriteRune(' ')
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// inside is the even-odd ray casting test
func inside(vertices []Point, x, y float64) bool {
	in := false
	n := len(vertices)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := vertices[i], vertices[j]
		if (a.Y > y) != (b.Y > y) && x < (b.X-a.X)*(y-a.Y)/(b.Y-a.Y)+a.X {
			in = !in
		}
	}
	return in
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := len([]rune(title))
	for _, line := range lines {
		if n := len([]rune(line)); n > maxLen {
			maxLen = n
		}
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen-4, title))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen-4, line))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}
