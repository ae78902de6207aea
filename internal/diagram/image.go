package diagram

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

var (
	curveColor = color.RGBA{R: 0, G: 0, B: 139, A: 255}
	markColor  = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	axisColor  = color.RGBA{R: 128, G: 128, B: 128, A: 255}
)

// curvePlot builds the plot of a single curve with its zero line and marks
func curvePlot(c Curve) (*plot.Plot, error) {
	if len(c.X) != len(c.Y) || len(c.X) < 2 {
		return nil, fmt.Errorf("curve %s needs matching samples, got %d x and %d y", c.Name, len(c.X), len(c.Y))
	}
	p := plot.New()
	p.Title.Text = c.Name
	p.X.Label.Text = "x"
	p.Y.Label.Text = c.Name
	if c.Unit != "" {
		p.Y.Label.Text = fmt.Sprintf("%s (%s)", c.Name, c.Unit)
	}
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(c.X))
	for i := range c.X {
		pts[i] = plotter.XY{X: c.X[i], Y: c.Y[i]}
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.LineStyle.Width = vg.Points(2)
	line.LineStyle.Color = curveColor
	p.Add(line)

	zero, err := plotter.NewLine(plotter.XYs{{X: c.X[0], Y: 0}, {X: c.X[len(c.X)-1], Y: 0}})
	if err != nil {
		return nil, err
	}
	zero.LineStyle.Color = axisColor
	zero.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
	p.Add(zero)

	if len(c.Marks) > 0 {
		xys := make(plotter.XYs, len(c.Marks))
		labels := make([]string, len(c.Marks))
		for i, m := range c.Marks {
			xys[i] = plotter.XY{X: m.X, Y: m.Y}
			labels[i] = m.Label
		}
		marks, err := plotter.NewScatter(xys)
		if err != nil {
			return nil, err
		}
		marks.GlyphStyle.Color = markColor
		marks.GlyphStyle.Radius = vg.Points(4)
		marks.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(marks)

		l, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
		if err != nil {
			return nil, err
		}
		p.Add(l)
	}
	return p, nil
}

// ExportCurve saves one curve; the format follows the extension (png, svg, pdf)
func ExportCurve(c Curve, filename string) error {
	p, err := curvePlot(c)
	if err != nil {
		return err
	}
	if err := makeDir(filename); err != nil {
		return err
	}
	switch filepath.Ext(filename) {
	case ".png", ".svg", ".pdf", ".jpg", ".jpeg":
		return p.Save(8*vg.Inch, 4*vg.Inch, filename)
	default:
		return p.Save(8*vg.Inch, 4*vg.Inch, filename+".png")
	}
}

// ExportCurves stacks several curves sharing the x axis into one PNG
func ExportCurves(curves []Curve, filename string) error {
	if len(curves) == 0 {
		return fmt.Errorf("no curves to export")
	}
	plots := make([][]*plot.Plot, len(curves))
	for i, c := range curves {
		p, err := curvePlot(c)
		if err != nil {
			return err
		}
		plots[i] = []*plot.Plot{p}
	}

	width := 8 * vg.Inch
	height := vg.Length(len(curves)) * 3 * vg.Inch
	img := vgimg.New(width, height)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows:      len(curves),
		Cols:      1,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadY:      vg.Millimeter * 4,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
	}
	canvases := plot.Align(plots, tiles, dc)
	for i := range plots {
		plots[i][0].Draw(canvases[i][0])
	}

	if filepath.Ext(filename) != ".png" {
		filename += ".png"
	}
	if err := makeDir(filename); err != nil {
		return err
	}
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ExportSectionOutline draws a section polygon with its centroid
func ExportSectionOutline(name string, vertices []Point, cx, cy float64, filename string) error {
	if len(vertices) < 3 {
		return fmt.Errorf("section %s needs at least 3 vertices", name)
	}
	p := plot.New()
	p.Title.Text = name
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	outline := make(plotter.XYs, len(vertices))
	for i, v := range vertices {
		outline[i] = plotter.XY{X: v.X, Y: v.Y}
	}
	poly, err := plotter.NewPolygon(outline)
	if err != nil {
		return err
	}
	poly.Color = color.RGBA{R: 100, G: 149, B: 237, A: 150}
	poly.LineStyle.Color = curveColor
	p.Add(poly)

	c, err := plotter.NewScatter(plotter.XYs{{X: cx, Y: cy}})
	if err != nil {
		return err
	}
	c.GlyphStyle.Color = markColor
	c.GlyphStyle.Shape = draw.CrossGlyph{}
	c.GlyphStyle.Radius = vg.Points(5)
	p.Add(c)

	if err := makeDir(filename); err != nil {
		return err
	}
	return p.Save(6*vg.Inch, 6*vg.Inch, filename)
}

func makeDir(filename string) error {
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		return os.MkdirAll(dir, 0755)
	}
	return nil
}
