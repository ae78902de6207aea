package section

import (
	"errors"
	"strings"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_section01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("section01. rectangle in both vertex orders")

	r, err := Rectangle("r", 100, 200)
	if err != nil {
		tst.Errorf("rectangle: %v", err)
		return
	}
	p, err := r.Properties()
	if err != nil {
		tst.Errorf("properties: %v", err)
		return
	}
	chk.Float64(tst, "A", 1e-9, p.Area, 20000)
	chk.Float64(tst, "cy", 1e-9, p.CentroidY, 100)
	chk.Float64(tst, "Ix", 1e-3, p.Ix, 100*200*200*200/12.0)
	chk.Float64(tst, "Iy", 1e-3, p.Iy, 200*100*100*100/12.0)
	chk.Float64(tst, "Sx", 1e-6, p.SxTop, p.Ix/100)
	chk.Float64(tst, "width at mid-depth", 1e-9, r.WidthAtDepth(100), 100)

	cw := &Section{Vertices: []Point{{0, 0}, {0, 200}, {100, 200}, {100, 0}}}
	q, err := cw.Properties()
	if err != nil {
		tst.Errorf("properties: %v", err)
		return
	}
	chk.Float64(tst, "clockwise Ix", 1e-3, q.Ix, p.Ix)
	chk.Float64(tst, "clockwise A", 1e-9, q.Area, p.Area)
}

func Test_section02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("section02. I shapes")

	s, err := IShape("w", 100, 10, 180, 10, 100, 10)
	if err != nil {
		tst.Errorf("i-shape: %v", err)
		return
	}
	p, _ := s.Properties()
	chk.Float64(tst, "A", 1e-9, p.Area, 2*100*10+180*10)
	chk.Float64(tst, "cy", 1e-9, p.CentroidY, 100)
	chk.Float64(tst, "Ix", 1e-3, p.Ix, 100*200*200*200/12.0-90*180*180*180/12.0)
	chk.Float64(tst, "web width", 1e-9, s.WidthAtDepth(100), 10)

	// unequal flanges, by the parallel axis theorem
	u, err := IShape("u", 200, 20, 160, 10, 100, 20)
	if err != nil {
		tst.Errorf("i-shape: %v", err)
		return
	}
	p, _ = u.Properties()
	cy := (4000*190.0 + 1600*100.0 + 2000*10.0) / 7600
	ix := 200*20*20*20/12.0 + 4000*(190-cy)*(190-cy) +
		10*160*160*160/12.0 + 1600*(100-cy)*(100-cy) +
		100*20*20*20/12.0 + 2000*(10-cy)*(10-cy)
	chk.Float64(tst, "A", 1e-9, p.Area, 7600)
	chk.Float64(tst, "cy", 1e-9, p.CentroidY, cy)
	chk.Float64(tst, "Ix", 1e-3, p.Ix, ix)
	chk.Float64(tst, "Sx bottom", 1e-6, p.SxBottom, ix/cy)

	var ve *ValidationError
	if _, err = IShape("bad", 100, 10, 180, 120, 100, 10); !errors.As(err, &ve) {
		tst.Errorf("expected ValidationError for a wide web, got %v", err)
	}
	if _, err = Rectangle("bad", 0, 1); !errors.As(err, &ve) {
		tst.Errorf("expected ValidationError for a flat rectangle, got %v", err)
	}
	line := &Section{Vertices: []Point{{0, 0}, {1, 1}, {2, 2}}}
	if _, err = line.Properties(); !errors.As(err, &ve) {
		tst.Errorf("expected ValidationError for zero area, got %v", err)
	}
}

func Test_section03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("section03. documents")

	s, err := Parse(strings.NewReader(`
name: girder
shape:
  kind: rectangle
  width: 300
  height: 500
`), "yaml")
	if err != nil {
		tst.Errorf("parse: %v", err)
		return
	}
	chk.String(tst, s.Name, "girder")
	p, _ := s.Properties()
	chk.Float64(tst, "A", 1e-9, p.Area, 150000)

	s, err = Parse(strings.NewReader(`{"name": "tri", "vertices": [{"x": 0, "y": 0}, {"x": 3, "y": 0}, {"x": 0, "y": 3}]}`), "json")
	if err != nil {
		tst.Errorf("parse: %v", err)
		return
	}
	p, _ = s.Properties()
	chk.Float64(tst, "A", 1e-12, p.Area, 4.5)
	chk.Float64(tst, "cy", 1e-12, p.CentroidY, 1)
	// b h^3 / 36 for a triangle
	chk.Float64(tst, "Ix", 1e-12, p.Ix, 3*27/36.0)

	if _, err = Parse(strings.NewReader(`{"shape": {"kind": "hexagon"}}`), "json"); err == nil {
		tst.Errorf("unknown shape kind should fail")
	}
}
