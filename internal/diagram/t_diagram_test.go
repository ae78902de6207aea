package diagram

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_diagram01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("diagram01. beam sketch")

	s := DrawASCIIBeam(BeamDiagramData{
		Length: 10,
		Hinge:  5,
		Supports: []SupportMark{
			{At: 0, Kind: "fixed"},
			{At: 10, Kind: "roller"},
		},
		Loads: []LoadMark{
			{Kind: "distributed", At: 0, End: 5},
			{Kind: "point", At: 7.5, Up: true},
			{Kind: "moment", At: 10, CW: true},
		},
	})
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	chk.Int(tst, "rows", len(lines), 5)

	// every row is prefixed by two spaces, columns map 10 -> 60
	at := func(row, col int) rune { return []rune(lines[row])[col+2] }
	chk.String(tst, string(at(0, 0)), "▼")
	chk.String(tst, string(at(0, 30)), "▼")
	chk.String(tst, string(at(0, 31)), " ")
	chk.String(tst, string(at(1, 45)), "↑")
	chk.String(tst, string(at(1, 60)), "↻")
	chk.String(tst, string(at(2, 30)), "o")
	chk.String(tst, string(at(2, 0)), "█")
	chk.String(tst, string(at(3, 0)), "▓")
	chk.String(tst, string(at(3, 60)), "●")
	if !strings.HasSuffix(lines[4], "10") {
		tst.Errorf("axis row %q should end with the length", lines[4])
	}

	chk.String(tst, DrawASCIIBeam(BeamDiagramData{}), "")
}

func Test_diagram02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("diagram02. section raster and summary box")

	square := []Point{{0, 0}, {4, 0}, {4, 4}, {0, 4}}
	s := DrawASCIISection(square, 4, 2)
	chk.Int(tst, "filled cells", strings.Count(s, "█"), 8)

	tee := []Point{{1, 0}, {2, 0}, {2, 2}, {3, 2}, {3, 3}, {0, 3}, {0, 2}, {1, 2}}
	rows := strings.Split(strings.TrimRight(DrawASCIISection(tee, 3, 3), "\n"), "\n")
	chk.String(tst, strings.TrimSpace(rows[0]), "███")
	chk.String(tst, strings.TrimSpace(rows[2]), "█")

	box := DrawSummaryBox("RESULT", []string{"Mmax = 10", "at x = 2"})
	blines := strings.Split(strings.TrimRight(box, "\n"), "\n")
	chk.Int(tst, "box rows", len(blines), 6)
	for _, l := range blines {
		if len([]rune(l)) != len([]rune(blines[0])) {
			tst.Errorf("box row %q is not aligned", l)
		}
	}
}

func Test_diagram03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("diagram03. terminal and image curves")

	c := Curve{
		Name:  "Bending moment",
		Unit:  "kN-m",
		X:     []float64{0, 1, 2, 3, 4},
		Y:     []float64{0, 5, 10, 5, 0},
		Marks: []Mark{{X: 2, Y: 10, Label: "max"}},
	}
	out := PlotCurve(c, 40, 8)
	if !strings.Contains(out, "Bending moment (kN-m)") {
		tst.Errorf("caption missing from\n%s", out)
	}
	chk.String(tst, PlotCurve(Curve{}, 40, 8), "")

	dir := tst.TempDir()
	one := filepath.Join(dir, "moment.png")
	if err := ExportCurve(c, one); err != nil {
		tst.Errorf("export: %v", err)
		return
	}
	if _, err := os.Stat(one); err != nil {
		tst.Errorf("missing image: %v", err)
	}

	stack := filepath.Join(dir, "out", "curves")
	if err := ExportCurves([]Curve{c, c}, stack); err != nil {
		tst.Errorf("export curves: %v", err)
		return
	}
	if _, err := os.Stat(stack + ".png"); err != nil {
		tst.Errorf("missing stacked image: %v", err)
	}

	if err := ExportCurve(Curve{Name: "bad", X: []float64{1}, Y: []float64{1, 2}}, one); err == nil {
		tst.Errorf("mismatched samples should fail")
	}
}
