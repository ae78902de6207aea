package report

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alexiusacademia/gobeam/internal/diagram"
	"github.com/cpmech/gosl/chk"
	"github.com/xuri/excelize/v2"
)

func sample() (Summary, []diagram.Curve) {
	s := Summary{
		Title:       "Simple span",
		Combination: "2 (1.2D + 1.6L)",
		Created:     time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		Notes:       []string{"point load 10 kN ↓ at x = 2"},
		Reactions: []Entry{
			{Label: "R_0", Symbolic: "5", Value: 5, Numeric: true, Unit: "kN"},
			{Label: "R_4", Symbolic: "1/2*P"},
		},
		Results: []Entry{{Label: "max |M|", Symbolic: "at x = 2", Value: 10, Numeric: true, Unit: "kN-m"}},
	}
	xs := []float64{0, 1, 2, 3, 4}
	curves := []diagram.Curve{
		{Name: "V", Unit: "kN", X: xs, Y: []float64{-5, -5, 5, 5, 5}},
		{Name: "M", Unit: "kN-m", X: xs, Y: []float64{0, 5, 10, 5, 0}},
	}
	return s, curves
}

func Test_report01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("report01. workbook")

	s, curves := sample()
	var buf bytes.Buffer
	if err := WriteWorkbook(&buf, s, curves); err != nil {
		tst.Errorf("workbook: %v", err)
		return
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		tst.Errorf("open: %v", err)
		return
	}
	defer f.Close()

	title, _ := f.GetCellValue(summarySheet, "A1")
	chk.String(tst, title, "Simple span")
	rows, err := f.GetRows(curvesSheet)
	if err != nil {
		tst.Errorf("rows: %v", err)
		return
	}
	chk.Int(tst, "rows", len(rows), 6)
	chk.Strings(tst, "header", rows[0], []string{"x", "V (kN)", "M (kN-m)"})
	chk.Strings(tst, "midspan", rows[3], []string{"2", "5", "10"})

	bad := []diagram.Curve{curves[0], {Name: "short", X: []float64{0}, Y: []float64{0}}}
	if err = WriteWorkbook(&buf, s, bad); err == nil {
		tst.Errorf("curves with different samples should fail")
	}
}

func Test_report02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("report02. pdf summary")

	s, curves := sample()
	img := filepath.Join(tst.TempDir(), "m.png")
	if err := diagram.ExportCurve(curves[1], img); err != nil {
		tst.Errorf("image: %v", err)
		return
	}
	var buf bytes.Buffer
	if err := WritePDF(&buf, s, []string{img}); err != nil {
		tst.Errorf("pdf: %v", err)
		return
	}
	if !strings.HasPrefix(buf.String(), "%PDF") {
		tst.Errorf("output is not a PDF")
	}

	buf.Reset()
	if err := WritePDF(&buf, s, []string{filepath.Join(tst.TempDir(), "missing.png")}); err == nil {
		tst.Errorf("missing image should fail")
	}
}
