package report

import (
	"io"

	"github.com/alexiusacademia/gobeam/internal/diagram"
	"github.com/xuri/excelize/v2"
)

const (
	summarySheet = "Summary"
	curvesSheet  = "Curves"
)

// WriteWorkbook writes the summary and the sampled curves as an XLSX workbook
func WriteWorkbook(w io.Writer, s Summary, curves []diagram.Curve) error {
	xs, err := columns(curves)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	row := 1
	put := func(values ...interface{}) error {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		row++
		return f.SetSheetRow(summarySheet, cell, &values)
	}
	heading := func(text string) error {
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := put(text); err != nil {
			return err
		}
		return f.SetCellStyle(summarySheet, cell, cell, bold)
	}

	if err := heading(s.Title); err != nil {
		return err
	}
	if s.Combination != "" {
		if err := put("Load combination", s.Combination); err != nil {
			return err
		}
	}
	if !s.Created.IsZero() {
		if err := put("Created", s.Created.Format("2006-01-02 15:04")); err != nil {
			return err
		}
	}
	for _, n := range s.Notes {
		if err := put(n); err != nil {
			return err
		}
	}
	for _, block := range []struct {
		title   string
		entries []Entry
	}{
		{"Reactions", s.Reactions},
		{"Results", s.Results},
	} {
		if len(block.entries) == 0 {
			continue
		}
		row++
		if err := heading(block.title); err != nil {
			return err
		}
		for _, e := range block.entries {
			values := []interface{}{e.Label, e.Symbolic}
			if e.Numeric {
				values = append(values, e.Value, e.Unit)
			}
			if err := put(values...); err != nil {
				return err
			}
		}
	}
	if err := f.SetColWidth(summarySheet, "A", "B", 28); err != nil {
		return err
	}

	if len(curves) > 0 {
		if _, err := f.NewSheet(curvesSheet); err != nil {
			return err
		}
		header := []interface{}{"x"}
		for _, c := range curves {
			name := c.Name
			if c.Unit != "" {
				name += " (" + c.Unit + ")"
			}
			header = append(header, name)
		}
		if err := f.SetSheetRow(curvesSheet, "A1", &header); err != nil {
			return err
		}
		last, _ := excelize.CoordinatesToCellName(len(header), 1)
		if err := f.SetCellStyle(curvesSheet, "A1", last, bold); err != nil {
			return err
		}
		for i, x := range xs {
			values := []interface{}{x}
			for _, c := range curves {
				values = append(values, c.Y[i])
			}
			cell, _ := excelize.CoordinatesToCellName(1, i+2)
			if err := f.SetSheetRow(curvesSheet, cell, &values); err != nil {
				return err
			}
		}
	}

	_, err = f.WriteTo(w)
	return err
}
