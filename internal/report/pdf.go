package report

import (
	"fmt"
	"io"

	"github.com/phpdave11/gofpdf"
)

// WritePDF writes a one-document summary with optional PNG diagrams
func WritePDF(w io.Writer, s Summary, images []string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(s.Title))
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	if s.Combination != "" {
		pdf.Cell(0, 6, tr(fmt.Sprintf("Load combination: %s", s.Combination)))
		pdf.Ln(6)
	}
	if !s.Created.IsZero() {
		pdf.Cell(0, 6, fmt.Sprintf("Date: %s", s.Created.Format("2006-01-02")))
		pdf.Ln(6)
	}
	for _, n := range s.Notes {
		pdf.MultiCell(0, 6, tr(n), "", "L", false)
	}
	pdf.Ln(4)

	table := func(title string, entries []Entry) {
		if len(entries) == 0 {
			return
		}
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, title)
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(230, 230, 230)
		pdf.CellFormat(50, 7, "Quantity", "1", 0, "L", true, 0, "")
		pdf.CellFormat(90, 7, "Exact", "1", 0, "L", true, 0, "")
		pdf.CellFormat(50, 7, "Value", "1", 1, "R", true, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		for _, e := range entries {
			pdf.CellFormat(50, 7, tr(e.Label), "1", 0, "L", false, 0, "")
			pdf.CellFormat(90, 7, tr(e.Symbolic), "1", 0, "L", false, 0, "")
			pdf.CellFormat(50, 7, tr(e.value()), "1", 1, "R", false, 0, "")
		}
		pdf.Ln(4)
	}
	table("Reactions", s.Reactions)
	table("Results", s.Results)

	for _, img := range images {
		pdf.ImageOptions(img, 10, pdf.GetY(), 190, 0, true,
			gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}, 0, "")
		pdf.Ln(4)
	}

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}
