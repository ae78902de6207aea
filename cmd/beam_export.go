package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexiusacademia/gobeam/internal/diagram"
	"github.com/alexiusacademia/gobeam/internal/report"
	"github.com/spf13/cobra"
)

var (
	exportFile  string
	exportCombo string
	exportSet   map[string]string
	exportXLSX  string
	exportPDF   string
)

var beamExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write an XLSX workbook or a PDF report of an analysis",
	Long: `Solve the beam in a problem file and write the results to files.

The workbook has a Summary sheet with the reactions and maximum values
and a Curves sheet with shear, moment, slope and deflection sampled
along the beam. The PDF report holds the same summary and a plot of
the curves.

Examples:
  gobeam beam export -f simple.yaml --xlsx simple.xlsx
  gobeam beam export -f simple.yaml -c 2 --pdf simple.pdf --set w=12`,
	Run: runBeamExport,
}

func init() {
	beamCmd.AddCommand(beamExportCmd)

	beamExportCmd.Flags().StringVarP(&exportFile, "file", "f", "", "Problem file (json, yaml or toml) [required]")
	beamExportCmd.Flags().StringVarP(&exportCombo, "combo", "c", "S", "Load combination ID")
	beamExportCmd.Flags().StringToStringVar(&exportSet, "set", nil, "Symbol values, e.g. --set w=12")
	beamExportCmd.Flags().StringVar(&exportXLSX, "xlsx", "", "Workbook file name")
	beamExportCmd.Flags().StringVar(&exportPDF, "pdf", "", "PDF report file name")

	beamExportCmd.MarkFlagRequired("file")
}

func runBeamExport(cmd *cobra.Command, args []string) {
	if exportXLSX == "" && exportPDF == "" {
		fmt.Println("Error: Please give --xlsx, --pdf or both.")
		return
	}
	a, err := loadAnalysis(exportFile, exportCombo, exportSet)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	curves, err := responseCurves(a)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		if sym, ok := missing(err); ok {
			fmt.Printf("Use --set %s=<value> to give the missing number.\n", sym)
		}
		return
	}
	s := summary(a)

	if exportXLSX != "" {
		path := outputPath(exportXLSX)
		if err := writeFile(path, func(f *os.File) error { return report.WriteWorkbook(f, s, curves) }); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("  Workbook saved to %s\n", path)
	}
	if exportPDF != "" {
		dir, err := os.MkdirTemp("", "gobeam")
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		defer os.RemoveAll(dir)
		img := filepath.Join(dir, "curves.png")
		if err := diagram.ExportCurves(curves, img); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		path := outputPath(exportPDF)
		if err := writeFile(path, func(f *os.File) error { return report.WritePDF(f, s, []string{img}) }); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("  Report saved to %s\n", path)
	}
}

// writeFile creates path and its directory and hands the file to write
func writeFile(path string, write func(*os.File) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
