package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/alexiusacademia/gobeam/internal/diagram"
	"github.com/alexiusacademia/gobeam/internal/section"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	sectionAnalyzeFile        string
	sectionAnalyzeRect        []float64
	sectionAnalyzeIShape      []float64
	sectionAnalyzeShowDiagram bool
	sectionAnalyzeDepths      []float64
	sectionAnalyzeExportFile  string
)

var sectionAnalyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Compute the properties of a cross-section",
	Long: `Compute area, centroid, second moments of area and section moduli
of a cross-section given by a file or by a built-in shape.

Examples:
  gobeam section analyze --file t-beam.yaml --diagram
  gobeam section analyze --rect 300,500
  gobeam section analyze --ishape 200,12,300,8,200,12 -o ishape.png
  gobeam section analyze -f t-beam.json --depth 50,100,450`,
	Run: runSectionAnalyze,
}

func init() {
	sectionCmd.AddCommand(sectionAnalyzeCmd)

	sectionAnalyzeCmd.Flags().StringVarP(&sectionAnalyzeFile, "file", "f", "", "Section file (json, yaml or toml)")
	sectionAnalyzeCmd.Flags().Float64SliceVar(&sectionAnalyzeRect, "rect", nil, "Rectangle width,height")
	sectionAnalyzeCmd.Flags().Float64SliceVar(&sectionAnalyzeIShape, "ishape", nil, "I shape bf1,tf1,d,tw,bf2,tf2 (d is the web height)")
	sectionAnalyzeCmd.MarkFlagsMutuallyExclusive("file", "rect", "ishape")
	sectionAnalyzeCmd.MarkFlagsOneRequired("file", "rect", "ishape")

	// Diagram options
	sectionAnalyzeCmd.Flags().BoolVar(&sectionAnalyzeShowDiagram, "diagram", false, "Show an ASCII outline of the section")
	sectionAnalyzeCmd.Flags().Float64SliceVar(&sectionAnalyzeDepths, "depth", nil, "Print the section width at these depths from the top")
	sectionAnalyzeCmd.Flags().StringVarP(&sectionAnalyzeExportFile, "output", "o", "", "Export the outline to file (png, svg, pdf)")
}

func loadSection() (*section.Section, error) {
	switch {
	case sectionAnalyzeFile != "":
		return section.LoadFromFile(sectionAnalyzeFile)
	case len(sectionAnalyzeRect) > 0:
		if len(sectionAnalyzeRect) != 2 {
			return nil, fmt.Errorf("--rect takes width,height")
		}
		return section.Rectangle("Rectangle", sectionAnalyzeRect[0], sectionAnalyzeRect[1])
	default:
		d := sectionAnalyzeIShape
		if len(d) != 6 {
			return nil, fmt.Errorf("--ishape takes bf1,tf1,d,tw,bf2,tf2")
		}
		return section.IShape("I Shape", d[0], d[1], d[2], d[3], d[4], d[5])
	}
}

func runSectionAnalyze(cmd *cobra.Command, args []string) {
	sec, err := loadSection()
	if err != nil {
		fmt.Printf("Error loading section: %v\n", err)
		return
	}
	props, err := sec.Properties()
	if err != nil {
		fmt.Printf("Error analyzing section: %v\n", err)
		return
	}

	name := sec.Name
	if name == "" {
		name = "Section"
	}
	printBanner("SECTION PROPERTIES - " + name)
	if sec.Description != "" {
		fmt.Printf("  %s\n\n", sec.Description)
	}

	printHeading("GEOMETRY")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Vertices:\t%d\n", len(sec.Vertices))
	fmt.Fprintf(w, "  Width:\t%.4g\n", props.Width)
	fmt.Fprintf(w, "  Height:\t%.4g\n", props.Height)
	fmt.Fprintf(w, "  Area (A):\t%.6g\n", props.Area)
	fmt.Fprintf(w, "  Centroid (x̄, ȳ):\t(%.4g, %.4g)\n", props.CentroidX, props.CentroidY)
	w.Flush()
	fmt.Println()

	printHeading("SECOND MOMENTS (CENTROIDAL)")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Ix:\t%.6g\n", props.Ix)
	fmt.Fprintf(w, "  Iy:\t%.6g\n", props.Iy)
	fmt.Fprintf(w, "  Sx, top fibre:\t%.6g\n", props.SxTop)
	fmt.Fprintf(w, "  Sx, bottom fibre:\t%.6g\n", props.SxBottom)
	w.Flush()
	fmt.Println()

	if len(sectionAnalyzeDepths) > 0 {
		printHeading("WIDTH AT DEPTH")
		w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for _, d := range sectionAnalyzeDepths {
			fmt.Fprintf(w, "  %.4g\t%.4g\n", d, sec.WidthAtDepth(d))
		}
		w.Flush()
		fmt.Println()
	}

	if sectionAnalyzeShowDiagram {
		fmt.Println("SECTION OUTLINE:")
		fmt.Println(rule)
		fmt.Print(diagram.DrawASCIISection(points(sec), 40, 16))
		fmt.Println()
	}

	if sectionAnalyzeExportFile != "" {
		path := outputPath(sectionAnalyzeExportFile)
		if filepath.Ext(path) == "" {
			path += "." + viper.GetString("plot.format")
		}
		if err := diagram.ExportSectionOutline(name, points(sec), props.CentroidX, props.CentroidY, path); err != nil {
			fmt.Printf("Error exporting outline: %v\n", err)
			return
		}
		fmt.Printf("  Outline saved to %s\n\n", path)
	}
}

func points(sec *section.Section) []diagram.Point {
	pts := make([]diagram.Point, len(sec.Vertices))
	for i, v := range sec.Vertices {
		pts[i] = diagram.Point{X: v.X, Y: v.Y}
	}
	return pts
}
