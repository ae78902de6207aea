package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/alexiusacademia/gobeam/internal/beam"
	"github.com/alexiusacademia/gobeam/internal/diagram"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	analyzeFile    string
	analyzeCombo   string
	analyzeSet     map[string]string
	analyzeChart   bool
	analyzeOutput  string
	analyzeSamples int
)

var beamAnalyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Solve reactions and curves of a beam problem",
	Long: `Solve the support reactions of the beam in a problem file and print
the load, shear, moment, slope and deflection in closed form together
with the maximum values and the points of contraflexure.

Loads are factored by the selected NSCP 2015 load combination. The
default "S" applies every load unfactored.

Examples:
  # Simply supported beam, service loads
  gobeam beam analyze -f simple.yaml

  # Factored by combination 2, with a value for the symbol w
  gobeam beam analyze -f simple.yaml -c 2 --set w=12

  # Terminal charts and a stacked PNG of the curves
  gobeam beam analyze -f simple.yaml --chart -o curves.png`,
	Run: runBeamAnalyze,
}

func init() {
	beamCmd.AddCommand(beamAnalyzeCmd)

	beamAnalyzeCmd.Flags().StringVarP(&analyzeFile, "file", "f", "", "Problem file (json, yaml or toml) [required]")
	beamAnalyzeCmd.Flags().StringVarP(&analyzeCombo, "combo", "c", "S", "Load combination ID (S, 1-7, 6a, 7a)")
	beamAnalyzeCmd.Flags().StringToStringVar(&analyzeSet, "set", nil, "Symbol values, e.g. --set w=12,EI=20000")
	beamAnalyzeCmd.Flags().BoolVar(&analyzeChart, "chart", false, "Draw terminal charts of the curves")
	beamAnalyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "", "Save the curves as an image (png, svg, pdf)")
	beamAnalyzeCmd.Flags().IntVar(&analyzeSamples, "samples", 0, "Samples per curve (default from plot.samples)")

	beamAnalyzeCmd.MarkFlagRequired("file")
}

func runBeamAnalyze(cmd *cobra.Command, args []string) {
	if analyzeSamples > 0 {
		viper.Set("plot.samples", analyzeSamples)
	}
	a, err := loadAnalysis(analyzeFile, analyzeCombo, analyzeSet)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	b := a.beam
	s := summary(a)

	printBanner(strings.ToUpper(title(a)) + " - BEAM ANALYSIS")

	printHeading("INPUT DATA")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Length:\t%s %s\n", b.Length().RatString(), a.problem.Units.Length)
	if e, ok := b.ElasticModulus(); ok {
		fmt.Fprintf(w, "  E:\t%s\n", e)
	}
	if i, ok := b.SecondMoment(); ok {
		fmt.Fprintf(w, "  I:\t%s\n", i)
	} else {
		for k, seg := range b.Segments() {
			fmt.Fprintf(w, "  Segment %d:\tE = %s, I = %s from x = %s\n", k+1, seg.E, seg.I, seg.Start.RatString())
		}
	}
	if kind, at := b.Joint(); kind != beam.NoJoin {
		fmt.Fprintf(w, "  Joint:\t%s at x = %s\n", kind, at.RatString())
	}
	fmt.Fprintf(w, "  Combination:\t%s\n", s.Combination)
	w.Flush()
	for _, n := range s.Notes {
		fmt.Printf("  • %s\n", n)
	}
	fmt.Println()

	fmt.Println(diagram.DrawASCIIBeam(sketch(a)))

	printHeading("REACTIONS")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	printEntries(w, s.Reactions)
	w.Flush()
	fmt.Println()

	printHeading("EQUATIONS")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  q(%s) =\t%s\n", b.Variable(), b.Load())
	fmt.Fprintf(w, "  V(%s) =\t%s\n", b.Variable(), b.ShearForce())
	fmt.Fprintf(w, "  M(%s) =\t%s\n", b.Variable(), b.BendingMoment())
	if slope, err := b.Slope(); err == nil {
		fmt.Fprintf(w, "  θ(%s) =\t%s\n", b.Variable(), slope)
	}
	if defl, err := b.Deflection(); err == nil {
		fmt.Fprintf(w, "  y(%s) =\t%s\n", b.Variable(), defl)
	}
	w.Flush()
	fmt.Println()

	if len(s.Results) == 0 {
		fmt.Println("  Maximum values need numbers for every symbol; use --set.")
		fmt.Println()
		return
	}
	printHeading("MAXIMUM VALUES")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	printEntries(w, s.Results)
	w.Flush()
	fmt.Println()

	var lines []string
	for _, e := range s.Results {
		if e.Label == "contraflexure" {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s = %.4g %s %s", e.Label, e.Value, e.Unit, e.Symbolic))
	}
	fmt.Print(diagram.DrawSummaryBox("RESULTS", lines))
	fmt.Println()

	if !analyzeChart && analyzeOutput == "" {
		return
	}
	curves, err := responseCurves(a)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if analyzeChart {
		for _, c := range curves {
			fmt.Println(diagram.PlotCurve(c, 60, 12))
			fmt.Println()
		}
	}
	if analyzeOutput != "" {
		if err := diagram.ExportCurves(curves, outputPath(analyzeOutput)); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("  Curves saved to %s\n\n", outputPath(analyzeOutput))
	}
}
