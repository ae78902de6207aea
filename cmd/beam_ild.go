package cmd

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/alexiusacademia/gobeam/internal/beam"
	"github.com/alexiusacademia/gobeam/internal/diagram"
	"github.com/alexiusacademia/gobeam/internal/model"
	"github.com/alexiusacademia/gobeam/internal/symbolic"
	"github.com/spf13/cobra"
)

var (
	ildFile   string
	ildAt     string
	ildValue  string
	ildSet    map[string]string
	ildChart  bool
	ildOutput string
	ildTable  int
)

var beamILDCmd = &cobra.Command{
	Use:   "ild",
	Short: "Influence lines for reactions, shear and moment",
	Long: `Compute influence lines for a moving load crossing the beam in a
problem file. The loads in the file are ignored; only the spans,
supports and boundary conditions are used.

Reaction influence lines are always printed. With --at the shear and
bending moment influence lines at that position are added.

Examples:
  gobeam beam ild -f simple.yaml
  gobeam beam ild -f simple.yaml --at 2 --chart
  gobeam beam ild -f simple.yaml --at 2 --value P -o ild.png`,
	Run: runBeamILD,
}

func init() {
	beamCmd.AddCommand(beamILDCmd)

	beamILDCmd.Flags().StringVarP(&ildFile, "file", "f", "", "Problem file (json, yaml or toml) [required]")
	beamILDCmd.Flags().StringVar(&ildAt, "at", "", "Position for shear and moment influence lines")
	beamILDCmd.Flags().StringVar(&ildValue, "value", "1", "Magnitude of the moving load, may be a symbol")
	beamILDCmd.Flags().StringToStringVar(&ildSet, "set", nil, "Symbol values, e.g. --set P=10")
	beamILDCmd.Flags().BoolVar(&ildChart, "chart", false, "Draw terminal charts of the influence lines")
	beamILDCmd.Flags().StringVarP(&ildOutput, "output", "o", "", "Save the influence lines as a PNG")
	beamILDCmd.Flags().IntVar(&ildTable, "table", 11, "Rows in the table of sampled values")

	beamILDCmd.MarkFlagRequired("file")
}

func runBeamILD(cmd *cobra.Command, args []string) {
	curves, err := influenceLines()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if ildTable >= 2 {
		printHeading("SAMPLED VALUES")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprint(w, "  x")
		for _, c := range curves {
			fmt.Fprintf(w, "\t%s", c.Name)
		}
		fmt.Fprintln(w)
		n := len(curves[0].X)
		for r := 0; r < ildTable; r++ {
			i := r * (n - 1) / (ildTable - 1)
			fmt.Fprintf(w, "  %.4g", curves[0].X[i])
			for _, c := range curves {
				fmt.Fprintf(w, "\t%.4g", c.Y[i])
			}
			fmt.Fprintln(w)
		}
		w.Flush()
		fmt.Println()
	}
	if ildChart {
		for _, c := range curves {
			fmt.Println(diagram.PlotCurve(c, 60, 10))
			fmt.Println()
		}
	}
	if ildOutput != "" {
		if err := diagram.ExportCurves(curves, outputPath(ildOutput)); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("  Influence lines saved to %s\n\n", outputPath(ildOutput))
	}
}

// influenceLines prints the exact influence equations and returns them
// sampled for charts
func influenceLines() ([]diagram.Curve, error) {
	p, err := model.LoadFromFile(ildFile)
	if err != nil {
		return nil, err
	}
	vals, err := mergeValues(p.Numbers(), ildSet)
	if err != nil {
		return nil, err
	}
	value, err := symbolic.Parse(ildValue)
	if err != nil {
		return nil, fmt.Errorf("invalid moving load %q: %w", ildValue, err)
	}
	b, err := p.Structure(beamLogger())
	if err != nil {
		return nil, err
	}
	unknowns := p.SolveUnknowns(b)
	if err := b.SolveForILDReactions(value, unknowns...); err != nil {
		return nil, err
	}
	reactions, err := b.ILDReactions()
	if err != nil {
		return nil, err
	}

	name := p.Name
	if name == "" {
		name = "Beam"
	}
	printBanner(name + " - INFLUENCE LINES")
	fmt.Printf("  Moving load %s at position %s\n\n", value, b.Variable())

	printHeading("REACTIONS")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	names := make([]string, 0, len(reactions))
	for k := range reactions {
		names = append(names, k)
	}
	sort.Strings(names)
	length := ratFloat(b.Length())
	var curves []diagram.Curve
	for _, k := range names {
		fmt.Fprintf(w, "  %s(%s) =\t%s\n", k, b.Variable(), reactions[k])
		line := beam.InfluenceLine{Var: b.Variable(), At: b.Length(), Before: reactions[k], After: reactions[k]}
		c, err := influenceCurve(k, line, length, vals)
		if err != nil {
			return nil, err
		}
		curves = append(curves, c)
	}
	w.Flush()
	fmt.Println()

	if ildAt == "" {
		return curves, nil
	}
	at, err := parseRat(ildAt)
	if err != nil {
		return nil, err
	}
	if err := b.SolveForILDShear(at, value, unknowns...); err != nil {
		return nil, err
	}
	if err := b.SolveForILDMoment(at, value, unknowns...); err != nil {
		return nil, err
	}
	shear, _ := b.ILDShear()
	moment, _ := b.ILDMoment()

	printHeading(fmt.Sprintf("SHEAR AND MOMENT AT %s = %s", b.Variable(), at.RatString()))
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, l := range []struct {
		name string
		line beam.InfluenceLine
	}{{"V", shear}, {"M", moment}} {
		fmt.Fprintf(w, "  %s, load left of %s:\t%s\n", l.name, at.RatString(), l.line.Before)
		fmt.Fprintf(w, "  %s, load right of %s:\t%s\n", l.name, at.RatString(), l.line.After)
		c, err := influenceCurve(fmt.Sprintf("%s at %s", l.name, at.RatString()), l.line, length, vals)
		if err != nil {
			return nil, err
		}
		curves = append(curves, c)
	}
	w.Flush()
	fmt.Println()
	return curves, nil
}

func influenceCurve(name string, line beam.InfluenceLine, length float64, vals beam.Values) (diagram.Curve, error) {
	xs, ys, err := line.Sample(length, samples(), vals)
	if err != nil {
		if sym, ok := missing(err); ok {
			return diagram.Curve{}, fmt.Errorf("%s needs a value for %s; use --set", name, sym)
		}
		return diagram.Curve{}, err
	}
	return diagram.Curve{Name: "ILD " + name, X: xs, Y: ys}, nil
}
