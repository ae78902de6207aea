package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/alexiusacademia/gobeam/internal/diagram"
	"github.com/alexiusacademia/gobeam/internal/model"
	"github.com/alexiusacademia/gobeam/internal/nscp"
	"github.com/spf13/cobra"
)

var (
	combosFile    string
	combosSet     map[string]string
	showAll       bool
	useSimplified bool
)

var beamCombosCmd = &cobra.Command{
	Use:   "combos",
	Short: "Find the governing NSCP load combination",
	Long: `Solve the beam in a problem file once per NSCP 2015 load combination
and report the combination that gives the largest bending moment and
the largest shear force.

Each load in the file is tagged with its load case:
  D  - Dead load (the default)
  L  - Live load
  Lr - Roof live load
  W  - Wind load
  E  - Earthquake load
  R  - Rain load

Examples:
  gobeam beam combos -f frame.yaml
  gobeam beam combos -f frame.yaml --all
  gobeam beam combos -f frame.yaml --simplified --set w=12`,
	Run: runBeamCombos,
}

func init() {
	beamCmd.AddCommand(beamCombosCmd)

	beamCombosCmd.Flags().StringVarP(&combosFile, "file", "f", "", "Problem file (json, yaml or toml) [required]")
	beamCombosCmd.Flags().StringToStringVar(&combosSet, "set", nil, "Symbol values, e.g. --set w=12")
	beamCombosCmd.Flags().BoolVarP(&showAll, "all", "a", false, "Show all load combination results")
	beamCombosCmd.Flags().BoolVarP(&useSimplified, "simplified", "s", false, "Use simplified combinations (gravity only: 1.4D and 1.2D+1.6L)")

	beamCombosCmd.MarkFlagRequired("file")
}

type comboResult struct {
	shear, moment float64
}

func runBeamCombos(cmd *cobra.Command, args []string) {
	p, err := model.LoadFromFile(combosFile)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	combinations := nscp.LoadCombinations
	if useSimplified {
		combinations = nscp.SimplifiedCombinations
	}

	results := make(map[string]comboResult, len(combinations))
	solve := func(combo nscp.LoadCombination) (comboResult, error) {
		if r, ok := results[combo.ID]; ok {
			return r, nil
		}
		a, err := solveProblem(p, combo, combosSet)
		if err != nil {
			return comboResult{}, err
		}
		v, err := a.beam.MaxShearForce(a.values)
		if err != nil {
			return comboResult{}, err
		}
		m, err := a.beam.MaxBendingMoment(a.values)
		if err != nil {
			return comboResult{}, err
		}
		r := comboResult{shear: v.Value, moment: m.Value}
		results[combo.ID] = r
		return r, nil
	}

	maxMu, momentCombo, err := nscp.Governing(combinations, func(c nscp.LoadCombination) (float64, error) {
		r, err := solve(c)
		return r.moment, err
	})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		if sym, ok := missing(err); ok {
			fmt.Printf("Use --set %s=<value> to give the missing number.\n", sym)
		}
		return
	}
	maxVu, shearCombo, err := nscp.Governing(combinations, func(c nscp.LoadCombination) (float64, error) {
		r, err := solve(c)
		return r.shear, err
	})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	name := p.Name
	if name == "" {
		name = "Beam"
	}
	printBanner(name + " - NSCP 2015 LOAD COMBINATIONS")

	printHeading("LOADS")
	for _, l := range p.Loads {
		fmt.Printf("  • %s\n", describeLoad(l))
	}
	fmt.Println()

	force := p.Units.Force
	moment := force
	if force != "" && p.Units.Length != "" {
		moment = force + "-" + p.Units.Length
	}

	if showAll {
		printHeading("LOAD COMBINATIONS (NSCP 2015 Section 203.3)")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  #\tCombination\tmax |V|\tmax |M|\n")
		fmt.Fprintf(w, "  ─\t───────────\t───────\t───────\n")
		for _, combo := range combinations {
			r := results[combo.ID]
			marker := ""
			if combo.ID == momentCombo.ID {
				marker = " ← GOVERNS"
			}
			fmt.Fprintf(w, "  %s\t%s\t%.2f\t%.2f%s\n", combo.ID, combo.Description, r.shear, r.moment, marker)
		}
		w.Flush()
		fmt.Println()
	}

	printHeading("RESULT")
	fmt.Printf("  Moment governed by: %s (%s)\n", momentCombo.ID, momentCombo.Description)
	fmt.Printf("  Shear governed by:  %s (%s)\n", shearCombo.ID, shearCombo.Description)
	fmt.Println()
	fmt.Print(diagram.DrawSummaryBox("FACTORED ACTIONS", []string{
		fmt.Sprintf("Mu = %.2f %s", maxMu, moment),
		fmt.Sprintf("Vu = %.2f %s", maxVu, force),
	}))
	fmt.Println()
}
