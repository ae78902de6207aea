package cmd

import (
	"github.com/spf13/cobra"
)

var beamCmd = &cobra.Command{
	Use:   "beam",
	Short: "Beam analysis from a problem file",
	Long: `Analyze straight beams described in a JSON, YAML or TOML problem file.

Subcommands:
  analyze  - Reactions, curves, maximum values and contraflexure points
  eval     - Shear, moment, slope and deflection at one position
  ild      - Influence lines for reactions, shear and moment
  combos   - Governing NSCP 2015 load combination
  export   - XLSX workbook and PDF report

Loads point down and moments turn clockwise unless the file says
otherwise. Positions may be written as fractions such as 5/2.`,
}

func init() {
	rootCmd.AddCommand(beamCmd)
}
