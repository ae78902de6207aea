package cmd

import (
	"github.com/spf13/cobra"
)

var sectionCmd = &cobra.Command{
	Use:   "section",
	Short: "Cross-section properties",
	Long: `Compute the geometric properties of a beam cross-section: area,
centroid, second moments of area and elastic section moduli. The
second moment Ix is the I used for bending about the horizontal axis.

A section is either a built-in shape given by flags or a polygon
defined in a JSON, YAML or TOML file.

Subcommands:
  analyze  - Print the properties and an outline of a section

Example YAML file:
  name: T-Beam Section
  vertices:
    - {x: 0, y: 0}
    - {x: 300, y: 0}
    - {x: 300, y: 400}
    - {x: 600, y: 400}
    - {x: 600, y: 500}
    - {x: 0, y: 500}

or, with a built-in shape:
  name: W-like
  shape: {kind: i, bf1: 200, tf1: 12, d: 300, tw: 8, bf2: 200, tf2: 12}`,
}

func init() {
	rootCmd.AddCommand(sectionCmd)
}
