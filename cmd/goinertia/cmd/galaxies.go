package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dbsmedya/goinertia/internal/analysis"
)

var galaxiesCmd = &cobra.Command{
	Use:   "galaxies",
	Short: "Assess the collapse of each catalogued galaxy's progenitor",
	Long: `Galaxies evaluates, for every galaxy in the catalog, the progenitor
cloud that formed its stars: its size, the acceleration regime at its edge,
the standard and modified free-fall times, and how many modified collapses
fit between the onset of star formation and the observed redshift.

Verdicts:
  EASY      at least three collapse times fit
  FEASIBLE  at least one fits
  TIGHT     less than one fits

Example:
  goinertia galaxies --overdensity 10`,
	RunE: runGalaxies,
}

func init() {
	rootCmd.AddCommand(galaxiesCmd)
}

func runGalaxies(cmd *cobra.Command, args []string) error {
	return withSession(cmd, printGalaxies)
}

func printGalaxies(s *session) error {
	gs, err := s.analyzer.Galaxies(s.ctx)
	if err != nil {
		return err
	}
	s.printer.Galaxies(gs)

	c := analysis.CountVerdicts(gs)
	s.log.Infow("Galaxy assessment complete", "easy", c.Easy, "feasible", c.Feasible, "tight", c.Tight)
	return nil
}
