package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dbsmedya/goinertia/internal/analysis"
)

var growthCmd = &cobra.Command{
	Use:   "growth",
	Short: "Show linear growth, peak heights and required enhancement",
	Long: `Growth prints the normalized linear growth factor and the standard
peak height of a sigma0 = 2 fluctuation over the growth grid, with a rarity
assessment, followed by the growth enhancement needed to bring the peak
height at grids.enhancement_redshift down to 3, 4 and 5 sigma.

Example:
  goinertia growth`,
	RunE: runGrowth,
}

func init() {
	rootCmd.AddCommand(growthCmd)
}

func runGrowth(cmd *cobra.Command, args []string) error {
	return withSession(cmd, printGrowth)
}

func printGrowth(s *session) error {
	rows, err := s.analyzer.Growth(s.ctx)
	if err != nil {
		return err
	}

	z := s.cfg.Grids.EnhancementRedshift
	enhancement, err := s.analyzer.RequiredEnhancement(z, analysis.DefaultTargetPeakHeights)
	if err != nil {
		return err
	}

	s.printer.Growth(rows, z, enhancement)
	return nil
}
