package cmd

import (
	"github.com/spf13/cobra"
)

var massLimitsCmd = &cobra.Command{
	Use:   "masslimits",
	Short: "Compare standard and modified stellar mass limits",
	Long: `Masslimits prints, over the configured redshift grid, the largest
stellar mass the standard halo-abundance argument allows (at the configured
star-formation efficiency and at 100%), the modified-inertia estimate from
repeated rapid collapse, and the peak height of a sigma0 = 2 fluctuation.

Example:
  goinertia masslimits`,
	RunE: runMassLimits,
}

func init() {
	rootCmd.AddCommand(massLimitsCmd)
}

func runMassLimits(cmd *cobra.Command, args []string) error {
	return withSession(cmd, printMassLimits)
}

func printMassLimits(s *session) error {
	rows, err := s.analyzer.MassLimits(s.ctx)
	if err != nil {
		return err
	}
	s.printer.MassLimits(rows)
	return nil
}
