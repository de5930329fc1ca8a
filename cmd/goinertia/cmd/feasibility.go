package cmd

import (
	"github.com/spf13/cobra"
)

var feasibilityCmd = &cobra.Command{
	Use:   "feasibility",
	Short: "Compare collapse time with available time for a reference cloud",
	Long: `Feasibility evaluates a cloud of collapse.reference_mass_log baryonic
mass over the feasibility grid and reports the standard and modified
free-fall times against the time elapsed since star formation began.

Example:
  goinertia feasibility --concurrency 8`,
	RunE: runFeasibility,
}

func init() {
	rootCmd.AddCommand(feasibilityCmd)
}

func runFeasibility(cmd *cobra.Command, args []string) error {
	return withSession(cmd, printFeasibility)
}

func printFeasibility(s *session) error {
	rows, err := s.analyzer.Feasibility(s.ctx)
	if err != nil {
		return err
	}
	s.printer.Feasibility(rows, s.analyzer.ReferenceMass())
	return nil
}
