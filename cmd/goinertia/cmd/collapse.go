package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/goinertia/internal/units"
)

var (
	collapseLogMass  float64
	collapseRedshift float64
)

var collapseCmd = &cobra.Command{
	Use:   "collapse",
	Short: "Evaluate the collapse of a single cloud",
	Long: `Collapse evaluates one uniform cloud of the given baryonic mass at the
given redshift and prints its radius, acceleration regime and the standard
and modified free-fall times.

Example:
  goinertia collapse --log-mass 10.5 --redshift 12`,
	RunE: runCollapse,
}

func init() {
	collapseCmd.Flags().Float64Var(&collapseLogMass, "log-mass", 10,
		"Baryonic cloud mass as log10(M/Msun)")
	collapseCmd.Flags().Float64VarP(&collapseRedshift, "redshift", "z", 10,
		"Redshift of the collapse")

	rootCmd.AddCommand(collapseCmd)
}

func runCollapse(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(s *session) error {
		r, err := s.analyzer.Collapse(units.FromLog10Msun(collapseLogMass), collapseRedshift)
		if err != nil {
			return fmt.Errorf("failed to evaluate collapse: %w", err)
		}
		s.printer.Collapse(r)
		return nil
	})
}
