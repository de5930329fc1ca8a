package cmd

import (
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full analysis",
	Long: `Run prints every analysis section in order: background cosmology,
critical acceleration per epoch, galaxy collapse assessment, stellar mass
limits, feasibility grid and growth analysis.

Example:
  goinertia run --config goinertia.yaml --metrics-file goinertia.prom`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(s *session) error {
		s.log.Info("Starting analysis run")

		sections := []func(*session) error{
			printCosmology,
			printEpochs,
			printGalaxies,
			printMassLimits,
			printFeasibility,
			printGrowth,
		}
		for i, section := range sections {
			if i > 0 {
				s.printer.Blank()
			}
			if err := section(s); err != nil {
				return err
			}
		}

		s.log.Info("Analysis run complete")
		return nil
	})
}

func printCosmology(s *session) error {
	cosmo := s.analyzer.Cosmology()
	a0, err := cosmo.CriticalAcceleration(0)
	if err != nil {
		return err
	}
	age, err := cosmo.CosmicAge(0)
	if err != nil {
		return err
	}
	s.printer.Cosmology(cosmo.Parameters(), a0, age)
	return nil
}
