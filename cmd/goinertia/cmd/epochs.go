package cmd

import (
	"github.com/spf13/cobra"
)

var epochsCmd = &cobra.Command{
	Use:   "epochs",
	Short: "Tabulate the critical acceleration and cosmic age per epoch",
	Long: `Epochs prints H(z)/H0, the critical acceleration a0(z) = cH(z), its
ratio to today's value and the age of the universe over the configured
epoch grid.

Example:
  goinertia epochs --config goinertia.yaml`,
	RunE: runEpochs,
}

func init() {
	rootCmd.AddCommand(epochsCmd)
}

func runEpochs(cmd *cobra.Command, args []string) error {
	return withSession(cmd, printEpochs)
}

func printEpochs(s *session) error {
	rows, err := s.analyzer.Epochs(s.ctx)
	if err != nil {
		return err
	}
	s.printer.Epochs(rows)
	return nil
}
