package cmd

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/goinertia/internal/catalog"
	"github.com/dbsmedya/goinertia/internal/report"
)

var (
	listZMin float64
	listZMax float64
)

var listGalaxiesCmd = &cobra.Command{
	Use:   "list-galaxies",
	Short: "List the galaxies in the catalog",
	Long: `List-galaxies displays every galaxy in the configured catalog (the
built-in JWST catalog unless catalog.path is set), optionally restricted to
a redshift range.

Example:
  goinertia list-galaxies --z-min 10`,
	RunE: runListGalaxies,
}

func init() {
	listGalaxiesCmd.Flags().Float64Var(&listZMin, "z-min", 0,
		"Only list galaxies at or above this redshift")
	listGalaxiesCmd.Flags().Float64Var(&listZMax, "z-max", math.Inf(1),
		"Only list galaxies at or below this redshift")

	rootCmd.AddCommand(listGalaxiesCmd)
}

func runListGalaxies(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	obs := cat.Filter(listZMin, listZMax)
	if len(obs) == 0 {
		cmd.Printf("No galaxies with %g <= z <= %g\n", listZMin, listZMax)
		return nil
	}

	report.New(cmd.OutOrStdout(), colorEnabled()).Catalog(obs)
	return nil
}
