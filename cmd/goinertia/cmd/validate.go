package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/goinertia/internal/analysis"
	"github.com/dbsmedya/goinertia/internal/catalog"
	"github.com/dbsmedya/goinertia/internal/config"
	"github.com/dbsmedya/goinertia/internal/logger"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration and galaxy catalog",
	Long: `Validate checks the configuration file and the galaxy catalog without
running any analysis.

Checks performed:
  - Configuration syntax and value ranges
  - Flatness of the cosmological density fractions
  - Catalog syntax, unique names and physical values
  - Progenitor masses at the configured efficiency

Example:
  goinertia validate --config goinertia.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\n=== Configuration Validation ===\n")
	fmt.Fprintf(out, "Config file: %s\n\n", GetConfigFile())

	hasErrors := false
	if err := cfg.Validate(); err != nil {
		var verrs config.ValidationErrors
		if errors.As(err, &verrs) {
			for _, v := range verrs {
				fmt.Fprintf(out, "❌ %s\n", v.Error())
			}
		} else {
			fmt.Fprintf(out, "❌ %v\n", err)
		}
		hasErrors = true
	} else {
		fmt.Fprintf(out, "✅ Configuration valid\n")
	}

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		fmt.Fprintf(out, "❌ Catalog: %v\n", err)
		hasErrors = true
	} else {
		fmt.Fprintf(out, "✅ Catalog valid (%d galaxies)\n", cat.Len())
	}

	if !hasErrors {
		if _, err := analysis.New(cfg, cat, logger.NewNop(), nil); err != nil {
			fmt.Fprintf(out, "❌ Model: %v\n", err)
			hasErrors = true
		} else {
			fmt.Fprintf(out, "✅ Cosmology model built\n")
		}
	}

	if hasErrors {
		return fmt.Errorf("validation failed")
	}

	fmt.Fprintln(out, "\n=== Validation Complete ===")
	return nil
}
