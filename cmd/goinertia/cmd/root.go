package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// Version information (set via ldflags at build time)
var (
	Version = "0.0.1-dev"
	Commit  = "unknown"
)

const defaultConfigFile = "goinertia.yaml"

// CLI flags that override config file values
var (
	cfgFile     string
	logLevel    string
	logFormat   string
	concurrency int
	overdensity float64
	metricsFile string
	noColor     bool
)

var rootCmd = &cobra.Command{
	Use:   "goinertia",
	Short: "Modified-inertia early galaxy formation analysis",
	Long: `Goinertia tests whether a modified-inertia law, with a critical
acceleration a0 = cH(z) that grows with redshift, lets protogalactic clouds
collapse fast enough to build the massive galaxies JWST sees at z > 7.

Sections:
  - Critical acceleration and cosmic age per epoch
  - Collapse analysis of the JWST galaxy catalog
  - Standard and modified stellar mass limits
  - Collapse time vs available time for a reference cloud
  - Growth factor and peak-height rarity`,
	Version:      Version,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Config file flag
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", defaultConfigFile,
		"Path to configuration file (built-in defaults are used if the default file is absent)")

	// Logging overrides
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Override log format (json, text)")

	// Processing overrides
	rootCmd.PersistentFlags().IntVar(&concurrency, "concurrency", 0,
		"Override number of concurrent evaluations per batch")
	rootCmd.PersistentFlags().Float64Var(&overdensity, "overdensity", 0,
		"Override cloud overdensity at turnaround")

	// Output
	rootCmd.PersistentFlags().StringVar(&metricsFile, "metrics-file", "",
		"Write Prometheus metrics to this textfile on exit")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"Disable coloured output (also honoured via NO_COLOR)")
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}

// CLIOverrides contains flag values that override config file settings
type CLIOverrides struct {
	LogLevel    string
	LogFormat   string
	Concurrency int
	Overdensity float64
	MetricsFile string
	NoColor     bool
}

// GetCLIOverrides returns the CLI flag override values
func GetCLIOverrides() CLIOverrides {
	return CLIOverrides{
		LogLevel:    logLevel,
		LogFormat:   logFormat,
		Concurrency: concurrency,
		Overdensity: overdensity,
		MetricsFile: metricsFile,
		NoColor:     noColor,
	}
}
