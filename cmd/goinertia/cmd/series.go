package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/goinertia/internal/analysis"
	"github.com/dbsmedya/goinertia/internal/report"
)

var seriesOut string

var seriesCmd = &cobra.Command{
	Use:   "series",
	Short: "Export the figure data series as CSV",
	Long: `Series computes the data behind the summary figure (critical
acceleration, collapse times, stellar mass limits, acceleration ratio and
the observed galaxies) and writes each as CSV.

With --out each series is written to <dir>/<name>.csv; otherwise all series
go to stdout, each preceded by a "# <name>" line.

Example:
  goinertia series --out ./figdata`,
	RunE: runSeries,
}

func init() {
	seriesCmd.Flags().StringVarP(&seriesOut, "out", "o", "",
		"Directory to write one CSV file per series (default: stdout)")

	rootCmd.AddCommand(seriesCmd)
}

func runSeries(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(s *session) error {
		series, err := s.analyzer.Series(s.ctx)
		if err != nil {
			return err
		}

		if seriesOut == "" {
			for i, ser := range series {
				if i > 0 {
					fmt.Fprintln(s.out)
				}
				fmt.Fprintf(s.out, "# %s\n", ser.Name)
				if err := report.WriteCSV(s.out, ser); err != nil {
					return err
				}
			}
			return nil
		}

		if err := os.MkdirAll(seriesOut, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		for _, ser := range series {
			path := filepath.Join(seriesOut, ser.Name+".csv")
			if err := writeSeriesFile(path, ser); err != nil {
				return err
			}
			s.log.Infow("Series written", "series", ser.Name, "path", path, "rows", len(ser.Rows))
		}
		fmt.Fprintf(s.out, "Wrote %d series to %s\n", len(series), seriesOut)
		return nil
	})
}

func writeSeriesFile(path string, ser *analysis.Series) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()
	return report.WriteCSV(f, ser)
}
