package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/dbsmedya/goinertia/internal/analysis"
)

// WriteCSV writes s as CSV with a header row. NaN values are written as empty
// cells.
func WriteCSV(w io.Writer, s *analysis.Series) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(s.Columns); err != nil {
		return fmt.Errorf("failed to write %s header: %w", s.Name, err)
	}

	labelled := len(s.Labels) > 0
	for i, row := range s.Rows {
		record := make([]string, 0, len(row)+1)
		if labelled {
			record = append(record, s.Labels[i])
		}
		for _, v := range row {
			record = append(record, formatFloat(v))
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", s.Name, i, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", s.Name, err)
	}
	return nil
}

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
