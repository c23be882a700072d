package table

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"
)

// percentEpsilon absorbs binary rounding so that e.g. 0.29 floors to 29.00.
const percentEpsilon = 1e-9

// Percent scales a fraction in [0, 1] to [0, 100], floored to two decimals.
func Percent(v float64) float64 {
	return math.Floor(v*100*100+percentEpsilon) / 100
}

// Render writes the sorted column labels, the sorted row labels and then the
// row-normalized percentage matrix, one row per line.
//
// Postcondition: exactly 2+len(t.Rows) lines are written on success.
func Render[R, C comparable](w io.Writer, t *Table[R, C]) error {
	if _, err := fmt.Fprintf(w, "columns: %s\n", labels(t.Cols)); err != nil {
		return fmt.Errorf("writing column labels: %w", err)
	}
	if _, err := fmt.Fprintf(w, "rows: %s\n", labels(t.Rows)); err != nil {
		return fmt.Errorf("writing row labels: %w", err)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.AlignRight)
	for _, row := range t.Normalize() {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = fmt.Sprintf("%.2f", Percent(v))
		}
		if _, err := fmt.Fprintf(tw, "[\t%s\t]\n", strings.Join(cells, "\t")); err != nil {
			return fmt.Errorf("writing matrix: %w", err)
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flushing matrix: %w", err)
	}
	return nil
}

func labels[T any](vs []T) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = fmt.Sprint(v)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
