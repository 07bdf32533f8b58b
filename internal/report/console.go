package report

import (
	"fmt"
	"io"
	"strings"

	"trackplume/domain/comparison"
	"trackplume/internal/profiling"
)

// ConsoleRenderer prints overviews and comparison records as human-readable text
type ConsoleRenderer struct {
	w io.Writer
}

// NewConsoleRenderer creates a renderer writing to w
func NewConsoleRenderer(w io.Writer) *ConsoleRenderer {
	return &ConsoleRenderer{w: w}
}

func (c *ConsoleRenderer) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.w, format, args...)
}

func (c *ConsoleRenderer) println(s string) {
	fmt.Fprintln(c.w, s)
}

// WriteOverview prints shape, preview rows, column info, descriptive statistics,
// missing-value counts and the correlation matrix.
func (c *ConsoleRenderer) WriteOverview(ov *profiling.Overview) {
	c.printf("Dataset Shape: (%d, %d)\n", ov.Rows, ov.Columns)

	c.println("\nFirst few rows:")
	c.println(headTable(ov))

	c.println("\nData Info:")
	c.println(infoTable(ov))

	c.println("\nBasic Statistics:")
	if len(ov.Describe) == 0 {
		c.println("(no numeric columns)")
	} else {
		c.println(describeTable(ov.Describe))
	}

	c.println("\nMissing Values:")
	for _, col := range ov.ColumnInfo {
		c.printf("%-24s %d\n", col.Name, col.Missing)
	}

	c.println("\nCorrelation Matrix:")
	if len(ov.Correlation.Names) == 0 {
		c.println("(no numeric columns)")
	} else {
		c.println(correlationTable(ov.Correlation))
	}
}

// WriteSiteEffect prints the raw F/p pairs for each record followed by the interpretation block
func (c *ConsoleRenderer) WriteSiteEffect(records []comparison.ComparisonRecord) {
	c.println("\nComparing " + joinMetrics(records) + ": Track vs Plume")
	for _, r := range records {
		c.printf("%s - Track: F = %v, p = %v\n", r.Metric, r.TrackF, r.TrackP)
		c.printf("%s - Plume: F = %v, p = %v\n", r.Metric, r.PlumeF, r.PlumeP)
	}

	c.println("\nInterpretation:")
	c.println("Higher F-values indicate stronger differences between sites")
	c.println("p-values < 0.05 indicate statistically significant differences")
	for _, r := range records {
		c.printf("%s: Track shows %s difference (p=%.6f)\n", r.Metric, verdict(r.TrackSignificant), r.TrackP)
		c.printf("%s: Plume shows %s difference (p=%.6f)\n", r.Metric, verdict(r.PlumeSignificant), r.PlumeP)
	}
}

// WriteDatasetInfo prints the row count and the number of statistic columns
func (c *ConsoleRenderer) WriteDatasetInfo(rows, statColumns int) {
	c.println("\nDataset Info:")
	c.printf("Total rows: %d\n", rows)
	c.printf("Numeric columns extracted: %d\n", statColumns)
}

// WriteComparisons prints one block per record: F to 4 places, p to 6 places,
// significance marked, and the signed F difference.
func (c *ConsoleRenderer) WriteComparisons(records []comparison.ComparisonRecord) {
	c.println("\nTrack vs Plume comparisons:")
	for _, r := range records {
		c.printf("\n%s:\n", r.Metric)
		c.printf("  Track - F: %.4f, p: %.6f%s\n", r.TrackF, r.TrackP, marker(r.TrackSignificant))
		c.printf("  Plume - F: %.4f, p: %.6f%s\n", r.PlumeF, r.PlumeP, marker(r.PlumeSignificant))
		c.printf("  F Difference: %.4f\n", r.FDifference)
	}
}

// WriteResultsTable prints every record as one row of a bordered table
func (c *ConsoleRenderer) WriteResultsTable(records []comparison.ComparisonRecord) {
	c.println("\nComparison results table")
	c.println(resultsTable(records))
}

// WriteSkipped notes metrics that produced no record
func (c *ConsoleRenderer) WriteSkipped(names []string) {
	if len(names) == 0 {
		return
	}
	c.printf("\nSkipped (missing F-value): %s\n", strings.Join(names, ", "))
}

// WriteNoResults is printed when no metric produced a record
func (c *ConsoleRenderer) WriteNoResults() {
	c.println("\nNo metric had both Track and Plume F-values; nothing to compare.")
}

// WriteLegend prints how to read the comparison charts
func (c *ConsoleRenderer) WriteLegend() {
	c.println("\nResults:")
	c.println("- F-values show the strength of differences between sites")
	c.println("- P-values < 0.05 show statistically significant differences")
	c.println("- Red bars (F Difference) show plume has higher F-value")
	c.println("- Blue bars (F Difference) show track has higher F-value")
}

// WriteChartPaths lists rendered chart files
func (c *ConsoleRenderer) WriteChartPaths(paths []string) {
	if len(paths) == 0 {
		return
	}
	c.println("\nCharts written:")
	for _, p := range paths {
		c.println("  " + p)
	}
}

func verdict(significant bool) string {
	if significant {
		return "SIGNIFICANT"
	}
	return "NO"
}

func marker(significant bool) string {
	if significant {
		return " (SIGNIFICANT)"
	}
	return ""
}

func joinMetrics(records []comparison.ComparisonRecord) string {
	names := make([]string, len(records))
	for i, r := range records {
		names[i] = r.Metric
	}
	switch len(names) {
	case 0:
		return "metrics"
	case 1:
		return names[0]
	default:
		return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
	}
}
