package report

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"trackplume/domain/comparison"
	"trackplume/internal/profiling"
	"trackplume/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords(t *testing.T) []comparison.ComparisonRecord {
	t.Helper()
	records, err := comparison.Extract(testkit.SampleTable(), comparison.DefaultMetrics())
	require.NoError(t, err)
	return records
}

func TestWriteComparisons(t *testing.T) {
	var buf bytes.Buffer
	NewConsoleRenderer(&buf).WriteComparisons(sampleRecords(t)[:2])
	out := buf.String()

	assert.Contains(t, out, "\nAbundance:\n")
	assert.Contains(t, out, "  Track - F: 5.2300, p: 0.001200 (SIGNIFICANT)\n")
	assert.Contains(t, out, "  Plume - F: 8.9100, p: 0.000100 (SIGNIFICANT)\n")
	assert.Contains(t, out, "  F Difference: -3.6800\n")

	assert.Contains(t, out, "  Track - F: 3.1000, p: 0.084000\n")
	assert.Contains(t, out, "  F Difference: 1.9000\n")
}

func TestWriteComparisonsBoundaryIsNotSignificant(t *testing.T) {
	var buf bytes.Buffer
	NewConsoleRenderer(&buf).WriteComparisons(sampleRecords(t)[3:])

	assert.Contains(t, buf.String(), "  Plume - F: 2.6000, p: 0.050000\n")
	assert.NotContains(t, buf.String(), "SIGNIFICANT")
}

func TestWriteSiteEffect(t *testing.T) {
	var buf bytes.Buffer
	NewConsoleRenderer(&buf).WriteSiteEffect(sampleRecords(t)[:2])
	out := buf.String()

	assert.Contains(t, out, "Comparing Abundance and Species Richness: Track vs Plume")
	assert.Contains(t, out, "Abundance - Track: F = 5.23, p = 0.0012\n")
	assert.Contains(t, out, "Species Richness - Plume: F = 1.2, p = 0.29\n")
	assert.Contains(t, out, "Abundance: Track shows SIGNIFICANT difference (p=0.001200)\n")
	assert.Contains(t, out, "Species Richness: Plume shows NO difference (p=0.290000)\n")
}

func TestWriteResultsTable(t *testing.T) {
	var buf bytes.Buffer
	NewConsoleRenderer(&buf).WriteResultsTable(sampleRecords(t))
	out := buf.String()

	for _, header := range []string{"Metric", "Track F", "Plume p", "F Difference", "Track Significant"} {
		assert.Contains(t, out, header)
	}
	assert.Contains(t, out, "Gini-Simpson Diversity")
	assert.Contains(t, out, "8.3000")
	assert.Contains(t, out, "Yes")
	assert.Contains(t, out, "No")
	// header, separator and borders surround four data lines
	assert.GreaterOrEqual(t, strings.Count(out, "\n"), 6)
}

func TestWriteOverview(t *testing.T) {
	ov := profiling.NewDataProfiler(nil).ProfileTable(testkit.SampleTable())

	var buf bytes.Buffer
	NewConsoleRenderer(&buf).WriteOverview(ov)
	out := buf.String()

	assert.Contains(t, out, "Dataset Shape: (20, 10)")
	assert.Contains(t, out, "First few rows:")
	assert.Contains(t, out, "Data Info:")
	assert.Contains(t, out, "4 non-null")
	assert.Contains(t, out, "Basic Statistics:")
	assert.Contains(t, out, "Missing Values:")
	assert.Contains(t, out, "Correlation Matrix:")
	assert.Contains(t, out, "1.000000")
}

func TestWriteSkippedAndNoResults(t *testing.T) {
	var buf bytes.Buffer
	r := NewConsoleRenderer(&buf)

	r.WriteSkipped(nil)
	assert.Empty(t, buf.String())

	r.WriteSkipped([]string{"Species Richness", "Simpson's Evenness"})
	assert.Contains(t, buf.String(), "Skipped (missing F-value): Species Richness, Simpson's Evenness")

	r.WriteNoResults()
	assert.Contains(t, buf.String(), "nothing to compare")
}

func TestFormatStat(t *testing.T) {
	assert.Equal(t, "NaN", formatStat(math.NaN()))
	assert.Equal(t, "0.050000", formatStat(0.05))
}

func TestJoinMetrics(t *testing.T) {
	recs := []comparison.ComparisonRecord{{Metric: "A"}, {Metric: "B"}, {Metric: "C"}}
	assert.Equal(t, "A, B and C", joinMetrics(recs))
	assert.Equal(t, "A", joinMetrics(recs[:1]))
	assert.Equal(t, "metrics", joinMetrics(nil))
}

func TestWriteDatasetInfo(t *testing.T) {
	var buf bytes.Buffer
	NewConsoleRenderer(&buf).WriteDatasetInfo(20, 7)
	assert.Equal(t, "\nDataset Info:\nTotal rows: 20\nNumeric columns extracted: 7\n", buf.String())
}
