package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdownResultsTable(t *testing.T) {
	md := string(Markdown(Document{
		Source:  "Dataset.xlsx",
		Records: sampleRecords(t),
		Skipped: []string{"Extra Metric"},
	}))

	assert.True(t, strings.HasPrefix(md, "# Track vs Plume Comparison\n"))
	assert.Contains(t, md, "Source: `Dataset.xlsx`")
	assert.Contains(t, md, "| Abundance | 5.2300 | 0.001200 | 8.9100 | 0.000100 | -3.6800 | Yes | Yes |")
	assert.Contains(t, md, "| Simpson's Evenness | 0.8000 | 0.370000 | 2.6000 | 0.050000 | -1.8000 | No | No |")
	assert.Contains(t, md, "- Extra Metric (missing F-value)")
	assert.NotContains(t, md, "## Charts")
}

func TestMarkdownEmpty(t *testing.T) {
	md := string(Markdown(Document{}))
	assert.Contains(t, md, "No metric had both Track and Plume F-values.")
	assert.NotContains(t, md, "| Metric |")
}

func TestHTMLRendersTable(t *testing.T) {
	out := string(HTML(Document{Records: sampleRecords(t)}))
	assert.Contains(t, out, "<title>Track vs Plume Comparison</title>")
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<td>Abundance</td>")
}

func TestWriteFileChoosesFormatAndRelativizesCharts(t *testing.T) {
	dir := t.TempDir()
	chart := filepath.Join(dir, "charts", "f_values.png")
	doc := Document{Records: sampleRecords(t), ChartPaths: []string{chart}}

	mdPath := filepath.Join(dir, "out", "report.md")
	require.NoError(t, WriteFile(mdPath, doc))
	data, err := os.ReadFile(mdPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "![f_values](../charts/f_values.png)")

	htmlPath := filepath.Join(dir, "report.html")
	require.NoError(t, WriteFile(htmlPath, doc))
	data, err = os.ReadFile(htmlPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `<img src="charts/f_values.png"`)
}

func TestEscapeCell(t *testing.T) {
	assert.Equal(t, `a\|b`, escapeCell("a|b"))
}
