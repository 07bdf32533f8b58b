package report

import (
	"fmt"
	"math"
	"strconv"

	"trackplume/domain/comparison"
	"trackplume/domain/datareadiness/coercer"
	"trackplume/internal/profiling"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func resultsTable(records []comparison.ComparisonRecord) string {
	t := newTable("Metric", "Track F", "Track p", "Plume F", "Plume p", "F Difference", "Track Significant", "Plume Significant")
	for _, r := range records {
		t.Row(
			r.Metric,
			fmt.Sprintf("%.4f", r.TrackF),
			fmt.Sprintf("%.6f", r.TrackP),
			fmt.Sprintf("%.4f", r.PlumeF),
			fmt.Sprintf("%.6f", r.PlumeP),
			fmt.Sprintf("%.4f", r.FDifference),
			comparison.YesNo(r.TrackSignificant),
			comparison.YesNo(r.PlumeSignificant),
		)
	}
	return t.Render()
}

func headTable(ov *profiling.Overview) string {
	headers := append([]string{""}, ov.Headers...)
	t := newTable(headers...)
	for i, row := range ov.Head {
		cells := make([]string, len(headers))
		cells[0] = strconv.Itoa(i)
		for j := range ov.Headers {
			cell := ""
			if j < len(row) {
				cell = row[j]
			}
			if cell == "" {
				cell = "NaN"
			}
			cells[j+1] = cell
		}
		t.Row(cells...)
	}
	return t.Render()
}

func infoTable(ov *profiling.Overview) string {
	t := newTable("#", "Column", "Non-Null Count", "Dtype")
	for _, col := range ov.ColumnInfo {
		kind := col.Kind
		if kind == coercer.KindEmpty {
			kind = coercer.KindNumeric
		}
		t.Row(strconv.Itoa(col.Index), col.Name, fmt.Sprintf("%d non-null", col.NonMissing), string(kind))
	}
	return t.Render()
}

func describeTable(summaries []profiling.ColumnSummary) string {
	headers := []string{""}
	for _, s := range summaries {
		headers = append(headers, s.Name)
	}
	t := newTable(headers...)

	rows := []struct {
		label string
		value func(profiling.ColumnSummary) float64
	}{
		{"count", func(s profiling.ColumnSummary) float64 { return float64(s.Count) }},
		{"mean", func(s profiling.ColumnSummary) float64 { return s.Mean }},
		{"std", func(s profiling.ColumnSummary) float64 { return s.Std }},
		{"min", func(s profiling.ColumnSummary) float64 { return s.Min }},
		{"25%", func(s profiling.ColumnSummary) float64 { return s.Q25 }},
		{"50%", func(s profiling.ColumnSummary) float64 { return s.Median }},
		{"75%", func(s profiling.ColumnSummary) float64 { return s.Q75 }},
		{"max", func(s profiling.ColumnSummary) float64 { return s.Max }},
	}
	for _, row := range rows {
		cells := []string{row.label}
		for _, s := range summaries {
			cells = append(cells, formatStat(row.value(s)))
		}
		t.Row(cells...)
	}
	return t.Render()
}

func correlationTable(m profiling.CorrelationMatrix) string {
	t := newTable(append([]string{""}, m.Names...)...)
	for i, name := range m.Names {
		cells := []string{name}
		for j := range m.Names {
			cells = append(cells, formatStat(m.Values[i][j]))
		}
		t.Row(cells...)
	}
	return t.Render()
}

func formatStat(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return fmt.Sprintf("%.6f", v)
}
