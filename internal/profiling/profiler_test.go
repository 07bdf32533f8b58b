package profiling

import (
	"math"
	"testing"

	"trackplume/domain/datareadiness/coercer"
	"trackplume/domain/table"
	"trackplume/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	da := NewDistributionAnalyzer()
	s := da.Summarize("F value", []float64{1, 2, 3, 4, math.NaN()})

	assert.Equal(t, 4, s.Count)
	assert.InDelta(t, 2.5, s.Mean, 1e-12)
	assert.InDelta(t, math.Sqrt(5.0/3.0), s.Std, 1e-12)
	assert.Equal(t, 1.0, s.Min)
	assert.InDelta(t, 1.75, s.Q25, 1e-12)
	assert.InDelta(t, 2.5, s.Median, 1e-12)
	assert.InDelta(t, 3.25, s.Q75, 1e-12)
	assert.Equal(t, 4.0, s.Max)
}

func TestSummarizeEdgeCases(t *testing.T) {
	da := NewDistributionAnalyzer()

	empty := da.Summarize("empty", []float64{math.NaN()})
	assert.Equal(t, 0, empty.Count)
	assert.True(t, math.IsNaN(empty.Mean))
	assert.True(t, math.IsNaN(empty.Q75))

	single := da.Summarize("single", []float64{7})
	assert.Equal(t, 1, single.Count)
	assert.Equal(t, 7.0, single.Mean)
	assert.True(t, math.IsNaN(single.Std))
	assert.Equal(t, 7.0, single.Q25)
	assert.Equal(t, 7.0, single.Q75)
}

func TestCorrelation(t *testing.T) {
	da := NewDistributionAnalyzer()

	assert.InDelta(t, 1.0, da.Correlation([]float64{1, 2, 3}, []float64{2, 4, 6}), 1e-12)
	assert.InDelta(t, -1.0, da.Correlation([]float64{1, 2, 3}, []float64{3, 2, 1}), 1e-12)

	// Pairwise-complete: the NaN row is dropped from both columns
	assert.InDelta(t, 1.0, da.Correlation([]float64{1, math.NaN(), 3, 4}, []float64{10, 99, 30, 40}), 1e-12)

	assert.True(t, math.IsNaN(da.Correlation([]float64{1, math.NaN()}, []float64{1, 2})))
}

func TestProfileTable(t *testing.T) {
	tbl := table.NewRawTable(
		[]string{"Site", "A", "B", ""},
		[][]string{
			{"Track", "1", "2", ""},
			{"Plume", "2", "4", ""},
			{"Track", "3", "", ""},
			{"Plume", "4", "8", ""},
		},
	)

	ov := NewDataProfiler(nil).WithHeadRows(2).ProfileTable(tbl)

	assert.Equal(t, 4, ov.Rows)
	assert.Equal(t, 4, ov.Columns)
	assert.Len(t, ov.Head, 2)
	assert.Equal(t, []string{"Site", "A", "B", "Unnamed: 3"}, ov.Headers)

	require.Len(t, ov.ColumnInfo, 4)
	assert.Equal(t, coercer.KindText, ov.ColumnInfo[0].Kind)
	assert.Equal(t, coercer.KindNumeric, ov.ColumnInfo[1].Kind)
	assert.Equal(t, 1, ov.ColumnInfo[2].Missing)
	assert.Equal(t, coercer.KindEmpty, ov.ColumnInfo[3].Kind)
	assert.Equal(t, 5, ov.TotalMissing())

	require.Len(t, ov.Describe, 2)
	assert.Equal(t, "A", ov.Describe[0].Name)
	assert.Equal(t, 3, ov.Describe[1].Count)

	assert.Equal(t, []string{"A", "B"}, ov.Correlation.Names)
	assert.InDelta(t, 1.0, ov.Correlation.Values[0][0], 1e-12)
	assert.InDelta(t, 1.0, ov.Correlation.Values[0][1], 1e-12)
	assert.Equal(t, ov.Correlation.Values[0][1], ov.Correlation.Values[1][0])
}

func TestProfileSampleTable(t *testing.T) {
	ov := NewDataProfiler(nil).ProfileTable(testkit.SampleTable())

	assert.Equal(t, 20, ov.Rows)
	assert.Equal(t, 10, ov.Columns)
	assert.Len(t, ov.Head, DefaultHeadRows)

	// F value columns hold only the four metric rows
	var trackF *ColumnSummary
	for i := range ov.Describe {
		if ov.Describe[i].Name == "F value" {
			trackF = &ov.Describe[i]
			break
		}
	}
	require.NotNil(t, trackF)
	assert.Equal(t, 4, trackF.Count)
	assert.InDelta(t, (5.23+3.1+12.7+0.8)/4, trackF.Mean, 1e-9)
}

func TestProfileTableTreatsMissingTokensAsMissing(t *testing.T) {
	tbl := table.NewRawTable(
		[]string{"F value", "Pr(>F)"},
		[][]string{
			{"1.5", "0.01"},
			{"N/A", "0.02"},
			{"2.5", "0.03"},
		},
	)

	ov := NewDataProfiler(nil).ProfileTable(tbl)

	require.Len(t, ov.ColumnInfo, 2)
	assert.Equal(t, coercer.KindNumeric, ov.ColumnInfo[0].Kind)
	assert.Equal(t, 2, ov.ColumnInfo[0].NonMissing)
	assert.Equal(t, 1, ov.ColumnInfo[0].Missing)

	require.Len(t, ov.Describe, 2)
	assert.Equal(t, "F value", ov.Describe[0].Name)
	assert.Equal(t, 2, ov.Describe[0].Count)
	assert.InDelta(t, 2.0, ov.Describe[0].Mean, 1e-12)
	assert.Equal(t, []string{"F value", "Pr(>F)"}, ov.Correlation.Names)
	assert.InDelta(t, 1.0, ov.Correlation.Values[0][1], 1e-12)
}
