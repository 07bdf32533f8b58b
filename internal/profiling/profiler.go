package profiling

import (
	"trackplume/domain/datareadiness/coercer"
	"trackplume/domain/table"
)

// DefaultHeadRows is how many leading rows the overview previews
const DefaultHeadRows = 5

// ColumnInfo describes one column's storage kind and completeness
type ColumnInfo struct {
	Index      int                `json:"index"`
	Name       string             `json:"name"`
	Kind       coercer.ColumnKind `json:"kind"`
	NonMissing int                `json:"non_missing"`
	Missing    int                `json:"missing"`
}

// CorrelationMatrix is a symmetric Pearson matrix over the numeric columns
type CorrelationMatrix struct {
	Names  []string    `json:"names"`
	Values [][]float64 `json:"values"`
}

// Overview is the dataset summary printed before any comparison
type Overview struct {
	Rows        int               `json:"rows"`
	Columns     int               `json:"columns"`
	Headers     []string          `json:"headers"`
	Head        [][]string        `json:"head"`
	ColumnInfo  []ColumnInfo      `json:"column_info"`
	Describe    []ColumnSummary   `json:"describe"`
	Correlation CorrelationMatrix `json:"correlation"`
}

// DataProfiler builds dataset overviews
type DataProfiler struct {
	coercer  *coercer.TypeCoercer
	analyzer *DistributionAnalyzer
	headRows int
}

// NewDataProfiler creates a new data profiler
func NewDataProfiler(c *coercer.TypeCoercer) *DataProfiler {
	if c == nil {
		c = coercer.NewTypeCoercer(coercer.DefaultCoercionConfig())
	}
	return &DataProfiler{
		coercer:  c,
		analyzer: NewDistributionAnalyzer(),
		headRows: DefaultHeadRows,
	}
}

// WithHeadRows sets the number of preview rows
func (dp *DataProfiler) WithHeadRows(n int) *DataProfiler {
	dp.headRows = n
	return dp
}

// ProfileTable computes shape, per-column info, descriptive statistics and the
// correlation matrix. Only columns whose non-blank cells all parse as numbers are
// described and correlated.
func (dp *DataProfiler) ProfileTable(tbl *table.RawTable) *Overview {
	width := tbl.NumColumns()
	ov := &Overview{
		Rows:       tbl.NumRows(),
		Columns:    width,
		Headers:    make([]string, width),
		Head:       tbl.Head(dp.headRows),
		ColumnInfo: make([]ColumnInfo, 0, width),
	}

	var numericNames []string
	var numericCols [][]float64

	for col := 0; col < width; col++ {
		name := tbl.ColumnName(col)
		ov.Headers[col] = name

		cells := tbl.Column(col)
		analysis := dp.coercer.AnalyzeColumn(cells)
		ov.ColumnInfo = append(ov.ColumnInfo, ColumnInfo{
			Index:      col,
			Name:       name,
			Kind:       analysis.Kind,
			NonMissing: analysis.PresentCount,
			Missing:    analysis.MissingCount(),
		})

		if !analysis.IsNumeric() {
			continue
		}
		values := dp.coercer.CoerceColumn(cells)
		ov.Describe = append(ov.Describe, dp.analyzer.Summarize(name, values))
		numericNames = append(numericNames, name)
		numericCols = append(numericCols, values)
	}

	ov.Correlation = dp.correlationMatrix(numericNames, numericCols)
	return ov
}

func (dp *DataProfiler) correlationMatrix(names []string, cols [][]float64) CorrelationMatrix {
	m := CorrelationMatrix{Names: names, Values: make([][]float64, len(cols))}
	for i := range cols {
		m.Values[i] = make([]float64, len(cols))
	}
	for i := range cols {
		for j := i; j < len(cols); j++ {
			r := dp.analyzer.Correlation(cols[i], cols[j])
			m.Values[i][j] = r
			m.Values[j][i] = r
		}
	}
	return m
}

// TotalMissing sums missing cells across every column
func (ov *Overview) TotalMissing() int {
	total := 0
	for _, c := range ov.ColumnInfo {
		total += c.Missing
	}
	return total
}
