package profiling

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// ColumnSummary holds the descriptive statistics of one numeric column.
// Every statistic is NaN when the column has no values.
type ColumnSummary struct {
	Name   string  `json:"name"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"` // sample standard deviation (n-1)
	Min    float64 `json:"min"`
	Q25    float64 `json:"q25"`
	Median float64 `json:"median"`
	Q75    float64 `json:"q75"`
	Max    float64 `json:"max"`
}

// DistributionAnalyzer computes summary statistics over coerced columns
type DistributionAnalyzer struct{}

// NewDistributionAnalyzer creates a new distribution analyzer
func NewDistributionAnalyzer() *DistributionAnalyzer {
	return &DistributionAnalyzer{}
}

// Summarize describes a column, ignoring missing (NaN) values
func (da *DistributionAnalyzer) Summarize(name string, values []float64) ColumnSummary {
	data := present(values)
	summary := ColumnSummary{Name: name, Count: len(data)}
	if len(data) == 0 {
		nan := math.NaN()
		summary.Mean, summary.Std, summary.Min, summary.Q25 = nan, nan, nan, nan
		summary.Median, summary.Q75, summary.Max = nan, nan, nan
		return summary
	}

	summary.Mean, _ = stats.Mean(data)
	summary.Min, _ = stats.Min(data)
	summary.Max, _ = stats.Max(data)
	summary.Median, _ = stats.Median(data)

	if len(data) > 1 {
		summary.Std, _ = stats.StandardDeviationSample(data)
	} else {
		summary.Std = math.NaN()
	}

	sorted := append([]float64(nil), data...)
	sort.Float64s(sorted)
	summary.Q25 = quantileLinear(sorted, 0.25)
	summary.Q75 = quantileLinear(sorted, 0.75)

	return summary
}

// Correlation returns the Pearson correlation of x and y over rows where both are present.
// Fewer than two complete pairs yields NaN, as does a constant column.
func (da *DistributionAnalyzer) Correlation(x, y []float64) float64 {
	n := len(x)
	if len(y) < n {
		n = len(y)
	}
	xs := make([]float64, 0, n)
	ys := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}
	if len(xs) < 2 {
		return math.NaN()
	}
	return stat.Correlation(xs, ys, nil)
}

// quantileLinear interpolates between the two nearest ranks of sorted data,
// the method dataframe summaries use for quartiles.
// montanaflynn's Percentile and gonum's LinInterp both use other conventions.
func quantileLinear(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	h := float64(len(sorted)-1) * p
	lo := math.Floor(h)
	hi := math.Ceil(h)
	if lo == hi {
		return sorted[int(lo)]
	}
	return sorted[int(lo)] + (h-lo)*(sorted[int(hi)]-sorted[int(lo)])
}

func present(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}
