package comparison

// Fixed column positions of the source workbook. Each metric row carries the
// Track test in columns 3/4 and the Plume test in columns 7/8.
const (
	ColTrackF = 3
	ColTrackP = 4
	ColPlumeF = 7
	ColPlumeP = 8

	// MinColumns is the narrowest row that still holds every statistic column
	MinColumns = ColPlumeP + 1
)

// StatColumns is the number of columns from the first statistic column onward,
// the block the paired summary treats as numeric data
func StatColumns(width int) int {
	if width <= ColTrackF {
		return 0
	}
	return width - ColTrackF
}

// SignificanceAlpha is the strict upper bound for a significant p-value
const SignificanceAlpha = 0.05

// MetricSpec identifies which data row holds a metric's statistics
type MetricSpec struct {
	Name     string `json:"name"`
	RowIndex int    `json:"row_index"`
}

// Metric rows of the Track/Plume workbook
var (
	Abundance            = MetricSpec{Name: "Abundance", RowIndex: 2}
	SpeciesRichness      = MetricSpec{Name: "Species Richness", RowIndex: 7}
	GiniSimpsonDiversity = MetricSpec{Name: "Gini-Simpson Diversity", RowIndex: 12}
	SimpsonsEvenness     = MetricSpec{Name: "Simpson's Evenness", RowIndex: 17}
)

// DefaultMetrics returns the four metrics compared by the paired summary
func DefaultMetrics() []MetricSpec {
	return []MetricSpec{Abundance, SpeciesRichness, GiniSimpsonDiversity, SimpsonsEvenness}
}

// SiteEffectMetrics returns the metrics shown in the site-effect comparison
func SiteEffectMetrics() []MetricSpec {
	return []MetricSpec{Abundance, SpeciesRichness}
}

// ComparisonRecord is the Track vs Plume result for one metric
type ComparisonRecord struct {
	Metric           string  `json:"metric"`
	TrackF           float64 `json:"track_f"`
	TrackP           float64 `json:"track_p"`
	PlumeF           float64 `json:"plume_f"`
	PlumeP           float64 `json:"plume_p"`
	FDifference      float64 `json:"f_difference"` // TrackF - PlumeF; positive means Track's effect is stronger
	PDifference      float64 `json:"p_difference"` // |TrackP - PlumeP|, NaN when either p is missing
	TrackSignificant bool    `json:"track_significant"`
	PlumeSignificant bool    `json:"plume_significant"`
}

// IsSignificant applies the strict p < 0.05 rule. A missing (NaN) p-value is never significant.
func IsSignificant(p float64) bool {
	return p < SignificanceAlpha
}

// YesNo renders a significance flag the way the results table shows it
func YesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
