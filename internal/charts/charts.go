package charts

import (
	"fmt"
	"math"
	"strings"

	"trackplume/domain/comparison"
	"trackplume/domain/core"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Bar colors: blue/orange for the grouped charts, green/red for alternate panels
var (
	ColorTrack      = drawing.ColorFromHex("0095ff")
	ColorPlume      = drawing.ColorFromHex("ff7700")
	ColorTrackAlt   = drawing.ColorFromHex("00ff00")
	ColorPlumeAlt   = drawing.ColorFromHex("ff0000")
	ColorNegative   = drawing.ColorFromHex("ff0000")
	ColorPositive   = drawing.ColorFromHex("0095ff")
	ColorEdge       = drawing.ColorBlack
	ColorReference  = drawing.ColorBlack
	referenceDashes = []float64{6, 4}
)

const (
	panelWidth  = 640
	panelHeight = 480
	gridWidth   = 960
	gridHeight  = 560

	headroom = 1.2
)

// Job is one chart to be written as <Name>.png
type Job struct {
	Name  string
	Chart chart.BarChart
}

// SiteEffect builds the Track vs Plume F-value panel for one metric, with each
// bar labelled by its F and p. Alternating panels use the second color pair.
func SiteEffect(r comparison.ComparisonRecord, index int) Job {
	track, plume := ColorTrack, ColorPlume
	if index%2 == 1 {
		track, plume = ColorTrackAlt, ColorPlumeAlt
	}

	bars := []chart.Value{
		{Label: fmt.Sprintf("Track F=%.2f p=%.6f", r.TrackF, r.TrackP), Value: r.TrackF, Style: barStyle(track)},
		{Label: fmt.Sprintf("Plume F=%.2f p=%.6f", r.PlumeF, r.PlumeP), Value: r.PlumeF, Style: barStyle(plume)},
	}

	lo, hi := valueRange(r.TrackF, r.PlumeF)
	return Job{
		Name:  "site_effect_" + slug(r.Metric),
		Chart: newBarChart(strings.ToUpper(r.Metric)+" - Site Effect Comparison", "F-value", panelWidth, panelHeight, bars, lo, hi),
	}
}

// FValues builds the grouped Track/Plume F-value chart
func FValues(records []comparison.ComparisonRecord) (Job, error) {
	if len(records) == 0 {
		return Job{}, core.ErrNoRecords
	}
	bars, values := grouped(records, ColorTrack, ColorPlume, func(r comparison.ComparisonRecord) (float64, float64) {
		return r.TrackF, r.PlumeF
	})
	lo, hi := valueRange(values...)
	return Job{
		Name:  "f_values",
		Chart: newBarChart("Track vs Plume - F-Values", "F-value", gridWidth, gridHeight, bars, lo, hi),
	}, nil
}

// PValues builds the grouped p-value chart with a dashed alpha = 0.05 reference line.
// Missing p-values are drawn as zero-height bars.
func PValues(records []comparison.ComparisonRecord) (Job, error) {
	if len(records) == 0 {
		return Job{}, core.ErrNoRecords
	}
	bars, values := grouped(records, ColorTrackAlt, ColorPlumeAlt, func(r comparison.ComparisonRecord) (float64, float64) {
		return zeroIfMissing(r.TrackP), zeroIfMissing(r.PlumeP)
	})
	lo, hi := valueRange(append(values, comparison.SignificanceAlpha)...)

	bc := newBarChart("Track vs Plume - P-Values", "P-value", gridWidth, gridHeight, bars, lo, hi)
	bc.Elements = append(bc.Elements, ReferenceLine(comparison.SignificanceAlpha, lo, hi, fmt.Sprintf("α = %.2f", comparison.SignificanceAlpha)))
	return Job{Name: "p_values", Chart: bc}, nil
}

// FDifference builds the Track - Plume chart: red where Plume's F is higher, blue otherwise
func FDifference(records []comparison.ComparisonRecord) (Job, error) {
	if len(records) == 0 {
		return Job{}, core.ErrNoRecords
	}
	bars := make([]chart.Value, 0, len(records))
	values := make([]float64, 0, len(records))
	for _, r := range records {
		col := ColorPositive
		if r.FDifference < 0 {
			col = ColorNegative
		}
		bars = append(bars, chart.Value{Label: r.Metric, Value: r.FDifference, Style: barStyle(col)})
		values = append(values, r.FDifference)
	}
	lo, hi := valueRange(values...)

	bc := newBarChart("F-Value Difference", "F Difference (Track - Plume)", gridWidth, gridHeight, bars, lo, hi)
	bc.Elements = append(bc.Elements, ReferenceLine(0, lo, hi, ""))
	return Job{Name: "f_difference", Chart: bc}, nil
}

// Significance builds the 0/1 chart of p < 0.05 per site
func Significance(records []comparison.ComparisonRecord) (Job, error) {
	if len(records) == 0 {
		return Job{}, core.ErrNoRecords
	}
	bars, _ := grouped(records, ColorTrack, ColorPlume, func(r comparison.ComparisonRecord) (float64, float64) {
		return indicator(r.TrackSignificant), indicator(r.PlumeSignificant)
	})
	return Job{
		Name:  "significance",
		Chart: newBarChart("Statistical Significance", "Significant (p < 0.05)", gridWidth, gridHeight, bars, 0, headroom),
	}, nil
}

// ComparisonSet returns the four grouped charts for the paired comparison
func ComparisonSet(records []comparison.ComparisonRecord) ([]Job, error) {
	builders := []func([]comparison.ComparisonRecord) (Job, error){FValues, PValues, FDifference, Significance}
	jobs := make([]Job, 0, len(builders))
	for _, build := range builders {
		job, err := build(records)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// SiteEffectSet returns one panel per record
func SiteEffectSet(records []comparison.ComparisonRecord) ([]Job, error) {
	if len(records) == 0 {
		return nil, core.ErrNoRecords
	}
	jobs := make([]Job, len(records))
	for i, r := range records {
		jobs[i] = SiteEffect(r, i)
	}
	return jobs, nil
}

func newBarChart(title, yName string, width, height int, bars []chart.Value, lo, hi float64) chart.BarChart {
	return chart.BarChart{
		Title:      title,
		TitleStyle: chart.Style{FontSize: 12},
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		Width:      width,
		Height:     height,
		BarWidth:   barWidth(width, len(bars)),
		BarSpacing: 16,
		YAxis: chart.YAxis{
			Name:  yName,
			Style: chart.Style{FontSize: 9},
			Range: &chart.ContinuousRange{Min: lo, Max: hi},
		},
		XAxis:        chart.Style{FontSize: 8},
		UseBaseValue: true,
		BaseValue:    0,
		Bars:         bars,
	}
}

func grouped(records []comparison.ComparisonRecord, track, plume drawing.Color, pick func(comparison.ComparisonRecord) (float64, float64)) ([]chart.Value, []float64) {
	bars := make([]chart.Value, 0, 2*len(records))
	values := make([]float64, 0, 2*len(records))
	for _, r := range records {
		t, p := pick(r)
		bars = append(bars,
			chart.Value{Label: r.Metric + " Track", Value: t, Style: barStyle(track)},
			chart.Value{Label: r.Metric + " Plume", Value: p, Style: barStyle(plume)},
		)
		values = append(values, t, p)
	}
	return bars, values
}

func barStyle(fill drawing.Color) chart.Style {
	return chart.Style{
		FillColor:   fill,
		StrokeColor: ColorEdge,
		StrokeWidth: 1,
	}
}

// valueRange spans zero and every value, with 20% headroom beyond the extremes
func valueRange(values ...float64) (float64, float64) {
	lo, hi := 0.0, 0.0
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	lo *= headroom
	hi *= headroom
	if hi == lo {
		hi = lo + 1
	}
	return lo, hi
}

func barWidth(width, n int) int {
	if n == 0 {
		return 40
	}
	w := (width-120)/n - 16
	if w > 80 {
		w = 80
	}
	if w < 12 {
		w = 12
	}
	return w
}

func zeroIfMissing(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}

func indicator(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func slug(name string) string {
	var b strings.Builder
	underscore := false
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			underscore = false
			continue
		}
		if !underscore && b.Len() > 0 {
			b.WriteByte('_')
			underscore = true
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}
