package charts

import (
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
)

// ReferenceLine draws a dashed horizontal line at value across the plot area.
// lo and hi must be the y-axis range the chart was built with.
func ReferenceLine(value, lo, hi float64, label string) chart.Renderable {
	return func(r chart.Renderer, canvasBox chart.Box, defaults chart.Style) {
		if hi <= lo || value < lo || value > hi {
			return
		}
		y := canvasBox.Bottom - int(math.Round((value-lo)/(hi-lo)*float64(canvasBox.Height())))

		r.SetStrokeColor(ColorReference)
		r.SetStrokeWidth(2)
		r.SetStrokeDashArray(referenceDashes)
		r.MoveTo(canvasBox.Left, y)
		r.LineTo(canvasBox.Right, y)
		r.Stroke()
		r.SetStrokeDashArray(nil)

		if label == "" || defaults.Font == nil {
			return
		}
		r.SetFont(defaults.Font)
		r.SetFontColor(ColorReference)
		r.SetFontSize(9)
		width := r.MeasureText(label).Width()
		r.Text(label, canvasBox.Right-width-4, y-4)
	}
}
