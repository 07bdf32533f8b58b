package coercer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoerceFloat(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		expected    float64
		wantMissing bool
	}{
		{name: "plain decimal", raw: "5.23", expected: 5.23},
		{name: "surrounding whitespace", raw: "  8.91 ", expected: 8.91},
		{name: "scientific notation", raw: "1.2E-4", expected: 0.00012},
		{name: "negative", raw: "-3.5", expected: -3.5},
		{name: "integer", raw: "17", expected: 17},
		{name: "blank", raw: "", wantMissing: true},
		{name: "whitespace only", raw: "   ", wantMissing: true},
		{name: "N/A text", raw: "N/A", wantMissing: true},
		{name: "nan token", raw: "nan", wantMissing: true},
		{name: "label text", raw: "Abundance", wantMissing: true},
		{name: "trailing garbage", raw: "5.2x", wantMissing: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CoerceFloat(tt.raw)
			if tt.wantMissing {
				assert.True(t, IsMissing(got), "expected missing for %q, got %v", tt.raw, got)
				return
			}
			assert.InDelta(t, tt.expected, got, 1e-12)
		})
	}
}

func TestCoerceFloatWithoutTrim(t *testing.T) {
	c := NewTypeCoercer(CoercionConfig{TrimSpace: false})

	assert.True(t, IsMissing(c.CoerceFloat(" 1.5")))
	assert.Equal(t, 1.5, c.CoerceFloat("1.5"))
}

func TestCoerceColumn(t *testing.T) {
	c := NewTypeCoercer(DefaultCoercionConfig())
	got := c.CoerceColumn([]string{"1", "x", "", "2.5"})

	assert.Len(t, got, 4)
	assert.Equal(t, 1.0, got[0])
	assert.True(t, math.IsNaN(got[1]))
	assert.True(t, math.IsNaN(got[2]))
	assert.Equal(t, 2.5, got[3])
}

func TestAnalyzeColumn(t *testing.T) {
	c := NewTypeCoercer(DefaultCoercionConfig())

	tests := []struct {
		name        string
		cells       []string
		kind        ColumnKind
		present     int
		missing     int
		numericCols int
	}{
		{name: "all numeric", cells: []string{"1", "2.5", "3"}, kind: KindNumeric, present: 3, missing: 0, numericCols: 3},
		{name: "numeric with blanks", cells: []string{"1", "", "3"}, kind: KindNumeric, present: 2, missing: 1, numericCols: 2},
		{name: "single text cell", cells: []string{"1", "Track", "3"}, kind: KindText, present: 3, missing: 0, numericCols: 2},
		{name: "all blank", cells: []string{"", " "}, kind: KindEmpty, present: 0, missing: 2, numericCols: 0},
		{name: "missing token stays numeric", cells: []string{"1.5", "N/A", "2.5"}, kind: KindNumeric, present: 2, missing: 1, numericCols: 2},
		{name: "mixed missing tokens", cells: []string{"nan", "NA", " n/a ", "-", "4"}, kind: KindNumeric, present: 1, missing: 4, numericCols: 1},
		{name: "only missing tokens", cells: []string{"N/A", "nan"}, kind: KindEmpty, present: 0, missing: 2, numericCols: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := c.AnalyzeColumn(tt.cells)
			assert.Equal(t, tt.kind, a.Kind)
			assert.Equal(t, tt.present, a.PresentCount)
			assert.Equal(t, tt.missing, a.MissingCount())
			assert.Equal(t, tt.numericCols, a.NumericCount)
			assert.Equal(t, tt.kind == KindNumeric, a.IsNumeric())
		})
	}
}
