package coercer

import (
	"math"
	"strconv"
	"strings"
)

// TypeCoercer turns raw spreadsheet cells into floats with a permissive policy:
// anything that does not parse becomes a missing value (NaN), never an error.
type TypeCoercer struct {
	config CoercionConfig
}

// CoercionConfig defines the coercion rules
type CoercionConfig struct {
	TrimSpace     bool     `json:"trim_space"`     // Strip surrounding whitespace before parsing
	MissingTokens []string `json:"missing_tokens"` // Cell texts treated as missing regardless of parse result
}

// DefaultCoercionConfig returns the rules used for the Track/Plume workbook
func DefaultCoercionConfig() CoercionConfig {
	return CoercionConfig{
		TrimSpace:     true,
		MissingTokens: []string{"", "nan", "NaN", "NA", "N/A", "n/a", "-"},
	}
}

// NewTypeCoercer creates a coercer with the given config
func NewTypeCoercer(config CoercionConfig) *TypeCoercer {
	return &TypeCoercer{config: config}
}

var defaultCoercer = NewTypeCoercer(DefaultCoercionConfig())

// CoerceFloat converts a cell with the default rules
func CoerceFloat(raw string) float64 {
	return defaultCoercer.CoerceFloat(raw)
}

// Missing returns the missing-value sentinel
func Missing() float64 {
	return math.NaN()
}

// IsMissing reports whether f is the missing-value sentinel
func IsMissing(f float64) bool {
	return math.IsNaN(f)
}

// CoerceFloat parses raw as a float64, returning NaN when the cell is blank or non-numeric
func (c *TypeCoercer) CoerceFloat(raw string) float64 {
	val := raw
	if c.config.TrimSpace {
		val = strings.TrimSpace(val)
	}
	if c.isMissingToken(val) {
		return Missing()
	}

	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return Missing()
	}
	return f
}

// CoerceColumn converts every cell in a column
func (c *TypeCoercer) CoerceColumn(cells []string) []float64 {
	out := make([]float64, len(cells))
	for i, cell := range cells {
		out[i] = c.CoerceFloat(cell)
	}
	return out
}

func (c *TypeCoercer) isMissingToken(val string) bool {
	for _, tok := range c.config.MissingTokens {
		if val == tok {
			return true
		}
	}
	return false
}

// ColumnKind is the inferred storage kind of a column
type ColumnKind string

const (
	KindNumeric ColumnKind = "float64"
	KindText    ColumnKind = "object"
	KindEmpty   ColumnKind = "empty"
)

// ColumnAnalysis summarizes how the cells of one column coerce
type ColumnAnalysis struct {
	TotalCount   int        `json:"total_count"`
	PresentCount int        `json:"present_count"` // cells that are neither blank nor a missing token
	NumericCount int        `json:"numeric_count"`
	TextCount    int        `json:"text_count"`
	Kind         ColumnKind `json:"kind"`
}

// MissingCount is the number of blank or missing-token cells
func (a ColumnAnalysis) MissingCount() int {
	return a.TotalCount - a.PresentCount
}

// IsNumeric reports whether every non-blank cell parsed as a number
func (a ColumnAnalysis) IsNumeric() bool {
	return a.Kind == KindNumeric
}

// AnalyzeColumn classifies a column. Blank cells and missing tokens count as missing.
// A column is numeric only when every other cell parses; a single text cell makes
// the whole column text, as a dataframe loader would.
func (c *TypeCoercer) AnalyzeColumn(cells []string) ColumnAnalysis {
	analysis := ColumnAnalysis{TotalCount: len(cells)}

	for _, cell := range cells {
		val := cell
		if c.config.TrimSpace {
			val = strings.TrimSpace(val)
		}
		if c.isMissingToken(val) {
			continue
		}
		analysis.PresentCount++
		if IsMissing(c.CoerceFloat(val)) {
			analysis.TextCount++
		} else {
			analysis.NumericCount++
		}
	}

	switch {
	case analysis.PresentCount == 0:
		analysis.Kind = KindEmpty
	case analysis.TextCount == 0:
		analysis.Kind = KindNumeric
	default:
		analysis.Kind = KindText
	}
	return analysis
}
