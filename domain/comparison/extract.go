package comparison

import (
	"math"

	"trackplume/domain/core"
	"trackplume/domain/datareadiness/coercer"
	"trackplume/domain/table"
)

// Extractor pulls Track/Plume statistics out of fixed table positions
type Extractor struct {
	coercer *coercer.TypeCoercer
}

// NewExtractor creates an extractor using the given cell coercion rules
func NewExtractor(c *coercer.TypeCoercer) *Extractor {
	if c == nil {
		c = coercer.NewTypeCoercer(coercer.DefaultCoercionConfig())
	}
	return &Extractor{coercer: c}
}

// Extract runs the default extractor
func Extract(tbl *table.RawTable, specs []MetricSpec) ([]ComparisonRecord, error) {
	return NewExtractor(nil).Extract(tbl, specs)
}

// Extract produces one record per spec, in spec order. A spec whose Track F or Plume F
// cell is missing is skipped without error. A table too small for any spec's row or
// columns fails with core.ErrMalformedTable and no records are returned.
func (e *Extractor) Extract(tbl *table.RawTable, specs []MetricSpec) ([]ComparisonRecord, error) {
	if err := Validate(tbl, specs); err != nil {
		return nil, err
	}

	records := make([]ComparisonRecord, 0, len(specs))
	for _, spec := range specs {
		row := tbl.Rows[spec.RowIndex]

		trackF := e.coercer.CoerceFloat(row[ColTrackF])
		trackP := e.coercer.CoerceFloat(row[ColTrackP])
		plumeF := e.coercer.CoerceFloat(row[ColPlumeF])
		plumeP := e.coercer.CoerceFloat(row[ColPlumeP])

		if coercer.IsMissing(trackF) || coercer.IsMissing(plumeF) {
			continue
		}

		records = append(records, ComparisonRecord{
			Metric:           spec.Name,
			TrackF:           trackF,
			TrackP:           trackP,
			PlumeF:           plumeF,
			PlumeP:           plumeP,
			FDifference:      trackF - plumeF,
			PDifference:      math.Abs(trackP - plumeP),
			TrackSignificant: IsSignificant(trackP),
			PlumeSignificant: IsSignificant(plumeP),
		})
	}
	return records, nil
}

// Validate checks the positional contract for every spec before any cell is read
func Validate(tbl *table.RawTable, specs []MetricSpec) error {
	if tbl == nil {
		return core.NewMalformedTableError("table is nil")
	}
	for _, spec := range specs {
		if spec.RowIndex < 0 {
			return core.NewMalformedTableError("metric %q has negative row index %d", spec.Name, spec.RowIndex)
		}
		if spec.RowIndex >= tbl.NumRows() {
			return core.NewMalformedTableError("metric %q needs row %d but table has %d rows", spec.Name, spec.RowIndex, tbl.NumRows())
		}
		if w := tbl.RowWidth(spec.RowIndex); w < MinColumns {
			return core.NewMalformedTableError("metric %q row %d has %d columns, need at least %d", spec.Name, spec.RowIndex, w, MinColumns)
		}
	}
	return nil
}

// Skipped returns the names of specs that produced no record
func Skipped(specs []MetricSpec, records []ComparisonRecord) []string {
	emitted := make(map[string]int, len(records))
	for _, r := range records {
		emitted[r.Metric]++
	}
	var skipped []string
	for _, spec := range specs {
		if emitted[spec.Name] > 0 {
			emitted[spec.Name]--
			continue
		}
		skipped = append(skipped, spec.Name)
	}
	return skipped
}
