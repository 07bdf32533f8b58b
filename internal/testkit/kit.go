package testkit

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"trackplume/domain/table"

	"github.com/xuri/excelize/v2"
)

// SheetName is the sheet the fixture workbooks are written to
const SheetName = "Sheet1"

// SampleHeaders mirrors the header row of the survey statistics workbook
var SampleHeaders = []string{
	"Metric", "Term", "Df", "F value", "Pr(>F)", "", "Df", "F value", "Pr(>F)", "Notes",
}

// MetricStats holds the four statistic cells of one metric row, as cell text
type MetricStats struct {
	Name   string
	TrackF string
	TrackP string
	PlumeF string
	PlumeP string
}

// SampleStats are the values written into the sample table, one per metric block
var SampleStats = []MetricStats{
	{Name: "Abundance", TrackF: "5.23", TrackP: "0.0012", PlumeF: "8.91", PlumeP: "0.0001"},
	{Name: "Species Richness", TrackF: "3.1", TrackP: "0.084", PlumeF: "1.2", PlumeP: "0.29"},
	{Name: "Gini-Simpson Diversity", TrackF: "12.7", TrackP: "0.00003", PlumeF: "4.4", PlumeP: "0.041"},
	{Name: "Simpson's Evenness", TrackF: "0.8", TrackP: "0.37", PlumeF: "2.6", PlumeP: "0.05"},
}

// BlockSize is the number of rows per metric block; the statistics sit in the third row
const BlockSize = 5

// MetricRow builds a full-width statistics row
func MetricRow(name string, trackF, trackP, plumeF, plumeP string) []string {
	return []string{name, "Site", "1", trackF, trackP, "", "1", plumeF, plumeP, ""}
}

// SampleTable builds a 20-row table whose statistic rows are 2, 7, 12 and 17
func SampleTable() *table.RawTable {
	return TableFromStats(SampleStats)
}

// TableFromStats lays out one BlockSize-row block per metric
func TableFromStats(stats []MetricStats) *table.RawTable {
	rows := make([][]string, 0, len(stats)*BlockSize)
	for i, s := range stats {
		df := strconv.Itoa(10 + i)
		rows = append(rows,
			[]string{s.Name, "", "", "", "", "", "", "", "", ""},
			[]string{"", "Intercept", "1", "", "", "", "1", "", "", ""},
			MetricRow(s.Name, s.TrackF, s.TrackP, s.PlumeF, s.PlumeP),
			[]string{"", "Residuals", df, "", "", "", df, "", "", ""},
			[]string{"", "", "", "", "", "", "", "", "", "n=" + df},
		)
	}
	headers := append([]string(nil), SampleHeaders...)
	return table.NewRawTable(headers, rows)
}

// WriteXLSX writes tbl into a workbook at path. Cells that parse as numbers are stored
// as numeric cells so the reader sees them the way a real workbook stores them.
func WriteXLSX(path string, tbl *table.RawTable) error {
	f := excelize.NewFile()
	defer f.Close()

	for col, header := range tbl.Headers {
		if err := setCell(f, col, 0, header); err != nil {
			return err
		}
	}
	for r, row := range tbl.Rows {
		for col, cell := range row {
			if err := setCell(f, col, r+1, cell); err != nil {
				return err
			}
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save fixture workbook: %w", err)
	}
	return nil
}

func setCell(f *excelize.File, col, row int, cell string) error {
	if cell == "" {
		return nil
	}
	name, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return err
	}
	if v, err := strconv.ParseFloat(cell, 64); err == nil {
		return f.SetCellFloat(SheetName, name, v, -1, 64)
	}
	return f.SetCellStr(SheetName, name, cell)
}

// WriteCSV writes tbl as a CSV file with the header row first
func WriteCSV(path string, tbl *table.RawTable) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(tbl.Headers); err != nil {
		return err
	}
	if err := w.WriteAll(tbl.Rows); err != nil {
		return err
	}
	return nil
}
