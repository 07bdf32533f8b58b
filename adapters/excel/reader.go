package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"trackplume/domain/core"
	"trackplume/domain/table"
	"trackplume/internal"
	"trackplume/internal/errors"
	"trackplume/ports"

	"github.com/xuri/excelize/v2"
)

var _ ports.TableReader = (*DataReader)(nil)

// DataReader handles reading Excel and CSV files
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	sheet    string
	logger   *internal.Logger
}

// NewDataReader creates a new data reader that handles both Excel and CSV files
func NewDataReader(config ExcelConfig, logger *internal.Logger) *DataReader {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	ext := strings.ToLower(filepath.Ext(config.FilePath))
	fileType := strings.TrimPrefix(ext, ".")
	if fileType == "xlsm" {
		fileType = "xlsx"
	}
	return &DataReader{
		filePath: config.FilePath,
		fileType: fileType,
		sheet:    config.Sheet,
		logger:   logger.With("excel"),
	}
}

// ReadTable reads the dataset into a RawTable. The first row becomes the header row.
func (r *DataReader) ReadTable(ctx context.Context) (*table.RawTable, error) {
	r.logger.Debug("Starting to read %s file: %s", r.fileType, r.filePath)

	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, errors.NotFound(fmt.Sprintf("%s file %s", strings.ToUpper(r.fileType), r.filePath))
	}

	var (
		rows [][]string
		err  error
	)
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	case "xlsx":
		rows, err = r.readExcelRows()
	default:
		return nil, core.NewUnsupportedFormatError(filepath.Ext(r.filePath))
	}
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return r.processRows(rows)
}

// readExcelRows reads the configured sheet, or the first one, with raw cell values
// so stored numbers are not rounded to their display format.
func (r *DataReader) readExcelRows() ([][]string, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, errors.IOFailure(r.filePath, err)
	}
	defer f.Close()
	r.logger.Debug("Excel file opened in %.2fms", float64(time.Since(startTime).Nanoseconds())/1e6)

	sheet := r.sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: workbook has no sheets", core.ErrEmptyDataset)
		}
		sheet = sheets[0]
	}
	if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
		return nil, errors.InvalidInput(fmt.Sprintf("sheet %q not found in %s", sheet, r.filePath))
	}

	readStart := time.Now()
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read sheet %s", sheet)
	}
	r.logger.Debug("Sheet %s read in %.2fms (%d rows)", sheet, float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	return rows, nil
}

// readCSVRows reads CSV data, allowing ragged rows
func (r *DataReader) readCSVRows() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, errors.IOFailure(r.filePath, err)
	}
	defer file.Close()

	readStart := time.Now()
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.IOFailure(r.filePath, err)
	}
	r.logger.Debug("CSV file read in %.2fms (%d rows)", float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	return rows, nil
}

// processRows splits off the header row and pads every data row to the table width,
// so trailing blank cells the file format omits read as blank rather than absent.
func (r *DataReader) processRows(rows [][]string) (*table.RawTable, error) {
	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: %s needs a header row and at least one data row", core.ErrEmptyDataset, r.filePath)
	}

	headerRow := rows[0]
	width := len(headerRow)
	for _, row := range rows[1:] {
		if len(row) > width {
			width = len(row)
		}
	}

	headers := make([]string, width)
	for i, header := range headerRow {
		headers[i] = strings.TrimSpace(header)
	}

	dataRows := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		padded := make([]string, width)
		for j, cell := range row {
			padded[j] = strings.TrimSpace(cell)
		}
		dataRows = append(dataRows, padded)
	}

	r.logger.Debug("%s file processed (%d columns, %d rows)", strings.ToUpper(r.fileType), width, len(dataRows))

	return table.NewRawTable(headers, dataRows), nil
}
