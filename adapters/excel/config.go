package excel

// ExcelConfig holds configuration for the spreadsheet data source
type ExcelConfig struct {
	FilePath string `json:"file_path"`
	Sheet    string `json:"sheet"` // Empty selects the first sheet in workbook order
}
