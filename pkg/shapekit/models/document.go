package models

// DocumentData represents a workbook or presentation with per-sheet shapes.
type DocumentData struct {
	// FileName is the input file name (no path).
	FileName string `json:"file_name" yaml:"file_name"`
	// Format is the package type: xlsx or pptx.
	Format string `json:"format" yaml:"format"`
	// Sheets lists sheets or slides in document order.
	Sheets []SheetData `json:"sheets" yaml:"sheets"`
}
