package models

// SheetData represents the shapes of a single sheet drawing or slide.
type SheetData struct {
	// Name is the sheet name, or "Slide N" for presentations.
	Name string `json:"name" yaml:"name"`
	// Shapes contains shapes detected on the sheet.
	Shapes []Shape `json:"shapes,omitempty" yaml:"shapes,omitempty"`
}
