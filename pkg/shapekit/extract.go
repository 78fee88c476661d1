package shapekit

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/ukaji3/shapekit-go/pkg/shapekit/models"
	"github.com/ukaji3/shapekit-go/pkg/shapekit/parser"
	"github.com/ukaji3/shapekit-go/pkg/shapekit/shape"
)

// Extract reads the shapes of an xlsx or pptx file and summarizes them.
func Extract(path string, opts Options) (*models.DocumentData, error) {
	format, sheets, err := load(path, opts)
	if err != nil {
		return nil, err
	}

	mode := opts.mode()
	doc := &models.DocumentData{
		FileName: filepath.Base(path),
		Format:   string(format),
		Sheets:   make([]models.SheetData, 0, len(sheets)),
	}
	for _, sheet := range sheets {
		data := models.SheetData{Name: sheet.Name()}
		if mode != ModeLight {
			for _, sh := range sheet.Shapes() {
				if s := parser.SummarizeShape(sh, string(mode)); s != nil {
					data.Shapes = append(data.Shapes, *s)
				}
			}
		}
		doc.Sheets = append(doc.Sheets, data)
	}

	return doc, nil
}

// LoadSheets reads the shapes of an xlsx or pptx file into one Sheet per
// worksheet or slide, in document order. Malformed shapes and unreadable
// drawings are logged and skipped.
func LoadSheets(path string, opts Options) ([]*shape.Sheet, error) {
	_, sheets, err := load(path, opts)
	return sheets, err
}

func load(path string, opts Options) (parser.Format, []*shape.Sheet, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return parser.FormatUnknown, nil, fmt.Errorf("%s: %w", path, ErrFileNotFound)
		}
		return parser.FormatUnknown, nil, err
	}

	format, err := parser.DetectFormat(path)
	if err != nil {
		return format, nil, fmt.Errorf("%s: %w: %v", path, ErrInvalidFormat, err)
	}

	log := opts.logger().With(zap.String("file", filepath.Base(path)))

	var sheets []*shape.Sheet
	switch format {
	case parser.FormatXLSX:
		sheets, err = loadWorkbook(path, log)
	case parser.FormatPPTX:
		sheets, err = loadPresentation(path, log)
	default:
		return format, nil, fmt.Errorf("%s: %w", path, ErrInvalidFormat)
	}
	if err != nil {
		return format, nil, err
	}
	return format, sheets, nil
}

func loadWorkbook(path string, log *zap.Logger) ([]*shape.Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", path, ErrInvalidFormat, err)
	}
	defer f.Close()

	// Sheet order comes from the workbook; drawings are read separately
	// because excelize does not expose shape elements.
	sheetList := f.GetSheetList()

	drawings, err := parser.ExtractSheetDrawings(path)
	if err != nil {
		return nil, fmt.Errorf("read drawings: %w", err)
	}

	sheets := make([]*shape.Sheet, 0, len(sheetList))
	for _, name := range sheetList {
		sheets = append(sheets, buildSheet(name, drawings[name], log))
	}
	return sheets, nil
}

func loadPresentation(path string, log *zap.Logger) ([]*shape.Sheet, error) {
	drawings, err := parser.ExtractSlideDrawings(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", path, ErrInvalidFormat, err)
	}

	sheets := make([]*shape.Sheet, 0, len(drawings))
	for _, d := range drawings {
		sheets = append(sheets, buildSheet(d.Name, d, log))
	}
	return sheets, nil
}

// buildSheet wraps the elements of d into a new sheet. d may be nil for a
// worksheet without a drawing.
func buildSheet(name string, d *parser.Drawing, log *zap.Logger) *shape.Sheet {
	sheet := shape.NewSheet(name)
	if d == nil {
		return sheet
	}

	if d.Err != nil {
		// Keep whatever decoded before the error.
		log.Warn("drawing could not be read completely",
			zap.String("part", d.Path),
			zap.Int("decoded", len(d.Shapes)),
			zap.Error(NewExtractionError(name, "drawing", d.Err)))
	}

	// Pictures, connectors and groups keep their ids too.
	sheet.ReserveID(d.MaxID)

	for i, el := range d.Shapes {
		if _, err := sheet.AddElement(el); err != nil {
			log.Warn("skipping shape",
				zap.String("part", d.Path),
				zap.Int("index", i),
				zap.Error(NewExtractionError(name, "shape", err)))
		}
	}

	log.Debug("sheet loaded",
		zap.String("sheet", name),
		zap.Int("shapes", len(sheet.Elements())))
	return sheet
}
