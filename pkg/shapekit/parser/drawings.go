package parser

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"

	"github.com/ukaji3/shapekit-go/pkg/shapekit/dml"
)

// Drawing holds the shape elements of one sheet drawing or slide.
type Drawing struct {
	// Name is the sheet name or "Slide N".
	Name string
	// Path is the part path inside the package.
	Path string
	// Shapes are the decoded sp elements in document order.
	Shapes []*dml.Shape
	// MaxID is the highest cNvPr id of any drawing object in the part,
	// including pictures, connectors, groups and graphic frames.
	MaxID uint32
	// Err is set when the part could not be read or decoded.
	Err error
}

// ExtractSheetDrawings returns the drawing of every sheet that has one,
// keyed by sheet name.
func ExtractSheetDrawings(xlsxPath string) (map[string]*Drawing, error) {
	r, err := zip.OpenReader(xlsxPath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	sheetDrawingMap := getSheetDrawingMap(&r.Reader)

	result := make(map[string]*Drawing, len(sheetDrawingMap))
	for sheetName, drawingPath := range sheetDrawingMap {
		result[sheetName] = readDrawing(&r.Reader, sheetName, drawingPath)
	}

	return result, nil
}

// ExtractSlideDrawings returns one drawing per slide in presentation order.
func ExtractSlideDrawings(pptxPath string) ([]*Drawing, error) {
	r, err := zip.OpenReader(pptxPath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	slidePaths, err := getSlidePaths(&r.Reader)
	if err != nil {
		return nil, err
	}

	drawings := make([]*Drawing, len(slidePaths))
	for i, slidePath := range slidePaths {
		drawings[i] = readDrawing(&r.Reader, fmt.Sprintf("Slide %d", i+1), slidePath)
	}

	return drawings, nil
}

// getSheetDrawingMap returns a mapping of sheet names to their drawing part paths.
func getSheetDrawingMap(r *zip.Reader) map[string]string {
	result := make(map[string]string)

	workbookXML, err := readZipFile(r, "xl/workbook.xml")
	if err != nil {
		return result
	}
	sheetsInfo := parseWorkbookSheets(workbookXML)
	if len(sheetsInfo) == 0 {
		return result
	}

	wbRelsXML, err := readZipFile(r, relsPathFor("xl/workbook.xml"))
	if err != nil {
		return result
	}

	for _, rel := range parseRelationships(wbRelsXML) {
		sheetName, ok := sheetsInfo[rel.ID]
		if !ok || !strings.Contains(strings.ToLower(rel.Type), "worksheet") {
			continue
		}
		sheetPath := resolveRelativePath(rel.Target, "xl")

		sheetRelsXML, err := readZipFile(r, relsPathFor(sheetPath))
		if err != nil {
			continue
		}
		for _, sheetRel := range parseRelationships(sheetRelsXML) {
			if strings.HasSuffix(sheetRel.Type, "/drawing") {
				result[sheetName] = resolveRelativePath(sheetRel.Target, path.Dir(sheetPath))
				break
			}
		}
	}

	return result
}

// getSlidePaths returns the slide part paths in sldIdLst order.
func getSlidePaths(r *zip.Reader) ([]string, error) {
	presentationXML, err := readZipFile(r, "ppt/presentation.xml")
	if err != nil {
		return nil, err
	}
	presRelsXML, err := readZipFile(r, relsPathFor("ppt/presentation.xml"))
	if err != nil {
		return nil, err
	}

	targets := make(map[string]string)
	for _, rel := range parseRelationships(presRelsXML) {
		if strings.HasSuffix(rel.Type, "/slide") {
			targets[rel.ID] = resolveRelativePath(rel.Target, "ppt")
		}
	}

	var paths []string
	for _, rID := range relationshipIDs(presentationXML, "sldId") {
		if p, ok := targets[rID]; ok {
			paths = append(paths, p)
		}
	}
	return paths, nil
}

func readDrawing(r *zip.Reader, name, partPath string) *Drawing {
	d := &Drawing{Name: name, Path: partPath}
	data, err := readZipFile(r, partPath)
	if err != nil {
		d.Err = err
		return d
	}
	d.Shapes, d.MaxID, d.Err = parseDrawingXML(data)
	return d
}

// parseDrawingXML decodes every sp element of a drawing or slide part,
// including shapes nested in anchors and groups. Fallback branches of
// alternate content are skipped so a shape is never reported twice. The
// returned id is the highest cNvPr id seen on any object.
func parseDrawingXML(data []byte) ([]*dml.Shape, uint32, error) {
	var shapes []*dml.Shape
	var maxID uint32

	decoder := xml.NewDecoder(bytes.NewReader(data))
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return shapes, maxID, fmt.Errorf("parse drawing: %w", err)
		}

		se, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		switch se.Name.Local {
		case "sp":
			el := dml.NewShape()
			if err := decoder.DecodeElement(el, &se); err != nil {
				return shapes, maxID, fmt.Errorf("decode shape: %w", err)
			}
			if el.NvSpPr != nil && el.NvSpPr.CNvPr != nil {
				maxID = max(maxID, el.NvSpPr.CNvPr.ID)
			}
			shapes = append(shapes, el)
		case "cNvPr":
			maxID = max(maxID, cNvPrID(se))
		case "Fallback":
			if err := decoder.Skip(); err != nil {
				return shapes, maxID, fmt.Errorf("parse drawing: %w", err)
			}
		}
	}

	return shapes, maxID, nil
}

// cNvPrID returns the id attribute of a cNvPr start element, or 0.
func cNvPrID(se xml.StartElement) uint32 {
	for _, attr := range se.Attr {
		if attr.Name.Local != "id" {
			continue
		}
		id, err := strconv.ParseUint(attr.Value, 10, 32)
		if err != nil {
			return 0
		}
		return uint32(id)
	}
	return 0
}
