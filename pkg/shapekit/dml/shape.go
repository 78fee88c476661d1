// Package dml provides the DrawingML element tree for shape (sp) elements.
//
// The same structures decode shapes from PresentationML slides (p:sp) and
// SpreadsheetML drawings (xdr:sp). Struct tags use local element names only,
// so decoding matches either host namespace.
package dml

import (
	"encoding/xml"
	"errors"
	"fmt"

	"github.com/tiendc/go-deepcopy"
)

// XML namespaces used by shape elements.
const (
	NSDrawingML           = "http://schemas.openxmlformats.org/drawingml/2006/main"
	NSPresentationML      = "http://schemas.openxmlformats.org/presentationml/2006/main"
	NSSpreadsheetDrawing  = "http://schemas.openxmlformats.org/drawingml/2006/spreadsheetDrawing"
	NSOfficeRelationships = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
)

// PresetRect is the preset geometry name of a plain rectangle.
const PresetRect = "rect"

// ErrMalformedShape indicates a shape element without its required blocks.
var ErrMalformedShape = errors.New("malformed shape element")

// EmptyElement is a child element that carries no content (e.g. a:noFill).
type EmptyElement struct{}

// Shape is an sp element.
type Shape struct {
	XMLName  xml.Name         `xml:"sp"`
	Macro    string           `xml:"macro,attr,omitempty"`
	TextLink string           `xml:"textlink,attr,omitempty"`
	Attrs    AttrList         `xml:",any,attr"`
	NvSpPr   *ShapeNonVisual  `xml:"nvSpPr"`
	SpPr     *ShapeProperties `xml:"spPr"`
	Style    *RawElement      `xml:"style"`
	TxBody   *TextBody        `xml:"txBody"`
	Extra    []RawElement     `xml:",any"` // extLst
}

// ShapeNonVisual is the nvSpPr block.
type ShapeNonVisual struct {
	CNvPr   *NonVisualDrawingProps      `xml:"cNvPr"`
	CNvSpPr *NonVisualShapeDrawingProps `xml:"cNvSpPr"`
	NvPr    *ApplicationNonVisualProps  `xml:"nvPr"` // presentation shapes only
}

// NonVisualDrawingProps is the cNvPr element.
type NonVisualDrawingProps struct {
	ID     uint32       `xml:"id,attr"`
	Name   string       `xml:"name,attr"`
	Descr  string       `xml:"descr,attr,omitempty"`
	Title  string       `xml:"title,attr,omitempty"`
	Hidden *bool        `xml:"hidden,attr,omitempty"`
	Attrs  AttrList     `xml:",any,attr"`
	Extra  []RawElement `xml:",any"` // hlinkClick, extLst
}

// NonVisualShapeDrawingProps is the cNvSpPr element.
type NonVisualShapeDrawingProps struct {
	TxBox *bool        `xml:"txBox,attr,omitempty"`
	Extra []RawElement `xml:",any"` // spLocks, extLst
}

// ApplicationNonVisualProps is the p:nvPr element.
type ApplicationNonVisualProps struct {
	Attrs AttrList     `xml:",any,attr"`
	Ph    *Placeholder `xml:"ph"`
	Extra []RawElement `xml:",any"`
}

// Placeholder is the p:ph element.
type Placeholder struct {
	Type string `xml:"type,attr,omitempty"`
	Idx  *int   `xml:"idx,attr,omitempty"`
}

// ShapeProperties is the spPr block.
type ShapeProperties struct {
	BwMode   string          `xml:"bwMode,attr,omitempty"`
	Xfrm     *Transform2D    `xml:"xfrm"`
	CustGeom *CustomGeometry `xml:"custGeom"`
	PrstGeom *PresetGeometry `xml:"prstGeom"`
	NoFill   *EmptyElement   `xml:"noFill"`
	Attrs    AttrList        `xml:",any,attr"`
	Extra    []RawElement    `xml:",any"` // other fills, ln, effects
}

// Transform2D is the a:xfrm element.
type Transform2D struct {
	Rot   int           `xml:"rot,attr,omitempty"` // 60000ths of a degree
	FlipH bool          `xml:"flipH,attr,omitempty"`
	FlipV bool          `xml:"flipV,attr,omitempty"`
	Off   *Point2D      `xml:"off"`
	Ext   *PositiveSize `xml:"ext"`
}

// Point2D is an offset in EMUs.
type Point2D struct {
	X int64 `xml:"x,attr"`
	Y int64 `xml:"y,attr"`
}

// PositiveSize is an extent in EMUs.
type PositiveSize struct {
	Cx int64 `xml:"cx,attr"`
	Cy int64 `xml:"cy,attr"`
}

// PresetGeometry is the a:prstGeom element.
type PresetGeometry struct {
	Prst  string         `xml:"prst,attr"`
	AvLst *GeomGuideList `xml:"avLst"`
}

// GeomGuideList is an a:avLst or a:gdLst element.
type GeomGuideList struct {
	Gd []GeomGuide `xml:"gd"`
}

// GeomGuide is a single shape guide (adjust value or formula).
type GeomGuide struct {
	Name string `xml:"name,attr"`
	Fmla string `xml:"fmla,attr"`
}

// CustomGeometry is the a:custGeom element. Handles, connection sites and
// path commands are kept as raw XML.
type CustomGeometry struct {
	AvLst   *GeomGuideList `xml:"avLst"`
	GdLst   *GeomGuideList `xml:"gdLst"`
	AhLst   *RawList       `xml:"ahLst"`
	CxnLst  *RawList       `xml:"cxnLst"`
	Rect    *GeomRect      `xml:"rect"`
	PathLst *Path2DList    `xml:"pathLst"`
}

// RawList holds element content that is carried through untouched.
type RawList struct {
	Inner []byte `xml:",innerxml"`
}

// GeomRect is the text rectangle of a custom geometry, as guide references.
type GeomRect struct {
	L string `xml:"l,attr"`
	T string `xml:"t,attr"`
	R string `xml:"r,attr"`
	B string `xml:"b,attr"`
}

// Path2DList is the a:pathLst element.
type Path2DList struct {
	Path []*Path2D `xml:"path"`
}

// Path2D is a single a:path. Its drawing commands are not modeled.
type Path2D struct {
	W        int64  `xml:"w,attr,omitempty"`
	H        int64  `xml:"h,attr,omitempty"`
	Commands []byte `xml:",innerxml"`
}

// NewShape returns a detached, empty shape element.
func NewShape() *Shape {
	return &Shape{XMLName: xml.Name{Local: "sp"}}
}

// AddNewNvSpPr attaches a new non-visual block and returns it.
func (s *Shape) AddNewNvSpPr() *ShapeNonVisual {
	s.NvSpPr = &ShapeNonVisual{}
	return s.NvSpPr
}

// AddNewSpPr attaches a new shape-properties block and returns it.
func (s *Shape) AddNewSpPr() *ShapeProperties {
	s.SpPr = &ShapeProperties{}
	return s.SpPr
}

// AddNewTxBody attaches a new, empty text body and returns it.
func (s *Shape) AddNewTxBody() *TextBody {
	s.TxBody = &TextBody{}
	return s.TxBody
}

// IsSetTxBody reports whether the shape has a text body.
func (s *Shape) IsSetTxBody() bool {
	return s.TxBody != nil
}

// Validate checks the blocks every shape element must carry.
func (s *Shape) Validate() error {
	switch {
	case s == nil:
		return fmt.Errorf("%w: nil element", ErrMalformedShape)
	case s.NvSpPr == nil:
		return fmt.Errorf("%w: missing nvSpPr", ErrMalformedShape)
	case s.NvSpPr.CNvPr == nil:
		return fmt.Errorf("%w: missing cNvPr", ErrMalformedShape)
	case s.NvSpPr.CNvSpPr == nil:
		return fmt.Errorf("%w: missing cNvSpPr", ErrMalformedShape)
	case s.SpPr == nil:
		return fmt.Errorf("%w: missing spPr", ErrMalformedShape)
	}
	return nil
}

// Clone returns a deep copy of the shape element.
func (s *Shape) Clone() (*Shape, error) {
	var dst Shape
	if err := deepcopy.Copy(&dst, s); err != nil {
		return nil, fmt.Errorf("clone shape: %w", err)
	}
	return &dst, nil
}

// AddNewCNvPr attaches new drawing properties and returns them.
func (nv *ShapeNonVisual) AddNewCNvPr() *NonVisualDrawingProps {
	nv.CNvPr = &NonVisualDrawingProps{}
	return nv.CNvPr
}

// AddNewCNvSpPr attaches new shape drawing properties and returns them.
func (nv *ShapeNonVisual) AddNewCNvSpPr() *NonVisualShapeDrawingProps {
	nv.CNvSpPr = &NonVisualShapeDrawingProps{}
	return nv.CNvSpPr
}

// AddNewNvPr attaches new application properties and returns them.
func (nv *ShapeNonVisual) AddNewNvPr() *ApplicationNonVisualProps {
	nv.NvPr = &ApplicationNonVisualProps{}
	return nv.NvPr
}

// IsTxBox reports whether txBox is present and true.
func (c *NonVisualShapeDrawingProps) IsTxBox() bool {
	return c.TxBox != nil && *c.TxBox
}

// SetTxBox sets the txBox flag.
func (c *NonVisualShapeDrawingProps) SetTxBox(v bool) {
	c.TxBox = &v
}

// IsSetCustGeom reports whether the shape uses a custom geometry.
func (sp *ShapeProperties) IsSetCustGeom() bool {
	return sp.CustGeom != nil
}

// IsSetPrstGeom reports whether the shape uses a preset geometry.
func (sp *ShapeProperties) IsSetPrstGeom() bool {
	return sp.PrstGeom != nil
}

// AddNewPrstGeom attaches a preset geometry and returns it.
func (sp *ShapeProperties) AddNewPrstGeom() *PresetGeometry {
	sp.PrstGeom = &PresetGeometry{}
	return sp.PrstGeom
}

// AddNewCustGeom attaches a custom geometry and returns it.
func (sp *ShapeProperties) AddNewCustGeom() *CustomGeometry {
	sp.CustGeom = &CustomGeometry{}
	return sp.CustGeom
}

// AddNewAvLst attaches an empty adjust value list and returns it.
func (pg *PresetGeometry) AddNewAvLst() *GeomGuideList {
	pg.AvLst = &GeomGuideList{}
	return pg.AvLst
}
