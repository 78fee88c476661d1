package shape

import (
	"fmt"
	"math"
	"strconv"

	"github.com/ukaji3/shapekit-go/pkg/shapekit/dml"
)

// NewAutoShapeElement builds a detached rectangle shape with no text body.
// shapeID is 1-based; keeping it unique within a sheet is the caller's job.
func NewAutoShapeElement(shapeID int) (*dml.Shape, error) {
	el, err := newElement("AutoShape", shapeID)
	if err != nil {
		return nil, err
	}
	prst := el.AddNewSpPr().AddNewPrstGeom()
	prst.Prst = dml.PresetRect
	prst.AddNewAvLst()
	return el, nil
}

// NewTextBoxElement builds a detached, unfilled rectangle flagged as a text
// box, with a default text body already attached.
func NewTextBoxElement(shapeID int) (*dml.Shape, error) {
	el, err := newElement("TextBox", shapeID)
	if err != nil {
		return nil, err
	}
	el.NvSpPr.CNvSpPr.SetTxBox(true)
	spPr := el.AddNewSpPr()
	prst := spPr.AddNewPrstGeom()
	prst.Prst = dml.PresetRect
	prst.AddNewAvLst()
	spPr.NoFill = &dml.EmptyElement{}
	initTextBody(el.AddNewTxBody())
	return el, nil
}

// NewFreeformElement builds a detached shape with an empty custom geometry
// whose text rectangle covers the whole shape.
func NewFreeformElement(shapeID int) (*dml.Shape, error) {
	el, err := newElement("Freeform", shapeID)
	if err != nil {
		return nil, err
	}
	geom := el.AddNewSpPr().AddNewCustGeom()
	geom.AvLst = &dml.GeomGuideList{}
	geom.GdLst = &dml.GeomGuideList{}
	geom.AhLst = &dml.RawList{}
	geom.CxnLst = &dml.RawList{}
	geom.Rect = &dml.GeomRect{L: "l", T: "t", R: "r", B: "b"}
	geom.PathLst = &dml.Path2DList{}
	return el, nil
}

// newElement builds the non-visual block shared by all prototypes.
func newElement(label string, shapeID int) (*dml.Shape, error) {
	if shapeID <= 0 || int64(shapeID) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: shape id %d must be a positive 32-bit value", ErrInvalidArgument, shapeID)
	}
	el := dml.NewShape()
	nv := el.AddNewNvSpPr()
	cnv := nv.AddNewCNvPr()
	cnv.Name = label + " " + strconv.Itoa(shapeID)
	cnv.ID = uint32(shapeID)
	nv.AddNewCNvSpPr()
	nv.AddNewNvPr()
	return el, nil
}
