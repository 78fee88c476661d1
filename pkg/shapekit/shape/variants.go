package shape

import (
	"fmt"

	"github.com/ukaji3/shapekit-go/pkg/shapekit/dml"
)

// AutoShape is a shape drawn from a preset geometry.
type AutoShape struct {
	textShape
}

// SetPreset switches the preset geometry, keeping existing adjust values
// only when the preset is unchanged.
func (s *AutoShape) SetPreset(prst string) error {
	if prst == "" {
		return fmt.Errorf("%w: empty preset geometry", ErrInvalidArgument)
	}
	defer s.lock()()
	if s.el.SpPr.IsSetPrstGeom() && s.el.SpPr.PrstGeom.Prst == prst {
		return nil
	}
	geom := s.el.SpPr.AddNewPrstGeom()
	geom.Prst = prst
	geom.AddNewAvLst()
	return nil
}

// FreeformShape is a shape outlined by a custom path.
type FreeformShape struct {
	textShape
}

// Geometry returns the custom geometry of the shape.
func (s *FreeformShape) Geometry() *dml.CustomGeometry {
	defer s.lock()()
	return s.el.SpPr.CustGeom
}

// Paths returns the paths of the custom geometry.
func (s *FreeformShape) Paths() []*dml.Path2D {
	defer s.lock()()
	if s.el.SpPr.CustGeom.PathLst == nil {
		return nil
	}
	return s.el.SpPr.CustGeom.PathLst.Path
}

// TextBox is a preset-geometry shape whose primary content is its text.
type TextBox struct {
	textShape
}

// WordWrap reports whether text wraps at the shape boundary. A shape
// without body properties wraps, which is the DrawingML default.
func (s *TextBox) WordWrap() bool {
	defer s.lock()()
	body := TextBodyOf(s.el, false)
	if body == nil || body.BodyPr == nil {
		return true
	}
	return body.BodyPr.Wrap != "none"
}

// SetWordWrap sets the wrap mode, materializing the text body if needed.
func (s *TextBox) SetWordWrap(wrap bool) {
	defer s.lock()()
	body := TextBodyOf(s.el, true)
	if body.BodyPr == nil {
		body.AddNewBodyPr()
	}
	if wrap {
		body.BodyPr.Wrap = "square"
	} else {
		body.BodyPr.Wrap = "none"
	}
}
