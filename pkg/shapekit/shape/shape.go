// Package shape classifies DrawingML shape elements into typed wrappers and
// builds the default content of newly created shapes.
//
// Wrappers never own their element: the element stays in the tree of the
// Sheet it belongs to, and every accessor reads or mutates that tree
// directly. Mutation follows a single-writer discipline. Wrappers attached
// to a Sheet serialize through the sheet's lock; detached wrappers rely on
// the caller.
package shape

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ukaji3/shapekit-go/pkg/shapekit/dml"
	"golang.org/x/text/language"
)

// ErrInvalidArgument indicates a caller-supplied value outside its domain.
var ErrInvalidArgument = errors.New("invalid argument")

// Shape is the capability set shared by every shape kind.
type Shape interface {
	// Kind returns the classification computed when the shape was wrapped.
	Kind() Kind
	// Element returns the underlying sp element.
	Element() *dml.Shape
	// Sheet returns the owning sheet, or nil for a detached wrapper.
	Sheet() *Sheet
	ID() uint32
	Name() string
	// Preset returns the preset geometry name, or "" for a custom geometry.
	Preset() string
	// Bounds returns the shape transform in EMUs; ok is false without xfrm.
	Bounds() (r Rect, ok bool)
	SetBounds(r Rect)
	// Rotation returns the rotation in degrees.
	Rotation() float64
	// TextBody returns the text body, attaching a default one first when
	// create is true and none exists. With create false it never mutates.
	TextBody(create bool) *dml.TextBody
	Text() string
	SetText(text string)
	// Language returns the language of the first paragraph, or
	// language.Und when the shape has no text or no valid tag.
	Language() language.Tag
	String() string

	base() *textShape
}

// Rect is a position and extent in EMUs.
type Rect struct {
	X, Y          int64
	Width, Height int64
}

// Wrap classifies el and returns the matching wrapper. The first matching
// rule wins: a custom geometry makes a FreeformShape, a txBox flag makes a
// TextBox, anything else is an AutoShape.
//
// el must satisfy dml.Shape.Validate; Wrap panics otherwise.
func Wrap(el *dml.Shape, owner *Sheet) Shape {
	if err := el.Validate(); err != nil {
		panic(fmt.Sprintf("shape: Wrap: %v", err))
	}
	switch {
	case el.SpPr.IsSetCustGeom():
		return &FreeformShape{textShape{el: el, owner: owner, kind: KindFreeform}}
	case el.NvSpPr.CNvSpPr.IsTxBox():
		return &TextBox{textShape{el: el, owner: owner, kind: KindTextBox}}
	default:
		return &AutoShape{textShape{el: el, owner: owner, kind: KindAutoShape}}
	}
}

// textShape implements the shared part of every wrapper.
type textShape struct {
	el    *dml.Shape
	owner *Sheet
	kind  Kind
}

func (s *textShape) base() *textShape { return s }

func (s *textShape) Kind() Kind          { return s.kind }
func (s *textShape) Element() *dml.Shape { return s.el }
func (s *textShape) Sheet() *Sheet       { return s.owner }

func (s *textShape) lock() func() {
	if s.owner == nil {
		return func() {}
	}
	s.owner.mu.Lock()
	return s.owner.mu.Unlock
}

func (s *textShape) ID() uint32 {
	defer s.lock()()
	return s.el.NvSpPr.CNvPr.ID
}

func (s *textShape) Name() string {
	defer s.lock()()
	return s.el.NvSpPr.CNvPr.Name
}

func (s *textShape) Preset() string {
	defer s.lock()()
	if !s.el.SpPr.IsSetPrstGeom() {
		return ""
	}
	return s.el.SpPr.PrstGeom.Prst
}

func (s *textShape) Bounds() (Rect, bool) {
	defer s.lock()()
	xfrm := s.el.SpPr.Xfrm
	if xfrm == nil || xfrm.Off == nil || xfrm.Ext == nil {
		return Rect{}, false
	}
	return Rect{X: xfrm.Off.X, Y: xfrm.Off.Y, Width: xfrm.Ext.Cx, Height: xfrm.Ext.Cy}, true
}

func (s *textShape) SetBounds(r Rect) {
	defer s.lock()()
	if s.el.SpPr.Xfrm == nil {
		s.el.SpPr.Xfrm = &dml.Transform2D{}
	}
	s.el.SpPr.Xfrm.Off = &dml.Point2D{X: r.X, Y: r.Y}
	s.el.SpPr.Xfrm.Ext = &dml.PositiveSize{Cx: r.Width, Cy: r.Height}
}

func (s *textShape) Rotation() float64 {
	defer s.lock()()
	if s.el.SpPr.Xfrm == nil {
		return 0
	}
	return float64(s.el.SpPr.Xfrm.Rot) / 60000.0
}

func (s *textShape) TextBody(create bool) *dml.TextBody {
	defer s.lock()()
	return TextBodyOf(s.el, create)
}

// Text returns the shape text with paragraphs separated by newlines.
func (s *textShape) Text() string {
	defer s.lock()()
	body := TextBodyOf(s.el, false)
	if body == nil {
		return ""
	}
	lines := make([]string, len(body.P))
	for i, p := range body.P {
		lines[i] = p.Text()
	}
	return strings.Join(lines, "\n")
}

// SetText replaces the shape text, one paragraph per line. The formatting of
// the first paragraph and its first run is reused for every line.
func (s *textShape) SetText(text string) {
	defer s.lock()()
	setText(TextBodyOf(s.el, true), text)
}

// Language prefers the first regular run of the first paragraph over its
// end-paragraph properties. It never creates a text body.
func (s *textShape) Language() language.Tag {
	defer s.lock()()
	body := TextBodyOf(s.el, false)
	if body == nil || len(body.P) == 0 {
		return language.Und
	}
	p := body.P[0]
	props := p.EndParaRPr
	if r := p.FirstRun(); r != nil && r.RPr != nil && r.RPr.Lang != "" {
		props = r.RPr
	}
	if props == nil {
		return language.Und
	}
	tag, err := props.Language()
	if err != nil {
		return language.Und
	}
	return tag
}

func (s *textShape) String() string {
	defer s.lock()()
	return "[" + s.kind.String() + "] " + s.el.NvSpPr.CNvPr.Name
}
