package shape

import (
	"fmt"
	"sync"

	"github.com/ukaji3/shapekit-go/pkg/shapekit/dml"
)

// Sheet owns the shape elements of one slide or drawing part. It hands out
// 1-based shape ids that are unique within the sheet and serializes every
// mutation made through its wrappers. Ids used by elements the sheet does not
// own (pictures, connectors, groups) must be announced with ReserveID.
type Sheet struct {
	mu     sync.Mutex
	name   string
	shapes []Shape
	maxID  uint32
}

// NewSheet returns an empty sheet.
func NewSheet(name string) *Sheet {
	return &Sheet{name: name}
}

func (s *Sheet) Name() string {
	return s.name
}

// AddElement validates el and attaches it to the sheet, wrapped once
// according to its structural markers.
func (s *Sheet) AddElement(el *dml.Shape) (Shape, error) {
	if err := el.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attach(el), nil
}

// attach wraps el and records its id. Callers hold s.mu.
func (s *Sheet) attach(el *dml.Shape) Shape {
	sh := Wrap(el, s)
	s.shapes = append(s.shapes, sh)
	if id := el.NvSpPr.CNvPr.ID; id > s.maxID {
		s.maxID = id
	}
	return sh
}

// ReserveID marks every id up to and including id as taken, so shapes
// created later get a higher one.
func (s *Sheet) ReserveID(id uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id > s.maxID {
		s.maxID = id
	}
}

// Shapes returns the sheet's shapes in document order.
func (s *Sheet) Shapes() []Shape {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Shape, len(s.shapes))
	copy(out, s.shapes)
	return out
}

// Elements returns the underlying sp elements in document order.
func (s *Sheet) Elements() []*dml.Shape {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*dml.Shape, len(s.shapes))
	for i, sh := range s.shapes {
		out[i] = sh.Element()
	}
	return out
}

// ShapeByID returns the first shape carrying id.
func (s *Sheet) ShapeByID(id uint32) (Shape, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sh := range s.shapes {
		if sh.Element().NvSpPr.CNvPr.ID == id {
			return sh, true
		}
	}
	return nil, false
}

// CreateAutoShape appends a new rectangle auto shape.
func (s *Sheet) CreateAutoShape() (*AutoShape, error) {
	sh, err := s.create(NewAutoShapeElement)
	if err != nil {
		return nil, err
	}
	return sh.(*AutoShape), nil
}

// CreateTextBox appends a new text box.
func (s *Sheet) CreateTextBox() (*TextBox, error) {
	sh, err := s.create(NewTextBoxElement)
	if err != nil {
		return nil, err
	}
	return sh.(*TextBox), nil
}

// CreateFreeform appends a new freeform shape with an empty path list.
func (s *Sheet) CreateFreeform() (*FreeformShape, error) {
	sh, err := s.create(NewFreeformElement)
	if err != nil {
		return nil, err
	}
	return sh.(*FreeformShape), nil
}

func (s *Sheet) create(build func(int) (*dml.Shape, error)) (Shape, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	el, err := build(int(s.maxID) + 1)
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", s.name, err)
	}
	return s.attach(el), nil
}

// Duplicate deep-copies src, which may belong to any sheet, and appends the
// copy to s under the next free id. The copy keeps the source's name.
func (s *Sheet) Duplicate(src Shape) (Shape, error) {
	el, err := func() (*dml.Shape, error) {
		defer src.base().lock()()
		return src.Element().Clone()
	}()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next := int64(s.maxID) + 1
	if next > int64(^uint32(0)) {
		return nil, fmt.Errorf("%w: sheet %q has no free shape id", ErrInvalidArgument, s.name)
	}
	el.NvSpPr.CNvPr.ID = uint32(next)
	return s.attach(el), nil
}

// RemoveShape detaches sh from the sheet. It reports whether sh was found.
func (s *Sheet) RemoveShape(sh Shape) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, cur := range s.shapes {
		if cur.Element() == sh.Element() {
			s.shapes = append(s.shapes[:i], s.shapes[i+1:]...)
			return true
		}
	}
	return false
}
