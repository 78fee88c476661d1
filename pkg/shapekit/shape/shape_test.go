package shape

import (
	"testing"

	"github.com/ukaji3/shapekit-go/pkg/shapekit/dml"
	"golang.org/x/text/language"
)

func boolPtr(v bool) *bool { return &v }

// testElement builds a minimal valid sp element.
func testElement(custGeom bool, txBox *bool) *dml.Shape {
	el := dml.NewShape()
	nv := el.AddNewNvSpPr()
	cnv := nv.AddNewCNvPr()
	cnv.ID = 3
	cnv.Name = "Shape 3"
	nv.AddNewCNvSpPr().TxBox = txBox
	spPr := el.AddNewSpPr()
	if custGeom {
		spPr.AddNewCustGeom()
	} else {
		spPr.AddNewPrstGeom().Prst = "ellipse"
	}
	return el
}

func TestWrapClassification(t *testing.T) {
	tests := []struct {
		name     string
		custGeom bool
		txBox    *bool
		expected Kind
	}{
		{"custom geometry, no flag", true, nil, KindFreeform},
		{"custom geometry wins over text box flag", true, boolPtr(true), KindFreeform},
		{"custom geometry, flag false", true, boolPtr(false), KindFreeform},
		{"text box flag", false, boolPtr(true), KindTextBox},
		{"text box flag false", false, boolPtr(false), KindAutoShape},
		{"no markers", false, nil, KindAutoShape},
	}

	for _, tt := range tests {
		sh := Wrap(testElement(tt.custGeom, tt.txBox), nil)
		if sh.Kind() != tt.expected {
			t.Errorf("%s: Kind() = %v, expected %v", tt.name, sh.Kind(), tt.expected)
		}

		var ok bool
		switch tt.expected {
		case KindFreeform:
			_, ok = sh.(*FreeformShape)
		case KindTextBox:
			_, ok = sh.(*TextBox)
		case KindAutoShape:
			_, ok = sh.(*AutoShape)
		}
		if !ok {
			t.Errorf("%s: wrapper type %T does not match kind %v", tt.name, sh, tt.expected)
		}
	}
}

func TestWrapKindIsFixed(t *testing.T) {
	el := testElement(false, nil)
	sh := Wrap(el, nil)

	el.NvSpPr.CNvSpPr.SetTxBox(true)
	if sh.Kind() != KindAutoShape {
		t.Errorf("Kind() changed to %v after the element was edited", sh.Kind())
	}
}

func TestWrapPanicsOnMalformedElement(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected Wrap to panic on an element without spPr")
		}
	}()
	el := testElement(false, nil)
	el.SpPr = nil
	Wrap(el, nil)
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindAutoShape, "AutoShape"},
		{KindFreeform, "FreeformShape"},
		{KindTextBox, "TextBox"},
		{Kind(42), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.expected {
			t.Errorf("Kind(%d).String() = %q, expected %q", tt.kind, got, tt.expected)
		}
	}
}

func TestShapeAccessors(t *testing.T) {
	el := testElement(false, boolPtr(true))
	sh := Wrap(el, nil)

	if sh.ID() != 3 || sh.Name() != "Shape 3" {
		t.Errorf("ID/Name = %d/%q", sh.ID(), sh.Name())
	}
	if sh.Preset() != "ellipse" {
		t.Errorf("Preset() = %q", sh.Preset())
	}
	if got := sh.String(); got != "[TextBox] Shape 3" {
		t.Errorf("String() = %q", got)
	}
	if _, ok := sh.Bounds(); ok {
		t.Error("expected no bounds without xfrm")
	}

	want := Rect{X: 914400, Y: 457200, Width: 1828800, Height: 914400}
	sh.SetBounds(want)
	got, ok := sh.Bounds()
	if !ok || got != want {
		t.Errorf("Bounds() = %+v, %v; expected %+v", got, ok, want)
	}

	el.SpPr.Xfrm.Rot = 2700000
	if sh.Rotation() != 45 {
		t.Errorf("Rotation() = %v, expected 45", sh.Rotation())
	}

	free := Wrap(testElement(true, nil), nil)
	if free.Preset() != "" {
		t.Errorf("freeform Preset() = %q, expected empty", free.Preset())
	}
}

func TestAutoShapeSetPreset(t *testing.T) {
	sh := Wrap(testElement(false, nil), nil).(*AutoShape)

	if err := sh.SetPreset("roundRect"); err != nil {
		t.Fatalf("SetPreset failed: %v", err)
	}
	if sh.Preset() != "roundRect" {
		t.Errorf("Preset() = %q", sh.Preset())
	}
	if sh.Element().SpPr.PrstGeom.AvLst == nil {
		t.Error("expected an empty adjust value list after SetPreset")
	}

	if err := sh.SetPreset(""); err == nil {
		t.Error("expected error for empty preset")
	}
}

func TestFreeformPaths(t *testing.T) {
	el := testElement(true, nil)
	sh := Wrap(el, nil).(*FreeformShape)

	if paths := sh.Paths(); paths != nil {
		t.Errorf("expected no paths, got %d", len(paths))
	}

	el.SpPr.CustGeom.PathLst = &dml.Path2DList{Path: []*dml.Path2D{{W: 100, H: 50}}}
	if paths := sh.Paths(); len(paths) != 1 || paths[0].W != 100 {
		t.Errorf("Paths() = %+v", paths)
	}
	if sh.Geometry() != el.SpPr.CustGeom {
		t.Error("Geometry() does not return the element's custom geometry")
	}
}

func TestTextBoxWordWrap(t *testing.T) {
	el := testElement(false, boolPtr(true))
	sh := Wrap(el, nil).(*TextBox)

	if !sh.WordWrap() {
		t.Error("expected wrapping by default")
	}
	if el.TxBody != nil {
		t.Fatal("WordWrap must not create a text body")
	}

	sh.SetWordWrap(false)
	if sh.WordWrap() {
		t.Error("expected no wrapping after SetWordWrap(false)")
	}
	if el.TxBody.BodyPr.Wrap != "none" {
		t.Errorf("bodyPr wrap = %q", el.TxBody.BodyPr.Wrap)
	}
}

func TestShapeLanguage(t *testing.T) {
	tests := []struct {
		name    string
		runLang string
		endLang string
		want    language.Tag
	}{
		{"run preferred", "de-DE", "en-US", language.MustParse("de-DE")},
		{"end paragraph fallback", "", "ja-JP", language.MustParse("ja-JP")},
		{"invalid tag", "not a tag!", "", language.Und},
		{"no properties", "", "", language.Und},
	}

	for _, tt := range tests {
		el := testElement(false, nil)
		p := el.AddNewTxBody().AddNewP()
		p.AddNewBr()
		r := p.AddNewR()
		if tt.runLang != "" {
			r.RPr = &dml.TextCharacterProperties{Lang: tt.runLang}
		}
		if tt.endLang != "" {
			p.AddNewEndParaRPr().Lang = tt.endLang
		}
		if got := Wrap(el, nil).Language(); got.String() != tt.want.String() {
			t.Errorf("%s: Language() = %v, expected %v", tt.name, got, tt.want)
		}
	}

	el := testElement(false, nil)
	if got := Wrap(el, nil).Language(); !got.IsRoot() {
		t.Errorf("Language() without body = %v, expected und", got)
	}
	if el.IsSetTxBody() {
		t.Error("Language() created a text body")
	}

	sheet := NewSheet("Slide 1")
	box, err := sheet.CreateTextBox()
	if err != nil {
		t.Fatalf("CreateTextBox failed: %v", err)
	}
	box.SetText("hello")
	if got := box.Language(); got.String() != DefaultLanguage.String() {
		t.Errorf("Language() = %v, expected %v", got, DefaultLanguage)
	}
}
