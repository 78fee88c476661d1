package shapekit

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ukaji3/shapekit-go/pkg/shapekit/models"
	"github.com/ukaji3/shapekit-go/pkg/shapekit/shape"
)

const (
	presentationXML = `<p:presentation xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"
  xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
  <p:sldIdLst><p:sldId id="256" r:id="rId2"/></p:sldIdLst></p:presentation>`
	presentationRels = `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide" Target="slides/slide1.xml"/>
</Relationships>`
	slideXML = `<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"
  xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">
  <p:cSld><p:spTree>
    <p:sp>
      <p:nvSpPr><p:cNvPr id="2" name="TextBox 1"/><p:cNvSpPr txBox="1"/><p:nvPr/></p:nvSpPr>
      <p:spPr>
        <a:xfrm><a:off x="95250" y="190500"/><a:ext cx="952500" cy="476250"/></a:xfrm>
        <a:prstGeom prst="rect"><a:avLst/></a:prstGeom>
      </p:spPr>
      <p:txBody><a:bodyPr/><a:p><a:r><a:rPr lang="en-US"/><a:t>Agenda</a:t></a:r></a:p></p:txBody>
    </p:sp>
    <p:sp>
      <p:nvSpPr><p:cNvPr id="3" name="Rectangle 2"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr>
      <p:spPr><a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr>
    </p:sp>
    <p:sp>
      <p:nvSpPr><p:cNvPr id="4" name="Broken"/></p:nvSpPr>
    </p:sp>
  </p:spTree></p:cSld>
</p:sld>`
)

func writePresentation(t *testing.T, slide string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "deck.pptx")
	f, err := os.Create(p)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	for name, body := range map[string]string{
		"ppt/presentation.xml":            presentationXML,
		"ppt/_rels/presentation.xml.rels": presentationRels,
		"ppt/slides/slide1.xml":           slide,
	} {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestExtractPresentation(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	path := writePresentation(t, slideXML)

	doc, err := Extract(path, Options{Mode: ModeStandard, Logger: zap.New(core)})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	expected := &models.DocumentData{
		FileName: "deck.pptx",
		Format:   "pptx",
		Sheets: []models.SheetData{{
			Name: "Slide 1",
			Shapes: []models.Shape{{
				ID: 2, Name: "TextBox 1", Kind: "TextBox", Type: "TextBox",
				Text: "Agenda", L: 10, T: 20,
			}},
		}},
	}
	if diff := cmp.Diff(expected, doc); diff != "" {
		t.Errorf("Extract mismatch (-want +got):\n%s", diff)
	}

	warnings := logs.FilterMessage("skipping shape").All()
	if len(warnings) != 1 {
		t.Fatalf("expected 1 skipped shape warning, got %d", len(warnings))
	}
	logged, ok := warnings[0].ContextMap()["error"].(string)
	if !ok || logged == "" {
		t.Errorf("warning carries no error: %v", warnings[0].ContextMap())
	}
}

func TestExtractModes(t *testing.T) {
	path := writePresentation(t, slideXML)

	light, err := Extract(path, Options{Mode: ModeLight})
	if err != nil {
		t.Fatalf("Extract(light) failed: %v", err)
	}
	if len(light.Sheets) != 1 || len(light.Sheets[0].Shapes) != 0 {
		t.Errorf("light mode = %+v, expected one sheet without shapes", light.Sheets)
	}

	verbose, err := Extract(path, Options{Mode: ModeVerbose})
	if err != nil {
		t.Fatalf("Extract(verbose) failed: %v", err)
	}
	shapes := verbose.Sheets[0].Shapes
	if len(shapes) != 2 {
		t.Fatalf("verbose mode returned %d shapes, expected 2", len(shapes))
	}
	if shapes[0].W == nil || *shapes[0].W != 100 || shapes[0].Lang != "en-US" {
		t.Errorf("verbose text box = %+v", shapes[0])
	}
	if shapes[1].Kind != "AutoShape" || shapes[1].Type != "AutoShape-Rectangle" {
		t.Errorf("verbose rectangle = %+v", shapes[1])
	}

	// Zero options fall back to standard mode.
	def, err := Extract(path, Options{})
	if err != nil {
		t.Fatalf("Extract(default) failed: %v", err)
	}
	if len(def.Sheets[0].Shapes) != 1 {
		t.Errorf("default mode returned %d shapes, expected 1", len(def.Sheets[0].Shapes))
	}
}

func TestLoadSheets(t *testing.T) {
	sheets, err := LoadSheets(writePresentation(t, slideXML), DefaultOptions())
	if err != nil {
		t.Fatalf("LoadSheets failed: %v", err)
	}
	if len(sheets) != 1 {
		t.Fatalf("expected 1 sheet, got %d", len(sheets))
	}
	shapes := sheets[0].Shapes()
	if len(shapes) != 2 {
		t.Fatalf("expected 2 shapes, got %d", len(shapes))
	}
	if shapes[0].Kind() != shape.KindTextBox || shapes[1].Kind() != shape.KindAutoShape {
		t.Errorf("kinds = %v, %v", shapes[0].Kind(), shapes[1].Kind())
	}

	created, err := sheets[0].CreateAutoShape()
	if err != nil {
		t.Fatalf("CreateAutoShape failed: %v", err)
	}
	// The skipped element still owns id 4.
	if created.ID() != 5 {
		t.Errorf("next id = %d, expected 5", created.ID())
	}
}

const mixedSlideXML = `<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"
  xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">
  <p:cSld><p:spTree>
    <p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>
    <p:grpSpPr/>
    <p:sp>
      <p:nvSpPr><p:cNvPr id="2" name="Title 1"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr>
      <p:spPr><a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr>
    </p:sp>
    <p:cxnSp>
      <p:nvCxnSpPr><p:cNvPr id="3" name="Straight Connector 2"/><p:cNvCxnSpPr/><p:nvPr/></p:nvCxnSpPr>
      <p:spPr><a:prstGeom prst="line"><a:avLst/></a:prstGeom></p:spPr>
    </p:cxnSp>
    <p:pic>
      <p:nvPicPr><p:cNvPr id="4" name="Picture 3"/><p:cNvPicPr/><p:nvPr/></p:nvPicPr>
      <p:blipFill/>
      <p:spPr><a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr>
    </p:pic>
  </p:spTree></p:cSld>
</p:sld>`

func TestLoadSheetsSkipsIDsOfOtherObjects(t *testing.T) {
	sheets, err := LoadSheets(writePresentation(t, mixedSlideXML), DefaultOptions())
	if err != nil {
		t.Fatalf("LoadSheets failed: %v", err)
	}
	if len(sheets) != 1 || len(sheets[0].Shapes()) != 1 {
		t.Fatalf("expected 1 sheet with 1 shape, got %+v", sheets)
	}

	auto, err := sheets[0].CreateAutoShape()
	if err != nil {
		t.Fatalf("CreateAutoShape failed: %v", err)
	}
	dup, err := sheets[0].Duplicate(auto)
	if err != nil {
		t.Fatalf("Duplicate failed: %v", err)
	}
	if auto.ID() != 5 || dup.ID() != 6 {
		t.Errorf("new ids = %d, %d, expected 5, 6", auto.ID(), dup.ID())
	}
	for _, sh := range sheets[0].Shapes() {
		if id := sh.ID(); id == 3 || id == 4 {
			t.Errorf("shape %q reuses id %d of a connector or picture", sh.Name(), id)
		}
	}
}

func TestExtractWorkbook(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	if _, err := f.NewSheet("Flow"); err != nil {
		t.Fatal(err)
	}
	if err := f.AddShape("Flow", &excelize.Shape{
		Cell:      "C3",
		Type:      "rightArrow",
		Paragraph: []excelize.RichTextRun{{Text: "Next"}},
	}); err != nil {
		t.Fatalf("AddShape failed: %v", err)
	}
	path := filepath.Join(t.TempDir(), "book.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs failed: %v", err)
	}

	doc, err := Extract(path, DefaultOptions())
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if doc.Format != "xlsx" || len(doc.Sheets) != 2 {
		t.Fatalf("doc = %s with %d sheets", doc.Format, len(doc.Sheets))
	}
	if doc.Sheets[0].Name != "Sheet1" || len(doc.Sheets[0].Shapes) != 0 {
		t.Errorf("first sheet = %+v", doc.Sheets[0])
	}
	flow := doc.Sheets[1]
	if flow.Name != "Flow" || len(flow.Shapes) != 1 {
		t.Fatalf("second sheet = %+v", flow)
	}
	if got := flow.Shapes[0]; got.Text != "Next" || got.Kind == "FreeformShape" {
		t.Errorf("shape = %+v", got)
	}
}

func TestExtractErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Extract(filepath.Join(dir, "missing.xlsx"), DefaultOptions())
	if !errors.Is(err, ErrFileNotFound) {
		t.Errorf("missing file error = %v, expected ErrFileNotFound", err)
	}

	text := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(text, []byte("not a package"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err = Extract(text, DefaultOptions())
	if !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("plain file error = %v, expected ErrInvalidFormat", err)
	}

	empty := filepath.Join(dir, "empty.zip")
	f, err := os.Create(empty)
	if err != nil {
		t.Fatal(err)
	}
	if err := zip.NewWriter(f).Close(); err != nil {
		t.Fatal(err)
	}
	f.Close()
	_, err = Extract(empty, DefaultOptions())
	if !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("empty zip error = %v, expected ErrInvalidFormat", err)
	}
}
