package dml

import (
	"encoding/xml"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Text anchoring and alignment values.
const (
	AnchorTop    = "t"
	AnchorCenter = "ctr"
	AnchorBottom = "b"

	AlignLeft    = "l"
	AlignCenter  = "ctr"
	AlignRight   = "r"
	AlignJustify = "just"
)

// Local names of the elements that make up paragraph content.
const (
	ElementRun   = "r"
	ElementField = "fld"
	ElementBreak = "br"
)

// TextBody is the txBody block of a shape.
type TextBody struct {
	BodyPr   *TextBodyProperties `xml:"bodyPr"`
	LstStyle *TextListStyle      `xml:"lstStyle"`
	P        []*TextParagraph    `xml:"p"`
}

// TextBodyProperties is the a:bodyPr element.
type TextBodyProperties struct {
	Wrap   string       `xml:"wrap,attr,omitempty"` // square, none
	RtlCol *bool        `xml:"rtlCol,attr,omitempty"`
	Anchor string       `xml:"anchor,attr,omitempty"`
	Attrs  AttrList     `xml:",any,attr"`
	Extra  []RawElement `xml:",any"` // autofit, scene3d, extLst
}

// TextListStyle is the a:lstStyle element. Level styles are not modeled.
type TextListStyle struct {
	Inner []byte `xml:",innerxml"`
}

// TextParagraph is an a:p element. R holds the paragraph content in
// document order: runs, fields and line breaks.
type TextParagraph struct {
	PPr        *TextParagraphProperties `xml:"pPr"`
	R          []*TextRun               `xml:",any"`
	EndParaRPr *TextCharacterProperties `xml:"endParaRPr"`
}

// TextParagraphProperties is the a:pPr element.
type TextParagraphProperties struct {
	Lvl   int          `xml:"lvl,attr,omitempty"`
	Algn  string       `xml:"algn,attr,omitempty"`
	Attrs AttrList     `xml:",any,attr"`
	Extra []RawElement `xml:",any"` // spacing, bullets, tab stops
}

// TextCharacterProperties is an a:rPr or a:endParaRPr element.
type TextCharacterProperties struct {
	Lang  string       `xml:"lang,attr,omitempty"`
	Sz    int          `xml:"sz,attr,omitempty"` // hundredths of a point
	B     *bool        `xml:"b,attr,omitempty"`
	I     *bool        `xml:"i,attr,omitempty"`
	Attrs AttrList     `xml:",any,attr"`
	Extra []RawElement `xml:",any"` // fills, fonts, hyperlinks
}

// TextRun is one piece of paragraph content: an a:r run, an a:fld field or
// an a:br line break. XMLName tells them apart.
type TextRun struct {
	XMLName xml.Name
	ID      string                   `xml:"id,attr,omitempty"`   // fld only
	Type    string                   `xml:"type,attr,omitempty"` // fld only
	Attrs   AttrList                 `xml:",any,attr"`
	RPr     *TextCharacterProperties `xml:"rPr"`
	PPr     *TextParagraphProperties `xml:"pPr"` // fld only
	T       string                   `xml:"t"`
	Extra   []RawElement             `xml:",any"`
}

type runXML struct {
	RPr   *TextCharacterProperties `xml:"rPr"`
	PPr   *TextParagraphProperties `xml:"pPr"`
	T     *string                  `xml:"t"`
	Extra []RawElement             `xml:",any"`
}

// Kind returns the local element name of the run, ElementRun when unset.
func (r *TextRun) Kind() string {
	if r.XMLName.Local == "" {
		return ElementRun
	}
	return r.XMLName.Local
}

// IsBreak reports whether r is a line break.
func (r *TextRun) IsBreak() bool {
	return r.Kind() == ElementBreak
}

// MarshalXML writes the run under its own element name. A run always
// carries its t element, even when empty; a break never does.
func (r *TextRun) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	kind := r.Kind()
	start.Name = xml.Name{Local: kind}
	if r.ID != "" {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: "id"}, Value: r.ID})
	}
	if r.Type != "" {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: "type"}, Value: r.Type})
	}
	start.Attr = append(start.Attr, r.Attrs...)

	out := runXML{RPr: r.RPr, PPr: r.PPr, Extra: r.Extra}
	if kind == ElementRun || r.T != "" {
		t := r.T
		out.T = &t
	}
	return e.EncodeElement(out, start)
}

// AddNewBodyPr attaches new body properties and returns them.
func (tb *TextBody) AddNewBodyPr() *TextBodyProperties {
	tb.BodyPr = &TextBodyProperties{}
	return tb.BodyPr
}

// AddNewLstStyle attaches an empty list style and returns it.
func (tb *TextBody) AddNewLstStyle() *TextListStyle {
	tb.LstStyle = &TextListStyle{}
	return tb.LstStyle
}

// AddNewP appends a new paragraph and returns it.
func (tb *TextBody) AddNewP() *TextParagraph {
	p := &TextParagraph{}
	tb.P = append(tb.P, p)
	return p
}

// SetRtlCol sets the right-to-left column flag.
func (bp *TextBodyProperties) SetRtlCol(v bool) {
	bp.RtlCol = &v
}

// AddNewPPr attaches new paragraph properties and returns them.
func (p *TextParagraph) AddNewPPr() *TextParagraphProperties {
	p.PPr = &TextParagraphProperties{}
	return p.PPr
}

// AddNewEndParaRPr attaches new end-of-paragraph run properties and returns them.
func (p *TextParagraph) AddNewEndParaRPr() *TextCharacterProperties {
	p.EndParaRPr = &TextCharacterProperties{}
	return p.EndParaRPr
}

// AddNewR appends a new run and returns it.
func (p *TextParagraph) AddNewR() *TextRun {
	r := &TextRun{XMLName: xml.Name{Local: ElementRun}}
	p.R = append(p.R, r)
	return r
}

// AddNewBr appends a line break and returns it.
func (p *TextParagraph) AddNewBr() *TextRun {
	r := &TextRun{XMLName: xml.Name{Local: ElementBreak}}
	p.R = append(p.R, r)
	return r
}

// FirstRun returns the first regular run of the paragraph, skipping fields
// and breaks, or nil.
func (p *TextParagraph) FirstRun() *TextRun {
	for _, r := range p.R {
		if r.Kind() == ElementRun {
			return r
		}
	}
	return nil
}

// Text returns the paragraph text. Field text is included as last rendered
// and each line break becomes a newline.
func (p *TextParagraph) Text() string {
	var sb strings.Builder
	for _, r := range p.R {
		if r.IsBreak() {
			sb.WriteByte('\n')
			continue
		}
		sb.WriteString(r.T)
	}
	return sb.String()
}

// Clone returns a copy of pp that shares no slices with it.
func (pp *TextParagraphProperties) Clone() *TextParagraphProperties {
	if pp == nil {
		return nil
	}
	cp := *pp
	cp.Attrs = append(AttrList(nil), pp.Attrs...)
	cp.Extra = cloneRaw(pp.Extra)
	return &cp
}

// Clone returns a copy of cp that shares no pointers or slices with it.
func (cp *TextCharacterProperties) Clone() *TextCharacterProperties {
	if cp == nil {
		return nil
	}
	out := *cp
	if cp.B != nil {
		b := *cp.B
		out.B = &b
	}
	if cp.I != nil {
		i := *cp.I
		out.I = &i
	}
	out.Attrs = append(AttrList(nil), cp.Attrs...)
	out.Extra = cloneRaw(cp.Extra)
	return &out
}

// SetLanguage stores tag as the lang attribute.
func (cp *TextCharacterProperties) SetLanguage(tag language.Tag) {
	cp.Lang = tag.String()
}

// Language parses the lang attribute. An absent attribute yields language.Und.
func (cp *TextCharacterProperties) Language() (language.Tag, error) {
	if cp.Lang == "" {
		return language.Und, nil
	}
	tag, err := language.Parse(cp.Lang)
	if err != nil {
		return language.Und, fmt.Errorf("parse lang %q: %w", cp.Lang, err)
	}
	return tag, nil
}
