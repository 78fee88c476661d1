package shape

import (
	"strings"

	"github.com/ukaji3/shapekit-go/pkg/shapekit/dml"
	"golang.org/x/text/language"
)

// DefaultLanguage is the end-paragraph language of a new text body.
var DefaultLanguage = language.AmericanEnglish

// DefaultFontSize is the end-paragraph font size of a new text body, in
// hundredths of a point.
const DefaultFontSize = 1100

// TextBodyOf returns the text body of el. When none exists it returns nil
// without touching el, unless create is true, in which case a body with the
// default content is attached first.
func TextBodyOf(el *dml.Shape, create bool) *dml.TextBody {
	if el.TxBody == nil && create {
		initTextBody(el.AddNewTxBody())
	}
	return el.TxBody
}

// initTextBody fills body with the smallest content a reader accepts: top
// anchored, left aligned, one paragraph holding one empty run.
func initTextBody(body *dml.TextBody) {
	bodyPr := body.AddNewBodyPr()
	bodyPr.Anchor = dml.AnchorTop
	bodyPr.SetRtlCol(false)

	p := body.AddNewP()
	p.AddNewPPr().Algn = dml.AlignLeft
	endPr := p.AddNewEndParaRPr()
	endPr.SetLanguage(DefaultLanguage)
	endPr.Sz = DefaultFontSize
	p.AddNewR().T = ""

	body.AddNewLstStyle()
}

func setText(body *dml.TextBody, text string) {
	if len(body.P) == 0 {
		body.AddNewP()
	}
	tmpl := body.P[0]

	lines := strings.Split(text, "\n")
	paragraphs := make([]*dml.TextParagraph, 0, len(lines))
	for i, line := range lines {
		p := tmpl
		if i > 0 {
			p = copyParagraphFormat(tmpl)
		}
		r := p.FirstRun()
		if r == nil {
			r = p.AddNewR()
		}
		r.T = line
		p.R = []*dml.TextRun{r}
		paragraphs = append(paragraphs, p)
	}
	body.P = paragraphs
}

func copyParagraphFormat(src *dml.TextParagraph) *dml.TextParagraph {
	p := &dml.TextParagraph{
		PPr:        src.PPr.Clone(),
		EndParaRPr: src.EndParaRPr.Clone(),
	}
	r := p.AddNewR()
	if first := src.FirstRun(); first != nil {
		r.RPr = first.RPr.Clone()
	}
	return p
}
