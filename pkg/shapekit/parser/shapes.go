package parser

import (
	"strings"

	"github.com/ukaji3/shapekit-go/pkg/shapekit/models"
	"github.com/ukaji3/shapekit-go/pkg/shapekit/shape"
)

// PresetGeomMap maps OOXML preset geometry names to human-readable type labels.
var PresetGeomMap = map[string]string{
	"flowChartProcess":           "AutoShape-FlowchartProcess",
	"flowChartDecision":          "AutoShape-FlowchartDecision",
	"flowChartTerminator":        "AutoShape-FlowchartTerminator",
	"flowChartData":              "AutoShape-FlowchartData",
	"flowChartDocument":          "AutoShape-FlowchartDocument",
	"flowChartMultidocument":     "AutoShape-FlowchartMultidocument",
	"flowChartPredefinedProcess": "AutoShape-FlowchartPredefinedProcess",
	"flowChartInternalStorage":   "AutoShape-FlowchartInternalStorage",
	"flowChartPreparation":       "AutoShape-FlowchartPreparation",
	"flowChartManualInput":       "AutoShape-FlowchartManualInput",
	"flowChartManualOperation":   "AutoShape-FlowchartManualOperation",
	"flowChartConnector":         "AutoShape-FlowchartConnector",
	"flowChartOffpageConnector":  "AutoShape-FlowchartOffpageConnector",
	"rect":                       "AutoShape-Rectangle",
	"roundRect":                  "AutoShape-RoundedRectangle",
	"ellipse":                    "AutoShape-Oval",
	"diamond":                    "AutoShape-Diamond",
	"triangle":                   "AutoShape-IsoscelesTriangle",
	"rightArrow":                 "AutoShape-RightArrow",
	"leftArrow":                  "AutoShape-LeftArrow",
	"upArrow":                    "AutoShape-UpArrow",
	"downArrow":                  "AutoShape-DownArrow",
	"straightConnector1":         "Line",
	"line":                       "Line",
}

// typeLabel returns the display label of a wrapped shape.
func typeLabel(sh shape.Shape) string {
	switch sh.Kind() {
	case shape.KindFreeform:
		return "Freeform"
	case shape.KindTextBox:
		return "TextBox"
	}
	prst := sh.Preset()
	if prst == "" {
		return "AutoShape"
	}
	if label, ok := PresetGeomMap[prst]; ok {
		return label
	}
	return "AutoShape-" + prst
}

// isLineShape checks if a preset draws a line rather than an area.
func isLineShape(prst, label string) bool {
	lower := strings.ToLower(prst)
	if strings.Contains(lower, "line") || strings.Contains(lower, "connector") {
		return !strings.HasPrefix(lower, "flowchart")
	}
	return label == "Line"
}

// shouldIncludeShape determines if a shape should be included based on mode.
func shouldIncludeShape(text, label string, kind shape.Kind, isLine bool, mode string) bool {
	if mode == "light" {
		return false
	}
	if mode == "verbose" {
		return true
	}
	// standard mode: shapes that carry text or are more than a plain outline
	if text != "" {
		return true
	}
	if kind != shape.KindAutoShape || isLine {
		return true
	}
	return strings.Contains(label, "Arrow")
}

// SummarizeShape converts a wrapped shape into its output model. It returns
// nil when mode filters the shape out.
func SummarizeShape(sh shape.Shape, mode string) *models.Shape {
	text := strings.TrimSpace(sh.Text())
	label := typeLabel(sh)
	if !shouldIncludeShape(text, label, sh.Kind(), isLineShape(sh.Preset(), label), mode) {
		return nil
	}

	out := &models.Shape{
		ID:   sh.ID(),
		Name: sh.Name(),
		Kind: sh.Kind().String(),
		Type: label,
		Text: text,
	}

	if r, ok := sh.Bounds(); ok {
		out.L = EMUToPixels(r.X)
		out.T = EMUToPixels(r.Y)
		if mode == "verbose" {
			w := EMUToPixels(r.Width)
			h := EMUToPixels(r.Height)
			out.W = &w
			out.H = &h
		}
	}

	if rot := sh.Rotation(); rot != 0 {
		out.Rotation = &rot
	}

	if mode == "verbose" {
		out.Lang = textLanguage(sh)
	}

	return out
}

// textLanguage returns the canonical language tag of the shape text.
func textLanguage(sh shape.Shape) string {
	tag := sh.Language()
	if tag.IsRoot() {
		return ""
	}
	return tag.String()
}
