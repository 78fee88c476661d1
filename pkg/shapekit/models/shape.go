// Package models defines the output structures of shape extraction.
package models

// Shape represents a classified shape with its identity, position and text.
type Shape struct {
	// ID is the shape id from the non-visual properties (1-based, unique per sheet).
	ID uint32 `json:"id" yaml:"id"`
	// Name is the shape name from the non-visual properties.
	Name string `json:"name" yaml:"name"`
	// Kind is the wrapper kind: AutoShape, FreeformShape or TextBox.
	Kind string `json:"kind" yaml:"kind"`
	// Type is the human-readable geometry label (e.g. AutoShape-Rectangle).
	Type string `json:"type,omitempty" yaml:"type,omitempty"`
	// Text is the visible text content of the shape.
	Text string `json:"text" yaml:"text"`
	// L is the left offset in pixels.
	L int `json:"l" yaml:"l"`
	// T is the top offset in pixels.
	T int `json:"t" yaml:"t"`
	// W is the shape width in pixels (nil if unknown or not verbose mode).
	W *int `json:"w,omitempty" yaml:"w,omitempty"`
	// H is the shape height in pixels (nil if unknown or not verbose mode).
	H *int `json:"h,omitempty" yaml:"h,omitempty"`
	// Rotation is the rotation angle in degrees.
	Rotation *float64 `json:"rotation,omitempty" yaml:"rotation,omitempty"`
	// Lang is the language tag of the first paragraph (verbose mode only).
	Lang string `json:"lang,omitempty" yaml:"lang,omitempty"`
}
