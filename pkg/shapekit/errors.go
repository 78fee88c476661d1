package shapekit

import (
	"errors"
	"fmt"

	"github.com/ukaji3/shapekit-go/pkg/shapekit/dml"
	"github.com/ukaji3/shapekit-go/pkg/shapekit/shape"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input file is neither an xlsx nor a pptx package.
var ErrInvalidFormat = errors.New("invalid package format")

// ErrInvalidArgument is returned by prototype builders and setters given an
// out-of-range value.
var ErrInvalidArgument = shape.ErrInvalidArgument

// ErrMalformedShape reports an sp element missing its required children.
var ErrMalformedShape = dml.ErrMalformedShape

// ExtractionError represents an error during extraction.
type ExtractionError struct {
	SheetName string
	Component string // "drawing", "shape"
	Err       error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction error in sheet %q (%s): %v", e.SheetName, e.Component, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError creates a new ExtractionError.
func NewExtractionError(sheetName, component string, err error) *ExtractionError {
	return &ExtractionError{
		SheetName: sheetName,
		Component: component,
		Err:       err,
	}
}
