package shapekit

import (
	"errors"
	"fmt"
	"testing"

	"github.com/ukaji3/shapekit-go/pkg/shapekit/dml"
	"github.com/ukaji3/shapekit-go/pkg/shapekit/shape"
)

func TestExtractionError(t *testing.T) {
	inner := fmt.Errorf("missing cNvPr: %w", dml.ErrMalformedShape)
	err := NewExtractionError("Slide 2", "shape", inner)

	want := `extraction error in sheet "Slide 2" (shape): missing cNvPr: malformed shape element`
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, expected %q", got, want)
	}
	if !errors.Is(err, ErrMalformedShape) {
		t.Error("errors.Is(err, ErrMalformedShape) = false")
	}

	var target *ExtractionError
	if !errors.As(fmt.Errorf("wrapped: %w", err), &target) || target.SheetName != "Slide 2" {
		t.Errorf("errors.As failed: %+v", target)
	}
}

func TestParseMode(t *testing.T) {
	for _, s := range []string{"light", "standard", "verbose"} {
		m, err := ParseMode(s)
		if err != nil || string(m) != s {
			t.Errorf("ParseMode(%q) = %q, %v", s, m, err)
		}
	}
	if _, err := ParseMode("full"); !errors.Is(err, shape.ErrInvalidArgument) {
		t.Errorf("ParseMode(full) error = %v, expected ErrInvalidArgument", err)
	}
}
