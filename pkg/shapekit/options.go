// Package shapekit classifies the shapes of Office documents and reports
// them as structured data.
package shapekit

import (
	"fmt"

	"go.uber.org/zap"
)

// Mode represents the extraction mode.
type Mode string

const (
	// ModeLight lists sheets only (no shapes).
	ModeLight Mode = "light"
	// ModeStandard extracts shapes with text, text boxes, freeforms, lines and arrows.
	ModeStandard Mode = "standard"
	// ModeVerbose extracts every shape including dimensions and text language.
	ModeVerbose Mode = "verbose"
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeLight, ModeStandard, ModeVerbose:
		return m, nil
	}
	return "", fmt.Errorf("invalid mode %q (must be light, standard, or verbose): %w", s, ErrInvalidArgument)
}

// Options configures extraction behavior.
type Options struct {
	// Mode specifies the extraction mode (light, standard, verbose).
	Mode Mode
	// Logger receives warnings about skipped drawings and shapes.
	// If nil, nothing is logged.
	Logger *zap.Logger
}

// DefaultOptions returns default extraction options.
func DefaultOptions() Options {
	return Options{
		Mode: ModeStandard,
	}
}

func (o Options) logger() *zap.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return zap.NewNop()
}

func (o Options) mode() Mode {
	if o.Mode == "" {
		return ModeStandard
	}
	return o.Mode
}
