package dml

import (
	"encoding/xml"
	"fmt"
)

// Decode parses a single sp element.
func Decode(data []byte) (*Shape, error) {
	s := NewShape()
	if err := xml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("decode shape: %w", err)
	}
	return s, nil
}

// Marshal renders the shape as indented XML. Elements are written with
// local names only; callers embedding the result in a package part are
// responsible for namespace prefixes.
func Marshal(s *Shape) ([]byte, error) {
	out, err := xml.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal shape: %w", err)
	}
	return out, nil
}
