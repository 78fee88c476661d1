// Package output serializes extraction results.
package output

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/ukaji3/shapekit-go/pkg/shapekit/models"
)

// ToJSON serializes a document to JSON.
func ToJSON(doc *models.DocumentData, pretty bool) ([]byte, error) {
	return marshalJSON(doc, pretty)
}

// SheetToJSON serializes a single sheet to JSON.
func SheetToJSON(sheet *models.SheetData, pretty bool) ([]byte, error) {
	return marshalJSON(sheet, pretty)
}

// ToYAML serializes a document to YAML.
func ToYAML(doc *models.DocumentData) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SheetToYAML serializes a single sheet to YAML.
func SheetToYAML(sheet *models.SheetData) ([]byte, error) {
	return yaml.Marshal(sheet)
}

func marshalJSON(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
