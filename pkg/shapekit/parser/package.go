// Package parser reads shape elements out of xlsx and pptx packages.
package parser

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/ukaji3/shapekit-go/pkg/shapekit/dml"
)

// Format is the package type of an input file.
type Format string

const (
	FormatUnknown Format = ""
	FormatXLSX    Format = "xlsx"
	FormatPPTX    Format = "pptx"
)

// relationship is a single entry of a .rels part.
type relationship struct {
	ID     string
	Type   string
	Target string
}

// DetectFormat inspects the package parts of path.
func DetectFormat(path string) (Format, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return FormatUnknown, err
	}
	defer r.Close()
	return detectFormat(&r.Reader), nil
}

func detectFormat(r *zip.Reader) Format {
	for _, f := range r.File {
		switch f.Name {
		case "xl/workbook.xml":
			return FormatXLSX
		case "ppt/presentation.xml":
			return FormatPPTX
		}
	}
	return FormatUnknown
}

func readZipFile(r *zip.Reader, name string) ([]byte, error) {
	for _, f := range r.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("%s: %w", name, fs.ErrNotExist)
}

// relsPathFor returns the relationships part that belongs to partPath.
func relsPathFor(partPath string) string {
	dir, file := path.Split(partPath)
	return dir + "_rels/" + file + ".rels"
}

// resolveRelativePath resolves a relationship target against the directory
// of its source part. Targets starting with "/" are package-absolute.
func resolveRelativePath(target, baseDir string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(path.Clean(target), "/")
	}
	return path.Clean(path.Join(baseDir, target))
}

func parseRelationships(data []byte) []relationship {
	var rels []relationship
	decoder := xml.NewDecoder(bytes.NewReader(data))

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "Relationship" {
			var rel relationship
			for _, attr := range se.Attr {
				switch attr.Name.Local {
				case "Id":
					rel.ID = attr.Value
				case "Type":
					rel.Type = attr.Value
				case "Target":
					rel.Target = attr.Value
				}
			}
			rels = append(rels, rel)
		}
	}

	return rels
}

// relationshipIDs collects the r:id attributes of every element named local,
// in document order.
func relationshipIDs(data []byte, local string) []string {
	var ids []string
	decoder := xml.NewDecoder(bytes.NewReader(data))

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		se, ok := token.(xml.StartElement)
		if !ok || se.Name.Local != local {
			continue
		}
		for _, attr := range se.Attr {
			if attr.Name.Space == dml.NSOfficeRelationships && attr.Name.Local == "id" {
				ids = append(ids, attr.Value)
			}
		}
	}

	return ids
}

func parseWorkbookSheets(data []byte) map[string]string {
	result := make(map[string]string) // rId -> sheet name
	decoder := xml.NewDecoder(bytes.NewReader(data))

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "sheet" {
			var name, rID string
			for _, attr := range se.Attr {
				switch {
				case attr.Name.Local == "name":
					name = attr.Value
				case attr.Name.Space == dml.NSOfficeRelationships && attr.Name.Local == "id":
					rID = attr.Value
				}
			}
			if name != "" && rID != "" {
				result[rID] = name
			}
		}
	}

	return result
}
