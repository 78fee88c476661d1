package dml

import "encoding/xml"

// AttrList collects attributes a struct does not model so they survive a
// decode and marshal round trip. Namespace declarations are dropped: the
// encoder writes its own.
type AttrList []xml.Attr

// UnmarshalXMLAttr appends attr unless it declares a namespace.
func (l *AttrList) UnmarshalXMLAttr(attr xml.Attr) error {
	if attr.Name.Space == "xmlns" || (attr.Name.Space == "" && attr.Name.Local == "xmlns") {
		return nil
	}
	*l = append(*l, attr)
	return nil
}

// RawElement is a child element that is not modeled. Its attributes and
// content are written back verbatim; nested elements keep their original
// prefixes.
type RawElement struct {
	XMLName xml.Name
	Attrs   AttrList `xml:",any,attr"`
	Inner   []byte   `xml:",innerxml"`
}

// MarshalXML writes the element under its local name.
func (r RawElement) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if r.XMLName.Local != "" {
		start.Name = xml.Name{Local: r.XMLName.Local}
	}
	start.Attr = append(start.Attr, r.Attrs...)
	return e.EncodeElement(struct {
		Inner []byte `xml:",innerxml"`
	}{r.Inner}, start)
}

// ExtraElement returns the first unmodeled child named local, or nil.
func ExtraElement(extra []RawElement, local string) *RawElement {
	for i := range extra {
		if extra[i].XMLName.Local == local {
			return &extra[i]
		}
	}
	return nil
}

// Get returns the value of the unmodeled attribute named local.
func (l AttrList) Get(local string) (string, bool) {
	for _, a := range l {
		if a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

func cloneRaw(src []RawElement) []RawElement {
	if src == nil {
		return nil
	}
	out := make([]RawElement, len(src))
	for i, r := range src {
		out[i] = RawElement{
			XMLName: r.XMLName,
			Attrs:   append(AttrList(nil), r.Attrs...),
			Inner:   append([]byte(nil), r.Inner...),
		}
	}
	return out
}
