package document

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// textField is the synthetic key holding character data of an element
// that also has attributes or child elements.
const textField = "#text"

// ParseXML decodes an XML document into a Value tree using the same
// shape as ParseJSON: the document is wrapped in a synthetic root object
// with one field per top-level element, elements become objects,
// attributes become "@name" scalar fields, and text-only elements
// become string scalars.
//
// Multiple sibling top-level elements are accepted; each becomes its own
// field of the synthetic root, which the diagram builder later joins
// under a synthetic super-root.
func ParseXML(input string) (*Value, error) {
	dec := xml.NewDecoder(strings.NewReader(input))

	root := &Value{Kind: KindObject}
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue // prolog, comments, whitespace between elements
		}
		elem, err := parseXMLElement(dec, start)
		if err != nil {
			return nil, err
		}
		root.Fields = append(root.Fields, Field{Key: start.Name.Local, Value: elem})
	}

	if len(root.Fields) == 0 {
		return nil, fmt.Errorf("no elements in document")
	}
	return root, nil
}

// parseXMLElement consumes tokens up to start's matching EndElement and
// returns the element as a Value. An element with neither attributes nor
// child elements collapses to a string scalar holding its trimmed text.
func parseXMLElement(dec *xml.Decoder, start xml.StartElement) (*Value, error) {
	elem := &Value{Kind: KindObject}
	for _, attr := range start.Attr {
		elem.Fields = append(elem.Fields, Field{
			Key:   "@" + attr.Name.Local,
			Value: &Value{Kind: KindString, Raw: attr.Value},
		})
	}

	var text strings.Builder
	hasChildren := len(elem.Fields) > 0

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			child, err := parseXMLElement(dec, t)
			if err != nil {
				return nil, err
			}
			elem.Fields = append(elem.Fields, Field{Key: t.Name.Local, Value: child})
			hasChildren = true
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			content := strings.TrimSpace(text.String())
			if !hasChildren {
				if content == "" {
					// <empty/> stays an empty object so the
					// classifier drops it like {} or [].
					return elem, nil
				}
				// Text-only element collapses to a scalar.
				return &Value{Kind: KindString, Raw: content}, nil
			}
			if content != "" {
				elem.Fields = append(elem.Fields, Field{
					Key:   textField,
					Value: &Value{Kind: KindString, Raw: content},
				})
			}
			return elem, nil
		}
	}
}
