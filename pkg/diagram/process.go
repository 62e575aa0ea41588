package diagram

import (
	"strings"

	"github.com/docgraph/docgraph/pkg/document"
	"github.com/docgraph/docgraph/pkg/errors"
)

// InputKind selects the document front end.
type InputKind string

const (
	// InputJSON parses the input as a JSON document.
	InputJSON InputKind = "json"
	// InputXML parses the input as an XML document.
	InputXML InputKind = "xml"
)

// ParseInputKind validates a user-supplied kind string.
func ParseInputKind(s string) (InputKind, error) {
	switch InputKind(strings.ToLower(s)) {
	case InputJSON:
		return InputJSON, nil
	case InputXML:
		return InputXML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidKind, "unknown input kind: %q (must be json or xml)", s)
}

// BuildInput parses a raw document of the given kind and builds its
// diagram graph. This is the single entry point used by the CLI,
// pipeline, and HTTP API.
func BuildInput(kind InputKind, input string, opts Options) (*DiagramData, error) {
	switch kind {
	case InputJSON:
		return BuildJSON(input, opts)
	case InputXML:
		return BuildXML(input, opts)
	}
	return nil, errors.New(errors.ErrCodeInvalidKind, "unknown input kind: %q", string(kind))
}

// BuildJSON parses a JSON document and builds its diagram graph.
// Malformed JSON surfaces as a PARSE_FAILED error.
func BuildJSON(input string, opts Options) (*DiagramData, error) {
	if strings.TrimSpace(input) == "" {
		return emptyDiagram(), nil
	}
	doc, err := document.ParseJSON(input)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeParseFailed, err, "invalid JSON document")
	}
	return Build(doc, opts)
}

// BuildXML parses an XML document and builds its diagram graph.
// Malformed XML degrades to an empty graph rather than propagating the
// parser error; only the builder itself (depth exhaustion) can fail.
func BuildXML(input string, opts Options) (*DiagramData, error) {
	doc, err := document.ParseXML(input)
	if err != nil {
		return emptyDiagram(), nil
	}
	return Build(doc, opts)
}

func emptyDiagram() *DiagramData {
	return &DiagramData{Nodes: []Node{}, Connectors: []Connector{}}
}
