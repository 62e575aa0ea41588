package graphio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/docgraph/docgraph/pkg/diagram"
)

// Write encodes a diagram graph as indented JSON and writes it to w.
// The output can be re-imported with [Read] for round-trip processing.
func Write(g *diagram.DiagramData, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteFile writes a diagram graph to a JSON file at path.
// This is a convenience wrapper around [Write] for file-based output.
func WriteFile(g *diagram.DiagramData, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(g, f)
}

// Read decodes a JSON diagram graph from r.
//
// The input must be a JSON object with "nodes" and "connectors" arrays.
// Read returns an error if:
//   - The JSON is malformed or invalid
//   - A node has an empty or duplicate ID
//   - A connector references an unknown node ID
//
// The returned graph is independent of r and can be modified safely
// after Read returns. Read does not close r.
func Read(r io.Reader) (*diagram.DiagramData, error) {
	var g diagram.DiagramData
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if err := validate(&g); err != nil {
		return nil, err
	}
	if g.Nodes == nil {
		g.Nodes = []diagram.Node{}
	}
	if g.Connectors == nil {
		g.Connectors = []diagram.Connector{}
	}
	return &g, nil
}

// ReadFile reads a JSON file at path and returns the decoded diagram graph.
// The error wraps the underlying cause with the file path for context.
func ReadFile(path string) (*diagram.DiagramData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// Marshal returns the compact JSON encoding of a diagram graph.
// Used for cache payloads and API responses; use [Write] for
// human-readable file output.
func Marshal(g *diagram.DiagramData) ([]byte, error) {
	data, err := json.Marshal(g)
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}
	return data, nil
}

// Unmarshal decodes a JSON diagram graph from data with the same
// validation as [Read].
func Unmarshal(data []byte) (*diagram.DiagramData, error) {
	var g diagram.DiagramData
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	if err := validate(&g); err != nil {
		return nil, err
	}
	if g.Nodes == nil {
		g.Nodes = []diagram.Node{}
	}
	if g.Connectors == nil {
		g.Connectors = []diagram.Connector{}
	}
	return &g, nil
}

// validate checks structural integrity: node IDs are unique and
// non-empty, and every connector endpoint references a known node.
func validate(g *diagram.DiagramData) error {
	ids := make(map[string]struct{}, len(g.Nodes))
	for _, n := range g.Nodes {
		if n.ID == "" {
			return fmt.Errorf("node with empty id")
		}
		if _, dup := ids[n.ID]; dup {
			return fmt.Errorf("node %s: duplicate id", n.ID)
		}
		ids[n.ID] = struct{}{}
	}
	for _, c := range g.Connectors {
		if _, ok := ids[c.SourceID]; !ok {
			return fmt.Errorf("connector %s: unknown source %s", c.ID, c.SourceID)
		}
		if _, ok := ids[c.TargetID]; !ok {
			return fmt.Errorf("connector %s: unknown target %s", c.ID, c.TargetID)
		}
	}
	return nil
}
