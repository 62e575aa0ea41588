package graphio

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/docgraph/docgraph/pkg/diagram"
)

func sampleGraph() *diagram.DiagramData {
	return &diagram.DiagramData{
		Nodes: []diagram.Node{
			{
				ID:     "root",
				Width:  120,
				Height: 54,
				Annotations: []diagram.Annotation{
					{ID: "a1", Content: "name: alice"},
				},
				IsLeaf:        true,
				MergedContent: "name: alice",
				Path:          "root",
				Title:         "root",
				ActualData:    "name: alice",
				Meta:          map[string]any{"isLeaf": true, "mergedContent": "name: alice"},
			},
			{
				ID:     "root.tags",
				Width:  90,
				Height: 30,
				Annotations: []diagram.Annotation{
					{ID: "a2", Content: "tags"},
					{ID: "a3", Content: "{2}"},
				},
				MergedContent: "tags {2}",
				Path:          "root.tags",
				ActualData:    `["a","b"]`,
				Meta:          map[string]any{"isLeaf": false, "mergedContent": "tags {2}"},
			},
		},
		Connectors: []diagram.Connector{
			{ID: "root-root.tags", SourceID: "root", TargetID: "root.tags"},
		},
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	g := sampleGraph()

	var buf bytes.Buffer
	if err := Write(g, &buf); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}

	if len(got.Nodes) != len(g.Nodes) {
		t.Fatalf("Nodes = %d, want %d", len(got.Nodes), len(g.Nodes))
	}
	if len(got.Connectors) != len(g.Connectors) {
		t.Fatalf("Connectors = %d, want %d", len(got.Connectors), len(g.Connectors))
	}
	if got.Nodes[0].ID != "root" || got.Nodes[0].MergedContent != "name: alice" {
		t.Errorf("node 0 mismatch: %+v", got.Nodes[0])
	}
	if got.Nodes[1].Annotations[1].Content != "{2}" {
		t.Errorf("badge annotation lost: %+v", got.Nodes[1].Annotations)
	}
	if got.Connectors[0].SourceID != "root" || got.Connectors[0].TargetID != "root.tags" {
		t.Errorf("connector mismatch: %+v", got.Connectors[0])
	}
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	g := sampleGraph()

	data, err := Marshal(g)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if bytes.Contains(data, []byte("\n")) {
		t.Error("Marshal output should be compact")
	}

	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if len(got.Nodes) != 2 || len(got.Connectors) != 1 {
		t.Errorf("round trip lost data: %d nodes, %d connectors", len(got.Nodes), len(got.Connectors))
	}
}

func TestFileRoundTrip(t *testing.T) {
	g := sampleGraph()
	path := filepath.Join(t.TempDir(), "graph.json")

	if err := WriteFile(g, path); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	if len(got.Nodes) != 2 {
		t.Errorf("Nodes = %d, want 2", len(got.Nodes))
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "absent.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "absent.json") {
		t.Errorf("error should name the path: %v", err)
	}
}

func TestReadValidation(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{
			name:    "malformed json",
			input:   `{"nodes": [`,
			wantErr: "decode",
		},
		{
			name:    "empty node id",
			input:   `{"nodes": [{"id": ""}], "connectors": []}`,
			wantErr: "empty id",
		},
		{
			name:    "duplicate node id",
			input:   `{"nodes": [{"id": "a"}, {"id": "a"}], "connectors": []}`,
			wantErr: "duplicate id",
		},
		{
			name:    "unknown source",
			input:   `{"nodes": [{"id": "a"}], "connectors": [{"id": "x-a", "sourceId": "x", "targetId": "a"}]}`,
			wantErr: "unknown source",
		},
		{
			name:    "unknown target",
			input:   `{"nodes": [{"id": "a"}], "connectors": [{"id": "a-x", "sourceId": "a", "targetId": "x"}]}`,
			wantErr: "unknown target",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestReadEmptyGraph(t *testing.T) {
	got, err := Read(strings.NewReader(`{"nodes": null, "connectors": null}`))
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if got.Nodes == nil || got.Connectors == nil {
		t.Error("Read should normalize nil slices to empty")
	}
	if !got.IsEmpty() {
		t.Error("graph should be empty")
	}
}
