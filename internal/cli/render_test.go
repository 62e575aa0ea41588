package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBasePath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		want   string
	}{
		{"no output strips input extension", "", "config.json", "config"},
		{"no output keeps directories", "", "out/data.xml", "out/data"},
		{"output with format extension", "diagram.svg", "config.json", "diagram"},
		{"output with pdf extension", "diagram.pdf", "config.json", "diagram"},
		{"output without extension", "out/diagram", "config.json", "out/diagram"},
		{"output with unrelated extension", "report.final", "config.json", "report.final"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := basePath(tt.output, tt.input); got != tt.want {
				t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
			}
		})
	}
}

func TestWriteArtifactsSingleFormat(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "diagram.dot")
	artifacts := map[string][]byte{"dot": []byte("digraph {}")}

	if err := writeArtifacts(artifacts, []string{"dot"}, "config.json", out); err != nil {
		t.Fatalf("writeArtifacts() error: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != "digraph {}" {
		t.Errorf("output = %q", data)
	}
}

func TestWriteArtifactsSingleFormatDefaultName(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "config.json")
	artifacts := map[string][]byte{"dot": []byte("digraph {}")}

	if err := writeArtifacts(artifacts, []string{"dot"}, input, ""); err != nil {
		t.Fatalf("writeArtifacts() error: %v", err)
	}

	want := filepath.Join(dir, "config.dot")
	if _, err := os.Stat(want); err != nil {
		t.Errorf("expected output at %s: %v", want, err)
	}
}

func TestWriteArtifactsMultipleFormats(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "out")
	artifacts := map[string][]byte{
		"dot":  []byte("digraph {}"),
		"json": []byte("{}"),
	}

	if err := writeArtifacts(artifacts, []string{"dot", "json"}, "config.json", base); err != nil {
		t.Fatalf("writeArtifacts() error: %v", err)
	}

	for _, format := range []string{"dot", "json"} {
		path := base + "." + format
		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected output at %s: %v", path, err)
		}
	}
}
