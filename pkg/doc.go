// Package pkg provides the core libraries for docgraph document visualization.
//
// # Overview
//
// Docgraph transforms structured documents (JSON and XML) into diagram
// graphs of nodes and connectors, ready for layout and rendering. The pkg
// directory is organized into four main areas:
//
//  1. [document] - Document parsing (order-preserving JSON and XML readers)
//  2. [diagram] - Graph construction (merge, collapse, badges, super-root)
//  3. [render] - Output generation (DOT, SVG, PNG, PDF via Graphviz)
//  4. [pipeline] - Orchestration (build → render) with caching
//
// # Architecture
//
// The typical data flow through docgraph:
//
//	JSON/XML document
//	         ↓
//	    [document] package (order-preserving parse)
//	         ↓
//	    [diagram] package (nodes, connectors, annotations)
//	         ↓
//	    [render] package (DOT → SVG/PNG/PDF)
//	         ↓
//	    SVG/PNG/PDF/DOT/JSON output
//
// # Quick Start
//
// Build a diagram graph and render it to SVG:
//
//	import (
//	    "context"
//	    "github.com/docgraph/docgraph/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	defer runner.Close()
//
//	result, _ := runner.Execute(context.Background(), pipeline.Options{
//	    Kind:    "json",
//	    Input:   `{"name": "alice", "tags": ["a", "b"]}`,
//	    Formats: []string{pipeline.FormatSVG},
//	})
//	svg := result.Artifacts[pipeline.FormatSVG]
//
// # Main Packages
//
// [document] - Token-stream parsers for JSON and XML that preserve member
// order, detect duplicate keys, and enforce depth limits.
//
// [diagram] - Builds the diagram graph: merges primitive runs into leaf
// nodes, collapses single-child chains, badges containers with child
// counts, and roots multi-root documents under a synthetic super-root.
//
// [render] - DOT generation plus Graphviz-backed SVG rendering and
// rsvg-convert based PNG/PDF conversion.
//
// [graphio] - Graph serialization: validated JSON reading and writing of
// diagram graphs.
//
// [pipeline] - Complete build → render pipeline used by the CLI and the
// HTTP API, with content-addressed caching of graphs and artifacts.
//
// [cache] - Cache backends (file, Redis, null) with TTL support and
// deterministic cache keys derived from document and graph hashes.
//
// [store] - Graph persistence for the HTTP API: in-memory and MongoDB
// backed stores of built graphs.
//
// [config] - TOML configuration loading with XDG-style defaults.
//
// [errors] - Coded errors shared across the CLI and API surfaces.
//
// [observability] - Process-wide hooks for pipeline, cache, and HTTP
// instrumentation.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/diagram/...  # Specific package
//
// [document]: https://pkg.go.dev/github.com/docgraph/docgraph/pkg/document
// [diagram]: https://pkg.go.dev/github.com/docgraph/docgraph/pkg/diagram
// [render]: https://pkg.go.dev/github.com/docgraph/docgraph/pkg/render
// [graphio]: https://pkg.go.dev/github.com/docgraph/docgraph/pkg/graphio
// [pipeline]: https://pkg.go.dev/github.com/docgraph/docgraph/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/docgraph/docgraph/pkg/cache
// [store]: https://pkg.go.dev/github.com/docgraph/docgraph/pkg/store
// [config]: https://pkg.go.dev/github.com/docgraph/docgraph/pkg/config
// [errors]: https://pkg.go.dev/github.com/docgraph/docgraph/pkg/errors
// [observability]: https://pkg.go.dev/github.com/docgraph/docgraph/pkg/observability
package pkg
