// Package graphio provides JSON import and export for diagram graphs.
//
// # Overview
//
// This package serializes the node/connector structure produced by
// [diagram.Build] to and from JSON. The format is designed for:
//
//   - Handing graphs to external layout and rendering tools
//   - Caching built graphs for faster re-rendering
//   - Round-trip preservation: build, export, and re-import identically
//
// # JSON Format
//
// The format has two required top-level arrays:
//
//	{
//	  "nodes": [
//	    {"id": "root", "width": 120, "height": 54, ...},
//	    {"id": "root.user", ...}
//	  ],
//	  "connectors": [
//	    {"id": "root-root.user", "sourceId": "root", "targetId": "root.user"}
//	  ]
//	}
//
// Each node carries its annotations, size estimate, source path, and
// metadata map as produced by the builder. Connector endpoints must
// reference node IDs present in the nodes array; [Read] and [Unmarshal]
// validate this and reject duplicate or empty node IDs.
//
// # Usage
//
// Use [ReadFile] / [WriteFile] for file paths, [Read] / [Write] for
// streams, and [Marshal] / [Unmarshal] for in-memory byte slices (cache
// payloads, HTTP bodies). File output is indented; Marshal is compact.
//
// [diagram.Build]: github.com/docgraph/docgraph/pkg/diagram.Build
package graphio
