// Package diagram transforms parsed documents into layout-ready graphs.
//
// This package is the core of docgraph: it classifies document
// structure into merged primitive leaves and object/array containers,
// and emits an ordered node list plus an ordered connector list for a
// rendering collaborator to lay out.
//
// # Pipeline Position
//
// The package sits between the document front ends and the render
// collaborators:
//
//   - pkg/document: order-preserving JSON/XML value trees (input)
//   - [DiagramData], [Node], [Connector]: the output contract
//   - pkg/render, pkg/graphio: downstream consumers
//
// # Structural Policies
//
// The transformation encodes a handful of non-obvious rules that must
// hold exactly for output to be reproducible:
//
//   - an object's scalar properties merge into one leaf node; each
//     non-empty object/array property becomes its own container node
//   - container badges count groups, not scalars: the merged primitive
//     group is one, each complex property is one, arrays use their
//     literal length (see childCount)
//   - an array item that is an object with no primitives and exactly
//     one complex child collapses: the child wires directly to the
//     array's parent with no intermediate wrapper node
//   - empty objects and arrays vanish: no node, no connector, no badge
//   - null array items keep their index slot but emit nothing
//   - a document with several disconnected roots gains one synthetic
//     super-root so the result is always a single tree
//
// # Building
//
//	data, err := diagram.BuildJSON(`{"a": 1, "b": {"c": 2}}`, diagram.Options{})
//	if err != nil {
//	    return err
//	}
//	for _, n := range data.Nodes {
//	    fmt.Println(n.Path, n.MergedContent)
//	}
//
// # Determinism and Concurrency
//
// Node IDs derive from logical paths and annotation IDs from a counter
// scoped to one Build call, so identical input yields identical output
// and concurrent builds share no state.
package diagram
