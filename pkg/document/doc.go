// Package document provides an order-preserving tree representation for
// JSON and XML documents.
//
// The standard library's map-based JSON decoding loses property order,
// which the diagram builder depends on: nodes and connectors must come
// out in source-document order for reproducible output. This package
// decodes the token stream directly into a [Value] tree that keeps
// object fields and array items in the order they were written.
//
// # Value Trees
//
// A [Value] is a tagged union over the document value kinds:
//
//	v, err := document.ParseJSON(`{"name": "ada", "tags": [1, 2]}`)
//	v.Kind            // KindObject
//	v.Fields[0].Key   // "name"
//	v.Fields[1].Value // KindArray with two KindNumber items
//
// XML documents map onto the same tree: elements become objects,
// attributes become "@"-prefixed scalar fields, and text-only elements
// become scalars. The whole document is wrapped in a synthetic root
// object so both front ends feed the builder the same shape.
//
// # Concurrency
//
// Value trees are immutable after parsing and safe for concurrent reads.
package document
