// Package render turns diagram graphs into visual outputs.
//
// # Overview
//
// The rendering pipeline is DOT-first: [ToDOT] converts a diagram graph
// into Graphviz DOT text, and [RenderSVG] lays it out and rasterizes it
// through Graphviz. PDF and PNG outputs are produced by converting the
// SVG with the external rsvg-convert tool (from librsvg):
//
//	dot := render.ToDOT(g, render.Options{})
//	svg, err := render.RenderSVG(dot)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0) // 2x scale
//
// # Node Styling
//
// Leaf nodes (merged primitive groups and standalone values) are drawn
// as plain white boxes with their merged content as the label. Container
// nodes get a grey fill and show their label with the child-count badge.
// The synthetic document root is a small anchor point.
package render
