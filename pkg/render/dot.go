package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/docgraph/docgraph/pkg/diagram"
)

// Options configures diagram rendering.
type Options struct {
	// Detailed includes the source path and size estimate in node labels.
	// When false, only the node content is shown.
	Detailed bool

	// RankDir sets the Graphviz layout direction (TB, LR, BT, RL).
	// Defaults to TB.
	RankDir string
}

// ToDOT converts a diagram graph to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG],
// [RenderPDF], or [RenderPNG].
//
// Leaf nodes (merged primitives and standalone values) are drawn as
// plain boxes; container nodes get a grey fill. The synthetic document
// root, when present, is drawn as a small point so multiple top-level
// roots hang off a single anchor.
func ToDOT(g *diagram.DiagramData, opts Options) string {
	rankdir := opts.RankDir
	if rankdir == "" {
		rankdir = "TB"
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankdir)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes {
		label := fmtLabel(n, opts.Detailed)
		attrs := fmtAttrs(n, label)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, c := range g.Connectors {
		fmt.Fprintf(&buf, "  %q -> %q;\n", c.SourceID, c.TargetID)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n diagram.Node, detailed bool) string {
	label := n.MergedContent
	if label == "" {
		if n.Title != "" {
			label = n.Title
		} else {
			label = n.ID
		}
	}

	if detailed && n.Path != "" {
		label += fmt.Sprintf("\npath: %s\nsize: %.0fx%.0f", n.Path, n.Width, n.Height)
	}
	return label
}

func fmtAttrs(n diagram.Node, label string) []string {
	if n.ID == diagram.SuperRootNodeID {
		return []string{"label=\"\"", "shape=point", "width=0.2"}
	}

	attrs := []string{fmt.Sprintf("label=%q", label)}
	if !n.IsLeaf {
		attrs = append(attrs, "fillcolor=lightgrey")
	}
	return attrs
}
