package pipeline

import (
	"bytes"
	"fmt"

	"github.com/docgraph/docgraph/pkg/diagram"
	"github.com/docgraph/docgraph/pkg/graphio"
	"github.com/docgraph/docgraph/pkg/render"
)

// renderArtifacts generates all requested output formats from a graph.
// The DOT string is generated once and shared by the Graphviz-backed
// formats.
func renderArtifacts(g *diagram.DiagramData, opts Options) (map[string][]byte, error) {
	dot := render.ToDOT(g, render.Options{
		Detailed: opts.Detailed,
		RankDir:  opts.RankDir,
	})

	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatDOT:
			data = []byte(dot)
		case FormatSVG:
			data, err = render.RenderSVG(dot)
		case FormatPNG:
			data, err = render.RenderPNG(dot, opts.Scale)
		case FormatPDF:
			data, err = render.RenderPDF(dot)
		case FormatJSON:
			var buf bytes.Buffer
			err = graphio.Write(g, &buf)
			data = buf.Bytes()
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
