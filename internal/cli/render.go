package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/docgraph/docgraph/pkg/diagram"
	"github.com/docgraph/docgraph/pkg/graphio"
	"github.com/docgraph/docgraph/pkg/pipeline"
)

// renderCmdOpts holds the command-line flags for the render command.
type renderCmdOpts struct {
	kind      string  // input kind for documents: json, xml, or "" for auto-detect
	formats   string  // comma-separated output formats
	output    string  // output file (single format) or base path (multiple)
	detailed  bool    // include paths and sizes in node labels
	rankDir   string  // Graphviz layout direction
	scale     float64 // PNG scale factor
	fromGraph bool    // treat input as a prebuilt graph instead of a document
	refresh   bool    // bypass cached graphs
	noCache   bool    // disable caching
}

// renderCommand creates the render command for generating visualizations.
//
// The input is a JSON or XML document by default; pass --graph to render
// a graph file produced by 'build' instead. Results are cached locally
// for faster subsequent runs.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderCmdOpts{
		rankDir: pipeline.DefaultRankDir,
		scale:   pipeline.DefaultScale,
	}

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render a document or graph to DOT, SVG, PNG, or PDF",
		Long: `Render a document or graph to DOT, SVG, PNG, or PDF.

By default the input is a JSON or XML document which is built into a
diagram graph and then rendered. Pass --graph to skip the build stage
and render a graph file produced by 'build'.

Examples:
  docgraph render config.json                       # config.svg
  docgraph render data.xml -f svg,png -o out/data   # out/data.svg + out/data.png
  docgraph render saved.graph.json --graph -f dot   # render a prebuilt graph`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(opts.formats)
			if err := pipeline.ValidateFormats(formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], formats, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.kind, "kind", "k", "", "input kind: json or xml (default: detect from extension)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), dot, png, pdf, json (comma-separated)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include source paths and sizes in node labels")
	cmd.Flags().StringVar(&opts.rankDir, "rankdir", opts.rankDir, "layout direction: TB, LR, BT, RL")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.fromGraph, "graph", false, "input is a prebuilt graph file, not a document")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cached graphs")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

// runRender builds (or loads) the graph and renders the requested formats.
func (c *CLI) runRender(ctx context.Context, input string, formats []string, opts renderCmdOpts) error {
	ctx = withLogger(ctx, c.Logger)

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	pipeOpts := c.buildOptions()
	pipeOpts.Formats = formats
	pipeOpts.Detailed = opts.detailed
	pipeOpts.RankDir = opts.rankDir
	pipeOpts.Scale = opts.scale
	pipeOpts.Refresh = opts.refresh

	logger := loggerFromContext(ctx)
	logger.Debug("rendering", "input", input, "formats", strings.Join(formats, ","))

	var (
		g        *diagram.DiagramData
		cacheHit bool
	)

	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()

	if opts.fromGraph {
		g, err = graphio.ReadFile(input)
		if err != nil {
			spinner.StopWithError("Failed to load graph")
			return err
		}
	} else {
		doc, kind, rerr := readDocument(input, opts.kind)
		if rerr != nil {
			spinner.Stop()
			return rerr
		}
		pipeOpts.Kind = kind
		pipeOpts.Input = doc

		g, cacheHit, err = runner.BuildWithCacheInfo(ctx, pipeOpts)
		if err != nil {
			spinner.StopWithError("Build failed")
			return err
		}
	}

	artifacts, renderHit, err := runner.RenderWithCacheInfo(ctx, g, pipeOpts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	printSuccess("Rendered %s", input)
	printStats(len(g.Nodes), len(g.Connectors), cacheHit && renderHit)
	return writeArtifacts(artifacts, formats, input, opts.output)
}

// writeArtifacts writes each rendered format to its output file.
// With a single format, output names the file directly; with multiple
// formats, output (or the input name) is used as a base path.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) error {
	if len(formats) == 1 {
		path := output
		if path == "" {
			path = basePath("", input) + "." + formats[0]
		}
		if err := os.WriteFile(path, artifacts[formats[0]], 0o644); err != nil {
			return err
		}
		printFile(path)
		return nil
	}

	base := basePath(output, input)
	for _, format := range formats {
		path := fmt.Sprintf("%s.%s", base, format)
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return err
		}
		printFile(path)
	}
	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
