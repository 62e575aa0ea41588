package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/docgraph/docgraph/pkg/errors"
	"github.com/docgraph/docgraph/pkg/graphio"
)

// buildCmdOpts holds the command-line flags for the build command.
type buildCmdOpts struct {
	kind      string // input kind: json, xml, or "" for auto-detect
	rootLabel string // label for the root node
	maxDepth  int    // maximum document nesting depth
	refresh   bool   // bypass cached graphs
	noCache   bool   // disable caching entirely
	output    string // output file path (stdout if empty)
}

// buildCommand creates the build command that turns a document into a
// diagram graph.
//
// The input kind is detected from the file extension (.json, .xml) and
// can be forced with --kind. Use "-" to read the document from stdin
// (requires --kind).
func (c *CLI) buildCommand() *cobra.Command {
	opts := buildCmdOpts{
		rootLabel: c.Config.RootLabel,
		maxDepth:  c.Config.MaxDepth,
	}

	cmd := &cobra.Command{
		Use:   "build <file>",
		Short: "Build a diagram graph from a JSON or XML document",
		Long: `Build a diagram graph from a JSON or XML document.

Primitive values are grouped into merged nodes, nested objects and arrays
become container nodes with child-count badges, and connectors wire the
hierarchy together. The result is written as JSON for rendering or for
external layout tools.

Examples:
  docgraph build config.json                   # graph to stdout
  docgraph build data.xml -o data.graph.json   # graph to file
  cat doc.json | docgraph build - --kind json  # read from stdin`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBuild(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.kind, "kind", "k", "", "input kind: json or xml (default: detect from extension)")
	cmd.Flags().StringVar(&opts.rootLabel, "root-label", opts.rootLabel, "label for the root node")
	cmd.Flags().IntVar(&opts.maxDepth, "max-depth", opts.maxDepth, "maximum document nesting depth")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cached graphs")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}

// runBuild reads the document, runs the build stage, and writes the graph.
func (c *CLI) runBuild(ctx context.Context, input string, opts buildCmdOpts) error {
	ctx = withLogger(ctx, c.Logger)

	doc, kind, err := readDocument(input, opts.kind)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	pipeOpts := c.buildOptions()
	pipeOpts.Kind = kind
	pipeOpts.Input = doc
	pipeOpts.RootLabel = opts.rootLabel
	pipeOpts.MaxDepth = opts.maxDepth
	pipeOpts.Refresh = opts.refresh

	prog := newProgress(c.Logger)
	g, cacheHit, err := runner.BuildWithCacheInfo(ctx, pipeOpts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Built %d nodes with %d connectors", len(g.Nodes), len(g.Connectors)))

	out, err := openOutput(opts.output)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := graphio.Write(g, out); err != nil {
		return err
	}

	if opts.output != "" {
		printSuccess("Wrote graph to %s", opts.output)
		printStats(len(g.Nodes), len(g.Connectors), cacheHit)
		printNextStep("Render it", fmt.Sprintf("docgraph render %s", opts.output))
	}
	return nil
}

// readDocument loads the document text and resolves its kind.
// Input "-" reads stdin and requires an explicit kind.
func readDocument(input, kind string) (string, string, error) {
	if input == "-" {
		if kind == "" {
			return "", "", errors.New(errors.ErrCodeInvalidKind, "reading from stdin requires --kind")
		}
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), kind, nil
	}

	if err := errors.ValidateInputPath(input); err != nil {
		return "", "", err
	}

	data, err := os.ReadFile(input)
	if os.IsNotExist(err) {
		return "", "", errors.New(errors.ErrCodeFileNotFound, "file %s not found", input)
	}
	if err != nil {
		return "", "", fmt.Errorf("read %s: %w", input, err)
	}
	if err := errors.ValidateDocumentSize(len(data)); err != nil {
		return "", "", err
	}

	if kind == "" {
		kind = detectKind(input)
		if kind == "" {
			return "", "", errors.New(errors.ErrCodeInvalidKind,
				"cannot detect kind from %q (use --kind json or --kind xml)", filepath.Ext(input))
		}
	}
	return string(data), kind, nil
}

// detectKind maps a file extension to an input kind.
func detectKind(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	case ".xml":
		return "xml"
	default:
		return ""
	}
}

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
