package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/docgraph/docgraph/pkg/diagram"
	"github.com/docgraph/docgraph/pkg/graphio"
)

// inspectCmdOpts holds the command-line flags for the inspect command.
type inspectCmdOpts struct {
	kind      string
	fromGraph bool
	noCache   bool
}

// inspectCommand creates the inspect command, an interactive browser
// over the nodes of a diagram graph.
func (c *CLI) inspectCommand() *cobra.Command {
	var opts inspectCmdOpts

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Browse the nodes of a document interactively",
		Long: `Browse the nodes of a document interactively.

Builds the input document into a diagram graph and opens a terminal
browser over its nodes, showing each node's kind, path, and merged
content. Pass --graph to inspect a graph file produced by 'build'.

Examples:
  docgraph inspect config.json
  docgraph inspect saved.graph.json --graph`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.kind, "kind", "k", "", "input kind: json or xml (default: detect from extension)")
	cmd.Flags().BoolVar(&opts.fromGraph, "graph", false, "input is a prebuilt graph file, not a document")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

// runInspect builds or loads the graph and runs the node browser.
func (c *CLI) runInspect(ctx context.Context, input string, opts inspectCmdOpts) error {
	ctx = withLogger(ctx, c.Logger)

	var g *diagram.DiagramData

	if opts.fromGraph {
		var err error
		g, err = graphio.ReadFile(input)
		if err != nil {
			return err
		}
	} else {
		runner, err := c.newRunner(ctx, opts.noCache)
		if err != nil {
			return fmt.Errorf("initialize runner: %w", err)
		}
		defer runner.Close()

		doc, kind, err := readDocument(input, opts.kind)
		if err != nil {
			return err
		}

		pipeOpts := c.buildOptions()
		pipeOpts.Kind = kind
		pipeOpts.Input = doc

		g, err = runner.Build(ctx, pipeOpts)
		if err != nil {
			return err
		}
	}

	if g.IsEmpty() {
		printWarning("Graph has no nodes")
		return nil
	}

	model := NewNodeListModel(g)
	p := tea.NewProgram(model, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run node browser: %w", err)
	}
	return nil
}
