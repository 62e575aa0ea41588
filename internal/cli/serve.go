package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docgraph/docgraph/internal/server"
	"github.com/docgraph/docgraph/pkg/cache"
	"github.com/docgraph/docgraph/pkg/pipeline"
	"github.com/docgraph/docgraph/pkg/store"
)

// serveCmdOpts holds the command-line flags for the serve command.
type serveCmdOpts struct {
	listen  string
	noCache bool
}

// serveCommand creates the serve command for running the HTTP API.
//
// Storage and cache backends come from the config file: graphs are held
// in memory unless server.mongo_uri is set, and rendered artifacts use
// the configured cache backend.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveCmdOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long: `Run the HTTP API server.

Exposes document building and rendering over HTTP:

  POST   /v1/graphs          build a graph from a document
  GET    /v1/graphs          list stored graphs
  GET    /v1/graphs/{id}     fetch a graph, optionally rendered (?format=svg)
  DELETE /v1/graphs/{id}     delete a stored graph
  GET    /healthz            health check

Graphs are stored in memory unless server.mongo_uri is configured.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.listen, "listen", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

// runServe wires the store, cache, and runner together and serves until
// the context is cancelled.
func (c *CLI) runServe(ctx context.Context, opts serveCmdOpts) error {
	ctx = withLogger(ctx, c.Logger)

	cch, err := c.newCache(ctx, opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	// Server entries live in their own namespace so a shared redis
	// backend never collides with locally built graphs.
	keyer := cache.NewScopedKeyer(nil, "srv:")
	runner := pipeline.NewRunner(cch, keyer, c.Logger)
	defer runner.Close()

	st, err := c.newStore(ctx)
	if err != nil {
		return fmt.Errorf("initialize store: %w", err)
	}
	defer st.Close(context.Background())

	addr := opts.listen
	if addr == "" {
		addr = c.Config.Server.Listen
	}

	srv := server.New(runner, st, c.Logger)
	c.Logger.Info("starting server", "addr", addr)
	return srv.ListenAndServe(ctx, addr)
}

// newStore creates the graph store configured for the server: MongoDB
// when server.mongo_uri is set, in-memory otherwise.
func (c *CLI) newStore(ctx context.Context) (store.Store, error) {
	if uri := c.Config.Server.MongoURI; uri != "" {
		c.Logger.Debug("connecting to mongodb", "database", c.Config.Server.MongoDatabase)
		return store.NewMongoStore(ctx, store.MongoOptions{
			URI:        uri,
			Database:   c.Config.Server.MongoDatabase,
			Collection: c.Config.Server.MongoCollection,
		})
	}
	return store.NewMemoryStore(), nil
}
