package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bspgen/internal/server"
	"github.com/matzehuels/bspgen/pkg/cache"
	"github.com/matzehuels/bspgen/pkg/pipeline"
)

// redisURLEnv names the environment variable read when --redis is not set.
const redisURLEnv = "BSPGEN_REDIS_URL"

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	flags := newConfigFlags()
	var (
		addr     string
		redisURL string
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve dungeon generation over HTTP",
		Long: `Serve starts an HTTP server with GET /v1/dungeon, GET /v1/policies and
GET /healthz. Generation flags and --config set the defaults that query
parameters override.

Artifacts are cached on disk unless --redis (or ` + redisURLEnv + `) points at a
Redis server, which lets several instances share one cache.`,
		Example: `  bspgen serve --addr :8080
  bspgen serve --redis redis://localhost:6379/0 --depth 5
  curl 'localhost:8080/v1/dungeon?seed=42&format=svg'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			if redisURL == "" {
				redisURL = os.Getenv(redisURLEnv)
			}

			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			var store cache.Cache
			switch {
			case noCache:
				store = cache.NewNullCache()
			case redisURL != "":
				rc, err := cache.NewRedisCache(ctx, redisURL, appName+":")
				if err != nil {
					return fmt.Errorf("connect redis: %w", err)
				}
				logger.Info("Using Redis cache")
				store = rc
			default:
				if store, err = newCache(false); err != nil {
					return err
				}
			}

			runner := pipeline.NewRunner(store, logger)
			defer runner.Close()

			printInfo("Serving on %s", addr)
			return server.New(runner, logger, cfg).ListenAndServe(ctx, addr)
		},
	}

	flags.register(cmd.Flags(), true)
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisURL, "redis", "", "Redis URL for a shared cache (default $"+redisURLEnv+")")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}
