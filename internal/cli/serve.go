package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flexline/internal/server"
	"github.com/matzehuels/flexline/pkg/cache"
	"github.com/matzehuels/flexline/pkg/pipeline"
	"github.com/matzehuels/flexline/pkg/store"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		redisURL string
		mongoURI string
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the flexline HTTP API",
		Long: `Serve runs the HTTP API: POST /v1/solve for inline profiles, a profile
store under /v1/profiles, and /healthz.

Profiles live in memory unless --mongo points at a MongoDB instance.
Solve results are cached on disk unless --redis points at a Redis
instance or --no-cache disables caching.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			solveCache, err := c.serveCache(ctx, redisURL, noCache)
			if err != nil {
				return err
			}
			runner := pipeline.NewRunner(solveCache, nil, c.Logger)
			defer runner.Close()

			st, err := c.serveStore(ctx, mongoURI)
			if err != nil {
				return err
			}
			defer st.Close(context.Background())

			srv := &http.Server{
				Addr:         addr,
				Handler:      server.New(runner, st, c.Logger).Handler(),
				ReadTimeout:  10 * time.Second,
				WriteTimeout: 30 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				c.Logger.Info("listening", "addr", addr)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case <-ctx.Done():
				c.Logger.Info("shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "listen address")
	cmd.Flags().StringVar(&redisURL, "redis", "", "redis URL for the solve cache (e.g. redis://localhost:6379/0)")
	cmd.Flags().StringVar(&mongoURI, "mongo", "", "mongodb URI for the profile store (e.g. mongodb://localhost:27017)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the solve cache")

	return cmd
}

// serveCache picks the solve cache backend: redis when configured, otherwise
// the on-disk cache the CLI commands share.
func (c *CLI) serveCache(ctx context.Context, redisURL string, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisURL != "" {
		rc, err := cache.NewRedisCacheFromURL(ctx, redisURL)
		if err != nil {
			return nil, err
		}
		c.Logger.Info("solve cache: redis", "url", redisURL)
		return rc, nil
	}
	return newCache(false)
}

// serveStore picks the profile store backend.
func (c *CLI) serveStore(ctx context.Context, mongoURI string) (store.Store, error) {
	if mongoURI == "" {
		c.Logger.Info("profile store: in-memory")
		return store.NewMemoryStore(), nil
	}
	ms, err := store.NewMongoStore(ctx, mongoURI)
	if err != nil {
		return nil, err
	}
	c.Logger.Info("profile store: mongodb", "uri", mongoURI)
	return ms, nil
}
