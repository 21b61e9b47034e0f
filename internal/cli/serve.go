package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/riverlane-tools/riverlane/internal/server"
	"github.com/riverlane-tools/riverlane/pkg/cache"
	"github.com/riverlane-tools/riverlane/pkg/precomp"
)

// serveCommand creates the serve command for running the HTTP service.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr       string
		configPath string
		redisAddr  string
		mongoURI   string
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the layout engine as an HTTP service",
		Long: `Run the layout engine as an HTTP service.

Exposes POST /v1/layout for stateless layout computation and GET /healthz
for liveness probes. With --redis or --mongo the precomputed-layout store is
read from the instance shared with the offline optimization service;
otherwise the local file cache is used.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, configPath, redisAddr, mongoURI, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&configPath, "config", "", "engine configuration file (TOML)")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "Redis address for the precomputed-layout store")
	cmd.Flags().StringVar(&mongoURI, "mongo", "", "MongoDB URI for the precomputed-layout store")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the precomputed-layout store")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr, configPath, redisAddr, mongoURI string, noCache bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	var adapter *precomp.Adapter
	switch {
	case noCache:
		// Live optimization only.
	case redisAddr != "":
		connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		rc, err := cache.NewRedisCache(connectCtx, redisAddr, "", 0)
		cancel()
		if err != nil {
			return fmt.Errorf("connect redis %s: %w", redisAddr, err)
		}
		defer rc.Close()
		adapter = precomp.NewAdapter(precomp.NewCacheStore(rc, 0), cfg.PrecomputedMinChains, 0)
	case mongoURI != "":
		connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(mongoURI))
		cancel()
		if err != nil {
			return fmt.Errorf("connect mongo: %w", err)
		}
		defer client.Disconnect(context.Background())
		coll := client.Database("riverlane").Collection("layouts")
		adapter = precomp.NewAdapter(precomp.NewMongoStore(coll), cfg.PrecomputedMinChains, 0)
	default:
		adapter = c.newPrecompAdapter(false, cfg)
	}

	srv := server.New(server.Config{
		Addr:    addr,
		Engine:  cfg,
		Precomp: adapter,
		Logger:  c.Logger,
	})

	printInfo("Serving on %s", addr)
	return srv.ListenAndServe()
}
