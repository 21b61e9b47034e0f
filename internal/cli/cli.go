// Package cli implements the riverlane command-line interface.
//
// This package provides commands for computing river-diagram layouts from
// lineage documents, inspecting their chain and family structure, serving
// the layout engine over HTTP, and managing the local layout cache. The CLI
// is built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - layout: Compute a layout from a lineage document
//   - inspect: Show chain/family structure, export DOT/SVG, browse families
//   - serve: Run the layout engine as an HTTP service
//   - cache: Manage the local precomputed-layout cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/riverlane-tools/riverlane/pkg/buildinfo"
	"github.com/riverlane-tools/riverlane/pkg/cache"
	"github.com/riverlane-tools/riverlane/pkg/config"
	"github.com/riverlane-tools/riverlane/pkg/precomp"
)

// appName is the application name used for directories and display.
const appName = "riverlane"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "riverlane",
		Short:        "Riverlane lays out organizational lineages as river diagrams",
		Long:         `Riverlane computes river-diagram layouts for organizational lineage data: entities flow through horizontal lanes across time, with merges, splits, and successions drawn as connecting ribbons.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())

	return root
}

// newPrecompAdapter builds the precomputed-layout adapter backed by the
// local file cache. With noCache the adapter reads nothing and the engine
// always optimizes live.
func (c *CLI) newPrecompAdapter(noCache bool, cfg config.Config) *precomp.Adapter {
	if noCache {
		return nil
	}
	dir, err := cacheDir()
	if err != nil {
		return nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil
	}
	return precomp.NewAdapter(precomp.NewCacheStore(fc, 0), cfg.PrecomputedMinChains, 0)
}

// loadConfig reads the engine configuration, either from --config or the
// built-in defaults.
func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.LoadFile(path)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/riverlane/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
