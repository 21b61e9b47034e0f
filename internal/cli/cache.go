package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local precomputed-layout cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cacheStatsCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear all cached layouts",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}

			entries, bytes, err := sweepCache(dir, true)
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			if entries == 0 {
				printInfo("Cache is empty")
				return nil
			}

			printSuccess("Cleared %d cached layouts (%s)", entries, formatBytes(bytes))
			printDetail("Directory: %s", dir)
			return nil
		},
	}
}

// cacheStatsCommand creates the "cache stats" subcommand.
func (c *CLI) cacheStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cached layout count and disk usage",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}

			entries, bytes, err := sweepCache(dir, false)
			if err != nil {
				return fmt.Errorf("scan cache: %w", err)
			}

			printKeyValue("layouts", fmt.Sprintf("%d", entries))
			printKeyValue("size", formatBytes(bytes))
			printKeyValue("directory", dir)
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Println(dir)
			return nil
		},
	}
}

// sweepCache walks the sharded cache directory counting layout entries and
// their total size. When remove is true it also deletes the entries and any
// shard directories left empty. A missing directory counts as an empty cache.
func sweepCache(dir string, remove bool) (entries int, bytes int64, err error) {
	if _, statErr := os.Stat(dir); os.IsNotExist(statErr) {
		return 0, 0, nil
	}

	var shards []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || path == dir {
			return nil
		}
		if d.IsDir() {
			shards = append(shards, path)
			return nil
		}
		if filepath.Ext(path) != ".json" {
			return nil
		}
		if info, infoErr := d.Info(); infoErr == nil {
			bytes += info.Size()
		}
		if remove {
			if rmErr := os.Remove(path); rmErr != nil {
				return nil
			}
		}
		entries++
		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	if remove {
		// Deepest shards first so parents empty out before their turn.
		for i := len(shards) - 1; i >= 0; i-- {
			os.Remove(shards[i])
		}
	}
	return entries, bytes, nil
}

// formatBytes renders a byte count with a binary unit suffix.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGT"[exp])
}
