package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/cache"
)

// cacheCommand groups the subcommands that inspect the local file cache.
// A Redis cache selected with --cache-url is managed by Redis itself.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local cache of image sizes and rendered slides",
	}
	cmd.AddCommand(
		localCacheCommand("stats", "Show the number and size of cached entries", cacheStats),
		localCacheCommand("prune", "Remove expired cache entries", cachePrune),
		localCacheCommand("clear", "Remove all cached image sizes and rendered slides", cacheClear),
		&cobra.Command{
			Use:   "path",
			Short: "Print the cache directory path",
			RunE: func(cmd *cobra.Command, args []string) error {
				dir, err := cacheDir()
				if err != nil {
					return err
				}
				fmt.Fprintln(stdout, dir)
				return nil
			},
		},
	)
	return cmd
}

// localCacheCommand builds a subcommand that runs fn on the local cache, or
// reports an empty cache when the directory does not exist yet.
func localCacheCommand(use, short string, fn func(*cache.FileCache) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, exists, err := openLocalCache()
			if err != nil {
				return err
			}
			if !exists {
				printInfo("Cache is empty")
				return nil
			}
			return fn(fc)
		},
	}
}

// openLocalCache opens the local file cache, reporting exists=false when the
// directory has not been created yet.
func openLocalCache() (fc *cache.FileCache, exists bool, err error) {
	dir, err := cacheDir()
	if err != nil {
		return nil, false, err
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, false, nil
	}
	fc, err = cache.NewFileCache(dir)
	return fc, err == nil, err
}

func cacheStats(fc *cache.FileCache) error {
	entries, size, err := fc.Stats()
	if err != nil {
		return fmt.Errorf("read cache: %w", err)
	}
	printKeyValue("Directory", fc.Dir())
	printKeyValue("Entries", fmt.Sprint(entries))
	printKeyValue("Size", formatBytes(size))
	return nil
}

func cachePrune(fc *cache.FileCache) error {
	removed, err := fc.Prune()
	if err != nil {
		return fmt.Errorf("prune cache: %w", err)
	}
	printSuccess("Pruned %d expired entries", removed)
	return nil
}

func cacheClear(fc *cache.FileCache) error {
	entries, _, err := fc.Stats()
	if err != nil {
		return fmt.Errorf("read cache: %w", err)
	}
	if err := fc.Clear(); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	printSuccess("Cleared %d cached entries", entries)
	printFile(fc.Dir())
	return nil
}

// formatBytes renders a byte count with a binary unit, e.g. "1.5 KiB".
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
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
