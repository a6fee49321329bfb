package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/buildinfo"
	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/cache"
	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/observability"
	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "logoslidemaker"

	// envCacheURL names the environment variable that selects a Redis cache
	// when --cache-url is not given.
	envCacheURL = "LOGOSLIDEMAKER_CACHE_URL"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

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

// SetVerbose switches to debug logging and reports pipeline, cache, and
// server events through the logger.
func (c *CLI) SetVerbose() {
	c.SetLogLevel(LogDebug)
	hooks := observability.NewLogHooks(c.Logger)
	observability.SetPipelineHooks(hooks)
	observability.SetCacheHooks(hooks)
	observability.SetHTTPHooks(hooks)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "LogoSlideMaker lays out logo slides from a document",
		Long:          `LogoSlideMaker turns a TOML or YAML document of logos, boxes, and variants into laid-out slides. Each variant filters, masks, and localizes the same logos into its own slide.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		return nil
	}

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.listCommand())
	root.AddCommand(c.outlineCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// cacheFlags selects the cache backend for commands that render.
type cacheFlags struct {
	noCache bool
	url     string
}

func (f *cacheFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching of image sizes and rendered slides")
	cmd.Flags().StringVar(&f.url, "cache-url", "", "redis:// URL of a shared cache (default: local directory, or $"+envCacheURL+")")
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, flags cacheFlags, keyer cache.Keyer) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx, flags)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, keyer, c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context, flags cacheFlags) (cache.Cache, error) {
	if flags.noCache {
		return cache.NewNullCache(), nil
	}
	url := flags.url
	if url == "" {
		url = os.Getenv(envCacheURL)
	}
	if url != "" {
		cfg, err := cache.ParseRedisURL(url)
		if err != nil {
			return nil, err
		}
		cfg.Prefix = appName + ":"
		c.Logger.Debug("using redis cache", "addr", cfg.Addr, "db", cfg.DB)
		return cache.NewRedisCache(ctx, cfg)
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Warn("cache disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/logoslidemaker/).
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

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .png, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.IsFormat(strings.TrimPrefix(ext, ".")) {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseList parses a comma-separated flag value, dropping empty items.
func parseList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if formats := parseList(s); len(formats) > 0 {
		return formats
	}
	return []string{pipeline.FormatSVG}
}
