package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/cache"
	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/errors"
	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string // output file (single slide and format) or base path
	formats  string // comma-separated output formats
	variants string // comma-separated variant names; empty renders all
	language string // forced language for every variant
	dark     bool   // force dark mode for every variant
	extents  bool   // outline layout boxes
	embed    bool   // embed images in SVG output
	scale    float64
	refresh  bool // ignore cached slides
	cache    cacheFlags
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{scale: pipeline.DefaultScale}

	cmd := &cobra.Command{
		Use:   "render [document]",
		Short: "Render each variant of a document to slides",
		Long: `Render lays out every variant of a TOML or YAML slide document and writes
one file per variant and format, named <base>_<variant>.<format>.

With a single variant and format, --output names the file exactly.`,
		Example: `  logoslidemaker render logos.toml
  logoslidemaker render logos.toml -f svg,png --scale 2 -o out/logos
  logoslidemaker render logos.yaml --variant Partners --dark --extents`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: documentArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single slide) or base path (default: document path)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): "+strings.Join(pipeline.FormatNames(), ", ")+" (default svg, comma-separated)")
	cmd.Flags().StringVar(&opts.variants, "variant", "", "variant(s) to render (default all, comma-separated)")
	cmd.Flags().StringVar(&opts.language, "lang", "", "render every variant in this language")
	cmd.Flags().BoolVar(&opts.dark, "dark", false, "render every variant in dark mode")
	cmd.Flags().BoolVar(&opts.extents, "extents", false, "outline layout boxes for debugging")
	cmd.Flags().BoolVar(&opts.embed, "embed", true, "embed images in SVG output as data URIs")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, fmt.Sprintf("PNG pixel density multiplier (max %g)", pipeline.MaxScale))
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render slides even when cached")
	opts.cache.register(cmd)

	_ = cmd.RegisterFlagCompletionFunc("variant", completeVariants)
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)

	return cmd
}

func (o renderOpts) pipelineOptions() pipeline.Options {
	return pipeline.Options{
		Variants:    parseList(o.variants),
		Language:    o.language,
		Dark:        o.dark,
		Formats:     parseFormats(o.formats),
		Extents:     o.extents,
		EmbedImages: o.embed,
		Scale:       o.scale,
		Refresh:     o.refresh,
	}
}

func (c *CLI) runRender(ctx context.Context, input string, opts renderOpts) error {
	popts := opts.pipelineOptions()
	popts.Logger = c.Logger
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	def, err := pipeline.Load(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.cache, cache.NewDefaultKeyer())
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, "Loading "+input+"...")
	restore := spinner.Track()
	spinner.Start()
	result, err := runner.Execute(ctx, def, popts)
	spinner.Stop()
	restore()
	if err != nil {
		return err
	}

	paths, err := writeSlides(result.Slides, basePath(opts.output, input), opts.output)
	if err != nil {
		return err
	}
	prog.done("rendered slides", "slides", len(result.Slides), "files", len(paths))

	printSuccess("Rendered %d slide(s) from %s", len(result.Slides), input)
	for _, s := range result.Slides {
		fmt.Fprintln(stdout, slideSummary(s.Variant.Name, s.Layout.LogoCount(), len(s.Layout.Missing), s.Cached))
		if len(s.Layout.Missing) > 0 {
			printWarning("%s: logos not defined: %s", s.Variant.Name, strings.Join(s.Layout.Missing, ", "))
		}
	}
	for _, p := range paths {
		printFile(p)
	}
	return nil
}

// writeSlides writes every artifact of every slide and returns the paths in
// the order written. exact is used verbatim when there is exactly one file.
func writeSlides(slides []pipeline.Slide, base, exact string) ([]string, error) {
	var total int
	for _, s := range slides {
		total += len(s.Artifacts)
	}
	if total == 0 {
		return nil, nil
	}

	var paths []string
	for _, s := range slides {
		formats := make([]string, 0, len(s.Artifacts))
		for f := range s.Artifacts {
			formats = append(formats, f)
		}
		sort.Strings(formats)

		for _, f := range formats {
			path := slidePath(base, s.Variant.Name, f)
			if total == 1 && exact != "" {
				path = exact
			}
			if err := writeFile(path, s.Artifacts[f]); err != nil {
				return paths, err
			}
			paths = append(paths, path)
		}
	}
	return paths, nil
}

// slidePath names a slide file: <base>_<variant>.<format>.
func slidePath(base, variant, format string) string {
	return fmt.Sprintf("%s_%s.%s", base, variant, format)
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "create %s", dir)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "write %s", path)
	}
	return nil
}
