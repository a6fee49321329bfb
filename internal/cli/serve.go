package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/cache"
	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/pipeline"
	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/server"
)

const defaultAddr = "localhost:8080"

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr     string
	language string
	dark     bool
	extents  bool
	cache    cacheFlags
}

// serveCommand creates the serve command, a local preview server that
// re-reads the document on every request.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: defaultAddr}

	cmd := &cobra.Command{
		Use:   "serve [document]",
		Short: "Preview slides in a browser while editing a document",
		Long: `Serve renders slides on request. The document is re-read on every request,
so saving it and reloading the page shows the change.

Routes:
  /                                   index of variants with SVG previews
  /variants                           variants as JSON
  /variants/{name}/slide.{format}     one slide (svg, png, pdf, json, md)
  /outline.svg                        Graphviz outline of the document
  /healthz                            build information

Slide routes accept ?lang=, ?dark=, ?extents= and ?scale= query parameters.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: documentArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "address to listen on")
	cmd.Flags().StringVar(&opts.language, "lang", "", "default language for every variant")
	cmd.Flags().BoolVar(&opts.dark, "dark", false, "default to dark mode for every variant")
	cmd.Flags().BoolVar(&opts.extents, "extents", false, "outline layout boxes by default")
	opts.cache.register(cmd)

	return cmd
}

func (c *CLI) runServe(ctx context.Context, input string, opts serveOpts) error {
	// Fail fast on a broken document; the server reloads it per request.
	if _, err := pipeline.Load(input); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.cache, cache.ForDocument(cache.NewDefaultKeyer(), input))
	if err != nil {
		return err
	}
	defer runner.Close()

	srv := server.New(runner, input,
		server.WithLogger(c.Logger),
		server.WithDefaults(pipeline.Options{
			Language:    opts.language,
			Dark:        opts.dark,
			Extents:     opts.extents,
			EmbedImages: true,
		}),
	)

	printInfo("Serving %s", input)
	printNextStep("Open", fmt.Sprintf("http://%s/", opts.addr))
	return srv.ListenAndServe(ctx, opts.addr)
}
