package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/errors"
	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/pipeline"
	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/render/outline"
)

const formatDOT = "dot"

// outlineOpts holds the command-line flags for the outline command.
type outlineOpts struct {
	output   string
	format   string
	variant  string
	detailed bool
}

// outlineCommand creates the outline command, which draws how variants,
// boxes, and logos relate as a Graphviz diagram.
func (c *CLI) outlineCommand() *cobra.Command {
	opts := outlineOpts{format: pipeline.FormatSVG}

	cmd := &cobra.Command{
		Use:   "outline [document]",
		Short: "Draw the variant, box, and logo structure of a document",
		Long: `Outline draws every variant of a document, the boxes it selects, and the
logos each box shows as a left-to-right Graphviz diagram. Masked logos are
drawn dashed.

The dot format prints the Graphviz source without rendering it.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: documentArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runOutline(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: <document>_outline.<format>)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg, pdf, dot")
	cmd.Flags().StringVar(&opts.variant, "variant", "", "outline only this variant")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "label nodes with pages and tags")
	_ = cmd.RegisterFlagCompletionFunc("variant", completeVariants)

	return cmd
}

func (c *CLI) runOutline(ctx context.Context, input string, opts outlineOpts) error {
	def, err := pipeline.Load(input)
	if err != nil {
		return err
	}
	dot, err := outline.ToDOT(def, outline.Options{Variant: opts.variant, Detailed: opts.detailed})
	if err != nil {
		return err
	}

	var data []byte
	switch opts.format {
	case formatDOT:
		data = []byte(dot)
	case pipeline.FormatSVG:
		data, err = outline.RenderSVG(ctx, dot)
	case pipeline.FormatPDF:
		data, err = outline.RenderPDF(ctx, dot)
	default:
		return errors.New(errors.ErrCodeInvalidInput, "outline format %q: want svg, pdf, or dot", opts.format)
	}
	if err != nil {
		return err
	}

	if opts.output == "-" {
		_, err := stdout.Write(data)
		return err
	}
	path := opts.output
	if path == "" {
		path = fmt.Sprintf("%s_outline.%s", basePath("", input), opts.format)
	}
	if err := writeFile(path, data); err != nil {
		return err
	}
	loggerFromContext(ctx).Debug("wrote outline", "path", path, "bytes", len(data))
	printSuccess("Outlined %s", input)
	printFile(path)
	return nil
}
