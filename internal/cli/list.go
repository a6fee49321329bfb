package cli

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/layout"
	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/pipeline"
)

// listOpts holds the command-line flags for the list command.
type listOpts struct {
	output   string
	variants string
	language string
	table    bool
}

// listCommand creates the list command, which prints the logos each variant
// shows without rendering anything.
func (c *CLI) listCommand() *cobra.Command {
	var opts listOpts

	cmd := &cobra.Command{
		Use:   "list [document]",
		Short: "List the logos each variant shows",
		Long: `List prints the document as Markdown: a heading per variant and per box,
and a bullet per logo, in the same order the slides lay them out.

With --table it prints a one-line summary per variant instead.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: documentArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runList(cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the Markdown listing to a file instead of stdout")
	cmd.Flags().StringVar(&opts.variants, "variant", "", "variant(s) to list (default all, comma-separated)")
	cmd.Flags().StringVar(&opts.language, "lang", "", "list every variant in this language")
	cmd.Flags().BoolVar(&opts.table, "table", false, "print a summary table of variants")
	_ = cmd.RegisterFlagCompletionFunc("variant", completeVariants)

	return cmd
}

func (c *CLI) runList(w io.Writer, input string, opts listOpts) error {
	def, err := pipeline.Load(input)
	if err != nil {
		return err
	}
	variants, err := pipeline.SelectVariants(def, parseList(opts.variants))
	if err != nil {
		return err
	}
	popts := pipeline.Options{Language: opts.language}
	listings, err := pipeline.GenerateListings(def, variants, popts)
	if err != nil {
		return err
	}
	c.Logger.Debug("listed variants", "document", input, "variants", len(listings))

	if opts.table {
		_, err := fmt.Fprintln(w, variantTable(summarizeVariants(listings, opts.language), -1))
		return err
	}

	var buf bytes.Buffer
	if err := layout.WriteMarkdown(&buf, def.Title, opts.language, listings); err != nil {
		return err
	}
	if opts.output == "" {
		_, err := w.Write(buf.Bytes())
		return err
	}
	if err := writeFile(opts.output, buf.Bytes()); err != nil {
		return err
	}
	printSuccess("Listed %d variant(s)", len(listings))
	printFile(opts.output)
	return nil
}

// =============================================================================
// Variant Summaries
// =============================================================================

// variantSummary is one variant's row in the summary table and the browser.
type variantSummary struct {
	Name     string
	Language string
	Dark     bool
	Pages    []int
	Boxes    int
	Logos    int
	Listing  layout.Listing
}

func summarizeVariants(listings []layout.Listing, language string) []variantSummary {
	out := make([]variantSummary, len(listings))
	for i, l := range listings {
		s := variantSummary{
			Name:     l.Variant.Name,
			Language: l.Variant.Language,
			Dark:     l.Variant.Dark,
			Pages:    l.Variant.Pages,
			Listing:  l,
		}
		if language != "" {
			s.Language = language
		}
		for _, b := range l.Boxes {
			if len(b.Logos) == 0 {
				continue
			}
			s.Boxes++
			s.Logos += len(b.Logos)
		}
		out[i] = s
	}
	return out
}

// markdown renders the summary's listing on its own.
func (s variantSummary) markdown() string {
	var b strings.Builder
	_ = layout.WriteMarkdown(&b, "", s.Language, []layout.Listing{s.Listing})
	return strings.TrimSpace(b.String())
}

func pagesLabel(pages []int) string {
	if len(pages) == 0 {
		return "all"
	}
	parts := make([]string, len(pages))
	for i, p := range pages {
		parts[i] = strconv.Itoa(p)
	}
	return strings.Join(parts, ",")
}

// variantTable renders summaries as a rounded lipgloss table. The row at
// cursor is highlighted; pass -1 for none.
func variantTable(rows []variantSummary, cursor int) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	cells := make([][]string, len(rows))
	for i, r := range rows {
		mark := "  "
		if i == cursor {
			mark = "▸ "
		}
		mode := "light"
		if r.Dark {
			mode = "dark"
		}
		lang := r.Language
		if lang == "" {
			lang = "—"
		}
		cells[i] = []string{mark, r.Name, strconv.Itoa(r.Boxes), strconv.Itoa(r.Logos), pagesLabel(r.Pages), lang, mode}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Variant", "Boxes", "Logos", "Pages", "Lang", "Mode").
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case row == cursor:
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			case col >= 4:
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})
	return t.Render()
}
