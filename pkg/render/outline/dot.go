package outline

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/definition"
	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/errors"
	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/layout"
	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/render"
)

// Options configures outline generation.
type Options struct {
	// Variant limits the diagram to one variant. Empty means all.
	Variant string
	// Detailed adds tags and pages to node labels.
	Detailed bool
}

// ToDOT converts a definition to Graphviz DOT source.
func ToDOT(def *definition.Definition, opts Options) (string, error) {
	variants := def.EffectiveVariants()
	if opts.Variant != "" {
		v, err := def.Variant(opts.Variant)
		if err != nil {
			return "", err
		}
		variants = []definition.Variant{v}
	}

	eng := layout.New(def)
	var (
		buf   bytes.Buffer
		nodes = map[string]bool{}
		edges = map[[2]string]bool{}
	)
	buf.WriteString("digraph outline {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=1.0;\n")
	buf.WriteString("\n")

	node := func(id, label string, attrs ...string) {
		if nodes[id] {
			return
		}
		nodes[id] = true
		fmt.Fprintf(&buf, "  %q [%s];\n", id, strings.Join(append([]string{fmt.Sprintf("label=%q", label)}, attrs...), ", "))
	}
	edge := func(from, to string) {
		key := [2]string{from, to}
		if edges[key] {
			return
		}
		edges[key] = true
		fmt.Fprintf(&buf, "  %q -> %q;\n", from, to)
	}

	for _, v := range variants {
		listing, err := eng.Listing(v)
		if err != nil {
			return "", err
		}
		vid := "variant:" + v.Name
		node(vid, variantLabel(v, opts.Detailed), "shape=folder", "fillcolor=lightblue")

		for _, box := range listing.Boxes {
			bid := boxID(box)
			node(bid, boxLabel(def, box, opts.Detailed))
			edge(vid, bid)
			for _, l := range box.Logos {
				lid := "logo:" + l.ID
				attrs := []string{"shape=ellipse"}
				if v.Mask != nil && l.ID == v.Mask.Logo {
					attrs = append(attrs, "style=\"filled,dashed\"", "fillcolor=lightgrey")
				}
				node(lid, logoLabel(l, opts.Detailed), attrs...)
				edge(bid, lid)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}

func boxID(b layout.ListedBox) string {
	if b.Index < 0 {
		return "rows"
	}
	return "box:" + strconv.Itoa(b.Index)
}

func variantLabel(v definition.Variant, detailed bool) string {
	if !detailed || len(v.Pages) == 0 {
		return v.Name
	}
	pages := make([]string, len(v.Pages))
	for i, p := range v.Pages {
		pages[i] = strconv.Itoa(p)
	}
	return v.Name + "\npages: " + strings.Join(pages, ", ")
}

func boxLabel(def *definition.Definition, b layout.ListedBox, detailed bool) string {
	title := b.Title
	if title == "" {
		if b.Index < 0 {
			title = "(rows)"
		} else {
			title = fmt.Sprintf("(box %d)", b.Index)
		}
	}
	if !detailed || b.Index < 0 {
		return title
	}
	return fmt.Sprintf("%s\npage: %d", title, def.Boxes[b.Index].Page)
}

func logoLabel(l layout.ListedLogo, detailed bool) string {
	title := l.Logo.Title
	if title == "" {
		title = l.ID
	}
	if !detailed || len(l.Logo.Tags) == 0 {
		return title
	}
	tags := slices.Clone(l.Logo.Tags)
	slices.Sort(tags)
	return title + "\n" + strings.Join(tags, ", ")
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render outline")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based root element with one
// sized in pixels and anchored at the origin.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}

// RenderPDF renders DOT source as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}
