package layout

import (
	"fmt"
	"io"
	"strings"

	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/definition"
)

// ListedBox is one box of a listing: its title and the logos it shows,
// in layout order. Index is the box's position in the definition, or -1 for
// loose top-level rows.
type ListedBox struct {
	Index int
	Title string
	Logos []ListedLogo
}

// ListedLogo is a shown logo and the id it was resolved under, which is the
// mask logo's id for masked entries.
type ListedLogo struct {
	ID   string
	Logo definition.Logo
}

// Listing is the textual projection of a variant. It uses the same box
// selection, inclusion, and auto-flow as [Engine.Layout] but carries no
// geometry.
type Listing struct {
	Variant definition.Variant
	Boxes   []ListedBox
}

// Listing computes the textual projection of variant v. Loose top-level rows
// are gathered into a trailing untitled box when the variant has no page filter.
func (e *Engine) Listing(v definition.Variant) (Listing, error) {
	r := e.newResolver(v, &missingSet{})
	lang := e.languageFor(v)
	out := Listing{Variant: v}

	for i, box := range e.def.Boxes {
		if !Selected(box, v) {
			continue
		}
		var locationRows int
		if box.Location != "" {
			if loc, ok := e.def.Location(box.Page, box.Location); ok {
				locationRows = loc.NumRows
			}
		}
		rows, _, err := e.boxRows(r, box, locationRows)
		if err != nil {
			return Listing{}, err
		}
		lb, err := listRows(r, i, box.DisplayTitle(lang), rows, lang)
		if err != nil {
			return Listing{}, err
		}
		out.Boxes = append(out.Boxes, lb)
	}

	if len(v.Pages) == 0 && len(e.def.Rows) > 0 {
		rows := make([][]string, len(e.def.Rows))
		for i, row := range e.def.Rows {
			rows[i] = row.Logos
		}
		lb, err := listRows(r, -1, "", rows, lang)
		if err != nil {
			return Listing{}, err
		}
		out.Boxes = append(out.Boxes, lb)
	}
	return out, nil
}

func listRows(r resolver, index int, title string, rows [][]string, lang string) (ListedBox, error) {
	lb := ListedBox{Index: index, Title: title}
	for _, raws := range rows {
		slots, err := r.slots(raws)
		if err != nil {
			return ListedBox{}, err
		}
		for _, s := range slots {
			if !s.Shown || s.ID == "" {
				continue
			}
			logo := s.Logo
			if logo.DisplayTitle(lang) == "" && logo.AltText == "" {
				continue
			}
			lb.Logos = append(lb.Logos, ListedLogo{ID: s.ID, Logo: logo})
		}
	}
	return lb, nil
}

// WriteMarkdown writes listings as Markdown: the document title, then a
// heading and description per variant, then a heading and bullets per box.
// Bullets carry the alt text as a prefix when the logo has one. An empty lang
// uses each variant's own language.
func WriteMarkdown(w io.Writer, title, lang string, listings []Listing) error {
	var b strings.Builder
	if title != "" {
		fmt.Fprintf(&b, "# %s\n", title)
	}
	for _, l := range listings {
		vlang := lang
		if vlang == "" {
			vlang = l.Variant.Language
		}
		fmt.Fprintf(&b, "\n## %s\n", l.Variant.Name)
		if len(l.Variant.Description) > 0 {
			b.WriteString("\n")
			for _, line := range l.Variant.Description {
				fmt.Fprintf(&b, "%s\n", line)
			}
		}
		for _, box := range l.Boxes {
			if len(box.Logos) == 0 {
				continue
			}
			if box.Title != "" {
				fmt.Fprintf(&b, "\n### %s\n", box.Title)
			}
			b.WriteString("\n")
			for _, ll := range box.Logos {
				logo := ll.Logo
				text := logo.DisplayTitle(vlang)
				switch {
				case logo.AltText != "" && text != "":
					text = logo.AltText + ": " + text
				case logo.AltText != "":
					text = logo.AltText
				}
				fmt.Fprintf(&b, "* %s\n", text)
			}
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
