package layout

import (
	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/definition"
)

// rowSpec is a row ready for positioning: its origin and width in inches,
// the minimum column count, and the raw entries.
type rowSpec struct {
	X, Y       float64
	Width      float64
	MinColumns int
	Entries    []string
	TextWidth  *float64
}

// itemCount is the number of columns the row divides its width into.
func (r rowSpec) itemCount(included int) int {
	return max(included, r.MinColumns)
}

// spacing is the distance between adjacent column centers. A row with a
// single column has no spacing.
func (r rowSpec) spacing(included int) float64 {
	n := r.itemCount(included)
	if n <= 1 {
		return 0
	}
	return r.Width / float64(n-1)
}

// slot is one included entry of a row after filtering, truncation and masking.
type slot struct {
	Column int
	ID     string
	Logo   definition.Logo
	Shown  bool
}

// resolver turns raw entries into slots for one variant.
type resolver struct {
	logos   map[string]definition.Logo
	filter  Filter
	missing *missingSet
}

// tagsOf returns the tags of the logo an entry references, without
// synthesizing anything for unknown ids.
func (r resolver) tagsOf(e Entry) TagSet {
	if e.ID == "" {
		return nil
	}
	if l, ok := r.logos[e.ID]; ok {
		return NewTagSet(l.Tags...)
	}
	return nil
}

// included parses raws, drops excluded entries and cuts at @end.
func (r resolver) included(raws []string) ([]Entry, error) {
	entries, err := ParseEntries(raws)
	if err != nil {
		return nil, err
	}
	kept := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if r.filter.Included(e, r.tagsOf(e)) {
			kept = append(kept, e)
		}
	}
	return truncateAtEnd(kept), nil
}

// slots resolves raw entries to column-indexed slots. Visibility is judged on
// the referenced logo before mask substitution, so a blanked entry stays
// blank even when its tags trigger the mask.
func (r resolver) slots(raws []string) ([]slot, error) {
	entries, err := r.included(raws)
	if err != nil {
		return nil, err
	}

	out := make([]slot, 0, len(entries))
	for col, e := range entries {
		if e.IsSpacer() {
			out = append(out, slot{Column: col})
			continue
		}

		logoTags := r.tagsOf(e)
		s := slot{Column: col, ID: e.ID}
		logo, synthesized := LookupLogo(r.logos, e.ID)
		s.Shown = r.filter.Shown(logoTags)

		if maskID, ok := r.filter.Mask(e, logoTags); ok {
			s.ID = maskID
			logo, synthesized = LookupLogo(r.logos, maskID)
		}
		if synthesized {
			r.missing.add(s.ID)
		}
		s.Logo = logo
		out = append(out, s)
	}
	return out, nil
}

// layoutRow positions every shown logo of a row. The result is never empty:
// a row that draws nothing yields one placeholder at the row's Y.
func (r resolver) layoutRow(spec rowSpec) ([]LogoLayout, error) {
	slots, err := r.slots(spec.Entries)
	if err != nil {
		return nil, err
	}

	spacing := spec.spacing(len(slots))
	out := make([]LogoLayout, 0, len(slots))
	for _, s := range slots {
		if !s.Shown {
			continue
		}
		logo := s.Logo
		out = append(out, LogoLayout{
			ID:               s.ID,
			Logo:             &logo,
			X:                spec.X + float64(s.Column)*spacing,
			Y:                spec.Y,
			DefaultTextWidth: spec.TextWidth,
		})
	}

	if len(out) == 0 {
		return []LogoLayout{{X: spec.X, Y: spec.Y}}, nil
	}
	return out, nil
}
