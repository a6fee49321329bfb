package layout

import (
	"slices"

	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/definition"
)

// TagSet is a set of case-sensitive tags. The nil set is empty and valid.
type TagSet map[string]struct{}

// NewTagSet builds a set from a list of tags.
func NewTagSet(tags ...string) TagSet {
	if len(tags) == 0 {
		return nil
	}
	s := make(TagSet, len(tags))
	for _, t := range tags {
		s[t] = struct{}{}
	}
	return s
}

// With returns the set with tag added, allocating if the set is nil.
func (s TagSet) With(tag string) TagSet {
	if s == nil {
		s = make(TagSet, 1)
	}
	s[tag] = struct{}{}
	return s
}

// Has reports whether tag is in the set.
func (s TagSet) Has(tag string) bool {
	_, ok := s[tag]
	return ok
}

// Intersects reports whether the sets share at least one tag.
func (s TagSet) Intersects(other TagSet) bool {
	small, large := s, other
	if len(small) > len(large) {
		small, large = large, small
	}
	for t := range small {
		if large.Has(t) {
			return true
		}
	}
	return false
}

// Union returns a new set holding the tags of both sets.
func (s TagSet) Union(other TagSet) TagSet {
	if len(s) == 0 && len(other) == 0 {
		return nil
	}
	out := make(TagSet, len(s)+len(other))
	for t := range s {
		out[t] = struct{}{}
	}
	for t := range other {
		out[t] = struct{}{}
	}
	return out
}

// Sorted returns the tags in lexical order.
func (s TagSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}

// Filter decides inclusion, visibility and masking of entries for one variant.
// It is a pure value: the same Filter serves auto-flow and row layout so both
// agree on which entries occupy space.
type Filter struct {
	include  TagSet
	blank    TagSet
	maskLogo string
	maskTags TagSet
}

// NewFilter builds the filter for a variant.
func NewFilter(v definition.Variant) Filter {
	f := Filter{
		include: NewTagSet(v.Include...),
		blank:   NewTagSet(v.Blank...),
	}
	if v.Mask != nil {
		f.maskLogo = v.Mask.Logo
		f.maskTags = NewTagSet(v.Mask.Tags...)
	}
	return f
}

// HasMask reports whether the variant masks anything.
func (f Filter) HasMask() bool { return f.maskLogo != "" }

// Included reports whether an entry occupies layout space. logoTags are the
// tags of the logo the entry references (nil for commands and unknown ids).
//
// Negative entry tags that name an included tag exclude the entry outright.
// Otherwise untagged entries are always included, and tagged entries are
// included only when a tag is included, blanked, or masked by the variant.
func (f Filter) Included(e Entry, logoTags TagSet) bool {
	if e.NotTags.Intersects(f.include) {
		return false
	}
	tags := e.Tags.Union(logoTags)
	switch {
	case len(tags) == 0:
		return true
	case tags.Intersects(f.include) || tags.Intersects(f.blank):
		return true
	case f.HasMask() && tags.Intersects(f.maskTags):
		return true
	}
	return false
}

// Shown reports whether an included logo is drawn, judged on the logo's own
// tags. Blank tags win over include tags, so a blanked logo only reserves space.
func (f Filter) Shown(logoTags TagSet) bool {
	switch {
	case len(logoTags) == 0:
		return true
	case logoTags.Intersects(f.blank):
		return false
	case logoTags.Intersects(f.include):
		return true
	case f.HasMask() && logoTags.Intersects(f.maskTags):
		return true
	}
	return false
}

// Mask returns the substitute logo id for an included entry whose effective
// tags trigger the variant's mask.
func (f Filter) Mask(e Entry, logoTags TagSet) (string, bool) {
	if !f.HasMask() {
		return "", false
	}
	if e.Tags.Union(logoTags).Intersects(f.maskTags) {
		return f.maskLogo, true
	}
	return "", false
}
