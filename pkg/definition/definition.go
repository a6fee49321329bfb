package definition

import (
	"cmp"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/errors"
)

// DefaultVariantName names the implicit variant of a document that declares none.
const DefaultVariantName = "Default"

// Definition is a whole parsed document.
type Definition struct {
	Title     string          `toml:"title" yaml:"title" json:"title,omitempty"`
	Layout    Layout          `toml:"layout" yaml:"layout" json:"layout"`
	Render    Render          `toml:"render" yaml:"render" json:"render"`
	Logos     map[string]Logo `toml:"logos" yaml:"logos" json:"logos,omitempty"`
	Boxes     []Box           `toml:"boxes" yaml:"boxes" json:"boxes,omitempty"`
	Rows      []Row           `toml:"rows" yaml:"rows" json:"rows,omitempty"`
	Locations []Location      `toml:"locations" yaml:"locations" json:"locations,omitempty"`
	Variants  []Variant       `toml:"variants" yaml:"variants" json:"variants,omitempty"`

	// Dir is the directory relative image paths resolve against.
	Dir string `toml:"-" yaml:"-" json:"-"`
}

// Layout holds document-wide spacing rules, in inches.
type Layout struct {
	Padding      float64  `toml:"padding" yaml:"padding" json:"padding"`
	LineSpacing  float64  `toml:"line_spacing" yaml:"line_spacing" json:"line_spacing"`
	BoxSpacing   float64  `toml:"box_spacing" yaml:"box_spacing" json:"box_spacing"`
	DefaultWidth *float64 `toml:"default_width" yaml:"default_width" json:"default_width,omitempty"`
	DefaultX     float64  `toml:"default_x" yaml:"default_x" json:"default_x"`
	MinColumns   int      `toml:"min_columns" yaml:"min_columns" json:"min_columns,omitempty"`
}

// Render holds the physical dimensions and styling used to turn layouts
// into primitives. Lengths are in inches; DPI converts them to pixels.
type Render struct {
	DPI          float64 `toml:"dpi" yaml:"dpi" json:"dpi"`
	IconSize     float64 `toml:"icon_size" yaml:"icon_size" json:"icon_size"`
	TextWidth    float64 `toml:"text_width" yaml:"text_width" json:"text_width"`
	TextHeight   float64 `toml:"text_height" yaml:"text_height" json:"text_height"`
	TextDistance float64 `toml:"text_distance" yaml:"text_distance" json:"text_distance"`
	TitleHeight  float64 `toml:"title_height" yaml:"title_height" json:"title_height"`
	SlideWidth   float64 `toml:"slide_width" yaml:"slide_width" json:"slide_width"`
	SlideHeight  float64 `toml:"slide_height" yaml:"slide_height" json:"slide_height"`

	FontName            string  `toml:"font_name" yaml:"font_name" json:"font_name,omitempty"`
	FontSize            float64 `toml:"font_size" yaml:"font_size" json:"font_size"`
	FontColor           string  `toml:"font_color" yaml:"font_color" json:"font_color,omitempty"`
	DarkFontColor       string  `toml:"dark_font_color" yaml:"dark_font_color" json:"dark_font_color,omitempty"`
	BackgroundColor     string  `toml:"background_color" yaml:"background_color" json:"background_color,omitempty"`
	DarkBackgroundColor string  `toml:"dark_background_color" yaml:"dark_background_color" json:"dark_background_color,omitempty"`
	LogoBackgroundColor string  `toml:"logo_background_color" yaml:"logo_background_color" json:"logo_background_color,omitempty"`
}

// Logo describes one glyph that rows reference by id.
type Logo struct {
	Title     string            `toml:"title" yaml:"title" json:"title"`
	Titles    map[string]string `toml:"titles" yaml:"titles" json:"titles,omitempty"`
	Path      string            `toml:"path" yaml:"path" json:"path,omitempty"`
	AltPath   string            `toml:"alt_path" yaml:"alt_path" json:"alt_path,omitempty"`
	Tags      []string          `toml:"tags" yaml:"tags" json:"tags,omitempty"`
	TextWidth *float64          `toml:"text_width" yaml:"text_width" json:"text_width,omitempty"`
	Scale     float64           `toml:"scale" yaml:"scale" json:"scale,omitempty"`
	// Background marks a logo that needs a light backdrop when drawn on a dark slide.
	Background bool   `toml:"background" yaml:"background" json:"background,omitempty"`
	AltText    string `toml:"alt_text" yaml:"alt_text" json:"alt_text,omitempty"`
}

// DisplayTitle returns the title for lang, falling back to the default title.
func (l Logo) DisplayTitle(lang string) string {
	if t, ok := l.Titles[lang]; ok && lang != "" {
		return t
	}
	return l.Title
}

// ImagePath returns the image to draw in the given mode. Dark mode prefers
// the alternate path when one is declared.
func (l Logo) ImagePath(dark bool) string {
	if dark && l.AltPath != "" {
		return l.AltPath
	}
	return l.Path
}

// EffectiveScale returns Scale, treating zero as 1.
func (l Logo) EffectiveScale() float64 {
	if l.Scale == 0 {
		return 1
	}
	return l.Scale
}

// Outer is a box's containing rectangle. Y is optional so a box can keep
// its horizontal frame while stacking below the previous box.
type Outer struct {
	X      float64  `toml:"x" yaml:"x" json:"x"`
	Y      *float64 `toml:"y" yaml:"y" json:"y,omitempty"`
	Width  float64  `toml:"width" yaml:"width" json:"width"`
	Height *float64 `toml:"height" yaml:"height" json:"height,omitempty"`
}

// Box is a titled group of logo rows.
type Box struct {
	Title        string            `toml:"title" yaml:"title" json:"title,omitempty"`
	Titles       map[string]string `toml:"titles" yaml:"titles" json:"titles,omitempty"`
	Page         int               `toml:"page" yaml:"page" json:"page,omitempty"`
	X            *float64          `toml:"x" yaml:"x" json:"x,omitempty"`
	Y            *float64          `toml:"y" yaml:"y" json:"y,omitempty"`
	Width        *float64          `toml:"width" yaml:"width" json:"width,omitempty"`
	Outer        *Outer            `toml:"outer" yaml:"outer" json:"outer,omitempty"`
	Location     string            `toml:"location" yaml:"location" json:"location,omitempty"`
	Padding      *float64          `toml:"padding" yaml:"padding" json:"padding,omitempty"`
	ExtraPadding float64           `toml:"extra_padding" yaml:"extra_padding" json:"extra_padding,omitempty"`
	MinColumns   int               `toml:"min_columns" yaml:"min_columns" json:"min_columns,omitempty"`
	NumRows      int               `toml:"num_rows" yaml:"num_rows" json:"num_rows,omitempty"`
	AutoFlow     *bool             `toml:"auto_flow" yaml:"auto_flow" json:"auto_flow,omitempty"`
	TextWidth    *float64          `toml:"text_width" yaml:"text_width" json:"text_width,omitempty"`
	// Logos maps a row index ("0", "1", ...) to the entries on that row.
	Logos map[string][]string `toml:"logos" yaml:"logos" json:"logos,omitempty"`
}

// DisplayTitle returns the title for lang, falling back to the default title.
func (b Box) DisplayTitle(lang string) string {
	if t, ok := b.Titles[lang]; ok && lang != "" {
		return t
	}
	return b.Title
}

// FlowEnabled reports whether the box rebalances its entries. Auto-flow is on
// unless the document turns it off.
func (b Box) FlowEnabled() bool {
	return b.AutoFlow == nil || *b.AutoFlow
}

// Rows returns the box's entry lists ordered by ascending row index.
// A non-numeric row key is a configuration error.
func (b Box) Rows() ([][]string, error) {
	type indexed struct {
		index   int
		entries []string
	}
	rows := make([]indexed, 0, len(b.Logos))
	for key, entries := range b.Logos {
		i, err := strconv.Atoi(key)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "box %q: row key %q is not a number", b.Title, key)
		}
		rows = append(rows, indexed{i, entries})
	}
	slices.SortFunc(rows, func(x, y indexed) int { return cmp.Compare(x.index, y.index) })

	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = r.entries
	}
	return out, nil
}

// Row is a top-level line of logos that does not belong to a box.
type Row struct {
	X          float64  `toml:"x" yaml:"x" json:"x"`
	Y          float64  `toml:"y" yaml:"y" json:"y"`
	Width      float64  `toml:"width" yaml:"width" json:"width"`
	MinColumns int      `toml:"min_columns" yaml:"min_columns" json:"min_columns,omitempty"`
	Logos      []string `toml:"logos" yaml:"logos" json:"logos"`
}

// Location is a named rectangle shared by boxes on the same page.
type Location struct {
	Page    int     `toml:"page" yaml:"page" json:"page"`
	Name    string  `toml:"name" yaml:"name" json:"name"`
	X       float64 `toml:"x" yaml:"x" json:"x"`
	Y       float64 `toml:"y" yaml:"y" json:"y"`
	Width   float64 `toml:"width" yaml:"width" json:"width"`
	Height  float64 `toml:"height" yaml:"height" json:"height,omitempty"`
	NumRows int     `toml:"num_rows" yaml:"num_rows" json:"num_rows,omitempty"`
}

// Mask substitutes every included entry whose tags intersect Tags with Logo.
type Mask struct {
	Logo string   `toml:"logo" yaml:"logo" json:"logo"`
	Tags []string `toml:"tags" yaml:"tags" json:"tags"`
}

// Variant is a named, filtered view of the document that renders as one slide.
type Variant struct {
	Name        string   `toml:"name" yaml:"name" json:"name"`
	Description []string `toml:"description" yaml:"description" json:"description,omitempty"`
	Notes       string   `toml:"notes" yaml:"notes" json:"notes,omitempty"`
	Include     []string `toml:"include" yaml:"include" json:"include,omitempty"`
	Blank       []string `toml:"blank" yaml:"blank" json:"blank,omitempty"`
	Pages       []int    `toml:"pages" yaml:"pages" json:"pages,omitempty"`
	Source      int      `toml:"source" yaml:"source" json:"source,omitempty"`
	Mask        *Mask    `toml:"mask" yaml:"mask" json:"mask,omitempty"`
	Language    string   `toml:"language" yaml:"language" json:"language,omitempty"`
	Dark        bool     `toml:"dark" yaml:"dark" json:"dark,omitempty"`
}

// EffectiveVariants returns the declared variants, or a single default
// variant when the document declares none.
func (d *Definition) EffectiveVariants() []Variant {
	if len(d.Variants) == 0 {
		return []Variant{{Name: DefaultVariantName}}
	}
	return d.Variants
}

// Variant looks up a variant by name among the effective variants.
func (d *Definition) Variant(name string) (Variant, error) {
	for _, v := range d.EffectiveVariants() {
		if v.Name == name {
			return v, nil
		}
	}
	return Variant{}, errors.New(errors.ErrCodeVariantNotFound, "variant %q not found", name)
}

// Location looks up a named location on a page.
func (d *Definition) Location(page int, name string) (Location, bool) {
	for _, l := range d.Locations {
		if l.Page == page && l.Name == name {
			return l, true
		}
	}
	return Location{}, false
}

// ResolvePath resolves an image path against the document directory.
// Absolute and empty paths are returned unchanged.
func (d *Definition) ResolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) || d.Dir == "" {
		return p
	}
	return filepath.Join(d.Dir, p)
}

// ResolvePaths rewrites every logo image path relative to the document
// directory. Load calls it once; calling it twice would resolve twice.
func (d *Definition) ResolvePaths() {
	for id, l := range d.Logos {
		l.Path = d.ResolvePath(l.Path)
		l.AltPath = d.ResolvePath(l.AltPath)
		d.Logos[id] = l
	}
}

// ImagePaths returns every distinct image path the document can draw,
// in both light and dark mode, sorted for determinism.
func (d *Definition) ImagePaths() []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(p string) {
		if p == "" {
			return
		}
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	for _, l := range d.Logos {
		add(l.Path)
		add(l.AltPath)
	}
	slices.Sort(out)
	return out
}
