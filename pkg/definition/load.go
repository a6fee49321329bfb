package definition

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/errors"
)

// Document formats understood by [Parse].
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
)

// Default dimensions, in inches unless noted.
const (
	DefaultDPI          = 96.0
	DefaultIconSize     = 0.5
	DefaultTextWidth    = 1.0
	DefaultTextHeight   = 0.3
	DefaultTextDistance = 0.5
	DefaultFontSize     = 10.0
	DefaultLineSpacing  = 1.0
	DefaultBoxSpacing   = 0.5
	DefaultPadding      = 0.1
)

// Default slide size: widescreen 16:9, in inches.
const (
	DefaultSlideWidth  = 13.333
	DefaultSlideHeight = 7.5
)

// Load reads and parses a document file. The format is chosen by extension
// (.yaml/.yml for YAML, anything else TOML), defaults are applied, and logo
// image paths are resolved against the file's directory.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}

	d, err := Parse(data, FormatForPath(path))
	if err != nil {
		return nil, errors.At(err, path)
	}
	d.Dir = filepath.Dir(path)
	d.ResolvePaths()
	return d, nil
}

// FormatForPath picks the document format from a file extension.
func FormatForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// Parse decodes a document in the given format, applies defaults and validates it.
func Parse(data []byte, format string) (*Definition, error) {
	var d Definition
	switch format {
	case FormatTOML:
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&d); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode TOML")
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &d); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode YAML")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown document format: %s", format)
	}

	d.SetDefaults()
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// SetDefaults fills zero-valued spacing and render settings.
func (d *Definition) SetDefaults() {
	if d.Logos == nil {
		d.Logos = make(map[string]Logo)
	}
	if d.Layout.LineSpacing == 0 {
		d.Layout.LineSpacing = DefaultLineSpacing
	}
	if d.Layout.BoxSpacing == 0 {
		d.Layout.BoxSpacing = DefaultBoxSpacing
	}
	if d.Layout.Padding == 0 {
		d.Layout.Padding = DefaultPadding
	}
	d.Render.SetDefaults()
}

// SetDefaults fills zero-valued render settings.
func (r *Render) SetDefaults() {
	if r.DPI == 0 {
		r.DPI = DefaultDPI
	}
	if r.IconSize == 0 {
		r.IconSize = DefaultIconSize
	}
	if r.TextWidth == 0 {
		r.TextWidth = DefaultTextWidth
	}
	if r.TextHeight == 0 {
		r.TextHeight = DefaultTextHeight
	}
	if r.TextDistance == 0 {
		r.TextDistance = DefaultTextDistance
	}
	if r.TitleHeight == 0 {
		r.TitleHeight = r.TextHeight
	}
	if r.SlideWidth == 0 {
		r.SlideWidth = DefaultSlideWidth
	}
	if r.SlideHeight == 0 {
		r.SlideHeight = DefaultSlideHeight
	}
	if r.FontSize == 0 {
		r.FontSize = DefaultFontSize
	}
	if r.FontColor == "" {
		r.FontColor = "#000000"
	}
	if r.DarkFontColor == "" {
		r.DarkFontColor = "#FFFFFF"
	}
	if r.BackgroundColor == "" {
		r.BackgroundColor = "#FFFFFF"
	}
	if r.DarkBackgroundColor == "" {
		r.DarkBackgroundColor = "#1E1E1E"
	}
	if r.LogoBackgroundColor == "" {
		r.LogoBackgroundColor = "#FFFFFF"
	}
}

// Validate checks structural rules that do not depend on a variant:
// variant names are usable as file names and unique, box row keys are numeric,
// and every box location names a declared location.
func (d *Definition) Validate() error {
	seen := make(map[string]bool, len(d.Variants))
	for i, v := range d.Variants {
		if err := errors.ValidateName(v.Name); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "variant %d: name", i)
		}
		if seen[v.Name] {
			return errors.New(errors.ErrCodeInvalidConfig, "variant %q: duplicate name", v.Name)
		}
		seen[v.Name] = true
		if v.Mask != nil && v.Mask.Logo == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "variant %q: mask has no logo", v.Name)
		}
	}

	for i, b := range d.Boxes {
		if _, err := b.Rows(); err != nil {
			return err
		}
		if b.Location != "" {
			if _, ok := d.Location(b.Page, b.Location); !ok {
				return errors.New(errors.ErrCodeInvalidConfig, "box %d (%q): location %q not found on page %d", i, b.Title, b.Location, b.Page)
			}
		}
	}
	return nil
}
