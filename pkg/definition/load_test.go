package definition

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/errors"
)

const sampleTOML = `
title = "Partners"

[layout]
padding = 0.2
line_spacing = 1.25
default_width = 9.0

[render]
dpi = 100
icon_size = 0.6

[logos.azure]
title = "Azure"
titles = { de = "Azure DE" }
path = "images/azure.png"
alt_path = "images/azure-dark.png"
tags = ["cloud"]

[logos.plain]
title = "Plain"

[[boxes]]
title = "Cloud"
outer = { x = 1, y = 2, width = 10 }
logos.1 = ["plain"]
logos.0 = ["azure", "plain:promo"]

[[locations]]
page = 1
name = "left"
x = 0.5
y = 1.0
width = 5.0

[[boxes]]
title = "Located"
page = 1
location = "left"
logos.0 = ["plain"]

[[variants]]
name = "Public"
include = ["cloud"]
mask = { logo = "plain", tags = ["promo"] }
`

func TestParseTOML(t *testing.T) {
	d, err := Parse([]byte(sampleTOML), FormatTOML)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if d.Title != "Partners" {
		t.Errorf("Title = %q, want %q", d.Title, "Partners")
	}
	if d.Layout.LineSpacing != 1.25 {
		t.Errorf("LineSpacing = %v, want 1.25", d.Layout.LineSpacing)
	}
	if d.Layout.DefaultWidth == nil || *d.Layout.DefaultWidth != 9 {
		t.Errorf("DefaultWidth = %v, want 9", d.Layout.DefaultWidth)
	}
	if d.Render.DPI != 100 {
		t.Errorf("DPI = %v, want 100", d.Render.DPI)
	}
	if d.Render.TextWidth != DefaultTextWidth {
		t.Errorf("TextWidth = %v, want default %v", d.Render.TextWidth, DefaultTextWidth)
	}
	if len(d.Logos) != 2 {
		t.Fatalf("Logos = %d, want 2", len(d.Logos))
	}
	if got := d.Logos["azure"].DisplayTitle("de"); got != "Azure DE" {
		t.Errorf("DisplayTitle(de) = %q, want %q", got, "Azure DE")
	}
	if len(d.Boxes) != 2 {
		t.Fatalf("Boxes = %d, want 2", len(d.Boxes))
	}

	rows, err := d.Boxes[0].Rows()
	if err != nil {
		t.Fatalf("Rows() error: %v", err)
	}
	if len(rows) != 2 || rows[0][0] != "azure" || rows[1][0] != "plain" {
		t.Errorf("Rows() = %v, want rows ordered by index", rows)
	}
	if d.Boxes[0].Outer == nil || d.Boxes[0].Outer.Y == nil || *d.Boxes[0].Outer.Y != 2 {
		t.Errorf("Outer = %+v, want y = 2", d.Boxes[0].Outer)
	}

	v, err := d.Variant("Public")
	if err != nil {
		t.Fatalf("Variant() error: %v", err)
	}
	if v.Mask == nil || v.Mask.Logo != "plain" {
		t.Errorf("Mask = %+v, want logo plain", v.Mask)
	}
}

func TestParseYAML(t *testing.T) {
	doc := `
title: Partners
logos:
  azure:
    title: Azure
    tags: [cloud]
boxes:
  - title: Cloud
    y: 1.5
    width: 8
    auto_flow: false
    logos:
      "0": [azure]
variants:
  - name: Public
    include: [cloud]
    pages: [0]
`
	d, err := Parse([]byte(doc), FormatYAML)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if d.Boxes[0].FlowEnabled() {
		t.Error("FlowEnabled() = true, want false")
	}
	if d.Boxes[0].Y == nil || *d.Boxes[0].Y != 1.5 {
		t.Errorf("Y = %v, want 1.5", d.Boxes[0].Y)
	}
	if d.Layout.LineSpacing != DefaultLineSpacing {
		t.Errorf("LineSpacing = %v, want default", d.Layout.LineSpacing)
	}
	if len(d.Variants[0].Pages) != 1 {
		t.Errorf("Pages = %v, want [0]", d.Variants[0].Pages)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		code errors.Code
	}{
		{
			name: "malformed",
			doc:  "title = ",
			code: errors.ErrCodeInvalidConfig,
		},
		{
			name: "non-numeric row key",
			doc:  "[[boxes]]\ntitle = \"x\"\nlogos.first = [\"a\"]\n",
			code: errors.ErrCodeInvalidConfig,
		},
		{
			name: "unknown location",
			doc:  "[[boxes]]\ntitle = \"x\"\nlocation = \"nowhere\"\n",
			code: errors.ErrCodeInvalidConfig,
		},
		{
			name: "duplicate variant",
			doc:  "[[variants]]\nname = \"a\"\n[[variants]]\nname = \"a\"\n",
			code: errors.ErrCodeInvalidConfig,
		},
		{
			name: "variant name with slash",
			doc:  "[[variants]]\nname = \"a/b\"\n",
			code: errors.ErrCodeInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc), FormatTOML)
			if err == nil {
				t.Fatal("Parse() error = nil, want error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("error code = %v, want %v", errors.GetCode(err), tt.code)
			}
		})
	}
}

func TestParseUnknownFormat(t *testing.T) {
	_, err := Parse([]byte(""), "xml")
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Parse(xml) error = %v, want INVALID_FORMAT", err)
	}
}

func TestLoadResolvesPaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "slides.toml")
	if err := os.WriteFile(path, []byte(sampleTOML), 0644); err != nil {
		t.Fatal(err)
	}

	d, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	want := filepath.Join(dir, "images", "azure.png")
	if got := d.Logos["azure"].Path; got != want {
		t.Errorf("Path = %q, want %q", got, want)
	}

	paths := d.ImagePaths()
	if len(paths) != 2 {
		t.Errorf("ImagePaths() = %v, want light and dark image", paths)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Load() error = %v, want INVALID_INPUT", err)
	}
}

func TestEffectiveVariants(t *testing.T) {
	d := &Definition{}
	vs := d.EffectiveVariants()
	if len(vs) != 1 || vs[0].Name != DefaultVariantName {
		t.Errorf("EffectiveVariants() = %v, want single default", vs)
	}
	if _, err := d.Variant("missing"); !errors.Is(err, errors.ErrCodeVariantNotFound) {
		t.Errorf("Variant(missing) error = %v, want VARIANT_NOT_FOUND", err)
	}
}

func TestLogoImagePath(t *testing.T) {
	l := Logo{Path: "light.png", AltPath: "dark.png"}
	if got := l.ImagePath(false); got != "light.png" {
		t.Errorf("ImagePath(false) = %q", got)
	}
	if got := l.ImagePath(true); got != "dark.png" {
		t.Errorf("ImagePath(true) = %q", got)
	}
	if got := (Logo{Path: "light.png"}).ImagePath(true); got != "light.png" {
		t.Errorf("ImagePath(true) without alt = %q", got)
	}
	if got := (Logo{}).EffectiveScale(); got != 1 {
		t.Errorf("EffectiveScale() = %v, want 1", got)
	}
}
