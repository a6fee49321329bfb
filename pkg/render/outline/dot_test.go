package outline

import (
	"context"
	"strings"
	"testing"

	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/definition"
	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/errors"
)

func testDef() *definition.Definition {
	y := 1.0
	w := 10.0
	def := &definition.Definition{
		Logos: map[string]definition.Logo{
			"azure": {Title: "Azure", Tags: []string{"cloud"}},
			"aws":   {Title: "AWS", Tags: []string{"secret"}},
			"tbd":   {Title: "TBD"},
		},
		Boxes: []definition.Box{
			{Title: "Cloud", Y: &y, Width: &w, Logos: map[string][]string{"0": {"azure", "aws"}}},
			{Title: "Later", Page: 2, Y: &y, Width: &w, Logos: map[string][]string{"0": {"azure"}}},
		},
		Variants: []definition.Variant{
			{Name: "Public", Include: []string{"cloud"}, Mask: &definition.Mask{Logo: "tbd", Tags: []string{"secret"}}},
			{Name: "Page2", Include: []string{"cloud"}, Pages: []int{2}},
		},
	}
	def.SetDefaults()
	return def
}

func TestToDOT(t *testing.T) {
	dot, err := ToDOT(testDef(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		`"variant:Public" -> "box:0";`,
		`"box:0" -> "logo:azure";`,
		`"box:0" -> "logo:tbd";`,
		`"variant:Page2" -> "box:1";`,
		`"box:1" -> "logo:azure";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %s\n%s", want, dot)
		}
	}
	if strings.Contains(dot, `"logo:aws"`) {
		t.Error("masked logo should not appear under its own id")
	}
	if strings.Count(dot, `"logo:azure" [`) != 1 {
		t.Error("shared logo node should be declared once")
	}
}

func TestToDOTSingleVariant(t *testing.T) {
	dot, err := ToDOT(testDef(), Options{Variant: "Page2", Detailed: true})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(dot, "variant:Public") {
		t.Error("other variants should be omitted")
	}
	if !strings.Contains(dot, `label="Page2\npages: 2"`) {
		t.Errorf("detailed variant label missing:\n%s", dot)
	}
	if !strings.Contains(dot, `label="Azure\ncloud"`) {
		t.Errorf("detailed logo label missing:\n%s", dot)
	}

	_, err = ToDOT(testDef(), Options{Variant: "Nope"})
	if !errors.Is(err, errors.ErrCodeVariantNotFound) {
		t.Errorf("err = %v, want VARIANT_NOT_FOUND", err)
	}
}

func TestRenderSVG(t *testing.T) {
	dot, err := ToDOT(testDef(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	svg, err := RenderSVG(context.Background(), dot)
	if err != nil {
		t.Fatal(err)
	}
	s := string(svg)
	if !strings.Contains(s, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 `) {
		t.Errorf("root element not normalized: %.200s", s)
	}
	if !strings.Contains(s, "Azure") {
		t.Error("rendered SVG missing node label")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="5pt" viewBox="0.00 0.00 10.00 5.00" xmlns="x"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10.00 5.00" width="10" height="5"><g/></svg>`
	if got != want {
		t.Errorf("got %s\nwant %s", got, want)
	}
	if out := normalizeViewBox([]byte("<svg/>")); string(out) != "<svg/>" {
		t.Errorf("svg without viewBox changed: %s", out)
	}
}
