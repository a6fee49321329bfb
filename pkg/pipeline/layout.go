package pipeline

import (
	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/definition"
	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/imagemetrics"
	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/layout"
	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/primitive"
)

// =============================================================================
// Layout Generation
// =============================================================================

// GenerateSlide lays out one variant and converts it into primitives.
// A nil metrics provider draws every image square.
func GenerateSlide(def *definition.Definition, v definition.Variant, metrics imagemetrics.Provider, opts Options) (Slide, error) {
	sl, err := layout.New(def, opts.LayoutOptions()...).Layout(v)
	if err != nil {
		return Slide{}, err
	}

	gen := primitive.NewGenerator(def.Render, metrics, primitive.WithExtents(opts.Extents))
	ps, err := gen.Slide(sl)
	if err != nil {
		return Slide{}, err
	}
	return Slide{Variant: v, Layout: sl, Primitives: ps}, nil
}

// GenerateListings computes the textual projection of each variant.
func GenerateListings(def *definition.Definition, variants []definition.Variant, opts Options) ([]layout.Listing, error) {
	eng := layout.New(def, opts.LayoutOptions()...)
	out := make([]layout.Listing, 0, len(variants))
	for _, v := range variants {
		l, err := eng.Listing(v)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}
