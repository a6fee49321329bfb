package imagemetrics

import (
	"slices"

	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/errors"
)

// Provider answers aspect-ratio queries for image paths.
type Provider interface {
	Has(path string) bool
	// AspectRatio returns width/height. An unknown path fails with IMAGE_NOT_FOUND.
	AspectRatio(path string) (float64, error)
}

// Size is the intrinsic size of an image in its own units.
type Size struct {
	Width  float64 `msgpack:"w" json:"width"`
	Height float64 `msgpack:"h" json:"height"`
}

// Aspect returns width/height, or 1 for a degenerate size.
func (s Size) Aspect() float64 {
	if s.Width <= 0 || s.Height <= 0 {
		return 1
	}
	return s.Width / s.Height
}

// Table is an immutable snapshot of measured images keyed by path.
type Table map[string]Size

// Has reports whether path was measured.
func (t Table) Has(path string) bool {
	_, ok := t[path]
	return ok
}

// AspectRatio returns the measured width/height of path.
func (t Table) AspectRatio(path string) (float64, error) {
	s, ok := t[path]
	if !ok {
		return 0, errors.New(errors.ErrCodeImageNotFound, "no metrics for image %q", path)
	}
	return s.Aspect(), nil
}

// Paths returns the measured paths in lexical order.
func (t Table) Paths() []string {
	out := make([]string, 0, len(t))
	for p := range t {
		out = append(out, p)
	}
	slices.Sort(out)
	return out
}

var _ Provider = Table(nil)
