package pipeline

import (
	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/definition"
)

// Load reads a document from disk. The format follows the file extension.
func Load(path string) (*definition.Definition, error) {
	return definition.Load(path)
}

// Parse decodes a document held in memory. Relative image paths resolve
// against dir, which may be empty.
func Parse(data []byte, format, dir string) (*definition.Definition, error) {
	def, err := definition.Parse(data, format)
	if err != nil {
		return nil, err
	}
	def.Dir = dir
	def.ResolvePaths()
	return def, nil
}

// SelectVariants returns the variants named in names, in document order.
// An empty list selects every variant.
func SelectVariants(def *definition.Definition, names []string) ([]definition.Variant, error) {
	if len(names) == 0 {
		return def.EffectiveVariants(), nil
	}
	out := make([]definition.Variant, 0, len(names))
	for _, name := range names {
		v, err := def.Variant(name)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
