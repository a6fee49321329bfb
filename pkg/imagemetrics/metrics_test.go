package imagemetrics

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/cache"
	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/errors"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func TestTable(t *testing.T) {
	table := Table{"wide.png": {Width: 200, Height: 100}, "flat.svg": {}}

	assert.True(t, table.Has("wide.png"))
	assert.False(t, table.Has("missing.png"))

	ratio, err := table.AspectRatio("wide.png")
	require.NoError(t, err)
	assert.InDelta(t, 2.0, ratio, 1e-9)

	ratio, err = table.AspectRatio("flat.svg")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, ratio, 1e-9)

	_, err = table.AspectRatio("missing.png")
	assert.True(t, errors.Is(err, errors.ErrCodeImageNotFound))

	assert.Equal(t, []string{"flat.svg", "wide.png"}, table.Paths())
}

func TestMeasureRaster(t *testing.T) {
	size, err := Measure("logo.png", encodePNG(t, 64, 32))
	require.NoError(t, err)
	assert.Equal(t, Size{Width: 64, Height: 32}, size)

	_, err = Measure("logo.png", []byte("garbage"))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat))
}

func TestMeasureSVG(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want Size
		ok   bool
	}{
		{"Attributes", `<svg xmlns="http://www.w3.org/2000/svg" width="120px" height="60"></svg>`, Size{120, 60}, true},
		{"ViewBox", `<?xml version="1.0"?><svg viewBox="0 0 300 100"/>`, Size{300, 100}, true},
		{"CommaViewBox", `<svg viewBox="0,0,50,25"/>`, Size{50, 25}, true},
		{"PercentFallsBack", `<svg width="100%" height="100%" viewBox="0 0 10 20"/>`, Size{10, 20}, true},
		{"NoSize", `<svg/>`, Size{}, false},
		{"WrongRoot", `<html/>`, Size{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Measure("logo.svg", []byte(tt.doc))
			if !tt.ok {
				assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat), "err = %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoader(t *testing.T) {
	dir := t.TempDir()
	wide := filepath.Join(dir, "wide.png")
	icon := filepath.Join(dir, "icon.svg")
	require.NoError(t, os.WriteFile(wide, encodePNG(t, 40, 10), 0644))
	require.NoError(t, os.WriteFile(icon, []byte(`<svg width="8" height="8"/>`), 0644))

	c, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	loader := NewLoader(c, nil, nil)

	ctx := context.Background()
	table, stats, err := loader.LoadWithStats(ctx, []string{wide, icon})
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Measured)
	assert.Equal(t, 0, stats.CacheHits)

	ratio, err := table.AspectRatio(wide)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, ratio, 1e-9)

	_, stats, err = loader.LoadWithStats(ctx, []string{wide, icon})
	require.NoError(t, err)
	assert.Equal(t, 2, stats.CacheHits)
}

func TestLoaderMissingFile(t *testing.T) {
	_, err := NewLoader(nil, nil, nil).Load(context.Background(), []string{filepath.Join(t.TempDir(), "nope.png")})
	assert.True(t, errors.Is(err, errors.ErrCodeImageNotFound), "err = %v", err)
}
