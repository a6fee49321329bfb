// Package fonts resolves the document's font name for raster and vector output.
//
// SVG output names the font in CSS and lets the viewer pick it. Raster
// output needs an actual face: [Face] searches the usual system font
// directories for a TrueType file matching the name and falls back to a
// built-in bitmap face, so PNG export never fails for lack of fonts.
package fonts

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// FallbackFontFamily is appended to every CSS font-family list.
const FallbackFontFamily = `'Segoe UI', 'Helvetica Neue', Arial, sans-serif`

// Family returns a CSS font-family list headed by name.
func Family(name string) string {
	if name == "" {
		return FallbackFontFamily
	}
	return "'" + strings.ReplaceAll(name, "'", "") + "', " + FallbackFontFamily
}

// searchDirs are the directories scanned for font files.
func searchDirs() []string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return []string{"/System/Library/Fonts", "/Library/Fonts", filepath.Join(home, "Library", "Fonts")}
	case "windows":
		return []string{filepath.Join(os.Getenv("WINDIR"), "Fonts")}
	default:
		home, _ := os.UserHomeDir()
		return []string{"/usr/share/fonts", "/usr/local/share/fonts", filepath.Join(home, ".fonts")}
	}
}

// fallbackNames are tried when the requested font is not installed.
var fallbackNames = []string{"DejaVuSans", "LiberationSans-Regular", "Arial", "Helvetica"}

var (
	pathCache   = map[string]string{}
	pathCacheMu sync.Mutex
)

// Find returns the path of a TrueType file whose base name matches name,
// ignoring case, spaces and extension. The result is cached per name.
func Find(name string) (string, bool) {
	want := normalize(name)
	if want == "" {
		return "", false
	}

	pathCacheMu.Lock()
	defer pathCacheMu.Unlock()
	if p, ok := pathCache[want]; ok {
		return p, p != ""
	}

	var found string
	for _, dir := range searchDirs() {
		_ = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return nil
			}
			ext := strings.ToLower(filepath.Ext(path))
			if ext != ".ttf" && ext != ".otf" {
				return nil
			}
			if normalize(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))) == want {
				found = path
				return filepath.SkipAll
			}
			return nil
		})
		if found != "" {
			break
		}
	}
	pathCache[want] = found
	return found, found != ""
}

func normalize(name string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", ""))
}

// Face loads a face for name at the given size in points. It tries name, then
// common sans-serif fonts, then returns the built-in 7x13 bitmap face. The
// boolean reports whether a scalable font was found.
func Face(name string, points float64) (font.Face, bool) {
	for _, n := range append([]string{name}, fallbackNames...) {
		path, ok := Find(n)
		if !ok {
			continue
		}
		if face, err := gg.LoadFontFace(path, points); err == nil {
			return face, true
		}
	}
	return basicfont.Face7x13, false
}
